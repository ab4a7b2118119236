/*
Copyright © 2026 the MeritOrder authors.
This file is part of MeritOrder.

MeritOrder is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

MeritOrder is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with MeritOrder.  If not, see <http://www.gnu.org/licenses/>.*/

package meritorderutil

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
)

// isHTTP reports whether path refers to a remote resource rather than
// a local file.
func isHTTP(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// openInput opens the input table at path, which may be a local file
// path or an http(s) URL. The caller is responsible for closing the
// returned reader.
func openInput(ctx context.Context, path string) (io.ReadCloser, error) {
	if !isHTTP(path) {
		return os.Open(path)
	}
	b, err := download(ctx, path)
	if err != nil {
		return nil, err
	}
	return ioutil.NopCloser(strings.NewReader(string(b))), nil
}

// download retrieves the contents of url, retrying transient failures
// with exponential backoff.
func download(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := backoff.RetryNotify(
		func() error {
			req, err := http.NewRequest("GET", url, nil)
			if err != nil {
				return err
			}
			resp, err := http.DefaultClient.Do(req.WithContext(ctx))
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("downloading %s: %s", url, resp.Status)
			}
			body, err = ioutil.ReadAll(resp.Body)
			return err
		},
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5),
		func(err error, d time.Duration) {
			log.Printf("%v: retrying in %v", err, d)
		},
	)
	return body, err
}
