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

package loads

import (
	"strings"
	"testing"
	"time"
)

func TestNew_timeFeatures(t *testing.T) {
	// Wednesday, 2019-10-02 14:00 UTC: hour 14, Q4, ISO week 40.
	ts := time.Date(2019, time.October, 2, 14, 0, 0, 0, time.UTC)
	s := New(ts, 512.5)
	if s.Hour != 14 {
		t.Errorf("hour: want 14 but have %d", s.Hour)
	}
	if s.Weekday != time.Wednesday {
		t.Errorf("weekday: want Wednesday but have %s", s.Weekday)
	}
	if s.Quarter != 4 {
		t.Errorf("quarter: want 4 but have %d", s.Quarter)
	}
	if s.Week != 40 {
		t.Errorf("week: want 40 but have %d", s.Week)
	}
}

func TestReadCSV(t *testing.T) {
	const data = `timestamp,load_mw
2019-01-01T00:00:00Z,820.5
2019-01-01 01:00:00,790.0
`
	samples, err := ReadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 2 {
		t.Fatalf("want 2 samples but have %d", len(samples))
	}
	if samples[0].MW != 820.5 {
		t.Errorf("load: want 820.5 but have %g", samples[0].MW)
	}
	if samples[0].Quarter != 1 {
		t.Errorf("quarter: want 1 but have %d", samples[0].Quarter)
	}
}

func TestReadCSV_errors(t *testing.T) {
	cases := []struct {
		name, data string
	}{
		{"empty", "timestamp,load_mw\n"},
		{"missing load column", "timestamp,power\n2019-01-01T00:00:00Z,1\n"},
		{"bad timestamp", "timestamp,load_mw\nyesterday,1\n"},
		{"bad load", "timestamp,load_mw\n2019-01-01T00:00:00Z,lots\n"},
	}
	for _, c := range cases {
		if _, err := ReadCSV(strings.NewReader(c.data)); err == nil {
			t.Errorf("%s: want error but have nil", c.name)
		}
	}
}
