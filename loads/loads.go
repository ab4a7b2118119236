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

// Package loads reads external load time series and attaches the time
// features used for aggregating marginal-emissions estimates.
package loads

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Sample is one time-indexed load observation.
type Sample struct {
	// Time is the observation timestamp.
	Time time.Time

	// MW is the observed load in megawatts.
	MW float64

	// Hour is the hour of day, 0–23.
	Hour int

	// Weekday is the day of the week.
	Weekday time.Weekday

	// Quarter is the calendar quarter, 1–4.
	Quarter int

	// Week is the ISO 8601 week of the year.
	Week int
}

// New returns a Sample for the given timestamp and load with its
// derived time features filled in.
func New(t time.Time, mw float64) Sample {
	_, week := t.ISOWeek()
	return Sample{
		Time:    t,
		MW:      mw,
		Hour:    t.Hour(),
		Weekday: t.Weekday(),
		Quarter: (int(t.Month())-1)/3 + 1,
		Week:    week,
	}
}

// Accepted timestamp layouts, tried in order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"1/2/2006 15:04",
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("loads: unrecognized timestamp %q", s)
}

// ReadCSV reads a load profile table. The first row must be a header
// containing a timestamp column ("timestamp", "time", or "datetime")
// and a load column ("load_mw", "load", or "mw").
func ReadCSV(f io.Reader) ([]Sample, error) {
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("loads: reading load profile: %v", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("loads: the load profile is empty")
	}

	timeCol, loadCol := -1, -1
	for i, name := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "timestamp", "time", "datetime":
			timeCol = i
		case "load_mw", "load", "mw":
			loadCol = i
		}
	}
	if timeCol < 0 {
		return nil, fmt.Errorf("loads: missing required column %q", "timestamp")
	}
	if loadCol < 0 {
		return nil, fmt.Errorf("loads: missing required column %q", "load_mw")
	}

	o := make([]Sample, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) <= timeCol || len(row) <= loadCol {
			return nil, fmt.Errorf("loads: line %d: too few fields", i+2)
		}
		t, err := parseTime(strings.TrimSpace(row[timeCol]))
		if err != nil {
			return nil, fmt.Errorf("loads: line %d: %v", i+2, err)
		}
		mw, err := strconv.ParseFloat(strings.TrimSpace(row[loadCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("loads: line %d: parsing load %q: %v", i+2, row[loadCol], err)
		}
		o = append(o, New(t, mw))
	}
	return o, nil
}
