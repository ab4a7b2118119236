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

package meritorder

import (
	"errors"
	"fmt"
)

// ErrNoData indicates that a selection (territory filter, run index)
// matched no plants or samples. It is distinct from the error types
// below so callers can report an empty selection differently from a
// failed computation.
var ErrNoData = errors.New("meritorder: no data for this selection")

// A ConfigurationError indicates invalid dispatch parameters, such as
// a non-positive run count or an empty registry.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("meritorder: %s", e.Message)
}

// A NumericError indicates a degenerate computation: a non-finite
// marginal cost draw or a zero cumulative capacity. It is returned
// instead of silently propagating NaN values.
type NumericError struct {
	Message string
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("meritorder: %s", e.Message)
}

// An OutOfRangeError indicates that a load value fell outside the
// cumulative-capacity domain of a dispatch curve while strict
// evaluation was requested.
type OutOfRangeError struct {
	// Load is the load value that was requested [MW].
	Load float64

	// Min and Max bound the observed cumulative-capacity domain [MW].
	Min, Max float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("meritorder: load %g MW is outside the dispatch curve domain [%g, %g]",
		e.Load, e.Min, e.Max)
}
