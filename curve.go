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

import "sort"

// A Curve is a piecewise-linear interpolant over one dispatch run's
// (cumulative capacity → cumulative emissions factor) pairs. Knot
// capacities are strictly increasing.
type Curve struct {
	capacity, ef []float64
}

// Curve returns the interpolation curve for the run. Plants with zero
// capacity add no curve width; where several points share a cumulative
// capacity only the last (which includes all tied plants) is kept as a
// knot.
func (r *DispatchRun) Curve() *Curve {
	c := &Curve{
		capacity: make([]float64, 0, len(r.Points)),
		ef:       make([]float64, 0, len(r.Points)),
	}
	for _, p := range r.Points {
		if n := len(c.capacity); n > 0 && p.CumulativeCapacity == c.capacity[n-1] {
			c.ef[n-1] = p.CumulativeEF
			continue
		}
		c.capacity = append(c.capacity, p.CumulativeCapacity)
		c.ef = append(c.ef, p.CumulativeEF)
	}
	return c
}

// Domain returns the cumulative-capacity range the curve was observed
// over [MW].
func (c *Curve) Domain() (min, max float64) {
	if len(c.capacity) == 0 {
		return 0, 0
	}
	return c.capacity[0], c.capacity[len(c.capacity)-1]
}

// Evaluate returns the emissions factor at the given load [MW],
// interpolating linearly between knots. Loads outside the observed
// domain are extrapolated linearly from the nearest two knots; note
// that estimates near the extremes therefore carry extra error.
func (c *Curve) Evaluate(loadMW float64) (float64, error) {
	return c.evaluate(loadMW, false)
}

// EvaluateStrict is Evaluate except that loads outside the observed
// domain return an OutOfRangeError instead of extrapolating.
func (c *Curve) EvaluateStrict(loadMW float64) (float64, error) {
	return c.evaluate(loadMW, true)
}

func (c *Curve) evaluate(x float64, strict bool) (float64, error) {
	n := len(c.capacity)
	if n == 0 {
		return 0, &NumericError{"evaluating an empty dispatch curve"}
	}
	if strict && (x < c.capacity[0] || x > c.capacity[n-1]) {
		return 0, &OutOfRangeError{Load: x, Min: c.capacity[0], Max: c.capacity[n-1]}
	}
	if n == 1 {
		return c.ef[0], nil
	}

	// Segment j spans capacity[j]..capacity[j+1]; loads beyond either
	// end reuse the nearest segment's slope.
	j := sort.SearchFloat64s(c.capacity, x) - 1
	if j < 0 {
		j = 0
	} else if j > n-2 {
		j = n - 2
	}
	x0, x1 := c.capacity[j], c.capacity[j+1]
	y0, y1 := c.ef[j], c.ef[j+1]
	return y0 + (x-x0)*(y1-y0)/(x1-x0), nil
}
