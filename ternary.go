/*
 * ternary.go, part of minushalf.
 *
 * Copyright 2021 Raul Mera <rmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * */

package minushalf

import "math"

const (
	//DefaultSearchTolerance is the interval width, in the units of the
	//search variable, below which the ternary search stops.
	DefaultSearchTolerance = 1e-2
	//DefaultSearchMaxIterations caps the number of interval shrinks.
	DefaultSearchMaxIterations = 200
)

type searchSettings struct {
	tolerance     float64
	maxIterations int
}

// SearchOption adjusts the convergence parameters of TernarySearch.
type SearchOption func(*searchSettings)

func WithTolerance(tol float64) SearchOption {
	return func(s *searchSettings) { s.tolerance = tol }
}

func WithMaxIterations(n int) SearchOption {
	return func(s *searchSettings) { s.maxIterations = n }
}

// TernarySearch locates the maximum of a unimodal objective over the closed
// interval [low, high] without derivatives. Each iteration evaluates the
// objective at the two points that split the current interval in thirds and
// discards the third on the side of the smaller value; the two points of one
// iteration are always distinct, so the objective is never evaluated twice at
// the same point within a shrinking step. The objective is assumed expensive
// (it usually spawns an external solver run), so the best (x, value) pair
// ever observed is tracked and returned, which also guards against a noisy
// objective near convergence. Objective errors abort the search immediately
// and propagate untouched.
func TernarySearch(low, high float64, objective func(x float64) (float64, error),
	opts ...SearchOption) (bestX, bestValue float64, err error) {
	settings := &searchSettings{
		tolerance:     DefaultSearchTolerance,
		maxIterations: DefaultSearchMaxIterations,
	}
	for _, opt := range opts {
		opt(settings)
	}
	if low > high {
		return 0, 0, NewValidationError("ternary search interval [%g, %g] is inverted", low, high)
	}
	if settings.tolerance <= 0 {
		return 0, 0, NewValidationError("ternary search tolerance must be positive, got %g", settings.tolerance)
	}
	bestValue = math.Inf(-1)
	bestX = (low + high) / 2
	evaluated := false
	for i := 0; i < settings.maxIterations && high-low > settings.tolerance; i++ {
		third := (high - low) / 3
		x1 := low + third
		x2 := high - third
		v1, err := objective(x1)
		if err != nil {
			return bestX, bestValue, err
		}
		v2, err := objective(x2)
		if err != nil {
			return bestX, bestValue, err
		}
		evaluated = true
		if v1 > bestValue {
			bestX, bestValue = x1, v1
		}
		if v2 > bestValue {
			bestX, bestValue = x2, v2
		}
		if v1 < v2 {
			low = x1
		} else {
			high = x2
		}
	}
	if !evaluated {
		//Interval was already narrower than the tolerance.
		v, err := objective(bestX)
		if err != nil {
			return bestX, bestValue, err
		}
		bestValue = v
	}
	return bestX, bestValue, nil
}
