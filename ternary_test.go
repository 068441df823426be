/*
 * ternary_test.go, part of minushalf.
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

import (
	"math"
	"testing"
)

//TestTernarySearchConcave checks convergence on a synthetic unimodal
//objective with a known analytic maximum.
func TestTernarySearchConcave(Te *testing.T) {
	const peak = 7.3
	evaluations := []float64{}
	objective := func(x float64) (float64, error) {
		evaluations = append(evaluations, x)
		return -(x - peak) * (x - peak), nil
	}
	bestX, bestValue, err := TernarySearch(0, 15, objective, WithTolerance(1e-2))
	if err != nil {
		Te.Error(err)
	}
	if math.Abs(bestX-peak) > 0.05 {
		Te.Errorf("best cut %f too far from the analytic maximum %f", bestX, peak)
	}
	if bestValue > 0 {
		Te.Errorf("objective maximum cannot exceed 0, got %f", bestValue)
	}
	//Two evaluations per shrinking step, both at distinct points.
	if len(evaluations)%2 != 0 {
		Te.Errorf("expected paired evaluations, got %d", len(evaluations))
	}
	for i := 0; i < len(evaluations); i += 2 {
		if evaluations[i] == evaluations[i+1] {
			Te.Errorf("step %d evaluated the same point twice: %f", i/2, evaluations[i])
		}
	}
	//log3/2(15/0.01) ~ 18 steps; leave slack but keep it bounded.
	if len(evaluations) > 60 {
		Te.Errorf("too many evaluations for an expensive objective: %d", len(evaluations))
	}
}

//TestTernarySearchBestObserved verifies that the returned value is the best
//pair ever evaluated, not the final midpoint.
func TestTernarySearchBestObserved(Te *testing.T) {
	best := math.Inf(-1)
	objective := func(x float64) (float64, error) {
		v := -(x - 3) * (x - 3)
		if v > best {
			best = v
		}
		return v, nil
	}
	_, bestValue, err := TernarySearch(0, 15, objective)
	if err != nil {
		Te.Error(err)
	}
	if bestValue != best {
		Te.Errorf("returned %f but the best observed value was %f", bestValue, best)
	}
}

func TestTernarySearchPropagatesErrors(Te *testing.T) {
	calls := 0
	boom := NewExternalProcessError("vasp", "solver wrote to stderr")
	objective := func(x float64) (float64, error) {
		calls++
		if calls == 3 {
			return 0, boom
		}
		return -x * x, nil
	}
	_, _, err := TernarySearch(0, 15, objective)
	if err == nil {
		Te.Error("expected the objective error to propagate")
	}
	if !IsKind(err, ExternalProcessErr) {
		Te.Errorf("error lost its kind: %v", err)
	}
	if calls != 3 {
		Te.Errorf("search kept evaluating after a failure: %d calls", calls)
	}
}

func TestTernarySearchNarrowInterval(Te *testing.T) {
	//An interval already below the tolerance still yields one evaluation.
	calls := 0
	bestX, bestValue, err := TernarySearch(1.0, 1.001, func(x float64) (float64, error) {
		calls++
		return 42, nil
	})
	if err != nil {
		Te.Error(err)
	}
	if calls != 1 || bestValue != 42 {
		Te.Errorf("expected a single midpoint evaluation, got %d calls, value %f", calls, bestValue)
	}
	if bestX < 1.0 || bestX > 1.001 {
		Te.Errorf("midpoint %f outside the interval", bestX)
	}
}

func TestTernarySearchInvertedInterval(Te *testing.T) {
	_, _, err := TernarySearch(10, 0, func(x float64) (float64, error) { return 0, nil })
	if !IsKind(err, ValidationErr) {
		Te.Errorf("expected a validation error, got %v", err)
	}
}
