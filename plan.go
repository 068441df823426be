/*
 * plan.go, part of minushalf.
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
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DefaultContributionThreshold is the minimum orbital-character percentage,
// in a VBM or CBM projection table, for an (atom, orbital) pair to be
// corrected.
const DefaultContributionThreshold = 5.0

// CorrectionPlan holds the (atom, orbital) pairs selected for correction and
// the percentage each pair contributes to the total selected character. The
// plan is built once from a projection table and read-only afterwards.
type CorrectionPlan struct {
	orbitals    map[string][]string
	percentages map[string]map[string]float64
	total       float64
}

// NewCorrectionPlan filters a projection table (symbol → orbital letter →
// percentage) down to the pairs contributing at or above threshold, and
// normalizes their contributions so they sum to 100 within the plan. An empty
// selection is an error: it means the threshold does not match the data.
func NewCorrectionPlan(projection map[string]map[string]float64, threshold float64) (*CorrectionPlan, error) {
	plan := &CorrectionPlan{
		orbitals:    make(map[string][]string),
		percentages: make(map[string]map[string]float64),
	}
	for _, symbol := range sortedSymbols(projection) {
		for _, letter := range sortedOrbitals(maps.Keys(projection[symbol])) {
			value := projection[symbol][letter]
			if value >= threshold {
				plan.orbitals[symbol] = append(plan.orbitals[symbol], letter)
				plan.total += value
			}
		}
	}
	if plan.total <= 0 {
		return nil, NewValidationError("no orbital selected for correction, check your threshold")
	}
	for symbol, letters := range plan.orbitals {
		plan.percentages[symbol] = make(map[string]float64)
		for _, letter := range letters {
			plan.percentages[symbol][letter] = 100 * projection[symbol][letter] / plan.total
		}
	}
	return plan, nil
}

// Symbols returns the selected atom symbols in lexicographic order.
func (p *CorrectionPlan) Symbols() []string {
	symbols := maps.Keys(p.orbitals)
	slices.Sort(symbols)
	return symbols
}

// Orbitals returns the selected orbital letters of symbol, ordered by
// angular momentum.
func (p *CorrectionPlan) Orbitals(symbol string) []string {
	return p.orbitals[symbol]
}

// Percentage returns the normalized contribution of an (atom, orbital) pair,
// as a percentage of the total selected character.
func (p *CorrectionPlan) Percentage(symbol, letter string) float64 {
	return p.percentages[symbol][letter]
}

// Len returns the number of selected (atom, orbital) pairs.
func (p *CorrectionPlan) Len() int {
	n := 0
	for _, letters := range p.orbitals {
		n += len(letters)
	}
	return n
}

func sortedSymbols(m map[string]map[string]float64) []string {
	symbols := maps.Keys(m)
	slices.Sort(symbols)
	return symbols
}
