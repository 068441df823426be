/*
 * results.go, part of minushalf.
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
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// CutResult is the final artifact of a correction run: the converged cut
// radius per atom (valence) and, optionally, per atom and orbital
// (conduction), plus the band gap obtained with all corrected potentials.
type CutResult struct {
	//ValenceCuts is keyed by chemical symbol.
	ValenceCuts map[string]float64
	//ConductionCuts is keyed "Symbol(orbital)", e.g. "Ga(p)". Nil when no
	//conduction correction was run.
	ConductionCuts map[string]float64
	//Gap in eV.
	Gap float64
}

//The report layout is fixed; tests compare it byte for byte.
const resultsBanner = `--------------------------------------------------
|                MINUSHALF RESULTS               |
--------------------------------------------------
`

// ResultsLines renders the CutResult in the fixed report template. Cuts are
// listed in lexicographic key order.
func ResultsLines(res CutResult) []string {
	lines := strings.SplitAfter(resultsBanner, "\n")
	lines = lines[:len(lines)-1] //SplitAfter leaves a trailing empty element
	lines = append(lines, "Valence cuts (a0):\n")
	for _, symbol := range sortedKeys(res.ValenceCuts) {
		lines = append(lines, fmt.Sprintf("  %s: %.2f\n", symbol, res.ValenceCuts[symbol]))
	}
	if res.ConductionCuts != nil {
		lines = append(lines, "Conduction cuts (a0):\n")
		for _, key := range sortedKeys(res.ConductionCuts) {
			lines = append(lines, fmt.Sprintf("  %s: %.2f\n", key, res.ConductionCuts[key]))
		}
	}
	lines = append(lines, fmt.Sprintf("Final gap: %.3f eV\n", res.Gap))
	return lines
}

// MakeResults writes the report to filename.
func MakeResults(res CutResult, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return NewMissingArtifactError(filename, "cannot create results file: %v", err)
	}
	defer file.Close()
	for _, line := range ResultsLines(res) {
		if _, err := file.WriteString(line); err != nil {
			return NewMissingArtifactError(filename, "cannot write results file: %v", err)
		}
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
