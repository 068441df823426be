/*
 * vtotal.go, part of minushalf.
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

package atm

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rmera/minushalf"
)

const (
	downPotentialMarker = "Down potential follows"
	upPotentialMarker   = "Up potential follows"
)

// Vtotal is the radial potential file the atomic solver writes: a radius
// grid, the spin-down total potential and, for spin-polarized runs, the
// spin-up one. The header and marker lines are kept verbatim so the file
// can be re-emitted unchanged.
type Vtotal struct {
	Radius []float64
	Down   []float64
	Up     []float64
	header string
	//one marker and one skipped header line per potential block
	downMarker string
	downHeader string
	upMarker   string
	upHeader   string
}

// ReadVtotal parses a VTOTAL file. The radius grid is every whitespace
// token after the first (header) line and before the down-potential
// marker; each potential block follows its marker plus one header line.
// The up block is absent in non-spin-polarized calculations.
func ReadVtotal(path string) (*Vtotal, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, minushalf.NewMissingArtifactError(path, "cannot open potential file: %v", err)
	}
	defer file.Close()
	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, minushalf.NewFormatError(path, "cannot read potential file: %v", err)
	}
	if len(lines) < 2 {
		return nil, minushalf.NewFormatError(path, "potential file has only %d lines", len(lines))
	}
	vt := &Vtotal{header: lines[0]}
	i := 1
	vt.Radius, i, err = parseFloatBlock(path, lines, i, downPotentialMarker)
	if err != nil {
		return nil, err
	}
	if i >= len(lines) {
		return nil, minushalf.NewFormatError(path, "marker line %q not found", downPotentialMarker)
	}
	vt.downMarker = lines[i]
	i++
	if i < len(lines) {
		vt.downHeader = lines[i]
		i++
	}
	vt.Down, i, err = parseFloatBlock(path, lines, i, upPotentialMarker)
	if err != nil {
		return nil, err
	}
	if i >= len(lines) {
		return vt, nil //no spin-up block
	}
	vt.upMarker = lines[i]
	i++
	if i < len(lines) {
		vt.upHeader = lines[i]
		i++
	}
	vt.Up, _, err = parseFloatBlock(path, lines, i, "")
	if err != nil {
		return nil, err
	}
	return vt, nil
}

//parseFloatBlock consumes whitespace-separated floats starting at lines[i]
//until a line containing endMarker (or the end of the slice, if endMarker
//is empty or never found). It returns the values and the index of the
//marker line.
func parseFloatBlock(path string, lines []string, i int, endMarker string) ([]float64, int, error) {
	var values []float64
	for ; i < len(lines); i++ {
		if endMarker != "" && strings.Contains(lines[i], endMarker) {
			break
		}
		for _, tok := range strings.Fields(lines[i]) {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, i, minushalf.NewFormatError(path, "non-numeric value %q in potential table", tok)
			}
			values = append(values, v)
		}
	}
	return values, i, nil
}

// ToLines re-emits the file in the solver's fixed-column layout, four
// values per line. The output re-parses to the same tables.
func (vt *Vtotal) ToLines() []string {
	var lines []string
	lines = append(lines, vt.header+"\n")
	lines = append(lines, formatFloatBlock(vt.Radius)...)
	lines = append(lines, vt.downMarker+"\n")
	lines = append(lines, vt.downHeader+"\n")
	lines = append(lines, formatFloatBlock(vt.Down)...)
	if len(vt.Up) > 0 {
		lines = append(lines, vt.upMarker+"\n")
		lines = append(lines, vt.upHeader+"\n")
		lines = append(lines, formatFloatBlock(vt.Up)...)
	}
	return lines
}

// Write serializes the file to path.
func (vt *Vtotal) Write(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return minushalf.NewMissingArtifactError(path, "cannot create potential file: %v", err)
	}
	defer file.Close()
	for _, line := range vt.ToLines() {
		if _, err := file.WriteString(line); err != nil {
			return minushalf.NewMissingArtifactError(path, "cannot write potential file: %v", err)
		}
	}
	return nil
}

func formatFloatBlock(values []float64) []string {
	var lines []string
	var b strings.Builder
	for i, v := range values {
		fmt.Fprintf(&b, "%19.10E", v)
		if (i+1)%4 == 0 || i == len(values)-1 {
			lines = append(lines, b.String()+"\n")
			b.Reset()
		}
	}
	return lines
}

// CorrectPotential applies the cut-radius trimming to a potential sampled
// on radius: values are untouched up to the cut and smoothly driven toward
// the asymptote values[i] + sign*amplitude beyond it. The sign is -1 for a
// valence correction and +1 for a conduction one.
func CorrectPotential(radius, values []float64, cut, amplitude float64, conduction bool) ([]float64, error) {
	if len(radius) != len(values) {
		return nil, minushalf.NewValidationError(
			"radius grid and potential disagree in length: %d vs %d", len(radius), len(values))
	}
	sign := -1.0
	if conduction {
		sign = 1.0
	}
	corrected := make([]float64, len(values))
	for i, v := range values {
		corrected[i] = v + sign*amplitude*trimFactor(radius[i], cut)
	}
	return corrected, nil
}

//trimFactor is the trimming kernel: 0 up to the cut, then tanh²((r-cut)/cut),
//which starts with zero value and slope at the cut and saturates to 1.
func trimFactor(r, cut float64) float64 {
	if r <= cut {
		return 0
	}
	scale := cut
	if scale <= 0 {
		scale = 1
	}
	t := math.Tanh((r - cut) / scale)
	return t * t
}
