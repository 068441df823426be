/*
 * eigenval.go, part of minushalf.
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

package vasp

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/rmera/minushalf"
)

// Eigenval holds the parsed EIGENVAL file: the calculation sizes and the
// eigenvalues keyed by kpoint index and band index, both 1-based.
type Eigenval struct {
	NumElectrons int
	NumKpoints   int
	NumBands     int
	Eigenvalues  map[int]map[int]float64
}

// ReadEigenval parses an EIGENVAL file. The first five lines are metadata
// and are skipped; the sixth carries the electron, kpoint and band counts;
// each kpoint block is its coordinate line followed by one line per band,
// whose second column is the eigenvalue (the spin-up one, for
// spin-polarized calculations).
func ReadEigenval(path string) (*Eigenval, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, minushalf.NewMissingArtifactError(path, "cannot open eigenvalues file: %v", err)
	}
	defer file.Close()
	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, minushalf.NewFormatError(path, "cannot read eigenvalues file: %v", err)
	}
	if len(lines) < 7 {
		return nil, minushalf.NewFormatError(path, "eigenvalues file has only %d lines", len(lines))
	}
	counts := strings.Fields(lines[5])
	if len(counts) < 3 {
		return nil, minushalf.NewFormatError(path, "malformed counts line: %q", lines[5])
	}
	nElectrons, err1 := strconv.Atoi(counts[0])
	nKpoints, err2 := strconv.Atoi(counts[1])
	nBands, err3 := strconv.Atoi(counts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, minushalf.NewFormatError(path, "non-numeric counts line: %q", lines[5])
	}
	ev := &Eigenval{
		NumElectrons: nElectrons,
		NumKpoints:   nKpoints,
		NumBands:     nBands,
		Eigenvalues:  make(map[int]map[int]float64, nKpoints),
	}
	i := 6
	for k := 1; k <= nKpoints; k++ {
		for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
			i++
		}
		//coordinate line of the kpoint
		i++
		if i+nBands > len(lines) {
			return nil, minushalf.NewFormatError(path, "truncated block for kpoint %d", k)
		}
		ev.Eigenvalues[k] = make(map[int]float64, nBands)
		for b := 0; b < nBands; b++ {
			fields := strings.Fields(lines[i])
			i++
			if len(fields) < 2 {
				return nil, minushalf.NewFormatError(path, "malformed band line in kpoint %d: %q", k, lines[i-1])
			}
			band, err1 := strconv.Atoi(fields[0])
			energy, err2 := strconv.ParseFloat(fields[1], 64)
			if err1 != nil || err2 != nil {
				return nil, minushalf.NewFormatError(path, "non-numeric band line in kpoint %d: %q", k, lines[i-1])
			}
			ev.Eigenvalues[k][band] = energy
		}
	}
	return ev, nil
}
