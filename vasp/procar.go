/*
 * procar.go, part of minushalf.
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
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/rmera/minushalf"
)

// Procar holds the lm-decomposed band projections of a PROCAR file,
// aggregated to the four orbital letters. It implements
// minushalf.BandProjector.
type Procar struct {
	NumKpoints int
	NumBands   int
	NumIons    int
	//weights[kpoint][band][ion] = [s, p, d, f]
	weights map[int]map[int]map[string][]float64
}

// ReadProcar parses a PROCAR file, decompressing transparently when the
// name ends in .gz. The lm-decomposed columns are folded into the s, p, d
// and f totals per ion; the per-line and per-ion "tot" columns are dropped.
// For spin-polarized files the spin-up block wins.
func ReadProcar(path string) (*Procar, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, minushalf.NewMissingArtifactError(path, "cannot open projections file: %v", err)
	}
	defer file.Close()
	var source io.Reader = file
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(bufio.NewReader(file))
		if err != nil {
			return nil, minushalf.NewFormatError(path, "cannot decompress projections file: %v", err)
		}
		defer gz.Close()
		source = gz
	}
	scanner := bufio.NewScanner(source)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	if !scanner.Scan() {
		return nil, minushalf.NewFormatError(path, "empty projections file")
	}
	if !scanner.Scan() {
		return nil, minushalf.NewFormatError(path, "projections file has no counts line")
	}
	p := &Procar{weights: make(map[int]map[int]map[string][]float64)}
	if err := p.parseCounts(path, scanner.Text()); err != nil {
		return nil, err
	}
	kpoint, band := 0, 0
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "k-point":
			kpoint, err = strconv.Atoi(fields[1])
			if err != nil {
				return nil, minushalf.NewFormatError(path, "malformed k-point line: %q", scanner.Text())
			}
			p.weights[kpoint] = make(map[int]map[string][]float64, p.NumBands)
		case "band":
			band, err = strconv.Atoi(fields[1])
			if err != nil {
				return nil, minushalf.NewFormatError(path, "malformed band line: %q", scanner.Text())
			}
		case "ion":
			//header of the per-ion table; the table itself follows
			if kpoint == 0 || band == 0 {
				return nil, minushalf.NewFormatError(path, "ion table outside a k-point/band block")
			}
			table := make(map[string][]float64, p.NumIons)
			for i := 0; i < p.NumIons && scanner.Scan(); i++ {
				ion, row, err := parseIonRow(path, scanner.Text())
				if err != nil {
					return nil, err
				}
				table[ion] = row
			}
			if len(table) != p.NumIons {
				return nil, minushalf.NewFormatError(path, "truncated ion table at k-point %d, band %d", kpoint, band)
			}
			p.weights[kpoint][band] = table
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, minushalf.NewFormatError(path, "cannot read projections file: %v", err)
	}
	if len(p.weights) != p.NumKpoints {
		return nil, minushalf.NewFormatError(path, "found %d k-point blocks, counts line says %d",
			len(p.weights), p.NumKpoints)
	}
	return p, nil
}

//parseCounts reads the "# of k-points: N # of bands: N # of ions: N" line.
func (p *Procar) parseCounts(path, line string) error {
	var counts []int
	for _, tok := range strings.Fields(line) {
		if n, err := strconv.Atoi(tok); err == nil {
			counts = append(counts, n)
		}
	}
	if len(counts) < 3 {
		return minushalf.NewFormatError(path, "malformed counts line: %q", line)
	}
	p.NumKpoints, p.NumBands, p.NumIons = counts[0], counts[1], counts[2]
	return nil
}

//parseIonRow folds one per-ion projection row into the four orbital
//letters. The first column is the ion index and the last is the total,
//which is dropped; the lm columns in between map to s (1), p (2-4),
//d (5-9) and f (10-16).
func parseIonRow(path, line string) (string, []float64, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return "", nil, minushalf.NewFormatError(path, "malformed ion row: %q", line)
	}
	ion := fields[0]
	if _, err := strconv.Atoi(ion); err != nil {
		return "", nil, minushalf.NewFormatError(path, "non-numeric ion index in row: %q", line)
	}
	row := make([]float64, 4)
	for col, tok := range fields[1 : len(fields)-1] {
		w, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return "", nil, minushalf.NewFormatError(path, "non-numeric projection in row: %q", line)
		}
		var l int
		switch {
		case col == 0:
			l = 0
		case col <= 3:
			l = 1
		case col <= 8:
			l = 2
		case col <= 15:
			l = 3
		default:
			return "", nil, minushalf.NewFormatError(path, "too many orbital columns in row: %q", line)
		}
		row[l] += w
	}
	return ion, row, nil
}

// Projection returns the per-ion s, p, d and f weights of a band at a
// kpoint, both 1-based. The returned slices are copies.
func (p *Procar) Projection(kpoint, band int) (map[string][]float64, error) {
	bands, ok := p.weights[kpoint]
	if !ok {
		return nil, minushalf.NewValidationError("k-point %d is not in the projections file (%d available)",
			kpoint, p.NumKpoints)
	}
	table, ok := bands[band]
	if !ok {
		return nil, minushalf.NewValidationError("band %d of k-point %d is not in the projections file", band, kpoint)
	}
	out := make(map[string][]float64, len(table))
	for ion, row := range table {
		out[ion] = append([]float64{}, row...)
	}
	return out, nil
}
