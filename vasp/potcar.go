/*
 * potcar.go, part of minushalf.
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
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rmera/minushalf"
)

const localPartMarker = "local part"

// Potcar is the pseudopotential file of one atom. Only the local-part
// numeric block is interpreted; everything before it (the PSCTR header)
// and after it is carried verbatim so a corrected file differs from the
// original in the potential table alone. Implements minushalf.PotentialFile.
type Potcar struct {
	name      string
	header    []string //up to and including the local-part marker line
	potential []float64
	trailer   []string
}

// ReadPotcar parses the file at path; name is what Name() will report,
// usually the file's basename in the POTCAR.<atom> convention.
func ReadPotcar(path, name string) (*Potcar, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, minushalf.NewMissingArtifactError(path, "cannot open pseudopotential file: %v", err)
	}
	defer file.Close()
	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, minushalf.NewFormatError(path, "cannot read pseudopotential file: %v", err)
	}
	p := &Potcar{name: name}
	i := 0
	found := false
	for ; i < len(lines); i++ {
		p.header = append(p.header, lines[i])
		if strings.Contains(lines[i], localPartMarker) {
			found = true
			i++
			break
		}
	}
	if !found {
		return nil, minushalf.NewFormatError(path, "marker line %q not found", localPartMarker)
	}
	//the numeric block runs until the first line that is not all floats
	for ; i < len(lines); i++ {
		fields := strings.Fields(lines[i])
		if len(fields) == 0 {
			break
		}
		values, ok := parseFloats(fields)
		if !ok {
			break
		}
		p.potential = append(p.potential, values...)
	}
	p.trailer = lines[i:]
	if len(p.potential) == 0 {
		return nil, minushalf.NewFormatError(path, "no potential table after the local-part marker")
	}
	return p, nil
}

func parseFloats(fields []string) ([]float64, bool) {
	values := make([]float64, 0, len(fields))
	for _, tok := range fields {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, false
		}
		values = append(values, v)
	}
	return values, true
}

// Name returns the file name in the POTCAR.<atom> convention.
func (p *Potcar) Name() string {
	return p.name
}

// Potential returns the local-part potential table.
func (p *Potcar) Potential() []float64 {
	return p.potential
}

// CorrectedLines re-emits the whole file with the potential table replaced
// by corrected, which must live on the same grid.
func (p *Potcar) CorrectedLines(corrected []float64) ([]string, error) {
	if len(corrected) != len(p.potential) {
		return nil, minushalf.NewFormatError(p.name,
			"corrected table has %d values, the potential grid has %d", len(corrected), len(p.potential))
	}
	lines := make([]string, 0, len(p.header)+len(corrected)/5+len(p.trailer)+2)
	for _, line := range p.header {
		lines = append(lines, line+"\n")
	}
	var b strings.Builder
	for i, v := range corrected {
		fmt.Fprintf(&b, "%18.8E", v)
		if (i+1)%5 == 0 || i == len(corrected)-1 {
			lines = append(lines, b.String()+"\n")
			b.Reset()
		}
	}
	for _, line := range p.trailer {
		lines = append(lines, line+"\n")
	}
	return lines, nil
}

// WriteCorrected writes the corrected file to path.
func (p *Potcar) WriteCorrected(path string, corrected []float64) error {
	lines, err := p.CorrectedLines(corrected)
	if err != nil {
		return minushalf.ErrDecorate(err, "WriteCorrected")
	}
	file, err := os.Create(path)
	if err != nil {
		return minushalf.NewMissingArtifactError(path, "cannot create pseudopotential file: %v", err)
	}
	defer file.Close()
	for _, line := range lines {
		if _, err := file.WriteString(line); err != nil {
			return minushalf.NewMissingArtifactError(path, "cannot write pseudopotential file: %v", err)
		}
	}
	return nil
}
