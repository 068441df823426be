/*
 * input.go, part of minushalf.
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
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/rmera/minushalf"
)

//Tolerances for deciding that an orbital occupation is already exhausted.
const (
	occAbsTol = 1e-8
	occRelTol = 1e-4
)

// Orbital is one valence level of the atomic calculation: principal and
// angular momentum quantum numbers plus the occupation, with one or two
// spin components.
type Orbital struct {
	N          int
	L          int
	Occupation []float64
}

// InputFile is the INP deck of the atomic solver. Instances are built by
// ReadInput, MinimumSetup or NewInputFile, which validate the symbol and the
// codes; an invalid InputFile is never constructed.
type InputFile struct {
	CalculationCode     minushalf.CalcCode
	Description         string
	ChemicalSymbol      string
	ExchangeCorrelation minushalf.XCCode
	//EsotericLine is a free-form scientific parameter line; for most
	//calculations it just holds a row of 0.0 and it is passed through
	//verbatim.
	EsotericLine          string
	NumberCoreOrbitals    int
	NumberValenceOrbitals int
	ValenceOrbitals       []Orbital
	//LastLines holds whatever comes after the electronic distribution,
	//verbatim.
	LastLines []string
}

// NewInputFile validates all the fields that have a restricted domain and
// assembles an InputFile.
func NewInputFile(calculationCode, description, symbol, xc, esotericLine string,
	coreOrbitals int, valenceOrbitals []Orbital, lastLines []string) (*InputFile, error) {
	calc, err := minushalf.NewCalcCode(calculationCode)
	if err != nil {
		return nil, minushalf.ErrDecorate(err, "NewInputFile")
	}
	xcCode, err := minushalf.NewXCCode(xc)
	if err != nil {
		return nil, minushalf.ErrDecorate(err, "NewInputFile")
	}
	if !minushalf.ValidSymbol(symbol) {
		return nil, minushalf.NewValidationError("the chemical symbol %q is not correct", symbol)
	}
	return &InputFile{
		CalculationCode:       calc,
		Description:           description,
		ChemicalSymbol:        minushalf.CapitalizeSymbol(symbol),
		ExchangeCorrelation:   xcCode,
		EsotericLine:          esotericLine,
		NumberCoreOrbitals:    coreOrbitals,
		NumberValenceOrbitals: len(valenceOrbitals),
		ValenceOrbitals:       valenceOrbitals,
		LastLines:             lastLines,
	}, nil
}

// ReadInput parses an INP deck. Comment lines (first non-blank character is
// '#') are dropped before the fixed-position fields are read. Each field
// group is validated independently so the error names the malformed group.
func ReadInput(path string) (*InputFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, minushalf.NewFormatError(path, "cannot open input deck: %v", err)
	}
	defer file.Close()
	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, minushalf.NewFormatError(path, "cannot read input deck: %v", err)
	}
	lines = dropComments(lines)
	if len(lines) < 4 {
		return nil, minushalf.NewFormatError(path, "input deck has only %d non-comment lines", len(lines))
	}

	header := strings.Fields(lines[0])
	if len(header) < 1 {
		return nil, minushalf.NewFormatError(path, "description or calculation code not provided")
	}
	calculationCode := header[0]
	description := strings.Join(header[1:], " ")

	symbol, xc, err := parseSymbolLine(lines[1])
	if err != nil {
		return nil, minushalf.NewFormatError(path, "chemical symbol or exchange correlation not provided: %v", err)
	}

	esotericLine := lines[2]

	counts := strings.Fields(lines[3])
	if len(counts) < 2 {
		return nil, minushalf.NewFormatError(path, "number of core orbitals or number of valence orbitals not provided")
	}
	coreOrbitals, err1 := strconv.Atoi(counts[0])
	valenceCount, err2 := strconv.Atoi(counts[1])
	if err1 != nil || err2 != nil {
		return nil, minushalf.NewFormatError(path, "orbital counts are not numeric: %q", lines[3])
	}

	if len(lines) < 4+valenceCount {
		return nil, minushalf.NewFormatError(path, "valence orbitals not provided correctly: want %d lines, have %d",
			valenceCount, len(lines)-4)
	}
	orbitals := make([]Orbital, 0, valenceCount)
	for i := 4; i < 4+valenceCount; i++ {
		orb, err := parseOrbitalLine(lines[i])
		if err != nil {
			return nil, minushalf.NewFormatError(path, "valence orbitals not provided correctly: %v", err)
		}
		orbitals = append(orbitals, orb)
	}
	lastLines := append([]string{}, lines[4+valenceCount:]...)

	in, err := NewInputFile(calculationCode, description, symbol, xc, esotericLine,
		coreOrbitals, orbitals, lastLines)
	return in, minushalf.ErrDecorate(err, "ReadInput")
}

// MinimumSetup builds the smallest INP deck that makes the atomic solver
// produce a pseudopotential for the element: the built-in ground-state
// electronic distribution plus an iteration cap.
func MinimumSetup(symbol, xc string, maxIterations int, calculationCode string) (*InputFile, error) {
	symbol = minushalf.CapitalizeSymbol(symbol)
	distribution, ok := electronicDistribution[symbol]
	if !ok {
		return nil, minushalf.NewValidationError("element %q is not available in the electronic distribution database", symbol)
	}
	counts := strings.Fields(distribution[0])
	coreOrbitals, _ := strconv.Atoi(counts[0])
	orbitals := make([]Orbital, 0, len(distribution)-1)
	for _, line := range distribution[1:] {
		orb, err := parseOrbitalLine(line)
		if err != nil {
			return nil, minushalf.ErrDecorate(err, "MinimumSetup")
		}
		orbitals = append(orbitals, orb)
	}
	if maxIterations <= 0 {
		maxIterations = 100
	}
	in, err := NewInputFile(
		calculationCode,
		symbol,
		symbol,
		xc,
		"       0.0       0.0       0.0       0.0       0.0       0.0",
		coreOrbitals,
		orbitals,
		[]string{fmt.Sprintf("%d maxit", maxIterations)},
	)
	return in, minushalf.ErrDecorate(err, "MinimumSetup")
}

// ApplyOccupationShift subtracts fraction from the first occupation
// component of the last (closest to valence) orbital whose angular momentum
// matches l and whose occupation is not already exhausted. The caller is
// responsible for keeping fraction inside the physical (0, 0.5] range.
func (in *InputFile) ApplyOccupationShift(fraction float64, l int) error {
	for i := len(in.ValenceOrbitals) - 1; i >= 0; i-- {
		orb := &in.ValenceOrbitals[i]
		exhausted := scalar.EqualWithinAbsOrRel(orb.Occupation[0], 0.0, occAbsTol, occRelTol)
		if !exhausted && orb.L == l {
			orb.Occupation[0] -= fraction
			return nil
		}
	}
	return minushalf.NewOccupationError(
		"no eligible orbital with l=%d for an occupation shift of %g; verify the INP file", l, fraction)
}

// ToLines serializes the deck in the exact column format the atomic solver
// re-parses. The widths depend on the length of the chemical symbol and on
// whether the core-orbital count has one or two digits.
func (in *InputFile) ToLines() []string {
	lines := make([]string, 0, 5+len(in.ValenceOrbitals)+len(in.LastLines))
	lines = append(lines, fmt.Sprintf("   %s      %s\n", in.CalculationCode, in.Description))
	if len(in.ChemicalSymbol) == 2 {
		lines = append(lines, fmt.Sprintf(" n=%s c=%s\n", in.ChemicalSymbol, in.ExchangeCorrelation))
	} else {
		lines = append(lines, fmt.Sprintf(" n=%s  c=%s\n", in.ChemicalSymbol, in.ExchangeCorrelation))
	}
	lines = append(lines, in.EsotericLine+"\n")
	if in.NumberCoreOrbitals <= 9 {
		lines = append(lines, fmt.Sprintf("    %d    %d\n", in.NumberCoreOrbitals, in.NumberValenceOrbitals))
	} else {
		lines = append(lines, fmt.Sprintf("   %d    %d\n", in.NumberCoreOrbitals, in.NumberValenceOrbitals))
	}
	for _, orb := range in.ValenceOrbitals {
		occupations := make([]string, len(orb.Occupation))
		for i, occ := range orb.Occupation {
			occupations[i] = fmt.Sprintf("%.2f", occ)
		}
		lines = append(lines, fmt.Sprintf("    %d    %d      %s\n", orb.N, orb.L, strings.Join(occupations, "      ")))
	}
	for _, line := range in.LastLines {
		lines = append(lines, line+"\n")
	}
	return lines
}

// Write serializes the deck to path.
func (in *InputFile) Write(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return minushalf.NewMissingArtifactError(path, "cannot create input deck: %v", err)
	}
	defer file.Close()
	for _, line := range in.ToLines() {
		if _, err := file.WriteString(line); err != nil {
			return minushalf.NewMissingArtifactError(path, "cannot write input deck: %v", err)
		}
	}
	return nil
}

func parseSymbolLine(line string) (symbol, xc string, err error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", "", fmt.Errorf("want two key=value tokens, got %q", line)
	}
	symbol, err = afterEquals(fields[0])
	if err != nil {
		return "", "", err
	}
	xc, err = afterEquals(fields[1])
	return symbol, xc, err
}

func afterEquals(token string) (string, error) {
	parts := strings.SplitN(token, "=", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", fmt.Errorf("token %q is not key=value", token)
	}
	return parts[1], nil
}

func parseOrbitalLine(line string) (Orbital, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Orbital{}, fmt.Errorf("orbital line %q needs n, l and at least one occupation", line)
	}
	n, err1 := strconv.Atoi(fields[0])
	l, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil {
		return Orbital{}, fmt.Errorf("orbital line %q has non-numeric quantum numbers", line)
	}
	occupations := make([]float64, 0, 2)
	for _, tok := range fields[2:] {
		occ, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return Orbital{}, fmt.Errorf("orbital line %q has a non-numeric occupation", line)
		}
		occupations = append(occupations, occ)
	}
	if len(occupations) > 2 {
		return Orbital{}, fmt.Errorf("orbital line %q has more than two spin components", line)
	}
	return Orbital{N: n, L: l, Occupation: occupations}, nil
}

//dropComments removes the lines whose first non-blank character is '#'.
func dropComments(lines []string) []string {
	out := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}
