/*
 * input_test.go, part of minushalf.
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
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/minushalf"
)

func TestReadInputRoundTrip(Te *testing.T) {
	in, err := ReadInput("testdata/INP.ga")
	if err != nil {
		Te.Fatal(err)
	}
	if in.ChemicalSymbol != "Ga" || string(in.ExchangeCorrelation) != "pb" ||
		string(in.CalculationCode) != "ae" {
		Te.Errorf("wrong header fields: %q %q %q",
			in.ChemicalSymbol, in.ExchangeCorrelation, in.CalculationCode)
	}
	if in.NumberCoreOrbitals != 5 || in.NumberValenceOrbitals != 3 {
		Te.Errorf("wrong orbital counts: %d %d", in.NumberCoreOrbitals, in.NumberValenceOrbitals)
	}
	last := in.ValenceOrbitals[2]
	if last.N != 4 || last.L != 1 || last.Occupation[0] != 1.00 {
		Te.Errorf("wrong last valence orbital: %+v", last)
	}
	want, err := os.ReadFile("testdata/INP.ga")
	if err != nil {
		Te.Fatal(err)
	}
	got := strings.Join(in.ToLines(), "")
	if got != string(want) {
		Te.Errorf("deck does not round-trip:\ngot:\n%swant:\n%s", got, want)
	}
}

func TestMinimumSetupMatchesFixture(Te *testing.T) {
	//the lowercase symbol is capitalized on the way in
	in, err := MinimumSetup("ga", "pb", 100, "ae")
	if err != nil {
		Te.Fatal(err)
	}
	want, err := os.ReadFile("testdata/INP.ga")
	if err != nil {
		Te.Fatal(err)
	}
	got := strings.Join(in.ToLines(), "")
	if got != string(want) {
		Te.Errorf("minimum deck differs from fixture:\ngot:\n%swant:\n%s", got, want)
	}
}

func TestMinimumSetupUnknownElement(Te *testing.T) {
	if _, err := MinimumSetup("Og", "pb", 100, "ae"); !minushalf.IsKind(err, minushalf.ValidationErr) {
		Te.Errorf("element outside the database accepted: %v", err)
	}
}

func TestOneCharSymbolColumns(Te *testing.T) {
	in, err := MinimumSetup("N", "pb", 100, "ae")
	if err != nil {
		Te.Fatal(err)
	}
	if in.ToLines()[1] != " n=N  c=pb\n" {
		Te.Errorf("wrong symbol line for a one-character symbol: %q", in.ToLines()[1])
	}
}

func TestApplyOccupationShift(Te *testing.T) {
	in, err := MinimumSetup("Ga", "pb", 100, "ae")
	if err != nil {
		Te.Fatal(err)
	}
	if err := in.ApplyOccupationShift(0.5, 1); err != nil {
		Te.Fatal(err)
	}
	if got := in.ValenceOrbitals[2].Occupation[0]; math.Abs(got-0.5) > 1e-12 {
		Te.Errorf("4p occupation after shift: %g", got)
	}
	if err := in.ApplyOccupationShift(0.25, 2); err != nil {
		Te.Fatal(err)
	}
	if got := in.ValenceOrbitals[0].Occupation[0]; math.Abs(got-9.75) > 1e-12 {
		Te.Errorf("3d occupation after shift: %g", got)
	}
}

func TestOccupationShiftSkipsExhausted(Te *testing.T) {
	in := &InputFile{
		ValenceOrbitals: []Orbital{
			{N: 2, L: 1, Occupation: []float64{6.0}},
			{N: 3, L: 1, Occupation: []float64{0.0}},
		},
	}
	if err := in.ApplyOccupationShift(0.5, 1); err != nil {
		Te.Fatal(err)
	}
	if in.ValenceOrbitals[0].Occupation[0] != 5.5 {
		Te.Errorf("shift did not skip the empty orbital: %+v", in.ValenceOrbitals)
	}
	//now every p orbital is below the shift eligibility
	in.ValenceOrbitals[0].Occupation[0] = 0.0
	err := in.ApplyOccupationShift(0.5, 1)
	if !minushalf.IsKind(err, minushalf.OccupationErr) {
		Te.Errorf("exhausted deck accepted a shift: %v", err)
	}
	if err := in.ApplyOccupationShift(0.5, 3); !minushalf.IsKind(err, minushalf.OccupationErr) {
		Te.Errorf("shift on an absent angular momentum accepted: %v", err)
	}
}

func TestReadInputDropsComments(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "INP")
	deck := "# generated deck\n   ae      N\n n=N  c=pb\n 0.0\n    1    2\n" +
		"# valence block\n    2    0      2.00\n    2    1      3.00\n100 maxit\n"
	if err := os.WriteFile(path, []byte(deck), 0o644); err != nil {
		Te.Fatal(err)
	}
	in, err := ReadInput(path)
	if err != nil {
		Te.Fatal(err)
	}
	if in.NumberValenceOrbitals != 2 || in.ValenceOrbitals[1].Occupation[0] != 3.00 {
		Te.Errorf("comment lines disturbed the parse: %+v", in)
	}
}

func TestReadInputFieldErrors(Te *testing.T) {
	cases := []struct {
		name string
		deck string
	}{
		{"truncated", "   ae      N\n n=N  c=pb\n"},
		{"badSymbolLine", "   ae      N\nn:N c:pb\n 0.0\n    1    1\n    2    0      2.00\n"},
		{"badCounts", "   ae      N\n n=N  c=pb\n 0.0\n    one    1\n    2    0      2.00\n"},
		{"missingOrbitals", "   ae      N\n n=N  c=pb\n 0.0\n    1    3\n    2    0      2.00\n"},
		{"badOrbital", "   ae      N\n n=N  c=pb\n 0.0\n    1    1\n    2    s      2.00\n"},
	}
	for _, c := range cases {
		path := filepath.Join(Te.TempDir(), "INP")
		if err := os.WriteFile(path, []byte(c.deck), 0o644); err != nil {
			Te.Fatal(err)
		}
		if _, err := ReadInput(path); !minushalf.IsKind(err, minushalf.FormatErr) {
			Te.Errorf("%s: malformed deck accepted: %v", c.name, err)
		}
	}
}

func TestNewInputFileValidation(Te *testing.T) {
	orbitals := []Orbital{{N: 2, L: 0, Occupation: []float64{2.0}}}
	if _, err := NewInputFile("pg", "N", "N", "pb", "", 1, orbitals, nil); err == nil {
		Te.Error("invalid calculation code accepted")
	}
	if _, err := NewInputFile("ae", "N", "N", "zz", "", 1, orbitals, nil); err == nil {
		Te.Error("invalid exchange-correlation code accepted")
	}
	if _, err := NewInputFile("ae", "Q", "Q", "pb", "", 1, orbitals, nil); err == nil {
		Te.Error("invalid chemical symbol accepted")
	}
}
