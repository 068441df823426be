/*
 * vtotal_test.go, part of minushalf.
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
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/minushalf"
)

func TestReadVtotalRoundTrip(Te *testing.T) {
	vt, err := ReadVtotal("testdata/VTOTAL.ae")
	if err != nil {
		Te.Fatal(err)
	}
	if len(vt.Radius) != 8 || len(vt.Down) != 8 || len(vt.Up) != 8 {
		Te.Fatalf("wrong table lengths: %d %d %d", len(vt.Radius), len(vt.Down), len(vt.Up))
	}
	if math.Abs(vt.Radius[0]-0.01) > 1e-12 {
		Te.Errorf("first radius: %g", vt.Radius[0])
	}
	if math.Abs(vt.Down[1]+1550.0) > 1e-6 {
		Te.Errorf("second down value: %g", vt.Down[1])
	}
	want, err := os.ReadFile("testdata/VTOTAL.ae")
	if err != nil {
		Te.Fatal(err)
	}
	got := strings.Join(vt.ToLines(), "")
	if got != string(want) {
		Te.Errorf("potential file does not round-trip:\ngot:\n%swant:\n%s", got, want)
	}
}

func TestReadVtotalDownOnly(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "VTOTAL")
	content := " N output\n  1.0E-02  2.0E-02\n Down potential follows\n    0\n  -1.0E+00  -2.0E+00\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		Te.Fatal(err)
	}
	vt, err := ReadVtotal(path)
	if err != nil {
		Te.Fatal(err)
	}
	if len(vt.Down) != 2 || len(vt.Up) != 0 {
		Te.Errorf("wrong tables for a non-spin-polarized file: %d down, %d up", len(vt.Down), len(vt.Up))
	}
}

func TestReadVtotalMissingMarker(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "VTOTAL")
	content := " N output\n  1.0E-02  2.0E-02\n  -1.0E+00  -2.0E+00\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		Te.Fatal(err)
	}
	if _, err := ReadVtotal(path); !minushalf.IsKind(err, minushalf.FormatErr) {
		Te.Errorf("file without the down-potential marker accepted: %v", err)
	}
	if _, err := ReadVtotal(filepath.Join(Te.TempDir(), "nothere")); !minushalf.IsKind(err, minushalf.MissingArtifactErr) {
		Te.Error("missing file not reported as a missing artifact")
	}
}

//TestCorrectPotentialFlat checks the trimming on a flat potential: inside
//the cut nothing changes, beyond it the curve moves monotonically toward
//the asymptote value+amplitude (conduction) or value-amplitude (valence).
func TestCorrectPotentialFlat(Te *testing.T) {
	const (
		cut       = 5.0
		amplitude = 1.0
		flat      = 3.0
	)
	n := 400
	radius := make([]float64, n)
	values := make([]float64, n)
	for i := range radius {
		radius[i] = float64(i) * 0.25
		values[i] = flat
	}
	corrected, err := CorrectPotential(radius, values, cut, amplitude, true)
	if err != nil {
		Te.Fatal(err)
	}
	prev := flat
	for i, r := range radius {
		switch {
		case r <= cut:
			if corrected[i] != flat {
				Te.Fatalf("potential changed inside the cut at r=%g: %g", r, corrected[i])
			}
		default:
			if corrected[i] <= prev {
				Te.Fatalf("potential not strictly approaching the asymptote at r=%g", r)
			}
			if corrected[i] >= flat+amplitude {
				Te.Fatalf("potential overshot the asymptote at r=%g: %g", r, corrected[i])
			}
		}
		prev = corrected[i]
	}
	if got := corrected[n-1]; math.Abs(got-(flat+amplitude)) > 1e-6 {
		Te.Errorf("potential far from the asymptote at the last point: %g", got)
	}
	valence, err := CorrectPotential(radius, values, cut, amplitude, false)
	if err != nil {
		Te.Fatal(err)
	}
	if got := valence[n-1]; math.Abs(got-(flat-amplitude)) > 1e-6 {
		Te.Errorf("valence trimming misses its asymptote: %g", got)
	}
	if _, err := CorrectPotential(radius[:10], values, cut, amplitude, true); !minushalf.IsKind(err, minushalf.ValidationErr) {
		Te.Error("mismatched grid lengths accepted")
	}
}

type fakePotFile struct {
	potential []float64
}

func (f *fakePotFile) Name() string         { return "POTCAR" }
func (f *fakePotFile) Potential() []float64 { return f.potential }

func (f *fakePotFile) CorrectedLines(values []float64) ([]string, error) {
	if len(values) != len(f.potential) {
		return nil, minushalf.NewFormatError(f.Name(), "wrong grid length")
	}
	lines := make([]string, len(values))
	for i, v := range values {
		lines[i] = fmt.Sprintf("%18.8E\n", v)
	}
	return lines, nil
}

func TestAtomicPotentialCorrect(Te *testing.T) {
	n := 40
	radius := make([]float64, n)
	ae := make([]float64, n)
	occ := make([]float64, n)
	base := make([]float64, n)
	for i := range radius {
		radius[i] = float64(i) * 0.5
		ae[i] = -2.0
		occ[i] = -1.0 //difference curve is flat at 1.0
		base[i] = 10.0
	}
	vt := &Vtotal{Radius: radius, Down: ae}
	vtOcc := &Vtotal{Radius: radius, Down: occ}
	file := &fakePotFile{potential: base}
	ap, err := NewAtomicPotential(vt, vtOcc, file)
	if err != nil {
		Te.Fatal(err)
	}
	const cut = 4.0
	corrected := ap.CorrectPotential(cut, 1.0, false)
	for i, r := range radius {
		if r <= cut && corrected[i] != base[i] {
			Te.Fatalf("correction leaked inside the cut at r=%g", r)
		}
		if r > cut && corrected[i] >= base[i] {
			Te.Fatalf("valence correction did not lower the potential at r=%g", r)
		}
	}
	//a conduction correction moves the same magnitude the other way
	up := ap.CorrectPotential(cut, 1.0, true)
	for i := range radius {
		if math.Abs((up[i]-base[i])-(base[i]-corrected[i])) > 1e-12 {
			Te.Fatalf("conduction and valence corrections are not symmetric at %d", i)
		}
	}
	//grid mismatches are rejected up front
	short := &fakePotFile{potential: base[:n-1]}
	if _, err := NewAtomicPotential(vt, vtOcc, short); !minushalf.IsKind(err, minushalf.ValidationErr) {
		Te.Error("mismatched potential file accepted")
	}
}
