/*
 * bands_test.go, part of minushalf.
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

type fakeProjector struct {
	//projections per kpoint, band: ion → [s p d f]
	data map[int]map[int]map[string][]float64
}

func (f *fakeProjector) Projection(kpoint, band int) (map[string][]float64, error) {
	bands, ok := f.data[kpoint]
	if !ok {
		return nil, NewFormatError("PROCAR", "kpoint %d not in projection data", kpoint)
	}
	proj, ok := bands[band]
	if !ok {
		return nil, NewFormatError("PROCAR", "band %d not in projection data", band)
	}
	return proj, nil
}

func gapFixture() *BandStructure {
	eigenvalues := map[int]map[int]float64{
		1: {1: -8.1, 2: -2.5, 3: 2.2},
		2: {1: -7.9, 2: -1.0, 3: 3.5},
		3: {1: -8.0, 2: -1.7, 3: 2.9},
	}
	atoms := map[string]string{"1": "Ga", "2": "N"}
	projections := map[int]map[int]map[string][]float64{
		2: {2: {
			"1": {0.10, 0.60, 0.00, 0.00},
			"2": {0.05, 0.25, 0.00, 0.00},
		}},
		1: {3: {
			"1": {0.80, 0.00, 0.20, 0.00},
			"2": {0.00, 0.00, 0.00, 0.00},
		}},
	}
	return NewBandStructure(eigenvalues, 0.0, atoms, 3, &fakeProjector{data: projections})
}

func TestBandGap(Te *testing.T) {
	report := gapFixture().BandGap()
	if report.VBM.Kpoint != 2 || report.VBM.Band != 2 {
		Te.Errorf("wrong VBM location: kpoint %d band %d", report.VBM.Kpoint, report.VBM.Band)
	}
	if report.CBM.Kpoint != 1 || report.CBM.Band != 3 {
		Te.Errorf("wrong CBM location: kpoint %d band %d", report.CBM.Kpoint, report.CBM.Band)
	}
	if math.Abs(report.Gap-3.2) > 1e-12 {
		Te.Errorf("wrong gap: %f", report.Gap)
	}
}

//TestBandGapTieBreak checks the deterministic tie-break: when several
//(kpoint, band) pairs share the extremal eigenvalue, the lowest kpoint and
//then the lowest band wins.
func TestBandGapTieBreak(Te *testing.T) {
	eigenvalues := map[int]map[int]float64{
		1: {1: -1.0, 2: 2.0},
		2: {1: -1.0, 2: 2.0},
	}
	b := NewBandStructure(eigenvalues, 0.0, map[string]string{"1": "Si"}, 2, nil)
	vbm := b.VBM()
	if vbm.Kpoint != 1 || vbm.Band != 1 {
		Te.Errorf("tie not broken by first occurrence: kpoint %d band %d", vbm.Kpoint, vbm.Band)
	}
	cbm := b.CBM()
	if cbm.Kpoint != 1 || cbm.Band != 2 {
		Te.Errorf("tie not broken by first occurrence: kpoint %d band %d", cbm.Kpoint, cbm.Band)
	}
}

//TestNegativeGap checks that an overlapping band structure reports a
//negative gap instead of failing.
func TestNegativeGap(Te *testing.T) {
	eigenvalues := map[int]map[int]float64{
		1: {1: -0.5, 2: 0.3},
		2: {1: -2.0, 2: 0.1},
	}
	b := NewBandStructure(eigenvalues, -0.1, map[string]string{"1": "Sn"}, 2, nil)
	report := b.BandGap()
	if report.Gap >= 0 {
		Te.Errorf("expected a negative gap, got %f", report.Gap)
	}
}

func TestVBMProjection(Te *testing.T) {
	proj, err := gapFixture().VBMProjection()
	if err != nil {
		Te.Error(err)
	}
	//Raw weights sum to 1.0, so the percentages are the weights times 100.
	if math.Abs(proj["Ga"]["p"]-60.0) > 1e-9 {
		Te.Errorf("Ga p character: %f", proj["Ga"]["p"])
	}
	if math.Abs(proj["N"]["s"]-5.0) > 1e-9 {
		Te.Errorf("N s character: %f", proj["N"]["s"])
	}
	total := 0.0
	for _, orbitals := range proj {
		for _, v := range orbitals {
			total += v
		}
	}
	if math.Abs(total-100.0) > 1e-9 {
		Te.Errorf("projection does not renormalize to 100: %f", total)
	}
}

func TestCBMProjection(Te *testing.T) {
	proj, err := gapFixture().CBMProjection()
	if err != nil {
		Te.Error(err)
	}
	if math.Abs(proj["Ga"]["s"]-80.0) > 1e-9 {
		Te.Errorf("Ga s character: %f", proj["Ga"]["s"])
	}
	if math.Abs(proj["Ga"]["d"]-20.0) > 1e-9 {
		Te.Errorf("Ga d character: %f", proj["Ga"]["d"])
	}
}
