/*
 * bands.go, part of minushalf.
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

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats/scalar"
)

//tolerance for deciding that an eigenvalue sits exactly at the Fermi level.
const fermiTol = 1e-8

// BandEdge locates one extremum of the band structure: the (kpoint, band)
// pair, both 1-based, and the eigenvalue there.
type BandEdge struct {
	Kpoint     int
	Band       int
	Eigenvalue float64
}

// GapReport is the outcome of a band-gap extraction. A zero or negative gap
// is a valid result (metallic or semi-metallic system), not an error.
type GapReport struct {
	VBM BandEdge
	CBM BandEdge
	Gap float64
}

// BandStructure combines the eigenvalues, the Fermi energy, the ion map and
// the orbital projections of a finished DFT calculation.
type BandStructure struct {
	eigenvalues map[int]map[int]float64
	fermiEnergy float64
	atomsMap    map[string]string
	numBands    int
	projector   BandProjector
}

func NewBandStructure(eigenvalues map[int]map[int]float64, fermiEnergy float64,
	atomsMap map[string]string, numBands int, projector BandProjector) *BandStructure {
	return &BandStructure{
		eigenvalues: eigenvalues,
		fermiEnergy: fermiEnergy,
		atomsMap:    atomsMap,
		numBands:    numBands,
		projector:   projector,
	}
}

//kpoints returns the kpoint indexes in ascending order. Iteration order over
//the eigenvalue map has to be fixed so that ties at the band edges are broken
//deterministically: lowest kpoint first, then lowest band.
func (b *BandStructure) kpoints() []int {
	ks := maps.Keys(b.eigenvalues)
	slices.Sort(ks)
	return ks
}

func (b *BandStructure) bands(kpoint int) []int {
	bs := maps.Keys(b.eigenvalues[kpoint])
	slices.Sort(bs)
	return bs
}

// VBM returns the valence band maximum: the highest eigenvalue at or below
// the Fermi energy across all kpoints. Ties are broken by the first
// occurrence in ascending kpoint-then-band order.
func (b *BandStructure) VBM() BandEdge {
	best := BandEdge{Eigenvalue: math.Inf(-1)}
	for _, k := range b.kpoints() {
		for _, band := range b.bands(k) {
			e := b.eigenvalues[k][band]
			atFermi := scalar.EqualWithinAbs(e, b.fermiEnergy, fermiTol)
			if (e < b.fermiEnergy || atFermi) && e > best.Eigenvalue {
				best = BandEdge{Kpoint: k, Band: band, Eigenvalue: e}
			}
		}
	}
	return best
}

// CBM returns the conduction band minimum: the lowest eigenvalue strictly
// above the Fermi energy. Same tie-break rule as VBM.
func (b *BandStructure) CBM() BandEdge {
	best := BandEdge{Eigenvalue: math.Inf(1)}
	for _, k := range b.kpoints() {
		for _, band := range b.bands(k) {
			e := b.eigenvalues[k][band]
			if e > b.fermiEnergy && !scalar.EqualWithinAbs(e, b.fermiEnergy, fermiTol) && e < best.Eigenvalue {
				best = BandEdge{Kpoint: k, Band: band, Eigenvalue: e}
			}
		}
	}
	return best
}

// BandGap reports the VBM, the CBM and the gap between them.
func (b *BandStructure) BandGap() GapReport {
	vbm := b.VBM()
	cbm := b.CBM()
	return GapReport{VBM: vbm, CBM: cbm, Gap: cbm.Eigenvalue - vbm.Eigenvalue}
}

// VBMProjection returns, per atom symbol, the orbital-character percentages
// of the band and kpoint where the VBM occurs. The whole table is
// renormalized so that all listed contributions sum to 100.
func (b *BandStructure) VBMProjection() (map[string]map[string]float64, error) {
	edge := b.VBM()
	proj, err := b.characterAt(edge)
	return proj, ErrDecorate(err, "VBMProjection")
}

// CBMProjection is the CBM counterpart of VBMProjection.
func (b *BandStructure) CBMProjection() (map[string]map[string]float64, error) {
	edge := b.CBM()
	proj, err := b.characterAt(edge)
	return proj, ErrDecorate(err, "CBMProjection")
}

func (b *BandStructure) characterAt(edge BandEdge) (map[string]map[string]float64, error) {
	raw, err := b.projector.Projection(edge.Kpoint, edge.Band)
	if err != nil {
		return nil, err
	}
	character := make(map[string]map[string]float64)
	total := 0.0
	for ion, weights := range raw {
		symbol, ok := b.atomsMap[ion]
		if !ok {
			return nil, NewFormatError("", "projection refers to ion %s which is not in the atoms map", ion)
		}
		if character[symbol] == nil {
			character[symbol] = make(map[string]float64)
		}
		for l, w := range weights {
			letter := OrbitalLetter(l)
			if letter == "" {
				return nil, NewFormatError("", "projection of ion %s has more than four orbital channels", ion)
			}
			character[symbol][letter] += w
			total += w
		}
	}
	if total <= 0 {
		return nil, NewFormatError("", "band projection at kpoint %d band %d sums to zero", edge.Kpoint, edge.Band)
	}
	for _, orbitals := range character {
		for letter := range orbitals {
			orbitals[letter] *= 100 / total
		}
	}
	return character, nil
}
