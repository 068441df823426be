/*
 * atomicpot.go, part of minushalf.
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
	"github.com/rmera/minushalf"
)

// AtomicPotential joins the two all-electron potentials of an atom (the
// ground state and the occupation-shifted one) with the DFT-side potential
// file they correct. All three must live on radial grids of the same
// length.
type AtomicPotential struct {
	Vtotal    *Vtotal
	VtotalOcc *Vtotal
	File      minushalf.PotentialFile
}

// NewAtomicPotential validates the grid lengths and assembles an
// AtomicPotential.
func NewAtomicPotential(vtotal, vtotalOcc *Vtotal, file minushalf.PotentialFile) (*AtomicPotential, error) {
	if len(vtotal.Down) != len(vtotal.Radius) {
		return nil, minushalf.NewValidationError(
			"ground-state potential and radius grid disagree in length: %d vs %d",
			len(vtotal.Down), len(vtotal.Radius))
	}
	if len(vtotalOcc.Down) != len(vtotal.Down) {
		return nil, minushalf.NewValidationError(
			"occupation-shifted potential and ground-state potential disagree in length: %d vs %d",
			len(vtotalOcc.Down), len(vtotal.Down))
	}
	if len(file.Potential()) != len(vtotal.Down) {
		return nil, minushalf.NewValidationError(
			"potential file %s and atomic grid disagree in length: %d vs %d",
			file.Name(), len(file.Potential()), len(vtotal.Down))
	}
	return &AtomicPotential{Vtotal: vtotal, VtotalOcc: vtotalOcc, File: file}, nil
}

// CorrectPotential returns the DFT-side potential corrected at the given
// cut radius: inside the cut it is untouched, beyond it the occupation
// difference Vocc-Vae, weighted by the trimming kernel and the amplitude,
// is subtracted for a valence correction or added for a conduction one.
func (ap *AtomicPotential) CorrectPotential(cut, amplitude float64, conduction bool) []float64 {
	sign := -1.0
	if conduction {
		sign = 1.0
	}
	base := ap.File.Potential()
	corrected := make([]float64, len(base))
	for i, v := range base {
		delta := ap.VtotalOcc.Down[i] - ap.Vtotal.Down[i]
		corrected[i] = v + sign*amplitude*delta*trimFactor(ap.Vtotal.Radius[i], cut)
	}
	return corrected
}

// CorrectedLines serializes the potential file with the potential block
// replaced by the corrected curve.
func (ap *AtomicPotential) CorrectedLines(cut, amplitude float64, conduction bool) ([]string, error) {
	lines, err := ap.File.CorrectedLines(ap.CorrectPotential(cut, amplitude, conduction))
	return lines, minushalf.ErrDecorate(err, "CorrectedLines")
}
