/*
 * interfaces.go, part of minushalf.
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

// SoftwareFactory is the capability interface over a periodic DFT code.
// Every getter takes the directory of a finished calculation and parses the
// corresponding output file. Supporting a new DFT code means writing a new
// implementer; nothing else in the module changes.
type SoftwareFactory interface {

	//GetEigenvalues returns the eigenvalues of a calculation keyed by
	//kpoint index and band index, both 1-based.
	GetEigenvalues(basePath string) (map[int]map[int]float64, error)

	//GetFermiEnergy returns the energy of the Fermi level, in eV.
	GetFermiEnergy(basePath string) (float64, error)

	//GetAtomsMap maps the 1-based ion index, as a string, to the
	//chemical symbol of the ion.
	GetAtomsMap(basePath string) (map[string]string, error)

	//GetNumberOfBands returns the number of bands used in the calculation.
	GetNumberOfBands(basePath string) (int, error)

	//GetNumberOfKpoints returns the number of kpoints used in the calculation.
	GetNumberOfKpoints(basePath string) (int, error)

	//GetBandProjection returns the orbital projections of the bands.
	GetBandProjection(basePath string) (BandProjector, error)

	//GetPotential parses the pseudopotential file with the given name.
	GetPotential(basePath, filename string) (PotentialFile, error)

	//PotentialFilename returns the name the DFT code gives to its
	//pseudopotential file (e.g. "POTCAR").
	PotentialFilename() string
}

// Runner performs a blocking invocation of an external electronic-structure
// program inside the given directory. There is no timeout: a hanging program
// hangs the caller. A non-empty error stream counts as failure.
type Runner interface {
	Run(workdir string) error
}

// BandProjector gives, for a band at a kpoint, the contribution of each
// orbital of each ion. The returned map is keyed like the atoms map (1-based
// ion index as a string) and each value holds the s, p, d and f weights.
type BandProjector interface {
	Projection(kpoint, band int) (map[string][]float64, error)
}

// PotentialFile is the DFT-side pseudopotential file of a single atom. The
// potential table lives on the same radial grid as the atomic solver output,
// so corrected values can be written back index by index.
type PotentialFile interface {

	//Name of the file in the DFT code's convention.
	Name() string

	//Potential returns the radial potential table.
	Potential() []float64

	//CorrectedLines re-emits the whole file with the potential table
	//replaced by the corrected values, in the exact column format the
	//DFT code re-parses.
	CorrectedLines(corrected []float64) ([]string, error)
}

// Error is the interface for errors that all packages in this module
// implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
// If passed an empty string, Decorate just returns the current decoration.
type Error interface {
	Error() string
	Decorate(string) []string
}
