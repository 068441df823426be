/*
 * factory.go, part of minushalf.
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
	"os"
	"path/filepath"

	"github.com/rmera/minushalf"
)

// Factory implements minushalf.SoftwareFactory over the output files of a
// finished VASP calculation directory.
type Factory struct{}

// NewFactory returns a VASP capability factory.
func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) GetEigenvalues(basePath string) (map[int]map[int]float64, error) {
	ev, err := ReadEigenval(filepath.Join(basePath, "EIGENVAL"))
	if err != nil {
		return nil, minushalf.ErrDecorate(err, "GetEigenvalues")
	}
	return ev.Eigenvalues, nil
}

func (f *Factory) GetFermiEnergy(basePath string) (float64, error) {
	vr, err := ReadVasprun(filepath.Join(basePath, "vasprun.xml"))
	if err != nil {
		return 0, minushalf.ErrDecorate(err, "GetFermiEnergy")
	}
	return vr.FermiEnergy, nil
}

func (f *Factory) GetAtomsMap(basePath string) (map[string]string, error) {
	vr, err := ReadVasprun(filepath.Join(basePath, "vasprun.xml"))
	if err != nil {
		return nil, minushalf.ErrDecorate(err, "GetAtomsMap")
	}
	return vr.AtomsMap, nil
}

func (f *Factory) GetNumberOfBands(basePath string) (int, error) {
	ev, err := ReadEigenval(filepath.Join(basePath, "EIGENVAL"))
	if err != nil {
		return 0, minushalf.ErrDecorate(err, "GetNumberOfBands")
	}
	return ev.NumBands, nil
}

func (f *Factory) GetNumberOfKpoints(basePath string) (int, error) {
	ev, err := ReadEigenval(filepath.Join(basePath, "EIGENVAL"))
	if err != nil {
		return 0, minushalf.ErrDecorate(err, "GetNumberOfKpoints")
	}
	return ev.NumKpoints, nil
}

// GetBandProjection reads PROCAR, or PROCAR.gz when the plain file is not
// there.
func (f *Factory) GetBandProjection(basePath string) (minushalf.BandProjector, error) {
	path := filepath.Join(basePath, "PROCAR")
	if _, err := os.Stat(path); err != nil {
		path += ".gz"
	}
	procar, err := ReadProcar(path)
	if err != nil {
		return nil, minushalf.ErrDecorate(err, "GetBandProjection")
	}
	return procar, nil
}

func (f *Factory) GetPotential(basePath, filename string) (minushalf.PotentialFile, error) {
	potcar, err := ReadPotcar(filepath.Join(basePath, filename), filename)
	if err != nil {
		return nil, minushalf.ErrDecorate(err, "GetPotential")
	}
	return potcar, nil
}

// PotentialFilename returns the name VASP gives to its pseudopotential file.
func (f *Factory) PotentialFilename() string {
	return "POTCAR"
}
