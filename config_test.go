/*
 * config_test.go, part of minushalf.
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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYaml(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "minushalf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfigDefaults(t *testing.T) {
	//A missing file yields the documented defaults.
	cfg, err := ReadConfig(filepath.Join(t.TempDir(), "minushalf.yaml"))
	require.NoError(t, err)
	assert.Equal(t, string(VASP), cfg.Software)
	assert.Equal(t, 4, cfg.Vasp.NumberOfCores)
	assert.Equal(t, "vasp", cfg.Vasp.Path)
	assert.Equal(t, "pb", cfg.AtomicProgram.ExchangeCorrelationCode)
	assert.Equal(t, "ae", cfg.AtomicProgram.CalculationCode)
	assert.Equal(t, 100, cfg.AtomicProgram.MaxIterations)
	assert.Equal(t, "v", cfg.Correction.CorrectionCode)
	assert.Equal(t, "minushalf_potfiles", cfg.Correction.PotfilesFolder)
	assert.InDelta(t, 1.0, cfg.Correction.Amplitude, 1e-12)
	assert.False(t, cfg.CorrectsConduction())
	assert.False(t, cfg.Fractionary())
}

func TestConfigPartiallyFilled(t *testing.T) {
	path := writeYaml(t, `
vasp:
  number_of_cores: 6
  path: ../vasp
atomic_program:
  exchange_correlation_code: wi
  max_iterations: 200
`)
	cfg, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Vasp.NumberOfCores)
	assert.Equal(t, "../vasp", cfg.Vasp.Path)
	assert.Equal(t, "wi", cfg.AtomicProgram.ExchangeCorrelationCode)
	assert.Equal(t, "ae", cfg.AtomicProgram.CalculationCode)
	assert.Equal(t, 200, cfg.AtomicProgram.MaxIterations)
	//Untouched sections keep their defaults.
	assert.Equal(t, "v", cfg.Correction.CorrectionCode)
	assert.Equal(t, "minushalf_potfiles", cfg.Correction.PotfilesFolder)
}

func TestConfigFilledOut(t *testing.T) {
	path := writeYaml(t, `
software: VASP
vasp:
  number_of_cores: 6
  path: ../vasp
atomic_program:
  exchange_correlation_code: wi
  max_iterations: 200
correction:
  correction_code: vf
  potfiles_folder: ../potcar
  amplitude: 2.5
  tolerance: 0.05
`)
	cfg, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "vf", cfg.Correction.CorrectionCode)
	assert.Equal(t, "../potcar", cfg.Correction.PotfilesFolder)
	assert.InDelta(t, 2.5, cfg.Correction.Amplitude, 1e-12)
	assert.InDelta(t, 0.05, cfg.Correction.Tolerance, 1e-12)
	assert.True(t, cfg.Fractionary())
	assert.False(t, cfg.CorrectsConduction())
}

func TestConfigInvalidSoftware(t *testing.T) {
	path := writeYaml(t, "software: ABINIT\n")
	_, err := ReadConfig(path)
	require.Error(t, err)
	assert.True(t, IsKind(err, ValidationErr))
}

func TestConfigInvalidCorrectionCode(t *testing.T) {
	path := writeYaml(t, "correction:\n  correction_code: x\n")
	_, err := ReadConfig(path)
	require.Error(t, err)
	assert.True(t, IsKind(err, ValidationErr))
}

func TestConfigInvalidXCCode(t *testing.T) {
	path := writeYaml(t, "atomic_program:\n  exchange_correlation_code: zz\n")
	_, err := ReadConfig(path)
	require.Error(t, err)
	assert.True(t, IsKind(err, ValidationErr))
}
