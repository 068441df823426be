/*
 * results_test.go, part of minushalf.
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

const valenceOnlyReport = `--------------------------------------------------
|                MINUSHALF RESULTS               |
--------------------------------------------------
Valence cuts (a0):
  Ag: 1.23
  Br: 2.33
Final gap: 2.334 eV
`

const conductionReport = `--------------------------------------------------
|                MINUSHALF RESULTS               |
--------------------------------------------------
Valence cuts (a0):
  Ag: 1.23
  Br: 2.33
Conduction cuts (a0):
  Ag(p): 1.23
  Br(s): 2.33
Final gap: 2.334 eV
`

func TestResultsOnlyValenceCuts(t *testing.T) {
	res := CutResult{
		ValenceCuts: map[string]float64{"Ag": 1.23, "Br": 2.33},
		Gap:         2.334,
	}
	name := filepath.Join(t.TempDir(), "minushalf_results.dat")
	require.NoError(t, MakeResults(res, name))
	got, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, valenceOnlyReport, string(got))
}

func TestResultsConductionCuts(t *testing.T) {
	res := CutResult{
		ValenceCuts:    map[string]float64{"Ag": 1.23, "Br": 2.33},
		ConductionCuts: map[string]float64{"Ag(p)": 1.23, "Br(s)": 2.33},
		Gap:            2.334,
	}
	name := filepath.Join(t.TempDir(), "minushalf_results.dat")
	require.NoError(t, MakeResults(res, name))
	got, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, conductionReport, string(got))
}
