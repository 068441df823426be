/*
 * runner.go, part of minushalf.
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
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/rmera/minushalf"
)

// Runner invokes VASP through mpirun inside a calculation directory. It
// implements minushalf.Runner.
type Runner struct {
	Cores int
	Path  string
}

// NewRunner returns a Runner for the given core count and VASP binary.
// Non-positive cores default to 4, an empty path to "vasp" from the PATH.
func NewRunner(cores int, path string) *Runner {
	if cores <= 0 {
		cores = 4
	}
	if path == "" {
		path = "vasp"
	}
	return &Runner{Cores: cores, Path: path}
}

// Run blocks until VASP exits. Stdout goes to vasp.out in the calculation
// directory; anything on stderr, or a failure to spawn, is an error.
func (r *Runner) Run(workdir string) error {
	out, err := os.Create(filepath.Join(workdir, "vasp.out"))
	if err != nil {
		return minushalf.NewExternalProcessError(r.Path, "cannot create log in %s: %v", workdir, err)
	}
	defer out.Close()
	var stderr bytes.Buffer
	cmd := exec.Command("mpirun", "-np", strconv.Itoa(r.Cores), r.Path)
	cmd.Dir = workdir
	cmd.Stdout = out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return minushalf.NewExternalProcessError(r.Path, "run failed in %s: %v", workdir, err)
	}
	if stderr.Len() > 0 {
		return minushalf.NewExternalProcessError(r.Path, "wrote to stderr in %s: %s", workdir, stderr.String())
	}
	return nil
}
