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

package atm

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rmera/minushalf"
)

// Runner executes the atomic all-electron solver as an external program.
// It implements minushalf.Runner.
type Runner struct {
	Command string
}

// NewRunner returns a Runner for the given solver command. An empty
// command defaults to "atm" from the PATH.
func NewRunner(command string) *Runner {
	if command == "" {
		command = "atm"
	}
	return &Runner{Command: command}
}

// Run blocks until the solver exits. The solver reads INP from workdir and
// writes its potential files there; its stdout goes to atm.out for later
// inspection. Anything on stderr, or a failure to spawn, is an error.
func (r *Runner) Run(workdir string) error {
	out, err := os.Create(filepath.Join(workdir, "atm.out"))
	if err != nil {
		return minushalf.NewExternalProcessError(r.Command, "cannot create solver log in %s: %v", workdir, err)
	}
	defer out.Close()
	var stderr bytes.Buffer
	cmd := exec.Command(r.Command)
	cmd.Dir = workdir
	cmd.Stdout = out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return minushalf.NewExternalProcessError(r.Command, "atomic solver failed in %s: %v", workdir, err)
	}
	if stderr.Len() > 0 {
		return minushalf.NewExternalProcessError(r.Command, "atomic solver wrote to stderr in %s: %s",
			workdir, stderr.String())
	}
	return nil
}
