/*
 * errors.go, part of minushalf.
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

import "fmt"

// Kind classifies the failures of the workflow. Every kind aborts the
// current correction run; none is retried.
type Kind int

const (
	//FormatErr means a malformed external file.
	FormatErr Kind = iota + 1
	//ValidationErr means an invalid configuration value, detected at
	//construction time.
	ValidationErr
	//OccupationErr means no eligible orbital exists for a requested
	//occupation shift.
	OccupationErr
	//ExternalProcessErr means a spawned solver wrote to its error stream
	//or could not be started.
	ExternalProcessErr
	//MissingArtifactErr means an expected output file is absent after a
	//solver run.
	MissingArtifactErr
)

func (k Kind) String() string {
	switch k {
	case FormatErr:
		return "format"
	case ValidationErr:
		return "validation"
	case OccupationErr:
		return "occupation"
	case ExternalProcessErr:
		return "external process"
	case MissingArtifactErr:
		return "missing artifact"
	}
	return "unknown"
}

type coreError struct {
	kind     Kind
	message  string
	filename string //the file that has problems, or empty string if none.
	deco     []string
}

func (err *coreError) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("minushalf: %s error: %s", err.kind, err.message)
	}
	return fmt.Sprintf("minushalf: %s error in %s: %s", err.kind, err.filename, err.message)
}

func (err *coreError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err *coreError) Kind() Kind { return err.kind }

func (err *coreError) FileName() string { return err.filename }

// NewError builds an Error of the given kind. filename may be empty.
func NewError(kind Kind, filename, format string, a ...interface{}) Error {
	return &coreError{kind: kind, message: fmt.Sprintf(format, a...), filename: filename}
}

func NewFormatError(filename, format string, a ...interface{}) Error {
	return NewError(FormatErr, filename, format, a...)
}

func NewValidationError(format string, a ...interface{}) Error {
	return NewError(ValidationErr, "", format, a...)
}

func NewOccupationError(format string, a ...interface{}) Error {
	return NewError(OccupationErr, "", format, a...)
}

func NewExternalProcessError(program, format string, a ...interface{}) Error {
	return NewError(ExternalProcessErr, program, format, a...)
}

func NewMissingArtifactError(filename, format string, a ...interface{}) Error {
	return NewError(MissingArtifactErr, filename, format, a...)
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, k Kind) bool {
	ce, ok := err.(interface{ Kind() Kind })
	return ok && ce.Kind() == k
}

// ErrDecorate adds the caller tag to err when err supports decoration and
// returns err unchanged otherwise.
func ErrDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Error); ok {
		e.Decorate(caller)
	}
	return err
}
