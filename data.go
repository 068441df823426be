/*
 * data.go, part of minushalf.
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
	"regexp"
	"sort"
	"strings"
)

// XCCode is a validated exchange-correlation functional code in the notation
// of the atomic all-electron solver: one of the nine two-letter codes ca, wi,
// hl, gl, bh, pb, rp and rv and bl, optionally prefixed with "r"
// (relativistic) and/or suffixed with "s" (spin-polarized).
type XCCode string

var xcRegexp = regexp.MustCompile(`^r?(ca|wi|hl|gl|bh|pb|rp|rv|bl)s?$`)

// NewXCCode validates code and returns it as an XCCode. An invalid instance
// is never constructed.
func NewXCCode(code string) (XCCode, error) {
	if !xcRegexp.MatchString(code) {
		return "", NewValidationError("%q is not a valid exchange-correlation code", code)
	}
	return XCCode(code), nil
}

// CalcCode is the calculation code of the atomic solver input deck. The only
// supported value is "ae" (all electrons).
type CalcCode string

func NewCalcCode(code string) (CalcCode, error) {
	if code != "ae" {
		return "", NewValidationError("%q is not a valid calculation code, only \"ae\" is supported", code)
	}
	return CalcCode(code), nil
}

// Software identifies a supported periodic DFT code.
type Software string

const VASP Software = "VASP"

func NewSoftware(name string) (Software, error) {
	if strings.ToUpper(name) != string(VASP) {
		return "", NewValidationError("software %q is not supported", name)
	}
	return VASP, nil
}

//The orbital letters in order of angular momentum quantum number.
var orbitalLetters = [4]string{"s", "p", "d", "f"}

var angularMomentum = map[string]int{"s": 0, "p": 1, "d": 2, "f": 3}

// OrbitalLetter returns the spectroscopic letter for the angular momentum
// quantum number l, or an empty string if l is out of the s..f range.
func OrbitalLetter(l int) string {
	if l < 0 || l >= len(orbitalLetters) {
		return ""
	}
	return orbitalLetters[l]
}

// SecondaryQuantumNumber returns the angular momentum quantum number for an
// orbital letter.
func SecondaryQuantumNumber(letter string) (int, error) {
	l, ok := angularMomentum[strings.ToLower(letter)]
	if !ok {
		return 0, NewValidationError("%q is not an orbital letter", letter)
	}
	return l, nil
}

// CapitalizeSymbol normalizes a chemical symbol the way the atomic solver
// expects it: first letter upper case, the rest lower case.
func CapitalizeSymbol(symbol string) string {
	if symbol == "" {
		return symbol
	}
	return strings.ToUpper(symbol[:1]) + strings.ToLower(symbol[1:])
}

// sortedOrbitals orders orbital letters by angular momentum, so that plans
// and reports are deterministic.
func sortedOrbitals(letters []string) []string {
	out := make([]string, len(letters))
	copy(out, letters)
	sort.Slice(out, func(i, j int) bool {
		return angularMomentum[out[i]] < angularMomentum[out[j]]
	})
	return out
}
