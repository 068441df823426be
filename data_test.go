/*
 * data_test.go, part of minushalf.
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

import "testing"

//TestXCCodes exercises every two-letter functional code with every
//combination of the relativistic prefix and the spin-polarized suffix.
func TestXCCodes(Te *testing.T) {
	bases := []string{"ca", "wi", "hl", "gl", "bh", "pb", "rp", "rv", "bl"}
	prefixes := []string{"", "r"}
	suffixes := []string{"", "s"}
	for _, b := range bases {
		for _, p := range prefixes {
			for _, s := range suffixes {
				code := p + b + s
				if _, err := NewXCCode(code); err != nil {
					Te.Errorf("valid code %q rejected: %v", code, err)
				}
			}
		}
	}
	invalid := []string{"", "c", "cax", "xx", "rcax", "pbsr", "PB", "ca s", "rrcas", "pbb"}
	for _, code := range invalid {
		if _, err := NewXCCode(code); err == nil {
			Te.Errorf("invalid code %q accepted", code)
		} else if !IsKind(err, ValidationErr) {
			Te.Errorf("wrong error kind for %q: %v", code, err)
		}
	}
}

func TestCalcCode(Te *testing.T) {
	if _, err := NewCalcCode("ae"); err != nil {
		Te.Error(err)
	}
	for _, code := range []string{"", "AE", "aee", "pg"} {
		if _, err := NewCalcCode(code); err == nil {
			Te.Errorf("invalid calculation code %q accepted", code)
		}
	}
}

func TestPeriodicTable(Te *testing.T) {
	z, err := AtomicNumber("ga")
	if err != nil {
		Te.Error(err)
	}
	if z != 31 {
		Te.Errorf("wrong atomic number for Ga: %d", z)
	}
	if _, err := AtomicNumber("Xx"); !IsKind(err, ValidationErr) {
		Te.Errorf("unknown element accepted: %v", err)
	}
	if !ValidSymbol("N") || ValidSymbol("Q") {
		Te.Error("ValidSymbol misclassifies")
	}
}

func TestOrbitalLetters(Te *testing.T) {
	for l, want := range map[int]string{0: "s", 1: "p", 2: "d", 3: "f"} {
		if OrbitalLetter(l) != want {
			Te.Errorf("letter for l=%d: got %q", l, OrbitalLetter(l))
		}
		got, err := SecondaryQuantumNumber(want)
		if err != nil || got != l {
			Te.Errorf("quantum number for %q: got %d, %v", want, got, err)
		}
	}
	if OrbitalLetter(4) != "" {
		Te.Error("l=4 should have no letter")
	}
	if _, err := SecondaryQuantumNumber("g"); err == nil {
		Te.Error("letter g should be rejected")
	}
}
