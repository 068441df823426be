/*
 * electronicdata.go, part of minushalf.
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

//Ground-state electronic distributions per element, in the line format of
//the INP deck: first the core/valence orbital counts, then one line per
//valence orbital with n, l and occupation. The core is the preceding
//noble-gas configuration; filled d shells beyond it stay in the valence.
//Known Aufbau exceptions (Cr, Cu, Nb, Mo, Ru, Rh, Pd, Ag) are listed with
//their actual ground states.
var electronicDistribution = map[string][]string{
	"H":  {"0 1", "1 0 1.00"},
	"He": {"0 1", "1 0 2.00"},
	"Li": {"1 1", "2 0 1.00"},
	"Be": {"1 1", "2 0 2.00"},
	"B":  {"1 2", "2 0 2.00", "2 1 1.00"},
	"C":  {"1 2", "2 0 2.00", "2 1 2.00"},
	"N":  {"1 2", "2 0 2.00", "2 1 3.00"},
	"O":  {"1 2", "2 0 2.00", "2 1 4.00"},
	"F":  {"1 2", "2 0 2.00", "2 1 5.00"},
	"Ne": {"1 2", "2 0 2.00", "2 1 6.00"},
	"Na": {"3 1", "3 0 1.00"},
	"Mg": {"3 1", "3 0 2.00"},
	"Al": {"3 2", "3 0 2.00", "3 1 1.00"},
	"Si": {"3 2", "3 0 2.00", "3 1 2.00"},
	"P":  {"3 2", "3 0 2.00", "3 1 3.00"},
	"S":  {"3 2", "3 0 2.00", "3 1 4.00"},
	"Cl": {"3 2", "3 0 2.00", "3 1 5.00"},
	"Ar": {"3 2", "3 0 2.00", "3 1 6.00"},
	"K":  {"5 1", "4 0 1.00"},
	"Ca": {"5 1", "4 0 2.00"},
	"Sc": {"5 2", "3 2 1.00", "4 0 2.00"},
	"Ti": {"5 2", "3 2 2.00", "4 0 2.00"},
	"V":  {"5 2", "3 2 3.00", "4 0 2.00"},
	"Cr": {"5 2", "3 2 5.00", "4 0 1.00"},
	"Mn": {"5 2", "3 2 5.00", "4 0 2.00"},
	"Fe": {"5 2", "3 2 6.00", "4 0 2.00"},
	"Co": {"5 2", "3 2 7.00", "4 0 2.00"},
	"Ni": {"5 2", "3 2 8.00", "4 0 2.00"},
	"Cu": {"5 2", "3 2 10.00", "4 0 1.00"},
	"Zn": {"5 2", "3 2 10.00", "4 0 2.00"},
	"Ga": {"5 3", "3 2 10.00", "4 0 2.00", "4 1 1.00"},
	"Ge": {"5 3", "3 2 10.00", "4 0 2.00", "4 1 2.00"},
	"As": {"5 3", "3 2 10.00", "4 0 2.00", "4 1 3.00"},
	"Se": {"5 3", "3 2 10.00", "4 0 2.00", "4 1 4.00"},
	"Br": {"5 3", "3 2 10.00", "4 0 2.00", "4 1 5.00"},
	"Kr": {"5 3", "3 2 10.00", "4 0 2.00", "4 1 6.00"},
	"Rb": {"8 1", "5 0 1.00"},
	"Sr": {"8 1", "5 0 2.00"},
	"Y":  {"8 2", "4 2 1.00", "5 0 2.00"},
	"Zr": {"8 2", "4 2 2.00", "5 0 2.00"},
	"Nb": {"8 2", "4 2 4.00", "5 0 1.00"},
	"Mo": {"8 2", "4 2 5.00", "5 0 1.00"},
	"Tc": {"8 2", "4 2 5.00", "5 0 2.00"},
	"Ru": {"8 2", "4 2 7.00", "5 0 1.00"},
	"Rh": {"8 2", "4 2 8.00", "5 0 1.00"},
	"Pd": {"8 1", "4 2 10.00"},
	"Ag": {"8 2", "4 2 10.00", "5 0 1.00"},
	"Cd": {"8 2", "4 2 10.00", "5 0 2.00"},
	"In": {"8 3", "4 2 10.00", "5 0 2.00", "5 1 1.00"},
	"Sn": {"8 3", "4 2 10.00", "5 0 2.00", "5 1 2.00"},
	"Sb": {"8 3", "4 2 10.00", "5 0 2.00", "5 1 3.00"},
	"Te": {"8 3", "4 2 10.00", "5 0 2.00", "5 1 4.00"},
	"I":  {"8 3", "4 2 10.00", "5 0 2.00", "5 1 5.00"},
	"Xe": {"8 3", "4 2 10.00", "5 0 2.00", "5 1 6.00"},
}
