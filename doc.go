/*
 * doc.go, part of minushalf.
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

//Package minushalf implements the DFT -1/2 band-gap correction workflow.
//It extracts band structures and orbital projections from the output of
//periodic DFT codes, decides which atoms and orbitals need a half-electron
//self-energy correction, trims the corrected pseudopotentials at an optimal
//cut radius and reports the resulting gap. The actual electronic-structure
//calculations are performed by external programs (an atomic all-electron
//solver and a periodic DFT code) which this package only drives.
package minushalf
