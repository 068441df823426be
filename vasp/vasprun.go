/*
 * vasprun.go, part of minushalf.
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
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rmera/minushalf"
)

// Vasprun holds the two values minushalf needs from the (large) vasprun.xml
// file: the Fermi energy and the ion-index-to-symbol map.
type Vasprun struct {
	FermiEnergy float64
	AtomsMap    map[string]string
}

// ReadVasprun streams through vasprun.xml with a token walk, so the rest of
// the file is never held in memory. It wants the <i name="efermi"> scalar
// and the <array name="atoms"> table inside <atominfo>, in any order.
func ReadVasprun(path string) (*Vasprun, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, minushalf.NewMissingArtifactError(path, "cannot open vasprun file: %v", err)
	}
	defer file.Close()
	vr := &Vasprun{AtomsMap: make(map[string]string)}
	dec := xml.NewDecoder(file)
	fermiFound := false
	inAtomsArray := false
	ion := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "i":
				if xmlAttr(se, "name") != "efermi" {
					continue
				}
				var value string
				if err := dec.DecodeElement(&value, &se); err != nil {
					return nil, minushalf.NewFormatError(path, "cannot decode the Fermi level: %v", err)
				}
				vr.FermiEnergy, err = strconv.ParseFloat(strings.TrimSpace(value), 64)
				if err != nil {
					return nil, minushalf.NewFormatError(path, "non-numeric Fermi level: %q", value)
				}
				fermiFound = true
			case "array":
				if xmlAttr(se, "name") == "atoms" {
					inAtomsArray = true
				}
			case "rc":
				if !inAtomsArray {
					continue
				}
				var row struct {
					C []string `xml:"c"`
				}
				if err := dec.DecodeElement(&row, &se); err != nil || len(row.C) == 0 {
					return nil, minushalf.NewFormatError(path, "cannot decode an atoms-table row: %v", err)
				}
				ion++
				vr.AtomsMap[fmt.Sprintf("%d", ion)] = strings.TrimSpace(row.C[0])
			}
		case xml.EndElement:
			if se.Name.Local == "array" {
				inAtomsArray = false
			}
		}
	}
	if !fermiFound {
		return nil, minushalf.NewFormatError(path, "no Fermi level in vasprun file")
	}
	if len(vr.AtomsMap) == 0 {
		return nil, minushalf.NewFormatError(path, "no atoms table in vasprun file")
	}
	return vr, nil
}

func xmlAttr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
