/*
 * plot.go, part of minushalf.
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

//Package potplot draws radial-potential curves, mainly to eyeball the
//effect of a cut radius before committing to a long optimization.
package potplot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/rmera/minushalf"
)

func basicPotentialPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "r (a0)"
	p.Y.Label.Text = "V(r)"
	p.Add(plotter.NewGrid())
	return p
}

func curve(radius, values []float64) (plotter.XYs, error) {
	if len(radius) != len(values) {
		return nil, minushalf.NewValidationError(
			"radius grid and potential disagree in length: %d vs %d", len(radius), len(values))
	}
	xys := make(plotter.XYs, len(radius))
	for i := range radius {
		xys[i].X = radius[i]
		xys[i].Y = values[i]
	}
	return xys, nil
}

// Plot draws the uncorrected and corrected potentials on the same radius
// grid and saves the figure as <plotname>.png. The corrected curve may be
// nil, leaving a single-curve plot.
func Plot(radius, raw, corrected []float64, title, plotname string) error {
	p := basicPotentialPlot(title)
	rawXYs, err := curve(radius, raw)
	if err != nil {
		return minushalf.ErrDecorate(err, "Plot")
	}
	rawLine, err := plotter.NewLine(rawXYs)
	if err != nil {
		return err
	}
	rawLine.Color = color.RGBA{B: 255, A: 255}
	p.Add(rawLine)
	p.Legend.Add("uncorrected", rawLine)
	if corrected != nil {
		corrXYs, err := curve(radius, corrected)
		if err != nil {
			return minushalf.ErrDecorate(err, "Plot")
		}
		corrLine, err := plotter.NewLine(corrXYs)
		if err != nil {
			return err
		}
		corrLine.Color = color.RGBA{R: 255, A: 255}
		corrLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(corrLine)
		p.Legend.Add("corrected", corrLine)
	}
	filename := fmt.Sprintf("%s.png", plotname)
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}
