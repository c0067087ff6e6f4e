// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

package render

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/holtgrewe/cbqc/report"
)

// Fixed chart size, so that the rendered document only depends on the
// model.
const (
	chartWidth  = 6 * vg.Inch
	chartHeight = 3 * vg.Inch
)

type depthTicks []report.CoverageRow

func (rows depthTicks) Ticks(_, _ float64) []plot.Tick {
	ticks := make([]plot.Tick, 0, len(rows))
	for _, row := range rows {
		ticks = append(ticks, plot.Tick{Value: float64(row.Depth), Label: fmt.Sprintf("%dx", row.Depth)})
	}
	return ticks
}

// coverageChart renders the fraction of target bases per minimum depth
// as an SVG element. The XML prolog is removed so that the result can
// be inlined into the HTML document. Charts of an empty table are
// empty.
func coverageChart(rows []report.CoverageRow, colored bool) (string, error) {
	if len(rows) == 0 {
		return "", nil
	}
	p := plot.New()
	p.Title.Text = "Target coverage"
	p.X.Label.Text = "Minimum depth"
	p.Y.Label.Text = "Fraction of target bases (%)"
	p.X.Tick.Marker = depthTicks(rows)
	p.Y.Min = 0
	p.Y.Max = 100

	points := make(plotter.XYs, len(rows))
	for i, row := range rows {
		points[i].X = float64(row.Depth)
		points[i].Y = 100 * row.Fraction
	}
	line, err := plotter.NewLine(points)
	if err != nil {
		return "", err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = lineColor(colored)
	p.Add(line, plotter.NewGrid())

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return "", err
	}
	scatter.GlyphStyle.Color = lineColor(colored)
	p.Add(scatter)

	writer, err := p.WriterTo(chartWidth, chartHeight, "svg")
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err = writer.WriteTo(&buf); err != nil {
		return "", err
	}
	svg := buf.String()
	if start := strings.Index(svg, "<svg"); start > 0 {
		svg = svg[start:]
	}
	return svg, nil
}

func lineColor(colored bool) color.Color {
	if colored {
		return colorRGBA(50, 100, 200)
	}
	return colorRGBA(0, 0, 0)
}

func colorRGBA(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
