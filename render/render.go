// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

// Package render turns a report model into a single self-contained
// HTML document.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/holtgrewe/cbqc/fastqc"
	"github.com/holtgrewe/cbqc/report"
)

//go:embed templates/report.html.tmpl
var templates embed.FS

var reportTemplate = template.Must(template.New("report.html.tmpl").ParseFS(templates, "templates/report.html.tmpl"))

// NotApplicable is printed in place of ratios with a zero denominator.
const NotApplicable = "N/A"

var counts = message.NewPrinter(language.English)

// Count formats an integer count with grouping separators.
func Count(n int64) string {
	return counts.Sprintf("%d", n)
}

// Percentage formats a fraction in [0,1] as a percentage with one
// decimal.
func Percentage(fraction float64) string {
	return fmt.Sprintf("%.1f%%", 100*fraction)
}

// Multiple formats a coverage multiple with two decimals.
func Multiple(x float64) string {
	return fmt.Sprintf("%.2fx", x)
}

// RatioString formats a ratio with the given number of decimals.
func RatioString(r report.Ratio, decimals int) string {
	if !r.Valid {
		return NotApplicable
	}
	return fmt.Sprintf("%.*f", decimals, r.Value)
}

// RatePercentage formats a ratio as a percentage.
func RatePercentage(r report.Ratio) string {
	if !r.Valid {
		return NotApplicable
	}
	return Percentage(r.Value)
}

type cell struct {
	Class string
	Mark  string
	Text  string
}

type metricRow struct {
	Label string
	Value string
	Cell  cell
}

type coverageRow struct {
	Stripe   string
	Depth    string
	Fraction string
}

type laneRow struct {
	Stripe   string
	Filename string
	Cells    []cell
}

type valueRow struct {
	Label string
	Value string
}

type annotationRow struct {
	Stripe string
	Label  string
	Count  string
}

type view struct {
	Sample      string
	Version     string
	Color       bool
	Alignment   []metricRow
	Coverage    []coverageRow
	Chart       template.HTML
	Checks      []string
	Lanes       []laneRow
	Variants    []valueRow
	Annotations []annotationRow
}

func stripe(i int) string {
	if i%2 == 0 {
		return "odd"
	}
	return "even"
}

var (
	classMarks   = [...]string{report.Bad: "✘", report.Warning: "!", report.Good: "✔"}
	verdictMarks = [...]string{fastqc.Unknown: "?", fastqc.Pass: "✔", fastqc.Warn: "!", fastqc.Fail: "✘"}
	verdictClass = [...]string{fastqc.Unknown: "unknown", fastqc.Pass: "good", fastqc.Warn: "warn", fastqc.Fail: "bad"}
)

func classCell(color bool, c report.Class, text string) cell {
	if color {
		return cell{Class: c.String(), Text: text}
	}
	return cell{Mark: classMarks[c], Text: text}
}

func verdictCell(color bool, v fastqc.Verdict) cell {
	if color {
		return cell{Class: verdictClass[v], Text: v.String()}
	}
	return cell{Mark: verdictMarks[v], Text: v.String()}
}

func newView(m *report.Model) (*view, error) {
	aln := &m.Alignment
	stats := aln.Stats
	v := &view{
		Sample:  m.Sample,
		Version: m.Version,
		Color:   m.Color,
		Alignment: []metricRow{
			{Label: "Total reads", Value: Count(stats.Reads)},
			{Label: "Aligned reads", Value: Count(stats.ReadsAligned), Cell: classCell(m.Color, aln.AlignedRate.Class, Percentage(aln.AlignedRate.Value))},
			{Label: "Unaligned reads", Value: Count(stats.ReadsUnaligned)},
			{Label: "Duplicates", Value: Count(stats.Duplicates), Cell: cell{Text: RatePercentage(aln.DuplicationRate)}},
			{Label: "Mapped nucleotides", Value: Count(stats.MappedNucleotides)},
			{Label: "Target length", Value: Count(stats.TotalBedLength)},
			{Label: "Mean target coverage", Cell: classCell(m.Color, aln.MeanCoverage.Class, Multiple(aln.MeanCoverage.Value))},
			{Label: "Target bases with at least 10x", Cell: classCell(m.Color, aln.Coverage10x.Class, Percentage(aln.Coverage10x.Value))},
			{Label: "Target bases with at least 20x", Cell: classCell(m.Color, aln.Coverage20x.Class, Percentage(aln.Coverage20x.Value))},
		},
	}

	for i, row := range aln.Coverage {
		v.Coverage = append(v.Coverage, coverageRow{
			Stripe:   stripe(i),
			Depth:    fmt.Sprintf("%dx", row.Depth),
			Fraction: Percentage(row.Fraction),
		})
	}
	chart, err := coverageChart(aln.Coverage, m.Color)
	if err != nil {
		return nil, fmt.Errorf("rendering coverage chart: %w", err)
	}
	v.Chart = template.HTML(chart)

	for _, c := range fastqc.Checks() {
		v.Checks = append(v.Checks, c.Title())
	}
	for i, lane := range m.Lanes {
		row := laneRow{Stripe: stripe(i), Filename: lane.Filename}
		for _, c := range fastqc.Checks() {
			row.Cells = append(row.Cells, verdictCell(m.Color, lane.Verdicts[c]))
		}
		v.Lanes = append(v.Lanes, row)
	}

	variants := &m.Variants
	vstats := variants.Stats
	v.Variants = []valueRow{
		{Label: "SNVs", Value: Count(vstats.SNVs)},
		{Label: "Insertions", Value: Count(vstats.Insertions)},
		{Label: "Deletions", Value: Count(vstats.Deletions)},
		{Label: "SNVs in dbSNP", Value: Count(vstats.DbSnp)},
		{Label: "SNVs not in dbSNP", Value: Count(vstats.NoDbSnp)},
		{Label: "dbSNP ratio", Value: RatioString(variants.DbSnpRatio, 4)},
		{Label: "Heterozygous", Value: Count(vstats.Heterozygous)},
		{Label: "Homozygous", Value: Count(vstats.Homozygous)},
		{Label: "Het/hom ratio", Value: RatioString(variants.HetHomRatio, 2)},
		{Label: "Transitions", Value: Count(vstats.Transitions)},
		{Label: "Transversions", Value: Count(vstats.Transversions)},
		{Label: "Ts/Tv ratio", Value: RatioString(variants.TsTvRatio, 2)},
		{Label: "SNVs per kb of target", Value: RatioString(variants.SNVsPerKb, 4)},
	}
	for i, row := range variants.Annotations {
		v.Annotations = append(v.Annotations, annotationRow{Stripe: stripe(i), Label: row.Label, Count: Count(row.Count)})
	}
	return v, nil
}

// RenderTo writes the HTML document for the given model to w.
func RenderTo(w io.Writer, m *report.Model) error {
	v, err := newView(m)
	if err != nil {
		return err
	}
	return reportTemplate.Execute(w, v)
}

// Render returns the HTML document for the given model. Rendering the
// same model twice yields identical bytes.
func Render(m *report.Model) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderTo(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
