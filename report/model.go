// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

// Package report aggregates the parsed run artifacts into the data
// model rendered by package render. Aggregation is a pure function of
// its inputs.
package report

import (
	"github.com/holtgrewe/cbqc/fastqc"
	"github.com/holtgrewe/cbqc/sta"
	"github.com/holtgrewe/cbqc/vcf"
)

// Ratio is a derived ratio that is not applicable when its
// denominator is zero. Invalid ratios render as "N/A".
type Ratio struct {
	Value float64
	Valid bool
}

// NotApplicable is the ratio for a zero denominator.
var NotApplicable = Ratio{}

// Divide returns num/den, or NotApplicable if den is zero.
func Divide(num, den float64) Ratio {
	if den == 0 {
		return NotApplicable
	}
	return Ratio{Value: num / den, Valid: true}
}

// Classified is a metric value with its traffic-light class.
type Classified struct {
	Value float64
	Class Class
}

// CoverageRow is one depth of the coverage table.
type CoverageRow struct {
	Depth    int
	Fraction float64
}

// LaneRow holds the verdicts of one lane, one per fastqc.Check in
// report order.
type LaneRow struct {
	Filename string
	Verdicts [fastqc.NumChecks]fastqc.Verdict
}

// AnnotationRow is one effect annotation and its count.
type AnnotationRow struct {
	Label string
	Count int64
}

// Alignment holds the alignment metrics.
type Alignment struct {
	Stats *sta.AlignmentStats

	AlignedRate     Classified
	MeanCoverage    Classified
	Coverage10x     Classified
	Coverage20x     Classified
	DuplicationRate Ratio

	Coverage []CoverageRow
}

// Variants holds the variant-call metrics.
type Variants struct {
	Stats *vcf.Stats

	DbSnpRatio  Ratio
	HetHomRatio Ratio
	TsTvRatio   Ratio
	SNVsPerKb   Ratio
	Annotations []AnnotationRow
}

// Model is the complete input of the renderer. It is built once by
// Aggregate and must not be modified afterwards.
type Model struct {
	Sample  string
	Version string
	Color   bool

	Alignment Alignment
	Lanes     []LaneRow
	Variants  Variants

	// Summaries are the parsed lane archives, in the same order as
	// Lanes.
	Summaries []*fastqc.LaneSummary
}
