// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

package report

import (
	"fmt"

	"github.com/holtgrewe/cbqc/fastqc"
	"github.com/holtgrewe/cbqc/internal"
	"github.com/holtgrewe/cbqc/sta"
	"github.com/holtgrewe/cbqc/vcf"
)

// Options control aggregation.
type Options struct {
	Thresholds Thresholds
	Version    string
	Color      bool
	Sample     string
}

// Coverage depths that the report requires in the coverage table.
const (
	Depth10x = 10
	Depth20x = 20
)

// Aggregate combines the parsed artifacts into a report model. Lanes
// keep their order. Zero denominators of derived ratios yield
// NotApplicable; only metrics the report cannot do without fail with
// an *internal.AggregationError, as do missing alignment or variant
// statistics.
func Aggregate(aln *sta.AlignmentStats, lanes []*fastqc.LaneSummary, variants *vcf.Stats, opts Options) (*Model, error) {
	if aln == nil {
		return nil, &internal.AggregationError{Metric: AlignedReads.String(), Reason: "no alignment statistics"}
	}
	if variants == nil {
		return nil, &internal.AggregationError{Metric: "variants", Reason: "no variant statistics"}
	}
	for i, lane := range lanes {
		if lane == nil {
			return nil, &internal.AggregationError{Metric: "lanes", Reason: fmt.Sprintf("no summary for lane %v", i+1)}
		}
	}
	thresholds := opts.Thresholds
	if thresholds == nil {
		thresholds = DefaultThresholds()
	}
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}

	alignment, err := aggregateAlignment(aln, thresholds)
	if err != nil {
		return nil, err
	}

	m := &Model{
		Sample:    opts.Sample,
		Version:   opts.Version,
		Color:     opts.Color,
		Alignment: alignment,
		Lanes:     make([]LaneRow, 0, len(lanes)),
		Variants:  aggregateVariants(variants, aln.TotalBedLength),
		Summaries: append([]*fastqc.LaneSummary(nil), lanes...),
	}
	for _, lane := range lanes {
		row := LaneRow{Filename: lane.Filename}
		for _, c := range fastqc.Checks() {
			row.Verdicts[c] = lane.Verdict(c)
		}
		m.Lanes = append(m.Lanes, row)
	}
	return m, nil
}

func classify(thresholds Thresholds, m Metric, value float64) Classified {
	return Classified{Value: value, Class: thresholds[m].Classify(value)}
}

func aggregateAlignment(aln *sta.AlignmentStats, thresholds Thresholds) (Alignment, error) {
	if aln.Reads <= 0 {
		return Alignment{}, &internal.AggregationError{Metric: AlignedReads.String(), Reason: fmt.Sprintf("%v contains no reads", aln.Filename)}
	}
	if aln.TotalBedLength <= 0 {
		return Alignment{}, &internal.AggregationError{Metric: MeanCoverage.String(), Reason: fmt.Sprintf("target regions of %v are empty", aln.Filename)}
	}
	fraction10x, ok := aln.FractionWithCov[Depth10x]
	if !ok {
		return Alignment{}, &internal.AggregationError{Metric: TargetCoverage10x.String(), Reason: fmt.Sprintf("%v has no coverage fraction for depth %v", aln.Filename, Depth10x)}
	}
	fraction20x, ok := aln.FractionWithCov[Depth20x]
	if !ok {
		return Alignment{}, &internal.AggregationError{Metric: TargetCoverage20x.String(), Reason: fmt.Sprintf("%v has no coverage fraction for depth %v", aln.Filename, Depth20x)}
	}

	alignment := Alignment{
		Stats:           aln,
		AlignedRate:     classify(thresholds, AlignedReads, aln.AlignedRate()),
		MeanCoverage:    classify(thresholds, MeanCoverage, aln.MeanCoverage()),
		Coverage10x:     classify(thresholds, TargetCoverage10x, fraction10x),
		Coverage20x:     classify(thresholds, TargetCoverage20x, fraction20x),
		DuplicationRate: Divide(float64(aln.Duplicates), float64(aln.Reads)),
	}
	for _, depth := range aln.Depths() {
		alignment.Coverage = append(alignment.Coverage, CoverageRow{Depth: depth, Fraction: aln.FractionWithCov[depth]})
	}
	return alignment, nil
}

func aggregateVariants(stats *vcf.Stats, totalBedLength int64) Variants {
	variants := Variants{
		Stats:       stats,
		DbSnpRatio:  Divide(float64(stats.DbSnp), float64(stats.DbSnp+stats.NoDbSnp)),
		HetHomRatio: Divide(float64(stats.Heterozygous), float64(stats.Homozygous)),
		TsTvRatio:   Divide(float64(stats.Transitions), float64(stats.Transversions)),
		SNVsPerKb:   Divide(1000*float64(stats.SNVs), float64(totalBedLength)),
	}
	for _, label := range stats.AnnotationLabels() {
		variants.Annotations = append(variants.Annotations, AnnotationRow{Label: label, Count: stats.Annotation(label)})
	}
	return variants
}
