// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

// Package sta reads the alignment statistics (.sta) files written by
// the alignment step of the pipeline.
//
// A .sta file starts with a line holding a hash (#) followed by the
// path of the BED file that defines the target regions, followed by
// labelled lines of the form "label:<TAB>value":
//
//	#/path/to/targets.bed
//	reads:	1000
//	reads aligned:	950
//	reads unaligned:	50
//	duplicates:	12
//	duplication rate:	0.012
//	Mapped nucleotides on target:	50000
//	Fraction with cov. >= 10 :	0.95
//	Fraction with cov. >= 20 :	0.90
//
// Labels may appear in any order, and unknown labels are ignored.
package sta

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/shenwei356/xopen"

	"github.com/holtgrewe/cbqc/bed"
	"github.com/holtgrewe/cbqc/internal"
	"github.com/holtgrewe/cbqc/intervals"
)

// AlignmentStats holds the information stored in a .sta file.
type AlignmentStats struct {
	// Filename of the .sta file.
	Filename string
	// Bed is the path to the BED file the statistics refer to.
	Bed string

	Reads          int64
	ReadsAligned   int64
	ReadsUnaligned int64
	Duplicates     int64
	// ReportedDuplicationRate is the duplication rate as printed in
	// the file, or negative if absent.
	ReportedDuplicationRate float64
	// MappedNucleotides is the total number of aligned nucleotides in
	// the target regions.
	MappedNucleotides int64
	// TotalBedLength is the total length of the target regions.
	TotalBedLength int64

	// FractionWithCov maps a coverage depth to the fraction of target
	// positions covered at least that deep.
	FractionWithCov map[int]float64
}

// AlignedRate returns ReadsAligned / Reads.
func (s *AlignmentStats) AlignedRate() float64 {
	return float64(s.ReadsAligned) / float64(s.Reads)
}

// MeanCoverage returns MappedNucleotides / TotalBedLength, or 0 if
// the target length is unknown.
func (s *AlignmentStats) MeanCoverage() float64 {
	if s.TotalBedLength == 0 {
		return 0
	}
	return float64(s.MappedNucleotides) / float64(s.TotalBedLength)
}

// Depths returns the depths of the coverage table in ascending order.
func (s *AlignmentStats) Depths() []int {
	depths := make([]int, 0, len(s.FractionWithCov))
	for depth := range s.FractionWithCov {
		depths = append(depths, depth)
	}
	sort.Ints(depths)
	return depths
}

// ParseOptions control how the target length is determined.
type ParseOptions struct {
	// BedOverride replaces the BED path from the .sta header line.
	BedOverride string
	// MergeOverlaps counts positions covered by overlapping BED
	// regions only once.
	MergeOverlaps bool
}

// Field labels.
const (
	labelReads             = "reads"
	labelReadsAligned      = "reads aligned"
	labelReadsUnaligned    = "reads unaligned"
	labelDuplicates        = "duplicates"
	labelDuplicationRate   = "duplication rate"
	labelMappedNucleotides = "mapped nucleotides on target"
	labelFractionPrefix    = "fraction with cov. >="
	labelCoverage          = "coverage table"
	labelBed               = "BED file"
)

// ParseFile parses the .sta file with the given name, and computes
// the total target length from the BED file it refers to.
func ParseFile(filename string, opts ParseOptions) (stats *AlignmentStats, err error) {
	input, err := xopen.Ropen(filename)
	if err != nil {
		return nil, err
	}
	defer internal.Close(input, &err)

	stats, err = Parse(input, filename)
	if err != nil {
		return nil, err
	}
	if opts.BedOverride != "" {
		stats.Bed = opts.BedOverride
	}
	if stats.Bed == "" {
		return nil, internal.NewParseError(filename, 1, labelBed, "missing target BED file")
	}
	bedPath := resolveBed(stats.Bed, filename)
	regions, err := bed.ParseBed(bedPath)
	if err != nil {
		return nil, internal.NewParseError(filename, 1, labelBed, "cannot read target regions: %v", err)
	}
	if opts.MergeOverlaps {
		stats.TotalBedLength = intervals.Covered(intervals.FromBed(regions))
	} else {
		stats.TotalBedLength = regions.Length()
	}
	return stats, nil
}

// resolveBed returns bedPath as is, unless it is relative and does
// not exist, in which case it is taken relative to the .sta file.
func resolveBed(bedPath, staPath string) string {
	if filepath.IsAbs(bedPath) {
		return bedPath
	}
	if _, err := os.Stat(bedPath); err == nil {
		return bedPath
	}
	return filepath.Join(filepath.Dir(staPath), bedPath)
}

// Parse parses a .sta file from r. The name is used in error
// messages. TotalBedLength is left 0; see ParseFile.
func Parse(r io.Reader, name string) (*AlignmentStats, error) {
	stats := &AlignmentStats{
		Filename:                name,
		ReportedDuplicationRate: -1,
		FractionWithCov:         make(map[int]float64),
	}
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if lineNo == 1 {
				stats.Bed = strings.TrimSpace(line[1:])
			}
			continue
		}
		label, value, ok := splitLine(line)
		if !ok {
			continue
		}
		key := strings.ToLower(label)
		if strings.HasPrefix(key, labelFractionPrefix) {
			depth, err := strconv.Atoi(strings.TrimSpace(key[len(labelFractionPrefix):]))
			if err != nil || depth < 0 {
				return nil, internal.NewParseError(name, lineNo, label, "invalid coverage depth")
			}
			if _, found := stats.FractionWithCov[depth]; found {
				return nil, internal.NewParseError(name, lineNo, label, "duplicate coverage depth %v", depth)
			}
			fraction, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, internal.NewParseError(name, lineNo, label, "%v", err)
			}
			if !(fraction >= 0 && fraction <= 1) {
				return nil, internal.NewParseError(name, lineNo, label, "fraction %v out of range [0,1]", value)
			}
			stats.FractionWithCov[depth] = fraction
			continue
		}
		var target *int64
		switch key {
		case labelReads:
			target = &stats.Reads
		case labelReadsAligned:
			target = &stats.ReadsAligned
		case labelReadsUnaligned:
			target = &stats.ReadsUnaligned
		case labelDuplicates:
			target = &stats.Duplicates
		case labelMappedNucleotides:
			target = &stats.MappedNucleotides
		case labelDuplicationRate:
			rate, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, internal.NewParseError(name, lineNo, label, "%v", err)
			}
			stats.ReportedDuplicationRate = rate
			continue
		default:
			continue
		}
		if seen[key] {
			return nil, internal.NewParseError(name, lineNo, label, "duplicate field")
		}
		seen[key] = true
		count, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, internal.NewParseError(name, lineNo, label, "%v", err)
		}
		if count < 0 {
			return nil, internal.NewParseError(name, lineNo, label, "negative count %v", count)
		}
		*target = count
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %v: %w", name, err)
	}

	for _, required := range []string{labelReads, labelDuplicates, labelMappedNucleotides} {
		if !seen[required] {
			return nil, internal.NewParseError(name, 0, required, "missing required field")
		}
	}
	switch {
	case seen[labelReadsAligned] && !seen[labelReadsUnaligned]:
		stats.ReadsUnaligned = stats.Reads - stats.ReadsAligned
	case !seen[labelReadsAligned] && seen[labelReadsUnaligned]:
		stats.ReadsAligned = stats.Reads - stats.ReadsUnaligned
	case !seen[labelReadsAligned]:
		return nil, internal.NewParseError(name, 0, labelReadsAligned, "missing required field")
	}
	if stats.ReadsAligned > stats.Reads {
		return nil, internal.NewParseError(name, 0, labelReadsAligned, "more aligned reads (%v) than reads (%v)", stats.ReadsAligned, stats.Reads)
	}
	if len(stats.FractionWithCov) == 0 {
		return nil, internal.NewParseError(name, 0, labelCoverage, "missing coverage fractions")
	}
	return stats, nil
}

// splitLine splits a labelled line at the first tab, or at the last
// colon if there is no tab.
func splitLine(line string) (label, value string, ok bool) {
	if i := strings.IndexByte(line, '\t'); i >= 0 {
		label, value = line[:i], line[i+1:]
	} else if i := strings.LastIndexByte(line, ':'); i >= 0 {
		label, value = line[:i], line[i+1:]
	} else {
		return "", "", false
	}
	label = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(label), ":"))
	return label, strings.TrimSpace(value), true
}
