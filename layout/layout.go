// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

// Package layout locates the artifacts of a sample in a pipeline run
// directory.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/holtgrewe/cbqc/internal"
)

// Directories and file name patterns of a run directory.
const (
	CoverageDir = "cov"
	QCDir       = "qc"
	VariantDir  = "vcf"
	QualimapDir = "qm"

	StaSuffix      = "_exom.sta"
	QualimapReport = "qualimapReport.html"
)

// Inputs are the artifacts of one sample.
type Inputs struct {
	RunDir   string
	Sample   string
	Sta      string
	Lanes    []string
	VCF      string
	Qualimap string
}

func glob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, &internal.ConfigurationError{Field: pattern, Reason: err.Error()}
	}
	sort.Strings(matches)
	return matches, nil
}

func exactlyOne(field string, matches []string, pattern string) (string, error) {
	switch len(matches) {
	case 0:
		return "", &internal.ConfigurationError{Field: field, Reason: fmt.Sprintf("no file matches %v", pattern)}
	case 1:
		return matches[0], nil
	default:
		return "", &internal.ConfigurationError{Field: field, Reason: fmt.Sprintf("%v files match %v: %v", len(matches), pattern, strings.Join(matches, ", "))}
	}
}

// Discover locates the artifacts of the given sample in runDir. If
// sample is empty, it is derived from the single alignment statistics
// file of the run. Lane archives are returned in lexicographic order.
func Discover(runDir, sample string) (*Inputs, error) {
	if runDir == "" {
		return nil, &internal.ConfigurationError{Field: "run directory", Reason: "not set"}
	}
	if info, err := os.Stat(runDir); err != nil {
		return nil, &internal.ConfigurationError{Field: "run directory", Reason: err.Error()}
	} else if !info.IsDir() {
		return nil, &internal.ConfigurationError{Field: "run directory", Reason: runDir + " is not a directory"}
	}

	id := sample
	if id == "" {
		id = "*"
	}
	pattern := filepath.Join(runDir, CoverageDir, id+StaSuffix)
	matches, err := glob(pattern)
	if err != nil {
		return nil, err
	}
	sta, err := exactlyOne("alignment statistics", matches, pattern)
	if err != nil {
		return nil, err
	}
	if sample == "" {
		sample = strings.TrimSuffix(filepath.Base(sta), StaSuffix)
	}

	inputs := &Inputs{RunDir: runDir, Sample: sample, Sta: sta}

	if inputs.Lanes, err = glob(filepath.Join(runDir, QCDir, sample+"-*.zip")); err != nil {
		return nil, err
	}

	var vcfs []string
	for _, suffix := range []string{".vcf", ".vcf.gz"} {
		matches, err := glob(filepath.Join(runDir, VariantDir, sample+".*"+suffix))
		if err != nil {
			return nil, err
		}
		vcfs = append(vcfs, matches...)
	}
	sort.Strings(vcfs)
	if inputs.VCF, err = exactlyOne("variant calls", vcfs, filepath.Join(runDir, VariantDir, sample+".*.vcf[.gz]")); err != nil {
		return nil, err
	}

	inputs.Qualimap = filepath.Join(runDir, QualimapDir, QualimapReport)
	if _, err := os.Stat(inputs.Qualimap); err != nil {
		return nil, &internal.ConfigurationError{Field: "coverage map", Reason: err.Error()}
	}
	return inputs, nil
}
