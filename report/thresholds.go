// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

package report

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/holtgrewe/cbqc/internal"
)

// Metric enumerates the metrics that are classified by thresholds.
type Metric uint

// The classified metrics.
const (
	MeanCoverage Metric = iota
	TargetCoverage10x
	TargetCoverage20x
	AlignedReads

	// NumMetrics is the number of classified metrics.
	NumMetrics
)

var metricKeys = [NumMetrics]string{
	"mean_coverage",
	"target_coverage_10x",
	"target_coverage_20x",
	"aligned_reads",
}

func (m Metric) String() string {
	if m >= NumMetrics {
		return fmt.Sprintf("metric(%d)", uint(m))
	}
	return metricKeys[m]
}

// MetricForKey returns the metric with the given key, e.g.
// "aligned_reads".
func MetricForKey(key string) (Metric, bool) {
	for i, k := range metricKeys {
		if k == key {
			return Metric(i), true
		}
	}
	return 0, false
}

// Class is the traffic-light classification of a metric value.
type Class uint8

// Classes, from worst to best.
const (
	Bad Class = iota
	Warning
	Good
)

var classNames = [...]string{"bad", "warn", "good"}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return fmt.Sprintf("class(%d)", uint8(c))
}

// Threshold holds two ordered cut points. Values below Low are Bad,
// values from Low up to but excluding High are Warning, and values of
// at least High are Good.
type Threshold struct {
	Low  float64
	High float64
}

// Classify classifies the given value.
func (t Threshold) Classify(value float64) Class {
	switch {
	case value >= t.High:
		return Good
	case value >= t.Low:
		return Warning
	default:
		return Bad
	}
}

// Thresholds is the lookup table of per-metric thresholds.
type Thresholds map[Metric]Threshold

// DefaultThresholds returns the default table.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MeanCoverage:      {Low: 0.70, High: 0.85},
		TargetCoverage10x: {Low: 0.80, High: 0.85},
		TargetCoverage20x: {Low: 0.80, High: 0.85},
		AlignedReads:      {Low: 0.90, High: 0.97},
	}
}

// Clone returns a copy of the table.
func (t Thresholds) Clone() Thresholds {
	c := make(Thresholds, len(t))
	for m, threshold := range t {
		c[m] = threshold
	}
	return c
}

// Validate checks that every metric has a threshold with ordered cut
// points.
func (t Thresholds) Validate() error {
	for m := Metric(0); m < NumMetrics; m++ {
		threshold, ok := t[m]
		if !ok {
			return &internal.ConfigurationError{Field: m.String(), Reason: "missing threshold"}
		}
		if threshold.Low > threshold.High {
			return &internal.ConfigurationError{
				Field:  m.String(),
				Reason: fmt.Sprintf("yellow bound %v exceeds green bound %v", threshold.Low, threshold.High),
			}
		}
	}
	return nil
}

// thresholdEntry is the YAML form of a threshold, named after the
// traffic-light colors:
//
//	aligned_reads:
//	  yellow: 0.90
//	  green: 0.97
type thresholdEntry struct {
	Yellow *float64 `yaml:"yellow"`
	Green  *float64 `yaml:"green"`
}

// LoadThresholds reads a YAML file and applies its entries on top of
// base. Entries may set only one of the two bounds.
func LoadThresholds(filename string, base Thresholds) (Thresholds, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, &internal.ConfigurationError{Field: "thresholds", Reason: err.Error()}
	}
	return ParseThresholds(data, filename, base)
}

// ParseThresholds is like LoadThresholds, but parses the given YAML
// data. The name is used in error messages.
func ParseThresholds(data []byte, name string, base Thresholds) (Thresholds, error) {
	var entries map[string]thresholdEntry
	if err := yaml.UnmarshalStrict(data, &entries); err != nil {
		return nil, &internal.ParseError{File: name, Err: err}
	}
	result := base.Clone()
	for key, entry := range entries {
		m, ok := MetricForKey(key)
		if !ok {
			return nil, internal.NewParseError(name, 0, key, "unknown metric")
		}
		threshold := result[m]
		if entry.Yellow != nil {
			threshold.Low = *entry.Yellow
		}
		if entry.Green != nil {
			threshold.High = *entry.Green
		}
		result[m] = threshold
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}
