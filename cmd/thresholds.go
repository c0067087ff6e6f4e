// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

package cmd

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/holtgrewe/cbqc/report"
)

// thresholdFlags binds the per-metric traffic-light bounds to command
// line flags such as --aligned-reads-green.
type thresholdFlags struct {
	flags  *pflag.FlagSet
	yellow [report.NumMetrics]float64
	green  [report.NumMetrics]float64
}

func flagName(m report.Metric, color string) string {
	return strings.ReplaceAll(m.String(), "_", "-") + "-" + color
}

func addThresholdFlags(flags *pflag.FlagSet) *thresholdFlags {
	t := &thresholdFlags{flags: flags}
	defaults := report.DefaultThresholds()
	for m := report.Metric(0); m < report.NumMetrics; m++ {
		label := strings.ReplaceAll(m.String(), "_", " ")
		flags.Float64Var(&t.green[m], flagName(m, "green"), defaults[m].High, "lower bound for green color on "+label)
		flags.Float64Var(&t.yellow[m], flagName(m, "yellow"), defaults[m].Low, "lower bound for yellow color on "+label)
	}
	return t
}

// resolve loads the thresholds file, if any, on top of the defaults,
// and then applies the flags that were set explicitly.
func (t *thresholdFlags) resolve(filename string) (report.Thresholds, error) {
	thresholds := report.DefaultThresholds()
	if filename != "" {
		var err error
		if thresholds, err = report.LoadThresholds(filename, thresholds); err != nil {
			return nil, err
		}
	}
	for m := report.Metric(0); m < report.NumMetrics; m++ {
		threshold := thresholds[m]
		if t.flags.Changed(flagName(m, "green")) {
			threshold.High = t.green[m]
		}
		if t.flags.Changed(flagName(m, "yellow")) {
			threshold.Low = t.yellow[m]
		}
		thresholds[m] = threshold
	}
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	return thresholds, nil
}
