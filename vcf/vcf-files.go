// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

package vcf

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/exascience/pargo/pipeline"
	"github.com/shenwei356/xopen"

	"github.com/holtgrewe/cbqc/internal"
)

// ParseFile computes the statistics of the VCF file with the given
// name. Plain and compressed (.vcf.gz) files are both accepted.
func ParseFile(filename string) (stats *Stats, err error) {
	input, err := xopen.Ropen(filename)
	if err != nil {
		return nil, err
	}
	defer internal.Close(input, &err)
	return Parse(input, filename)
}

type batch struct {
	stats    *Stats
	warnings []string
}

// Parse computes the statistics of the VCF data read from r. The name
// is used in error messages.
//
// Batches of lines are parsed in parallel, but merged in input order,
// so the result and the order of the logged warnings are
// deterministic.
func Parse(r io.Reader, name string) (*Stats, error) {
	stats := NewStats(name)
	var p pipeline.Pipeline
	p.Source(pipeline.NewScanner(r))
	p.Add(pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
		lines := data.([]string)
		b := &batch{stats: NewStats(name)}
		var sc StringScanner
		for _, line := range lines {
			line = strings.TrimRight(line, "\r")
			if line == "" || line[0] == '#' {
				continue
			}
			rec, err := parseRecord(&sc, line)
			if err != nil {
				var skip errSkip
				if errors.As(err, &skip) {
					b.stats.Skipped++
					b.warnings = append(b.warnings, fmt.Sprintf("Warning: %v, skipping VCF record %v", skip, line))
					continue
				}
				p.SetErr(&internal.ParseError{File: name, Err: fmt.Errorf("%v, while parsing VCF record %v", err, line)})
				return b
			}
			b.stats.count(&rec)
		}
		return b
	})))
	p.Add(pipeline.Ord(pipeline.Receive(func(_ int, data interface{}) interface{} {
		b := data.(*batch)
		for _, warning := range b.warnings {
			log.Println(warning)
		}
		stats.Add(b.stats)
		return data
	})))
	if err := internal.RunPipeline(&p); err != nil {
		return nil, err
	}
	return stats, nil
}
