// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

package fastqc

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/holtgrewe/cbqc/internal"
)

// LaneSummary holds the check verdicts of one FastQC archive.
type LaneSummary struct {
	// Filename is the base name of the archive.
	Filename string
	// Path is the archive's location on disk.
	Path string
	// DetailPage is the name of the human-readable report inside the
	// archive.
	DetailPage string

	reported *bitset.BitSet
	verdicts [NumChecks]Verdict
}

// Verdict returns the verdict for the given check, or Unknown if the
// archive does not report it.
func (s *LaneSummary) Verdict(c Check) Verdict {
	if c >= NumChecks || !s.reported.Test(uint(c)) {
		return Unknown
	}
	return s.verdicts[c]
}

// Reported returns the checks present in the archive, in report order.
func (s *LaneSummary) Reported() []Check {
	checks := make([]Check, 0, s.reported.Count())
	for i, ok := s.reported.NextSet(0); ok; i, ok = s.reported.NextSet(i + 1) {
		checks = append(checks, Check(i))
	}
	return checks
}

// Missing returns the checks absent from the archive, in report order.
func (s *LaneSummary) Missing() []Check {
	var checks []Check
	for _, c := range Checks() {
		if !s.reported.Test(uint(c)) {
			checks = append(checks, c)
		}
	}
	return checks
}

func newLaneSummary(filename string) *LaneSummary {
	return &LaneSummary{
		Filename: filename,
		reported: bitset.New(uint(NumChecks)),
	}
}

func (s *LaneSummary) set(c Check, v Verdict) {
	s.verdicts[c] = v
	s.reported.Set(uint(c))
}

// ParseSummary parses the module lines of a fastqc_data.txt file:
//
//	>>Per base sequence quality	pass
//	...
//	>>END_MODULE
//
// The name is used in error messages.
func ParseSummary(r io.Reader, name string) (*LaneSummary, error) {
	summary := newLaneSummary(name)
	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimRight(scanner.Text(), "\r")
		if !strings.HasPrefix(line, ">>") || strings.HasPrefix(line, ">>END_MODULE") {
			continue
		}
		fields := strings.Split(line[2:], "\t")
		if len(fields) < 2 {
			return nil, internal.NewParseError(name, lineNo, fields[0], "missing verdict")
		}
		check, ok := CheckForModule(fields[0])
		if !ok {
			continue
		}
		verdict, err := ParseVerdict(fields[1])
		if err != nil {
			return nil, &internal.ParseError{File: name, Line: lineNo, Field: fields[0], Err: err}
		}
		summary.set(check, verdict)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %v: %w", name, err)
	}
	return summary, nil
}
