// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

package fastqc

import (
	"fmt"
	"strings"
)

// Check enumerates the FastQC modules that appear in the report.
type Check uint

// The checks, in report order.
const (
	PerBaseSequenceQuality Check = iota
	PerSequenceQualityScores
	PerBaseSequenceContent
	PerBaseNContent
	SequenceLengthDistribution
	SequenceDuplicationLevels
	OverrepresentedSequences
	AdapterContent
	KmerContent

	// NumChecks is the number of checks.
	NumChecks
)

var checkKeys = [NumChecks]string{
	"per_base_sequence_quality",
	"per_sequence_quality_scores",
	"per_base_sequence_content",
	"per_base_n_content",
	"sequence_length_distribution",
	"sequence_duplication_levels",
	"overrepresented_sequences",
	"adapter_content",
	"kmer_content",
}

var checkTitles = [NumChecks]string{
	"Per base sequence quality",
	"Per sequence quality scores",
	"Per base sequence content",
	"Per base N content",
	"Sequence length distribution",
	"Sequence duplication levels",
	"Overrepresented sequences",
	"Adapter content",
	"K-mer content",
}

// Checks returns all checks in report order.
func Checks() []Check {
	checks := make([]Check, NumChecks)
	for i := range checks {
		checks[i] = Check(i)
	}
	return checks
}

// Key returns the normalized module name, e.g. "per_base_n_content".
func (c Check) Key() string {
	if c >= NumChecks {
		return fmt.Sprintf("check(%d)", uint(c))
	}
	return checkKeys[c]
}

// Title returns a human-readable name of the check.
func (c Check) Title() string {
	if c >= NumChecks {
		return c.Key()
	}
	return checkTitles[c]
}

func (c Check) String() string {
	return c.Key()
}

// NormalizeModuleName turns a FastQC module name such as "Per base N
// content" into its key form "per_base_n_content".
func NormalizeModuleName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// CheckForModule returns the check for a FastQC module name. Modules
// that are not part of the report, such as "Basic Statistics", return
// false.
func CheckForModule(name string) (Check, bool) {
	key := NormalizeModuleName(name)
	for i, k := range checkKeys {
		if k == key {
			return Check(i), true
		}
	}
	return 0, false
}

// Verdict is the outcome of a check.
type Verdict uint8

// Verdicts. Unknown is reported for checks missing from an archive.
const (
	Unknown Verdict = iota
	Pass
	Warn
	Fail
)

var verdictNames = [...]string{"unknown", "pass", "warn", "fail"}

func (v Verdict) String() string {
	if int(v) < len(verdictNames) {
		return verdictNames[v]
	}
	return fmt.Sprintf("verdict(%d)", uint8(v))
}

// ParseVerdict parses PASS, WARN or FAIL, in any case.
func ParseVerdict(s string) (Verdict, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pass":
		return Pass, nil
	case "warn":
		return Warn, nil
	case "fail":
		return Fail, nil
	default:
		return Unknown, fmt.Errorf("invalid verdict %q", s)
	}
}
