// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

package fastqc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holtgrewe/cbqc/internal"
	"github.com/holtgrewe/cbqc/internal/fixtures"
)

func TestCheckForModule(t *testing.T) {
	c, ok := CheckForModule("Per base N content")
	assert.True(t, ok)
	assert.Equal(t, PerBaseNContent, c)

	c, ok = CheckForModule("Kmer Content")
	assert.True(t, ok)
	assert.Equal(t, KmerContent, c)

	_, ok = CheckForModule("Basic Statistics")
	assert.False(t, ok)

	assert.Len(t, Checks(), int(NumChecks))
	assert.Equal(t, "per_base_sequence_quality", Checks()[0].Key())
	assert.Equal(t, "K-mer content", KmerContent.Title())
}

func TestParseVerdict(t *testing.T) {
	for input, expected := range map[string]Verdict{"pass": Pass, "WARN": Warn, " fail ": Fail} {
		v, err := ParseVerdict(input)
		require.NoError(t, err)
		assert.Equal(t, expected, v)
	}
	_, err := ParseVerdict("maybe")
	assert.Error(t, err)
}

func TestParseSummary(t *testing.T) {
	modules := []fixtures.Module{
		{Name: "Basic Statistics", Verdict: "pass"},
		{Name: "Per base sequence quality", Verdict: "pass"},
		{Name: "Per base N content", Verdict: "warn"},
		{Name: "Adapter Content", Verdict: "fail"},
	}
	summary, err := ParseSummary(strings.NewReader(fixtures.FastQCData(modules)), "lane")
	require.NoError(t, err)

	assert.Equal(t, Pass, summary.Verdict(PerBaseSequenceQuality))
	assert.Equal(t, Warn, summary.Verdict(PerBaseNContent))
	assert.Equal(t, Fail, summary.Verdict(AdapterContent))
	assert.Equal(t, Unknown, summary.Verdict(KmerContent))
	assert.Equal(t, []Check{PerBaseSequenceQuality, PerBaseNContent, AdapterContent}, summary.Reported())
	assert.Len(t, summary.Missing(), int(NumChecks)-3)
}

func TestParseSummaryInvalidVerdict(t *testing.T) {
	data := fixtures.FastQCData([]fixtures.Module{{Name: "Per base N content", Verdict: "excellent"}})
	_, err := ParseSummary(strings.NewReader(data), "lane")
	var parseErr *internal.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 2, parseErr.Line)
	assert.Equal(t, "Per base N content", parseErr.Field)
}

func TestParseArchive(t *testing.T) {
	archive := fixtures.WriteArchive(t, filepath.Join(t.TempDir(), "S1-L001_R1.zip"), fixtures.Modules("warn"), true)

	summary, err := ParseArchive(archive)
	require.NoError(t, err)
	assert.Equal(t, "S1-L001_R1.zip", summary.Filename)
	assert.Equal(t, archive, summary.Path)
	assert.Equal(t, "S1-L001_R1/fastqc_report.html", summary.DetailPage)
	for _, c := range Checks() {
		assert.Equal(t, Warn, summary.Verdict(c), c.String())
	}
}

func TestParseArchiveMissingReport(t *testing.T) {
	archive := fixtures.WriteArchive(t, filepath.Join(t.TempDir(), "S1-L001_R1.zip"), fixtures.Modules("pass"), false)

	_, err := ParseArchive(archive)
	var parseErr *internal.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, archive, parseErr.File)
	assert.Equal(t, ReportEntry, parseErr.Field)
}

func TestParseArchivesStopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	good := fixtures.WriteArchive(t, filepath.Join(dir, "a.zip"), fixtures.Modules("pass"), true)
	bad := fixtures.WriteFile(t, filepath.Join(dir, "b.zip"), "not a zip file")

	summaries, err := ParseArchives([]string{good, good})
	require.NoError(t, err)
	assert.Len(t, summaries, 2)

	_, err = ParseArchives([]string{good, bad, good})
	var parseErr *internal.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, bad, parseErr.File)
}

func TestExtractDetail(t *testing.T) {
	dir := t.TempDir()
	archive := fixtures.WriteArchive(t, filepath.Join(dir, "S1-L001_R1.zip"), fixtures.Modules("pass"), true)
	summary, err := ParseArchive(archive)
	require.NoError(t, err)

	out := filepath.Join(dir, "out")
	page, err := ExtractDetail(summary, out)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "S1-L001_R1", "fastqc_report.html"), page)

	contents, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "S1-L001_R1")
	assert.FileExists(t, filepath.Join(out, "S1-L001_R1", "Images", "per_base_quality.png"))
	assert.NoFileExists(t, filepath.Join(out, "S1-L001_R1", DataEntry))
}
