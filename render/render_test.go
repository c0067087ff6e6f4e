// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

package render

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holtgrewe/cbqc/fastqc"
	"github.com/holtgrewe/cbqc/internal/fixtures"
	"github.com/holtgrewe/cbqc/report"
	"github.com/holtgrewe/cbqc/sta"
	"github.com/holtgrewe/cbqc/vcf"
)

func model(t *testing.T, color bool, lanes int, variants *vcf.Stats) *report.Model {
	t.Helper()
	aln, err := sta.Parse(strings.NewReader(fixtures.Sta("t.bed")), "S1_exom.sta")
	require.NoError(t, err)
	aln.TotalBedLength = 25000
	if variants == nil {
		variants, err = vcf.Parse(strings.NewReader(fixtures.VCF), "S1.vcf")
		require.NoError(t, err)
	}
	var summaries []*fastqc.LaneSummary
	for i := 0; i < lanes; i++ {
		verdict := []string{"pass", "warn", "fail"}[i%3]
		summary, err := fastqc.ParseSummary(strings.NewReader(fixtures.FastQCData(fixtures.Modules(verdict))), "lane")
		require.NoError(t, err)
		summaries = append(summaries, summary)
	}
	m, err := report.Aggregate(aln, summaries, variants, report.Options{Version: "9.9.9", Color: color, Sample: "S1"})
	require.NoError(t, err)
	return m
}

func TestFormats(t *testing.T) {
	assert.Equal(t, "1,234,567", Count(1234567))
	assert.Equal(t, "12", Count(12))
	assert.Equal(t, "95.0%", Percentage(0.95))
	assert.Equal(t, "2.00x", Multiple(2))
	assert.Equal(t, "0.5000", RatioString(report.Divide(1, 2), 4))
	assert.Equal(t, "N/A", RatioString(report.Divide(1, 0), 2))
	assert.Equal(t, "N/A", RatePercentage(report.NotApplicable))
}

func TestRender(t *testing.T) {
	html, err := Render(model(t, true, 2, nil))
	require.NoError(t, err)
	doc := string(html)

	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, "Quality control report for S1")
	assert.Contains(t, doc, "cbqc 9.9.9")
	assert.Contains(t, doc, "1,000")
	assert.Contains(t, doc, "2.00x")
	assert.Contains(t, doc, `class="warn">95.0%`)
	assert.Contains(t, doc, `class="good">95.0%`)
	assert.Contains(t, doc, "0.5000")
	assert.Contains(t, doc, "0.0800")
	assert.Contains(t, doc, "MISSENSE")
	assert.Contains(t, doc, "<svg")
	assert.NotContains(t, doc, "<?xml")
	assert.NotContains(t, doc, "<link")
	assert.NotContains(t, doc, "<script")
	assert.NotContains(t, doc, "<img")
	assert.NotContains(t, doc, `class="mark"`)
}

func TestRenderMonochrome(t *testing.T) {
	html, err := Render(model(t, false, 3, nil))
	require.NoError(t, err)
	doc := string(html)

	for _, class := range []string{"good", "warn", "bad", "unknown"} {
		assert.NotContains(t, doc, `class="`+class+`"`)
	}
	assert.Contains(t, doc, `<span class="mark">✔</span>`)
	assert.Contains(t, doc, `<span class="mark">!</span>`)
	assert.Contains(t, doc, `<span class="mark">✘</span>`)
}

func TestRenderStripes(t *testing.T) {
	html, err := Render(model(t, true, 3, nil))
	require.NoError(t, err)
	doc := string(html)

	lanes := doc[strings.Index(doc, `<table class="lanes">`):]
	lanes = lanes[:strings.Index(lanes, "</table>")]
	stripes := regexp.MustCompile(`<tr class="(odd|even)">`).FindAllStringSubmatch(lanes, -1)
	require.Len(t, stripes, 3)
	assert.Equal(t, "odd", stripes[0][1])
	assert.Equal(t, "even", stripes[1][1])
	assert.Equal(t, "odd", stripes[2][1])
}

func TestRenderZeroLanes(t *testing.T) {
	html, err := Render(model(t, true, 0, nil))
	require.NoError(t, err)
	doc := string(html)

	lanes := doc[strings.Index(doc, `<table class="lanes">`):]
	lanes = lanes[:strings.Index(lanes, "</table>")]
	assert.Equal(t, 1, strings.Count(lanes, "<tr"))
	assert.Contains(t, lanes, "Per base sequence quality")
}

func TestRenderNotApplicable(t *testing.T) {
	html, err := Render(model(t, true, 1, vcf.NewStats("empty.vcf")))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<th>Ts/Tv ratio</th><td class=\"number\">N/A</td>")
}

func TestRenderIsIdempotent(t *testing.T) {
	m := model(t, true, 2, nil)
	first, err := Render(m)
	require.NoError(t, err)
	second, err := Render(m)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
