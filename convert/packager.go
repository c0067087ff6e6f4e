// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/holtgrewe/cbqc/fastqc"
	"github.com/holtgrewe/cbqc/internal"
)

// A Job describes the documents to be packaged.
type Job struct {
	// HTML is the rendered primary report.
	HTML []byte
	// Lanes are the lane archives whose detail pages are attached, in
	// report order.
	Lanes []*fastqc.LaneSummary
	// CoverageMap is the path of the external coverage-map report.
	CoverageMap string
	// OutputPrefix is the path prefix of the outputs <prefix>.html and
	// <prefix>.pdf.
	OutputPrefix string
}

// A Result names the published outputs.
type Result struct {
	HTML, PDF string
}

// A Packager converts and merges the documents of a job. Intermediate
// files live in a fresh work directory below WorkRoot, or below the
// system temporary directory if WorkRoot is empty. The work directory
// is removed when Package returns.
type Packager struct {
	Converter Converter
	WorkRoot  string
}

// Sources returns the paths of the documents converted for a job whose
// primary report and lane detail pages are stored at the given paths,
// in merge order: primary report, lane detail pages, coverage map.
func Sources(primary string, lanes []string, coverageMap string) []string {
	sources := make([]string, 0, len(lanes)+2)
	sources = append(sources, primary)
	sources = append(sources, lanes...)
	return append(sources, coverageMap)
}

// Package converts all documents of the job to PDF, merges them, and
// publishes the primary report and the merged PDF. Either both outputs
// are written, or neither is.
func (p *Packager) Package(ctx context.Context, job Job) (result Result, err error) {
	if job.OutputPrefix == "" {
		return Result{}, &internal.ConfigurationError{Field: "output prefix", Reason: "not set"}
	}
	root := p.WorkRoot
	if root == "" {
		root = os.TempDir()
	}
	work := filepath.Join(root, "cbqc-"+uuid.NewString())
	if err = os.MkdirAll(work, 0700); err != nil {
		return Result{}, fmt.Errorf("creating work directory: %w", err)
	}
	defer func() {
		if nerr := os.RemoveAll(work); nerr != nil {
			log.Printf("Warning: could not remove work directory %v: %v", work, nerr)
		}
	}()

	primary := filepath.Join(work, "report.html")
	if err = os.WriteFile(primary, job.HTML, 0600); err != nil {
		return Result{}, err
	}
	lanes := make([]string, 0, len(job.Lanes))
	for i, lane := range job.Lanes {
		page, err := fastqc.ExtractDetail(lane, filepath.Join(work, fmt.Sprintf("lane-%03d", i+1)))
		if err != nil {
			return Result{}, err
		}
		lanes = append(lanes, page)
	}

	sources := Sources(primary, lanes, job.CoverageMap)
	pdfs := make([]string, 0, len(sources))
	for i, src := range sources {
		if err = ctx.Err(); err != nil {
			return Result{}, err
		}
		pdf := filepath.Join(work, fmt.Sprintf("part-%03d.pdf", i))
		if err = p.Converter.ToPDF(ctx, src, pdf); err != nil {
			return Result{}, err
		}
		pdfs = append(pdfs, pdf)
	}
	merged := filepath.Join(work, "merged.pdf")
	if err = p.Converter.Merge(ctx, pdfs, merged); err != nil {
		return Result{}, err
	}
	if err = ctx.Err(); err != nil {
		return Result{}, err
	}

	result = Result{HTML: job.OutputPrefix + ".html", PDF: job.OutputPrefix + ".pdf"}
	html, err := internal.Stage(result.HTML, bytes.NewReader(job.HTML))
	if err != nil {
		return Result{}, err
	}
	pdf, err := internal.StageFile(result.PDF, merged)
	if err != nil {
		internal.Discard(html)
		return Result{}, err
	}
	if err = internal.Commit(html, pdf); err != nil {
		return Result{}, err
	}
	return result, nil
}
