// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

// Package fastqc reads the per-lane quality-control archives written by
// FastQC: the verdict table of the nine checks shown in the report,
// and the human-readable detail page that is appended to the PDF.
package fastqc

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/holtgrewe/cbqc/internal"
)

// Names of the entries every FastQC archive must contain.
const (
	DataEntry   = "fastqc_data.txt"
	ReportEntry = "fastqc_report.html"
)

func findEntry(files []*zip.File, name string) *zip.File {
	for _, f := range files {
		if f.FileInfo().IsDir() {
			continue
		}
		if f.Name == name || strings.HasSuffix(f.Name, "/"+name) {
			return f
		}
	}
	return nil
}

// ParseArchive parses the FastQC archive at the given path. It fails
// with an *internal.ParseError naming the archive if the verdict table
// or the detail page is missing.
func ParseArchive(archivePath string) (summary *LaneSummary, err error) {
	archive, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, &internal.ParseError{File: archivePath, Err: err}
	}
	defer internal.Close(archive, &err)

	data := findEntry(archive.File, DataEntry)
	if data == nil {
		return nil, internal.NewParseError(archivePath, 0, DataEntry, "archive does not contain %v", DataEntry)
	}
	report := findEntry(archive.File, ReportEntry)
	if report == nil {
		return nil, internal.NewParseError(archivePath, 0, ReportEntry, "archive does not contain %v", ReportEntry)
	}

	in, err := data.Open()
	if err != nil {
		return nil, &internal.ParseError{File: archivePath, Field: DataEntry, Err: err}
	}
	defer internal.Close(in, &err)

	summary, err = ParseSummary(in, archivePath+":"+data.Name)
	if err != nil {
		return nil, err
	}
	summary.Filename = filepath.Base(archivePath)
	summary.Path = archivePath
	summary.DetailPage = report.Name
	return summary, nil
}

// ParseArchives parses the given archives in order. The first failing
// archive aborts parsing.
func ParseArchives(paths []string) ([]*LaneSummary, error) {
	summaries := make([]*LaneSummary, 0, len(paths))
	for _, p := range paths {
		summary, err := ParseArchive(p)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// ExtractDetail extracts the detail page of the given lane, together
// with the images and icons next to it in the archive, below dir. It
// returns the path of the extracted page.
func ExtractDetail(summary *LaneSummary, dir string) (page string, err error) {
	archive, err := zip.OpenReader(summary.Path)
	if err != nil {
		return "", &internal.ParseError{File: summary.Path, Err: err}
	}
	defer internal.Close(archive, &err)

	root := path.Dir(summary.DetailPage)
	prefix := ""
	if root != "." {
		prefix = root + "/"
	}
	base, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	found := false
	for _, f := range archive.File {
		if f.FileInfo().IsDir() || !strings.HasPrefix(f.Name, prefix) || path.Base(f.Name) == DataEntry {
			continue
		}
		target := filepath.Join(base, filepath.FromSlash(f.Name))
		if !strings.HasPrefix(target, base+string(filepath.Separator)) {
			return "", internal.NewParseError(summary.Path, 0, f.Name, "archive entry escapes extraction directory")
		}
		if err = extractFile(f, target); err != nil {
			return "", fmt.Errorf("extracting %v from %v: %w", f.Name, summary.Path, err)
		}
		if f.Name == summary.DetailPage {
			found = true
		}
	}
	if !found {
		return "", internal.NewParseError(summary.Path, 0, ReportEntry, "archive does not contain %v", summary.DetailPage)
	}
	return filepath.Join(base, filepath.FromSlash(summary.DetailPage)), nil
}

func extractFile(f *zip.File, target string) (err error) {
	if err = os.MkdirAll(filepath.Dir(target), 0700); err != nil {
		return err
	}
	in, err := f.Open()
	if err != nil {
		return err
	}
	defer internal.Close(in, &err)
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer internal.Close(out, &err)
	_, err = io.Copy(out, in)
	return err
}
