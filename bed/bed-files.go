// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

package bed

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/shenwei356/xopen"

	"github.com/holtgrewe/cbqc/internal"
)

// ParseBed parses the first three columns of a BED file; further
// columns are ignored. Plain and compressed files are both accepted.
func ParseBed(filename string) (b *Bed, err error) {
	file, err := xopen.Ropen(filename)
	if err != nil {
		return nil, err
	}
	defer internal.Close(file, &err)

	b = NewBed()
	scanner := bufio.NewScanner(file)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case line == "", strings.HasPrefix(line, "#"), strings.HasPrefix(line, "browser"), strings.HasPrefix(line, "track"):
			continue
		}
		data := strings.Split(line, "\t")
		if len(data) < 3 {
			return nil, internal.NewParseError(filename, lineNo, "", "expected at least 3 columns, got %v", len(data))
		}
		start, err := strconv.ParseInt(data[1], 10, 32)
		if err != nil {
			return nil, internal.NewParseError(filename, lineNo, "chromStart", "%v", err)
		}
		end, err := strconv.ParseInt(data[2], 10, 32)
		if err != nil {
			return nil, internal.NewParseError(filename, lineNo, "chromEnd", "%v", err)
		}
		region, err := NewRegion(data[0], int32(start), int32(end))
		if err != nil {
			return nil, &internal.ParseError{File: filename, Line: lineNo, Err: err}
		}
		b.AddRegion(region)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %v: %w", filename, err)
	}
	// Make sure bed regions are sorted.
	sortRegions(b)
	return b, nil
}
