// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

package bed

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holtgrewe/cbqc/internal"
)

func writeBed(t *testing.T, contents string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "targets.bed")
	require.NoError(t, os.WriteFile(filename, []byte(contents), 0600))
	return filename
}

func TestParseBed(t *testing.T) {
	filename := writeBed(t, "browser position chr1:1-100\n"+
		"# comment\n"+
		"track name=exome description=\"exome targets\"\n"+
		"chr1\t500\t600\tr2\n"+
		"chr1\t100\t200\tr1\t0\t+\t100\t200\t0\t1\t100,\t0,\n"+
		"\n"+
		"chr2\t0\t50\n")

	b, err := ParseBed(filename)
	require.NoError(t, err)

	require.Len(t, b.RegionMap["chr1"], 2)
	assert.Equal(t, int32(100), b.RegionMap["chr1"][0].Start)
	assert.Equal(t, int32(500), b.RegionMap["chr1"][1].Start)
	assert.Equal(t, int64(100), b.RegionMap["chr1"][0].Length())
	assert.Equal(t, int64(250), b.Length())
}

func TestParseBedErrors(t *testing.T) {
	tests := []struct {
		name, contents string
		line           int
	}{
		{"too few columns", "chr1\t0\t10\nchr1\t5\n", 2},
		{"invalid start", "chr1\tx\t10\n", 1},
		{"end before start", "chr1\t10\t5\n", 1},
		{"invalid end", "chr1\t0\tten\n", 1},
		{"negative start", "chr1\t-5\t10\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filename := writeBed(t, tt.contents)
			_, err := ParseBed(filename)
			var parseErr *internal.ParseError
			require.True(t, errors.As(err, &parseErr), "got %v", err)
			assert.Equal(t, filename, parseErr.File)
			assert.Equal(t, tt.line, parseErr.Line)
		})
	}
}

func TestParseBedMissingFile(t *testing.T) {
	_, err := ParseBed(filepath.Join(t.TempDir(), "missing.bed"))
	assert.Error(t, err)
}
