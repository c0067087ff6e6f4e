// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

package layout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holtgrewe/cbqc/internal"
	"github.com/holtgrewe/cbqc/internal/fixtures"
)

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	run := fixtures.WriteRun(t, dir, "S1", 3)
	fixtures.WriteFile(t, filepath.Join(dir, "qc", "S2-L001_R1.zip"), "other sample")

	inputs, err := Discover(dir, "S1")
	require.NoError(t, err)
	assert.Equal(t, "S1", inputs.Sample)
	assert.Equal(t, run.Sta, inputs.Sta)
	assert.Equal(t, run.Lanes, inputs.Lanes)
	assert.Equal(t, run.VCF, inputs.VCF)
	assert.Equal(t, run.Qualimap, inputs.Qualimap)
}

func TestDiscoverDerivesSample(t *testing.T) {
	dir := t.TempDir()
	fixtures.WriteRun(t, dir, "NA12878", 0)

	inputs, err := Discover(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "NA12878", inputs.Sample)
	assert.Empty(t, inputs.Lanes)
}

func TestDiscoverCompressedVCF(t *testing.T) {
	dir := t.TempDir()
	run := fixtures.WriteRun(t, dir, "S1", 1)
	require.NoError(t, os.Rename(run.VCF, run.VCF+".gz"))

	inputs, err := Discover(dir, "S1")
	require.NoError(t, err)
	assert.Equal(t, run.VCF+".gz", inputs.VCF)
}

func TestDiscoverErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(t *testing.T, run fixtures.Run)
		sample string
		field  string
	}{
		{"missing sta", func(t *testing.T, run fixtures.Run) { require.NoError(t, os.Remove(run.Sta)) }, "S1", "alignment statistics"},
		{"ambiguous sample", func(t *testing.T, run fixtures.Run) {
			fixtures.WriteFile(t, filepath.Join(run.Dir, "cov", "S2_exom.sta"), "")
		}, "", "alignment statistics"},
		{"missing vcf", func(t *testing.T, run fixtures.Run) { require.NoError(t, os.Remove(run.VCF)) }, "S1", "variant calls"},
		{"ambiguous vcf", func(t *testing.T, run fixtures.Run) {
			fixtures.WriteFile(t, filepath.Join(run.Dir, "vcf", "S1.other.vcf.gz"), "")
		}, "S1", "variant calls"},
		{"missing coverage map", func(t *testing.T, run fixtures.Run) { require.NoError(t, os.Remove(run.Qualimap)) }, "S1", "coverage map"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := fixtures.WriteRun(t, t.TempDir(), "S1", 1)
			tt.modify(t, run)
			_, err := Discover(run.Dir, tt.sample)
			var configErr *internal.ConfigurationError
			require.True(t, errors.As(err, &configErr), "got %v", err)
			assert.Equal(t, tt.field, configErr.Field)
		})
	}
}

func TestDiscoverRunDir(t *testing.T) {
	var configErr *internal.ConfigurationError
	_, err := Discover("", "S1")
	assert.True(t, errors.As(err, &configErr))
	_, err = Discover(filepath.Join(t.TempDir(), "missing"), "S1")
	assert.True(t, errors.As(err, &configErr))
	assert.Equal(t, "run directory", configErr.Field)
}
