// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

// Package fixtures writes small pipeline run artifacts for tests.
package fixtures

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

// Bed defines two target regions on chr1 with a total length of 25000.
const Bed = "track name=targets description=\"exome targets\"\n" +
	"chr1\t0\t10000\n" +
	"chr1\t20000\t35000\n"

// Sta returns alignment statistics of 1000 reads, 950 of them aligned,
// with 50000 nucleotides mapped on target, for the given BED file.
func Sta(bedPath string) string {
	return "#" + bedPath + "\n" +
		"reads:\t1000\n" +
		"reads aligned:\t950\n" +
		"reads unaligned:\t50\n" +
		"duplicates:\t10\n" +
		"duplication rate:\t0.01\n" +
		"Mapped nucleotides on target:\t50000\n" +
		"Fraction with cov. >= 1 :\t0.99\n" +
		"Fraction with cov. >= 10 :\t0.95\n" +
		"Fraction with cov. >= 20 :\t0.82\n" +
		"Fraction with cov. >= 50 :\t0.40\n"
}

// VCF holds five records: a heterozygous transition SNV in dbSNP, a
// homozygous transversion SNV, a heterozygous insertion, a no-call and
// a homozygous reference call.
const VCF = "##fileformat=VCFv4.1\n" +
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tS1\n" +
	"chr1\t100\trs1\tA\tG\t50\tPASS\tDB;EFFECT=MISSENSE\tGT:DP\t0/1:30\n" +
	"chr1\t200\t.\tC\tA\t50\tPASS\tEFFECT=SYNONYMOUS\tGT:DP\t1/1:25\n" +
	"chr1\t300\t.\tT\tTAA\t50\tPASS\tEFFECT=FS_INSERTION,INTRONIC\tGT\t0|1\n" +
	"chr1\t400\t.\tG\tC\t50\tPASS\t.\tGT\t./.\n" +
	"chr1\t500\t.\tG\tC\t50\tPASS\t.\tGT\t0/0\n"

// Module is a module result line of a FastQC data file.
type Module struct {
	Name, Verdict string
}

// Modules returns the module lines of a FastQC data file in which all
// checks have the given verdict.
func Modules(verdict string) []Module {
	return []Module{
		{"Basic Statistics", "pass"},
		{"Per base sequence quality", verdict},
		{"Per tile sequence quality", verdict},
		{"Per sequence quality scores", verdict},
		{"Per base sequence content", verdict},
		{"Per sequence GC content", verdict},
		{"Per base N content", verdict},
		{"Sequence Length Distribution", verdict},
		{"Sequence Duplication Levels", verdict},
		{"Overrepresented sequences", verdict},
		{"Adapter Content", verdict},
		{"Kmer Content", verdict},
	}
}

// FastQCData returns the contents of a fastqc_data.txt file with the
// given module lines.
func FastQCData(modules []Module) string {
	var b strings.Builder
	b.WriteString("##FastQC\t0.11.9\n")
	for _, m := range modules {
		fmt.Fprintf(&b, ">>%v\t%v\n#Measure\tValue\n>>END_MODULE\n", m.Name, m.Verdict)
	}
	return b.String()
}

// WriteFile writes contents to the file at path, creating parent
// directories as needed.
func WriteFile(t testing.TB, path, contents string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

// WriteArchive writes a FastQC archive to path. The archive contains
// the data file, an image, and the detail page unless withReport is
// false.
func WriteArchive(t testing.TB, archivePath string, modules []Module, withReport bool) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(archivePath), 0700))
	f, err := os.Create(archivePath)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	root := strings.TrimSuffix(filepath.Base(archivePath), ".zip") + "/"
	entries := []struct{ name, contents string }{
		{path.Join(root, "fastqc_data.txt"), FastQCData(modules)},
		{path.Join(root, "Images", "per_base_quality.png"), "png"},
	}
	if withReport {
		entries = append(entries, struct{ name, contents string }{
			path.Join(root, "fastqc_report.html"),
			"<html><body>" + root + "</body></html>",
		})
	}
	w := zip.NewWriter(f)
	for _, e := range entries {
		ew, err := w.Create(e.name)
		require.NoError(t, err)
		_, err = ew.Write([]byte(e.contents))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return archivePath
}

// Run names the artifacts written by WriteRun.
type Run struct {
	Dir, Sta, Bed, VCF, Qualimap string
	Lanes                        []string
}

// WriteRun writes a complete run directory for the given sample with
// the given number of lanes.
func WriteRun(t testing.TB, dir, sample string, lanes int) Run {
	t.Helper()
	run := Run{Dir: dir}
	run.Bed = WriteFile(t, filepath.Join(dir, "cov", "targets.bed"), Bed)
	run.Sta = WriteFile(t, filepath.Join(dir, "cov", sample+"_exom.sta"), Sta("targets.bed"))
	for i := 1; i <= lanes; i++ {
		name := fmt.Sprintf("%v-L%03d_R1.zip", sample, i)
		run.Lanes = append(run.Lanes, WriteArchive(t, filepath.Join(dir, "qc", name), Modules("pass"), true))
	}
	run.VCF = WriteFile(t, filepath.Join(dir, "vcf", sample+".gatk.vcf"), VCF)
	run.Qualimap = WriteFile(t, filepath.Join(dir, "qm", "qualimapReport.html"), "<html><body>qualimap</body></html>")
	return run
}
