// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

package cmd

import (
	"bytes"
	"log"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/holtgrewe/cbqc/internal"
	"github.com/holtgrewe/cbqc/report"
	"github.com/holtgrewe/cbqc/sta"
	"github.com/holtgrewe/cbqc/utils"
)

// HTMLHelp is the help string for this command.
const HTMLHelp = "html parameters:\n" +
	"cbqc html --sta-file file --vcf-file file --out-html file\n" +
	"[--fastqc-zip file]...\n" +
	"[--sample id]\n" +
	"[--black-and-white]\n" +
	"[--thresholds file.yaml]\n" +
	"[--aligned-reads-green v] [--aligned-reads-yellow v]\n" +
	"[--mean-coverage-green v] [--mean-coverage-yellow v]\n" +
	"[--target-coverage-10x-green v] [--target-coverage-10x-yellow v]\n" +
	"[--target-coverage-20x-green v] [--target-coverage-20x-yellow v]\n" +
	"[--bed file] [--merge-bed-overlaps]\n" +
	"[--timed]\n" +
	"[--log-path path]\n"

type htmlRun struct {
	StaFile       string
	FastQCZips    []string
	VCFFile       string
	OutHTML       string
	Sample        string
	BlackAndWhite bool
	Thresholds    report.Thresholds
	Parse         sta.ParseOptions
	Timed         bool
}

func newHTMLCommand(cfg Config, root *rootFlags) *cobra.Command {
	var (
		run            htmlRun
		thresholdsFile string
	)
	cmd := &cobra.Command{
		Use:   "html",
		Short: "Render the HTML quality-control report from explicit input files",
		Long: `Render the HTML quality-control report from explicit input files.

Unlike the report command, no PDF conversion takes place.

` + HTMLHelp,
		Args: cobra.NoArgs,
	}
	flags := cmd.Flags()
	flags.StringVar(&run.StaFile, "sta-file", "", "alignment statistics file")
	flags.StringArrayVar(&run.FastQCZips, "fastqc-zip", nil, "FastQC archive of a lane (repeatable, in report order)")
	flags.StringVar(&run.VCFFile, "vcf-file", "", "VCF file to analyze")
	flags.StringVar(&run.OutHTML, "out-html", "", "output HTML file")
	flags.StringVar(&run.Sample, "sample", cfg.Sample, "sample identifier shown in the report")
	flags.BoolVar(&run.BlackAndWhite, "black-and-white", cfg.BlackAndWhite, "do not use colors in output")
	flags.StringVar(&thresholdsFile, "thresholds", cfg.Thresholds, "YAML file with traffic-light thresholds")
	flags.StringVar(&run.Parse.BedOverride, "bed", "", "BED file of the target regions, instead of the one named in the .sta file")
	flags.BoolVar(&run.Parse.MergeOverlaps, "merge-bed-overlaps", false, "merge overlapping target regions when computing the target length")
	thresholds := addThresholdFlags(flags)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if err := run.check(); err != nil {
			return err
		}
		var err error
		if thresholdsFile != "" {
			if err = checkExist("--thresholds", thresholdsFile); err != nil {
				return err
			}
		}
		if run.Thresholds, err = thresholds.resolve(thresholdsFile); err != nil {
			return err
		}
		run.Timed = root.timed
		if err = runHTML(&run); err != nil {
			return err
		}
		log.Println("Wrote", run.OutHTML)
		return nil
	}
	return cmd
}

func (run *htmlRun) check() error {
	if err := checkExist("--sta-file", run.StaFile); err != nil {
		return err
	}
	for _, zip := range run.FastQCZips {
		if err := checkExist("--fastqc-zip", zip); err != nil {
			return err
		}
	}
	if err := checkExist("--vcf-file", run.VCFFile); err != nil {
		return err
	}
	return checkCreate("--out-html", run.OutHTML)
}

func runHTML(run *htmlRun) error {
	a, err := parseArtifacts(run.Timed, run.StaFile, run.Parse, run.FastQCZips, run.VCFFile)
	if err != nil {
		return err
	}
	sample := run.Sample
	if sample == "" {
		sample = strings.TrimSuffix(filepath.Base(run.StaFile), filepath.Ext(run.StaFile))
	}
	html, err := buildReport(run.Timed, a, report.Options{
		Thresholds: run.Thresholds,
		Version:    utils.ProgramVersion,
		Color:      !run.BlackAndWhite,
		Sample:     sample,
	})
	if err != nil {
		return err
	}
	staged, err := internal.Stage(run.OutHTML, bytes.NewReader(html))
	if err != nil {
		return err
	}
	return internal.Commit(staged)
}
