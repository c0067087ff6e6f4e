// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/holtgrewe/cbqc/convert"
	"github.com/holtgrewe/cbqc/fastqc"
	"github.com/holtgrewe/cbqc/layout"
	"github.com/holtgrewe/cbqc/render"
	"github.com/holtgrewe/cbqc/report"
	"github.com/holtgrewe/cbqc/sta"
	"github.com/holtgrewe/cbqc/utils"
	"github.com/holtgrewe/cbqc/vcf"
)

// ReportHelp is the help string for this command.
const ReportHelp = "report parameters:\n" +
	"cbqc report --run-dir path --out-prefix prefix\n" +
	"[--sample id]\n" +
	"[--black-and-white]\n" +
	"[--thresholds file.yaml]\n" +
	"[--aligned-reads-green v] [--aligned-reads-yellow v]\n" +
	"[--mean-coverage-green v] [--mean-coverage-yellow v]\n" +
	"[--target-coverage-10x-green v] [--target-coverage-10x-yellow v]\n" +
	"[--target-coverage-20x-green v] [--target-coverage-20x-yellow v]\n" +
	"[--bed file] [--merge-bed-overlaps]\n" +
	"[--work-dir path]\n" +
	"[--html2pdf command] [--pdfmerge command]\n" +
	"[--timed]\n" +
	"[--log-path path]\n"

// reportRun holds everything a report run needs after the command line
// has been resolved.
type reportRun struct {
	Config
	Thresholds report.Thresholds
	Parse      sta.ParseOptions
	Timed      bool
}

func newReportCommand(cfg Config, root *rootFlags) *cobra.Command {
	var run reportRun
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the HTML and PDF quality-control report of a run",
		Long: `Build the quality-control report of a sample in a pipeline run directory.

The run directory is expected to contain cov/<sample>_exom.sta,
qc/<sample>-*.zip, vcf/<sample>.*.vcf[.gz] and qm/qualimapReport.html.
The outputs are <prefix>.html and <prefix>.pdf.

` + ReportHelp,
		Args: cobra.NoArgs,
	}
	run.Config = cfg
	flags := cmd.Flags()
	flags.StringVar(&run.RunDir, "run-dir", cfg.RunDir, "pipeline run directory")
	flags.StringVar(&run.OutPrefix, "out-prefix", cfg.OutPrefix, "path prefix of the output files")
	flags.StringVar(&run.Sample, "sample", cfg.Sample, "sample identifier (derived from the run directory if empty)")
	flags.BoolVar(&run.BlackAndWhite, "black-and-white", cfg.BlackAndWhite, "do not use colors in output")
	flags.StringVar(&run.Config.Thresholds, "thresholds", cfg.Thresholds, "YAML file with traffic-light thresholds")
	flags.StringVar(&run.WorkDir, "work-dir", cfg.WorkDir, "directory for intermediate files")
	flags.StringVar(&run.HTML2PDF, "html2pdf", cfg.HTML2PDF, "HTML to PDF command, with {in} and {out} placeholders")
	flags.StringVar(&run.PDFMerge, "pdfmerge", cfg.PDFMerge, "PDF merge command, with {inputs} and {out} placeholders")
	flags.StringVar(&run.Parse.BedOverride, "bed", "", "BED file of the target regions, instead of the one named in the .sta file")
	flags.BoolVar(&run.Parse.MergeOverlaps, "merge-bed-overlaps", false, "merge overlapping target regions when computing the target length")
	thresholds := addThresholdFlags(flags)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if err := run.Config.Validate(); err != nil {
			return err
		}
		var err error
		if run.Thresholds, err = thresholds.resolve(run.Config.Thresholds); err != nil {
			return err
		}
		run.Timed = root.timed
		result, err := runReport(cmd.Context(), &run, newConverter(&run.Config))
		if err != nil {
			return err
		}
		log.Println("Wrote", result.HTML, "and", result.PDF)
		return nil
	}
	return cmd
}

func newConverter(cfg *Config) *convert.ExecConverter {
	conv := convert.NewExecConverter()
	if cmd := convert.ParseCommand(cfg.HTML2PDF); len(cmd) > 0 {
		conv.ToPDFCommand = cmd
	}
	if cmd := convert.ParseCommand(cfg.PDFMerge); len(cmd) > 0 {
		conv.MergeCommand = cmd
	}
	return conv
}

type artifacts struct {
	alignment *sta.AlignmentStats
	lanes     []*fastqc.LaneSummary
	variants  *vcf.Stats
}

func parseArtifacts(timed bool, staFile string, parse sta.ParseOptions, lanes []string, vcfFile string) (a artifacts, err error) {
	if err = timedRun(timed, "Parsing alignment statistics.", func() (err error) {
		a.alignment, err = sta.ParseFile(staFile, parse)
		return err
	}); err != nil {
		return a, err
	}
	if err = timedRun(timed, "Parsing lane archives.", func() (err error) {
		a.lanes, err = fastqc.ParseArchives(lanes)
		return err
	}); err != nil {
		return a, err
	}
	if err = timedRun(timed, "Computing variant statistics.", func() (err error) {
		a.variants, err = vcf.ParseFile(vcfFile)
		return err
	}); err != nil {
		return a, err
	}
	return a, nil
}

func buildReport(timed bool, a artifacts, opts report.Options) (html []byte, err error) {
	var model *report.Model
	if err = timedRun(timed, "Aggregating metrics.", func() (err error) {
		model, err = report.Aggregate(a.alignment, a.lanes, a.variants, opts)
		return err
	}); err != nil {
		return nil, err
	}
	err = timedRun(timed, "Rendering report.", func() (err error) {
		html, err = render.Render(model)
		return err
	})
	return html, err
}

// runReport runs all phases of the report command in order: discover,
// parse, aggregate, render, convert, merge and publish.
func runReport(ctx context.Context, run *reportRun, conv convert.Converter) (convert.Result, error) {
	inputs, err := layout.Discover(run.RunDir, run.Sample)
	if err != nil {
		return convert.Result{}, err
	}
	log.Println("Building report for sample", inputs.Sample)

	a, err := parseArtifacts(run.Timed, inputs.Sta, run.Parse, inputs.Lanes, inputs.VCF)
	if err != nil {
		return convert.Result{}, err
	}
	html, err := buildReport(run.Timed, a, report.Options{
		Thresholds: run.Thresholds,
		Version:    utils.ProgramVersion,
		Color:      !run.BlackAndWhite,
		Sample:     inputs.Sample,
	})
	if err != nil {
		return convert.Result{}, err
	}

	packager := &convert.Packager{Converter: conv, WorkRoot: run.WorkDir}
	var result convert.Result
	err = timedRun(run.Timed, "Converting and merging documents.", func() (err error) {
		result, err = packager.Package(ctx, convert.Job{
			HTML:         html,
			Lanes:        a.lanes,
			CoverageMap:  inputs.Qualimap,
			OutputPrefix: run.OutPrefix,
		})
		return err
	})
	return result, err
}
