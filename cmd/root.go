// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

// Package cmd implements the cbqc command line.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/holtgrewe/cbqc/utils"
)

type rootFlags struct {
	timed   bool
	logPath string
}

// NewRootCommand returns the cbqc command tree. Flag defaults are taken
// from cfg.
func NewRootCommand(cfg Config) *cobra.Command {
	root := &rootFlags{}
	cmd := &cobra.Command{
		Use:   utils.ProgramName,
		Short: "Quality-control reports for NGS pipeline runs",
		Long: `cbqc assembles a quality-control report for a sequencing sample from
its alignment statistics, per-lane FastQC archives and variant calls,
and packages it together with the lane detail pages and the coverage
map into a single PDF document.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if root.logPath != "" {
				return setLogOutput(root.logPath)
			}
			return nil
		},
	}
	cmd.PersistentFlags().BoolVar(&root.timed, "timed", false, "measure the runtime of each phase")
	cmd.PersistentFlags().StringVar(&root.logPath, "log-path", cfg.LogPath, "write log files to the specified directory")

	cmd.AddCommand(newReportCommand(cfg, root))
	cmd.AddCommand(newHTMLCommand(cfg, root))
	cmd.AddCommand(newVersionCommand())
	return cmd
}

// Execute loads the configuration from the environment and runs the
// command given on the command line. Canceling ctx aborts the run.
func Execute(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	return NewRootCommand(cfg).ExecuteContext(ctx)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), utils.ProgramName, "version", utils.ProgramVersion)
		},
	}
}
