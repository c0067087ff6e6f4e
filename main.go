// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

// cbqc assembles quality-control reports for NGS pipeline runs: it
// reads the alignment statistics, per-lane FastQC archives and variant
// calls of a sample, renders a self-contained HTML report, and merges
// it with the lane detail pages and the coverage map into one PDF.
//
// Please see http://github.com/holtgrewe/cbqc for a documentation of
// the tool.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"

	"github.com/holtgrewe/cbqc/cmd"
)

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)

	ctx, stop := signal.NotifyContext(context.Background(), unix.SIGINT, unix.SIGTERM)
	err := cmd.Execute(ctx)
	stop()
	if err != nil {
		log.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
