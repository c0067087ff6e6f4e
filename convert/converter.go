// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

// Package convert turns the rendered report and its attachments into a
// single PDF document, using external conversion and merge tools.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/holtgrewe/cbqc/internal"
)

// A Converter converts documents to PDF and merges PDF files.
type Converter interface {
	// ToPDF converts the HTML document src into the PDF file dst.
	ToPDF(ctx context.Context, src, dst string) error
	// Merge concatenates the PDF files srcs in order into dst.
	Merge(ctx context.Context, srcs []string, dst string) error
}

// Placeholders in converter command templates.
const (
	InputPlaceholder  = "{in}"
	OutputPlaceholder = "{out}"
	InputsPlaceholder = "{inputs}"
)

// Default command templates.
var (
	DefaultToPDFCommand = []string{"wkhtmltopdf", "--quiet", InputPlaceholder, OutputPlaceholder}
	DefaultMergeCommand = []string{"pdfunite", InputsPlaceholder, OutputPlaceholder}
)

// ExecConverter runs external programs. Each command is a template
// whose arguments may contain the placeholders {in}, {out} and
// {inputs}. The process is killed when the context is canceled.
type ExecConverter struct {
	ToPDFCommand []string
	MergeCommand []string
}

// NewExecConverter returns an ExecConverter with the default commands.
func NewExecConverter() *ExecConverter {
	return &ExecConverter{ToPDFCommand: DefaultToPDFCommand, MergeCommand: DefaultMergeCommand}
}

// ParseCommand splits a command line at white space. Empty command
// lines yield nil.
func ParseCommand(command string) []string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func expand(template []string, in, out string, inputs []string) []string {
	var args []string
	for _, arg := range template {
		switch arg {
		case InputsPlaceholder:
			args = append(args, inputs...)
		default:
			arg = strings.ReplaceAll(arg, InputPlaceholder, in)
			arg = strings.ReplaceAll(arg, OutputPlaceholder, out)
			args = append(args, arg)
		}
	}
	return args
}

func run(ctx context.Context, input string, args []string) error {
	if len(args) == 0 {
		return &internal.ConversionError{Input: input, ExitCode: -1, Err: errors.New("no command configured")}
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%v: %w", err, ctxErr)
		}
		return &internal.ConversionError{Input: input, ExitCode: exitCode, Stderr: stderr.String(), Err: err}
	}
	return nil
}

// ToPDF implements Converter.
func (c *ExecConverter) ToPDF(ctx context.Context, src, dst string) error {
	return run(ctx, src, expand(c.ToPDFCommand, src, dst, []string{src}))
}

// Merge implements Converter.
func (c *ExecConverter) Merge(ctx context.Context, srcs []string, dst string) error {
	return run(ctx, strings.Join(srcs, " "), expand(c.MergeCommand, "", dst, srcs))
}
