// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

package internal

import (
	"fmt"
	"strings"
)

// A ConfigurationError reports a missing or invalid required input
// location or setting. It is raised before any processing starts.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %v: %v", e.Field, e.Reason)
}

// A ParseError reports a malformed or structurally incomplete input
// artifact. Line is 0 when the error is not tied to a specific line.
type ParseError struct {
	File  string
	Line  int
	Field string
	Err   error
}

// NewParseError formats a ParseError for the given file, line and field.
func NewParseError(file string, line int, field, format string, v ...interface{}) *ParseError {
	return &ParseError{File: file, Line: line, Field: field, Err: fmt.Errorf(format, v...)}
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse error in %v", e.File)
	if e.Line > 0 {
		fmt.Fprintf(&b, ", line %v", e.Line)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ", field %q", e.Field)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// An AggregationError reports a required derived metric that cannot be
// computed. Ratios that are merely not applicable are not errors.
type AggregationError struct {
	Metric string
	Reason string
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("cannot compute %v: %v", e.Metric, e.Reason)
}

// A ConversionError reports a failed external conversion or merge
// process. ExitCode is -1 if the process did not exit normally.
type ConversionError struct {
	Input    string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("conversion of %v failed", e.Input)
	if e.ExitCode >= 0 {
		msg += fmt.Sprintf(" with exit status %v", e.ExitCode)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += "\n" + stderr
	}
	return msg
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
