// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

package utils

const (
	// ProgramName is "cbqc"
	ProgramName = "cbqc"

	// ProgramVersion is the version of the cbqc binary, embedded in
	// every rendered report
	ProgramVersion = "0.2.0"

	// ProgramURL is the repository for the cbqc source code
	ProgramURL = "http://github.com/holtgrewe/cbqc"
)
