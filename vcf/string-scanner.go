// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

package vcf

// A StringScanner can be used scan/parse strings representing
// lines in VCF files.
//
// The zero StringScanner is valid and empty.
type StringScanner struct {
	index int
	data  string
}

// Reset resets the scanner, and initializes it with the given string.
func (sc *StringScanner) Reset(s string) {
	sc.index = 0
	sc.data = s
}

// Len returns the number of ASCII characters that still need to be
// scanned/parsed.
func (sc *StringScanner) Len() int {
	return len(sc.data) - sc.index
}

func (sc *StringScanner) readUntilByte(c byte) (s string, found bool) {
	start := sc.index
	for end := sc.index; end < len(sc.data); end++ {
		if sc.data[end] == c {
			sc.index = end + 1
			return sc.data[start:end], true
		}
	}
	sc.index = len(sc.data)
	return sc.data[start:], false
}

// Columns splits the remaining string at tabs into at most n
// columns. The last column holds the unsplit rest of the line.
func (sc *StringScanner) Columns(n int) []string {
	columns := make([]string, 0, n)
	for sc.Len() > 0 && len(columns) < n-1 {
		column, _ := sc.readUntilByte('\t')
		columns = append(columns, column)
	}
	if sc.Len() > 0 {
		columns = append(columns, sc.data[sc.index:])
		sc.index = len(sc.data)
	}
	return columns
}

// Entries splits s at the separator byte.
func Entries(s string, separator byte) []string {
	var sc StringScanner
	sc.Reset(s)
	var result []string
	for {
		entry, found := sc.readUntilByte(separator)
		result = append(result, entry)
		if !found {
			return result
		}
	}
}
