// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

// Package vcf computes variant-call statistics from the VCF file of a
// single-sample run: dbSNP membership of SNVs, zygosity, variant kinds,
// transitions/transversions and Jannovar effect annotations.
package vcf

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Stats on a VCF file.
type Stats struct {
	// Filename of the analyzed file.
	Filename string

	// DbSnp is the number of SNVs in dbSNP, NoDbSnp the number not in
	// dbSNP.
	DbSnp, NoDbSnp int64

	Insertions, Deletions, SNVs int64

	Heterozygous, Homozygous int64

	Transitions, Transversions int64

	// Annotations maps an effect annotation to the number of times it
	// occurs. Missing annotations count as zero.
	Annotations map[string]int64

	// Skipped counts records without a call or without a variant.
	Skipped int64
}

// NewStats creates an empty instance.
func NewStats(filename string) *Stats {
	return &Stats{Filename: filename, Annotations: make(map[string]int64)}
}

// Add adds the counts of other to s.
func (s *Stats) Add(other *Stats) {
	s.DbSnp += other.DbSnp
	s.NoDbSnp += other.NoDbSnp
	s.Insertions += other.Insertions
	s.Deletions += other.Deletions
	s.SNVs += other.SNVs
	s.Heterozygous += other.Heterozygous
	s.Homozygous += other.Homozygous
	s.Transitions += other.Transitions
	s.Transversions += other.Transversions
	s.Skipped += other.Skipped
	for anno, n := range other.Annotations {
		s.Annotations[anno] += n
	}
}

// Annotation returns the count for the given annotation label.
func (s *Stats) Annotation(label string) int64 {
	return s.Annotations[label]
}

// AnnotationLabels returns the annotation labels in sorted order.
func (s *Stats) AnnotationLabels() []string {
	labels := make([]string, 0, len(s.Annotations))
	for label := range s.Annotations {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// A record holds the fields of a data line needed for the statistics.
type record struct {
	ref       string
	alts      []string
	info      []string
	genotypes [2]string
}

const (
	colRef    = 3
	colAlt    = 4
	colInfo   = 7
	colFormat = 8
	colSample = 9
	nColumns  = 10
)

// errSkip marks records that are ignored with a warning.
type errSkip string

func (e errSkip) Error() string { return string(e) }

func parseRecord(sc *StringScanner, line string) (rec record, err error) {
	sc.Reset(line)
	columns := sc.Columns(nColumns + 1)
	if len(columns) < nColumns {
		return rec, fmt.Errorf("expected at least %v columns, got %v", nColumns, len(columns))
	}
	rec.ref = columns[colRef]
	if alt := columns[colAlt]; alt != "." && alt != "" {
		rec.alts = Entries(alt, ',')
	}
	rec.info = Entries(columns[colInfo], ';')

	gtIndex := -1
	for i, key := range Entries(columns[colFormat], ':') {
		if key == "GT" {
			gtIndex = i
			break
		}
	}
	if gtIndex < 0 {
		return rec, errSkip("no genotype")
	}
	call := Entries(columns[colSample], ':')
	if gtIndex >= len(call) {
		return rec, errSkip("no genotype")
	}
	alleles := strings.FieldsFunc(call[gtIndex], func(r rune) bool { return r == '/' || r == '|' })
	if len(alleles) == 0 {
		return rec, errSkip("no genotype")
	}
	if len(alleles) == 1 {
		alleles = append(alleles, alleles[0])
	}
	for i := range rec.genotypes {
		if alleles[i] == "." {
			return rec, errSkip("missing allele in genotype")
		}
		index, err := strconv.Atoi(alleles[i])
		if err != nil {
			return rec, fmt.Errorf("invalid genotype %v", call[gtIndex])
		}
		switch {
		case index == 0:
			rec.genotypes[i] = rec.ref
		case index > 0 && index <= len(rec.alts):
			rec.genotypes[i] = rec.alts[index-1]
		default:
			return rec, fmt.Errorf("genotype %v refers to missing allele %v", call[gtIndex], index)
		}
	}
	if rec.genotypes[0] == rec.ref && rec.genotypes[1] == rec.ref {
		return rec, errSkip("not a variant")
	}
	return rec, nil
}

func (rec *record) hasInfoFlag(flag string) bool {
	for _, entry := range rec.info {
		if entry == flag {
			return true
		}
	}
	return false
}

func isTransition(alt, ref string) bool {
	switch strings.ToUpper(alt + ref) {
	case "GA", "AG", "TC", "CT":
		return true
	default:
		return false
	}
}

// count updates s with the given variant record.
func (s *Stats) count(rec *record) {
	gts := rec.genotypes

	// dbSNP membership is only counted for SNVs.
	if len(gts[0]) == 1 && len(gts[1]) == 1 {
		if rec.hasInfoFlag("DB") {
			s.DbSnp++
		} else {
			s.NoDbSnp++
		}
	}

	if gts[0] == gts[1] {
		s.Homozygous++
	} else {
		s.Heterozygous++
	}

	for i, gt := range gts {
		if i == 1 && gts[0] == gts[1] {
			continue
		}
		if gt == rec.ref {
			continue
		}
		switch {
		case len(gt) == 1 && len(rec.ref) == 1:
			s.SNVs++
		case len(gt) > len(rec.ref):
			s.Insertions++
		case len(gt) < len(rec.ref):
			s.Deletions++
		}
	}

	for _, gt := range gts {
		if len(rec.ref) != 1 || len(gt) != 1 || gt == rec.ref {
			continue
		}
		if isTransition(gt, rec.ref) {
			s.Transitions++
		} else {
			s.Transversions++
		}
	}

	for _, entry := range rec.info {
		if !strings.HasPrefix(entry, "EFFECT") {
			continue
		}
		eq := strings.IndexByte(entry, '=')
		if eq < 0 {
			continue
		}
		for _, effect := range Entries(entry[eq+1:], ',') {
			s.Annotations[effect]++
		}
	}
}
