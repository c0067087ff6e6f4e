// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

package bed

import (
	"fmt"
	"sort"
)

// Bed represents the target regions of a BED file.
type Bed struct {
	// Maps chromosome name onto bed regions.
	RegionMap map[string][]*Region
}

// Region is a single BED entry, a half-open interval [Start, End).
type Region struct {
	Chrom string
	Start int32
	End   int32
}

// NewRegion creates a region.
func NewRegion(chrom string, start int32, end int32) (*Region, error) {
	if start < 0 || end < start {
		return nil, fmt.Errorf("invalid region %v:%v-%v", chrom, start, end)
	}
	return &Region{Chrom: chrom, Start: start, End: end}, nil
}

// Length returns the number of positions in the region.
func (r *Region) Length() int64 {
	return int64(r.End) - int64(r.Start)
}

// NewBed creates an empty instance.
func NewBed() *Bed {
	return &Bed{
		RegionMap: make(map[string][]*Region),
	}
}

// AddRegion adds a region to the bed.
func (b *Bed) AddRegion(region *Region) {
	b.RegionMap[region.Chrom] = append(b.RegionMap[region.Chrom], region)
}

// Length returns the sum of the lengths of all regions. Overlapping
// regions are counted multiple times; use intervals.Covered for the
// number of distinct positions.
func (b *Bed) Length() (length int64) {
	for _, regions := range b.RegionMap {
		for _, region := range regions {
			length += region.Length()
		}
	}
	return length
}

func sortRegions(b *Bed) {
	for _, regions := range b.RegionMap {
		sort.SliceStable(regions, func(i, j int) bool {
			return regions[i].Start < regions[j].Start
		})
	}
}
