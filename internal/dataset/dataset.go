// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset holds normalized grade records and the groupings the
// report draws: grade histogram, academic terms, calendar years and subjects.
package dataset

import (
	"cmp"
	"slices"
	"sort"

	"github.com/pdiddy/grade-report/pkg/types"
)

// Dataset is an ordered set of records read from one grade report.
type Dataset struct {
	// Source is the document the records came from.
	Source  string
	Records []types.Record
}

// New returns a Dataset over records. The slice is not copied.
func New(source string, records []types.Record) *Dataset {
	return &Dataset{Source: source, Records: records}
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.Records) }

// Purify returns the records whose date, subject and grade are all defined,
// in their original order.
func (d *Dataset) Purify() *Dataset {
	kept := make([]types.Record, 0, len(d.Records))
	for _, r := range d.Records {
		if r.Complete() {
			kept = append(kept, r)
		}
	}
	return New(d.Source, kept)
}

// Sorted returns a copy ordered by date, oldest first. Records without a
// date keep their relative order after the dated ones.
func (d *Dataset) Sorted() *Dataset {
	out := slices.Clone(d.Records)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Date, out[j].Date
		if a.Valid != b.Valid {
			return a.Valid
		}
		return a.Valid && a.V.Before(b.V)
	})
	return New(d.Source, out)
}

// Grades returns the defined grades in record order.
func (d *Dataset) Grades() []float64 {
	return grades(d.Records)
}

func grades(records []types.Record) []float64 {
	var gs []float64
	for _, r := range records {
		if r.Grade.Valid {
			gs = append(gs, r.Grade.V)
		}
	}
	return gs
}

// Summary describes the distribution of defined grades.
type Summary struct {
	Records int     `json:"records" yaml:"records"`
	Graded  int     `json:"graded" yaml:"graded"`
	Mean    float64 `json:"mean" yaml:"mean"`
	Median  float64 `json:"median" yaml:"median"`
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
}

// Summary computes count, mean, median and range over the defined grades.
// Statistics are zero when no grade is defined.
func (d *Dataset) Summary() Summary {
	gs := d.Grades()
	s := Summary{Records: len(d.Records), Graded: len(gs)}
	if len(gs) == 0 {
		return s
	}
	sorted := slices.Clone(gs)
	slices.Sort(sorted)
	s.Mean = mean(gs)
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		s.Median = sorted[mid]
	} else {
		s.Median = (sorted[mid-1] + sorted[mid]) / 2
	}
	return s
}

// Bin is one histogram bar: how many records have exactly this grade.
type Bin struct {
	Grade float64 `json:"grade" yaml:"grade"`
	Count int     `json:"count" yaml:"count"`
}

// Histogram counts records per unique grade value, ascending by grade.
func (d *Dataset) Histogram() []Bin {
	counts := make(map[float64]int)
	for _, g := range d.Grades() {
		counts[g]++
	}
	bins := make([]Bin, 0, len(counts))
	for g, n := range counts {
		bins = append(bins, Bin{Grade: g, Count: n})
	}
	slices.SortFunc(bins, func(a, b Bin) int { return cmp.Compare(a.Grade, b.Grade) })
	return bins
}

// GroupStats is the count and mean grade of one group.
type GroupStats struct {
	Count int     `json:"count" yaml:"count"`
	Mean  float64 `json:"mean" yaml:"mean"`
}

// YearStats groups graded, dated records by calendar year.
type YearStats struct {
	Year       int `json:"year" yaml:"year"`
	GroupStats `yaml:",inline"`
}

// ByYear returns grade statistics per calendar year, ascending.
func (d *Dataset) ByYear() []YearStats {
	byYear := make(map[int][]float64)
	for _, r := range d.Records {
		if r.Date.Valid && r.Grade.Valid {
			y := r.Date.V.Year()
			byYear[y] = append(byYear[y], r.Grade.V)
		}
	}
	out := make([]YearStats, 0, len(byYear))
	for y, gs := range byYear {
		out = append(out, YearStats{Year: y, GroupStats: GroupStats{Count: len(gs), Mean: mean(gs)}})
	}
	slices.SortFunc(out, func(a, b YearStats) int { return cmp.Compare(a.Year, b.Year) })
	return out
}

// SubjectStats groups graded records by subject name.
type SubjectStats struct {
	Subject    string `json:"subject" yaml:"subject"`
	GroupStats `yaml:",inline"`
}

// BySubject returns the mean grade per subject, sorted by subject name.
func (d *Dataset) BySubject() []SubjectStats {
	bySubject := make(map[string][]float64)
	for _, r := range d.Records {
		if r.Subject.Valid && r.Grade.Valid {
			bySubject[r.Subject.V] = append(bySubject[r.Subject.V], r.Grade.V)
		}
	}
	out := make([]SubjectStats, 0, len(bySubject))
	for s, gs := range bySubject {
		out = append(out, SubjectStats{Subject: s, GroupStats: GroupStats{Count: len(gs), Mean: mean(gs)}})
	}
	slices.SortFunc(out, func(a, b SubjectStats) int { return cmp.Compare(a.Subject, b.Subject) })
	return out
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
