// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"fmt"
	"time"

	"github.com/pdiddy/grade-report/pkg/types"
)

// Term defaults.
const (
	DefaultMonthGap   = 3
	DefaultSplitMonth = 7
)

// DefaultSeasonLabels names the halves of the year: January-June is spring,
// July-December autumn.
var DefaultSeasonLabels = []string{"Spring", "Autumn"}

// Segment is a half-open index range [Start, End).
type Segment struct {
	Start int
	End   int
}

// SplitTerms cuts a chronological month sequence into terms. A new term
// starts wherever consecutive months differ by more than gap:
// [9 10 11 1 2 3] with gap 3 splits between 11 and 1.
func SplitTerms(months []int, gap int) []Segment {
	if len(months) == 0 {
		return nil
	}
	var segs []Segment
	start := 0
	for i := 1; i < len(months); i++ {
		if abs(months[i]-months[i-1]) > gap {
			segs = append(segs, Segment{Start: start, End: i})
			start = i
		}
	}
	return append(segs, Segment{Start: start, End: len(months)})
}

// Term is a run of dated records between two term boundaries.
type Term struct {
	// Label is the season and year of the term's first record, e.g. "Autumn 2019".
	Label      string         `json:"label" yaml:"label"`
	Season     string         `json:"season" yaml:"season"`
	Year       int            `json:"year" yaml:"year"`
	Start      time.Time      `json:"start" yaml:"start"`
	End        time.Time      `json:"end" yaml:"end"`
	Records    []types.Record `json:"-" yaml:"-"`
	GroupStats `yaml:",inline"`
}

// Terms segments the dated records, in dataset order, into academic terms.
// Callers wanting chronological terms pass a Sorted dataset. Records
// without a date are skipped.
func (d *Dataset) Terms(cfg types.TermConfig) []Term {
	var dated []types.Record
	for _, r := range d.Records {
		if r.Date.Valid {
			dated = append(dated, r)
		}
	}
	months := make([]int, len(dated))
	for i, r := range dated {
		months[i] = int(r.Date.V.Month())
	}

	terms := make([]Term, 0)
	for _, seg := range SplitTerms(months, cfg.MonthGap) {
		recs := dated[seg.Start:seg.End]
		first, last := recs[0].Date.V, recs[len(recs)-1].Date.V
		season := SeasonLabel(first.Month(), cfg)
		gs := grades(recs)
		terms = append(terms, Term{
			Label:      fmt.Sprintf("%s %d", season, first.Year()),
			Season:     season,
			Year:       first.Year(),
			Start:      first,
			End:        last,
			Records:    recs,
			GroupStats: GroupStats{Count: len(gs), Mean: mean(gs)},
		})
	}
	return terms
}

// SeasonLabel names the season of month: Labels[month / SplitMonth],
// clamped to the last label.
func SeasonLabel(month time.Month, cfg types.TermConfig) string {
	split := cfg.SplitMonth
	if split <= 0 {
		split = DefaultSplitMonth
	}
	labels := cfg.Labels
	if len(labels) == 0 {
		labels = DefaultSeasonLabels
	}
	i := int(month) / split
	if i >= len(labels) {
		i = len(labels) - 1
	}
	return labels[i]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
