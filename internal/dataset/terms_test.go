// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/grade-report/pkg/types"
)

func TestSplitTerms(t *testing.T) {
	tests := []struct {
		name   string
		months []int
		gap    int
		want   []Segment
	}{
		{"autumn then spring", []int{9, 10, 11, 1, 2, 3}, 3, []Segment{{0, 3}, {3, 6}}},
		{"single term", []int{1, 2, 3, 4}, 3, []Segment{{0, 4}}},
		{"gap of exactly three stays", []int{5, 8}, 3, []Segment{{0, 2}}},
		{"four terms", []int{8, 12, 1, 4, 9}, 3, []Segment{{0, 1}, {1, 2}, {2, 4}, {4, 5}}},
		{"tighter gap", []int{9, 11, 1}, 1, []Segment{{0, 1}, {1, 2}, {2, 3}}},
		{"one month", []int{9}, 3, []Segment{{0, 1}}},
		{"empty", nil, 3, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTerms(tt.months, tt.gap))
		})
	}
}

func TestTerms(t *testing.T) {
	cfg := types.TermConfig{MonthGap: 3, SplitMonth: 7, Labels: []string{"Spring", "Autumn"}}
	terms := sampleDataset().Terms(cfg)

	require.Len(t, terms, 2)

	assert.Equal(t, "Autumn 2019", terms[0].Label)
	assert.Equal(t, 2019, terms[0].Year)
	assert.Len(t, terms[0].Records, 3)
	assert.Equal(t, 2, terms[0].Count)
	assert.InDelta(t, 8.75, terms[0].Mean, 1e-9)
	assert.Equal(t, time.Date(2019, 9, 2, 0, 0, 0, 0, time.UTC), terms[0].Start)
	assert.Equal(t, time.Date(2019, 11, 20, 0, 0, 0, 0, time.UTC), terms[0].End)

	assert.Equal(t, "Spring 2020", terms[1].Label)
	assert.Len(t, terms[1].Records, 3)
	assert.InDelta(t, 26.0/3, terms[1].Mean, 1e-9)
}

func TestTermsSkipsUndated(t *testing.T) {
	ds := New("", []types.Record{
		{Row: 0},
		rec(1, "2.9.2019", "A", 8),
	})
	terms := ds.Terms(types.TermConfig{MonthGap: 3})
	require.Len(t, terms, 1)
	assert.Len(t, terms[0].Records, 1)

	assert.Empty(t, New("", nil).Terms(types.TermConfig{}))
}

func TestSeasonLabel(t *testing.T) {
	def := types.TermConfig{}
	assert.Equal(t, "Spring", SeasonLabel(time.January, def))
	assert.Equal(t, "Spring", SeasonLabel(time.June, def))
	assert.Equal(t, "Autumn", SeasonLabel(time.July, def))
	assert.Equal(t, "Autumn", SeasonLabel(time.December, def))

	// Three seasons with a four-month split: 1-3, 4-7, 8-11, and 12 clamps.
	cfg := types.TermConfig{SplitMonth: 4, Labels: []string{"Winter", "Spring", "Autumn"}}
	assert.Equal(t, "Winter", SeasonLabel(time.March, cfg))
	assert.Equal(t, "Spring", SeasonLabel(time.April, cfg))
	assert.Equal(t, "Autumn", SeasonLabel(time.August, cfg))
	assert.Equal(t, "Autumn", SeasonLabel(time.December, cfg))
}
