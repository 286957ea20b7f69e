// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders a grade dataset as text tables and exports it as
// YAML or JSON.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/grade-report/internal/dataset"
	"github.com/pdiddy/grade-report/pkg/types"
)

// barWidth is the length of the longest histogram bar.
const barWidth = 40

// WriteReport writes every section: summary, histogram, terms, years and
// subjects. ds should already be purified and sorted.
func WriteReport(w io.Writer, ds *dataset.Dataset, termCfg types.TermConfig) {
	WriteSummary(w, ds.Summary())
	fmt.Fprintln(w)
	WriteHistogram(w, ds.Histogram())
	fmt.Fprintln(w)
	WriteTerms(w, ds.Terms(termCfg))
	fmt.Fprintln(w)
	WriteYears(w, ds.ByYear())
	fmt.Fprintln(w)
	WriteSubjects(w, ds.BySubject())
}

// WriteSummary writes the grade count and distribution statistics.
func WriteSummary(w io.Writer, s dataset.Summary) {
	fmt.Fprintln(w, "Summary")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "%-10s %d\n", "Records", s.Records)
	fmt.Fprintf(w, "%-10s %d\n", "Graded", s.Graded)
	if s.Graded == 0 {
		return
	}
	fmt.Fprintf(w, "%-10s %.2f\n", "Mean", s.Mean)
	fmt.Fprintf(w, "%-10s %s\n", "Median", types.FormatGrade(s.Median))
	fmt.Fprintf(w, "%-10s %s - %s\n", "Range", types.FormatGrade(s.Min), types.FormatGrade(s.Max))
}

// WriteHistogram writes one bar per distinct grade.
func WriteHistogram(w io.Writer, bins []dataset.Bin) {
	fmt.Fprintln(w, "Grade distribution")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	if len(bins) == 0 {
		fmt.Fprintln(w, "No grades.")
		return
	}
	peak := 0
	for _, b := range bins {
		peak = max(peak, b.Count)
	}
	for _, b := range bins {
		fmt.Fprintf(w, "%6s  %-*s %d\n", types.FormatGrade(b.Grade), barWidth, bar(b.Count, peak), b.Count)
	}
}

// WriteTerms writes the count and mean grade of each academic term.
func WriteTerms(w io.Writer, terms []dataset.Term) {
	fmt.Fprintln(w, "Terms")
	fmt.Fprintf(w, "%-14s  %-10s  %-10s  %5s  %5s\n", "Term", "From", "To", "Count", "Mean")
	fmt.Fprintln(w, strings.Repeat("-", 52))
	for _, t := range terms {
		fmt.Fprintf(w, "%-14s  %-10s  %-10s  %5d  %s\n",
			t.Label, t.Start.Format("02.01.2006"), t.End.Format("02.01.2006"), t.Count, meanCell(t.GroupStats))
	}
}

// WriteYears writes the count and mean grade per calendar year.
func WriteYears(w io.Writer, years []dataset.YearStats) {
	fmt.Fprintln(w, "Years")
	fmt.Fprintf(w, "%-6s  %5s  %5s\n", "Year", "Count", "Mean")
	fmt.Fprintln(w, strings.Repeat("-", 20))
	for _, y := range years {
		fmt.Fprintf(w, "%-6d  %5d  %s\n", y.Year, y.Count, meanCell(y.GroupStats))
	}
}

// WriteSubjects writes the mean grade per subject.
func WriteSubjects(w io.Writer, subjects []dataset.SubjectStats) {
	fmt.Fprintln(w, "Subjects")
	fmt.Fprintf(w, "%-30s  %5s  %5s\n", "Subject", "Count", "Mean")
	fmt.Fprintln(w, strings.Repeat("-", 44))
	for _, s := range subjects {
		fmt.Fprintf(w, "%-30s  %5d  %s\n", truncate(s.Subject, 30), s.Count, meanCell(s.GroupStats))
	}
}

// WriteRecords writes one line per record. Undefined fields print as "-".
func WriteRecords(w io.Writer, records []types.Record) {
	fmt.Fprintf(w, "%-4s  %-10s  %-20s  %-30s  %-6s  %s\n",
		"Row", "Date", "Teacher", "Subject", "Grade", "Raw")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, r := range records {
		subject := "-"
		if r.Subject.Valid {
			subject = r.Subject.V
		}
		grade := "-"
		if r.Grade.Valid {
			grade = types.FormatGrade(r.Grade.V)
		}
		fmt.Fprintf(w, "%-4d  %-10s  %-20s  %-30s  %-6s  %s\n",
			r.Row, r.DateText, truncate(r.Teacher, 20), truncate(subject, 30), grade, r.RawGrade)
	}
	fmt.Fprintf(w, "\n%d records\n", len(records))
}

func meanCell(g dataset.GroupStats) string {
	if g.Count == 0 {
		return "    -"
	}
	return fmt.Sprintf("%5.2f", g.Mean)
}

func bar(count, peak int) string {
	if peak == 0 {
		return ""
	}
	n := count * barWidth / peak
	if n == 0 && count > 0 {
		n = 1
	}
	return strings.Repeat("#", n)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
