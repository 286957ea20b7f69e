// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/grade-report/internal/dataset"
)

// Format selects the export encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat accepts "yaml", "yml", "json" or "" (YAML).
func ParseFormat(s string) (Format, error) {
	switch s {
	case "yaml", "yml", "":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported format %q: use yaml or json", s)
}

// ExportRecord is a record with undefined fields omitted.
type ExportRecord struct {
	Row      int      `json:"row" yaml:"row"`
	Date     string   `json:"date" yaml:"date"`
	ISODate  string   `json:"iso_date,omitempty" yaml:"iso_date,omitempty"`
	Teacher  string   `json:"teacher" yaml:"teacher"`
	Subject  *string  `json:"subject,omitempty" yaml:"subject,omitempty"`
	Grade    *float64 `json:"grade,omitempty" yaml:"grade,omitempty"`
	RawGrade string   `json:"raw_grade" yaml:"raw_grade"`
	Notation string   `json:"notation,omitempty" yaml:"notation,omitempty"`
}

// ExportDocument is the top-level export layout.
type ExportDocument struct {
	RunID       string          `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time       `json:"generated_at" yaml:"generated_at"`
	Source      string          `json:"source" yaml:"source"`
	Summary     dataset.Summary `json:"summary" yaml:"summary"`
	Records     []ExportRecord  `json:"records" yaml:"records"`
}

// NewExport builds the export document for ds.
func NewExport(ds *dataset.Dataset, runID string, at time.Time) ExportDocument {
	doc := ExportDocument{
		RunID:       runID,
		GeneratedAt: at.UTC(),
		Source:      ds.Source,
		Summary:     ds.Summary(),
		Records:     make([]ExportRecord, len(ds.Records)),
	}
	for i, r := range ds.Records {
		e := ExportRecord{
			Row:      r.Row,
			Date:     r.DateText,
			Teacher:  r.Teacher,
			RawGrade: r.RawGrade,
			Notation: r.Notation,
		}
		if r.Date.Valid {
			e.ISODate = r.Date.V.Format(time.DateOnly)
		}
		if r.Subject.Valid {
			s := r.Subject.V
			e.Subject = &s
		}
		if r.Grade.Valid {
			g := r.Grade.V
			e.Grade = &g
		}
		doc.Records[i] = e
	}
	return doc
}

// Export writes ds to w in the given format under a fresh run ID.
func Export(w io.Writer, ds *dataset.Dataset, format Format) error {
	doc := NewExport(ds, uuid.New().String(), time.Now())

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
	}
	return nil
}

// ExportFile writes the export to path, replacing any existing file.
func ExportFile(path string, ds *dataset.Dataset, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Export(f, ds, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
