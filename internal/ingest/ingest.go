// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest turns a grade report document into a dataset: rows are
// extracted from the HTML table, each cell is normalized, and the results
// are folded into records in table order.
package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/pdiddy/grade-report/internal/dataset"
	"github.com/pdiddy/grade-report/internal/extract"
	"github.com/pdiddy/grade-report/internal/normalize"
	"github.com/pdiddy/grade-report/pkg/types"
)

const defaultDateLayout = "2.1.2006"

// Load reads the grade report at path and normalizes every row.
//
// A malformed document (extract.ErrMalformedDocument) or a grade with an
// unknown modifier (normalize.ErrUnknownModifier) aborts the load. Cells
// that merely fail to parse leave the record's field undefined.
func Load(ctx context.Context, path string, cfg types.Config, logger *slog.Logger) (*dataset.Dataset, error) {
	layout, err := extract.ParseLayout(cfg.Layout.Columns)
	if err != nil {
		return nil, fmt.Errorf("parsing column layout: %w", err)
	}

	rows, err := extract.Open(path, layout)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	ds, err := Build(ctx, path, rows, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ds, nil
}

// Build normalizes extracted rows into a dataset.
func Build(ctx context.Context, source string, rows []extract.Row, cfg types.Config, logger *slog.Logger) (*dataset.Dataset, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	n := normalize.New(cfg.Notation, cfg.Dates)
	dateLayout := cfg.Dates.Layout
	if dateLayout == "" {
		dateLayout = defaultDateLayout
	}

	records := make([]types.Record, 0, len(rows))
	graded := 0
	for _, row := range rows {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rec, err := buildRecord(n, row, dateLayout)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row.Index, err)
		}
		if rec.Grade.Valid {
			graded++
		} else {
			logger.Debug("grade undefined", "row", row.Index, "text", rec.RawGrade)
		}
		if !rec.Subject.Valid {
			logger.Debug("subject undefined", "row", row.Index)
		}
		if !rec.Date.Valid {
			logger.Debug("date undefined", "row", row.Index, "text", rec.DateText)
		}
		records = append(records, rec)
	}

	logger.Info("grade report loaded", "source", source, "rows", len(records), "graded", graded)
	return dataset.New(source, records), nil
}

func buildRecord(n *normalize.Normalizer, row extract.Row, dateLayout string) (types.Record, error) {
	rec := types.Record{Row: row.Index}
	for _, cell := range row.Cells {
		v, err := n.Normalize(cell.Role, cell.Text)
		if err != nil {
			return types.Record{}, err
		}

		switch cell.Role {
		case types.RoleDate:
			if s, ok := v.AsText(); ok {
				rec.DateText = s
				if t, err := time.Parse(dateLayout, s); err == nil {
					rec.Date = sql.Null[time.Time]{V: t, Valid: true}
				}
			}
		case types.RoleTeacher:
			rec.Teacher, _ = v.AsText()
		case types.RoleSubject:
			if s, ok := v.AsText(); ok {
				rec.Subject = sql.Null[string]{V: s, Valid: true}
			}
		case types.RoleGrade:
			rec.RawGrade = normalize.CollapseWhitespace(cell.Text)
			if g, ok := v.AsGrade(); ok {
				rec.Grade = sql.Null[float64]{V: g, Valid: true}
				rec.Notation = v.Notation()
			}
		}
	}
	return rec, nil
}
