// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sqlview loads a grade dataset into an in-memory SQLite database so
// it can be explored with ad hoc SQL. Nothing is written to disk.
package sqlview

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/grade-report/internal/dataset"
	"github.com/pdiddy/grade-report/pkg/types"
)

// View is an in-memory SQLite database holding one dataset in the grades
// table:
//
//	grades(row, date, year, month, term, teacher, subject, grade, raw_grade, notation)
//
// date is ISO (YYYY-MM-DD); undefined fields are NULL.
type View struct {
	db *sql.DB
}

// Open creates the in-memory database and loads ds. Terms are assigned
// with termCfg over the records in chronological order.
func Open(ctx context.Context, ds *dataset.Dataset, termCfg types.TermConfig) (*View, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection: every new connection would see its own empty database.
	db.SetMaxOpenConns(1)

	v := &View{db: db}
	if err := v.createSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	if err := v.load(ctx, ds, termCfg); err != nil {
		db.Close()
		return nil, err
	}
	return v, nil
}

// Close releases the database.
func (v *View) Close() error {
	return v.db.Close()
}

func (v *View) createSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE grades (
			row INTEGER PRIMARY KEY,
			date TEXT,
			year INTEGER,
			month INTEGER,
			term TEXT,
			teacher TEXT,
			subject TEXT,
			grade REAL,
			raw_grade TEXT,
			notation TEXT
		)`,
		`CREATE INDEX idx_grades_subject ON grades(subject)`,
		`CREATE INDEX idx_grades_date ON grades(date)`,
	}
	for _, stmt := range statements {
		if _, err := v.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

func (v *View) load(ctx context.Context, ds *dataset.Dataset, termCfg types.TermConfig) error {
	termOf := make(map[int]string)
	for _, t := range ds.Sorted().Terms(termCfg) {
		for _, r := range t.Records {
			termOf[r.Row] = t.Label
		}
	}

	tx, err := v.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO grades (row, date, year, month, term, teacher, subject, grade, raw_grade, notation)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range ds.Records {
		var date sql.Null[string]
		var year, month sql.Null[int64]
		var term sql.Null[string]
		if r.Date.Valid {
			date = sql.Null[string]{V: r.Date.V.Format(time.DateOnly), Valid: true}
			year = sql.Null[int64]{V: int64(r.Date.V.Year()), Valid: true}
			month = sql.Null[int64]{V: int64(r.Date.V.Month()), Valid: true}
		}
		if label, ok := termOf[r.Row]; ok {
			term = sql.Null[string]{V: label, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			int64(r.Row), date, year, month, term, r.Teacher, r.Subject, r.Grade, r.RawGrade, nullIfEmpty(r.Notation),
		); err != nil {
			return fmt.Errorf("inserting row %d: %w", r.Row, err)
		}
	}

	return tx.Commit()
}

func nullIfEmpty(s string) sql.Null[string] {
	return sql.Null[string]{V: s, Valid: s != ""}
}

// Result holds the columns and rows of a query. NULL values are nil.
type Result struct {
	Columns []string `json:"columns" yaml:"columns"`
	Rows    [][]any  `json:"rows" yaml:"rows"`
}

// Query runs a SQL statement against the view and collects every row.
func (v *View) Query(ctx context.Context, query string, args ...any) (Result, error) {
	rows, err := v.db.QueryContext(ctx, query, args...)
	if err != nil {
		return Result{}, fmt.Errorf("querying grades: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return Result{}, fmt.Errorf("reading columns: %w", err)
	}

	res := Result{Columns: cols}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return Result{}, fmt.Errorf("scanning row: %w", err)
		}
		for i, val := range vals {
			if b, ok := val.([]byte); ok {
				vals[i] = string(b)
			}
		}
		res.Rows = append(res.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return Result{}, fmt.Errorf("iterating rows: %w", err)
	}
	return res, nil
}
