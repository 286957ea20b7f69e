// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the grade-report pipeline:
// column roles, normalized cell values, dataset records, and configuration.
package types

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Role identifies what a table column holds. Info, Verbal and Skip columns
// are dropped by the extractor before normalization.
type Role string

const (
	RoleDate    Role = "date"
	RoleTeacher Role = "teacher"
	RoleSubject Role = "subject"
	RoleGrade   Role = "grade"

	RoleInfo   Role = "info"
	RoleVerbal Role = "verbal"
	RoleSkip   Role = "skip"
)

// ParseRole maps a configured column name to a Role. Matching is
// case-insensitive.
func ParseRole(name string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(name))); r {
	case RoleDate, RoleTeacher, RoleSubject, RoleGrade, RoleInfo, RoleVerbal, RoleSkip:
		return r, nil
	}
	return "", fmt.Errorf("unknown column role %q", name)
}

// Dropped reports whether cells in this column are discarded.
func (r Role) Dropped() bool {
	return r == RoleInfo || r == RoleVerbal || r == RoleSkip
}

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindUndefined ValueKind = iota
	KindText
	KindGrade
)

// Value is the normalized content of one cell. Date, Teacher and Subject
// cells hold text; Grade cells hold a number on the 4-10 scale. A cell that
// could not be parsed is KindUndefined rather than an empty sentinel.
type Value struct {
	Role Role
	Kind ValueKind

	text     string
	grade    float64
	notation string
}

// Text returns a defined text value for role.
func Text(role Role, s string) Value {
	return Value{Role: role, Kind: KindText, text: s}
}

// GradeValue returns a defined grade value. notation names the grade
// notation that produced it (fraction, letter, plain).
func GradeValue(g float64, notation string) Value {
	return Value{Role: RoleGrade, Kind: KindGrade, grade: g, notation: notation}
}

// Undefined returns the absent value for role.
func Undefined(role Role) Value {
	return Value{Role: role, Kind: KindUndefined}
}

// Defined reports whether v carries a value.
func (v Value) Defined() bool { return v.Kind != KindUndefined }

// AsText returns the text and true when v is a text value.
func (v Value) AsText() (string, bool) {
	if v.Kind != KindText {
		return "", false
	}
	return v.text, true
}

// AsGrade returns the grade and true when v is a grade value.
func (v Value) AsGrade() (float64, bool) {
	if v.Kind != KindGrade {
		return 0, false
	}
	return v.grade, true
}

// Notation returns the notation name of a grade value, or "".
func (v Value) Notation() string { return v.notation }

func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.text
	case KindGrade:
		return FormatGrade(v.grade)
	}
	return "-"
}

// FormatGrade renders a grade with at most two decimals and no trailing zeros.
func FormatGrade(g float64) string {
	s := fmt.Sprintf("%.2f", g)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Record is one normalized table row.
type Record struct {
	// Row is the zero-based index of the row in the source table body.
	Row int `json:"row" yaml:"row"`

	// DateText is the date cell after weekday stripping (dd.mm.yyyy).
	DateText string `json:"date_text" yaml:"date_text"`

	// Date is the parsed date; invalid when DateText did not parse.
	Date sql.Null[time.Time] `json:"-" yaml:"-"`

	Teacher string `json:"teacher" yaml:"teacher"`

	// Subject is the subject name after the course code; invalid when the
	// cell had no "code: name" form.
	Subject sql.Null[string] `json:"-" yaml:"-"`

	// Grade is on the 4-10 scale; invalid when no notation matched.
	Grade sql.Null[float64] `json:"-" yaml:"-"`

	// RawGrade is the whitespace-collapsed grade cell text.
	RawGrade string `json:"raw_grade" yaml:"raw_grade"`

	// Notation names the grade notation that matched, empty if none.
	Notation string `json:"notation,omitempty" yaml:"notation,omitempty"`
}

// Complete reports whether every column required for aggregation is defined.
func (r Record) Complete() bool {
	return r.Date.Valid && r.Subject.Valid && r.Grade.Valid
}
