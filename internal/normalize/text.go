// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize turns raw grade-report cell text into normalized values:
// collapsed text for date, teacher and subject columns, and a number on the
// Finnish 4-10 scale for grade columns.
//
// Grade cells come in three notations, tried in order: fraction ("7/8"),
// letter-score ("C8") and plain with a modifier suffix ("9+"). The first
// notation whose pattern occurs in the text decides the grade.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CollapseWhitespace composes s to NFC, replaces every run of Unicode
// whitespace (including no-break spaces) with one ASCII space, and trims
// the ends. It is idempotent.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}
