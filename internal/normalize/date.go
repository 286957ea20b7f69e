// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"strings"
	"unicode"

	"github.com/pdiddy/grade-report/pkg/types"
)

// ParseDate prepares a date cell for a dd.mm.yyyy parser. Sources format
// the cell either as "<weekday> dd.mm.yyyy" or plain "dd.mm.yyyy".
//
// DateWeekday drops everything up to the first space. DateAuto does the
// same only when the first token has no digits, so a plain date with a
// trailing time ("2.9.2019 10:15") is left alone. DatePlain returns text
// unchanged.
func ParseDate(text string, mode types.DateMode) string {
	switch mode {
	case types.DatePlain:
		return text
	case types.DateWeekday:
		return stripFirstToken(text)
	default:
		first, _, found := strings.Cut(text, " ")
		if !found || strings.IndexFunc(first, unicode.IsDigit) >= 0 {
			return text
		}
		return stripFirstToken(text)
	}
}

func stripFirstToken(text string) string {
	_, rest, found := strings.Cut(text, " ")
	if !found {
		return text
	}
	return strings.TrimSpace(rest)
}
