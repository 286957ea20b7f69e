// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"regexp"
	"strings"
)

// subjectPattern matches the subject name after the course code colon.
// The name runs to the end of the cell and may hold letters, digits, '+',
// commas and spaces.
var subjectPattern = regexp.MustCompile(`:\s*([\p{L}\p{N}_+, ]*)$`)

// ParseSubject extracts the subject name from text of the form
// "<course code>: <subject name>". It returns false when the cell has no
// such suffix or the name is empty.
func ParseSubject(text string) (string, bool) {
	m := subjectPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	if name == "" {
		return "", false
	}
	return name, true
}
