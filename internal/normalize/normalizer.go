// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"fmt"
	"maps"

	"github.com/pdiddy/grade-report/pkg/types"
)

// DefaultLetterDenominator is the total a letter-score digit is out of.
const DefaultLetterDenominator = 8

// DefaultExceptions returns the built-in exact-text rewrites. "91/2" is how
// a superscript half ("9<sup>1</sup>/2") reads once cell text is flattened.
func DefaultExceptions() map[string]string {
	return map[string]string{
		"91/2":  "9½",
		"9 1/2": "9½",
	}
}

// DefaultModifiers returns the built-in plain-notation suffixes.
func DefaultModifiers() map[string]float64 {
	return map[string]float64{
		"+": 0.25,
		"-": -0.25,
		"½": 0.5,
		"":  0,
	}
}

// Grade is a parsed grade cell.
type Grade struct {
	Value    float64
	Notation string
}

// Normalizer converts raw cells to values. Its tables are fixed at
// construction and it holds no mutable state, so one Normalizer may be
// shared across goroutines.
type Normalizer struct {
	exceptions map[string]string
	notations  []Notation
	dateMode   types.DateMode
}

// New builds a Normalizer from the defaults overlaid with cfg's rules.
func New(cfg types.NotationConfig, dates types.DateConfig) *Normalizer {
	exceptions := DefaultExceptions()
	for _, r := range cfg.Exceptions {
		exceptions[r.From] = r.To
	}
	modifiers := DefaultModifiers()
	for _, r := range cfg.Modifiers {
		modifiers[r.Token] = r.Value
	}
	denom := cfg.LetterDenominator
	if denom <= 0 {
		denom = DefaultLetterDenominator
	}
	mode := dates.Mode
	if mode == "" {
		mode = types.DateAuto
	}

	return NewWithNotations(exceptions, mode,
		FractionNotation(),
		LetterScoreNotation(denom),
		PlainNotation(modifiers),
	)
}

// NewWithNotations builds a Normalizer that tries notations in the given
// order. exceptions is copied.
func NewWithNotations(exceptions map[string]string, mode types.DateMode, notations ...Notation) *Normalizer {
	return &Normalizer{
		exceptions: maps.Clone(exceptions),
		notations:  append([]Notation(nil), notations...),
		dateMode:   mode,
	}
}

// ParseGrade converts whitespace-collapsed grade text to the 4-10 scale.
//
// The exception table is applied first, then each notation is tried in
// order and the first whose pattern occurs decides the result. It returns
// false when no notation matched or the matching one yielded no grade.
// The only error is an *UnknownModifierError from plain notation.
func (n *Normalizer) ParseGrade(text string) (Grade, bool, error) {
	if to, ok := n.exceptions[text]; ok {
		text = to
	}
	for _, nt := range n.notations {
		m, err := nt.Match(text)
		if err != nil {
			return Grade{}, false, err
		}
		if !m.Matched {
			continue
		}
		if !m.Valid {
			return Grade{}, false, nil
		}
		return Grade{Value: m.Grade, Notation: nt.Name()}, true, nil
	}
	return Grade{}, false, nil
}

// Normalize collapses raw's whitespace and parses it according to role.
// Empty text and unparseable cells yield an undefined value, not an error.
func (n *Normalizer) Normalize(role types.Role, raw string) (types.Value, error) {
	text := CollapseWhitespace(raw)

	switch role {
	case types.RoleDate:
		if d := ParseDate(text, n.dateMode); d != "" {
			return types.Text(role, d), nil
		}
	case types.RoleTeacher:
		if text != "" {
			return types.Text(role, text), nil
		}
	case types.RoleSubject:
		if s, ok := ParseSubject(text); ok {
			return types.Text(role, s), nil
		}
	case types.RoleGrade:
		g, ok, err := n.ParseGrade(text)
		if err != nil {
			return types.Undefined(role), err
		}
		if ok {
			return types.GradeValue(g.Value, g.Notation), nil
		}
	case types.RoleInfo, types.RoleVerbal, types.RoleSkip:
	default:
		return types.Undefined(role), fmt.Errorf("normalizing cell: unknown role %q", role)
	}
	return types.Undefined(role), nil
}
