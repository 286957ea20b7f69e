// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"maps"
	"regexp"
	"strconv"
)

// Notation names.
const (
	NotationFraction = "fraction"
	NotationLetter   = "letter"
	NotationPlain    = "plain"
)

// Match is the outcome of trying one notation against a grade cell.
type Match struct {
	// Matched is true when the notation's pattern occurs in the text. A
	// matched notation ends the search even if it yields no grade.
	Matched bool

	// Valid is true when Grade holds a usable value.
	Valid bool

	Grade float64
}

// Notation recognises one textual grade encoding.
type Notation interface {
	// Name identifies the notation in records and logs.
	Name() string

	// Match looks for the notation in text and converts it to the 4-10 scale.
	Match(text string) (Match, error)
}

// fractionPattern matches "score/total" pairs such as "8/8" or "7 / 8".
var fractionPattern = regexp.MustCompile(`(\d+)\W*/\W*(\d+)`)

type fractionNotation struct{}

// FractionNotation returns the notation for one or more score/total pairs.
// Each pair is rescaled with ToFinnishGrade and the grade is their mean.
// Pairs with a zero total are ignored.
func FractionNotation() Notation { return fractionNotation{} }

func (fractionNotation) Name() string { return NotationFraction }

func (fractionNotation) Match(text string) (Match, error) {
	pairs := fractionPattern.FindAllStringSubmatch(text, -1)
	if len(pairs) == 0 {
		return Match{}, nil
	}
	grades := make([]float64, 0, len(pairs))
	for _, p := range pairs {
		score, err := strconv.ParseFloat(p[1], 64)
		if err != nil {
			continue
		}
		total, err := strconv.ParseFloat(p[2], 64)
		if err != nil || total == 0 {
			continue
		}
		grades = append(grades, ToFinnishGrade(score, total))
	}
	return meanMatch(grades), nil
}

// letterPattern matches a letter A-D followed, after any non-digits, by a
// single digit score: "C8", "b 6", "A: 7".
var letterPattern = regexp.MustCompile(`[A-Da-d]\D*(\d)`)

type letterNotation struct {
	denom float64
}

// LetterScoreNotation returns the notation for letter-score pairs such as
// "C8". Each digit is a score out of denom.
func LetterScoreNotation(denom int) Notation {
	return letterNotation{denom: float64(denom)}
}

func (letterNotation) Name() string { return NotationLetter }

func (n letterNotation) Match(text string) (Match, error) {
	found := letterPattern.FindAllStringSubmatch(text, -1)
	if len(found) == 0 {
		return Match{}, nil
	}
	grades := make([]float64, 0, len(found))
	for _, f := range found {
		// A single ASCII digit always parses.
		score := float64(f[1][0] - '0')
		grades = append(grades, ToFinnishGrade(score, n.denom))
	}
	return meanMatch(grades), nil
}

// plainPattern matches the first run of digits and the non-digit suffix
// after it: "9+", "8-", "9½".
var plainPattern = regexp.MustCompile(`(\d+)(\D*)`)

type plainNotation struct {
	modifiers map[string]float64
}

// PlainNotation returns the notation for an integer grade with an optional
// suffix. modifiers maps each accepted suffix to its offset; it is copied.
// A suffix missing from the table is an *UnknownModifierError.
func PlainNotation(modifiers map[string]float64) Notation {
	return plainNotation{modifiers: maps.Clone(modifiers)}
}

func (plainNotation) Name() string { return NotationPlain }

func (n plainNotation) Match(text string) (Match, error) {
	m := plainPattern.FindStringSubmatch(text)
	if m == nil {
		return Match{}, nil
	}
	base, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Match{Matched: true}, nil
	}
	offset, ok := n.modifiers[m[2]]
	if !ok {
		return Match{Matched: true}, &UnknownModifierError{Text: text, Token: m[2]}
	}
	return Match{Matched: true, Valid: true, Grade: base + offset}, nil
}

func meanMatch(grades []float64) Match {
	if len(grades) == 0 {
		return Match{Matched: true}
	}
	var sum float64
	for _, g := range grades {
		sum += g
	}
	return Match{Matched: true, Valid: true, Grade: sum / float64(len(grades))}
}
