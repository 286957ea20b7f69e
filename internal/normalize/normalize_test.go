// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/grade-report/pkg/types"
)

func defaultNormalizer() *Normalizer {
	return New(types.NotationConfig{}, types.DateConfig{})
}

func TestToFinnishGrade(t *testing.T) {
	tests := []struct {
		x, denom float64
		want     float64
	}{
		{8, 8, 10},
		{7, 8, 9.25},
		{6, 8, 8.5},
		{5, 8, 7.75},
		{0, 8, 4},
		{4, 7, 7.25},
		{2, 3, 8},
		{13, 20, 7.75},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToFinnishGrade(tt.x, tt.denom), "%v/%v", tt.x, tt.denom)
	}
}

func TestToFinnishGradeQuarterFloorAndMonotonic(t *testing.T) {
	for denom := 1; denom <= 40; denom++ {
		prev := math.Inf(-1)
		for x := 0; x <= denom; x++ {
			got := ToFinnishGrade(float64(x), float64(denom))
			assert.Zero(t, math.Mod(got, 0.25), "%d/%d = %v", x, denom, got)
			assert.GreaterOrEqual(t, got, 4.0)
			assert.LessOrEqual(t, got, 10.0)
			assert.GreaterOrEqual(t, got, prev, "%d/%d not monotonic", x, denom)
			prev = got
		}
	}
}

func TestFloorMod(t *testing.T) {
	assert.Equal(t, 0.0, floorMod(9.25, 0.25))
	assert.InDelta(t, 0.15, floorMod(7.9, 0.25), 1e-9)
	assert.InDelta(t, 0.1, floorMod(-0.15, 0.25), 1e-9)
}

func TestParseGrade(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		want     float64
		notation string
	}{
		{"full fraction", "8/8", 10, NotationFraction},
		{"fraction floors to quarter", "7/8", 9.25, NotationFraction},
		{"fraction with spaced separator", "7 / 8", 9.25, NotationFraction},
		{"fraction pairs are averaged", "A: 8/8 B: 6/8", 9.25, NotationFraction},
		{"zero total pair is ignored", "8/0 7/8", 9.25, NotationFraction},
		{"letter score", "C8", 10, NotationLetter},
		{"letter score is case-insensitive", "b6", 8.5, NotationLetter},
		{"letter scores are averaged", "C8 B6", 9.25, NotationLetter},
		{"letter skips non-digits", "A: 7", 9.25, NotationLetter},
		{"plain", "9", 9, NotationPlain},
		{"plain plus", "9+", 9.25, NotationPlain},
		{"plain minus", "9-", 8.75, NotationPlain},
		{"plain half", "9½", 9.5, NotationPlain},
		{"plain ten", "10", 10, NotationPlain},
		{"plain after prefix", "hyv. 8", 8, NotationPlain},
		{"exception rewrites flattened half", "91/2", 9.5, NotationPlain},
		{"exception with space", "9 1/2", 9.5, NotationPlain},
		{"fraction wins over letter", "C8 3/8", 6.25, NotationFraction},
		{"letter wins over plain", "C 8", 10, NotationLetter},
	}

	n := defaultNormalizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, ok, err := n.ParseGrade(tt.text)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.want, g.Value)
			assert.Equal(t, tt.notation, g.Notation)
		})
	}
}

func TestParseGradeUndefined(t *testing.T) {
	n := defaultNormalizer()
	for _, text := range []string{"", "S", "H", "hylätty", "5/0"} {
		g, ok, err := n.ParseGrade(text)
		require.NoError(t, err, text)
		assert.False(t, ok, text)
		assert.Equal(t, Grade{}, g)
	}
}

func TestParseGradeUnknownModifier(t *testing.T) {
	n := defaultNormalizer()

	_, ok, err := n.ParseGrade("9?")
	require.Error(t, err)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrUnknownModifier)

	var modErr *UnknownModifierError
	require.ErrorAs(t, err, &modErr)
	assert.Equal(t, "?", modErr.Token)
	assert.Equal(t, "9?", modErr.Text)
}

func TestNewMergesConfiguredTables(t *testing.T) {
	n := New(types.NotationConfig{
		Exceptions:        []types.ExceptionRule{{From: "S", To: "8"}},
		Modifiers:         []types.ModifierRule{{Token: "=", Value: -0.5}, {Token: "+", Value: 0.3}},
		LetterDenominator: 10,
	}, types.DateConfig{})

	tests := map[string]float64{
		"S":    8,
		"9=":   8.5,
		"9+":   9.3,
		"9½":   9.5,
		"B5":   7,
		"91/2": 9.5,
	}
	for text, want := range tests {
		g, ok, err := n.ParseGrade(text)
		require.NoError(t, err, text)
		require.True(t, ok, text)
		assert.Equal(t, want, g.Value, text)
	}
}

func TestNotationsInIsolation(t *testing.T) {
	t.Run("fraction ignores letters", func(t *testing.T) {
		m, err := FractionNotation().Match("C8")
		require.NoError(t, err)
		assert.False(t, m.Matched)
	})
	t.Run("fraction with only zero totals matches without a grade", func(t *testing.T) {
		m, err := FractionNotation().Match("3/0")
		require.NoError(t, err)
		assert.True(t, m.Matched)
		assert.False(t, m.Valid)
	})
	t.Run("letter needs a trailing digit", func(t *testing.T) {
		m, err := LetterScoreNotation(8).Match("abc")
		require.NoError(t, err)
		assert.False(t, m.Matched)
	})
	t.Run("letter outside A-D is ignored", func(t *testing.T) {
		m, err := LetterScoreNotation(8).Match("E7")
		require.NoError(t, err)
		assert.False(t, m.Matched)
	})
	t.Run("plain copies its modifier table", func(t *testing.T) {
		mods := map[string]float64{"": 0}
		nt := PlainNotation(mods)
		mods["+"] = 1
		_, err := nt.Match("9+")
		assert.ErrorIs(t, err, ErrUnknownModifier)
	})
	t.Run("plain without digits", func(t *testing.T) {
		m, err := PlainNotation(DefaultModifiers()).Match("S")
		require.NoError(t, err)
		assert.False(t, m.Matched)
	})
}

func TestNormalizerOrderIsConfigurable(t *testing.T) {
	n := NewWithNotations(nil, types.DateAuto,
		LetterScoreNotation(8),
		FractionNotation(),
	)
	g, ok, err := n.ParseGrade("C8 3/8")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 10.0, g.Value)
	assert.Equal(t, NotationLetter, g.Notation)
}

func TestNormalize(t *testing.T) {
	n := defaultNormalizer()

	tests := []struct {
		name string
		role types.Role
		raw  string
		want types.Value
	}{
		{"date with weekday", types.RoleDate, "Ma  2.9.2019", types.Text(types.RoleDate, "2.9.2019")},
		{"plain date", types.RoleDate, "2.9.2019", types.Text(types.RoleDate, "2.9.2019")},
		{"empty date", types.RoleDate, "  ", types.Undefined(types.RoleDate)},
		{"teacher whitespace collapsed", types.RoleTeacher, " Virtanen\n\tAnna ", types.Text(types.RoleTeacher, "Virtanen Anna")},
		{"subject after code", types.RoleSubject, "MAA2: Matematiikka", types.Text(types.RoleSubject, "Matematiikka")},
		{"subject without code", types.RoleSubject, "Matematiikka", types.Undefined(types.RoleSubject)},
		{"grade", types.RoleGrade, " 9 ", types.GradeValue(9, NotationPlain)},
		{"grade unparseable", types.RoleGrade, "S", types.Undefined(types.RoleGrade)},
		{"dropped column", types.RoleVerbal, "Hyvää työtä", types.Undefined(types.RoleVerbal)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.Normalize(tt.role, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeErrors(t *testing.T) {
	n := defaultNormalizer()

	_, err := n.Normalize(types.RoleGrade, "9 +")
	assert.ErrorIs(t, err, ErrUnknownModifier)

	_, err = n.Normalize(types.Role("comment"), "x")
	assert.Error(t, err)
}
