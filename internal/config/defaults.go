// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"slices"

	"github.com/spf13/viper"

	"github.com/pdiddy/grade-report/internal/dataset"
	"github.com/pdiddy/grade-report/internal/normalize"
	"github.com/pdiddy/grade-report/pkg/types"
)

// DefaultConfig returns the settings used when no config file or
// environment variable overrides them.
func DefaultConfig() types.Config {
	return types.Config{
		LogLevel: "info",
		Layout: types.LayoutConfig{
			Columns: []string{"date", "teacher", "subject", "grade"},
		},
		Dates: types.DateConfig{
			Mode:   types.DateAuto,
			Layout: "2.1.2006",
		},
		Notation: types.NotationConfig{
			LetterDenominator: normalize.DefaultLetterDenominator,
		},
		Terms: types.TermConfig{
			MonthGap:   dataset.DefaultMonthGap,
			SplitMonth: dataset.DefaultSplitMonth,
			Labels:     slices.Clone(dataset.DefaultSeasonLabels),
		},
	}
}

// SetDefaults registers DefaultConfig with v so that every key is known to
// viper, which AutomaticEnv needs to bind environment variables.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("document", d.Document)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("layout.columns", d.Layout.Columns)
	v.SetDefault("dates.mode", string(d.Dates.Mode))
	v.SetDefault("dates.layout", d.Dates.Layout)
	v.SetDefault("notation.exceptions", []types.ExceptionRule{})
	v.SetDefault("notation.modifiers", []types.ModifierRule{})
	v.SetDefault("notation.letter_denominator", d.Notation.LetterDenominator)
	v.SetDefault("terms.month_gap", d.Terms.MonthGap)
	v.SetDefault("terms.split_month", d.Terms.SplitMonth)
	v.SetDefault("terms.labels", d.Terms.Labels)
}
