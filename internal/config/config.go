// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads grade-report settings from viper (config file,
// GRADE_REPORT_* environment variables, flags) and validates them against
// an embedded JSON Schema.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/viper"

	"github.com/pdiddy/grade-report/pkg/types"
)

// EnvPrefix is the prefix of environment variables read by AutomaticEnv.
const EnvPrefix = "GRADE_REPORT"

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "config.schema.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("loading config schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling config schema: %w", err)
	}
	return schema, nil
})

// BindEnv sets up GRADE_REPORT_* variables for v, mapping nested keys such
// as terms.month_gap to GRADE_REPORT_TERMS_MONTH_GAP.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// Validate checks cfg against the configuration schema.
func Validate(cfg types.Config) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decoding configuration: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// LogLevel maps a configured level name to a slog.Level. Unknown names
// fall back to info.
func LogLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
