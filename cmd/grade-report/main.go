// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the grade-report CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/grade-report/internal/config"
	"github.com/pdiddy/grade-report/internal/extract"
	"github.com/pdiddy/grade-report/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the grade-report CLI.
var rootCmd = &cobra.Command{
	Use:   "grade-report",
	Short: "Normalize and summarize school grade reports",
	Long: `grade-report reads a grade report exported as an HTML table, normalizes
every grade to the Finnish 4-10 scale, and summarizes the result.

Grades may be written as fractions ("31/40"), letter scores ("B 6"), or
plain numbers with a modifier ("8+", "9½"). Subjects are taken from the
"code: name" subject cell and dates from the dd.mm.yyyy date cell.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./grade-report.yaml or ~/.config/grade-report/grade-report.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("layout", "", "column layout preset: default, wilma")

	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("grade-report")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "grade-report"))
		}
	}

	config.SetDefaults(viper.GetViper())
	config.BindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// settings resolves the effective configuration for a command: config file,
// environment, then the --layout flag. It also builds the logger.
func settings(cmd *cobra.Command) (types.Config, *slog.Logger, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return types.Config{}, nil, err
	}

	if name, _ := cmd.Flags().GetString("layout"); name != "" {
		layout, ok := extract.Presets[name]
		if !ok {
			return types.Config{}, nil, fmt.Errorf("%w: layout preset %q", extract.ErrUnknownColumn, name)
		}
		cfg.Layout.Columns = layoutColumns(layout)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.LogLevel(cfg.LogLevel),
	}))
	return cfg, logger, nil
}

func layoutColumns(l extract.Layout) []string {
	roles := l.Roles()
	cols := make([]string, len(roles))
	for i, r := range roles {
		cols[i] = string(r)
	}
	return cols
}

// documentArg picks the document path from the first argument, falling
// back to the configured document.
func documentArg(args []string, cfg types.Config) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if cfg.Document != "" {
		return cfg.Document, nil
	}
	return "", fmt.Errorf("no document: pass a path or set document in grade-report.yaml")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
