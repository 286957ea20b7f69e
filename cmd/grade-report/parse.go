// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pdiddy/grade-report/internal/ingest"
	"github.com/pdiddy/grade-report/internal/report"
)

var parseCmd = &cobra.Command{
	Use:   "parse [document]",
	Short: "Print the normalized rows of a grade report",
	Long: `Parse extracts the grade table from the document and prints each row with
its date, subject, and normalized grade. Rows missing a date, subject, or
grade are left out unless --all is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, logger, err := settings(cmd)
	if err != nil {
		return err
	}
	path, err := documentArg(args, cfg)
	if err != nil {
		return err
	}

	ds, err := ingest.Load(context.Background(), path, cfg, logger)
	if err != nil {
		return err
	}
	if all, _ := cmd.Flags().GetBool("all"); !all {
		ds = ds.Purify()
	}

	report.WriteRecords(cmd.OutOrStdout(), ds.Records)
	return nil
}

func init() {
	parseCmd.Flags().Bool("all", false, "include rows with undefined fields")

	rootCmd.AddCommand(parseCmd)
}
