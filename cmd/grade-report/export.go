// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/grade-report/internal/ingest"
	"github.com/pdiddy/grade-report/internal/report"
)

var exportCmd = &cobra.Command{
	Use:   "export [document]",
	Short: "Export normalized records as YAML or JSON",
	Long: `Export writes every normalized record of the document, with a summary and
a run header (run_id, generated_at, source), as YAML or JSON. Undefined
subjects and grades are omitted from their record.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}

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
	if purify, _ := cmd.Flags().GetBool("purify"); purify {
		ds = ds.Purify()
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		return report.Export(cmd.OutOrStdout(), ds, format)
	}
	if err := report.ExportFile(output, ds, format); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Exported %d records to %s\n", ds.Len(), output)
	return nil
}

func init() {
	exportCmd.Flags().String("format", "yaml", "output format: yaml, json")
	exportCmd.Flags().Bool("purify", false, "export only rows with date, subject, and grade")
	exportCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(exportCmd)
}
