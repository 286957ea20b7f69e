// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/grade-report/internal/dataset"
	"github.com/pdiddy/grade-report/internal/ingest"
	"github.com/pdiddy/grade-report/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report [document]",
	Short: "Summarize a grade report",
	Long: `Report prints a summary of the complete rows of a grade report: grade
counts and mean, a histogram, and the mean per term, year, and subject.

With --watch the report is printed again every time the document changes,
until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := settings(cmd)
	if err != nil {
		return err
	}
	path, err := documentArg(args, cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("watching document", "path", path)
		return ingest.Watch(ctx, path, cfg, logger, ingest.WatchOptions{}, func(ds *dataset.Dataset, err error) {
			if err != nil {
				logger.Error("reload failed", "path", path, "error", err)
				return
			}
			fmt.Fprintf(out, "\n=== %s ===\n", path)
			report.WriteReport(out, ds.Purify().Sorted(), cfg.Terms)
		})
	}

	ds, err := ingest.Load(context.Background(), path, cfg, logger)
	if err != nil {
		return err
	}
	report.WriteReport(out, ds.Purify().Sorted(), cfg.Terms)
	return nil
}

func init() {
	reportCmd.Flags().Bool("watch", false, "re-render the report whenever the document changes")

	rootCmd.AddCommand(reportCmd)
}
