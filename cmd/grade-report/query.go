// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/grade-report/internal/ingest"
	"github.com/pdiddy/grade-report/internal/sqlview"
)

var queryCmd = &cobra.Command{
	Use:   "query <document> <sql>",
	Short: "Run SQL against the normalized records",
	Long: `Query loads the document into an in-memory SQLite table and runs the SQL
statement against it. The table is:

  grades(row, date, year, month, term, teacher, subject, grade, raw_grade, notation)

date is YYYY-MM-DD. Undefined values are NULL. Nothing is written to disk.

Example:
  grade-report query grades.html "SELECT subject, AVG(grade) FROM grades GROUP BY subject"`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, logger, err := settings(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()
	ds, err := ingest.Load(ctx, args[0], cfg, logger)
	if err != nil {
		return err
	}

	view, err := sqlview.Open(ctx, ds, cfg.Terms)
	if err != nil {
		return err
	}
	defer view.Close()

	res, err := view.Query(ctx, args[1])
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return writeResult(cmd.OutOrStdout(), res)
}

func writeResult(w io.Writer, res sqlview.Result) error {
	if len(res.Columns) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(res.Columns, "\t"))
	for _, row := range res.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatCell(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d rows\n", len(res.Rows))
	return nil
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case float64:
		return fmt.Sprintf("%.2f", x)
	}
	return fmt.Sprint(v)
}

func init() {
	queryCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(queryCmd)
}
