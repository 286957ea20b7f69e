// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/grade-report/internal/extract"
	"github.com/pdiddy/grade-report/internal/sqlview"
	"github.com/pdiddy/grade-report/pkg/types"
)

const sampleDoc = `<html><body><table><tbody>
<tr><th>Päivä</th><th>Opettaja</th><th>Kurssi</th><th>Arvosana</th></tr>
<tr><td>Ma 2.9.2019</td><td>Virtanen Anna</td><td>MAA2: Matematiikka</td><td>9+</td></tr>
<tr><td>Ti 15.10.2019</td><td>Korhonen Ville</td><td>ENA1: Englanti</td><td>8</td></tr>
<tr><td>Ke 16.10.2019</td><td>Korhonen Ville</td><td>LI1 Liikunta</td><td>S</td></tr>
</tbody></table></body></html>`

// subjectOrderedDoc lists grades by subject, so the rows are not in date order.
const subjectOrderedDoc = `<html><body><table><tbody>
<tr><td>Ma 2.9.2019</td><td>Virtanen Anna</td><td>MAA2: Matematiikka</td><td>9</td></tr>
<tr><td>Ma 3.2.2020</td><td>Virtanen Anna</td><td>MAA3: Matematiikka</td><td>8</td></tr>
<tr><td>Ti 10.9.2019</td><td>Korhonen Ville</td><td>ENA1: Englanti</td><td>7</td></tr>
<tr><td>Ti 11.2.2020</td><td>Korhonen Ville</td><td>ENA2: Englanti</td><td>10</td></tr>
</tbody></table></body></html>`

func writeSample(t *testing.T) string {
	t.Helper()
	return writeDoc(t, sampleDoc)
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

// resetFlags restores every flag of cmd and its subcommands to its default
// so one test's flags do not leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeDoc(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grades.html")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestDocumentArg(t *testing.T) {
	path, err := documentArg([]string{"a.html"}, types.Config{Document: "b.html"})
	require.NoError(t, err)
	assert.Equal(t, "a.html", path)

	path, err = documentArg(nil, types.Config{Document: "b.html"})
	require.NoError(t, err)
	assert.Equal(t, "b.html", path)

	_, err = documentArg(nil, types.Config{})
	assert.Error(t, err)
}

func TestLayoutColumns(t *testing.T) {
	assert.Equal(t, []string{"date", "teacher", "subject", "info", "grade", "verbal"}, layoutColumns(extract.WilmaLayout))
}

func TestWriteResult(t *testing.T) {
	var out bytes.Buffer
	err := writeResult(&out, sqlview.Result{
		Columns: []string{"subject", "avg"},
		Rows: [][]any{
			{"Englanti", 8.0},
			{nil, 9.25},
		},
	})
	require.NoError(t, err)

	lines := strings.Split(out.String(), "\n")
	assert.Equal(t, "subject   avg", lines[0])
	assert.Equal(t, "Englanti  8.00", lines[1])
	assert.Equal(t, "NULL      9.25", lines[2])
	assert.Contains(t, out.String(), "2 rows")
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "NULL", formatCell(nil))
	assert.Equal(t, "8.25", formatCell(8.25))
	assert.Equal(t, "3", formatCell(int64(3)))
	assert.Equal(t, "Spring 2020", formatCell("Spring 2020"))
}

func TestParseCommand(t *testing.T) {
	out := execute(t, "parse", writeSample(t), "--all")

	assert.Contains(t, out, "Matematiikka")
	assert.Contains(t, out, "9.25")
	assert.Contains(t, out, "Englanti")
	assert.Contains(t, out, "3 records")
}

func TestQueryCommand(t *testing.T) {
	out := execute(t, "query", writeSample(t), "SELECT COUNT(*) AS n FROM grades WHERE grade IS NOT NULL")

	assert.Equal(t, "n\n2\n\n1 rows\n", out)
}

func TestReportCommandSortsTerms(t *testing.T) {
	out := execute(t, "report", writeDoc(t, subjectOrderedDoc))

	assert.Equal(t, 1, strings.Count(out, "Autumn 2019"))
	assert.Equal(t, 1, strings.Count(out, "Spring 2020"))
	assert.Contains(t, out, "02.09.2019  10.09.2019")
	assert.Contains(t, out, "03.02.2020  11.02.2020")
	assert.Contains(t, out, "Graded     4")
}

func TestExportCommand(t *testing.T) {
	out := execute(t, "export", writeSample(t), "--format", "json", "--purify")

	var doc struct {
		RunID   string           `json:"run_id"`
		Source  string           `json:"source"`
		Records []map[string]any `json:"records"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.NotEmpty(t, doc.RunID)
	assert.True(t, strings.HasSuffix(doc.Source, "grades.html"))
	require.Len(t, doc.Records, 2)
	assert.Equal(t, "Matematiikka", doc.Records[0]["subject"])
	assert.InDelta(t, 9.25, doc.Records[0]["grade"], 1e-9)
}

func TestExportCommandToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	out := execute(t, "export", writeSample(t), "-o", path)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "run_id:")
	assert.Contains(t, string(data), "raw_grade: S")
}

func TestConfigCommand(t *testing.T) {
	out := execute(t, "config", "--layout", "wilma")
	assert.Contains(t, out, "verbal")
	assert.Contains(t, out, "month_gap: 3")
	assert.Contains(t, out, "- Spring")

	// --layout must not carry over into the next run.
	out = execute(t, "config")
	assert.NotContains(t, out, "verbal")
}

func TestVersionCommand(t *testing.T) {
	out := execute(t, "version")
	assert.Equal(t, "grade-report dev\n", out)
}
