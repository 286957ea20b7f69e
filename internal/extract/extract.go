// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract reads the grade table out of an exported HTML grade report.
// Rows come from the first <tbody>; each <td> is tagged with the role its
// position has in the configured Layout, and dropped columns are removed.
package extract

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/pdiddy/grade-report/pkg/types"
)

var (
	// ErrMalformedDocument means the input is not a grade report export.
	ErrMalformedDocument = errors.New("malformed grade report")

	// ErrNoTableBody is returned when the document has no <tbody>.
	ErrNoTableBody = fmt.Errorf("%w: no <tbody>", ErrMalformedDocument)

	// ErrMissingCells is returned when a row has fewer cells than the layout.
	ErrMissingCells = fmt.Errorf("%w: missing cells", ErrMalformedDocument)
)

// RawCell is one kept table cell before normalization.
type RawCell struct {
	Role types.Role
	Text string
}

// Row is one table row with its dropped columns removed.
type Row struct {
	// Index is the zero-based position among the data rows of the <tbody>.
	Index int
	Cells []RawCell
}

// Cell returns the text of the cell with the given role.
func (r Row) Cell(role types.Role) (string, bool) {
	for _, c := range r.Cells {
		if c.Role == role {
			return c.Text, true
		}
	}
	return "", false
}

// Open reads the grade table from the HTML file at path.
func Open(path string, layout Layout) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f, "", layout)
}

// OpenReader reads the grade table from HTML in r. contentType is an
// optional Content-Type header used to pick the character encoding; the
// document's <meta> charset and content sniffing are used otherwise.
func OpenReader(r io.Reader, contentType string, layout Layout) ([]Row, error) {
	decoded, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("detecting charset: %w", err)
	}

	doc, err := html.Parse(decoded)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	tbody := findElement(doc, "tbody")
	if tbody == nil {
		return nil, ErrNoTableBody
	}

	return parseRows(tbody, layout)
}

// parseRows turns each <tr> of a table body into a Row. Rows with no <td>
// (header rows of <th>) are skipped.
func parseRows(tbody *html.Node, layout Layout) ([]Row, error) {
	var rows []Row
	for tr := tbody.FirstChild; tr != nil; tr = tr.NextSibling {
		if tr.Type != html.ElementNode || tr.Data != "tr" {
			continue
		}
		texts := rowCellTexts(tr)
		if len(texts) == 0 {
			continue
		}
		if len(texts) < layout.Width() {
			return nil, fmt.Errorf("%w: row %d has %d cells, layout %v needs %d",
				ErrMissingCells, len(rows), len(texts), layout, layout.Width())
		}

		row := Row{Index: len(rows)}
		for i, role := range layout.roles {
			if role.Dropped() {
				continue
			}
			row.Cells = append(row.Cells, RawCell{Role: role, Text: texts[i]})
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func rowCellTexts(tr *html.Node) []string {
	var texts []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "td" {
			texts = append(texts, getTextContent(c))
		}
	}
	return texts
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// getTextContent concatenates the descendant text nodes of n, each trimmed,
// with no separator. A split half grade such as 9<sup>1</sup>/2 therefore
// reads "91/2", which the grade exception table knows.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return result.String()
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(strings.TrimSpace(n.Data))
	}
	if n.Type == html.ElementNode && shouldSkipElement(n.Data) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
}

// shouldSkipElement returns true for elements whose text is not cell content.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template":
		return true
	}
	return false
}
