package render

import (
	"fmt"
	"io"
	"strings"
)

// table accumulates rows and writes them as a GitHub-flavored markdown
// table with every column padded to its widest cell.
type table struct {
	headers []string
	widths  []int
	rows    [][]string
}

func newTable(headers ...string) *table {
	t := &table{headers: headers, widths: make([]int, len(headers))}
	for i, h := range headers {
		t.widths[i] = len(h)
	}
	return t
}

func (t *table) AddRow(cells ...string) {
	for i, c := range cells {
		if i < len(t.widths) && len(c) > t.widths[i] {
			t.widths[i] = len(c)
		}
	}
	t.rows = append(t.rows, cells)
}

func (t *table) render(w io.Writer) {
	t.writeRow(w, t.headers)
	sep := make([]string, len(t.headers))
	for i, width := range t.widths {
		sep[i] = strings.Repeat("-", width+2)
	}
	fmt.Fprintf(w, "|%s|\n", strings.Join(sep, "|"))
	for _, row := range t.rows {
		t.writeRow(w, row)
	}
}

func (t *table) writeRow(w io.Writer, cells []string) {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = fmt.Sprintf(" %-*s ", t.widths[i], c)
	}
	fmt.Fprintf(w, "|%s|\n", strings.Join(padded, "|"))
}
