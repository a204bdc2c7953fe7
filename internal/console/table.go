package console

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Table is a header row plus data rows
type Table struct {
	Headers []string
	Rows    [][]string
}

func (t *Table) Add(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render writes t as aligned columns
func (t *Table) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
