package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/synaptica-ai/vetpathogen/pkg/common/models"
)

// Table prints the given columns of table as aligned text, one row per line.
// With no columns every column is printed.
func Table(w io.Writer, table *models.Table, columns ...string) error {
	if len(columns) > 0 {
		projected, err := table.Select(columns...)
		if err != nil {
			return err
		}
		table = projected
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(table.Columns, "\t")); err != nil {
		return err
	}
	for _, row := range table.Rows() {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}
