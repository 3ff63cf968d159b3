package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Text writes a view for a terminal. Charts are printed as the table they were
// drawn from, pies with their share of the total.
func Text(w io.Writer, v View) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	switch c := v.(type) {
	case Placeholder:
		fmt.Fprintln(tw, c.Message)
	case SeriesChart:
		fmt.Fprintf(tw, "[%s chart]\n", c.Type)
		header := []string{c.Axis}
		for _, s := range c.Series {
			header = append(header, s.Name)
		}
		fmt.Fprintln(tw, strings.Join(header, "\t"))
		for i, cat := range c.Categories {
			cells := []string{cat}
			for _, s := range c.Series {
				cells = append(cells, FormatValue(s.Values[i]))
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
	case PieChart:
		fmt.Fprintln(tw, "[pie chart]")
		total := 0.0
		for _, s := range c.Segments {
			total += s.Value
		}
		for _, s := range c.Segments {
			share := 0.0
			if total != 0 {
				share = 100 * s.Value / total
			}
			fmt.Fprintf(tw, "%s\t%s\t%.1f%%\n", s.Label, FormatValue(s.Value), share)
		}
	case Table:
		fmt.Fprintln(tw, strings.Join(c.Columns, "\t"))
		for _, row := range c.Rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
	default:
		return fmt.Errorf("unknown view %T", v)
	}
	return tw.Flush()
}
