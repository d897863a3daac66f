// Package render pretty-prints materialized query results. Every function
// is pure with respect to process state: input result, output text.
package render

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/sqllens/sqllens/internal/config"
	"github.com/sqllens/sqllens/internal/runner"
)

// Render displays a successful result: a bordered table of up to maxRows
// rows with column headers, followed by the true row count. An empty result
// gets a distinct no-rows notice instead of an empty table. maxRows <= 0
// falls back to the default display cap.
func Render(w io.Writer, res *runner.Result, maxRows int) {
	if maxRows <= 0 {
		maxRows = config.DefaultMaxDisplayRows
	}

	if res.RowCount == 0 {
		color.New(color.FgYellow).Fprintln(w, "No results returned")
		return
	}

	shown := res.RowCount
	if shown > maxRows {
		shown = maxRows
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(res.Columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, row := range res.Rows[:shown] {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = FormatValue(v)
		}
		table.Append(cells)
	}

	table.Render()

	trailer := fmt.Sprintf("Returned %d rows", res.RowCount)
	if res.RowCount == 1 {
		trailer = "Returned 1 row"
	}
	if res.RowCount > shown {
		trailer += fmt.Sprintf(" (showing first %d)", shown)
	}
	color.New(color.FgGreen).Fprintln(w, trailer)
}

// FormatValue converts one scanned value into display text.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case string:
		return val
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
