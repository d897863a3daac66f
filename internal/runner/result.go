package runner

import (
	"time"

	"github.com/sqllens/sqllens/internal/db"
)

// Result is the outcome of one query invocation. It is created fresh per
// call, owned exclusively by the caller and never cached or shared.
type Result struct {
	// Columns holds the projection's column names in query order.
	Columns []string

	// Rows holds every returned row, each aligned to Columns. The display
	// layer may cap what it shows, but the materialized set is complete.
	Rows [][]any

	// RowCount is len(Rows); zero is a valid successful outcome.
	RowCount int

	// Succeeded is false when the connection or the statement failed, in
	// which case Columns and Rows are empty and Err carries the cause.
	Succeeded bool

	// Err is the classified failure, nil on success.
	Err *db.Error

	ExecutionTime time.Duration
}

// collectRows materializes an open row set into a columnar Result.
func collectRows(rows Rows) (*Result, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out [][]any

	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}

		out = append(out, values)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &Result{
		Columns:  columns,
		Rows:     out,
		RowCount: len(out),
	}, nil
}
