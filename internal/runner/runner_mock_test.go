package runner

import (
	"context"

	"github.com/sqllens/sqllens/internal/config"
)

// fakeRows walks a fixed fixture and satisfies the Rows interface.
type fakeRows struct {
	columns []string
	rows    [][]any
	idx     int
	iterErr error
	scanErr error
	closed  bool
}

func (f *fakeRows) Columns() ([]string, error) {
	return f.columns, nil
}

func (f *fakeRows) Next() bool {
	if f.idx >= len(f.rows) {
		return false
	}
	f.idx++
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	if f.scanErr != nil {
		return f.scanErr
	}
	row := f.rows[f.idx-1]
	for i := range dest {
		ptr := dest[i].(*any)
		*ptr = row[i]
	}
	return nil
}

func (f *fakeRows) Err() error {
	return f.iterErr
}

func (f *fakeRows) Close() error {
	f.closed = true
	return nil
}

// fakeConn hands out fakeRows and reports its Close calls to the connector.
type fakeConn struct {
	connector *fakeConnector
	queryErr  error
	lastCtx   context.Context
}

func (c *fakeConn) Query(ctx context.Context, sqlText string) (Rows, error) {
	c.lastCtx = ctx
	c.connector.queries = append(c.connector.queries, sqlText)
	if c.queryErr != nil {
		return nil, c.queryErr
	}
	return c.connector.newRows(), nil
}

func (c *fakeConn) Close() error {
	c.connector.closes++
	return nil
}

// fakeConnector records open/close pairing across invocations, including
// failure paths, and produces a fresh row set per connection.
type fakeConnector struct {
	columns    []string
	rows       [][]any
	iterErr    error
	connectErr error
	queryErr   error

	opens   int
	closes  int
	queries []string
	conns   []*fakeConn
}

func (f *fakeConnector) Connect(ctx context.Context, cfg *config.Config) (Conn, error) {
	if f.connectErr != nil {
		return nil, f.connectErr
	}
	f.opens++
	conn := &fakeConn{connector: f, queryErr: f.queryErr}
	f.conns = append(f.conns, conn)
	return conn, nil
}

func (f *fakeConnector) newRows() *fakeRows {
	rows := make([][]any, len(f.rows))
	for i, row := range f.rows {
		rows[i] = append([]any(nil), row...)
	}
	return &fakeRows{columns: f.columns, rows: rows, iterErr: f.iterErr}
}
