package runner

import (
	"context"
	"database/sql"

	"github.com/sqllens/sqllens/internal/config"
	"github.com/sqllens/sqllens/internal/db"
)

// Rows is the subset of *sql.Rows the runner consumes. Narrowing it keeps
// row sets fakeable in tests.
type Rows interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// Conn is one live connection: execute a statement, then release it.
type Conn interface {
	Query(ctx context.Context, sqlText string) (Rows, error)
	Close() error
}

// Connector opens a connection to a target. The default implementation is
// backed by database/sql; tests substitute a recording fake.
type Connector interface {
	Connect(ctx context.Context, cfg *config.Config) (Conn, error)
}

// SQLConnector is the production Connector over internal/db.
type SQLConnector struct{}

func (SQLConnector) Connect(ctx context.Context, cfg *config.Config) (Conn, error) {
	conn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &sqlConn{conn: conn}, nil
}

type sqlConn struct {
	conn *db.Conn
}

func (c *sqlConn) Query(ctx context.Context, sqlText string) (Rows, error) {
	rows, err := c.conn.DB().QueryContext(ctx, sqlText)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *sqlConn) Close() error {
	return c.conn.Close()
}

var _ Rows = (*sql.Rows)(nil)
