package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"github.com/sqllens/sqllens/internal/config"
)

const connMaxLifetime = 1 * time.Hour

// Conn wraps a single live database handle. One statement at a time is the
// contract: the pool underneath is pinned to a single connection, opened for
// the span of one query and released by the caller.
type Conn struct {
	db *sql.DB
}

// Open establishes and verifies a connection to the configured target.
// Any failure here — unreachable host, rejected credentials, unknown
// database — is a connection-kind error.
func Open(ctx context.Context, cfg *config.Config) (*Conn, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, &Error{Kind: KindConnection, Message: "invalid connection target", Detail: err.Error()}
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, &Error{Kind: KindConnection, Message: "failed to open database connection", Detail: err.Error()}
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(connMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &Error{Kind: KindConnection, Message: "failed to reach database", Detail: err.Error()}
	}

	return &Conn{db: db}, nil
}

// DSN constructs the driver connection string for the configured target.
func DSN(cfg *config.Config) (string, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		dsn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Database)
		if cfg.Password != "" {
			dsn += fmt.Sprintf(" password=%s", cfg.Password)
		}
		return dsn, nil
	case config.DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database), nil
	default:
		return "", fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}

// DB returns the underlying handle.
func (c *Conn) DB() *sql.DB {
	return c.db
}

// Close releases the database handle.
func (c *Conn) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Ping verifies the connection is still alive.
func (c *Conn) Ping(ctx context.Context) error {
	if c.db == nil {
		return &Error{Kind: KindConnection, Message: "database connection is nil"}
	}
	return c.db.PingContext(ctx)
}
