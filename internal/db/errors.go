package db

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// Kind partitions every failure into the two cases callers can act on:
// the target could not be reached, or the engine rejected the statement.
type Kind int

const (
	// KindConnection covers unreachable targets, rejected credentials and
	// unknown databases.
	KindConnection Kind = iota + 1

	// KindQuery covers everything the engine rejects after a connection is
	// established: malformed SQL, unknown objects, cancellation.
	KindQuery
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "CONNECTION_ERROR"
	case KindQuery:
		return "QUERY_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Error is the closed failure taxonomy for one query invocation.
type Error struct {
	Kind    Kind
	Message string
	Detail  string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// IsConnectionError reports whether err classifies as a connection failure.
func IsConnectionError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindConnection
}

// IsQueryError reports whether err classifies as an engine rejection.
func IsQueryError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindQuery
}

// SQLSTATE classes that indicate the connection, not the statement, failed.
var connectionStateClasses = map[string]bool{
	"08": true, // connection_exception
	"28": true, // invalid_authorization_specification
	"3D": true, // invalid_catalog_name
}

// MySQL error numbers that indicate the connection, not the statement, failed.
var connectionMySQLNumbers = map[uint16]bool{
	1040: true, // ER_CON_COUNT_ERROR: too many connections
	1044: true, // ER_DBACCESS_DENIED_ERROR
	1045: true, // ER_ACCESS_DENIED_ERROR
	1049: true, // ER_BAD_DB_ERROR: unknown database
	1130: true, // ER_HOST_NOT_PRIVILEGED
}

// Classify translates an arbitrary driver failure into the two-kind taxonomy.
// Errors already classified pass through unchanged.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{
			Kind:    KindQuery,
			Message: "query execution timeout",
			Detail:  "statement exceeded the configured query timeout",
		}
	}

	if errors.Is(err, context.Canceled) {
		return &Error{
			Kind:    KindQuery,
			Message: "query execution canceled",
			Detail:  "statement was canceled before completion",
		}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return classifyPostgres(pqErr)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return classifyMySQL(myErr)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return &Error{Kind: KindConnection, Message: "network failure", Detail: err.Error()}
	}

	return &Error{Kind: KindQuery, Message: "query failed", Detail: err.Error()}
}

func classifyPostgres(pqErr *pq.Error) *Error {
	kind := KindQuery
	if connectionStateClasses[string(pqErr.Code.Class())] || pqErr.Code == "57P03" {
		// 57P03: cannot_connect_now (server starting up or shutting down)
		kind = KindConnection
	}

	return &Error{
		Kind:    kind,
		Message: pqErr.Message,
		Detail:  postgresDetail(pqErr),
	}
}

func postgresDetail(pqErr *pq.Error) string {
	detail := fmt.Sprintf("SQLSTATE %s", string(pqErr.Code))

	if pqErr.Detail != "" {
		detail += fmt.Sprintf(" | detail: %s", pqErr.Detail)
	}

	if pqErr.Hint != "" {
		detail += fmt.Sprintf(" | hint: %s", pqErr.Hint)
	}

	if pqErr.Position != "" {
		detail += fmt.Sprintf(" | position: %s", pqErr.Position)
	}

	return detail
}

func classifyMySQL(myErr *mysql.MySQLError) *Error {
	kind := KindQuery
	if connectionMySQLNumbers[myErr.Number] {
		kind = KindConnection
	}

	return &Error{
		Kind:    kind,
		Message: myErr.Message,
		Detail:  fmt.Sprintf("mysql error %d", myErr.Number),
	}
}
