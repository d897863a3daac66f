package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqllens/sqllens/internal/config"
	"github.com/sqllens/sqllens/internal/db"
)

func init() {
	color.NoColor = true
}

func testConfig() *config.Config {
	return &config.Config{
		Driver:         config.DriverPostgres,
		Host:           "localhost",
		Port:           5433,
		Database:       "ecommerce_db",
		User:           "admin",
		QueryTimeout:   time.Second,
		MaxDisplayRows: 20,
	}
}

func testRunner(cfg *config.Config, conn Connector) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(cfg, out, errOut, log).WithConnector(conn), out, errOut
}

func TestRun_Success(t *testing.T) {
	connector := &fakeConnector{
		columns: []string{"first_name", "total_spent", "rank"},
		rows: [][]any{
			{"Alice", []byte("1250.00"), int64(1)},
			{"Bob", []byte("980.50"), int64(2)},
			{"Carol", []byte("770.25"), int64(3)},
		},
	}

	r, out, errOut := testRunner(testConfig(), connector)

	result := r.Run(context.Background(), "SELECT 1", "RANKING HIGH SPENDING CUSTOMERS")

	require.True(t, result.Succeeded)
	require.Nil(t, result.Err)
	assert.Equal(t, 3, result.RowCount)
	assert.Equal(t, []string{"first_name", "total_spent", "rank"}, result.Columns)
	assert.Len(t, result.Rows, 3)

	// []byte scan values are converted to strings during materialization.
	assert.Equal(t, "1250.00", result.Rows[0][1])
	assert.Equal(t, int64(2), result.Rows[1][2])

	assert.Contains(t, out.String(), "RANKING HIGH SPENDING CUSTOMERS")
	assert.Empty(t, errOut.String())
	assert.Equal(t, []string{"SELECT 1"}, connector.queries)
	assert.Equal(t, connector.opens, connector.closes)
	assert.Equal(t, 1, connector.opens)
}

func TestRun_DefaultLabel(t *testing.T) {
	connector := &fakeConnector{columns: []string{"n"}}

	r, out, _ := testRunner(testConfig(), connector)
	r.Run(context.Background(), "SELECT 1", "")

	assert.Contains(t, out.String(), DefaultLabel)
}

func TestRun_EmptyResult(t *testing.T) {
	connector := &fakeConnector{columns: []string{"n"}}

	r, _, errOut := testRunner(testConfig(), connector)
	result := r.Run(context.Background(), "SELECT 1 WHERE false", "Empty")

	require.True(t, result.Succeeded)
	assert.Equal(t, 0, result.RowCount)
	assert.Empty(t, result.Rows)
	assert.Empty(t, errOut.String())
	assert.Equal(t, connector.opens, connector.closes)
}

func TestRun_ConnectionFailure(t *testing.T) {
	connector := &fakeConnector{
		connectErr: &db.Error{Kind: db.KindConnection, Message: "failed to reach database"},
	}

	r, _, errOut := testRunner(testConfig(), connector)
	result := r.Run(context.Background(), "SELECT 1", "Unreachable")

	require.False(t, result.Succeeded)
	require.NotNil(t, result.Err)
	assert.Equal(t, db.KindConnection, result.Err.Kind)
	assert.True(t, db.IsConnectionError(result.Err))
	assert.Contains(t, errOut.String(), "Error:")
	assert.Equal(t, connector.opens, connector.closes)
	assert.Equal(t, 0, connector.opens)
}

func TestRun_QueryFailure(t *testing.T) {
	connector := &fakeConnector{
		queryErr: &pq.Error{Code: "42601", Message: "syntax error at or near \"SELEC\""},
	}

	r, _, errOut := testRunner(testConfig(), connector)
	result := r.Run(context.Background(), "SELEC 1", "Broken")

	require.False(t, result.Succeeded)
	require.NotNil(t, result.Err)
	assert.Equal(t, db.KindQuery, result.Err.Kind)
	assert.True(t, db.IsQueryError(result.Err))
	assert.Contains(t, errOut.String(), "syntax error")

	// The connection must be released even though execution failed.
	assert.Equal(t, connector.opens, connector.closes)
	assert.Equal(t, 1, connector.opens)
}

func TestRun_IterationFailure(t *testing.T) {
	connector := &fakeConnector{
		columns: []string{"n"},
		rows:    [][]any{{int64(1)}},
		iterErr: errors.New("connection reset during fetch"),
	}

	r, _, _ := testRunner(testConfig(), connector)
	result := r.Run(context.Background(), "SELECT n FROM big", "Partial")

	require.False(t, result.Succeeded)
	require.NotNil(t, result.Err)

	// No partial rows survive a mid-fetch failure.
	assert.Empty(t, result.Rows)
	assert.Equal(t, 0, result.RowCount)
	assert.Equal(t, connector.opens, connector.closes)
	require.Len(t, connector.conns, 1)
}

func TestRun_Idempotent(t *testing.T) {
	connector := &fakeConnector{
		columns: []string{"month", "revenue"},
		rows: [][]any{
			{"2024-01", 1000.0},
			{"2024-02", 1200.0},
		},
	}

	r, _, _ := testRunner(testConfig(), connector)

	first := r.Run(context.Background(), "SELECT month, revenue FROM monthly", "Growth")
	second := r.Run(context.Background(), "SELECT month, revenue FROM monthly", "Growth")

	require.True(t, first.Succeeded)
	require.True(t, second.Succeeded)
	assert.Equal(t, first.RowCount, second.RowCount)
	assert.Equal(t, first.Rows, second.Rows)
	assert.Equal(t, 2, connector.opens)
	assert.Equal(t, 2, connector.closes)
}

func TestRun_TimeoutApplied(t *testing.T) {
	connector := &fakeConnector{columns: []string{"n"}}

	cfg := testConfig()
	cfg.QueryTimeout = 5 * time.Second

	r, _, _ := testRunner(cfg, connector)
	r.Run(context.Background(), "SELECT 1", "")

	require.Len(t, connector.conns, 1)
	_, hasDeadline := connector.conns[0].lastCtx.Deadline()
	assert.True(t, hasDeadline)
}

func TestRun_TimeoutDisabled(t *testing.T) {
	connector := &fakeConnector{columns: []string{"n"}}

	cfg := testConfig()
	cfg.QueryTimeout = 0

	r, _, _ := testRunner(cfg, connector)
	r.Run(context.Background(), "SELECT 1", "")

	require.Len(t, connector.conns, 1)
	_, hasDeadline := connector.conns[0].lastCtx.Deadline()
	assert.False(t, hasDeadline)
}

func TestRun_OpenCloseBalancedAcrossMixedOutcomes(t *testing.T) {
	success := &fakeConnector{columns: []string{"n"}, rows: [][]any{{int64(1)}}}
	failure := &fakeConnector{queryErr: &pq.Error{Code: "42P01", Message: "relation does not exist"}}

	r, _, _ := testRunner(testConfig(), success)
	for i := 0; i < 3; i++ {
		r.Run(context.Background(), "SELECT 1", "")
	}

	rFail, _, _ := testRunner(testConfig(), failure)
	for i := 0; i < 3; i++ {
		rFail.Run(context.Background(), "SELECT * FROM missing", "")
	}

	assert.Equal(t, success.opens, success.closes)
	assert.Equal(t, 3, success.opens)
	assert.Equal(t, failure.opens, failure.closes)
	assert.Equal(t, 3, failure.opens)
}
