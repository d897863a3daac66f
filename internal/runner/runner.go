// Package runner executes one read-only SQL statement against a configured
// relational target and materializes the outcome for display. Failures never
// escape the Run boundary: a bad query yields a failed Result, not a crash.
package runner

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/sqllens/sqllens/internal/config"
	"github.com/sqllens/sqllens/internal/db"
)

const (
	// DefaultLabel captions a query when the caller supplies none.
	DefaultLabel = "Query"

	bannerWidth = 70
)

// Runner executes statements against one configured target. It holds no
// state across invocations; each Run opens and releases its own connection.
type Runner struct {
	cfg       *config.Config
	connector Connector
	out       io.Writer
	errOut    io.Writer
	log       *logrus.Logger
}

// New returns a Runner writing progress to out and failures to errOut.
func New(cfg *config.Config, out, errOut io.Writer, log *logrus.Logger) *Runner {
	return &Runner{
		cfg:       cfg,
		connector: SQLConnector{},
		out:       out,
		errOut:    errOut,
		log:       log,
	}
}

// WithConnector substitutes the connection opener. Tests use this to record
// open/close pairing and to inject failures.
func (r *Runner) WithConnector(c Connector) *Runner {
	r.connector = c
	return r
}

// Run executes sqlText against the configured target and returns the
// materialized result. The connection is released on every exit path. Both
// failure kinds are reported to the error sink and converted into a
// Succeeded=false result; Run never panics past its own boundary.
func (r *Runner) Run(ctx context.Context, sqlText, label string) *Result {
	if label == "" {
		label = DefaultLabel
	}

	start := time.Now()

	conn, err := r.connector.Connect(ctx, r.cfg)
	if err != nil {
		return r.fail(err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			r.log.WithError(cerr).Warn("failed to release connection")
		}
	}()

	r.printBanner(label)

	qctx := ctx
	if r.cfg.QueryTimeout > 0 {
		var cancel context.CancelFunc
		qctx, cancel = context.WithTimeout(ctx, r.cfg.QueryTimeout)
		defer cancel()
	}

	rows, err := conn.Query(qctx, sqlText)
	if err != nil {
		return r.fail(err)
	}
	defer rows.Close()

	result, err := collectRows(rows)
	if err != nil {
		return r.fail(err)
	}

	result.Succeeded = true
	result.ExecutionTime = time.Since(start)

	r.log.WithFields(logrus.Fields{
		"rows":    result.RowCount,
		"elapsed": result.ExecutionTime,
	}).Debug("query completed")

	return result
}

// fail reports a classified failure to the error sink and wraps it in a
// failed Result. It is the single conversion point from error to outcome.
func (r *Runner) fail(err error) *Result {
	classified := db.Classify(err)

	color.New(color.FgRed).Fprintf(r.errOut, "Error: %s\n", classified.Error())
	r.log.WithField("kind", classified.Kind.String()).Debug("query failed")

	return &Result{Succeeded: false, Err: classified}
}

func (r *Runner) printBanner(label string) {
	banner := strings.Repeat("=", bannerWidth)
	c := color.New(color.FgCyan)
	c.Fprintln(r.out, banner)
	c.Fprintln(r.out, label)
	c.Fprintln(r.out, banner)
}
