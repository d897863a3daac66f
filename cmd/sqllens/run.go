package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sqllens/sqllens/internal/catalog"
	"github.com/sqllens/sqllens/internal/config"
	"github.com/sqllens/sqllens/internal/render"
	"github.com/sqllens/sqllens/internal/runner"
)

type cmdRun struct {
	common *CmdControl

	flagSQL     string
	flagFile    string
	flagLabel   string
	flagMaxRows int
	flagTimeout time.Duration

	flagDriver   string
	flagHost     string
	flagPort     int
	flagDatabase string
	flagUser     string
	flagPassword string
}

func (c *cmdRun) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [query-name]",
		Short: "Run a catalog query by name, or ad-hoc SQL via --sql or --file",
		RunE:  c.run,
	}

	cmd.Flags().StringVar(&c.flagSQL, "sql", "", "SQL statement to run")
	cmd.Flags().StringVar(&c.flagFile, "file", "", "Path to a file containing the SQL statement")
	cmd.Flags().StringVar(&c.flagLabel, "label", "", "Caption displayed above the results")
	cmd.Flags().IntVar(&c.flagMaxRows, "max-rows", 0, "Maximum rows to display (default 20)")
	cmd.Flags().DurationVar(&c.flagTimeout, "timeout", 0, "Query timeout (0 uses the configured value)")

	cmd.Flags().StringVar(&c.flagDriver, "driver", "", "Database driver (postgres or mysql)")
	cmd.Flags().StringVar(&c.flagHost, "host", "", "Database host")
	cmd.Flags().IntVar(&c.flagPort, "port", 0, "Database port")
	cmd.Flags().StringVar(&c.flagDatabase, "database", "", "Database name")
	cmd.Flags().StringVar(&c.flagUser, "user", "", "Database user")
	cmd.Flags().StringVar(&c.flagPassword, "password", "", "Database password")

	return cmd
}

func (c *cmdRun) run(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return cmd.Help()
	}

	cfg, err := config.Load(c.common.FlagConfig)
	if err != nil {
		return err
	}

	c.applyFlagOverrides(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	sqlText, label, err := c.resolveQuery(args)
	if err != nil {
		return err
	}
	if c.flagLabel != "" {
		label = c.flagLabel
	}

	r := runner.New(cfg, os.Stdout, os.Stderr, c.common.logger)

	result := r.Run(cmd.Context(), sqlText, label)
	if !result.Succeeded {
		return errors.New("query failed")
	}

	render.Render(os.Stdout, result, cfg.MaxDisplayRows)
	return nil
}

// resolveQuery picks the statement source: a catalog name, --sql, or --file.
// Exactly one must be supplied.
func (c *cmdRun) resolveQuery(args []string) (string, string, error) {
	sources := 0
	if len(args) == 1 {
		sources++
	}
	if c.flagSQL != "" {
		sources++
	}
	if c.flagFile != "" {
		sources++
	}
	if sources != 1 {
		return "", "", fmt.Errorf("supply exactly one of: a query name, --sql, or --file")
	}

	if c.flagSQL != "" {
		return c.flagSQL, "", nil
	}

	if c.flagFile != "" {
		data, err := os.ReadFile(c.flagFile)
		if err != nil {
			return "", "", fmt.Errorf("read sql file: %w", err)
		}
		return string(data), "", nil
	}

	queries, err := catalog.Load(c.common.FlagQueries)
	if err != nil {
		return "", "", err
	}

	q, ok := queries.Get(args[0])
	if !ok {
		return "", "", fmt.Errorf("unknown query %q (try 'sqllens list')", args[0])
	}

	return q.SQL, q.Label, nil
}

func (c *cmdRun) applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("driver") {
		cfg.Driver = c.flagDriver
	}
	if cmd.Flags().Changed("host") {
		cfg.Host = c.flagHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = c.flagPort
	}
	if cmd.Flags().Changed("database") {
		cfg.Database = c.flagDatabase
	}
	if cmd.Flags().Changed("user") {
		cfg.User = c.flagUser
	}
	if cmd.Flags().Changed("password") {
		cfg.Password = c.flagPassword
	}
	if cmd.Flags().Changed("timeout") {
		cfg.QueryTimeout = c.flagTimeout
	}
	if cmd.Flags().Changed("max-rows") {
		cfg.MaxDisplayRows = c.flagMaxRows
	}
}
