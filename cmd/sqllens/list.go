package main

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/sqllens/sqllens/internal/catalog"
	"github.com/sqllens/sqllens/internal/version"
)

type cmdList struct {
	common *CmdControl
}

func (c *cmdList) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the queries available in the catalog",
		RunE:  c.run,
	}

	return cmd
}

func (c *cmdList) run(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return cmd.Help()
	}

	queries, err := catalog.Load(c.common.FlagQueries)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"NAME", "LABEL"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, name := range queries.Names() {
		q, _ := queries.Get(name)
		table.Append([]string{q.Name, q.Label})
	}

	table.Render()
	return nil
}

type cmdVersion struct{}

func (c *cmdVersion) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version.Get().Full())
		},
	}

	return cmd
}
