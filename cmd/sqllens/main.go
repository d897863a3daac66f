// Package main provides the sqllens command line tool.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sqllens/sqllens/internal/version"
)

// CmdControl has flags and state common to all sqllens commands.
type CmdControl struct {
	FlagConfig  string
	FlagQueries string
	FlagVerbose bool

	logger *logrus.Logger
}

func main() {
	commonCmd := CmdControl{logger: logrus.New()}
	commonCmd.logger.SetOutput(os.Stderr)
	commonCmd.logger.SetLevel(logrus.WarnLevel)

	app := &cobra.Command{
		Use:               "sqllens",
		Short:             "Run analytical SQL against a relational database and pretty-print the result",
		Version:           version.Get().Short(),
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if commonCmd.FlagVerbose {
				commonCmd.logger.SetLevel(logrus.DebugLevel)
			}
		},
	}

	app.PersistentFlags().StringVar(&commonCmd.FlagConfig, "config", "", "Path to connection config file")
	app.PersistentFlags().StringVar(&commonCmd.FlagQueries, "queries", "", "Path to a YAML query catalog")
	app.PersistentFlags().BoolVarP(&commonCmd.FlagVerbose, "verbose", "v", false, "Show debug messages")

	app.SetVersionTemplate("{{.Version}}\n")

	var cmdRun = cmdRun{common: &commonCmd}
	app.AddCommand(cmdRun.command())

	var cmdList = cmdList{common: &commonCmd}
	app.AddCommand(cmdList.command())

	var cmdVersion = cmdVersion{}
	app.AddCommand(cmdVersion.command())

	app.InitDefaultHelpCmd()

	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
