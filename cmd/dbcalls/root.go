package main

import (
	"github.com/spf13/cobra"

	"dbcalls/internal/version"
)

var (
	verbosity int
	quiet     bool
	logFile   string
)

var rootCmd = &cobra.Command{
	Use:   "dbcalls",
	Short: "dbcalls - database call inventory for C# code bases",
	Long: `dbcalls walks a C# source tree and lists every place that talks to a database:
LINQ query operators, raw SQL execution methods and SqlCommand constructions,
including the stored procedure names passed to them.`,
	Version:       version.Info(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("dbcalls version {{.Version}}\n")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write logs to this file (size-rotated)")
}
