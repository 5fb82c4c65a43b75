package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"dbcalls/internal/config"
	"dbcalls/internal/errors"
	"dbcalls/internal/paths"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize dbcalls configuration",
	Long:  "Creates a .dbcalls/ directory with default configuration in the current directory",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing configuration with defaults")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cwd, err := getWorkDir()
	if err != nil {
		return errors.Wrap(errors.InternalError, err, "failed to get current directory")
	}
	configPath := filepath.Join(paths.ConfigDir(cwd), "config.json")

	if _, statErr := os.Stat(configPath); statErr == nil && !initForce {
		// Already initialized is success.
		writeln(out, "dbcalls already initialized.")
		_, _ = fmt.Fprintf(out, "Configuration at: %s\n", configPath)
		if _, err := config.LoadConfig(cwd); err != nil {
			_, _ = fmt.Fprintf(out, "Warning: existing configuration is invalid: %v\n", err)
		}
		writeln(out, "\nRun 'dbcalls init --force' to reset it to defaults.")
		return nil
	}

	if err := config.DefaultConfig().Save(cwd); err != nil {
		return errors.Wrap(errors.InternalError, err, "failed to write config file")
	}

	_, _ = fmt.Fprintf(out, "Configuration written to %s\n", configPath)
	writeln(out, "Set scan.mode and scan.root there to skip the interactive questions.")
	return nil
}
