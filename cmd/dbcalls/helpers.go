package main

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"dbcalls/internal/config"
	"dbcalls/internal/errors"
	"dbcalls/internal/slogutil"
)

// getWorkDir returns the directory holding .dbcalls/config.json.
func getWorkDir() (string, error) {
	return os.Getwd()
}

// loadConfig loads the configuration of the working directory.
func loadConfig() (*config.LoadResult, error) {
	dir, err := getWorkDir()
	if err != nil {
		return nil, errors.Wrap(errors.InternalError, err, "failed to determine working directory")
	}
	result, err := config.LoadConfigWithDetails(dir)
	if err != nil {
		return nil, errors.Wrap(errors.InvalidInput, err, "failed to load configuration")
	}
	return result, nil
}

// newLogger creates the stderr logger for a command. The returned func
// closes any log file.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, func(), error) {
	factory := slogutil.NewLoggerFactory(cfg)
	flags := cmd.Flags()
	if flags.Changed("verbose") || flags.Changed("quiet") {
		factory.WithCLILevel(slogutil.LevelFromVerbosity(verbosity, quiet))
	}

	logger, err := factory.CLILogger(cmd.ErrOrStderr(), logFile)
	if err != nil {
		return nil, nil, errors.Wrap(errors.InvalidInput, err, "failed to open log file")
	}
	return logger, func() { _ = factory.Close() }, nil
}

// newPrompter creates a prompter over the command's input and output.
func newPrompter(cmd *cobra.Command) *Prompter {
	return NewPrompter(bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout())
}

// suggestedFixes returns the fixes attached to err, if any.
func suggestedFixes(err error) []errors.FixAction {
	var se *errors.ScanError
	if stderrors.As(err, &se) {
		return se.SuggestedFixes
	}
	return nil
}

func writeln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}
