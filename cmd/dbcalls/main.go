package main

import (
	"log/slog"
	"os"

	"dbcalls/internal/errors"
	"dbcalls/internal/slogutil"
)

func main() {
	logger := slogutil.NewLogger(os.Stderr, slog.LevelError)

	if err := rootCmd.Execute(); err != nil {
		attrs := []any{"error", err.Error(), "code", string(errors.CodeOf(err))}
		for _, fix := range suggestedFixes(err) {
			attrs = append(attrs, "fix", fix.Description)
		}
		logger.Error("Command execution failed", attrs...)
		os.Exit(1)
	}
}
