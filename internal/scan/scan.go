// Package scan runs the enumerate, parse, match and report pipeline over one
// project tree.
package scan

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"dbcalls/internal/errors"
	"dbcalls/internal/matcher"
	"dbcalls/internal/report"
	"dbcalls/internal/resolve"
	"dbcalls/internal/rules"
	"dbcalls/internal/slogutil"
	"dbcalls/internal/syntax"
	"dbcalls/internal/walker"
)

// Parser turns one source file into a Unit.
type Parser interface {
	ParseFile(ctx context.Context, path string) (*syntax.Unit, error)
}

// Options configures a run.
type Options struct {
	Root     string
	Mode     rules.Mode
	Rules    *rules.RuleSet
	Parser   Parser
	Resolver resolve.Resolver
	Sink     report.Sink
	Exclude  []string
	Logger   *slog.Logger
}

// Result summarises a successful run.
type Result struct {
	RunID    string
	Files    int
	Matches  int
	Duration time.Duration
}

// Run scans every C# file under opts.Root, one at a time, and stops at the
// first error. The sink is closed only when the run succeeds.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if !opts.Mode.Valid() {
		return nil, errors.NewScanError(errors.InvalidInput, "no analysis selected", nil, errors.GetSuggestedFixes(errors.InvalidInput))
	}
	if opts.Rules == nil {
		opts.Rules = rules.Default()
	}
	if opts.Resolver == nil {
		opts.Resolver = resolve.NewSyntaxResolver()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}

	start := time.Now()
	result := &Result{RunID: uuid.New().String()}
	logger = logger.With("run", result.RunID)
	logger.Info("Starting scan",
		"root", opts.Root,
		"mode", opts.Mode.String(),
		"resolver", string(opts.Resolver.ID()),
	)

	m := matcher.New(opts.Rules, opts.Mode, opts.Resolver)
	rep := report.New(opts.Sink)

	for path, err := range walker.Files(opts.Root, walker.Options{Exclude: opts.Exclude}) {
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.Cancelled, err, "scan cancelled before %s", path)
		}

		unit, err := opts.Parser.ParseFile(ctx, path)
		if err != nil {
			return nil, err
		}
		records, err := m.Match(ctx, unit)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if err := rep.Add(rec); err != nil {
				return nil, err
			}
		}

		result.Files++
		logger.Debug("Scanned file",
			"file", path,
			"matches", len(records),
		)
	}

	if err := rep.Finish(); err != nil {
		return nil, err
	}

	result.Matches = rep.Count()
	result.Duration = time.Since(start)
	logger.Info("Scan complete",
		"files", result.Files,
		"matches", result.Matches,
		"duration", result.Duration.String(),
	)
	return result, nil
}
