package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"dbcalls/internal/backends/scip"
	"dbcalls/internal/config"
	"dbcalls/internal/errors"
	"dbcalls/internal/report"
	"dbcalls/internal/resolve"
	"dbcalls/internal/rules"
	"dbcalls/internal/scan"
	"dbcalls/internal/syntax"
)

var (
	scanMode      string
	scanOutput    string
	scanExclude   []string
	scanSCIPIndex string
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "List database calls in a C# project",
	Long: `Scan every *.cs file under path and report LINQ query operators, raw SQL
execution calls and SqlCommand constructions.

When no path or mode is given (on the command line or in .dbcalls/config.json)
the command asks for them interactively.

Examples:
  dbcalls scan                          # Interactive menu and path prompt
  dbcalls scan ./src --mode A           # All database calls to the console
  dbcalls scan ./src --mode B --output file
  dbcalls scan ./src --mode A --scip-index index.scip`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanMode, "mode", "", "Analysis: A (queries, raw SQL and commands) or B (commands only)")
	scanCmd.Flags().StringVar(&scanOutput, "output", "", "Where to write the report: console or file")
	scanCmd.Flags().StringSliceVar(&scanExclude, "exclude", nil, "Directory names to skip (repeatable)")
	scanCmd.Flags().StringVar(&scanSCIPIndex, "scip-index", "", "SCIP index (.scip, .scip.zst or .scip.gz) used to resolve constructed types")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	loaded, err := loadConfig()
	if err != nil {
		return err
	}
	cfg := loaded.Config

	logger, closeLog, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	out := cmd.OutOrStdout()
	prompter := newPrompter(cmd)

	mode, err := selectMode(prompter, cfg)
	if err != nil {
		return err
	}
	if !mode.Valid() {
		writeln(out, invalidOption)
		logger.Info("No analysis selected")
		return nil
	}

	root, err := selectRoot(prompter, cfg, args)
	if err != nil {
		return err
	}

	output := firstNonEmpty(scanOutput, cfg.Scan.Output)
	if output != config.OutputConsole && output != config.OutputFile {
		return errors.NewScanError(errors.InvalidInput,
			fmt.Sprintf("invalid output %q: expected %s or %s", output, config.OutputConsole, config.OutputFile),
			nil, errors.GetSuggestedFixes(errors.InvalidInput))
	}

	exclude := cfg.Scan.Exclude
	if cmd.Flags().Changed("exclude") {
		exclude = scanExclude
	}

	if !syntax.IsAvailable() {
		return errors.NewScanError(errors.InternalError, "C# parsing requires a cgo build of dbcalls", syntax.ErrNoCGO, nil)
	}

	resolver, err := newResolver(root, firstNonEmpty(scanSCIPIndex, cfg.Resolver.ScipIndex), logger)
	if err != nil {
		return err
	}

	var sink report.Sink
	var fileSink *report.FileSink
	if output == config.OutputFile {
		fileSink = report.NewFileSink(firstNonEmpty(cfg.Report.OutputDir, root), mode.Category())
		sink = fileSink
	} else {
		sink = report.NewConsoleSink(out)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, err = scan.Run(ctx, scan.Options{
		Root:     root,
		Mode:     mode,
		Rules:    rules.Default(),
		Parser:   syntax.NewParser(),
		Resolver: resolver,
		Sink:     sink,
		Exclude:  exclude,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	if fileSink != nil {
		_, _ = fmt.Fprintf(out, "Report written to %s\n", fileSink.Path())
	}
	return nil
}

// selectMode takes the mode from --mode, then scan.mode, then the menu. An
// explicit but unknown mode is an error; an unknown menu answer is not.
func selectMode(p *Prompter, cfg *config.Config) (rules.Mode, error) {
	value := firstNonEmpty(scanMode, cfg.Scan.Mode)
	if value == "" {
		return p.AskMode()
	}

	mode := rules.ParseMode(value)
	if !mode.Valid() {
		return rules.ModeInvalid, errors.NewScanError(errors.InvalidInput,
			fmt.Sprintf("invalid mode %q: expected A or B", value),
			nil, errors.GetSuggestedFixes(errors.InvalidInput))
	}
	return mode, nil
}

// selectRoot takes the folder from the argument, then scan.root, then the
// prompt, and checks that it is a readable directory.
func selectRoot(p *Prompter, cfg *config.Config, args []string) (string, error) {
	root := cfg.Scan.Root
	if len(args) > 0 {
		root = args[0]
	}
	if root == "" {
		var err error
		if root, err = p.AskPath(); err != nil {
			return "", err
		}
	}

	info, err := os.Stat(root)
	if err != nil {
		return "", errors.Wrap(errors.InvalidInput, err, "cannot open project folder %s", root).
			WithDetails(map[string]string{"path": root})
	}
	if !info.IsDir() {
		return "", errors.NewScanError(errors.InvalidInput, fmt.Sprintf("%s is not a directory", root), nil, nil).
			WithDetails(map[string]string{"path": root})
	}
	return filepath.Clean(root), nil
}

// newResolver returns the syntax resolver, preceded by a SCIP resolver when
// an index is configured.
func newResolver(root, indexPath string, logger *slog.Logger) (resolve.Resolver, error) {
	syntaxResolver := resolve.NewSyntaxResolver()
	if indexPath == "" {
		return syntaxResolver, nil
	}

	index, err := scip.LoadSCIPIndex(indexPath)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded SCIP index",
		"path", indexPath,
		"documents", len(index.Documents),
	)
	return resolve.Chain{resolve.NewSCIPResolver(root, index, logger), syntaxResolver}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
