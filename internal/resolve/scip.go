package resolve

import (
	"context"
	"log/slog"
	"path/filepath"

	"dbcalls/internal/backends/scip"
	"dbcalls/internal/errors"
	"dbcalls/internal/paths"
	"dbcalls/internal/slogutil"
	"dbcalls/internal/syntax"
)

// SCIPResolver resolves a creation by looking up the symbol a semantic
// indexer recorded at the type name's position.
type SCIPResolver struct {
	root   string
	index  *scip.SCIPIndex
	logger *slog.Logger
}

// NewSCIPResolver creates a resolver for files under root. Document paths in
// the index are relative to root.
func NewSCIPResolver(root string, index *scip.SCIPIndex, logger *slog.Logger) *SCIPResolver {
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	return &SCIPResolver{root: root, index: index, logger: logger}
}

// ID implements Resolver.
func (r *SCIPResolver) ID() BackendID {
	return BackendSCIP
}

// ResolveType implements Resolver.
func (r *SCIPResolver) ResolveType(ctx context.Context, unit *syntax.Unit, c syntax.Creation) (string, error) {
	path := unit.Path
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	root, err := filepath.Abs(r.root)
	if err != nil {
		return "", errors.Wrap(errors.ResolveFailed, err, "invalid root %s", r.root)
	}

	if !paths.IsWithinRoot(path, root) {
		return "", nil
	}
	rel, err := paths.CanonicalizePath(path, root)
	if err != nil {
		return "", errors.Wrap(errors.ResolveFailed, err, "failed to map %s into the index", unit.Path)
	}

	symbol := r.index.SymbolAt(rel, c.NameLine, c.NameColumn)
	if symbol == "" || scip.IsLocal(symbol) {
		return "", nil
	}

	id, err := scip.ParseSCIPIdentifier(symbol)
	if err != nil {
		r.logger.Debug("Skipping unparsable SCIP symbol",
			"symbol", symbol,
			"file", rel,
			"error", err.Error(),
		)
		return "", nil
	}
	return id.TypeName(), nil
}
