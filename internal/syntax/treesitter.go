//go:build cgo

package syntax

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"dbcalls/internal/errors"
)

// Parser wraps a tree-sitter parser configured for C#. It is not safe for
// concurrent use.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a new C# parser.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(csharp.GetLanguage())
	return &Parser{parser: p}
}

// IsAvailable returns whether C# parsing is available.
func IsAvailable() bool {
	return true
}

// ParseFile reads and parses one file.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Unit, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.FileReadFailed, err, "failed to read %s", path)
	}
	return p.ParseSource(ctx, path, source)
}

// ParseSource parses source and extracts the unit. Syntax errors are not
// failures: tree-sitter recovers and the unit holds whatever was parsed.
func (p *Parser) ParseSource(ctx context.Context, path string, source []byte) (*Unit, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.Cancelled, ctx.Err(), "parse of %s cancelled", path)
		}
		return nil, errors.Wrap(errors.ParseFailed, err, "failed to parse %s", path)
	}
	if tree == nil {
		return nil, errors.Wrap(errors.ParseFailed, fmt.Errorf("no syntax tree"), "failed to parse %s", path)
	}

	return extract(path, source, tree.RootNode()), nil
}
