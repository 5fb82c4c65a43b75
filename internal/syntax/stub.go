//go:build !cgo

package syntax

import (
	"context"
	"errors"
)

// ErrNoCGO is returned when C# parsing is unavailable due to missing CGO.
var ErrNoCGO = errors.New("C# parsing requires CGO (tree-sitter)")

// Parser is a stub for non-CGO builds.
type Parser struct{}

// NewParser returns nil when CGO is disabled.
func NewParser() *Parser {
	return nil
}

// ParseFile always fails without CGO.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Unit, error) {
	return nil, ErrNoCGO
}

// ParseSource always fails without CGO.
func (p *Parser) ParseSource(ctx context.Context, path string, source []byte) (*Unit, error) {
	return nil, ErrNoCGO
}

// IsAvailable returns false when CGO is disabled.
func IsAvailable() bool {
	return false
}
