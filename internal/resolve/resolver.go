// Package resolve turns the type written in an object creation into a
// fully-qualified type name.
package resolve

import (
	"context"

	"dbcalls/internal/syntax"
)

// BackendID identifies a resolver backend.
type BackendID string

const (
	// BackendSyntax resolves from the file's own usings and declarations
	BackendSyntax BackendID = "syntax"
	// BackendSCIP resolves through a precomputed SCIP index
	BackendSCIP BackendID = "scip"
)

// Resolver resolves the type of a creation in unit. An empty result means
// the type could not be resolved; that is not an error.
type Resolver interface {
	ID() BackendID
	ResolveType(ctx context.Context, unit *syntax.Unit, c syntax.Creation) (string, error)
}

// Chain tries resolvers in preference order and returns the first
// non-empty answer. An error from any resolver stops the chain.
type Chain []Resolver

// ID returns the ID of the preferred backend.
func (c Chain) ID() BackendID {
	if len(c) == 0 {
		return ""
	}
	return c[0].ID()
}

// ResolveType implements Resolver.
func (c Chain) ResolveType(ctx context.Context, unit *syntax.Unit, creation syntax.Creation) (string, error) {
	for _, r := range c {
		name, err := r.ResolveType(ctx, unit, creation)
		if err != nil {
			return "", err
		}
		if name != "" {
			return name, nil
		}
	}
	return "", nil
}
