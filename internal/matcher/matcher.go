// Package matcher applies the rule set to one parsed file.
package matcher

import (
	"context"

	"dbcalls/internal/errors"
	"dbcalls/internal/paths"
	"dbcalls/internal/report"
	"dbcalls/internal/resolve"
	"dbcalls/internal/rules"
	"dbcalls/internal/syntax"
)

// Matcher turns a Unit into match records for one mode.
type Matcher struct {
	rules    *rules.RuleSet
	mode     rules.Mode
	resolver resolve.Resolver
}

// New creates a matcher.
func New(rs *rules.RuleSet, mode rules.Mode, resolver resolve.Resolver) *Matcher {
	return &Matcher{rules: rs, mode: mode, resolver: resolver}
}

// Match returns the method-call records of unit in document order followed
// by its creation records in document order.
func (m *Matcher) Match(ctx context.Context, unit *syntax.Unit) ([]report.Record, error) {
	path := paths.ReducedPath(unit.Path)
	var records []report.Record

	for _, inv := range unit.Invocations {
		if !inv.MemberAccess || !m.rules.MatchesMethod(m.mode, inv.Name) {
			continue
		}
		records = append(records, report.Record{
			Path: path,
			Line: inv.Line,
			Kind: report.KindMethodCall,
			Name: inv.Name,
		})
	}

	if !m.rules.MatchesCreations(m.mode) {
		return records, nil
	}

	for _, c := range unit.Creations {
		name, err := m.resolver.ResolveType(ctx, unit, c)
		if err != nil {
			if errors.CodeOf(err) == errors.ResolveFailed {
				return nil, err
			}
			return nil, errors.Wrap(errors.ResolveFailed, err, "failed to resolve %s at %s:%d", c.Type, unit.Path, c.Line)
		}
		if name != m.rules.CommandType() {
			continue
		}
		records = append(records, report.Record{
			Path:       path,
			Line:       c.Line,
			Kind:       report.KindObjectCreation,
			Name:       name,
			Literal:    c.Literal,
			HasLiteral: c.HasLiteral,
		})
	}

	return records, nil
}
