package resolve

import (
	"context"
	"strings"

	"dbcalls/internal/rules"
	"dbcalls/internal/syntax"
)

// wellKnownTypes are library types the syntax resolver can recognise without
// seeing their declarations.
var wellKnownTypes = []string{
	rules.CommandType,
	"System.Data.SqlClient.SqlConnection",
	"System.Data.SqlClient.SqlDataAdapter",
	"System.Data.SqlClient.SqlParameter",
	"Microsoft.Data.SqlClient.SqlCommand",
	"Microsoft.Data.SqlClient.SqlConnection",
	"Microsoft.Data.SqlClient.SqlDataAdapter",
	"Microsoft.Data.SqlClient.SqlParameter",
	"Npgsql.NpgsqlCommand",
	"MySql.Data.MySqlClient.MySqlCommand",
	"MySqlConnector.MySqlCommand",
	"Oracle.ManagedDataAccess.Client.OracleCommand",
	"Microsoft.Data.Sqlite.SqliteCommand",
	"System.Data.OleDb.OleDbCommand",
	"System.Data.Odbc.OdbcCommand",
}

// SyntaxResolver resolves names using only the file being matched: its
// using directives, its namespace declarations and the types it declares.
// Names that cannot be pinned to exactly one type stay unresolved.
type SyntaxResolver struct {
	known map[string]bool
}

// NewSyntaxResolver creates a resolver over the built-in type catalog.
func NewSyntaxResolver() *SyntaxResolver {
	known := make(map[string]bool, len(wellKnownTypes))
	for _, name := range wellKnownTypes {
		known[name] = true
	}
	return &SyntaxResolver{known: known}
}

// ID implements Resolver.
func (r *SyntaxResolver) ID() BackendID {
	return BackendSyntax
}

// ResolveType implements Resolver.
func (r *SyntaxResolver) ResolveType(ctx context.Context, unit *syntax.Unit, c syntax.Creation) (string, error) {
	name := syntax.NormalizeTypeName(c.Type)
	if name == "" {
		return "", nil
	}
	chain := namespaceChain(c.Namespace)
	scope := usingsInScope(unit.Usings, c.Namespace)

	// Alias::Type
	if alias, rest, ok := strings.Cut(name, "::"); ok {
		target, found := lookupAlias(scope, alias)
		if !found {
			return "", nil
		}
		return r.resolveQualified(unit, chain, target+"."+rest), nil
	}

	if strings.Contains(name, ".") {
		first, rest, _ := strings.Cut(name, ".")
		if target, found := lookupAlias(scope, first); found {
			name = target + "." + rest
		}
		return r.resolveQualified(unit, chain, name), nil
	}

	return r.resolveSimple(unit, chain, scope, name), nil
}

func (r *SyntaxResolver) resolveSimple(unit *syntax.Unit, chain []string, scope []syntax.Using, name string) string {
	if target, found := lookupAlias(scope, name); found {
		return target
	}

	// Enclosing namespaces, innermost first, shadow using directives.
	for _, ns := range chain {
		candidate := syntax.Qualify(ns, name)
		if declares(unit, candidate) || r.known[candidate] {
			return candidate
		}
	}

	var found string
	for _, u := range scope {
		if u.Alias != "" || u.Static {
			continue
		}
		candidate := syntax.Qualify(u.Name, name)
		if !(r.known[candidate] || declares(unit, candidate)) || candidate == found {
			continue
		}
		if found != "" {
			// Ambiguous between two imported namespaces, whether the
			// competing type is a library type or declared in this file.
			return ""
		}
		found = candidate
	}
	return found
}

func (r *SyntaxResolver) resolveQualified(unit *syntax.Unit, chain []string, name string) string {
	for _, ns := range chain {
		if ns == "" {
			continue
		}
		candidate := syntax.Qualify(ns, name)
		if declares(unit, candidate) || r.known[candidate] {
			return candidate
		}
	}
	return name
}

// namespaceChain lists ns and each of its parents down to the global
// namespace: A.B.C -> [A.B.C, A.B, A, ""].
func namespaceChain(ns string) []string {
	var chain []string
	for ns != "" {
		chain = append(chain, ns)
		i := strings.LastIndexByte(ns, '.')
		if i < 0 {
			break
		}
		ns = ns[:i]
	}
	return append(chain, "")
}

// usingsInScope returns the directives visible from namespace ns, innermost
// scope first.
func usingsInScope(usings []syntax.Using, ns string) []syntax.Using {
	var scoped []syntax.Using
	for _, scope := range namespaceChain(ns) {
		for _, u := range usings {
			if u.Scope == scope {
				scoped = append(scoped, u)
			}
		}
	}
	return scoped
}

func lookupAlias(scope []syntax.Using, alias string) (string, bool) {
	for _, u := range scope {
		if u.Alias == alias {
			return u.Name, true
		}
	}
	return "", false
}

func declares(unit *syntax.Unit, fullName string) bool {
	for _, d := range unit.Types {
		if d.FullName() == fullName {
			return true
		}
	}
	return false
}
