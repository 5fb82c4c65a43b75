// Package syntax parses C# source with tree-sitter and projects each file onto
// the few node kinds the matcher cares about.
package syntax

import "strings"

// Unit is the parsed view of one C# source file. All slices are in
// document order.
type Unit struct {
	// Path is the file path as enumerated by the walker
	Path string

	Usings      []Using
	Types       []TypeDecl
	Invocations []Invocation
	Creations   []Creation
}

// Using is a using directive.
type Using struct {
	// Scope is the namespace the directive appears in ("" for file level)
	Scope string
	// Name is the imported namespace or, for aliases, the aliased name
	Name string
	// Alias is set for `using Alias = Name;`
	Alias string
	// Static is set for `using static Name;`
	Static bool
	Line   int
}

// TypeDecl is a type declared in the file.
type TypeDecl struct {
	Namespace string
	Name      string
	Line      int
}

// FullName returns the dotted namespace-qualified name.
func (d TypeDecl) FullName() string {
	return Qualify(d.Namespace, d.Name)
}

// Invocation is a call expression.
type Invocation struct {
	// Name is the invoked simple name without type arguments
	Name string
	// MemberAccess is true for receiver.Name(...) calls
	MemberAccess bool
	// Line is the 1-based start line of the call expression
	Line int
}

// Creation is an object creation expression `new T(...)`.
type Creation struct {
	// Type is the type as written, normalized (no whitespace, generic
	// arguments or global:: prefix)
	Type string
	// Namespace is the enclosing namespace
	Namespace string
	// Line is the 1-based start line of the expression
	Line int
	// NameLine and NameColumn locate the type's simple name (0-based)
	NameLine   int
	NameColumn int
	// Literal is the first string literal argument with its quotes removed
	Literal    string
	HasLiteral bool
}

// Qualify joins a namespace and a name.
func Qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}

// NormalizeTypeName strips whitespace, `global::`, nullable markers and
// generic argument lists: `global::System.Collections.Generic.List<int>?`
// becomes `System.Collections.Generic.List`.
func NormalizeTypeName(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>':
			if depth > 0 {
				depth--
			}
		case depth > 0:
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		default:
			b.WriteRune(r)
		}
	}
	out := strings.TrimSuffix(b.String(), "?")
	return strings.TrimPrefix(out, "global::")
}

// UnquoteLiteral removes the delimiters of a C# string literal and nothing
// else: escape sequences are kept as written.
func UnquoteLiteral(text string) string {
	text = strings.TrimSuffix(text, "u8")
	switch {
	case strings.HasPrefix(text, `"""`):
		n := len(text) - len(strings.TrimLeft(text, `"`))
		if len(text) >= 2*n {
			return strings.TrimSpace(text[n : len(text)-n])
		}
		return text
	case strings.HasPrefix(text, `@"`):
		return strings.TrimSuffix(text[2:], `"`)
	case strings.HasPrefix(text, `"`) && len(text) >= 2:
		return strings.TrimSuffix(text[1:], `"`)
	default:
		return text
	}
}
