package scip

import (
	"fmt"
	"strings"
)

// SCIPIdentifier represents a parsed SCIP symbol identifier
type SCIPIdentifier struct {
	// Scheme is the indexer scheme (e.g., "scip-dotnet")
	Scheme string

	// Manager is the package manager (e.g., "nuget")
	Manager string

	// Package is the package name
	Package string

	// Version is the package version, empty when absent
	Version string

	// Descriptor is the symbol descriptor path
	Descriptor string

	// Raw is the original SCIP identifier
	Raw string
}

// ParseSCIPIdentifier parses a SCIP symbol identifier of the form
// <scheme> <manager> <package> <version> <descriptor>.
//
// Example:
//
//	scip-dotnet nuget System.Data.SqlClient 4.8.6 System/Data/SqlClient/SqlCommand#
func ParseSCIPIdentifier(id string) (*SCIPIdentifier, error) {
	if id == "" {
		return nil, fmt.Errorf("empty SCIP identifier")
	}
	if IsLocal(id) {
		return nil, fmt.Errorf("local SCIP symbol has no descriptor path: %s", id)
	}

	// The descriptor can contain spaces, so split at most 5 ways.
	parts := strings.SplitN(id, " ", 5)
	if len(parts) < 4 {
		return nil, fmt.Errorf("invalid SCIP identifier format: %s", id)
	}

	result := &SCIPIdentifier{
		Scheme:  parts[0],
		Manager: parts[1],
		Package: parts[2],
		Raw:     id,
	}

	if len(parts) == 4 {
		result.Descriptor = parts[3]
	} else {
		result.Version = parts[3]
		result.Descriptor = parts[4]
	}

	return result, nil
}

// IsLocal reports whether id is a document-local symbol.
func IsLocal(id string) bool {
	return strings.HasPrefix(id, "local ")
}

// TypeName returns the dotted type name the descriptor points at. Namespace
// (`/`) and type (`#`) descriptors are joined up to the last type; anything
// after it (methods, fields, parameters) is ignored. A descriptor that names
// no type returns "".
//
//	System/Data/SqlClient/SqlCommand#             -> System.Data.SqlClient.SqlCommand
//	System/Data/SqlClient/SqlCommand#`.ctor`().   -> System.Data.SqlClient.SqlCommand
//	App/Outer#Inner#                              -> App.Outer.Inner
func (s *SCIPIdentifier) TypeName() string {
	return descriptorTypeName(s.Descriptor)
}

func descriptorTypeName(descriptor string) string {
	var segments []string
	typeEnd := 0

	rest := descriptor
	for rest != "" {
		name, tail, ok := readName(rest)
		if !ok || tail == "" {
			break
		}

		switch tail[0] {
		case '/':
			segments = append(segments, name)
		case '#':
			segments = append(segments, name)
			typeEnd = len(segments)
		default:
			rest = ""
			continue
		}
		rest = tail[1:]
	}

	return strings.Join(segments[:typeEnd], ".")
}

// readName reads one descriptor name, plain or backtick-escaped, and
// returns it without any generic arity suffix.
func readName(s string) (name, rest string, ok bool) {
	if strings.HasPrefix(s, "`") {
		var b strings.Builder
		for i := 1; i < len(s); i++ {
			if s[i] != '`' {
				b.WriteByte(s[i])
				continue
			}
			if i+1 < len(s) && s[i+1] == '`' {
				b.WriteByte('`')
				i++
				continue
			}
			return trimArity(b.String()), s[i+1:], true
		}
		return "", "", false
	}

	i := 0
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	if i == 0 {
		return "", s, false
	}
	return s[:i], s[i:], true
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '+' || c == '-' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// trimArity drops a CLR generic arity marker (List`1 -> List).
func trimArity(name string) string {
	i := strings.LastIndexByte(name, '`')
	if i <= 0 {
		return name
	}
	for _, c := range name[i+1:] {
		if c < '0' || c > '9' {
			return name
		}
	}
	return name[:i]
}
