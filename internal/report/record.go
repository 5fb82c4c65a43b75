// Package report renders match records and delivers them to the console or
// to a timestamped file.
package report

import "fmt"

// Kind distinguishes the two kinds of match.
type Kind string

const (
	// KindMethodCall is a member-access call of a rule-set method name
	KindMethodCall Kind = "method-call"
	// KindObjectCreation is a construction of the command type
	KindObjectCreation Kind = "object-creation"
)

// Record is one match.
type Record struct {
	// Path is the reduced path <parent dir>/<file>
	Path string
	// Line is 1-based
	Line int
	Kind Kind
	// Name is the method name or the fully-qualified constructed type
	Name string
	// Literal is the first string literal argument of a creation
	Literal    string
	HasLiteral bool
}

// Render formats the record as one report line.
func (r Record) Render() string {
	switch {
	case r.Kind == KindMethodCall:
		return fmt.Sprintf("Found method call '%s' in file '%s' at line %d", r.Name, r.Path, r.Line)
	case r.HasLiteral:
		return fmt.Sprintf("Found stored procedure '%s' ('new %s') in file '%s' at line %d", r.Literal, r.Name, r.Path, r.Line)
	default:
		return fmt.Sprintf("Found 'new %s' in file '%s' at line %d", r.Name, r.Path, r.Line)
	}
}

// SummaryLine formats the closing total.
func SummaryLine(count int) string {
	return fmt.Sprintf("Total Database Requests Found: %d", count)
}
