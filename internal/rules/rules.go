// Package rules holds the fixed rule set: which method names and which
// constructed type count as a database request.
package rules

import "strings"

// Mode selects the subset of rules applied for one run.
type Mode int

const (
	// ModeInvalid is the terminal no-op mode for unrecognised menu input.
	ModeInvalid Mode = iota
	// ModeCombined matches query operators, raw SQL calls and command constructions.
	ModeCombined
	// ModeCommandOnly matches command constructions only.
	ModeCommandOnly
)

// ParseMode maps a menu option ("A" or "B", case-insensitive) to a Mode.
func ParseMode(s string) Mode {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return ModeCombined
	case "B":
		return ModeCommandOnly
	default:
		return ModeInvalid
	}
}

// Modes returns the selectable modes in menu order.
func Modes() []Mode {
	return []Mode{ModeCombined, ModeCommandOnly}
}

// String returns the menu option letter.
func (m Mode) String() string {
	switch m {
	case ModeCombined:
		return "A"
	case ModeCommandOnly:
		return "B"
	default:
		return "invalid"
	}
}

// Category names the report file produced by the mode.
func (m Mode) Category() string {
	switch m {
	case ModeCombined:
		return "DatabaseCalls"
	case ModeCommandOnly:
		return "SqlCommands"
	default:
		return ""
	}
}

// Description is the menu text for the mode.
func (m Mode) Description() string {
	switch m {
	case ModeCombined:
		return "LINQ queries, raw SQL and SqlCommand constructions"
	case ModeCommandOnly:
		return "SqlCommand constructions only"
	default:
		return "no analysis"
	}
}

// Valid reports whether the mode runs a scan.
func (m Mode) Valid() bool {
	return m == ModeCombined || m == ModeCommandOnly
}

// CommandType is the fully-qualified type whose constructions are reported.
const CommandType = "System.Data.SqlClient.SqlCommand"

// queryOperators are matched by name alone. Besides the query-shaping
// operators (Where, Select, GroupBy) the list holds materializing and
// aggregate members such as Count, Any, First and ToList, which
// List<T> and arrays share; scans of in-memory collection code over-count.
var queryOperators = []string{
	"Where", "Select", "SelectMany", "GroupBy", "GroupJoin", "Join",
	"OrderBy", "OrderByDescending", "ThenBy", "ThenByDescending",
	"Distinct", "Skip", "Take",
	"First", "FirstOrDefault", "Single", "SingleOrDefault", "Last", "LastOrDefault",
	"Any", "All", "Count", "LongCount", "Sum", "Min", "Max", "Average",
	"Include", "ThenInclude",
	"ToList", "ToListAsync", "ToArray", "ToArrayAsync",
}

var rawSQLMethods = []string{"FromSqlRaw", "ExecuteSqlRaw", "ExecuteSqlCommand"}

// RuleSet is the immutable set of names the matcher looks for.
type RuleSet struct {
	queryOperators []string
	rawSQL         []string
	methods        map[string]struct{}
	commandType    string
}

// Default returns the built-in rule set.
func Default() *RuleSet {
	rs := &RuleSet{
		queryOperators: queryOperators,
		rawSQL:         rawSQLMethods,
		methods:        make(map[string]struct{}, len(queryOperators)+len(rawSQLMethods)),
		commandType:    CommandType,
	}
	for _, name := range queryOperators {
		rs.methods[name] = struct{}{}
	}
	for _, name := range rawSQLMethods {
		rs.methods[name] = struct{}{}
	}
	return rs
}

// MatchesMethod reports whether a member-access call named name is a hit in
// mode. Comparison is exact and case-sensitive.
func (r *RuleSet) MatchesMethod(mode Mode, name string) bool {
	if mode != ModeCombined {
		return false
	}
	_, ok := r.methods[name]
	return ok
}

// MatchesCreations reports whether mode looks at object creations at all.
func (r *RuleSet) MatchesCreations(mode Mode) bool {
	return mode.Valid()
}

// CommandType returns the fully-qualified command type name.
func (r *RuleSet) CommandType() string {
	return r.commandType
}

// QueryOperators returns a copy of the query-operator names.
func (r *RuleSet) QueryOperators() []string {
	return append([]string(nil), r.queryOperators...)
}

// RawSQLMethods returns a copy of the raw-SQL execution names.
func (r *RuleSet) RawSQLMethods() []string {
	return append([]string(nil), r.rawSQL...)
}
