package scip

// Metadata identifies the indexer run that produced an index.
type Metadata struct {
	ToolName    string
	ToolVersion string
	ProjectRoot string
}

// Document holds the occurrences of one indexed source file.
type Document struct {
	RelativePath string // slash-separated, relative to the project root
	Occurrences  []Occurrence
}

// Occurrence is one symbol mention in a document.
type Occurrence struct {
	Span        Span
	Symbol      string
	SymbolRoles int32
}

// IsDefinition reports whether the occurrence defines its symbol.
func (o Occurrence) IsDefinition() bool {
	return o.SymbolRoles&SymbolRoleDefinition != 0
}

// Span is a 0-based source range; EndColumn is exclusive.
type Span struct {
	StartLine, StartColumn int
	EndLine, EndColumn     int
}

// spanFromRange decodes the SCIP range encoding: [line, startCol, endCol]
// for single-line ranges, [startLine, startCol, endLine, endCol] otherwise.
func spanFromRange(r []int32) (Span, bool) {
	switch len(r) {
	case 3:
		return Span{int(r[0]), int(r[1]), int(r[0]), int(r[2])}, true
	case 4:
		return Span{int(r[0]), int(r[1]), int(r[2]), int(r[3])}, true
	default:
		return Span{}, false
	}
}

// Contains reports whether the position falls inside the span.
func (s Span) Contains(line, column int) bool {
	switch {
	case line < s.StartLine || line > s.EndLine:
		return false
	case line == s.StartLine && column < s.StartColumn:
		return false
	case line == s.EndLine && column >= s.EndColumn:
		return false
	}
	return true
}

// SymbolRoleDefinition is the SCIP role bit marking a definition.
const SymbolRoleDefinition int32 = 1
