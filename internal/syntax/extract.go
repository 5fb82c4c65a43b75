//go:build cgo

package syntax

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

var typeDeclarations = map[string]bool{
	"class_declaration":         true,
	"struct_declaration":        true,
	"interface_declaration":     true,
	"record_declaration":        true,
	"record_struct_declaration": true,
	"enum_declaration":          true,
	"delegate_declaration":      true,
}

var stringLiterals = map[string]bool{
	"string_literal":          true,
	"verbatim_string_literal": true,
	"raw_string_literal":      true,
}

var nameNodes = map[string]bool{
	"identifier":           true,
	"qualified_name":       true,
	"generic_name":         true,
	"alias_qualified_name": true,
}

type extractor struct {
	source []byte
	unit   *Unit
}

// extract walks the tree once, top to bottom, collecting usings, type
// declarations, invocations and object creations.
func extract(path string, source []byte, root *sitter.Node) *Unit {
	x := &extractor{source: source, unit: &Unit{Path: path}}
	x.walk(root, "")
	return x.unit
}

func (x *extractor) walk(n *sitter.Node, ns string) {
	if n == nil {
		return
	}

	switch n.Type() {
	case "namespace_declaration":
		ns = Qualify(ns, NormalizeTypeName(x.text(n.ChildByFieldName("name"))))
	case "using_directive":
		x.addUsing(n, ns)
		return
	case "invocation_expression":
		x.addInvocation(n)
	case "object_creation_expression":
		x.addCreation(n, ns)
	default:
		if typeDeclarations[n.Type()] {
			if name := n.ChildByFieldName("name"); name != nil {
				x.unit.Types = append(x.unit.Types, TypeDecl{
					Namespace: ns,
					Name:      x.text(name),
					Line:      line(n),
				})
			}
		}
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		// A file-scoped namespace applies to the siblings that follow it.
		if child.Type() == "file_scoped_namespace_declaration" {
			ns = Qualify(ns, NormalizeTypeName(x.text(child.ChildByFieldName("name"))))
		}
		x.walk(child, ns)
	}
}

func (x *extractor) addUsing(n *sitter.Node, ns string) {
	u := Using{Scope: ns, Line: line(n)}

	var names []*sitter.Node
	hasEquals := false
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "static":
			u.Static = true
		case "=":
			hasEquals = true
		case "name_equals":
			hasEquals = true
			if id := firstNamedOfType(child, "identifier"); id != nil {
				u.Alias = x.text(id)
			}
		default:
			if child.IsNamed() && nameNodes[child.Type()] {
				names = append(names, child)
			}
		}
	}
	if len(names) == 0 {
		return
	}

	// `using Alias = Target;` puts the alias identifier before the target.
	if hasEquals && u.Alias == "" && len(names) >= 2 {
		u.Alias = x.text(names[0])
	}
	u.Name = NormalizeTypeName(x.text(names[len(names)-1]))
	x.unit.Usings = append(x.unit.Usings, u)
}

func (x *extractor) addInvocation(n *sitter.Node) {
	fn := n.ChildByFieldName("function")
	if fn == nil {
		fn = n.NamedChild(0)
	}
	if fn == nil {
		return
	}

	inv := Invocation{Line: line(n)}
	switch fn.Type() {
	case "member_access_expression":
		inv.MemberAccess = true
		// Type arguments are dropped, so ctx.Items.Select<int>(f) is
		// reported as Select. Comparing the full "Select<int>" text, as the
		// Roslyn name would read, never matches explicit generic calls.
		inv.Name = x.simpleName(fn.ChildByFieldName("name"))
	case "identifier", "generic_name":
		inv.Name = x.simpleName(fn)
	}
	if inv.Name == "" {
		return
	}
	x.unit.Invocations = append(x.unit.Invocations, inv)
}

func (x *extractor) addCreation(n *sitter.Node, ns string) {
	typ := n.ChildByFieldName("type")
	if typ == nil {
		return
	}

	c := Creation{
		Type:      NormalizeTypeName(x.text(typ)),
		Namespace: ns,
		Line:      line(n),
	}
	nameNode := lastIdentifier(typ)
	c.NameLine = int(nameNode.StartPoint().Row)
	c.NameColumn = int(nameNode.StartPoint().Column)

	args := n.ChildByFieldName("arguments")
	if args == nil {
		args = firstNamedOfType(n, "argument_list")
	}
	if args != nil {
		c.Literal, c.HasLiteral = x.firstStringArgument(args)
	}

	x.unit.Creations = append(x.unit.Creations, c)
}

// firstStringArgument returns the first argument that is a plain string
// literal (regular, verbatim or raw). Interpolated strings do not count.
func (x *extractor) firstStringArgument(args *sitter.Node) (string, bool) {
	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		if arg == nil || arg.Type() != "argument" {
			continue
		}
		for j := 0; j < int(arg.NamedChildCount()); j++ {
			expr := arg.NamedChild(j)
			if expr != nil && stringLiterals[expr.Type()] {
				return UnquoteLiteral(x.text(expr)), true
			}
		}
	}
	return "", false
}

// simpleName returns an identifier's text without type arguments.
func (x *extractor) simpleName(n *sitter.Node) string {
	text := x.text(n)
	if i := strings.IndexByte(text, '<'); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

func (x *extractor) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(x.source[n.StartByte():n.EndByte()])
}

// lastIdentifier finds the rightmost simple name of a type node, which is
// where indexers put the type's reference occurrence.
func lastIdentifier(n *sitter.Node) *sitter.Node {
	for {
		switch n.Type() {
		case "identifier":
			return n
		case "qualified_name", "alias_qualified_name":
			if name := n.ChildByFieldName("name"); name != nil {
				n = name
				continue
			}
		case "generic_name":
			if id := firstNamedOfType(n, "identifier"); id != nil {
				return id
			}
			return n
		}
		count := int(n.NamedChildCount())
		if count == 0 {
			return n
		}
		next := n.NamedChild(count - 1)
		if n.Type() == "nullable_type" || n.Type() == "array_type" {
			next = n.NamedChild(0)
		}
		if next == nil {
			return n
		}
		n = next
	}
}

func firstNamedOfType(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child != nil && child.Type() == typ {
			return child
		}
	}
	return nil
}

func line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}
