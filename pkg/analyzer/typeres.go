package analyzer

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// ResolveType converts a syntactic type node into a normalized type
// descriptor string. Never fails: anything unrecognized (or a nil node)
// resolves to "any".
//
// Accepts either the type node itself or its enclosing type_annotation.
func ResolveType(node *ts.Node, source []byte) string {
	if node == nil {
		return "any"
	}

	switch node.Kind() {
	case "type_annotation":
		return ResolveType(annotatedType(node), source)

	case "predefined_type":
		// string, number, boolean, any, void, never, unknown, object, symbol
		return node.Utf8Text(source)

	case "type_identifier", "nested_type_identifier":
		// Named reference; nested identifiers keep their "." separators.
		return node.Utf8Text(source)

	case "array_type":
		elem := node.NamedChild(0)
		return ResolveType(elem, source) + "[]"

	case "union_type":
		return joinTypeMembers(node, source, "union_type", " | ")

	case "intersection_type":
		return joinTypeMembers(node, source, "intersection_type", " & ")

	case "literal_type":
		return renderLiteralType(node, source)

	case "tuple_type":
		var members []string
		for i := uint(0); i < uint(node.NamedChildCount()); i++ {
			members = append(members, ResolveType(node.NamedChild(i), source))
		}
		return "[" + strings.Join(members, ", ") + "]"

	case "function_type":
		return "Function"

	case "object_type":
		return "object"

	case "parenthesized_type":
		return ResolveType(node.NamedChild(0), source)

	case "generic_type":
		if name := node.ChildByFieldName("name"); name != nil {
			return name.Utf8Text(source)
		}
		return "any"

	default:
		return "any"
	}
}

// annotatedType returns the type node inside a type_annotation, skipping
// the leading ":" token.
func annotatedType(anno *ts.Node) *ts.Node {
	if anno == nil {
		return nil
	}
	for i := uint(0); i < uint(anno.ChildCount()); i++ {
		child := anno.Child(i)
		if child.Kind() != ":" {
			return child
		}
	}
	return nil
}

// joinTypeMembers flattens a left-recursive binary union/intersection tree
// into its leaf members (preserving declared order) and joins them.
func joinTypeMembers(node *ts.Node, source []byte, kind, sep string) string {
	members := flattenTypeMembers(node, source, kind)
	return strings.Join(members, sep)
}

func flattenTypeMembers(node *ts.Node, source []byte, kind string) []string {
	if node == nil {
		return nil
	}
	if node.Kind() != kind {
		return []string{ResolveType(node, source)}
	}
	var members []string
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		k := child.Kind()
		if k == "|" || k == "&" {
			continue
		}
		members = append(members, flattenTypeMembers(child, source, kind)...)
	}
	return members
}

// renderLiteralType re-quotes a literal type: 'value' for strings, numeric
// text for numbers, and the keyword text for true/false/null/undefined.
func renderLiteralType(node *ts.Node, source []byte) string {
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "string":
			return "'" + stringContent(child, source) + "'"
		case "number", "unary_expression":
			return child.Utf8Text(source)
		case "true", "false", "null", "undefined":
			return child.Utf8Text(source)
		}
	}
	return node.Utf8Text(source)
}

// stringContent returns the text inside a string node without quotes.
func stringContent(node *ts.Node, source []byte) string {
	if frag := findChildByKind(node, "string_fragment"); frag != nil {
		return frag.Utf8Text(source)
	}
	text := node.Utf8Text(source)
	if len(text) >= 2 {
		return text[1 : len(text)-1]
	}
	return text
}
