package analyzer

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// jsxKinds are the markup node kinds that mark a function as a component.
var jsxKinds = map[string]bool{
	"jsx_element":              true,
	"jsx_self_closing_element": true,
	"jsx_fragment":             true,
}

// IsComponent reports whether a function-like node is a UI component: its
// body is, or contains anywhere in its nested expression tree, a JSX
// element or fragment. Markup inside conditionals, callbacks, and helper
// expressions counts, not only the direct return.
func IsComponent(fn *ts.Node) bool {
	if fn == nil {
		return false
	}
	body := fn.ChildByFieldName("body")
	if body == nil {
		body = fn
	}
	return ContainsJSX(body)
}

// ContainsJSX checks whether any descendant of node is a markup construct.
func ContainsJSX(node *ts.Node) bool {
	found := false
	Walk(node, func(n *ts.Node) bool {
		if jsxKinds[n.Kind()] {
			found = true
			return false
		}
		return true
	})
	return found
}

// isFunctionLike reports whether node is a function declaration, function
// expression, or arrow function.
func isFunctionLike(node *ts.Node) bool {
	if node == nil {
		return false
	}
	switch node.Kind() {
	case "function_declaration", "function_expression", "function", "arrow_function", "generator_function_declaration":
		return true
	}
	return false
}
