package analyzer

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// ExtractParams extracts ordered parameter descriptors from a function-like
// node (function declaration, function expression, arrow function, method).
func ExtractParams(fn *ts.Node, source []byte) []ParamDescriptor {
	var params []ParamDescriptor
	for _, p := range parameterNodes(fn) {
		if desc := extractParam(p, source); desc != nil {
			params = append(params, *desc)
		}
	}
	return params
}

// ExtractReturnType resolves a function's declared return type. Functions
// without an annotation fall back to "Promise<any>" when async, else "any".
func ExtractReturnType(fn *ts.Node, source []byte) string {
	if fn == nil {
		return "any"
	}
	if anno := fn.ChildByFieldName("return_type"); anno != nil {
		return ResolveType(anno, source)
	}
	if isAsyncFunction(fn) {
		return "Promise<any>"
	}
	return "any"
}

// isAsyncFunction reports whether the function node carries the async keyword.
func isAsyncFunction(fn *ts.Node) bool {
	return hasChildOfKind(fn, "async")
}

// parameterNodes returns the parameter children of a function-like node.
// Arrow functions with a single bare parameter use the "parameter" field
// instead of a formal_parameters list.
func parameterNodes(fn *ts.Node) []*ts.Node {
	if fn == nil {
		return nil
	}
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		if single := fn.ChildByFieldName("parameter"); single != nil {
			return []*ts.Node{single}
		}
		return nil
	}
	var nodes []*ts.Node
	for i := uint(0); i < uint(params.NamedChildCount()); i++ {
		child := params.NamedChild(i)
		if child.Kind() == "comment" {
			continue
		}
		nodes = append(nodes, child)
	}
	return nodes
}

// paramShape is a parameter normalized across the TypeScript grammar
// (required_parameter/optional_parameter wrappers) and the JavaScript
// grammar (bare patterns).
type paramShape struct {
	pattern      *ts.Node // identifier, object_pattern, array_pattern, rest_pattern
	typeAnno     *ts.Node // type_annotation, may be nil
	defaultValue *ts.Node // initializer expression, may be nil
	optionalMark bool     // "?" marker on the parameter
}

// normalizeParam maps a raw parameter node into a paramShape.
func normalizeParam(node *ts.Node) paramShape {
	switch node.Kind() {
	case "required_parameter", "optional_parameter":
		return paramShape{
			pattern:      node.ChildByFieldName("pattern"),
			typeAnno:     node.ChildByFieldName("type"),
			defaultValue: node.ChildByFieldName("value"),
			optionalMark: node.Kind() == "optional_parameter",
		}
	case "assignment_pattern":
		return paramShape{
			pattern:      node.ChildByFieldName("left"),
			defaultValue: node.ChildByFieldName("right"),
		}
	default:
		return paramShape{pattern: node}
	}
}

// extractParam builds a ParamDescriptor for one parameter node, or nil when
// the parameter has no recognizable pattern.
func extractParam(node *ts.Node, source []byte) *ParamDescriptor {
	shape := normalizeParam(node)
	if shape.pattern == nil {
		return nil
	}

	desc := &ParamDescriptor{
		Type:     ResolveType(shape.typeAnno, source),
		Optional: shape.optionalMark,
	}

	switch shape.pattern.Kind() {
	case "identifier", "this":
		desc.Name = shape.pattern.Utf8Text(source)

	case "rest_pattern":
		// Text already carries the "..." prefix.
		desc.Name = shape.pattern.Utf8Text(source)
		desc.Optional = true
		if shape.typeAnno == nil {
			desc.Type = "any[]"
		}

	case "object_pattern":
		desc.Name = "{ " + strings.Join(patternPropertyNames(shape.pattern, source), ", ") + " }"

	case "array_pattern":
		desc.Name = "[...]"

	default:
		desc.Name = shape.pattern.Utf8Text(source)
	}

	if shape.defaultValue != nil {
		desc.Optional = true
		desc.DefaultValue = renderDefaultValue(shape.defaultValue, source)
	}

	return desc
}

// patternPropertyNames lists the property names of an object pattern in
// declared order, including rest elements.
func patternPropertyNames(pattern *ts.Node, source []byte) []string {
	var names []string
	for i := uint(0); i < uint(pattern.NamedChildCount()); i++ {
		child := pattern.NamedChild(i)
		switch child.Kind() {
		case "shorthand_property_identifier_pattern":
			names = append(names, child.Utf8Text(source))
		case "object_assignment_pattern", "assignment_pattern":
			if left := child.ChildByFieldName("left"); left != nil {
				names = append(names, left.Utf8Text(source))
			}
		case "pair_pattern":
			if key := child.ChildByFieldName("key"); key != nil {
				names = append(names, key.Utf8Text(source))
			}
		case "rest_pattern":
			names = append(names, child.Utf8Text(source))
		}
	}
	return names
}

// renderDefaultValue renders a literal default initializer as text. Only
// literal node kinds are pattern-matched; the expression is never evaluated.
// Non-literal defaults render as "undefined".
func renderDefaultValue(node *ts.Node, source []byte) string {
	if node == nil {
		return "undefined"
	}
	switch node.Kind() {
	case "string", "template_string":
		return node.Utf8Text(source)
	case "number":
		return node.Utf8Text(source)
	case "true", "false", "null", "undefined":
		return node.Utf8Text(source)
	case "identifier":
		if node.Utf8Text(source) == "undefined" {
			return "undefined"
		}
		return "undefined"
	case "unary_expression":
		// Negative numeric literals only.
		if arg := node.ChildByFieldName("argument"); arg != nil && arg.Kind() == "number" {
			return node.Utf8Text(source)
		}
		return "undefined"
	case "array":
		return "[]"
	case "object":
		return "{}"
	default:
		return "undefined"
	}
}
