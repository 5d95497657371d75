package analyzer

import (
	"strings"
	"unicode"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// AnalyzeComponent builds the full structured record for a classified
// component binding. Returns nil when the binding has no usable name.
// Imports and FilePath are filled in by the file orchestrator.
func AnalyzeComponent(name string, kind ComponentKind, fn *ts.Node, wrappers []string, source []byte) *ComponentRecord {
	if name == "" || fn == nil {
		return nil
	}

	props := ExtractProps(fn, source)

	return &ComponentRecord{
		Name:            name,
		Kind:            kind,
		Props:           props,
		Hooks:           CollectHooks(fn, source),
		Events:          eventNames(props),
		AcceptsChildren: acceptsChildren(props),
		Wrappers:        wrappers,
	}
}

// AnalyzeFunction builds the structured record for a plain function binding.
// Returns nil when the binding has no usable name.
func AnalyzeFunction(name string, fn *ts.Node, source []byte) *FunctionRecord {
	if name == "" || fn == nil {
		return nil
	}

	return &FunctionRecord{
		Name:       name,
		Params:     ExtractParams(fn, source),
		ReturnType: ExtractReturnType(fn, source),
		IsAsync:    isAsyncFunction(fn),
		IsExported: isExportedNode(fn),
	}
}

// ExtractProps derives the prop list from a component's first parameter.
//
// A destructured object pattern yields one PropDescriptor per property
// (required unless it has a default). A type-literal annotation on the
// parameter cross-references by name: a matching member overwrites the
// prop's type and required flag; unmatched members are appended only when
// the parameter is a bare identifier.
func ExtractProps(fn *ts.Node, source []byte) []PropDescriptor {
	params := parameterNodes(fn)
	if len(params) == 0 {
		return nil
	}
	// Only the first parameter carries props; forwardRef's second (ref)
	// parameter is never a props parameter.
	shape := normalizeParam(params[0])
	if shape.pattern == nil {
		return nil
	}

	var props []PropDescriptor
	bareIdentifier := false

	switch shape.pattern.Kind() {
	case "object_pattern":
		props = destructuredProps(shape.pattern, source)
	case "identifier":
		bareIdentifier = true
	default:
		return nil
	}

	if shape.typeAnno != nil {
		t := annotatedType(shape.typeAnno)
		for _, objType := range typeLiteralParts(t) {
			applyTypeLiteral(&props, objType, source, bareIdentifier)
		}
	}

	return props
}

// destructuredProps extracts props from an object destructuring pattern.
func destructuredProps(pattern *ts.Node, source []byte) []PropDescriptor {
	var props []PropDescriptor
	for i := uint(0); i < uint(pattern.NamedChildCount()); i++ {
		child := pattern.NamedChild(i)
		switch child.Kind() {
		case "shorthand_property_identifier_pattern":
			props = append(props, PropDescriptor{
				Name:     child.Utf8Text(source),
				Type:     "any",
				Required: true,
			})

		case "object_assignment_pattern", "assignment_pattern":
			left := child.ChildByFieldName("left")
			right := child.ChildByFieldName("right")
			if left == nil {
				continue
			}
			props = append(props, PropDescriptor{
				Name:         left.Utf8Text(source),
				Type:         "any",
				Required:     false,
				DefaultValue: renderDefaultValue(right, source),
			})

		case "pair_pattern":
			key := child.ChildByFieldName("key")
			if key == nil {
				continue
			}
			prop := PropDescriptor{Name: key.Utf8Text(source), Type: "any", Required: true}
			if value := child.ChildByFieldName("value"); value != nil {
				k := value.Kind()
				if k == "assignment_pattern" || k == "object_assignment_pattern" {
					prop.Required = false
					prop.DefaultValue = renderDefaultValue(value.ChildByFieldName("right"), source)
				}
			}
			props = append(props, prop)

			// rest_pattern is pass-through, not an explicit prop.
		}
	}
	return props
}

// typeLiteralParts returns the object_type nodes of a type annotation:
// the type itself, or the object_type members of an intersection.
func typeLiteralParts(t *ts.Node) []*ts.Node {
	if t == nil {
		return nil
	}
	switch t.Kind() {
	case "object_type":
		return []*ts.Node{t}
	case "intersection_type":
		var parts []*ts.Node
		for i := uint(0); i < uint(t.ChildCount()); i++ {
			child := t.Child(i)
			switch child.Kind() {
			case "object_type":
				parts = append(parts, child)
			case "intersection_type":
				parts = append(parts, typeLiteralParts(child)...)
			}
		}
		return parts
	}
	return nil
}

// applyTypeLiteral cross-references type-literal members against the prop
// list. The member's declared type and optionality overwrite an existing
// prop; unmatched members are appended in the bare-identifier case.
func applyTypeLiteral(props *[]PropDescriptor, objType *ts.Node, source []byte, appendUnmatched bool) {
	for i := uint(0); i < uint(objType.NamedChildCount()); i++ {
		member := objType.NamedChild(i)
		if member.Kind() != "property_signature" {
			continue
		}
		nameNode := member.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := nameNode.Utf8Text(source)
		optional := hasChildOfKind(member, "?")
		memberType := ResolveType(member.ChildByFieldName("type"), source)

		matched := false
		for j := range *props {
			if (*props)[j].Name == name {
				(*props)[j].Type = memberType
				(*props)[j].Required = !optional
				matched = true
				break
			}
		}
		if !matched && appendUnmatched {
			*props = append(*props, PropDescriptor{
				Name:     name,
				Type:     memberType,
				Required: !optional,
			})
		}
	}
}

// CollectHooks scans a function body for calls whose callee is a bare
// identifier starting with "use". Deduplicated, first-seen order.
func CollectHooks(fn *ts.Node, source []byte) []string {
	var hooks []string
	seen := make(map[string]bool)
	Walk(fn, func(n *ts.Node) bool {
		if n.Kind() != "call_expression" {
			return true
		}
		callee := n.ChildByFieldName("function")
		if callee == nil || callee.Kind() != "identifier" {
			return true
		}
		name := callee.Utf8Text(source)
		if strings.HasPrefix(name, "use") && !seen[name] {
			seen[name] = true
			hooks = append(hooks, name)
		}
		return true
	})
	return hooks
}

// eventNames filters the prop list down to event-handler props, in prop
// order. A prop qualifies iff its name follows the onXxx camelCase
// convention: "on" prefix, length > 2, third character uppercase.
func eventNames(props []PropDescriptor) []string {
	var events []string
	for _, p := range props {
		if isEventName(p.Name) {
			events = append(events, p.Name)
		}
	}
	return events
}

func isEventName(name string) bool {
	runes := []rune(name)
	if len(runes) <= 2 {
		return false
	}
	return strings.HasPrefix(name, "on") && unicode.IsUpper(runes[2])
}

// acceptsChildren reports whether any prop is named exactly "children".
func acceptsChildren(props []PropDescriptor) bool {
	for _, p := range props {
		if p.Name == "children" {
			return true
		}
	}
	return false
}

// isExportedNode reports whether a declaration sits under an export
// statement, walking up through the enclosing variable declaration when
// needed. The climb stops at any statement block so nested helpers inside
// an exported function are not themselves marked exported.
func isExportedNode(node *ts.Node) bool {
	for n := node; n != nil; n = n.Parent() {
		switch n.Kind() {
		case "export_statement":
			return true
		case "statement_block", "program":
			return false
		}
	}
	return false
}
