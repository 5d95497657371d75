package analyzer

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// AnalyzeFile walks a parsed source tree and produces the complete file
// analysis: imports, framework, and every top-level component and function
// binding. Only top-level bindings are recorded; nested helpers stay
// internal to their enclosing function.
//
// Duplicate binding names keep the first occurrence only.
func AnalyzeFile(root *ts.Node, source []byte, filePath string) *FileAnalysisResult {
	scan := &fileScan{
		source:   source,
		filePath: filePath,
		seen:     make(map[string]bool),
	}
	scan.imports = CollectImports(root, source)

	for i := uint(0); i < uint(root.NamedChildCount()); i++ {
		scan.statement(root.NamedChild(i))
	}

	fileType := FileTypeUnknown
	switch {
	case len(scan.components) > 0:
		fileType = FileTypeComponent
	case len(scan.functions) > 0:
		fileType = FileTypeFunction
	}

	return &FileAnalysisResult{
		FilePath:   filePath,
		FileType:   fileType,
		Framework:  InferFramework(scan.imports),
		Components: scan.components,
		Functions:  scan.functions,
		Imports:    scan.imports,
	}
}

// fileScan accumulates records while walking a file's top-level statements.
type fileScan struct {
	source     []byte
	filePath   string
	imports    []ImportRecord
	seen       map[string]bool
	components []ComponentRecord
	functions  []FunctionRecord
}

// statement dispatches one top-level statement to the matching binding shape:
// a function declaration, a variable declaration whose initializer is a
// function or wrapper call, or a default export.
func (s *fileScan) statement(stmt *ts.Node) {
	switch stmt.Kind() {
	case "export_statement":
		if decl := stmt.ChildByFieldName("declaration"); decl != nil {
			s.statement(decl)
			return
		}
		// export default <fn | wrapper(...)> has no declared name; the
		// record carries the "default" marker instead.
		if hasChildOfKind(stmt, "default") {
			if value := stmt.ChildByFieldName("value"); value != nil {
				s.binding("default", value)
			}
		}

	case "function_declaration", "generator_function_declaration":
		name := ""
		if n := stmt.ChildByFieldName("name"); n != nil {
			name = n.Utf8Text(s.source)
		}
		s.record(name, stmt, ComponentKindDeclaration, nil)

	case "lexical_declaration", "variable_declaration":
		for i := uint(0); i < uint(stmt.NamedChildCount()); i++ {
			declarator := stmt.NamedChild(i)
			if declarator.Kind() != "variable_declarator" {
				continue
			}
			name := declarator.ChildByFieldName("name")
			value := declarator.ChildByFieldName("value")
			if name == nil || value == nil || name.Kind() != "identifier" {
				continue
			}
			s.binding(name.Utf8Text(s.source), value)
		}
	}
}

// binding resolves a variable initializer (or default-export value) down to
// a function-like node, through parentheses and recognized wrapper calls.
func (s *fileScan) binding(name string, value *ts.Node) {
	for value != nil && value.Kind() == "parenthesized_expression" {
		value = value.NamedChild(0)
	}
	if value == nil {
		return
	}

	switch {
	case isFunctionLike(value):
		s.record(name, value, ComponentKindExpression, nil)

	case value.Kind() == "call_expression":
		inner, wrappers := UnwrapWrapperCall(value, s.source)
		if inner != nil {
			s.record(name, inner, ComponentKindExpression, wrappers)
		}
	}
}

// record classifies one named function binding and appends the resulting
// component or function record. Wrapper-wrapped bindings are always
// components; everything else is classified by markup content.
func (s *fileScan) record(name string, fn *ts.Node, kind ComponentKind, wrappers []string) {
	if name == "" || s.seen[name] {
		return
	}

	if len(wrappers) > 0 || IsComponent(fn) {
		rec := AnalyzeComponent(name, kind, fn, wrappers, s.source)
		if rec == nil {
			return
		}
		rec.Imports = s.imports
		rec.FilePath = s.filePath
		s.seen[name] = true
		s.components = append(s.components, *rec)
		return
	}

	rec := AnalyzeFunction(name, fn, s.source)
	if rec == nil {
		return
	}
	rec.Imports = s.imports
	rec.FilePath = s.filePath
	s.seen[name] = true
	s.functions = append(s.functions, *rec)
}
