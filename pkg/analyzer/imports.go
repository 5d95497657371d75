package analyzer

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// CollectImports gathers the file's top-level import statements in source
// order. Side-effect imports (no clause) produce a record with no specifiers.
func CollectImports(root *ts.Node, source []byte) []ImportRecord {
	var imports []ImportRecord
	for i := uint(0); i < uint(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		if stmt.Kind() != "import_statement" {
			continue
		}
		if rec := extractImport(stmt, source); rec != nil {
			imports = append(imports, *rec)
		}
	}
	return imports
}

// extractImport converts one import_statement into an ImportRecord, or nil
// when the statement has no source string.
func extractImport(stmt *ts.Node, source []byte) *ImportRecord {
	src := stmt.ChildByFieldName("source")
	if src == nil {
		return nil
	}

	rec := &ImportRecord{Source: stringContent(src, source)}

	clause := findChildByKind(stmt, "import_clause")
	if clause == nil {
		return rec
	}

	for i := uint(0); i < uint(clause.NamedChildCount()); i++ {
		child := clause.NamedChild(i)
		switch child.Kind() {
		case "identifier":
			// Default import.
			rec.IsDefault = true
			rec.Specifiers = append(rec.Specifiers, child.Utf8Text(source))

		case "namespace_import":
			if name := findChildByKind(child, "identifier"); name != nil {
				rec.Specifiers = append(rec.Specifiers, name.Utf8Text(source))
			}

		case "named_imports":
			for j := uint(0); j < uint(child.NamedChildCount()); j++ {
				spec := child.NamedChild(j)
				if spec.Kind() != "import_specifier" {
					continue
				}
				// Local name is the alias when present, else the imported name.
				name := spec.ChildByFieldName("alias")
				if name == nil {
					name = spec.ChildByFieldName("name")
				}
				if name != nil {
					rec.Specifiers = append(rec.Specifiers, name.Utf8Text(source))
				}
			}
		}
	}
	return rec
}

// InferFramework classifies the file's UI framework from its imports with a
// single left-to-right scan. The first import whose source matches decides:
// "react-native" prefixes are checked before "react" prefixes so that a
// react-native import is never misread as react.
func InferFramework(imports []ImportRecord) Framework {
	for _, imp := range imports {
		switch {
		case isReactNativeSource(imp.Source):
			return FrameworkReactNative
		case isReactSource(imp.Source):
			return FrameworkReact
		}
	}
	return FrameworkVanilla
}

func isReactNativeSource(source string) bool {
	return source == "react-native" || strings.HasPrefix(source, "react-native/") ||
		strings.HasPrefix(source, "react-native-")
}

func isReactSource(source string) bool {
	return source == "react" || strings.HasPrefix(source, "react/") ||
		source == "react-dom" || strings.HasPrefix(source, "react-dom/")
}
