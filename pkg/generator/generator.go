// Package generator renders test-file boilerplate from analysis results.
// Output formatting only: every decision about what a file contains was
// already made by the analyzer.
package generator

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gnana997/testscaffold/pkg/analyzer"
)

// Generator renders Jest scaffolds for analyzed files.
type Generator struct {
	logger *slog.Logger
}

// New creates a Generator.
func New(logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{logger: logger}
}

// Generate renders the test scaffold for one analyzed file. Files with
// nothing testable produce an empty string.
func (g *Generator) Generate(result *analyzer.FileAnalysisResult) (string, error) {
	if result == nil || (len(result.Components) == 0 && len(result.Functions) == 0) {
		return "", nil
	}

	data := buildFileData(result)

	var sb strings.Builder
	if err := scaffoldTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render scaffold for %s: %w", result.FilePath, err)
	}

	g.logger.Debug("rendered scaffold",
		"file", result.FilePath,
		"components", len(result.Components),
		"functions", len(result.Functions))

	return sb.String(), nil
}

// TestFilePath maps a source path to its sibling test file:
// src/Button.tsx → src/Button.test.tsx.
func TestFilePath(sourcePath string) string {
	ext := filepath.Ext(sourcePath)
	base := strings.TrimSuffix(sourcePath, ext)
	return base + ".test" + ext
}

// fileData is the precomputed template input for one file.
type fileData struct {
	TestingImport string
	ImportLine    string
	Components    []componentData
	Functions     []functionData
}

type componentData struct {
	Name            string
	RenderTag       string
	AcceptsChildren bool
	Events          []eventData
	HookList        string
}

type eventData struct {
	Name      string
	RenderTag string
}

type functionData struct {
	Name      string
	Args      string
	ParamHint string
	IsAsync   bool
}

func buildFileData(result *analyzer.FileAnalysisResult) *fileData {
	data := &fileData{
		TestingImport: testingImport(result.Framework),
		ImportLine:    importLine(result),
	}

	for _, comp := range result.Components {
		name := subjectName(comp.Name, result.FilePath)
		cd := componentData{
			Name:            name,
			RenderTag:       renderTag(name, comp.Props, ""),
			AcceptsChildren: comp.AcceptsChildren,
			HookList:        strings.Join(comp.Hooks, ", "),
		}
		for _, event := range comp.Events {
			cd.Events = append(cd.Events, eventData{
				Name:      event,
				RenderTag: renderTag(name, comp.Props, event),
			})
		}
		data.Components = append(data.Components, cd)
	}

	for _, fn := range result.Functions {
		if !fn.IsExported {
			continue
		}
		data.Functions = append(data.Functions, functionData{
			Name:      subjectName(fn.Name, result.FilePath),
			Args:      sampleArgs(fn.Params),
			ParamHint: paramHint(fn.Params),
			IsAsync:   fn.IsAsync,
		})
	}

	return data
}

func testingImport(framework analyzer.Framework) string {
	switch framework {
	case analyzer.FrameworkReact:
		return "@testing-library/react"
	case analyzer.FrameworkReactNative:
		return "@testing-library/react-native"
	default:
		return ""
	}
}

// importLine builds the subject import: the default-export subject imports
// under the file's base name, everything else as named imports.
func importLine(result *analyzer.FileAnalysisResult) string {
	module := "./" + baseName(result.FilePath)

	var defaultName string
	var named []string
	for _, comp := range result.Components {
		if comp.Name == "default" {
			defaultName = subjectName(comp.Name, result.FilePath)
		} else {
			named = append(named, comp.Name)
		}
	}
	for _, fn := range result.Functions {
		if !fn.IsExported {
			continue
		}
		if fn.Name == "default" {
			defaultName = subjectName(fn.Name, result.FilePath)
		} else {
			named = append(named, fn.Name)
		}
	}

	switch {
	case defaultName != "" && len(named) > 0:
		return fmt.Sprintf("import %s, { %s } from '%s';", defaultName, strings.Join(named, ", "), module)
	case defaultName != "":
		return fmt.Sprintf("import %s from '%s';", defaultName, module)
	case len(named) > 0:
		return fmt.Sprintf("import { %s } from '%s';", strings.Join(named, ", "), module)
	default:
		return ""
	}
}

// subjectName resolves the default-export marker to the file's base name.
func subjectName(name, filePath string) string {
	if name == "default" {
		return baseName(filePath)
	}
	return name
}

func baseName(filePath string) string {
	base := filepath.Base(filePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// renderTag builds "Name attr={value} ..." with sample values for every
// required prop. eventProp, when set, is bound to the local jest.fn()
// variable of the same name.
func renderTag(name string, props []analyzer.PropDescriptor, eventProp string) string {
	var sb strings.Builder
	sb.WriteString(name)
	for _, prop := range props {
		switch {
		case prop.Name == eventProp:
			fmt.Fprintf(&sb, " %s={%s}", prop.Name, prop.Name)
		case prop.Required && prop.Name != "children":
			fmt.Fprintf(&sb, " %s={%s}", prop.Name, sampleValue(prop.Type))
		}
	}
	return sb.String()
}

// sampleValue synthesizes a placeholder expression for a type descriptor.
// Literal unions pick their first member; everything unrecognized falls
// back to undefined so the scaffold still compiles.
func sampleValue(typeDesc string) string {
	if i := strings.Index(typeDesc, " | "); i >= 0 {
		typeDesc = typeDesc[:i]
	}

	switch {
	case typeDesc == "string":
		return "'text'"
	case typeDesc == "number":
		return "0"
	case typeDesc == "boolean":
		return "false"
	case typeDesc == "Function":
		return "jest.fn()"
	case typeDesc == "object":
		return "{}"
	case strings.HasSuffix(typeDesc, "[]"):
		return "[]"
	case strings.HasPrefix(typeDesc, "'"):
		// First member of a string-literal union.
		return typeDesc
	case typeDesc == "null":
		return "null"
	case typeDesc == "true" || typeDesc == "false":
		return typeDesc
	case len(typeDesc) > 0 && (typeDesc[0] == '-' || (typeDesc[0] >= '0' && typeDesc[0] <= '9')):
		// Numeric literal type.
		return typeDesc
	default:
		return "undefined"
	}
}

// sampleArgs renders one placeholder argument per parameter, skipping
// trailing optional ones.
func sampleArgs(params []analyzer.ParamDescriptor) string {
	end := len(params)
	for end > 0 && params[end-1].Optional {
		end--
	}

	var args []string
	for _, p := range params[:end] {
		args = append(args, sampleValue(p.Type))
	}
	return strings.Join(args, ", ")
}

// paramHint renders "name: type" pairs for the TODO comment.
func paramHint(params []analyzer.ParamDescriptor) string {
	var parts []string
	for _, p := range params {
		parts = append(parts, p.Name+": "+p.Type)
	}
	return strings.Join(parts, ", ")
}
