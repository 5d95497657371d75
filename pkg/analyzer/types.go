// Package analyzer turns a parsed JavaScript/TypeScript syntax tree into a
// structured description of a source file's testable surface: components,
// functions, props, hooks, event handlers, and imports.
package analyzer

// Framework identifies the UI framework a file targets, inferred from imports.
type Framework string

const (
	FrameworkReact       Framework = "react"
	FrameworkReactNative Framework = "react-native"
	FrameworkVanilla     Framework = "vanilla"
)

// FileType classifies what a file's analysis produced.
type FileType string

const (
	FileTypeComponent FileType = "component"
	FileTypeFunction  FileType = "function"
	FileTypeUnknown   FileType = "unknown"
)

// ComponentKind describes how a component binding was declared.
type ComponentKind string

const (
	// ComponentKindDeclaration is a named function declaration.
	ComponentKindDeclaration ComponentKind = "declaration"
	// ComponentKindExpression is a function/arrow expression bound to a
	// variable, possibly through a wrapper call.
	ComponentKindExpression ComponentKind = "expression"
)

// ImportRecord represents one import statement, in source order.
type ImportRecord struct {
	Source     string   `json:"source"`
	Specifiers []string `json:"specifiers"`
	IsDefault  bool     `json:"is_default"`
}

// ParamDescriptor describes one function parameter.
//
// Name encodes the destructuring shape textually when the parameter is a
// pattern: "{ a, b }" for object patterns, "[...]" for array patterns,
// "...rest" for rest parameters.
type ParamDescriptor struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Optional     bool   `json:"optional"`
	DefaultValue string `json:"default_value,omitempty"`
}

// PropDescriptor describes one component prop, found via the props
// parameter's destructuring pattern and/or its type-literal annotation.
type PropDescriptor struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Required     bool   `json:"required"`
	DefaultValue string `json:"default_value,omitempty"`
}

// ComponentRecord is the full structured description of one detected
// component binding. Immutable after construction.
type ComponentRecord struct {
	Name            string           `json:"name"`
	Kind            ComponentKind    `json:"kind"`
	Props           []PropDescriptor `json:"props"`
	Hooks           []string         `json:"hooks"`
	Events          []string         `json:"events"`
	AcceptsChildren bool             `json:"accepts_children"`
	// Wrappers lists wrapper call names unwrapped to reach the component,
	// outermost first (e.g. ["memo", "forwardRef"]).
	Wrappers []string       `json:"wrappers,omitempty"`
	Imports  []ImportRecord `json:"imports"`
	FilePath string         `json:"file_path"`
}

// FunctionRecord is the structured description of one plain function binding.
type FunctionRecord struct {
	Name       string            `json:"name"`
	Params     []ParamDescriptor `json:"params"`
	ReturnType string            `json:"return_type"`
	IsAsync    bool              `json:"is_async"`
	IsExported bool              `json:"is_exported"`
	Imports    []ImportRecord    `json:"imports"`
	FilePath   string            `json:"file_path"`
}

// FileAnalysisResult is the complete analysis of one source file.
//
// Invariant: FileType is component iff Components is non-empty, else
// function iff Functions is non-empty, else unknown.
type FileAnalysisResult struct {
	FilePath   string            `json:"file_path"`
	FileType   FileType          `json:"file_type"`
	Framework  Framework         `json:"framework"`
	Components []ComponentRecord `json:"components"`
	Functions  []FunctionRecord  `json:"functions"`
	Imports    []ImportRecord    `json:"imports"`
}
