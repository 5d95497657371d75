package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/testscaffold/pkg/analyzer"
)

func TestTestFilePath(t *testing.T) {
	testCases := []struct {
		source string
		want   string
	}{
		{"src/Button.tsx", "src/Button.test.tsx"},
		{"src/utils.ts", "src/utils.test.ts"},
		{"src/App.jsx", "src/App.test.jsx"},
		{"lib/math.js", "lib/math.test.js"},
	}

	for _, tc := range testCases {
		t.Run(tc.source, func(t *testing.T) {
			assert.Equal(t, tc.want, TestFilePath(tc.source))
		})
	}
}

func TestGenerateComponentScaffold(t *testing.T) {
	result := &analyzer.FileAnalysisResult{
		FilePath:  "src/Button.tsx",
		FileType:  analyzer.FileTypeComponent,
		Framework: analyzer.FrameworkReact,
		Components: []analyzer.ComponentRecord{
			{
				Name: "Button",
				Kind: analyzer.ComponentKindExpression,
				Props: []analyzer.PropDescriptor{
					{Name: "label", Type: "string", Required: true},
					{Name: "onClick", Type: "Function", Required: false},
					{Name: "disabled", Type: "boolean", Required: false, DefaultValue: "false"},
				},
				Hooks:  []string{"useState"},
				Events: []string{"onClick"},
			},
		},
	}

	out, err := New(nil).Generate(result)
	require.NoError(t, err)

	assert.Contains(t, out, "import { render, screen, fireEvent } from '@testing-library/react';")
	assert.Contains(t, out, "import { Button } from './Button';")
	assert.Contains(t, out, "describe('<Button />'")
	assert.Contains(t, out, "render(<Button label={'text'} />);")
	assert.Contains(t, out, "const onClick = jest.fn();")
	assert.Contains(t, out, "render(<Button label={'text'} onClick={onClick} />);")
	assert.Contains(t, out, "// Uses hooks: useState")
}

func TestGenerateReactNativeImport(t *testing.T) {
	result := &analyzer.FileAnalysisResult{
		FilePath:  "src/Banner.tsx",
		Framework: analyzer.FrameworkReactNative,
		Components: []analyzer.ComponentRecord{
			{Name: "Banner", Props: []analyzer.PropDescriptor{{Name: "message", Type: "string", Required: true}}},
		},
	}

	out, err := New(nil).Generate(result)
	require.NoError(t, err)
	assert.Contains(t, out, "'@testing-library/react-native'")
}

func TestGenerateChildren(t *testing.T) {
	result := &analyzer.FileAnalysisResult{
		FilePath:  "src/Panel.tsx",
		Framework: analyzer.FrameworkReact,
		Components: []analyzer.ComponentRecord{
			{
				Name:            "Panel",
				AcceptsChildren: true,
				Props: []analyzer.PropDescriptor{
					{Name: "children", Type: "React.ReactNode", Required: true},
				},
			},
		},
	}

	out, err := New(nil).Generate(result)
	require.NoError(t, err)

	// children is rendered as element content, never as an attribute.
	assert.Contains(t, out, "render(<Panel>content</Panel>);")
	assert.NotContains(t, out, "children={")
}

func TestGenerateFunctionScaffold(t *testing.T) {
	result := &analyzer.FileAnalysisResult{
		FilePath:  "src/math.ts",
		FileType:  analyzer.FileTypeFunction,
		Framework: analyzer.FrameworkVanilla,
		Functions: []analyzer.FunctionRecord{
			{
				Name: "add",
				Params: []analyzer.ParamDescriptor{
					{Name: "a", Type: "number"},
					{Name: "b", Type: "number"},
				},
				ReturnType: "number",
				IsExported: true,
			},
			{
				Name:       "internalHelper",
				IsExported: false,
			},
		},
	}

	out, err := New(nil).Generate(result)
	require.NoError(t, err)

	assert.NotContains(t, out, "@testing-library", "vanilla files get no testing-library import")
	assert.Contains(t, out, "import { add } from './math';")
	assert.Contains(t, out, "describe('add'")
	assert.Contains(t, out, "expect(add(0, 0)).toBeDefined();")
	assert.Contains(t, out, "(a: number, b: number)")
	assert.NotContains(t, out, "internalHelper", "unexported functions are not scaffolded")
}

func TestGenerateAsyncFunction(t *testing.T) {
	result := &analyzer.FileAnalysisResult{
		FilePath:  "src/api.ts",
		Framework: analyzer.FrameworkVanilla,
		Functions: []analyzer.FunctionRecord{
			{
				Name:       "loadUsers",
				Params:     []analyzer.ParamDescriptor{{Name: "limit", Type: "number", Optional: true, DefaultValue: "20"}},
				ReturnType: "Promise<any>",
				IsAsync:    true,
				IsExported: true,
			},
		},
	}

	out, err := New(nil).Generate(result)
	require.NoError(t, err)

	assert.Contains(t, out, "async () => {")
	assert.Contains(t, out, "expect(await loadUsers()).toBeDefined();",
		"trailing optional params are omitted from sample arguments")
}

func TestGenerateDefaultExport(t *testing.T) {
	result := &analyzer.FileAnalysisResult{
		FilePath:  "src/App.tsx",
		Framework: analyzer.FrameworkReact,
		Components: []analyzer.ComponentRecord{
			{Name: "default"},
		},
	}

	out, err := New(nil).Generate(result)
	require.NoError(t, err)

	assert.Contains(t, out, "import App from './App';")
	assert.Contains(t, out, "describe('<App />'")
}

func TestGenerateEmptyResult(t *testing.T) {
	out, err := New(nil).Generate(&analyzer.FileAnalysisResult{FilePath: "src/consts.ts"})
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = New(nil).Generate(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSampleValue(t *testing.T) {
	testCases := []struct {
		typeDesc string
		want     string
	}{
		{"string", "'text'"},
		{"number", "0"},
		{"boolean", "false"},
		{"Function", "jest.fn()"},
		{"string[]", "[]"},
		{"object", "{}"},
		{"'sm' | 'lg'", "'sm'"},
		{"'primary'", "'primary'"},
		{"42", "42"},
		{"User", "undefined"},
	}

	for _, tc := range testCases {
		t.Run(tc.typeDesc, func(t *testing.T) {
			assert.Equal(t, tc.want, sampleValue(tc.typeDesc))
		})
	}
}
