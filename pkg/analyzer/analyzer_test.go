package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeFileComponent(t *testing.T) {
	source := `
import React, { useState } from 'react';

export function Toggle({ label, onToggle }: { label: string; onToggle?: () => void }) {
  const [on, setOn] = useState(false);
  return <button onClick={() => setOn(!on)}>{label}</button>;
}

export function formatLabel(raw: string): string {
  return raw.trim();
}
`
	root, src := parseSource(t, source, "Toggle.tsx")

	result := AnalyzeFile(root, src, "src/Toggle.tsx")
	require.NotNil(t, result)

	assert.Equal(t, "src/Toggle.tsx", result.FilePath)
	assert.Equal(t, FileTypeComponent, result.FileType)
	assert.Equal(t, FrameworkReact, result.Framework)

	require.Len(t, result.Components, 1)
	comp := result.Components[0]
	assert.Equal(t, "Toggle", comp.Name)
	assert.Equal(t, ComponentKindDeclaration, comp.Kind)
	assert.Equal(t, []string{"useState"}, comp.Hooks)
	assert.Equal(t, []string{"onToggle"}, comp.Events)
	assert.Equal(t, "src/Toggle.tsx", comp.FilePath)
	assert.Equal(t, result.Imports, comp.Imports)

	require.Len(t, result.Functions, 1)
	fn := result.Functions[0]
	assert.Equal(t, "formatLabel", fn.Name)
	assert.True(t, fn.IsExported)
	assert.Equal(t, "string", fn.ReturnType)
}

func TestAnalyzeFileFunctionOnly(t *testing.T) {
	source := `
export function add(a: number, b: number): number {
  return a + b;
}

const internal = (x: number) => x * 2;
`
	root, src := parseSource(t, source, "math.ts")

	result := AnalyzeFile(root, src, "src/math.ts")
	assert.Equal(t, FileTypeFunction, result.FileType)
	assert.Equal(t, FrameworkVanilla, result.Framework)
	assert.Empty(t, result.Components)

	require.Len(t, result.Functions, 2)
	assert.Equal(t, "add", result.Functions[0].Name)
	assert.True(t, result.Functions[0].IsExported)
	assert.Equal(t, "internal", result.Functions[1].Name)
	assert.False(t, result.Functions[1].IsExported)
}

func TestAnalyzeFileUnknown(t *testing.T) {
	root, src := parseSource(t, "const LIMIT = 100;\nexport const NAME = 'app';\n", "consts.ts")

	result := AnalyzeFile(root, src, "src/consts.ts")
	assert.Equal(t, FileTypeUnknown, result.FileType)
	assert.Empty(t, result.Components)
	assert.Empty(t, result.Functions)
}

func TestAnalyzeFileWrapperBinding(t *testing.T) {
	source := `
import { memo, forwardRef } from 'react';

const Input = memo(forwardRef(({ placeholder }, ref) => <input ref={ref} placeholder={placeholder} />));
export default Input;
`
	root, src := parseSource(t, source, "Input.tsx")

	result := AnalyzeFile(root, src, "src/Input.tsx")
	require.Len(t, result.Components, 1)

	comp := result.Components[0]
	assert.Equal(t, "Input", comp.Name)
	assert.Equal(t, ComponentKindExpression, comp.Kind)
	assert.Equal(t, []string{"memo", "forwardRef"}, comp.Wrappers)
	require.Len(t, comp.Props, 1)
	assert.Equal(t, "placeholder", comp.Props[0].Name)
}

func TestAnalyzeFileDefaultExportArrow(t *testing.T) {
	source := `
import React from 'react';

export default () => <main>app</main>;
`
	root, src := parseSource(t, source, "App.tsx")

	result := AnalyzeFile(root, src, "src/App.tsx")
	require.Len(t, result.Components, 1)
	assert.Equal(t, "default", result.Components[0].Name, "anonymous default exports use the default marker")
}

func TestAnalyzeFileDefaultExportWrapped(t *testing.T) {
	source := `
import { memo } from 'react';

export default memo(({ id }) => <div id={id} />);
`
	root, src := parseSource(t, source, "Widget.tsx")

	result := AnalyzeFile(root, src, "src/Widget.tsx")
	require.Len(t, result.Components, 1)
	assert.Equal(t, "default", result.Components[0].Name)
	assert.Equal(t, []string{"memo"}, result.Components[0].Wrappers)
}

func TestAnalyzeFileDuplicateNames(t *testing.T) {
	source := `
function render(x) { return x + 1; }
var render = function (y) { return y; };
`
	root, src := parseSource(t, source, "dup.js")

	result := AnalyzeFile(root, src, "src/dup.js")
	require.Len(t, result.Functions, 1, "first occurrence wins")
	require.Len(t, result.Functions[0].Params, 1)
	assert.Equal(t, "x", result.Functions[0].Params[0].Name)
}

func TestAnalyzeFileNestedFunctionsSkipped(t *testing.T) {
	source := `
export function outer() {
  function inner(a) { return a; }
  return inner(1);
}
`
	root, src := parseSource(t, source, "nested.ts")

	result := AnalyzeFile(root, src, "src/nested.ts")
	require.Len(t, result.Functions, 1, "only top-level bindings are recorded")
	assert.Equal(t, "outer", result.Functions[0].Name)
}

func TestAnalyzeFileReactNative(t *testing.T) {
	source := `
import { View, Text } from 'react-native';

export const Banner = ({ message }) => (
  <View>
    <Text>{message}</Text>
  </View>
);
`
	root, src := parseSource(t, source, "Banner.tsx")

	result := AnalyzeFile(root, src, "src/Banner.tsx")
	assert.Equal(t, FrameworkReactNative, result.Framework)
	require.Len(t, result.Components, 1)
	assert.Equal(t, "Banner", result.Components[0].Name)
}

// Analysis is read-only over the tree: repeated runs yield identical results.
func TestAnalyzeFileIdempotent(t *testing.T) {
	source := `
import React from 'react';

export const App = ({ title }) => <h1>{title}</h1>;
export function helper(n) { return n; }
`
	root, src := parseSource(t, source, "App.jsx")

	first := AnalyzeFile(root, src, "src/App.jsx")
	second := AnalyzeFile(root, src, "src/App.jsx")
	assert.Equal(t, first, second)
}

func TestAnalyzeFileNonFunctionInitializersSkipped(t *testing.T) {
	source := `
const config = { retries: 3 };
const names = ['a', 'b'];
const total = compute();
`
	root, src := parseSource(t, source, "config.js")

	result := AnalyzeFile(root, src, "src/config.js")
	assert.Empty(t, result.Functions)
	assert.Empty(t, result.Components)
	assert.Equal(t, FileTypeUnknown, result.FileType)
}
