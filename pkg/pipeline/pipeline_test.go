package pipeline

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/testscaffold/pkg/analyzer"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	runner, err := NewRunner(Options{Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { runner.Close() })
	return runner
}

const buttonFixture = `
import React from 'react';

export const Button = ({ label, onClick }) => (
  <button onClick={onClick}>{label}</button>
);
`

const mathFixture = `
export function add(a: number, b: number): number {
  return a + b;
}
`

func TestRunnerAnalyzeFile(t *testing.T) {
	runner := newTestRunner(t)
	root := writeTree(t, map[string]string{"src/Button.jsx": buttonFixture})
	path := filepath.Join(root, "src", "Button.jsx")

	result, err := runner.AnalyzeFile(path)
	require.NoError(t, err)

	assert.Equal(t, analyzer.FileTypeComponent, result.FileType)
	assert.Equal(t, analyzer.FrameworkReact, result.Framework)
	require.Len(t, result.Components, 1)
	assert.Equal(t, "Button", result.Components[0].Name)

	// Second run serves the cached result.
	again, err := runner.AnalyzeFile(path)
	require.NoError(t, err)
	assert.Same(t, result, again)
}

func TestRunnerAnalyzeFileMissing(t *testing.T) {
	runner := newTestRunner(t)
	_, err := runner.AnalyzeFile(filepath.Join(t.TempDir(), "nope.ts"))
	assert.Error(t, err)
}

func TestRunnerScan(t *testing.T) {
	runner := newTestRunner(t)
	root := writeTree(t, map[string]string{
		"src/Button.jsx": buttonFixture,
		"src/math.ts":    mathFixture,
		"src/consts.ts":  "export const N = 1;",
	})

	report, err := runner.Scan(root, DefaultDiscoveryConfig())
	require.NoError(t, err)

	assert.Equal(t, 3, report.FilesDiscovered)
	assert.Equal(t, 3, report.FilesAnalyzed)
	assert.Equal(t, 0, report.FilesFailed)
	assert.Equal(t, 1, report.Components)
	assert.Equal(t, 1, report.Functions)
	require.Len(t, report.Results, 3)

	// Results keep discovery (sorted path) order.
	assert.Equal(t, filepath.Join(root, "src", "Button.jsx"), report.Results[0].FilePath)
}

func TestRunnerGenerate(t *testing.T) {
	runner := newTestRunner(t)
	root := writeTree(t, map[string]string{
		"src/Button.jsx": buttonFixture,
		"src/math.ts":    mathFixture,
		"src/consts.ts":  "export const N = 1;",
	})

	report, err := runner.Generate(root, DefaultDiscoveryConfig(), false)
	require.NoError(t, err)

	assert.Equal(t, 2, report.FilesWritten)
	assert.Equal(t, 1, report.FilesSkipped, "nothing testable in consts.ts")

	testFile := filepath.Join(root, "src", "Button.test.jsx")
	content, err := os.ReadFile(testFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "describe('<Button />'")

	mathTest := filepath.Join(root, "src", "math.test.ts")
	content, err = os.ReadFile(mathTest)
	require.NoError(t, err)
	assert.Contains(t, string(content), "describe('add'")
}

func TestRunnerGenerateNoOverwrite(t *testing.T) {
	runner := newTestRunner(t)
	root := writeTree(t, map[string]string{
		"src/math.ts":      mathFixture,
		"src/math.test.ts": "// hand-written test, do not touch",
	})

	report, err := runner.Generate(root, DefaultDiscoveryConfig(), false)
	require.NoError(t, err)
	assert.Equal(t, 0, report.FilesWritten)
	assert.Equal(t, 1, report.FilesSkipped)

	content, err := os.ReadFile(filepath.Join(root, "src", "math.test.ts"))
	require.NoError(t, err)
	assert.Equal(t, "// hand-written test, do not touch", string(content))
}

func TestRunnerGenerateOverwrite(t *testing.T) {
	runner := newTestRunner(t)
	root := writeTree(t, map[string]string{
		"src/math.ts":      mathFixture,
		"src/math.test.ts": "// stale scaffold",
	})

	report, err := runner.Generate(root, DefaultDiscoveryConfig(), true)
	require.NoError(t, err)
	assert.Equal(t, 1, report.FilesWritten)

	content, err := os.ReadFile(filepath.Join(root, "src", "math.test.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "describe('add'")
}

func TestRunnerRenderFile(t *testing.T) {
	runner := newTestRunner(t)
	root := writeTree(t, map[string]string{"src/math.ts": mathFixture})
	path := filepath.Join(root, "src", "math.ts")

	scaffold, testPath, err := runner.RenderFile(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "src", "math.test.ts"), testPath)
	assert.Contains(t, scaffold, "expect(add(0, 0)).toBeDefined();")
}

func TestRunnerInvalidateFile(t *testing.T) {
	runner := newTestRunner(t)
	root := writeTree(t, map[string]string{"src/math.ts": mathFixture})
	path := filepath.Join(root, "src", "math.ts")

	first, err := runner.AnalyzeFile(path)
	require.NoError(t, err)
	require.Len(t, first.Functions, 1)

	require.NoError(t, os.WriteFile(path, []byte("export function sub(a: number, b: number): number { return a - b; }"), 0o644))
	runner.InvalidateFile(path)

	second, err := runner.AnalyzeFile(path)
	require.NoError(t, err)
	require.Len(t, second.Functions, 1)
	assert.Equal(t, "sub", second.Functions[0].Name)
}
