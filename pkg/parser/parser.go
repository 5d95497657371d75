// Package parser wraps tree-sitter parsing for JavaScript and TypeScript
// sources behind per-language parser pools, safe for concurrent use.
package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/gnana997/testscaffold/pkg/util"
)

// poolKey identifies one parser pool: a language plus its TSX variant.
type poolKey struct {
	lang  Language
	isTSX bool
}

// Manager owns tree-sitter parser pools, one per language/TSX combination,
// created lazily on first use.
//
// The manager must be closed via Close(). Callers own returned trees and
// must call tree.Close() after use. Safe for concurrent use: pool creation
// is synchronized and each pool hands out independent parser instances.
type Manager struct {
	pools  map[poolKey]*parserPool
	mutex  sync.RWMutex
	logger *slog.Logger

	parsesCalled int
}

// NewManager creates a parser manager. The returned manager must be closed
// via Close() to free the underlying parsers.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		pools:  make(map[poolKey]*parserPool),
		logger: logger,
	}
}

// Parse parses source with the given language grammar. isTSX selects the
// TSX grammar and is only meaningful for TypeScript.
//
// The returned tree MUST be closed by the caller. Trees with syntax errors
// are still returned: partial trees are useful for analysis.
func (m *Manager) Parse(source []byte, lang Language, isTSX bool) (*ts.Tree, error) {
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("cannot parse unknown language")
	}

	m.mutex.Lock()
	m.parsesCalled++
	m.mutex.Unlock()

	pool, err := m.getOrCreatePool(lang, isTSX)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool for %s: %w", lang, err)
	}

	parser, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire parser: %w", err)
	}

	tree := parser.Parse(source, nil)
	pool.release(parser)

	if tree == nil {
		return nil, fmt.Errorf("parser returned nil tree")
	}

	if tree.RootNode().HasError() {
		m.logger.Warn("parse tree contains errors", "language", lang.String())
	}

	return tree, nil
}

// ParseFile parses source, detecting the grammar from the file path.
// The returned tree MUST be closed by the caller.
func (m *Manager) ParseFile(source []byte, filePath string) (*ts.Tree, error) {
	lang := DetectLanguage(filePath)
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}
	return m.Parse(source, lang, IsTSXFile(filePath))
}

// Close releases every parser pool. The manager cannot be used afterwards.
func (m *Manager) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.logger.Info("closing parser manager",
		"parses_called", m.parsesCalled)

	for key, pool := range m.pools {
		if pool != nil {
			pool.close()
			m.logger.Debug("closed parser pool",
				"language", key.lang.String(),
				"isTSX", key.isTSX)
		}
	}
	m.pools = make(map[poolKey]*parserPool)

	return nil
}

// getOrCreatePool returns the pool for a language, creating it on first use.
// Double-checked locking keeps the fast path on a read lock.
func (m *Manager) getOrCreatePool(lang Language, isTSX bool) (*parserPool, error) {
	key := poolKey{lang: lang, isTSX: isTSX}

	m.mutex.RLock()
	pool, exists := m.pools[key]
	m.mutex.RUnlock()
	if exists {
		return pool, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if pool, exists = m.pools[key]; exists {
		return pool, nil
	}

	langPtr, err := languagePointer(lang, isTSX)
	if err != nil {
		return nil, err
	}

	poolSize := util.GetOptimalPoolSize()
	pool = newParserPool(lang, langPtr, isTSX, poolSize, m.logger)
	m.pools[key] = pool

	m.logger.Debug("created parser pool",
		"language", lang.String(),
		"isTSX", isTSX,
		"max_size", poolSize)

	return pool, nil
}

// languagePointer resolves the raw tree-sitter grammar pointer.
func languagePointer(lang Language, isTSX bool) (unsafe.Pointer, error) {
	switch lang {
	case LanguageTypeScript:
		if isTSX {
			return ts_typescript.LanguageTSX(), nil
		}
		return ts_typescript.LanguageTypescript(), nil

	case LanguageJavaScript:
		return ts_javascript.Language(), nil

	default:
		return nil, fmt.Errorf("unsupported language: %s", lang.String())
	}
}

// Stats reports parser usage counters.
type Stats struct {
	ParsersCreated int
	ParsesCalled   int
}

// GetStats returns cumulative usage counters across all pools.
func (m *Manager) GetStats() Stats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	created := 0
	for _, pool := range m.pools {
		created += pool.createdCount()
	}
	return Stats{
		ParsersCreated: created,
		ParsesCalled:   m.parsesCalled,
	}
}
