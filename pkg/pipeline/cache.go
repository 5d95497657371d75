package pipeline

import (
	"crypto/sha256"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gnana997/testscaffold/pkg/analyzer"
)

// ResultCache memoizes per-file analysis results, keyed by file path and
// invalidated by content digest. Watch mode re-analyzes files constantly;
// unchanged content short-circuits to the cached result.
//
// Thread-safe: the underlying LRU carries its own lock.
type ResultCache struct {
	entries *lru.Cache[string, cachedResult]
}

type cachedResult struct {
	digest [sha256.Size]byte
	result *analyzer.FileAnalysisResult
}

// NewResultCache creates a cache holding up to size entries.
func NewResultCache(size int) (*ResultCache, error) {
	if size <= 0 {
		size = 1024
	}
	entries, err := lru.New[string, cachedResult](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}
	return &ResultCache{entries: entries}, nil
}

// Get returns the cached result for path when the source content still
// matches the digest recorded at Put time.
func (c *ResultCache) Get(path string, source []byte) (*analyzer.FileAnalysisResult, bool) {
	entry, ok := c.entries.Get(path)
	if !ok {
		return nil, false
	}
	if entry.digest != sha256.Sum256(source) {
		return nil, false
	}
	return entry.result, true
}

// Put stores the result together with the source digest it was computed from.
func (c *ResultCache) Put(path string, source []byte, result *analyzer.FileAnalysisResult) {
	c.entries.Add(path, cachedResult{
		digest: sha256.Sum256(source),
		result: result,
	})
}

// Invalidate drops the entry for path.
func (c *ResultCache) Invalidate(path string) {
	c.entries.Remove(path)
}

// Len returns the number of cached entries.
func (c *ResultCache) Len() int {
	return c.entries.Len()
}
