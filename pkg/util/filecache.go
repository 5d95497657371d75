package util

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/edsrzf/mmap-go"
)

// FileCache provides fast repeated access to source files via memory
// mapping, with a plain-read fallback when mmap fails. Watch mode re-reads
// the same files on every change batch; mapping them once avoids the
// repeated read syscalls.
//
// Thread-safe: reads take a shared lock, loads an exclusive one.
type FileCache interface {
	// Get returns the mapped file, loading it on first access.
	Get(filePath string) (*MappedFile, error)

	// ReadSource returns the full file contents. The returned slice
	// aliases the mapping and must not be modified.
	ReadSource(filePath string) ([]byte, error)

	// Invalidate drops a cached entry so the next Get reloads from disk.
	Invalidate(filePath string)

	// Size returns the number of currently cached files.
	Size() int

	// Stats returns current cache metrics.
	Stats() FileCacheStats

	// Close unmaps all files. The cache cannot be used afterwards.
	Close() error
}

// FileCacheConfig controls cache limits. Zero values mean unlimited.
type FileCacheConfig struct {
	// MaxFiles caps the number of cached files; Get fails once reached.
	MaxFiles int

	// MaxMemoryMB caps total mapped virtual memory. Only accessed pages
	// consume physical RAM.
	MaxMemoryMB int

	Logger *slog.Logger
}

// DefaultFileCacheConfig covers typical frontend repos.
func DefaultFileCacheConfig() *FileCacheConfig {
	return &FileCacheConfig{
		MaxFiles:    10000,
		MaxMemoryMB: 2048,
	}
}

// MappedFile is one cached source file.
type MappedFile struct {
	Path string
	// Data is the mapped region; nil for empty files. Fallback entries
	// wrap a heap slice instead of a mapping.
	Data mmap.MMap
	// File is the open descriptor behind the mapping; nil for fallback
	// entries.
	File     *os.File
	Size     int64
	MappedAt time.Time
}

// FileCacheStats tracks cache counters.
type FileCacheStats struct {
	FilesLoaded   int64
	FilesCached   int
	CacheHits     int64
	CacheMisses   int64
	MmapFailures  int64
	TotalMappedMB float64
}

// NewFileCache creates a FileCache. A nil config uses the defaults.
func NewFileCache(config *FileCacheConfig) FileCache {
	if config == nil {
		config = DefaultFileCacheConfig()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &fileCache{
		config:   config,
		cache:    make(map[string]*MappedFile),
		fallback: make(map[string][]byte),
		logger:   config.Logger,
	}
}

type fileCache struct {
	config *FileCacheConfig
	logger *slog.Logger

	mu       sync.RWMutex
	cache    map[string]*MappedFile
	fallback map[string][]byte

	statsMu sync.Mutex
	stats   FileCacheStats
}

func (fc *fileCache) Get(filePath string) (*MappedFile, error) {
	fc.mu.RLock()
	if mf, ok := fc.cache[filePath]; ok {
		fc.mu.RUnlock()
		fc.recordHit()
		return mf, nil
	}
	if data, ok := fc.fallback[filePath]; ok {
		fc.mu.RUnlock()
		fc.recordHit()
		return wrapFallback(filePath, data), nil
	}
	fc.mu.RUnlock()

	fc.mu.Lock()
	defer fc.mu.Unlock()

	// Another goroutine may have loaded it while we waited for the lock.
	if mf, ok := fc.cache[filePath]; ok {
		fc.recordHit()
		return mf, nil
	}
	if data, ok := fc.fallback[filePath]; ok {
		fc.recordHit()
		return wrapFallback(filePath, data), nil
	}

	var fileSize int64
	if fc.config.MaxMemoryMB > 0 {
		stat, err := os.Stat(filePath)
		if err != nil {
			fc.recordMiss()
			return nil, fmt.Errorf("failed to stat file %q: %w", filePath, err)
		}
		fileSize = stat.Size()
	}
	if err := fc.checkLimits(fileSize); err != nil {
		fc.recordMiss()
		return nil, err
	}

	mf, err := fc.load(filePath)
	if err != nil {
		fc.recordMiss()
		return nil, err
	}
	if mf.File != nil || mf.Size == 0 {
		fc.cache[filePath] = mf
	}
	fc.recordLoad()

	return mf, nil
}

func (fc *fileCache) ReadSource(filePath string) ([]byte, error) {
	mf, err := fc.Get(filePath)
	if err != nil {
		return nil, err
	}
	return mf.Data, nil
}

func (fc *fileCache) Invalidate(filePath string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if mf, ok := fc.cache[filePath]; ok {
		if mf.Data != nil {
			if err := mf.Data.Unmap(); err != nil {
				fc.logger.Warn("failed to unmap file", "path", filePath, "error", err)
			}
		}
		if mf.File != nil {
			mf.File.Close()
		}
		delete(fc.cache, filePath)
	}
	delete(fc.fallback, filePath)
}

// checkLimits verifies adding a file stays within limits. Caller holds mu.
func (fc *fileCache) checkLimits(newFileSize int64) error {
	if fc.config.MaxFiles > 0 {
		current := len(fc.cache) + len(fc.fallback)
		if current >= fc.config.MaxFiles {
			return fmt.Errorf("file cache limit reached: %d files (limit %d)",
				current, fc.config.MaxFiles)
		}
	}
	if fc.config.MaxMemoryMB > 0 && newFileSize > 0 {
		afterMB := fc.mappedMBLocked() + float64(newFileSize)/(1024*1024)
		if afterMB >= float64(fc.config.MaxMemoryMB) {
			return fmt.Errorf("file cache memory limit reached: %.2f MB (limit %d MB)",
				afterMB, fc.config.MaxMemoryMB)
		}
	}
	return nil
}

// load opens and maps a file, falling back to os.ReadFile when mmap fails.
// Caller holds mu.
func (fc *fileCache) load(filePath string) (*MappedFile, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", filePath, err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat file %q: %w", filePath, err)
	}

	// Zero-byte files cannot be mapped.
	if stat.Size() == 0 {
		return &MappedFile{Path: filePath, File: file, MappedAt: time.Now()}, nil
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		fc.logger.Warn("mmap failed, using fallback",
			"file", filePath,
			"size", stat.Size(),
			"error", err)

		raw, readErr := os.ReadFile(filePath)
		if readErr != nil {
			file.Close()
			return nil, fmt.Errorf("mmap and fallback both failed for %q: mmap: %v, read: %w",
				filePath, err, readErr)
		}
		fc.fallback[filePath] = raw
		fc.recordMmapFailure()
		file.Close()
		return wrapFallback(filePath, raw), nil
	}

	return &MappedFile{
		Path:     filePath,
		Data:     data,
		File:     file,
		Size:     stat.Size(),
		MappedAt: time.Now(),
	}, nil
}

func wrapFallback(filePath string, data []byte) *MappedFile {
	return &MappedFile{
		Path:     filePath,
		Data:     mmap.MMap(data),
		Size:     int64(len(data)),
		MappedAt: time.Now(),
	}
}

func (fc *fileCache) Size() int {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	return len(fc.cache) + len(fc.fallback)
}

func (fc *fileCache) Stats() FileCacheStats {
	fc.mu.RLock()
	cached := len(fc.cache) + len(fc.fallback)
	mappedMB := fc.mappedMBLocked()
	fc.mu.RUnlock()

	fc.statsMu.Lock()
	defer fc.statsMu.Unlock()

	stats := fc.stats
	stats.FilesCached = cached
	stats.TotalMappedMB = mappedMB
	return stats
}

// mappedMBLocked sums cached sizes. Caller holds mu (read or write).
func (fc *fileCache) mappedMBLocked() float64 {
	total := int64(0)
	for _, mf := range fc.cache {
		total += mf.Size
	}
	for _, data := range fc.fallback {
		total += int64(len(data))
	}
	return float64(total) / (1024 * 1024)
}

func (fc *fileCache) Close() error {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	var firstErr error
	for path, mf := range fc.cache {
		if mf.Data != nil {
			if err := mf.Data.Unmap(); err != nil {
				fc.logger.Warn("failed to unmap file", "path", path, "error", err)
				if firstErr == nil {
					firstErr = fmt.Errorf("unmap %q: %w", path, err)
				}
			}
		}
		if mf.File != nil {
			mf.File.Close()
		}
	}
	fc.cache = make(map[string]*MappedFile)
	fc.fallback = make(map[string][]byte)

	return firstErr
}

func (fc *fileCache) recordHit() {
	fc.statsMu.Lock()
	fc.stats.CacheHits++
	fc.statsMu.Unlock()
}

func (fc *fileCache) recordMiss() {
	fc.statsMu.Lock()
	fc.stats.CacheMisses++
	fc.statsMu.Unlock()
}

func (fc *fileCache) recordLoad() {
	fc.statsMu.Lock()
	fc.stats.FilesLoaded++
	fc.stats.CacheMisses++
	fc.statsMu.Unlock()
}

func (fc *fileCache) recordMmapFailure() {
	fc.statsMu.Lock()
	fc.stats.MmapFailures++
	fc.statsMu.Unlock()
}
