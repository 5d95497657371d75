// Package pipeline orchestrates the multi-file flow: discover sources,
// analyze them in parallel, and render test scaffolds.
package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gnana997/testscaffold/pkg/analyzer"
	"github.com/gnana997/testscaffold/pkg/generator"
	"github.com/gnana997/testscaffold/pkg/parser"
	"github.com/gnana997/testscaffold/pkg/util"
)

// Options configures a Runner. Zero values select defaults.
type Options struct {
	// CacheSize is the analysis result cache capacity (entries).
	CacheSize int
	// FileCache overrides the source cache limits.
	FileCache *util.FileCacheConfig
	Logger    *slog.Logger
}

// Runner ties the parser, analyzer, generator, and caches together. One
// Runner serves a whole process; all methods are safe for concurrent use.
type Runner struct {
	parsers *parser.Manager
	gen     *generator.Generator
	cache   *ResultCache
	sources util.FileCache
	logger  *slog.Logger
}

// NewRunner creates a Runner. Close it to release parser and cache resources.
func NewRunner(opts Options) (*Runner, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cache, err := NewResultCache(opts.CacheSize)
	if err != nil {
		return nil, err
	}

	fcConfig := opts.FileCache
	if fcConfig == nil {
		fcConfig = util.DefaultFileCacheConfig()
	}
	fcConfig.Logger = logger

	return &Runner{
		parsers: parser.NewManager(logger),
		gen:     generator.New(logger),
		cache:   cache,
		sources: util.NewFileCache(fcConfig),
		logger:  logger,
	}, nil
}

// Close releases the parser pools and the source cache.
func (r *Runner) Close() error {
	err := r.sources.Close()
	if cerr := r.parsers.Close(); err == nil {
		err = cerr
	}
	return err
}

// AnalyzeFile analyzes one source file, serving unchanged content from the
// result cache.
func (r *Runner) AnalyzeFile(path string) (*analyzer.FileAnalysisResult, error) {
	source, err := r.sources.ReadSource(path)
	if err != nil {
		return nil, err
	}

	if result, ok := r.cache.Get(path, source); ok {
		return result, nil
	}

	tree, err := r.parsers.ParseFile(source, path)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	result := analyzer.AnalyzeFile(tree.RootNode(), source, path)
	r.cache.Put(path, source, result)
	return result, nil
}

// RenderFile analyzes one file and renders its scaffold. Returns the
// scaffold text and the sibling test file path; the scaffold is empty when
// the file has nothing testable.
func (r *Runner) RenderFile(path string) (string, string, error) {
	result, err := r.AnalyzeFile(path)
	if err != nil {
		return "", "", err
	}
	scaffold, err := r.gen.Generate(result)
	if err != nil {
		return "", "", err
	}
	return scaffold, generator.TestFilePath(path), nil
}

// InvalidateFile drops a changed or deleted file from both caches.
func (r *Runner) InvalidateFile(path string) {
	r.sources.Invalidate(path)
	r.cache.Invalidate(path)
}

// ScanReport summarizes one scan pass.
type ScanReport struct {
	FilesDiscovered int
	FilesAnalyzed   int
	FilesFailed     int
	Components      int
	Functions       int
	Duration        time.Duration
	Results         []*analyzer.FileAnalysisResult
}

// Scan discovers and analyzes every matching file under rootDir.
func (r *Runner) Scan(rootDir string, cfg DiscoveryConfig) (*ScanReport, error) {
	start := time.Now()

	files, err := DiscoverFiles(rootDir, cfg)
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}
	r.logger.Info("discovery complete",
		"root", rootDir,
		"files", len(files),
		"duration", time.Since(start).String())

	analyzeStart := time.Now()
	results, failed := r.analyzeAll(files)

	report := &ScanReport{
		FilesDiscovered: len(files),
		FilesAnalyzed:   len(results),
		FilesFailed:     failed,
		Results:         results,
		Duration:        time.Since(start),
	}
	for _, result := range results {
		report.Components += len(result.Components)
		report.Functions += len(result.Functions)
	}

	r.logger.Info("analysis complete",
		"analyzed", report.FilesAnalyzed,
		"failed", report.FilesFailed,
		"components", report.Components,
		"functions", report.Functions,
		"duration", time.Since(analyzeStart).String())

	return report, nil
}

// GenerateReport summarizes one generation pass.
type GenerateReport struct {
	ScanReport
	FilesWritten int
	FilesSkipped int
}

// Generate scans rootDir and writes a sibling test scaffold for every file
// with something testable. Existing test files are left alone unless
// overwrite is set.
func (r *Runner) Generate(rootDir string, cfg DiscoveryConfig, overwrite bool) (*GenerateReport, error) {
	scan, err := r.Scan(rootDir, cfg)
	if err != nil {
		return nil, err
	}

	report := &GenerateReport{ScanReport: *scan}
	for _, result := range scan.Results {
		scaffold, err := r.gen.Generate(result)
		if err != nil {
			r.logger.Warn("scaffold rendering failed", "file", result.FilePath, "error", err)
			report.FilesFailed++
			continue
		}
		if scaffold == "" {
			report.FilesSkipped++
			continue
		}

		written, err := writeScaffold(result.FilePath, scaffold, overwrite)
		if err != nil {
			r.logger.Warn("scaffold write failed", "file", result.FilePath, "error", err)
			report.FilesFailed++
			continue
		}
		if written {
			report.FilesWritten++
		} else {
			report.FilesSkipped++
		}
	}

	r.logger.Info("generation complete",
		"written", report.FilesWritten,
		"skipped", report.FilesSkipped,
		"failed", report.FilesFailed)

	return report, nil
}

// writeScaffold writes the scaffold next to its source. Reports false when
// the test file already exists and overwrite is off.
func writeScaffold(sourcePath, scaffold string, overwrite bool) (bool, error) {
	testPath := generator.TestFilePath(sourcePath)

	if !overwrite {
		if _, err := os.Stat(testPath); err == nil {
			return false, nil
		}
	}

	if err := os.WriteFile(testPath, []byte(scaffold), 0o644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", testPath, err)
	}
	return true, nil
}
