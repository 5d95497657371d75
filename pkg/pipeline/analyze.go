package pipeline

import (
	"sync"

	"github.com/gnana997/testscaffold/pkg/analyzer"
	"github.com/gnana997/testscaffold/pkg/util"
)

// analyzeAll runs AnalyzeFile over files with a worker pool sized to the
// parser pools, so workers never block waiting for a parser. Per-file
// failures are logged and counted, never fatal. Results keep discovery
// order.
func (r *Runner) analyzeAll(files []string) ([]*analyzer.FileAnalysisResult, int) {
	if len(files) == 0 {
		return nil, 0
	}

	numWorkers := util.GetOptimalPoolSize()
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	type job struct {
		index int
		path  string
	}
	type outcome struct {
		index  int
		path   string
		result *analyzer.FileAnalysisResult
		err    error
	}

	jobs := make(chan job, numWorkers*2)
	outcomes := make(chan outcome, numWorkers)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				result, err := r.AnalyzeFile(j.path)
				outcomes <- outcome{index: j.index, path: j.path, result: result, err: err}
			}
		}()
	}

	go func() {
		for i, f := range files {
			jobs <- job{index: i, path: f}
		}
		close(jobs)
		wg.Wait()
		close(outcomes)
	}()

	ordered := make([]*analyzer.FileAnalysisResult, len(files))
	failed := 0
	for o := range outcomes {
		if o.err != nil {
			r.logger.Warn("analysis failed", "file", o.path, "error", o.err)
			failed++
			continue
		}
		ordered[o.index] = o.result
	}

	results := make([]*analyzer.FileAnalysisResult, 0, len(files)-failed)
	for _, result := range ordered {
		if result != nil {
			results = append(results, result)
		}
	}
	return results, failed
}
