// Package batch runs the correction pipeline over many images with a
// bounded worker pool. The pipeline is stateless per image, so workers
// share nothing but the job list; progress reporting is an injected
// capability rather than process-global state.
package batch

import (
	"context"
	"sync"
	"time"
)

// Result is the outcome of processing one image.
type Result struct {
	// Path is the source image path.
	Path string
	// OutputPath is where the corrected image was written.
	OutputPath string
	// ThumbPath is the side-by-side thumbnail, when enabled.
	ThumbPath string
	// Err is the per-image failure, if any. A failed image never aborts
	// the batch and is never retried.
	Err error
	// KeptOriginal is set when the over-crop fallback discarded the
	// corrected image in favor of the source.
	KeptOriginal bool
	// Elapsed is the wall time spent on this image.
	Elapsed time.Duration
}

// Reporter receives batch progress. Calls are serialized by the runner.
type Reporter interface {
	Start(total int)
	FileDone(done int, r Result)
	Finish()
}

// NopReporter discards all progress events.
type NopReporter struct{}

func (NopReporter) Start(int)            {}
func (NopReporter) FileDone(int, Result) {}
func (NopReporter) Finish()              {}

// Processor handles a single image and returns its outcome.
type Processor func(ctx context.Context, path string) Result

// Runner distributes paths across a bounded pool of workers.
type Runner struct {
	Workers  int
	Process  Processor
	Reporter Reporter
}

// Run processes every path and returns results in input order. Workers
// drain when ctx is canceled; already-started images finish, unstarted ones
// come back with ctx.Err.
func (r *Runner) Run(ctx context.Context, paths []string) []Result {
	workers := r.Workers
	if workers < 1 {
		workers = 1
	}
	reporter := r.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}

	results := make([]Result, len(paths))
	jobs := make(chan int)

	var mu sync.Mutex
	done := 0

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				var res Result
				if err := ctx.Err(); err != nil {
					res = Result{Path: paths[i], Err: err}
				} else {
					start := time.Now()
					res = r.Process(ctx, paths[i])
					res.Elapsed = time.Since(start)
				}
				results[i] = res

				mu.Lock()
				done++
				reporter.FileDone(done, res)
				mu.Unlock()
			}
		}()
	}

	reporter.Start(len(paths))
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	reporter.Finish()

	return results
}
