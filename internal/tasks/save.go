package tasks

import (
	"context"
	"sync"

	"github.com/desertthunder/tagx/internal/mp3"
	"github.com/desertthunder/tagx/internal/shared"
	"golang.org/x/time/rate"
)

const (
	DefaultSaveWorkers = 4
	DefaultSaveRate    = 20.0
)

// SaveOpts contains configuration for saving files.
type SaveOpts struct {
	NumWorkers   int     // Concurrent writers (default: 4, max: 10)
	RateLimit    float64 // Files started per second (default: 20)
	BackupSuffix string  // Copy each file to path+suffix first; empty disables backups
	All          bool    // Save unchanged files too
}

// SaveFileResult is the outcome of saving one file.
type SaveFileResult struct {
	Path    string
	Saved   bool
	Skipped bool // Unchanged and not forced
	Error   error
}

// SaveResult contains the per-file results of [TagEngine.SaveAll], in file order.
type SaveResult struct {
	Total   int
	Saved   int
	Skipped int
	Failed  int
	Results []SaveFileResult
}

type saveJob struct {
	index int
	file  File
}

// SaveAll writes files back to disk with a pool of workers throttled by a rate limiter.
//
// Unchanged files are skipped unless opts.All is set. One file failing does not stop the others.
// If ctx is cancelled, files not yet started are reported with the context error, which is also
// returned.
func (e *TagEngine) SaveAll(ctx context.Context, prog chan<- ProgressUpdate, files []File, opts SaveOpts) (*SaveResult, error) {
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = DefaultSaveWorkers
	}
	if opts.NumWorkers > shared.MaxWorkers {
		opts.NumWorkers = shared.MaxWorkers
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = DefaultSaveRate
	}

	var saveOpts []mp3.Option
	if opts.BackupSuffix != "" {
		saveOpts = append(saveOpts, mp3.WithBackup(opts.BackupSuffix))
	}

	result := &SaveResult{
		Total:   len(files),
		Results: make([]SaveFileResult, len(files)),
	}
	for i, f := range files {
		result.Results[i] = SaveFileResult{Path: f.Path()}
	}

	e.sendProgress(prog, savingUpdate(len(files)))

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan saveJob)
	done := make(chan saveJob, len(files))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.saveWorker(&wg, jobs, done, result.Results, saveOpts)
	}

	dispatched := make([]bool, len(files))
	go func() {
		defer close(jobs)
		for i, f := range files {
			if !opts.All && !f.Dirty() {
				result.Results[i].Skipped = true
				dispatched[i] = true
				done <- saveJob{index: i, file: f}
				continue
			}
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			select {
			case jobs <- saveJob{index: i, file: f}:
				dispatched[i] = true
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(done)
	}()

	completed := 0
	for job := range done {
		completed++
		e.sendProgress(prog, savedUpdate(completed, len(files), result.Results[job.index]))
	}

	for i := range result.Results {
		res := &result.Results[i]
		if !dispatched[i] {
			res.Error = ctx.Err()
		}
		switch {
		case res.Error != nil:
			result.Failed++
			e.logger.Warn("save failed", "path", res.Path, "error", res.Error)
		case res.Skipped:
			result.Skipped++
		case res.Saved:
			result.Saved++
		}
	}

	return result, ctx.Err()
}

// saveWorker saves files from the jobs channel, writing each outcome to its own slot of results.
func (e *TagEngine) saveWorker(wg *sync.WaitGroup, jobs <-chan saveJob, done chan<- saveJob, results []SaveFileResult, opts []mp3.Option) {
	defer wg.Done()

	for job := range jobs {
		if err := job.file.Save(opts...); err != nil {
			results[job.index].Error = err
		} else {
			results[job.index].Saved = true
			e.logger.Debug("saved", "path", job.file.Path())
		}
		done <- job
	}
}
