package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/chordex/internal/models"
	"github.com/desertthunder/chordex/internal/shared"
	"github.com/desertthunder/chordex/internal/theory"
)

// ReanalyzeOpts contains configuration for re-running extraction over stored songs.
type ReanalyzeOpts struct {
	WindowSize int // Progression length (default: theory.DefaultWindowSize)
	NumWorkers int // Concurrent workers (default: 4, max: 8)
}

// ReanalyzeResult summarizes a reanalysis.
type ReanalyzeResult struct {
	Total   int
	Updated int
	Failed  int
	Errors  []error
}

type reanalyzeJob struct {
	song *models.PersistedSong
}

type reanalyzeOutput struct {
	song     *models.PersistedSong
	analysis models.Analysis
}

// Reanalyze recomputes progressions from the stored token stream of each song, e.g. with a new
// window size, and saves them.
//
// Extraction runs on a worker pool; results are written back one at a time since SQLite has a
// single writer.
func (e *HarvestEngine) Reanalyze(
	ctx context.Context,
	progress chan<- ProgressUpdate,
	songs []*models.PersistedSong,
	opts ReanalyzeOpts,
) (*ReanalyzeResult, error) {
	if e.songs == nil {
		return nil, fmt.Errorf("%w: song store not initialized", shared.ErrServiceUnavailable)
	}

	if opts.WindowSize <= 0 {
		opts.WindowSize = theory.DefaultWindowSize
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}

	result := &ReanalyzeResult{Total: len(songs)}

	jobs := make(chan reanalyzeJob, len(songs))
	outputs := make(chan reanalyzeOutput, len(songs))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.reanalyzeWorker(ctx, &wg, jobs, outputs, opts.WindowSize)
	}

	for _, song := range songs {
		jobs <- reanalyzeJob{song: song}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(outputs)
	}()

	completed := 0
	for out := range outputs {
		completed++
		title := out.song.Song().Title

		err := e.songs.UpdateAnalysis(out.song, out.analysis)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", title, err))
			e.logger.Error("reanalysis not saved", "title", title, "error", err)
		} else {
			result.Updated++
		}
		e.sendProgress(progress, reanalyzeUpdate(completed, len(songs), title, err))
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// reanalyzeWorker analyzes songs from the jobs channel until it is drained or ctx is done.
func (e *HarvestEngine) reanalyzeWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan reanalyzeJob,
	outputs chan<- reanalyzeOutput,
	windowSize int,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		extraction := theory.Analyze(job.song.Tokens(), windowSize)
		outputs <- reanalyzeOutput{
			song: job.song,
			analysis: models.Analysis{
				WindowSize:   windowSize,
				Progressions: extraction.Progressions,
				Mask:         extraction.Mask,
			},
		}
	}
}
