package tasks

import (
	"fmt"

	"github.com/desertthunder/chordex/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchCatalog Phase = iota
	SearchChart
	OpenChart
	Transpose
	SaveSong
	SongDone
	Reanalyze
	Finished
)

func (p Phase) String() string {
	switch p {
	case FetchCatalog:
		return "fetch_catalog"
	case SearchChart:
		return "search_chart"
	case OpenChart:
		return "open_chart"
	case Transpose:
		return "transpose"
	case SaveSong:
		return "save_song"
	case SongDone:
		return "song_done"
	case Reanalyze:
		return "reanalyze"
	case Finished:
		return "finished"
	default:
		return ""
	}
}

func fetchCatalogUpdate(genre string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchCatalog,
		Step:    0,
		Total:   count,
		Message: fmt.Sprintf("Fetching %d %s songs from the catalog...", count, genre),
	}
}

func searchChartUpdate(step, total int, song models.Song) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchChart,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Searching %s - %s", step, total, song.Artist, song.Title),
	}
}

func openChartUpdate(step, total int, song models.Song) ProgressUpdate {
	return ProgressUpdate{
		Phase:   OpenChart,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Opening chart for %s", step, total, song.Title),
	}
}

func transposeUpdate(step, total int, song models.Song, r SongResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Transpose,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s: capo %d, %s", step, total, song.Title, r.Capo, r.Plan),
	}
}

func saveSongUpdate(step, total int, song models.Song) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SaveSong,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Saving %s", step, total, song.Title),
	}
}

func songDoneUpdate(step, total int, r SongResult) ProgressUpdate {
	var mark string
	switch r.Status {
	case StatusSaved:
		mark = "✓"
	case StatusSkipped:
		mark = "-"
	default:
		mark = "✗"
	}

	msg := fmt.Sprintf("[%d/%d] %s %s - %s", step, total, mark, r.Song.Artist, r.Song.Title)
	if r.Reason != "" {
		msg += ": " + r.Reason
	}
	return ProgressUpdate{
		Phase:   SongDone,
		Step:    step,
		Total:   total,
		Message: msg,
		Data:    r,
	}
}

func reanalyzeUpdate(step, total int, title string, err error) ProgressUpdate {
	msg := fmt.Sprintf("[%d/%d] ✓ %s", step, total, title)
	if err != nil {
		msg = fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, title, err)
	}
	return ProgressUpdate{
		Phase:   Reanalyze,
		Step:    step,
		Total:   total,
		Message: msg,
	}
}

func finishedUpdate(result *HarvestResult) ProgressUpdate {
	run := result.Run
	return ProgressUpdate{
		Phase:   Finished,
		Step:    run.Total,
		Total:   run.Total,
		Message: fmt.Sprintf("Harvest finished: %d saved, %d skipped, %d failed", run.Saved, run.Skipped, run.Failed),
		Data:    result,
	}
}
