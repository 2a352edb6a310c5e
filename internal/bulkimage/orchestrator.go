package bulkimage

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Applier performs the image update for one matched file and returns the
// recorded image URL.
type Applier interface {
	Apply(ctx context.Context, m Match) (string, error)
}

// Progress describes how far a run has advanced. Percent reaches exactly 100
// on the final item and never decreases between callbacks.
type Progress struct {
	Completed int
	Total     int
	Percent   int
	Current   string
}

// ProgressFunc receives a callback after each item finishes, failed or not.
type ProgressFunc func(Progress)

// ItemOutcome records how a single file fared.
type ItemOutcome struct {
	File     File
	RecordID string
	Title    string
	ImageURL string
	Err      error
}

// Summary is the single completion result of a run.
type Summary struct {
	SuccessCount int
	ErrorCount   int
	Items        []ItemOutcome
	Duration     time.Duration
}

// Run works through the matched files one at a time. A failing item is
// recorded and the run continues with the rest; only context cancellation
// stops it early, with the remaining items counted as failures.
func Run(ctx context.Context, matches []Match, applier Applier, onProgress ProgressFunc) Summary {
	started := time.Now()
	summary := Summary{Items: make([]ItemOutcome, 0, len(matches))}
	total := len(matches)

	for i, m := range matches {
		outcome := ItemOutcome{
			File:     m.File,
			RecordID: m.Record.ID,
			Title:    m.Record.Title,
		}

		if err := ctx.Err(); err != nil {
			outcome.Err = fmt.Errorf("run canceled: %w", err)
			summary.ErrorCount++
		} else if url, err := applier.Apply(ctx, m); err != nil {
			outcome.Err = err
			summary.ErrorCount++
		} else {
			outcome.ImageURL = url
			summary.SuccessCount++
		}
		summary.Items = append(summary.Items, outcome)

		if onProgress != nil {
			completed := i + 1
			onProgress(Progress{
				Completed: completed,
				Total:     total,
				Percent:   int(math.Round(float64(completed) / float64(total) * 100)),
				Current:   m.File.Name,
			})
		}
	}

	summary.Duration = time.Since(started)
	return summary
}
