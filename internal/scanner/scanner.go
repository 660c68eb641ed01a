package scanner

import (
	"context"

	"github.com/lumipallolabs/diskseek/internal/cancel"
	"github.com/lumipallolabs/diskseek/internal/model"
	"github.com/lumipallolabs/diskseek/internal/sink"
)

// Progress reports search progress
type Progress struct {
	Visited     int64
	Matched     int64
	CurrentPath string
	Stopped     bool // ended by a stop request or context cancellation
}

// Searcher defines the interface for filesystem searching
type Searcher interface {
	// Search walks req.Root and publishes every match to out.
	// A cancelled token or context ends the walk early with a nil error.
	Search(ctx context.Context, req model.SearchRequest, token *cancel.Token, out sink.Sink) error

	// Progress returns the counters of the current or last search
	Progress() Progress
}
