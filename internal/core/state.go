package core

import (
	"time"

	"github.com/lumipallolabs/diskseek/internal/match"
	"github.com/lumipallolabs/diskseek/internal/model"
	"github.com/lumipallolabs/diskseek/internal/stats"
)

// SearchPhase represents the current phase of a search
type SearchPhase int

const (
	PhaseIdle SearchPhase = iota
	PhaseSearching
	PhaseComplete
	PhaseStopped
	PhaseFailed
)

// String returns a human-readable phase name
func (p SearchPhase) String() string {
	switch p {
	case PhaseSearching:
		return "Searching"
	case PhaseComplete:
		return "Complete"
	case PhaseStopped:
		return "Stopped"
	case PhaseFailed:
		return "Failed"
	default:
		return ""
	}
}

// SearchState holds the state of the most recently started search
type SearchState struct {
	ID        string
	Phase     SearchPhase
	Root      string
	Pattern   string
	Mode      match.Mode
	StartTime time.Time
	Visited   int64
	Matched   int64
	Current   string
	Err       error
}

// IsSearching returns true while the walk is running
func (s SearchState) IsSearching() bool {
	return s.Phase == PhaseSearching
}

// Elapsed returns time since the search started
func (s SearchState) Elapsed() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	return time.Since(s.StartTime).Truncate(100 * time.Millisecond)
}

// AppState holds the complete application state (read-only view)
type AppState struct {
	Volumes        model.Snapshot
	SelectedVolume int
	Root           string
	Search         SearchState
	LastSearch     stats.LastSearch
	CanGoBack      bool
	CanGoForward   bool
}
