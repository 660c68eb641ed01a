package core

import (
	"time"

	"github.com/lumipallolabs/diskseek/internal/match"
	"github.com/lumipallolabs/diskseek/internal/model"
)

// Event represents a state change from the controller
type Event interface {
	isEvent()
}

// SearchStartedEvent is emitted when a search begins
type SearchStartedEvent struct {
	ID      string
	Root    string
	Pattern string
	Mode    match.Mode
}

func (SearchStartedEvent) isEvent() {}

// EntryFoundEvent is emitted for every matching entry
type EntryFoundEvent struct {
	ID    string
	Entry model.DiscoveredEntry
}

func (EntryFoundEvent) isEvent() {}

// SearchCompletedEvent is emitted when a search finishes, is stopped or fails
type SearchCompletedEvent struct {
	ID      string
	Visited int64
	Matched int64
	Elapsed time.Duration
	Stopped bool
	Err     error
}

func (SearchCompletedEvent) isEvent() {}

// VolumesChangedEvent is emitted when a volume is attached or detached
type VolumesChangedEvent struct {
	Change model.VolumesChanged
}

func (VolumesChangedEvent) isEvent() {}

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Err error
}

func (ErrorEvent) isEvent() {}
