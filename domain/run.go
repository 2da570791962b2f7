// Package domain holds the maze generation run types shared by the service,
// its publishers and the HTTP API.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventKind identifies what a RunEvent reports.
type EventKind string

const (
	EventStarted   EventKind = "started"   // A run began; carries the grid size.
	EventCarved    EventKind = "carved"    // A cell turned Carved.
	EventCompleted EventKind = "completed" // Every room is carved.
	EventCancelled EventKind = "cancelled" // The run stopped before completion.
)

// RunStatus is the lifecycle state of a run.
type RunStatus string

const (
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
	StatusCancelled RunStatus = "cancelled"
)

// RunEvent is a carve event tagged with its run, as delivered to renderers.
type RunEvent struct {
	RunID       uuid.UUID `json:"run_id"`
	Kind        EventKind `json:"kind"`
	Seq         int       `json:"seq"`                    // Position in the run's event order, from 0.
	Row         int       `json:"row"`                    // Carved cell row, for EventCarved.
	Col         int       `json:"col"`                    // Carved cell column, for EventCarved.
	TotalWidth  int       `json:"total_width,omitempty"`  // Grid columns, for EventStarted.
	TotalHeight int       `json:"total_height,omitempty"` // Grid rows, for EventStarted.
}

// RunInfo describes a run that has just been started.
type RunInfo struct {
	ID          uuid.UUID
	Width       int
	Height      int
	TotalWidth  int
	TotalHeight int
}

// Snapshot is the observed state of a run, rebuilt from its carve events.
type Snapshot struct {
	ID          uuid.UUID
	Status      RunStatus
	Width       int
	Height      int
	TotalWidth  int
	TotalHeight int
	Carved      int      // Number of carve events applied.
	Rows        []string // One string per grid row: '#' wall, ' ' carved, '.' empty.
}

// RunSummary is the record kept for a finished run.
type RunSummary struct {
	ID         uuid.UUID `json:"id"`
	Status     RunStatus `json:"status"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Carved     int       `json:"carved"`
	FinishedAt time.Time `json:"finished_at"`
}
