package mazeapi

import (
	"time"

	"github.com/google/uuid"
)

const defaultHistoryLimit = 10

// StartRequest represents a request to start a new maze generation.
type StartRequest struct {
	Width  int `json:"width" binding:"required"`
	Height int `json:"height" binding:"required"`
}

// RunResponse describes a started run. TotalWidth and TotalHeight are the grid
// size a renderer frames.
type RunResponse struct {
	ID          uuid.UUID `json:"id"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	TotalWidth  int       `json:"total_width"`
	TotalHeight int       `json:"total_height"`
}

// SnapshotResponse is the observed state of the latest run.
type SnapshotResponse struct {
	ID          uuid.UUID `json:"id"`
	Status      string    `json:"status"`
	TotalWidth  int       `json:"total_width"`
	TotalHeight int       `json:"total_height"`
	Carved      int       `json:"carved"`
	Rows        []string  `json:"rows"`
}

// HistoryQuery selects how many finished runs to list.
type HistoryQuery struct {
	Limit int64 `form:"limit" binding:"omitempty,min=1,max=100"`
}

// RunSummaryResponse describes a finished run.
type RunSummaryResponse struct {
	ID         uuid.UUID `json:"id"`
	Status     string    `json:"status"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Carved     int       `json:"carved"`
	FinishedAt time.Time `json:"finished_at"`
}
