package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
)

// MazeGenerator runs maze generations one at a time and lets callers observe them.
type MazeGenerator interface {
	// Start cancels the current run, if any, and starts a new one.
	Start(ctx context.Context, width, height int) (*dmn.RunInfo, error)

	// Snapshot returns the observed state of the latest run.
	Snapshot() (*dmn.Snapshot, error)

	// Cancel stops the current run.
	Cancel() error

	// History returns up to limit finished runs, most recent first.
	History(ctx context.Context, limit int64) ([]dmn.RunSummary, error)

	// Subscribe returns a stream of run events and a function to stop it.
	Subscribe() (<-chan dmn.RunEvent, func())
}
