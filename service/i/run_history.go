package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
)

// RunHistory keeps summaries of finished runs.
type RunHistory interface {
	// Record stores the summary of a finished run.
	Record(ctx context.Context, s dmn.RunSummary) error

	// Recent returns up to limit summaries, most recently finished first.
	Recent(ctx context.Context, limit int64) ([]dmn.RunSummary, error)
}
