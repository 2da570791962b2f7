package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
)

// EventPublisher delivers run events to renderers.
type EventPublisher interface {
	// Publish sends a single event. Events of a run are published in order.
	Publish(ctx context.Context, e dmn.RunEvent) error
}
