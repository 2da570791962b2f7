package i

import "context"

// RunLocker grants the right to run the single active generation.
type RunLocker interface {
	// Acquire takes the lock or fails right away if another holder has it.
	Acquire(ctx context.Context) (Lease, error)
}

// Lease is a held RunLocker lock.
type Lease interface {
	// Refresh extends the lease before it expires.
	Refresh(ctx context.Context) error

	// Release gives the lock up.
	Release(ctx context.Context) error
}
