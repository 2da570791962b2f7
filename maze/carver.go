package maze

import (
	"context"
	"iter"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// Rand is the random source of a Carver. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// StrideFunc draws the step used to rotate through the four directions.
// Even results are bumped to the next odd value so every direction is probed.
type StrideFunc func(Rand) int

// FixedStride draws 1 + 2*Intn(1). Intn(1) is always 0, so the rotation always
// advances one direction at a time. The draw is still taken, so both strides
// consume the same number of values from the source.
func FixedStride(r Rand) int {
	return 1 + 2*r.Intn(1)
}

// RandomStride rotates by 1 or 3 with equal probability.
func RandomStride(r Rand) int {
	return 1 + 2*r.Intn(2)
}

// Phase is the state of a generation run.
type Phase int

const (
	PhaseWalk      Phase = iota // Carving outward from the cursor.
	PhaseReconnect              // Scanning for an unvisited room next to a carved one.
	PhaseDone                   // Every room is carved.
)

// String returns the name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseWalk:
		return "walk"
	case PhaseReconnect:
		return "reconnect"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Option configures a Carver.
type Option func(*Carver)

// WithRand sets the random source. Inject a seeded source for reproducible mazes.
func WithRand(r Rand) Option {
	return func(c *Carver) {
		c.rand = r
	}
}

// WithStride sets how the direction rotation stride is drawn.
func WithStride(f StrideFunc) Option {
	return func(c *Carver) {
		c.stride = f
	}
}

// Carver generates perfect mazes on a Grid. Only one run is active at a time:
// starting a new run cancels the previous one.
type Carver struct {
	rand   Rand
	stride StrideFunc

	mu     sync.Mutex
	cancel context.CancelFunc // Cancels the active run.
}

// NewCarver creates a Carver. Without options it uses a time-seeded source and
// FixedStride.
func NewCarver(options ...Option) *Carver {
	c := &Carver{}
	for _, opt := range options {
		opt(c)
	}

	if c.rand == nil {
		c.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.stride == nil {
		c.stride = FixedStride
	}

	// A cancelled run may still be probing when the next one starts.
	c.rand = &lockedRand{r: c.rand}
	return c
}

// Generate cancels any active run and returns the carve sequence for g. The
// sequence carves g lazily while it is ranged over and yields one event per
// cell turned Carved, in carve order. After every step (a wall and the room
// behind it) it pauses for stepDelay; that pause is the only place where
// cancellation of ctx, Cancel or a later Generate call takes effect.
//
// The sequence can be ranged over once. g should be a fresh grid; a grid left
// incomplete by a cancelled run is resumed from its carved region.
func (c *Carver) Generate(ctx context.Context, g *Grid, stepDelay time.Duration) iter.Seq[CarveEvent] {
	runCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = cancel
	c.mu.Unlock()

	var started atomic.Bool
	return func(yield func(CarveEvent) bool) {
		if !started.CompareAndSwap(false, true) {
			return
		}
		defer cancel()

		r := newRun(g, c.rand, c.stride)
		for {
			carved, stepped := r.next()
			for _, pos := range carved {
				if !yield(CarveEvent{Row: pos.Row, Col: pos.Col}) {
					return
				}
			}
			if !stepped {
				return
			}
			if err := pause(runCtx, stepDelay); err != nil {
				return
			}
		}
	}
}

// Cancel cancels the active run, if any.
func (c *Carver) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// pause suspends the run for d or until ctx is done.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// run is the two-phase state machine of a single generation.
type run struct {
	grid   *Grid
	rand   Rand
	stride StrideFunc
	cursor CellPosition // Always a room position.
	phase  Phase
}

func newRun(g *Grid, r Rand, stride StrideFunc) *run {
	rn := &run{grid: g, rand: r, stride: stride, phase: PhaseWalk}
	if g.CarvedRooms() > 0 {
		// Resume an interrupted grid from its carved region.
		rn.phase = PhaseReconnect
		return rn
	}

	rn.cursor.Col = 1 + 2*r.Intn(g.Width())
	rn.cursor.Row = 1 + 2*r.Intn(g.Height())
	return rn
}

// next advances the run to its next step. It returns the cells carved on the
// way, in order, and whether a step was taken. A false step means the maze is
// complete.
func (r *run) next() (carved []CellPosition, stepped bool) {
	for {
		switch r.phase {
		case PhaseWalk:
			if r.grid.carve(r.cursor) {
				carved = append(carved, r.cursor)
			}
			wall, room, ok := r.walk()
			if !ok {
				r.phase = PhaseReconnect
				continue
			}
			r.grid.carve(wall)
			r.grid.carve(room)
			r.cursor = room
			return append(carved, wall, room), true
		case PhaseReconnect:
			if r.reconnect() {
				r.phase = PhaseWalk
			} else {
				r.phase = PhaseDone
			}
		default:
			return carved, false
		}
	}
}

// walk probes the cursor's four directions and returns the first wall whose
// room two cells away is still Empty. Rooms off the grid are not viable.
func (r *run) walk() (wall, room CellPosition, ok bool) {
	for _, d := range r.rotation() {
		target := r.cursor.step(d, 2)
		if !r.grid.InBound(target.Row, target.Col) || r.grid.State(target.Row, target.Col) != Empty {
			continue
		}
		return r.cursor.step(d, 1), target, true
	}
	return wall, room, false
}

// reconnect scans the rooms row by row for an Empty room with a Carved room two
// cells away, and moves the cursor onto that carved room. The walk then opens
// the wall from there. It reports false when no Empty room is left.
func (r *run) reconnect() bool {
	for row := 1; row < r.grid.TotalHeight(); row += 2 {
		for col := 1; col < r.grid.TotalWidth(); col += 2 {
			if r.grid.State(row, col) != Empty {
				continue
			}

			pos := CellPosition{Row: row, Col: col}
			for _, d := range r.rotation() {
				neighbor := pos.step(d, 2)
				if r.grid.InBound(neighbor.Row, neighbor.Col) && r.grid.State(neighbor.Row, neighbor.Col) == Carved {
					r.cursor = neighbor
					return true
				}
			}
		}
	}
	return false
}

// rotation draws a start direction and a stride and returns the probe order.
func (r *run) rotation() [directionCount]Direction {
	start := r.rand.Intn(directionCount)
	stride := r.stride(r.rand) % directionCount
	if stride < 0 {
		stride += directionCount
	}
	if stride%2 == 0 {
		stride++
	}

	var order [directionCount]Direction
	for k := range order {
		order[k] = Direction((start + k*stride) % directionCount)
	}
	return order
}

type lockedRand struct {
	mu sync.Mutex
	r  Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}
