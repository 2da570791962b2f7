package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
	"github.com/beka-birhanu/vinom-mazegen/maze"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/google/uuid"
)

const (
	defaultMaxDimension        = 64
	defaultLockRefreshInterval = time.Second
	publishTimeout             = time.Second
)

// Generation service errors.
var (
	ErrDimensionTooLarge = errors.New("maze dimension is too large")
	ErrNoRun             = errors.New("no maze generation run")
	ErrGenerationBusy    = errors.New("another maze generation is running")
)

var _ i.MazeGenerator = &GenerationService{}

// Config holds the collaborators and limits of a GenerationService.
type Config struct {
	Carver              *maze.Carver       // Carver driving every run; a fresh one is created if nil.
	Publishers          []i.EventPublisher // Extra publishers, e.g. Redis, fed after in-process subscribers.
	Locker              i.RunLocker        // Optional lock shared with other instances.
	History             i.RunHistory       // Optional store for finished runs.
	Logger              i.Logger           // Logger.
	StepDelay           time.Duration      // Pause after every carve step.
	MaxDimension        int                // Largest accepted width or height.
	LockRefreshInterval time.Duration      // How often a held lease is refreshed, independent of StepDelay.
	SubscriberBuffer    int                // Events buffered per subscriber before it is dropped; zero fits a whole run of MaxDimension.
}

// GenerationService runs maze generations one at a time, fans their carve
// events out to publishers and keeps a view of the latest run rebuilt from
// those events.
type GenerationService struct {
	carver              *maze.Carver
	hub                 *hub
	publishers          []i.EventPublisher
	locker              i.RunLocker
	history             i.RunHistory
	logger              i.Logger
	stepDelay           time.Duration
	maxDimension        int
	lockRefreshInterval time.Duration

	startLock sync.Mutex         // Serializes Start and Cancel.
	current   *runView           // Latest run.
	cancel    context.CancelFunc // Cancels the latest run.
	done      chan struct{}      // Closed when the latest run has finished.
	sync.RWMutex
}

// runView is the renderer-side picture of a run: cell states as reported by events.
type runView struct {
	info   dmn.RunInfo
	status dmn.RunStatus
	cells  [][]maze.CellState
	seq    int
	carved int
}

// NewGenerationService creates a GenerationService.
func NewGenerationService(c Config) (*GenerationService, error) {
	if c.Logger == nil {
		return nil, errors.New("generation service requires a logger")
	}

	s := &GenerationService{
		carver:              c.Carver,
		locker:              c.Locker,
		history:             c.History,
		logger:              c.Logger,
		stepDelay:           c.StepDelay,
		maxDimension:        c.MaxDimension,
		lockRefreshInterval: c.LockRefreshInterval,
	}

	if s.carver == nil {
		s.carver = maze.NewCarver()
	}
	if s.maxDimension <= 0 {
		s.maxDimension = defaultMaxDimension
	}
	if s.lockRefreshInterval <= 0 {
		s.lockRefreshInterval = defaultLockRefreshInterval
	}

	buffer := c.SubscriberBuffer
	if buffer <= 0 {
		buffer = runEventCount(s.maxDimension, s.maxDimension)
	}
	s.hub = newHub(buffer)
	s.publishers = append([]i.EventPublisher{s.hub}, c.Publishers...)
	return s, nil
}

// Start implements i.MazeGenerator.
// The run outlives ctx; ctx only bounds acquiring the lock.
func (s *GenerationService) Start(ctx context.Context, width, height int) (*dmn.RunInfo, error) {
	if max(width, height) > s.maxDimension {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", ErrDimensionTooLarge, width, height, s.maxDimension)
	}

	grid, err := maze.New(width, height)
	if err != nil {
		return nil, fmt.Errorf("creating maze grid: %w", err)
	}

	s.startLock.Lock()
	defer s.startLock.Unlock()

	if s.stopCurrent() {
		s.logger.Info("cancelled the previous run to start a new one")
	}

	var lease i.Lease
	if s.locker != nil {
		lease, err = s.locker.Acquire(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrGenerationBusy, err)
		}
	}

	view := &runView{
		info: dmn.RunInfo{
			ID:          uuid.New(),
			Width:       grid.Width(),
			Height:      grid.Height(),
			TotalWidth:  grid.TotalWidth(),
			TotalHeight: grid.TotalHeight(),
		},
		status: dmn.StatusRunning,
		cells:  grid.Snapshot(),
	}

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	s.Lock()
	s.current = view
	s.cancel = cancel
	s.done = done
	s.Unlock()

	go s.run(runCtx, grid, view, lease, done)

	s.logger.Info(fmt.Sprintf("started run %s for a %dx%d maze", view.info.ID, width, height))
	info := view.info
	return &info, nil
}

// Snapshot implements i.MazeGenerator.
func (s *GenerationService) Snapshot() (*dmn.Snapshot, error) {
	s.RLock()
	defer s.RUnlock()

	if s.current == nil {
		return nil, ErrNoRun
	}

	v := s.current
	return &dmn.Snapshot{
		ID:          v.info.ID,
		Status:      v.status,
		Width:       v.info.Width,
		Height:      v.info.Height,
		TotalWidth:  v.info.TotalWidth,
		TotalHeight: v.info.TotalHeight,
		Carved:      v.carved,
		Rows:        strings.Split(strings.TrimSuffix(maze.Render(v.cells), "\n"), "\n"),
	}, nil
}

// Cancel implements i.MazeGenerator. It returns once the run has stopped.
func (s *GenerationService) Cancel() error {
	s.startLock.Lock()
	defer s.startLock.Unlock()

	if !s.stopCurrent() {
		return ErrNoRun
	}
	return nil
}

// Subscribe implements i.MazeGenerator.
func (s *GenerationService) Subscribe() (<-chan dmn.RunEvent, func()) {
	return s.hub.subscribe()
}

// History implements i.MazeGenerator. Without a configured store it reports no runs.
func (s *GenerationService) History(ctx context.Context, limit int64) ([]dmn.RunSummary, error) {
	if s.history == nil {
		return []dmn.RunSummary{}, nil
	}
	return s.history.Recent(ctx, limit)
}

// Wait blocks until the latest run has finished.
func (s *GenerationService) Wait() {
	s.RLock()
	done := s.done
	s.RUnlock()

	if done != nil {
		<-done
	}
}

// stopCurrent cancels the latest run and waits for it to finish.
// It reports whether a run was still active.
func (s *GenerationService) stopCurrent() bool {
	s.RLock()
	cancel, done := s.cancel, s.done
	s.RUnlock()

	if cancel == nil {
		return false
	}

	select {
	case <-done:
		return false
	default:
	}

	cancel()
	<-done
	return true
}

// run drives the carver and publishes every event of the run.
func (s *GenerationService) run(ctx context.Context, grid *maze.Grid, view *runView, lease i.Lease, done chan struct{}) {
	defer close(done)
	defer s.release(lease)

	if lease != nil {
		stop := make(chan struct{})
		stopped := make(chan struct{})
		go func() {
			defer close(stopped)
			s.keepLease(lease, view.info.ID, stop)
		}()
		defer func() {
			close(stop)
			<-stopped
		}()
	}

	s.publish(view, dmn.RunEvent{
		Kind:        dmn.EventStarted,
		TotalWidth:  view.info.TotalWidth,
		TotalHeight: view.info.TotalHeight,
	})

	for e := range s.carver.Generate(ctx, grid, s.stepDelay) {
		s.apply(view, e)
		s.publish(view, dmn.RunEvent{Kind: dmn.EventCarved, Row: e.Row, Col: e.Col})
	}

	kind, status := dmn.EventCompleted, dmn.StatusCompleted
	if !grid.Complete() {
		kind, status = dmn.EventCancelled, dmn.StatusCancelled
	}

	s.Lock()
	view.status = status
	s.Unlock()

	s.publish(view, dmn.RunEvent{Kind: kind})
	s.record(view, status)
	s.logger.Info(fmt.Sprintf("run %s %s after %d carved cells", view.info.ID, status, grid.CarvedRooms()+grid.OpenedWalls()))
}

// keepLease refreshes the run lease every lockRefreshInterval until stop is
// closed. Refreshing runs apart from the carve loop so a long step delay cannot
// let the lease expire.
func (s *GenerationService) keepLease(lease i.Lease, id uuid.UUID, stop <-chan struct{}) {
	ticker := time.NewTicker(s.lockRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			err := lease.Refresh(ctx)
			cancel()
			if err != nil {
				s.logger.Warn(fmt.Sprintf("refreshing run lock for run %s: %s", id, err))
			}
		}
	}
}

// runEventCount is the number of events a full width x height run publishes:
// started, the start room, a wall and a room per step, and the terminal event.
func runEventCount(width, height int) int {
	return 2*width*height + 1
}

// apply records a carve event in the run view.
func (s *GenerationService) apply(view *runView, e maze.CarveEvent) {
	s.Lock()
	defer s.Unlock()

	view.cells[e.Row][e.Col] = maze.Carved
	view.carved++
}

// publish stamps the event with the run ID and sequence number and hands it to
// every publisher. Publisher failures are logged and never stop the run.
func (s *GenerationService) publish(view *runView, e dmn.RunEvent) {
	e.RunID = view.info.ID
	e.Seq = view.seq
	view.seq++

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	for _, p := range s.publishers {
		if err := p.Publish(ctx, e); err != nil {
			s.logger.Error(fmt.Sprintf("publishing %s event %d of run %s: %s", e.Kind, e.Seq, e.RunID, err))
		}
	}
}

// record stores the run summary in the history store, if one is configured.
func (s *GenerationService) record(view *runView, status dmn.RunStatus) {
	if s.history == nil {
		return
	}

	s.RLock()
	summary := dmn.RunSummary{
		ID:         view.info.ID,
		Status:     status,
		Width:      view.info.Width,
		Height:     view.info.Height,
		Carved:     view.carved,
		FinishedAt: time.Now().UTC(),
	}
	s.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := s.history.Record(ctx, summary); err != nil {
		s.logger.Error(fmt.Sprintf("recording run %s: %s", summary.ID, err))
	}
}

func (s *GenerationService) release(lease i.Lease) {
	if lease == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := lease.Release(ctx); err != nil {
		s.logger.Warn(fmt.Sprintf("releasing run lock: %s", err))
	}
}
