// Package session implements the target-selection state machine.
package session

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/verte-zerg/tuigrid/internal/model"
	"github.com/verte-zerg/tuigrid/internal/stats"
)

var (
	// ErrIndexOutOfRange is returned when a selected index is not a cell of
	// the current grid.
	ErrIndexOutOfRange = errors.New("cell index out of range")
	// ErrInvalidGrid is returned when a session is started with no cells.
	ErrInvalidGrid = errors.New("grid must have at least one cell")
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// Source draws uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// NewSeededSource returns a deterministic Source. A zero seed uses the
// current time.
func NewSeededSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used for reaction times.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithSource sets the random source used for target placement.
func WithSource(s Source) Option {
	return func(e *Engine) { e.rnd = s }
}

// Snapshot is a read-only view of the session for rendering.
type Snapshot struct {
	TargetIndex         int
	TotalCells          int
	SelectionCount      int
	AverageReactionTime float64 // seconds, 0 before the first hit
	BestReactionTime    float64 // seconds, 0 before the first hit
	BitsPerSelection    float64
	BitsPerSecond       float64 // 0 before the first hit
}

// Engine owns the state of one benchmark session. It is not safe for
// concurrent use; events must be applied in arrival order.
type Engine struct {
	clock Clock
	rnd   Source

	totalCells   int
	targetIndex  int
	sessionStart time.Time
	startedAt    time.Time
	history      []time.Duration
}

// New starts a session over totalCells cells.
func New(totalCells int, opts ...Option) (*Engine, error) {
	e := &Engine{
		clock: ClockFunc(time.Now),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rnd == nil {
		e.rnd = NewSeededSource(0)
	}
	if err := e.Reset(totalCells); err != nil {
		return nil, err
	}
	return e, nil
}

// Reset discards the history and starts a new session with a fresh target.
func (e *Engine) Reset(totalCells int) error {
	if totalCells < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidGrid, totalCells)
	}
	now := e.clock.Now()
	e.totalCells = totalCells
	e.history = nil
	e.targetIndex = e.rnd.Intn(totalCells)
	e.sessionStart = now
	e.startedAt = now
	return nil
}

// Select applies a click on index. It returns true when the click hit the
// target. Misses leave the state untouched.
func (e *Engine) Select(index int) (bool, error) {
	if index < 0 || index >= e.totalCells {
		return false, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, e.totalCells)
	}
	if index != e.targetIndex {
		return false, nil
	}
	now := e.clock.Now()
	rt := now.Sub(e.startedAt)
	if rt < 0 {
		rt = 0
	}
	e.history = append(e.history, rt)
	e.targetIndex = e.rnd.Intn(e.totalCells)
	e.startedAt = now
	return true, nil
}

// TargetIndex returns the active cell.
func (e *Engine) TargetIndex() int { return e.targetIndex }

// TotalCells returns the number of cells in the session's grid.
func (e *Engine) TotalCells() int { return e.totalCells }

// SelectionCount returns the number of successful selections.
func (e *Engine) SelectionCount() int { return len(e.history) }

// ReactionTimes returns a copy of the history in seconds.
func (e *Engine) ReactionTimes() []float64 {
	out := make([]float64, len(e.history))
	for i, d := range e.history {
		out[i] = d.Seconds()
	}
	return out
}

// Snapshot computes the derived metrics for the current history.
func (e *Engine) Snapshot() Snapshot {
	rts := e.ReactionTimes()
	avg := stats.Mean(rts)
	bits := stats.BitsPerSelection(e.totalCells)
	return Snapshot{
		TargetIndex:         e.targetIndex,
		TotalCells:          e.totalCells,
		SelectionCount:      len(rts),
		AverageReactionTime: avg,
		BestReactionTime:    stats.Min(rts),
		BitsPerSelection:    bits,
		BitsPerSecond:       stats.BitsPerSecond(bits, avg),
	}
}

// Summary closes over the session so far, ending now. The engine only knows
// the cell count, so the caller supplies the grid dimension.
func (e *Engine) Summary(dimension int) model.SessionSummary {
	return model.SessionSummary{
		Dimension:     dimension,
		TotalCells:    e.totalCells,
		StartedAt:     e.sessionStart,
		EndedAt:       e.clock.Now(),
		ReactionTimes: e.ReactionTimes(),
	}
}
