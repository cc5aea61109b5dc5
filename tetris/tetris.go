// Package tetris contains the rules of the game: the falling figure, the
// collision test, scoring and the engine that ties them to the stack.
package tetris

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"gridtris/grid"
	"gridtris/lines"
)

const (
	DefaultWidth  = 15
	DefaultHeight = 22
)

var ErrGameOver = errors.New("game over")

// State of the engine. A session starts in Spawning, alternates between
// Active and the transient Locking/Spawning pair, and ends in GameOver.
type State int

const (
	Spawning State = iota
	Active
	Locking
	GameOver
)

func (s State) String() string {
	switch s {
	case Spawning:
		return "spawning"
	case Active:
		return "active"
	case Locking:
		return "locking"
	case GameOver:
		return "game over"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Randomizer picks the next shape. *rand.Rand satisfies it.
type Randomizer interface {
	IntN(n int) int
}

type Options struct {
	Width, Height  int
	ScoreIncrement int
	SpeedLevels    []int
	Library        *Library
	Rand           Randomizer
}

// Engine owns the stack, the falling figure and the scorer of one session.
// It isn't safe for concurrent use; Game serializes access to it.
type Engine struct {
	stack   *grid.Grid
	figure  Figure
	state   State
	scorer  *Scorer
	library *Library
	rand    Randomizer
	pending []Intent
	lines   int
}

// NewEngine validates o and fills in defaults for zero values.
func NewEngine(o Options) (*Engine, error) {
	if o.Width == 0 && o.Height == 0 {
		o.Width, o.Height = DefaultWidth, DefaultHeight
	}
	if o.ScoreIncrement == 0 {
		o.ScoreIncrement = DefaultScoreIncrement
	}
	if o.SpeedLevels == nil {
		o.SpeedLevels = DefaultSpeedLevels
	}
	if o.Library == nil {
		o.Library = DefaultLibrary()
	}
	if o.Rand == nil {
		seed := uint64(time.Now().UnixNano()) //nolint:gosec
		o.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if o.ScoreIncrement < 0 {
		return nil, fmt.Errorf("score increment must be positive, got %d", o.ScoreIncrement)
	}

	stack, err := grid.New(o.Width, o.Height)
	if err != nil {
		return nil, fmt.Errorf("unable to create stack: %w", err)
	}
	return &Engine{
		stack:   stack,
		state:   Spawning,
		scorer:  NewScorer(o.ScoreIncrement, o.SpeedLevels),
		library: o.Library,
		rand:    o.Rand,
	}, nil
}

// Push queues an intent. Queued intents are applied one per Step, oldest first.
func (e *Engine) Push(i Intent) error {
	if e.state == GameOver {
		return ErrGameOver
	}
	e.pending = append(e.pending, i)
	return nil
}

// Step advances the session once: it spawns a figure if there is none,
// applies at most one queued intent and, when the step comes from the timer,
// moves the figure one row down. A figure that can't move down is locked
// into the stack, full rows are scored and removed and the next figure is
// spawned right away. A figure spawned during the step stays on its spawn
// row until the next step.
func (e *Engine) Step(byTimer bool) (State, error) {
	if e.state == GameOver {
		return e.state, nil
	}
	spawned := false
	if e.state == Spawning {
		e.spawn()
		if e.state == GameOver {
			return e.state, nil
		}
		spawned = true
	}

	if len(e.pending) > 0 {
		i := e.pending[0]
		e.pending = e.pending[1:]
		locked, err := e.apply(i)
		if err != nil {
			return e.state, err
		}
		spawned = spawned || locked
	}
	if byTimer && !spawned && e.state == Active {
		if _, err := e.apply(MoveDown); err != nil {
			return e.state, err
		}
	}
	return e.state, nil
}

// apply adopts the moved figure when it fits. A blocked MoveDown locks the
// figure and reports true, any other blocked intent is dropped.
func (e *Engine) apply(i Intent) (bool, error) {
	candidate, err := e.figure.Apply(i)
	if err != nil {
		return false, err
	}
	if CanPlace(e.stack, candidate) {
		e.figure = candidate
		return false, nil
	}
	if i != MoveDown {
		return false, nil
	}
	if err := e.lock(); err != nil {
		return false, err
	}
	e.spawn()
	return true, nil
}

func (e *Engine) lock() error {
	e.state = Locking
	for _, p := range e.figure.CellPoints() {
		if err := e.stack.Set(p.X, p.Y, true); err != nil {
			return fmt.Errorf("unable to lock figure %q: %w", e.figure.Name, err)
		}
	}
	// score is read before the rows are removed.
	full := lines.Full(e.stack)
	for range full {
		e.scorer.OnFilledLine()
	}
	if _, err := lines.Compact(e.stack); err != nil {
		return fmt.Errorf("unable to compact stack: %w", err)
	}
	e.lines += len(full)
	e.figure = Figure{}
	e.state = Spawning
	return nil
}

// spawn centers a random shape with its top occupied row on the top row of
// the stack. The session is over when that place is already taken.
func (e *Engine) spawn() {
	s := e.library.At(e.rand.IntN(e.library.Len()))
	f := NewFigure(0, 0, s)
	f.X = int(math.Floor(float64(e.stack.Width())/2 - float64(f.Width())/2))
	f.Y = e.stack.Height() - (f.topRow() + 1)
	if !CanPlace(e.stack, f) {
		e.state = GameOver
		e.pending = nil
		return
	}
	e.figure = f
	e.state = Active
}

func (e *Engine) State() State { return e.state }
func (e *Engine) Over() bool   { return e.state == GameOver }

// Stack returns a copy of the locked cells.
func (e *Engine) Stack() *grid.Grid { return e.stack.Copy() }

// Figure returns the falling figure, if there is one.
func (e *Engine) Figure() (Figure, bool) {
	return e.figure, e.state == Active
}

func (e *Engine) Score() int        { return e.scorer.Score() }
func (e *Engine) SpeedLevel() int   { return e.scorer.SpeedLevel() }
func (e *Engine) LinesCleared() int { return e.lines }
func (e *Engine) Pending() int      { return len(e.pending) }

// Snapshot returns a copy of the state that's safe to hand to renderers.
func (e *Engine) Snapshot() *Snapshot {
	s := &Snapshot{
		Width:      e.stack.Width(),
		Height:     e.stack.Height(),
		Stack:      e.stack.Copy(),
		Score:      e.scorer.Score(),
		SpeedLevel: e.scorer.SpeedLevel(),
		LinesClear: e.lines,
		GameOver:   e.state == GameOver,
	}
	if f, ok := e.Figure(); ok {
		s.Figure = f.CellPoints()
		s.Shape = f.Name
	}
	return s
}

// TickInterval is the time between gravity ticks for a speed level:
// 4 - level units, but never less than one unit.
func TickInterval(speedLevel int, unit time.Duration) time.Duration {
	return time.Duration(max(4-speedLevel, 1)) * unit
}
