package tetris

import (
	"sync"
	"time"

	"gridtris/grid"
)

// MockTicker is a mock implementation of the Ticker interface.
type MockTicker struct {
	ch          chan time.Time
	stop, reset bool
	last        time.Duration
	mu          sync.Mutex
}

func NewMockTicker() *MockTicker          { return &MockTicker{ch: make(chan time.Time)} }
func (m *MockTicker) C() <-chan time.Time { return m.ch }
func (m *MockTicker) Tick()               { m.ch <- time.Now() }
func (m *MockTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}

func (m *MockTicker) Reset(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset = true
	m.last = d
}

func (m *MockTicker) IsReset() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reset
}

func (m *MockTicker) IsStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop
}

// Interval returns the duration of the last Reset.
func (m *MockTicker) Interval() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// SequenceRand replays the given picks in a loop.
type SequenceRand struct {
	picks []int
	next  int
}

func NewSequenceRand(picks ...int) *SequenceRand { return &SequenceRand{picks: picks} }

func (s *SequenceRand) IntN(n int) int {
	if len(s.picks) == 0 {
		return 0
	}
	p := s.picks[s.next%len(s.picks)]
	s.next++
	return p % n
}

// NewTestEngine creates an engine over a width x height stack that only
// spawns the given shape. The first figure is already spawned.
func NewTestEngine(width, height int, shape Shape) *Engine {
	l, err := NewLibrary(shape)
	if err != nil {
		panic(err)
	}
	e, err := NewEngine(Options{
		Width:   width,
		Height:  height,
		Library: l,
		Rand:    NewSequenceRand(0),
	})
	if err != nil {
		panic(err)
	}
	e.spawn()
	return e
}

// FillStack sets the cells drawn in art on the engine's stack, see grid.Parse.
// The art is aligned with the bottom-left corner of the stack.
func FillStack(e *Engine, art string) {
	for _, p := range grid.MustParse(art).Points() {
		if err := e.stack.Set(p.X, p.Y, true); err != nil {
			panic(err)
		}
	}
}
