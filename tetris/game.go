package tetris

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"
)

// DefaultTickUnit is the time unit of TickInterval.
const DefaultTickUnit = 250 * time.Millisecond

type Ticker interface {
	C() <-chan time.Time
	Reset(time.Duration)
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func newWrappedTicker(d time.Duration) *wrappedTicker {
	return &wrappedTicker{ticker: time.NewTicker(d)}
}

func (t *wrappedTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wrappedTicker) Stop()                 { t.ticker.Stop() }
func (t *wrappedTicker) Reset(d time.Duration) { t.ticker.Reset(d) }

type GameOptions struct {
	Engine   Options
	TickUnit time.Duration
	Logger   *slog.Logger
}

// session holds the channels of one Start..game over/Stop run.
type session struct {
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func (s *session) stop() { s.once.Do(func() { close(s.done) }) }

// Game drives an Engine from two sources, the gravity ticker and the player's
// intents, and funnels both through a single goroutine so the engine sees
// one ordered stream. Every processed event publishes a Snapshot on the
// update channel; the last one of a session has GameOver set.
type Game struct {
	options  GameOptions
	logger   *slog.Logger
	ticker   Ticker
	updateCh chan *Snapshot
	actionCh chan Intent

	mu      sync.Mutex
	engine  *Engine
	session *session
}

func NewGame(o GameOptions) *Game {
	return NewConfigurableGame(o, newWrappedTicker(time.Hour))
}

func NewConfigurableGame(o GameOptions, ticker Ticker) *Game {
	if o.TickUnit <= 0 {
		o.TickUnit = DefaultTickUnit
	}
	l := o.Logger
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Game{
		options:  o,
		logger:   l,
		ticker:   ticker,
		updateCh: make(chan *Snapshot),
		actionCh: make(chan Intent),
	}
}

// Start begins a new session. It blocks until the first snapshot has been
// received from GetUpdate.
func (g *Game) Start() error {
	e, err := NewEngine(g.options.Engine)
	if err != nil {
		return err
	}
	if _, err := e.Step(false); err != nil {
		return err
	}
	s := &session{done: make(chan struct{}), stopped: make(chan struct{})}

	g.mu.Lock()
	if g.session != nil {
		g.session.stop()
	}
	g.engine = e
	g.session = s
	snap := e.Snapshot()
	g.mu.Unlock()

	g.logger.Debug("game started", slog.Int("width", snap.Width), slog.Int("height", snap.Height))
	g.updateCh <- snap
	if snap.GameOver {
		close(s.stopped)
		return nil
	}
	go g.listen(e, s)
	return nil
}

// Stop ends the running session, if any.
func (g *Game) Stop() {
	g.ticker.Stop()
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session != nil {
		g.session.stop()
	}
}

// Action hands an intent to the running session. It is dropped when no
// session is running.
func (g *Game) Action(i Intent) {
	g.mu.Lock()
	s := g.session
	g.mu.Unlock()
	if s == nil {
		return
	}
	select {
	case g.actionCh <- i:
	case <-s.stopped:
	}
}

func (g *Game) GetUpdate() <-chan *Snapshot { return g.updateCh }

// Read returns a snapshot of the current session, nil before the first Start.
func (g *Game) Read() *Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.engine == nil {
		return nil
	}
	return g.engine.Snapshot()
}

func (g *Game) listen(e *Engine, s *session) {
	defer close(s.stopped)
	level := e.SpeedLevel()
	g.ticker.Reset(TickInterval(level, g.options.TickUnit))
	for {
		var (
			state State
			err   error
		)
		select {
		case <-g.ticker.C():
			g.mu.Lock()
			state, err = e.Step(true)
		case a := <-g.actionCh:
			g.mu.Lock()
			if err = e.Push(a); err == nil {
				state, err = e.Step(false)
			}
		case <-s.done:
			return
		}
		if err != nil && !errors.Is(err, ErrGameOver) {
			g.logger.Error("unable to step game", slog.String("error", err.Error()))
		}
		snap := e.Snapshot()
		g.mu.Unlock()

		if l := snap.SpeedLevel; l != level {
			level = l
			g.logger.Debug("speed level changed", slog.Int("level", level), slog.Int("score", snap.Score))
			g.ticker.Reset(TickInterval(level, g.options.TickUnit))
		}
		select {
		case g.updateCh <- snap:
		case <-s.done:
			return
		}
		if state == GameOver {
			g.ticker.Stop()
			g.logger.Info("game over", slog.Int("score", snap.Score), slog.Int("lines", snap.LinesClear))
			return
		}
	}
}
