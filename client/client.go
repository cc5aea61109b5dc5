package client

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"gridtris/terminal"
	"gridtris/tetris"

	"github.com/eiannone/keyboard"
)

type clientState int

const (
	lobby clientState = iota
	playing
)

type state struct {
	current clientState
	mu      sync.Mutex
}

func (s *state) get() clientState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *state) set(c clientState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = c
}

type tetrisGame interface {
	Start() error
	GetUpdate() <-chan *tetris.Snapshot
	Action(tetris.Intent)
	Stop()
}

type renderer interface {
	Game(*tetris.Snapshot)
	Lobby(msg string)
	Reset()
}

// Publisher receives every frame of the local game, e.g. to show it to spectators.
type Publisher interface {
	Publish(*tetris.Snapshot)
}

type Client struct {
	tetris    tetrisGame
	render    renderer
	keymap    *Keymap
	publisher Publisher
	logger    *slog.Logger
	kbCh      <-chan keyboard.KeyEvent
	state     *state
}

type Options struct {
	Game      tetris.GameOptions
	Keymap    *Keymap
	Publisher Publisher
	Writer    io.Writer
	Logger    *slog.Logger
}

func New(o *Options) (*Client, error) {
	var w io.Writer = os.Stdout
	if o.Writer != nil {
		w = o.Writer
	}
	r, err := terminal.New(w, o.Logger, "Gridtris")
	if err != nil {
		return nil, fmt.Errorf("failed to load renderer: %w", err)
	}
	km := o.Keymap
	if km == nil {
		km = DefaultKeymap()
	}
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	o.Game.Logger = o.Logger
	return &Client{
		tetris:    tetris.NewGame(o.Game),
		render:    r,
		keymap:    km,
		publisher: o.Publisher,
		logger:    o.Logger,
		kbCh:      kb,
		state:     &state{current: lobby},
	}, nil
}

// Start shows the lobby and blocks until the player quits.
func (c *Client) Start() {
	c.render.Reset()
	c.render.Lobby("")
	var wg sync.WaitGroup
	wg.Add(1)
	go c.listenKB(&wg)
	wg.Wait()
}

// Close stops the running game and releases the keyboard.
func (c *Client) Close() error {
	c.tetris.Stop()
	return keyboard.Close()
}

func (c *Client) listenKB(wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		event, ok := <-c.kbCh
		if !ok {
			c.logger.Error("Keyboard events channel closed unexpectedly")
			return
		}
		if event.Err != nil {
			c.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
			return
		}
		if event.Key == keyboard.KeyCtrlC {
			return
		}
		switch c.state.get() {
		case lobby:
			switch event.Rune {
			case 'p':
				c.state.set(playing)
				go c.listenTetris()
			case 'q':
				return
			}
		case playing:
			if i, ok := c.keymap.Intent(event); ok {
				c.tetris.Action(i)
			}
		}
	}
}

func (c *Client) listenTetris() {
	c.render.Reset()
	errCh := make(chan error, 1)
	go func() { errCh <- c.tetris.Start() }()
	for {
		select {
		case err := <-errCh:
			if err != nil {
				c.logger.Error("unable to start game", slog.String("error", err.Error()))
				c.state.set(lobby)
				c.render.Lobby("something went wrong :(")
				return
			}
			// a nil channel blocks, only updates are left to wait for.
			errCh = nil
		case u := <-c.tetris.GetUpdate():
			c.render.Game(u)
			if c.publisher != nil {
				c.publisher.Publish(u)
			}
			if u.GameOver {
				c.logger.Debug("game over", slog.Int("score", u.Score))
				c.state.set(lobby)
				return
			}
		}
	}
}
