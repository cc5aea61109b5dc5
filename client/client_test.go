package client

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"gridtris/tetris"

	"github.com/eiannone/keyboard"
)

type mockTetris struct {
	updateCh chan *tetris.Snapshot
	start    bool
	action   tetris.Intent
	mu       sync.Mutex
}

func (m *mockTetris) Stop()                               {}
func (m *mockTetris) GetUpdate() <-chan *tetris.Snapshot { return m.updateCh }
func (m *mockTetris) Start() error {
	m.mu.Lock()
	m.start = true
	m.mu.Unlock()
	m.updateCh <- &tetris.Snapshot{}
	return nil
}

func (m *mockTetris) Action(a tetris.Intent) {
	m.mu.Lock()
	m.action = a
	m.mu.Unlock()
	m.updateCh <- &tetris.Snapshot{}
}
func (m *mockTetris) sendGameOver() { m.updateCh <- &tetris.Snapshot{GameOver: true} }

func (m *mockTetris) started() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.start
}

func (m *mockTetris) lastAction() tetris.Intent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.action
}

type mockRender struct {
	lobbyCount int
	gameCount  int
	mu         sync.Mutex
}

func (m *mockRender) Reset() {}
func (m *mockRender) Lobby(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lobbyCount++
}

func (m *mockRender) Game(s *tetris.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gameCount++
}

func (m *mockRender) counts() (lobby, game int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lobbyCount, m.gameCount
}

type mockPublisher struct {
	published []*tetris.Snapshot
	mu        sync.Mutex
}

func (m *mockPublisher) Publish(s *tetris.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, s)
}

func (m *mockPublisher) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.published)
}

func TestClient(t *testing.T) {
	render := &mockRender{}
	tts := &mockTetris{updateCh: make(chan *tetris.Snapshot)}
	pub := &mockPublisher{}
	kCh := make(chan keyboard.KeyEvent)
	cl := &Client{
		tetris:    tts,
		render:    render,
		keymap:    DefaultKeymap(),
		publisher: pub,
		logger:    slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})),
		kbCh:      kCh,
		state:     &state{current: lobby},
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() { cl.Start(); wg.Done() }()
	time.Sleep(10 * time.Millisecond)
	if lobbyCount, _ := render.counts(); lobbyCount != 1 {
		t.Errorf("wanted the lobby to be rendered once, got %d", lobbyCount)
	}

	// keys other than 'p' and 'q' are ignored in the lobby.
	kCh <- keyboard.KeyEvent{Key: keyboard.KeyArrowLeft}
	time.Sleep(10 * time.Millisecond)
	if tts.started() || cl.state.get() != lobby {
		t.Errorf("wanted to stay in the lobby")
	}

	// 'p' would call tetris.Start(), set the state to playing and render the first frame.
	kCh <- keyboard.KeyEvent{Rune: 'p'}
	time.Sleep(10 * time.Millisecond)
	if !tts.started() {
		t.Errorf("wanted tetris.Start() to be called")
	}
	if cl.state.get() != playing {
		t.Errorf("wanted state to be playing after 'p' key press")
	}
	wantGameCount := 1
	if _, gameCount := render.counts(); gameCount != wantGameCount {
		t.Errorf("wanted render.Game() to be called once, got %d", gameCount)
	}

	// while in game, keys should direct to tetris intents.
	actions := []struct {
		key    keyboard.KeyEvent
		intent tetris.Intent
	}{
		{key: keyboard.KeyEvent{Rune: 's'}, intent: tetris.MoveDown},
		{key: keyboard.KeyEvent{Key: keyboard.KeyArrowDown}, intent: tetris.MoveDown},
		{key: keyboard.KeyEvent{Rune: 'a'}, intent: tetris.MoveLeft},
		{key: keyboard.KeyEvent{Key: keyboard.KeyArrowLeft}, intent: tetris.MoveLeft},
		{key: keyboard.KeyEvent{Rune: 'd'}, intent: tetris.MoveRight},
		{key: keyboard.KeyEvent{Key: keyboard.KeyArrowRight}, intent: tetris.MoveRight},
		{key: keyboard.KeyEvent{Rune: 'w'}, intent: tetris.RotateRight},
		{key: keyboard.KeyEvent{Key: keyboard.KeyArrowUp}, intent: tetris.RotateRight},
	}
	for _, a := range actions {
		wantGameCount++
		t.Run(fmt.Sprintf("key %v", a.key), func(t *testing.T) {
			kCh <- a.key
			time.Sleep(10 * time.Millisecond)
			if _, gameCount := render.counts(); gameCount != wantGameCount {
				t.Errorf("wanted render.Game() to be called %d times, got %d", wantGameCount, gameCount)
			}
			if tts.lastAction() != a.intent {
				t.Errorf("wanted intent %v, got %v", a.intent, tts.lastAction())
			}
		})
	}

	// unknown keys are ignored while playing.
	kCh <- keyboard.KeyEvent{Rune: 'z'}
	time.Sleep(10 * time.Millisecond)
	if _, gameCount := render.counts(); gameCount != wantGameCount {
		t.Errorf("wanted unknown keys to be ignored, got %d frames", gameCount)
	}

	// game over renders the last frame and goes back to the lobby.
	wantGameCount++
	tts.sendGameOver()
	time.Sleep(10 * time.Millisecond)
	if _, gameCount := render.counts(); gameCount != wantGameCount {
		t.Errorf("wanted render.Game() to be called %d times, got %d", wantGameCount, gameCount)
	}
	if cl.state.get() != lobby {
		t.Errorf("wanted state to be lobby after game over")
	}
	if pub.count() != wantGameCount {
		t.Errorf("wanted every frame published, got %d of %d", pub.count(), wantGameCount)
	}

	// 'q' should quit the game back in the lobby
	kCh <- keyboard.KeyEvent{Rune: 'q'}
	wgDone := make(chan struct{})
	go func() { wg.Wait(); close(wgDone) }()
	select {
	case <-time.After(time.Second):
		t.Errorf("timeout waiting for quit")
	case <-wgDone:
	}
}

func TestKeymap(t *testing.T) {
	km := DefaultKeymap()
	if _, ok := km.Intent(keyboard.KeyEvent{Rune: 'p'}); ok {
		t.Errorf("'p' shouldn't map to an intent")
	}
	if _, ok := km.Intent(keyboard.KeyEvent{Key: keyboard.KeyEnter}); ok {
		t.Errorf("enter shouldn't map to an intent")
	}
	if i, ok := km.Intent(keyboard.KeyEvent{Key: keyboard.KeyArrowUp}); !ok || i != tetris.RotateRight {
		t.Errorf("wanted arrow up to rotate, got %v", i)
	}
}
