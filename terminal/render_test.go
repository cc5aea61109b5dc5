package terminal

import (
	"bytes"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"gridtris/tetris"
)

func newTestSnapshot() *tetris.Snapshot {
	e := tetris.NewTestEngine(10, 20, tetris.J)
	tetris.FillStack(e, "xoox")
	return e.Snapshot()
}

func TestStack(t *testing.T) {
	want := make([][]string, 20)
	for y := range want {
		want[y] = make([]string, 10)
		for x := range want[y] {
			want[y][x] = "  "
		}
	}
	blueCell := "\x1b[7m\x1b[34m[]\x1b[0m"
	whiteCell := "\x1b[7m\x1b[37m[]\x1b[0m"
	want[0][3] = blueCell
	want[1][3] = blueCell
	want[1][4] = blueCell
	want[1][5] = blueCell
	want[19][0] = whiteCell
	want[19][3] = whiteCell

	got := stack(newTestSnapshot())
	if !reflect.DeepEqual(got, want) {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestColorOf(t *testing.T) {
	tests := []struct {
		shape, want string
	}{
		{"I", Cyan},
		{"O", Yellow},
		{"T", Magenta},
		{"T5", White},
		{"", White},
	}
	for _, tt := range tests {
		if got := colorOf(tt.shape); got != tt.want {
			t.Errorf("shape %q: want %q, got %q", tt.shape, tt.want, got)
		}
	}
}

func TestGame(t *testing.T) {
	var buf bytes.Buffer
	r, err := New(&buf, slog.New(slog.NewTextHandler(io.Discard, nil)), "Gridtris")
	if err != nil {
		t.Fatal(err)
	}
	s := newTestSnapshot()
	r.Game(s)

	out := buf.String()
	if !strings.HasPrefix(out, resetPos) {
		t.Errorf("wanted the frame to start by resetting the cursor")
	}
	// title, two borders and one line per row.
	if got := strings.Count(out, "\r\n"); got != s.Height+3 {
		t.Errorf("want %d lines, got %d", s.Height+3, got)
	}
	if !strings.Contains(out, "+"+strings.Repeat("-", 20)+"+") {
		t.Errorf("wanted a border as wide as the stack in\n%s", out)
	}
	if !strings.Contains(out, "Score: 0") {
		t.Errorf("wanted the score in\n%s", out)
	}
	if strings.Contains(out, "Game Over") {
		t.Errorf("didn't want the lobby on a running game")
	}

	buf.Reset()
	s.GameOver = true
	s.Score = 300
	r.Game(s)
	if !strings.Contains(buf.String(), "Game Over :) score 300") {
		t.Errorf("wanted the game over lobby, got\n%s", buf.String())
	}
}

func TestLobbyMenu(t *testing.T) {
	tests := []struct {
		name     string
		new      func(io.Writer, *slog.Logger, string) (*Renderer, error)
		wantPlay bool
	}{
		{"player", New, true},
		{"spectator", NewSpectator, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r, err := tt.new(&buf, slog.New(slog.NewTextHandler(io.Discard, nil)), "Gridtris")
			if err != nil {
				t.Fatal(err)
			}
			s := newTestSnapshot()
			s.GameOver = true
			r.Game(s)

			out := buf.String()
			if !strings.Contains(out, "(q)uit") {
				t.Errorf("wanted the quit option in\n%s", out)
			}
			if got := strings.Contains(out, "(p)lay"); got != tt.wantPlay {
				t.Errorf("wanted play option %v, got %v", tt.wantPlay, got)
			}
		})
	}
}

func TestCenter(t *testing.T) {
	got := center("hi", 2)
	if len(got) != 38 || strings.TrimSpace(got) != "hi" {
		t.Errorf("unexpected padding %q", got)
	}
	long := strings.Repeat("x", 40)
	if center(long, 40) != long {
		t.Errorf("long strings should be left alone")
	}
}
