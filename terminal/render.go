// Package terminal draws game snapshots on an ANSI terminal.
package terminal

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"text/template"

	"gridtris/tetris"
)

const (
	// ASCII colors.
	Cyan    = "36"
	Blue    = "34"
	Orange  = "38;5;214"
	Yellow  = "33"
	Green   = "32"
	Red     = "31"
	Magenta = "35"
	White   = "37"

	resetPos    = "\033[H"     // Reset cursor position to 0,0
	clearScreen = "\033[2J\033[H"
	emptyCell   = "  "

	playMenu  = "(p)lay   (q)uit"
	watchMenu = "(q)uit"
)

//go:embed "layout.tmpl"
var layout string

var colorMap = map[string]string{
	"I": Cyan,
	"J": Blue,
	"L": Orange,
	"O": Yellow,
	"S": Green,
	"Z": Red,
	"T": Magenta,
}

// Renderer writes frames to a terminal in raw mode. It never changes the
// snapshots it's given.
type Renderer struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template
	title    string
	menu     string
	mu       sync.Mutex
}

type templateData struct {
	*tetris.Snapshot
	Title string
}

func New(w io.Writer, l *slog.Logger, title string) (*Renderer, error) {
	tmp, err := loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	return &Renderer{writer: w, logger: l, template: tmp, title: title, menu: playMenu}, nil
}

// NewSpectator is like New but its lobby only offers to quit.
func NewSpectator(w io.Writer, l *slog.Logger, title string) (*Renderer, error) {
	r, err := New(w, l, title)
	if err != nil {
		return nil, err
	}
	r.menu = watchMenu
	return r, nil
}

// Game draws a frame. A game over frame is followed by the lobby.
func (r *Renderer) Game(s *tetris.Snapshot) {
	if s == nil {
		return
	}
	r.mu.Lock()
	fmt.Fprint(r.writer, resetPos)
	if err := r.template.Execute(r.writer, templateData{Snapshot: s, Title: r.title}); err != nil {
		r.logger.Error("unable to execute template in Game()", slog.String("error", err.Error()))
	}
	r.mu.Unlock()
	if s.GameOver {
		r.Lobby(fmt.Sprintf("Game Over :) score %d", s.Score))
	}
}

// Lobby draws the menu box over whatever is on screen.
func (r *Renderer) Lobby(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(r.writer, "\033[10;9H+--------------------------------------+")
	fmt.Fprint(r.writer, "\033[11;9H|"+center("Welcome to \033[1mGridtris\033[0m", len("Welcome to Gridtris"))+"|")
	fmt.Fprint(r.writer, "\033[12;9H|"+center(msg, len(msg))+"|")
	fmt.Fprint(r.writer, "\033[13;9H|"+center(r.menu, len(r.menu))+"|")
	fmt.Fprint(r.writer, "\033[14;9H+--------------------------------------+")
}

// Reset clears the screen.
func (r *Renderer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprint(r.writer, clearScreen)
}

func loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"stack":  stack,
		"border": border,
		"side":   side,
	}

	// we use the console raw so new lines don't automatically transform into carriage return
	// to fix that we add a carriage return to every new line in the layout.
	l := strings.ReplaceAll(layout, "\n", "\r\n")
	return template.New("layout").Funcs(funcMap).Parse(l)
}

// stack renders the snapshot top row first, two characters per cell.
func stack(s *tetris.Snapshot) [][]string {
	rendered := make([][]string, s.Height)
	for i := range rendered {
		// the template can only range from 0 upwards so the top row of
		// the stack goes first.
		y := s.Height - 1 - i
		rendered[i] = make([]string, s.Width)
		for x := range s.Width {
			locked, figure := s.Cell(x, y)
			switch {
			case figure:
				rendered[i][x] = paint(colorOf(s.Shape))
			case locked:
				rendered[i][x] = paint(White)
			default:
				rendered[i][x] = emptyCell
			}
		}
	}
	return rendered
}

// side is the text shown right of row i of the stack.
func side(s *tetris.Snapshot, i int) string {
	switch i {
	case 1:
		return fmt.Sprintf("  Score: %d", s.Score)
	case 2:
		return fmt.Sprintf("  Lines: %d", s.LinesClear)
	case 3:
		return fmt.Sprintf("  Speed: %d", s.SpeedLevel)
	}
	return ""
}

func border(width int) string {
	return strings.Repeat("-", width*len(emptyCell))
}

func paint(color string) string {
	return fmt.Sprintf("\x1b[7m\x1b[%sm[]\x1b[0m", color)
}

func colorOf(shape string) string {
	if c, ok := colorMap[shape]; ok {
		return c
	}
	return White
}

// center pads s to the 38 columns of the lobby box. width is the printed
// length of s, which differs from len(s) when s has escape codes.
func center(s string, width int) string {
	const inner = 38
	if width >= inner {
		return s
	}
	left := (inner - width) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", inner-width-left)
}
