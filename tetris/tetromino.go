package tetris

import (
	"errors"
	"fmt"

	"gridtris/grid"
)

var ErrEmptyShape = errors.New("empty shape")

// Shape is a named piece. Cells must be square so the piece can rotate.
type Shape struct {
	Name  string
	Cells *grid.Grid
}

// NewShape parses the ASCII art of a piece, see grid.Parse.
func NewShape(name, art string) (Shape, error) {
	g, err := grid.Parse(art)
	if err != nil {
		return Shape{}, fmt.Errorf("shape %q: %w", name, err)
	}
	s := Shape{Name: name, Cells: g}
	return s, s.validate()
}

func (s Shape) validate() error {
	if s.Cells == nil || len(s.Cells.Points()) == 0 {
		return fmt.Errorf("shape %q: %w", s.Name, ErrEmptyShape)
	}
	if s.Cells.Width() != s.Cells.Height() {
		return fmt.Errorf("shape %q is %dx%d: %w", s.Name, s.Cells.Width(), s.Cells.Height(), grid.ErrInvalidRotation)
	}
	return nil
}

// Library is the ordered, read-only set of shapes new figures are drawn from.
type Library struct {
	shapes []Shape
}

func NewLibrary(shapes ...Shape) (*Library, error) {
	if len(shapes) == 0 {
		return nil, fmt.Errorf("library: %w", ErrEmptyShape)
	}
	l := &Library{}
	for _, s := range shapes {
		if err := s.validate(); err != nil {
			return nil, err
		}
		// shapes are copied in so callers can't change them afterwards.
		l.shapes = append(l.shapes, Shape{Name: s.Name, Cells: s.Cells.Copy()})
	}
	return l, nil
}

func (l *Library) Len() int { return len(l.shapes) }

func (l *Library) At(i int) Shape { return l.shapes[i] }

func (l *Library) Names() []string {
	names := make([]string, len(l.shapes))
	for i, s := range l.shapes {
		names[i] = s.Name
	}
	return names
}

// DefaultLibrary holds the seven tetrominoes.
func DefaultLibrary() *Library {
	l, err := NewLibrary(I, J, L, O, S, Z, T)
	if err != nil {
		panic(err)
	}
	return l
}

func mustShape(name, art string) Shape {
	s, err := NewShape(name, art)
	if err != nil {
		panic(err)
	}
	return s
}

/*
.	Spawn Location (10 wide)	.	Shape

.	0 1 2 3 4 5 6 7 8 9			.	0 1 2 3

19	X X X O O O O X X X			3	X X X X

18	X X X X X X X X X X			2	O O O O

17	X X X X X X X X X X			1	X X X X

16	X X X X X X X X X X			0	X X X X
*/
var I = mustShape("I", `
	oooo
	xxxx
	oooo
	oooo
`)

/*
.	Spawn Location (10 wide)	.	Shape

.	0 1 2 3 4 5 6 7 8 9			.	0 1 2

19	X X X O X X X X X X			2	O X X

18	X X X O O O X X X X			1	O O O

17	X X X X X X X X X X			0	X X X
*/
var J = mustShape("J", `
	xoo
	xxx
	ooo
`)

/*
.	Spawn Location (10 wide)	.	Shape

.	0 1 2 3 4 5 6 7 8 9			.	0 1 2

19	X X X X X O X X X X			2	X X O

18	X X X O O O X X X X			1	O O O

17	X X X X X X X X X X			0	X X X
*/
var L = mustShape("L", `
	oox
	xxx
	ooo
`)

/*
.	Spawn Location (10 wide)	.	Shape

.	0 1 2 3 4 5 6 7 8 9			.	0 1

19	X X X X O O X X X X			1	O O

18	X X X X O O X X X X			0	O O
*/
var O = mustShape("O", `
	xx
	xx
`)

/*
.	Spawn Location (10 wide)	.	Shape

.	0 1 2 3 4 5 6 7 8 9			.	0 1 2

19	X X X X O O X X X X			2	X O O

18	X X X O O X X X X X			1	O O X

17	X X X X X X X X X X			0	X X X
*/
var S = mustShape("S", `
	oxx
	xxo
	ooo
`)

/*
.	Spawn Location (10 wide)	.	Shape

.	0 1 2 3 4 5 6 7 8 9			.	0 1 2

19	X X X O O X X X X X			2	O O X

18	X X X X O O X X X X			1	X O O

17	X X X X X X X X X X			0	X X X
*/
var Z = mustShape("Z", `
	xxo
	oxx
	ooo
`)

/*
.	Spawn Location (10 wide)	.	Shape

.	0 1 2 3 4 5 6 7 8 9			.	0 1 2

19	X X X X O X X X X X			2	X O X

18	X X X O O O X X X X			1	O O O

17	X X X X X X X X X X			0	X X X
*/
var T = mustShape("T", `
	oxo
	xxx
	ooo
`)

// ClassicT is the single 5x5 piece the game shipped with at first.
var ClassicT = mustShape("T5", `
	ooooo
	ooxoo
	oxxxo
	ooooo
	ooooo
`)
