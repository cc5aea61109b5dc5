// Package grid contains the fixed-size occupancy map used both for the
// playfield and for the local shape of a falling figure.
//
// The origin is the bottom-left cell. X grows to the right and Y grows upward:
//
//	y
//	3	. . . .
//	2	. . . .
//	1	. . . .
//	0	. . . .
//		0 1 2 3	x
package grid

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOutOfBounds     = errors.New("out of bounds")
	ErrInvalidRotation = errors.New("invalid rotation")
	ErrInvalidSize     = errors.New("invalid size")
)

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Grid is a width x height boolean matrix stored row-major in a flat slice.
type Grid struct {
	width  int
	height int
	cells  []bool
}

// New returns an empty grid. Both dimensions must be positive.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) addresses a cell of the grid. It never fails.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) IsSet(x, y int) (bool, error) {
	if err := g.check(x, y); err != nil {
		return false, err
	}
	return g.cells[g.index(x, y)], nil
}

func (g *Grid) Set(x, y int, v bool) error {
	if err := g.check(x, y); err != nil {
		return err
	}
	g.cells[g.index(x, y)] = v
	return nil
}

func (g *Grid) Unset(x, y int) error {
	return g.Set(x, y, false)
}

// Copy returns a deep copy that shares no state with g.
func (g *Grid) Copy() *Grid {
	cells := make([]bool, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// Rotate turns a square grid 90 degrees clockwise in place:
//
//	. x .		. x .
//	x x x	->	. x x
//	. . .		. x .
//
// The cell at (x, y) moves to (y, n-1-x).
func (g *Grid) Rotate() error {
	if g.width != g.height {
		return fmt.Errorf("%w: %dx%d is not square", ErrInvalidRotation, g.width, g.height)
	}
	n := g.width
	rotated := make([]bool, len(g.cells))
	for y := range n {
		for x := range n {
			rotated[g.index(y, n-1-x)] = g.cells[g.index(x, y)]
		}
	}
	g.cells = rotated
	return nil
}

// Equal compares dimensions and every cell.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Points returns every set cell scanning rows bottom-up, columns left to right.
func (g *Grid) Points() []Point {
	var points []Point
	for y := range g.height {
		for x := range g.width {
			if g.cells[g.index(x, y)] {
				points = append(points, Point{X: x, Y: y})
			}
		}
	}
	return points
}

// String renders the grid top row first using 'x' for set and '.' for empty cells.
func (g *Grid) String() string {
	var b strings.Builder
	for y := g.height - 1; y >= 0; y-- {
		for x := range g.width {
			if g.cells[g.index(x, y)] {
				b.WriteByte('x')
			} else {
				b.WriteByte('.')
			}
		}
		if y > 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (g *Grid) index(x, y int) int {
	return y*g.width + x
}

func (g *Grid) check(x, y int) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: (%d, %d) in %dx%d grid", ErrOutOfBounds, x, y, g.width, g.height)
	}
	return nil
}
