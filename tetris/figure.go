package tetris

import (
	"fmt"

	"gridtris/grid"
)

// Figure is the falling piece: a square local shape placed with its
// bottom-left cell at (X, Y) on the stack.
//
// Figures are values. Translate, Rotate and Apply return a new Figure and
// leave the receiver untouched so a candidate move can be tested against the
// stack before it's adopted.
type Figure struct {
	X, Y int
	Name string

	shape *grid.Grid
}

func NewFigure(x, y int, s Shape) Figure {
	return Figure{X: x, Y: y, Name: s.Name, shape: s.Cells}
}

func (f Figure) Width() int  { return f.shape.Width() }
func (f Figure) Height() int { return f.shape.Height() }

// Cells returns a copy of the local shape.
func (f Figure) Cells() *grid.Grid { return f.shape.Copy() }

// CellPoints returns the stack coordinates of every occupied cell, scanning
// the local shape bottom-up and left to right.
//
//	.	local shape		.	stack, origin (2,3)
//	2	. x .			5	. . . x .
//	1	x x x			4	. . x x x
//	0	. . .			3	. . . . .
//	.	0 1 2			.	0 1 2 3 4
func (f Figure) CellPoints() []grid.Point {
	points := f.shape.Points()
	for i := range points {
		points[i].X += f.X
		points[i].Y += f.Y
	}
	return points
}

func (f Figure) Translate(dx, dy int) Figure {
	f.X += dx
	f.Y += dy
	return f
}

// Rotate returns the figure turned 90 degrees clockwise around its local
// shape. The origin doesn't change.
func (f Figure) Rotate() (Figure, error) {
	s := f.shape.Copy()
	if err := s.Rotate(); err != nil {
		return f, fmt.Errorf("unable to rotate figure %q: %w", f.Name, err)
	}
	f.shape = s
	return f, nil
}

// Apply rotates first when the intent asks for it and then translates.
func (f Figure) Apply(i Intent) (Figure, error) {
	if i.HasRotation {
		var err error
		if f, err = f.Rotate(); err != nil {
			return f, err
		}
	}
	return f.Translate(i.DeltaX, i.DeltaY), nil
}

// topRow is the index of the highest occupied local row, -1 for an empty shape.
func (f Figure) topRow() int {
	top := -1
	for _, p := range f.shape.Points() {
		top = max(top, p.Y)
	}
	return top
}

// CanPlace reports whether every occupied cell of f is inside the stack and
// not already set. A false result is the normal way a blocked move is
// detected, not an error.
func CanPlace(g *grid.Grid, f Figure) bool {
	for _, p := range f.CellPoints() {
		if !g.InBounds(p.X, p.Y) {
			return false
		}
		if set, _ := g.IsSet(p.X, p.Y); set {
			return false
		}
	}
	return true
}
