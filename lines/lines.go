// Package lines detects and removes completely filled rows of a grid.
//
// It works on a *grid.Grid through its exported methods only, so the grid
// itself stays free of game rules.
package lines

import (
	"fmt"

	"gridtris/grid"
)

// IsFull reports whether every column of row y is set.
func IsFull(g *grid.Grid, y int) (bool, error) {
	if y < 0 || y >= g.Height() {
		return false, fmt.Errorf("%w: row %d", grid.ErrOutOfBounds, y)
	}
	for x := range g.Width() {
		set, err := g.IsSet(x, y)
		if err != nil {
			return false, err
		}
		if !set {
			return false, nil
		}
	}
	return true, nil
}

// Full returns the indices of every full row in ascending order.
func Full(g *grid.Grid) []int {
	var rows []int
	for y := range g.Height() {
		if full, _ := IsFull(g, y); full {
			rows = append(rows, y)
		}
	}
	return rows
}

// Clear unsets every cell of row y.
func Clear(g *grid.Grid, y int) error {
	if y < 0 || y >= g.Height() {
		return fmt.Errorf("%w: row %d", grid.ErrOutOfBounds, y)
	}
	for x := range g.Width() {
		if err := g.Unset(x, y); err != nil {
			return err
		}
	}
	return nil
}

// Copy overwrites row dst with the content of row src.
func Copy(g *grid.Grid, src, dst int) error {
	for _, y := range []int{src, dst} {
		if y < 0 || y >= g.Height() {
			return fmt.Errorf("%w: row %d", grid.ErrOutOfBounds, y)
		}
	}
	for x := range g.Width() {
		set, err := g.IsSet(x, src)
		if err != nil {
			return err
		}
		if err := g.Set(x, dst, set); err != nil {
			return err
		}
	}
	return nil
}

// Compact removes every full row and lets the rows above fall into the gap.
// It returns the number of removed rows.
//
//	x o x				o o o
//	x x x	<- full		o o o
//	o x x			->	x o x
//	x x x	<- full		o x x
//
// The scan starts at the bottom. A full row is cleared and everything above
// it shifts down one row; the cursor stays in place so the row that just
// moved into it is examined again. The loop runs at most Height() times
// because each pass either advances the cursor or removes a row.
func Compact(g *grid.Grid) (int, error) {
	removed := 0
	y := 0
	for range g.Height() {
		full, err := IsFull(g, y)
		if err != nil {
			return removed, err
		}
		if !full {
			y++
			continue
		}
		removed++
		if err := Clear(g, y); err != nil {
			return removed, err
		}
		for i := y + 1; i < g.Height(); i++ {
			if err := Copy(g, i, i-1); err != nil {
				return removed, err
			}
			if err := Clear(g, i); err != nil {
				return removed, err
			}
		}
	}
	return removed, nil
}
