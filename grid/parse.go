package grid

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse builds a grid from ASCII art. Lines are trimmed and blank lines are
// skipped. The last line is row 0, 'x' marks a set cell and any other
// character an empty one. Each character is one cell, whatever its encoded
// length. The width is the longest line; cells past the end of a shorter
// line are empty.
//
//	ooo
//	xox	  row 1
//	xxx	  row 0
func Parse(s string) (*Grid, error) {
	var rows []string
	for line := range strings.SplitSeq(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}

	width := 0
	for _, r := range rows {
		width = max(width, utf8.RuneCountInString(r))
	}
	g, err := New(width, len(rows))
	if err != nil {
		return nil, fmt.Errorf("unable to parse grid: %w", err)
	}

	for i, r := range rows {
		y := len(rows) - 1 - i
		for x, c := range []rune(r) {
			if c == 'x' {
				g.cells[g.index(x, y)] = true
			}
		}
	}
	return g, nil
}

// MustParse is like Parse but panics on error. It is meant for static shape
// tables and tests.
func MustParse(s string) *Grid {
	g, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return g
}
