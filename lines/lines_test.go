package lines_test

import (
	"testing"

	"gridtris/grid"
	"gridtris/lines"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFull(t *testing.T) {
	g := grid.MustParse(`
		xox
		xxx
		oxx
		xxx
	`)
	assert.Equal(t, []int{0, 2}, lines.Full(g))

	full, err := lines.IsFull(g, 1)
	require.NoError(t, err)
	assert.False(t, full)

	_, err = lines.IsFull(g, 4)
	assert.ErrorIs(t, err, grid.ErrOutOfBounds)
	_, err = lines.IsFull(g, -1)
	assert.ErrorIs(t, err, grid.ErrOutOfBounds)

	empty, err := grid.New(5, 5)
	require.NoError(t, err)
	assert.Empty(t, lines.Full(empty))
}

func TestClearAndCopy(t *testing.T) {
	g := grid.MustParse(`
		xoo
		oox
	`)
	require.NoError(t, lines.Copy(g, 1, 0))
	assert.True(t, g.Equal(grid.MustParse("xoo\nxoo")), "got\n%s", g)

	require.NoError(t, lines.Clear(g, 1))
	assert.True(t, g.Equal(grid.MustParse("ooo\nxoo")), "got\n%s", g)

	assert.ErrorIs(t, lines.Clear(g, 2), grid.ErrOutOfBounds)
	assert.ErrorIs(t, lines.Copy(g, 0, 2), grid.ErrOutOfBounds)
	assert.ErrorIs(t, lines.Copy(g, -1, 0), grid.ErrOutOfBounds)
}

func TestCompact(t *testing.T) {
	tests := []struct {
		name        string
		before      string
		after       string
		wantRemoved int
	}{
		{
			name: "full rows removed and rows above fall",
			before: `
				xox
				xxx
				oxx
				xxx`,
			after: `
				ooo
				ooo
				xox
				oxx`,
			wantRemoved: 2,
		},
		{
			name: "adjacent full rows",
			before: `
				oxo
				xxx
				xxx
				xoo`,
			after: `
				ooo
				ooo
				oxo
				xoo`,
			wantRemoved: 2,
		},
		{
			name: "every row full",
			before: `
				xx
				xx
				xx`,
			after: `
				oo
				oo
				oo`,
			wantRemoved: 3,
		},
		{
			name: "full top row",
			before: `
				xxx
				xoo`,
			after: `
				ooo
				xoo`,
			wantRemoved: 1,
		},
		{
			name: "nothing to remove",
			before: `
				oxo
				xox`,
			after: `
				oxo
				xox`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := grid.MustParse(tt.before)
			removed, err := lines.Compact(g)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRemoved, removed)
			assert.True(t, g.Equal(grid.MustParse(tt.after)), "got\n%s", g)
		})
	}
}

func TestCompactSingleRow(t *testing.T) {
	g, err := grid.New(30, 20)
	require.NoError(t, err)
	for x := range g.Width() {
		require.NoError(t, g.Set(x, 0, true))
	}

	removed, err := lines.Compact(g)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Empty(t, g.Points())
}

func TestCompactEmptyGridIsIdempotent(t *testing.T) {
	g, err := grid.New(30, 20)
	require.NoError(t, err)
	before := g.Copy()

	removed, err := lines.Compact(g)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
	assert.True(t, g.Equal(before))
}
