package tetris

import "gridtris/grid"

// Snapshot is a read-only copy of a session handed to renderers and spectators.
type Snapshot struct {
	Width, Height int
	// Stack holds the locked cells only. The falling figure is in Figure.
	Stack      *grid.Grid
	Figure     []grid.Point
	Shape      string
	Score      int
	SpeedLevel int
	LinesClear int
	GameOver   bool
}

// Cell tells what occupies (x, y): the falling figure, a locked cell or nothing.
// Coordinates outside the stack are empty.
func (s *Snapshot) Cell(x, y int) (locked, figure bool) {
	for _, p := range s.Figure {
		if p.X == x && p.Y == y {
			return false, true
		}
	}
	if s.Stack == nil {
		return false, false
	}
	set, err := s.Stack.IsSet(x, y)
	return err == nil && set, false
}
