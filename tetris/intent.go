package tetris

import "fmt"

// Intent is one discrete movement request for the falling figure.
// A rotation is applied before the translation.
type Intent struct {
	DeltaX, DeltaY int
	HasRotation    bool
}

var (
	MoveLeft    = Intent{DeltaX: -1} // Moves the figure one column to the left.
	MoveRight   = Intent{DeltaX: 1}  // Moves the figure one column to the right.
	MoveDown    = Intent{DeltaY: -1} // Moves the figure one row down. Also the gravity tick.
	RotateRight = Intent{HasRotation: true}
)

func (i Intent) String() string {
	switch i {
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case MoveDown:
		return "down"
	case RotateRight:
		return "rotate"
	}
	return fmt.Sprintf("intent(%d,%d,%t)", i.DeltaX, i.DeltaY, i.HasRotation)
}
