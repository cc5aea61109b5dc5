package client

import (
	"gridtris/tetris"

	"github.com/eiannone/keyboard"
)

// Keymap turns raw key events into intents. Each key maps to one intent.
type Keymap struct {
	keys  map[keyboard.Key]tetris.Intent
	runes map[rune]tetris.Intent
}

// DefaultKeymap binds the arrows and a/d/s/w.
func DefaultKeymap() *Keymap {
	return &Keymap{
		keys: map[keyboard.Key]tetris.Intent{
			keyboard.KeyArrowLeft:  tetris.MoveLeft,
			keyboard.KeyArrowRight: tetris.MoveRight,
			keyboard.KeyArrowDown:  tetris.MoveDown,
			keyboard.KeyArrowUp:    tetris.RotateRight,
		},
		runes: map[rune]tetris.Intent{
			'a': tetris.MoveLeft,
			'd': tetris.MoveRight,
			's': tetris.MoveDown,
			'w': tetris.RotateRight,
		},
	}
}

// Intent returns the intent bound to the event. Unknown keys report false.
func (k *Keymap) Intent(e keyboard.KeyEvent) (tetris.Intent, bool) {
	if e.Rune != 0 {
		i, ok := k.runes[e.Rune]
		return i, ok
	}
	i, ok := k.keys[e.Key]
	return i, ok
}
