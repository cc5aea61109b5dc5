package server

import (
	"errors"
	"fmt"
	"strings"

	"gridtris/grid"
	"gridtris/tetris"

	"google.golang.org/protobuf/types/known/structpb"
)

var ErrBadFrame = errors.New("malformed snapshot frame")

// Encode packs a snapshot into the wire message. The stack travels as ASCII
// rows, top row first.
func Encode(session string, s *tetris.Snapshot) (*structpb.Struct, error) {
	rows := []any{}
	if s.Stack != nil {
		for r := range strings.SplitSeq(s.Stack.String(), "\n") {
			rows = append(rows, r)
		}
	}
	figure := make([]any, 0, len(s.Figure))
	for _, p := range s.Figure {
		figure = append(figure, map[string]any{"x": p.X, "y": p.Y})
	}
	msg, err := structpb.NewStruct(map[string]any{
		"session":     session,
		"width":       s.Width,
		"height":      s.Height,
		"rows":        rows,
		"figure":      figure,
		"shape":       s.Shape,
		"score":       s.Score,
		"speed_level": s.SpeedLevel,
		"lines":       s.LinesClear,
		"game_over":   s.GameOver,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to encode snapshot: %w", err)
	}
	return msg, nil
}

// Decode is the inverse of Encode.
func Decode(msg *structpb.Struct) (session string, s *tetris.Snapshot, err error) {
	f := msg.GetFields()
	s = &tetris.Snapshot{
		Width:      int(f["width"].GetNumberValue()),
		Height:     int(f["height"].GetNumberValue()),
		Shape:      f["shape"].GetStringValue(),
		Score:      int(f["score"].GetNumberValue()),
		SpeedLevel: int(f["speed_level"].GetNumberValue()),
		LinesClear: int(f["lines"].GetNumberValue()),
		GameOver:   f["game_over"].GetBoolValue(),
	}

	var rows []string
	for _, v := range f["rows"].GetListValue().GetValues() {
		rows = append(rows, v.GetStringValue())
	}
	if len(rows) > 0 {
		stack, err := grid.Parse(strings.Join(rows, "\n"))
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrBadFrame, err)
		}
		if stack.Width() != s.Width || stack.Height() != s.Height {
			return "", nil, fmt.Errorf("%w: stack is %dx%d, header says %dx%d",
				ErrBadFrame, stack.Width(), stack.Height(), s.Width, s.Height)
		}
		s.Stack = stack
	}

	for _, v := range f["figure"].GetListValue().GetValues() {
		p := v.GetStructValue().GetFields()
		if p == nil {
			return "", nil, fmt.Errorf("%w: figure cell is not a point", ErrBadFrame)
		}
		s.Figure = append(s.Figure, grid.Point{
			X: int(p["x"].GetNumberValue()),
			Y: int(p["y"].GetNumberValue()),
		})
	}
	return f["session"].GetStringValue(), s, nil
}
