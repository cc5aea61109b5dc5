package tetris

const DefaultScoreIncrement = 100

// DefaultSpeedLevels are the score thresholds of the speed levels.
var DefaultSpeedLevels = []int{20000, 40000, 60000}

// Scorer accumulates the score of a session. The score never decreases.
type Scorer struct {
	increment   int
	speedLevels []int
	score       int
}

// NewScorer copies levels, which must be ascending.
func NewScorer(increment int, levels []int) *Scorer {
	return &Scorer{
		increment:   increment,
		speedLevels: append([]int(nil), levels...),
	}
}

func (s *Scorer) OnFilledLine() {
	s.score += s.increment
}

func (s *Scorer) Score() int { return s.score }

// SpeedLevel is the index of the first threshold the score hasn't reached
// yet, or the number of thresholds once all of them are reached.
func (s *Scorer) SpeedLevel() int {
	for i, level := range s.speedLevels {
		if s.score < level {
			return i
		}
	}
	return len(s.speedLevels)
}
