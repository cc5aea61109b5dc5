// Package config loads the game settings from a YAML file.
//
//	width: 15
//	height: 22
//	score_increment: 100
//	speed_levels: [20000, 40000, 60000]
//	tick_unit: 250ms
//	seed: 42
//	shapes:
//	  - name: T5
//	    art: |
//	      ooooo
//	      ooxoo
//	      oxxxo
//	      ooooo
//	      ooooo
//
// Missing fields keep their defaults. Without shapes the seven tetrominoes
// are used.
package config

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"time"

	"gridtris/tetris"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

type ShapeArt struct {
	Name string `yaml:"name"`
	Art  string `yaml:"art"`
}

type Config struct {
	Width          int           `yaml:"width"`
	Height         int           `yaml:"height"`
	ScoreIncrement int           `yaml:"score_increment"`
	SpeedLevels    []int         `yaml:"speed_levels"`
	TickUnit       time.Duration `yaml:"tick_unit"`
	// Seed of the shape randomizer. Zero picks a new seed every session.
	Seed   uint64     `yaml:"seed"`
	Shapes []ShapeArt `yaml:"shapes"`
}

func Default() Config {
	return Config{
		Width:          tetris.DefaultWidth,
		Height:         tetris.DefaultHeight,
		ScoreIncrement: tetris.DefaultScoreIncrement,
		SpeedLevels:    slices.Clone(tetris.DefaultSpeedLevels),
		TickUnit:       tetris.DefaultTickUnit,
	}
}

// Load reads the file at path on top of the defaults and validates the result.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("unable to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("unable to parse config %s: %w", path, err)
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("%w: stack must be at least 1x1, got %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if c.ScoreIncrement < 1 {
		return fmt.Errorf("%w: score increment must be positive, got %d", ErrInvalid, c.ScoreIncrement)
	}
	if !slices.IsSorted(c.SpeedLevels) {
		return fmt.Errorf("%w: speed levels must be ascending, got %v", ErrInvalid, c.SpeedLevels)
	}
	if c.TickUnit <= 0 {
		return fmt.Errorf("%w: tick unit must be positive, got %v", ErrInvalid, c.TickUnit)
	}
	if _, err := c.Library(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Library builds the shape library, the default one when no shapes are set.
func (c Config) Library() (*tetris.Library, error) {
	if len(c.Shapes) == 0 {
		return tetris.DefaultLibrary(), nil
	}
	shapes := make([]tetris.Shape, 0, len(c.Shapes))
	for _, s := range c.Shapes {
		shape, err := tetris.NewShape(s.Name, s.Art)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, shape)
	}
	return tetris.NewLibrary(shapes...)
}

// GameOptions turns the config into the options of a tetris.Game.
func (c Config) GameOptions() (tetris.GameOptions, error) {
	l, err := c.Library()
	if err != nil {
		return tetris.GameOptions{}, err
	}
	o := tetris.GameOptions{
		Engine: tetris.Options{
			Width:          c.Width,
			Height:         c.Height,
			ScoreIncrement: c.ScoreIncrement,
			SpeedLevels:    slices.Clone(c.SpeedLevels),
			Library:        l,
		},
		TickUnit: c.TickUnit,
	}
	if c.Seed != 0 {
		o.Engine.Rand = rand.New(rand.NewPCG(c.Seed, c.Seed))
	}
	return o, nil
}
