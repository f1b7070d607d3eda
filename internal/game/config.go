package game

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config holds the per-match settings a host may change.
// Gameplay constants that define the feel of the game live in tuning.go.
type Config struct {
	ArenaWidth    float64
	ArenaHeight   float64
	SpawnInterval float64 // time-units between enemy spawns
	SpawnMaxExp   int     // spawned enemies get exp in [0, SpawnMaxExp)
	Seed          int64   // 0 picks a time-based seed
}

// DefaultConfig returns the reference 800x600 arena.
func DefaultConfig() Config {
	return Config{
		ArenaWidth:    defaultArenaWidth,
		ArenaHeight:   defaultArenaHeight,
		SpawnInterval: defaultSpawnInterval,
		SpawnMaxExp:   defaultSpawnMaxExp,
	}
}

// Validate reports the first unusable field.
func (c Config) Validate() error {
	if !(c.ArenaWidth > 0) || math.IsInf(c.ArenaWidth, 0) {
		return fmt.Errorf("%w: arena width %v", ErrInvalidConfig, c.ArenaWidth)
	}
	if !(c.ArenaHeight > 0) || math.IsInf(c.ArenaHeight, 0) {
		return fmt.Errorf("%w: arena height %v", ErrInvalidConfig, c.ArenaHeight)
	}
	if !(c.SpawnInterval > 0) {
		return fmt.Errorf("%w: spawn interval %v", ErrInvalidConfig, c.SpawnInterval)
	}
	if c.SpawnMaxExp <= 0 {
		return fmt.Errorf("%w: spawn max exp %d", ErrInvalidConfig, c.SpawnMaxExp)
	}
	return nil
}

// Bounds is the visible arena rectangle [0,W]x[0,H].
type Bounds struct {
	W, H float64
}

// Contains reports whether (x,y) lies inside the closed rectangle.
func (b Bounds) Contains(x, y float64) bool {
	return x >= 0 && x <= b.W && y >= 0 && y <= b.H
}

func (c Config) bounds() Bounds {
	return Bounds{W: c.ArenaWidth, H: c.ArenaHeight}
}
