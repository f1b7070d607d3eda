// Package hostlog forwards simulation events to a structured logger.
package hostlog

import (
	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/charmbracelet/log"
	uuid "github.com/satori/go.uuid"
)

// WithMatch tags a logger with a fresh match id so lines from one match can be
// told apart after a restart. A nil logger stays nil.
func WithMatch(l *log.Logger) (*log.Logger, string) {
	id := uuid.Must(uuid.NewV4()).String()[:8]
	if l == nil {
		return nil, id
	}
	return l.With("match", id), id
}

// Forward writes one log line per event. Kills, growth and the end of the
// match are logged at info; everything else at debug.
func Forward(l *log.Logger, events []game.SimLogEntry) {
	if l == nil {
		return
	}
	for _, e := range events {
		kv := []any{"tick", e.Tick, "label", e.Label, "detail", e.Value}
		switch e.Key {
		case game.KeyGameOver:
			l.Info("game over", kv...)
		case game.KeyKill:
			l.Info("enemy destroyed", kv...)
		case game.KeyScale:
			l.Info("player grew", append(kv, "scale", e.NumVal)...)
		case game.KeyEnemy:
			l.Debug("enemy spawned", append(kv, "scale", e.NumVal)...)
		default:
			l.Debug(e.Category+"."+e.Key, kv...)
		}
	}
}

// Match logs the final statistics of a match.
func Match(l *log.Logger, s game.MatchStats) {
	if l == nil {
		return
	}
	l.Info("match summary",
		"ticks", s.Ticks,
		"seconds", s.SurvivalTime/1000,
		"kills", s.Kills,
		"spawned", s.Spawned,
		"accuracy", s.Accuracy(),
		"peak_scale", s.PeakScale,
	)
}
