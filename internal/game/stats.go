package game

import (
	"fmt"
	"strings"
)

// MatchStats accumulates over one match and resets with the simulation.
type MatchStats struct {
	Ticks        int
	SurvivalTime float64 // simulation clock when the match ended, or now

	Spawned int
	Kills   int
	KillExp int // experience earned from kills

	ShotsFired      int
	ShotsHit        int
	EnemyShotsFired int
	EnemyShotsHit   int

	DamageDealt float64
	DamageTaken float64
	Healed      float64 // effective healing, after clamping

	PeakScale   float64
	PeakEnemies int
}

// Accuracy is the fraction of player shots that hit, or 0 before any shot.
func (m MatchStats) Accuracy() float64 {
	if m.ShotsFired == 0 {
		return 0
	}
	return float64(m.ShotsHit) / float64(m.ShotsFired)
}

// Summary returns a short multi-line summary suitable for logs or the clipboard.
func (m MatchStats) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Match summary at T=%d (%.1fs) ---\n", m.Ticks, m.SurvivalTime/1000)
	fmt.Fprintf(&sb, "kills=%d spawned=%d kill_exp=%d peak_scale=%.2f peak_enemies=%d\n",
		m.Kills, m.Spawned, m.KillExp, m.PeakScale, m.PeakEnemies)
	fmt.Fprintf(&sb, "shots=%d hits=%d accuracy=%.0f%%\n",
		m.ShotsFired, m.ShotsHit, m.Accuracy()*100)
	fmt.Fprintf(&sb, "enemy_shots=%d enemy_hits=%d\n", m.EnemyShotsFired, m.EnemyShotsHit)
	fmt.Fprintf(&sb, "damage_dealt=%.1f damage_taken=%.1f healed=%.1f\n",
		m.DamageDealt, m.DamageTaken, m.Healed)
	return sb.String()
}
