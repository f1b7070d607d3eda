package game

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-behaviour reports (~10s at 60TPS).
const reportWindowTicks = 600

// SimReport is a snapshot of the arena at one tick.
type SimReport struct {
	Tick  int
	Clock float64

	PlayerHealth float64
	PlayerMax    float64
	PlayerScale  float64
	PlayerExp    int

	EnemiesAlive    int
	EnemiesIdle     int
	EnemiesClosing  int
	EnemiesEngaging int
	ThreatHealth    float64 // summed health of engaged enemies

	Projectiles       int
	EnemyProjectiles  int
	PlayerProjectiles int

	Kills int
}

// WindowReport averages the reports inside the window.
type WindowReport struct {
	FromTick    int
	ToTick      int
	SampleCount int

	AvgEnemiesAlive    float64
	AvgEnemiesEngaging float64
	AvgPlayerHealthPct float64
	AvgProjectiles     float64
	AvgThreatHealth    float64
	ScaleGain          float64 // player scale at the end minus at the start
	KillsInWindow      int
}

// SimReporter collects periodic reports from the simulation and can produce
// summaries over sliding time windows.
type SimReporter struct {
	history     []SimReport
	windowTicks int
}

// NewSimReporter creates a reporter with the given window size.
func NewSimReporter(windowTicks int) *SimReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &SimReporter{windowTicks: windowTicks}
}

// Collect gathers a report from a snapshot.
// Call this periodically (e.g. every 60 ticks / 1s).
func (r *SimReporter) Collect(snap Snapshot) {
	report := SimReport{
		Tick:         snap.Tick,
		Clock:        snap.Clock,
		PlayerHealth: snap.Player.Health,
		PlayerMax:    snap.Player.MaxHealth,
		PlayerScale:  snap.Player.Scale,
		PlayerExp:    snap.Player.Exp,
		EnemiesAlive: len(snap.Enemies),
		Projectiles:  len(snap.Projectiles),
		Kills:        snap.Stats.Kills,
	}
	for _, e := range snap.Enemies {
		switch e.AIState {
		case AIStateIdle:
			report.EnemiesIdle++
		case AIStateApproaching:
			report.EnemiesClosing++
			report.ThreatHealth += e.Health
		case AIStateEngaging:
			report.EnemiesEngaging++
			report.ThreatHealth += e.Health
		}
	}
	for _, p := range snap.Projectiles {
		if p.Owner == RoleEnemy {
			report.EnemyProjectiles++
		} else {
			report.PlayerProjectiles++
		}
	}

	r.history = append(r.history, report)

	// Prune old history beyond 2x window to prevent unbounded growth.
	maxKeep := r.windowTicks / 60 * 2
	if maxKeep < 100 {
		maxKeep = 100
	}
	if len(r.history) > maxKeep {
		r.history = r.history[len(r.history)-maxKeep:]
	}
}

// Latest returns the most recent report, or nil if none collected yet.
func (r *SimReporter) Latest() *SimReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// WindowSummary aggregates the reports within the last windowTicks.
func (r *SimReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}

	latestTick := r.history[len(r.history)-1].Tick
	cutoff := latestTick - r.windowTicks
	start := len(r.history) - 1
	for start > 0 && r.history[start-1].Tick >= cutoff {
		start--
	}
	window := r.history[start:]

	wr := &WindowReport{
		FromTick:    window[0].Tick,
		ToTick:      latestTick,
		SampleCount: len(window),
	}
	for _, rep := range window {
		wr.AvgEnemiesAlive += float64(rep.EnemiesAlive)
		wr.AvgEnemiesEngaging += float64(rep.EnemiesClosing + rep.EnemiesEngaging)
		if rep.PlayerMax > 0 {
			wr.AvgPlayerHealthPct += rep.PlayerHealth / rep.PlayerMax * 100
		}
		wr.AvgProjectiles += float64(rep.Projectiles)
		wr.AvgThreatHealth += rep.ThreatHealth
	}
	n := float64(len(window))
	wr.AvgEnemiesAlive /= n
	wr.AvgEnemiesEngaging /= n
	wr.AvgPlayerHealthPct /= n
	wr.AvgProjectiles /= n
	wr.AvgThreatHealth /= n
	wr.ScaleGain = window[len(window)-1].PlayerScale - window[0].PlayerScale
	wr.KillsInWindow = window[len(window)-1].Kills - window[0].Kills
	return wr
}

// Format renders the window summary as a short block of text.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "window: no samples\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "window T=%d..%d samples=%d\n", wr.FromTick, wr.ToTick, wr.SampleCount)
	fmt.Fprintf(&sb, "  enemies alive=%.1f engaged=%.1f threat_hp=%.0f\n",
		wr.AvgEnemiesAlive, wr.AvgEnemiesEngaging, wr.AvgThreatHealth)
	fmt.Fprintf(&sb, "  player hp=%.0f%% scale_gain=%+.2f kills=%d projectiles=%.1f\n",
		wr.AvgPlayerHealthPct, wr.ScaleGain, wr.KillsInWindow, wr.AvgProjectiles)
	return sb.String()
}
