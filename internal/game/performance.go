package game

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Performance grading thresholds.
const (
	perfOutnumberedCount  = 3 // engaged enemies at once
	perfMinCombatTicks    = 30
	perfMinShots          = 5
	perfMinSurvivalTime   = 10000.0
	perfLowHealthFraction = 0.5
)

// ---------------------------------------------------------------------------
// PerfTracker: per-tick accumulator for the player
// ---------------------------------------------------------------------------

// PerfTracker accumulates per-tick situation counters for the player.
type PerfTracker struct {
	Ticks            int
	TicksEngaged     int // at least one enemy closing or engaging
	TicksOutnumbered int
	TicksLowHealth   int // engaged while below half health
	PeakEngaged      int
}

// Update folds one post-tick snapshot into the tracker.
func (pt *PerfTracker) Update(snap Snapshot) {
	pt.Ticks++
	engaged := 0
	for _, e := range snap.Enemies {
		if e.AIState == AIStateApproaching || e.AIState == AIStateEngaging {
			engaged++
		}
	}
	if engaged == 0 {
		return
	}
	pt.TicksEngaged++
	if engaged >= perfOutnumberedCount {
		pt.TicksOutnumbered++
	}
	if snap.Player.HealthRatio < perfLowHealthFraction {
		pt.TicksLowHealth++
	}
	if engaged > pt.PeakEngaged {
		pt.PeakEngaged = engaged
	}
}

// ---------------------------------------------------------------------------
// PlayerGrade: computed performance result
// ---------------------------------------------------------------------------

// PlayerGrade is the graded result of one match.
type PlayerGrade struct {
	Grade    string  // A+, A, B+, B, C+, C, D, F
	Score    float64 // 0-100
	Survived bool

	// Situation scores (0-100; -1 = not enough data to grade).
	AccuracyScore   float64
	AggressionScore float64
	TradeScore      float64
	ComposureScore  float64

	GoodTraits []string
	BadTraits  []string

	EngagedPct float64
}

// GradePlayer scores a match from its stats and tracker.
func GradePlayer(pt *PerfTracker, stats MatchStats, survived bool) PlayerGrade {
	g := PlayerGrade{
		Survived:        survived,
		AccuracyScore:   -1,
		AggressionScore: -1,
		TradeScore:      -1,
		ComposureScore:  -1,
		EngagedPct:      perfFrac(pt.TicksEngaged, pt.Ticks) * 100,
	}

	if stats.ShotsFired >= perfMinShots {
		g.AccuracyScore = perfClamp(stats.Accuracy() * 150)
	}
	if stats.SurvivalTime >= perfMinSurvivalTime {
		killsPerMin := float64(stats.Kills) / (stats.SurvivalTime / 60000)
		g.AggressionScore = perfClamp(killsPerMin * 25)
	}
	if total := stats.DamageDealt + stats.DamageTaken; total > 0 {
		g.TradeScore = perfClamp(stats.DamageDealt / total * 100)
	}
	if pt.TicksEngaged >= perfMinCombatTicks {
		g.ComposureScore = perfClamp(100 - perfFrac(pt.TicksLowHealth, pt.TicksEngaged)*100)
	}

	sum, n := 0.0, 0
	for _, s := range []float64{g.AccuracyScore, g.AggressionScore, g.TradeScore, g.ComposureScore} {
		if s >= 0 {
			sum += s
			n++
		}
	}
	if n > 0 {
		g.Score = sum / float64(n)
	}
	if !survived {
		g.Score -= 10
	}
	g.Score = perfClamp(g.Score)
	g.Grade = PerfLetterGrade(g.Score)
	g.GoodTraits, g.BadTraits = perfDetectTraits(pt, stats, survived)
	return g
}

// ---------------------------------------------------------------------------
// Trait detection
// ---------------------------------------------------------------------------

func perfDetectTraits(pt *PerfTracker, stats MatchStats, survived bool) (good, bad []string) {
	if stats.ShotsFired >= 10 && stats.Accuracy() >= 0.5 {
		good = append(good, "sharpshooter")
	}
	if stats.Kills >= 5 {
		good = append(good, "hunter")
	}
	if stats.PeakScale >= maxScale {
		good = append(good, "max_scale")
	}
	if pt.TicksEngaged >= perfMinCombatTicks && stats.DamageTaken == 0 {
		good = append(good, "untouched")
	}

	if stats.ShotsFired >= 20 && stats.Accuracy() < 0.2 {
		bad = append(bad, "spray_and_pray")
	}
	if pt.TicksEngaged >= perfMinCombatTicks && perfFrac(pt.TicksOutnumbered, pt.TicksEngaged) > 0.5 {
		bad = append(bad, "overwhelmed")
	}
	if stats.Kills == 0 && stats.Spawned >= 3 {
		bad = append(bad, "passive")
	}
	if !survived {
		bad = append(bad, "destroyed")
	}
	return good, bad
}

// Format returns a human-readable grade block.
func (g PlayerGrade) Format() string {
	var sb strings.Builder
	status := "survived"
	if !g.Survived {
		status = "destroyed"
	}
	fmt.Fprintf(&sb, "grade=%s score=%.1f [%s] engaged=%.0f%%\n", g.Grade, g.Score, status, g.EngagedPct)
	if len(g.GoodTraits) > 0 {
		fmt.Fprintf(&sb, "  Good: %s\n", strings.Join(g.GoodTraits, ", "))
	}
	if len(g.BadTraits) > 0 {
		fmt.Fprintf(&sb, "  Bad:  %s\n", strings.Join(g.BadTraits, ", "))
	}

	var scores []string
	if g.AccuracyScore >= 0 {
		scores = append(scores, fmt.Sprintf("Accuracy=%.0f", g.AccuracyScore))
	}
	if g.AggressionScore >= 0 {
		scores = append(scores, fmt.Sprintf("Aggression=%.0f", g.AggressionScore))
	}
	if g.TradeScore >= 0 {
		scores = append(scores, fmt.Sprintf("Trade=%.0f", g.TradeScore))
	}
	if g.ComposureScore >= 0 {
		scores = append(scores, fmt.Sprintf("Composure=%.0f", g.ComposureScore))
	}
	if len(scores) > 0 {
		fmt.Fprintf(&sb, "  Scores: %s\n", strings.Join(scores, "  "))
	}
	return sb.String()
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func perfFrac(num, denom int) float64 {
	if denom <= 0 {
		return 0
	}
	return float64(num) / float64(denom)
}

func perfClamp(s float64) float64 {
	return math.Max(0, math.Min(100, s))
}

// PerfLetterGrade maps a 0-100 score to a letter grade.
func PerfLetterGrade(score float64) string {
	switch {
	case score >= 93:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 78:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 62:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}

// PerfTopTraits renders the n most frequent traits as "name(count)".
func PerfTopTraits(counts map[string]int, n int) string {
	type kv struct {
		trait string
		count int
	}
	items := make([]kv, 0, len(counts))
	for k, v := range counts {
		items = append(items, kv{k, v})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].count != items[j].count {
			return items[i].count > items[j].count
		}
		return items[i].trait < items[j].trait
	})
	if len(items) > n {
		items = items[:n]
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s(%d)", it.trait, it.count)
	}
	return strings.Join(parts, ", ")
}
