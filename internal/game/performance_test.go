package game

import (
	"math"
	"strings"
	"testing"
)

func snapWithEngaged(n int, healthRatio float64) Snapshot {
	snap := Snapshot{Player: CombatantView{HealthRatio: healthRatio}}
	for i := 0; i < n; i++ {
		snap.Enemies = append(snap.Enemies, CombatantView{AIState: AIStateEngaging})
	}
	snap.Enemies = append(snap.Enemies, CombatantView{AIState: AIStateIdle})
	return snap
}

func TestPerfTracker_CountsSituations(t *testing.T) {
	var pt PerfTracker
	pt.Update(snapWithEngaged(0, 1))
	pt.Update(snapWithEngaged(1, 1))
	pt.Update(snapWithEngaged(3, 0.4))
	if pt.Ticks != 3 || pt.TicksEngaged != 2 {
		t.Fatalf("expected 3 ticks 2 engaged, got %d/%d", pt.Ticks, pt.TicksEngaged)
	}
	if pt.TicksOutnumbered != 1 || pt.TicksLowHealth != 1 || pt.PeakEngaged != 3 {
		t.Fatalf("unexpected tracker %+v", pt)
	}
}

func TestGradePlayer_NoDataIsUngraded(t *testing.T) {
	g := GradePlayer(&PerfTracker{}, MatchStats{}, true)
	if g.AccuracyScore != -1 || g.AggressionScore != -1 || g.TradeScore != -1 || g.ComposureScore != -1 {
		t.Fatalf("expected all situation scores ungraded, got %+v", g)
	}
	if g.Score != 0 || g.Grade != "F" {
		t.Fatalf("expected F/0, got %s/%.1f", g.Grade, g.Score)
	}
}

func TestGradePlayer_StrongMatch(t *testing.T) {
	pt := &PerfTracker{Ticks: 3600, TicksEngaged: 1000}
	stats := MatchStats{
		ShotsFired:   40,
		ShotsHit:     30,
		Kills:        8,
		Spawned:      10,
		SurvivalTime: 60000,
		DamageDealt:  900,
		DamageTaken:  100,
		PeakScale:    maxScale,
	}
	g := GradePlayer(pt, stats, true)
	// accuracy 100, aggression 100 (8/min capped), trade 90, composure 100
	if math.Abs(g.Score-97.5) > eps {
		t.Fatalf("expected score 97.5, got %.2f", g.Score)
	}
	if g.Grade != "A+" {
		t.Fatalf("expected A+, got %s", g.Grade)
	}
	for _, want := range []string{"sharpshooter", "hunter", "max_scale"} {
		if !containsTrait(g.GoodTraits, want) {
			t.Fatalf("missing good trait %s in %v", want, g.GoodTraits)
		}
	}
	if len(g.BadTraits) != 0 {
		t.Fatalf("unexpected bad traits %v", g.BadTraits)
	}
}

func TestGradePlayer_DeathPenaltyAndBadTraits(t *testing.T) {
	pt := &PerfTracker{Ticks: 600, TicksEngaged: 400, TicksOutnumbered: 300, TicksLowHealth: 200}
	stats := MatchStats{ShotsFired: 30, ShotsHit: 3, Spawned: 4, SurvivalTime: 10000, DamageTaken: 100}
	g := GradePlayer(pt, stats, false)
	for _, want := range []string{"spray_and_pray", "overwhelmed", "passive", "destroyed"} {
		if !containsTrait(g.BadTraits, want) {
			t.Fatalf("missing bad trait %s in %v", want, g.BadTraits)
		}
	}
	// accuracy 15, aggression 0, trade 0, composure 50 → 16.25 - 10
	if math.Abs(g.Score-6.25) > eps {
		t.Fatalf("expected 6.25, got %.2f", g.Score)
	}
}

func TestGradePlayer_FormatListsScores(t *testing.T) {
	g := GradePlayer(&PerfTracker{Ticks: 10}, MatchStats{ShotsFired: 10, ShotsHit: 5}, true)
	out := g.Format()
	if !strings.Contains(out, "Accuracy=75") || !strings.Contains(out, "[survived]") {
		t.Fatalf("unexpected format:\n%s", out)
	}
	if strings.Contains(out, "Composure") {
		t.Fatalf("ungraded score should be omitted:\n%s", out)
	}
}

func TestPerfLetterGrade_Boundaries(t *testing.T) {
	cases := map[float64]string{100: "A+", 93: "A+", 92.9: "A", 78: "B+", 70: "B", 62: "C+", 55: "C", 45: "D", 44.9: "F"}
	for score, want := range cases {
		if got := PerfLetterGrade(score); got != want {
			t.Fatalf("PerfLetterGrade(%.1f) = %s, want %s", score, got, want)
		}
	}
}

func TestPerfTopTraits_OrdersByCountThenName(t *testing.T) {
	got := PerfTopTraits(map[string]int{"hunter": 2, "passive": 3, "destroyed": 2, "untouched": 1}, 3)
	if got != "passive(3), destroyed(2), hunter(2)" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestTestSim_TracksPerformance(t *testing.T) {
	ts := NewTestSim(WithoutSpawns(), WithEnemy(600, 300, 0))
	ts.RunTicks(60)
	if ts.Perf.Ticks != ts.Sim.TickCount() {
		t.Fatalf("tracker saw %d ticks, sim ran %d", ts.Perf.Ticks, ts.Sim.TickCount())
	}
	if ts.Perf.TicksEngaged == 0 {
		t.Fatal("enemy at 200 should count as engaged")
	}
	g := ts.PlayerGrade()
	if g.Survived != !ts.Sim.Over() {
		t.Fatal("grade survival should follow the match status")
	}
}

func containsTrait(traits []string, want string) bool {
	for _, t := range traits {
		if t == want {
			return true
		}
	}
	return false
}
