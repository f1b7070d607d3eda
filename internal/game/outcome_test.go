package game

import "testing"

func TestDetermineMatchOutcome(t *testing.T) {
	cases := []struct {
		name string
		snap Snapshot
		want MatchOutcome
		desc string
	}{
		{"fresh", Snapshot{Player: CombatantView{Scale: 1, HealthRatio: 1}}, OutcomeInconclusive, "inconclusive_no_kills"},
		{"dead_no_kills", Snapshot{Status: StatusOver}, OutcomeDestroyed, "destroyed_without_kills"},
		{"dead_with_kills", Snapshot{Status: StatusOver, Stats: MatchStats{Kills: 3}}, OutcomeDestroyed, "destroyed_after_kills"},
		{"max_scale", Snapshot{Player: CombatantView{Scale: 3, HealthRatio: 0.1}, Stats: MatchStats{Kills: 9}}, OutcomeDominant, "survived_at_max_scale"},
		{"healthy", Snapshot{Player: CombatantView{Scale: 1.4, HealthRatio: 0.8}, Stats: MatchStats{Kills: 2}}, OutcomeSurvived, "survived_healthy"},
		{"damaged", Snapshot{Player: CombatantView{Scale: 1.4, HealthRatio: 0.2}, Stats: MatchStats{Kills: 2}}, OutcomeSurvived, "survived_damaged"},
	}
	for _, tc := range cases {
		r := DetermineMatchOutcome(tc.snap)
		if r.Outcome != tc.want || r.Description != tc.desc {
			t.Fatalf("%s: got %s/%s, want %s/%s", tc.name, r.Outcome, r.Description, tc.want, tc.desc)
		}
	}
}

func TestTestSim_OutcomeAfterDeath(t *testing.T) {
	ts := NewTestSim(WithoutSpawns(), WithPlayerHealth(5))
	ts.Sim.projectiles = append(ts.Sim.projectiles, NewProjectile(370, 300, 0, 5, RoleEnemy))
	ts.Step()
	if got := ts.Outcome(); got.Outcome != OutcomeDestroyed {
		t.Fatalf("expected destroyed, got %s", got.Outcome)
	}
}
