package main

import (
	"strings"
	"testing"

	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsValidate(t *testing.T) {
	ok := options{runs: 1, ticks: 10, spawnInterval: 3000}
	require.NoError(t, ok.validate())

	bad := ok
	bad.runs = 0
	assert.ErrorContains(t, bad.validate(), "-runs")

	bad = ok
	bad.ticks = -1
	assert.ErrorContains(t, bad.validate(), "-ticks")

	bad = ok
	bad.spawnInterval = 0
	assert.ErrorContains(t, bad.validate(), "-spawn-interval")
}

func TestFirstTick(t *testing.T) {
	entries := []game.SimLogEntry{
		{Tick: 3, Category: game.CatCombat, Key: game.KeyHit, Value: "dmg=50.0"},
		{Tick: 7, Category: game.CatCombat, Key: game.KeyKill, Value: "reward=100"},
		{Tick: 9, Category: game.CatCombat, Key: game.KeyKill, Value: "reward=120"},
	}
	assert.Equal(t, 7, firstTick(entries, game.CatCombat, game.KeyKill, ""))
	assert.Equal(t, 9, firstTick(entries, game.CatCombat, game.KeyKill, "120"))
	assert.Equal(t, -1, firstTick(entries, game.CatMatch, game.KeyGameOver, ""))
}

func TestFinalMoments(t *testing.T) {
	sl := game.NewSimLog(true)
	sl.Append(game.SimLogEntry{Tick: 10, Label: "E1", Category: game.CatSpawn, Key: game.KeyEnemy, Value: "early"})
	sl.Append(game.SimLogEntry{Tick: 200, Label: "P", Category: game.CatCombat, Key: game.KeyPlayerHit, Value: "by E1"})
	sl.Append(game.SimLogEntry{Tick: 250, Label: "P", Category: game.CatMatch, Key: game.KeyGameOver, Value: "destroyed"})

	assert.Empty(t, finalMoments(sl, -1))

	out := finalMoments(sl, 250)
	assert.NotContains(t, out, "early")
	assert.Contains(t, out, "by E1")
	assert.Contains(t, out, "destroyed")
}

func TestAggregateRuns(t *testing.T) {
	all := []runStats{
		{
			runIndex:      1,
			firstKillTick: 100,
			firstHitTaken: -1,
			stats:         game.MatchStats{Kills: 2, Spawned: 4, ShotsFired: 10, ShotsHit: 5, SurvivalTime: 60000},
			outcome:       game.MatchOutcomeReason{Outcome: game.OutcomeSurvived, FinalScale: 1.2},
			grade:         game.PlayerGrade{Score: 80, GoodTraits: []string{"sharpshooter"}},
		},
		{
			runIndex:      2,
			firstKillTick: -1,
			firstHitTaken: 50,
			stats:         game.MatchStats{Kills: 0, Spawned: 2, SurvivalTime: 20000},
			outcome:       game.MatchOutcomeReason{Outcome: game.OutcomeDestroyed, FinalScale: 1.0},
			grade:         game.PlayerGrade{Score: 20, BadTraits: []string{"destroyed"}},
		},
	}
	ag := aggregateRuns(all)
	assert.Equal(t, 2, ag.runs)
	assert.Equal(t, 1, ag.outcomes[game.OutcomeSurvived])
	assert.Equal(t, 1, ag.outcomes[game.OutcomeDestroyed])
	assert.InDelta(t, 1.0, ag.avgKills, 1e-9)
	assert.InDelta(t, 3.0, ag.avgSpawned, 1e-9)
	assert.InDelta(t, 0.25, ag.avgAccuracy, 1e-9)
	assert.InDelta(t, 1.1, ag.avgScale, 1e-9)
	assert.InDelta(t, 40.0, ag.avgSurvival, 1e-9)
	assert.Equal(t, "100.0", ag.firstKill)
	assert.Equal(t, "50.0", ag.firstHit)
	assert.Equal(t, 1, ag.bestRun)
	assert.Equal(t, 2, ag.bestRunKills)
	assert.InDelta(t, 50.0, ag.avgScore, 1e-9)
	assert.Equal(t, 1, ag.goodTraits["sharpshooter"])
	assert.Equal(t, 1, ag.badTraits["destroyed"])
}

func TestAggregateRuns_Empty(t *testing.T) {
	ag := aggregateRuns(nil)
	assert.Zero(t, ag.avgKills)
	assert.Equal(t, "n/a", ag.firstKill)
	assert.Equal(t, "none", formatOutcomes(ag.outcomes))
}

func TestFormatOutcomes_Ordered(t *testing.T) {
	got := formatOutcomes(map[game.MatchOutcome]int{
		game.OutcomeDominant:  1,
		game.OutcomeDestroyed: 3,
	})
	assert.Equal(t, "destroyed=3 dominant=1", got)
}

func TestReport_IsDeterministic(t *testing.T) {
	o := options{runs: 2, ticks: 600, seedBase: 7, seedStep: 3, spawnInterval: 500, kite: true}
	var a, b strings.Builder
	runsA := report(&a, o)
	report(&b, o)

	require.Len(t, runsA, 2)
	assert.Equal(t, int64(7), runsA[0].seed)
	assert.Equal(t, int64(10), runsA[1].seed)
	assert.Equal(t, a.String(), b.String())
	assert.Contains(t, a.String(), "--- Run 2 (seed=10) ---")
	assert.Contains(t, a.String(), "=== Aggregate ===")
	assert.GreaterOrEqual(t, runsA[0].firstSpawnTick, 0, "a 500 interval should spawn within 600 ticks")
}
