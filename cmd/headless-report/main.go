package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/atotto/clipboard"
)

// finalMomentsTicks is how much log history is printed before a game over.
const finalMomentsTicks = 120

type runStats struct {
	runIndex int
	seed     int64

	firstSpawnTick  int
	firstKillTick   int
	firstHitTaken   int
	firstScaleTick  int
	gameOverTick    int
	stateChanges    int
	scaleUps        int
	playerHitEvents int

	stats         game.MatchStats
	outcome       game.MatchOutcomeReason
	windowSummary *game.WindowReport
	grade         game.PlayerGrade
	finalMoments  string
}

type options struct {
	runs          int
	ticks         int
	seedBase      int64
	seedStep      int64
	spawnInterval float64
	kite          bool
	copy          bool
}

func main() {
	var o options
	flag.IntVar(&o.runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&o.ticks, "ticks", 3600, "ticks per run")
	flag.Int64Var(&o.seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&o.seedStep, "seed-step", 1, "seed increment between runs")
	flag.Float64Var(&o.spawnInterval, "spawn-interval", 3000, "time-units between enemy spawns")
	flag.BoolVar(&o.kite, "kite", true, "autopilot backs away from close enemies")
	flag.BoolVar(&o.copy, "copy", false, "copy the report to the clipboard")
	flag.Parse()

	if err := o.validate(); err != nil {
		fmt.Println("error:", err)
		os.Exit(2)
	}

	var sb strings.Builder
	report(io.MultiWriter(os.Stdout, &sb), o)

	if o.copy {
		if err := clipboard.WriteAll(sb.String()); err != nil {
			fmt.Fprintln(os.Stderr, "copy report:", err)
		}
	}
}

func (o options) validate() error {
	switch {
	case o.runs <= 0:
		return errors.New("-runs must be > 0")
	case o.ticks <= 0:
		return errors.New("-ticks must be > 0")
	case o.spawnInterval <= 0:
		return errors.New("-spawn-interval must be > 0")
	}
	return nil
}

func report(w io.Writer, o options) []runStats {
	fmt.Fprintf(w, "=== Headless Arena Report ===\n")
	fmt.Fprintf(w, "runs=%d ticks=%d seed_base=%d seed_step=%d spawn_interval=%.0f kite=%t\n\n",
		o.runs, o.ticks, o.seedBase, o.seedStep, o.spawnInterval, o.kite)

	all := make([]runStats, 0, o.runs)
	for i := 0; i < o.runs; i++ {
		seed := o.seedBase + int64(i)*o.seedStep
		rs := runAutopilot(i+1, seed, o)
		all = append(all, rs)
		printRun(w, rs)
	}
	printAggregate(w, all)
	return all
}

func runAutopilot(runIndex int, seed int64, o options) runStats {
	ts := game.NewTestSim(
		game.WithSeed(seed),
		game.WithVerbose(true),
		game.WithSpawnInterval(o.spawnInterval),
		game.WithAutopilot(game.Autopilot{Kite: o.kite}),
	)
	ts.RunTicks(o.ticks)

	entries := ts.SimLog.Entries()
	overTick := firstTick(entries, game.CatMatch, game.KeyGameOver, "")
	return runStats{
		runIndex:        runIndex,
		seed:            seed,
		firstSpawnTick:  firstTick(entries, game.CatSpawn, game.KeyEnemy, ""),
		firstKillTick:   firstTick(entries, game.CatCombat, game.KeyKill, ""),
		firstHitTaken:   firstTick(entries, game.CatCombat, game.KeyPlayerHit, ""),
		firstScaleTick:  firstTick(entries, game.CatGrowth, game.KeyScale, ""),
		gameOverTick:    overTick,
		stateChanges:    ts.SimLog.Count(game.CatAI, game.KeyStateChange),
		scaleUps:        ts.SimLog.Count(game.CatGrowth, game.KeyScale),
		playerHitEvents: ts.SimLog.Count(game.CatCombat, game.KeyPlayerHit),
		stats:           ts.Sim.Stats(),
		outcome:         ts.Outcome(),
		windowSummary:   ts.Reporter.WindowSummary(),
		grade:           ts.PlayerGrade(),
		finalMoments:    finalMoments(ts.SimLog, overTick),
	}
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

// finalMoments returns the log leading up to the game over, or "" when the
// player survived.
func finalMoments(sl *game.SimLog, overTick int) string {
	if overTick < 0 {
		return ""
	}
	return sl.FormatRange(overTick-finalMomentsTicks, overTick)
}

func printRun(w io.Writer, rs runStats) {
	fmt.Fprintf(w, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprintf(w, "outcome=%s (%s) final_scale=%.2f health=%.0f%%\n",
		rs.outcome.Outcome, rs.outcome.Description, rs.outcome.FinalScale, rs.outcome.HealthPct)
	fmt.Fprintf(w, "phase_markers: first_spawn=%d first_hit_taken=%d first_kill=%d first_scale=%d game_over=%d\n",
		rs.firstSpawnTick, rs.firstHitTaken, rs.firstKillTick, rs.firstScaleTick, rs.gameOverTick)
	fmt.Fprintf(w, "event_totals: player_hit=%d scale=%d ai_state_change=%d\n",
		rs.playerHitEvents, rs.scaleUps, rs.stateChanges)
	fmt.Fprint(w, rs.stats.Summary())
	fmt.Fprint(w, rs.windowSummary.Format())
	fmt.Fprint(w, rs.grade.Format())
	if rs.finalMoments != "" {
		fmt.Fprintf(w, "final_moments (last %d ticks):\n%s", finalMomentsTicks, rs.finalMoments)
	}
	fmt.Fprintln(w)
}

type aggregate struct {
	runs         int
	outcomes     map[game.MatchOutcome]int
	avgKills     float64
	avgSpawned   float64
	avgAccuracy  float64
	avgScale     float64
	avgSurvival  float64 // seconds
	firstKill    string
	firstHit     string
	bestRun      int
	bestRunKills int
	avgScore     float64
	goodTraits   map[string]int
	badTraits    map[string]int
}

func aggregateRuns(all []runStats) aggregate {
	ag := aggregate{
		runs:       len(all),
		outcomes:   map[game.MatchOutcome]int{},
		bestRun:    -1,
		goodTraits: map[string]int{},
		badTraits:  map[string]int{},
	}
	var kills, spawned int
	var acc, scale, survival, score float64
	var killTicks, hitTicks []int
	for _, rs := range all {
		ag.outcomes[rs.outcome.Outcome]++
		kills += rs.stats.Kills
		spawned += rs.stats.Spawned
		acc += rs.stats.Accuracy()
		scale += rs.outcome.FinalScale
		survival += rs.stats.SurvivalTime / 1000
		score += rs.grade.Score
		for _, tr := range rs.grade.GoodTraits {
			ag.goodTraits[tr]++
		}
		for _, tr := range rs.grade.BadTraits {
			ag.badTraits[tr]++
		}
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
		if rs.firstHitTaken >= 0 {
			hitTicks = append(hitTicks, rs.firstHitTaken)
		}
		if rs.stats.Kills > ag.bestRunKills || ag.bestRun < 0 {
			ag.bestRun, ag.bestRunKills = rs.runIndex, rs.stats.Kills
		}
	}
	ag.avgKills = avg(kills, len(all))
	ag.avgSpawned = avg(spawned, len(all))
	if len(all) > 0 {
		n := float64(len(all))
		ag.avgAccuracy = acc / n
		ag.avgScale = scale / n
		ag.avgSurvival = survival / n
		ag.avgScore = score / n
	}
	ag.firstKill = avgTickString(killTicks)
	ag.firstHit = avgTickString(hitTicks)
	return ag
}

func printAggregate(w io.Writer, all []runStats) {
	ag := aggregateRuns(all)
	fmt.Fprintln(w, "=== Aggregate ===")
	fmt.Fprintf(w, "runs=%d outcomes: %s\n", ag.runs, formatOutcomes(ag.outcomes))
	fmt.Fprintf(w, "avg_per_run: kills=%.1f spawned=%.1f accuracy=%.0f%% final_scale=%.2f survival=%.1fs\n",
		ag.avgKills, ag.avgSpawned, ag.avgAccuracy*100, ag.avgScale, ag.avgSurvival)
	fmt.Fprintf(w, "phase_marker_avg_ticks: first_hit_taken=%s first_kill=%s\n", ag.firstHit, ag.firstKill)
	fmt.Fprintf(w, "avg_grade=%s (score=%.1f)\n", game.PerfLetterGrade(ag.avgScore), ag.avgScore)
	if len(ag.goodTraits) > 0 {
		fmt.Fprintf(w, "top_good: %s\n", game.PerfTopTraits(ag.goodTraits, 4))
	}
	if len(ag.badTraits) > 0 {
		fmt.Fprintf(w, "top_bad:  %s\n", game.PerfTopTraits(ag.badTraits, 4))
	}
	if ag.bestRun > 0 {
		fmt.Fprintf(w, "best_run=%d kills=%d\n", ag.bestRun, ag.bestRunKills)
	}
}

func formatOutcomes(counts map[game.MatchOutcome]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]game.MatchOutcome, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
