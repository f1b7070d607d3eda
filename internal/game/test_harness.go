package game

import (
	"math/rand"
)

// FrameDelta is one 60Hz frame in time-units.
const FrameDelta = 1000.0 / 60.0

// TestSim is a headless harness around Simulation used by tests and the
// headless report. It supports deterministic seeding, scripted input and
// structured logging.
type TestSim struct {
	Sim      *Simulation
	SimLog   *SimLog
	Reporter *SimReporter
	Perf     *PerfTracker

	cfg     Config
	rng     *rand.Rand
	dt      float64
	input   func(Snapshot) Input
	verbose bool

	setup []func(*Simulation)
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // arena, seed, timing, logging; applied first
	simOptActors                      // player and enemy placement; applied after the sim exists
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithArena sets the arena dimensions.
func WithArena(w, h float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.ArenaWidth = w
		ts.cfg.ArenaHeight = h
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.Seed = seed
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithVerbose enables per-shot and AI state logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.verbose = v
	}}
}

// WithSpawnInterval changes how often enemies appear.
func WithSpawnInterval(interval float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.SpawnInterval = interval
	}}
}

// WithoutSpawns pushes the spawn interval out of reach so only placed enemies exist.
func WithoutSpawns() SimOption {
	return WithSpawnInterval(1e12)
}

// WithFrameDelta sets the dt fed to every tick.
func WithFrameDelta(dt float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.dt = dt
	}}
}

// WithInput holds the same actions every tick.
func WithInput(in Input) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.input = func(Snapshot) Input { return in }
	}}
}

// WithAutopilot drives the player with an Autopilot.
func WithAutopilot(a Autopilot) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.input = a.Decide
	}}
}

// WithPlayerAt moves the player.
func WithPlayerAt(x, y float64) SimOption {
	return SimOption{simOptActors, func(ts *TestSim) {
		ts.setup = append(ts.setup, func(s *Simulation) {
			s.player.x, s.player.y = x, y
		})
	}}
}

// WithPlayerExp gives the player starting experience.
func WithPlayerExp(exp int) SimOption {
	return SimOption{simOptActors, func(ts *TestSim) {
		ts.setup = append(ts.setup, func(s *Simulation) {
			s.player.GainExp(exp)
		})
	}}
}

// WithPlayerHealth sets the player's current health, clamped to max health.
func WithPlayerHealth(hp float64) SimOption {
	return SimOption{simOptActors, func(ts *TestSim) {
		ts.setup = append(ts.setup, func(s *Simulation) {
			if hp > s.player.MaxHealth() {
				hp = s.player.MaxHealth()
			}
			s.player.health = hp
		})
	}}
}

// WithPlayerTurret sets the player's turret angle.
func WithPlayerTurret(angle float64) SimOption {
	return SimOption{simOptActors, func(ts *TestSim) {
		ts.setup = append(ts.setup, func(s *Simulation) {
			s.player.turretAngle = angle
		})
	}}
}

// WithEnemy places an enemy with the given experience.
func WithEnemy(x, y float64, exp int) SimOption {
	return SimOption{simOptActors, func(ts *TestSim) {
		ts.setup = append(ts.setup, func(s *Simulation) {
			s.AddEnemy(x, y, exp)
		})
	}}
}

// NewTestSim constructs a TestSim from the given options in two ordered passes:
//  1. Infrastructure (arena, seed, timing, input, logging)
//  2. Actors (player adjustments, placed enemies)
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		cfg: DefaultConfig(),
		rng: rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
		dt:  FrameDelta,
	}
	ts.cfg.Seed = 1
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.SimLog = NewSimLog(ts.verbose)
	ts.Reporter = NewSimReporter(reportWindowTicks)
	ts.Perf = &PerfTracker{}
	sim, err := New(ts.cfg, WithRand(ts.rng), WithSimLog(ts.SimLog))
	if err != nil {
		panic("test harness: " + err.Error())
	}
	ts.Sim = sim
	for _, o := range opts {
		if o.kind == simOptActors {
			o.fn(ts)
		}
	}
	for _, fn := range ts.setup {
		fn(ts.Sim)
	}
	return ts
}

// Player returns the player combatant.
func (ts *TestSim) Player() *Combatant { return ts.Sim.player }

// Enemies returns the live enemies.
func (ts *TestSim) Enemies() []*Combatant { return ts.Sim.enemies }

// Step runs exactly one tick with the configured input and dt.
func (ts *TestSim) Step() Status {
	in := Input{}
	if ts.input != nil {
		in = ts.input(ts.Sim.Snapshot())
	}
	st := ts.Sim.Tick(ts.dt, in)
	ts.Perf.Update(ts.Sim.Snapshot())
	if t := ts.Sim.tick; t > 0 && t%60 == 0 {
		ts.Reporter.Collect(ts.Sim.Snapshot())
	}
	return st
}

// RunTicks advances the simulation n ticks, stopping early on game over.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		if ts.Step() == StatusOver {
			return
		}
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Step()
		if predicate(ts) {
			return ts.Sim.tick
		}
		if ts.Sim.Over() {
			return -1
		}
	}
	return -1
}

// PlayerGrade grades the player's match so far.
func (ts *TestSim) PlayerGrade() PlayerGrade {
	return GradePlayer(ts.Perf, ts.Sim.Stats(), !ts.Sim.Over())
}

// Outcome grades the current state.
func (ts *TestSim) Outcome() MatchOutcomeReason {
	return DetermineMatchOutcome(ts.Sim.Snapshot())
}
