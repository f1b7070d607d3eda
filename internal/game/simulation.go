package game

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Status is the match state the host observes after each tick.
type Status int

const (
	StatusRunning Status = iota
	StatusOver           // player destroyed; the host decides what happens next
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusOver:
		return "over"
	default:
		return "unknown"
	}
}

// Simulation owns the player, the enemies and every projectile in flight.
// It is driven by one goroutine: Tick then Snapshot, once per frame.
type Simulation struct {
	cfg    Config
	bounds Bounds
	rng    *rand.Rand
	log    *SimLog

	player      *Combatant
	enemies     []*Combatant
	projectiles []*Projectile

	clock      float64 // sum of all accepted dt; the only time base
	spawnTimer float64
	tick       int
	nextID     int
	status     Status

	stats  MatchStats
	events []SimLogEntry
}

// Option customises a Simulation at construction.
type Option func(*Simulation)

// WithRand makes spawning and enemy fire jitter use rng.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulation) { s.rng = rng }
}

// WithSimLog records every event into sl as well as Snapshot.Events.
func WithSimLog(sl *SimLog) Option {
	return func(s *Simulation) { s.log = sl }
}

// New validates cfg and starts a match with the player centred in the arena.
func New(cfg Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{cfg: cfg, bounds: cfg.bounds()}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay randomness
	}
	s.Reset()
	return s, nil
}

// Reset starts a new match with the same configuration, RNG and log.
func (s *Simulation) Reset() {
	s.player = NewPlayer(s.bounds.W/2, s.bounds.H/2)
	s.enemies = nil
	s.projectiles = nil
	s.clock = 0
	s.spawnTimer = 0
	s.tick = 0
	s.nextID = 1
	s.status = StatusRunning
	s.stats = MatchStats{PeakScale: s.player.Scale()}
	s.events = s.events[:0]
}

func (s *Simulation) Player() *Combatant { return s.player }
func (s *Simulation) Enemies() []*Combatant { return s.enemies }
func (s *Simulation) Projectiles() []*Projectile { return s.projectiles }
func (s *Simulation) Clock() float64 { return s.clock }
func (s *Simulation) SpawnTimer() float64 { return s.spawnTimer }
func (s *Simulation) TickCount() int { return s.tick }
func (s *Simulation) Status() Status { return s.status }
func (s *Simulation) Over() bool { return s.status == StatusOver }
func (s *Simulation) Bounds() Bounds { return s.bounds }
func (s *Simulation) Config() Config { return s.cfg }
func (s *Simulation) Stats() MatchStats { return s.stats }

// Events returns the events recorded during the last tick.
func (s *Simulation) Events() []SimLogEntry { return s.events }

// SanitizeDelta clamps a frame delta: negative, NaN and infinite values
// become 0.
func SanitizeDelta(dt float64) float64 {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return 0
	}
	return dt
}

// Tick advances the match by dt time-units using the held actions in in.
// A zero dt (after clamping) and any tick after game over change nothing but
// the event list, which is cleared so hosts never replay the previous tick.
func (s *Simulation) Tick(dt float64, in Input) Status {
	s.events = s.events[:0]
	dt = SanitizeDelta(dt)
	if dt == 0 || s.status == StatusOver {
		return s.status
	}
	s.tick++
	s.clock += dt
	s.stats.Ticks = s.tick
	s.stats.SurvivalTime = s.clock

	// 1. PLAYER: movement and turret from the input snapshot.
	s.player.Update(in, nil)

	// 2. SPAWN: one enemy per interval, just outside the visible arena.
	s.spawnTimer += dt
	if s.spawnTimer > s.cfg.SpawnInterval {
		s.spawnEnemy()
		s.spawnTimer = 0
	}

	// 3. ENEMIES: seek and shoot. Shots land in the projectile list and fly
	// this tick.
	s.updateEnemies()

	// 4. PROJECTILES: advance, then drop the inactive ones.
	for _, p := range s.projectiles {
		p.Advance(s.bounds)
	}
	s.projectiles = sweepProjectiles(s.projectiles)

	// 5. COLLISIONS: enemy shots against the player, then player shots
	// against enemies.
	if s.resolveEnemyShots() {
		return s.status
	}
	s.resolvePlayerShots()

	// 6. PLAYER FIRE.
	if in.Held(ActionFire) {
		var fired bool
		s.projectiles, fired = s.player.Fire(s.projectiles, s.clock)
		if fired {
			s.stats.ShotsFired++
			s.recordVerbose(s.player, CatCombat, KeyFire,
				fmt.Sprintf("angle=%.2f", s.player.turretAngle), s.player.turretAngle)
		}
	}
	return s.status
}

// spawnEdge picks a spawn point 50px beyond a random arena edge.
func (s *Simulation) spawnEdge() (x, y float64) {
	if s.rng.Float64() < 0.5 {
		x = -spawnEdgeMargin
		if s.rng.Float64() >= 0.5 {
			x = s.bounds.W + spawnEdgeMargin
		}
		y = s.rng.Float64() * s.bounds.H
		return x, y
	}
	x = s.rng.Float64() * s.bounds.W
	y = -spawnEdgeMargin
	if s.rng.Float64() >= 0.5 {
		y = s.bounds.H + spawnEdgeMargin
	}
	return x, y
}

func (s *Simulation) spawnEnemy() *Combatant {
	x, y := s.spawnEdge()
	exp := s.rng.Intn(s.cfg.SpawnMaxExp)
	return s.AddEnemy(x, y, exp)
}

// AddEnemy places an enemy directly, bypassing the spawn timer. Spawning and
// test setups both go through here.
func (s *Simulation) AddEnemy(x, y float64, exp int) *Combatant {
	e := NewEnemy(s.nextID, x, y, exp)
	s.nextID++
	s.enemies = append(s.enemies, e)
	s.stats.Spawned++
	if len(s.enemies) > s.stats.PeakEnemies {
		s.stats.PeakEnemies = len(s.enemies)
	}
	s.record(e, CatSpawn, KeyEnemy,
		fmt.Sprintf("at (%.0f,%.0f) exp=%d scale=%.2f hp=%.0f", x, y, exp, e.Scale(), e.health), e.Scale())
	return e
}

func (s *Simulation) updateEnemies() {
	ai := AIContext{Target: s.player, Now: s.clock, Rand: s.rng, Fired: s.projectiles}
	for _, e := range s.enemies {
		before := len(ai.Fired)
		prevState := e.aiState
		e.Update(Input{}, &ai)
		if e.aiState != prevState {
			s.recordVerbose(e, CatAI, KeyStateChange,
				fmt.Sprintf("%s → %s", prevState, e.aiState), float64(e.aiState))
		}
		if len(ai.Fired) > before {
			s.stats.EnemyShotsFired++
			s.recordVerbose(e, CatCombat, KeyFire,
				fmt.Sprintf("angle=%.2f", e.turretAngle), e.turretAngle)
		}
	}
	s.projectiles = ai.Fired
}

// resolveEnemyShots applies enemy projectiles to the player. It returns true
// when the player died and the match is over.
func (s *Simulation) resolveEnemyShots() bool {
	body := s.player.Hitbox()
	for _, p := range s.projectiles {
		if !p.active || p.owner != RoleEnemy {
			continue
		}
		if !Intersects(p.Hitbox(), body) {
			continue
		}
		p.Deactivate()
		s.stats.EnemyShotsHit++
		s.stats.DamageTaken += math.Min(enemyShotDamage, s.player.health)
		dead := s.player.TakeDamage(enemyShotDamage)
		s.record(s.player, CatCombat, KeyPlayerHit,
			fmt.Sprintf("by E%d hp=%.1f", p.ownerID, s.player.health), s.player.health)
		if dead {
			s.status = StatusOver
			s.record(s.player, CatMatch, KeyGameOver,
				fmt.Sprintf("survived %.1fs kills=%d", s.clock/1000, s.stats.Kills), s.clock)
			return true
		}
	}
	return false
}

// resolvePlayerShots applies player projectiles to enemies. Each projectile
// hits at most the first live enemy it overlaps. Dead enemies stay in place,
// skipped, until the pass is done, then are compacted out.
func (s *Simulation) resolvePlayerShots() {
	killed := false
	for _, p := range s.projectiles {
		if !p.active || p.owner != RolePlayer {
			continue
		}
		hb := p.Hitbox()
		for _, e := range s.enemies {
			if e.health <= 0 || !Intersects(hb, e.Hitbox()) {
				continue
			}
			p.Deactivate()
			s.stats.ShotsHit++
			dmg := playerShotDamage * s.player.Scale()
			s.stats.DamageDealt += math.Min(dmg, e.health)
			if e.TakeDamage(dmg) {
				s.rewardKill(e, dmg)
				killed = true
			} else {
				s.record(e, CatCombat, KeyHit,
					fmt.Sprintf("by P dmg=%.1f hp=%.1f", dmg, e.health), dmg)
			}
			break
		}
	}
	if killed {
		s.enemies = sweepCombatants(s.enemies)
	}
}

// rewardKill grows and heals the player by the victim's size.
func (s *Simulation) rewardKill(e *Combatant, dmg float64) {
	reward := e.MaxHealth()
	prevScale := s.player.Scale()
	prevHealth := s.player.health

	s.player.GainExp(int(math.Round(reward)))
	s.player.Heal(reward * killHealFraction)

	s.stats.Kills++
	s.stats.KillExp += int(math.Round(reward))
	s.stats.Healed += s.player.health - prevHealth
	s.record(e, CatCombat, KeyKill,
		fmt.Sprintf("by P dmg=%.1f reward=%.0f", dmg, reward), reward)

	if sc := s.player.Scale(); sc != prevScale {
		if sc > s.stats.PeakScale {
			s.stats.PeakScale = sc
		}
		s.record(s.player, CatGrowth, KeyScale,
			fmt.Sprintf("%.2f → %.2f exp=%d", prevScale, sc, s.player.exp), sc)
	}
}

// sweepCombatants compacts cs in place, keeping live combatants in order.
func sweepCombatants(cs []*Combatant) []*Combatant {
	kept := cs[:0]
	for _, c := range cs {
		if c.health > 0 {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(cs); i++ {
		cs[i] = nil
	}
	return kept
}

func (s *Simulation) record(c *Combatant, category, key, value string, num float64) {
	s.emit(c, category, key, value, num, false)
}

// recordVerbose records high-volume events. They always reach Events but only
// reach the SimLog when it is verbose.
func (s *Simulation) recordVerbose(c *Combatant, category, key, value string, num float64) {
	s.emit(c, category, key, value, num, true)
}

func (s *Simulation) emit(c *Combatant, category, key, value string, num float64, verbose bool) {
	e := SimLogEntry{
		Tick:     s.tick,
		Label:    c.label,
		Role:     c.role.String(),
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   num,
	}
	s.events = append(s.events, e)
	if s.log != nil && (!verbose || s.log.Verbose()) {
		s.log.Append(e)
	}
}

// Snapshot copies the current state for a renderer.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:        s.tick,
		Clock:       s.clock,
		Status:      s.status,
		Bounds:      s.bounds,
		Player:      viewOf(s.player),
		Enemies:     make([]CombatantView, 0, len(s.enemies)),
		Projectiles: make([]ProjectileView, 0, len(s.projectiles)),
		Stats:       s.stats,
		Events:      append([]SimLogEntry(nil), s.events...),
	}
	for _, e := range s.enemies {
		snap.Enemies = append(snap.Enemies, viewOf(e))
	}
	for _, p := range s.projectiles {
		if !p.active {
			continue
		}
		snap.Projectiles = append(snap.Projectiles, ProjectileView{X: p.x, Y: p.y, Radius: p.radius, Owner: p.owner})
	}
	return snap
}
