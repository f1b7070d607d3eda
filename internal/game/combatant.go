package game

import (
	"fmt"
	"math"
	"math/rand"
)

// Role distinguishes the player tank from AI tanks. It is fixed at creation.
type Role int

const (
	RolePlayer Role = iota
	RoleEnemy
)

func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// AIState is the enemy's implicit behaviour state, derived from range each tick.
type AIState int

const (
	AIStateIdle        AIState = iota // out of engagement range
	AIStateApproaching                // closing to stop distance, firing
	AIStateEngaging                   // holding at stop distance, firing
)

func (s AIState) String() string {
	switch s {
	case AIStateIdle:
		return "idle"
	case AIStateApproaching:
		return "approaching"
	case AIStateEngaging:
		return "engaging"
	default:
		return "unknown"
	}
}

// Combatant is a tank, either player-driven or AI-driven.
type Combatant struct {
	id    int
	label string
	role  Role

	x, y        float64
	bodyAngle   float64
	turretAngle float64

	health float64
	exp    int

	lastShot float64
	hasFired bool

	aiState AIState
}

// AIContext carries what an enemy needs to run its policy for one tick.
// Projectiles fired during the update are appended to Fired.
type AIContext struct {
	Target *Combatant
	Now    float64
	Rand   *rand.Rand
	Fired  []*Projectile
}

// NewPlayer creates the player tank at full health with no experience.
func NewPlayer(x, y float64) *Combatant {
	c := &Combatant{label: "P", role: RolePlayer, x: x, y: y}
	c.health = c.MaxHealth()
	return c
}

// NewEnemy creates an AI tank. Starting experience goes through GainExp so the
// tank's size is set the same way it grows, then health is topped up.
func NewEnemy(id int, x, y float64, exp int) *Combatant {
	c := &Combatant{id: id, label: fmt.Sprintf("E%d", id), role: RoleEnemy, x: x, y: y}
	c.GainExp(exp)
	c.health = c.MaxHealth()
	return c
}

// ScaleForExp is the size multiplier for a given experience.
func ScaleForExp(exp int) float64 {
	if exp < 0 {
		exp = 0
	}
	return math.Min(1+float64(exp)/expPerScale, maxScale)
}

func (c *Combatant) ID() int { return c.id }
func (c *Combatant) Label() string { return c.label }
func (c *Combatant) Role() Role { return c.role }
func (c *Combatant) Position() (x, y float64) { return c.x, c.y }
func (c *Combatant) BodyAngle() float64 { return c.bodyAngle }
func (c *Combatant) TurretAngle() float64 { return c.turretAngle }
func (c *Combatant) Health() float64 { return c.health }
func (c *Combatant) Exp() int { return c.exp }
func (c *Combatant) AIState() AIState { return c.aiState }

// Scale is derived from experience on every call; it is never stored.
func (c *Combatant) Scale() float64 { return ScaleForExp(c.exp) }

func (c *Combatant) MaxHealth() float64 { return baseMaxHealth * c.Scale() }
func (c *Combatant) Width() float64 { return baseBodySize * c.Scale() }
func (c *Combatant) Height() float64 { return baseBodySize * c.Scale() }

// HealthRatio is health/maxHealth in [0,1].
func (c *Combatant) HealthRatio() float64 {
	return clamp01(c.health / c.MaxHealth())
}

// Hitbox is the body rectangle, centred on the tank's position. Body rotation
// is not applied to the hitbox.
func (c *Combatant) Hitbox() Rect {
	return Rect{X: c.x, Y: c.y, W: c.Width(), H: c.Height()}
}

// TakeDamage subtracts amount from health and reports whether the tank is dead.
// The caller decides what death means.
func (c *Combatant) TakeDamage(amount float64) bool {
	if amount > 0 {
		c.health = math.Max(c.health-amount, 0)
	}
	return c.health <= 0
}

// Heal adds amount to health, clamped to max health.
func (c *Combatant) Heal(amount float64) {
	if amount <= 0 {
		return
	}
	c.health = math.Min(c.health+amount, c.MaxHealth())
}

// GainExp adds experience. Max health grows with it but current health does not.
func (c *Combatant) GainExp(amount int) {
	if amount <= 0 {
		return
	}
	c.exp += amount
}

// Muzzle is the turret tip, where new projectiles appear.
func (c *Combatant) Muzzle() (x, y float64) {
	reach := barrelLength * c.Scale()
	return c.x + math.Cos(c.turretAngle)*reach, c.y + math.Sin(c.turretAngle)*reach
}

// reloaded reports whether more than reloadTime+extra has passed since the
// last shot. A tank that has never fired is always reloaded.
func (c *Combatant) reloaded(now, extra float64) bool {
	if !c.hasFired {
		return true
	}
	return now-c.lastShot > reloadTime+extra
}

// Fire appends a projectile to out if the reload has elapsed.
func (c *Combatant) Fire(out []*Projectile, now float64) ([]*Projectile, bool) {
	if !c.reloaded(now, 0) {
		return out, false
	}
	return c.shoot(out, now), true
}

func (c *Combatant) shoot(out []*Projectile, now float64) []*Projectile {
	mx, my := c.Muzzle()
	p := NewProjectile(mx, my, c.turretAngle, projectileRadius*c.Scale(), c.role)
	p.ownerID = c.id
	c.lastShot = now
	c.hasFired = true
	return append(out, p)
}

// Update runs one tick of behaviour. Players drive from input; enemies run
// their seek-and-shoot policy against ai.Target and ignore input.
func (c *Combatant) Update(in Input, ai *AIContext) {
	switch c.role {
	case RoleEnemy:
		if ai != nil && ai.Target != nil {
			c.seekAndShoot(ai)
		}
	default:
		c.drive(in)
	}
}

// drive applies held movement and turret keys. Both are per tick, not per
// unit of time.
func (c *Combatant) drive(in Input) {
	if in.Held(ActionMoveUp) {
		c.y -= combatantSpeed
	}
	if in.Held(ActionMoveDown) {
		c.y += combatantSpeed
	}
	if in.Held(ActionMoveLeft) {
		c.x -= combatantSpeed
	}
	if in.Held(ActionMoveRight) {
		c.x += combatantSpeed
	}
	if in.Held(ActionTurretLeft) {
		c.turretAngle -= turretTurnRate
	}
	if in.Held(ActionTurretRight) {
		c.turretAngle += turretTurnRate
	}
}

// seekAndShoot: outside the engagement radius do nothing. Inside it, aim
// straight at the target, close in until stop distance, and fire whenever the
// jittered reload allows.
func (c *Combatant) seekAndShoot(ai *AIContext) {
	dx := ai.Target.x - c.x
	dy := ai.Target.y - c.y
	dist := math.Sqrt(dx*dx + dy*dy)

	if dist > engageRadius {
		c.aiState = AIStateIdle
		return
	}

	angle := math.Atan2(dy, dx)
	c.turretAngle = angle

	if dist > stopDistance {
		step := combatantSpeed * enemySpeedScale
		c.x += math.Cos(angle) * step
		c.y += math.Sin(angle) * step
		c.bodyAngle = angle
		c.aiState = AIStateApproaching
	} else {
		c.aiState = AIStateEngaging
	}

	jitter := 0.0
	if ai.Rand != nil {
		jitter = ai.Rand.Float64() * enemyFireJitter
	}
	if c.reloaded(ai.Now, jitter) {
		ai.Fired = c.shoot(ai.Fired, ai.Now)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
