package game

// CombatantView is everything a renderer needs to draw one tank.
type CombatantView struct {
	ID          int
	Label       string
	Role        Role
	X, Y        float64
	BodyAngle   float64
	TurretAngle float64
	Scale       float64
	Width       float64
	Height      float64
	Health      float64
	MaxHealth   float64
	HealthRatio float64
	Exp         int
	AIState     AIState

	TurretRadius float64
	BarrelLength float64
	BarrelWidth  float64
	TreadWidth   float64
}

// ShowHealthBar matches the reference look: enemies always show a bar, the
// player only once damaged.
func (v CombatantView) ShowHealthBar() bool {
	return v.Role == RoleEnemy || v.Health < v.MaxHealth
}

// HealthBar returns the bar's top-left corner and full size in arena space.
func (v CombatantView) HealthBar() (x, y, w, h float64) {
	return v.X - healthBarW/2, v.Y - v.Height/2 - healthBarLift, healthBarW, healthBarH
}

// ProjectileView is a drawable projectile.
type ProjectileView struct {
	X, Y   float64
	Radius float64
	Owner  Role
}

// Snapshot is a read-only copy of the simulation after a tick. Nothing in it
// aliases simulation state.
type Snapshot struct {
	Tick        int
	Clock       float64
	Status      Status
	Bounds      Bounds
	Player      CombatantView
	Enemies     []CombatantView
	Projectiles []ProjectileView
	Stats       MatchStats
	Events      []SimLogEntry // events recorded during the last tick
}

func viewOf(c *Combatant) CombatantView {
	s := c.Scale()
	return CombatantView{
		ID:           c.id,
		Label:        c.label,
		Role:         c.role,
		X:            c.x,
		Y:            c.y,
		BodyAngle:    c.bodyAngle,
		TurretAngle:  c.turretAngle,
		Scale:        s,
		Width:        c.Width(),
		Height:       c.Height(),
		Health:       c.health,
		MaxHealth:    c.MaxHealth(),
		HealthRatio:  c.HealthRatio(),
		Exp:          c.exp,
		AIState:      c.aiState,
		TurretRadius: turretRadius * s,
		BarrelLength: barrelLength * s,
		BarrelWidth:  barrelWidth * s,
		TreadWidth:   treadWidth,
	}
}
