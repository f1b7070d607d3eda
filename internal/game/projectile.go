package game

import "math"

// Projectile travels in a straight line at constant speed until it leaves the
// arena or hits something.
type Projectile struct {
	x, y      float64
	direction float64 // radians, fixed at creation
	speed     float64
	radius    float64
	owner     Role
	ownerID   int
	active    bool
}

// NewProjectile creates an active projectile at (x,y) heading along direction.
func NewProjectile(x, y, direction, radius float64, owner Role) *Projectile {
	return &Projectile{
		x:         x,
		y:         y,
		direction: direction,
		speed:     projectileSpeed,
		radius:    radius,
		owner:     owner,
		active:    true,
	}
}

// Advance moves the projectile one tick and deactivates it the moment its
// centre leaves the arena.
func (p *Projectile) Advance(b Bounds) {
	if !p.active {
		return
	}
	p.x += math.Cos(p.direction) * p.speed
	p.y += math.Sin(p.direction) * p.speed
	if !b.Contains(p.x, p.y) {
		p.active = false
	}
}

// Deactivate retires the projectile; it is dropped on the next sweep.
func (p *Projectile) Deactivate() { p.active = false }

// Active reports whether the projectile still flies.
func (p *Projectile) Active() bool { return p.active }

// Owner is the role of the combatant that fired it.
func (p *Projectile) Owner() Role { return p.owner }

func (p *Projectile) Position() (x, y float64) { return p.x, p.y }

func (p *Projectile) Radius() float64 { return p.radius }

// Hitbox returns the projectile as a collision circle.
func (p *Projectile) Hitbox() Circle {
	return Circle{X: p.x, Y: p.y, Radius: p.radius}
}

// sweepProjectiles compacts ps in place, keeping only active projectiles in
// their original order.
func sweepProjectiles(ps []*Projectile) []*Projectile {
	kept := ps[:0]
	for _, p := range ps {
		if p.active {
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(ps); i++ {
		ps[i] = nil
	}
	return kept
}
