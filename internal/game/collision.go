package game

import "math"

// Circle is a hit circle centred on (X,Y).
type Circle struct {
	X, Y   float64
	Radius float64
}

// Rect is an axis-aligned box centred on (X,Y) with full extents W and H.
// Combatants are drawn centred on their position, so their hitbox is too.
type Rect struct {
	X, Y float64
	W, H float64
}

// Intersects is the circle-vs-AABB test. Every comparison is inclusive, so a
// circle that exactly touches an edge or corner is reported as colliding.
func Intersects(c Circle, r Rect) bool {
	distX := math.Abs(c.X - r.X)
	distY := math.Abs(c.Y - r.Y)
	halfW := r.W / 2
	halfH := r.H / 2

	if distX > halfW+c.Radius {
		return false
	}
	if distY > halfH+c.Radius {
		return false
	}

	// Centre inside one of the rect's slabs.
	if distX <= halfW {
		return true
	}
	if distY <= halfH {
		return true
	}

	dx := distX - halfW
	dy := distY - halfH
	return dx*dx+dy*dy <= c.Radius*c.Radius
}
