package game

import (
	"math"
	"testing"
)

func TestProjectile_StraightLineKinematics(t *testing.T) {
	const theta = 0.5
	b := Bounds{W: 10000, H: 10000}
	p := NewProjectile(100, 200, theta, 5, RolePlayer)
	for n := 1; n <= 50; n++ {
		p.Advance(b)
		x, y := p.Position()
		wantX := 100 + float64(n)*projectileSpeed*math.Cos(theta)
		wantY := 200 + float64(n)*projectileSpeed*math.Sin(theta)
		if math.Abs(x-wantX) > 1e-9 || math.Abs(y-wantY) > 1e-9 {
			t.Fatalf("after %d advances: got (%.6f,%.6f), want (%.6f,%.6f)", n, x, y, wantX, wantY)
		}
	}
	if !p.Active() {
		t.Fatal("projectile inside bounds should stay active")
	}
}

func TestProjectile_DeactivatesOnLeavingBounds(t *testing.T) {
	b := Bounds{W: 800, H: 600}
	p := NewProjectile(790, 300, 0, 5, RolePlayer)

	p.Advance(b) // x=800, still on the boundary
	if !p.Active() {
		t.Fatal("projectile exactly on the right edge should be active")
	}
	p.Advance(b) // x=810
	if p.Active() {
		t.Fatal("projectile past the right edge should be inactive")
	}
}

func TestProjectile_DeactivatesOnEachEdge(t *testing.T) {
	b := Bounds{W: 800, H: 600}
	cases := []struct {
		name  string
		x, y  float64
		angle float64
	}{
		{"left", 5, 300, math.Pi},
		{"right", 795, 300, 0},
		{"top", 400, 5, -math.Pi / 2},
		{"bottom", 400, 595, math.Pi / 2},
	}
	for _, tc := range cases {
		p := NewProjectile(tc.x, tc.y, tc.angle, 5, RoleEnemy)
		p.Advance(b)
		if p.Active() {
			x, y := p.Position()
			t.Fatalf("%s: expected inactive at (%.2f,%.2f)", tc.name, x, y)
		}
	}
}

func TestProjectile_InactiveDoesNotMove(t *testing.T) {
	p := NewProjectile(100, 100, 0, 5, RolePlayer)
	p.Deactivate()
	p.Advance(Bounds{W: 800, H: 600})
	if x, y := p.Position(); x != 100 || y != 100 {
		t.Fatalf("inactive projectile moved to (%.1f,%.1f)", x, y)
	}
}

func TestSweepProjectiles_KeepsActiveInOrder(t *testing.T) {
	a := NewProjectile(1, 0, 0, 1, RolePlayer)
	b := NewProjectile(2, 0, 0, 1, RolePlayer)
	c := NewProjectile(3, 0, 0, 1, RolePlayer)
	d := NewProjectile(4, 0, 0, 1, RolePlayer)
	b.Deactivate()
	d.Deactivate()

	kept := sweepProjectiles([]*Projectile{a, b, c, d})
	if len(kept) != 2 || kept[0] != a || kept[1] != c {
		t.Fatalf("expected [a c], got %d entries", len(kept))
	}
}
