package game

import "math"

const (
	autopilotFireCone   = 0.08  // radians off target still worth a shot
	autopilotKiteRange  = 180.0 // back away from enemies closer than this
	autopilotHomeRadius = 120.0 // drift back toward centre beyond this
)

// Autopilot is a scripted player used by headless runs and the demo mode. It
// only ever produces an Input, so it drives the player through exactly the same
// path as a human.
type Autopilot struct {
	// Kite makes the autopilot back away from close enemies.
	Kite bool
}

// Decide picks the held actions for the next tick from a snapshot.
func (a Autopilot) Decide(snap Snapshot) Input {
	var in Input
	p := snap.Player

	target, dist, ok := nearestEnemy(p, snap.Enemies)
	if ok {
		want := math.Atan2(target.Y-p.Y, target.X-p.X)
		diff := angleDiff(want, p.TurretAngle)
		switch {
		case diff > turretTurnRate/2:
			in.Set(ActionTurretRight, true)
		case diff < -turretTurnRate/2:
			in.Set(ActionTurretLeft, true)
		}
		if math.Abs(diff) <= autopilotFireCone && dist <= engageRadius+target.Width {
			in.Set(ActionFire, true)
		}
	}

	// Movement: kite away from a close enemy, otherwise hold near the centre.
	var mx, my float64
	if a.Kite && ok && dist < autopilotKiteRange {
		mx, my = p.X-target.X, p.Y-target.Y
	} else {
		cx, cy := snap.Bounds.W/2, snap.Bounds.H/2
		if math.Hypot(cx-p.X, cy-p.Y) > autopilotHomeRadius {
			mx, my = cx-p.X, cy-p.Y
		}
	}
	if mx > 1 {
		in.Set(ActionMoveRight, true)
	} else if mx < -1 {
		in.Set(ActionMoveLeft, true)
	}
	if my > 1 {
		in.Set(ActionMoveDown, true)
	} else if my < -1 {
		in.Set(ActionMoveUp, true)
	}
	return in
}

func nearestEnemy(p CombatantView, enemies []CombatantView) (CombatantView, float64, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i, e := range enemies {
		d := math.Hypot(e.X-p.X, e.Y-p.Y)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return CombatantView{}, 0, false
	}
	return enemies[best], bestDist, true
}

// angleDiff returns want-have wrapped into (-π, π].
func angleDiff(want, have float64) float64 {
	d := math.Mod(want-have, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
