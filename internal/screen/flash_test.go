package screen

import (
	"math"
	"testing"

	"github.com/Garsondee/Tank-Arena/internal/game"
)

func TestFlashSet_SpawnAtTurretTip(t *testing.T) {
	snap := game.Snapshot{
		Player:  game.CombatantView{Label: "P", Role: game.RolePlayer, X: 100, Y: 100, TurretAngle: math.Pi / 2, BarrelLength: 35},
		Enemies: []game.CombatantView{{Label: "E4", Role: game.RoleEnemy, X: 0, Y: 0, BarrelLength: 70}},
	}
	var fs flashSet
	fs.Spawn([]game.SimLogEntry{
		{Label: "P", Key: game.KeyFire},
		{Label: "E4", Key: game.KeyFire},
		{Label: "E9", Key: game.KeyFire},
		{Label: "E4", Key: game.KeyHit},
	}, snap)

	if fs.Len() != 2 {
		t.Fatalf("expected 2 flashes, got %d", fs.Len())
	}
	p := fs.flashes[0]
	if math.Abs(p.x-100) > 1e-9 || math.Abs(p.y-135) > 1e-9 {
		t.Fatalf("player flash at (%.2f,%.2f), want (100,135)", p.x, p.y)
	}
	if e := fs.flashes[1]; e.x != 70 || e.role != game.RoleEnemy {
		t.Fatalf("enemy flash at x=%.2f role=%s", e.x, e.role)
	}
}

func TestFlashSet_AgesOut(t *testing.T) {
	var fs flashSet
	fs.flashes = append(fs.flashes, &muzzleFlash{})
	for i := 0; i < flashLifetime-1; i++ {
		fs.Age()
	}
	if fs.Len() != 1 {
		t.Fatal("flash should still be alive")
	}
	fs.Age()
	if fs.Len() != 0 {
		t.Fatal("flash should expire after its lifetime")
	}
}
