package screen

import (
	"image/color"
	"math"

	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const flashLifetime = 4 // frames a muzzle flash persists

// muzzleFlash is a short-lived burst at a turret tip.
type muzzleFlash struct {
	x, y  float64
	angle float64 // firing direction
	role  game.Role
	age   int
}

// flashSet owns the live muzzle flashes.
type flashSet struct {
	flashes []*muzzleFlash
}

// Spawn adds a flash for every fire event, placed at the shooter's turret tip
// in snap. Shooters no longer in snap are skipped.
func (fs *flashSet) Spawn(events []game.SimLogEntry, snap game.Snapshot) {
	for _, e := range events {
		if e.Key != game.KeyFire {
			continue
		}
		v, ok := findCombatant(snap, e.Label)
		if !ok {
			continue
		}
		fs.flashes = append(fs.flashes, &muzzleFlash{
			x:     v.X + math.Cos(v.TurretAngle)*v.BarrelLength,
			y:     v.Y + math.Sin(v.TurretAngle)*v.BarrelLength,
			angle: v.TurretAngle,
			role:  v.Role,
		})
	}
}

// Age advances and prunes flashes.
func (fs *flashSet) Age() {
	kept := fs.flashes[:0]
	for _, f := range fs.flashes {
		f.age++
		if f.age < flashLifetime {
			kept = append(kept, f)
		}
	}
	for i := len(kept); i < len(fs.flashes); i++ {
		fs.flashes[i] = nil
	}
	fs.flashes = kept
}

func (fs *flashSet) Clear() { fs.flashes = fs.flashes[:0] }

func (fs *flashSet) Len() int { return len(fs.flashes) }

// Draw renders every flash.
func (fs *flashSet) Draw(screen *ebiten.Image) {
	for _, f := range fs.flashes {
		progress := float64(f.age) / float64(flashLifetime)
		alpha := uint8(255 * (1.0 - progress))

		sx, sy := float32(f.x), float32(f.y)

		glowR := float32(10.0) * float32(1.0-progress*0.6)
		var glowCol color.RGBA
		if f.role == game.RolePlayer {
			glowCol = color.RGBA{R: 255, G: 230, B: 60, A: uint8(float64(alpha) * 0.3)}
		} else {
			glowCol = color.RGBA{R: 255, G: 140, B: 30, A: uint8(float64(alpha) * 0.3)}
		}
		vector.FillCircle(screen, sx, sy, glowR, glowCol, false)

		coreR := float32(4) * float32(1.0-progress*0.5)
		vector.FillCircle(screen, sx, sy, coreR, color.RGBA{R: 255, G: 255, B: 220, A: alpha}, false)

		lineLen := 14.0 * (1.0 - progress*0.7)
		ex := float32(f.x + math.Cos(f.angle)*lineLen)
		ey := float32(f.y + math.Sin(f.angle)*lineLen)
		vector.StrokeLine(screen, sx, sy, ex, ey, 1.5,
			color.RGBA{R: 255, G: 240, B: 160, A: uint8(float64(alpha) * 0.7)}, false)
	}
}

func findCombatant(snap game.Snapshot, label string) (game.CombatantView, bool) {
	if snap.Player.Label == label {
		return snap.Player, true
	}
	for _, e := range snap.Enemies {
		if e.Label == label {
			return e, true
		}
	}
	return game.CombatantView{}, false
}
