package screen

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	windowBg     = color.RGBA{R: 12, G: 14, B: 12, A: 255}
	arenaBg      = color.RGBA{R: 34, G: 34, B: 34, A: 255}
	gridColor    = color.RGBA{R: 44, G: 48, B: 44, A: 255}
	treadColor   = color.RGBA{R: 51, G: 51, B: 51, A: 255}
	playerBody   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	playerTurret = color.RGBA{R: 0, G: 102, B: 0, A: 255}
	enemyBody    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	enemyTurret  = color.RGBA{R: 204, G: 0, B: 0, A: 255}
	barBack      = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	barFill      = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	playerShot   = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	enemyShot    = color.RGBA{R: 255, G: 165, B: 0, A: 255}
)

const gridSpacing = 50

// hudFace is the fixed-width face used for the HUD and overlays.
var hudFace = text.NewGoXFace(basicfont.Face7x13)

// drawArena renders the whole snapshot into the arena rectangle at (0,0).
func (a *App) drawArena(screen *ebiten.Image, snap game.Snapshot) {
	w, h := float32(snap.Bounds.W), float32(snap.Bounds.H)
	vector.FillRect(screen, 0, 0, w, h, arenaBg, false)
	drawGrid(screen, int(snap.Bounds.W), int(snap.Bounds.H), gridSpacing, gridColor)

	for _, e := range snap.Enemies {
		a.drawTank(screen, e)
	}
	for _, p := range snap.Projectiles {
		c := playerShot
		if p.Owner == game.RoleEnemy {
			c = enemyShot
		}
		vector.FillCircle(screen, float32(p.X), float32(p.Y), float32(p.Radius), c, true)
	}
	a.drawTank(screen, snap.Player)
	a.flashes.Draw(screen)

	for _, e := range snap.Enemies {
		drawHealthBar(screen, e)
	}
	drawHealthBar(screen, snap.Player)
}

// drawTank draws hull and treads rotated by the body angle, then the turret
// disc and the barrel rotated by the turret angle.
func (a *App) drawTank(screen *ebiten.Image, v game.CombatantView) {
	body, turret := playerBody, playerTurret
	if v.Role == game.RoleEnemy {
		body, turret = enemyBody, enemyTurret
	}
	hw, hh := v.Width/2, v.Height/2
	a.fillRotatedRect(screen, v.X, v.Y, v.BodyAngle, -hw, -hh, v.Width, v.Height, body)
	a.fillRotatedRect(screen, v.X, v.Y, v.BodyAngle, -hw-v.TreadWidth, -hh, v.TreadWidth, v.Height, treadColor)
	a.fillRotatedRect(screen, v.X, v.Y, v.BodyAngle, hw, -hh, v.TreadWidth, v.Height, treadColor)

	vector.FillCircle(screen, float32(v.X), float32(v.Y), float32(v.TurretRadius), turret, true)
	a.fillRotatedRect(screen, v.X, v.Y, v.TurretAngle, 0, -v.BarrelWidth/2, v.BarrelLength, v.BarrelWidth, turret)
}

// fillRotatedRect fills the rectangle (lx,ly,w,h), given in the local frame of
// a point (cx,cy) rotated by angle.
func (a *App) fillRotatedRect(screen *ebiten.Image, cx, cy, angle, lx, ly, w, h float64, c color.Color) {
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(lx, ly)
	op.GeoM.Rotate(angle)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(c)
	if a.pixel == nil {
		a.pixel = ebiten.NewImage(1, 1)
		a.pixel.Fill(color.White)
	}
	screen.DrawImage(a.pixel, &op)
}

func drawHealthBar(screen *ebiten.Image, v game.CombatantView) {
	if !v.ShowHealthBar() {
		return
	}
	x, y, w, h := v.HealthBar()
	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), barBack, false)
	vector.FillRect(screen, float32(x), float32(y), float32(w*v.HealthRatio), float32(h), barFill, false)
}

func drawGrid(screen *ebiten.Image, w, h, spacing int, c color.Color) {
	if spacing <= 0 {
		return
	}
	for x := 0; x <= w; x += spacing {
		xf := float32(x)
		vector.StrokeLine(screen, xf, 0, xf, float32(h), 1.0, c, false)
	}
	for y := 0; y <= h; y += spacing {
		yf := float32(y)
		vector.StrokeLine(screen, 0, yf, float32(w), yf, 1.0, c, false)
	}
}

// hudLines is the text block in the arena's top-left corner.
func (a *App) hudLines(snap game.Snapshot) []string {
	p := snap.Player
	lines := []string{
		fmt.Sprintf("EXP: %d", p.Exp),
		fmt.Sprintf("HP: %.0f/%.0f", p.Health, p.MaxHealth),
		fmt.Sprintf("SCALE: %.2f  KILLS: %d  ENEMIES: %d", p.Scale, snap.Stats.Kills, len(snap.Enemies)),
	}
	mode := speedLabel(a.simSpeed)
	if a.autopilot {
		mode += "  AUTOPILOT"
	}
	lines = append(lines, "SIM: "+mode)
	if a.showHelp {
		lines = append(lines,
			"WASD/arrows move  J/K turret  Space fire",
			"P pause  ,/. speed  R restart  C copy  F1 autopilot  H help",
		)
	}
	return lines
}

func speedLabel(speed float64) string {
	switch speed {
	case 0:
		return "PAUSED"
	case 1:
		return "1x"
	default:
		return fmt.Sprintf("%.1fx", speed)
	}
}

func (a *App) drawHUD(screen *ebiten.Image, snap game.Snapshot) {
	lines := a.hudLines(snap)
	const lineH = 16
	const padX, padY = 6, 4

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*7 + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	vector.FillRect(screen, 4, 4, boxW, boxH, color.RGBA{R: 6, G: 10, B: 6, A: 180}, false)
	vector.StrokeRect(screen, 4, 4, boxW, boxH, 1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)

	for i, line := range lines {
		drawText(screen, line, 4+padX, 4+padY+i*lineH, color.White)
	}

	if a.statusTimer > 0 {
		drawText(screen, a.status, 4+padX, int(4+boxH)+6, color.RGBA{R: 255, G: 240, B: 160, A: 255})
	}
}

// drawGameOver dims the arena and prints the match summary.
func (a *App) drawGameOver(screen *ebiten.Image, snap game.Snapshot) {
	w, h := float32(snap.Bounds.W), float32(snap.Bounds.H)
	vector.FillRect(screen, 0, 0, w, h, color.RGBA{A: 170}, false)

	lines := []string{"DESTROYED", ""}
	lines = append(lines, strings.Split(strings.TrimRight(snap.Stats.Summary(), "\n"), "\n")...)
	lines = append(lines, "", "R restart   C copy summary")

	y := int(h)/2 - len(lines)*16/2
	for i, l := range lines {
		c := color.Color(color.White)
		if i == 0 {
			c = enemyBody
		}
		drawText(screen, l, int(w)/2-len(l)*7/2, y+i*16, c)
	}
}

func drawText(screen *ebiten.Image, s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, hudFace, op)
}
