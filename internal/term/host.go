// Package term is a terminal host for the arena. Terminals report key presses
// but not releases, so a key counts as held for holdWindow after its last
// press or auto-repeat.
package term

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Garsondee/Tank-Arena/internal/config"
	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/Garsondee/Tank-Arena/internal/hostlog"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
)

const (
	holdWindow    = 150 * time.Millisecond
	frameInterval = 16 * time.Millisecond
	maxFrameDelta = 100.0
	hudRows       = 2
)

var (
	stylePlayer      = tcell.StyleDefault.Foreground(tcell.ColorLime)
	stylePlayerGun   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleEnemy       = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleEnemyGun    = tcell.StyleDefault.Foreground(tcell.ColorMaroon)
	stylePlayerShot  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleEnemyShot   = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleHUD         = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHUDAlert    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleArenaBorder = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
)

var runeActions = map[rune]game.Action{
	'w': game.ActionMoveUp,
	's': game.ActionMoveDown,
	'a': game.ActionMoveLeft,
	'd': game.ActionMoveRight,
	'j': game.ActionTurretLeft,
	'k': game.ActionTurretRight,
	' ': game.ActionFire,
}

var keyActions = map[tcell.Key]game.Action{
	tcell.KeyUp:    game.ActionMoveUp,
	tcell.KeyDown:  game.ActionMoveDown,
	tcell.KeyLeft:  game.ActionMoveLeft,
	tcell.KeyRight: game.ActionMoveRight,
}

// Host owns a tcell screen and one simulation.
type Host struct {
	screen tcell.Screen
	sim    *game.Simulation
	snap   game.Snapshot
	base   *log.Logger
	logger *log.Logger // base tagged with the current match id

	held      map[game.Action]time.Time // last press per action
	last      time.Time
	paused    bool
	autopilot bool
	pilot     game.Autopilot
	clip      func(string) error
	status    string
}

// New builds a host on an initialised screen.
func New(screen tcell.Screen, cfg config.Config, logger *log.Logger) (*Host, error) {
	sim, err := game.New(cfg.Game)
	if err != nil {
		return nil, fmt.Errorf("new simulation: %w", err)
	}
	h := &Host{
		screen: screen,
		sim:    sim,
		snap:   sim.Snapshot(),
		base:   logger,
		held:   map[game.Action]time.Time{},
		pilot:  game.Autopilot{Kite: true},
		clip:   clipboard.WriteAll,
	}
	h.logger, _ = hostlog.WithMatch(logger)
	if h.logger != nil {
		h.logger.Info("match started", "seed", cfg.Game.Seed)
	}
	return h, nil
}

// Run drives the match until ctx is cancelled or the user quits.
func (h *Host) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !h.HandleEvent(ev, time.Now()) {
				hostlog.Match(h.logger, h.snap.Stats)
				return nil
			}
		case now := <-ticker.C:
			h.Frame(now)
		}
	}
}

// HandleEvent applies one terminal event. It returns false when the user asked
// to quit.
func (h *Host) HandleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyF1:
			h.autopilot = !h.autopilot
			return true
		case tcell.KeyRune:
			return h.handleRune(ev.Rune(), now)
		}
		if a, ok := keyActions[ev.Key()]; ok {
			h.held[a] = now
		}
	case *tcell.EventResize:
		h.screen.Sync()
	}
	return true
}

func (h *Host) handleRune(r rune, now time.Time) bool {
	switch r {
	case 'q':
		return false
	case 'p':
		h.paused = !h.paused
	case 'r':
		h.sim.Reset()
		h.snap = h.sim.Snapshot()
		h.held = map[game.Action]time.Time{}
		h.logger, _ = hostlog.WithMatch(h.base)
		h.status = "restarted"
		if h.logger != nil {
			h.logger.Info("match restarted")
		}
	case 'c':
		if err := h.clip(h.snap.Stats.Summary()); err != nil {
			h.status = "clipboard unavailable"
		} else {
			h.status = "summary copied"
		}
	default:
		if a, ok := runeActions[r]; ok {
			h.held[a] = now
		}
	}
	return true
}

// input returns the actions pressed within holdWindow of now.
func (h *Host) input(now time.Time) game.Input {
	var in game.Input
	for a, at := range h.held {
		if now.Sub(at) <= holdWindow {
			in.Set(a, true)
		}
	}
	return in
}

// Frame advances one tick using the wall time since the previous frame and
// redraws.
func (h *Host) Frame(now time.Time) {
	dt := game.FrameDelta
	if !h.last.IsZero() {
		dt = math.Min(float64(now.Sub(h.last))/float64(time.Millisecond), maxFrameDelta)
	}
	h.last = now

	if !h.paused {
		in := h.input(now)
		if h.autopilot {
			in = h.pilot.Decide(h.snap)
		}
		before := h.snap.Status
		h.sim.Tick(dt, in)
		h.snap = h.sim.Snapshot()
		hostlog.Forward(h.logger, h.snap.Events)
		if before != game.StatusOver && h.snap.Status == game.StatusOver {
			hostlog.Match(h.logger, h.snap.Stats)
		}
	}
	h.Draw()
}

// Draw renders the current snapshot scaled to the terminal.
func (h *Host) Draw() {
	h.screen.Clear()
	cols, rows := h.screen.Size()
	arenaRows := rows - hudRows
	if cols < 2 || arenaRows < 2 {
		h.screen.Show()
		return
	}
	v := viewport{
		cols: cols,
		rows: arenaRows,
		sx:   float64(cols) / h.snap.Bounds.W,
		sy:   float64(arenaRows) / h.snap.Bounds.H,
	}

	for x := 0; x < cols; x++ {
		h.screen.SetContent(x, arenaRows, '─', nil, styleArenaBorder)
	}
	for _, e := range h.snap.Enemies {
		h.drawTank(v, e, styleEnemy, styleEnemyGun)
	}
	h.drawTank(v, h.snap.Player, stylePlayer, stylePlayerGun)
	for _, p := range h.snap.Projectiles {
		st := stylePlayerShot
		if p.Owner == game.RoleEnemy {
			st = styleEnemyShot
		}
		if x, y, ok := v.cell(p.X, p.Y); ok {
			h.screen.SetContent(x, y, '•', nil, st)
		}
	}

	h.drawHUD(arenaRows + 1)
	h.screen.Show()
}

// viewport maps arena pixels to terminal cells.
type viewport struct {
	cols, rows int
	sx, sy     float64
}

func (v viewport) cell(x, y float64) (int, int, bool) {
	cx, cy := int(math.Floor(x*v.sx)), int(math.Floor(y*v.sy))
	if cx < 0 || cy < 0 || cx >= v.cols || cy >= v.rows {
		return 0, 0, false
	}
	return cx, cy, true
}

// drawTank fills the cells under the hull and marks the barrel tip.
func (h *Host) drawTank(v viewport, t game.CombatantView, body, gun tcell.Style) {
	x0, y0 := int(math.Floor((t.X-t.Width/2)*v.sx)), int(math.Floor((t.Y-t.Height/2)*v.sy))
	x1, y1 := int(math.Ceil((t.X+t.Width/2)*v.sx)), int(math.Ceil((t.Y+t.Height/2)*v.sy))
	for y := max(y0, 0); y < min(y1, v.rows); y++ {
		for x := max(x0, 0); x < min(x1, v.cols); x++ {
			h.screen.SetContent(x, y, '█', nil, body)
		}
	}
	tipX := t.X + math.Cos(t.TurretAngle)*t.BarrelLength
	tipY := t.Y + math.Sin(t.TurretAngle)*t.BarrelLength
	if x, y, ok := v.cell(tipX, tipY); ok {
		h.screen.SetContent(x, y, '+', nil, gun)
	}
}

func (h *Host) drawHUD(row int) {
	p := h.snap.Player
	line := fmt.Sprintf("EXP: %d  HP: %.0f/%.0f  SCALE: %.2f  KILLS: %d  ENEMIES: %d",
		p.Exp, p.Health, p.MaxHealth, p.Scale, h.snap.Stats.Kills, len(h.snap.Enemies))
	st := styleHUD
	switch {
	case h.snap.Status == game.StatusOver:
		line = "DESTROYED  " + line + "  [r] restart [c] copy [q] quit"
		st = styleHUDAlert
	case h.paused:
		line = "PAUSED  " + line
	case h.autopilot:
		line = "AUTOPILOT  " + line
	}
	if h.status != "" {
		line += "  (" + h.status + ")"
	}
	for i, r := range []rune(line) {
		h.screen.SetContent(i, row, r, nil, st)
	}
}

// Snapshot returns the state last drawn.
func (h *Host) Snapshot() game.Snapshot { return h.snap }
