// Package screen is the desktop host: an ebiten window that samples the
// keyboard, ticks the simulation once per frame and draws the snapshot.
package screen

import (
	"fmt"
	"time"

	"github.com/Garsondee/Tank-Arena/internal/config"
	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/Garsondee/Tank-Arena/internal/hostlog"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	// maxFrameDelta caps one frame's dt so a stalled window does not turn
	// into a burst of spawns and reloads.
	maxFrameDelta  = 100.0
	statusLifetime = 180 // frames a status line stays visible
)

var simSpeeds = []float64{0, 0.5, 1, 2, 4}

// App implements ebiten.Game.
type App struct {
	cfg     config.Config
	base    *log.Logger
	logger  *log.Logger // base tagged with the current match id
	matchID string
	sim     *game.Simulation
	snap    game.Snapshot

	width  int // arena size in pixels
	height int

	simSpeed  float64 // 0 = paused
	tickAccum float64 // fractional ticks for sub-1x speeds
	autopilot bool
	pilot     game.Autopilot
	showHelp  bool

	events  *EventLog
	flashes flashSet
	pixel   *ebiten.Image

	now  func() time.Time
	last time.Time
	clip func(string) error

	status      string
	statusTimer int
	overLogged  bool
}

// Option customises an App.
type Option func(*App)

// WithClock replaces the wall clock used to measure frame time.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(a *App) { a.clip = write }
}

// NewApp starts a match from cfg.
func NewApp(cfg config.Config, logger *log.Logger, opts ...Option) (*App, error) {
	sim, err := game.New(cfg.Game)
	if err != nil {
		return nil, fmt.Errorf("new simulation: %w", err)
	}
	a := &App{
		cfg:      cfg,
		base:     logger,
		sim:      sim,
		width:    int(cfg.Game.ArenaWidth),
		height:   int(cfg.Game.ArenaHeight),
		simSpeed: 1,
		pilot:    game.Autopilot{Kite: true},
		showHelp: true,
		events:   NewEventLog(),
		now:      time.Now,
		clip:     clipboard.WriteAll,
	}
	a.events.Verbose = cfg.Debug
	for _, o := range opts {
		o(a)
	}
	a.snap = sim.Snapshot()
	a.logger, a.matchID = hostlog.WithMatch(logger)
	a.events.Add(0, "--", "--", "match "+a.matchID+" started")
	if a.logger != nil {
		a.logger.Info("match started", "arena", fmt.Sprintf("%dx%d", a.width, a.height), "seed", cfg.Game.Seed)
	}
	return a, nil
}

// Update samples input and advances the simulation.
func (a *App) Update() error {
	for _, c := range justPressed(inpututil.IsKeyJustPressed) {
		a.apply(c)
	}
	dt := a.frameDelta()
	a.advance(dt, sampleInput(ebiten.IsKeyPressed))
	return nil
}

// advance runs however many ticks the current speed asks for this frame.
func (a *App) advance(dt float64, in game.Input) {
	if a.statusTimer > 0 {
		a.statusTimer--
	}
	a.flashes.Age()
	if a.simSpeed <= 0 {
		return
	}
	a.tickAccum += a.simSpeed
	for a.tickAccum >= 1.0 {
		a.tickAccum -= 1.0
		a.step(dt, in)
	}
}

// step runs one simulation tick and routes its events.
func (a *App) step(dt float64, in game.Input) {
	if a.autopilot {
		in = a.pilot.Decide(a.snap)
	}
	a.sim.Tick(dt, in)
	a.snap = a.sim.Snapshot()

	a.events.Record(a.snap.Events)
	a.flashes.Spawn(a.snap.Events, a.snap)
	hostlog.Forward(a.logger, a.snap.Events)

	if a.snap.Status == game.StatusOver && !a.overLogged {
		a.overLogged = true
		hostlog.Match(a.logger, a.snap.Stats)
	}
}

// frameDelta measures the wall time since the last frame, clamped to
// [0, maxFrameDelta]. The first frame uses a nominal 60Hz frame.
func (a *App) frameDelta() float64 {
	now := a.now()
	defer func() { a.last = now }()
	if a.last.IsZero() {
		return game.FrameDelta
	}
	dt := float64(now.Sub(a.last)) / float64(time.Millisecond)
	if dt < 0 {
		return 0
	}
	if dt > maxFrameDelta {
		return maxFrameDelta
	}
	return dt
}

func (a *App) apply(c command) {
	switch c {
	case cmdPause:
		if a.simSpeed > 0 {
			a.simSpeed = 0
		} else {
			a.simSpeed = 1
		}
	case cmdSlower:
		for i, s := range simSpeeds {
			if s >= a.simSpeed && i > 0 {
				a.simSpeed = simSpeeds[i-1]
				break
			}
		}
	case cmdFaster:
		for i, s := range simSpeeds {
			if s <= a.simSpeed && i < len(simSpeeds)-1 && simSpeeds[i+1] > a.simSpeed {
				a.simSpeed = simSpeeds[i+1]
				break
			}
		}
	case cmdRestart:
		a.restart()
	case cmdCopy:
		a.copySummary()
	case cmdAutopilot:
		a.autopilot = !a.autopilot
		a.setStatus(fmt.Sprintf("autopilot %s", onOff(a.autopilot)))
	case cmdHelp:
		a.showHelp = !a.showHelp
	}
}

func (a *App) restart() {
	a.sim.Reset()
	a.snap = a.sim.Snapshot()
	a.flashes.Clear()
	a.events.Clear()
	a.logger, a.matchID = hostlog.WithMatch(a.base)
	a.events.Add(0, "--", "--", "match "+a.matchID+" started")
	a.overLogged = false
	a.tickAccum = 0
	if a.logger != nil {
		a.logger.Info("match restarted")
	}
}

func (a *App) copySummary() {
	if err := a.clip(a.snap.Stats.Summary()); err != nil {
		if a.logger != nil {
			a.logger.Warn("copy summary", "err", err)
		}
		a.setStatus("clipboard unavailable")
		return
	}
	a.setStatus("summary copied")
}

func (a *App) setStatus(msg string) {
	a.status = msg
	a.statusTimer = statusLifetime
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Draw renders the arena, the HUD and the event panel.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(windowBg)
	a.drawArena(screen, a.snap)
	a.drawHUD(screen, a.snap)
	if a.snap.Status == game.StatusOver {
		a.drawGameOver(screen, a.snap)
	}
	a.events.Draw(screen, a.width, a.height)
}

// Layout returns the arena plus the event panel.
func (a *App) Layout(_, _ int) (int, int) {
	return a.width + panelWidth, a.height
}

// Snapshot returns the state last drawn.
func (a *App) Snapshot() game.Snapshot { return a.snap }
