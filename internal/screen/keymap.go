package screen

import (
	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// binding maps one held action to every key that drives it.
type binding struct {
	action game.Action
	keys   []ebiten.Key
}

var bindings = []binding{
	{game.ActionMoveUp, []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}},
	{game.ActionMoveDown, []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}},
	{game.ActionMoveLeft, []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}},
	{game.ActionMoveRight, []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}},
	{game.ActionTurretLeft, []ebiten.Key{ebiten.KeyJ}},
	{game.ActionTurretRight, []ebiten.Key{ebiten.KeyK}},
	{game.ActionFire, []ebiten.Key{ebiten.KeySpace}},
}

// command is an edge-triggered host control, applied once per key press.
type command int

const (
	cmdPause command = iota
	cmdRestart
	cmdCopy
	cmdAutopilot
	cmdSlower
	cmdFaster
	cmdHelp
)

var commandKeys = []struct {
	key ebiten.Key
	cmd command
}{
	{ebiten.KeyP, cmdPause},
	{ebiten.KeyR, cmdRestart},
	{ebiten.KeyC, cmdCopy},
	{ebiten.KeyF1, cmdAutopilot},
	{ebiten.KeyComma, cmdSlower},
	{ebiten.KeyPeriod, cmdFaster},
	{ebiten.KeyH, cmdHelp},
}

// sampleInput builds the held-action snapshot for one tick.
func sampleInput(pressed func(ebiten.Key) bool) game.Input {
	var in game.Input
	for _, b := range bindings {
		for _, k := range b.keys {
			if pressed(k) {
				in.Set(b.action, true)
				break
			}
		}
	}
	return in
}

// justPressed lists the commands whose key went down this frame.
func justPressed(pressed func(ebiten.Key) bool) []command {
	var cmds []command
	for _, ck := range commandKeys {
		if pressed(ck.key) {
			cmds = append(cmds, ck.cmd)
		}
	}
	return cmds
}
