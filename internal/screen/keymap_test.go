package screen

import (
	"testing"

	"github.com/Garsondee/Tank-Arena/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func pressedSet(keys ...ebiten.Key) func(ebiten.Key) bool {
	set := map[ebiten.Key]bool{}
	for _, k := range keys {
		set[k] = true
	}
	return func(k ebiten.Key) bool { return set[k] }
}

func TestSampleInput_PrimaryAndAliasKeys(t *testing.T) {
	in := sampleInput(pressedSet(ebiten.KeyW, ebiten.KeyArrowLeft, ebiten.KeyK, ebiten.KeySpace))
	for _, a := range []game.Action{game.ActionMoveUp, game.ActionMoveLeft, game.ActionTurretRight, game.ActionFire} {
		if !in.Held(a) {
			t.Fatalf("expected %s held", a)
		}
	}
	for _, a := range []game.Action{game.ActionMoveDown, game.ActionMoveRight, game.ActionTurretLeft} {
		if in.Held(a) {
			t.Fatalf("did not expect %s held", a)
		}
	}
}

func TestSampleInput_NothingPressed(t *testing.T) {
	if sampleInput(pressedSet()).Any() {
		t.Fatal("no keys should give an empty input")
	}
}

func TestJustPressed_MapsCommands(t *testing.T) {
	cmds := justPressed(pressedSet(ebiten.KeyP, ebiten.KeyF1))
	if len(cmds) != 2 || cmds[0] != cmdPause || cmds[1] != cmdAutopilot {
		t.Fatalf("unexpected commands %v", cmds)
	}
}
