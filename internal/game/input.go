package game

// Action is a logical control the player can hold.
type Action uint8

const (
	ActionMoveUp Action = iota
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionTurretLeft
	ActionTurretRight
	ActionFire
	actionCount
)

func (a Action) String() string {
	switch a {
	case ActionMoveUp:
		return "move_up"
	case ActionMoveDown:
		return "move_down"
	case ActionMoveLeft:
		return "move_left"
	case ActionMoveRight:
		return "move_right"
	case ActionTurretLeft:
		return "turret_left"
	case ActionTurretRight:
		return "turret_right"
	case ActionFire:
		return "fire"
	default:
		return "unknown"
	}
}

// Input is the pressed-state of every action, sampled once per tick.
// The zero value has nothing pressed.
type Input struct {
	held [actionCount]bool
}

// NewInput returns an Input with the given actions held.
func NewInput(actions ...Action) Input {
	var in Input
	for _, a := range actions {
		in.Set(a, true)
	}
	return in
}

// Set marks an action as held or released. Unknown actions are ignored.
func (in *Input) Set(a Action, held bool) {
	if a < actionCount {
		in.held[a] = held
	}
}

// Held reports whether an action is pressed.
func (in Input) Held(a Action) bool {
	return a < actionCount && in.held[a]
}

// Any reports whether at least one action is pressed.
func (in Input) Any() bool {
	for _, h := range in.held {
		if h {
			return true
		}
	}
	return false
}
