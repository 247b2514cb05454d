package core

// Action represents a semantic input action, abstracted from physical key
// presses. The simulation works with intents rather than raw keys.
type Action int

const (
	ActionNone          Action = iota
	ActionPause                // P - pause/unpause the round
	ActionShoot                // Space - fire a ball
	ActionAbort                // X - abandon the round
	ActionPerkClear            // 1 - clear all blocks
	ActionPerkExtraBalls       // 2 - extra ammo
	ActionPerkExplosive        // 3 - damage every block
	ActionPerkSlow             // 4 - halve block speed
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPause:
		return "Pause"
	case ActionShoot:
		return "Shoot"
	case ActionAbort:
		return "Abort"
	case ActionPerkClear:
		return "PerkClear"
	case ActionPerkExtraBalls:
		return "PerkExtraBalls"
	case ActionPerkExplosive:
		return "PerkExplosive"
	case ActionPerkSlow:
		return "PerkSlow"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered during one simulation tick,
// in the order they arrived. Repeated actions are kept.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set appends an action to this frame.
func (f *InputFrame) Set(a Action) {
	f.Actions = append(f.Actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}
