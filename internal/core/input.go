package core

// Action represents a semantic intent, abstracted from physical key presses.
// Steering comes from the head tracker, so keys only drive screens and
// session controls.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow, k - move menu cursor up
	ActionDown           // S, Down arrow, j - move menu cursor down
	ActionLeft           // A, Left arrow, h - lower a setting
	ActionRight          // D, Right arrow, l - raise a setting
	ActionConfirm        // Enter, Space - confirm selection
	ActionBack           // B, Escape - go back to menu
	ActionSkip           // S on the loading screen - start without a ready tracker
	ActionMusic          // M - start background music by hand
	ActionRestart        // R - play again from the result screen
	ActionQuit           // Q, Ctrl+C - exit the session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionSkip:
		return "Skip"
	case ActionMusic:
		return "Music"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered between two simulation ticks.
// Key presses arrive asynchronously; the play loop drains the frame once per
// tick so every action is applied at a well-defined point of the step.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Empty reports whether nothing was pressed this frame.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}
