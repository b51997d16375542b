package state

// Action is a user command shared by the terminal UI and the window viewer.
type Action int

const (
	ActionNone Action = iota
	ActionRotateUp
	ActionRotateDown
	ActionRotateLeft
	ActionRotateRight
	ActionRollLeft
	ActionRollRight
	ActionClipXMore
	ActionClipXLess
	ActionClipYMore
	ActionClipYLess
	ActionClipZMore
	ActionClipZLess
	ActionBrighter
	ActionDimmer
	ActionNUp
	ActionNDown
	ActionLUp
	ActionLDown
	ActionMUp
	ActionMDown
	ActionTogglePlane
	ActionCyclePalette
	ActionToggleMode
	ActionResetView
)

var actionNames = map[Action]string{
	ActionNone:         "none",
	ActionRotateUp:     "rotate-up",
	ActionRotateDown:   "rotate-down",
	ActionRotateLeft:   "rotate-left",
	ActionRotateRight:  "rotate-right",
	ActionRollLeft:     "roll-left",
	ActionRollRight:    "roll-right",
	ActionClipXMore:    "clip-x+",
	ActionClipXLess:    "clip-x-",
	ActionClipYMore:    "clip-y+",
	ActionClipYLess:    "clip-y-",
	ActionClipZMore:    "clip-z+",
	ActionClipZLess:    "clip-z-",
	ActionBrighter:     "brighter",
	ActionDimmer:       "dimmer",
	ActionNUp:          "n+",
	ActionNDown:        "n-",
	ActionLUp:          "l+",
	ActionLDown:        "l-",
	ActionMUp:          "m+",
	ActionMDown:        "m-",
	ActionTogglePlane:  "plane",
	ActionCyclePalette: "palette",
	ActionToggleMode:   "mode",
	ActionResetView:    "reset",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// KeyActions maps key names, as reported by bubbletea's KeyMsg.String, to
// actions. The window viewer translates its keys to the same names.
var KeyActions = map[string]Action{
	"up":    ActionRotateUp,
	"w":     ActionRotateUp,
	"down":  ActionRotateDown,
	"s":     ActionRotateDown,
	"left":  ActionRotateLeft,
	"a":     ActionRotateLeft,
	"right": ActionRotateRight,
	"d":     ActionRotateRight,
	"z":     ActionRollLeft,
	"Z":     ActionRollRight,
	"x":     ActionClipXMore,
	"X":     ActionClipXLess,
	"y":     ActionClipYMore,
	"Y":     ActionClipYLess,
	"c":     ActionClipZMore,
	"C":     ActionClipZLess,
	"+":     ActionBrighter,
	"=":     ActionBrighter,
	"-":     ActionDimmer,
	"n":     ActionNUp,
	"N":     ActionNDown,
	"l":     ActionLUp,
	"L":     ActionLDown,
	"m":     ActionMUp,
	"M":     ActionMDown,
	"p":     ActionTogglePlane,
	"g":     ActionCyclePalette,
	"v":     ActionToggleMode,
	"r":     ActionResetView,
}

// Apply performs a on the manager.
func (m *Manager) Apply(a Action) {
	step := m.rotateStep
	clip := m.clipStep

	switch a {
	case ActionRotateUp:
		m.Rotate(-step, 0, 0)
	case ActionRotateDown:
		m.Rotate(step, 0, 0)
	case ActionRotateLeft:
		m.Rotate(0, -step, 0)
	case ActionRotateRight:
		m.Rotate(0, step, 0)
	case ActionRollLeft:
		m.Rotate(0, 0, -step)
	case ActionRollRight:
		m.Rotate(0, 0, step)
	case ActionClipXMore:
		m.AdjustClip(AxisX, clip)
	case ActionClipXLess:
		m.AdjustClip(AxisX, -clip)
	case ActionClipYMore:
		m.AdjustClip(AxisY, clip)
	case ActionClipYLess:
		m.AdjustClip(AxisY, -clip)
	case ActionClipZMore:
		m.AdjustClip(AxisZ, clip)
	case ActionClipZLess:
		m.AdjustClip(AxisZ, -clip)
	case ActionBrighter:
		m.ScaleColor(m.colorFactor)
	case ActionDimmer:
		m.ScaleColor(1 / m.colorFactor)
	case ActionNUp:
		m.StepN(1)
	case ActionNDown:
		m.StepN(-1)
	case ActionLUp:
		m.StepL(1)
	case ActionLDown:
		m.StepL(-1)
	case ActionMUp:
		m.StepM(1)
	case ActionMDown:
		m.StepM(-1)
	case ActionTogglePlane:
		m.TogglePlane()
	case ActionCyclePalette:
		m.CyclePalette()
	case ActionToggleMode:
		m.SetMode(m.Mode().Toggle())
	case ActionResetView:
		m.ResetView()
	}
}

