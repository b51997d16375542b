package viewer

import "github.com/litescript/ls-orbitals/internal/state"

// Key repeat timing in ticks at 60 TPS.
const (
	repeatDelay    = 15
	repeatInterval = 4
)

// Repeats reports whether a key held for the given number of ticks should
// fire on this tick: once on press, then periodically after a delay.
func Repeats(ticks int) bool {
	if ticks == 1 {
		return true
	}
	return ticks >= repeatDelay && (ticks-repeatDelay)%repeatInterval == 0
}

// Translate maps key names (typed characters such as "x" or "X", and
// "up", "down", "left", "right", "escape") to actions. quit is set for
// "q" and "escape".
func Translate(names []string) (actions []state.Action, quit bool) {
	for _, name := range names {
		switch name {
		case "q", "escape":
			quit = true
			continue
		}
		if a, ok := state.KeyActions[name]; ok {
			actions = append(actions, a)
		}
	}
	return actions, quit
}
