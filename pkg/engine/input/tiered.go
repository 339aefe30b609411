package input

import (
	"sort"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceTerminal
)

// Action represents a high‑level intent in the game.
type Action int

const (
	ActionNone Action = iota

	// Puzzle
	ActionPress // press the display slot in Intent.Slot
	ActionOpen  // open the door

	// Meta / UI
	ActionHelp
	ActionRules
	ActionQuit
)

// Intent is the 4th‑layer, high‑level description of what the player wants to do.
type Intent struct {
	Action Action
	Slot   int // 0-based display slot for ActionPress
}

// RawInput is the 1st‑layer event emitted directly from an input device.
// Code is a device‑specific identifier (e.g. "1", "arrow_up", "enter").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd‑layer representation after debouncing/deduplication.
// Terminal raw mode already delivers one event per key press, so this is a
// distinct type only to keep the layering explicit.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// binding is what a code maps to.
type binding struct {
	action Action
	slot   int
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var bindings = map[string]binding{
	// Display slots, left to right
	"1": {ActionPress, 0},
	"2": {ActionPress, 1},
	"3": {ActionPress, 2},
	"4": {ActionPress, 3},
	"5": {ActionPress, 4},
	"6": {ActionPress, 5},

	// Door
	"o":     {ActionOpen, 0},
	"e":     {ActionOpen, 0},
	"enter": {ActionOpen, 0},

	// Help / rules
	"?": {ActionHelp, 0},
	"h": {ActionHelp, 0},
	"r": {ActionRules, 0},

	// Quit
	"q":      {ActionQuit, 0},
	"escape": {ActionQuit, 0},
	"ctrl_c": {ActionQuit, 0},
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high‑level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if b, ok := bindings[ev.Code]; ok {
		return Intent{Action: b.action, Slot: b.slot}
	}
	return Intent{Action: ActionNone}
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionPress:
		return "Press"
	case ActionOpen:
		return "Open Door"
	case ActionHelp:
		return "Help"
	case ActionRules:
		return "Rules"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, b := range bindings {
		result[b.action] = append(result[b.action], code)
	}
	// Ensure stable ordering of codes within each action so help text doesn't shuffle.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}
