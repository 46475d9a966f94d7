package input

import (
	"fmt"
	"sort"
	"strings"
)

// Action is what a host key does
type Action uint8

const (
	ActionNone Action = iota
	ActionForward
	ActionBackward
	ActionLeft
	ActionRight
	ActionConfirm
	ActionQuit
	ActionMute
)

var actionNames = map[string]Action{
	"forward":  ActionForward,
	"backward": ActionBackward,
	"left":     ActionLeft,
	"right":    ActionRight,
	"confirm":  ActionConfirm,
	"quit":     ActionQuit,
	"mute":     ActionMute,
}

func (a Action) String() string {
	for name, v := range actionNames {
		if v == a {
			return name
		}
	}
	return "none"
}

// ParseAction resolves an action name from config
func ParseAction(name string) (Action, error) {
	a, ok := actionNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return ActionNone, fmt.Errorf("unknown action %q", name)
	}
	return a, nil
}

// Key returns the direction key an action drives
func (a Action) Key() (Key, bool) {
	switch a {
	case ActionForward:
		return KeyForward, true
	case ActionBackward:
		return KeyBackward, true
	case ActionLeft:
		return KeyLeft, true
	case ActionRight:
		return KeyRight, true
	}
	return keyCount, false
}

// Bindings maps normalized host key names ("w", "up", "enter") to actions
type Bindings map[string]Action

// DefaultBindings is WASD plus arrows, Enter/Space to confirm, q/Esc to quit
func DefaultBindings() Bindings {
	return Bindings{
		"w":      ActionForward,
		"s":      ActionBackward,
		"a":      ActionLeft,
		"d":      ActionRight,
		"up":     ActionForward,
		"down":   ActionBackward,
		"left":   ActionLeft,
		"right":  ActionRight,
		"enter":  ActionConfirm,
		"space":  ActionConfirm,
		"q":      ActionQuit,
		"escape": ActionQuit,
		"m":      ActionMute,
	}
}

// ParseBindings builds bindings from a key name → action name table
// Entries override the defaults; an empty action name unbinds the key
func ParseBindings(raw map[string]string) (Bindings, error) {
	b := DefaultBindings()

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		name := NormalizeKeyName(k)
		if name == "" {
			return nil, fmt.Errorf("binding: empty key name")
		}
		if strings.TrimSpace(raw[k]) == "" {
			delete(b, name)
			continue
		}
		a, err := ParseAction(raw[k])
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", k, err)
		}
		b[name] = a
	}
	return b, nil
}

// Lookup returns the action bound to a host key name
func (b Bindings) Lookup(name string) Action {
	return b[NormalizeKeyName(name)]
}

// NormalizeKeyName lowercases and maps common aliases
func NormalizeKeyName(name string) string {
	if name == " " {
		return "space"
	}
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "esc":
		return "escape"
	case "return":
		return "enter"
	case "arrowup":
		return "up"
	case "arrowdown":
		return "down"
	case "arrowleft":
		return "left"
	case "arrowright":
		return "right"
	}
	return n
}

// KeyCode is a host key code resolved to its bound action
type KeyCode struct {
	Code   int
	Action Action
}

// Table resolves host key codes 0..count-1 through name and returns the bound ones in code order
func (b Bindings) Table(count int, name func(code int) string) []KeyCode {
	var t []KeyCode
	for c := 0; c < count; c++ {
		if a := b.Lookup(name(c)); a != ActionNone {
			t = append(t, KeyCode{Code: c, Action: a})
		}
	}
	return t
}
