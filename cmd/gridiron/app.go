package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/gridiron/audio"
	"github.com/lixenwraith/gridiron/engine"
	"github.com/lixenwraith/gridiron/input"
	"github.com/lixenwraith/gridiron/match"
	"github.com/lixenwraith/gridiron/menu"
	"github.com/lixenwraith/gridiron/render/tui"
	"go.uber.org/zap"
)

// app glues terminal events to the match; every method runs on the main loop goroutine
type app struct {
	screen   tcell.Screen
	surface  *tui.Surface
	game     *match.Match
	menu     *menu.Menu
	sound    *audio.SoundManager
	bindings input.Bindings
	latch    *input.Latch
	runner   *engine.Runner
	log      *zap.Logger
}

// keyName maps a tcell key event to a binding name
func keyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		return string(ev.Rune())
	}
	if name, ok := tcell.KeyNames[ev.Key()]; ok {
		return name
	}
	return ""
}

// handleEvent applies one terminal event; false means quit
func (a *app) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		return a.handleAction(a.bindings.Lookup(keyName(ev)), now)

	case *tcell.EventResize:
		w, h := ev.Size()
		a.surface.Resize(w, h)
		a.screen.Sync()
	}
	return true
}

func (a *app) handleAction(action input.Action, now time.Time) bool {
	switch action {
	case input.ActionQuit:
		return false
	case input.ActionMute:
		muted := a.sound.ToggleMute()
		a.log.Debug("mute toggled", zap.Bool("muted", muted))
		return true
	case input.ActionNone:
		return true
	}

	if a.game.Phase() == match.PhaseMenu {
		if a.menu.Handle(action) {
			if err := a.menu.Start(a.game); err != nil {
				a.log.Warn("start game failed", zap.Error(err))
				return true
			}
			a.latch.Reset()
			return true
		}
		a.sound.PlayBlip()
		a.game.SetOverlay(a.menu.Lines())
		return true
	}

	if key, ok := action.Key(); ok {
		a.latch.Press(key, now)
	}
	return true
}

// frame samples held keys into the match input and ticks once
func (a *app) frame(now time.Time) match.Frame {
	if a.game.Phase() == match.PhasePlaying {
		*a.game.Input() = a.latch.Update(now)
	}
	return a.runner.Frame()
}
