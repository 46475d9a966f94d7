package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/gridiron/audio"
	"github.com/lixenwraith/gridiron/engine"
	"github.com/lixenwraith/gridiron/input"
	"github.com/lixenwraith/gridiron/match"
	"github.com/lixenwraith/gridiron/menu"
	"github.com/lixenwraith/gridiron/physics"
	"github.com/lixenwraith/gridiron/render/tui"
	"github.com/lixenwraith/gridiron/team"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) (*app, *engine.MockTimeProvider) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	surface := tui.New(screen, nil)
	surface.Resize(80, 24)
	world, err := physics.NewWorld(physics.DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	game, err := match.New(match.DefaultConfig(), match.Deps{Surface: surface, World: world})
	if err != nil {
		t.Fatal(err)
	}
	mn, err := menu.New(team.Default(), []float64{60, 120}, 60)
	if err != nil {
		t.Fatal(err)
	}
	game.SetOverlay(mn.Lines())

	clock := engine.NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	return &app{
		screen:   screen,
		surface:  surface,
		game:     game,
		menu:     mn,
		sound:    audio.NewSoundManager(audio.DefaultConfig(), nil),
		bindings: input.DefaultBindings(),
		latch:    input.NewLatch(200 * time.Millisecond),
		runner:   engine.NewRunner(game, clock, time.Second/60, nil),
		log:      zap.NewNop(),
	}, clock
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestKeyName(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want input.Action
	}{
		{key('w'), input.ActionForward},
		{key('D'), input.ActionRight},
		{key(' '), input.ActionConfirm},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), input.ActionForward},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), input.ActionConfirm},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), input.ActionQuit},
		{key('z'), input.ActionNone},
	}
	b := input.DefaultBindings()
	for _, tc := range cases {
		if got := b.Lookup(keyName(tc.ev)); got != tc.want {
			t.Errorf("key %q -> %v, want %v", keyName(tc.ev), got, tc.want)
		}
	}
}

func TestMenuToKickoff(t *testing.T) {
	a, clock := newTestApp(t)

	a.frame(clock.Now())
	if a.game.Phase() != match.PhaseMenu {
		t.Fatal("not in menu")
	}

	// Down to quarter row, pick 120, confirm
	a.handleEvent(key('s'), clock.Now())
	a.handleEvent(key('d'), clock.Now())
	if _, q := a.menu.Selection(); q != 120 {
		t.Fatalf("quarter = %v", q)
	}
	if !a.handleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), clock.Now()) {
		t.Fatal("confirm quit the app")
	}
	if a.game.Phase() != match.PhasePlaying || a.game.Remaining() != 120 {
		t.Fatalf("phase=%v remaining=%v", a.game.Phase(), a.game.Remaining())
	}
	t.Logf("✓ Menu started a %s match", match.FormatClock(a.game.Remaining()))
}

func TestHeldKeyMovesPlayer(t *testing.T) {
	a, clock := newTestApp(t)
	if err := a.menu.Start(a.game); err != nil {
		t.Fatal(err)
	}
	a.frame(clock.Now())
	startZ := a.game.Active().Position().Z

	// Terminal auto-repeat: presses arrive faster than the hold window
	for i := 0; i < 30; i++ {
		if i%5 == 0 {
			a.handleEvent(key('w'), clock.Now())
		}
		clock.Advance(time.Second / 60)
		a.frame(clock.Now())
	}
	moved := a.game.Active().Position().Z
	if !(moved < startZ-2) {
		t.Fatalf("player did not move forward: z %v -> %v", startZ, moved)
	}

	// No presses: latch releases after the hold window and the player stops
	for i := 0; i < 30; i++ {
		clock.Advance(time.Second / 60)
		a.frame(clock.Now())
	}
	if a.game.Input().Any() {
		t.Error("keys still held after hold window")
	}
	t.Logf("✓ Held key moved player from z=%.2f to z=%.2f", startZ, moved)
}

func TestQuitAndMute(t *testing.T) {
	a, clock := newTestApp(t)
	if !a.handleEvent(key('m'), clock.Now()) {
		t.Error("mute quit the app")
	}
	if !a.sound.Muted() {
		t.Error("mute not toggled")
	}
	if a.handleEvent(key('q'), clock.Now()) {
		t.Error("q did not quit")
	}
	if a.handleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), clock.Now()) {
		t.Error("ctrl-c did not quit")
	}
}

func TestResizeEvent(t *testing.T) {
	a, clock := newTestApp(t)
	a.handleEvent(tcell.NewEventResize(100, 30), clock.Now())
	a.frame(clock.Now())
	if c := a.surface.Cell(99, 29); c.Rune == 0 {
		t.Error("resized area not drawn")
	}
}
