package menu

import (
	"errors"
	"strings"
	"testing"

	"github.com/lixenwraith/gridiron/input"
	"github.com/lixenwraith/gridiron/match"
	"github.com/lixenwraith/gridiron/physics"
	"github.com/lixenwraith/gridiron/render"
	"github.com/lixenwraith/gridiron/team"
	"go.uber.org/zap"
)

type nullSurface struct{}

func (nullSurface) AddVisual(*render.Visual)       {}
func (nullSurface) RemoveVisual(*render.Visual)    {}
func (nullSurface) Render(render.View, render.HUD) {}
func (nullSurface) Resize(int, int)                {}

func TestNewDefaults(t *testing.T) {
	m, err := New(team.Default(), nil, 120)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	home, quarter := m.Selection()
	if home != team.Default().Keys()[0] {
		t.Errorf("initial team = %s", home)
	}
	if quarter != 120 {
		t.Errorf("initial quarter = %v, want 120", quarter)
	}
	if m.Focus() != FieldTeam {
		t.Errorf("initial focus = %v", m.Focus())
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(nil, nil, 0); !errors.Is(err, ErrNoOptions) {
		t.Errorf("nil registry: %v", err)
	}
	if _, err := New(team.Default(), []float64{60, 0}, 60); !errors.Is(err, match.ErrInvalidQuarterLength) {
		t.Errorf("zero quarter option: %v", err)
	}
}

func TestNavigation(t *testing.T) {
	m, _ := New(team.Default(), []float64{60, 120}, 60)
	keys := team.Default().Keys()

	// Team row cycles with wrap-around
	m.Handle(input.ActionLeft)
	if home, _ := m.Selection(); home != keys[len(keys)-1] {
		t.Errorf("left from first team = %s, want %s", home, keys[len(keys)-1])
	}
	m.Handle(input.ActionRight)
	m.Handle(input.ActionRight)
	if home, _ := m.Selection(); home != keys[1] {
		t.Errorf("right twice = %s, want %s", home, keys[1])
	}

	// Move to quarter row
	m.Handle(input.ActionBackward)
	if m.Focus() != FieldQuarter {
		t.Fatalf("focus = %v, want quarter", m.Focus())
	}
	m.Handle(input.ActionRight)
	if _, q := m.Selection(); q != 120 {
		t.Errorf("quarter = %v, want 120", q)
	}
	m.Handle(input.ActionRight)
	if _, q := m.Selection(); q != 60 {
		t.Errorf("quarter wrap = %v, want 60", q)
	}

	// Focus wraps upward from the first row
	m.Handle(input.ActionForward)
	m.Handle(input.ActionForward)
	if m.Focus() != FieldStart {
		t.Errorf("focus wrap = %v, want start", m.Focus())
	}
	// Left/right on the start row changes nothing
	before, _ := m.Selection()
	m.Handle(input.ActionLeft)
	if after, _ := m.Selection(); after != before {
		t.Error("start row changed the team")
	}

	if m.Handle(input.ActionQuit) {
		t.Error("quit reported as start")
	}
	if !m.Handle(input.ActionConfirm) {
		t.Error("confirm did not request start")
	}
}

func TestLinesShowLabel(t *testing.T) {
	m, _ := New(team.Default(), nil, 120)
	if !m.SelectTeam("KC") {
		t.Fatal("KC not listed")
	}
	if m.SelectTeam("XX") {
		t.Error("unknown team selected")
	}
	text := strings.Join(m.Lines(), "\n")
	for _, want := range []string{"Kansas City Chiefs (KC)", "2:00", "> Home team", "Start Game"} {
		if !strings.Contains(text, want) {
			t.Errorf("menu text missing %q:\n%s", want, text)
		}
	}
}

func TestStartHandsSelectionToMatch(t *testing.T) {
	world, err := physics.NewWorld(physics.DefaultConfig(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	g, err := match.New(match.DefaultConfig(), match.Deps{Surface: nullSurface{}, World: world})
	if err != nil {
		t.Fatal(err)
	}

	m, _ := New(team.Default(), []float64{90}, 90)
	m.SelectTeam("PHI")
	if err := m.Start(g); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if g.Phase() != match.PhasePlaying || g.Remaining() != 90 {
		t.Errorf("match phase=%v remaining=%v", g.Phase(), g.Remaining())
	}
	if home, _ := g.Teams(); home.Key != "PHI" {
		t.Errorf("home = %s", home.Key)
	}

	if err := m.Start(g); !errors.Is(err, match.ErrInvalidTransition) {
		t.Errorf("second start: %v", err)
	}
}
