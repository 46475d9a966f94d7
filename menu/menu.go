// Package menu is the pre-game selection model: home team and quarter length
package menu

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/gridiron/input"
	"github.com/lixenwraith/gridiron/match"
	"github.com/lixenwraith/gridiron/team"
)

// ErrNoOptions is returned when the menu has nothing to choose from
var ErrNoOptions = errors.New("menu has no options")

// DefaultQuarters are the selectable quarter lengths in seconds
var DefaultQuarters = []float64{60, 120, 300, 900}

// Field is the focused menu row
type Field int

const (
	FieldTeam Field = iota
	FieldQuarter
	FieldStart
	fieldCount
)

// Menu tracks the current selection
type Menu struct {
	teams    []team.Descriptor
	quarters []float64
	focus    Field
	team     int
	quarter  int
}

// New builds a menu over the registry's teams in key order
// defaultQuarter selects the initial quarter if present in quarters
func New(reg *team.Registry, quarters []float64, defaultQuarter float64) (*Menu, error) {
	if reg == nil || reg.Len() == 0 {
		return nil, fmt.Errorf("%w: no teams", ErrNoOptions)
	}
	if len(quarters) == 0 {
		quarters = DefaultQuarters
	}
	for _, q := range quarters {
		if !(q > 0) || math.IsInf(q, 0) {
			return nil, fmt.Errorf("%w: quarter %v", match.ErrInvalidQuarterLength, q)
		}
	}

	m := &Menu{
		teams:    reg.Teams(),
		quarters: append([]float64(nil), quarters...),
	}
	for i, q := range m.quarters {
		if q == defaultQuarter {
			m.quarter = i
			break
		}
	}
	return m, nil
}

// Handle applies an action and reports whether the player asked to start
func (m *Menu) Handle(a input.Action) bool {
	switch a {
	case input.ActionForward:
		m.focus = (m.focus + fieldCount - 1) % fieldCount
	case input.ActionBackward:
		m.focus = (m.focus + 1) % fieldCount
	case input.ActionLeft:
		m.cycle(-1)
	case input.ActionRight:
		m.cycle(1)
	case input.ActionConfirm:
		return true
	}
	return false
}

func (m *Menu) cycle(delta int) {
	switch m.focus {
	case FieldTeam:
		m.team = wrap(m.team+delta, len(m.teams))
	case FieldQuarter:
		m.quarter = wrap(m.quarter+delta, len(m.quarters))
	}
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// SelectTeam focuses the team with key; false if not listed
func (m *Menu) SelectTeam(key string) bool {
	for i, d := range m.teams {
		if d.Key == key {
			m.team = i
			return true
		}
	}
	return false
}

// Selection returns the chosen home team key and quarter seconds
func (m *Menu) Selection() (string, float64) {
	return m.teams[m.team].Key, m.quarters[m.quarter]
}

// Focus returns the focused row
func (m *Menu) Focus() Field {
	return m.focus
}

// Start hands the selection to the match
func (m *Menu) Start(g *match.Match) error {
	home, quarter := m.Selection()
	return g.StartGame(home, quarter)
}

// Lines renders the menu as overlay text
func (m *Menu) Lines() []string {
	cursor := func(f Field) string {
		if m.focus == f {
			return "> "
		}
		return "  "
	}
	return []string{
		"GRIDIRON",
		"",
		fmt.Sprintf("%sHome team:  < %s >", cursor(FieldTeam), m.teams[m.team].Label()),
		fmt.Sprintf("%sQuarter:    < %s >", cursor(FieldQuarter), match.FormatClock(m.quarters[m.quarter])),
		fmt.Sprintf("%s[ Start Game ]", cursor(FieldStart)),
		"",
		"up/down select  left/right change  enter start  q quit",
	}
}
