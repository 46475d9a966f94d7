package match

// Phase is the match lifecycle state
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
)

// String returns the HUD name of the phase
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "MENU"
	case PhasePlaying:
		return "PLAYING"
	default:
		return "Unknown"
	}
}

// validTransitions lists the phases reachable from each phase
// PLAYING is terminal; there is no path back to the menu
var validTransitions = map[Phase][]Phase{
	PhaseMenu: {PhasePlaying},
}

// CanTransition checks if a phase transition is valid
func CanTransition(from, to Phase) bool {
	for _, phase := range validTransitions[from] {
		if phase == to {
			return true
		}
	}
	return false
}
