package render

// Scene is an insertion-ordered set of visuals shared by backends
type Scene struct {
	visuals []*Visual
}

// Add registers v once; duplicates are ignored
func (s *Scene) Add(v *Visual) {
	if v == nil || s.Contains(v) {
		return
	}
	s.visuals = append(s.visuals, v)
}

// Remove drops v, keeping order of the rest
func (s *Scene) Remove(v *Visual) {
	for i, cur := range s.visuals {
		if cur == v {
			copy(s.visuals[i:], s.visuals[i+1:])
			s.visuals[len(s.visuals)-1] = nil
			s.visuals = s.visuals[:len(s.visuals)-1]
			return
		}
	}
}

// Contains reports membership
func (s *Scene) Contains(v *Visual) bool {
	for _, cur := range s.visuals {
		if cur == v {
			return true
		}
	}
	return false
}

// Len returns the number of visuals
func (s *Scene) Len() int {
	return len(s.visuals)
}

// Each calls fn for every visual in insertion order
func (s *Scene) Each(fn func(v *Visual)) {
	for _, v := range s.visuals {
		fn(v)
	}
}

// Snapshot copies visual state for deferred drawing
func (s *Scene) Snapshot(dst []Visual) []Visual {
	dst = dst[:0]
	for _, v := range s.visuals {
		dst = append(dst, *v)
	}
	return dst
}
