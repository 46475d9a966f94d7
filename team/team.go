// Package team holds the static, read-only registry of team descriptors
package team

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var ErrInvalidTeam = errors.New("invalid team definition")

// Color is a 24-bit RGB color
type Color struct {
	R, G, B uint8
}

// Hex returns the color as 0xRRGGBB
func (c Color) Hex() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// String formats as #rrggbb
func (c Color) String() string {
	return fmt.Sprintf("#%06x", c.Hex())
}

// RGB builds a color from a 0xRRGGBB literal
func RGB(hex uint32) Color {
	return Color{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex)}
}

// ParseColor accepts "#rrggbb", "rrggbb" or "0xrrggbb"
func ParseColor(s string) (Color, error) {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(t, "#")
	t = strings.TrimPrefix(strings.TrimPrefix(t, "0x"), "0X")
	if len(t) != 6 {
		return Color{}, fmt.Errorf("%w: color %q must have 6 hex digits", ErrInvalidTeam, s)
	}
	v, err := strconv.ParseUint(t, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: color %q: %v", ErrInvalidTeam, s, err)
	}
	return RGB(uint32(v)), nil
}

// Descriptor is an immutable team record
type Descriptor struct {
	Key       string
	Name      string
	Primary   Color
	Secondary Color
}

// Label is the menu form "Name (KEY)"
func (d Descriptor) Label() string {
	return fmt.Sprintf("%s (%s)", d.Name, d.Key)
}

// Registry maps team keys to descriptors; never mutated after construction
type Registry struct {
	byKey map[string]Descriptor
	keys  []string
}

// NewRegistry validates and indexes descriptors
// Keys must be unique and non-empty, names non-empty
func NewRegistry(teams ...Descriptor) (*Registry, error) {
	r := &Registry{
		byKey: make(map[string]Descriptor, len(teams)),
		keys:  make([]string, 0, len(teams)),
	}
	for i, d := range teams {
		if d.Key == "" {
			return nil, fmt.Errorf("%w: entry %d has empty key", ErrInvalidTeam, i)
		}
		if d.Name == "" {
			return nil, fmt.Errorf("%w: team %q has empty name", ErrInvalidTeam, d.Key)
		}
		if _, dup := r.byKey[d.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrInvalidTeam, d.Key)
		}
		r.byKey[d.Key] = d
		r.keys = append(r.keys, d.Key)
	}
	if len(r.keys) == 0 {
		return nil, fmt.Errorf("%w: registry is empty", ErrInvalidTeam)
	}
	sort.Strings(r.keys)
	return r, nil
}

// Lookup returns the descriptor for key
func (r *Registry) Lookup(key string) (Descriptor, bool) {
	d, ok := r.byKey[key]
	return d, ok
}

// Keys returns all keys in sorted order; the slice is a copy
func (r *Registry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of teams
func (r *Registry) Len() int {
	return len(r.keys)
}

// Teams returns descriptors in key order
func (r *Registry) Teams() []Descriptor {
	out := make([]Descriptor, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, r.byKey[k])
	}
	return out
}
