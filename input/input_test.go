package input

import (
	"testing"
	"time"

	"github.com/lixenwraith/gridiron/vmath"
)

// TestDirectionAllCombinations walks all 16 pressed-state combinations
func TestDirectionAllCombinations(t *testing.T) {
	for mask := 0; mask < 16; mask++ {
		var s Snapshot
		fwd, back, left, right := mask&1 != 0, mask&2 != 0, mask&4 != 0, mask&8 != 0
		s.Set(KeyForward, fwd)
		s.Set(KeyBackward, back)
		s.Set(KeyLeft, left)
		s.Set(KeyRight, right)

		d := Direction(s)

		if d.Y != 0 {
			t.Errorf("mask %04b: Y = %v, want 0", mask, d.Y)
		}
		if fwd == back && d.Z != 0 {
			t.Errorf("mask %04b: forward/backward equal but Z = %v", mask, d.Z)
		}
		if left == right && d.X != 0 {
			t.Errorf("mask %04b: left/right equal but X = %v", mask, d.X)
		}
		if fwd && !back && d.Z != -1 {
			t.Errorf("mask %04b: forward only, Z = %v, want -1", mask, d.Z)
		}
		if back && !fwd && d.Z != 1 {
			t.Errorf("mask %04b: backward only, Z = %v, want 1", mask, d.Z)
		}
		if left && !right && d.X != -1 {
			t.Errorf("mask %04b: left only, X = %v, want -1", mask, d.X)
		}
		if right && !left && d.X != 1 {
			t.Errorf("mask %04b: right only, X = %v, want 1", mask, d.X)
		}
	}
}

func TestDirectionNoInputIsZero(t *testing.T) {
	var s Snapshot
	if d := Direction(s); d != vmath.Zero {
		t.Errorf("empty snapshot direction = %+v, want zero", d)
	}
	if s.Any() {
		t.Error("empty snapshot reports a pressed key")
	}
}

func TestSnapshotPressRelease(t *testing.T) {
	var s Snapshot
	s.Press(KeyLeft)
	if !s.Pressed(KeyLeft) || !s.Any() {
		t.Fatal("press not recorded")
	}
	s.Release(KeyLeft)
	if s.Pressed(KeyLeft) {
		t.Error("release not recorded")
	}

	s.Press(KeyForward)
	s.Press(KeyRight)
	s.Clear()
	if s.Any() {
		t.Error("Clear left keys pressed")
	}

	// Out-of-range keys are ignored
	s.Press(Key(200))
	if s.Pressed(Key(200)) || s.Any() {
		t.Error("out-of-range key changed state")
	}
}

func TestDefaultBindings(t *testing.T) {
	b := DefaultBindings()
	cases := map[string]Action{
		"w": ActionForward, "W": ActionForward, "up": ActionForward, "ArrowUp": ActionForward,
		"s": ActionBackward, "a": ActionLeft, "d": ActionRight,
		"enter": ActionConfirm, "Return": ActionConfirm, " ": ActionConfirm,
		"esc": ActionQuit, "q": ActionQuit,
		"z": ActionNone,
	}
	for name, want := range cases {
		if got := b.Lookup(name); got != want {
			t.Errorf("Lookup(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestParseBindings(t *testing.T) {
	b, err := ParseBindings(map[string]string{
		"i": "forward",
		"k": "backward",
		"w": "",
	})
	if err != nil {
		t.Fatalf("ParseBindings: %v", err)
	}
	if b.Lookup("i") != ActionForward || b.Lookup("k") != ActionBackward {
		t.Error("custom bindings not applied")
	}
	if b.Lookup("w") != ActionNone {
		t.Error("empty action did not unbind key")
	}
	if b.Lookup("up") != ActionForward {
		t.Error("defaults lost when overriding")
	}

	if _, err := ParseBindings(map[string]string{"x": "jump"}); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestActionKey(t *testing.T) {
	pairs := map[Action]Key{
		ActionForward:  KeyForward,
		ActionBackward: KeyBackward,
		ActionLeft:     KeyLeft,
		ActionRight:    KeyRight,
	}
	for a, want := range pairs {
		k, ok := a.Key()
		if !ok || k != want {
			t.Errorf("%v.Key() = %v,%v want %v", a, k, ok, want)
		}
	}
	if _, ok := ActionConfirm.Key(); ok {
		t.Error("confirm should not map to a direction key")
	}
}

func TestLatchHoldAndRelease(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLatch(100 * time.Millisecond)

	l.Press(KeyForward, start)
	s := l.Update(start.Add(50 * time.Millisecond))
	if !s.Pressed(KeyForward) {
		t.Fatal("key released inside hold window")
	}

	// Repeat keeps it alive
	l.Press(KeyForward, start.Add(90*time.Millisecond))
	s = l.Update(start.Add(150 * time.Millisecond))
	if !s.Pressed(KeyForward) {
		t.Fatal("repeat press did not extend hold")
	}

	s = l.Update(start.Add(200 * time.Millisecond))
	if s.Pressed(KeyForward) {
		t.Error("key still held after hold window elapsed")
	}
}

func TestLatchOppositeReleases(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLatch(0)

	l.Press(KeyLeft, now)
	l.Press(KeyRight, now.Add(time.Millisecond))
	s := l.Update(now.Add(2 * time.Millisecond))

	if s.Pressed(KeyLeft) {
		t.Error("opposite key not released")
	}
	if d := Direction(s); d.X != 1 {
		t.Errorf("direction X = %v, want 1", d.X)
	}

	l.Reset()
	if l.Update(now).Any() {
		t.Error("Reset left keys pressed")
	}
}

func TestDirectionOppositesCancel(t *testing.T) {
	cases := []struct {
		name  string
		press []Key
		want  vmath.Vec3
	}{
		{"forward+backward", []Key{KeyForward, KeyBackward}, vmath.V3(0, 0, 0)},
		{"left+right", []Key{KeyLeft, KeyRight}, vmath.V3(0, 0, 0)},
		{"all four", []Key{KeyForward, KeyBackward, KeyLeft, KeyRight}, vmath.V3(0, 0, 0)},
		{"left+right+forward", []Key{KeyLeft, KeyRight, KeyForward}, vmath.V3(0, 0, -1)},
	}
	for _, tc := range cases {
		var s Snapshot
		for _, k := range tc.press {
			s.Press(k)
		}
		if d := Direction(s); d != tc.want {
			t.Errorf("%s: Direction = %v, want %v", tc.name, d, tc.want)
		}
	}
}

func TestSnapshotValueQueries(t *testing.T) {
	l := NewLatch(100 * time.Millisecond)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.Press(KeyRight, now)

	// Query methods work directly on a returned snapshot value
	if !l.Update(now).Any() || !l.Update(now).Pressed(KeyRight) {
		t.Fatal("pressed key not reported")
	}
	if l.Update(now.Add(100 * time.Millisecond)).Any() {
		t.Error("key held past the hold window")
	}
	t.Logf("✓ Snapshot queries usable on values")
}

func TestBindingsTableOrder(t *testing.T) {
	names := []string{"Escape", "ArrowUp", "Z", "W", "Enter", "Space", "M"}
	b := DefaultBindings()

	for run := 0; run < 5; run++ {
		table := b.Table(len(names), func(c int) string { return names[c] })

		want := []KeyCode{
			{0, ActionQuit},
			{1, ActionForward},
			{3, ActionForward},
			{4, ActionConfirm},
			{5, ActionConfirm},
			{6, ActionMute},
		}
		if len(table) != len(want) {
			t.Fatalf("table = %v, want %v", table, want)
		}
		for i := range want {
			if table[i] != want[i] {
				t.Errorf("run %d entry %d = %v, want %v", run, i, table[i], want[i])
			}
		}
	}
	t.Logf("✓ Bound keys resolved in code order")
}
