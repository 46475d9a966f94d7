package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/lixenwraith/gridiron/vmath"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w, err := NewWorld(DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func playerDef(pos vmath.Vec3) BodyDef {
	return BodyDef{
		Shape:         Cylinder{Radius: 0.5, Height: 2},
		Mass:          80,
		Position:      pos,
		FixedRotation: true,
	}
}

func TestStepSubStepBound(t *testing.T) {
	cases := []struct {
		name    string
		elapsed float64
		want    int
	}{
		{"zero", 0, 0},
		{"negative", -1, 0},
		{"nan", math.NaN(), 0},
		{"one frame", 1.0 / 60.0, 1},
		{"two frames", 2.0 / 60.0, 2},
		{"spike", 10, 3},
		{"huge spike", 1e9, 3},
		{"infinite", math.Inf(1), 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t)
			if _, err := w.AddBody(playerDef(vmath.V3(0, 2, 0))); err != nil {
				t.Fatalf("AddBody: %v", err)
			}
			got := w.Step(tc.elapsed)
			if got != tc.want {
				t.Errorf("Step(%v) = %d sub-steps, want %d", tc.elapsed, got, tc.want)
			}
		})
	}
}

func TestStepDropsExcessTime(t *testing.T) {
	w := newTestWorld(t)

	// Ten and a quarter frames in one call
	if n := w.Step(10.25 / 60.0); n != 3 {
		t.Fatalf("Step(10.25 frames) = %d, want 3", n)
	}
	// Excess must not carry into the next frame
	if n := w.Step(1.0 / 120.0); n != 0 {
		t.Errorf("expected dropped excess, next half-frame took %d sub-steps", n)
	}

	steps, simulated, dropped := w.Stats()
	if steps != 3 {
		t.Errorf("stats steps = %d, want 3", steps)
	}
	if math.Abs(simulated-3.0/60.0) > 1e-12 {
		t.Errorf("simulated = %v, want %v", simulated, 3.0/60.0)
	}
	if dropped <= 0 {
		t.Errorf("expected dropped time to be recorded, got %v", dropped)
	}
}

func TestStepAccumulatesPartialFrames(t *testing.T) {
	w := newTestWorld(t)

	if n := w.Step(1.0 / 120.0); n != 0 {
		t.Fatalf("half frame took %d sub-steps, want 0", n)
	}
	if n := w.Step(1.0 / 120.0); n != 1 {
		t.Errorf("second half frame took %d sub-steps, want 1", n)
	}
}

func TestBodyFallsAndRestsOnGround(t *testing.T) {
	w := newTestWorld(t)
	b, err := w.AddBody(playerDef(vmath.V3(0, 2, 10)))
	if err != nil {
		t.Fatalf("AddBody: %v", err)
	}

	for i := 0; i < 180; i++ {
		w.Step(1.0 / 60.0)
	}

	pos, _ := w.Position(b)
	if math.Abs(pos.Y-1.0) > 1e-9 {
		t.Errorf("resting height = %v, want 1.0 (half the cylinder height)", pos.Y)
	}
	if pos.X != 0 || pos.Z != 10 {
		t.Errorf("body drifted horizontally: %+v", pos)
	}
	vel, _ := w.Velocity(b)
	if vel.Y != 0 {
		t.Errorf("resting vertical velocity = %v, want 0", vel.Y)
	}
	if !w.Grounded(b) {
		t.Error("expected body to be grounded")
	}
	if !w.RotationLocked(b) {
		t.Error("expected rotation lock on dynamic body")
	}
}

func TestSetVelocityMovesBody(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Friction = 0
	w, err := NewWorld(cfg, nil)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	b, _ := w.AddBody(playerDef(vmath.V3(0, 1, 0)))

	if err := w.SetVelocity(b, vmath.V3(10, 0, 0)); err != nil {
		t.Fatalf("SetVelocity: %v", err)
	}
	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60.0)
	}

	pos, _ := w.Position(b)
	if math.Abs(pos.X-10) > 1e-6 {
		t.Errorf("after 1s at 10 m/s x = %v, want 10", pos.X)
	}
}

func TestFrictionStopsSlidingBody(t *testing.T) {
	w := newTestWorld(t)
	b, _ := w.AddBody(playerDef(vmath.V3(0, 1, 0)))
	_ = w.SetVelocity(b, vmath.V3(1, 0, 0))

	for i := 0; i < 120; i++ {
		w.Step(1.0 / 60.0)
	}

	vel, _ := w.Velocity(b)
	if vel.X != 0 || vel.Z != 0 {
		t.Errorf("expected friction to stop the body, velocity %+v", vel)
	}
}

func TestBodiesDoNotInterpenetrate(t *testing.T) {
	w := newTestWorld(t)
	a, _ := w.AddBody(playerDef(vmath.V3(0, 1, 0)))
	b, _ := w.AddBody(playerDef(vmath.V3(0, 1, 3)))

	for i := 0; i < 120; i++ {
		_ = w.SetVelocity(a, vmath.V3(0, 0, 5))
		w.Step(1.0 / 60.0)
	}

	pa, _ := w.Position(a)
	pb, _ := w.Position(b)
	dist := math.Hypot(pb.X-pa.X, pb.Z-pa.Z)
	if dist < 1.0-1e-9 {
		t.Errorf("bodies overlap: center distance %v < combined radius 1.0", dist)
	}
	if pb.Z <= 3 {
		t.Errorf("expected pushed body to move forward, z = %v", pb.Z)
	}
}

func TestAddBodyRejectsInvalidDefs(t *testing.T) {
	w := newTestWorld(t)

	defs := []struct {
		name string
		def  BodyDef
	}{
		{"no shape", BodyDef{Mass: 1}},
		{"zero mass cylinder", BodyDef{Shape: Cylinder{Radius: 1, Height: 1}}},
		{"negative radius", BodyDef{Shape: Cylinder{Radius: -1, Height: 1}, Mass: 1}},
		{"zero height", BodyDef{Shape: Cylinder{Radius: 1}, Mass: 1}},
		{"massive plane", BodyDef{Shape: Plane{}, Mass: 5}},
		{"nan position", BodyDef{Shape: Cylinder{Radius: 1, Height: 1}, Mass: 1, Position: vmath.V3(math.NaN(), 0, 0)}},
	}

	for _, tc := range defs {
		if _, err := w.AddBody(tc.def); !errors.Is(err, ErrInvalidBody) {
			t.Errorf("%s: expected ErrInvalidBody, got %v", tc.name, err)
		}
	}
	if n := w.BodyCount(); n != 0 {
		t.Errorf("rejected defs registered %d bodies", n)
	}
}

func TestRemoveBody(t *testing.T) {
	w := newTestWorld(t)
	b, _ := w.AddBody(playerDef(vmath.V3(0, 1, 0)))

	if n := w.BodyCount(); n != 1 {
		t.Fatalf("BodyCount = %d, want 1", n)
	}
	w.RemoveBody(b)
	w.RemoveBody(b) // second removal is a no-op

	if w.Alive(b) {
		t.Error("removed body still alive")
	}
	if n := w.BodyCount(); n != 0 {
		t.Errorf("BodyCount after removal = %d, want 0", n)
	}
	if _, err := w.Position(b); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("Position on removed body: expected ErrUnknownBody, got %v", err)
	}
	if err := w.SetVelocity(b, vmath.V3(1, 0, 0)); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("SetVelocity on removed body: expected ErrUnknownBody, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	bad := []Config{
		{FixedStep: 0, MaxSubSteps: 3},
		{FixedStep: 1.0 / 60, MaxSubSteps: 0},
		{FixedStep: 1.0 / 60, MaxSubSteps: 3, Restitution: 2},
		{FixedStep: 1.0 / 60, MaxSubSteps: 3, Friction: -1},
		{FixedStep: 1.0 / 60, MaxSubSteps: 3, Gravity: math.Inf(-1)},
	}
	for i, cfg := range bad {
		if _, err := NewWorld(cfg, nil); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("case %d: expected ErrInvalidConfig, got %v", i, err)
		}
	}
}
