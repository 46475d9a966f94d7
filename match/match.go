// Package match owns the menu/play state machine, the countdown clock and the per-frame tick
// All state is mutated on the caller's goroutine; nothing here locks
package match

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/lixenwraith/gridiron/camera"
	"github.com/lixenwraith/gridiron/entity"
	"github.com/lixenwraith/gridiron/input"
	"github.com/lixenwraith/gridiron/physics"
	"github.com/lixenwraith/gridiron/render"
	"github.com/lixenwraith/gridiron/team"
	"github.com/lixenwraith/gridiron/vmath"
	"go.uber.org/zap"
)

var (
	ErrUnknownTeam          = errors.New("unknown team")
	ErrInvalidQuarterLength = errors.New("quarter length must be positive and finite")
	ErrInvalidTransition    = errors.New("invalid phase transition")
	ErrInvalidConfig        = errors.New("invalid match config")
)

// Listener receives match lifecycle events on the tick goroutine
type Listener interface {
	OnKickoff(id uuid.UUID)
	OnClockExpired(id uuid.UUID)
}

// Config holds spawn layout and player tuning
type Config struct {
	AwayTeam       string
	HomeSpawn      vmath.Vec3
	HomeYaw        float64
	DefenderSpawns []vmath.Vec3
	DefenderYaw    float64
	// Bodies spawn this high and settle onto the ground
	SpawnHeight float64

	PlayerSpeed float64
	BodyRadius  float64
	BodyHeight  float64
	BodyMass    float64
}

// DefaultConfig returns the stock kickoff layout
func DefaultConfig() Config {
	return Config{
		AwayTeam:       "SF",
		HomeSpawn:      vmath.V3(0, 0, 10),
		HomeYaw:        0,
		DefenderSpawns: []vmath.Vec3{vmath.V3(0, 0, -5)},
		DefenderYaw:    0,
		SpawnHeight:    2,
		PlayerSpeed:    entity.DefaultSpeed,
		BodyRadius:     entity.DefaultRadius,
		BodyHeight:     entity.DefaultHeight,
		BodyMass:       entity.DefaultMass,
	}
}

// Deps are the collaborators a match drives
// Teams, Camera and Logger fall back to defaults when nil
type Deps struct {
	Surface render.Surface
	World   *physics.World
	Teams   *team.Registry
	Camera  *camera.Controller
	Logger  *zap.Logger
}

// Frame is what one tick surfaces to the UI boundary
type Frame struct {
	Phase     Phase
	Remaining float64
	Clock     string
	Substeps  int
	Expired   bool
}

// Match is the state machine
type Match struct {
	cfg       Config
	log       *zap.Logger
	teams     *team.Registry
	surface   render.Surface
	world     *physics.World
	camera    *camera.Controller
	listeners []Listener

	phase   Phase
	clock   countdown
	input   input.Snapshot
	overlay []string

	entities []*entity.Player
	active   *entity.Player
	home     team.Descriptor
	away     team.Descriptor
	id       uuid.UUID
	ticks    uint64
}

// New creates a match in the menu phase
func New(cfg Config, deps Deps) (*Match, error) {
	if deps.Surface == nil || deps.World == nil {
		return nil, fmt.Errorf("%w: surface and physics world are required", ErrInvalidConfig)
	}
	if len(cfg.DefenderSpawns) == 0 {
		return nil, fmt.Errorf("%w: at least one defender spawn required", ErrInvalidConfig)
	}
	if deps.Teams == nil {
		deps.Teams = team.Default()
	}
	if deps.Camera == nil {
		deps.Camera = camera.NewDefault()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &Match{
		cfg:     cfg,
		log:     deps.Logger,
		teams:   deps.Teams,
		surface: deps.Surface,
		world:   deps.World,
		camera:  deps.Camera,
		phase:   PhaseMenu,
	}, nil
}

// AddListener registers l for lifecycle events
func (m *Match) AddListener(l Listener) {
	if l != nil {
		m.listeners = append(m.listeners, l)
	}
}

// StartGame validates, spawns the match and enters PLAYING
// Every check runs before any state changes
func (m *Match) StartGame(homeKey string, quarterSeconds float64) error {
	if !CanTransition(m.phase, PhasePlaying) {
		return fmt.Errorf("%w: start game from %s", ErrInvalidTransition, m.phase)
	}
	if !(quarterSeconds > 0) || math.IsInf(quarterSeconds, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidQuarterLength, quarterSeconds)
	}

	// Spawn is all-or-nothing; a failure leaves phase and clock untouched
	if err := m.StartMatch(homeKey, m.cfg.AwayTeam); err != nil {
		return err
	}

	m.clock.reset(quarterSeconds)
	m.phase = PhasePlaying
	m.overlay = nil

	m.log.Info("kickoff",
		zap.String("match", m.id.String()),
		zap.String("home", m.home.Key),
		zap.String("away", m.away.Key),
		zap.Float64("quarter", quarterSeconds),
	)
	for _, l := range m.listeners {
		l.OnKickoff(m.id)
	}
	return nil
}

// StartMatch spawns one controlled home player and the defenders
// A previous entity set is torn down only after the new one is fully built
func (m *Match) StartMatch(homeKey, awayKey string) error {
	home, ok := m.teams.Lookup(homeKey)
	if !ok {
		return fmt.Errorf("%w: home %q", ErrUnknownTeam, homeKey)
	}
	away, ok := m.teams.Lookup(awayKey)
	if !ok {
		return fmt.Errorf("%w: away %q", ErrUnknownTeam, awayKey)
	}

	built := make([]*entity.Player, 0, 1+len(m.cfg.DefenderSpawns))
	abort := func(err error) error {
		for _, p := range built {
			p.Destroy()
		}
		return err
	}

	active, err := entity.NewPlayer(m.surface, m.world, m.spec(home, true, false, m.cfg.HomeSpawn, m.cfg.HomeYaw))
	if err != nil {
		return abort(err)
	}
	built = append(built, active)

	for _, spawn := range m.cfg.DefenderSpawns {
		p, err := entity.NewPlayer(m.surface, m.world, m.spec(away, false, true, spawn, m.cfg.DefenderYaw))
		if err != nil {
			return abort(err)
		}
		built = append(built, p)
	}

	if len(m.entities) > 0 {
		m.log.Debug("tearing down previous match", zap.String("match", m.id.String()), zap.Int("entities", len(m.entities)))
	}
	m.teardown()

	m.entities = built
	m.active = active
	m.home, m.away = home, away
	m.id = uuid.New()
	m.input.Clear()

	m.log.Debug("match spawned",
		zap.String("match", m.id.String()),
		zap.Int("entities", len(built)),
		zap.Int("bodies", m.world.BodyCount()),
	)
	return nil
}

func (m *Match) spec(d team.Descriptor, controlled, away bool, spawn vmath.Vec3, yaw float64) entity.Spec {
	return entity.Spec{
		Team:       d,
		Controlled: controlled,
		Away:       away,
		Position:   vmath.V3(spawn.X, m.cfg.SpawnHeight, spawn.Z),
		Yaw:        yaw,
		Speed:      m.cfg.PlayerSpeed,
		Radius:     m.cfg.BodyRadius,
		Height:     m.cfg.BodyHeight,
		Mass:       m.cfg.BodyMass,
	}
}

func (m *Match) teardown() {
	for _, p := range m.entities {
		p.Destroy()
	}
	m.entities = nil
	m.active = nil
}

// Tick advances one frame and always renders
// Order while playing: input, move, physics step, visual sync, camera, clock
func (m *Match) Tick(elapsed float64) Frame {
	// Negative and NaN elapsed count as no time
	if !(elapsed > 0) {
		elapsed = 0
	}
	m.ticks++

	substeps := 0
	if m.phase == PhasePlaying {
		substeps = m.simulate(elapsed)
	}

	m.surface.Render(m.camera.View(), m.hud())

	return Frame{
		Phase:     m.phase,
		Remaining: m.clock.remaining,
		Clock:     FormatClock(m.clock.remaining),
		Substeps:  substeps,
		Expired:   m.clock.expired,
	}
}

func (m *Match) simulate(elapsed float64) int {
	if m.active != nil {
		if err := m.active.Move(input.Direction(m.input)); err != nil {
			m.log.Warn("move failed", zap.Error(err))
		}
	}

	substeps := m.world.Step(elapsed)

	for _, p := range m.entities {
		if err := p.SyncVisualFromPhysics(); err != nil {
			m.log.Warn("sync failed", zap.String("team", p.Team().Key), zap.Error(err))
		}
	}

	if m.active != nil {
		m.camera.Update(m.active.Position(), elapsed)
	}

	if m.clock.advance(elapsed) {
		m.log.Info("clock expired", zap.String("match", m.id.String()), zap.Uint64("ticks", m.ticks))
		for _, l := range m.listeners {
			l.OnClockExpired(m.id)
		}
	}
	return substeps
}

func (m *Match) hud() render.HUD {
	hud := render.HUD{
		Title:  "GRIDIRON",
		Clock:  FormatClock(m.clock.remaining),
		Status: m.phase.String(),
	}
	if m.active != nil {
		hud.Title = fmt.Sprintf("%s vs %s", m.home.Key, m.away.Key)
	}
	if m.phase == PhasePlaying && m.clock.expired {
		hud.Status = "FINAL"
	}
	if m.phase == PhaseMenu {
		hud.Lines = m.overlay
	}
	return hud
}

// SetOverlay sets the text block drawn over the field while in the menu
func (m *Match) SetOverlay(lines []string) {
	m.overlay = lines
}

// Input returns the snapshot the host mutates between ticks
func (m *Match) Input() *input.Snapshot {
	return &m.input
}

// Phase returns the current phase
func (m *Match) Phase() Phase {
	return m.phase
}

// Remaining returns the countdown in seconds
func (m *Match) Remaining() float64 {
	return m.clock.remaining
}

// Expired reports whether the clock has run out
func (m *Match) Expired() bool {
	return m.clock.expired
}

// Entities returns a copy of the live entity list
func (m *Match) Entities() []*entity.Player {
	out := make([]*entity.Player, len(m.entities))
	copy(out, m.entities)
	return out
}

// Active returns the user-controlled entity, nil before the first match
func (m *Match) Active() *entity.Player {
	return m.active
}

// MatchID identifies the current match; uuid.Nil before the first match
func (m *Match) MatchID() uuid.UUID {
	return m.id
}

// Teams returns the home and away descriptors of the current match
func (m *Match) Teams() (home, away team.Descriptor) {
	return m.home, m.away
}

// Camera returns the chase camera
func (m *Match) Camera() *camera.Controller {
	return m.camera
}

// Ticks returns the number of Tick calls
func (m *Match) Ticks() uint64 {
	return m.ticks
}
