// Package config loads the YAML game configuration
// Every field is optional; missing fields keep their defaults
package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/lixenwraith/gridiron/audio"
	"github.com/lixenwraith/gridiron/camera"
	"github.com/lixenwraith/gridiron/input"
	"github.com/lixenwraith/gridiron/logging"
	"github.com/lixenwraith/gridiron/match"
	"github.com/lixenwraith/gridiron/menu"
	"github.com/lixenwraith/gridiron/physics"
	"github.com/lixenwraith/gridiron/vmath"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Point is an x, y, z triple written as a YAML flow sequence
type Point [3]float64

// Vec converts to a vector
func (p Point) Vec() vmath.Vec3 {
	return vmath.V3(p[0], p[1], p[2])
}

func pointOf(v vmath.Vec3) Point {
	return Point{v.X, v.Y, v.Z}
}

type Config struct {
	Match   MatchConfig    `yaml:"match"`
	Physics PhysicsConfig  `yaml:"physics"`
	Camera  CameraConfig   `yaml:"camera"`
	Input   InputConfig    `yaml:"input"`
	Teams   string         `yaml:"teams"` // optional team YAML path
	Audio   AudioConfig    `yaml:"audio"`
	Log     logging.Config `yaml:"log"`
	Render  RenderConfig   `yaml:"render"`
}

type MatchConfig struct {
	AwayTeam       string    `yaml:"away_team"`
	HomeTeam       string    `yaml:"home_team"` // initial menu selection
	DefaultQuarter float64   `yaml:"default_quarter"`
	Quarters       []float64 `yaml:"quarters"`
	HomeSpawn      Point     `yaml:"home_spawn"`
	DefenderSpawns []Point   `yaml:"defender_spawns"`
	SpawnHeight    float64   `yaml:"spawn_height"`
	PlayerSpeed    float64   `yaml:"player_speed"`
}

type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`
	FixedStep   float64 `yaml:"fixed_step"`
	MaxSubSteps int     `yaml:"max_substeps"`
	Restitution float64 `yaml:"restitution"`
	Friction    float64 `yaml:"friction"`
	BodyRadius  float64 `yaml:"body_radius"`
	BodyHeight  float64 `yaml:"body_height"`
	BodyMass    float64 `yaml:"body_mass"`
}

type CameraConfig struct {
	Offset    Point   `yaml:"offset"`
	Smoothing float64 `yaml:"smoothing"`
	Mode      string  `yaml:"mode"`
}

type InputConfig struct {
	Bindings map[string]string `yaml:"bindings"`
	Hold     time.Duration     `yaml:"hold"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Muted   bool    `yaml:"muted"`
	Volume  float64 `yaml:"volume"`
}

type RenderConfig struct {
	FPS       int     `yaml:"fps"`
	ColorMode string  `yaml:"color_mode"` // auto, truecolor, 256
	Scale     float64 `yaml:"scale"`
	Width     int     `yaml:"width"` // window size for the graphical host
	Height    int     `yaml:"height"`
}

// Default returns the stock configuration
func Default() Config {
	mc := match.DefaultConfig()
	pc := physics.DefaultConfig()
	defenders := make([]Point, len(mc.DefenderSpawns))
	for i, s := range mc.DefenderSpawns {
		defenders[i] = pointOf(s)
	}
	ac := audio.DefaultConfig()

	return Config{
		Match: MatchConfig{
			AwayTeam:       mc.AwayTeam,
			HomeTeam:       "KC",
			DefaultQuarter: 120,
			Quarters:       append([]float64(nil), menu.DefaultQuarters...),
			HomeSpawn:      pointOf(mc.HomeSpawn),
			DefenderSpawns: defenders,
			SpawnHeight:    mc.SpawnHeight,
			PlayerSpeed:    mc.PlayerSpeed,
		},
		Physics: PhysicsConfig{
			Gravity:     pc.Gravity,
			FixedStep:   pc.FixedStep,
			MaxSubSteps: pc.MaxSubSteps,
			Restitution: pc.Restitution,
			Friction:    pc.Friction,
			BodyRadius:  mc.BodyRadius,
			BodyHeight:  mc.BodyHeight,
			BodyMass:    mc.BodyMass,
		},
		Camera: CameraConfig{
			Offset:    pointOf(camera.DefaultOffset),
			Smoothing: camera.DefaultSmoothing,
			Mode:      camera.ModeFixed.String(),
		},
		Input: InputConfig{
			Hold: input.DefaultHoldWindow,
		},
		Audio: AudioConfig{
			Enabled: ac.Enabled,
			Muted:   ac.Muted,
			Volume:  ac.Volume,
		},
		Log: logging.DefaultConfig(),
		Render: RenderConfig{
			FPS:       60,
			ColorMode: "auto",
			Scale:     1,
			Width:     960,
			Height:    640,
		},
	}
}

// Load reads and parses a config file
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result
// Unknown keys are rejected
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// A sequence would otherwise replace the default list only partly
	cfg.Match.Quarters = nil
	cfg.Match.DefenderSpawns = nil
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	def := Default()
	if cfg.Match.Quarters == nil {
		cfg.Match.Quarters = def.Match.Quarters
	}
	if cfg.Match.DefenderSpawns == nil {
		cfg.Match.DefenderSpawns = def.Match.DefenderSpawns
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section
func (c Config) Validate() error {
	if strings.TrimSpace(c.Match.AwayTeam) == "" {
		return fmt.Errorf("%w: match.away_team is empty", ErrInvalidConfig)
	}
	if !positive(c.Match.DefaultQuarter) {
		return fmt.Errorf("%w: match.default_quarter must be positive, got %v", ErrInvalidConfig, c.Match.DefaultQuarter)
	}
	if len(c.Match.Quarters) == 0 {
		return fmt.Errorf("%w: match.quarters is empty", ErrInvalidConfig)
	}
	for _, q := range c.Match.Quarters {
		if !positive(q) {
			return fmt.Errorf("%w: match.quarters entry %v", ErrInvalidConfig, q)
		}
	}
	if len(c.Match.DefenderSpawns) == 0 {
		return fmt.Errorf("%w: match.defender_spawns is empty", ErrInvalidConfig)
	}
	spawns := append([]Point{c.Match.HomeSpawn, c.Camera.Offset}, c.Match.DefenderSpawns...)
	for _, p := range spawns {
		if !finite(p[0]) || !finite(p[1]) || !finite(p[2]) {
			return fmt.Errorf("%w: non-finite coordinate %v", ErrInvalidConfig, p)
		}
	}
	if c.Match.SpawnHeight < 0 || !finite(c.Match.SpawnHeight) {
		return fmt.Errorf("%w: match.spawn_height must be >= 0", ErrInvalidConfig)
	}
	if !positive(c.Match.PlayerSpeed) {
		return fmt.Errorf("%w: match.player_speed must be positive", ErrInvalidConfig)
	}

	if err := c.PhysicsConfig().Validate(); err != nil {
		return fmt.Errorf("%w: physics: %v", ErrInvalidConfig, err)
	}
	if !positive(c.Physics.BodyRadius) || !positive(c.Physics.BodyHeight) || !positive(c.Physics.BodyMass) {
		return fmt.Errorf("%w: physics body radius, height and mass must be positive", ErrInvalidConfig)
	}

	if _, err := camera.ParseMode(c.Camera.Mode); err != nil {
		return fmt.Errorf("%w: camera: %v", ErrInvalidConfig, err)
	}
	if !(c.Camera.Smoothing > 0 && c.Camera.Smoothing <= 1) {
		return fmt.Errorf("%w: camera.smoothing must be in (0,1], got %v", ErrInvalidConfig, c.Camera.Smoothing)
	}

	if _, err := input.ParseBindings(c.Input.Bindings); err != nil {
		return fmt.Errorf("%w: input: %v", ErrInvalidConfig, err)
	}
	if c.Input.Hold <= 0 {
		return fmt.Errorf("%w: input.hold must be positive", ErrInvalidConfig)
	}

	if c.Audio.Volume < 0 || !finite(c.Audio.Volume) {
		return fmt.Errorf("%w: audio.volume must be >= 0", ErrInvalidConfig)
	}

	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if c.Render.FPS < 1 || c.Render.FPS > 240 {
		return fmt.Errorf("%w: render.fps must be in [1,240], got %d", ErrInvalidConfig, c.Render.FPS)
	}
	switch c.Render.ColorMode {
	case "auto", "truecolor", "256":
	default:
		return fmt.Errorf("%w: render.color_mode %q", ErrInvalidConfig, c.Render.ColorMode)
	}
	if !positive(c.Render.Scale) {
		return fmt.Errorf("%w: render.scale must be positive", ErrInvalidConfig)
	}
	if c.Render.Width < 1 || c.Render.Height < 1 {
		return fmt.Errorf("%w: render window size must be positive", ErrInvalidConfig)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
