// Package audio plays the referee whistle at kickoff and the horn when the clock runs out
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const (
	sampleRate = beep.SampleRate(48000)

	blipFreq     = 880.0
	blipDuration = 40 * time.Millisecond
)

// Config controls the cue player
type Config struct {
	Enabled bool
	Muted   bool
	// Linear master gain, 1 is unity
	Volume float64
}

// DefaultConfig returns audio enabled at unity gain
func DefaultConfig() Config {
	return Config{Enabled: true, Volume: 1}
}

// SoundManager mixes one-shot cues into a single speaker stream
type SoundManager struct {
	mu          sync.Mutex
	cfg         Config
	log         *zap.Logger
	mixer       *beep.Mixer
	master      *effects.Volume
	initialized bool
}

// NewSoundManager creates a sound manager; call Initialize before anything is audible
func NewSoundManager(cfg Config, log *zap.Logger) *SoundManager {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Volume < 0 || math.IsNaN(cfg.Volume) {
		cfg.Volume = 0
	}
	mixer := &beep.Mixer{}
	master := newVolume(mixer, cfg.Volume)
	master.Silent = master.Silent || cfg.Muted
	return &SoundManager{
		cfg:    cfg,
		log:    log,
		mixer:  mixer,
		master: master,
	}
}

// Initialize opens the speaker; a disabled manager stays silent and returns nil
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.master)
	sm.initialized = true
	sm.log.Debug("audio initialized", zap.Int("rate", int(sampleRate)), zap.Float64("volume", sm.cfg.Volume))
	return nil
}

// Cleanup drops queued cues and detaches from the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Clear()
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Initialized reports whether the speaker is open
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// PlayWhistle plays the kickoff whistle
func (sm *SoundManager) PlayWhistle() {
	sm.play("whistle", NewWhistleGenerator(sampleRate))
}

// PlayHorn plays the end-of-clock horn
func (sm *SoundManager) PlayHorn() {
	sm.play("horn", NewHornGenerator(sampleRate))
}

// PlayBlip plays a short menu confirmation tone
func (sm *SoundManager) PlayBlip() {
	sm.play("blip", newVolume(NewOscillator(blipFreq, blipDuration, WaveSine, sampleRate), 0.2))
}

func (sm *SoundManager) play(name string, s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.log.Debug("cue", zap.String("sound", name))
}

// ToggleMute flips the master mute and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.cfg.Muted = !sm.cfg.Muted
	sm.applyMaster()
	return sm.cfg.Muted
}

// Muted reports the master mute state
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.cfg.Muted
}

// SetVolume sets the linear master gain; values at or below zero silence output
func (sm *SoundManager) SetVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if v < 0 || math.IsNaN(v) {
		v = 0
	}
	sm.cfg.Volume = v
	sm.applyMaster()
}

// Volume returns the linear master gain
func (sm *SoundManager) Volume() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.cfg.Volume
}

// applyMaster pushes volume and mute into the master stage; caller holds mu
func (sm *SoundManager) applyMaster() {
	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	if sm.cfg.Volume <= 0 {
		sm.master.Volume = 0
		sm.master.Silent = true
	} else {
		sm.master.Volume = math.Log2(sm.cfg.Volume)
		sm.master.Silent = false
	}
	if sm.cfg.Muted {
		sm.master.Silent = true
	}
}

// OnKickoff blows the whistle
func (sm *SoundManager) OnKickoff(id uuid.UUID) {
	sm.log.Debug("kickoff cue", zap.String("match", id.String()))
	sm.PlayWhistle()
}

// OnClockExpired sounds the horn
func (sm *SoundManager) OnClockExpired(id uuid.UUID) {
	sm.log.Debug("horn cue", zap.String("match", id.String()))
	sm.PlayHorn()
}
