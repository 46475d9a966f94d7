package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a streamer of one wave shape for duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		val := waveAt(o.wave, o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

func waveAt(w WaveType, phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (phase - 0.5)
	case WaveNoise:
		return rand.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// WhistleGenerator is a referee's pea whistle: a high tone warbled by a fast trill
type WhistleGenerator struct {
	sr      beep.SampleRate
	pos     int
	samples int
	phase   float64
}

// Whistle parameters
const (
	whistleFreq     = 2800.0
	whistleTrill    = 28.0
	whistleDepth    = 180.0
	whistleDuration = 450 * time.Millisecond
	whistleAttack   = 15 * time.Millisecond
	whistleRelease  = 80 * time.Millisecond
)

// NewWhistleGenerator creates a whistle generator of the standard length
func NewWhistleGenerator(sr beep.SampleRate) *WhistleGenerator {
	return &WhistleGenerator{sr: sr, samples: sr.N(whistleDuration)}
}

func (g *WhistleGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.samples {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.sr)

		// Pitch wobbles with the trapped pea
		freq := whistleFreq + whistleDepth*math.Sin(2*math.Pi*whistleTrill*t)
		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)

		tone := math.Sin(2 * math.Pi * g.phase)
		breath := (rand.Float64()*2 - 1) * 0.08
		amp := 0.3 * shape(g.pos, g.samples, g.sr.N(whistleAttack), g.sr.N(whistleRelease))
		val := (tone*0.92 + breath) * amp

		samples[i][0] = val
		samples[i][1] = val
		g.pos++
	}
	return len(samples), true
}

func (g *WhistleGenerator) Err() error { return nil }

// HornGenerator is the stadium end-of-clock horn: a low detuned square chord
type HornGenerator struct {
	sr      beep.SampleRate
	pos     int
	samples int
	phases  [3]float64
}

// Horn parameters
const (
	hornDuration = 1400 * time.Millisecond
	hornAttack   = 40 * time.Millisecond
	hornRelease  = 250 * time.Millisecond
)

var hornFreqs = [3]float64{110, 138.6, 164.8}

// NewHornGenerator creates a horn generator of the standard length
func NewHornGenerator(sr beep.SampleRate) *HornGenerator {
	return &HornGenerator{sr: sr, samples: sr.N(hornDuration)}
}

func (g *HornGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.samples {
			return i, i > 0
		}
		var sum float64
		for k, f := range hornFreqs {
			g.phases[k] += f / float64(g.sr)
			g.phases[k] -= math.Floor(g.phases[k])
			// Blend square and sine to soften the edges
			sum += 0.6*waveAt(WaveSquare, g.phases[k]) + 0.4*waveAt(WaveSine, g.phases[k])
		}
		amp := 0.25 * shape(g.pos, g.samples, g.sr.N(hornAttack), g.sr.N(hornRelease))
		val := sum / float64(len(hornFreqs)) * amp

		samples[i][0] = val
		samples[i][1] = val
		g.pos++
	}
	return len(samples), true
}

func (g *HornGenerator) Err() error { return nil }

// shape is a linear attack/release envelope in [0, 1]
func shape(pos, total, attack, release int) float64 {
	if attack > 0 && pos < attack {
		return float64(pos) / float64(attack)
	}
	if release > 0 && pos >= total-release {
		v := float64(total-pos) / float64(release)
		if v < 0 {
			return 0
		}
		return v
	}
	return 1
}

// newVolume wraps s with a linear gain; zero or less is silent
// math.Log2(0) is -Inf, so silence is flagged instead
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
