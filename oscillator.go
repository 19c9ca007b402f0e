// oscillator.go - Phase-accumulator oscillator with selectable waveforms

/*
▄▄▄█████▓ ██░ ██ ▓█████  ██▀███  ▓█████  ███▄ ▄███▓ ██▓ ███▄    █
▓  ██▒ ▓▒▓██░ ██▒▓█   ▀ ▓██ ▒ ██▒▓█   ▀ ▓██▒▀█▀ ██▒▓██▒ ██ ▀█   █
▒ ▓██░ ▒░▒██▀▀██░▒███   ▓██ ░▄█ ▒▒███   ▓██    ▓██░▒██▒▓██  ▀█ ██▒
░ ▓██▓ ░ ░▓█ ░██ ▒▓█  ▄ ▒██▀▀█▄  ▒▓█  ▄ ▒██    ▒██ ░██░▓██▒  ▐▌██▒
  ▒██▒ ░ ░▓█▒░██▓░▒████▒░██▓ ▒██▒░▒████▒▒██▒   ░██▒░██░▒██░   ▓██░
  ▒ ░░    ▒ ░░▒░▒░░ ▒░ ░░ ▒▓ ░▒▓░░░ ▒░ ░░ ▒░   ░  ░░▓  ░ ▒░   ▒ ▒

(c) 2025 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/ThereminEngine
License: GPLv3 or later
*/

package main

// Waveform selects the oscillator's wave shape. WAVE_OFF produces silence and
// skips all per-sample work for that voice.
type Waveform int

const (
	WAVE_OFF Waveform = iota
	WAVE_SQUARE
	WAVE_SINE
	WAVE_TRIANGLE
	WAVE_SAW
)

func (w Waveform) String() string {
	switch w {
	case WAVE_OFF:
		return "OFF"
	case WAVE_SQUARE:
		return "SQR"
	case WAVE_SINE:
		return "SIN"
	case WAVE_TRIANGLE:
		return "TRI"
	case WAVE_SAW:
		return "SAW"
	}
	return "???"
}

// Octave shift positions
const (
	OCTAVE_DOWN = -1
	OCTAVE_BASE = 0
	OCTAVE_UP   = 1
)

// Oscillator generates one voice of a periodic waveform from a phase
// accumulator. Each instance is independent; the engine owns one per voice
// and the chorus effect owns one as its LFO.
type Oscillator struct {
	phase       float32 // Position within one cycle, always in [0,1)
	frequency   float32 // Base frequency in Hz
	waveform    Waveform
	octaveShift int     // -1, 0, +1
	volume      float32 // 0.0-1.0
}

// NewOscillator returns an oscillator at 440 Hz, square wave, full volume.
func NewOscillator() *Oscillator {
	return &Oscillator{
		frequency: 440.0,
		waveform:  WAVE_SQUARE,
		volume:    1.0,
	}
}

// SetFrequency clamps to the audible range.
func (o *Oscillator) SetFrequency(hz float32) {
	o.frequency = clampFloat(hz, MIN_OSC_FREQUENCY, MAX_OSC_FREQUENCY)
}

func (o *Oscillator) SetWaveform(wf Waveform) {
	o.waveform = wf
}

// SetOctaveShift clamps to {-1, 0, +1}.
func (o *Oscillator) SetOctaveShift(shift int) {
	o.octaveShift = clampInt(shift, OCTAVE_DOWN, OCTAVE_UP)
}

// SetVolume clamps to [0,1].
func (o *Oscillator) SetVolume(vol float32) {
	o.volume = clampFloat(vol, 0.0, 1.0)
}

func (o *Oscillator) Waveform() Waveform { return o.waveform }
func (o *Oscillator) OctaveShift() int   { return o.octaveShift }
func (o *Oscillator) Volume() float32    { return o.volume }

// IsActive reports whether the oscillator contributes to the mix.
func (o *Oscillator) IsActive() bool {
	return o.waveform != WAVE_OFF
}

// EffectiveFrequency returns the base frequency with the octave shift
// applied: exactly 0.5x, 1x or 2x.
func (o *Oscillator) EffectiveFrequency() float32 {
	switch o.octaveShift {
	case OCTAVE_DOWN:
		return o.frequency * 0.5
	case OCTAVE_UP:
		return o.frequency * 2.0
	}
	return o.frequency
}

// NextSample computes one sample for the current waveform, scales it by the
// voice volume and advances the phase accumulator. An OFF oscillator returns
// 0 without advancing phase.
func (o *Oscillator) NextSample(sampleRate float32) int16 {
	if o.waveform == WAVE_OFF {
		return 0
	}

	var sample int16
	switch o.waveform {
	case WAVE_SQUARE:
		if o.phase < 0.5 {
			sample = SAMPLE_MAX
		} else {
			sample = SAMPLE_MIN
		}
	case WAVE_SINE:
		sample = sineSample(o.phase)
	case WAVE_TRIANGLE:
		// Linear ramp up over [0,0.5), down over [0.5,1)
		if o.phase < 0.5 {
			sample = int16(SAMPLE_MIN + int32(o.phase*2*65535))
		} else {
			sample = int16(SAMPLE_MAX - int32((o.phase-0.5)*2*65535))
		}
	case WAVE_SAW:
		sample = int16(SAMPLE_MIN + int32(o.phase*65535))
	default:
		sample = 0
	}

	o.advancePhase(sampleRate)

	return int16(float32(sample) * o.volume)
}

// NextSampleNormalized returns the next sample scaled to [-1,1]. The chorus
// effect uses this to run an Oscillator as its LFO.
func (o *Oscillator) NextSampleNormalized(sampleRate float32) float32 {
	if o.waveform == WAVE_OFF {
		return 0
	}
	if o.waveform == WAVE_SINE {
		// Table already holds normalized values; skip the int16 round trip.
		v := sineSampleNorm(o.phase)
		o.advancePhase(sampleRate)
		return v * o.volume
	}
	return float32(o.NextSample(sampleRate)) / float32(SAMPLE_MAX+1)
}

func (o *Oscillator) advancePhase(sampleRate float32) {
	o.phase += o.EffectiveFrequency() / sampleRate
	for o.phase >= 1.0 {
		o.phase -= 1.0
	}
}
