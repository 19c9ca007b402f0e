// oscillator_test.go - Oscillator waveform and phase accumulator tests

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

import (
	"math"
	"testing"
)

func TestOscillator_Defaults(t *testing.T) {
	o := NewOscillator()
	if o.frequency != 440.0 {
		t.Errorf("default frequency = %v, want 440", o.frequency)
	}
	if o.Waveform() != WAVE_SQUARE {
		t.Errorf("default waveform = %v, want square", o.Waveform())
	}
	if o.Volume() != 1.0 {
		t.Errorf("default volume = %v, want 1.0", o.Volume())
	}
	if o.phase != 0 {
		t.Errorf("initial phase = %v, want 0", o.phase)
	}
}

func TestOscillator_EffectiveFrequency(t *testing.T) {
	tests := []struct {
		name  string
		freq  float32
		shift int
		want  float32
	}{
		{"base octave", 440, OCTAVE_BASE, 440},
		{"octave up doubles", 440, OCTAVE_UP, 880},
		{"octave down halves", 440, OCTAVE_DOWN, 220},
		{"up from A3", 220, OCTAVE_UP, 440},
		{"down from A5", 880, OCTAVE_DOWN, 440},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOscillator()
			o.SetFrequency(tt.freq)
			o.SetOctaveShift(tt.shift)
			if got := o.EffectiveFrequency(); got != tt.want {
				t.Errorf("EffectiveFrequency() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOscillator_PhaseStaysInRange(t *testing.T) {
	for _, freq := range []float32{20, 440, 5000, 19999} {
		o := NewOscillator()
		o.SetFrequency(freq)
		o.SetWaveform(WAVE_SAW)
		for i := 0; i < 10000; i++ {
			o.NextSample(SAMPLE_RATE)
			if o.phase < 0 || o.phase >= 1.0 {
				t.Fatalf("freq %v: phase %v escaped [0,1) at sample %d", freq, o.phase, i)
			}
		}
	}
}

func TestOscillator_PhaseStepMatchesEffectiveFrequency(t *testing.T) {
	o := NewOscillator()
	o.SetFrequency(440)
	o.SetOctaveShift(OCTAVE_UP)
	o.SetWaveform(WAVE_SINE)
	o.NextSample(SAMPLE_RATE)

	want := float32(880.0 / SAMPLE_RATE)
	if diff := math.Abs(float64(o.phase - want)); diff > 1e-6 {
		t.Errorf("phase after one sample = %v, want %v", o.phase, want)
	}
}

func TestOscillator_WaveformValues(t *testing.T) {
	tests := []struct {
		name     string
		waveform Waveform
		phase    float32
		want     int16
	}{
		{"square first half high", WAVE_SQUARE, 0.25, SAMPLE_MAX},
		{"square second half low", WAVE_SQUARE, 0.75, SAMPLE_MIN},
		{"sine zero crossing", WAVE_SINE, 0.0, 0},
		{"sine positive peak", WAVE_SINE, 0.25, SAMPLE_MAX},
		{"triangle bottom", WAVE_TRIANGLE, 0.0, SAMPLE_MIN},
		{"triangle top", WAVE_TRIANGLE, 0.5, SAMPLE_MAX},
		{"saw start", WAVE_SAW, 0.0, SAMPLE_MIN},
		{"saw midpoint", WAVE_SAW, 0.5, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOscillator()
			o.SetWaveform(tt.waveform)
			o.phase = tt.phase
			if got := o.NextSample(SAMPLE_RATE); got != tt.want {
				t.Errorf("NextSample() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestOscillator_OffIsSilentAndFrozen(t *testing.T) {
	o := NewOscillator()
	o.SetWaveform(WAVE_OFF)
	o.phase = 0.3

	for i := 0; i < 100; i++ {
		if got := o.NextSample(SAMPLE_RATE); got != 0 {
			t.Fatalf("OFF oscillator produced %d", got)
		}
	}
	if o.phase != 0.3 {
		t.Errorf("OFF oscillator advanced phase to %v", o.phase)
	}
	if o.IsActive() {
		t.Error("OFF oscillator reports active")
	}
}

func TestOscillator_VolumeScalesOutput(t *testing.T) {
	o := NewOscillator()
	o.SetWaveform(WAVE_SQUARE)
	o.SetVolume(0.5)
	o.phase = 0.25

	// Volume scaling truncates toward zero: 32767 * 0.5 lands on 16383
	want := int16(SAMPLE_MAX / 2)
	if got := o.NextSample(SAMPLE_RATE); got != want {
		t.Errorf("half-volume square = %d, want %d", got, want)
	}
}

func TestOscillator_ParameterClamps(t *testing.T) {
	o := NewOscillator()

	o.SetVolume(1.5)
	if o.Volume() != 1.0 {
		t.Errorf("volume clamp high: got %v", o.Volume())
	}
	o.SetVolume(-0.5)
	if o.Volume() != 0.0 {
		t.Errorf("volume clamp low: got %v", o.Volume())
	}

	o.SetOctaveShift(5)
	if o.OctaveShift() != OCTAVE_UP {
		t.Errorf("octave clamp high: got %d", o.OctaveShift())
	}
	o.SetOctaveShift(-5)
	if o.OctaveShift() != OCTAVE_DOWN {
		t.Errorf("octave clamp low: got %d", o.OctaveShift())
	}

	o.SetFrequency(100000)
	if o.frequency != MAX_OSC_FREQUENCY {
		t.Errorf("frequency clamp high: got %v", o.frequency)
	}
	o.SetFrequency(0)
	if o.frequency != MIN_OSC_FREQUENCY {
		t.Errorf("frequency clamp low: got %v", o.frequency)
	}
}

func TestOscillator_SquarePeriod(t *testing.T) {
	// One cycle at 441 Hz is exactly 50 samples at 22050 Hz. Count
	// high-to-low transitions over one second of samples.
	o := NewOscillator()
	o.SetFrequency(441)
	o.SetWaveform(WAVE_SQUARE)

	transitions := 0
	prev := o.NextSample(SAMPLE_RATE)
	for i := 1; i < SAMPLE_RATE; i++ {
		s := o.NextSample(SAMPLE_RATE)
		if prev > 0 && s < 0 {
			transitions++
		}
		prev = s
	}
	if transitions < 440 || transitions > 442 {
		t.Errorf("high-to-low transitions = %d, want ~441", transitions)
	}
}

func TestOscillator_NormalizedRange(t *testing.T) {
	for _, wf := range []Waveform{WAVE_SQUARE, WAVE_SINE, WAVE_TRIANGLE, WAVE_SAW} {
		o := NewOscillator()
		o.SetWaveform(wf)
		o.SetFrequency(2.0) // Sub-audio, as the chorus LFO runs it
		for i := 0; i < 44100; i++ {
			v := o.NextSampleNormalized(SAMPLE_RATE)
			if v < -1.0 || v > 1.0 {
				t.Fatalf("%v: normalized sample %v outside [-1,1]", wf, v)
			}
		}
	}
}
