// audio_spectral_test.go - FFT verification of rendered output

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
	"math/cmplx"
	"testing"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// dominantBin renders mono samples from the engine, windows them and returns
// the FFT bin with the most energy (DC excluded).
func dominantBin(t *testing.T, e *AudioEngine, fftSize int) int {
	t.Helper()

	samples := make([]float64, 0, fftSize)
	for len(samples) < fftSize {
		e.renderBlock()
		for i := 0; i < BUFFER_SIZE && len(samples) < fftSize; i++ {
			samples = append(samples, float64(e.block[i*2]))
		}
	}

	in := make([]complex128, fftSize)
	for i, s := range samples {
		// Hann window against spectral leakage
		w := 0.5 * (1.0 - math.Cos(2.0*math.Pi*float64(i)/float64(fftSize-1)))
		in[i] = complex(s*w, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		t.Fatalf("fft plan: %v", err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		t.Fatalf("fft forward: %v", err)
	}

	best, bestMag := 0, 0.0
	for bin := 1; bin < fftSize/2; bin++ {
		if mag := cmplx.Abs(out[bin]); mag > bestMag {
			best, bestMag = bin, mag
		}
	}
	return best
}

func TestEngine_SpectralPeakAtTargetPitch(t *testing.T) {
	const fftSize = 8192

	tests := []struct {
		name string
		freq int
	}{
		{"A3", 220},
		{"A4", 440},
		{"A5", 880},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewAudioEngine(AUDIO_BACKEND_NONE)
			e.SetPitchSmoothingFactor(1.0)
			e.SetVolumeSmoothingFactor(1.0)
			e.SetAmplitude(100)
			e.SetFrequency(tt.freq)
			e.SetOscillatorWaveform(1, WAVE_SINE)

			// Let the parameters land and the waveform settle
			e.renderBlock()

			got := dominantBin(t, e, fftSize)
			want := int(math.Round(float64(tt.freq) * fftSize / SAMPLE_RATE))
			if got < want-1 || got > want+1 {
				t.Errorf("dominant bin = %d (%.1f Hz), want %d (%d Hz)",
					got, float64(got)*SAMPLE_RATE/fftSize, want, tt.freq)
			}
		})
	}
}

func TestEngine_OctaveShiftDoublesSpectralPeak(t *testing.T) {
	const fftSize = 8192

	e := NewAudioEngine(AUDIO_BACKEND_NONE)
	e.SetPitchSmoothingFactor(1.0)
	e.SetVolumeSmoothingFactor(1.0)
	e.SetAmplitude(100)
	e.SetFrequency(440)
	e.SetOscillatorWaveform(1, WAVE_SINE)
	e.SetOscillatorOctave(1, OCTAVE_UP)
	e.renderBlock()

	got := dominantBin(t, e, fftSize)
	want := int(math.Round(880.0 * fftSize / SAMPLE_RATE))
	if got < want-1 || got > want+1 {
		t.Errorf("shifted dominant bin = %d, want %d (880 Hz)", got, want)
	}
}
