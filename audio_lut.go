// audio_lut.go - Precomputed sine wavetable for oscillator synthesis

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

import "math"

// One period of a sine wave at full sample amplitude. 256 entries keeps the
// table inside a single cache page while staying below audibility for
// quantization error at 22050 Hz.
const sineLUTSize = 256

// sineLUT holds int16 samples for the audio path; sineLUTNorm holds the same
// period normalized to [-1,1] for LFO use (chorus modulation), avoiding a
// divide on every modulation step.
var (
	sineLUT     [sineLUTSize]int16
	sineLUTNorm [sineLUTSize]float32
)

func init() {
	for i := 0; i < sineLUTSize; i++ {
		s := math.Sin(2 * math.Pi * float64(i) / float64(sineLUTSize))
		sineLUT[i] = int16(s * SAMPLE_MAX)
		sineLUTNorm[i] = float32(s)
	}
}

// sineSample returns the table entry for phase p in [0,1).
func sineSample(p float32) int16 {
	return sineLUT[int(p*sineLUTSize)&(sineLUTSize-1)]
}

// sineSampleNorm returns the normalized table entry for phase p in [0,1).
func sineSampleNorm(p float32) float32 {
	return sineLUTNorm[int(p*sineLUTSize)&(sineLUTSize-1)]
}
