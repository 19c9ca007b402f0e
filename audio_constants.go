// audio_constants.go - Sample format, timing and note constants for the Theremin Engine

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

// Sample format (signed 16-bit). When upgrading to a 24-bit DAC, widen the
// sample type and update MIN/MAX; every component derives its clamps from here.
const (
	SAMPLE_MIN = -32768
	SAMPLE_MAX = 32767

	SAMPLE_RATE = 22050 // Hz
)

// Output block geometry. One block = 256 stereo frames = ~11.6ms at 22050 Hz.
// The peripheral consumes blocks at exactly SAMPLE_RATE, so a blocking submit
// paces the generation loop without any explicit timer.
const (
	BUFFER_SIZE      = 256 // Frames per block
	DMA_BUFFER_COUNT = 2   // Blocks in flight (double buffering)
	NUM_CHANNELS     = 2   // Interleaved stereo frames
)

const NUM_OSCILLATORS = 3

// Oscillator frequency hard limits in Hz. The lower bound admits sub-audio
// rates because the chorus runs an Oscillator as its 0.1-10 Hz LFO; audible
// voices are range-limited by the engine's min/max frequency instead.
const (
	MIN_OSC_FREQUENCY = 0.1
	MAX_OSC_FREQUENCY = 20000.0
)

// Default playable range (A3 to A5, two octaves)
const (
	DEFAULT_MIN_FREQUENCY = 220
	DEFAULT_MAX_FREQUENCY = 880
)

// Musical note frequencies (Hz), A4 = 440 concert pitch
const (
	NOTE_REST = 0

	NOTE_C3  = 131
	NOTE_CS3 = 139
	NOTE_D3  = 147
	NOTE_DS3 = 156
	NOTE_E3  = 165
	NOTE_F3  = 175
	NOTE_FS3 = 185
	NOTE_G3  = 196
	NOTE_GS3 = 208
	NOTE_A3  = 220
	NOTE_AS3 = 233
	NOTE_B3  = 247

	NOTE_C4  = 262
	NOTE_CS4 = 277
	NOTE_D4  = 294
	NOTE_DS4 = 311
	NOTE_E4  = 330
	NOTE_F4  = 349
	NOTE_FS4 = 370
	NOTE_G4  = 392
	NOTE_GS4 = 415
	NOTE_A4  = 440
	NOTE_AS4 = 466
	NOTE_B4  = 494

	NOTE_C5  = 523
	NOTE_CS5 = 554
	NOTE_D5  = 587
	NOTE_DS5 = 622
	NOTE_E5  = 659
	NOTE_F5  = 698
	NOTE_FS5 = 740
	NOTE_G5  = 784
	NOTE_GS5 = 831
	NOTE_A5  = 880
	NOTE_AS5 = 932
	NOTE_B5  = 988
)

// msToSamples converts a duration in milliseconds to a sample count at the
// given rate.
func msToSamples(ms float32, sampleRate uint32) int {
	return int(ms * float32(sampleRate) / 1000.0)
}

// clampSample clamps a wide intermediate value back into the sample range.
func clampSample(v int32) int16 {
	if v > SAMPLE_MAX {
		return SAMPLE_MAX
	}
	if v < SAMPLE_MIN {
		return SAMPLE_MIN
	}
	return int16(v)
}

func clampFloat(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
