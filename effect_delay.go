// effect_delay.go - Single-tap feedback delay over a circular buffer

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

// Delay time limits in milliseconds
const (
	MIN_DELAY_TIME_MS = 10
	MAX_DELAY_TIME_MS = 2000
)

// Feedback above this diverges; the setter makes >=1.0 unreachable.
const MAX_DELAY_FEEDBACK = 0.95

// DelayEffect echoes its input after a configurable time, optionally feeding
// the echo back into the buffer for repeats. Buffer length fixes the delay:
// the sample read at the write cursor is exactly len(buffer) samples old.
type DelayEffect struct {
	buffer     []int16
	writeIndex int

	sampleRate  uint32
	delayTimeMs int

	feedback  float32 // 0.0-0.95
	wetDryMix float32 // 0.0-1.0
	enabled   bool
}

// NewDelayEffect builds a delay line for delayTimeMs at the given rate.
// Starts disabled with feedback 0.5 and mix 0.3.
func NewDelayEffect(delayTimeMs int, sampleRate uint32) *DelayEffect {
	d := &DelayEffect{
		sampleRate:  sampleRate,
		delayTimeMs: clampInt(delayTimeMs, MIN_DELAY_TIME_MS, MAX_DELAY_TIME_MS),
		feedback:    0.5,
		wetDryMix:   0.3,
	}
	d.buffer = make([]int16, d.bufferSamples(d.delayTimeMs))
	return d
}

// bufferSamples converts a delay time to a buffer length, with a small
// safety margin.
func (d *DelayEffect) bufferSamples(timeMs int) int {
	return msToSamples(float32(timeMs), d.sampleRate) + 10
}

// Process runs one sample through the delay line. Disabled = bypass.
func (d *DelayEffect) Process(input int16) int16 {
	if !d.enabled {
		return input
	}

	delayed := d.buffer[d.writeIndex]

	// New buffer value = input + delayed echo scaled by feedback
	d.buffer[d.writeIndex] = clampSample(int32(input) + int32(float32(delayed)*d.feedback))

	d.writeIndex++
	if d.writeIndex >= len(d.buffer) {
		d.writeIndex = 0
	}

	out := float32(input)*(1.0-d.wetDryMix) + float32(delayed)*d.wetDryMix
	return clampSample(int32(out))
}

func (d *DelayEffect) SetEnabled(enabled bool) {
	d.enabled = enabled
	debugf("[DELAY] enabled=%v", enabled)
}

func (d *DelayEffect) IsEnabled() bool { return d.enabled }

// SetDelayTime resizes the buffer for the new time and clears it.
func (d *DelayEffect) SetDelayTime(timeMs int) {
	timeMs = clampInt(timeMs, MIN_DELAY_TIME_MS, MAX_DELAY_TIME_MS)
	d.delayTimeMs = timeMs

	newSize := d.bufferSamples(timeMs)
	if newSize != len(d.buffer) {
		d.buffer = make([]int16, newSize)
		if d.writeIndex >= newSize {
			d.writeIndex = 0
		}
		debugf("[DELAY] time=%dms buffer=%d samples", timeMs, newSize)
	}
}

// SetFeedback clamps to [0, 0.95]. Values at or above 1.0 would grow without
// bound, so they are rejected here rather than detected later.
func (d *DelayEffect) SetFeedback(fb float32) {
	d.feedback = clampFloat(fb, 0.0, MAX_DELAY_FEEDBACK)
}

// SetMix clamps to [0,1].
func (d *DelayEffect) SetMix(mix float32) {
	d.wetDryMix = clampFloat(mix, 0.0, 1.0)
}

func (d *DelayEffect) DelayTime() int    { return d.delayTimeMs }
func (d *DelayEffect) Feedback() float32 { return d.feedback }
func (d *DelayEffect) Mix() float32      { return d.wetDryMix }

// Reset silences the delay line without moving the write cursor.
func (d *DelayEffect) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
}
