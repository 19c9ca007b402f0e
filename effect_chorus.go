// effect_chorus.go - Modulated-delay chorus with an Oscillator as LFO

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

// Modulation convention: fixed base ± depth. The read point swings around a
// 10ms center by up to ±depth ms, clamped so it never leaves the buffer.
// With the default 7ms depth the delay varies between 3ms and 17ms.
const (
	CHORUS_BASE_DELAY_MS = 10.0
	CHORUS_MAX_DEPTH_MS  = 50.0

	CHORUS_MIN_RATE_HZ = 0.1
	CHORUS_MAX_RATE_HZ = 10.0
)

// ChorusEffect thickens the signal by mixing in a copy whose delay is swept
// by a low-frequency sine. The sweep pitch-shifts the copy slightly up and
// down (Doppler), which reads as multiple detuned sources. The LFO is a
// plain Oscillator running a sine at sub-audio rate.
type ChorusEffect struct {
	buffer     []int16
	writeIndex int

	sampleRate uint32

	lfo        *Oscillator
	lfoDepthMs float32 // Modulation depth in ms
	wetDryMix  float32
	enabled    bool
}

// NewChorusEffect sizes the buffer for the full modulation range
// (base + max depth) plus margin, so the swing can never read outside it.
func NewChorusEffect(sampleRate uint32) *ChorusEffect {
	c := &ChorusEffect{
		sampleRate: sampleRate,
		lfo:        NewOscillator(),
		lfoDepthMs: 7.0,
		wetDryMix:  0.4,
	}
	c.lfo.SetWaveform(WAVE_SINE)
	c.lfo.SetFrequency(2.0)
	c.lfo.SetVolume(1.0)

	c.buffer = make([]int16, msToSamples(CHORUS_BASE_DELAY_MS+CHORUS_MAX_DEPTH_MS, sampleRate)+100)
	return c
}

// Process writes the input, reads back at the LFO-modulated fractional
// offset with linear interpolation, and mixes. Disabled = bypass.
func (c *ChorusEffect) Process(input int16) int16 {
	if !c.enabled {
		return input
	}

	c.buffer[c.writeIndex] = input

	lfoValue := c.lfo.NextSampleNormalized(float32(c.sampleRate))

	delayMs := CHORUS_BASE_DELAY_MS + lfoValue*c.lfoDepthMs
	maxMs := float32(len(c.buffer)-2) * 1000.0 / float32(c.sampleRate)
	delayMs = clampFloat(delayMs, 0, maxMs)

	delayed := c.readInterpolated(delayMs / 1000.0 * float32(c.sampleRate))

	out := float32(input)*(1.0-c.wetDryMix) + float32(delayed)*c.wetDryMix
	result := clampSample(int32(out))

	c.writeIndex++
	if c.writeIndex >= len(c.buffer) {
		c.writeIndex = 0
	}

	return result
}

// readInterpolated reads the buffer delaySamples behind the write cursor,
// linearly interpolating between the two nearest samples. Wraparound at both
// buffer edges is handled explicitly.
func (c *ChorusEffect) readInterpolated(delaySamples float32) int16 {
	readPos := float32(c.writeIndex) - delaySamples
	size := float32(len(c.buffer))
	for readPos < 0 {
		readPos += size
	}
	for readPos >= size {
		readPos -= size
	}

	index1 := int(readPos)
	index2 := index1 + 1
	if index2 >= len(c.buffer) {
		index2 = 0
	}
	frac := readPos - float32(index1)

	s1 := float32(c.buffer[index1])
	s2 := float32(c.buffer[index2])
	return int16(s1*(1.0-frac) + s2*frac)
}

func (c *ChorusEffect) SetEnabled(enabled bool) {
	c.enabled = enabled
	debugf("[CHORUS] enabled=%v rate=%.1fHz depth=%.0fms mix=%.2f",
		enabled, c.Rate(), c.lfoDepthMs, c.wetDryMix)
}

func (c *ChorusEffect) IsEnabled() bool { return c.enabled }

// SetRate clamps the LFO speed to [0.1, 10] Hz.
func (c *ChorusEffect) SetRate(hz float32) {
	c.lfo.SetFrequency(clampFloat(hz, CHORUS_MIN_RATE_HZ, CHORUS_MAX_RATE_HZ))
}

func (c *ChorusEffect) Rate() float32 {
	return c.lfo.EffectiveFrequency()
}

// SetDepth clamps to [0, 50] ms. Depth 0 degenerates to a static delay at
// the base time.
func (c *ChorusEffect) SetDepth(ms float32) {
	c.lfoDepthMs = clampFloat(ms, 0.0, CHORUS_MAX_DEPTH_MS)
}

func (c *ChorusEffect) Depth() float32 { return c.lfoDepthMs }

// SetMix clamps to [0,1].
func (c *ChorusEffect) SetMix(mix float32) {
	c.wetDryMix = clampFloat(mix, 0.0, 1.0)
}

func (c *ChorusEffect) Mix() float32 { return c.wetDryMix }

// Reset silences the delay buffer. The LFO phase is left alone; modulation
// stays continuous across resets.
func (c *ChorusEffect) Reset() {
	for i := range c.buffer {
		c.buffer[i] = 0
	}
}
