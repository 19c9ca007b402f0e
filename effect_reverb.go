// effect_reverb.go - Freeverb-style reverb: parallel combs into an allpass cascade

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

// Full Freeverb topology: 8 parallel comb filters for the dense echo body,
// 4 series allpass filters to smear the echoes into a continuous tail.
const (
	NUM_COMBS     = 8
	NUM_ALLPASSES = 4
)

// Delay lengths in milliseconds, converted to samples at construction so the
// tuning survives a sample-rate change. Comb lengths are mutually prime-ish
// to avoid stacked resonances.
var (
	combDelaysMs = [NUM_COMBS]float32{
		25.31, 26.94, 28.96, 30.75,
		32.24, 33.81, 35.31, 36.66,
	}
	allpassDelaysMs = [NUM_ALLPASSES]float32{
		12.61, 10.00, 7.73, 5.10,
	}
)

const (
	// roomSize maps to comb feedback as 0.28 + roomSize*0.66, capped at
	// 0.94. Feedback reaching 1.0 circulates energy forever; the cap is a
	// hard safety invariant, not a tuning choice.
	REVERB_FEEDBACK_FLOOR = 0.28
	REVERB_FEEDBACK_SPAN  = 0.66
	REVERB_FEEDBACK_MAX   = 0.94

	REVERB_FIXED_GAIN    = 0.015 // Input attenuation into the comb bank
	REVERB_SCALE_WET     = 3.0   // Wet make-up gain after the allpass cascade
	REVERB_SCALE_DAMPING = 0.4   // damping parameter to one-pole coefficient

	// Noise gates. Signal this close to zero is forced to exact zero so
	// residual quantization noise cannot circulate in the feedback loops.
	REVERB_NOISE_GATE        = 100 // Input/output gate, sample units
	REVERB_FILTER_NOISE_GATE = 1.0 // Comb filter-store gate

	// Comb feedback runs at 8 extra fractional bits. Without the widening,
	// truncation at each pass makes the decaying tail step audibly
	// (zipper noise) instead of fading smoothly.
	REVERB_PRECISION_SHIFT = 8
)

type combFilter struct {
	buffer      []int16
	bufferIndex int
	feedback    float32
	filterStore float32 // One-pole damping state
	damp1       float32
	damp2       float32
}

type allpassFilter struct {
	buffer      []int16
	bufferIndex int
}

// ReverbEffect implements the Freeverb algorithm (Jezar at Dreampoint) on
// int16 samples with widened feedback arithmetic.
type ReverbEffect struct {
	sampleRate uint32

	roomSize  float32
	damping   float32
	wetDryMix float32
	enabled   bool

	combs     [NUM_COMBS]combFilter
	allpasses [NUM_ALLPASSES]allpassFilter
}

// NewReverbEffect builds the filter bank for the given rate. Starts disabled
// with roomSize 0.5, damping 0.5, mix 0.3.
func NewReverbEffect(sampleRate uint32) *ReverbEffect {
	r := &ReverbEffect{
		sampleRate: sampleRate,
		roomSize:   0.5,
		damping:    0.5,
		wetDryMix:  0.3,
	}
	for i := range r.combs {
		r.combs[i].buffer = make([]int16, msToSamples(combDelaysMs[i], sampleRate))
	}
	for i := range r.allpasses {
		r.allpasses[i].buffer = make([]int16, msToSamples(allpassDelaysMs[i], sampleRate))
	}
	r.updateCombs()
	return r
}

// combFeedbackFor maps roomSize to the comb feedback coefficient. Kept as a
// function so the stability property can be checked across the whole range.
func combFeedbackFor(roomSize float32) float32 {
	fb := REVERB_FEEDBACK_FLOOR + roomSize*REVERB_FEEDBACK_SPAN
	return clampFloat(fb, 0.0, REVERB_FEEDBACK_MAX)
}

// updateCombs pushes roomSize and damping into every comb filter.
func (r *ReverbEffect) updateCombs() {
	feedback := combFeedbackFor(r.roomSize)

	damp1 := r.damping * REVERB_SCALE_DAMPING
	damp2 := 1.0 - damp1

	for i := range r.combs {
		r.combs[i].feedback = feedback
		r.combs[i].damp1 = damp1
		r.combs[i].damp2 = damp2
	}
}

// processComb runs one sample through a comb filter and returns the
// pre-feedback buffer value. The damping one-pole runs at normal scale; the
// feedback accumulation runs at 8 extra fractional bits before truncating
// back to int16 storage.
func (r *ReverbEffect) processComb(c *combFilter, input int32) int16 {
	output := c.buffer[c.bufferIndex]

	c.filterStore = float32(output)*c.damp2 + c.filterStore*c.damp1
	if c.filterStore > -REVERB_FILTER_NOISE_GATE && c.filterStore < REVERB_FILTER_NOISE_GATE {
		c.filterStore = 0
	}

	input32 := input << REVERB_PRECISION_SHIFT
	feedback32 := int32(c.filterStore * c.feedback * (1 << REVERB_PRECISION_SHIFT))
	newValue := input32 + feedback32

	const maxVal = int32(SAMPLE_MAX) << REVERB_PRECISION_SHIFT
	const minVal = int32(SAMPLE_MIN) << REVERB_PRECISION_SHIFT
	if newValue > maxVal {
		newValue = maxVal
	} else if newValue < minVal {
		newValue = minVal
	}
	c.buffer[c.bufferIndex] = int16(newValue >> REVERB_PRECISION_SHIFT)

	c.bufferIndex++
	if c.bufferIndex >= len(c.buffer) {
		c.bufferIndex = 0
	}

	return output
}

// processAllpass runs one sample through an allpass diffusion stage.
func (r *ReverbEffect) processAllpass(a *allpassFilter, input int16) int16 {
	bufferOut := a.buffer[a.bufferIndex]

	output := int32(bufferOut) - int32(input)
	store := int32(input) + int32(bufferOut)/2

	a.buffer[a.bufferIndex] = clampSample(store)

	a.bufferIndex++
	if a.bufferIndex >= len(a.buffer) {
		a.bufferIndex = 0
	}

	return clampSample(output)
}

// Process runs one sample through the reverb. Disabled = bypass.
func (r *ReverbEffect) Process(input int16) int16 {
	if !r.enabled {
		return input
	}

	// Gate quiet inputs so quantization noise never enters the loops
	if input > -REVERB_NOISE_GATE && input < REVERB_NOISE_GATE {
		input = 0
	}

	scaledInput := int32(float32(input) * REVERB_FIXED_GAIN)

	var combSum int32
	for i := range r.combs {
		combSum += int32(r.processComb(&r.combs[i], scaledInput))
	}

	// Average the comb bank before diffusion to keep headroom
	allpassOut := clampSample(combSum / NUM_COMBS)
	for i := range r.allpasses {
		allpassOut = r.processAllpass(&r.allpasses[i], allpassOut)
	}

	wet := float32(allpassOut) * REVERB_SCALE_WET
	out := float32(input)*(1.0-r.wetDryMix) + wet*r.wetDryMix
	result := clampSample(int32(out))

	if result > -REVERB_NOISE_GATE && result < REVERB_NOISE_GATE {
		result = 0
	}
	return result
}

func (r *ReverbEffect) SetEnabled(enabled bool) {
	r.enabled = enabled
	debugf("[REVERB] enabled=%v room=%.2f damp=%.2f mix=%.2f",
		enabled, r.roomSize, r.damping, r.wetDryMix)
}

func (r *ReverbEffect) IsEnabled() bool { return r.enabled }

// SetRoomSize clamps to [0,1] and retunes the comb bank.
func (r *ReverbEffect) SetRoomSize(size float32) {
	r.roomSize = clampFloat(size, 0.0, 1.0)
	r.updateCombs()
}

// SetDamping clamps to [0,1] and retunes the comb bank.
func (r *ReverbEffect) SetDamping(damp float32) {
	r.damping = clampFloat(damp, 0.0, 1.0)
	r.updateCombs()
}

// SetMix clamps to [0,1].
func (r *ReverbEffect) SetMix(mix float32) {
	r.wetDryMix = clampFloat(mix, 0.0, 1.0)
}

func (r *ReverbEffect) RoomSize() float32 { return r.roomSize }
func (r *ReverbEffect) Damping() float32  { return r.damping }
func (r *ReverbEffect) Mix() float32      { return r.wetDryMix }

// Reset silences every filter buffer and damping state.
func (r *ReverbEffect) Reset() {
	for i := range r.combs {
		for j := range r.combs[i].buffer {
			r.combs[i].buffer[j] = 0
		}
		r.combs[i].filterStore = 0
	}
	for i := range r.allpasses {
		for j := range r.allpasses[i].buffer {
			r.allpasses[i].buffer[j] = 0
		}
	}
}
