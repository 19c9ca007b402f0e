// audio_engine.go - Oscillator mixing, parameter smoothing and the generation loop

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
	"fmt"
	"sync"
	"sync/atomic"
)

// Engine lifecycle states
const (
	ENGINE_STOPPED = iota
	ENGINE_STARTING
	ENGINE_RUNNING
	ENGINE_STOPPING
)

// ChannelMode selects how the mono synthesis result is routed onto the
// stereo output frame.
type ChannelMode int

const (
	STEREO_BOTH ChannelMode = iota // Duplicate onto both channels
	LEFT_ONLY
	RIGHT_ONLY
)

// Master output gate. Three stacked effects accumulate low-level
// quantization grain; anything this close to zero is forced silent.
const MASTER_NOISE_GATE = 150

// oscParams is the control-thread view of one voice. The generation loop
// applies it to its Oscillator at block boundaries.
type oscParams struct {
	waveform    Waveform
	octaveShift int
	volume      float32
}

// effectParams is the control-thread view of the effects chain, applied to
// the chain by the generation loop at block boundaries.
type effectParams struct {
	delayEnabled  bool
	delayTimeMs   int
	delayFeedback float32
	delayMix      float32

	chorusEnabled bool
	chorusRate    float32
	chorusDepth   float32
	chorusMix     float32

	reverbEnabled bool
	reverbRoom    float32
	reverbDamp    float32
	reverbMix     float32
}

// AudioEngine owns three oscillator voices and one effects chain, exposes
// the control-surface parameter API, and runs the block generation loop.
//
// State is split into two regions. The shared region (targets, per-voice
// and per-effect parameters, smoothing factors, channel mode) is guarded by
// one mutex: setters lock unconditionally, the generation loop try-locks
// once per block and simply skips the update when the lock is contended —
// a stale block is inaudible, a blocked render is not. The loop region
// (voice phase, effect buffers, smoothed values) is touched by the loop
// goroutine only and needs no lock.
type AudioEngine struct {
	// Shared region
	mutex                 sync.Mutex
	targetFrequency       int
	targetAmplitude       int
	minFrequency          int
	maxFrequency          int
	pitchSmoothingFactor  float32
	volumeSmoothingFactor float32
	channelMode           ChannelMode
	voiceParams           [NUM_OSCILLATORS]oscParams
	fxParams              effectParams

	// Loop region
	voices            [NUM_OSCILLATORS]*Oscillator
	effects           *EffectsChain
	smoothedFrequency float32
	smoothedAmplitude float32
	loopChannelMode   ChannelMode
	appliedFx         effectParams
	block             [BUFFER_SIZE * NUM_CHANNELS]int16

	state   atomic.Int32
	backend int
	output  AudioOutput
	stop    chan struct{}
	done    chan struct{}
}

// NewAudioEngine builds an idle engine for the given output backend. The
// peripheral itself is not opened until Begin.
func NewAudioEngine(backend int) *AudioEngine {
	e := &AudioEngine{
		backend:               backend,
		targetFrequency:       DEFAULT_MIN_FREQUENCY,
		minFrequency:          DEFAULT_MIN_FREQUENCY,
		maxFrequency:          DEFAULT_MAX_FREQUENCY,
		pitchSmoothingFactor:  0.8,
		volumeSmoothingFactor: 0.8,
		smoothedFrequency:     DEFAULT_MIN_FREQUENCY,
		effects:               NewEffectsChain(SAMPLE_RATE),
	}
	for i := range e.voices {
		e.voices[i] = NewOscillator()
	}
	e.fxParams = snapshotEffectParams(e.effects)
	e.DefaultSettings()
	return e
}

func snapshotEffectParams(ec *EffectsChain) effectParams {
	return effectParams{
		delayTimeMs:   ec.Delay().DelayTime(),
		delayFeedback: ec.Delay().Feedback(),
		delayMix:      ec.Delay().Mix(),
		chorusRate:    ec.Chorus().Rate(),
		chorusDepth:   ec.Chorus().Depth(),
		chorusMix:     ec.Chorus().Mix(),
		reverbRoom:    ec.Reverb().RoomSize(),
		reverbDamp:    ec.Reverb().Damping(),
		reverbMix:     ec.Reverb().Mix(),
	}
}

// DefaultSettings restores the power-on voice configuration: voice 1 is a
// triangle at full volume, voices 2 and 3 are off at backing-voice levels,
// amplitude starts at zero.
func (e *AudioEngine) DefaultSettings() {
	e.SetAmplitude(0)

	e.SetOscillatorWaveform(1, WAVE_TRIANGLE)
	e.SetOscillatorOctave(1, OCTAVE_BASE)
	e.SetOscillatorVolume(1, 1.0)

	e.SetOscillatorWaveform(2, WAVE_OFF)
	e.SetOscillatorOctave(2, OCTAVE_BASE)
	e.SetOscillatorVolume(2, 0.6)

	e.SetOscillatorWaveform(3, WAVE_OFF)
	e.SetOscillatorOctave(3, OCTAVE_BASE)
	e.SetOscillatorVolume(3, 0.5)
}

// ============================================
// Control-surface setters
// ============================================

// SetFrequency updates the target pitch, clamped to the configured range.
// The generation loop chases it with exponential smoothing.
func (e *AudioEngine) SetFrequency(hz int) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.targetFrequency = clampInt(hz, e.minFrequency, e.maxFrequency)
}

// SetAmplitude updates the target loudness in percent, clamped to [0,100].
func (e *AudioEngine) SetAmplitude(percent int) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.targetAmplitude = clampInt(percent, 0, 100)
}

// validOscillator reports whether num addresses a voice. Out-of-range
// numbers are a caller bug worth a diagnostic, never a crash.
func validOscillator(num int) bool {
	if num < 1 || num > NUM_OSCILLATORS {
		debugf("[AUDIO] invalid oscillator number: %d", num)
		return false
	}
	return true
}

func (e *AudioEngine) SetOscillatorWaveform(num int, wf Waveform) {
	if !validOscillator(num) {
		return
	}
	if wf < WAVE_OFF || wf > WAVE_SAW {
		debugf("[AUDIO] invalid waveform: %d", wf)
		return
	}
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.voiceParams[num-1].waveform = wf
}

func (e *AudioEngine) SetOscillatorOctave(num int, octave int) {
	if !validOscillator(num) {
		return
	}
	if octave < OCTAVE_DOWN || octave > OCTAVE_UP {
		debugf("[AUDIO] invalid octave shift: %d", octave)
		return
	}
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.voiceParams[num-1].octaveShift = octave
}

func (e *AudioEngine) SetOscillatorVolume(num int, volume float32) {
	if !validOscillator(num) {
		return
	}
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.voiceParams[num-1].volume = clampFloat(volume, 0.0, 1.0)
}

// SetPitchSmoothingFactor sets how fast the rendered pitch chases the
// target: 1.0 = instant, small values = slow glide.
func (e *AudioEngine) SetPitchSmoothingFactor(factor float32) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.pitchSmoothingFactor = clampFloat(factor, 0.0, 1.0)
}

func (e *AudioEngine) SetVolumeSmoothingFactor(factor float32) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.volumeSmoothingFactor = clampFloat(factor, 0.0, 1.0)
}

// SetFrequencyRange reconfigures the playable range and re-clamps the
// current target into it.
func (e *AudioEngine) SetFrequencyRange(minHz, maxHz int) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.minFrequency = minHz
	e.maxFrequency = maxHz
	e.targetFrequency = clampInt(e.targetFrequency, minHz, maxHz)
}

func (e *AudioEngine) SetChannelMode(mode ChannelMode) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.channelMode = mode
}

// ============================================
// Effect parameter surface
// ============================================

func (e *AudioEngine) SetDelayEnabled(enabled bool) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.fxParams.delayEnabled = enabled
}

func (e *AudioEngine) SetDelayTime(ms int) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.fxParams.delayTimeMs = clampInt(ms, MIN_DELAY_TIME_MS, MAX_DELAY_TIME_MS)
}

func (e *AudioEngine) SetDelayFeedback(fb float32) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.fxParams.delayFeedback = clampFloat(fb, 0.0, MAX_DELAY_FEEDBACK)
}

func (e *AudioEngine) SetDelayMix(mix float32) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.fxParams.delayMix = clampFloat(mix, 0.0, 1.0)
}

func (e *AudioEngine) SetChorusEnabled(enabled bool) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.fxParams.chorusEnabled = enabled
}

func (e *AudioEngine) SetChorusRate(hz float32) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.fxParams.chorusRate = clampFloat(hz, CHORUS_MIN_RATE_HZ, CHORUS_MAX_RATE_HZ)
}

func (e *AudioEngine) SetChorusDepth(ms float32) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.fxParams.chorusDepth = clampFloat(ms, 0.0, CHORUS_MAX_DEPTH_MS)
}

func (e *AudioEngine) SetChorusMix(mix float32) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.fxParams.chorusMix = clampFloat(mix, 0.0, 1.0)
}

func (e *AudioEngine) SetReverbEnabled(enabled bool) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.fxParams.reverbEnabled = enabled
}

func (e *AudioEngine) SetReverbRoomSize(size float32) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.fxParams.reverbRoom = clampFloat(size, 0.0, 1.0)
}

func (e *AudioEngine) SetReverbDamping(damp float32) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.fxParams.reverbDamp = clampFloat(damp, 0.0, 1.0)
}

func (e *AudioEngine) SetReverbMix(mix float32) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.fxParams.reverbMix = clampFloat(mix, 0.0, 1.0)
}

// ============================================
// Read accessors (status/display surface)
// ============================================

func (e *AudioEngine) GetFrequency() int {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.targetFrequency
}

func (e *AudioEngine) GetAmplitude() int {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.targetAmplitude
}

func (e *AudioEngine) GetFrequencyRange() (int, int) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.minFrequency, e.maxFrequency
}

func (e *AudioEngine) GetChannelMode() ChannelMode {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.channelMode
}

func (e *AudioEngine) GetOscillatorWaveform(num int) Waveform {
	if !validOscillator(num) {
		return WAVE_OFF
	}
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.voiceParams[num-1].waveform
}

func (e *AudioEngine) GetOscillatorOctave(num int) int {
	if !validOscillator(num) {
		return 0
	}
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.voiceParams[num-1].octaveShift
}

func (e *AudioEngine) GetOscillatorVolume(num int) float32 {
	if !validOscillator(num) {
		return 0.0
	}
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.voiceParams[num-1].volume
}

func (e *AudioEngine) GetEffectParams() effectParams {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.fxParams
}

// State returns the engine lifecycle state (ENGINE_* constant).
func (e *AudioEngine) State() int {
	return int(e.state.Load())
}

// ============================================
// Lifecycle
// ============================================

// Begin opens the output peripheral and launches the generation loop. A
// peripheral failure leaves the engine stopped and silent; nothing else in
// the system depends on audio being up.
func (e *AudioEngine) Begin() error {
	if !e.state.CompareAndSwap(ENGINE_STOPPED, ENGINE_STARTING) {
		return fmt.Errorf("audio engine already running")
	}

	output, err := NewAudioOutput(e.backend, SAMPLE_RATE)
	if err != nil {
		e.state.Store(ENGINE_STOPPED)
		return fmt.Errorf("audio output init: %w", err)
	}
	e.output = output
	if err := e.output.Start(); err != nil {
		e.output.Close()
		e.output = nil
		e.state.Store(ENGINE_STOPPED)
		return fmt.Errorf("audio output start: %w", err)
	}

	e.DefaultSettings()

	e.stop = make(chan struct{})
	e.done = make(chan struct{})
	e.state.Store(ENGINE_RUNNING)
	go e.generationLoop()

	debugf("[AUDIO] generation loop started (%d Hz, %d-frame blocks)", SAMPLE_RATE, BUFFER_SIZE)
	return nil
}

// Stop signals the generation loop and waits for it to exit. The loop only
// observes the signal at a block boundary; there is no mid-buffer cancel.
func (e *AudioEngine) Stop() {
	if !e.state.CompareAndSwap(ENGINE_RUNNING, ENGINE_STOPPING) {
		return
	}
	close(e.stop)
	<-e.done

	// Stopping an unstarted device is backend-dependent; only stop a
	// peripheral that actually came up.
	if e.output.IsStarted() {
		e.output.Stop()
	}
	e.output.Close()
	e.output = nil
	e.state.Store(ENGINE_STOPPED)

	debugf("[AUDIO] generation loop stopped")
}

func (e *AudioEngine) generationLoop() {
	defer close(e.done)

	for {
		select {
		case <-e.stop:
			return
		default:
		}

		e.renderBlock()

		// The peripheral blocks until it can take the next block; that
		// backpressure is the loop's pacing. A failed submit is not
		// retried - one lost block only dents quality momentarily.
		if err := e.output.WriteBlock(e.block[:]); err != nil {
			debugf("[AUDIO] block submit failed: %v", err)
		}
	}
}

// renderBlock produces one output block. Called from the generation loop
// (and directly by tests, which never run it concurrently with the loop).
func (e *AudioEngine) renderBlock() {
	// Non-blocking parameter pickup. On contention the previous block's
	// parameters simply carry over; bounded staleness beats a stall.
	if e.mutex.TryLock() {
		targetF := float32(e.targetFrequency)
		targetA := float32(e.targetAmplitude)
		pitchFactor := e.pitchSmoothingFactor
		volumeFactor := e.volumeSmoothingFactor
		params := e.voiceParams
		fx := e.fxParams
		mode := e.channelMode
		e.mutex.Unlock()

		e.smoothedFrequency = smoothStep(e.smoothedFrequency, targetF, pitchFactor)
		e.smoothedAmplitude = smoothStep(e.smoothedAmplitude, targetA, volumeFactor)

		for i, p := range params {
			v := e.voices[i]
			v.SetFrequency(e.smoothedFrequency)
			v.SetWaveform(p.waveform)
			v.SetOctaveShift(p.octaveShift)
			v.SetVolume(p.volume)
		}
		e.applyEffectParams(fx)
		e.loopChannelMode = mode
	}

	gain := e.smoothedAmplitude / 100.0

	for i := 0; i < BUFFER_SIZE; i++ {
		// Average of the active voices, not a plain sum: adding and
		// removing voices must not change headroom.
		var mixed int32
		active := 0
		for _, v := range e.voices {
			if v.IsActive() {
				mixed += int32(v.NextSample(SAMPLE_RATE))
				active++
			}
		}
		var sample int16
		if active > 0 {
			sample = int16(mixed / int32(active))
		}

		sample = int16(float32(sample) * gain)
		sample = e.effects.Process(sample)

		if sample > -MASTER_NOISE_GATE && sample < MASTER_NOISE_GATE {
			sample = 0
		}

		switch e.loopChannelMode {
		case LEFT_ONLY:
			e.block[i*2] = sample
			e.block[i*2+1] = 0
		case RIGHT_ONLY:
			e.block[i*2] = 0
			e.block[i*2+1] = sample
		default:
			e.block[i*2] = sample
			e.block[i*2+1] = sample
		}
	}
}

// smoothStep advances current one exponential-smoothing step toward target.
// A factor at or above 1.0 lands exactly on the target, bit for bit.
func smoothStep(current, target, factor float32) float32 {
	if factor >= 1.0 {
		return target
	}
	return current + (target-current)*factor
}

// applyEffectParams pushes a parameter snapshot into the chain. Skipped when
// nothing changed, so a steady state costs no setter calls per block (delay
// resize and comb retuning are not free).
func (e *AudioEngine) applyEffectParams(fx effectParams) {
	if fx == e.appliedFx {
		return
	}
	e.appliedFx = fx

	d := e.effects.Delay()
	d.SetEnabled(fx.delayEnabled)
	d.SetDelayTime(fx.delayTimeMs)
	d.SetFeedback(fx.delayFeedback)
	d.SetMix(fx.delayMix)

	c := e.effects.Chorus()
	c.SetEnabled(fx.chorusEnabled)
	c.SetRate(fx.chorusRate)
	c.SetDepth(fx.chorusDepth)
	c.SetMix(fx.chorusMix)

	r := e.effects.Reverb()
	r.SetEnabled(fx.reverbEnabled)
	r.SetRoomSize(fx.reverbRoom)
	r.SetDamping(fx.reverbDamp)
	r.SetMix(fx.reverbMix)
}
