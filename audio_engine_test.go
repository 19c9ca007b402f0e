// audio_engine_test.go - Engine parameter, smoothing and mixing tests

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
	"testing"
	"time"
)

func newTestEngine() *AudioEngine {
	return NewAudioEngine(AUDIO_BACKEND_NONE)
}

func TestEngine_DefaultSettings(t *testing.T) {
	e := newTestEngine()

	if got := e.GetAmplitude(); got != 0 {
		t.Errorf("default amplitude = %d, want 0", got)
	}
	if wf := e.GetOscillatorWaveform(1); wf != WAVE_TRIANGLE {
		t.Errorf("osc1 waveform = %v, want triangle", wf)
	}
	if v := e.GetOscillatorVolume(1); v != 1.0 {
		t.Errorf("osc1 volume = %v, want 1.0", v)
	}
	if wf := e.GetOscillatorWaveform(2); wf != WAVE_OFF {
		t.Errorf("osc2 waveform = %v, want off", wf)
	}
	if v := e.GetOscillatorVolume(2); v != 0.6 {
		t.Errorf("osc2 volume = %v, want 0.6", v)
	}
	if wf := e.GetOscillatorWaveform(3); wf != WAVE_OFF {
		t.Errorf("osc3 waveform = %v, want off", wf)
	}
	if v := e.GetOscillatorVolume(3); v != 0.5 {
		t.Errorf("osc3 volume = %v, want 0.5", v)
	}
	if lo, hi := e.GetFrequencyRange(); lo != DEFAULT_MIN_FREQUENCY || hi != DEFAULT_MAX_FREQUENCY {
		t.Errorf("default range = [%d,%d], want [%d,%d]", lo, hi, DEFAULT_MIN_FREQUENCY, DEFAULT_MAX_FREQUENCY)
	}
}

func TestEngine_TargetClamping(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name string
		set  func()
		get  func() int
		want int
	}{
		{"frequency above range", func() { e.SetFrequency(5000) }, e.GetFrequency, DEFAULT_MAX_FREQUENCY},
		{"frequency below range", func() { e.SetFrequency(10) }, e.GetFrequency, DEFAULT_MIN_FREQUENCY},
		{"frequency in range", func() { e.SetFrequency(440) }, e.GetFrequency, 440},
		{"amplitude above 100", func() { e.SetAmplitude(150) }, e.GetAmplitude, 100},
		{"amplitude below 0", func() { e.SetAmplitude(-5) }, e.GetAmplitude, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.set()
			if got := tt.get(); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEngine_FrequencyRangeReclampsTarget(t *testing.T) {
	e := newTestEngine()
	e.SetFrequency(800)

	e.SetFrequencyRange(300, 600)
	if got := e.GetFrequency(); got != 600 {
		t.Errorf("target after range shrink = %d, want 600", got)
	}

	e.SetFrequencyRange(650, 900)
	if got := e.GetFrequency(); got != 650 {
		t.Errorf("target after range raise = %d, want 650", got)
	}
}

func TestEngine_InvalidOscillatorIndexIsNoOp(t *testing.T) {
	e := newTestEngine()

	for _, num := range []int{0, -1, 4, 99} {
		e.SetOscillatorWaveform(num, WAVE_SAW)
		e.SetOscillatorVolume(num, 0.1)
		e.SetOscillatorOctave(num, OCTAVE_UP)

		if wf := e.GetOscillatorWaveform(num); wf != WAVE_OFF {
			t.Errorf("waveform for invalid index %d = %v", num, wf)
		}
		if v := e.GetOscillatorVolume(num); v != 0 {
			t.Errorf("volume for invalid index %d = %v", num, v)
		}
	}
	// Valid voices untouched by the rejected writes
	if wf := e.GetOscillatorWaveform(1); wf != WAVE_TRIANGLE {
		t.Errorf("osc1 corrupted by invalid writes: %v", wf)
	}
}

func TestEngine_SmoothingExactAtFactorOne(t *testing.T) {
	e := newTestEngine()
	e.SetPitchSmoothingFactor(1.0)
	e.SetVolumeSmoothingFactor(1.0)
	e.SetFrequency(880)
	e.SetAmplitude(75)

	e.renderBlock()

	if e.smoothedFrequency != 880.0 {
		t.Errorf("smoothed frequency = %v, want exactly 880", e.smoothedFrequency)
	}
	if e.smoothedAmplitude != 75.0 {
		t.Errorf("smoothed amplitude = %v, want exactly 75", e.smoothedAmplitude)
	}
}

func TestEngine_SmoothingConverges(t *testing.T) {
	e := newTestEngine()
	e.SetPitchSmoothingFactor(0.5)
	e.SetFrequency(880)

	prev := e.smoothedFrequency
	for i := 0; i < 50; i++ {
		e.renderBlock()
		if e.smoothedFrequency < prev {
			t.Fatalf("smoothed frequency moved away from target: %v -> %v", prev, e.smoothedFrequency)
		}
		prev = e.smoothedFrequency
	}
	if diff := 880 - e.smoothedFrequency; diff > 0.01 || diff < -0.01 {
		t.Errorf("smoothed frequency = %v after 50 blocks, want ~880", e.smoothedFrequency)
	}
}

// peakAmplitude renders blocks and returns the largest absolute left-channel
// sample seen.
func peakAmplitude(e *AudioEngine, blocks int) int {
	peak := 0
	for b := 0; b < blocks; b++ {
		e.renderBlock()
		for i := 0; i < BUFFER_SIZE; i++ {
			v := int(e.block[i*2])
			if v < 0 {
				v = -v
			}
			if v > peak {
				peak = v
			}
		}
	}
	return peak
}

func TestEngine_MixingAveragesActiveVoices(t *testing.T) {
	// One square at full volume peaks near full scale. Adding a second
	// ACTIVE but silent voice (square at volume 0) halves the mix because
	// the average divides by the active count, not the audible count.
	solo := newTestEngine()
	solo.SetPitchSmoothingFactor(1.0)
	solo.SetVolumeSmoothingFactor(1.0)
	solo.SetAmplitude(100)
	solo.SetFrequency(440)
	solo.SetOscillatorWaveform(1, WAVE_SQUARE)

	soloPeak := peakAmplitude(solo, 10)
	if soloPeak < SAMPLE_MAX-1 {
		t.Fatalf("solo square peak = %d, want ~%d", soloPeak, SAMPLE_MAX)
	}

	duo := newTestEngine()
	duo.SetPitchSmoothingFactor(1.0)
	duo.SetVolumeSmoothingFactor(1.0)
	duo.SetAmplitude(100)
	duo.SetFrequency(440)
	duo.SetOscillatorWaveform(1, WAVE_SQUARE)
	duo.SetOscillatorWaveform(2, WAVE_SQUARE)
	duo.SetOscillatorVolume(2, 0)

	duoPeak := peakAmplitude(duo, 10)
	want := soloPeak / 2
	if duoPeak < want-2 || duoPeak > want+2 {
		t.Errorf("duo peak = %d, want ~%d (half of solo)", duoPeak, want)
	}
}

func TestEngine_ThreeIdenticalVoicesMatchOne(t *testing.T) {
	// Three identical in-phase voices average back to one voice's output.
	one := newTestEngine()
	one.SetPitchSmoothingFactor(1.0)
	one.SetVolumeSmoothingFactor(1.0)
	one.SetAmplitude(100)
	one.SetFrequency(440)
	one.SetOscillatorWaveform(1, WAVE_SQUARE)

	three := newTestEngine()
	three.SetPitchSmoothingFactor(1.0)
	three.SetVolumeSmoothingFactor(1.0)
	three.SetAmplitude(100)
	three.SetFrequency(440)
	for i := 1; i <= 3; i++ {
		three.SetOscillatorWaveform(i, WAVE_SQUARE)
		three.SetOscillatorVolume(i, 1.0)
	}

	for b := 0; b < 10; b++ {
		one.renderBlock()
		three.renderBlock()
		for i := range one.block {
			a, c := one.block[i], three.block[i]
			// Integer division of the 3-voice sum loses at most 1
			if d := int(a) - int(c); d < -1 || d > 1 {
				t.Fatalf("block %d sample %d: one=%d three=%d", b, i, a, c)
			}
		}
	}
}

func TestEngine_ZeroAmplitudeIsSilent(t *testing.T) {
	e := newTestEngine()
	e.SetPitchSmoothingFactor(1.0)
	e.SetVolumeSmoothingFactor(1.0)
	e.SetOscillatorWaveform(1, WAVE_SQUARE)

	if peak := peakAmplitude(e, 5); peak != 0 {
		t.Errorf("amplitude 0 produced peak %d", peak)
	}
}

func TestEngine_MasterNoiseGate(t *testing.T) {
	// Amplitude chosen so the scaled square sits inside the gate window:
	// every output sample must be forced to exact zero.
	e := newTestEngine()
	e.SetPitchSmoothingFactor(1.0)
	e.SetVolumeSmoothingFactor(1.0)
	e.SetOscillatorWaveform(1, WAVE_SQUARE)
	e.SetOscillatorVolume(1, 0.004) // ~131 peak before gain
	e.SetAmplitude(100)

	if peak := peakAmplitude(e, 5); peak != 0 {
		t.Errorf("sub-gate signal leaked with peak %d", peak)
	}
}

func TestEngine_ChannelModes(t *testing.T) {
	tests := []struct {
		name      string
		mode      ChannelMode
		wantLeft  bool
		wantRight bool
	}{
		{"stereo both", STEREO_BOTH, true, true},
		{"left only", LEFT_ONLY, true, false},
		{"right only", RIGHT_ONLY, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			e.SetPitchSmoothingFactor(1.0)
			e.SetVolumeSmoothingFactor(1.0)
			e.SetAmplitude(100)
			e.SetOscillatorWaveform(1, WAVE_SQUARE)
			e.SetChannelMode(tt.mode)

			e.renderBlock()

			var left, right bool
			for i := 0; i < BUFFER_SIZE; i++ {
				if e.block[i*2] != 0 {
					left = true
				}
				if e.block[i*2+1] != 0 {
					right = true
				}
			}
			if left != tt.wantLeft || right != tt.wantRight {
				t.Errorf("left=%v right=%v, want left=%v right=%v", left, right, tt.wantLeft, tt.wantRight)
			}
			if tt.mode == STEREO_BOTH {
				for i := 0; i < BUFFER_SIZE; i++ {
					if e.block[i*2] != e.block[i*2+1] {
						t.Fatal("stereo-both channels differ")
					}
				}
			}
		})
	}
}

func TestEngine_OutputFrequency(t *testing.T) {
	// A 441 Hz square through the whole engine path: count high-to-low
	// transitions on the left channel over one second of blocks.
	e := newTestEngine()
	e.SetPitchSmoothingFactor(1.0)
	e.SetVolumeSmoothingFactor(1.0)
	e.SetAmplitude(100)
	e.SetFrequency(441)
	e.SetOscillatorWaveform(1, WAVE_SQUARE)

	blocks := SAMPLE_RATE / BUFFER_SIZE
	transitions := 0
	var prev int16
	first := true
	for b := 0; b < blocks; b++ {
		e.renderBlock()
		for i := 0; i < BUFFER_SIZE; i++ {
			s := e.block[i*2]
			if !first && prev > 0 && s < 0 {
				transitions++
			}
			prev = s
			first = false
		}
	}

	seconds := float64(blocks*BUFFER_SIZE) / float64(SAMPLE_RATE)
	want := 441 * seconds
	got := float64(transitions)
	if got < want*0.98 || got > want*1.02 {
		t.Errorf("transitions = %d over %.2fs, want ~%.0f", transitions, seconds, want)
	}
}

func TestEngine_BeginStopLifecycle(t *testing.T) {
	e := newTestEngine()

	if e.State() != ENGINE_STOPPED {
		t.Fatalf("initial state = %d, want stopped", e.State())
	}
	if err := e.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if e.State() != ENGINE_RUNNING {
		t.Errorf("state after Begin = %d, want running", e.State())
	}
	if !e.output.IsStarted() {
		t.Error("output peripheral not started after Begin")
	}
	if err := e.Begin(); err == nil {
		t.Error("second Begin succeeded, want error")
	}

	time.Sleep(50 * time.Millisecond)

	e.Stop()
	if e.State() != ENGINE_STOPPED {
		t.Errorf("state after Stop = %d, want stopped", e.State())
	}
	e.Stop() // Second stop is a no-op

	// The engine restarts cleanly after a full stop
	if err := e.Begin(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	e.Stop()
}

func TestEngine_MelodyRestoresVoiceState(t *testing.T) {
	e := newTestEngine()
	e.SetFrequency(500)
	e.SetOscillatorWaveform(1, WAVE_SAW)
	e.SetOscillatorVolume(1, 0.8)
	e.SetOscillatorOctave(1, OCTAVE_UP)
	e.SetOscillatorWaveform(2, WAVE_SINE)
	e.SetOscillatorVolume(2, 0.3)

	notes := []int{NOTE_C4, NOTE_REST, NOTE_E4}
	durations := []int{1, 1, 1}
	e.PlayMelody(notes, durations, 2, WAVE_SQUARE, 0.5, 60)

	if got := e.GetFrequency(); got != 500 {
		t.Errorf("frequency after melody = %d, want 500", got)
	}
	if got := e.GetAmplitude(); got != 0 {
		t.Errorf("amplitude after melody = %d, want 0", got)
	}
	if wf := e.GetOscillatorWaveform(1); wf != WAVE_SAW {
		t.Errorf("osc1 waveform after melody = %v, want saw", wf)
	}
	if v := e.GetOscillatorVolume(1); v != 0.8 {
		t.Errorf("osc1 volume after melody = %v, want 0.8", v)
	}
	if o := e.GetOscillatorOctave(1); o != OCTAVE_UP {
		t.Errorf("osc1 octave after melody = %v, want up", o)
	}
	if wf := e.GetOscillatorWaveform(2); wf != WAVE_SINE {
		t.Errorf("osc2 waveform after melody = %v, want sine", wf)
	}
	if v := e.GetOscillatorVolume(2); v != 0.3 {
		t.Errorf("osc2 volume after melody = %v, want 0.3", v)
	}
	if wf := e.GetOscillatorWaveform(3); wf != WAVE_OFF {
		t.Errorf("osc3 waveform after melody = %v, want off", wf)
	}

	e.PlayMelody(notes, durations, 99, WAVE_SQUARE, 0.5, 60) // Invalid voice is a no-op
	if got := e.GetFrequency(); got != 500 {
		t.Errorf("frequency after rejected melody = %d, want 500", got)
	}
}

func TestEngine_EffectParamsReachChain(t *testing.T) {
	e := newTestEngine()
	e.SetDelayEnabled(true)
	e.SetDelayTime(500)
	e.SetDelayFeedback(0.7)
	e.SetReverbEnabled(true)
	e.SetReverbRoomSize(0.9)

	// Parameters land in the chain at the next block boundary
	e.renderBlock()

	if !e.effects.IsDelayEnabled() {
		t.Error("delay enable did not reach the chain")
	}
	if got := e.effects.Delay().DelayTime(); got != 500 {
		t.Errorf("delay time in chain = %d, want 500", got)
	}
	if got := e.effects.Delay().Feedback(); got != 0.7 {
		t.Errorf("delay feedback in chain = %v, want 0.7", got)
	}
	if !e.effects.IsReverbEnabled() {
		t.Error("reverb enable did not reach the chain")
	}
	if got := e.effects.Reverb().RoomSize(); got != 0.9 {
		t.Errorf("reverb room in chain = %v, want 0.9", got)
	}
}
