// audio_melody.go - Scripted melody playback and the audible system test

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

import "time"

// PlayMelody plays a note sequence on one voice, silencing the others, then
// restores the previous configuration. Each note plays for staccato * its
// duration with a silent gap for the remainder; staccato 1.0 is legato.
// A NOTE_REST entry is a full-duration silence. Blocks until the sequence
// finishes; the engine must already be running.
func (e *AudioEngine) PlayMelody(notes, durationsMs []int, oscNum int, waveform Waveform, staccato float32, amplitude int) {
	if !validOscillator(oscNum) {
		return
	}
	debugf("[AUDIO] playing melody (%d notes)", len(notes))

	savedFrequency := e.GetFrequency()
	saved := [NUM_OSCILLATORS]oscParams{}
	for i := 1; i <= NUM_OSCILLATORS; i++ {
		saved[i-1] = oscParams{
			waveform:    e.GetOscillatorWaveform(i),
			octaveShift: e.GetOscillatorOctave(i),
			volume:      e.GetOscillatorVolume(i),
		}
	}

	e.SetAmplitude(amplitude)
	for i := 1; i <= NUM_OSCILLATORS; i++ {
		if i == oscNum {
			e.SetOscillatorWaveform(i, waveform)
			e.SetOscillatorVolume(i, 1.0)
		} else {
			e.SetOscillatorWaveform(i, WAVE_OFF)
		}
	}

	length := len(notes)
	if len(durationsMs) < length {
		length = len(durationsMs)
	}
	for i := 0; i < length; i++ {
		duration := time.Duration(durationsMs[i]) * time.Millisecond
		if notes[i] == NOTE_REST {
			e.SetAmplitude(0)
			time.Sleep(duration)
			continue
		}

		e.SetFrequency(notes[i])
		e.SetAmplitude(amplitude)

		sounding := time.Duration(float32(duration) * staccato)
		time.Sleep(sounding)
		if gap := duration - sounding; gap > 0 {
			e.SetAmplitude(0)
			time.Sleep(gap)
		}
	}

	e.SetFrequency(savedFrequency)
	e.SetAmplitude(0)
	for i := 1; i <= NUM_OSCILLATORS; i++ {
		e.SetOscillatorWaveform(i, saved[i-1].waveform)
		e.SetOscillatorOctave(i, saved[i-1].octaveShift)
		e.SetOscillatorVolume(i, saved[i-1].volume)
	}

	debugf("[AUDIO] melody complete")
}

// PlayStartupSound plays the boot jingle, a simplified Final Fantasy VII
// victory fanfare on a square wave.
func (e *AudioEngine) PlayStartupSound() {
	notes := []int{
		NOTE_C5, NOTE_C5, NOTE_C5, NOTE_C5,
		NOTE_GS4, NOTE_AS4, NOTE_C5, NOTE_REST, NOTE_AS4, NOTE_C5,
	}
	durations := []int{
		150, 150, 150, 450,
		450, 450, 150, 150, 150, 600,
	}
	e.PlayMelody(notes, durations, 1, WAVE_SQUARE, 0.8, 40)
	time.Sleep(500 * time.Millisecond)
}

// SystemTest runs an audible exercise of the voice controls: each waveform
// in turn, octave shifts both ways, then a volume staircase. Takes around
// fifteen seconds and leaves the engine on default settings.
func (e *AudioEngine) SystemTest() {
	const testAmplitude = 40

	tone := func(d time.Duration) {
		e.SetAmplitude(testAmplitude)
		time.Sleep(d)
		e.SetAmplitude(0)
		time.Sleep(500 * time.Millisecond)
	}

	debugf("[TEST] starting system test")
	e.SetFrequency(NOTE_A4)
	e.SetOscillatorWaveform(2, WAVE_OFF)
	e.SetOscillatorWaveform(3, WAVE_OFF)

	debugf("[TEST] default settings")
	e.DefaultSettings()
	tone(time.Second)

	debugf("[TEST] waveform sweep")
	for _, wf := range []Waveform{WAVE_TRIANGLE, WAVE_SAW, WAVE_SQUARE, WAVE_SINE} {
		e.SetOscillatorWaveform(1, wf)
		tone(time.Second)
	}

	debugf("[TEST] octave shifts")
	e.SetAmplitude(testAmplitude)
	e.SetOscillatorOctave(1, OCTAVE_UP)
	time.Sleep(time.Second)
	e.SetOscillatorOctave(1, OCTAVE_DOWN)
	time.Sleep(time.Second)

	debugf("[TEST] volume staircase")
	e.SetOscillatorOctave(1, OCTAVE_BASE)
	for v := float32(0.0); v <= 1.0; v += 0.1 {
		e.SetOscillatorVolume(1, v)
		time.Sleep(200 * time.Millisecond)
	}

	debugf("[TEST] restoring defaults")
	e.SetAmplitude(0)
	time.Sleep(time.Second)
	e.DefaultSettings()
	debugf("[TEST] system test complete")
}
