// audio_output.go - Output peripheral abstraction and backend selection

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

import "fmt"

// Audio backend selectors
const (
	AUDIO_BACKEND_OTO = iota
	AUDIO_BACKEND_ALSA
	AUDIO_BACKEND_PORTAUDIO
	AUDIO_BACKEND_NONE
)

// AudioOutput is the output peripheral contract. WriteBlock submits one
// fixed-size block of interleaved stereo int16 frames and blocks until the
// backend can take the next one; that blocking is the generation loop's
// pacing mechanism, not an error condition.
type AudioOutput interface {
	Start() error
	Stop()
	Close()
	WriteBlock(block []int16) error
	IsStarted() bool
}

// NewAudioOutput creates the requested backend at the given sample rate.
func NewAudioOutput(backend int, sampleRate int) (AudioOutput, error) {
	switch backend {
	case AUDIO_BACKEND_OTO:
		return NewOtoPlayer(sampleRate)
	case AUDIO_BACKEND_ALSA:
		return NewALSAPlayer(sampleRate)
	case AUDIO_BACKEND_PORTAUDIO:
		return NewPortAudioPlayer(sampleRate)
	case AUDIO_BACKEND_NONE:
		return NewNullPlayer(sampleRate), nil
	}
	return nil, fmt.Errorf("unknown audio backend: %d", backend)
}
