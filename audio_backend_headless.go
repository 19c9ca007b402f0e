//go:build headless

// audio_backend_headless.go - Stub backends for builds without audio hardware

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

// Headless builds route every hardware backend to the null sink so the rest
// of the engine is unchanged.

func NewOtoPlayer(sampleRate int) (AudioOutput, error) {
	return NewNullPlayer(sampleRate), nil
}

func NewALSAPlayer(sampleRate int) (AudioOutput, error) {
	return NewNullPlayer(sampleRate), nil
}
