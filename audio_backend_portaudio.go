//go:build portaudio && !headless

// audio_backend_portaudio.go - PortAudio output implementation

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

	"github.com/gordonklaus/portaudio"
)

// PortAudioPlayer plays through the default PortAudio device using the
// blocking write API. Stream.Write blocks until the device has consumed the
// buffer, which paces the generation loop.
type PortAudioPlayer struct {
	stream  *portaudio.Stream
	buf     []int16
	started bool
	mutex   sync.Mutex
}

func NewPortAudioPlayer(sampleRate int) (*PortAudioPlayer, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio init: %w", err)
	}

	p := &PortAudioPlayer{
		buf: make([]int16, BUFFER_SIZE*NUM_CHANNELS),
	}

	stream, err := portaudio.OpenDefaultStream(
		0, NUM_CHANNELS, float64(sampleRate), BUFFER_SIZE, &p.buf)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("portaudio open stream: %w", err)
	}
	p.stream = stream
	return p, nil
}

func (pp *PortAudioPlayer) WriteBlock(block []int16) error {
	pp.mutex.Lock()
	defer pp.mutex.Unlock()

	if !pp.started || pp.stream == nil {
		return nil
	}

	copy(pp.buf, block)
	if err := pp.stream.Write(); err != nil {
		// Underflow only costs a moment of quality; report anything else
		if err != portaudio.OutputUnderflowed {
			return fmt.Errorf("portaudio write: %w", err)
		}
	}
	return nil
}

func (pp *PortAudioPlayer) Start() error {
	pp.mutex.Lock()
	defer pp.mutex.Unlock()

	if pp.started || pp.stream == nil {
		return nil
	}
	if err := pp.stream.Start(); err != nil {
		return fmt.Errorf("portaudio start: %w", err)
	}
	pp.started = true
	return nil
}

func (pp *PortAudioPlayer) Stop() {
	pp.mutex.Lock()
	defer pp.mutex.Unlock()

	if pp.started && pp.stream != nil {
		_ = pp.stream.Stop()
		pp.started = false
	}
}

func (pp *PortAudioPlayer) Close() {
	pp.Stop()
	pp.mutex.Lock()
	defer pp.mutex.Unlock()

	if pp.stream != nil {
		_ = pp.stream.Close()
		pp.stream = nil
		_ = portaudio.Terminate()
	}
}

func (pp *PortAudioPlayer) IsStarted() bool {
	pp.mutex.Lock()
	defer pp.mutex.Unlock()
	return pp.started
}
