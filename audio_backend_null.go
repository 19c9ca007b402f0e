// audio_backend_null.go - Discarding output backend paced at the sample rate

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
	"sync"
	"time"
)

// NullPlayer discards every block but still consumes them at the real
// peripheral rate, so the generation loop is paced exactly as it would be
// against hardware. Used by tests and the headless build.
type NullPlayer struct {
	sampleRate int
	started    bool
	mutex      sync.Mutex
}

func NewNullPlayer(sampleRate int) *NullPlayer {
	return &NullPlayer{sampleRate: sampleRate}
}

func (np *NullPlayer) WriteBlock(block []int16) error {
	np.mutex.Lock()
	playing := np.started
	np.mutex.Unlock()
	if !playing {
		return nil
	}

	frames := len(block) / NUM_CHANNELS
	time.Sleep(time.Duration(frames) * time.Second / time.Duration(np.sampleRate))
	return nil
}

func (np *NullPlayer) Start() error {
	np.mutex.Lock()
	defer np.mutex.Unlock()
	np.started = true
	return nil
}

func (np *NullPlayer) Stop() {
	np.mutex.Lock()
	defer np.mutex.Unlock()
	np.started = false
}

func (np *NullPlayer) Close() {
	np.Stop()
}

func (np *NullPlayer) IsStarted() bool {
	np.mutex.Lock()
	defer np.mutex.Unlock()
	return np.started
}
