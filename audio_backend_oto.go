//go:build !headless

// audio_backend_oto.go - OTO v3 audio output implementation

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

	"github.com/ebitengine/oto/v3"
)

// OtoPlayer bridges the engine's push model onto oto's pull model with a
// short block queue. The engine submits blocks; oto's device goroutine
// drains them through Read. A full queue blocks WriteBlock, which is what
// paces the generation loop.
type OtoPlayer struct {
	ctx    *oto.Context
	player *oto.Player

	blocks chan []int16

	// Consumed only by Read (oto's goroutine)
	pending    []int16
	pendingOff int

	done     chan struct{}
	doneOnce sync.Once
	started  bool
	mutex    sync.Mutex
}

func NewOtoPlayer(sampleRate int) (*OtoPlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: NUM_CHANNELS,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   time.Second * BUFFER_SIZE * DMA_BUFFER_COUNT / SAMPLE_RATE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	p := &OtoPlayer{
		ctx:    ctx,
		blocks: make(chan []int16, DMA_BUFFER_COUNT),
		done:   make(chan struct{}),
	}
	p.player = ctx.NewPlayer(p)
	return p, nil
}

// WriteBlock queues one block for the device. Blocks while the queue is full
// (the device consumes at exactly the sample rate); returns immediately once
// the player has been closed.
func (op *OtoPlayer) WriteBlock(block []int16) error {
	// Copy: the engine reuses its block buffer for the next render
	buf := make([]int16, len(block))
	copy(buf, block)

	select {
	case op.blocks <- buf:
		return nil
	case <-op.done:
		return nil
	}
}

// Read supplies oto with little-endian bytes from the queued blocks. An
// empty queue pads with silence rather than stalling the device; a missed
// block costs a moment of quality, never correctness.
func (op *OtoPlayer) Read(p []byte) (int, error) {
	n := 0
	for n+1 < len(p) {
		if op.pendingOff >= len(op.pending) {
			select {
			case b := <-op.blocks:
				op.pending, op.pendingOff = b, 0
			default:
				for n+1 < len(p) {
					p[n], p[n+1] = 0, 0
					n += 2
				}
				return n, nil
			}
		}
		s := uint16(op.pending[op.pendingOff])
		op.pendingOff++
		p[n] = byte(s)
		p[n+1] = byte(s >> 8)
		n += 2
	}
	return n, nil
}

func (op *OtoPlayer) Start() error {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if !op.started && op.player != nil {
		op.player.Play()
		op.started = true
	}
	return nil
}

func (op *OtoPlayer) Stop() {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if op.started && op.player != nil {
		op.player.Pause()
		op.started = false
	}
}

func (op *OtoPlayer) Close() {
	op.Stop()
	op.doneOnce.Do(func() { close(op.done) })

	op.mutex.Lock()
	defer op.mutex.Unlock()
	if op.player != nil {
		op.player.Close()
		op.player = nil
	}
}

func (op *OtoPlayer) IsStarted() bool {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	return op.started
}
