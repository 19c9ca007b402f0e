//go:build !headless

// audio_backend_alsa.go - ALSA audio output implementation

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

/*
#cgo LDFLAGS: -lasound
#include <alsa/asoundlib.h>
#include <stdlib.h>

static snd_pcm_t* openPCM(const char* device, int* err) {
    snd_pcm_t* handle;
    *err = snd_pcm_open(&handle, device, SND_PCM_STREAM_PLAYBACK, 0);
    return handle;
}

static int setupPCM(snd_pcm_t* handle, unsigned int rate, unsigned int channels) {
    snd_pcm_hw_params_t* params;
    int err;

    snd_pcm_hw_params_alloca(&params);
    err = snd_pcm_hw_params_any(handle, params);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_access(handle, params, SND_PCM_ACCESS_RW_INTERLEAVED);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_format(handle, params, SND_PCM_FORMAT_S16_LE);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_channels(handle, params, channels);
    if (err < 0) return err;

    err = snd_pcm_hw_params_set_rate(handle, params, rate, 0);
    if (err < 0) return err;

    err = snd_pcm_hw_params(handle, params);
    if (err < 0) return err;

    return snd_pcm_prepare(handle);
}

static int writePCM(snd_pcm_t* handle, short* buffer, int frames) {
    return snd_pcm_writei(handle, buffer, frames);
}

static void closePCM(snd_pcm_t* handle) {
    if (handle != NULL) {
        snd_pcm_drain(handle);
        snd_pcm_close(handle);
    }
}
*/
import "C"
import (
	"fmt"
	"sync"
	"unsafe"
)

// ALSAPlayer writes interleaved s16le stereo frames straight to the default
// PCM device. snd_pcm_writei blocks until the hardware has room, which paces
// the generation loop.
type ALSAPlayer struct {
	handle  *C.snd_pcm_t
	started bool
	playing bool
	mutex   sync.Mutex
	samples []C.short
}

func NewALSAPlayer(sampleRate int) (*ALSAPlayer, error) {
	var errCode C.int
	device := C.CString("default")
	defer C.free(unsafe.Pointer(device))

	handle := C.openPCM(device, &errCode)
	if errCode < 0 {
		return nil, fmt.Errorf("failed to open PCM device: %s", C.GoString(C.snd_strerror(errCode)))
	}

	if errCode = C.setupPCM(handle, C.uint(sampleRate), C.uint(NUM_CHANNELS)); errCode < 0 {
		C.closePCM(handle)
		return nil, fmt.Errorf("failed to setup PCM: %s", C.GoString(C.snd_strerror(errCode)))
	}

	return &ALSAPlayer{
		handle:  handle,
		samples: make([]C.short, BUFFER_SIZE*NUM_CHANNELS),
	}, nil
}

// WriteBlock submits one block. An underrun (EPIPE) is recovered by
// preparing the device and writing once more; the lost block only costs a
// moment of quality.
func (ap *ALSAPlayer) WriteBlock(block []int16) error {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	if !ap.playing || ap.handle == nil {
		return nil
	}

	if len(ap.samples) < len(block) {
		ap.samples = make([]C.short, len(block))
	}
	for i, s := range block {
		ap.samples[i] = C.short(s)
	}

	frames := C.int(len(block) / NUM_CHANNELS)
	written := C.writePCM(ap.handle, &ap.samples[0], frames)
	if written < 0 {
		if written == -C.EPIPE {
			C.snd_pcm_prepare(ap.handle)
			written = C.writePCM(ap.handle, &ap.samples[0], frames)
		}
		if written < 0 {
			return fmt.Errorf("write failed: %s", C.GoString(C.snd_strerror(C.int(written))))
		}
	}
	return nil
}

func (ap *ALSAPlayer) Start() error {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	if !ap.started {
		ap.started = true
		ap.playing = true
	}
	return nil
}

func (ap *ALSAPlayer) Stop() {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	if ap.playing {
		ap.playing = false
		ap.started = false
	}
}

func (ap *ALSAPlayer) Close() {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()

	if ap.handle != nil {
		ap.playing = false
		ap.started = false
		C.closePCM(ap.handle)
		ap.handle = nil
	}
}

func (ap *ALSAPlayer) IsStarted() bool {
	ap.mutex.Lock()
	defer ap.mutex.Unlock()
	return ap.started
}
