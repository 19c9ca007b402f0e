// main.go - Main entry point for the ThereminEngine synthesizer

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
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

func boilerPlate() {
	fmt.Println("\nThereminEngine - a gesture-style software theremin.")
	fmt.Println("(c) 2025 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/ThereminEngine")
	fmt.Println("Buy me a coffee: https://ko-fi.com/intuition/tip")
	fmt.Println("License: GPLv3 or later")
}

func parseBackend(name string) (int, error) {
	switch name {
	case "oto":
		return AUDIO_BACKEND_OTO, nil
	case "alsa":
		return AUDIO_BACKEND_ALSA, nil
	case "portaudio":
		return AUDIO_BACKEND_PORTAUDIO, nil
	case "none":
		return AUDIO_BACKEND_NONE, nil
	}
	return 0, fmt.Errorf("unknown backend %q (want oto, alsa, portaudio or none)", name)
}

func main() {
	boilerPlate()

	var (
		backendName string
		runDemo     bool
		runTest     bool
		interactive bool
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&backendName, "backend", "oto", "Audio backend: oto, alsa, portaudio or none")
	flagSet.BoolVar(&runDemo, "demo", false, "Play the startup fanfare and exit")
	flagSet.BoolVar(&runTest, "test", false, "Run the audible system test and exit")
	flagSet.BoolVar(&interactive, "interactive", true, "Keyboard control surface (default mode)")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./theremin_engine [-backend oto|alsa|portaudio|none] [-demo] [-test]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			flagSet.Usage()
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	backend, err := parseBackend(backendName)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	engine := NewAudioEngine(backend)
	if err := engine.Begin(); err != nil {
		fmt.Printf("Failed to initialize audio: %v\n", err)
		os.Exit(1)
	}
	defer engine.Stop()

	switch {
	case runDemo:
		engine.PlayStartupSound()
	case runTest:
		engine.SystemTest()
	case interactive:
		if err := runControlSurface(engine); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// runControlSurface drives the engine from the keyboard with the terminal
// in raw mode, standing in for the antenna sensors of a physical theremin.
func runControlSurface(engine *AudioEngine) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Println()
	}()

	fmt.Print("\r\nControls:\r\n")
	fmt.Print("  a/z  pitch up/down        s/x  volume up/down\r\n")
	fmt.Print("  1-3  select oscillator    w    cycle waveform\r\n")
	fmt.Print("  [/]  octave down/up       -/=  oscillator volume\r\n")
	fmt.Print("  d/c/r  toggle delay/chorus/reverb   m  channel mode\r\n")
	fmt.Print("  f  fanfare   t  system test   q  quit\r\n\r\n")

	engine.SetAmplitude(50)

	selected := 1
	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return err
		}

		switch buf[0] {
		case 'q', 3, 27: // q, Ctrl-C, ESC
			return nil

		case 'a':
			engine.SetFrequency(engine.GetFrequency() + 10)
		case 'z':
			engine.SetFrequency(engine.GetFrequency() - 10)
		case 's':
			engine.SetAmplitude(engine.GetAmplitude() + 5)
		case 'x':
			engine.SetAmplitude(engine.GetAmplitude() - 5)

		case '1', '2', '3':
			selected = int(buf[0] - '0')
		case 'w':
			wf := engine.GetOscillatorWaveform(selected) + 1
			if wf > WAVE_SAW {
				wf = WAVE_OFF
			}
			engine.SetOscillatorWaveform(selected, wf)
		case '[':
			engine.SetOscillatorOctave(selected, engine.GetOscillatorOctave(selected)-1)
		case ']':
			engine.SetOscillatorOctave(selected, engine.GetOscillatorOctave(selected)+1)
		case '-':
			engine.SetOscillatorVolume(selected, engine.GetOscillatorVolume(selected)-0.1)
		case '=':
			engine.SetOscillatorVolume(selected, engine.GetOscillatorVolume(selected)+0.1)

		case 'd':
			engine.SetDelayEnabled(!engine.GetEffectParams().delayEnabled)
		case 'c':
			engine.SetChorusEnabled(!engine.GetEffectParams().chorusEnabled)
		case 'r':
			engine.SetReverbEnabled(!engine.GetEffectParams().reverbEnabled)
		case 'm':
			mode := engine.GetChannelMode() + 1
			if mode > RIGHT_ONLY {
				mode = STEREO_BOTH
			}
			engine.SetChannelMode(mode)

		case 'f':
			engine.PlayStartupSound()
		case 't':
			engine.SystemTest()
		}

		printStatus(engine, selected)
	}
}

func printStatus(engine *AudioEngine, selected int) {
	fx := engine.GetEffectParams()
	onOff := func(on bool, tag string) string {
		if on {
			return tag
		}
		return "-"
	}
	fmt.Printf("\r\033[K%4d Hz  vol %3d%%  osc%d %-8s oct %+d  fx [%s%s%s]  ",
		engine.GetFrequency(), engine.GetAmplitude(),
		selected, engine.GetOscillatorWaveform(selected),
		engine.GetOscillatorOctave(selected),
		onOff(fx.delayEnabled, "D"), onOff(fx.chorusEnabled, "C"),
		onOff(fx.reverbEnabled, "R"))
}
