// debug.go - Optional diagnostic logging for parameter and lifecycle events

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
	"log"
	"os"
)

// Diagnostics are off by default; the audio path must never pay for logging
// it does not need. Set THEREMIN_DEBUG=1 to see parameter changes and
// lifecycle transitions. Nothing in the per-sample path logs.
var debugEnabled = os.Getenv("THEREMIN_DEBUG") != ""

var debugLog = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)

func debugf(format string, args ...any) {
	if debugEnabled {
		debugLog.Printf(format, args...)
	}
}
