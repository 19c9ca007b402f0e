// effects_chain.go - Sequential composition of the per-sample effects

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

// SampleProcessor is the one-sample contract every effect satisfies. A new
// effect type slots into the chain by implementing it; the existing stages
// are untouched.
type SampleProcessor interface {
	Process(input int16) int16
	Reset()
}

// EffectsChain runs the mixed oscillator output through delay, chorus and
// reverb in that fixed order. Each stage handles its own bypass, so a fully
// disabled chain is the identity function.
type EffectsChain struct {
	delay  *DelayEffect
	chorus *ChorusEffect
	reverb *ReverbEffect

	stages []SampleProcessor
}

// NewEffectsChain builds the three stages with their defaults, all disabled.
func NewEffectsChain(sampleRate uint32) *EffectsChain {
	ec := &EffectsChain{
		delay:  NewDelayEffect(300, sampleRate),
		chorus: NewChorusEffect(sampleRate),
		reverb: NewReverbEffect(sampleRate),
	}
	ec.chorus.SetRate(2.0)
	ec.chorus.SetDepth(15.0)

	ec.stages = []SampleProcessor{ec.delay, ec.chorus, ec.reverb}
	return ec
}

// Process applies every stage in order.
func (ec *EffectsChain) Process(input int16) int16 {
	out := input
	for _, stage := range ec.stages {
		out = stage.Process(out)
	}
	return out
}

// AddStage appends a custom processor after the built-in effects.
func (ec *EffectsChain) AddStage(p SampleProcessor) {
	ec.stages = append(ec.stages, p)
}

// Stage accessors for parameter control
func (ec *EffectsChain) Delay() *DelayEffect   { return ec.delay }
func (ec *EffectsChain) Chorus() *ChorusEffect { return ec.chorus }
func (ec *EffectsChain) Reverb() *ReverbEffect { return ec.reverb }

func (ec *EffectsChain) SetDelayEnabled(enabled bool)  { ec.delay.SetEnabled(enabled) }
func (ec *EffectsChain) SetChorusEnabled(enabled bool) { ec.chorus.SetEnabled(enabled) }
func (ec *EffectsChain) SetReverbEnabled(enabled bool) { ec.reverb.SetEnabled(enabled) }

func (ec *EffectsChain) IsDelayEnabled() bool  { return ec.delay.IsEnabled() }
func (ec *EffectsChain) IsChorusEnabled() bool { return ec.chorus.IsEnabled() }
func (ec *EffectsChain) IsReverbEnabled() bool { return ec.reverb.IsEnabled() }

// Reset clears every stage's buffers.
func (ec *EffectsChain) Reset() {
	for _, stage := range ec.stages {
		stage.Reset()
	}
}
