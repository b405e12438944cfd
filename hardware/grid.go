// Package hardware emulates the time-domain and signal-domain behavior of
// a hardware groove box: PPQN pulse quantization of event times, and a
// real-time sample-block processor replicating DAC saturation, anti-alias
// filtering, sample-and-hold downsampling, and bit-depth reduction.
package hardware

import "math"

// RoundToPPQN snaps a time in seconds to the nearest pulse of a clock
// running at ppqn pulses per quarter note at the given tempo. A
// non-positive ppqn or bpm disables quantization and returns t unchanged.
// Applied strictly last in the per-event scheduling pipeline.
func RoundToPPQN(t float64, bpm float64, ppqn int) float64 {
	if ppqn <= 0 || bpm <= 0 {
		return t
	}
	pulse := 60.0 / (bpm * float64(ppqn))
	return math.Round(t/pulse) * pulse
}
