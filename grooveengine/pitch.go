package grooveengine

import approx "github.com/cwbudde/algo-approx"

const (
	a4Freq    = 440.0
	a4Note    = 69
	ln2       = 0.6931472
	notesPerOctave = 12.0
)

// pow2Approx computes 2^x via FastExp, carried over from the teacher's own
// MIDI-to-frequency helper.
func pow2Approx(x float32) float32 {
	return approx.FastExp(x * ln2)
}

// MidiNoteToFreq converts a MIDI note number to frequency in Hz, used by
// diagnostic tooling to report a scale-mode root as a reference pitch
// rather than a bare note number.
func MidiNoteToFreq(note int) float32 {
	exponent := float32(note-a4Note) / notesPerOctave
	return a4Freq * pow2Approx(exponent)
}
