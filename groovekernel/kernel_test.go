package groovekernel

import (
	"math"
	"testing"
)

func baseContext() Context {
	return Context{
		BPM:             120,
		GrooveAmount:    1.0,
		LinearOffset:    5,
		Curvature:       3,
		PhaseCoupling:   1,
		HarmonicGravity: 1.2,
		MacroDrift:      2,
		Jitter:          0.5,
		MaxPushMs:       -20,
		MaxDragMs:       25,
		MaxPhaseErrorMs: 0,
	}
}

func TestEvaluateBoundedness(t *testing.T) {
	c := baseContext()
	out := Evaluate(c)
	beta := 90.0 / c.BPM
	limit := math.Max(math.Abs(c.MaxPushMs), c.MaxDragMs) * beta * c.GrooveAmount
	if math.Abs(out) > limit+1e-9 {
		t.Fatalf("kernel output %v exceeds bound %v", out, limit)
	}
}

func TestEvaluateTempoScalingHalvesOnDoubleBPM(t *testing.T) {
	c := baseContext()
	c.BPM = 60
	low := Evaluate(c)
	c.BPM = 120
	high := Evaluate(c)
	if math.Abs(low-2*high) > 1e-9 {
		t.Fatalf("doubling bpm should halve output: bpm60=%v bpm120=%v", low, high)
	}
}

func TestEvaluateHarmonicGravityAmplifiesElasticOnly(t *testing.T) {
	c := baseContext()
	c.MaxDragMs = 1000 // avoid clamp so the effect is visible
	c.MaxPushMs = -1000
	base := Evaluate(c)

	withGravity := c
	withGravity.HarmonicGravity = 3.0
	withGravityOut := Evaluate(withGravity)

	// Isolate macro-drift and linear-offset contributions: raising gravity
	// must not touch them, only curvature+phase_coupling.
	c2 := c
	c2.Curvature = 0
	c2.PhaseCoupling = 0
	nonElastic := Evaluate(c2)

	if withGravityOut == base {
		t.Fatalf("expected harmonic gravity change to alter output when elastic field positive")
	}
	if nonElastic == base {
		t.Fatalf("removing curvature/phase_coupling should change output")
	}
	nonElasticWithGravity := c2
	nonElasticWithGravity.HarmonicGravity = 3.0
	if got := Evaluate(nonElasticWithGravity); got != nonElastic {
		t.Fatalf("harmonic gravity must not alter the non-elastic terms: gravity1.2=%v gravity3=%v", nonElastic, got)
	}
}

func TestEvaluateHarmonicGravityDoesNotAmplifyNegativeElastic(t *testing.T) {
	c := baseContext()
	c.Curvature = -5
	c.PhaseCoupling = -5
	c.MaxDragMs = 1000
	c.MaxPushMs = -1000

	low := Evaluate(c)
	c.HarmonicGravity = 5.0
	high := Evaluate(c)

	if low != high {
		t.Fatalf("negative elastic field must not be amplified by harmonic gravity: low=%v high=%v", low, high)
	}
}

func TestEvaluateDegenerateBPM(t *testing.T) {
	c := baseContext()
	c.BPM = 0
	if got := Evaluate(c); got != 0 {
		t.Fatalf("Evaluate with bpm=0 = %v, want 0", got)
	}
	c.BPM = -10
	if got := Evaluate(c); got != 0 {
		t.Fatalf("Evaluate with negative bpm = %v, want 0", got)
	}
}

func TestEvaluatePhraseClampBoundsOutput(t *testing.T) {
	c := baseContext()
	c.MaxPhaseErrorMs = 1 // very tight phrase clamp
	c.MaxDragMs = 1000
	c.MaxPushMs = -1000
	out := Evaluate(c)
	beta := 90.0 / c.BPM
	if math.Abs(out) > c.MaxPhaseErrorMs*beta*c.GrooveAmount+1e-9 {
		t.Fatalf("phrase clamp not respected: %v", out)
	}
}

func TestEvaluateGrooveAmountScalesLinearly(t *testing.T) {
	c := baseContext()
	c.GrooveAmount = 1.0
	full := Evaluate(c)
	c.GrooveAmount = 0.5
	half := Evaluate(c)
	if math.Abs(full/2-half) > 1e-9 {
		t.Fatalf("groove amount should scale output linearly: full=%v half=%v", full, half)
	}
}
