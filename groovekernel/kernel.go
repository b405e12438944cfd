// Package groovekernel implements the single closed-form displacement
// equation at the heart of the groove physics engine. It is pure
// straight-line arithmetic with two clamps: no branching on groove type,
// no mutation of its inputs, no reads from outside the argument.
package groovekernel

import dspcore "github.com/cwbudde/algo-dsp/dsp/core"

// Context is the coefficient context assembled per event and consumed by
// Evaluate. Every displacement-like field is unscaled milliseconds; the
// kernel applies the tempo scalar (90/bpm) exactly once.
type Context struct {
	BPM             float64
	GrooveAmount    float64
	LinearOffset    float64
	Curvature       float64
	PhaseCoupling   float64
	HarmonicGravity float64
	MacroDrift      float64
	Jitter          float64
	MaxPushMs       float64
	MaxDragMs       float64
	MaxPhaseErrorMs float64
}

// Evaluate computes the total displacement in milliseconds:
//
//	β  = 90 / bpm
//	elastic_raw = curvature + phase_coupling
//	elastic     = elastic_raw > 0 ? harmonic_gravity * elastic_raw : elastic_raw
//	raw         = β * (linear_offset + elastic + macro_drift + jitter)
//	phrase_clamped = clamp(raw, -max_phase_error_ms*β, +max_phase_error_ms*β)   if max_phase_error_ms > 0
//	bounded     = clamp(phrase_clamped, max_push_ms*β, max_drag_ms*β)
//	return bounded * groove_amount
//
// harmonic_gravity amplifies only the elastic field, never the linear
// offset or macro-drift.
func Evaluate(c Context) float64 {
	if c.BPM <= 0 {
		return 0
	}
	beta := 90.0 / c.BPM

	elasticRaw := c.Curvature + c.PhaseCoupling
	elastic := elasticRaw
	if elasticRaw > 0 {
		elastic = c.HarmonicGravity * elasticRaw
	}

	raw := beta * (c.LinearOffset + elastic + c.MacroDrift + c.Jitter)

	phraseClamped := raw
	if c.MaxPhaseErrorMs > 0 {
		limit := c.MaxPhaseErrorMs * beta
		phraseClamped = dspcore.Clamp(raw, -limit, limit)
	}

	bounded := dspcore.Clamp(phraseClamped, c.MaxPushMs*beta, c.MaxDragMs*beta)

	return bounded * c.GrooveAmount
}
