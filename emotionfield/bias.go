// Package emotionfield implements the single injection point between
// context assembly and kernel evaluation: a five-dimensional emotional
// bias applied to a groovekernel.Context. The basis is a fixed, ordered
// tuple; the delta table is frozen at build time. There is no branching on
// emotion name — only iteration over the basis tuple.
package emotionfield

import "github.com/cwbudde/groove-engine/groovekernel"

// Dimension indexes the fixed emotional basis tuple.
type Dimension int

const (
	Loneliness Dimension = iota
	Tension
	Admiration
	Defiance
	Calm
	dimensionCount
)

var dimensionNames = [dimensionCount]string{
	Loneliness: "loneliness",
	Tension:    "tension",
	Admiration: "admiration",
	Defiance:   "defiance",
	Calm:       "calm",
}

// Name returns the canonical name of a basis dimension.
func (d Dimension) Name() string {
	if d < 0 || int(d) >= len(dimensionNames) {
		return ""
	}
	return dimensionNames[d]
}

// delta holds the seven per-dimension coefficients from spec §3's
// emotional basis table.
type delta struct {
	dL  float64 // additive linear-offset delta, ms
	dC  float64 // multiplicative scale on curvature
	dOv float64 // multiplicative scale on phase_coupling ("overshoot")
	dGm float64 // additive to harmonic gravity
	dPb float64 // multiplicative scale on macro_drift ("phrase bend")
	dSg float64 // multiplicative scale on jitter ("sigma")
	dDW float64 // additive to groove_amount ("drive/weight")
}

// table is frozen at build time. Values are chosen so that the worst-case
// sum across all five dimensions at full intensity keeps every
// multiplicative scale factor within [0, 3], per spec contract.
var table = [dimensionCount]delta{
	Loneliness: {dL: 3.0, dC: 0.10, dOv: 0.05, dGm: 0.05, dPb: -0.05, dSg: 0.10, dDW: -0.02},
	Tension:    {dL: -2.0, dC: 0.25, dOv: 0.20, dGm: 0.10, dPb: 0.10, dSg: 0.25, dDW: 0.05},
	Admiration: {dL: 1.0, dC: -0.05, dOv: 0.05, dGm: 0.00, dPb: 0.05, dSg: -0.05, dDW: 0.03},
	Defiance:   {dL: -3.0, dC: 0.15, dOv: -0.15, dGm: 0.15, dPb: -0.10, dSg: 0.15, dDW: 0.06},
	Calm:       {dL: 0.5, dC: -0.15, dOv: -0.10, dGm: -0.05, dPb: -0.15, dSg: -0.20, dDW: -0.04},
}

// Vector holds the five emotional scalars, each in [0,1]. It is part of a
// groove profile and therefore part of its integrity hash.
type Vector map[string]float64

// clampUnit returns v clamped to [0,1].
func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// valueFor reads a dimension's clamped scalar from the vector, defaulting
// to 0 for an absent or nil vector.
func (v Vector) valueFor(d Dimension) float64 {
	if v == nil {
		return 0
	}
	return clampUnit(v[d.Name()])
}

// sums accumulates Σf = Σ_i clamp(e[i],0,1) * table[i].f across the basis.
type sums struct {
	dL, dC, dOv, dGm, dPb, dSg, dDW float64
}

func (v Vector) sums() sums {
	var s sums
	for i := Dimension(0); i < dimensionCount; i++ {
		e := v.valueFor(i)
		if e == 0 {
			continue
		}
		t := table[i]
		s.dL += e * t.dL
		s.dC += e * t.dC
		s.dOv += e * t.dOv
		s.dGm += e * t.dGm
		s.dPb += e * t.dPb
		s.dSg += e * t.dSg
		s.dDW += e * t.dDW
	}
	return s
}

// Apply produces a new kernel context biased by the emotion vector. A nil
// or all-zero vector yields a context numerically identical to c in every
// field.
func Apply(c groovekernel.Context, v Vector) groovekernel.Context {
	if v == nil {
		return c
	}
	s := v.sums()

	out := c
	out.LinearOffset = c.LinearOffset + s.dL
	out.Curvature = c.Curvature * (1 + s.dC)
	out.PhaseCoupling = c.PhaseCoupling * (1 + s.dOv)
	out.HarmonicGravity = maxFloat(1.0, c.HarmonicGravity+s.dGm)
	out.MacroDrift = c.MacroDrift * (1 + s.dPb)
	out.Jitter = c.Jitter * maxFloat(0, 1+s.dSg)
	out.GrooveAmount = clampGrooveAmount(c.GrooveAmount + s.dDW)

	return out
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func clampGrooveAmount(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
