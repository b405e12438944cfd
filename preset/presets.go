package preset

import "github.com/cwbudde/groove-engine/grooveengine"

// namedPresetFunc builds a fresh profile instance; presets start from
// grooveengine.NewDefaultProfile so every field not set below keeps its
// neutral default.
type namedPresetFunc func() *grooveengine.Profile

// namedPresets is the lookup table backing Named. Each entry switches on a
// different subset of the profile's feature gates rather than the
// scheduler branching on a genre tag; the genre lives entirely in data.
var namedPresets = map[string]namedPresetFunc{
	"straight":         straightPreset,
	"swing-light":      swingLightPreset,
	"swing-heavy":      swingHeavyPreset,
	"shuffle":          shufflePreset,
	"laid-back-rnb":    laidBackRnbPreset,
	"drunk-jazz":       drunkJazzPreset,
	"deep-house":       deepHousePreset,
	"dub-reggae":       dubReggaePreset,
	"latin-clave":      latinClavePreset,
	"afrobeat":         afrobeatPreset,
	"drill-hihat":      drillHihatPreset,
	"ambient-rubato":   ambientRubatoPreset,
}

// Named returns a fresh copy of one of the twelve built-in genre presets by
// name, and false if the name is not recognized.
func Named(name string) (*grooveengine.Profile, bool) {
	fn, ok := namedPresets[name]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// Names returns the recognized preset names, for CLI help text and tests.
func Names() []string {
	names := make([]string, 0, len(namedPresets))
	for name := range namedPresets {
		names = append(names, name)
	}
	return names
}

func straightPreset() *grooveengine.Profile {
	p := grooveengine.NewDefaultProfile()
	p.GrooveAmount = 0
	return p
}

func swingLightPreset() *grooveengine.Profile {
	p := grooveengine.NewDefaultProfile()
	p.FeelBias = grooveengine.FeelOnTop
	p.DragCurve = grooveengine.DragCurve{
		Enabled:      true,
		DriftMode:    grooveengine.DriftPower,
		MaxDragMs:    8,
		DragExponent: 1.0,
	}
	return p
}

func swingHeavyPreset() *grooveengine.Profile {
	p := grooveengine.NewDefaultProfile()
	p.FeelBias = grooveengine.FeelLaidBack
	p.DragCurve = grooveengine.DragCurve{
		Enabled:      true,
		DriftMode:    grooveengine.DriftPower,
		MaxDragMs:    22,
		DragExponent: 1.6,
		PerChannelScaling: map[string]float64{
			"hihat": 1.0,
			"snare": 0.6,
		},
	}
	return p
}

func shufflePreset() *grooveengine.Profile {
	p := grooveengine.NewDefaultProfile()
	p.FeelBias = grooveengine.FeelLaidBack
	p.DragCurve = grooveengine.DragCurve{
		Enabled:   true,
		DriftMode: grooveengine.DriftLog,
		MaxDragMs: 18,
		LogK:      5,
	}
	p.ChannelOffsets = map[string]grooveengine.ChannelConfig{
		"hihat": {JitterMs: 2.5},
	}
	return p
}

func laidBackRnbPreset() *grooveengine.Profile {
	p := grooveengine.NewDefaultProfile()
	p.FeelBias = grooveengine.FeelDeepPocket
	p.DragCurve = grooveengine.DragCurve{
		Enabled:      true,
		DriftMode:    grooveengine.DriftPower,
		MaxDragMs:    30,
		DragExponent: 1.2,
	}
	p.TemporalCoupling = grooveengine.TemporalCoupling{
		Enabled:            true,
		VelocityPhaseRatio: 0.6,
		Direction:          grooveengine.DirectionNatural,
	}
	p.ChannelOffsets = map[string]grooveengine.ChannelConfig{
		"snare": {VelocityVariance: 0.08},
	}
	return p
}

func drunkJazzPreset() *grooveengine.Profile {
	p := grooveengine.NewDefaultProfile()
	p.FeelBias = grooveengine.FeelDeepPocket
	p.DragCurve = grooveengine.DragCurve{
		Enabled:      true,
		DriftMode:    grooveengine.DriftPower,
		MaxDragMs:    28,
		DragExponent: 1.4,
	}
	p.TemporalState = grooveengine.TemporalState{
		Enabled:                 true,
		TensionIncrement:        0.1,
		ElasticityAmplification: 0.6,
		ResetPeriodBars:         8,
	}
	p.ChannelOffsets = map[string]grooveengine.ChannelConfig{
		"kick":  {JitterMs: 3.5, VelocityVariance: 0.1},
		"snare": {JitterMs: 4.0, VelocityVariance: 0.12},
	}
	return p
}

func deepHousePreset() *grooveengine.Profile {
	p := grooveengine.NewDefaultProfile()
	p.FeelBias = grooveengine.FeelOnTop
	p.DragCurve = grooveengine.DragCurve{
		Enabled:      true,
		DriftMode:    grooveengine.DriftPower,
		MaxDragMs:    6,
		DragExponent: 1.0,
	}
	p.MacroDrift = grooveengine.MacroDrift{
		Enabled:     true,
		AmplitudeMs: 2.5,
		PeriodBars:  16,
		Waveform:    grooveengine.WaveformSine,
	}
	return p
}

func dubReggaePreset() *grooveengine.Profile {
	p := grooveengine.NewDefaultProfile()
	p.FeelBias = grooveengine.FeelDeepPocket
	p.DragCurve = grooveengine.DragCurve{
		Enabled:      true,
		DriftMode:    grooveengine.DriftPower,
		MaxDragMs:    35,
		DragExponent: 1.1,
		PerChannelScaling: map[string]float64{
			"bass":  1.0,
			"snare": 0.8,
		},
	}
	p.HarmonicGravity = grooveengine.HarmonicGravity{
		Enabled: true,
		GravityByMode: map[string]float64{
			"minor": 1.4,
			"major": 1.1,
		},
	}
	return p
}

func latinClavePreset() *grooveengine.Profile {
	p := grooveengine.NewDefaultProfile()
	p.FeelBias = grooveengine.FeelOnTop
	p.DragCurve = grooveengine.DragCurve{
		Enabled:      true,
		DriftMode:    grooveengine.DriftPower,
		MaxDragMs:    10,
		DragExponent: 1.3,
	}
	p.TemporalCoupling = grooveengine.TemporalCoupling{
		Enabled:            true,
		VelocityPhaseRatio: 1.2,
		Direction:          grooveengine.DirectionInverted,
	}
	return p
}

func afrobeatPreset() *grooveengine.Profile {
	p := grooveengine.NewDefaultProfile()
	p.FeelBias = grooveengine.FeelLaidBack
	p.DragCurve = grooveengine.DragCurve{
		Enabled:      true,
		DriftMode:    grooveengine.DriftPower,
		MaxDragMs:    16,
		DragExponent: 1.15,
	}
	p.TemporalCoupling = grooveengine.TemporalCoupling{
		Enabled:            true,
		VelocityPhaseRatio: 0.9,
		Direction:          grooveengine.DirectionNatural,
	}
	p.ChannelOffsets = map[string]grooveengine.ChannelConfig{
		"hihat": {JitterMs: 1.5},
	}
	return p
}

func drillHihatPreset() *grooveengine.Profile {
	p := grooveengine.NewDefaultProfile()
	p.FeelBias = grooveengine.FeelAhead
	p.DragCurve = grooveengine.DragCurve{
		Enabled:      true,
		DriftMode:    grooveengine.DriftPower,
		MaxDragMs:    4,
		DragExponent: 0.8,
		PerChannelScaling: map[string]float64{
			"hihat": 1.0,
			"kick":  0.2,
			"snare": 0.2,
		},
	}
	p.ChannelOffsets = map[string]grooveengine.ChannelConfig{
		"hihat": {GhostNoteProbability: 0.25, GhostNoteAttenuationDB: -14},
	}
	return p
}

func ambientRubatoPreset() *grooveengine.Profile {
	p := grooveengine.NewDefaultProfile()
	p.FeelBias = grooveengine.FeelDeepPocket
	p.DragCurve = grooveengine.DragCurve{
		Enabled:      true,
		DriftMode:    grooveengine.DriftLog,
		MaxDragMs:    32,
		LogK:         6,
	}
	p.MacroDrift = grooveengine.MacroDrift{
		Enabled:     true,
		AmplitudeMs: 18,
		PeriodBars:  4,
		Waveform:    grooveengine.WaveformTriangle,
	}
	p.PhraseConstraints = grooveengine.PhraseConstraints{
		PhraseLengthBars:           8,
		ResetMode:                  grooveengine.ResetOnPhraseBoundary,
		MaxAccumulatedPhaseErrorMs: 25,
	}
	return p
}
