// Package grooveengine assembles the per-event coefficient context from a
// groove profile plus musical state, injects the emotional bias layer,
// evaluates the kernel, and applies the side-effectful post-processing
// (velocity humanization, ghost notes, PPQN rounding) that produces a
// scheduled event. It is the context-assembly and scheduler layer of the
// groove physics engine — mirroring the teacher engine's role of owning
// per-event/per-voice state around a pure numeric core.
package grooveengine

import "github.com/cwbudde/groove-engine/emotionfield"

// FeelBias selects the hard push/drag displacement limits.
type FeelBias string

const (
	FeelOnTop      FeelBias = "on_top"
	FeelLaidBack   FeelBias = "laid_back"
	FeelAhead      FeelBias = "ahead"
	FeelDeepPocket FeelBias = "deep_pocket"
)

// feelBiasLimits maps a feel bias to its {max_push_ms, max_drag_ms} pair,
// per the glossary table. max_push_ms is negative (a displacement toward
// earlier than the grid).
var feelBiasLimits = map[FeelBias][2]float64{
	FeelOnTop:      {-8, 8},
	FeelLaidBack:   {-5, 25},
	FeelAhead:      {-20, 5},
	FeelDeepPocket: {-3, 35},
}

func (f FeelBias) limits() (maxPushMs, maxDragMs float64) {
	if l, ok := feelBiasLimits[f]; ok {
		return l[0], l[1]
	}
	return feelBiasLimits[FeelLaidBack][0], feelBiasLimits[FeelLaidBack][1]
}

// DriftMode selects the drag-curve shape.
type DriftMode string

const (
	DriftPower  DriftMode = "power"
	DriftLog    DriftMode = "log"
	DriftLinear DriftMode = "linear"
)

// CouplingDirection selects the sign of velocity-phase coupling.
type CouplingDirection string

const (
	DirectionNatural  CouplingDirection = "natural"
	DirectionInverted CouplingDirection = "inverted"
	DirectionNone     CouplingDirection = "none"
)

// Waveform selects the macro-drift oscillator shape.
type Waveform string

const (
	WaveformSine     Waveform = "sine"
	WaveformTriangle Waveform = "triangle"
)

// ResetMode selects how phrase-level accumulated phase error resets.
type ResetMode string

const (
	ResetOnPhraseBoundary ResetMode = "phrase_boundary"
	ResetNever            ResetMode = "never"
)

// ChannelConfig holds the per-channel humanization parameters keyed by
// canonical channel name.
type ChannelConfig struct {
	TimingOffsetMs        float64 `json:"timing_offset_ms"`
	VelocityVariance      float64 `json:"velocity_variance"`
	JitterMs              float64 `json:"jitter_ms"`
	GhostNoteProbability  float64 `json:"ghost_note_probability"`
	GhostNoteAttenuationDB float64 `json:"ghost_note_attenuation_db"`
}

// DragCurve configures the per-step timing drag.
type DragCurve struct {
	Enabled           bool               `json:"enabled"`
	DriftMode         DriftMode          `json:"drift_mode"`
	MaxDragMs         float64            `json:"max_drag_ms"`
	DragExponent      float64            `json:"drag_exponent"`
	LogK              float64            `json:"log_k"`
	PerChannelScaling map[string]float64 `json:"per_channel_scaling"`
}

// TemporalCoupling configures velocity-phase coupling.
type TemporalCoupling struct {
	Enabled            bool              `json:"enabled"`
	VelocityPhaseRatio float64           `json:"velocity_phase_ratio"`
	Direction          CouplingDirection `json:"direction"`
}

// HarmonicGravity configures the scale-mode gravity lookup.
type HarmonicGravity struct {
	Enabled       bool               `json:"enabled"`
	GravityByMode map[string]float64 `json:"gravity_by_mode"`
}

// MacroDrift configures the slow phrase-level drift oscillator.
type MacroDrift struct {
	Enabled     bool     `json:"enabled"`
	AmplitudeMs float64  `json:"amplitude_ms"`
	PeriodBars  float64  `json:"period_bars"`
	Waveform    Waveform `json:"waveform"`
}

// PhraseConstraints bounds the accumulated phase error over a phrase.
type PhraseConstraints struct {
	PhraseLengthBars        int       `json:"phrase_length_bars"`
	ResetMode                ResetMode `json:"reset_mode"`
	MaxAccumulatedPhaseErrorMs float64 `json:"max_accumulated_phase_error_ms"`
}

// TemporalState configures bar-to-bar tension accumulation.
type TemporalState struct {
	Enabled                 bool    `json:"enabled"`
	TensionIncrement        float64 `json:"tension_increment"`
	ElasticityAmplification float64 `json:"elasticity_amplification"`
	ResetPeriodBars         int     `json:"reset_period_bars"`
}

// DACSaturation configures the hardware-emulation saturation stage.
type DACSaturation struct {
	Enabled bool    `json:"enabled"`
	Curve   string  `json:"curve"`
	Gain    float64 `json:"gain"`
}

// AntiAliasFilter configures the hardware-emulation anti-alias stage.
type AntiAliasFilter struct {
	Type      string  `json:"type"`
	CutoffHz  float64 `json:"cutoff_hz"`
	RippleDB  float64 `json:"ripple_db"`
}

// HardwareEmulation configures the PPQN quantizer and signal-chain
// processor.
type HardwareEmulation struct {
	PPQN            int             `json:"ppqn"`
	SampleRate      int             `json:"sample_rate"`
	BitDepth        int             `json:"bit_depth"`
	DACSaturation   DACSaturation   `json:"dac_saturation"`
	AntiAliasFilter AntiAliasFilter `json:"anti_alias_filter"`
}

// Profile is the complete declarative description of a feel. It is
// configuration: immutable in principle, copied on edit.
type Profile struct {
	BPM                float64                  `json:"bpm"`
	GrooveAmount        float64                  `json:"groove_amount"`
	FeelBias            FeelBias                 `json:"feel_bias"`
	StepsPerBar         int                      `json:"steps_per_bar"`
	RandomizationSeed   int64                    `json:"randomization_seed"`
	ChannelOffsets      map[string]ChannelConfig `json:"channel_offsets"`
	DragCurve           DragCurve                `json:"drag_curve"`
	TemporalCoupling    TemporalCoupling         `json:"temporal_coupling"`
	HarmonicGravity     HarmonicGravity          `json:"harmonic_gravity"`
	MacroDrift          MacroDrift               `json:"macro_drift"`
	PhraseConstraints   PhraseConstraints        `json:"phrase_constraints"`
	TemporalState       TemporalState            `json:"temporal_state"`
	HardwareEmulation   HardwareEmulation        `json:"hardware_emulation"`
	EmotionVector       emotionfield.Vector      `json:"emotion_vector"`
}

// NewDefaultProfile returns a profile with every feature gate off except
// groove_amount=1.0 and ppqn=0, matching spec.md scenario S1's "default
// profile".
func NewDefaultProfile() *Profile {
	return &Profile{
		BPM:               120,
		GrooveAmount:       1.0,
		FeelBias:           FeelLaidBack,
		StepsPerBar:        16,
		RandomizationSeed:  1,
		ChannelOffsets:     map[string]ChannelConfig{},
		DragCurve:          DragCurve{DriftMode: DriftPower, DragExponent: 1.0},
		TemporalCoupling:   TemporalCoupling{Direction: DirectionNatural},
		HarmonicGravity:    HarmonicGravity{GravityByMode: map[string]float64{}},
		MacroDrift:         MacroDrift{Waveform: WaveformSine},
		PhraseConstraints:  PhraseConstraints{PhraseLengthBars: 4, ResetMode: ResetOnPhraseBoundary},
		TemporalState:      TemporalState{ResetPeriodBars: 4},
		HardwareEmulation:  HardwareEmulation{PPQN: 0, SampleRate: 48000, BitDepth: 16},
		EmotionVector:      emotionfield.Vector{},
	}
}

// canonicalChannels maps specific hit names to groove buckets, per the
// glossary's canonical channel table.
var canonicalChannels = map[string]string{
	"kick":          "kick",
	"tom":           "kick",
	"snare":         "snare",
	"clap":          "snare",
	"hihat_closed":  "hihat",
	"hihat_open":    "hihat",
	"rim":           "hihat",
	"crash":         "hihat",
	"bass":          "bass",
	"piano":         "keys",
	"strings":       "keys",
	"lead":          "keys",
	"pluck":         "keys",
}

// CanonicalChannel resolves a raw channel id to its canonical groove
// bucket. Unknown ids pass through unchanged, which in turn surfaces as an
// all-zero channel configuration at lookup time (never fatal).
func CanonicalChannel(channelID string) string {
	if canon, ok := canonicalChannels[channelID]; ok {
		return canon
	}
	return channelID
}

// ChannelConfigFor resolves a channel's configuration, canonicalizing
// first. Unknown channels fall back to an all-zero configuration.
func (p *Profile) ChannelConfigFor(channelID string) ChannelConfig {
	canon := CanonicalChannel(channelID)
	if p.ChannelOffsets == nil {
		return ChannelConfig{}
	}
	return p.ChannelOffsets[canon]
}

// clampUnit clamps v to [0,1].
func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// EmotionVectorClamped returns the profile's emotion vector with every
// entry clamped to [0,1], per the invariant that emotion_vector values are
// clamped on every read.
func (p *Profile) EmotionVectorClamped() emotionfield.Vector {
	if p.EmotionVector == nil {
		return nil
	}
	out := make(emotionfield.Vector, len(p.EmotionVector))
	for k, v := range p.EmotionVector {
		out[k] = clampUnit(v)
	}
	return out
}

// For returns the configured gravity scalar for a mode,
// defaulting to 1.0, or 1.0 unconditionally when the feature is disabled.
func (hg HarmonicGravity) For(mode string) float64 {
	if !hg.Enabled {
		return 1.0
	}
	if v, ok := hg.GravityByMode[mode]; ok {
		if v < 1.0 {
			return 1.0
		}
		return v
	}
	return 1.0
}

// ScaleFor returns the per-channel drag scale, defaulting to 1.0.
func (dc DragCurve) ScaleFor(canonicalChannel string) float64 {
	if dc.PerChannelScaling == nil {
		return 1.0
	}
	if v, ok := dc.PerChannelScaling[canonicalChannel]; ok {
		return v
	}
	return 1.0
}
