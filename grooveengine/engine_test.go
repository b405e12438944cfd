package grooveengine

import (
	"math"
	"testing"

	"github.com/cwbudde/groove-engine/rng"
)

// S1 — Grid identity: default profile, all features disabled, groove_amount=1, ppqn=0.
func TestS1GridIdentity(t *testing.T) {
	p := NewDefaultProfile()
	p.BPM = 120
	evt := ApplyGroove(0.5, 4, "kick", p, 0, nil, "minor", 0.9)
	if evt.TimeSeconds != 0.5 {
		t.Fatalf("time = %v, want 0.5", evt.TimeSeconds)
	}
	if evt.Velocity != 0.9 {
		t.Fatalf("velocity = %v, want 0.9", evt.Velocity)
	}
	if !evt.ShouldPlay {
		t.Fatalf("should_play = false, want true")
	}
}

// S2 — Disabled via amount: groove_amount=0 always passes through unchanged.
func TestS2DisabledViaAmount(t *testing.T) {
	p := NewDefaultProfile()
	p.GrooveAmount = 0
	p.DragCurve.Enabled = true
	p.DragCurve.MaxDragMs = 50
	evt := ApplyGroove(1.25, 8, "snare", p, 3, rng.New(5), "dorian", 0.6)
	if evt.TimeSeconds != 1.25 || evt.Velocity != 0.6 || !evt.ShouldPlay {
		t.Fatalf("unexpected result for groove_amount=0: %+v", evt)
	}
}

// S3 — Power-curve drag: 25ms*1^1.25*1 = 25ms unscaled; bpm=90 => beta=1,
// amount=1, feel clamp (laid_back drag limit 25ms) => +0.025s.
func TestS3PowerCurveDrag(t *testing.T) {
	p := NewDefaultProfile()
	p.BPM = 90
	p.FeelBias = FeelLaidBack
	p.DragCurve = DragCurve{
		Enabled:           true,
		DriftMode:         DriftPower,
		MaxDragMs:         25,
		DragExponent:      1.25,
		PerChannelScaling: map[string]float64{"snare": 1.0},
	}
	evt := ApplyGroove(1.0, 16, "snare", p, 0, nil, "major", 0.8)
	if math.Abs(evt.TimeSeconds-1.025) > 1e-9 {
		t.Fatalf("time = %v, want 1.025", evt.TimeSeconds)
	}
}

// S4 — Log-drift endpoints through ApplyGroove (the basis-function check
// lives in groovefield; here we confirm wiring end to end at step 0 and
// step N).
func TestS4LogDriftEndpointsThroughEngine(t *testing.T) {
	p := NewDefaultProfile()
	p.BPM = 90
	p.FeelBias = FeelDeepPocket // wide enough limits to avoid clamping 20ms
	p.DragCurve = DragCurve{
		Enabled:   true,
		DriftMode: DriftLog,
		MaxDragMs: 20,
		LogK:      4,
	}
	atZero := ApplyGroove(1.0, 0, "kick", p, 0, nil, "major", 0.8)
	if atZero.TimeSeconds != 1.0 {
		t.Fatalf("step 0 time = %v, want 1.0 (no displacement)", atZero.TimeSeconds)
	}
	atN := ApplyGroove(1.0, p.StepsPerBar, "kick", p, 0, nil, "major", 0.8)
	if math.Abs(atN.TimeSeconds-1.020) > 1e-9 {
		t.Fatalf("step N time = %v, want 1.020", atN.TimeSeconds)
	}
}

// S5 — Emotion identity: all-zero emotion vector matches the no-bias output exactly.
func TestS5EmotionIdentity(t *testing.T) {
	p := NewDefaultProfile()
	p.BPM = 100
	p.DragCurve.Enabled = true
	p.DragCurve.MaxDragMs = 12
	p.DragCurve.DragExponent = 1.5
	withZero := ApplyGroove(2.0, 6, "snare", p, 1, nil, "minor", 0.75)

	p.EmotionVector = nil
	withNil := ApplyGroove(2.0, 6, "snare", p, 1, nil, "minor", 0.75)

	if withZero.TimeSeconds != withNil.TimeSeconds {
		t.Fatalf("emotion identity violated: %v != %v", withZero.TimeSeconds, withNil.TimeSeconds)
	}
}

// S6 — Emotion increases drag: loneliness=1.0 strictly increases displacement.
func TestS6EmotionIncreasesDrag(t *testing.T) {
	p := NewDefaultProfile()
	p.BPM = 100
	p.DragCurve.Enabled = true
	p.DragCurve.MaxDragMs = 12
	p.DragCurve.DragExponent = 1.5
	p.FeelBias = FeelDeepPocket

	neutral := ApplyGroove(2.0, 8, "snare", p, 0, nil, "minor", 0.75)

	p.EmotionVector["loneliness"] = 1.0
	biased := ApplyGroove(2.0, 8, "snare", p, 0, nil, "minor", 0.75)

	if biased.TimeSeconds <= neutral.TimeSeconds {
		t.Fatalf("expected loneliness=1.0 to strictly increase displacement: neutral=%v biased=%v", neutral.TimeSeconds, biased.TimeSeconds)
	}
}

// S9 — PPQN chunk: resulting time is always a multiple of 60/(bpm*ppqn).
func TestS9PPQNChunking(t *testing.T) {
	p := NewDefaultProfile()
	p.BPM = 90
	p.HardwareEmulation.PPQN = 96
	p.DragCurve.Enabled = true
	p.DragCurve.MaxDragMs = 7
	p.DragCurve.DragExponent = 1.0

	evt := ApplyGroove(1.0033, 5, "kick", p, 0, nil, "major", 0.7)
	pulse := 60.0 / (90.0 * 96.0)
	ratio := evt.TimeSeconds / pulse
	rounded := math.Round(ratio)
	if math.Abs(ratio-rounded) > 1e-6 {
		t.Fatalf("time %v is not a multiple of pulse %v", evt.TimeSeconds, pulse)
	}
}

func TestCanonicalChannelMapping(t *testing.T) {
	cases := map[string]string{
		"kick":         "kick",
		"tom":          "kick",
		"snare":        "snare",
		"clap":         "snare",
		"hihat_closed": "hihat",
		"hihat_open":   "hihat",
		"rim":          "hihat",
		"crash":        "hihat",
		"bass":         "bass",
		"piano":        "keys",
		"strings":      "keys",
		"lead":         "keys",
		"pluck":        "keys",
		"weird_unknown": "weird_unknown",
	}
	for in, want := range cases {
		if got := CanonicalChannel(in); got != want {
			t.Fatalf("CanonicalChannel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUnknownChannelFallsBackToZeroConfig(t *testing.T) {
	p := NewDefaultProfile()
	cfg := p.ChannelConfigFor("totally_unknown_channel")
	if cfg != (ChannelConfig{}) {
		t.Fatalf("expected zero-value channel config, got %+v", cfg)
	}
}

func TestGhostNoteAttenuationMonotonic(t *testing.T) {
	p := NewDefaultProfile()
	p.ChannelOffsets = map[string]ChannelConfig{
		"snare": {GhostNoteProbability: 1.0, GhostNoteAttenuationDB: -6},
	}
	lessAttenuated := ApplyGroove(0, 0, "snare", p, 0, rng.New(1), "major", 1.0)

	p.ChannelOffsets["snare"] = ChannelConfig{GhostNoteProbability: 1.0, GhostNoteAttenuationDB: -18}
	moreAttenuated := ApplyGroove(0, 0, "snare", p, 0, rng.New(1), "major", 1.0)

	if moreAttenuated.Velocity > lessAttenuated.Velocity {
		t.Fatalf("more negative attenuation should not increase velocity: less=%v more=%v", lessAttenuated.Velocity, moreAttenuated.Velocity)
	}
}

func TestVelocityHumanizationClampedToRange(t *testing.T) {
	p := NewDefaultProfile()
	p.ChannelOffsets = map[string]ChannelConfig{
		"kick": {VelocityVariance: 5.0}, // absurdly large to force clamping
	}
	r := rng.New(77)
	for i := 0; i < 64; i++ {
		evt := ApplyGroove(0, i, "kick", p, 0, r, "major", 0.5)
		if evt.Velocity < 0.05 || evt.Velocity > 1.0 {
			t.Fatalf("velocity %v escaped [0.05, 1.0] at iteration %d", evt.Velocity, i)
		}
	}
}

func TestFinalTimeNeverNegative(t *testing.T) {
	p := NewDefaultProfile()
	p.FeelBias = FeelAhead // -20ms push limit
	p.TemporalCoupling = TemporalCoupling{Enabled: true, VelocityPhaseRatio: 5, Direction: DirectionNatural}
	evt := ApplyGroove(0.0001, 0, "kick", p, 0, nil, "major", 0.0)
	if evt.TimeSeconds < 0 {
		t.Fatalf("final time went negative: %v", evt.TimeSeconds)
	}
}

func TestDeterminismAcrossRuns(t *testing.T) {
	p := NewDefaultProfile()
	p.ChannelOffsets = map[string]ChannelConfig{
		"kick": {JitterMs: 3, VelocityVariance: 0.1, GhostNoteProbability: 0.3, GhostNoteAttenuationDB: -9},
	}
	p.DragCurve.Enabled = true
	p.DragCurve.MaxDragMs = 10
	p.DragCurve.DragExponent = 1.1

	run := func(seed int64) []ScheduledEvent {
		r := rng.New(seed)
		events := make([]ScheduledEvent, 0, 16)
		for step := 0; step < 16; step++ {
			events = append(events, ApplyGroove(float64(step)*0.25, step, "kick", p, 0, r, "major", 0.9))
		}
		return events
	}

	a := run(42)
	b := run(42)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("event %d diverged across identically seeded runs: %+v != %+v", i, a[i], b[i])
		}
	}
}

func TestRNGResetReproducesPriorRun(t *testing.T) {
	p := NewDefaultProfile()
	p.ChannelOffsets = map[string]ChannelConfig{
		"kick": {JitterMs: 2},
	}
	r := rng.New(9)
	first := ApplyGroove(0, 0, "kick", p, 0, r, "major", 0.9)

	r.Reset(9)
	second := ApplyGroove(0, 0, "kick", p, 0, r, "major", 0.9)

	if first != second {
		t.Fatalf("reset did not reproduce prior output: %+v != %+v", first, second)
	}
}
