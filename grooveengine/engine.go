package grooveengine

import (
	dspcore "github.com/cwbudde/algo-dsp/dsp/core"

	"github.com/cwbudde/groove-engine/emotionfield"
	"github.com/cwbudde/groove-engine/groovefield"
	"github.com/cwbudde/groove-engine/groovekernel"
	"github.com/cwbudde/groove-engine/hardware"
	"github.com/cwbudde/groove-engine/rng"
)

const minGhostVelocity = 0.05
const maxVelocity = 1.0

// ScheduledEvent is the output of ApplyGroove.
type ScheduledEvent struct {
	TimeSeconds float64
	Velocity    float64
	ShouldPlay  bool
}

// RNG is the subset of rng.Source the scheduler needs: one uniform draw
// and one Gaussian draw, consumed in the fixed order spec.md §5 mandates.
type RNG interface {
	Next() float64
	Gaussian() float64
}

var _ RNG = (*rng.Source)(nil)

// ApplyGroove is the scheduler hook called once per active event at
// scheduling time. channelID is mapped through the canonical channel table
// before any profile lookup. A nil profile or groove_amount==0 is an early
// exit that returns the event unmodified.
//
// Feature application order inside a single event is fixed: assemble →
// emotional bias → kernel → velocity humanization → ghost note → add to
// grid time → PPQN round → clamp to >= 0. The scheduler performs no
// conditional on a groove-type tag; every feature activates from its own
// numeric/boolean gate.
func ApplyGroove(
	gridTimeSeconds float64,
	stepIndex int,
	channelID string,
	profile *Profile,
	barIndex int,
	r RNG,
	scaleMode string,
	baseVelocity float64,
) ScheduledEvent {
	if profile == nil || profile.GrooveAmount == 0 {
		return ScheduledEvent{TimeSeconds: gridTimeSeconds, Velocity: baseVelocity, ShouldPlay: true}
	}

	canon := CanonicalChannel(channelID)
	channel := profile.ChannelConfigFor(channelID)

	ctx := assembleContext(profile, canon, channel, stepIndex, barIndex, scaleMode, baseVelocity, r)
	ctx = emotionfield.Apply(ctx, profile.EmotionVectorClamped())

	displacementMs := groovekernel.Evaluate(ctx)
	timeSeconds := gridTimeSeconds + displacementMs/1000.0

	velocity := baseVelocity
	if r != nil && channel.VelocityVariance > 0 {
		g := r.Gaussian()
		velocity = clampVelocity(baseVelocity + channel.VelocityVariance*g)
	}

	shouldPlay := true
	if r != nil && channel.GhostNoteProbability > 0 {
		if r.Next() < channel.GhostNoteProbability {
			velocity = baseVelocity * dspcore.DBToLinear(channel.GhostNoteAttenuationDB)
		}
	}

	if profile.HardwareEmulation.PPQN > 0 {
		timeSeconds = hardware.RoundToPPQN(timeSeconds, profile.BPM, profile.HardwareEmulation.PPQN)
	}

	if timeSeconds < 0 {
		timeSeconds = 0
	}

	return ScheduledEvent{TimeSeconds: timeSeconds, Velocity: velocity, ShouldPlay: shouldPlay}
}

// assembleContext builds the unscaled coefficient context per spec §4.3.
// RNG consumption order inside this function is fixed: the jitter Gaussian
// is drawn here, before any post-kernel draw.
func assembleContext(
	profile *Profile,
	canonicalChannel string,
	channel ChannelConfig,
	stepIndex int,
	barIndex int,
	scaleMode string,
	baseVelocity float64,
	r RNG,
) groovekernel.Context {
	maxPushMs, maxDragMs := profile.FeelBias.limits()

	exponentMultiplier := 1.0
	if profile.TemporalState.Enabled {
		_, exponentMultiplier = groovefield.TensionState(
			barIndex,
			profile.TemporalState.ResetPeriodBars,
			profile.TemporalState.TensionIncrement,
			profile.TemporalState.ElasticityAmplification,
		)
	}

	curvature := 0.0
	if profile.DragCurve.Enabled {
		scale := profile.DragCurve.ScaleFor(canonicalChannel)
		switch profile.DragCurve.DriftMode {
		case DriftLog:
			curvature = groovefield.LogDrift(stepIndex, profile.StepsPerBar, profile.DragCurve.MaxDragMs, profile.DragCurve.LogK*exponentMultiplier, scale)
		case DriftLinear:
			if profile.StepsPerBar > 0 {
				curvature = profile.DragCurve.MaxDragMs * float64(stepIndex) / float64(profile.StepsPerBar) * scale
			}
		default:
			curvature = groovefield.PowerDrag(stepIndex, profile.StepsPerBar, profile.DragCurve.MaxDragMs, profile.DragCurve.DragExponent*exponentMultiplier, scale)
		}
	}

	phaseCoupling := 0.0
	if profile.TemporalCoupling.Enabled {
		direction := groovefield.CouplingNone
		switch profile.TemporalCoupling.Direction {
		case DirectionNatural:
			direction = groovefield.CouplingNatural
		case DirectionInverted:
			direction = groovefield.CouplingInverted
		}
		phaseCoupling = groovefield.VelocityPhaseCoupling(baseVelocity, profile.TemporalCoupling.VelocityPhaseRatio, direction)
	}

	gravity := 1.0
	if profile.HarmonicGravity.Enabled {
		gravity = profile.HarmonicGravity.For(scaleMode)
	}

	macroDrift := 0.0
	if profile.MacroDrift.Enabled {
		waveform := groovefield.WaveformSine
		if profile.MacroDrift.Waveform == WaveformTriangle {
			waveform = groovefield.WaveformTriangle
		}
		macroDrift = groovefield.MacroDrift(true, profile.MacroDrift.AmplitudeMs, profile.MacroDrift.PeriodBars, waveform, float64(barIndex))
	}

	jitter := 0.0
	if channel.JitterMs > 0 && r != nil {
		jitter = channel.JitterMs * r.Gaussian()
	}

	maxPhaseErrorMs := profile.PhraseConstraints.MaxAccumulatedPhaseErrorMs

	return groovekernel.Context{
		BPM:             profile.BPM,
		GrooveAmount:    profile.GrooveAmount,
		LinearOffset:    channel.TimingOffsetMs,
		Curvature:       curvature,
		PhaseCoupling:   phaseCoupling,
		HarmonicGravity: gravity,
		MacroDrift:      macroDrift,
		Jitter:          jitter,
		MaxPushMs:       maxPushMs,
		MaxDragMs:       maxDragMs,
		MaxPhaseErrorMs: maxPhaseErrorMs,
	}
}

func clampVelocity(v float64) float64 {
	return dspcore.Clamp(v, minGhostVelocity, maxVelocity)
}
