package hardware

import (
	"math"

	dspeffects "github.com/cwbudde/algo-dsp/dsp/effects"
	"github.com/cwbudde/groove-engine/rng"
)

const (
	minSaturationGain = 0.01
	maxSaturationGain = 20.0

	minBitCrusherDownsample = 1
	maxBitCrusherDownsample = 256

	minBitCrusherBitDepth = 1.0
	maxBitCrusherBitDepth = 32.0
)

// SignalChainParams is the flat parameter block for one channel of the
// hardware signal-chain processor. Enable flags are booleans; all
// parameters are k-rate and may change abruptly between blocks without
// smoothing.
type SignalChainParams struct {
	Enabled           bool
	SaturationEnabled bool
	SaturationGain    float64
	DownsampleEnabled bool
	TargetSampleRate  float64
	BitDepth          float64
	CrackleAmount     float64 // [0,1]
	DryWet            float64 // [0,1]
}

// SignalChain replicates the analog-then-sample-then-quantize behavior of
// emulated groove-box hardware: saturation, anti-alias filtering,
// sample-and-hold downsampling, bit-depth quantization, and deterministic
// crackle, in that fixed order. It owns all per-channel state explicitly
// and never allocates inside Process.
type SignalChain struct {
	hostSampleRate float64
	params         SignalChainParams

	saturator  *dspeffects.Distortion
	bitcrusher *dspeffects.BitCrusher

	lpState float64

	cracklePRNG *rng.Source
}

const crackleSeed = 0x5EED1234

// NewSignalChain creates a signal-chain processor running at the host
// sample rate. The deterministic crackle generator is seeded to a fixed
// constant, independent of the groove scheduler's RNG.
func NewSignalChain(hostSampleRate float64) *SignalChain {
	sc := &SignalChain{
		hostSampleRate: hostSampleRate,
		cracklePRNG:    rng.New(crackleSeed),
	}
	sc.saturator, _ = dspeffects.NewDistortion(hostSampleRate,
		dspeffects.WithDistortionMode(dspeffects.DistortionModeTanh),
		dspeffects.WithDistortionMix(1.0),
		dspeffects.WithDistortionOutputLevel(1.0),
		dspeffects.WithDistortionBias(0.0),
	)
	sc.bitcrusher, _ = dspeffects.NewBitCrusher(hostSampleRate,
		dspeffects.WithBitCrusherMix(1.0),
	)
	return sc
}

// SetParams updates the k-rate parameter block. Transitions between
// enabled=false and enabled=true leave hold/filter state untouched; the
// processor does not zero it on re-enable.
func (sc *SignalChain) SetParams(p SignalChainParams) {
	sc.params = p
	if sc.saturator != nil {
		gain := p.SaturationGain
		if gain < minSaturationGain {
			gain = minSaturationGain
		}
		if gain > maxSaturationGain {
			gain = maxSaturationGain
		}
		_ = sc.saturator.SetDrive(gain)
	}
	if sc.bitcrusher != nil {
		ratio := minBitCrusherDownsample
		if p.DownsampleEnabled && p.TargetSampleRate > 0 && sc.hostSampleRate > 0 {
			ratio = int(math.Floor(sc.hostSampleRate / p.TargetSampleRate))
		}
		if ratio < minBitCrusherDownsample {
			ratio = minBitCrusherDownsample
		}
		if ratio > maxBitCrusherDownsample {
			ratio = maxBitCrusherDownsample
		}
		_ = sc.bitcrusher.SetDownsample(ratio)

		bitDepth := p.BitDepth
		if bitDepth < minBitCrusherBitDepth {
			bitDepth = minBitCrusherBitDepth
		}
		if bitDepth > maxBitCrusherBitDepth {
			bitDepth = maxBitCrusherBitDepth
		}
		_ = sc.bitcrusher.SetBitDepth(bitDepth)
	}
}

// Process runs one block of samples through the chain in place. With
// Enabled=false, the block is left byte-for-byte unchanged.
func (sc *SignalChain) Process(block []float64) {
	if !sc.params.Enabled {
		return
	}
	for i, x := range block {
		block[i] = sc.processSample(x)
	}
}

func (sc *SignalChain) processSample(x float64) float64 {
	dry := x
	p := sc.params

	if p.SaturationEnabled && sc.saturator != nil {
		x = sc.saturator.ProcessSample(x)
	}

	ratio := 1
	if p.DownsampleEnabled && p.TargetSampleRate > 0 && sc.hostSampleRate > 0 {
		ratio = int(math.Floor(sc.hostSampleRate / p.TargetSampleRate))
		if ratio < 1 {
			ratio = 1
		}
	}

	if p.DownsampleEnabled && ratio > 1 {
		alpha := 2 * math.Pi * p.TargetSampleRate / (2 * sc.hostSampleRate)
		if alpha > 1 {
			alpha = 1
		}
		sc.lpState += alpha * (x - sc.lpState)
		x = sc.lpState
	}

	if p.DownsampleEnabled && sc.bitcrusher != nil {
		x = sc.bitcrusher.ProcessSample(x)
	}

	if p.CrackleAmount > 0 {
		if sc.cracklePRNG.Next() < p.CrackleAmount*0.002 {
			u := sc.cracklePRNG.Next()
			x += (u - 0.5) * p.CrackleAmount * 0.15
		}
	}

	wet := p.DryWet
	return dry*(1-wet) + x*wet
}
