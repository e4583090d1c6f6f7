package sound

import (
	"math"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/vi-gravity/core"
)

// ThudFrequency maps a kind to a base pitch; heavier kinds sound lower
func ThudFrequency(k core.Kind) float64 {
	return 220 / float64(1+k.Rank())
}

// ThudGenerator is a decaying low sine with a falling pitch
type ThudGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewThudGenerator creates a thud at freq Hz
func NewThudGenerator(sr beep.SampleRate, freq float64) *ThudGenerator {
	return &ThudGenerator{sr: sr, freq: freq}
}

func (g *ThudGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Pitch drops by half over the first 200ms
		freq := g.freq * (1 - 0.5*math.Min(t/0.2, 1))
		envelope := math.Exp(-t * 12)
		sample := 0.35 * envelope * math.Sin(2*math.Pi*freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ThudGenerator) Err() error {
	return nil
}

// BuzzGenerator generates a low harsh buzz
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz generator
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{sr: sr, freq: freq}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.15 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.075 * math.Sin(2*math.Pi*g.freq*3*t)

		// 20ms fade in
		envelope := math.Min(t/0.02, 1.0)
		sample *= envelope * 0.2

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}

// ChimeGenerator plays a root and a fifth with a bell-like decay
type ChimeGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewChimeGenerator creates a chime with root freq Hz
func NewChimeGenerator(sr beep.SampleRate, freq float64) *ChimeGenerator {
	return &ChimeGenerator{sr: sr, freq: freq}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t * 8)
		sample := 0.2 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.1 * math.Sin(2*math.Pi*g.freq*1.5*t)
		sample *= envelope

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}
