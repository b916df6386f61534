// Package metrics provides summary statistics observed over experiment
// samples.
package metrics

import "math"

// Metric accumulates a scalar summary over a stream of trace samples.
type Metric interface {
	Name() string
	Observe(kappa, fx, pdiss, t float64)
	Value() float64
	Reset()
}

type PeakForce struct {
	name string
	max  float64
}

func NewPeakForce() *PeakForce {
	return &PeakForce{name: "peak_force"}
}

func (p *PeakForce) Name() string { return p.name }

func (p *PeakForce) Observe(kappa, fx, pdiss, t float64) {
	p.max = math.Max(p.max, math.Abs(fx))
}

func (p *PeakForce) Value() float64 { return p.max }

func (p *PeakForce) Reset() { p.max = 0 }

type PeakPower struct {
	name string
	max  float64
}

func NewPeakPower() *PeakPower {
	return &PeakPower{name: "peak_power"}
}

func (p *PeakPower) Name() string { return p.name }

func (p *PeakPower) Observe(kappa, fx, pdiss, t float64) {
	p.max = math.Max(p.max, pdiss)
}

func (p *PeakPower) Value() float64 { return p.max }

func (p *PeakPower) Reset() { p.max = 0 }

type MeanPower struct {
	name    string
	sum     float64
	samples int
}

func NewMeanPower() *MeanPower {
	return &MeanPower{name: "mean_power"}
}

func (m *MeanPower) Name() string { return m.name }

func (m *MeanPower) Observe(kappa, fx, pdiss, t float64) {
	m.sum += pdiss
	m.samples++
}

func (m *MeanPower) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanPower) Reset() {
	m.sum = 0
	m.samples = 0
}

// SaturationRatio reports the fraction of samples where the force magnitude
// exceeds 80% of the saturation asymptote Mu*Fz.
type SaturationRatio struct {
	name      string
	fxMax     float64
	saturated int
	samples   int
}

func NewSaturationRatio(fxMax float64) *SaturationRatio {
	return &SaturationRatio{name: "saturation_ratio", fxMax: fxMax}
}

func (s *SaturationRatio) Name() string { return s.name }

func (s *SaturationRatio) Observe(kappa, fx, pdiss, t float64) {
	s.samples++
	if s.fxMax > 0 && math.Abs(fx) > 0.8*s.fxMax {
		s.saturated++
	}
}

func (s *SaturationRatio) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.saturated) / float64(s.samples)
}

func (s *SaturationRatio) Reset() {
	s.saturated = 0
	s.samples = 0
}
