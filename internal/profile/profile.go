// Package profile provides slip-ratio trajectories kappa(t) for time-domain
// experiments.
package profile

import "math"

type Profile interface {
	Kappa(t float64) float64
	Name() string
}

// RampHold ramps kappa linearly from 0 to KappaMax over RampTime, then holds.
type RampHold struct {
	KappaMax float64
	RampTime float64
}

func NewRampHold(kappaMax, rampTime float64) *RampHold {
	return &RampHold{KappaMax: kappaMax, RampTime: rampTime}
}

func (r *RampHold) Name() string { return "ramp" }

func (r *RampHold) Kappa(t float64) float64 {
	if r.RampTime <= 0 || t >= r.RampTime {
		return r.KappaMax
	}
	if t <= 0 {
		return 0
	}
	return r.KappaMax * t / r.RampTime
}

// Step is zero until StepTime, then KappaMax.
type Step struct {
	KappaMax float64
	StepTime float64
}

func NewStep(kappaMax, stepTime float64) *Step {
	return &Step{KappaMax: kappaMax, StepTime: stepTime}
}

func (s *Step) Name() string { return "step" }

func (s *Step) Kappa(t float64) float64 {
	if t < s.StepTime {
		return 0
	}
	return s.KappaMax
}

// Sine oscillates kappa = Amplitude * sin(2*pi*Frequency*t).
type Sine struct {
	Amplitude float64
	Frequency float64
}

func NewSine(amplitude, frequency float64) *Sine {
	return &Sine{Amplitude: amplitude, Frequency: frequency}
}

func (s *Sine) Name() string { return "sine" }

func (s *Sine) Kappa(t float64) float64 {
	return s.Amplitude * math.Sin(2*math.Pi*s.Frequency*t)
}

// Constant holds a fixed slip ratio.
type Constant struct {
	Value float64
}

func NewConstant(value float64) *Constant {
	return &Constant{Value: value}
}

func (c *Constant) Name() string { return "constant" }

func (c *Constant) Kappa(t float64) float64 { return c.Value }

// Sample evaluates a profile over a time grid.
func Sample(p Profile, times []float64) []float64 {
	kappa := make([]float64, len(times))
	for i, t := range times {
		kappa[i] = p.Kappa(t)
	}
	return kappa
}
