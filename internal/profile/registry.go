package profile

import "fmt"

type Registry struct {
	profiles map[string]func(map[string]float64) Profile
}

func NewRegistry() *Registry {
	r := &Registry{
		profiles: make(map[string]func(map[string]float64) Profile),
	}

	r.profiles["ramp"] = func(params map[string]float64) Profile {
		kappaMax := paramOr(params, "kappa_max", 0.15)
		rampTime := paramOr(params, "ramp_time", 1.5)
		return NewRampHold(kappaMax, rampTime)
	}
	r.profiles["step"] = func(params map[string]float64) Profile {
		kappaMax := paramOr(params, "kappa_max", 0.15)
		stepTime := paramOr(params, "step_time", 1.0)
		return NewStep(kappaMax, stepTime)
	}
	r.profiles["sine"] = func(params map[string]float64) Profile {
		amplitude := paramOr(params, "amplitude", 0.1)
		frequency := paramOr(params, "frequency", 1.0)
		return NewSine(amplitude, frequency)
	}
	r.profiles["constant"] = func(params map[string]float64) Profile {
		return NewConstant(paramOr(params, "kappa", 0.1))
	}

	return r
}

func (r *Registry) Get(name string, params map[string]float64) (Profile, error) {
	fn, ok := r.profiles[name]
	if !ok {
		return nil, fmt.Errorf("unknown profile: %s", name)
	}
	return fn(params), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	return names
}

func paramOr(params map[string]float64, key string, def float64) float64 {
	if v, ok := params[key]; ok && v != 0 {
		return v
	}
	return def
}
