package config

// Presets are named trace scenarios per slip profile.
var Presets = map[string]map[string]*Config{
	"ramp": {
		"gentle": withTrace(TraceConfig{
			Duration: 3.0, Steps: 300, Fz: 900,
			Profile: "ramp", KappaMax: 0.05, RampTime: 2.0,
		}),
		"standard": withTrace(TraceConfig{
			Duration: 3.0, Steps: 300, Fz: 900,
			Profile: "ramp", KappaMax: 0.15, RampTime: 1.5,
		}),
		"aggressive": withTrace(TraceConfig{
			Duration: 2.0, Steps: 400, Fz: 1200,
			Profile: "ramp", KappaMax: 0.3, RampTime: 0.5,
		}),
	},
	"step": {
		"lockup": withTrace(TraceConfig{
			Duration: 2.0, Steps: 200, Fz: 900,
			Profile: "step", KappaMax: 0.25, StepTime: 0.5,
		}),
		"mild": withTrace(TraceConfig{
			Duration: 3.0, Steps: 300, Fz: 600,
			Profile: "step", KappaMax: 0.08, StepTime: 1.0,
		}),
	},
	"sine": {
		"abs": withTrace(TraceConfig{
			Duration: 4.0, Steps: 800, Fz: 900,
			Profile: "sine", Amplitude: 0.12, Frequency: 2.0,
		}),
		"slow": withTrace(TraceConfig{
			Duration: 6.0, Steps: 600, Fz: 900,
			Profile: "sine", Amplitude: 0.2, Frequency: 0.5,
		}),
	},
	"constant": {
		"cruise": withTrace(TraceConfig{
			Duration: 5.0, Steps: 500, Fz: 900,
			Profile: "constant", KappaMax: 0.02,
		}),
	},
}

func withTrace(trace TraceConfig) *Config {
	cfg := DefaultConfig()
	cfg.Trace = trace
	return cfg
}

func GetPreset(prof, preset string) *Config {
	profPresets, ok := Presets[prof]
	if !ok {
		return nil
	}
	cfg, ok := profPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(prof string) []string {
	profPresets, ok := Presets[prof]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(profPresets))
	for name := range profPresets {
		names = append(names, name)
	}
	return names
}
