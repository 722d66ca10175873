package config

import "sort"

var Presets = map[string]*Config{
	"polytrope": DefaultConfig(),
	"envelope": {
		Name: "envelope", Mode: ModeRagged, Shells: 64, Rows: 16, Depth: 32, Ranks: 4,
		Variables: []VariableConfig{
			{Name: "density"},
			{Name: "velocity", Ghost: []int{2, 4, 8}},
			{Name: "sound_speed"},
			{Name: "temperature"},
			{Name: "donor"},
		},
		Stability: StabilityConfig{Courant: 0.4, MaxDt: 0.5, Velocity: "velocity", SoundSpeed: "sound_speed", Donor: "donor"},
		Profile:   ProfileConfig{InnerRadius: 0.5, OuterRadius: 1.0, CentralDensity: 0.2, SoundSpeed: 0.6, Infall: 0.05},
	},
	"collapse": {
		Name: "collapse", Mode: ModeRagged, Shells: 16, Rows: 4, Depth: 8, Ranks: 2,
		Variables: []VariableConfig{
			{Name: "density"},
			{Name: "velocity", Ghost: []int{1, 1, 1}},
			{Name: "sound_speed"},
			{Name: "donor"},
		},
		Stability: StabilityConfig{Courant: 0.8, MaxDt: 1.0, Velocity: "velocity", SoundSpeed: "sound_speed", Donor: "donor"},
		Profile:   ProfileConfig{InnerRadius: 0.0, OuterRadius: 1.0, CentralDensity: 5.0, SoundSpeed: 0.3, Infall: 1.5},
	},
	"uniform": {
		Name: "uniform", Mode: ModeUniform, Shells: 8, Rows: 4, Depth: 4, Ranks: 1,
		Variables: []VariableConfig{
			{Name: "density"},
			{Name: "pressure"},
		},
		Profile: ProfileConfig{InnerRadius: 0.0, OuterRadius: 1.0, CentralDensity: 1.0, SoundSpeed: 1.0},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	c.Variables = make([]VariableConfig, len(p.Variables))
	for i, v := range p.Variables {
		v.Dims = append([]int(nil), v.Dims...)
		v.Ghost = append([]int(nil), v.Ghost...)
		c.Variables[i] = v
	}
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
