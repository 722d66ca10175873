package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	ModeUniform = "uniform"
	ModeRagged  = "ragged"
)

const (
	DefaultShells  = 32
	DefaultRows    = 8
	DefaultDepth   = 16
	DefaultCourant = 0.5
	DefaultMaxDt   = 1.0
	DefaultRanks   = 1
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Name      string           `yaml:"name"`
	Mode      string           `yaml:"mode"`
	Shells    int              `yaml:"shells"`
	Rows      int              `yaml:"rows"`
	Depth     int              `yaml:"depth"`
	Ranks     int              `yaml:"ranks"`
	Variables []VariableConfig `yaml:"variables"`
	Stability StabilityConfig  `yaml:"stability"`
	Profile   ProfileConfig    `yaml:"profile"`
}

// VariableConfig describes one variable slot. Dims defaults to
// [shells, rows, depth]; Ghost is [ghost shells, ghost rows, ghost depth]
// and only applies in ragged mode.
type VariableConfig struct {
	Name  string `yaml:"name"`
	Dims  []int  `yaml:"dims,omitempty"`
	Ghost []int  `yaml:"ghost,omitempty"`
}

type StabilityConfig struct {
	Courant    float64 `yaml:"courant"`
	MaxDt      float64 `yaml:"max_dt"`
	Velocity   string  `yaml:"velocity"`
	SoundSpeed string  `yaml:"sound_speed"`
	Donor      string  `yaml:"donor"`
}

type ProfileConfig struct {
	InnerRadius    float64 `yaml:"inner_radius"`
	OuterRadius    float64 `yaml:"outer_radius"`
	CentralDensity float64 `yaml:"central_density"`
	SoundSpeed     float64 `yaml:"sound_speed"`
	Infall         float64 `yaml:"infall"`

	// StarRadius normalises the profile. Zero means OuterRadius.
	StarRadius float64 `yaml:"star_radius,omitempty"`
}

func (p ProfileConfig) Surface() float64 {
	if p.StarRadius > 0 {
		return p.StarRadius
	}
	return p.OuterRadius
}

func DefaultConfig() *Config {
	return &Config{
		Name:   "polytrope",
		Mode:   ModeRagged,
		Shells: DefaultShells,
		Rows:   DefaultRows,
		Depth:  DefaultDepth,
		Ranks:  DefaultRanks,
		Variables: []VariableConfig{
			{Name: "density"},
			{Name: "velocity", Ghost: []int{1, 1, 1}},
			{Name: "sound_speed"},
			{Name: "donor"},
		},
		Stability: StabilityConfig{
			Courant:    DefaultCourant,
			MaxDt:      DefaultMaxDt,
			Velocity:   "velocity",
			SoundSpeed: "sound_speed",
			Donor:      "donor",
		},
		Profile: ProfileConfig{
			InnerRadius:    0.1,
			OuterRadius:    1.0,
			CentralDensity: 1.0,
			SoundSpeed:     1.0,
			Infall:         0.1,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Index returns the slot of the named variable, or -1.
func (c *Config) Index(name string) int {
	for i, v := range c.Variables {
		if v.Name == name {
			return i
		}
	}
	return -1
}

func (c *Config) Names() []string {
	names := make([]string, len(c.Variables))
	for i, v := range c.Variables {
		names[i] = v.Name
	}
	return names
}

// DimsOf returns the interior extents of variable i.
func (c *Config) DimsOf(i int) [3]int {
	v := c.Variables[i]
	if len(v.Dims) == 3 {
		return [3]int{v.Dims[0], v.Dims[1], v.Dims[2]}
	}
	return [3]int{c.Shells, c.Rows, c.Depth}
}

// GhostOf returns the ghost extents of variable i; zero in uniform mode.
func (c *Config) GhostOf(i int) [3]int {
	v := c.Variables[i]
	if c.Mode != ModeRagged || len(v.Ghost) != 3 {
		return [3]int{}
	}
	return [3]int{v.Ghost[0], v.Ghost[1], v.Ghost[2]}
}

func (c *Config) Validate() error {
	if c.Mode != ModeUniform && c.Mode != ModeRagged {
		return fmt.Errorf("%w: mode %q (want %s or %s)", ErrInvalid, c.Mode, ModeUniform, ModeRagged)
	}
	if len(c.Variables) == 0 {
		return fmt.Errorf("%w: no variables", ErrInvalid)
	}
	if c.Ranks < 1 {
		return fmt.Errorf("%w: ranks %d", ErrInvalid, c.Ranks)
	}

	seen := make(map[string]bool)
	for i, v := range c.Variables {
		if v.Name == "" {
			return fmt.Errorf("%w: variable %d has no name", ErrInvalid, i)
		}
		if seen[v.Name] {
			return fmt.Errorf("%w: duplicate variable %q", ErrInvalid, v.Name)
		}
		seen[v.Name] = true

		if v.Dims != nil && len(v.Dims) != 3 {
			return fmt.Errorf("%w: %s dims need 3 values, got %d", ErrInvalid, v.Name, len(v.Dims))
		}
		if v.Ghost != nil && len(v.Ghost) != 3 {
			return fmt.Errorf("%w: %s ghost needs 3 values, got %d", ErrInvalid, v.Name, len(v.Ghost))
		}
		for _, d := range c.DimsOf(i) {
			if d <= 0 {
				return fmt.Errorf("%w: %s dims %v must be positive", ErrInvalid, v.Name, c.DimsOf(i))
			}
		}
	}

	for _, slot := range []string{c.Stability.Velocity, c.Stability.SoundSpeed, c.Stability.Donor} {
		if slot != "" && !seen[slot] {
			return fmt.Errorf("%w: stability refers to unknown variable %q", ErrInvalid, slot)
		}
	}

	p := c.Profile
	if p.InnerRadius < 0 || p.OuterRadius <= p.InnerRadius {
		return fmt.Errorf("%w: radii [%g, %g]", ErrInvalid, p.InnerRadius, p.OuterRadius)
	}
	return nil
}
