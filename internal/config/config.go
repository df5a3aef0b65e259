// Package config loads the screensaver tunables from YAML layered over embedded defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable of the screensaver.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Simulation SimulationConfig `yaml:"simulation"`
	Render     RenderConfig     `yaml:"render"`
	Audio      AudioConfig      `yaml:"audio"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

// WindowConfig holds window creation and input settings.
type WindowConfig struct {
	Title              string  `yaml:"title"`
	PreviewWidth       int     `yaml:"preview_width"`
	PreviewHeight      int     `yaml:"preview_height"`
	SwapInterval       int     `yaml:"swap_interval"`
	ExitMouseThreshold float64 `yaml:"exit_mouse_threshold"` // pixels; 0 disables
}

// SimulationConfig holds pool capacities and particle physics.
// Lengths are in screen heights, times in seconds.
type SimulationConfig struct {
	MaxParticles    int          `yaml:"max_particles"`
	MaxRockets      int          `yaml:"max_rockets"`
	MaxFrameSeconds float64      `yaml:"max_frame_seconds"` // dt clamp after stalls
	Gravity         float32      `yaml:"gravity"`
	Rocket          RocketConfig `yaml:"rocket"`
	Spark           SparkConfig  `yaml:"spark"`
	Haze            HazeConfig   `yaml:"haze"`
}

// RocketConfig holds launch pacing and flight parameters.
type RocketConfig struct {
	Thrust           float32 `yaml:"thrust"`
	LaunchSpeedMin   float32 `yaml:"launch_speed_min"`
	LaunchSpeedMax   float32 `yaml:"launch_speed_max"`
	LateralSpeed     float32 `yaml:"lateral_speed"`
	LifeMin          float32 `yaml:"life_min"`
	LifeMax          float32 `yaml:"life_max"`
	IntervalMin      float32 `yaml:"interval_min"`
	IntervalMax      float32 `yaml:"interval_max"`
	ChildrenMin      int     `yaml:"children_min"`
	ChildrenMax      int     `yaml:"children_max"`
	Radius           float32 `yaml:"radius"`
	EmissionInterval float32 `yaml:"emission_interval"` // seconds between haze puffs; 0 disables trails
}

// SparkConfig holds explosion fragment parameters.
type SparkConfig struct {
	SpeedMin  float32 `yaml:"speed_min"`
	SpeedMax  float32 `yaml:"speed_max"`
	LifeMin   float32 `yaml:"life_min"`
	LifeMax   float32 `yaml:"life_max"`
	RadiusMin float32 `yaml:"radius_min"`
	RadiusMax float32 `yaml:"radius_max"`
	Drag      float32 `yaml:"drag"`
}

// HazeConfig holds rocket trail smoke parameters.
type HazeConfig struct {
	LifeMin   float32 `yaml:"life_min"`
	LifeMax   float32 `yaml:"life_max"`
	RadiusMin float32 `yaml:"radius_min"`
	RadiusMax float32 `yaml:"radius_max"`
	Drag      float32 `yaml:"drag"`
	Buoyancy  float32 `yaml:"buoyancy"`
	Alpha     float32 `yaml:"alpha"`
}

// RenderConfig holds post-processing parameters.
type RenderConfig struct {
	PointSize        float32 `yaml:"point_size"`
	BlurPassesFirst  int     `yaml:"blur_passes_first"`
	BlurPassesSecond int     `yaml:"blur_passes_second"`
	CircleSegments   int     `yaml:"circle_segments"`
	Exposure         float32 `yaml:"exposure"`
	Gamma            float32 `yaml:"gamma"`
}

// AudioConfig holds the optional sound effects settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// TelemetryConfig holds perf collection settings.
type TelemetryConfig struct {
	Window      int     `yaml:"window"`       // frames per rolling window
	LogInterval float64 `yaml:"log_interval"` // seconds between perf log lines
	OutputDir   string  `yaml:"output_dir"`   // empty disables CSV output
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the simulation or pipeline cannot run with.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	s := c.Simulation
	check(s.MaxParticles > 0, "simulation.max_particles must be positive, got %d", s.MaxParticles)
	check(s.MaxRockets >= 0, "simulation.max_rockets must not be negative, got %d", s.MaxRockets)
	check(s.MaxFrameSeconds > 0, "simulation.max_frame_seconds must be positive, got %g", s.MaxFrameSeconds)
	check(s.Rocket.LifeMin > 0 && s.Rocket.LifeMin <= s.Rocket.LifeMax, "simulation.rocket life range is invalid")
	check(s.Rocket.IntervalMin >= 0 && s.Rocket.IntervalMin <= s.Rocket.IntervalMax, "simulation.rocket interval range is invalid")
	check(s.Rocket.ChildrenMin >= 0 && s.Rocket.ChildrenMin <= s.Rocket.ChildrenMax, "simulation.rocket children range is invalid")
	check(s.Rocket.EmissionInterval >= 0, "simulation.rocket.emission_interval must not be negative")
	check(s.Spark.LifeMin > 0 && s.Spark.LifeMin <= s.Spark.LifeMax, "simulation.spark life range is invalid")
	check(s.Haze.LifeMin > 0 && s.Haze.LifeMin <= s.Haze.LifeMax, "simulation.haze life range is invalid")

	r := c.Render
	check(r.BlurPassesFirst >= 1, "render.blur_passes_first must be at least 1, got %d", r.BlurPassesFirst)
	check(r.BlurPassesSecond >= 0, "render.blur_passes_second must not be negative, got %d", r.BlurPassesSecond)
	check(r.CircleSegments >= 3, "render.circle_segments must be at least 3, got %d", r.CircleSegments)
	check(r.Gamma > 0, "render.gamma must be positive")

	w := c.Window
	check(w.PreviewWidth > 0 && w.PreviewHeight > 0, "window preview size must be positive")
	check(w.SwapInterval >= 0, "window.swap_interval must not be negative")

	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume must be within [0, 1], got %g", c.Audio.Volume)
	check(c.Telemetry.Window >= 1, "telemetry.window must be at least 1, got %d", c.Telemetry.Window)

	return errors.Join(errs...)
}

// WriteYAML saves the configuration to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
