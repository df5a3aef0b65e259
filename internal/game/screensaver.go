// Package game owns the window, the GL pipeline and the main loop.
package game

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"fireworksgl/internal/audio"
	"fireworksgl/internal/cli"
	"fireworksgl/internal/config"
	"fireworksgl/internal/render"
	"fireworksgl/internal/sim"
	"fireworksgl/internal/telemetry"
)

const (
	configEnv = "FIREWORKSGL_CONFIG"
	seedEnv   = "FIREWORKSGL_SEED"
)

// Screensaver is the single context object of a run: it owns the window,
// the simulation and every GPU resource.
type Screensaver struct {
	mode cli.Mode
	cfg  *config.Config
	log  *slog.Logger
	seed uint64

	glfwUp   bool
	window   *glfw.Window
	pipeline *Pipeline
	sim      *sim.Simulation
	input    *Input
	audio    *audio.Player
	perf     *telemetry.PerfCollector
	output   *telemetry.OutputManager

	buf   []sim.RenderData
	fbW   int
	fbH   int
	frame int64
}

// Run is the process entry for a parsed mode. It blocks until the user
// dismisses the screensaver.
func Run(mode cli.Mode) error {
	runtime.LockOSThread()

	s, err := New(mode)
	if err != nil {
		return err
	}
	defer s.Close()
	s.Loop()
	return nil
}

// newLogger logs at debug level in preview mode and discards everything
// otherwise.
func newLogger(mode cli.Mode) *slog.Logger {
	if !mode.Preview() {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// seedFromEnv reads FIREWORKSGL_SEED, falling back to the clock.
func seedFromEnv() uint64 {
	seed := uint64(time.Now().UnixNano())
	if s := os.Getenv(seedEnv); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			seed = v
		}
	}
	return seed
}

// New builds everything a run needs. On error whatever was created is
// released before returning.
func New(mode cli.Mode) (*Screensaver, error) {
	s := &Screensaver{mode: mode, log: newLogger(mode), seed: seedFromEnv()}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Screensaver) init() error {
	cfg, err := config.Load(os.Getenv(configEnv))
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrConfig, err)
	}
	s.cfg = cfg

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("%w: glfw init: %v", cli.ErrWindow, err)
	}
	s.glfwUp = true

	s.window, err = openWindow(s.mode, cfg.Window)
	if err != nil {
		return err
	}
	if err := gl.Init(); err != nil {
		return fmt.Errorf("%w: %v", cli.ErrGLLoader, err)
	}
	s.log.Debug("OpenGL ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	s.fbW, s.fbH = s.window.GetFramebufferSize()
	s.sim = sim.New(cfg.Simulation, s.seed)
	s.buf = s.sim.NewRenderBuffer()
	s.log.Info("simulation ready",
		"mode", s.mode,
		"seed", s.seed,
		"max_particles", s.sim.MaxParticles(),
		"max_rockets", s.sim.MaxRockets,
		"render_buffer_bytes", len(s.buf)*int(render.InstanceStride),
	)

	s.pipeline, err = NewPipeline(cfg.Render, s.sim.MaxParticles(), s.fbW, s.fbH, s.log)
	if err != nil {
		return err
	}
	s.window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		s.fbW, s.fbH = w, h
		s.pipeline.Resize(w, h)
	})

	mouseThreshold := cfg.Window.ExitMouseThreshold
	if s.mode.Preview() {
		mouseThreshold = 0
	}
	s.input = NewInput(mouseThreshold)

	s.perf = telemetry.NewPerfCollector(cfg.Telemetry.Window)
	s.output, err = telemetry.NewOutputManager(cfg.Telemetry.OutputDir)
	if err != nil {
		s.log.Warn("telemetry output disabled", "error", err)
	} else if err := s.output.WriteConfig(cfg); err != nil {
		s.log.Warn("writing config snapshot", "error", err)
	}
	if s.output != nil {
		s.log.Info("telemetry output", "dir", s.output.Dir(), "run_id", s.output.RunID())
	}

	if cfg.Audio.Enabled {
		if s.audio, err = audio.New(cfg.Audio.Volume); err != nil {
			s.log.Warn("audio init failed, continuing without sound", "error", err)
		}
	}
	s.subscribe()
	return nil
}

// subscribe wires simulation events to sound and debug logging.
func (s *Screensaver) subscribe() {
	events := s.sim.Events()
	maxChildren := float64(max(s.cfg.Simulation.Rocket.ChildrenMax, 1))

	events.Subscribe(sim.EventRocketLaunched, func(e sim.Event) {
		s.audio.PlayLaunch(s.pan(e.Position.X))
	})
	events.Subscribe(sim.EventRocketBurst, func(e sim.Event) {
		s.audio.PlayBurst(float64(e.Children)/maxChildren, s.pan(e.Position.X))
		s.log.Debug("rocket burst", "children", e.Children, "x", e.Position.X, "y", e.Position.Y)
	})
	events.Subscribe(sim.EventRocketLost, func(e sim.Event) {
		s.log.Debug("rocket left the screen", "x", e.Position.X, "y", e.Position.Y)
	})
}

// pan maps a horizontal pixel position to stereo pan in [-1, 1].
func (s *Screensaver) pan(x float32) float64 {
	if s.fbW <= 0 {
		return 0
	}
	return float64(x)/float64(s.fbW)*2 - 1
}

// Loop runs frames until the window is asked to close. Each iteration:
// input, step, project, render, swap, poll events.
func (s *Screensaver) Loop() {
	last := glfw.GetTime()
	sinceLog := 0.0
	for !s.window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > s.cfg.Simulation.MaxFrameSeconds {
			dt = s.cfg.Simulation.MaxFrameSeconds
		}

		s.perf.StartFrame()
		s.perf.StartPhase(telemetry.PhaseInput)
		if reason, ok := s.input.CloseRequested(s.window); ok {
			s.log.Info("input detected, closing", "trigger", reason)
			s.window.SetShouldClose(true)
		}

		s.perf.StartPhase(telemetry.PhaseStep)
		s.sim.Step(float32(dt), s.fbW, s.fbH)

		s.perf.StartPhase(telemetry.PhaseProject)
		n := s.sim.Project(s.buf)

		s.perf.StartPhase(telemetry.PhaseRender)
		s.pipeline.Render(s.buf[:n], s.fbW, s.fbH)

		s.perf.StartPhase(telemetry.PhaseSwap)
		s.window.SwapBuffers()
		glfw.PollEvents()
		s.perf.EndFrame()
		s.frame++

		sinceLog += dt
		if sinceLog >= s.cfg.Telemetry.LogInterval {
			sinceLog = 0
			s.report()
		}
	}
	s.log.Info("shutting down", "frames", s.frame)
}

func (s *Screensaver) report() {
	stats := s.perf.Stats()
	pop := telemetry.Population{
		Frame:         s.frame,
		LiveParticles: s.sim.LiveParticles(),
		LiveRockets:   s.sim.LiveRockets(),
	}
	s.log.Debug("perf",
		"stats", stats,
		"live_particles", pop.LiveParticles,
		"live_rockets", pop.LiveRockets,
		"next_rocket_in", s.sim.NextRocketIn(),
	)
	if err := s.output.WritePerf(stats, pop); err != nil {
		s.log.Warn("telemetry write failed", "error", err)
	}
}

// Close releases resources in reverse order of creation. Safe on a
// partially initialised Screensaver.
func (s *Screensaver) Close() {
	if err := s.output.Close(); err != nil {
		s.log.Warn("closing telemetry output", "error", err)
	}
	s.output = nil
	s.pipeline.Destroy()
	s.pipeline = nil
	if s.window != nil {
		s.window.Destroy()
		s.window = nil
	}
	if s.glfwUp {
		glfw.Terminate()
		s.glfwUp = false
	}
}
