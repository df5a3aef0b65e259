// Package telemetry collects per-frame timing and writes it to the log and to CSV.
package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for one frame of the main loop.
const (
	PhaseInput   = "input"
	PhaseStep    = "step"
	PhaseProject = "project"
	PhaseRender  = "render"
	PhaseSwap    = "swap"
)

var phases = []string{PhaseInput, PhaseStep, PhaseProject, PhaseRender, PhaseSwap}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks frame timing over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
		now:           time.Now,
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = p.now()
	p.currentPhases = make(map[string]time.Duration, len(phases))
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes timing the current frame and records the sample.
func (p *PerfCollector) EndFrame() {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// Samples returns how many frames the window currently holds.
func (p *PerfCollector) Samples() int { return p.sampleCount }

// PerfStats holds aggregated statistics over the window.
type PerfStats struct {
	AvgFrame    time.Duration
	StdDevFrame time.Duration
	MinFrame    time.Duration
	MaxFrame    time.Duration
	FPS         float64

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p.sampleCount == 0 {
		return out
	}

	frames := make([]float64, p.sampleCount)
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		frames[i] = float64(s.FrameDuration)
		if i == 0 || s.FrameDuration < out.MinFrame {
			out.MinFrame = s.FrameDuration
		}
		if s.FrameDuration > out.MaxFrame {
			out.MaxFrame = s.FrameDuration
		}
		for phase, d := range s.Phases {
			phaseSum[phase] += d
		}
	}

	mean, std := stat.MeanStdDev(frames, nil)
	if p.sampleCount < 2 {
		std = 0
	}
	out.AvgFrame = time.Duration(mean)
	out.StdDevFrame = time.Duration(std)
	if mean > 0 {
		out.FPS = float64(time.Second) / mean
	}

	for phase, sum := range phaseSum {
		avg := sum / time.Duration(p.sampleCount)
		out.PhaseAvg[phase] = avg
		if out.AvgFrame > 0 {
			out.PhasePct[phase] = float64(avg) / float64(out.AvgFrame) * 100
		}
	}
	return out
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("stddev_frame_us", s.StdDevFrame.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrame.Microseconds()),
		slog.Float64("fps", s.FPS),
	}
	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat record of one telemetry window.
type PerfStatsCSV struct {
	RunID         string  `csv:"run_id"`
	Frame         int64   `csv:"frame"`
	LiveParticles int     `csv:"live_particles"`
	LiveRockets   int     `csv:"live_rockets"`
	AvgFrameUS    int64   `csv:"avg_frame_us"`
	StdDevFrameUS int64   `csv:"stddev_frame_us"`
	MinFrameUS    int64   `csv:"min_frame_us"`
	MaxFrameUS    int64   `csv:"max_frame_us"`
	FPS           float64 `csv:"fps"`
	InputPct      float64 `csv:"input_pct"`
	StepPct       float64 `csv:"step_pct"`
	ProjectPct    float64 `csv:"project_pct"`
	RenderPct     float64 `csv:"render_pct"`
	SwapPct       float64 `csv:"swap_pct"`
}

// Population is the simulation state sampled alongside the timings.
type Population struct {
	Frame         int64
	LiveParticles int
	LiveRockets   int
}

// ToCSV flattens s for CSV export.
func (s PerfStats) ToCSV(runID string, pop Population) PerfStatsCSV {
	return PerfStatsCSV{
		RunID:         runID,
		Frame:         pop.Frame,
		LiveParticles: pop.LiveParticles,
		LiveRockets:   pop.LiveRockets,
		AvgFrameUS:    s.AvgFrame.Microseconds(),
		StdDevFrameUS: s.StdDevFrame.Microseconds(),
		MinFrameUS:    s.MinFrame.Microseconds(),
		MaxFrameUS:    s.MaxFrame.Microseconds(),
		FPS:           s.FPS,
		InputPct:      s.PhasePct[PhaseInput],
		StepPct:       s.PhasePct[PhaseStep],
		ProjectPct:    s.PhasePct[PhaseProject],
		RenderPct:     s.PhasePct[PhaseRender],
		SwapPct:       s.PhasePct[PhaseSwap],
	}
}
