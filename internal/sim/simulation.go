// Package sim simulates the fireworks particle pool and projects it into
// GPU-ready render data.
package sim

import (
	"fireworksgl/internal/config"
	"fireworksgl/internal/vec3"
)

// Simulation owns the particle pool and advances it once per frame.
type Simulation struct {
	MaxRockets           int
	TimeSinceRocketCount float32

	cfg          config.SimulationConfig
	pool         *Pool
	liveRockets  int
	nextRocketIn float32
	rng          *Rand
	events       *EventBus

	// Spawns requested while iterating; flushed after the pass so new
	// particles are first integrated on the following tick.
	pending []Particle
}

func New(cfg config.SimulationConfig, seed uint64) *Simulation {
	s := &Simulation{
		MaxRockets: cfg.MaxRockets,
		cfg:        cfg,
		pool:       NewPool(cfg.MaxParticles),
		rng:        NewRand(seed),
		events:     NewEventBus(),
		pending:    make([]Particle, 0, cfg.Rocket.ChildrenMax+8),
	}
	s.nextRocketIn = s.rocketInterval()
	return s
}

func (s *Simulation) Pool() *Pool           { return s.pool }
func (s *Simulation) Events() *EventBus     { return s.events }
func (s *Simulation) MaxParticles() int     { return s.pool.Cap() }
func (s *Simulation) LiveParticles() int    { return s.pool.Live() }
func (s *Simulation) LiveRockets() int      { return s.liveRockets }
func (s *Simulation) NextRocketIn() float32 { return s.nextRocketIn }

// Spawn places p in the pool. Rockets count against MaxRockets. A full pool
// or rocket limit drops the spawn and reports false.
func (s *Simulation) Spawn(p Particle) (Handle, bool) {
	if p.Kind == KindRocket && s.liveRockets >= s.MaxRockets {
		return Handle{}, false
	}
	h, ok := s.pool.Spawn(p)
	if !ok {
		return Handle{}, false
	}
	if p.Kind == KindRocket {
		s.liveRockets++
	}
	return h, true
}

// Step advances the simulation by dSecs for a viewport of width x height pixels.
func (s *Simulation) Step(dSecs float32, width, height int) {
	if dSecs <= 0 {
		return
	}
	scale := screenScale(height)

	s.paceRockets(dSecs, width, scale)

	f := computeForces(s.cfg, dSecs, scale)
	s.pending = s.pending[:0]

	for i := range s.pool.slots {
		p := &s.pool.slots[i]
		if !p.Alive {
			continue
		}

		p.Velocity = vec3.Add(p.Velocity, vec3.UniformScale(p.Acceleration, dSecs))
		p.Position = vec3.Add(p.Position, vec3.UniformScale(p.Velocity, dSecs))

		p.RemainingLife -= dSecs
		if p.RemainingLife <= 0 {
			s.expire(i, p, scale)
			continue
		}
		if outOfBounds(p.Position, width, height) {
			if p.Kind == KindRocket {
				s.events.Emit(Event{Type: EventRocketLost, Position: p.Position})
			}
			s.retire(i, p)
			continue
		}

		switch p.Kind {
		case KindRocket:
			p.Acceleration = f.rocket
			s.emitTrail(p, dSecs, scale)
		case KindSpark:
			p.Acceleration = f.spark
			p.Velocity = vec3.UniformScale(p.Velocity, f.sparkDrag)
		default:
			p.Acceleration = f.haze
			p.Velocity = vec3.UniformScale(p.Velocity, f.hazeDrag)
		}
	}

	for _, p := range s.pending {
		if s.pool.Full() {
			break // remaining spawns are dropped
		}
		s.pool.Spawn(p)
	}
	s.pending = s.pending[:0]
}

// Reset retires every particle and restarts rocket pacing.
func (s *Simulation) Reset() {
	s.pool.Reset()
	s.liveRockets = 0
	s.TimeSinceRocketCount = 0
	s.nextRocketIn = s.rocketInterval()
}

func (s *Simulation) paceRockets(dt float32, width int, scale float32) {
	s.TimeSinceRocketCount += dt
	if s.TimeSinceRocketCount <= s.nextRocketIn || s.liveRockets >= s.MaxRockets {
		return
	}
	if width <= 0 {
		return
	}
	s.TimeSinceRocketCount = 0
	s.nextRocketIn = s.rocketInterval()
	s.launchRocket(width, scale)
}

func (s *Simulation) expire(i int, p *Particle, scale float32) {
	if p.Kind == KindRocket {
		s.events.Emit(Event{Type: EventRocketBurst, Position: p.Position, Children: p.Children})
		s.queueBurst(p, scale)
	}
	s.retire(i, p)
}

func (s *Simulation) retire(i int, p *Particle) {
	if p.Kind == KindRocket && s.pool.Retire(i) {
		s.liveRockets--
		return
	}
	s.pool.Retire(i)
}
