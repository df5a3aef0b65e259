package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"fireworksgl/internal/vec3"
)

const (
	maxTrailPuffsPerTick = 4
	sparkIntensity       = 1.6 // HDR boost so bursts feed the bloom
	burstVelocityInherit = 0.2
)

var (
	rocketColour = mgl32.Vec4{1.3, 1.1, 0.8, 1}
	hazeColour   = mgl32.Vec3{0.55, 0.52, 0.5}
)

func (s *Simulation) rocketInterval() float32 {
	r := s.cfg.Rocket
	return s.rng.RangeF(r.IntervalMin, r.IntervalMax)
}

// launchRocket fires a rocket from a random point on the ground.
func (s *Simulation) launchRocket(width int, scale float32) {
	r := s.cfg.Rocket
	w := float32(width)
	x := s.rng.RangeF(0.1, 0.9) * w

	// Lean towards the centre so tall flights stay on screen.
	lean := (0.5 - x/w) * r.LateralSpeed
	vx := (s.rng.RangeF(-r.LateralSpeed, r.LateralSpeed)*0.5 + lean) * scale
	vy := s.rng.RangeF(r.LaunchSpeedMin, r.LaunchSpeedMax) * scale

	p := Particle{
		Position:      vec3.New(x, 0, 0),
		Velocity:      vec3.New(vx, vy, 0),
		Acceleration:  vec3.New(0, (r.Thrust-s.cfg.Gravity)*scale, 0),
		Colour:        rocketColour,
		Radius:        r.Radius * scale,
		Children:      s.rng.Range(r.ChildrenMin, r.ChildrenMax),
		RemainingLife: s.rng.RangeF(r.LifeMin, r.LifeMax),
		Kind:          KindRocket,
	}
	if _, ok := s.Spawn(p); ok {
		s.events.Emit(Event{Type: EventRocketLaunched, Position: p.Position, Children: p.Children})
	}
}

// emitTrail queues haze puffs behind a climbing rocket.
func (s *Simulation) emitTrail(p *Particle, dt, scale float32) {
	interval := s.cfg.Rocket.EmissionInterval
	if interval <= 0 {
		return
	}
	h := s.cfg.Haze
	p.TimeSinceLastEmission += dt
	for n := 0; p.TimeSinceLastEmission >= interval && n < maxTrailPuffsPerTick; n++ {
		p.TimeSinceLastEmission -= interval
		jitter := vec3.New(s.rng.RangeF(-1, 1), s.rng.RangeF(-1, 1), 0)
		s.pending = append(s.pending, Particle{
			Position: vec3.Add(p.Position, vec3.UniformScale(jitter, p.Radius)),
			Velocity: vec3.Add(
				vec3.UniformScale(p.Velocity, -0.1),
				vec3.UniformScale(jitter, 0.01*scale),
			),
			Colour:        hazeColour.Vec4(h.Alpha),
			Radius:        s.rng.RangeF(h.RadiusMin, h.RadiusMax) * scale,
			RemainingLife: s.rng.RangeF(h.LifeMin, h.LifeMax),
			Kind:          KindHaze,
		})
	}
	if p.TimeSinceLastEmission >= interval {
		p.TimeSinceLastEmission = 0
	}
}

// queueBurst queues the sparks of an expiring rocket, flying outwards from
// its position in uniformly random directions.
func (s *Simulation) queueBurst(rocket *Particle, scale float32) {
	sp := s.cfg.Spark
	hue := s.rng.Float32()
	base := vec3.UniformScale(rocket.Velocity, burstVelocityInherit)
	for range rocket.Children {
		dir := s.randomDirection()
		speed := s.rng.RangeF(sp.SpeedMin, sp.SpeedMax) * scale
		s.pending = append(s.pending, Particle{
			Position:     rocket.Position,
			Velocity:     vec3.Add(base, vec3.UniformScale(dir, speed)),
			Acceleration: vec3.New(0, -s.cfg.Gravity*scale, 0),
			Colour: hsvColour(
				hue+s.rng.RangeF(-0.04, 0.04),
				s.rng.RangeF(0.55, 0.9),
				sparkIntensity,
			),
			Radius:        s.rng.RangeF(sp.RadiusMin, sp.RadiusMax) * scale,
			RemainingLife: s.rng.RangeF(sp.LifeMin, sp.LifeMax),
			Kind:          KindSpark,
		})
	}
}

// randomDirection returns a unit vector uniformly distributed on the sphere.
func (s *Simulation) randomDirection() vec3.Vec3 {
	z := s.rng.RangeF(-1, 1)
	theta := float64(s.rng.RangeF(0, 2*math.Pi))
	r := float32(math.Sqrt(float64(1 - z*z)))
	return vec3.New(r*float32(math.Cos(theta)), r*float32(math.Sin(theta)), z)
}

// hsvColour converts hue (wrapped to [0,1)), saturation and value to opaque RGBA.
func hsvColour(h, sat, val float32) mgl32.Vec4 {
	h -= float32(math.Floor(float64(h)))
	sector := h * 6
	i := int(sector)
	f := sector - float32(i)
	p := val * (1 - sat)
	q := val * (1 - sat*f)
	t := val * (1 - sat*(1-f))
	switch i % 6 {
	case 0:
		return mgl32.Vec4{val, t, p, 1}
	case 1:
		return mgl32.Vec4{q, val, p, 1}
	case 2:
		return mgl32.Vec4{p, val, t, 1}
	case 3:
		return mgl32.Vec4{p, q, val, 1}
	case 4:
		return mgl32.Vec4{t, p, val, 1}
	default:
		return mgl32.Vec4{val, p, q, 1}
	}
}
