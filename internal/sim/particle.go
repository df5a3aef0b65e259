package sim

import (
	"github.com/go-gl/mathgl/mgl32"

	"fireworksgl/internal/vec3"
)

// Kind selects how a particle is simulated and shaded. The values are shared
// with the shaders through RenderData.Kind.
type Kind int32

const (
	KindHaze Kind = iota
	KindRocket
	KindSpark
)

func (k Kind) String() string {
	switch k {
	case KindHaze:
		return "haze"
	case KindRocket:
		return "rocket"
	case KindSpark:
		return "spark"
	}
	return "unknown"
}

// Particle is one pool slot. Fields of a dead slot carry no meaning.
type Particle struct {
	Alive bool

	Position     vec3.Vec3 // pixels, origin bottom-left, y up
	Velocity     vec3.Vec3
	Acceleration vec3.Vec3

	Colour mgl32.Vec4 // RGBA, may exceed 1 for bloom
	Radius float32

	Children              int // sparks released when a rocket expires
	RemainingLife         float32
	TimeSinceLastEmission float32

	Kind Kind
}

// DeadParticle is the canonical content of an unused slot.
func DeadParticle() Particle {
	return Particle{
		Colour: mgl32.Vec4{1, 1, 1, 1},
		Kind:   KindHaze,
	}
}
