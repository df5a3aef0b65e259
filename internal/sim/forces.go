package sim

import (
	"math"

	"fireworksgl/internal/config"
	"fireworksgl/internal/vec3"
)

// referenceHeight stands in for the viewport height while the window has none
// (minimised), so lengths given in screen heights still convert to pixels.
const referenceHeight = 600

func screenScale(height int) float32 {
	if height <= 0 {
		return referenceHeight
	}
	return float32(height)
}

// tickForces holds accelerations in pixels/s^2 and exponential drag factors,
// computed once per tick instead of per particle.
type tickForces struct {
	rocket vec3.Vec3 // thrust + gravity
	spark  vec3.Vec3 // gravity
	haze   vec3.Vec3 // gravity + buoyancy

	sparkDrag float32 // exp(-spark.drag * dt)
	hazeDrag  float32 // exp(-haze.drag * dt)
}

func computeForces(cfg config.SimulationConfig, dt, scale float32) tickForces {
	g := cfg.Gravity * scale
	return tickForces{
		rocket:    vec3.New(0, cfg.Rocket.Thrust*scale-g, 0),
		spark:     vec3.New(0, -g, 0),
		haze:      vec3.New(0, cfg.Haze.Buoyancy*scale-g, 0),
		sparkDrag: float32(math.Exp(float64(-cfg.Spark.Drag * dt))),
		hazeDrag:  float32(math.Exp(float64(-cfg.Haze.Drag * dt))),
	}
}

// outOfBounds reports whether pos lies outside the viewport. A viewport
// without area disables the check.
func outOfBounds(pos vec3.Vec3, width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	return pos.X < 0 || pos.X > float32(width) || pos.Y < 0 || pos.Y > float32(height)
}
