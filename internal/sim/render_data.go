package sim

// RenderData is the per-instance record uploaded to the GPU. Its memory
// layout is the vertex attribute layout: 3f translate, 4f colour, 1f radius,
// 1f remaining life, 1i kind (40 bytes).
type RenderData struct {
	Translate     [3]float32
	Colour        [4]float32
	Radius        float32
	RemainingLife float32
	Kind          int32
}

// NewRenderBuffer allocates a projection target large enough for every slot.
func (s *Simulation) NewRenderBuffer() []RenderData {
	return make([]RenderData, s.pool.Cap())
}

// Project writes the live particles into dst in pool order and returns how
// many entries were written. It never writes past len(dst).
func (s *Simulation) Project(dst []RenderData) int {
	n := 0
	for i := range s.pool.slots {
		if n == len(dst) {
			break
		}
		p := &s.pool.slots[i]
		if !p.Alive {
			continue
		}
		dst[n] = RenderData{
			Translate:     p.Position.Array(),
			Colour:        p.Colour,
			Radius:        p.Radius,
			RemainingLife: p.RemainingLife,
			Kind:          int32(p.Kind),
		}
		n++
	}
	return n
}
