package render

import "math"

// Circle builds a unit circle as a triangle fan expressed with indices:
// vertex 0 is the centre, vertices 1..segments lie on the rim. Each vertex is
// (x, y, edge) where edge is 0 at the centre and 1 on the rim.
func Circle(segments int) (vertices []float32, indices []uint32) {
	if segments < 3 {
		segments = 3
	}
	vertices = make([]float32, 0, (segments+1)*3)
	vertices = append(vertices, 0, 0, 0)
	for i := range segments {
		a := 2 * math.Pi * float64(i) / float64(segments)
		vertices = append(vertices, float32(math.Cos(a)), float32(math.Sin(a)), 1)
	}

	indices = make([]uint32, 0, segments*3)
	for i := range segments {
		next := (i+1)%segments + 1
		indices = append(indices, 0, uint32(i+1), uint32(next))
	}
	return vertices, indices
}

// FullscreenQuad covers clip space with two triangles of (x, y, u, v).
var FullscreenQuad = [24]float32{
	-1, -1, 0, 0,
	1, -1, 1, 0,
	1, 1, 1, 1,
	-1, -1, 0, 0,
	1, 1, 1, 1,
	-1, 1, 0, 1,
}

// FullscreenQuadVertices is the vertex count of FullscreenQuad.
const FullscreenQuadVertices = 6
