// Package render holds the GPU-independent parts of the bloom pipeline:
// vertex layouts, meshes, the blur pass schedule and uniform block packing.
package render

import (
	"unsafe"

	"fireworksgl/internal/sim"
)

// Attribute describes one vertex attribute binding.
type Attribute struct {
	Location   uint32
	Components int32
	Integer    bool // bound with VertexAttribIPointer
	Offset     int  // bytes into the vertex record
	Divisor    uint32
}

// InstanceStride is the byte size of one sim.RenderData record.
const InstanceStride = int32(unsafe.Sizeof(sim.RenderData{}))

// CircleAttribute is the per-vertex circle outline, shared by every instance.
var CircleAttribute = Attribute{Location: 0, Components: 3}

// InstanceAttributes returns the per-instance layout of sim.RenderData as read
// by the geometry shader.
func InstanceAttributes() []Attribute {
	var d sim.RenderData
	return []Attribute{
		{Location: 1, Components: 3, Offset: int(unsafe.Offsetof(d.Translate)), Divisor: 1},
		{Location: 2, Components: 4, Offset: int(unsafe.Offsetof(d.Colour)), Divisor: 1},
		{Location: 3, Components: 1, Offset: int(unsafe.Offsetof(d.Radius)), Divisor: 1},
		{Location: 4, Components: 1, Offset: int(unsafe.Offsetof(d.RemainingLife)), Divisor: 1},
		{Location: 5, Components: 1, Integer: true, Offset: int(unsafe.Offsetof(d.Kind)), Divisor: 1},
	}
}

// PointAttributes returns the layout for drawing the same buffer as points.
func PointAttributes() []Attribute {
	var d sim.RenderData
	return []Attribute{
		{Location: 0, Components: 3, Offset: int(unsafe.Offsetof(d.Translate))},
		{Location: 1, Components: 1, Integer: true, Offset: int(unsafe.Offsetof(d.Kind))},
	}
}

// InstanceBytes returns the start and byte length of data for an instance
// buffer upload. An empty slice yields nil and 0.
func InstanceBytes(data []sim.RenderData) (unsafe.Pointer, int) {
	if len(data) == 0 {
		return nil, 0
	}
	return unsafe.Pointer(unsafe.SliceData(data)), len(data) * int(InstanceStride)
}
