package render

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fireworksgl/internal/sim"
)

func TestInstanceLayout(t *testing.T) {
	assert.Equal(t, int32(40), InstanceStride)

	attrs := InstanceAttributes()
	require.Len(t, attrs, 5)
	wantOffsets := []int{0, 12, 28, 32, 36}
	wantComponents := []int32{3, 4, 1, 1, 1}
	for i, a := range attrs {
		assert.Equal(t, uint32(i+1), a.Location)
		assert.Equal(t, wantOffsets[i], a.Offset)
		assert.Equal(t, wantComponents[i], a.Components)
		assert.Equal(t, uint32(1), a.Divisor)
		assert.Equal(t, i == 4, a.Integer, "only the kind is an integer attribute")
	}
	assert.Equal(t, uint32(0), CircleAttribute.Divisor)
}

func TestInstanceBytes(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		ptr, size := InstanceBytes(nil)
		assert.Nil(t, ptr)
		assert.Zero(t, size)

		ptr, size = InstanceBytes(make([]sim.RenderData, 0, 8))
		assert.Nil(t, ptr)
		assert.Zero(t, size)
	})

	t.Run("single", func(t *testing.T) {
		data := []sim.RenderData{{Translate: [3]float32{1, 2, 3}, Radius: 1.5, Kind: 2}}
		ptr, size := InstanceBytes(data)
		require.NotNil(t, ptr)
		assert.Equal(t, 40, size)
		assert.Equal(t, unsafe.Pointer(&data[0]), ptr)

		raw := unsafe.Slice((*byte)(ptr), size)
		assert.Equal(t, float32(2), math.Float32frombits(binary.NativeEndian.Uint32(raw[4:])))
		assert.Equal(t, float32(1.5), math.Float32frombits(binary.NativeEndian.Uint32(raw[28:])))
		assert.Equal(t, uint32(2), binary.NativeEndian.Uint32(raw[36:]))
	})

	t.Run("full pool", func(t *testing.T) {
		data := make([]sim.RenderData, 500)
		data[499].Radius = 7
		ptr, size := InstanceBytes(data)
		assert.Equal(t, 500*40, size)

		raw := unsafe.Slice((*byte)(ptr), size)
		assert.Equal(t, float32(7), math.Float32frombits(binary.NativeEndian.Uint32(raw[499*40+28:])))
	})

	t.Run("subslice", func(t *testing.T) {
		data := make([]sim.RenderData, 10)
		ptr, size := InstanceBytes(data[:3])
		assert.Equal(t, unsafe.Pointer(&data[0]), ptr)
		assert.Equal(t, 3*40, size)
	})
}

func TestPointLayout(t *testing.T) {
	attrs := PointAttributes()
	require.Len(t, attrs, 2)
	assert.Equal(t, Attribute{Location: 0, Components: 3, Offset: 0}, attrs[0])
	assert.Equal(t, Attribute{Location: 1, Components: 1, Integer: true, Offset: 36}, attrs[1])
}

func TestCircle(t *testing.T) {
	verts, idx := Circle(8)
	require.Len(t, verts, 9*3)
	require.Len(t, idx, 8*3)

	assert.Equal(t, []float32{0, 0, 0}, verts[:3])
	for i := 1; i <= 8; i++ {
		x, y, edge := verts[i*3], verts[i*3+1], verts[i*3+2]
		assert.InDelta(t, 1, math.Hypot(float64(x), float64(y)), 1e-6)
		assert.Equal(t, float32(1), edge)
	}
	for tri := 0; tri < 8; tri++ {
		assert.Equal(t, uint32(0), idx[tri*3], "every triangle fans from the centre")
		for _, v := range idx[tri*3 : tri*3+3] {
			assert.Less(t, v, uint32(9))
		}
	}
	assert.Equal(t, []uint32{0, 8, 1}, idx[21:], "last triangle closes the rim")
}

func TestCircleClampsSegments(t *testing.T) {
	verts, idx := Circle(1)
	assert.Len(t, verts, 4*3)
	assert.Len(t, idx, 9)
}

func TestFullscreenQuadCoversClipSpace(t *testing.T) {
	assert.Len(t, FullscreenQuad, FullscreenQuadVertices*4)
	for v := range FullscreenQuadVertices {
		x, y, u, tv := FullscreenQuad[v*4], FullscreenQuad[v*4+1], FullscreenQuad[v*4+2], FullscreenQuad[v*4+3]
		assert.Equal(t, (x+1)/2, u)
		assert.Equal(t, (y+1)/2, tv)
	}
}

func TestBlurScheduleAlternates(t *testing.T) {
	steps := BlurSchedule(2)
	assert.Equal(t, []BlurStep{
		{Target: 0, Source: InputSource, Horizontal: true},
		{Target: 1, Source: 0, Horizontal: false},
		{Target: 0, Source: 1, Horizontal: true},
		{Target: 1, Source: 0, Horizontal: false},
	}, steps)
	assert.Equal(t, 1, Output(steps))
}

func TestBlurScheduleReadsPreviousTarget(t *testing.T) {
	steps := BlurSchedule(5)
	require.Len(t, steps, 10)
	for i := 1; i < len(steps); i++ {
		assert.Equal(t, steps[i-1].Target, steps[i].Source)
		assert.NotEqual(t, steps[i].Source, steps[i].Target)
		assert.NotEqual(t, steps[i-1].Horizontal, steps[i].Horizontal)
	}
}

func TestBlurScheduleEmpty(t *testing.T) {
	assert.Empty(t, BlurSchedule(0))
	assert.Empty(t, BlurSchedule(-3))
	assert.Equal(t, InputSource, Output(nil))
}

func TestDimensionsStd140(t *testing.T) {
	d := NewDimensions(800, 600)
	assert.Equal(t, Dimensions{800, 600, 0, 0}, d)

	b := d.Std140()
	assert.Equal(t, [16]byte{
		0x20, 0x03, 0, 0,
		0x58, 0x02, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}, b)
}
