package vec3

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestAddIsComponentWise(t *testing.T) {
	a := New(1, 2, 3)
	b := New(10, 20, 30)

	got := Add(a, b)
	assert.Equal(t, a.X+b.X, got.X)
	assert.Equal(t, a.Y+b.Y, got.Y)
	assert.Equal(t, a.Z+b.Z, got.Z)

	// Regression: y and z must depend on b as well as a.
	assert.Equal(t, New(11, 22, 33), got)
	assert.Equal(t, Add(b, a), got, "add must commute")
}

func TestSubIsComponentWise(t *testing.T) {
	a := New(5, -2, 7)
	b := New(1, 4, -3)

	got := Sub(a, b)
	assert.Equal(t, New(4, -6, 10), got)
	assert.Equal(t, UniformScale(Sub(b, a), -1), got)
	assert.Equal(t, Vec3{}, Sub(a, a))
}

func TestScale(t *testing.T) {
	v := New(1, -2, 3)
	assert.Equal(t, New(2, -4, 6), UniformScale(v, 2))
	assert.Equal(t, New(0.5, 2, 9), NonUniformScale(v, New(0.5, -1, 3)))
}

func TestDotAndCrossAgreeWithMathGL(t *testing.T) {
	cases := []struct{ a, b Vec3 }{
		{New(1, 0, 0), New(0, 1, 0)},
		{New(1, 2, 3), New(4, 5, 6)},
		{New(-3.5, 0.25, 8), New(2, -7, 0.5)},
	}
	for _, c := range cases {
		assert.InDelta(t, c.a.MGL().Dot(c.b.MGL()), Dot(c.a, c.b), 1e-5)
		want := c.a.MGL().Cross(c.b.MGL())
		got := Cross(c.a, c.b)
		assert.True(t, want.ApproxEqual(got.MGL()), "cross(%v, %v) = %v, want %v", c.a, c.b, got, want)
	}
}

func TestCrossIsPerpendicular(t *testing.T) {
	a := New(1, 2, 3)
	b := New(-2, 0.5, 4)
	c := Cross(a, b)
	assert.InDelta(t, 0, Dot(a, c), 1e-4)
	assert.InDelta(t, 0, Dot(b, c), 1e-4)
	assert.Equal(t, New(0, 0, 1), Cross(New(1, 0, 0), New(0, 1, 0)))
}

func TestMGLRoundTrip(t *testing.T) {
	v := New(1.5, -2, 9)
	assert.Equal(t, mgl32.Vec3{1.5, -2, 9}, v.MGL())
	assert.Equal(t, v, FromMGL(v.MGL()))
	assert.Equal(t, [3]float32{1.5, -2, 9}, v.Array())
}
