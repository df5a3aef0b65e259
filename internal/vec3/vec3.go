// Package vec3 holds the 3-component float vector used by the particle simulation.
package vec3

import "github.com/go-gl/mathgl/mgl32"

type Vec3 struct {
	X, Y, Z float32
}

func New(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func Add(a, b Vec3) Vec3 {
	return Vec3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}

func Sub(a, b Vec3) Vec3 {
	return Vec3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

// NonUniformScale multiplies v by factor per axis.
func NonUniformScale(v, factor Vec3) Vec3 {
	return Vec3{X: v.X * factor.X, Y: v.Y * factor.Y, Z: v.Z * factor.Z}
}

func UniformScale(v Vec3, factor float32) Vec3 {
	return Vec3{X: v.X * factor, Y: v.Y * factor, Z: v.Z * factor}
}

func Dot(a, b Vec3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func Cross(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Array returns the vector in the [x, y, z] order the GPU buffers use.
func (v Vec3) Array() [3]float32 { return [3]float32{v.X, v.Y, v.Z} }

func (v Vec3) MGL() mgl32.Vec3 { return mgl32.Vec3{v.X, v.Y, v.Z} }

func FromMGL(m mgl32.Vec3) Vec3 { return Vec3{X: m[0], Y: m[1], Z: m[2]} }
