package core

import "math"

// Frame is an orthonormal basis whose Z axis is a shading normal
type Frame struct {
	Tangent   Vec3
	Bitangent Vec3
	Normal    Vec3
}

// NewFrame builds a basis around the given (unit) normal
func NewFrame(normal Vec3) Frame {
	// Find a vector perpendicular to normal
	var nt Vec3
	if math.Abs(normal.X) > 0.1 {
		nt = NewVec3(0, 1, 0)
	} else {
		nt = NewVec3(1, 0, 0)
	}

	tangent := nt.Cross(normal).Normalize()
	bitangent := normal.Cross(tangent)

	return Frame{Tangent: tangent, Bitangent: bitangent, Normal: normal}
}

// ToLocal expresses a world-space vector in the frame
func (f Frame) ToLocal(v Vec3) Vec3 {
	return Vec3{X: v.Dot(f.Tangent), Y: v.Dot(f.Bitangent), Z: v.Dot(f.Normal)}
}

// ToWorld expresses a frame-local vector in world space
func (f Frame) ToWorld(v Vec3) Vec3 {
	return f.Tangent.Multiply(v.X).Add(f.Bitangent.Multiply(v.Y)).Add(f.Normal.Multiply(v.Z))
}

// PointOnPlane maps a tangent-plane offset to a world-space point around origin
func (f Frame) PointOnPlane(origin Vec3, offset Vec2) Vec3 {
	return origin.Add(f.Tangent.Multiply(offset.X)).Add(f.Bitangent.Multiply(offset.Y))
}
