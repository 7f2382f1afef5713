package core

// ShadingPoint is the integrator's snapshot of a surface hit handed to the
// scattering models. It is read-only for the duration of a shading call.
type ShadingPoint struct {
	Point  Vec3 // World-space position
	Normal Vec3 // Shading normal (unit length)
	UV     Vec2 // Surface parameterization, used by texture bindings

	// Ray-traversal state
	Backfacing   bool    // The ray arrived from the back side of the interface
	MediumIOR    float64 // IOR of the medium the ray currently travels in
	HasMediumIOR bool    // False when the integrator could not resolve MediumIOR
}

// RayContext exposes the ray-traversal attributes a closure may query
type RayContext interface {
	IsBackfacing() bool
	CurrentIOR() (float64, bool)
}

// IsBackfacing implements RayContext
func (sp *ShadingPoint) IsBackfacing() bool {
	return sp.Backfacing
}

// CurrentIOR implements RayContext
func (sp *ShadingPoint) CurrentIOR() (float64, bool) {
	return sp.MediumIOR, sp.HasMediumIOR
}
