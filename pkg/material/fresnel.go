package material

import (
	"math"

	"github.com/df07/go-scattering/pkg/core"
)

// VacuumIOR is used when the ray-traversal state cannot supply the IOR of the
// medium the ray travels in.
const VacuumIOR = 1.0

// FresnelDielectric returns the unpolarized reflectance of a dielectric
// boundary. cosThetaI is the cosine between the incident direction and the
// normal; eta is the IOR on the incident side over the IOR on the far side.
// Total internal reflection returns 1.
func FresnelDielectric(cosThetaI, eta float64) float64 {
	cosI := math.Min(math.Abs(cosThetaI), 1)
	sin2T := eta * eta * (1 - cosI*cosI)
	if sin2T >= 1 {
		return 1
	}
	cosT := math.Sqrt(1 - sin2T)

	rs := (eta*cosI - cosT) / (eta*cosI + cosT)
	rp := (cosI - eta*cosT) / (cosI + eta*cosT)
	return 0.5 * (rs*rs + rp*rp)
}

// Fresnel returns the reflected and transmitted fractions (Kr, Kt) for a
// direction leaving the surface toward the viewer. Kr+Kt = 1.
func Fresnel(incident, normal core.Vec3, eta float64) (kr, kt float64) {
	kr = FresnelDielectric(incident.Dot(normal), eta)
	kr = math.Min(math.Max(kr, 0), 1)
	kt = math.Max(0, 1-kr)
	return kr, kt
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	// Calculate R0 for normal incidence
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}

// ResolveIOR returns ior, or VacuumIOR when ior is not positive
func ResolveIOR(ior float64) float64 {
	if !(ior > 0) {
		return VacuumIOR
	}
	return ior
}

// ResolveIORs returns the (from, to) pair for a boundary with the given
// material IOR. A ray on the back side leaves the material toward the medium
// reported by the ray context; otherwise it enters the material from it.
func ResolveIORs(ray core.RayContext, materialIOR float64) (from, to float64) {
	medium, ok := ray.CurrentIOR()
	if !ok {
		medium = VacuumIOR
	}
	medium = ResolveIOR(medium)

	if ray.IsBackfacing() {
		return materialIOR, medium
	}
	return medium, materialIOR
}
