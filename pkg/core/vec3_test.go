package core

import (
	"math"
	"testing"
)

func TestReflect(t *testing.T) {
	n := NewVec3(0, 0, 1)
	v := NewVec3(1, 0, 1).Normalize()

	r := Reflect(v, n)
	expected := NewVec3(-1, 0, 1).Normalize()
	if r.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, r)
	}
}

func TestRefract(t *testing.T) {
	tests := []struct {
		name    string
		v       Vec3
		eta     float64
		wantTIR bool
	}{
		{"normal incidence", NewVec3(0, 0, 1), 1.0 / 1.5, false},
		{"45 degrees entering", NewVec3(1, 0, 1).Normalize(), 1.0 / 1.5, false},
		{"grazing exiting", NewVec3(1, 0, 0.1).Normalize(), 1.5, true},
		{"from below", NewVec3(0.3, 0, -1).Normalize(), 1.5, false},
	}

	n := NewVec3(0, 0, 1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refracted, ok := Refract(tt.v, n, tt.eta)
			if ok == tt.wantTIR {
				t.Fatalf("Refract ok=%t, expected TIR=%t", ok, tt.wantTIR)
			}
			if !ok {
				return
			}

			// Refracted direction lies on the opposite side and obeys Snell's law
			if refracted.Z*tt.v.Z >= 0 {
				t.Errorf("Refracted direction %v should cross the interface", refracted)
			}
			if math.Abs(refracted.Length()-1) > 1e-12 {
				t.Errorf("Refracted direction should be unit length, got %f", refracted.Length())
			}
			sinI := math.Sqrt(1 - tt.v.Z*tt.v.Z)
			sinT := math.Sqrt(1 - refracted.Z*refracted.Z)
			if math.Abs(sinT-tt.eta*sinI) > 1e-12 {
				t.Errorf("Snell violated: sinT=%f, eta*sinI=%f", sinT, tt.eta*sinI)
			}
		})
	}
}

func TestFrame_RoundTrip(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 0, 1),
		NewVec3(1, 0, 0),
		NewVec3(0, -1, 0),
		NewVec3(1, 2, 3).Normalize(),
	}

	for _, n := range normals {
		f := NewFrame(n)
		if math.Abs(f.Tangent.Dot(f.Normal)) > 1e-12 || math.Abs(f.Bitangent.Dot(f.Normal)) > 1e-12 {
			t.Errorf("Frame around %v is not orthogonal", n)
		}

		v := NewVec3(0.3, -0.4, 0.5)
		back := f.ToWorld(f.ToLocal(v))
		if back.Subtract(v).Length() > 1e-12 {
			t.Errorf("Round trip failed for normal %v: %v -> %v", n, v, back)
		}
		if local := f.ToLocal(n); math.Abs(local.Z-1) > 1e-12 {
			t.Errorf("Normal should map to +Z, got %v", local)
		}
	}
}

func TestFrame_PointOnPlane(t *testing.T) {
	f := NewFrame(NewVec3(0, 1, 0))
	origin := NewVec3(1, 2, 3)
	p := f.PointOnPlane(origin, NewVec2(0.3, 0.4))

	if d := p.Subtract(origin).Length(); math.Abs(d-0.5) > 1e-12 {
		t.Errorf("Expected distance 0.5, got %f", d)
	}
	if math.Abs(p.Y-origin.Y) > 1e-12 {
		t.Errorf("Point should stay in the tangent plane, got %v", p)
	}
}
