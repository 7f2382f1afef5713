package texture

import (
	"testing"

	"github.com/df07/go-scattering/pkg/core"
)

func TestImageTexture_Evaluate(t *testing.T) {
	red := core.NewVec3(1, 0, 0)
	blue := core.NewVec3(0, 0, 1)
	tex := NewCheckerboardTexture(2, 2, 1, red, blue)

	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Vec3
	}{
		{"top left", core.NewVec2(0.25, 0.75), red},
		{"top right", core.NewVec2(0.75, 0.75), blue},
		{"bottom left", core.NewVec2(0.25, 0.25), blue},
		{"wrapped", core.NewVec2(1.25, 0.75), red},
		{"negative wraps", core.NewVec2(-0.25, 0.75), blue},
		{"upper edge clamps", core.NewVec2(0.999999, 0), red},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tex.Evaluate(tt.uv, core.Vec3{})
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestGradientTexture(t *testing.T) {
	tex := NewGradientTexture(1, 3, core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0))
	if got := tex.Pixels[1]; got != core.NewVec3(0.5, 0.5, 0.5) {
		t.Errorf("Expected mid-gray in the middle row, got %v", got)
	}
}

func TestSolidColor(t *testing.T) {
	c := core.NewVec3(0.2, 0.3, 0.4)
	if got := NewSolidColor(c).Evaluate(core.NewVec2(5, -3), core.NewVec3(1, 2, 3)); got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
}
