package export

import (
	"strings"
	"testing"
)

func TestCurveToSVG(t *testing.T) {
	angles := []float64{0, 90, 180, 270, 360}
	intensities := []float64{1.0, 0.0, 1.0, 0.0, 1.0}

	svg := CurveToSVG(angles, intensities, 400, 200)

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing xml header")
	}
	if !strings.Contains(svg, `width="400" height="200"`) {
		t.Error("missing dimensions")
	}
	if !strings.Contains(svg, "<path") {
		t.Error("missing path element")
	}
	if strings.Count(svg, "L") != len(angles)-1 {
		t.Errorf("expected %d line segments, got %d", len(angles)-1, strings.Count(svg, "L"))
	}
}

func TestCurveToSVGDegenerate(t *testing.T) {
	if svg := CurveToSVG([]float64{0}, []float64{1.0}, 100, 100); svg != "" {
		t.Error("expected empty output for a single point")
	}
	if svg := CurveToSVG([]float64{0, 1}, []float64{1.0}, 100, 100); svg != "" {
		t.Error("expected empty output for mismatched lengths")
	}

	// Flat curve must not divide by zero
	svg := CurveToSVG([]float64{0, 180, 360}, []float64{0.5, 0.5, 0.5}, 100, 100)
	if !strings.Contains(svg, "<path") {
		t.Error("flat curve should still render")
	}
}
