package export

import (
	"fmt"
	"strings"
)

// CurveToSVG renders an angle/intensity series as an SVG path with a
// simple axis frame. Intensity is scaled against the largest sample
// so negative or >1 incident intensities still plot sensibly.
func CurveToSVG(angles, intensities []float64, width, height int) string {
	if len(angles) < 2 || len(angles) != len(intensities) {
		return ""
	}

	minA, maxA := angles[0], angles[0]
	minI, maxI := intensities[0], intensities[0]
	for i := range angles {
		if angles[i] < minA {
			minA = angles[i]
		}
		if angles[i] > maxA {
			maxA = angles[i]
		}
		if intensities[i] < minI {
			minI = intensities[i]
		}
		if intensities[i] > maxI {
			maxI = intensities[i]
		}
	}

	rangeA := maxA - minA
	rangeI := maxI - minI
	if rangeA == 0 {
		rangeA = 1
	}
	if rangeI == 0 {
		rangeI = 1
	}

	pad := 0.05
	minI -= rangeI * pad
	maxI += rangeI * pad
	rangeI = maxI - minI

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<rect x="0.5" y="0.5" width="%d" height="%d" fill="none" stroke="#333333"/>
<path fill="none" stroke="#00ff88" stroke-width="1.5" d="M`,
		width, height, width, height, width-1, height-1))

	for i := range angles {
		x := (angles[i] - minA) / rangeA * float64(width)
		y := float64(height) - (intensities[i]-minI)/rangeI*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
