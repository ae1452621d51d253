package optics

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultIntensity   = 1.0
	DefaultCurvePoints = 360
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrZeroReference = errors.New("zero reference intensity")
)

// Calculator applies Malus's law for a chain of ideal polarizers.
// The stored incident intensity is fixed at construction; all methods
// are pure, so a Calculator may be shared across goroutines freely.
type Calculator struct {
	intensity float64
}

// New returns a calculator with the given default incident intensity
// (W/m²). A negative value is accepted uncritically; only operations
// that divide validate their inputs.
func New(initial float64) *Calculator {
	return &Calculator{intensity: initial}
}

func Default() *Calculator {
	return New(DefaultIntensity)
}

// Intensity reports the default incident intensity.
func (c *Calculator) Intensity() float64 { return c.intensity }

// Transmitted computes the intensity passing an ideal polarizer whose
// axis sits angleDeg degrees from the incident polarization, using the
// default incident intensity.
func (c *Calculator) Transmitted(angleDeg float64) float64 {
	return c.TransmittedFrom(angleDeg, c.intensity)
}

// TransmittedFrom is Transmitted with an explicit incident intensity:
// incident * cos²(angle). Any real angle is valid; the effect is
// periodic with period 180° and even in the angle.
func (c *Calculator) TransmittedFrom(angleDeg, incident float64) float64 {
	cos := math.Cos(angleDeg * math.Pi / 180.0)
	return incident * cos * cos
}

// Chain passes the default incident intensity through a sequence of
// polarizer stages, each angle relative to the previous stage's axis.
func (c *Calculator) Chain(angles []float64) []float64 {
	return c.ChainFrom(angles, c.intensity)
}

// ChainFrom returns len(angles)+1 intensities: element 0 is the
// incident intensity, element k the intensity after the k-th stage.
// The magnitudes never increase stage to stage (cos² ≤ 1).
func (c *Calculator) ChainFrom(angles []float64, incident float64) []float64 {
	intensities := make([]float64, 0, len(angles)+1)
	intensities = append(intensities, incident)

	current := incident
	for _, angle := range angles {
		current = c.TransmittedFrom(angle, current)
		intensities = append(intensities, current)
	}
	return intensities
}

// Curve samples the theoretical Malus curve at points evenly spaced
// angles over [0°, 360°], both endpoints included. A single point
// collapses to angle 0. points < 1 yields empty slices.
func (c *Calculator) Curve(points int) (angles, intensities []float64) {
	if points < 1 {
		return []float64{}, []float64{}
	}

	angles = make([]float64, points)
	intensities = make([]float64, points)

	for i := 0; i < points; i++ {
		angle := 0.0
		if points > 1 {
			angle = 360.0 * float64(i) / float64(points-1)
		}
		angles[i] = angle
		intensities[i] = c.Transmitted(angle)
	}
	return angles, intensities
}

// ValidationRecord compares one reference measurement against the
// calculated transmission at the same angle.
type ValidationRecord struct {
	Reference     float64
	Calculated    float64
	AbsoluteError float64
	PercentError  float64
}

// Validate checks the default-intensity calculation against a
// reference dataset of angle → expected intensity. A reference value
// of exactly zero cannot yield a percent error and is reported as an
// ErrZeroReference rather than an Inf/NaN sentinel.
func (c *Calculator) Validate(reference map[float64]float64) (map[float64]ValidationRecord, error) {
	results := make(map[float64]ValidationRecord, len(reference))

	for angle, ref := range reference {
		if ref == 0 {
			return nil, fmt.Errorf("%w at angle %g", ErrZeroReference, angle)
		}

		calculated := c.Transmitted(angle)
		absErr := math.Abs(calculated - ref)
		results[angle] = ValidationRecord{
			Reference:     ref,
			Calculated:    calculated,
			AbsoluteError: absErr,
			PercentError:  absErr / ref * 100,
		}
	}
	return results, nil
}

// AngleForTransmission inverts Malus's law: the relative angle, in
// [0°, 90°], at which an ideal polarizer passes desired out of
// incident. incident must be positive; that edge is left to the
// caller, matching the permissive core.
func AngleForTransmission(desired, incident float64) (float64, error) {
	if desired > incident {
		return 0, fmt.Errorf("%w: transmitted intensity %g exceeds incident %g", ErrInvalidInput, desired, incident)
	}

	ratio := desired / incident
	if ratio < 0 {
		return 0, fmt.Errorf("%w: negative transmission ratio %g", ErrInvalidInput, ratio)
	}

	return math.Acos(math.Sqrt(ratio)) * 180.0 / math.Pi, nil
}

// SamplePoint is one row of the demonstration dataset.
type SamplePoint struct {
	Angle               float64
	Intensity           float64
	TransmissionPercent float64
}

// SampleDataset tabulates transmission at 15° steps from 0° to 180°
// for unit incident intensity.
func SampleDataset() []SamplePoint {
	calc := New(DefaultIntensity)

	points := make([]SamplePoint, 0, 13)
	for angle := 0.0; angle <= 180.0; angle += 15.0 {
		intensity := calc.Transmitted(angle)
		points = append(points, SamplePoint{
			Angle:               angle,
			Intensity:           intensity,
			TransmissionPercent: intensity * 100,
		})
	}
	return points
}
