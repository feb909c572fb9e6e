package quadrature

import (
	"fmt"
	"math"
)

// machineEpsilon is the float64 unit roundoff.
const machineEpsilon = 0x1p-52

// GolubWelschParameters configures the Golub-Welsch solver.
type GolubWelschParameters struct {
	// Lower and Upper delimit the range (Lower, Upper] in which the nodes are searched.
	Lower float64 `toml:"lower" json:"lower"`
	Upper float64 `toml:"upper" json:"upper"`
	// Tolerance is the absolute tolerance on the eigenvalues.
	Tolerance float64 `toml:"tolerance" json:"tolerance"`
	// Threshold is the weight under which a point is dropped.
	Threshold float64 `toml:"threshold" json:"threshold"`
	// Bound selects the estimator of the number of eigenvalues in range.
	Bound BoundParameters `toml:"bound" json:"bound"`
}

// DefaultGolubWelschParameters returns the parameters scanning [-4, 4] with
// tolerance and threshold sqrt(machine epsilon) and the calibrated heuristic bound.
func DefaultGolubWelschParameters() GolubWelschParameters {
	h := DefaultHeuristic()
	return GolubWelschParameters{
		Lower:     -4,
		Upper:     4,
		Tolerance: math.Sqrt(machineEpsilon),
		Threshold: math.Sqrt(machineEpsilon),
		Bound: BoundParameters{
			Method:    BoundHeuristic,
			Intercept: h.Intercept,
			Slope:     h.Slope,
			Margin:    h.Margin,
		},
	}
}

// Validate checks the consistency of the parameters.
func (p GolubWelschParameters) Validate() error {

	if !(p.Lower < p.Upper) {
		return fmt.Errorf("range (%g, %g] is empty: %w", p.Lower, p.Upper, ErrInvalidParameters)
	}

	if p.Tolerance < 0 || math.IsNaN(p.Tolerance) {
		return fmt.Errorf("tolerance %g < 0: %w", p.Tolerance, ErrInvalidParameters)
	}

	if p.Threshold < 0 || math.IsNaN(p.Threshold) {
		return fmt.Errorf("threshold %g < 0: %w", p.Threshold, ErrInvalidParameters)
	}

	return nil
}

// DirectParameters configures the direct solver.
type DirectParameters struct {
	// Precision is the bit precision at which the log weights are evaluated.
	// Values <= 53 select plain float64 arithmetic.
	Precision uint `toml:"precision" json:"precision"`
	// ImaginaryTolerance is the tolerance of the root finder on the imaginary
	// part of the roots. Values <= 0 select polynomial.DefaultImaginaryTolerance.
	ImaginaryTolerance float64 `toml:"imaginary_tolerance" json:"imaginary_tolerance"`
	// MomentTolerance enables, when positive, the check of the sum of the weights
	// against the zeroth moment.
	MomentTolerance float64 `toml:"moment_tolerance" json:"moment_tolerance"`
}

// DefaultDirectParameters returns float64 weights without moment check.
func DefaultDirectParameters() DirectParameters {
	return DirectParameters{
		Precision: 53,
	}
}
