package quadrature

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"github.com/tuneinsight/ghquad/utils"
)

// Rule is a quadrature rule: Weights[i] is associated to Nodes[i].
type Rule struct {
	Nodes   []float64 `json:"nodes"`
	Weights []float64 `json:"weights"`
}

// Summary gathers descriptive statistics of a rule.
type Summary struct {
	Points    int
	WeightSum float64
	MinNode   float64
	MaxNode   float64
	MinWeight float64
	MaxWeight float64
}

// Len returns the number of points of the rule.
func (r Rule) Len() int {
	return len(r.Nodes)
}

// WeightSum returns the sum of the weights, which approximates the zeroth moment
// of the weight function.
func (r Rule) WeightSum() float64 {
	if r.Len() == 0 {
		return 0
	}
	sum, _ := stats.Sum(r.Weights)
	return sum
}

// Integrate returns sum_i w_i f(x_i).
func (r Rule) Integrate(f func(x float64) float64) (y float64) {
	for i, x := range r.Nodes {
		y += r.Weights[i] * f(x)
	}
	return
}

// Sort sorts the points of the rule by increasing node.
func (r Rule) Sort() {
	utils.SortByKey(r.Nodes, r.Weights)
}

// CheckMoment returns an error wrapping ErrMomentMismatch if the weights do not sum
// to mu0 within the absolute tolerance tol.
func (r Rule) CheckMoment(mu0, tol float64) error {
	if sum := r.WeightSum(); !(math.Abs(sum-mu0) <= tol) {
		return fmt.Errorf("sum of %d weights = %.17g, want %.17g ± %g: %w", r.Len(), sum, mu0, tol, ErrMomentMismatch)
	}
	return nil
}

// Summary returns descriptive statistics of the rule.
func (r Rule) Summary() (s Summary) {

	s.Points = r.Len()

	if s.Points == 0 {
		return
	}

	s.WeightSum = r.WeightSum()
	s.MinNode, _ = stats.Min(r.Nodes)
	s.MaxNode, _ = stats.Max(r.Nodes)
	s.MinWeight, _ = stats.Min(r.Weights)
	s.MaxWeight, _ = stats.Max(r.Weights)

	return
}
