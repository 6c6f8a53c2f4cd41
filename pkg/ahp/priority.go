package ahp

import (
	"fmt"
	"math"
)

// ConsistencyThreshold is the usual upper bound for an acceptable
// consistency ratio.
const ConsistencyThreshold = 0.1

const (
	maxIterations = 1000
	tolerance     = 1e-12
)

// randomIndex holds Saaty's random consistency index for n = 1..15.
var randomIndex = []float64{0, 0, 0.58, 0.90, 1.12, 1.24, 1.32, 1.41, 1.45, 1.49, 1.51, 1.48, 1.56, 1.57, 1.59}

// RandomIndex returns the random consistency index for an n x n matrix.
// Sizes past the table reuse its last entry.
func RandomIndex(n int) float64 {
	if n <= 0 {
		return 0
	}
	if n > len(randomIndex) {
		return randomIndex[len(randomIndex)-1]
	}
	return randomIndex[n-1]
}

// Consistent reports whether ratio is within ConsistencyThreshold.
func Consistent(ratio float64) bool {
	return ratio <= ConsistencyThreshold
}

// Priorities returns the normalised principal eigenvector of m together with
// the consistency ratio. Matrices of size 1 or 2 are always consistent.
func Priorities(m Matrix) ([]float64, float64, error) {
	if err := m.Validate(); err != nil {
		return nil, 0, err
	}
	n := m.Size()
	if n == 1 {
		return []float64{1}, 0, nil
	}

	w := make([]float64, n)
	for i := range w {
		w[i] = 1 / float64(n)
	}

	next := make([]float64, n)
	for iter := 0; iter < maxIterations; iter++ {
		multiply(m, w, next)
		normalise(next)

		delta := 0.0
		for i := range w {
			delta = math.Max(delta, math.Abs(next[i]-w[i]))
		}
		copy(w, next)
		if delta < tolerance {
			break
		}
	}

	lambda := principalEigenvalue(m, w)
	if n <= 2 {
		return w, 0, nil
	}
	ci := math.Max(0, (lambda-float64(n))/float64(n-1))
	ri := RandomIndex(n)
	if ri == 0 {
		return w, 0, nil
	}
	return w, ci / ri, nil
}

// Result is the outcome of ranking alternatives across criteria.
type Result struct {
	// Ranking holds the global score of each alternative, summing to 1.
	Ranking []float64
	// CriteriaWeights holds the priority of each criterion.
	CriteriaWeights []float64
	// CriteriaRatio is the consistency ratio of the criteria matrix.
	CriteriaRatio float64
	// AlternativeWeights holds the local priorities per criterion.
	AlternativeWeights [][]float64
	// AlternativeRatios holds the consistency ratio of each per-criterion
	// alternatives matrix.
	AlternativeRatios []float64
}

// Consistent reports whether every matrix passed the consistency threshold.
func (r Result) Consistent() bool {
	if !Consistent(r.CriteriaRatio) {
		return false
	}
	for _, ratio := range r.AlternativeRatios {
		if !Consistent(ratio) {
			return false
		}
	}
	return true
}

// Rank combines the criteria matrix with one alternatives matrix per
// criterion, in criteria order.
func Rank(criteria Matrix, alternatives []Matrix) (Result, error) {
	criteriaWeights, criteriaRatio, err := Priorities(criteria)
	if err != nil {
		return Result{}, fmt.Errorf("ahp: criteria matrix: %w", err)
	}
	if len(alternatives) != len(criteriaWeights) {
		return Result{}, fmt.Errorf("%w: %d criteria but %d alternatives matrices", ErrDimension, len(criteriaWeights), len(alternatives))
	}

	result := Result{
		CriteriaWeights:    criteriaWeights,
		CriteriaRatio:      criteriaRatio,
		AlternativeWeights: make([][]float64, len(alternatives)),
		AlternativeRatios:  make([]float64, len(alternatives)),
	}

	size := -1
	for c, m := range alternatives {
		weights, ratio, err := Priorities(m)
		if err != nil {
			return Result{}, fmt.Errorf("ahp: alternatives matrix %d: %w", c, err)
		}
		if size == -1 {
			size = len(weights)
			result.Ranking = make([]float64, size)
		} else if len(weights) != size {
			return Result{}, fmt.Errorf("%w: alternatives matrix %d has size %d, want %d", ErrDimension, c, len(weights), size)
		}
		result.AlternativeWeights[c] = weights
		result.AlternativeRatios[c] = ratio
		for k, w := range weights {
			result.Ranking[k] += criteriaWeights[c] * w
		}
	}
	return result, nil
}

func multiply(m Matrix, v, out []float64) {
	for i, row := range m {
		sum := 0.0
		for j, x := range row {
			sum += x * v[j]
		}
		out[i] = sum
	}
}

func normalise(v []float64) {
	sum := 0.0
	for _, x := range v {
		sum += x
	}
	if sum == 0 {
		return
	}
	for i := range v {
		v[i] /= sum
	}
}

func principalEigenvalue(m Matrix, w []float64) float64 {
	n := len(w)
	mw := make([]float64, n)
	multiply(m, w, mw)
	sum := 0.0
	for i := range w {
		sum += mw[i] / w[i]
	}
	return sum / float64(n)
}
