package ahp

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrUnknownItem         = errors.New("ahp: unknown item")
	ErrSelfComparison      = errors.New("ahp: item compared with itself")
	ErrDuplicateComparison = errors.New("ahp: comparison already exists")
	ErrInvalidValue        = errors.New("ahp: judgement must be a positive finite number")
	ErrIncomplete          = errors.New("ahp: comparison matrix is incomplete")
	ErrDimension           = errors.New("ahp: matrix dimension mismatch")
)

// Matrix is a square pairwise comparison matrix. Entry [i][j] says how much
// item i is preferred over item j.
type Matrix [][]float64

// Size returns the number of rows.
func (m Matrix) Size() int {
	return len(m)
}

// Validate checks the matrix is square with positive finite entries.
func (m Matrix) Validate() error {
	n := len(m)
	if n == 0 {
		return fmt.Errorf("%w: empty matrix", ErrDimension)
	}
	for i, row := range m {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrDimension, i, len(row), n)
		}
		for j, v := range row {
			if !validJudgement(v) {
				return fmt.Errorf("%w: [%d][%d]=%v", ErrInvalidValue, i, j, v)
			}
		}
	}
	return nil
}

// MatrixBuilder collects judgements between named items and produces the
// reciprocal comparison matrix.
type MatrixBuilder struct {
	items []string
	index map[string]int
	comps map[[2]int]float64
}

// NewMatrixBuilder creates a builder for the given items, in matrix order.
// Duplicate or blank names are rejected.
func NewMatrixBuilder(items []string) (*MatrixBuilder, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items", ErrDimension)
	}
	names := make([]string, len(items))
	index := make(map[string]int, len(items))
	for i, item := range items {
		name := strings.TrimSpace(item)
		if name == "" {
			return nil, fmt.Errorf("ahp: item %d has an empty name", i)
		}
		if _, exists := index[name]; exists {
			return nil, fmt.Errorf("ahp: duplicate item %q", name)
		}
		index[name] = i
		names[i] = name
	}
	return &MatrixBuilder{
		items: names,
		index: index,
		comps: make(map[[2]int]float64),
	}, nil
}

// Items returns the item names in matrix order.
func (mb *MatrixBuilder) Items() []string {
	return append([]string(nil), mb.items...)
}

// Add records that a is preferred over b by value. The mirrored judgement is
// derived, so adding both (a, b) and (b, a) is a duplicate.
func (mb *MatrixBuilder) Add(a, b string, value float64) error {
	i, ok := mb.index[strings.TrimSpace(a)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, a)
	}
	j, ok := mb.index[strings.TrimSpace(b)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, b)
	}
	if i == j {
		return fmt.Errorf("%w: %q", ErrSelfComparison, a)
	}
	if !validJudgement(value) {
		return fmt.Errorf("%w: %s vs %s = %v", ErrInvalidValue, a, b, value)
	}
	if _, exists := mb.comps[[2]int{i, j}]; exists {
		return fmt.Errorf("%w: %s vs %s", ErrDuplicateComparison, a, b)
	}
	if _, exists := mb.comps[[2]int{j, i}]; exists {
		return fmt.Errorf("%w: %s vs %s", ErrDuplicateComparison, b, a)
	}
	mb.comps[[2]int{i, j}] = value
	return nil
}

// Matrix returns the full reciprocal matrix. Every unordered pair must have
// been judged once.
func (mb *MatrixBuilder) Matrix() (Matrix, error) {
	n := len(mb.items)
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1
	}

	var missing []string
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if v, ok := mb.comps[[2]int{i, j}]; ok {
				m[i][j] = v
				m[j][i] = 1 / v
				continue
			}
			if v, ok := mb.comps[[2]int{j, i}]; ok {
				m[j][i] = v
				m[i][j] = 1 / v
				continue
			}
			missing = append(missing, mb.items[i]+"/"+mb.items[j])
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(missing, ", "))
	}
	return m, nil
}

func validJudgement(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
