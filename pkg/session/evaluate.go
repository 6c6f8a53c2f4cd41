package session

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-ahpgen/pkg/ahp"
)

// Score is an alternative with its global priority.
type Score struct {
	Name  string  `json:"name" yaml:"name"`
	Score float64 `json:"score" yaml:"score"`
}

// CriterionScore is a criterion with its weight and the consistency ratio of
// the alternatives matrix judged under it.
type CriterionScore struct {
	Name   string  `json:"name" yaml:"name"`
	Weight float64 `json:"weight" yaml:"weight"`
	Ratio  float64 `json:"ratio" yaml:"ratio"`
}

// Evaluation is the outcome of Evaluate. Ranking is sorted best first.
type Evaluation struct {
	Ranking       []Score          `json:"ranking" yaml:"ranking"`
	Criteria      []CriterionScore `json:"criteria" yaml:"criteria"`
	CriteriaRatio float64          `json:"criteria_ratio" yaml:"criteria_ratio"`
	Consistent    bool             `json:"consistent" yaml:"consistent"`
}

// Winner returns the top-ranked alternative.
func (e Evaluation) Winner() (Score, bool) {
	if len(e.Ranking) == 0 {
		return Score{}, false
	}
	return e.Ranking[0], true
}

// Evaluate turns the collected judgements into a ranking. For every pair the
// upper-triangle cell is preferred; the mirrored cell is used when it is the
// only one present.
func Evaluate(setup Setup, responses Responses) (Evaluation, error) {
	setup, err := setup.Normalize()
	if err != nil {
		return Evaluation{}, err
	}

	criteria, err := buildMatrix(setup.Criteria, responses.CriteriaMatrix)
	if err != nil {
		return Evaluation{}, fmt.Errorf("%w: criteria: %v", ErrInvalidResponses, err)
	}

	alternatives := make([]ahp.Matrix, 0, len(setup.Criteria))
	for _, criterion := range setup.Criteria {
		cells, ok := responses.AlternativeMatrices[criterion]
		if !ok {
			return Evaluation{}, fmt.Errorf("%w: no judgements for criterion %q", ErrInvalidResponses, criterion)
		}
		m, err := buildMatrix(setup.Alternatives, cells)
		if err != nil {
			return Evaluation{}, fmt.Errorf("%w: criterion %q: %v", ErrInvalidResponses, criterion, err)
		}
		alternatives = append(alternatives, m)
	}

	result, err := ahp.Rank(criteria, alternatives)
	if err != nil {
		return Evaluation{}, err
	}

	eval := Evaluation{
		Ranking:       make([]Score, len(setup.Alternatives)),
		Criteria:      make([]CriterionScore, len(setup.Criteria)),
		CriteriaRatio: result.CriteriaRatio,
		Consistent:    result.Consistent(),
	}
	for i, name := range setup.Alternatives {
		eval.Ranking[i] = Score{Name: name, Score: result.Ranking[i]}
	}
	sort.SliceStable(eval.Ranking, func(i, j int) bool {
		return eval.Ranking[i].Score > eval.Ranking[j].Score
	})
	for i, name := range setup.Criteria {
		eval.Criteria[i] = CriterionScore{
			Name:   name,
			Weight: result.CriteriaWeights[i],
			Ratio:  result.AlternativeRatios[i],
		}
	}
	return eval, nil
}

func buildMatrix(items []string, cells Cells) (ahp.Matrix, error) {
	builder, err := ahp.NewMatrixBuilder(items)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if v, ok := cells.lookup(items[i], items[j]); ok {
				if err := builder.Add(items[i], items[j], v); err != nil {
					return nil, err
				}
				continue
			}
			if v, ok := cells.lookup(items[j], items[i]); ok {
				if err := builder.Add(items[j], items[i], v); err != nil {
					return nil, err
				}
			}
		}
	}
	return builder.Matrix()
}
