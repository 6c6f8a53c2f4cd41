// Package prompt collects pairwise judgements in the terminal.
package prompt

import (
	"context"
	"fmt"

	"github.com/goliatone/go-ahpgen/pkg/ahp"
	"github.com/goliatone/go-ahpgen/pkg/session"
)

// ScaleOptions returns the select options for comparing a with b, one per
// step of the judgement scale.
func ScaleOptions(a, b string) []string {
	options := make([]string, len(ahp.Scale))
	for i, j := range ahp.Scale {
		switch {
		case j.Value < 1:
			options[i] = fmt.Sprintf("%s (%s preferred)", j.Label, b)
		case j.Value > 1:
			options[i] = fmt.Sprintf("%s (%s preferred)", j.Label, a)
		default:
			options[i] = j.Label + " (equal)"
		}
	}
	return options
}

// CollectResponses asks for every criteria pair, then every alternatives pair
// under each criterion.
func CollectResponses(ctx context.Context, driver Driver, setup session.Setup) (session.Responses, error) {
	setup, err := setup.Normalize()
	if err != nil {
		return session.Responses{}, err
	}

	responses := session.Responses{
		CriteriaMatrix:      session.Cells{},
		AlternativeMatrices: make(map[string]session.Cells, len(setup.Criteria)),
	}

	if err := driver.Info(ctx, "Compare the criteria"); err != nil {
		return session.Responses{}, err
	}
	if err := collectMatrix(ctx, driver, setup.Criteria, "How much more important is %q than %q?", responses.CriteriaMatrix); err != nil {
		return session.Responses{}, err
	}

	for _, criterion := range setup.Criteria {
		if err := driver.Info(ctx, fmt.Sprintf("Compare the alternatives by %s", criterion)); err != nil {
			return session.Responses{}, err
		}
		cells := session.Cells{}
		if err := collectMatrix(ctx, driver, setup.Alternatives, "Regarding "+criterion+", how much better is %q than %q?", cells); err != nil {
			return session.Responses{}, err
		}
		responses.AlternativeMatrices[criterion] = cells
	}
	return responses, nil
}

func collectMatrix(ctx context.Context, driver Driver, items []string, message string, cells session.Cells) error {
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			idx, err := driver.Select(ctx, SelectConfig{
				Message:      fmt.Sprintf(message, items[i], items[j]),
				Options:      ScaleOptions(items[i], items[j]),
				DefaultIndex: ahp.EqualIndex,
				PageSize:     len(ahp.Scale),
			})
			if err != nil {
				return err
			}
			if idx < 0 || idx >= len(ahp.Scale) {
				return fmt.Errorf("prompt: no judgement selected for %s/%s", items[i], items[j])
			}
			cells.Set(items[i], items[j], ahp.Scale[idx].Value)
		}
	}
	return nil
}
