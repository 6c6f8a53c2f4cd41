package ahp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Judgement is one step of Saaty's 1..9 scale.
type Judgement struct {
	Value float64
	Label string
}

// Scale lists the judgements offered to users, from 1/9 to 9.
var Scale = []Judgement{
	{1.0 / 9, "1/9"}, {1.0 / 8, "1/8"}, {1.0 / 7, "1/7"},
	{1.0 / 6, "1/6"}, {1.0 / 5, "1/5"}, {1.0 / 4, "1/4"},
	{1.0 / 3, "1/3"}, {1.0 / 2, "1/2"}, {1, "1"},
	{2, "2"}, {3, "3"}, {4, "4"},
	{5, "5"}, {6, "6"}, {7, "7"},
	{8, "8"}, {9, "9"},
}

// EqualIndex is the position of the neutral judgement in Scale.
const EqualIndex = 8

// Label returns the scale label closest to value.
func Label(value float64) string {
	best := Scale[0]
	for _, j := range Scale[1:] {
		if math.Abs(math.Log(j.Value)-math.Log(value)) < math.Abs(math.Log(best.Value)-math.Log(value)) {
			best = j
		}
	}
	return best.Label
}

// ParseValue parses a judgement written as a number ("3", "0.333") or a
// fraction ("1/3").
func ParseValue(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidValue)
	}

	var value float64
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidValue, raw)
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err != nil || d == 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidValue, raw)
		}
		value = n / d
	} else {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidValue, raw)
		}
		value = v
	}

	if !validJudgement(value) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, raw)
	}
	return value, nil
}
