package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-ahpgen/pkg/ahp"
)

var (
	ErrInvalidSetup     = errors.New("session: invalid setup")
	ErrInvalidResponses = errors.New("session: invalid responses")
)

// Format selects the payload encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Setup lists what is being decided between and by which criteria.
type Setup struct {
	Alternatives []string `json:"alternatives" yaml:"alternatives"`
	Criteria     []string `json:"criteria" yaml:"criteria"`
}

// Equal reports whether both setups list the same names in the same order.
func (s Setup) Equal(other Setup) bool {
	return slices.Equal(s.Alternatives, other.Alternatives) && slices.Equal(s.Criteria, other.Criteria)
}

// Normalize trims names, drops blanks and checks there are at least two
// distinct alternatives and criteria.
func (s Setup) Normalize() (Setup, error) {
	alternatives, err := normalizeNames("alternatives", s.Alternatives)
	if err != nil {
		return Setup{}, err
	}
	criteria, err := normalizeNames("criteria", s.Criteria)
	if err != nil {
		return Setup{}, err
	}
	return Setup{Alternatives: alternatives, Criteria: criteria}, nil
}

func normalizeNames(field string, names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			return nil, fmt.Errorf("%w: duplicate %s entry %q", ErrInvalidSetup, field, trimmed)
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 %s, got %d", ErrInvalidSetup, field, len(out))
	}
	return out, nil
}

// Value is a pairwise judgement. Browsers send option values as strings, so
// it decodes from numbers, numeric strings and fractions such as "1/3".
type Value float64

// UnmarshalJSON accepts a JSON number or string.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		return v.parse(raw)
	}
	return v.parse(string(trimmed))
}

// UnmarshalYAML accepts a YAML scalar.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: judgement must be a scalar (line %d)", ErrInvalidResponses, node.Line)
	}
	return v.parse(node.Value)
}

func (v *Value) parse(raw string) error {
	parsed, err := ahp.ParseValue(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponses, err)
	}
	*v = Value(parsed)
	return nil
}

// MarshalJSON writes the shortest float representation.
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(v), 'g', -1, 64)), nil
}

// Cells holds a comparison matrix keyed by row then column name.
type Cells map[string]map[string]Value

// Responses carries the judgements collected for a Setup.
type Responses struct {
	CriteriaMatrix      Cells            `json:"criteriaMatrix" yaml:"criteriaMatrix"`
	AlternativeMatrices map[string]Cells `json:"alternativeMatrices" yaml:"alternativeMatrices"`
}

// Set records a judgement, creating the row map on demand.
func (c Cells) Set(row, col string, value float64) {
	if c[row] == nil {
		c[row] = make(map[string]Value)
	}
	c[row][col] = Value(value)
}

func (c Cells) lookup(row, col string) (float64, bool) {
	cols, ok := c[row]
	if !ok {
		return 0, false
	}
	v, ok := cols[col]
	return float64(v), ok
}

// File is the on-disk session document used by the CLI.
type File struct {
	Setup     Setup      `json:"setup" yaml:"setup"`
	Responses *Responses `json:"responses,omitempty" yaml:"responses,omitempty"`
}

// ParseSetup decodes a JSON setup payload.
func ParseSetup(data []byte) (Setup, error) {
	return DecodeSetup(data, FormatJSON)
}

// DecodeSetup decodes and normalizes a setup payload.
func DecodeSetup(data []byte, format Format) (Setup, error) {
	var setup Setup
	if err := decode(data, format, &setup); err != nil {
		return Setup{}, fmt.Errorf("%w: %v", ErrInvalidSetup, err)
	}
	return setup.Normalize()
}

// ParseResponses decodes a JSON responses payload.
func ParseResponses(data []byte) (Responses, error) {
	return DecodeResponses(data, FormatJSON)
}

// DecodeResponses decodes a responses payload.
func DecodeResponses(data []byte, format Format) (Responses, error) {
	var responses Responses
	if err := decode(data, format, &responses); err != nil {
		if errors.Is(err, ErrInvalidResponses) {
			return Responses{}, err
		}
		return Responses{}, fmt.Errorf("%w: %v", ErrInvalidResponses, err)
	}
	if len(responses.CriteriaMatrix) == 0 {
		return Responses{}, fmt.Errorf("%w: criteriaMatrix is empty", ErrInvalidResponses)
	}
	return responses, nil
}

// DecodeFile decodes a session file holding a setup and optional responses.
func DecodeFile(data []byte, format Format) (File, error) {
	var file File
	if err := decode(data, format, &file); err != nil {
		return File{}, fmt.Errorf("session: decode file: %w", err)
	}
	setup, err := file.Setup.Normalize()
	if err != nil {
		return File{}, err
	}
	file.Setup = setup
	return file, nil
}

// EncodeFile is the inverse of DecodeFile.
func EncodeFile(file File, format Format) ([]byte, error) {
	if format == FormatYAML {
		return yaml.Marshal(file)
	}
	return json.MarshalIndent(file, "", "  ")
}

func decode(data []byte, format Format, out any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return errors.New("payload is empty")
	}
	if format == FormatYAML {
		return yaml.Unmarshal(data, out)
	}
	return json.Unmarshal(data, out)
}
