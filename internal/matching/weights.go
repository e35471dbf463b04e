package matching

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const weightTolerance = 0.001

var ErrInvalidWeights = errors.New("invalid weights")

// Weights sets how much each sub-score contributes to the total.
type Weights struct {
	RIASEC float64 `mapstructure:"riasec" json:"riasec"`
	Skills float64 `mapstructure:"skills" json:"skills"`
	Values float64 `mapstructure:"values" json:"values"`
}

func DefaultWeights() Weights {
	return Weights{RIASEC: 0.5, Skills: 0.3, Values: 0.2}
}

func (w Weights) IsZero() bool {
	return w == Weights{}
}

func (w Weights) Sum() float64 {
	return w.RIASEC + w.Skills + w.Values
}

// Validate requires finite, non-negative weights summing to 1.
func (w Weights) Validate() error {
	if err := w.checkComponents(); err != nil {
		return err
	}
	if math.Abs(w.Sum()-1) > weightTolerance {
		return fmt.Errorf("%w: weights sum to %.4f, expected 1", ErrInvalidWeights, w.Sum())
	}
	return nil
}

// Normalize rescales the weights so they sum to 1.
func (w Weights) Normalize() (Weights, error) {
	if err := w.checkComponents(); err != nil {
		return Weights{}, err
	}
	sum := w.Sum()
	if sum <= 0 {
		return Weights{}, fmt.Errorf("%w: weights sum to zero", ErrInvalidWeights)
	}
	return Weights{RIASEC: w.RIASEC / sum, Skills: w.Skills / sum, Values: w.Values / sum}, nil
}

func (w Weights) checkComponents() error {
	components := []struct {
		name  string
		value float64
	}{
		{"riasec", w.RIASEC},
		{"skills", w.Skills},
		{"values", w.Values},
	}
	for _, c := range components {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) || c.value < 0 {
			return fmt.Errorf("%w: %s weight %v", ErrInvalidWeights, c.name, c.value)
		}
	}
	return nil
}

func (w Weights) String() string {
	return fmt.Sprintf("riasec=%g,skills=%g,values=%g", w.RIASEC, w.Skills, w.Values)
}

// ParseWeights reads an override like "riasec=0.6,skills=0.4". Components
// that are not named keep their value from base. The result is normalised.
func ParseWeights(s string, base Weights) (Weights, error) {
	w := base
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, raw, ok := strings.Cut(part, "=")
		if !ok {
			return Weights{}, fmt.Errorf("%w: %q is not key=value", ErrInvalidWeights, part)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return Weights{}, fmt.Errorf("%w: %s: %v", ErrInvalidWeights, key, err)
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "riasec":
			w.RIASEC = v
		case "skills":
			w.Skills = v
		case "values":
			w.Values = v
		default:
			return Weights{}, fmt.Errorf("%w: unknown component %q", ErrInvalidWeights, key)
		}
	}
	return w.Normalize()
}
