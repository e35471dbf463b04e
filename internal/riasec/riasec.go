// Package riasec models the six-dimension occupational personality taxonomy
// (Realistic, Investigative, Artistic, Social, Enterprising, Conventional).
package riasec

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

type Dimension string

const (
	Realistic     Dimension = "realistic"
	Investigative Dimension = "investigative"
	Artistic      Dimension = "artistic"
	Social        Dimension = "social"
	Enterprising  Dimension = "enterprising"
	Conventional  Dimension = "conventional"
)

// ErrInvalidScores is returned when a score set is missing a dimension or
// carries a negative or non-finite value.
var ErrInvalidScores = errors.New("invalid riasec scores")

// Dimensions lists all dimensions in canonical order.
func Dimensions() []Dimension {
	return []Dimension{Realistic, Investigative, Artistic, Social, Enterprising, Conventional}
}

// Parse resolves a dimension name case-insensitively. Single-letter codes
// (R, I, A, S, E, C) are accepted too.
func Parse(name string) (Dimension, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, d := range Dimensions() {
		if name == string(d) || name == string(d[0]) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown riasec dimension %q", name)
}

// Valid reports whether d is one of the six canonical names.
func (d Dimension) Valid() bool {
	for _, known := range Dimensions() {
		if d == known {
			return true
		}
	}
	return false
}

// Title returns the capitalised dimension name for display.
func (d Dimension) Title() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// Scores holds one value per dimension. Values are typically 0-100 but no
// fixed maximum is assumed.
type Scores map[Dimension]float64

// Validate checks that all six dimensions are present with finite,
// non-negative values.
func (s Scores) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: no scores recorded", ErrInvalidScores)
	}

	var missing []string
	for _, d := range Dimensions() {
		v, ok := s[d]
		if !ok {
			missing = append(missing, string(d))
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s has value %v", ErrInvalidScores, d, v)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing dimensions %s", ErrInvalidScores, strings.Join(missing, ", "))
	}

	for d := range s {
		if !d.Valid() {
			return fmt.Errorf("%w: unknown dimension %q", ErrInvalidScores, d)
		}
	}

	return nil
}

// Max returns the largest score, or 0 for an empty set.
func (s Scores) Max() float64 {
	max := 0.0
	for _, v := range s {
		if v > max {
			max = v
		}
	}
	return max
}

// Normalized returns the score of d relative to the strongest dimension, in
// [0, 1]. A profile with all zeros normalises to 0 everywhere.
func (s Scores) Normalized(d Dimension) float64 {
	max := s.Max()
	if max <= 0 {
		return 0
	}
	return s[d] / max
}

// Clone returns an independent copy.
func (s Scores) Clone() Scores {
	if s == nil {
		return nil
	}
	out := make(Scores, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Ranked is a dimension paired with its score.
type Ranked struct {
	Dimension Dimension
	Score     float64
}

// Top returns up to n dimensions ordered by score descending. Equal scores
// keep canonical order.
func (s Scores) Top(n int) []Ranked {
	ranked := make([]Ranked, 0, len(Dimensions()))
	for _, d := range Dimensions() {
		ranked = append(ranked, Ranked{Dimension: d, Score: s[d]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
