// Package matching scores every career in a dataset against a completed
// assessment profile and returns a deterministic ranking.
package matching

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/spigell/career-compass/internal/assessment"
	"github.com/spigell/career-compass/internal/careers"
)

const DefaultTopN = 6

var ErrInvalidProfile = errors.New("invalid profile")

type Options struct {
	TopN     int     `mapstructure:"top-n"`
	MinScore float64 `mapstructure:"min-score"`
	Weights  Weights `mapstructure:"weights"`
}

type Breakdown struct {
	RIASEC float64 `json:"riasec"`
	Skills float64 `json:"skills"`
	Values float64 `json:"values"`
}

type Result struct {
	Career        careers.Record `json:"career"`
	Score         float64        `json:"score"`
	Breakdown     Breakdown      `json:"breakdown"`
	MatchedSkills []string       `json:"matchedSkills,omitempty"`
	MatchedValues []string       `json:"matchedValues,omitempty"`
}

// Matcher holds validated options. It keeps no state between calls and is
// safe for concurrent use.
type Matcher struct {
	topN     int
	minScore float64
	weights  Weights
	logger   *zap.Logger
}

func NewMatcher(opts Options, logger *zap.Logger) (*Matcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	weights := opts.Weights
	if weights.IsZero() {
		weights = DefaultWeights()
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	if math.IsNaN(opts.MinScore) || opts.MinScore < 0 || opts.MinScore > 100 {
		return nil, fmt.Errorf("min score %v is outside 0-100", opts.MinScore)
	}

	return &Matcher{
		topN:     topN,
		minScore: opts.MinScore,
		weights:  weights,
		logger:   logger,
	}, nil
}

func (m *Matcher) Weights() Weights {
	return m.weights
}

// Match ranks the careers in snapshot for profile. An empty dataset yields
// an empty list.
func (m *Matcher) Match(profile *assessment.Profile, snapshot *careers.Snapshot) ([]Result, error) {
	if profile == nil {
		return nil, fmt.Errorf("%w: profile is nil", ErrInvalidProfile)
	}
	if err := profile.RIASEC.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	records := snapshot.All()
	results := make([]Result, 0, len(records))

	for _, career := range records {
		result := m.score(profile, career)
		if result.Score < m.minScore {
			continue
		}
		results = append(results, result)
	}

	rank(results)

	if len(results) > m.topN {
		results = results[:m.topN]
	}

	m.logger.Debug("careers matched",
		zap.String("profile_id", profile.ID),
		zap.String("dataset", snapshot.Source()),
		zap.Int("careers", len(records)),
		zap.Int("results", len(results)),
		zap.Stringer("weights", m.weights),
	)

	return results, nil
}

func (m *Matcher) score(profile *assessment.Profile, career careers.Record) Result {
	affinity := riasecAffinity(profile.RIASEC, career)
	skills, matchedSkills := skillCoverage(profile.Skills, career)
	values, matchedValues := valueAlignment(profile.Values, career)

	total := m.weights.RIASEC*affinity + m.weights.Skills*skills + m.weights.Values*values
	total = min(max(total, 0), 100)

	return Result{
		Career: career,
		Score:  round2(total),
		Breakdown: Breakdown{
			RIASEC: round2(affinity),
			Skills: round2(skills),
			Values: round2(values),
		},
		MatchedSkills: matchedSkills,
		MatchedValues: matchedValues,
	}
}

// rank orders by score, then RIASEC affinity, both descending, then career
// id ascending.
func rank(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Breakdown.RIASEC != b.Breakdown.RIASEC {
			return a.Breakdown.RIASEC > b.Breakdown.RIASEC
		}
		return a.Career.ID < b.Career.ID
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
