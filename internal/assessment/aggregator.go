// Package assessment assembles the three independently collected assessment
// stages into a completed, immutable user profile.
package assessment

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spigell/career-compass/internal/riasec"
)

const (
	MinRating = 1
	MaxRating = 5
)

var (
	// ErrIncompleteProfile is returned by Finalize when a stage is missing.
	ErrIncompleteProfile = errors.New("incomplete profile")
	ErrInvalidRating     = errors.New("invalid skill rating")
)

type Stage string

const (
	StageRIASEC Stage = "riasec"
	StageSkills Stage = "skills"
	StageValues Stage = "values"
)

func Stages() []Stage {
	return []Stage{StageRIASEC, StageSkills, StageValues}
}

// Skills maps a skill identifier to a confidence rating in [MinRating, MaxRating].
type Skills map[string]int

// Values is an ordered list of work values, most important first.
type Values []string

// Profile is a completed assessment. It is never mutated after Finalize
// returns it.
type Profile struct {
	ID          string        `json:"id"`
	Name        string        `json:"name,omitempty"`
	Persona     Persona       `json:"persona"`
	RIASEC      riasec.Scores `json:"riasec"`
	Skills      Skills        `json:"skills"`
	Values      Values        `json:"values"`
	Completed   []Stage       `json:"completed"`
	CompletedAt time.Time     `json:"completedAt"`
}

// Aggregator collects stage results. Recording a stage twice replaces the
// earlier result.
type Aggregator struct {
	mu      sync.Mutex
	persona Persona
	name    string

	scores riasec.Scores
	skills Skills
	values Values

	recorded map[Stage]bool
	now      func() time.Time
}

func NewAggregator(persona Persona, name string) *Aggregator {
	return &Aggregator{
		persona:  persona,
		name:     strings.TrimSpace(name),
		recorded: make(map[Stage]bool, 3),
		now:      time.Now,
	}
}

func (a *Aggregator) RecordRIASEC(scores riasec.Scores) error {
	if err := scores.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.scores = scores.Clone()
	a.recorded[StageRIASEC] = true
	return nil
}

// RecordSkills stores the skills stage. Identifiers are lower-cased and blank
// ones dropped; ratings outside 1..5 are rejected. An empty map is a valid
// answer and scores at the neutral baseline.
func (a *Aggregator) RecordSkills(ratings map[string]int) error {
	skills := make(Skills, len(ratings))
	for id, rating := range ratings {
		id = NormalizeID(id)
		if id == "" {
			continue
		}
		if rating < MinRating || rating > MaxRating {
			return fmt.Errorf("%w: %s rated %d, expected %d-%d", ErrInvalidRating, id, rating, MinRating, MaxRating)
		}
		skills[id] = rating
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.skills = skills
	a.recorded[StageSkills] = true
	return nil
}

// RecordValues stores the values stage. Order is kept; blanks and repeated
// values are dropped.
func (a *Aggregator) RecordValues(ordered []string) {
	values := make(Values, 0, len(ordered))
	seen := make(map[string]bool, len(ordered))
	for _, v := range ordered {
		v = NormalizeID(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.values = values
	a.recorded[StageValues] = true
}

// NormalizeID is the canonical form of skill ids and value tags, shared by
// profiles and career records.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Missing lists the stages not yet recorded, in assessment order.
func (a *Aggregator) Missing() []Stage {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.missingLocked()
}

func (a *Aggregator) missingLocked() []Stage {
	var missing []Stage
	for _, s := range Stages() {
		if !a.recorded[s] {
			missing = append(missing, s)
		}
	}
	return missing
}

// Finalize returns the completed profile and resets the aggregator.
func (a *Aggregator) Finalize() (*Profile, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if missing := a.missingLocked(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, s := range missing {
			names[i] = string(s)
		}
		return nil, fmt.Errorf("%w: missing stages %s", ErrIncompleteProfile, strings.Join(names, ", "))
	}

	skills := make(Skills, len(a.skills))
	for k, v := range a.skills {
		skills[k] = v
	}

	profile := &Profile{
		ID:          uuid.NewString(),
		Name:        a.name,
		Persona:     a.persona,
		RIASEC:      a.scores.Clone(),
		Skills:      skills,
		Values:      append(Values(nil), a.values...),
		Completed:   Stages(),
		CompletedAt: a.now().UTC(),
	}

	a.scores = nil
	a.skills = nil
	a.values = nil
	a.recorded = make(map[Stage]bool, 3)

	return profile, nil
}
