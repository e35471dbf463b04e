package assessment

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spigell/career-compass/internal/riasec"
)

func fullScores() riasec.Scores {
	return riasec.Scores{
		riasec.Realistic:     20,
		riasec.Investigative: 80,
		riasec.Artistic:      40,
		riasec.Social:        60,
		riasec.Enterprising:  30,
		riasec.Conventional:  50,
	}
}

func TestFinalizeRequiresAllStages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		record  func(a *Aggregator)
		missing []string
	}{
		{
			name:    "nothing recorded",
			record:  func(*Aggregator) {},
			missing: []string{"riasec", "skills", "values"},
		},
		{
			name: "values missing",
			record: func(a *Aggregator) {
				_ = a.RecordRIASEC(fullScores())
				_ = a.RecordSkills(map[string]int{"writing": 3})
			},
			missing: []string{"values"},
		},
		{
			name: "riasec missing",
			record: func(a *Aggregator) {
				_ = a.RecordSkills(map[string]int{})
				a.RecordValues(nil)
			},
			missing: []string{"riasec"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			agg := NewAggregator(PersonaIndividual, "")
			tt.record(agg)

			profile, err := agg.Finalize()
			if !errors.Is(err, ErrIncompleteProfile) {
				t.Fatalf("expected ErrIncompleteProfile, got %v", err)
			}
			if profile != nil {
				t.Fatalf("expected no profile, got %+v", profile)
			}
			for _, stage := range tt.missing {
				if !strings.Contains(err.Error(), stage) {
					t.Fatalf("error %q does not name missing stage %s", err, stage)
				}
			}
		})
	}
}

func TestFinalizeProducesProfileAndResets(t *testing.T) {
	t.Parallel()

	agg := NewAggregator(PersonaCoach, "  Sam  ")
	if err := agg.RecordRIASEC(fullScores()); err != nil {
		t.Fatalf("record riasec: %v", err)
	}
	if err := agg.RecordSkills(map[string]int{"research": 5, " ": 2}); err != nil {
		t.Fatalf("record skills: %v", err)
	}
	agg.RecordValues([]string{"learning", "", "autonomy", "learning"})

	profile, err := agg.Finalize()
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if profile.ID == "" {
		t.Fatal("expected profile id")
	}
	if profile.Name != "Sam" || profile.Persona != PersonaCoach {
		t.Fatalf("unexpected identity: %q %q", profile.Name, profile.Persona)
	}
	if len(profile.Skills) != 1 || profile.Skills["research"] != 5 {
		t.Fatalf("unexpected skills: %v", profile.Skills)
	}
	if got := strings.Join(profile.Values, ","); got != "learning,autonomy" {
		t.Fatalf("unexpected values: %s", got)
	}
	if len(profile.Completed) != 3 || profile.CompletedAt.IsZero() {
		t.Fatalf("unexpected completion: %v %v", profile.Completed, profile.CompletedAt)
	}

	if missing := agg.Missing(); len(missing) != 3 {
		t.Fatalf("aggregator should be reset, missing=%v", missing)
	}

	again, err := agg.Finalize()
	if !errors.Is(err, ErrIncompleteProfile) || again != nil {
		t.Fatalf("expected reset aggregator to be incomplete, got %v %v", again, err)
	}
}

func TestRecordingTwiceKeepsLatest(t *testing.T) {
	t.Parallel()

	agg := NewAggregator(PersonaIndividual, "")
	first := fullScores()
	if err := agg.RecordRIASEC(first); err != nil {
		t.Fatal(err)
	}
	second := fullScores()
	second[riasec.Realistic] = 99
	if err := agg.RecordRIASEC(second); err != nil {
		t.Fatal(err)
	}
	_ = agg.RecordSkills(map[string]int{"a": 1})
	_ = agg.RecordSkills(map[string]int{"b": 2})
	agg.RecordValues([]string{"x"})
	agg.RecordValues([]string{"y"})

	// mutating the caller's map after recording must not leak into the profile
	second[riasec.Realistic] = 1

	profile, err := agg.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	if profile.RIASEC[riasec.Realistic] != 99 {
		t.Fatalf("expected latest riasec, got %v", profile.RIASEC[riasec.Realistic])
	}
	if _, ok := profile.Skills["a"]; ok || profile.Skills["b"] != 2 {
		t.Fatalf("expected latest skills, got %v", profile.Skills)
	}
	if len(profile.Values) != 1 || profile.Values[0] != "y" {
		t.Fatalf("expected latest values, got %v", profile.Values)
	}
}

func TestRecordRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	agg := NewAggregator(PersonaIndividual, "")

	partial := riasec.Scores{riasec.Realistic: 10}
	if err := agg.RecordRIASEC(partial); !errors.Is(err, riasec.ErrInvalidScores) {
		t.Fatalf("expected ErrInvalidScores, got %v", err)
	}

	for _, rating := range []int{0, 6, -1} {
		if err := agg.RecordSkills(map[string]int{"writing": rating}); !errors.Is(err, ErrInvalidRating) {
			t.Fatalf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}

	if missing := agg.Missing(); len(missing) != 3 {
		t.Fatalf("rejected stages must not count as recorded, missing=%v", missing)
	}
}

func TestParsePersona(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Persona
		wantErr bool
	}{
		{in: "", want: PersonaIndividual},
		{in: "Coach", want: PersonaCoach},
		{in: " manager ", want: PersonaManager},
		{in: "recruiter", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParsePersona(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("%q: got %q, %v", tt.in, got, err)
		}
	}
}

func TestLoadAnswers(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "answers.yaml")
	content := `persona: manager
name: Alex
riasec:
  R: 10
  investigative: 70
  artistic: 30
  social: 90
  enterprising: 40
  conventional: 20
skills:
  communication: 5
  teaching: 4
values:
  - helping-others
  - teamwork
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	answers, err := LoadAnswers(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	profile, err := answers.Profile()
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Persona != PersonaManager || profile.Name != "Alex" {
		t.Fatalf("unexpected identity: %+v", profile)
	}
	if profile.RIASEC[riasec.Realistic] != 10 || profile.RIASEC[riasec.Social] != 90 {
		t.Fatalf("unexpected scores: %v", profile.RIASEC)
	}
	if profile.Skills["communication"] != 5 {
		t.Fatalf("unexpected skills: %v", profile.Skills)
	}
	if len(profile.Values) != 2 || profile.Values[0] != "helping-others" {
		t.Fatalf("unexpected values: %v", profile.Values)
	}
}

func TestAnswersWithoutValuesAreIncomplete(t *testing.T) {
	t.Parallel()

	answers := &Answers{
		RIASEC: map[string]float64{"r": 1, "i": 1, "a": 1, "s": 1, "e": 1, "c": 1},
		Skills: map[string]int{},
	}
	if _, err := answers.Profile(); !errors.Is(err, ErrIncompleteProfile) {
		t.Fatalf("expected ErrIncompleteProfile, got %v", err)
	}
}

func TestEmptySkillsStageIsRecorded(t *testing.T) {
	t.Parallel()

	agg := NewAggregator(PersonaIndividual, "")
	if err := agg.RecordRIASEC(fullScores()); err != nil {
		t.Fatalf("record riasec: %v", err)
	}
	if err := agg.RecordSkills(map[string]int{}); err != nil {
		t.Fatalf("record skills: %v", err)
	}
	agg.RecordValues([]string{"learning"})

	profile, err := agg.Finalize()
	if err != nil {
		t.Fatalf("skipping every skill should still complete the profile: %v", err)
	}
	if len(profile.Skills) != 0 {
		t.Fatalf("unexpected skills: %v", profile.Skills)
	}
}

func TestRecordNormalizesIDs(t *testing.T) {
	t.Parallel()

	agg := NewAggregator(PersonaIndividual, "")
	if err := agg.RecordRIASEC(fullScores()); err != nil {
		t.Fatalf("record riasec: %v", err)
	}
	if err := agg.RecordSkills(map[string]int{" SQL ": 5, "Node.js": 4}); err != nil {
		t.Fatalf("record skills: %v", err)
	}
	agg.RecordValues([]string{"Autonomy", "autonomy", "LEARNING"})

	profile, err := agg.Finalize()
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if profile.Skills["sql"] != 5 || profile.Skills["node.js"] != 4 {
		t.Fatalf("unexpected skills: %v", profile.Skills)
	}
	if got := strings.Join(profile.Values, ","); got != "autonomy,learning" {
		t.Fatalf("unexpected values: %s", got)
	}
}

func TestLoadAnswersKeepsEmptyAndDottedStages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		skills  Skills
	}{
		{
			name:    "yaml empty skills",
			file:    "answers.yaml",
			content: "riasec: {r: 1, i: 2, a: 3, s: 4, e: 5, c: 6}\nskills: {}\nvalues: [learning]\n",
			skills:  Skills{},
		},
		{
			name:    "json empty skills",
			file:    "answers.json",
			content: `{"riasec": {"r": 1, "i": 2, "a": 3, "s": 4, "e": 5, "c": 6}, "skills": {}, "values": ["learning"]}`,
			skills:  Skills{},
		},
		{
			name:    "dotted and mixed-case skill ids",
			file:    "answers.yaml",
			content: "riasec: {r: 1, i: 2, a: 3, s: 4, e: 5, c: 6}\nskills:\n  node.js: 4\n  SQL: 5\nvalues: [learning]\n",
			skills:  Skills{"node.js": 4, "sql": 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}

			answers, err := LoadAnswers(path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if !answers.SkillsAnswered {
				t.Fatal("skills stage should be marked as answered")
			}

			profile, err := answers.Profile()
			if err != nil {
				t.Fatalf("profile: %v", err)
			}
			if len(profile.Skills) != len(tt.skills) {
				t.Fatalf("unexpected skills: %v", profile.Skills)
			}
			for id, rating := range tt.skills {
				if profile.Skills[id] != rating {
					t.Fatalf("skill %s: got %d, want %d", id, profile.Skills[id], rating)
				}
			}
		})
	}
}

func TestLoadAnswersWithoutSkillsKeyIsIncomplete(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "answers.yaml")
	if err := os.WriteFile(path, []byte("riasec: {r: 1, i: 2, a: 3, s: 4, e: 5, c: 6}\nvalues: [learning]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	answers, err := LoadAnswers(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := answers.Profile(); !errors.Is(err, ErrIncompleteProfile) {
		t.Fatalf("expected ErrIncompleteProfile, got %v", err)
	}
}
