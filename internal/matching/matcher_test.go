package matching

import (
	"encoding/json"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/career-compass/internal/assessment"
	"github.com/spigell/career-compass/internal/careers"
	"github.com/spigell/career-compass/internal/riasec"
)

func scenarioProfile() *assessment.Profile {
	return &assessment.Profile{
		ID: "p1",
		RIASEC: riasec.Scores{
			riasec.Realistic:     20,
			riasec.Investigative: 90,
			riasec.Artistic:      70,
			riasec.Social:        20,
			riasec.Enterprising:  20,
			riasec.Conventional:  20,
		},
		Skills: assessment.Skills{"data-analysis": 5},
		Values: assessment.Values{"autonomy", "learning"},
	}
}

func newMatcher(t *testing.T, opts Options) *Matcher {
	t.Helper()
	m, err := NewMatcher(opts, nil)
	require.NoError(t, err)
	return m
}

func TestScenarioInvestigativeBeatsConventional(t *testing.T) {
	t.Parallel()

	snapshot := careers.NewSnapshot("test", []careers.Record{
		{ID: "clerk", Title: "Clerk", PrimaryType: riasec.Conventional, RequiredSkills: []string{"bookkeeping"}, Values: []string{"stability"}},
		{ID: "analyst", Title: "Analyst", PrimaryType: riasec.Investigative, RequiredSkills: []string{"data-analysis"}},
	})

	results, err := newMatcher(t, Options{}).Match(scenarioProfile(), snapshot)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "analyst", results[0].Career.ID)
	assert.Equal(t, "clerk", results[1].Career.ID)
	assert.Greater(t, results[0].Score, results[1].Score)

	analyst := results[0]
	assert.Equal(t, 100.0, analyst.Score)
	assert.Equal(t, Breakdown{RIASEC: 100, Skills: 100, Values: 100}, analyst.Breakdown)
	assert.Equal(t, []string{"data-analysis"}, analyst.MatchedSkills)
	assert.Equal(t, []string{"autonomy", "learning"}, analyst.MatchedValues)

	clerk := results[1]
	assert.Equal(t, 22.22, clerk.Breakdown.RIASEC)
	assert.Equal(t, 50.0, clerk.Breakdown.Skills)
	assert.Equal(t, 0.0, clerk.Breakdown.Values)
	assert.Equal(t, 26.11, clerk.Score)
}

func TestMatchIsDeterministic(t *testing.T) {
	t.Parallel()

	snapshot, err := careers.Defaults()
	require.NoError(t, err)
	m := newMatcher(t, Options{TopN: 100})

	first, err := m.Match(scenarioProfile(), snapshot)
	require.NoError(t, err)
	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := m.Match(scenarioProfile(), snapshot)
		require.NoError(t, err)
		againJSON, err := json.Marshal(again)
		require.NoError(t, err)
		require.Equal(t, string(firstJSON), string(againJSON))
	}
}

func TestRankingIsTotalOrderWithinBounds(t *testing.T) {
	t.Parallel()

	snapshot, err := careers.Defaults()
	require.NoError(t, err)
	m := newMatcher(t, Options{TopN: 100})
	rng := rand.New(rand.NewSource(7))

	skillIDs := make([]string, 0, len(assessment.SkillOptions))
	for _, o := range assessment.SkillOptions {
		skillIDs = append(skillIDs, o.ID)
	}
	valueIDs := make([]string, 0, len(assessment.ValueOptions))
	for _, o := range assessment.ValueOptions {
		valueIDs = append(valueIDs, o.ID)
	}

	for round := 0; round < 50; round++ {
		profile := &assessment.Profile{RIASEC: riasec.Scores{}, Skills: assessment.Skills{}}
		for _, d := range riasec.Dimensions() {
			profile.RIASEC[d] = float64(rng.Intn(101))
		}
		for _, id := range skillIDs {
			if rng.Intn(2) == 0 {
				profile.Skills[id] = 1 + rng.Intn(5)
			}
		}
		for _, i := range rng.Perm(len(valueIDs))[:rng.Intn(len(valueIDs))] {
			profile.Values = append(profile.Values, valueIDs[i])
		}

		results, err := m.Match(profile, snapshot)
		require.NoError(t, err)
		require.Len(t, results, snapshot.Len())

		for i, r := range results {
			assert.GreaterOrEqual(t, r.Score, 0.0)
			assert.LessOrEqual(t, r.Score, 100.0)
			for _, sub := range []float64{r.Breakdown.RIASEC, r.Breakdown.Skills, r.Breakdown.Values} {
				assert.GreaterOrEqual(t, sub, 0.0)
				assert.LessOrEqual(t, sub, 100.0)
			}

			if i == 0 {
				continue
			}
			prev := results[i-1]
			require.GreaterOrEqual(t, prev.Score, r.Score)
			if prev.Score == r.Score {
				require.GreaterOrEqual(t, prev.Breakdown.RIASEC, r.Breakdown.RIASEC)
				if prev.Breakdown.RIASEC == r.Breakdown.RIASEC {
					require.Less(t, prev.Career.ID, r.Career.ID)
				}
			}
		}
	}
}

func TestTieBreaksByAffinityThenID(t *testing.T) {
	t.Parallel()

	snapshot := careers.NewSnapshot("ties", []careers.Record{
		{ID: "c", Title: "C", PrimaryType: riasec.Social},
		{ID: "b", Title: "B", PrimaryType: riasec.Investigative},
		{ID: "a", Title: "A", PrimaryType: riasec.Social},
		{ID: "d", Title: "D"},
	})
	profile := scenarioProfile()
	profile.Skills = nil
	profile.Values = nil

	// Only neutral sub-scores count, so every total is 50.
	m := newMatcher(t, Options{Weights: Weights{RIASEC: 0, Skills: 0.5, Values: 0.5}})
	results, err := m.Match(profile, snapshot)
	require.NoError(t, err)

	ids := make([]string, 0, len(results))
	for _, r := range results {
		assert.Equal(t, 50.0, r.Score)
		ids = append(ids, r.Career.ID)
	}
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids)
}

func TestEmptySkillsGiveNeutralBaseline(t *testing.T) {
	t.Parallel()

	snapshot, err := careers.Defaults()
	require.NoError(t, err)

	profile := scenarioProfile()
	profile.Skills = assessment.Skills{}
	profile.Values = nil

	results, err := newMatcher(t, Options{TopN: 100}).Match(profile, snapshot)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for _, r := range results {
		assert.Equal(t, NeutralScore, r.Breakdown.Skills, r.Career.ID)
		assert.Equal(t, NeutralScore, r.Breakdown.Values, r.Career.ID)
		assert.Empty(t, r.MatchedSkills)
	}
}

func TestSkillCoverage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		skills  assessment.Skills
		career  careers.Record
		want    float64
		matched []string
	}{
		{
			name:    "rated and unrated",
			skills:  assessment.Skills{"a": 5, "c": 1},
			career:  careers.Record{RequiredSkills: []string{"a", "b"}},
			want:    75,
			matched: []string{"a"},
		},
		{
			name:   "lowest rating",
			skills: assessment.Skills{"a": 1},
			career: careers.Record{RequiredSkills: []string{"a"}},
			want:   0,
		},
		{
			name:   "no required skills",
			skills: assessment.Skills{"a": 1},
			career: careers.Record{},
			want:   NeutralScore,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, matched := skillCoverage(tt.skills, tt.career)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.Equal(t, tt.matched, matched)
		})
	}
}

func TestValueAlignment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values assessment.Values
		career careers.Record
		want   float64
	}{
		{
			name:   "second choice only",
			values: assessment.Values{"variety", "autonomy"},
			career: careers.Record{Values: []string{"autonomy"}},
			want:   50,
		},
		{
			name:   "top choice only",
			values: assessment.Values{"autonomy", "variety"},
			career: careers.Record{Values: []string{"autonomy"}},
			want:   100,
		},
		{
			name:   "no overlap",
			values: assessment.Values{"income"},
			career: careers.Record{Values: []string{"autonomy"}},
			want:   0,
		},
		{
			name:   "no derivable tags",
			values: assessment.Values{"income"},
			career: careers.Record{},
			want:   NeutralScore,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, _ := valueAlignment(tt.values, tt.career)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestRIASECAffinity(t *testing.T) {
	t.Parallel()

	scores := scenarioProfile().RIASEC

	assert.InDelta(t, 100, riasecAffinity(scores, careers.Record{PrimaryType: riasec.Investigative}), 1e-9)
	assert.InDelta(t, (2*1+70.0/90)/3*100, riasecAffinity(scores, careers.Record{
		PrimaryType:   riasec.Investigative,
		SecondaryType: riasec.Artistic,
	}), 1e-9)
	assert.Zero(t, riasecAffinity(scores, careers.Record{}))

	zeros := riasec.Scores{}
	for _, d := range riasec.Dimensions() {
		zeros[d] = 0
	}
	assert.Zero(t, riasecAffinity(zeros, careers.Record{PrimaryType: riasec.Social}))
}

func TestValueTags(t *testing.T) {
	t.Parallel()

	derived := ValueTags(careers.Record{
		PrimaryType:     riasec.Artistic,
		WorkEnvironment: []string{"Remote", "lab", "unknown"},
	})
	assert.Equal(t, []string{"autonomy", "work-life-balance", "learning", "creativity"}, derived)

	explicit := ValueTags(careers.Record{PrimaryType: riasec.Artistic, Values: []string{"income", "income"}})
	assert.Equal(t, []string{"income"}, explicit)

	mixed := ValueTags(careers.Record{Values: []string{"Autonomy", " autonomy ", "INCOME"}})
	assert.Equal(t, []string{"autonomy", "income"}, mixed)
}

func writeAnswers(t *testing.T, name, content string) *assessment.Profile {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	answers, err := assessment.LoadAnswers(path)
	require.NoError(t, err)

	profile, err := answers.Profile()
	require.NoError(t, err)
	return profile
}

func TestAnswersFileWithEmptySkillsScoresNeutral(t *testing.T) {
	t.Parallel()

	result, err := careers.ParseJSON([]byte(`[
		{"id": "dev", "title": "Developer", "primaryType": "investigative", "requiredSkills": ["sql", "go"]}
	]`))
	require.NoError(t, err)
	snapshot := result.Snapshot("upload")

	files := map[string]string{
		"answers.yaml": "riasec: {r: 1, i: 9, a: 1, s: 1, e: 1, c: 1}\nskills: {}\nvalues: [learning]\n",
		"answers.json": `{"riasec": {"r": 1, "i": 9, "a": 1, "s": 1, "e": 1, "c": 1}, "skills": {}, "values": ["learning"]}`,
	}
	for name, content := range files {
		profile := writeAnswers(t, name, content)
		assert.Empty(t, profile.Skills, name)

		results, err := newMatcher(t, Options{}).Match(profile, snapshot)
		require.NoError(t, err, name)
		require.Len(t, results, 1, name)
		assert.Equal(t, NeutralScore, results[0].Breakdown.Skills, name)
	}
}

func TestSkillIDsMatchAcrossUploadAndAnswers(t *testing.T) {
	t.Parallel()

	result, err := careers.ParseJSON([]byte(`[
		{"id": "backend", "title": "Backend Developer", "primaryType": "investigative",
		 "requiredSkills": ["SQL", "Node.js"], "values": ["Autonomy"]}
	]`))
	require.NoError(t, err)
	snapshot := result.Snapshot("upload")

	profile := writeAnswers(t, "answers.yaml", `riasec: {r: 1, i: 9, a: 1, s: 1, e: 1, c: 1}
skills:
  SQL: 5
  node.js: 5
values:
  - autonomy
`)
	assert.Equal(t, assessment.Skills{"sql": 5, "node.js": 5}, profile.Skills)

	results, err := newMatcher(t, Options{}).Match(profile, snapshot)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 100.0, results[0].Breakdown.Skills)
	assert.Equal(t, 100.0, results[0].Breakdown.Values)
	assert.Equal(t, []string{"sql", "node.js"}, results[0].MatchedSkills)
	assert.Equal(t, []string{"autonomy"}, results[0].MatchedValues)
}

func TestTopNAndMinScore(t *testing.T) {
	t.Parallel()

	snapshot, err := careers.Defaults()
	require.NoError(t, err)
	profile := scenarioProfile()

	results, err := newMatcher(t, Options{}).Match(profile, snapshot)
	require.NoError(t, err)
	assert.Len(t, results, DefaultTopN)

	results, err = newMatcher(t, Options{TopN: 1000}).Match(profile, snapshot)
	require.NoError(t, err)
	assert.Len(t, results, snapshot.Len())

	results, err = newMatcher(t, Options{TopN: 1000, MinScore: 60}).Match(profile, snapshot)
	require.NoError(t, err)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Score, 60.0)
	}
	assert.Less(t, len(results), snapshot.Len())
}

func TestEmptyDatasetIsNotAnError(t *testing.T) {
	t.Parallel()

	m := newMatcher(t, Options{})
	for _, snapshot := range []*careers.Snapshot{nil, careers.NewSnapshot("empty", nil)} {
		results, err := m.Match(scenarioProfile(), snapshot)
		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	}
}

func TestInvalidProfile(t *testing.T) {
	t.Parallel()

	m := newMatcher(t, Options{})
	snapshot := careers.NewSnapshot("test", []careers.Record{{ID: "a", Title: "A"}})

	_, err := m.Match(nil, snapshot)
	assert.True(t, errors.Is(err, ErrInvalidProfile))

	profile := scenarioProfile()
	delete(profile.RIASEC, riasec.Conventional)
	_, err = m.Match(profile, snapshot)
	assert.True(t, errors.Is(err, ErrInvalidProfile))
	assert.True(t, errors.Is(err, riasec.ErrInvalidScores))
}

func TestNewMatcherRejectsBadOptions(t *testing.T) {
	t.Parallel()

	_, err := NewMatcher(Options{Weights: Weights{RIASEC: 0.9, Skills: 0.9}}, nil)
	assert.True(t, errors.Is(err, ErrInvalidWeights))

	_, err = NewMatcher(Options{MinScore: 120}, nil)
	assert.Error(t, err)
}

func TestMatchLogsSummary(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.DebugLevel)
	m, err := NewMatcher(Options{}, zap.New(core))
	require.NoError(t, err)

	_, err = m.Match(scenarioProfile(), careers.NewSnapshot("unit", []careers.Record{{ID: "a", Title: "A"}}))
	require.NoError(t, err)

	entries := observed.FilterMessage("careers matched").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "unit", ctx["dataset"])
	assert.Equal(t, int64(1), ctx["results"])
}
