package assessment

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/spigell/career-compass/internal/riasec"
)

// Answers is the non-interactive form of an assessment, usually read from a
// YAML or JSON file.
type Answers struct {
	Persona string             `mapstructure:"persona"`
	Name    string             `mapstructure:"name"`
	RIASEC  map[string]float64 `mapstructure:"riasec"`
	Skills  map[string]int     `mapstructure:"skills"`
	Values  []string           `mapstructure:"values"`

	// SkillsAnswered and ValuesAnswered mark stages present in the file even
	// when they were left empty.
	SkillsAnswered bool `mapstructure:"-"`
	ValuesAnswered bool `mapstructure:"-"`
}

// LoadAnswers reads an answers file. The format follows the file extension.
// Skill ids may contain dots; they are matched case-insensitively.
func LoadAnswers(path string) (*Answers, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading answers file %s: %w", path, err)
	}

	var answers Answers
	if err := v.Unmarshal(&answers); err != nil {
		return nil, fmt.Errorf("decoding answers file %s: %w", path, err)
	}
	answers.SkillsAnswered = v.IsSet("skills")
	answers.ValuesAnswered = v.IsSet("values")

	return &answers, nil
}

// Profile feeds every answered stage through an Aggregator. Stages left out
// of the file surface as ErrIncompleteProfile.
func (a *Answers) Profile() (*Profile, error) {
	persona, err := ParsePersona(a.Persona)
	if err != nil {
		return nil, err
	}

	agg := NewAggregator(persona, a.Name)

	if len(a.RIASEC) > 0 {
		scores := make(riasec.Scores, len(a.RIASEC))
		for name, value := range a.RIASEC {
			d, err := riasec.Parse(name)
			if err != nil {
				return nil, fmt.Errorf("riasec stage: %w", err)
			}
			scores[d] = value
		}
		if err := agg.RecordRIASEC(scores); err != nil {
			return nil, fmt.Errorf("riasec stage: %w", err)
		}
	}

	if a.Skills != nil || a.SkillsAnswered {
		if err := agg.RecordSkills(a.Skills); err != nil {
			return nil, fmt.Errorf("skills stage: %w", err)
		}
	}

	if a.Values != nil || a.ValuesAnswered {
		agg.RecordValues(a.Values)
	}

	return agg.Finalize()
}
