package cmd

import (
	"context"
	"fmt"
	"slices"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-compass/internal/assessment"
	"github.com/spigell/career-compass/internal/riasec"
)

const (
	PromptSkip = "skip"
	PromptDone = "done"
)

var ratingLabels = []string{
	"1 - not at all",
	"2 - a little",
	"3 - somewhat",
	"4 - quite a lot",
	"5 - very much",
}

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Run the interactive assessment and show matching careers",
	Run: func(cmd *cobra.Command, _ []string) {
		assess(cmd)
	},
}

func init() {
	rootCmd.AddCommand(assessCmd)

	addResultFlags(assessCmd)
}

func assess(cmd *cobra.Command) {
	ctx := context.Background()

	logger := newLogger()
	config := mustConfig(logger)

	profile, err := runWizard()
	if err != nil {
		logger.Fatal("running the assessment", zap.Error(err))
	}

	logger.Info("assessment completed", zap.String("profile", profile.ID), zap.String("persona", string(profile.Persona)))

	if err := newSession(cmd, config, logger).deliver(ctx, profile); err != nil {
		logger.Fatal("matching careers", zap.Error(err))
	}
}

func runWizard() (*assessment.Profile, error) {
	persona, err := choosePersona()
	if err != nil {
		return nil, err
	}

	namePrompt := promptui.Prompt{Label: "Your name (optional)"}
	name, err := namePrompt.Run()
	if err != nil {
		return nil, err
	}

	agg := assessment.NewAggregator(persona, name)

	scores, err := askInventory()
	if err != nil {
		return nil, err
	}
	if err := agg.RecordRIASEC(scores); err != nil {
		return nil, err
	}

	skills, err := askSkills()
	if err != nil {
		return nil, err
	}
	if err := agg.RecordSkills(skills); err != nil {
		return nil, err
	}

	values, err := askValues()
	if err != nil {
		return nil, err
	}
	agg.RecordValues(values)

	return agg.Finalize()
}

func choosePersona() (assessment.Persona, error) {
	personas := assessment.Personas()
	labels := make([]string, 0, len(personas))
	for _, p := range personas {
		labels = append(labels, p.Label())
	}

	personaPrompt := promptui.Select{
		Label: "Who is taking the assessment?",
		Items: labels,
	}

	i, _, err := personaPrompt.Run()
	if err != nil {
		return "", err
	}
	return personas[i], nil
}

func askInventory() (riasec.Scores, error) {
	ratings := make([]int, len(assessment.Inventory))

	for i, item := range assessment.Inventory {
		itemPrompt := promptui.Select{
			Label: fmt.Sprintf("[%d/%d] How much do you enjoy: %s", i+1, len(assessment.Inventory), item.Statement),
			Items: ratingLabels,
		}
		idx, _, err := itemPrompt.Run()
		if err != nil {
			return nil, err
		}
		ratings[i] = idx + assessment.MinRating
	}

	return assessment.ScoreInventory(ratings)
}

// askSkills collects self-ratings. Skipping every skill is a valid answer
// and scores at the neutral baseline.
func askSkills() (map[string]int, error) {
	skills := make(map[string]int, len(assessment.SkillOptions))

	for _, option := range assessment.SkillOptions {
		skillPrompt := promptui.Select{
			Label: fmt.Sprintf("How confident are you in %s?", option.Label),
			Items: append(slices.Clone(ratingLabels), PromptSkip),
		}
		idx, selected, err := skillPrompt.Run()
		if err != nil {
			return nil, err
		}
		if selected == PromptSkip {
			continue
		}
		skills[option.ID] = idx + assessment.MinRating
	}

	return skills, nil
}

// askValues collects values in order of importance until the user is done.
func askValues() ([]string, error) {
	remaining := slices.Clone(assessment.ValueOptions)
	var ordered []string

	for len(remaining) > 0 {
		items := make([]string, 0, len(remaining)+1)
		for _, option := range remaining {
			items = append(items, option.Label)
		}
		if len(ordered) > 0 {
			items = append(items, PromptDone)
		}

		valuePrompt := promptui.Select{
			Label: fmt.Sprintf("Pick your #%d most important work value", len(ordered)+1),
			Items: items,
			Size:  len(items),
		}
		idx, selected, err := valuePrompt.Run()
		if err != nil {
			return nil, err
		}
		if selected == PromptDone {
			break
		}

		ordered = append(ordered, remaining[idx].ID)
		remaining = slices.Delete(remaining, idx, idx+1)
	}

	return ordered, nil
}
