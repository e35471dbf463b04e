package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spigell/career-compass/internal/ai"
	"github.com/spigell/career-compass/internal/assessment"
	"github.com/spigell/career-compass/internal/matching"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// report is everything a results view needs.
type report struct {
	Profile  *assessment.Profile `json:"profile"`
	Weights  matching.Weights    `json:"weights"`
	Results  []matching.Result   `json:"results"`
	Insights *ai.Insights        `json:"insights,omitempty"`
}

func render(w io.Writer, format string, r *report) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", outputTable:
		return renderTable(w, r)
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	default:
		return fmt.Errorf("unknown output format %q (expected table or json)", format)
	}
}

func renderTable(w io.Writer, r *report) error {
	fmt.Fprintf(w, "%s results", r.Profile.Persona.Label())
	if r.Profile.Name != "" {
		fmt.Fprintf(w, " for %s", r.Profile.Name)
	}
	fmt.Fprintln(w)

	var top []string
	for _, t := range r.Profile.RIASEC.Top(3) {
		top = append(top, fmt.Sprintf("%s %g", t.Dimension.Title(), t.Score))
	}
	fmt.Fprintf(w, "Top RIASEC types: %s\n\n", strings.Join(top, ", "))

	if len(r.Results) == 0 {
		fmt.Fprintln(w, "No matching careers.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tCAREER\tSCORE\tRIASEC\tSKILLS\tVALUES\tMATCHED")
		for i, res := range r.Results {
			matched := append(append([]string{}, res.MatchedSkills...), res.MatchedValues...)
			fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%s\n",
				i+1, res.Career.Title, res.Score,
				res.Breakdown.RIASEC, res.Breakdown.Skills, res.Breakdown.Values,
				strings.Join(matched, ", "),
			)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if r.Insights != nil {
		renderInsights(w, r.Insights)
	}
	return nil
}

func renderInsights(w io.Writer, in *ai.Insights) {
	if len(in.Coaching) > 0 {
		fmt.Fprintln(w, "\nCoaching questions:")
		for i, q := range in.Coaching {
			fmt.Fprintf(w, "%d. [%s] %s\n   %s\n", i+1, q.Category, q.Question, q.Purpose)
			for _, f := range q.FollowUp {
				fmt.Fprintf(w, "   - %s\n", f)
			}
		}
	}

	if len(in.Reflection) > 0 {
		fmt.Fprintln(w, "\nReflection questions:")
		for i, q := range in.Reflection {
			fmt.Fprintf(w, "%d. [%s] %s\n   %s\n", i+1, q.Context, q.Question, q.Guidance)
		}
	}

	if len(in.Suggestions) > 0 {
		fmt.Fprintln(w, "\nSuggested career paths:")
		for _, s := range in.Suggestions {
			fmt.Fprintf(w, "- %s (%d%%): %s\n", s.Title, s.Match, s.Description)
			if len(s.NextSteps) > 0 {
				fmt.Fprintf(w, "  next steps: %s\n", strings.Join(s.NextSteps, "; "))
			}
		}
	}

	if in.Plan != nil {
		fmt.Fprintln(w, "\nDevelopment plan:")
		for _, section := range []struct {
			title string
			goals []ai.Goal
		}{{"Short term", in.Plan.ShortTerm}, {"Long term", in.Plan.LongTerm}} {
			for _, g := range section.goals {
				fmt.Fprintf(w, "- %s: %s (%s)\n", section.title, g.Goal, g.Timeline)
			}
		}
		if len(in.Plan.SkillGaps) > 0 {
			fmt.Fprintf(w, "Skill gaps: %s\n", strings.Join(in.Plan.SkillGaps, ", "))
		}
		if len(in.Plan.Resources) > 0 {
			fmt.Fprintf(w, "Resources: %s\n", strings.Join(in.Plan.Resources, ", "))
		}
	}
}
