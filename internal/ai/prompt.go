package ai

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/spigell/career-compass/internal/assessment"
	"github.com/spigell/career-compass/internal/matching"
)

//go:embed prompts/*.md
var prompts embed.FS

const (
	topTypes        = 3
	topSkills       = 5
	topValues       = 5
	matchesInPrompt = 6
)

const (
	systemCoaching   = "You are an expert career coach specialising in RIASEC assessments. Generate thoughtful, personalised coaching questions that help people explore their career paths based on their RIASEC profile, skills and work values."
	systemReflection = "You are an expert in organisational psychology and team management. Generate reflection questions managers can use to support their team members' development based on RIASEC profiles."
	systemCareers    = "You are a career counsellor with expertise in RIASEC theory and career development. Provide detailed, personalised career recommendations based on the person's RIASEC profile, skills and work values."
	systemPlan       = "You are a career development specialist. Create actionable development plans that help people grow their careers based on their RIASEC profile and current skill levels."
)

type profileView struct {
	// zero limits mean no limit
	skillLimit int
	valueLimit int
}

func renderPrompt(name string, profile *assessment.Profile, view profileView, matches []matching.Result) (string, error) {
	data, err := prompts.ReadFile("prompts/" + name + ".md")
	if err != nil {
		return "", fmt.Errorf("read prompt %s: %w", name, err)
	}

	prompt := strings.ReplaceAll(string(data), "{{PROFILE}}", describeProfile(profile, view))
	prompt = strings.ReplaceAll(prompt, "{{MATCHES}}", describeMatches(matches))
	return strings.TrimSpace(prompt), nil
}

func describeProfile(p *assessment.Profile, view profileView) string {
	var b strings.Builder

	b.WriteString("RIASEC Scores:\n")
	for _, r := range p.RIASEC.Top(topTypes) {
		fmt.Fprintf(&b, "- %s: %g\n", r.Dimension.Title(), r.Score)
	}

	b.WriteString("\nSkills (confidence 1-5):\n")
	skills := rankedSkills(p.Skills)
	if view.skillLimit > 0 && len(skills) > view.skillLimit {
		skills = skills[:view.skillLimit]
	}
	if len(skills) == 0 {
		b.WriteString("- not rated\n")
	}
	for _, s := range skills {
		fmt.Fprintf(&b, "- %s: %d/5\n", s, p.Skills[s])
	}

	b.WriteString("\nWork Values (most important first):\n")
	values := p.Values
	if view.valueLimit > 0 && len(values) > view.valueLimit {
		values = values[:view.valueLimit]
	}
	if len(values) == 0 {
		b.WriteString("- not ranked\n")
	}
	for _, v := range values {
		fmt.Fprintf(&b, "- %s\n", v)
	}

	return strings.TrimRight(b.String(), "\n")
}

// rankedSkills orders skills by rating, strongest first, then by name.
func rankedSkills(skills assessment.Skills) []string {
	names := make([]string, 0, len(skills))
	for name := range skills {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if skills[names[i]] != skills[names[j]] {
			return skills[names[i]] > skills[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

func describeMatches(matches []matching.Result) string {
	if len(matches) == 0 {
		return ""
	}
	if len(matches) > matchesInPrompt {
		matches = matches[:matchesInPrompt]
	}

	var b strings.Builder
	b.WriteString("Careers already ranked for this profile (score out of 100):\n")
	for _, m := range matches {
		fmt.Fprintf(&b, "- %s: %.2f\n", m.Career.Title, m.Score)
	}
	return strings.TrimRight(b.String(), "\n")
}
