package ai

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	categoryRe    = fieldRe("CATEGORY")
	purposeRe     = fieldRe("PURPOSE")
	followUpRe    = fieldRe("FOLLOW-UP")
	contextRe     = fieldRe("CONTEXT")
	guidanceRe    = fieldRe("GUIDANCE")
	matchRe       = regexp.MustCompile(`MATCH:\s*(\d+)`)
	descriptionRe = fieldRe("DESCRIPTION")
	activitiesRe  = fieldRe("ACTIVITIES")
	developmentRe = fieldRe("DEVELOPMENT")
	nextStepsRe   = fieldRe("NEXT_STEPS")
	skillGapsRe   = fieldRe("SKILL_GAPS")
	resourcesRe   = fieldRe("RESOURCES")
	goalRe        = regexp.MustCompile(`GOAL:\s*(.+?)\s*\|\s*ACTIONS:\s*(.+?)\s*\|\s*TIMELINE:\s*(.+)`)
)

func fieldRe(label string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(label) + `:\s*(.+)`)
}

// ParseCoachingQuestions reads QUESTION/CATEGORY/PURPOSE/FOLLOW-UP blocks.
// Blocks without a category or purpose are skipped.
func ParseCoachingQuestions(response string) []CoachingQuestion {
	var out []CoachingQuestion
	for _, section := range sections(response, "QUESTION:") {
		question := firstLine(section)
		category := capture(categoryRe, section)
		purpose := capture(purposeRe, section)
		if question == "" || category == "" || purpose == "" {
			continue
		}
		out = append(out, CoachingQuestion{
			Question: question,
			Category: category,
			Purpose:  purpose,
			FollowUp: splitList(capture(followUpRe, section)),
		})
	}
	return out
}

func ParseReflectionQuestions(response string) []ReflectionQuestion {
	var out []ReflectionQuestion
	for _, section := range sections(response, "QUESTION:") {
		question := firstLine(section)
		context := capture(contextRe, section)
		guidance := capture(guidanceRe, section)
		if question == "" || context == "" || guidance == "" {
			continue
		}
		out = append(out, ReflectionQuestion{Question: question, Context: context, Guidance: guidance})
	}
	return out
}

func ParseCareerSuggestions(response string) []CareerSuggestion {
	var out []CareerSuggestion
	for _, section := range sections(response, "TITLE:") {
		title := firstLine(section)
		match := capture(matchRe, section)
		description := capture(descriptionRe, section)
		if title == "" || match == "" || description == "" {
			continue
		}
		score, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		out = append(out, CareerSuggestion{
			Title:       title,
			Match:       min(score, 100),
			Description: description,
			Activities:  splitList(capture(activitiesRe, section)),
			Development: splitList(capture(developmentRe, section)),
			NextSteps:   splitList(capture(nextStepsRe, section)),
		})
	}
	return out
}

func ParseDevelopmentPlan(response string) *DevelopmentPlan {
	response = clean(response)
	plan := &DevelopmentPlan{
		SkillGaps: splitList(capture(skillGapsRe, response)),
		Resources: splitList(capture(resourcesRe, response)),
	}

	shortStart := strings.Index(response, "SHORT_TERM_GOALS")
	longStart := strings.Index(response, "LONG_TERM_GOALS")
	gapsStart := strings.Index(response, "SKILL_GAPS")

	if shortStart >= 0 {
		end := len(response)
		if longStart > shortStart {
			end = longStart
		}
		plan.ShortTerm = parseGoals(response[shortStart:end])
	}
	if longStart >= 0 {
		end := len(response)
		if gapsStart > longStart {
			end = gapsStart
		}
		plan.LongTerm = parseGoals(response[longStart:end])
	}

	return plan
}

func parseGoals(text string) []Goal {
	var goals []Goal
	for _, m := range goalRe.FindAllStringSubmatch(text, -1) {
		goals = append(goals, Goal{
			Goal:     strings.TrimSpace(m[1]),
			Actions:  splitList(m[2]),
			Timeline: strings.Trim(strings.TrimSpace(m[3]), "[]"),
		})
	}
	return goals
}

// sections splits response on marker, dropping the preamble before the first
// marker.
func sections(response, marker string) []string {
	parts := strings.Split(clean(response), marker)
	if len(parts) < 2 {
		return nil
	}
	out := make([]string, 0, len(parts)-1)
	for _, p := range parts[1:] {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// clean drops markdown emphasis models like to wrap labels in.
func clean(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "**", "")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(line)
}

func capture(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(s, "|") {
		item = strings.Trim(strings.TrimSpace(item), "[]")
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
