package matching

import (
	"github.com/spigell/career-compass/internal/assessment"
	"github.com/spigell/career-compass/internal/careers"
	"github.com/spigell/career-compass/internal/riasec"
)

const (
	// NeutralScore is credited when there is no evidence either way.
	NeutralScore = 50.0
	// neutralRating stands in for a required skill the user did not rate.
	neutralRating = 3
	// matchedRating is the lowest rating reported as a matched skill.
	matchedRating = 4
)

// riasecAffinity weighs the primary type twice as much as the secondary.
func riasecAffinity(scores riasec.Scores, c careers.Record) float64 {
	if !c.PrimaryType.Valid() {
		return 0
	}
	primary := scores.Normalized(c.PrimaryType)
	if !c.HasSecondary() {
		return primary * 100
	}
	return (2*primary + scores.Normalized(c.SecondaryType)) / 3 * 100
}

func skillCoverage(skills assessment.Skills, c careers.Record) (float64, []string) {
	if len(skills) == 0 || len(c.RequiredSkills) == 0 {
		return NeutralScore, nil
	}

	var (
		total   float64
		matched []string
	)
	for _, skill := range c.RequiredSkills {
		rating, ok := skills[assessment.NormalizeID(skill)]
		if !ok {
			rating = neutralRating
		}
		rating = min(max(rating, assessment.MinRating), assessment.MaxRating)
		total += float64(rating-assessment.MinRating) / float64(assessment.MaxRating-assessment.MinRating)
		if ok && rating >= matchedRating {
			matched = append(matched, skill)
		}
	}

	return total / float64(len(c.RequiredSkills)) * 100, matched
}

// valueAlignment credits each user value found in the career's tags with
// 1/(rank+1), normalised by the best credit the tag count allows.
func valueAlignment(values assessment.Values, c careers.Record) (float64, []string) {
	tags := ValueTags(c)
	if len(values) == 0 || len(tags) == 0 {
		return NeutralScore, nil
	}

	offered := make(map[string]bool, len(tags))
	for _, t := range tags {
		offered[t] = true
	}

	var (
		credit  float64
		matched []string
	)
	for i, v := range values {
		if offered[assessment.NormalizeID(v)] {
			credit += rankWeight(i)
			matched = append(matched, v)
		}
	}

	var best float64
	for i := 0; i < min(len(tags), len(values)); i++ {
		best += rankWeight(i)
	}

	return min(credit/best, 1) * 100, matched
}

func rankWeight(rank int) float64 {
	return 1 / float64(rank+1)
}
