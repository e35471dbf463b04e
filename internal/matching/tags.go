package matching

import (
	"strings"

	"github.com/spigell/career-compass/internal/assessment"
	"github.com/spigell/career-compass/internal/careers"
	"github.com/spigell/career-compass/internal/riasec"
)

var environmentValues = map[string][]string{
	"independent":   {"autonomy"},
	"remote":        {"autonomy", "work-life-balance"},
	"lab":           {"learning"},
	"team-based":    {"teamwork"},
	"fast-paced":    {"variety", "achievement"},
	"structured":    {"stability"},
	"studio":        {"creativity"},
	"client-facing": {"helping-others"},
	"field":         {"variety"},
	"outdoors":      {"variety"},
}

var typeValues = map[riasec.Dimension][]string{
	riasec.Realistic:     {"stability", "achievement"},
	riasec.Investigative: {"learning", "autonomy"},
	riasec.Artistic:      {"creativity", "autonomy"},
	riasec.Social:        {"helping-others", "teamwork"},
	riasec.Enterprising:  {"leadership", "income", "recognition"},
	riasec.Conventional:  {"stability", "work-life-balance"},
}

// ValueTags returns the work values a career offers. Explicit tags win;
// otherwise they are derived from the work environment and primary type.
func ValueTags(c careers.Record) []string {
	if len(c.Values) > 0 {
		explicit := make([]string, 0, len(c.Values))
		for _, v := range c.Values {
			explicit = append(explicit, assessment.NormalizeID(v))
		}
		return dedupe(explicit)
	}

	var tags []string
	for _, env := range c.WorkEnvironment {
		tags = append(tags, environmentValues[strings.ToLower(strings.TrimSpace(env))]...)
	}
	tags = append(tags, typeValues[c.PrimaryType]...)

	return dedupe(tags)
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, v := range in {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
