// Package careers holds the reference dataset of career records, its
// ingestion from uploaded files and the atomically published snapshot that
// the matcher reads from.
package careers

import (
	"github.com/spigell/career-compass/internal/riasec"
)

// Record is a single career entry. Records are treated as immutable once
// they are part of a Snapshot.
type Record struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description,omitempty"`
	PrimaryType     riasec.Dimension `json:"primaryType,omitempty"`
	SecondaryType   riasec.Dimension `json:"secondaryType,omitempty"`
	RequiredSkills  []string         `json:"requiredSkills,omitempty"`
	WorkEnvironment []string         `json:"workEnvironment,omitempty"`
	// Values are explicit work-value tags. When empty the matcher derives
	// tags from WorkEnvironment and PrimaryType.
	Values        []string `json:"values,omitempty"`
	SalaryRange   string   `json:"salaryRange,omitempty"`
	GrowthOutlook string   `json:"growthOutlook,omitempty"`
	Education     string   `json:"education,omitempty"`
}

// HasSecondary reports whether the record carries a secondary RIASEC type.
func (r Record) HasSecondary() bool {
	return r.SecondaryType != ""
}

func (r Record) clone() Record {
	r.RequiredSkills = append([]string(nil), r.RequiredSkills...)
	r.WorkEnvironment = append([]string(nil), r.WorkEnvironment...)
	r.Values = append([]string(nil), r.Values...)
	return r
}
