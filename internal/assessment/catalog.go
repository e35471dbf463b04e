package assessment

// Option is a selectable item offered by the skills and values stages.
type Option struct {
	ID    string
	Label string
}

// SkillOptions are the skills rated in the skills stage. Identifiers match
// the requiredSkills used by the built-in career dataset.
var SkillOptions = []Option{
	{ID: "communication", Label: "Communication"},
	{ID: "problem-solving", Label: "Problem solving"},
	{ID: "data-analysis", Label: "Data analysis"},
	{ID: "technical", Label: "Technical / computer skills"},
	{ID: "creativity", Label: "Creativity"},
	{ID: "design", Label: "Visual design"},
	{ID: "writing", Label: "Writing"},
	{ID: "research", Label: "Research"},
	{ID: "leadership", Label: "Leadership"},
	{ID: "negotiation", Label: "Negotiation and persuasion"},
	{ID: "teaching", Label: "Teaching and mentoring"},
	{ID: "teamwork", Label: "Teamwork"},
	{ID: "organization", Label: "Planning and organisation"},
	{ID: "attention-to-detail", Label: "Attention to detail"},
	{ID: "mechanical", Label: "Mechanical / hands-on work"},
}

// ValueOptions are the work values ranked in the values stage.
var ValueOptions = []Option{
	{ID: "autonomy", Label: "Autonomy and independence"},
	{ID: "learning", Label: "Continuous learning"},
	{ID: "creativity", Label: "Creative expression"},
	{ID: "helping-others", Label: "Helping others"},
	{ID: "stability", Label: "Job security and stability"},
	{ID: "achievement", Label: "Achievement"},
	{ID: "leadership", Label: "Leading and influencing"},
	{ID: "recognition", Label: "Recognition"},
	{ID: "income", Label: "High income"},
	{ID: "variety", Label: "Variety and challenge"},
	{ID: "teamwork", Label: "Working with a team"},
	{ID: "work-life-balance", Label: "Work-life balance"},
}
