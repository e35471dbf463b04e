package assessment

import (
	"fmt"
	"strings"
)

// Persona selects which results view consumes a completed profile.
type Persona string

const (
	PersonaIndividual Persona = "individual"
	PersonaCoach      Persona = "coach"
	PersonaManager    Persona = "manager"
)

func Personas() []Persona {
	return []Persona{PersonaIndividual, PersonaCoach, PersonaManager}
}

func ParsePersona(s string) (Persona, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PersonaIndividual, nil
	}
	for _, p := range Personas() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown persona %q (expected individual, coach or manager)", s)
}

// Label is the display title used by the wizard.
func (p Persona) Label() string {
	switch p {
	case PersonaCoach:
		return "Career Coach/Adviser"
	case PersonaManager:
		return "Supervisor/Line Manager"
	default:
		return "Individual Career Explorer"
	}
}
