// Package ai turns a completed assessment into persona-specific guidance
// (coaching questions, reflection questions, career suggestions and a
// development plan) using a pluggable text generation backend.
package ai

import (
	"context"
	"errors"
)

// ErrGeneration wraps every failure reported by a Generator.
var ErrGeneration = errors.New("ai generation failed")

// Request is a single prompt sent to a backend.
type Request struct {
	System    string
	Prompt    string
	MaxTokens int
}

type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Name() string
}

type CoachingQuestion struct {
	Question string   `json:"question"`
	Category string   `json:"category"`
	Purpose  string   `json:"purpose"`
	FollowUp []string `json:"followUp,omitempty"`
}

type ReflectionQuestion struct {
	Question string `json:"question"`
	Context  string `json:"context"`
	Guidance string `json:"guidance"`
}

type CareerSuggestion struct {
	Title       string   `json:"title"`
	Match       int      `json:"match"`
	Description string   `json:"description"`
	Activities  []string `json:"activities,omitempty"`
	Development []string `json:"development,omitempty"`
	NextSteps   []string `json:"nextSteps,omitempty"`
}

type Goal struct {
	Goal     string   `json:"goal"`
	Actions  []string `json:"actions,omitempty"`
	Timeline string   `json:"timeline"`
}

type DevelopmentPlan struct {
	ShortTerm []Goal   `json:"shortTerm,omitempty"`
	LongTerm  []Goal   `json:"longTerm,omitempty"`
	SkillGaps []string `json:"skillGaps,omitempty"`
	Resources []string `json:"resources,omitempty"`
}

// Insights bundles whatever the profile's persona asks for. Fields that do
// not apply to the persona stay empty.
type Insights struct {
	Provider    string               `json:"provider"`
	Coaching    []CoachingQuestion   `json:"coaching,omitempty"`
	Reflection  []ReflectionQuestion `json:"reflection,omitempty"`
	Suggestions []CareerSuggestion   `json:"suggestions,omitempty"`
	Plan        *DevelopmentPlan     `json:"plan,omitempty"`
}
