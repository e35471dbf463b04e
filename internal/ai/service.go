package ai

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/career-compass/internal/assessment"
	"github.com/spigell/career-compass/internal/logger"
	"github.com/spigell/career-compass/internal/matching"
)

const (
	defaultMaxLogLength = 200

	questionTokens = 1500
	planTokens     = 2000
)

// Service builds persona-specific guidance on top of a Generator.
type Service struct {
	generator Generator
	logger    *zap.Logger
	maxLogLen int
}

func NewService(generator Generator, log *zap.Logger, maxLogLength int) *Service {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Service{
		generator: generator,
		logger:    logger.WithFields(log, zap.String("generator", generator.Name())),
		maxLogLen: maxLogLength,
	}
}

func (s *Service) CoachingQuestions(ctx context.Context, profile *assessment.Profile) ([]CoachingQuestion, error) {
	raw, err := s.run(ctx, "coaching", systemCoaching, profile, profileView{skillLimit: topSkills, valueLimit: topValues}, nil, questionTokens)
	if err != nil {
		return nil, err
	}
	return ParseCoachingQuestions(raw), nil
}

func (s *Service) ReflectionQuestions(ctx context.Context, profile *assessment.Profile) ([]ReflectionQuestion, error) {
	raw, err := s.run(ctx, "reflection", systemReflection, profile, profileView{skillLimit: topSkills, valueLimit: topValues}, nil, questionTokens)
	if err != nil {
		return nil, err
	}
	return ParseReflectionQuestions(raw), nil
}

func (s *Service) CareerSuggestions(ctx context.Context, profile *assessment.Profile, matches []matching.Result) ([]CareerSuggestion, error) {
	raw, err := s.run(ctx, "careers", systemCareers, profile, profileView{}, matches, planTokens)
	if err != nil {
		return nil, err
	}
	return ParseCareerSuggestions(raw), nil
}

func (s *Service) DevelopmentPlan(ctx context.Context, profile *assessment.Profile, matches []matching.Result) (*DevelopmentPlan, error) {
	raw, err := s.run(ctx, "plan", systemPlan, profile, profileView{}, matches, planTokens)
	if err != nil {
		return nil, err
	}
	return ParseDevelopmentPlan(raw), nil
}

// ForPersona runs the operations the profile's persona needs concurrently.
func (s *Service) ForPersona(ctx context.Context, profile *assessment.Profile, matches []matching.Result) (*Insights, error) {
	if profile == nil {
		return nil, errors.New("profile is required")
	}

	insights := &Insights{Provider: s.generator.Name()}
	g, ctx := errgroup.WithContext(ctx)

	switch profile.Persona {
	case assessment.PersonaCoach:
		g.Go(func() (err error) {
			insights.Coaching, err = s.CoachingQuestions(ctx, profile)
			return err
		})
	case assessment.PersonaManager:
		g.Go(func() (err error) {
			insights.Reflection, err = s.ReflectionQuestions(ctx, profile)
			return err
		})
	default:
		g.Go(func() (err error) {
			insights.Suggestions, err = s.CareerSuggestions(ctx, profile, matches)
			return err
		})
		g.Go(func() (err error) {
			insights.Plan, err = s.DevelopmentPlan(ctx, profile, matches)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return insights, nil
}

func (s *Service) run(ctx context.Context, op, system string, profile *assessment.Profile, view profileView, matches []matching.Result, maxTokens int) (string, error) {
	if profile == nil {
		return "", errors.New("profile is required")
	}

	prompt, err := renderPrompt(op, profile, view, matches)
	if err != nil {
		return "", err
	}

	s.logger.Debug("ai generate request",
		zap.String("operation", op),
		zap.String("profile_id", profile.ID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.generator.Generate(ctx, Request{System: system, Prompt: prompt, MaxTokens: maxTokens})
	if err != nil {
		return "", fmt.Errorf("%w: %s via %s: %w", ErrGeneration, op, s.generator.Name(), err)
	}

	s.logger.Debug("ai generate response",
		zap.String("operation", op),
		zap.String("profile_id", profile.ID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
	)

	return raw, nil
}
