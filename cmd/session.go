package cmd

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/spigell/career-compass/internal/assessment"
	"github.com/spigell/career-compass/internal/logger"
	"github.com/spigell/career-compass/internal/matching"
)

// session carries what a completed assessment needs to produce results.
type session struct {
	config *Config
	logger *zap.Logger
	opts   matching.Options
	ai     bool
	output string
	out    io.Writer
}

// deliver matches the profile against the effective dataset, asks the AI
// provider for persona insights when enabled, and renders everything.
func (s *session) deliver(ctx context.Context, profile *assessment.Profile) error {
	store, err := openStorage(s.config)
	if err != nil {
		return err
	}
	defer store.Close()

	snapshot, err := loadDataset(ctx, s.config, store, s.logger)
	if err != nil {
		return err
	}

	l := logger.WithFields(s.logger, logger.SessionFields(profile.ID, string(profile.Persona), snapshot.Source())...)

	matcher, err := matching.NewMatcher(s.opts, l)
	if err != nil {
		return err
	}

	results, err := matcher.Match(profile, snapshot)
	if err != nil {
		return err
	}
	l.Info("assessment matched", zap.Int("careers", snapshot.Len()), zap.Int("results", len(results)))

	r := &report{Profile: profile, Weights: matcher.Weights(), Results: results}

	if s.ai {
		service, err := newAIService(ctx, s.config.AI, store, l)
		if err != nil {
			return err
		}
		insights, err := service.ForPersona(ctx, profile, results)
		if err != nil {
			// Matching results stay useful without insights.
			l.Error("generating ai insights", zap.Error(err))
		} else {
			r.Insights = insights
		}
	}

	if err := render(s.out, s.output, r); err != nil {
		return fmt.Errorf("rendering results: %w", err)
	}
	return nil
}
