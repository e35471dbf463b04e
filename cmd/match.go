package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-compass/internal/assessment"
	"github.com/spigell/career-compass/internal/matching"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match a completed assessment from an answers file against the career dataset",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("answers", "a", "", "answers file (yaml or json) with persona, riasec, skills and values")
	matchCmd.MarkFlagRequired("answers")
	addResultFlags(matchCmd)
}

// addResultFlags registers the flags shared by every command that ends in
// a results view.
func addResultFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("top", "n", 0, "number of careers to show (default from matching.top-n)")
	cmd.Flags().String("weights", "", "override weights, e.g. riasec=0.6,skills=0.2,values=0.2")
	cmd.Flags().Float64("min-score", -1, "drop careers scoring below this (default from matching.min-score)")
	cmd.Flags().StringP("output", "o", outputTable, "output format: table or json")
	cmd.Flags().Bool("ai", false, "ask the configured ai provider for persona insights")
}

// newSession merges the result flags over the configured matching options.
func newSession(cmd *cobra.Command, config *Config, l *zap.Logger) *session {
	opts := config.Matching

	if top, _ := cmd.Flags().GetInt("top"); top > 0 {
		opts.TopN = top
	}
	if minScore, _ := cmd.Flags().GetFloat64("min-score"); minScore >= 0 {
		opts.MinScore = minScore
	}
	if raw, _ := cmd.Flags().GetString("weights"); raw != "" {
		base := opts.Weights
		if base.IsZero() {
			base = matching.DefaultWeights()
		}
		weights, err := matching.ParseWeights(raw, base)
		if err != nil {
			l.Fatal("parsing --weights", zap.Error(err))
		}
		opts.Weights = weights
	}

	enableAI, _ := cmd.Flags().GetBool("ai")
	if !cmd.Flags().Changed("ai") && config.AI != nil {
		enableAI = config.AI.Enabled
	}
	output, _ := cmd.Flags().GetString("output")

	return &session{
		config: config,
		logger: l,
		opts:   opts,
		ai:     enableAI,
		output: output,
		out:    os.Stdout,
	}
}

func match(cmd *cobra.Command) {
	ctx := context.Background()

	logger := newLogger()
	config := mustConfig(logger)

	path, _ := cmd.Flags().GetString("answers")

	answers, err := assessment.LoadAnswers(path)
	if err != nil {
		logger.Fatal("loading answers", zap.Error(err))
	}

	profile, err := answers.Profile()
	if err != nil {
		logger.Fatal("building a profile", zap.Error(err))
	}

	if err := newSession(cmd, config, logger).deliver(ctx, profile); err != nil {
		logger.Fatal("matching careers", zap.Error(err))
	}
}
