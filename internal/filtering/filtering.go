// Package filtering narrows the career dataset before matching.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/career-compass/internal/careers"
)

// Filter represents a single filtering step applied to career records.
type Filter interface {
	Name() string
	Apply(ctx context.Context, records []careers.Record) ([]careers.Record, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Run executes the supplied filters sequentially and returns a snapshot with
// the remaining records. The input snapshot is left untouched.
func Run(ctx context.Context, logger *zap.Logger, steps []Filter, snapshot *careers.Snapshot) (*careers.Snapshot, error) {
	if len(steps) == 0 {
		return snapshot, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	records := snapshot.All()
	for _, step := range steps {
		next, info, err := step.Apply(ctx, records)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		records = next
	}

	return careers.NewSnapshot(snapshot.Source(), records), nil
}

func exclude(records []careers.Record, ids map[string]bool) ([]careers.Record, []string) {
	kept := records[:0:0]
	var dropped []string
	for _, r := range records {
		if ids[r.ID] {
			dropped = append(dropped, r.ID)
			continue
		}
		kept = append(kept, r)
	}
	return kept, dropped
}
