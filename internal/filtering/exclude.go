package filtering

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spigell/career-compass/internal/careers"
)

type excludedCareersFilter struct {
	ids map[string]bool
}

// NewExcludedCareers creates a filter that removes careers listed in the config.
func NewExcludedCareers(ids []string) Filter {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = true
		}
	}
	return &excludedCareersFilter{ids: set}
}

func (f *excludedCareersFilter) Name() string { return "excluded_careers" }

func (f *excludedCareersFilter) Apply(_ context.Context, records []careers.Record) ([]careers.Record, Step, error) {
	initial := len(records)
	kept, dropped := exclude(records, f.ids)
	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}

type excludeFileFilter struct {
	path string
}

// NewExcludeFile creates a filter that removes careers whose ids are listed in
// a file, one per line. Blank lines and lines starting with # are ignored.
func NewExcludeFile(path string) Filter {
	return &excludeFileFilter{path: strings.TrimSpace(path)}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Apply(_ context.Context, records []careers.Record) ([]careers.Record, Step, error) {
	initial := len(records)
	if f.path == "" {
		return records, Step{Initial: initial, Left: initial}, nil
	}

	ids, err := readIDs(f.path)
	if err != nil {
		return records, Step{}, fmt.Errorf("getting excluded careers from file: %w", err)
	}

	kept, dropped := exclude(records, ids)
	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}

func readIDs(path string) (map[string]bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ids := make(map[string]bool)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids[line] = true
	}
	return ids, scanner.Err()
}
