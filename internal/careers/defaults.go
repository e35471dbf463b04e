package careers

import (
	_ "embed"
	"fmt"
)

//go:embed defaults.json
var defaultsJSON []byte

const DefaultSource = "built-in"

// Defaults returns the built-in catalogue. The embedded file is expected to
// be fully valid; any rejected record is reported as an error.
func Defaults() (*Snapshot, error) {
	result, err := ParseJSON(defaultsJSON)
	if err != nil {
		return nil, fmt.Errorf("built-in dataset: %w", err)
	}
	if result.Report.Rejected > 0 {
		return nil, fmt.Errorf("built-in dataset: %s", result.Report.Errors[0])
	}
	return result.Snapshot(DefaultSource), nil
}
