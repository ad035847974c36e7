package quality

import (
	"fmt"
	"strings"

	"datagate/domain/dataset"
)

// DuplicateKeyCheck measures how many rows repeat an already-seen key tuple
type DuplicateKeyCheck struct {
	thresholds Thresholds
}

// NewDuplicateKeyCheck creates the check with the given watermarks
func NewDuplicateKeyCheck(thresholds Thresholds) *DuplicateKeyCheck {
	return &DuplicateKeyCheck{thresholds: thresholds}
}

// Name returns the check identifier used in outcomes
func (c *DuplicateKeyCheck) Name() string {
	return "duplicate_keys"
}

// Check computes duplicate_fraction = (rows - distinct key tuples) / rows
// and classifies it. An empty KeySpec skips the check entirely.
func (c *DuplicateKeyCheck) Check(ds *dataset.Dataset, keys dataset.KeySpec) CheckOutcome {
	outcome := CheckOutcome{CheckName: c.Name(), Status: StatusPass}

	rows := ds.RowCount()
	if keys.IsEmpty() || rows == 0 {
		return outcome
	}

	seen := make(map[string]struct{}, rows)
	for i := 0; i < rows; i++ {
		seen[keyTuple(ds, keys, i)] = struct{}{}
	}

	fraction := float64(rows-len(seen)) / float64(rows)
	status := c.thresholds.Classify(fraction)
	if status == StatusPass {
		return outcome
	}

	outcome.Status = status
	outcome.Messages = append(outcome.Messages,
		fmt.Sprintf("key (%s) has %.1f%% duplicates", keys.String(), fraction*100))
	return outcome
}

// keyTuple renders row i's key columns as a single comparable string.
// The unit separator keeps composite keys unambiguous.
func keyTuple(ds *dataset.Dataset, keys dataset.KeySpec, i int) string {
	parts := make([]string, len(keys))
	for j, name := range keys {
		col, err := ds.Column(name)
		if err != nil {
			continue
		}
		parts[j] = col.Values[i]
	}
	return strings.Join(parts, "\x1f")
}
