package quality

import (
	"fmt"

	"datagate/domain/dataset"
)

// MissingValueCheck measures the missing-value rate of every column
type MissingValueCheck struct {
	thresholds Thresholds
}

// NewMissingValueCheck creates the check with the given watermarks
func NewMissingValueCheck(thresholds Thresholds) *MissingValueCheck {
	return &MissingValueCheck{thresholds: thresholds}
}

// Name returns the check identifier used in outcomes
func (c *MissingValueCheck) Name() string {
	return "missing_values"
}

// Check computes the missing fraction per column and classifies each
// against the watermarks. The outcome status is the worst across all
// columns. A zero-row dataset counts as 0% missing everywhere.
func (c *MissingValueCheck) Check(ds *dataset.Dataset, _ dataset.KeySpec) CheckOutcome {
	outcome := CheckOutcome{CheckName: c.Name(), Status: StatusPass}

	rows := ds.RowCount()
	if rows == 0 {
		return outcome
	}

	for _, col := range ds.Columns {
		missing := 0
		for _, v := range col.Values {
			if dataset.IsMissing(v) {
				missing++
			}
		}
		fraction := float64(missing) / float64(rows)
		status := c.thresholds.Classify(fraction)
		if status == StatusPass {
			continue
		}
		outcome.Status = Worst(outcome.Status, status)
		outcome.Messages = append(outcome.Messages,
			fmt.Sprintf("column %q has %.1f%% missing values", col.Name, fraction*100))
	}

	return outcome
}
