package quality

import (
	"fmt"

	"datagate/domain/dataset"
)

// NullKeyCheck measures the share of rows whose key columns hold missing values
type NullKeyCheck struct {
	thresholds Thresholds
}

// NewNullKeyCheck creates the check with the given watermarks
func NewNullKeyCheck(thresholds Thresholds) *NullKeyCheck {
	return &NullKeyCheck{thresholds: thresholds}
}

// Name returns the check identifier used in outcomes
func (c *NullKeyCheck) Name() string {
	return "null_keys"
}

// Check computes null_key_fraction = (rows with any missing key cell) / rows
// and classifies it. An empty KeySpec skips the check entirely.
func (c *NullKeyCheck) Check(ds *dataset.Dataset, keys dataset.KeySpec) CheckOutcome {
	outcome := CheckOutcome{CheckName: c.Name(), Status: StatusPass}

	rows := ds.RowCount()
	if keys.IsEmpty() || rows == 0 {
		return outcome
	}

	nullRows := 0
	for i := 0; i < rows; i++ {
		for _, name := range keys {
			col, err := ds.Column(name)
			if err != nil {
				continue
			}
			if dataset.IsMissing(col.Values[i]) {
				nullRows++
				break
			}
		}
	}

	fraction := float64(nullRows) / float64(rows)
	status := c.thresholds.Classify(fraction)
	if status == StatusPass {
		return outcome
	}

	outcome.Status = status
	outcome.Messages = append(outcome.Messages,
		fmt.Sprintf("key (%s) has %.1f%% nulls", keys.String(), fraction*100))
	return outcome
}
