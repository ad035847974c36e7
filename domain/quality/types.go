package quality

import (
	"datagate/domain/core"
)

// Thresholds holds the low/high watermark fractions for one check.
// A fraction below the low watermark raises no issue, a fraction in
// [low, high) warns, and a fraction at or above the high watermark stops.
type Thresholds struct {
	LowWatermark  float64 `json:"low_watermark"`
	HighWatermark float64 `json:"high_watermark"`
}

// DefaultThresholds keep 20% below the STOP boundary and stop at 40%.
func DefaultThresholds() Thresholds {
	return Thresholds{LowWatermark: 0.20, HighWatermark: 0.40}
}

// Validate checks the watermark ordering
func (t Thresholds) Validate() error {
	if t.LowWatermark < 0 || t.HighWatermark > 1 || t.LowWatermark >= t.HighWatermark {
		return core.ErrInvalidThresholds
	}
	return nil
}

// Classify maps an observed fraction onto a severity
func (t Thresholds) Classify(fraction float64) Status {
	switch {
	case fraction >= t.HighWatermark:
		return StatusStop
	case fraction >= t.LowWatermark:
		return StatusWarn
	default:
		return StatusPass
	}
}

// CheckOutcome is the immutable result of one check invocation
type CheckOutcome struct {
	CheckName string   `json:"check_name"`
	Status    Status   `json:"status"`
	Messages  []string `json:"messages,omitempty"`
}

// Verdict is the aggregated result of a quality-control run. Status is
// derived from the collected outcomes, never set directly: errors carry
// only STOP-level messages and warnings only WARN-level messages.
type Verdict struct {
	Status       Status   `json:"status"`
	Errors       []string `json:"errors"`
	Warnings     []string `json:"warnings"`
	FixesApplied []string `json:"fixes_applied"`
}

// Halts reports whether the pipeline must stop on this verdict
func (v *Verdict) Halts() bool {
	return v.Status == StatusStop
}

// Clean reports whether the run raised no issue at all
func (v *Verdict) Clean() bool {
	return v.Status == StatusPass && len(v.Errors) == 0 && len(v.Warnings) == 0
}
