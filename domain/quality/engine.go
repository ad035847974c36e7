package quality

import (
	"context"

	"golang.org/x/sync/errgroup"

	"datagate/domain/dataset"
)

// Checker is one independent, side-effect-free quality check
type Checker interface {
	Name() string
	Check(ds *dataset.Dataset, keys dataset.KeySpec) CheckOutcome
}

// EngineConfig carries the per-check watermarks
type EngineConfig struct {
	MissingValues Thresholds `json:"missing_values"`
	DuplicateKeys Thresholds `json:"duplicate_keys"`
	NullKeys      Thresholds `json:"null_keys"`
}

// DefaultEngineConfig returns the standard watermark placement for all checks
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MissingValues: DefaultThresholds(),
		DuplicateKeys: DefaultThresholds(),
		NullKeys:      DefaultThresholds(),
	}
}

// Validate checks every threshold pair
func (c EngineConfig) Validate() error {
	for _, t := range []Thresholds{c.MissingValues, c.DuplicateKeys, c.NullKeys} {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Engine orchestrates the quality checks and aggregates their outcomes
// into a single Verdict. Checks are independent and pure, so they run
// concurrently; outcomes are assembled in fixed order (missing values,
// duplicate keys, null keys) so a Verdict is reproducible for the same
// dataset and key spec.
type Engine struct {
	checks []Checker
}

// NewEngine creates an engine with the configured watermarks
func NewEngine(config EngineConfig) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		checks: []Checker{
			NewMissingValueCheck(config.MissingValues),
			NewDuplicateKeyCheck(config.DuplicateKeys),
			NewNullKeyCheck(config.NullKeys),
		},
	}, nil
}

// Run validates the key spec, executes every check and builds the Verdict.
// Quality problems are never returned as errors: STOP-level messages land
// in Verdict.Errors so the caller always receives a complete verdict. The
// returned error is reserved for caller misuse (bad KeySpec, cancellation).
func (e *Engine) Run(ctx context.Context, ds *dataset.Dataset, keys dataset.KeySpec, fixesApplied []string) (*Verdict, error) {
	if err := keys.Validate(ds); err != nil {
		return nil, err
	}

	outcomes := make([]CheckOutcome, len(e.checks))
	g, ctx := errgroup.WithContext(ctx)
	for i, check := range e.checks {
		i, check := i, check
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = check.Check(ds, keys)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return aggregate(outcomes, fixesApplied), nil
}

// aggregate folds the outcomes into a Verdict: status is the worst
// outcome status, STOP messages become errors, WARN messages become
// warnings, and prior fixes are copied through unchanged.
func aggregate(outcomes []CheckOutcome, fixesApplied []string) *Verdict {
	verdict := &Verdict{
		Status:       StatusPass,
		Errors:       []string{},
		Warnings:     []string{},
		FixesApplied: append([]string{}, fixesApplied...),
	}

	for _, outcome := range outcomes {
		verdict.Status = Worst(verdict.Status, outcome.Status)
		switch outcome.Status {
		case StatusStop:
			verdict.Errors = append(verdict.Errors, outcome.Messages...)
		case StatusWarn:
			verdict.Warnings = append(verdict.Warnings, outcome.Messages...)
		}
	}

	return verdict
}
