package app

import (
	"context"

	"datagate/domain/core"
	"datagate/domain/dataset"
	"datagate/domain/quality"
	"datagate/internal"
	"datagate/internal/profiling"
)

// GateReport is the output of one gate run: the quality verdict, plus the
// statistical profile when the verdict allows the pipeline to continue.
// Every run gets its own RunID so downstream phases and logs can be
// correlated back to one gate decision.
type GateReport struct {
	RunID   core.RunID                `json:"run_id"`
	Verdict *quality.Verdict          `json:"verdict"`
	Profile *profiling.DatasetProfile `json:"profile,omitempty"`
}

// PipelineService runs the in-repo slice of the analysis pipeline: the
// quality gate, then profiling. Halt/continue policy stays with the
// external orchestrator; the service only reports what it found.
type PipelineService struct {
	engine   *quality.Engine
	profiler *profiling.Profiler
	logger   *internal.Logger
}

// NewPipelineService creates a pipeline service
func NewPipelineService(engine *quality.Engine, profiler *profiling.Profiler, logger *internal.Logger) *PipelineService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &PipelineService{engine: engine, profiler: profiler, logger: logger}
}

// RunGate executes quality control and, unless the verdict stops the
// pipeline, profiles the dataset. A STOP verdict is still returned
// without error: the caller decides what to do with it.
func (s *PipelineService) RunGate(ctx context.Context, ds *dataset.Dataset, keys dataset.KeySpec, fixesApplied []string) (*GateReport, error) {
	runID := core.NewRunID()
	verdict, err := s.engine.Run(ctx, ds, keys, fixesApplied)
	if err != nil {
		return nil, err
	}

	report := &GateReport{RunID: runID, Verdict: verdict}
	if verdict.Halts() {
		s.logger.Warn("quality gate run %s stopped dataset %q: %d error(s)",
			runID, ds.Name, len(verdict.Errors))
		return report, nil
	}

	profile, err := s.profiler.Profile(ds)
	if err != nil {
		return nil, err
	}
	report.Profile = profile

	s.logger.Info("quality gate run %s passed dataset %q with status %s (%d rows profiled)",
		runID, ds.Name, verdict.Status, profile.ProfiledRowCount)
	return report, nil
}
