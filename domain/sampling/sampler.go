package sampling

import (
	"math/rand"
	"sort"

	"datagate/domain/dataset"
)

// Policy defaults: profiling cost is bounded at 50k rows.
const (
	DefaultRowThreshold = 50_000
	DefaultSampleSize   = 50_000
	DefaultSeed         = 42
)

// SampleResult records the sampling decision alongside the (possibly
// reduced) dataset handed to the profiling phase.
type SampleResult struct {
	Sample           *dataset.Dataset `json:"sample"`
	OriginalRowCount int              `json:"original_row_count"`
	Sampled          bool             `json:"sampled"`
}

// Sampler draws a fixed-size uniform sample from datasets that exceed
// the row threshold. The seed is fixed at construction so the same
// input always yields the same sample.
type Sampler struct {
	rowThreshold int
	sampleSize   int
	seed         int64
}

// NewSampler creates a sampler with explicit policy values
func NewSampler(rowThreshold, sampleSize int, seed int64) *Sampler {
	return &Sampler{rowThreshold: rowThreshold, sampleSize: sampleSize, seed: seed}
}

// NewDefaultSampler creates a sampler with the standard policy
func NewDefaultSampler() *Sampler {
	return NewSampler(DefaultRowThreshold, DefaultSampleSize, DefaultSeed)
}

// Sample returns the dataset unchanged when it is at or below the
// threshold. Above it, exactly sampleSize rows are drawn uniformly
// without replacement, capped at the dataset's row count; selected rows
// keep their original relative order.
func (s *Sampler) Sample(ds *dataset.Dataset) SampleResult {
	rows := ds.RowCount()
	if rows <= s.rowThreshold {
		return SampleResult{Sample: ds, OriginalRowCount: rows, Sampled: false}
	}

	size := s.sampleSize
	if size > rows {
		size = rows
	}

	rng := rand.New(rand.NewSource(s.seed))
	indices := make([]int, rows)
	for i := range indices {
		indices[i] = i
	}
	// Partial Fisher-Yates: only the first size slots are needed
	for i := 0; i < size; i++ {
		j := i + rng.Intn(rows-i)
		indices[i], indices[j] = indices[j], indices[i]
	}
	selected := indices[:size]
	sort.Ints(selected)

	return SampleResult{
		Sample:           ds.Select(selected),
		OriginalRowCount: rows,
		Sampled:          true,
	}
}
