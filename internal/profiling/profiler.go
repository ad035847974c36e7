package profiling

import (
	"strconv"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"datagate/domain/dataset"
	"datagate/domain/sampling"
)

// Profiler computes per-column statistical profiles over a dataset,
// sampling it first when it exceeds the configured row threshold.
type Profiler struct {
	sampler *sampling.Sampler
}

// NewProfiler creates a profiler backed by the given sampler
func NewProfiler(sampler *sampling.Sampler) *Profiler {
	return &Profiler{sampler: sampler}
}

// Profile samples the dataset when needed and profiles every column
func (p *Profiler) Profile(ds *dataset.Dataset) (*DatasetProfile, error) {
	result := p.sampler.Sample(ds)

	profile := &DatasetProfile{
		DatasetName:      ds.Name,
		Columns:          make([]ColumnProfile, 0, len(ds.Columns)),
		ProfiledRowCount: result.Sample.RowCount(),
		OriginalRowCount: result.OriginalRowCount,
		Sampled:          result.Sampled,
	}

	for _, col := range result.Sample.Columns {
		colProfile, err := profileColumn(col)
		if err != nil {
			return nil, err
		}
		profile.Columns = append(profile.Columns, colProfile)
	}
	return profile, nil
}

func profileColumn(col dataset.Column) (ColumnProfile, error) {
	profile := ColumnProfile{
		Name:     col.Name,
		Type:     string(col.Type),
		RowCount: len(col.Values),
	}

	distinct := make(map[string]struct{})
	var numeric []float64
	for _, v := range col.Values {
		if dataset.IsMissing(v) {
			profile.MissingCount++
			continue
		}
		distinct[v] = struct{}{}
		if col.Type == dataset.TypeNumeric {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				numeric = append(numeric, f)
			}
		}
	}
	profile.DistinctCount = len(distinct)

	if col.Type == dataset.TypeNumeric && len(numeric) > 1 {
		summary, err := summarize(numeric)
		if err != nil {
			return profile, err
		}
		profile.Numeric = summary
	}
	return profile, nil
}

// summarize computes the numeric summary of non-missing values
func summarize(values []float64) (*NumericSummary, error) {
	summary := &NumericSummary{}
	var err error

	if summary.Mean, err = stats.Mean(values); err != nil {
		return nil, err
	}
	if summary.Median, err = stats.Median(values); err != nil {
		return nil, err
	}
	if summary.StdDev, err = stats.StandardDeviation(values); err != nil {
		return nil, err
	}
	if summary.Min, err = stats.Min(values); err != nil {
		return nil, err
	}
	if summary.Max, err = stats.Max(values); err != nil {
		return nil, err
	}
	if summary.Q25, err = stats.Percentile(values, 25); err != nil {
		return nil, err
	}
	if summary.Q75, err = stats.Percentile(values, 75); err != nil {
		return nil, err
	}

	iqr := summary.Q75 - summary.Q25
	lower := summary.Q25 - 1.5*iqr
	upper := summary.Q75 + 1.5*iqr
	for _, v := range values {
		if v < lower || v > upper {
			summary.OutlierCount++
		}
	}

	// Expected tail mass beyond 3 sigma under a normal fitted to the column
	if summary.StdDev > 0 {
		normal := distuv.Normal{Mu: summary.Mean, Sigma: summary.StdDev}
		upper3 := summary.Mean + 3*summary.StdDev
		lower3 := summary.Mean - 3*summary.StdDev
		summary.TailShare = normal.CDF(lower3) + (1 - normal.CDF(upper3))
	}

	return summary, nil
}
