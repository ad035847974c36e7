package profiling

// NumericSummary holds the summary statistics of a numeric column
type NumericSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`

	// OutlierCount counts values outside the 1.5*IQR whiskers
	OutlierCount int `json:"outlier_count"`
	// TailShare is the expected share beyond 3 sigma under a fitted normal
	TailShare float64 `json:"tail_share"`
}

// ColumnProfile describes one column of the profiled dataset
type ColumnProfile struct {
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	RowCount      int             `json:"row_count"`
	MissingCount  int             `json:"missing_count"`
	DistinctCount int             `json:"distinct_count"`
	Numeric       *NumericSummary `json:"numeric,omitempty"`
}

// DatasetProfile is the output of the profiling phase. It records the
// sampling decision so consumers know whether counts are sample-relative.
type DatasetProfile struct {
	DatasetName      string          `json:"dataset_name"`
	Columns          []ColumnProfile `json:"columns"`
	ProfiledRowCount int             `json:"profiled_row_count"`
	OriginalRowCount int             `json:"original_row_count"`
	Sampled          bool            `json:"sampled"`
}
