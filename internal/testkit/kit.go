package testkit

import (
	"fmt"

	"datagate/domain/dataset"
)

// NewDataset builds a dataset from column specs; every spec supplies its
// cells directly, so tests state their fixtures inline.
func NewDataset(name string, cols ...dataset.Column) *dataset.Dataset {
	return dataset.New(name, cols)
}

// NumericColumn builds a numeric column from float cells
func NumericColumn(name string, values ...float64) dataset.Column {
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = fmt.Sprintf("%g", v)
	}
	return dataset.Column{Name: name, Type: dataset.TypeNumeric, Values: cells}
}

// CategoricalColumn builds a categorical column from string cells
func CategoricalColumn(name string, values ...string) dataset.Column {
	return dataset.Column{Name: name, Type: dataset.TypeCategorical, Values: values}
}

// TextColumn builds a free-text column from string cells
func TextColumn(name string, values ...string) dataset.Column {
	return dataset.Column{Name: name, Type: dataset.TypeFreeText, Values: values}
}

// SequentialDataset builds a dataset with the given row count: an "id"
// column of unique keys and a numeric "value" column. Used by sampler
// and profiler tests that need bulk rows.
func SequentialDataset(name string, rows int) *dataset.Dataset {
	ids := make([]string, rows)
	values := make([]string, rows)
	for i := 0; i < rows; i++ {
		ids[i] = fmt.Sprintf("id-%06d", i)
		values[i] = fmt.Sprintf("%d", i)
	}
	return dataset.New(name, []dataset.Column{
		{Name: "id", Type: dataset.TypeCategorical, Values: ids},
		{Name: "value", Type: dataset.TypeNumeric, Values: values},
	})
}
