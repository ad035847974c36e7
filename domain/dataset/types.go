package dataset

import (
	"strings"

	"datagate/domain/core"
)

// ColumnType classifies the semantic type of a column
type ColumnType string

const (
	TypeNumeric     ColumnType = "numeric"
	TypeCategorical ColumnType = "categorical"
	TypeDatetime    ColumnType = "datetime"
	TypeFreeText    ColumnType = "free_text"
)

// Missing is the designated missing-value marker. Loaders normalize
// unparseable or absent cells to this marker before checks run.
const Missing = ""

// IsMissing reports whether a cell holds the missing marker.
func IsMissing(value string) bool {
	return value == Missing
}

// Column is a named, typed sequence of cell values
type Column struct {
	Name   string     `json:"name"`
	Type   ColumnType `json:"type"`
	Values []string   `json:"values"`
}

// Dataset is an in-memory table of positionally aligned columns.
// Checks treat it as an immutable snapshot and only read.
type Dataset struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// New creates an empty dataset with the given column names and types
func New(name string, columns []Column) *Dataset {
	return &Dataset{Name: name, Columns: columns}
}

// RowCount returns the number of rows in the dataset
func (d *Dataset) RowCount() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return len(d.Columns[0].Values)
}

// ColumnNames returns the column names in declaration order
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		names[i] = col.Name
	}
	return names
}

// Column returns the named column, or an error if the dataset lacks it
func (d *Dataset) Column(name string) (*Column, error) {
	for i := range d.Columns {
		if d.Columns[i].Name == name {
			return &d.Columns[i], nil
		}
	}
	return nil, core.ErrColumnNotFound
}

// HasColumn reports whether the dataset carries the named column
func (d *Dataset) HasColumn(name string) bool {
	_, err := d.Column(name)
	return err == nil
}

// Row returns the cell values of row i in column order
func (d *Dataset) Row(i int) []string {
	row := make([]string, len(d.Columns))
	for j, col := range d.Columns {
		row[j] = col.Values[i]
	}
	return row
}

// AppendRow adds one row of cells, positionally aligned with Columns
func (d *Dataset) AppendRow(cells []string) {
	for j := range d.Columns {
		cell := Missing
		if j < len(cells) {
			cell = cells[j]
		}
		d.Columns[j].Values = append(d.Columns[j].Values, cell)
	}
}

// Select returns a new dataset holding only the given rows, in the
// given order. Column order and types are preserved.
func (d *Dataset) Select(rows []int) *Dataset {
	out := &Dataset{Name: d.Name, Columns: make([]Column, len(d.Columns))}
	for j, col := range d.Columns {
		values := make([]string, len(rows))
		for i, r := range rows {
			values[i] = col.Values[r]
		}
		out.Columns[j] = Column{Name: col.Name, Type: col.Type, Values: values}
	}
	return out
}

// Equal reports whether two datasets carry identical columns and cells
func (d *Dataset) Equal(other *Dataset) bool {
	if len(d.Columns) != len(other.Columns) {
		return false
	}
	for j := range d.Columns {
		a, b := d.Columns[j], other.Columns[j]
		if a.Name != b.Name || a.Type != b.Type || len(a.Values) != len(b.Values) {
			return false
		}
		for i := range a.Values {
			if a.Values[i] != b.Values[i] {
				return false
			}
		}
	}
	return true
}

// KeySpec is the ordered set of columns treated as the uniqueness key.
// An empty KeySpec disables the duplicate-key and null-key checks.
type KeySpec []string

// IsEmpty reports whether no key columns are configured
func (k KeySpec) IsEmpty() bool {
	return len(k) == 0
}

// String renders the key columns for diagnostic messages
func (k KeySpec) String() string {
	return strings.Join(k, ", ")
}

// Validate fails fast when a key column is absent from the dataset.
// This is caller misuse, signaled distinctly from a quality STOP.
func (k KeySpec) Validate(d *Dataset) error {
	for _, name := range k {
		if !d.HasColumn(name) {
			return core.NewKeySpecError(name)
		}
	}
	return nil
}
