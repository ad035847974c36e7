package texttable

import (
	"fmt"
	"strings"

	"datagate/domain/core"
	"datagate/domain/dataset"
)

// Record is one auxiliary free-text table, joined to the main dataset
// through its key column. Later pipeline phases consume these tables;
// the quality-control engine never does.
type Record struct {
	Name      string           `json:"name"`
	KeyColumn string           `json:"key_column"`
	Table     *dataset.Dataset `json:"table"`
}

// Meta is the payload-free description of a registered table
type Meta struct {
	Name      string `json:"name"`
	KeyColumn string `json:"key_column"`
	RowCount  int    `json:"row_count"`
}

// Entry pairs a record's metadata with its reloaded table
type Entry struct {
	Meta  Meta             `json:"meta"`
	Table *dataset.Dataset `json:"table"`
}

// Validate rejects unusable records before anything is persisted
func (r *Record) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("text table name cannot be empty")
	}
	if r.Table == nil {
		return fmt.Errorf("text table %q has no table payload", r.Name)
	}
	if !r.Table.HasColumn(r.KeyColumn) {
		return fmt.Errorf("%w: %s", core.ErrKeyColumnNotFound, r.KeyColumn)
	}
	return nil
}

// Metadata derives the Meta view of the record
func (r *Record) Metadata() Meta {
	return Meta{Name: r.Name, KeyColumn: r.KeyColumn, RowCount: r.Table.RowCount()}
}
