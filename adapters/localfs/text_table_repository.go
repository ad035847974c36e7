package localfs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"datagate/domain/core"
	"datagate/domain/dataset"
	"datagate/domain/texttable"
	"datagate/internal/errors"
	"datagate/ports"
)

const (
	indexFile  = "index.json"
	tablesDir  = "tables"
	tableSheet = "Sheet1"
)

// indexEntry is the persisted form of one registered table. Column types
// ride along in the index because the xlsx payload only carries cells.
type indexEntry struct {
	Meta        texttable.Meta       `json:"meta"`
	ColumnTypes []dataset.ColumnType `json:"column_types"`
}

// TextTableRepository stores registered tables under a local storage root:
// an index.json metadata file plus one xlsx workbook per table. Writes go
// through a temp file and rename, so a reader never observes a torn entry.
type TextTableRepository struct {
	root string
	mu   sync.RWMutex
}

// NewTextTableRepository binds a repository to its storage root,
// creating the directory layout if needed.
func NewTextTableRepository(root string) (*TextTableRepository, error) {
	if err := os.MkdirAll(filepath.Join(root, tablesDir), 0755); err != nil {
		return nil, errors.StorageError("failed to create storage root", err)
	}
	return &TextTableRepository{root: root}, nil
}

var _ ports.TextTableRepository = (*TextTableRepository)(nil)

// Register validates and persists a record. The table payload is written
// before the index is updated, so entries listed in the index always have
// a complete workbook behind them.
func (r *TextTableRepository) Register(ctx context.Context, rec *texttable.Record, overwrite bool) (*texttable.Meta, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	if strings.ContainsAny(rec.Name, `/\`) || strings.Contains(rec.Name, "..") {
		return nil, errors.InvalidInput(fmt.Sprintf("invalid text table name: %q", rec.Name))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	index, err := r.readIndex()
	if err != nil {
		return nil, err
	}
	if _, exists := index[rec.Name]; exists && !overwrite {
		return nil, errors.RegistryConflict(core.NewNameConflictError(rec.Name))
	}

	if err := r.writeWorkbook(rec.Name, rec.Table); err != nil {
		return nil, err
	}

	meta := rec.Metadata()
	types := make([]dataset.ColumnType, len(rec.Table.Columns))
	for i, col := range rec.Table.Columns {
		types[i] = col.Type
	}
	index[rec.Name] = indexEntry{Meta: meta, ColumnTypes: types}
	if err := r.writeIndex(index); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTables reconstructs every registered table from disk
func (r *TextTableRepository) LoadTables(ctx context.Context) (map[string]*texttable.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, err := r.readIndex()
	if err != nil {
		return nil, err
	}

	entries := make(map[string]*texttable.Entry, len(index))
	for name, entry := range index {
		table, err := r.readWorkbook(name, entry)
		if err != nil {
			return nil, err
		}
		entries[name] = &texttable.Entry{Meta: entry.Meta, Table: table}
	}
	return entries, nil
}

// ListDatasets returns the metadata mapping without table payloads
func (r *TextTableRepository) ListDatasets(ctx context.Context) (map[string]*texttable.Meta, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, err := r.readIndex()
	if err != nil {
		return nil, err
	}

	metas := make(map[string]*texttable.Meta, len(index))
	for name, entry := range index {
		meta := entry.Meta
		metas[name] = &meta
	}
	return metas, nil
}

// Clear removes every persisted entry. Clearing twice is a no-op.
func (r *TextTableRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	index, err := r.readIndex()
	if err != nil {
		return err
	}

	// Index goes first so readers stop seeing entries before payloads vanish
	if err := r.writeIndex(map[string]indexEntry{}); err != nil {
		return err
	}
	for name := range index {
		if err := os.Remove(r.tablePath(name)); err != nil && !os.IsNotExist(err) {
			return errors.StorageError(fmt.Sprintf("failed to remove table %q", name), err)
		}
	}
	return nil
}

func (r *TextTableRepository) indexPath() string {
	return filepath.Join(r.root, indexFile)
}

func (r *TextTableRepository) tablePath(name string) string {
	return filepath.Join(r.root, tablesDir, name+".xlsx")
}

func (r *TextTableRepository) readIndex() (map[string]indexEntry, error) {
	data, err := os.ReadFile(r.indexPath())
	if os.IsNotExist(err) {
		return map[string]indexEntry{}, nil
	}
	if err != nil {
		return nil, errors.StorageError("failed to read registry index", err)
	}

	index := make(map[string]indexEntry)
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, errors.StorageError("failed to decode registry index", err)
	}
	return index, nil
}

func (r *TextTableRepository) writeIndex(index map[string]indexEntry) error {
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return errors.StorageError("failed to encode registry index", err)
	}

	tmp, err := os.CreateTemp(r.root, indexFile+".tmp-*")
	if err != nil {
		return errors.StorageError("failed to create temp index file", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.StorageError("failed to write registry index", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.StorageError("failed to close temp index file", err)
	}
	if err := os.Rename(tmpPath, r.indexPath()); err != nil {
		os.Remove(tmpPath)
		return errors.StorageError("failed to replace registry index", err)
	}
	return nil
}

// writeWorkbook persists a table as a single-sheet workbook: header row
// followed by one row per record, every cell stored as a string so values
// round-trip exactly.
func (r *TextTableRepository) writeWorkbook(name string, table *dataset.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	for j, col := range table.Columns {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return errors.StorageError("failed to compute cell coordinates", err)
		}
		if err := f.SetCellStr(tableSheet, cell, col.Name); err != nil {
			return errors.StorageError("failed to write header cell", err)
		}
	}

	rows := table.RowCount()
	for i := 0; i < rows; i++ {
		for j, col := range table.Columns {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return errors.StorageError("failed to compute cell coordinates", err)
			}
			if err := f.SetCellStr(tableSheet, cell, col.Values[i]); err != nil {
				return errors.StorageError("failed to write data cell", err)
			}
		}
	}

	tmpPath := r.tablePath(name) + ".tmp"
	if err := f.SaveAs(tmpPath); err != nil {
		return errors.StorageError(fmt.Sprintf("failed to save table %q", name), err)
	}
	if err := os.Rename(tmpPath, r.tablePath(name)); err != nil {
		os.Remove(tmpPath)
		return errors.StorageError(fmt.Sprintf("failed to replace table %q", name), err)
	}
	return nil
}

// readWorkbook loads a persisted table back into a dataset. GetRows trims
// trailing empty cells, so every row is padded back to the header width;
// the empty string is the missing marker, so padding restores the
// original cells exactly.
func (r *TextTableRepository) readWorkbook(name string, entry indexEntry) (*dataset.Dataset, error) {
	f, err := excelize.OpenFile(r.tablePath(name))
	if err != nil {
		return nil, errors.StorageError(fmt.Sprintf("failed to open table %q", name), err)
	}
	defer f.Close()

	rows, err := f.GetRows(tableSheet)
	if err != nil {
		return nil, errors.StorageError(fmt.Sprintf("failed to read table %q", name), err)
	}
	if len(rows) == 0 {
		return nil, errors.StorageError(fmt.Sprintf("table %q has no header row", name), nil)
	}

	header := rows[0]
	columns := make([]dataset.Column, len(header))
	for j, colName := range header {
		colType := dataset.TypeFreeText
		if j < len(entry.ColumnTypes) {
			colType = entry.ColumnTypes[j]
		}
		columns[j] = dataset.Column{Name: colName, Type: colType}
	}

	table := dataset.New(name, columns)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		cells := make([]string, len(header))
		copy(cells, row)
		table.AppendRow(cells)
	}
	// GetRows also drops fully empty trailing rows; the recorded row
	// count restores them as all-missing rows.
	for table.RowCount() < entry.Meta.RowCount {
		table.AppendRow(nil)
	}
	return table, nil
}
