package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"datagate/domain/core"
	"datagate/domain/dataset"
	"datagate/domain/texttable"
	"datagate/ports"
)

// textTableRepository implements the TextTableRepository interface over
// PostgreSQL. Each registered table is one row; columns and cells are
// stored as a JSON payload so column order and values round-trip exactly.
type textTableRepository struct {
	db *sqlx.DB
}

// NewTextTableRepository creates a new Postgres-backed repository
func NewTextTableRepository(db *sqlx.DB) ports.TextTableRepository {
	return &textTableRepository{db: db}
}

// Migrate creates the backing table if it does not exist
func Migrate(db *sqlx.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS text_datasets (
		name        TEXT PRIMARY KEY,
		key_column  TEXT NOT NULL,
		row_count   INTEGER NOT NULL,
		columns     JSONB NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create text_datasets table: %w", err)
	}
	return nil
}

// Register persists a record transactionally, so a failed insert never
// leaves a partial entry behind.
func (r *textTableRepository) Register(ctx context.Context, rec *texttable.Record, overwrite bool) (*texttable.Meta, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	columnsJSON, err := json.Marshal(rec.Table.Columns)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal table columns: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existing int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM text_datasets WHERE name = $1`, rec.Name).Scan(&existing)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing registration: %w", err)
	}
	if existing > 0 && !overwrite {
		return nil, core.NewNameConflictError(rec.Name)
	}

	meta := rec.Metadata()
	query := `INSERT INTO text_datasets (name, key_column, row_count, columns)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE
		SET key_column = EXCLUDED.key_column,
		    row_count = EXCLUDED.row_count,
		    columns = EXCLUDED.columns`
	if _, err := tx.ExecContext(ctx, query, meta.Name, meta.KeyColumn, meta.RowCount, columnsJSON); err != nil {
		return nil, fmt.Errorf("failed to register text table: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit registration: %w", err)
	}
	return &meta, nil
}

// LoadTables reconstructs every registered table
func (r *textTableRepository) LoadTables(ctx context.Context) (map[string]*texttable.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, key_column, row_count, columns FROM text_datasets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query text tables: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]*texttable.Entry)
	for rows.Next() {
		var meta texttable.Meta
		var columnsJSON []byte
		if err := rows.Scan(&meta.Name, &meta.KeyColumn, &meta.RowCount, &columnsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan text table: %w", err)
		}

		var columns []dataset.Column
		if err := json.Unmarshal(columnsJSON, &columns); err != nil {
			return nil, fmt.Errorf("failed to unmarshal table columns: %w", err)
		}

		entries[meta.Name] = &texttable.Entry{
			Meta:  meta,
			Table: dataset.New(meta.Name, columns),
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate text tables: %w", err)
	}
	return entries, nil
}

// ListDatasets returns only the metadata mapping
func (r *textTableRepository) ListDatasets(ctx context.Context) (map[string]*texttable.Meta, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, key_column, row_count FROM text_datasets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query text table metadata: %w", err)
	}
	defer rows.Close()

	metas := make(map[string]*texttable.Meta)
	for rows.Next() {
		var meta texttable.Meta
		if err := rows.Scan(&meta.Name, &meta.KeyColumn, &meta.RowCount); err != nil {
			return nil, fmt.Errorf("failed to scan text table metadata: %w", err)
		}
		metas[meta.Name] = &meta
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate text table metadata: %w", err)
	}
	return metas, nil
}

// Clear removes all registered tables
func (r *textTableRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM text_datasets`); err != nil {
		return fmt.Errorf("failed to clear text tables: %w", err)
	}
	return nil
}
