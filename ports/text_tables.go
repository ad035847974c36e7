package ports

import (
	"context"

	"datagate/domain/texttable"
)

// TextTableRepository persists auxiliary free-text tables keyed by a join
// column. Implementations are bound to one storage root (or database) at
// construction; persisted state survives process restarts. Mutating calls
// are serialized per storage root, and a failed Register must never leave
// a half-written entry visible to a concurrent LoadTables.
type TextTableRepository interface {
	// Register validates and persists a table under its name, returning the
	// stored metadata. Without overwrite, an existing name fails with
	// core.ErrNameConflict.
	Register(ctx context.Context, rec *texttable.Record, overwrite bool) (*texttable.Meta, error)

	// LoadTables reconstructs every registered table from persisted storage,
	// preserving column order and cell values exactly.
	LoadTables(ctx context.Context) (map[string]*texttable.Entry, error)

	// ListDatasets returns only the metadata mapping, no table payloads.
	ListDatasets(ctx context.Context) (map[string]*texttable.Meta, error)

	// Clear removes all persisted entries. Clearing an empty registry is a no-op.
	Clear(ctx context.Context) error
}
