package localfs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datagate/domain/core"
	"datagate/domain/dataset"
	"datagate/domain/texttable"
	apperrors "datagate/internal/errors"
)

func reviewsTable() *dataset.Dataset {
	return dataset.New("reviews", []dataset.Column{
		{Name: "order_id", Type: dataset.TypeCategorical, Values: []string{"o1", "o2", "o3"}},
		{Name: "review", Type: dataset.TypeFreeText, Values: []string{
			"great, would buy again",
			"",
			"späte Lieferung — trotzdem zufrieden",
		}},
	})
}

func newTestRepository(t *testing.T) *TextTableRepository {
	t.Helper()
	repo, err := NewTextTableRepository(t.TempDir())
	require.NoError(t, err)
	return repo
}

func TestRegisterAndLoadRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	table := reviewsTable()

	meta, err := repo.Register(ctx, &texttable.Record{
		Name: "reviews", KeyColumn: "order_id", Table: table,
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "reviews", meta.Name)
	assert.Equal(t, "order_id", meta.KeyColumn)
	assert.Equal(t, 3, meta.RowCount)

	entries, err := repo.LoadTables(ctx)
	require.NoError(t, err)
	require.Contains(t, entries, "reviews")

	loaded := entries["reviews"]
	assert.Equal(t, *meta, loaded.Meta)
	assert.Equal(t, table.ColumnNames(), loaded.Table.ColumnNames(), "column order must survive")
	assert.True(t, table.Equal(loaded.Table), "cell values must round-trip exactly")
}

func TestRegisterSurvivesReopen(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()

	repo, err := NewTextTableRepository(root)
	require.NoError(t, err)
	_, err = repo.Register(ctx, &texttable.Record{
		Name: "reviews", KeyColumn: "order_id", Table: reviewsTable(),
	}, false)
	require.NoError(t, err)

	// A fresh instance bound to the same root sees the persisted state
	reopened, err := NewTextTableRepository(root)
	require.NoError(t, err)
	entries, err := reopened.LoadTables(ctx)
	require.NoError(t, err)
	require.Contains(t, entries, "reviews")
	assert.True(t, reviewsTable().Equal(entries["reviews"].Table))
}

func TestRegisterConflict(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Register(ctx, &texttable.Record{
		Name: "reviews", KeyColumn: "order_id", Table: reviewsTable(),
	}, false)
	require.NoError(t, err)

	_, err = repo.Register(ctx, &texttable.Record{
		Name: "reviews", KeyColumn: "order_id", Table: reviewsTable(),
	}, false)
	assert.ErrorIs(t, err, core.ErrNameConflict)
	assert.Equal(t, apperrors.CodeRegistryConflict, apperrors.GetCode(err))
}

func TestRegisterOverwrite(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Register(ctx, &texttable.Record{
		Name: "reviews", KeyColumn: "order_id", Table: reviewsTable(),
	}, false)
	require.NoError(t, err)

	replacement := reviewsTable()
	replacement.AppendRow([]string{"o4", "prompt refund"})
	meta, err := repo.Register(ctx, &texttable.Record{
		Name: "reviews", KeyColumn: "order_id", Table: replacement,
	}, true)
	require.NoError(t, err)
	assert.Equal(t, 4, meta.RowCount)

	entries, err := repo.LoadTables(ctx)
	require.NoError(t, err)
	assert.True(t, replacement.Equal(entries["reviews"].Table))
}

func TestRegisterRejectsMissingKeyColumn(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Register(context.Background(), &texttable.Record{
		Name: "reviews", KeyColumn: "no_such_column", Table: reviewsTable(),
	}, false)
	assert.ErrorIs(t, err, core.ErrKeyColumnNotFound)
}

func TestRegisterRejectsPathLikeNames(t *testing.T) {
	repo := newTestRepository(t)

	for _, name := range []string{"../escape", "a/b", `a\b`} {
		_, err := repo.Register(context.Background(), &texttable.Record{
			Name: name, KeyColumn: "order_id", Table: reviewsTable(),
		}, false)
		assert.Error(t, err, "name %q must be rejected", name)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Register(ctx, &texttable.Record{
		Name: "reviews", KeyColumn: "order_id", Table: reviewsTable(),
	}, false)
	require.NoError(t, err)

	require.NoError(t, repo.Clear(ctx))
	metas, err := repo.ListDatasets(ctx)
	require.NoError(t, err)
	assert.Empty(t, metas)

	// Clearing an already-empty registry is a no-op
	require.NoError(t, repo.Clear(ctx))

	// The name is free for registration again
	_, err = repo.Register(ctx, &texttable.Record{
		Name: "reviews", KeyColumn: "order_id", Table: reviewsTable(),
	}, false)
	assert.NoError(t, err)
}

func TestListDatasetsCarriesNoPayload(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Register(ctx, &texttable.Record{
		Name: "reviews", KeyColumn: "order_id", Table: reviewsTable(),
	}, false)
	require.NoError(t, err)

	metas, err := repo.ListDatasets(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, texttable.Meta{Name: "reviews", KeyColumn: "order_id", RowCount: 3}, *metas["reviews"])
}

func TestRoundTripAllMissingRow(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	table := reviewsTable()
	table.AppendRow([]string{"", ""}) // entirely missing row at the end

	_, err := repo.Register(ctx, &texttable.Record{
		Name: "reviews", KeyColumn: "order_id", Table: table,
	}, false)
	require.NoError(t, err)

	entries, err := repo.LoadTables(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, entries["reviews"].Table.RowCount())
	assert.True(t, table.Equal(entries["reviews"].Table))
}
