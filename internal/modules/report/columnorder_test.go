package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *ColumnOrderStore {
	t.Helper()
	return NewColumnOrderStore(filepath.Join(t.TempDir(), "column_order.json"), zerolog.Nop())
}

func TestColumnOrderStoreRoundTrip(t *testing.T) {
	store := tempStore(t)
	want := ColumnOrder{
		Products:   []string{"p1", "p2", "p3"},
		Categories: []string{"filled", "donut"},
	}
	require.NoError(t, store.Save(want))
	assert.Equal(t, want, store.Load())
}

func TestColumnOrderStoreMissingFileFallsBack(t *testing.T) {
	store := tempStore(t)
	assert.Equal(t, ColumnOrder{}, store.Load())
}

func TestColumnOrderStoreCorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "column_order.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewColumnOrderStore(path, zerolog.Nop())
	assert.Equal(t, ColumnOrder{}, store.Load())
}

func TestColumnOrderStoreVersionMismatchFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "column_order.json")
	blob := `{"version": 99, "products": ["p1"], "categories": []}`
	require.NoError(t, os.WriteFile(path, []byte(blob), 0o644))

	store := NewColumnOrderStore(path, zerolog.Nop())
	assert.Equal(t, ColumnOrder{}, store.Load())
}

func TestColumnOrderStoreOverwrite(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, store.Save(ColumnOrder{Products: []string{"p1"}}))
	require.NoError(t, store.Save(ColumnOrder{Products: []string{"p2", "p1"}}))
	assert.Equal(t, []string{"p2", "p1"}, store.Load().Products)
}
