package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// ColumnOrder is the persisted display ordering for pivot columns. An empty
// order means catalog order. Products and Categories hold ids/names in the
// sequence the user arranged them.
type ColumnOrder struct {
	Products   []string `json:"products"`
	Categories []string `json:"categories"`
}

// columnOrderSchemaVersion guards the on-disk blob. Bumping it invalidates
// stored orders, which silently fall back to catalog order.
const columnOrderSchemaVersion = 1

type columnOrderFile struct {
	Version    int      `json:"version"`
	Products   []string `json:"products"`
	Categories []string `json:"categories"`
}

// ColumnOrderStore persists the column order as a small versioned JSON file.
// Loading never fails: a missing, corrupted, or version-mismatched file is
// logged and read as the default (empty) order, so rendering is never
// blocked by bad persisted state.
type ColumnOrderStore struct {
	path   string
	logger zerolog.Logger
}

// NewColumnOrderStore creates a store backed by the given file path.
func NewColumnOrderStore(path string, logger zerolog.Logger) *ColumnOrderStore {
	return &ColumnOrderStore{path: path, logger: logger}
}

// Load reads the persisted order, falling back to the default on any problem.
func (s *ColumnOrderStore) Load() ColumnOrder {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("column order unreadable; using default order")
		}
		return ColumnOrder{}
	}

	var file columnOrderFile
	if err := json.Unmarshal(data, &file); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("column order corrupted; using default order")
		return ColumnOrder{}
	}
	if file.Version != columnOrderSchemaVersion {
		s.logger.Warn().Int("version", file.Version).Str("path", s.path).
			Msg("column order schema mismatch; using default order")
		return ColumnOrder{}
	}
	return ColumnOrder{Products: file.Products, Categories: file.Categories}
}

// Save writes the order with the current schema version.
func (s *ColumnOrderStore) Save(order ColumnOrder) error {
	file := columnOrderFile{
		Version:    columnOrderSchemaVersion,
		Products:   order.Products,
		Categories: order.Categories,
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode column order: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write column order: %w", err)
	}
	return nil
}
