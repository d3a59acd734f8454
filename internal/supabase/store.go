package supabase

import (
	"context"
	"fmt"

	"github.com/dangdinh/giapha/internal/registry"
	"github.com/dangdinh/giapha/pkg/types"
)

// BatchSize is how many rows go into one upsert request. Large clans restore
// in a handful of requests instead of one oversized payload.
const BatchSize = 500

// Store is the web backend. It has no local media tree, so inline media in
// an archive is ignored on restore.
type Store struct {
	client *Client
}

// NewStore creates a Store over the project at url using the service-role
// key.
func NewStore(url, serviceKey string) (*Store, error) {
	client, err := NewClient(url, serviceKey)
	if err != nil {
		return nil, err
	}
	return &Store{client: client}, nil
}

// Mode identifies this backend in manifests and results.
func (s *Store) Mode() string { return types.ModeWeb }

// ReadAll fetches every row of a registered table.
func (s *Store) ReadAll(table string) ([]types.Row, error) {
	if !registry.Registered(table) {
		return nil, types.ErrTableNotFound
	}
	return s.client.SelectAll(context.Background(), table)
}

// ClearAll deletes every row of a registered table.
func (s *Store) ClearAll(table string) error {
	if !registry.Registered(table) {
		return types.ErrTableNotFound
	}
	return s.client.DeleteAll(context.Background(), table)
}

// WriteRows upserts rows in batches of BatchSize. A failed batch yields one
// error and costs only that batch; the rest are still sent.
func (s *Store) WriteRows(table string, rows []types.Row) (int, []string) {
	if !registry.Registered(table) {
		return 0, []string{types.ErrTableNotFound.Error()}
	}

	inserted := 0
	var errs []string
	for i, batch := range Chunk(rows, BatchSize) {
		if err := s.client.Upsert(context.Background(), table, batch); err != nil {
			errs = append(errs, fmt.Sprintf("batch %d: %v", i+1, err))
			continue
		}
		inserted += len(batch)
	}
	return inserted, errs
}

// Flush is a no-op: Postgres writes are durable as soon as they return.
func (s *Store) Flush() error { return nil }

// Chunk splits rows into consecutive batches of at most size rows. A nil or
// empty input yields no batches.
func Chunk(rows []types.Row, size int) [][]types.Row {
	if size <= 0 || len(rows) == 0 {
		return nil
	}
	batches := make([][]types.Row, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		batches = append(batches, rows[start:end])
	}
	return batches
}
