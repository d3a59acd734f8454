package backup

import (
	"errors"
	"sync"

	"github.com/dangdinh/giapha/pkg/types"
)

// fakeStore is an in-memory Store for engine tests. Writes append; clears
// truncate; failures are scripted per table.
type fakeStore struct {
	mu         sync.Mutex
	mode       string
	tables     map[string][]types.Row
	readErrs   map[string]error
	writeErrs  map[string][]string
	clearCalls []string
	writeCalls []string
	flushCalls int
}

func newFakeStore(mode string) *fakeStore {
	return &fakeStore{
		mode:      mode,
		tables:    make(map[string][]types.Row),
		readErrs:  make(map[string]error),
		writeErrs: make(map[string][]string),
	}
}

func (s *fakeStore) Mode() string { return s.mode }

func (s *fakeStore) ReadAll(table string) ([]types.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readErrs[table]; err != nil {
		return nil, err
	}
	return s.tables[table], nil
}

func (s *fakeStore) ClearAll(table string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearCalls = append(s.clearCalls, table)
	delete(s.tables, table)
	return nil
}

func (s *fakeStore) WriteRows(table string, rows []types.Row) (int, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeCalls = append(s.writeCalls, table)
	if msgs, ok := s.writeErrs[table]; ok {
		return 0, msgs
	}
	s.tables[table] = append(s.tables[table], rows...)
	return len(rows), nil
}

func (s *fakeStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushCalls++
	return nil
}

// fakeMediaStore adds the local-media capability to fakeStore.
type fakeMediaStore struct {
	*fakeStore
	root string
}

func (s *fakeMediaStore) MediaRoot() string { return s.root }

var errTableGone = errors.New("no such table")
