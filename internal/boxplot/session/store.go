package session

import (
	"sync/atomic"

	"github.com/shandysiswandi/goboxplot/internal/boxplot/entity"
)

// Store holds zero or one current ParsedTable plus the tables of the upload
// batch it came from. Set replaces both wholesale.
type Store struct {
	table atomic.Pointer[entity.ParsedTable]
	batch atomic.Pointer[map[int64]*entity.ParsedTable]
}

func NewStore() *Store {
	return &Store{}
}

// Set keeps tables as the latest batch and makes the last one current.
// An empty call leaves the store untouched.
func (s *Store) Set(tables ...*entity.ParsedTable) {
	if len(tables) == 0 {
		return
	}

	byID := make(map[int64]*entity.ParsedTable, len(tables))
	for _, t := range tables {
		byID[t.ID] = t
	}
	s.batch.Store(&byID)
	s.table.Store(tables[len(tables)-1])
}

// Get returns the current table, or false before the first upload.
func (s *Store) Get() (*entity.ParsedTable, bool) {
	table := s.table.Load()
	return table, table != nil
}

// Lookup returns a table of the latest batch by ID.
func (s *Store) Lookup(id int64) (*entity.ParsedTable, bool) {
	batch := s.batch.Load()
	if batch == nil {
		return nil, false
	}
	table, ok := (*batch)[id]
	return table, ok
}
