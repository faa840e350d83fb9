package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/gsc-community/events-api/internal/repository/dao"
)

// MemStore is an in-process RecordStore used by tests and local tooling.
// It honours the same uniqueness and not-found semantics as the SQL-backed
// store but offers none of its durability.
type MemStore struct {
	mu   sync.RWMutex
	rows map[string]map[string]string // tableKey(pk,rk) -> fields
}

func NewMemStore() *MemStore {
	return &MemStore{
		rows: map[string]map[string]string{},
	}
}

func key(table, partitionKey, rowKey string) string {
	return table + "\x00" + partitionKey + "\x00" + rowKey
}

func (s *MemStore) Insert(_ context.Context, table, partitionKey, rowKey string, fields map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(table, partitionKey, rowKey)
	if _, ok := s.rows[k]; ok {
		return ErrRecordExists
	}

	s.rows[k] = cloneFields(fields)

	return nil
}

func (s *MemStore) Get(_ context.Context, table, partitionKey, rowKey string) (dao.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fields, ok := s.rows[key(table, partitionKey, rowKey)]
	if !ok {
		return dao.Entity{}, ErrRecordNotFound
	}

	return dao.Entity{PartitionKey: partitionKey, RowKey: rowKey, Fields: cloneFields(fields)}, nil
}

func (s *MemStore) ListPartition(ctx context.Context, table, partitionKey string) ([]dao.Entity, error) {
	return s.Scan(ctx, table, func(e dao.Entity) bool {
		return e.PartitionKey == partitionKey
	})
}

func (s *MemStore) Scan(_ context.Context, table string, match func(dao.Entity) bool) ([]dao.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []dao.Entity
	for k, fields := range s.rows {
		t, pk, rk := splitKey(k)
		if t != table {
			continue
		}
		e := dao.Entity{PartitionKey: pk, RowKey: rk, Fields: cloneFields(fields)}
		if match(e) {
			out = append(out, e)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].PartitionKey != out[j].PartitionKey {
			return out[i].PartitionKey < out[j].PartitionKey
		}
		return out[i].RowKey < out[j].RowKey
	})

	return out, nil
}

func (s *MemStore) Merge(_ context.Context, table, partitionKey, rowKey string, updates map[string]string) (dao.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(table, partitionKey, rowKey)
	fields, ok := s.rows[k]
	if !ok {
		return dao.Entity{}, ErrRecordNotFound
	}

	for uk, uv := range updates {
		fields[uk] = uv
	}

	return dao.Entity{PartitionKey: partitionKey, RowKey: rowKey, Fields: cloneFields(fields)}, nil
}

func (s *MemStore) Delete(_ context.Context, table, partitionKey, rowKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(table, partitionKey, rowKey)
	if _, ok := s.rows[k]; !ok {
		return ErrRecordNotFound
	}

	delete(s.rows, k)

	return nil
}

func cloneFields(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func splitKey(k string) (table, partitionKey, rowKey string) {
	first := -1
	for i := 0; i < len(k); i++ {
		if k[i] == 0 {
			first = i
			break
		}
	}
	second := -1
	for i := first + 1; i < len(k); i++ {
		if k[i] == 0 {
			second = i
			break
		}
	}
	return k[:first], k[first+1 : second], k[second+1:]
}
