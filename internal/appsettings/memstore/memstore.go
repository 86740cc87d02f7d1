// Package memstore is an in-memory appsettings.RecordStore.
//
// Nothing is persisted; it backs tests and the "memory" DB engine.
package memstore

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/GoPowerDNS-Admin/appsettings/internal/appsettings"
)

// ErrRecordNotFound is returned by Update and Delete for an unknown store key.
var ErrRecordNotFound = errors.New("record not found")

// Store keeps records in a map keyed by store key.
type Store struct {
	mu      sync.RWMutex
	nextKey uint64
	records map[uint64]*appsettings.Record
}

// New returns an empty store.
func New() *Store {
	return &Store{records: make(map[uint64]*appsettings.Record)}
}

// FindAllByType returns copies of the records of an entity type ordered by store key.
func (s *Store) FindAllByType(_ context.Context, entityType string) ([]*appsettings.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*appsettings.Record

	for _, rec := range s.records {
		if rec.Type() == entityType {
			out = append(out, rec.Clone())
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StoreKey < out[j].StoreKey })

	return out, nil
}

// Create stores a copy of rec under a new store key.
func (s *Store) Create(_ context.Context, rec *appsettings.Record) (*appsettings.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextKey++

	stored := rec.Clone()
	stored.StoreKey = s.nextKey
	s.records[stored.StoreKey] = stored

	return stored.Clone(), nil
}

// Update replaces the record stored under rec.StoreKey.
func (s *Store) Update(_ context.Context, rec *appsettings.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[rec.StoreKey]; !ok {
		return ErrRecordNotFound
	}

	s.records[rec.StoreKey] = rec.Clone()

	return nil
}

// Delete removes the record stored under rec.StoreKey.
func (s *Store) Delete(_ context.Context, rec *appsettings.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[rec.StoreKey]; !ok {
		return ErrRecordNotFound
	}

	delete(s.records, rec.StoreKey)

	return nil
}

// Len returns the number of stored records of an entity type.
func (s *Store) Len(entityType string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0

	for _, rec := range s.records {
		if rec.Type() == entityType {
			n++
		}
	}

	return n
}
