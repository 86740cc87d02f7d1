package appsettings

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpdateRefused = errors.New("update refused")

// rowStore is a minimal RecordStore whose Update can be made to fail.
type rowStore struct {
	rows       map[uint64]*Record
	next       uint64
	failUpdate bool
}

func (s *rowStore) FindAllByType(_ context.Context, entityType string) ([]*Record, error) {
	var out []*Record

	for _, rec := range s.rows {
		if rec.Type() == entityType {
			out = append(out, rec.Clone())
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StoreKey < out[j].StoreKey })

	return out, nil
}

func (s *rowStore) Create(_ context.Context, rec *Record) (*Record, error) {
	s.next++
	stored := rec.Clone()
	stored.StoreKey = s.next
	s.rows[s.next] = stored

	return stored.Clone(), nil
}

func (s *rowStore) Update(_ context.Context, rec *Record) error {
	if s.failUpdate {
		return errUpdateRefused
	}

	s.rows[rec.StoreKey] = rec.Clone()

	return nil
}

func (s *rowStore) Delete(_ context.Context, rec *Record) error {
	delete(s.rows, rec.StoreKey)
	return nil
}

func TestCollapsedCounterCountsOnlyCommittedSaves(t *testing.T) {
	ctx := context.Background()
	entity := "metrics_collapse"

	catalog, err := NewCatalog(NewEntityType(entity, Int("n", 0)))
	require.NoError(t, err)

	store := &rowStore{rows: map[uint64]*Record{}}

	for range 3 {
		rec, err := catalog.NewRecord(entity)
		require.NoError(t, err)
		require.NoError(t, rec.Set("n", int32(1)))

		_, err = store.Create(ctx, rec)
		require.NoError(t, err)
	}

	r, err := NewReconciler(catalog, store)
	require.NoError(t, err)

	collapsed := collapsedCounter.WithLabelValues(entity)
	updated := saveCounter.WithLabelValues(entity, outcomeUpdated)

	store.failUpdate = true

	err = r.Update(ctx, entity, func(rec *Record) error { return rec.Set("n", int32(2)) })
	require.ErrorIs(t, err, errUpdateRefused)
	assert.InDelta(t, 0, testutil.ToFloat64(collapsed), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(updated), 0)

	// the failed attempt already removed the duplicates, so seed them again
	for range 2 {
		rec, err := catalog.NewRecord(entity)
		require.NoError(t, err)
		require.NoError(t, rec.Set("n", int32(1)))

		_, err = store.Create(ctx, rec)
		require.NoError(t, err)
	}

	store.failUpdate = false

	require.NoError(t, r.Update(ctx, entity, func(rec *Record) error { return rec.Set("n", int32(2)) }))
	assert.InDelta(t, 2, testutil.ToFloat64(collapsed), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(updated), 0)
}
