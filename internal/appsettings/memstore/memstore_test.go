package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoPowerDNS-Admin/appsettings/internal/appsettings"
)

func newRecord(t *testing.T, c *appsettings.Catalog, entity string) *appsettings.Record {
	t.Helper()

	rec, err := c.NewRecord(entity)
	require.NoError(t, err)

	return rec
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	c, err := appsettings.NewCatalog(
		appsettings.NewEntityType("a", appsettings.Int("n", 0)),
		appsettings.NewEntityType("b", appsettings.Int("n", 0)),
	)
	require.NoError(t, err)

	s := New()

	first := newRecord(t, c, "a")
	require.NoError(t, first.Set("n", int32(1)))

	created, err := s.Create(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), created.StoreKey)
	assert.Zero(t, first.StoreKey, "caller record must not be modified")

	_, err = s.Create(ctx, newRecord(t, c, "b"))
	require.NoError(t, err)

	second, err := s.Create(ctx, newRecord(t, c, "a"))
	require.NoError(t, err)

	rows, err := s.FindAllByType(ctx, "a")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, created.StoreKey, rows[0].StoreKey)
	assert.Equal(t, second.StoreKey, rows[1].StoreKey)

	// returned records are copies
	require.NoError(t, rows[0].Set("n", int32(99)))

	rows, err = s.FindAllByType(ctx, "a")
	require.NoError(t, err)

	n, _ := rows[0].Int("n")
	assert.Equal(t, int32(1), n)

	require.NoError(t, rows[0].Set("n", int32(2)))
	require.NoError(t, s.Update(ctx, rows[0]))

	rows, err = s.FindAllByType(ctx, "a")
	require.NoError(t, err)

	n, _ = rows[0].Int("n")
	assert.Equal(t, int32(2), n)

	require.NoError(t, s.Delete(ctx, rows[1]))
	assert.Equal(t, 1, s.Len("a"))
	assert.Equal(t, 1, s.Len("b"))

	require.ErrorIs(t, s.Delete(ctx, rows[1]), ErrRecordNotFound)
	require.ErrorIs(t, s.Update(ctx, rows[1]), ErrRecordNotFound)
}
