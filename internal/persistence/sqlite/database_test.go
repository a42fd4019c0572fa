package sqlite

import (
	"context"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewDatabase_tableCreation(t *testing.T) {
	t.Parallel()

	filePath := t.TempDir() + "/ipget.db"

	db, err := NewDatabase(filePath)
	require.NoError(t, err)
	assert.True(t, db.TableCreated())
	require.NoError(t, db.Close())

	db, err = NewDatabase(filePath)
	require.NoError(t, err)
	assert.False(t, db.TableCreated())
	require.NoError(t, db.Close())
}

func Test_Database_SelectLatest_empty(t *testing.T) {
	t.Parallel()

	db, err := NewDatabase(t.TempDir() + "/ipget.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, ok, err := db.SelectLatest(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func Test_Database_Insert_SelectLatest_roundTrip(t *testing.T) {
	t.Parallel()

	db, err := NewDatabase(t.TempDir() + "/ipget.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	observationTime := time.Date(2024, time.March, 5, 8, 30, 15, 123456000, time.UTC)
	address := netip.MustParseAddr("10.10.10.0")

	id, err := db.Insert(ctx, observationTime, address)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	observation, ok, err := db.SelectLatest(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, id, observation.ID)
	assert.Equal(t, address, observation.Address)
	assert.True(t, observationTime.Equal(observation.Time),
		"expected %s and got %s", observationTime, observation.Time)
	assert.Equal(t, time.UTC, observation.Time.Location())
}

func Test_Database_Insert_normalizesTime(t *testing.T) {
	t.Parallel()

	db, err := NewDatabase(t.TempDir() + "/ipget.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	zone := time.FixedZone("UTC+2", 2*60*60)
	localTime := time.Date(2024, time.March, 5, 10, 30, 15, 123456789, zone)
	expectedTime := localTime.UTC().Truncate(time.Microsecond)

	_, err = db.Insert(ctx, localTime, netip.MustParseAddr("::1"))
	require.NoError(t, err)

	observation, ok, err := db.SelectLatest(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, expectedTime.Equal(observation.Time),
		"expected %s and got %s", expectedTime, observation.Time)
}

func Test_Database_SelectLatest_ordering(t *testing.T) {
	t.Parallel()

	db, err := NewDatabase(t.TempDir() + "/ipget.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	t0 := time.Date(2024, time.March, 5, 8, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	_, err = db.Insert(ctx, t1, netip.MustParseAddr("10.10.10.1"))
	require.NoError(t, err)
	_, err = db.Insert(ctx, t0, netip.MustParseAddr("10.10.10.0"))
	require.NoError(t, err)

	observation, ok, err := db.SelectLatest(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, netip.MustParseAddr("10.10.10.1"), observation.Address)

	// same timestamp: the tie is broken by the maximum id.
	_, err = db.Insert(ctx, t1, netip.MustParseAddr("10.10.10.2"))
	require.NoError(t, err)

	observation, ok, err = db.SelectLatest(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, netip.MustParseAddr("10.10.10.2"), observation.Address)
	assert.Equal(t, int64(3), observation.ID)
}
