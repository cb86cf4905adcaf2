package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testRoute(id string) domain.CableRoute {
	return domain.CableRoute{
		ID:        id,
		Name:      "DB-1 to AHU-3",
		CableType: domain.CablePVCSWA,
		Diameter:  25,
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Points: []domain.RoutePoint{
			{ID: "p1", Point3D: domain.Point3D{X: 0, Y: 0}},
			{ID: "p2", Point3D: domain.Point3D{X: 10, Y: 0}},
			{ID: "p3", Point3D: domain.Point3D{X: 10, Y: 5}},
		},
		Metrics: domain.RouteMetrics{
			TotalLength:  15,
			SupportCount: 10,
			BendCount:    1,
			Complexity:   domain.ComplexityLow,
		},
	}
}

func testVersion(id, routeID string, ts time.Time) domain.RouteVersion {
	route := testRoute(routeID)
	version := domain.Snapshot(&route, domain.ChangeManual, "test save")
	version.ID = id
	version.Timestamp = ts
	return version
}

func TestStore_MigratesOnOpen(t *testing.T) {
	store := newTestStore(t)

	// Re-opening against the same directory must be a no-op.
	again, err := NewStore(t.TempDir())
	require.NoError(t, err)
	defer again.Close()

	assert.NotEmpty(t, store.Path())
}

func TestRouteStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	routes := store.RouteStore()
	ctx := context.Background()

	require.NoError(t, routes.Save(ctx, testRoute("r1")))

	got, err := routes.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "DB-1 to AHU-3", got.Name)
	assert.Equal(t, domain.CablePVCSWA, got.CableType)
	require.Len(t, got.Points, 3)
	assert.Equal(t, domain.Point3D{X: 10, Y: 5}, got.Points[2].Point3D)
	assert.Equal(t, 15.0, got.Metrics.TotalLength)
}

func TestRouteStore_Get_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.RouteStore().Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRouteStore_Save_Upserts(t *testing.T) {
	store := newTestStore(t)
	routes := store.RouteStore()
	ctx := context.Background()

	route := testRoute("r1")
	require.NoError(t, routes.Save(ctx, route))

	route.Diameter = 32
	require.NoError(t, routes.Save(ctx, route))

	got, err := routes.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 32.0, got.Diameter)

	all, err := routes.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRouteStore_Delete(t *testing.T) {
	store := newTestStore(t)
	routes := store.RouteStore()
	ctx := context.Background()

	require.NoError(t, routes.Save(ctx, testRoute("r1")))
	require.NoError(t, routes.Delete(ctx, "r1"))

	_, err := routes.Get(ctx, "r1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVersionStore_ListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	versions := store.VersionStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, versions.Save(ctx, testVersion("v1", "r1", base)))
	require.NoError(t, versions.Save(ctx, testVersion("v2", "r1", base.Add(time.Minute))))
	require.NoError(t, versions.Save(ctx, testVersion("v3", "r1", base.Add(2*time.Minute))))

	got, err := versions.List(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "v3", got[0].ID)
	assert.Equal(t, "v1", got[2].ID)
}

func TestVersionStore_TimestampTiesUseInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	versions := store.VersionStore()
	ctx := context.Background()
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, versions.Save(ctx, testVersion("v1", "r1", ts)))
	require.NoError(t, versions.Save(ctx, testVersion("v2", "r1", ts)))

	got, err := versions.List(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "v2", got[0].ID)
	assert.Equal(t, "v1", got[1].ID)
}

func TestVersionStore_RoundTripsSnapshotFields(t *testing.T) {
	store := newTestStore(t)
	versions := store.VersionStore()
	ctx := context.Background()

	saved := testVersion("v1", "r1", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, versions.Save(ctx, saved))

	got, err := versions.List(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, saved.Points, got[0].Points)
	assert.Equal(t, saved.CableType, got[0].CableType)
	assert.Equal(t, saved.Diameter, got[0].Diameter)
	assert.Equal(t, saved.Metrics, got[0].Metrics)
	assert.Equal(t, domain.ChangeManual, got[0].ChangeType)
	assert.Equal(t, "test save", got[0].Description)
}

func TestVersionStore_Delete(t *testing.T) {
	store := newTestStore(t)
	versions := store.VersionStore()
	ctx := context.Background()

	require.NoError(t, versions.Save(ctx, testVersion("v1", "r1", time.Now().UTC())))
	require.NoError(t, versions.Delete(ctx, "v1"))

	got, err := versions.List(ctx, "r1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestVersionStore_Delete_NotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.VersionStore().Delete(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
