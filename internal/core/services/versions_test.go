package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitewire-labs/cableroute/internal/adapters/driven/storage/memory"
	"github.com/sitewire-labs/cableroute/internal/core/domain"
	"github.com/sitewire-labs/cableroute/internal/core/ports/driven"
)

func versionTestRoute() domain.CableRoute {
	return domain.CableRoute{
		ID:   "route-1",
		Name: "DB-1 to AHU-3",
		Points: []domain.RoutePoint{
			{ID: "p1", Point3D: domain.Point3D{X: 0, Y: 0}},
			{ID: "p2", Point3D: domain.Point3D{X: 10, Y: 0}},
		},
		CableType: domain.CablePVC,
		Diameter:  25,
		Metrics:   domain.RouteMetrics{TotalLength: 10},
	}
}

func newTestVersionService(t *testing.T) (*VersionService, *memory.RouteStore) {
	t.Helper()
	routes := memory.NewRouteStore()
	require.NoError(t, routes.Save(t.Context(), versionTestRoute()))
	return NewVersionService(routes, memory.NewVersionStore()), routes
}

func TestVersionCreate(t *testing.T) {
	svc, _ := newTestVersionService(t)

	version, err := svc.Create(t.Context(), "route-1", domain.ChangeManual, "initial layout")
	require.NoError(t, err)

	assert.NotEmpty(t, version.ID)
	assert.Equal(t, "route-1", version.RouteID)
	assert.Equal(t, domain.ChangeManual, version.ChangeType)
	assert.Equal(t, "initial layout", version.Description)
	assert.Len(t, version.Points, 2)
	assert.InDelta(t, 10, version.Metrics.TotalLength, 1e-9)
}

func TestVersionCreate_RouteMissing(t *testing.T) {
	svc := NewVersionService(memory.NewRouteStore(), memory.NewVersionStore())

	version, err := svc.Create(t.Context(), "no-such-route", domain.ChangeAuto, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, version)
}

func TestVersionCreate_SnapshotIsolatedFromLaterEdits(t *testing.T) {
	svc, routes := newTestVersionService(t)

	_, err := svc.Create(t.Context(), "route-1", domain.ChangeManual, "v1")
	require.NoError(t, err)

	// Move the live route after the save.
	route, err := routes.Get(t.Context(), "route-1")
	require.NoError(t, err)
	route.Points[1].X = 99
	require.NoError(t, routes.Save(t.Context(), *route))

	listed, err := svc.List(t.Context(), "route-1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.InDelta(t, 10, listed[0].Points[1].X, 1e-9, "history must not see later edits")
}

func TestVersionList_NewestFirst(t *testing.T) {
	svc, _ := newTestVersionService(t)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	for _, desc := range []string{"first", "second", "third"} {
		_, err := svc.Create(t.Context(), "route-1", domain.ChangeAuto, desc)
		require.NoError(t, err)
	}

	versions, err := svc.List(t.Context(), "route-1")
	require.NoError(t, err)
	require.Len(t, versions, 3)

	assert.Equal(t, "third", versions[0].Description)
	assert.Equal(t, "second", versions[1].Description)
	assert.Equal(t, "first", versions[2].Description)
	assert.True(t, versions[0].Timestamp.After(versions[2].Timestamp))
}

func TestVersionList_ClockSkewStaysOrdered(t *testing.T) {
	svc, _ := newTestVersionService(t)

	// A wall clock stepping backwards must not reorder history.
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	skewed := []time.Time{base, base.Add(-time.Minute), base.Add(-2 * time.Minute)}
	call := 0
	svc.now = func() time.Time {
		ts := skewed[call%len(skewed)]
		call++
		return ts
	}

	for _, desc := range []string{"first", "second", "third"} {
		_, err := svc.Create(t.Context(), "route-1", domain.ChangeAuto, desc)
		require.NoError(t, err)
	}

	versions, err := svc.List(t.Context(), "route-1")
	require.NoError(t, err)
	require.Len(t, versions, 3)

	assert.Equal(t, "third", versions[0].Description)
	assert.Equal(t, "first", versions[2].Description)
	for i := 0; i < len(versions)-1; i++ {
		assert.False(t, versions[i].Timestamp.Before(versions[i+1].Timestamp),
			"timestamps must be non-increasing newest first")
	}
}

func TestVersionRevert(t *testing.T) {
	svc, routes := newTestVersionService(t)

	saved, err := svc.Create(t.Context(), "route-1", domain.ChangeManual, "before rework")
	require.NoError(t, err)

	// Rework the live route.
	route, err := routes.Get(t.Context(), "route-1")
	require.NoError(t, err)
	route.Points = []domain.RoutePoint{
		{ID: "p1", Point3D: domain.Point3D{X: 0, Y: 0}},
		{ID: "p2", Point3D: domain.Point3D{X: 0, Y: 50}},
		{ID: "p3", Point3D: domain.Point3D{X: 50, Y: 50}},
	}
	route.Diameter = 32
	require.NoError(t, routes.Save(t.Context(), *route))

	reverted, err := svc.Revert(t.Context(), "route-1", saved.ID)
	require.NoError(t, err)

	require.Len(t, reverted.Points, 2)
	assert.InDelta(t, 10, reverted.Points[1].X, 1e-9)
	assert.InDelta(t, 25, reverted.Diameter, 1e-9)

	// The revert is persisted and recorded as a manual version.
	stored, err := routes.Get(t.Context(), "route-1")
	require.NoError(t, err)
	assert.Len(t, stored.Points, 2)

	versions, err := svc.List(t.Context(), "route-1")
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, domain.ChangeManual, versions[0].ChangeType)
	assert.Contains(t, versions[0].Description, saved.ID)
}

func TestVersionRevert_Missing(t *testing.T) {
	svc, _ := newTestVersionService(t)

	_, err := svc.Revert(t.Context(), "route-1", "no-such-version")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Revert(t.Context(), "no-such-route", "v1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVersionDelete(t *testing.T) {
	svc, routes := newTestVersionService(t)

	keep, err := svc.Create(t.Context(), "route-1", domain.ChangeManual, "keep")
	require.NoError(t, err)
	drop, err := svc.Create(t.Context(), "route-1", domain.ChangeAuto, "drop")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(t.Context(), "route-1", drop.ID))

	versions, err := svc.List(t.Context(), "route-1")
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, keep.ID, versions[0].ID)

	// Deleting history never touches the live route.
	_, err = routes.Get(t.Context(), "route-1")
	assert.NoError(t, err)
}

func TestVersionDelete_WrongRoute(t *testing.T) {
	svc, routes := newTestVersionService(t)

	other := versionTestRoute()
	other.ID = "route-2"
	require.NoError(t, routes.Save(t.Context(), other))

	version, err := svc.Create(t.Context(), "route-2", domain.ChangeManual, "")
	require.NoError(t, err)

	// A version ID from another route's history is not reachable.
	err = svc.Delete(t.Context(), "route-1", version.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// failingVersionStore simulates a storage outage.
type failingVersionStore struct {
	err error
}

var _ driven.VersionStore = (*failingVersionStore)(nil)

func (s *failingVersionStore) Save(context.Context, domain.RouteVersion) error { return s.err }

func (s *failingVersionStore) List(context.Context, string) ([]domain.RouteVersion, error) {
	return nil, s.err
}

func (s *failingVersionStore) Delete(context.Context, string) error { return s.err }

func TestVersionCreate_StoreFailurePropagates(t *testing.T) {
	routes := memory.NewRouteStore()
	require.NoError(t, routes.Save(t.Context(), versionTestRoute()))

	storeErr := errors.New("disk full")
	svc := NewVersionService(routes, &failingVersionStore{err: storeErr})

	version, err := svc.Create(t.Context(), "route-1", domain.ChangeManual, "")
	assert.ErrorIs(t, err, storeErr)
	assert.Nil(t, version)
}

func TestVersionConcurrentCreates(t *testing.T) {
	svc, _ := newTestVersionService(t)

	const writers = 8
	done := make(chan error, writers)
	for i := 0; i < writers; i++ {
		go func() {
			_, err := svc.Create(context.Background(), "route-1", domain.ChangeAuto, "concurrent")
			done <- err
		}()
	}
	for i := 0; i < writers; i++ {
		require.NoError(t, <-done)
	}

	versions, err := svc.List(t.Context(), "route-1")
	require.NoError(t, err)
	require.Len(t, versions, writers)
	for i := 0; i < len(versions)-1; i++ {
		assert.False(t, versions[i].Timestamp.Before(versions[i+1].Timestamp))
	}
}
