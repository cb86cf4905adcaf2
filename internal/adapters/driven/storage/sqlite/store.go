package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/sitewire-labs/cableroute/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/sitewire-labs/cableroute/internal/core/domain"
	"github.com/sitewire-labs/cableroute/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage providing the route and
// version store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in the specified data directory.
// If dataDir is empty, defaults to ~/.cableroute/data/routes.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".cableroute", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "routes.db")

	// WAL mode for better concurrency between version writers and
	// history readers.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// RouteStore returns a RouteStore interface backed by this store.
func (s *Store) RouteStore() driven.RouteStore {
	return &routeStore{store: s}
}

// VersionStore returns a VersionStore interface backed by this store.
func (s *Store) VersionStore() driven.VersionStore {
	return &versionStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Route Store ====================

// routeStore implements driven.RouteStore.
type routeStore struct {
	store *Store
}

var _ driven.RouteStore = (*routeStore)(nil)

// Save stores or updates a route.
func (s *routeStore) Save(ctx context.Context, route domain.CableRoute) error {
	pointsJSON, err := json.Marshal(route.Points)
	if err != nil {
		return fmt.Errorf("marshalling points: %w", err)
	}
	metricsJSON, err := json.Marshal(route.Metrics)
	if err != nil {
		return fmt.Errorf("marshalling metrics: %w", err)
	}

	if route.Timestamp.IsZero() {
		route.Timestamp = time.Now().UTC()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO routes (id, name, cable_type, diameter, timestamp, points, metrics)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			cable_type = excluded.cable_type,
			diameter = excluded.diameter,
			timestamp = excluded.timestamp,
			points = excluded.points,
			metrics = excluded.metrics
	`, route.ID, route.Name, string(route.CableType), route.Diameter,
		route.Timestamp, string(pointsJSON), string(metricsJSON))

	if err != nil {
		return fmt.Errorf("saving route: %w", err)
	}
	return nil
}

// Get retrieves a route by ID.
func (s *routeStore) Get(ctx context.Context, id string) (*domain.CableRoute, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, cable_type, diameter, timestamp, points, metrics
		FROM routes WHERE id = ?
	`, id)

	route, err := scanRoute(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return route, nil
}

// Delete removes a route.
func (s *routeStore) Delete(ctx context.Context, id string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM routes WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting route: %w", err)
	}
	return nil
}

// List returns all routes.
func (s *routeStore) List(ctx context.Context) ([]domain.CableRoute, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, cable_type, diameter, timestamp, points, metrics
		FROM routes ORDER BY timestamp
	`)
	if err != nil {
		return nil, fmt.Errorf("listing routes: %w", err)
	}
	defer rows.Close()

	var routes []domain.CableRoute
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, *route)
	}
	return routes, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for shared scan logic.
type scanner interface {
	Scan(dest ...any) error
}

func scanRoute(row scanner) (*domain.CableRoute, error) {
	var route domain.CableRoute
	var cableType, pointsJSON, metricsJSON string
	var timestamp sql.NullTime

	if err := row.Scan(&route.ID, &route.Name, &cableType, &route.Diameter,
		&timestamp, &pointsJSON, &metricsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning route: %w", err)
	}

	if err := json.Unmarshal([]byte(pointsJSON), &route.Points); err != nil {
		return nil, fmt.Errorf("unmarshalling points: %w", err)
	}
	if err := json.Unmarshal([]byte(metricsJSON), &route.Metrics); err != nil {
		return nil, fmt.Errorf("unmarshalling metrics: %w", err)
	}

	route.CableType = domain.CableTypeFromString(cableType)
	if timestamp.Valid {
		route.Timestamp = timestamp.Time
	}
	return &route, nil
}

// ==================== Version Store ====================

// versionStore implements driven.VersionStore.
type versionStore struct {
	store *Store
}

var _ driven.VersionStore = (*versionStore)(nil)

// Save appends a version snapshot. Each version is one INSERT, so the
// per-version atomicity the port requires comes from the database.
func (s *versionStore) Save(ctx context.Context, version domain.RouteVersion) error {
	pointsJSON, err := json.Marshal(version.Points)
	if err != nil {
		return fmt.Errorf("marshalling points: %w", err)
	}
	metricsJSON, err := json.Marshal(version.Metrics)
	if err != nil {
		return fmt.Errorf("marshalling metrics: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO route_versions
			(id, route_id, timestamp, name, description, points, cable_type, diameter, metrics, change_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, version.ID, version.RouteID, version.Timestamp, version.Name, version.Description,
		string(pointsJSON), string(version.CableType), version.Diameter,
		string(metricsJSON), string(version.ChangeType))

	if err != nil {
		return fmt.Errorf("saving version: %w", err)
	}
	return nil
}

// List returns a route's versions newest first. rowid breaks timestamp
// ties so equal-stamp versions present in reverse insertion order.
func (s *versionStore) List(ctx context.Context, routeID string) ([]domain.RouteVersion, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, route_id, timestamp, name, description, points, cable_type, diameter, metrics, change_type
		FROM route_versions
		WHERE route_id = ?
		ORDER BY timestamp DESC, rowid DESC
	`, routeID)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}
	defer rows.Close()

	var versions []domain.RouteVersion
	for rows.Next() {
		var v domain.RouteVersion
		var cableType, changeType, pointsJSON, metricsJSON string
		var timestamp sql.NullTime

		if err := rows.Scan(&v.ID, &v.RouteID, &timestamp, &v.Name, &v.Description,
			&pointsJSON, &cableType, &v.Diameter, &metricsJSON, &changeType); err != nil {
			return nil, fmt.Errorf("scanning version: %w", err)
		}

		if err := json.Unmarshal([]byte(pointsJSON), &v.Points); err != nil {
			return nil, fmt.Errorf("unmarshalling points: %w", err)
		}
		if err := json.Unmarshal([]byte(metricsJSON), &v.Metrics); err != nil {
			return nil, fmt.Errorf("unmarshalling metrics: %w", err)
		}

		v.CableType = domain.CableTypeFromString(cableType)
		v.ChangeType = domain.ChangeType(changeType)
		if timestamp.Valid {
			v.Timestamp = timestamp.Time
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// Delete removes a version from history.
func (s *versionStore) Delete(ctx context.Context, versionID string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM route_versions WHERE id = ?", versionID)
	if err != nil {
		return fmt.Errorf("deleting version: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting version: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
