package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jvanvugt/auto-cli/internal/domain/app"
	"github.com/jvanvugt/auto-cli/internal/log"
)

// appColumns is the list of columns to select for app queries.
const appColumns = `name, location, position, created_at, updated_at`

// appRepository implements app.Repository using SQLite.
type appRepository struct {
	db *DB
}

// NewAppRepository creates an app.Repository backed by the given database.
func NewAppRepository(db *DB) app.Repository {
	return &appRepository{db: db}
}

// Ensure appRepository implements app.Repository.
var _ app.Repository = (*appRepository)(nil)

// scanApp scans a row into an appModel.
func scanApp(scanner interface{ Scan(...any) error }) (appModel, error) {
	var m appModel
	err := scanner.Scan(&m.Name, &m.Location, &m.Position, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// Save upserts an app keyed by name. A new app is appended at the end of the
// registration order; re-registering keeps the original position and creation
// time, overwriting only the location.
func (r *appRepository) Save(a *app.App) error {
	m := toModel(a)
	_, err := r.db.conn.Exec(
		`INSERT INTO apps (name, location, position, created_at, updated_at)
		 VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM apps), ?, ?)
		 ON CONFLICT(name) DO UPDATE SET location = excluded.location, updated_at = excluded.updated_at`,
		m.Name, m.Location, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save app %q: %w", m.Name, err)
	}
	log.Debug(log.CatStore, "Saved app", "name", m.Name, "location", m.Location)
	return nil
}

// Get retrieves an app by name.
func (r *appRepository) Get(name string) (*app.App, error) {
	row := r.db.conn.QueryRow(`SELECT `+appColumns+` FROM apps WHERE name = ?`, name)
	m, err := scanApp(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &app.NotFoundError{Name: name}
	}
	if err != nil {
		return nil, fmt.Errorf("get app %q: %w", name, err)
	}
	return m.toDomain(), nil
}

// List returns all apps in registration order.
func (r *appRepository) List() ([]*app.App, error) {
	rows, err := r.db.conn.Query(`SELECT ` + appColumns + ` FROM apps ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list apps: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var apps []*app.App
	for rows.Next() {
		m, err := scanApp(rows)
		if err != nil {
			return nil, fmt.Errorf("scan app row: %w", err)
		}
		apps = append(apps, m.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate app rows: %w", err)
	}
	return apps, nil
}

// Delete removes an app by name.
func (r *appRepository) Delete(name string) error {
	result, err := r.db.conn.Exec(`DELETE FROM apps WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete app %q: %w", name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete app %q: %w", name, err)
	}
	if affected == 0 {
		return &app.NotFoundError{Name: name}
	}
	log.Debug(log.CatStore, "Deleted app", "name", name)
	return nil
}

// Close closes the underlying database.
func (r *appRepository) Close() error {
	return r.db.Close()
}
