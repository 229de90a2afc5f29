package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ghuser/stocktrack/pkg/database"
	inventorydomain "github.com/ghuser/stocktrack/services/inventory/domain"
	"github.com/ghuser/stocktrack/services/inventory/domain/models"
)

// LocationRepository implements repositories.LocationRepository against PostgreSQL.
type LocationRepository struct {
	db *database.Database
}

// NewLocationRepository returns a LocationRepository backed by the given pool.
func NewLocationRepository(database *database.Database) *LocationRepository {
	return &LocationRepository{db: database}
}

const locationColumns = `id, name, description, image_url, created_at, updated_at`

// Save persists a new Location.
func (r *LocationRepository) Save(ctx context.Context, loc *models.Location) error {
	_, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO locations (id, name, description, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		loc.ID, loc.Name.String(), loc.Description, loc.ImageURL, loc.CreatedAt, loc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID retrieves a Location by ID. Returns ErrLocationNotFound if not found.
func (r *LocationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE id = $1`, id)
	loc, err := scanLocation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, inventorydomain.ErrLocationNotFound
		}
		return nil, fmt.Errorf("query location: %w", err)
	}
	return loc, nil
}

// GetByIDs retrieves locations for the given ids, keyed by id. Missing ids
// are absent from the result without error.
func (r *LocationRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Location, error) {
	result := make(map[uuid.UUID]*models.Location, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE id IN (`+strings.Join(placeholders, ", ")+`)`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query locations by ids: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		result[loc.ID] = loc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}
	return result, nil
}

// FindAll retrieves every location, newest first.
func (r *LocationRepository) FindAll(ctx context.Context) ([]*models.Location, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT `+locationColumns+` FROM locations ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var locs []*models.Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locs = append(locs, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}
	return locs, nil
}

// Update persists changes to an existing Location.
// Returns ErrLocationNotFound if the location does not exist.
func (r *LocationRepository) Update(ctx context.Context, loc *models.Location) error {
	res, err := r.db.DB().ExecContext(ctx, `
		UPDATE locations
		SET name = $2, description = $3, image_url = $4, updated_at = $5
		WHERE id = $1`,
		loc.ID, loc.Name.String(), loc.Description, loc.ImageURL, loc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update location rows affected: %w", err)
	}
	if n == 0 {
		return inventorydomain.ErrLocationNotFound
	}
	return nil
}

// Delete removes a location by ID. The items FK is ON DELETE SET NULL, so
// referencing items drop back to the pending pool in the same statement.
// Returns ErrLocationNotFound if the location does not exist.
func (r *LocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.DB().ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete location rows affected: %w", err)
	}
	if n == 0 {
		return inventorydomain.ErrLocationNotFound
	}
	return nil
}

func scanLocation(row rowScanner) (*models.Location, error) {
	var (
		loc  models.Location
		name string
	)
	err := row.Scan(&loc.ID, &name, &loc.Description, &loc.ImageURL, &loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	loc.Name = models.LocationName(name)
	return &loc, nil
}
