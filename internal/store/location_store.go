package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vbonduro/labinv/internal/domain"
)

type LocationStore struct {
	db *sql.DB
}

func NewLocationStore(db *sql.DB) *LocationStore {
	return &LocationStore{db: db}
}

func (s *LocationStore) Create(ctx context.Context, name string) (*domain.Location, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO locations (name) VALUES (?)
	`, name)
	if err != nil {
		if constraintFailed(err, "UNIQUE") {
			return nil, fmt.Errorf("location %q: %w", name, domain.ErrNameTaken)
		}
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID returns nil, nil when no location has the given id.
func (s *LocationStore) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	loc := &domain.Location{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, modified FROM locations WHERE id = ?
	`, id).Scan(&loc.ID, &loc.Name, &loc.Modified)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	return loc, nil
}

func (s *LocationStore) List(ctx context.Context) ([]*domain.Location, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, modified FROM locations ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	locations := []*domain.Location{}
	for rows.Next() {
		loc := &domain.Location{}
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Modified); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locations: %w", err)
	}

	return locations, nil
}

func (s *LocationStore) Update(ctx context.Context, id int64, name string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE locations SET name = ?, modified = datetime('now') WHERE id = ?
	`, name, id)
	if err != nil {
		if constraintFailed(err, "UNIQUE") {
			return fmt.Errorf("location %q: %w", name, domain.ErrNameTaken)
		}
		return fmt.Errorf("failed to update location: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("location %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a location. Items referencing it block the delete with
// domain.ErrLocationInUse.
func (s *LocationStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM locations WHERE id = ?
	`, id)
	if err != nil {
		if constraintFailed(err, "FOREIGN KEY") {
			return fmt.Errorf("location %d: %w", id, domain.ErrLocationInUse)
		}
		return fmt.Errorf("failed to delete location: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("location %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (s *LocationStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM locations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count locations: %w", err)
	}
	return n, nil
}
