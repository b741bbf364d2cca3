package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vbonduro/labinv/internal/domain"
)

type ItemStore struct {
	db *sql.DB
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

const itemColumns = `id, location_id, name, number, price, modified`

func scanItem(sc interface{ Scan(...any) error }, item *domain.Item) error {
	return sc.Scan(&item.ID, &item.LocationID, &item.Name, &item.Number, &item.Price, &item.Modified)
}

func (s *ItemStore) Create(ctx context.Context, f domain.ItemFields) (*domain.Item, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO items (location_id, name, number, price) VALUES (?, ?, ?, ?)
	`, f.LocationID, f.Name, f.Number, f.Price)
	if err != nil {
		if constraintFailed(err, "FOREIGN KEY") {
			return nil, &domain.FieldError{Field: "location_id", Reason: "does not exist"}
		}
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID returns nil, nil when no item has the given id.
func (s *ItemStore) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	item := &domain.Item{}
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	err := scanItem(row, item)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

func (s *ItemStore) List(ctx context.Context) ([]*domain.Item, error) {
	return s.query(ctx, "list", `SELECT `+itemColumns+` FROM items ORDER BY id ASC`)
}

// Search returns the items whose name contains query, ignoring case. Matching
// is done here rather than with LIKE, which treats % and _ as wildcards and
// only folds ASCII case.
func (s *ItemStore) Search(ctx context.Context, query string) ([]*domain.Item, error) {
	all, err := s.query(ctx, "search", `SELECT `+itemColumns+` FROM items ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	matches := []*domain.Item{}
	for _, item := range all {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			matches = append(matches, item)
		}
	}
	return matches, nil
}

func (s *ItemStore) query(ctx context.Context, op, q string, args ...any) ([]*domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to %s items: %w", op, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	items := []*domain.Item{}
	for rows.Next() {
		item := &domain.Item{}
		if err := scanItem(rows, item); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// ListWithLocations joins every item with its location name. Items whose
// location cannot be found get domain.UnknownLocation.
func (s *ItemStore) ListWithLocations(ctx context.Context) ([]domain.ItemWithLocation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.location_id, i.name, i.number, i.price, i.modified, COALESCE(l.name, '')
		FROM items i LEFT JOIN locations l ON l.id = i.location_id
		ORDER BY i.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items with locations: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	out := []domain.ItemWithLocation{}
	for rows.Next() {
		var item domain.Item
		var locationName string
		if err := rows.Scan(&item.ID, &item.LocationID, &item.Name, &item.Number, &item.Price, &item.Modified, &locationName); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		out = append(out, item.WithLocation(locationName))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return out, nil
}

// Update replaces every editable field of the item.
func (s *ItemStore) Update(ctx context.Context, id int64, f domain.ItemFields) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE items SET location_id = ?, name = ?, number = ?, price = ?, modified = datetime('now')
		WHERE id = ?
	`, f.LocationID, f.Name, f.Number, f.Price, id)
	if err != nil {
		if constraintFailed(err, "FOREIGN KEY") {
			return &domain.FieldError{Field: "location_id", Reason: "does not exist"}
		}
		return fmt.Errorf("failed to update item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (s *ItemStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM items WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (s *ItemStore) CountByLocationID(ctx context.Context, locationID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM items WHERE location_id = ?
	`, locationID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return n, nil
}
