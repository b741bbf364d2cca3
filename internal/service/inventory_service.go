package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vbonduro/labinv/internal/domain"
)

// locationRepository is the subset of store.LocationStore that InventoryService requires.
type locationRepository interface {
	Create(ctx context.Context, name string) (*domain.Location, error)
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
	List(ctx context.Context) ([]*domain.Location, error)
	Update(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// itemRepository is the subset of store.ItemStore that InventoryService requires.
type itemRepository interface {
	Create(ctx context.Context, f domain.ItemFields) (*domain.Item, error)
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	List(ctx context.Context) ([]*domain.Item, error)
	ListWithLocations(ctx context.Context) ([]domain.ItemWithLocation, error)
	Search(ctx context.Context, query string) ([]*domain.Item, error)
	Update(ctx context.Context, id int64, f domain.ItemFields) error
	Delete(ctx context.Context, id int64) error
	CountByLocationID(ctx context.Context, locationID int64) (int, error)
}

// InventoryService is the backend of record behind the HTTP API.
type InventoryService struct {
	locationStore locationRepository
	itemStore     itemRepository
	logger        *slog.Logger
}

func NewInventoryService(locationStore locationRepository, itemStore itemRepository, logger *slog.Logger) *InventoryService {
	return &InventoryService{
		locationStore: locationStore,
		itemStore:     itemStore,
		logger:        logger,
	}
}

func (s *InventoryService) ListLocations(ctx context.Context) ([]*domain.Location, error) {
	return s.locationStore.List(ctx)
}

// GetLocation returns domain.ErrNotFound when the location does not exist.
func (s *InventoryService) GetLocation(ctx context.Context, id int64) (*domain.Location, error) {
	loc, err := s.locationStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, fmt.Errorf("location %d: %w", id, domain.ErrNotFound)
	}
	return loc, nil
}

func (s *InventoryService) CreateLocation(ctx context.Context, draft domain.LocationDraft) (*domain.Location, error) {
	f, err := draft.Normalize()
	if err != nil {
		return nil, err
	}
	loc, err := s.locationStore.Create(ctx, f.Name)
	if err != nil {
		return nil, err
	}
	s.logger.Info("location created", "location_id", loc.ID, "name", loc.Name)
	return loc, nil
}

func (s *InventoryService) UpdateLocation(ctx context.Context, id int64, draft domain.LocationDraft) (*domain.Location, error) {
	f, err := draft.Normalize()
	if err != nil {
		return nil, err
	}
	if err := s.locationStore.Update(ctx, id, f.Name); err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}
	return s.GetLocation(ctx, id)
}

// DeleteLocation refuses to delete a location that items still reference.
func (s *InventoryService) DeleteLocation(ctx context.Context, id int64) error {
	n, err := s.itemStore.CountByLocationID(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("location %d has %d items: %w", id, n, domain.ErrLocationInUse)
	}
	if err := s.locationStore.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("location deleted", "location_id", id)
	return nil
}

func (s *InventoryService) ListItems(ctx context.Context) ([]*domain.Item, error) {
	return s.itemStore.List(ctx)
}

func (s *InventoryService) ListItemsWithLocations(ctx context.Context) ([]domain.ItemWithLocation, error) {
	return s.itemStore.ListWithLocations(ctx)
}

// GetItem returns domain.ErrNotFound when the item does not exist.
func (s *InventoryService) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := s.itemStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}
	return item, nil
}

func (s *InventoryService) CreateItem(ctx context.Context, draft domain.ItemDraft) (*domain.Item, error) {
	f, err := s.normalizeItem(ctx, draft)
	if err != nil {
		return nil, err
	}
	item, err := s.itemStore.Create(ctx, f)
	if err != nil {
		return nil, err
	}
	s.logger.Info("item created", "item_id", item.ID, "location_id", item.LocationID)
	return item, nil
}

func (s *InventoryService) UpdateItem(ctx context.Context, id int64, draft domain.ItemDraft) (*domain.Item, error) {
	f, err := s.normalizeItem(ctx, draft)
	if err != nil {
		return nil, err
	}
	if err := s.itemStore.Update(ctx, id, f); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return s.GetItem(ctx, id)
}

func (s *InventoryService) DeleteItem(ctx context.Context, id int64) error {
	return s.itemStore.Delete(ctx, id)
}

// SearchItems matches item names case-insensitively. An empty query lists all items.
func (s *InventoryService) SearchItems(ctx context.Context, query string) ([]*domain.Item, error) {
	if query == "" {
		return s.itemStore.List(ctx)
	}
	return s.itemStore.Search(ctx, query)
}

func (s *InventoryService) normalizeItem(ctx context.Context, draft domain.ItemDraft) (domain.ItemFields, error) {
	f, err := draft.Normalize()
	if err != nil {
		return domain.ItemFields{}, err
	}
	loc, err := s.locationStore.GetByID(ctx, f.LocationID)
	if err != nil {
		return domain.ItemFields{}, err
	}
	if loc == nil {
		return domain.ItemFields{}, &domain.FieldError{Field: "location_id", Reason: "does not exist"}
	}
	return f, nil
}

// SeedSampleData fills an inventory that has no locations with the sample
// locations and items. It reports whether anything was written.
func (s *InventoryService) SeedSampleData(ctx context.Context) (bool, error) {
	n, err := s.locationStore.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	ids := make(map[string]int64, len(domain.SampleLocations))
	for _, name := range domain.SampleLocations {
		loc, err := s.locationStore.Create(ctx, name)
		if err != nil {
			return false, fmt.Errorf("failed to seed location %q: %w", name, err)
		}
		ids[name] = loc.ID
	}
	for _, si := range domain.SampleItems {
		f := domain.ItemFields{Name: si.Name, LocationID: ids[si.Location], Number: si.Number, Price: si.Price}
		if _, err := s.itemStore.Create(ctx, f); err != nil {
			return false, fmt.Errorf("failed to seed item %q: %w", si.Name, err)
		}
	}

	s.logger.Info("seeded sample data", "locations", len(domain.SampleLocations), "items", len(domain.SampleItems))
	return true, nil
}
