// Package local implements inventory.Backend over a passive document store.
// The whole inventory is one JSON document; ids are assigned here.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/vbonduro/labinv/internal/docstore"
	"github.com/vbonduro/labinv/internal/domain"
	"github.com/vbonduro/labinv/internal/inventory"
)

const DefaultKey = "labinv_data"

type Backend struct {
	storage docstore.Storage
	key     string
	seed    bool
	logger  *slog.Logger
	now     func() time.Time

	mu sync.Mutex
}

// New returns a Backend keeping its document under key. When seed is true and
// the document does not exist yet, it is created with the sample inventory.
func New(storage docstore.Storage, key string, seed bool, logger *slog.Logger) *Backend {
	if key == "" {
		key = DefaultKey
	}
	return &Backend{
		storage: storage,
		key:     key,
		seed:    seed,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (b *Backend) ListItems(ctx context.Context) ([]domain.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	inv, err := b.read(ctx)
	if err != nil {
		return nil, err
	}
	return inv.Items, nil
}

func (b *Backend) ListLocations(ctx context.Context) ([]domain.Location, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	inv, err := b.read(ctx)
	if err != nil {
		return nil, err
	}
	return inv.Locations, nil
}

func (b *Backend) CreateItem(ctx context.Context, fields domain.ItemFields) (*domain.Item, error) {
	var created domain.Item
	err := b.update(ctx, func(inv *domain.Inventory) error {
		if !hasLocation(inv, fields.LocationID) {
			return &domain.FieldError{Field: "location_id", Reason: "does not match any location"}
		}
		created = domain.Item{
			ID:         inventory.NextID(itemIDs(inv.Items)),
			Name:       fields.Name,
			LocationID: fields.LocationID,
			Number:     fields.Number,
			Price:      fields.Price,
			Modified:   b.now(),
		}
		inv.Items = append(inv.Items, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	b.logger.Info("item created", "item_id", created.ID, "name", created.Name)
	return &created, nil
}

func (b *Backend) UpdateItem(ctx context.Context, id int64, fields domain.ItemFields) (*domain.Item, error) {
	var updated domain.Item
	err := b.update(ctx, func(inv *domain.Inventory) error {
		i := slices.IndexFunc(inv.Items, func(it domain.Item) bool { return it.ID == id })
		if i < 0 {
			return fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
		}
		if !hasLocation(inv, fields.LocationID) {
			return &domain.FieldError{Field: "location_id", Reason: "does not match any location"}
		}
		updated = domain.Item{
			ID:         id,
			Name:       fields.Name,
			LocationID: fields.LocationID,
			Number:     fields.Number,
			Price:      fields.Price,
			Modified:   b.now(),
		}
		inv.Items[i] = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	b.logger.Info("item updated", "item_id", id)
	return &updated, nil
}

func (b *Backend) DeleteItem(ctx context.Context, id int64) error {
	err := b.update(ctx, func(inv *domain.Inventory) error {
		i := slices.IndexFunc(inv.Items, func(it domain.Item) bool { return it.ID == id })
		if i < 0 {
			return fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
		}
		inv.Items = slices.Delete(inv.Items, i, i+1)
		return nil
	})
	if err != nil {
		return err
	}
	b.logger.Info("item deleted", "item_id", id)
	return nil
}

func (b *Backend) CreateLocation(ctx context.Context, fields domain.LocationFields) (*domain.Location, error) {
	var created domain.Location
	err := b.update(ctx, func(inv *domain.Inventory) error {
		if nameTaken(inv, fields.Name, 0) {
			return fmt.Errorf("location %q: %w", fields.Name, domain.ErrNameTaken)
		}
		created = domain.Location{
			ID:       inventory.NextID(locationIDs(inv.Locations)),
			Name:     fields.Name,
			Modified: b.now(),
		}
		inv.Locations = append(inv.Locations, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	b.logger.Info("location created", "location_id", created.ID, "name", created.Name)
	return &created, nil
}

func (b *Backend) UpdateLocation(ctx context.Context, id int64, fields domain.LocationFields) (*domain.Location, error) {
	var updated domain.Location
	err := b.update(ctx, func(inv *domain.Inventory) error {
		i := slices.IndexFunc(inv.Locations, func(l domain.Location) bool { return l.ID == id })
		if i < 0 {
			return fmt.Errorf("location %d: %w", id, domain.ErrNotFound)
		}
		if nameTaken(inv, fields.Name, id) {
			return fmt.Errorf("location %q: %w", fields.Name, domain.ErrNameTaken)
		}
		updated = domain.Location{ID: id, Name: fields.Name, Modified: b.now()}
		inv.Locations[i] = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	b.logger.Info("location updated", "location_id", id)
	return &updated, nil
}

func (b *Backend) DeleteLocation(ctx context.Context, id int64) error {
	err := b.update(ctx, func(inv *domain.Inventory) error {
		i := slices.IndexFunc(inv.Locations, func(l domain.Location) bool { return l.ID == id })
		if i < 0 {
			return fmt.Errorf("location %d: %w", id, domain.ErrNotFound)
		}
		n := 0
		for _, it := range inv.Items {
			if it.LocationID == id {
				n++
			}
		}
		if n > 0 {
			return fmt.Errorf("location %d has %d item(s): %w", id, n, domain.ErrLocationInUse)
		}
		inv.Locations = slices.Delete(inv.Locations, i, i+1)
		return nil
	})
	if err != nil {
		return err
	}
	b.logger.Info("location deleted", "location_id", id)
	return nil
}

// update applies fn to the stored document and writes it back. Nothing is
// written when fn fails.
func (b *Backend) update(ctx context.Context, fn func(inv *domain.Inventory) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	inv, err := b.read(ctx)
	if err != nil {
		return err
	}
	if err := fn(inv); err != nil {
		return err
	}
	return b.write(ctx, inv)
}

// read must be called with b.mu held.
func (b *Backend) read(ctx context.Context) (*domain.Inventory, error) {
	data, err := b.storage.Get(ctx, b.key)
	if errors.Is(err, docstore.ErrNotFound) {
		inv := &domain.Inventory{Items: []domain.Item{}, Locations: []domain.Location{}}
		if !b.seed {
			return inv, nil
		}
		sampleInventory(inv, b.now())
		if err := b.write(ctx, inv); err != nil {
			return nil, err
		}
		b.logger.Info("seeded sample inventory", "key", b.key, "items", len(inv.Items), "locations", len(inv.Locations))
		return inv, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory: %w", err)
	}

	var inv domain.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("failed to decode inventory: %w", err)
	}
	if inv.Items == nil {
		inv.Items = []domain.Item{}
	}
	if inv.Locations == nil {
		inv.Locations = []domain.Location{}
	}
	return &inv, nil
}

func (b *Backend) write(ctx context.Context, inv *domain.Inventory) error {
	data, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("failed to encode inventory: %w", err)
	}
	if err := b.storage.Put(ctx, b.key, data); err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}
	return nil
}

func sampleInventory(inv *domain.Inventory, now time.Time) {
	ids := make(map[string]int64, len(domain.SampleLocations))
	for _, name := range domain.SampleLocations {
		loc := domain.Location{ID: inventory.NextID(locationIDs(inv.Locations)), Name: name, Modified: now}
		ids[name] = loc.ID
		inv.Locations = append(inv.Locations, loc)
	}
	for _, s := range domain.SampleItems {
		inv.Items = append(inv.Items, domain.Item{
			ID:         inventory.NextID(itemIDs(inv.Items)),
			Name:       s.Name,
			LocationID: ids[s.Location],
			Number:     s.Number,
			Price:      s.Price,
			Modified:   now,
		})
	}
}

func hasLocation(inv *domain.Inventory, id int64) bool {
	return slices.ContainsFunc(inv.Locations, func(l domain.Location) bool { return l.ID == id })
}

func nameTaken(inv *domain.Inventory, name string, exceptID int64) bool {
	return slices.ContainsFunc(inv.Locations, func(l domain.Location) bool {
		return l.Name == name && l.ID != exceptID
	})
}

func itemIDs(items []domain.Item) []int64 {
	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func locationIDs(locs []domain.Location) []int64 {
	ids := make([]int64, len(locs))
	for i, l := range locs {
		ids[i] = l.ID
	}
	return ids
}
