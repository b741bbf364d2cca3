package inventory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/vbonduro/labinv/internal/domain"
)

// stubBackend is an in-memory Backend that counts calls and can be told to fail.
type stubBackend struct {
	mu        sync.Mutex
	items     []domain.Item
	locations []domain.Location
	calls     map[string]int

	listItemsErr     error
	listLocationsErr error
	mutationErr      error

	// afterCreateItem runs with the lock held once CreateItem has stored its item.
	afterCreateItem func(b *stubBackend)
}

func newStubBackend() *stubBackend {
	b := &stubBackend{calls: map[string]int{}}
	ids := map[string]int64{}
	for i, name := range domain.SampleLocations {
		id := int64(i + 1)
		ids[name] = id
		b.locations = append(b.locations, domain.Location{ID: id, Name: name, Modified: stubTime})
	}
	for i, si := range domain.SampleItems {
		b.items = append(b.items, domain.Item{
			ID:         int64(i + 1),
			Name:       si.Name,
			LocationID: ids[si.Location],
			Number:     si.Number,
			Price:      si.Price,
			Modified:   stubTime,
		})
	}
	return b
}

var stubTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func (b *stubBackend) count(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

func (b *stubBackend) mutations() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for op, c := range b.calls {
		if op != "ListItems" && op != "ListLocations" {
			n += c
		}
	}
	return n
}

func (b *stubBackend) set(fn func(b *stubBackend)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(b)
}

func (b *stubBackend) ListItems(_ context.Context) ([]domain.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["ListItems"]++
	if b.listItemsErr != nil {
		return nil, b.listItemsErr
	}
	return slices.Clone(b.items), nil
}

func (b *stubBackend) ListLocations(_ context.Context) ([]domain.Location, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["ListLocations"]++
	if b.listLocationsErr != nil {
		return nil, b.listLocationsErr
	}
	return slices.Clone(b.locations), nil
}

func (b *stubBackend) CreateItem(_ context.Context, f domain.ItemFields) (*domain.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["CreateItem"]++
	if b.mutationErr != nil {
		return nil, b.mutationErr
	}
	item := domain.Item{ID: NextID(itemIDs(b.items)), Name: f.Name, LocationID: f.LocationID, Number: f.Number, Price: f.Price, Modified: stubTime}
	b.items = append(b.items, item)
	if b.afterCreateItem != nil {
		b.afterCreateItem(b)
	}
	return &item, nil
}

func (b *stubBackend) UpdateItem(_ context.Context, id int64, f domain.ItemFields) (*domain.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["UpdateItem"]++
	if b.mutationErr != nil {
		return nil, b.mutationErr
	}
	for i := range b.items {
		if b.items[i].ID == id {
			b.items[i] = domain.Item{ID: id, Name: f.Name, LocationID: f.LocationID, Number: f.Number, Price: f.Price, Modified: stubTime.Add(time.Hour)}
			item := b.items[i]
			return &item, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (b *stubBackend) DeleteItem(_ context.Context, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["DeleteItem"]++
	if b.mutationErr != nil {
		return b.mutationErr
	}
	for i := range b.items {
		if b.items[i].ID == id {
			b.items = slices.Delete(b.items, i, i+1)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (b *stubBackend) CreateLocation(_ context.Context, f domain.LocationFields) (*domain.Location, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["CreateLocation"]++
	if b.mutationErr != nil {
		return nil, b.mutationErr
	}
	ids := make([]int64, len(b.locations))
	for i, l := range b.locations {
		ids[i] = l.ID
	}
	loc := domain.Location{ID: NextID(ids), Name: f.Name, Modified: stubTime}
	b.locations = append(b.locations, loc)
	return &loc, nil
}

func (b *stubBackend) UpdateLocation(_ context.Context, id int64, f domain.LocationFields) (*domain.Location, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["UpdateLocation"]++
	if b.mutationErr != nil {
		return nil, b.mutationErr
	}
	for i := range b.locations {
		if b.locations[i].ID == id {
			b.locations[i] = domain.Location{ID: id, Name: f.Name, Modified: stubTime.Add(time.Hour)}
			loc := b.locations[i]
			return &loc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (b *stubBackend) DeleteLocation(_ context.Context, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls["DeleteLocation"]++
	if b.mutationErr != nil {
		return b.mutationErr
	}
	for _, it := range b.items {
		if it.LocationID == id {
			return fmt.Errorf("location %d has items: %w", id, domain.ErrLocationInUse)
		}
	}
	for i := range b.locations {
		if b.locations[i].ID == id {
			b.locations = slices.Delete(b.locations, i, i+1)
			return nil
		}
	}
	return domain.ErrNotFound
}

func itemIDs(items []domain.Item) []int64 {
	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
