package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vbonduro/labinv/internal/domain"
)

const (
	opLoad           = "load"
	opCreateItem     = "create item"
	opUpdateItem     = "update item"
	opDeleteItem     = "delete item"
	opCreateLocation = "create location"
	opUpdateLocation = "update location"
	opDeleteLocation = "delete location"
)

type snapshot struct {
	items     []domain.Item
	locations []domain.Location
}

// SyncStore keeps a read-only mirror of the backend's items and locations.
// Every successful mutation is followed by a full reload so the mirror only
// ever holds what the backend reported.
type SyncStore struct {
	backend Backend
	logger  *slog.Logger

	mu     sync.RWMutex
	snap   *snapshot
	loaded bool
}

func New(backend Backend, logger *slog.Logger) *SyncStore {
	return &SyncStore{
		backend: backend,
		logger:  logger,
		snap:    &snapshot{items: []domain.Item{}, locations: []domain.Location{}},
	}
}

// Load fetches items and locations concurrently and replaces the mirror. If
// either fetch fails the mirror is left as it was.
func (s *SyncStore) Load(ctx context.Context) error {
	return s.reload(ctx, opLoad)
}

func (s *SyncStore) reload(ctx context.Context, op string) error {
	var (
		items            []domain.Item
		locations        []domain.Location
		itemsErr, locErr error
		g                errgroup.Group
	)
	g.Go(func() error {
		var err error
		if items, err = s.backend.ListItems(ctx); err != nil {
			itemsErr = fmt.Errorf("failed to list items: %w", err)
		}
		return itemsErr
	})
	g.Go(func() error {
		var err error
		if locations, err = s.backend.ListLocations(ctx); err != nil {
			locErr = fmt.Errorf("failed to list locations: %w", err)
		}
		return locErr
	})
	// Wait reports only the first failure; both are kept for the SyncError.
	if g.Wait() != nil {
		err := errors.Join(itemsErr, locErr)
		s.logger.Warn("inventory reload failed", "op", op, "error", err)
		return &SyncError{Op: op, Err: err}
	}

	if items == nil {
		items = []domain.Item{}
	}
	if locations == nil {
		locations = []domain.Location{}
	}

	s.mu.Lock()
	s.snap = &snapshot{items: items, locations: locations}
	s.loaded = true
	s.mu.Unlock()

	s.logger.Debug("inventory reloaded", "op", op, "items", len(items), "locations", len(locations))
	return nil
}

func (s *SyncStore) current() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// CreateItem validates the draft against the mirror, submits it and reloads.
// On a *SyncError the item was created and is still returned.
func (s *SyncStore) CreateItem(ctx context.Context, draft domain.ItemDraft) (*domain.Item, error) {
	fields, err := s.validateItem(draft)
	if err != nil {
		return nil, err
	}
	item, err := s.backend.CreateItem(ctx, fields)
	if err != nil {
		return nil, s.backendFailed(opCreateItem, err)
	}
	return item, s.reload(ctx, opCreateItem)
}

// UpdateItem replaces item id with the validated draft and reloads.
func (s *SyncStore) UpdateItem(ctx context.Context, id int64, draft domain.ItemDraft) (*domain.Item, error) {
	fields, err := s.validateItem(draft)
	if err != nil {
		return nil, err
	}
	item, err := s.backend.UpdateItem(ctx, id, fields)
	if err != nil {
		return nil, s.backendFailed(opUpdateItem, err, "item_id", id)
	}
	return item, s.reload(ctx, opUpdateItem)
}

func (s *SyncStore) DeleteItem(ctx context.Context, id int64) error {
	if err := s.backend.DeleteItem(ctx, id); err != nil {
		return s.backendFailed(opDeleteItem, err, "item_id", id)
	}
	return s.reload(ctx, opDeleteItem)
}

func (s *SyncStore) CreateLocation(ctx context.Context, draft domain.LocationDraft) (*domain.Location, error) {
	fields, err := validateLocation(draft)
	if err != nil {
		return nil, err
	}
	loc, err := s.backend.CreateLocation(ctx, fields)
	if err != nil {
		return nil, s.backendFailed(opCreateLocation, err)
	}
	return loc, s.reload(ctx, opCreateLocation)
}

func (s *SyncStore) UpdateLocation(ctx context.Context, id int64, draft domain.LocationDraft) (*domain.Location, error) {
	fields, err := validateLocation(draft)
	if err != nil {
		return nil, err
	}
	loc, err := s.backend.UpdateLocation(ctx, id, fields)
	if err != nil {
		return nil, s.backendFailed(opUpdateLocation, err, "location_id", id)
	}
	return loc, s.reload(ctx, opUpdateLocation)
}

// DeleteLocation refuses to delete a location that items in the mirror still
// reference, without contacting the backend.
func (s *SyncStore) DeleteLocation(ctx context.Context, id int64) error {
	if n := s.LocationItemCount(id); n > 0 {
		return &ReferentialIntegrityError{LocationID: id, ItemCount: n}
	}
	if err := s.backend.DeleteLocation(ctx, id); err != nil {
		if errors.Is(err, domain.ErrLocationInUse) {
			s.logger.Warn("backend refused location delete", "location_id", id, "error", err)
			return &ReferentialIntegrityError{LocationID: id, Err: err}
		}
		return s.backendFailed(opDeleteLocation, err, "location_id", id)
	}
	return s.reload(ctx, opDeleteLocation)
}

func (s *SyncStore) backendFailed(op string, err error, args ...any) error {
	s.logger.Warn("inventory mutation failed", append([]any{"op", op, "error", err}, args...)...)
	return &BackendError{Op: op, Err: err}
}

// Search returns the mirrored items whose name contains term, ignoring case.
// A blank term returns every item.
func (s *SyncStore) Search(term string) []domain.Item {
	items := s.current().items
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return slices.Clone(items)
	}
	out := []domain.Item{}
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), term) {
			out = append(out, it)
		}
	}
	return out
}

func (s *SyncStore) NextItemID() int64 {
	items := s.current().items
	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return NextID(ids)
}

func (s *SyncStore) NextLocationID() int64 {
	locs := s.current().locations
	ids := make([]int64, len(locs))
	for i, l := range locs {
		ids[i] = l.ID
	}
	return NextID(ids)
}
