package inventory

import (
	"slices"

	"github.com/vbonduro/labinv/internal/domain"
)

// Loaded reports whether the mirror has been filled at least once.
func (s *SyncStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *SyncStore) Items() []domain.Item {
	return slices.Clone(s.current().items)
}

func (s *SyncStore) Locations() []domain.Location {
	return slices.Clone(s.current().locations)
}

// Snapshot returns a copy of the whole mirror.
func (s *SyncStore) Snapshot() domain.Inventory {
	snap := s.current()
	return domain.Inventory{
		Items:     slices.Clone(snap.items),
		Locations: slices.Clone(snap.locations),
	}
}

func (s *SyncStore) Item(id int64) (domain.Item, bool) {
	for _, it := range s.current().items {
		if it.ID == id {
			return it, true
		}
	}
	return domain.Item{}, false
}

func (s *SyncStore) Location(id int64) (domain.Location, bool) {
	for _, l := range s.current().locations {
		if l.ID == id {
			return l, true
		}
	}
	return domain.Location{}, false
}

// ItemsWithLocations joins every item with its location's name.
func (s *SyncStore) ItemsWithLocations() []domain.ItemWithLocation {
	snap := s.current()
	names := make(map[int64]string, len(snap.locations))
	for _, l := range snap.locations {
		names[l.ID] = l.Name
	}
	out := make([]domain.ItemWithLocation, len(snap.items))
	for i, it := range snap.items {
		out[i] = it.WithLocation(names[it.LocationID])
	}
	return out
}

// LocationItemCount returns how many mirrored items reference location id.
func (s *SyncStore) LocationItemCount(id int64) int {
	n := 0
	for _, it := range s.current().items {
		if it.LocationID == id {
			n++
		}
	}
	return n
}
