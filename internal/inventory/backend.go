package inventory

import (
	"context"

	"github.com/vbonduro/labinv/internal/domain"
)

// Backend is the system of record the SyncStore mirrors. Implementations assign
// ids and timestamps; the store only ever hands them validated fields.
type Backend interface {
	ListItems(ctx context.Context) ([]domain.Item, error)
	ListLocations(ctx context.Context) ([]domain.Location, error)

	CreateItem(ctx context.Context, fields domain.ItemFields) (*domain.Item, error)
	UpdateItem(ctx context.Context, id int64, fields domain.ItemFields) (*domain.Item, error)
	DeleteItem(ctx context.Context, id int64) error

	CreateLocation(ctx context.Context, fields domain.LocationFields) (*domain.Location, error)
	UpdateLocation(ctx context.Context, id int64, fields domain.LocationFields) (*domain.Location, error)
	DeleteLocation(ctx context.Context, id int64) error
}

// NextID returns one more than the largest id, or 1 when ids is empty.
func NextID(ids []int64) int64 {
	var maxID int64
	for _, id := range ids {
		if id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}
