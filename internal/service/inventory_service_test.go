package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/labinv/internal/db"
	"github.com/vbonduro/labinv/internal/domain"
	"github.com/vbonduro/labinv/internal/store"
)

func newTestService(t *testing.T) *InventoryService {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, d.Close()) })

	return NewInventoryService(store.NewLocationStore(d), store.NewItemStore(d), slog.Default())
}

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func TestInventoryServiceCreateLocation(t *testing.T) {
	svc := newTestService(t)

	loc, err := svc.CreateLocation(context.Background(), domain.LocationDraft{Name: "  Storage Room "})
	require.NoError(t, err)
	assert.NotZero(t, loc.ID)
	assert.Equal(t, "Storage Room", loc.Name)
}

func TestInventoryServiceCreateLocation_EmptyName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateLocation(context.Background(), domain.LocationDraft{Name: " "})
	var fe *domain.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "name", fe.Field)
}

func TestInventoryServiceUpdateLocation_DuplicateName_ReturnsErrNameTaken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateLocation(ctx, domain.LocationDraft{Name: "Storage Room"})
	require.NoError(t, err)
	other, err := svc.CreateLocation(ctx, domain.LocationDraft{Name: "Electronics"})
	require.NoError(t, err)

	_, err = svc.UpdateLocation(ctx, other.ID, domain.LocationDraft{Name: "Storage Room"})
	require.ErrorIs(t, err, domain.ErrNameTaken)
}

func TestInventoryServiceGetLocation_NotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetLocation(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInventoryServiceCreateItem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	loc, err := svc.CreateLocation(ctx, domain.LocationDraft{Name: "Assembly Room"})
	require.NoError(t, err)

	item, err := svc.CreateItem(ctx, domain.ItemDraft{Name: "Wood Glue", LocationID: loc.ID, Number: intPtr(8), Price: floatPtr(9)})
	require.NoError(t, err)
	assert.Equal(t, "Wood Glue", item.Name)
	assert.Equal(t, 8, item.Number)
}

func TestInventoryServiceCreateItem_Defaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	loc, err := svc.CreateLocation(ctx, domain.LocationDraft{Name: "Assembly Room"})
	require.NoError(t, err)

	item, err := svc.CreateItem(ctx, domain.ItemDraft{Name: "Clamp", LocationID: loc.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, item.Number)
	assert.Zero(t, item.Price)
}

func TestInventoryServiceCreateItem_UnknownLocation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateItem(context.Background(), domain.ItemDraft{Name: "Orphan", LocationID: 77})
	var fe *domain.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "location_id", fe.Field)
}

func TestInventoryServiceUpdateItem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	loc, err := svc.CreateLocation(ctx, domain.LocationDraft{Name: "Storage Room"})
	require.NoError(t, err)
	item, err := svc.CreateItem(ctx, domain.ItemDraft{Name: "MDF", LocationID: loc.ID, Number: intPtr(3)})
	require.NoError(t, err)

	// Full replace: omitted number resets to zero.
	updated, err := svc.UpdateItem(ctx, item.ID, domain.ItemDraft{Name: "MDF 4mm 900x600mm Sheet", LocationID: loc.ID, Price: floatPtr(5.67)})
	require.NoError(t, err)
	assert.Equal(t, "MDF 4mm 900x600mm Sheet", updated.Name)
	assert.Equal(t, 0, updated.Number)
	assert.InDelta(t, 5.67, updated.Price, 1e-9)
}

func TestInventoryServiceUpdateItem_NotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	loc, err := svc.CreateLocation(ctx, domain.LocationDraft{Name: "Storage Room"})
	require.NoError(t, err)

	_, err = svc.UpdateItem(ctx, 999, domain.ItemDraft{Name: "x", LocationID: loc.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInventoryServiceDeleteLocation_InUse(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	loc, err := svc.CreateLocation(ctx, domain.LocationDraft{Name: "Electronics"})
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, domain.ItemDraft{Name: "Resistor SMT 200", LocationID: loc.ID})
	require.NoError(t, err)

	err = svc.DeleteLocation(ctx, loc.ID)
	require.ErrorIs(t, err, domain.ErrLocationInUse)

	_, err = svc.GetLocation(ctx, loc.ID)
	assert.NoError(t, err)
}

func TestInventoryServiceDeleteItemThenLocation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	loc, err := svc.CreateLocation(ctx, domain.LocationDraft{Name: "Electronics"})
	require.NoError(t, err)
	item, err := svc.CreateItem(ctx, domain.ItemDraft{Name: "Resistor SMT 200", LocationID: loc.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(ctx, item.ID))
	require.NoError(t, svc.DeleteLocation(ctx, loc.ID))

	_, err = svc.GetLocation(ctx, loc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInventoryServiceSearchItems(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	seeded, err := svc.SeedSampleData(ctx)
	require.NoError(t, err)
	require.True(t, seeded)

	results, err := svc.SearchItems(ctx, "sheet")
	require.NoError(t, err)
	assert.Len(t, results, 3)

	all, err := svc.SearchItems(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, len(domain.SampleItems))
}

func TestInventoryServiceSeedSampleData_OnlyWhenEmpty(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	seeded, err := svc.SeedSampleData(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = svc.SeedSampleData(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	locations, err := svc.ListLocations(ctx)
	require.NoError(t, err)
	assert.Len(t, locations, len(domain.SampleLocations))
}

func TestInventoryServiceListItemsWithLocations(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.SeedSampleData(ctx)
	require.NoError(t, err)

	list, err := svc.ListItemsWithLocations(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(domain.SampleItems))
	for i, want := range domain.SampleItems {
		assert.Equal(t, want.Name, list[i].Name)
		assert.Equal(t, want.Location, list[i].Location)
	}
}
