package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/labinv/internal/domain"
)

func TestItemStoreCreate(t *testing.T) {
	d := openTestDB(t)
	locations := NewLocationStore(d)
	items := NewItemStore(d)
	ctx := context.Background()

	loc, err := locations.Create(ctx, "Assembly Room")
	require.NoError(t, err)

	item, err := items.Create(ctx, domain.ItemFields{Name: "Wood Glue", LocationID: loc.ID, Number: 8, Price: 9})
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, "Wood Glue", item.Name)
	assert.Equal(t, loc.ID, item.LocationID)
	assert.Equal(t, 8, item.Number)
	assert.InDelta(t, 9.0, item.Price, 1e-9)
	assert.False(t, item.Modified.IsZero())
}

func TestItemStoreCreate_UnknownLocation(t *testing.T) {
	items := NewItemStore(openTestDB(t))

	_, err := items.Create(context.Background(), domain.ItemFields{Name: "Orphan", LocationID: 99999})
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestItemStoreList(t *testing.T) {
	d := openTestDB(t)
	locations := NewLocationStore(d)
	items := NewItemStore(d)
	ctx := context.Background()

	loc, err := locations.Create(ctx, "Storage Room")
	require.NoError(t, err)

	_, err = items.Create(ctx, domain.ItemFields{Name: "Plywood 2mm 900x600mm Sheet", LocationID: loc.ID})
	require.NoError(t, err)
	_, err = items.Create(ctx, domain.ItemFields{Name: "MDF 4mm 900x600mm Sheet", LocationID: loc.ID})
	require.NoError(t, err)

	list, err := items.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Results keep insertion order
	assert.Equal(t, "Plywood 2mm 900x600mm Sheet", list[0].Name)
	assert.Equal(t, "MDF 4mm 900x600mm Sheet", list[1].Name)

	n, err := items.CountByLocationID(ctx, loc.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestItemStoreSearch_CaseInsensitive(t *testing.T) {
	d := openTestDB(t)
	locations := NewLocationStore(d)
	items := NewItemStore(d)
	ctx := context.Background()

	loc, err := locations.Create(ctx, "Assembly Room")
	require.NoError(t, err)
	_, err = items.Create(ctx, domain.ItemFields{Name: "Wood Glue", LocationID: loc.ID})
	require.NoError(t, err)
	_, err = items.Create(ctx, domain.ItemFields{Name: "Resistor SMT 200", LocationID: loc.ID})
	require.NoError(t, err)

	results, err := items.Search(ctx, "WOOD")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Wood Glue", results[0].Name)
}

func TestItemStoreSearch_LiteralAndUnicode(t *testing.T) {
	d := openTestDB(t)
	locations := NewLocationStore(d)
	items := NewItemStore(d)
	ctx := context.Background()

	loc, err := locations.Create(ctx, "Wet Lab")
	require.NoError(t, err)
	for _, name := range []string{"Wood Glue", "Resistor 10%", "Éprouvette"} {
		_, err := items.Create(ctx, domain.ItemFields{Name: name, LocationID: loc.ID})
		require.NoError(t, err)
	}

	tests := []struct {
		query string
		want  []string
	}{
		{query: "%", want: []string{"Resistor 10%"}},
		{query: "_", want: []string{}},
		{query: "10%", want: []string{"Resistor 10%"}},
		{query: "Éprouvette", want: []string{"Éprouvette"}},
		{query: "éprouvette", want: []string{"Éprouvette"}},
		{query: "ÉPROUVETTE", want: []string{"Éprouvette"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			results, err := items.Search(ctx, tt.query)
			require.NoError(t, err)
			names := []string{}
			for _, r := range results {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestItemStoreSearch_NoMatch(t *testing.T) {
	d := openTestDB(t)
	locations := NewLocationStore(d)
	items := NewItemStore(d)
	ctx := context.Background()

	loc, err := locations.Create(ctx, "Electronics")
	require.NoError(t, err)
	_, err = items.Create(ctx, domain.ItemFields{Name: "Resistor SMT 200", LocationID: loc.ID})
	require.NoError(t, err)

	results, err := items.Search(ctx, "nonexistent")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestItemStoreListWithLocations(t *testing.T) {
	d := openTestDB(t)
	locations := NewLocationStore(d)
	items := NewItemStore(d)
	ctx := context.Background()

	loc, err := locations.Create(ctx, "Electronics")
	require.NoError(t, err)
	_, err = items.Create(ctx, domain.ItemFields{Name: "Resistor SMT 200", LocationID: loc.ID, Number: 150, Price: 0.2})
	require.NoError(t, err)

	list, err := items.ListWithLocations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Electronics", list[0].Location)
	assert.Equal(t, 150, list[0].Number)
}

func TestItemStoreUpdate(t *testing.T) {
	d := openTestDB(t)
	locations := NewLocationStore(d)
	items := NewItemStore(d)
	ctx := context.Background()

	storage, err := locations.Create(ctx, "Storage Room")
	require.NoError(t, err)
	assembly, err := locations.Create(ctx, "Assembly Room")
	require.NoError(t, err)

	item, err := items.Create(ctx, domain.ItemFields{Name: "Glue", LocationID: storage.ID, Number: 1, Price: 1})
	require.NoError(t, err)

	err = items.Update(ctx, item.ID, domain.ItemFields{Name: "Wood Glue", LocationID: assembly.ID, Number: 8, Price: 9})
	require.NoError(t, err)

	updated, err := items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wood Glue", updated.Name)
	assert.Equal(t, assembly.ID, updated.LocationID)
	assert.Equal(t, 8, updated.Number)
	assert.InDelta(t, 9.0, updated.Price, 1e-9)
}

func TestItemStoreUpdate_NotFound(t *testing.T) {
	d := openTestDB(t)
	locations := NewLocationStore(d)
	items := NewItemStore(d)
	ctx := context.Background()

	loc, err := locations.Create(ctx, "Storage Room")
	require.NoError(t, err)

	err = items.Update(ctx, 99999, domain.ItemFields{Name: "Name", LocationID: loc.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemStoreDelete(t *testing.T) {
	d := openTestDB(t)
	locations := NewLocationStore(d)
	items := NewItemStore(d)
	ctx := context.Background()

	loc, err := locations.Create(ctx, "Storage Room")
	require.NoError(t, err)
	item, err := items.Create(ctx, domain.ItemFields{Name: "MDF", LocationID: loc.ID})
	require.NoError(t, err)

	require.NoError(t, items.Delete(ctx, item.ID))

	deleted, err := items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, deleted)

	// With the item gone the location can be deleted.
	assert.NoError(t, locations.Delete(ctx, loc.ID))
}

func TestItemStoreDelete_NotFound(t *testing.T) {
	items := NewItemStore(openTestDB(t))

	err := items.Delete(context.Background(), 99999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
