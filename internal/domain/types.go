package domain

import "time"

type Location struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Modified time.Time `json:"modified"`
}

type Item struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	LocationID int64     `json:"location_id"`
	Number     int       `json:"number"`
	Price      float64   `json:"price"`
	Modified   time.Time `json:"modified"`
}

// UnknownLocation is the location name shown for items whose location is missing.
const UnknownLocation = "Unknown"

// ItemWithLocation is an item joined with the name of its location, for display.
type ItemWithLocation struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	LocationID int64     `json:"location_id"`
	Location   string    `json:"location"`
	Number     int       `json:"number"`
	Price      float64   `json:"price"`
	Modified   time.Time `json:"modified"`
}

func (i Item) WithLocation(locationName string) ItemWithLocation {
	if locationName == "" {
		locationName = UnknownLocation
	}
	return ItemWithLocation{
		ID:         i.ID,
		Name:       i.Name,
		LocationID: i.LocationID,
		Location:   locationName,
		Number:     i.Number,
		Price:      i.Price,
		Modified:   i.Modified,
	}
}

// Inventory is the full set of items and locations. The local backend persists
// it as a single document.
type Inventory struct {
	Items     []Item     `json:"items"`
	Locations []Location `json:"locations"`
}
