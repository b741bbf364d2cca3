package domain

import (
	"math"
	"strings"
)

// ItemDraft is an unvalidated item as submitted by a user. Number and Price are
// optional and default to zero when nil.
type ItemDraft struct {
	Name       string   `json:"name"`
	LocationID int64    `json:"location_id"`
	Number     *int     `json:"number,omitempty"`
	Price      *float64 `json:"price,omitempty"`
}

type LocationDraft struct {
	Name string `json:"name"`
}

// ItemFields is a validated, normalized ItemDraft.
type ItemFields struct {
	Name       string  `json:"name"`
	LocationID int64   `json:"location_id"`
	Number     int     `json:"number"`
	Price      float64 `json:"price"`
}

type LocationFields struct {
	Name string `json:"name"`
}

// Normalize checks the draft's own fields and applies defaults. Whether
// LocationID refers to an existing location is left to the caller, which knows
// where locations live.
func (d ItemDraft) Normalize() (ItemFields, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return ItemFields{}, &FieldError{Field: "name", Reason: "is required"}
	}
	if d.LocationID <= 0 {
		return ItemFields{}, &FieldError{Field: "location_id", Reason: "is required"}
	}

	f := ItemFields{Name: name, LocationID: d.LocationID}
	if d.Number != nil {
		if *d.Number < 0 {
			return ItemFields{}, &FieldError{Field: "number", Reason: "must not be negative"}
		}
		f.Number = *d.Number
	}
	if d.Price != nil {
		p := *d.Price
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return ItemFields{}, &FieldError{Field: "price", Reason: "must be a number"}
		}
		if p < 0 {
			return ItemFields{}, &FieldError{Field: "price", Reason: "must not be negative"}
		}
		f.Price = p
	}
	return f, nil
}

func (d LocationDraft) Normalize() (LocationFields, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return LocationFields{}, &FieldError{Field: "name", Reason: "is required"}
	}
	return LocationFields{Name: name}, nil
}

// Draft converts validated fields back into a draft, e.g. to resubmit them.
func (f ItemFields) Draft() ItemDraft {
	number, price := f.Number, f.Price
	return ItemDraft{Name: f.Name, LocationID: f.LocationID, Number: &number, Price: &price}
}
