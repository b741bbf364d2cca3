package domain

// SampleItem describes a seeded item by the name of the location it lives in.
type SampleItem struct {
	Name     string
	Location string
	Price    float64
	Number   int
}

// SampleLocations and SampleItems are seeded into an empty inventory.
var SampleLocations = []string{"Storage Room", "Assembly Room", "Electronics"}

var SampleItems = []SampleItem{
	{Name: "Plywood 2mm 900x600mm Sheet", Location: "Storage Room", Price: 11.15, Number: 25},
	{Name: "MDF 4mm 900x600mm Sheet", Location: "Storage Room", Price: 5.67, Number: 18},
	{Name: "Acrylic 5mm 900x600mm Sheet", Location: "Storage Room", Price: 19.34, Number: 12},
	{Name: "Wood Glue", Location: "Assembly Room", Price: 9.0, Number: 8},
	{Name: "Resistor SMT 200", Location: "Electronics", Price: 0.2, Number: 150},
}
