package gst

import "egstify/internal/domain"

// DefaultRate applies to any category missing from the rate table.
const DefaultRate = 18.0

// CategoryRate pairs a product category with its GST percentage.
type CategoryRate struct {
	Category domain.Category `json:"category"`
	Rate     float64         `json:"rate"`
}

// rateTable is ordered the way categories are offered to the user.
var rateTable = []CategoryRate{
	{Category: domain.CategoryElectronics, Rate: 18},
	{Category: domain.CategoryFurniture, Rate: 18},
	{Category: domain.CategoryFoodItems, Rate: 5},
	{Category: domain.CategoryClothing, Rate: 5},
	{Category: domain.CategoryBooks, Rate: 0},
	{Category: domain.CategoryPharmaceuticals, Rate: 12},
	{Category: domain.CategoryAutomobiles, Rate: 28},
	{Category: domain.CategoryConstructionMaterials, Rate: 18},
	{Category: domain.CategorySoftwareServices, Rate: 18},
	{Category: domain.CategoryOthers, Rate: 18},
}

// Rates returns a copy of the rate table in display order.
func Rates() []CategoryRate {
	out := make([]CategoryRate, len(rateTable))
	copy(out, rateTable)
	return out
}

// RateFor returns the GST percentage for a category and whether the category
// is known. Unknown categories get DefaultRate.
func RateFor(category domain.Category) (float64, bool) {
	for _, r := range rateTable {
		if r.Category == category {
			return r.Rate, true
		}
	}
	return DefaultRate, false
}
