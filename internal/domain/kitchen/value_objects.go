package kitchen

// Perishability tells how quickly a product spoils.
type Perishability string

const (
	PerishabilityFast  Perishability = "fast"
	PerishabilityLong  Perishability = "long"
	PerishabilityUnset Perishability = ""
)

// IsValid reports whether p is one of the known values
func (p Perishability) IsValid() bool {
	switch p {
	case PerishabilityFast, PerishabilityLong, PerishabilityUnset:
		return true
	default:
		return false
	}
}

// Meal types understood by the text extractor. Recipes may use any string.
const (
	MealTypeParty     = "party"
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
)

// StockLevel is the consolidated quantity of one product name.
type StockLevel struct {
	Quantity      float64
	Perishability Perishability
}

// Stock maps a product name to its consolidated level across fridges.
type Stock map[string]StockLevel

// Available returns the consolidated quantity for name, zero when unknown.
func (s Stock) Available(name string) float64 {
	return s[name].Quantity
}

// IsFast reports whether name is tagged as fast spoiling.
func (s Stock) IsFast(name string) bool {
	return s[name].Perishability == PerishabilityFast
}

// ConsolidatedLine is a per product and unit total, as shown to operators.
type ConsolidatedLine struct {
	Product       string  `json:"product"`
	Unit          string  `json:"unit"`
	TotalQuantity float64 `json:"total_quantity"`
}
