// Package kitchen holds the kitchen domain: storage units, products, stock,
// recipes and the pure rules used to decide whether a recipe can be cooked.
package kitchen

import (
	"strings"
	"time"
)

// Fridge is a storage location that holds inventory and equipment.
type Fridge struct {
	ID    uint   `json:"id"`
	Owner string `json:"owner"`
}

// Product is a catalog item that inventory lines point at.
type Product struct {
	ID            uint          `json:"id"`
	Name          string        `json:"name"`
	Perishability Perishability `json:"perishability"`
}

// InventoryLine is a quantity of one product stored in one fridge.
// Unit is free text and is never normalised.
type InventoryLine struct {
	ID        uint    `json:"id"`
	FridgeID  uint    `json:"fridge_id"`
	ProductID uint    `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
}

// Validate validates the inventory line
func (l InventoryLine) Validate() error {
	if l.Quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}

// Recipe describes a dish for a number of servings.
type Recipe struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	Servings          int    `json:"servings"`
	MealType          string `json:"meal_type"`
	RequiredEquipment string `json:"required_equipment"`
}

// RequiredEquipmentList splits the comma separated equipment requirement.
// An empty requirement yields an empty list, never a single blank name.
func (r Recipe) RequiredEquipmentList() []string {
	if strings.TrimSpace(r.RequiredEquipment) == "" {
		return []string{}
	}

	parts := strings.Split(r.RequiredEquipment, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}

// FeasibleWith reports whether every required piece of equipment has at
// least one unit available. Missing names count as zero.
func (r Recipe) FeasibleWith(available map[string]int) bool {
	for _, name := range r.RequiredEquipmentList() {
		if available[name] < 1 {
			return false
		}
	}
	return true
}

// Validate validates the recipe configuration
func (r Recipe) Validate() error {
	if r.Servings <= 0 {
		return ErrInvalidServings
	}
	return nil
}

// RecipeIngredient is the per-serving amount of a product a recipe needs.
// Product is matched by name against the catalog, not by id.
type RecipeIngredient struct {
	ID       uint    `json:"id"`
	RecipeID uint    `json:"recipe_id"`
	Product  string  `json:"product"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Equipment is a count of one kind of kitchen tool kept with a fridge.
type Equipment struct {
	ID       uint   `json:"id"`
	FridgeID uint   `json:"fridge_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Order is a replenishment request. Items is human readable text only.
type Order struct {
	ID        uint      `json:"id"`
	Items     string    `json:"items"`
	CreatedAt time.Time `json:"created_at"`
}

// KnowledgeRule is a cooking rule extracted from free text.
type KnowledgeRule struct {
	ID         uint    `json:"id"`
	Rule       string  `json:"rule"`
	Confidence float64 `json:"confidence"`
}
