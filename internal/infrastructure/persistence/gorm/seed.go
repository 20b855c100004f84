package gorm

import (
	"fmt"

	"gorm.io/gorm"
)

// SeedDemoKitchen populates an empty database with a demo kitchen.
// It is a no-op once any fridge exists.
func SeedDemoKitchen(db *gorm.DB) error {
	// Check if data already exists
	var fridgeCount int64
	if err := db.Model(&FridgeModel{}).Count(&fridgeCount).Error; err != nil {
		return fmt.Errorf("failed to count fridges: %w", err)
	}
	if fridgeCount > 0 {
		return nil // Already seeded
	}

	return db.Transaction(func(tx *gorm.DB) error {
		fridges := []FridgeModel{
			{Owner: "Home kitchen"},
			{Owner: "Country house"},
		}
		if err := tx.Create(&fridges).Error; err != nil {
			return fmt.Errorf("failed to create demo fridges: %w", err)
		}

		products := []ProductModel{
			{Name: "egg", Perishability: "fast"},
			{Name: "milk", Perishability: "fast"},
			{Name: "tomato", Perishability: "fast"},
			{Name: "cucumber", Perishability: "fast"},
			{Name: "flour", Perishability: "long"},
			{Name: "pasta", Perishability: "long"},
			{Name: "cheese", Perishability: "long"},
			{Name: "salt"},
		}
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("failed to create demo products: %w", err)
		}
		productID := make(map[string]uint, len(products))
		for _, p := range products {
			productID[p.Name] = p.ID
		}

		home, country := fridges[0].ID, fridges[1].ID
		inventory := []InventoryModel{
			{FridgeID: home, ProductID: productID["egg"], Quantity: 6, Unit: "pcs"},
			{FridgeID: home, ProductID: productID["milk"], Quantity: 1, Unit: "l"},
			{FridgeID: home, ProductID: productID["flour"], Quantity: 500, Unit: "g"},
			{FridgeID: home, ProductID: productID["salt"], Quantity: 100, Unit: "g"},
			{FridgeID: home, ProductID: productID["pasta"], Quantity: 400, Unit: "g"},
			{FridgeID: country, ProductID: productID["tomato"], Quantity: 4, Unit: "pcs"},
			{FridgeID: country, ProductID: productID["cucumber"], Quantity: 2, Unit: "pcs"},
			{FridgeID: country, ProductID: productID["cheese"], Quantity: 200, Unit: "g"},
			{FridgeID: country, ProductID: productID["egg"], Quantity: 4, Unit: "pcs"},
		}
		if err := tx.Omit("Fridge", "Product").Create(&inventory).Error; err != nil {
			return fmt.Errorf("failed to create demo inventory: %w", err)
		}

		equipment := []EquipmentModel{
			{FridgeID: home, Name: "pan", Quantity: 2},
			{FridgeID: home, Name: "whisk", Quantity: 1},
			{FridgeID: home, Name: "pot", Quantity: 1},
			{FridgeID: country, Name: "oven", Quantity: 1},
			{FridgeID: country, Name: "pan", Quantity: 1},
		}
		if err := tx.Omit("Fridge").Create(&equipment).Error; err != nil {
			return fmt.Errorf("failed to create demo equipment: %w", err)
		}

		recipes := []struct {
			recipe      RecipeModel
			ingredients []RecipeIngredientModel
		}{
			{
				recipe: RecipeModel{Name: "Omelette", Servings: 2, MealType: "breakfast", RequiredEquipment: "pan"},
				ingredients: []RecipeIngredientModel{
					{Product: "egg", Quantity: 3, Unit: "pcs"},
					{Product: "milk", Quantity: 0.1, Unit: "l"},
					{Product: "salt", Quantity: 2, Unit: "g"},
				},
			},
			{
				recipe: RecipeModel{Name: "Pancakes", Servings: 4, MealType: "breakfast", RequiredEquipment: "pan, whisk"},
				ingredients: []RecipeIngredientModel{
					{Product: "flour", Quantity: 200, Unit: "g"},
					{Product: "milk", Quantity: 0.5, Unit: "l"},
					{Product: "egg", Quantity: 2, Unit: "pcs"},
				},
			},
			{
				recipe: RecipeModel{Name: "Summer salad", Servings: 2, MealType: "lunch"},
				ingredients: []RecipeIngredientModel{
					{Product: "tomato", Quantity: 2, Unit: "pcs"},
					{Product: "cucumber", Quantity: 1, Unit: "pcs"},
					{Product: "salt", Quantity: 1, Unit: "g"},
				},
			},
			{
				recipe: RecipeModel{Name: "Pasta with cheese", Servings: 2, MealType: "dinner", RequiredEquipment: "pot"},
				ingredients: []RecipeIngredientModel{
					{Product: "pasta", Quantity: 200, Unit: "g"},
					{Product: "cheese", Quantity: 50, Unit: "g"},
				},
			},
			{
				recipe: RecipeModel{Name: "Cheese pie", Servings: 8, MealType: "party", RequiredEquipment: "oven"},
				ingredients: []RecipeIngredientModel{
					{Product: "flour", Quantity: 300, Unit: "g"},
					{Product: "cheese", Quantity: 250, Unit: "g"},
					{Product: "egg", Quantity: 3, Unit: "pcs"},
				},
			},
		}

		for _, r := range recipes {
			recipe := r.recipe
			if err := tx.Create(&recipe).Error; err != nil {
				return fmt.Errorf("failed to create demo recipe: %w", err)
			}
			for _, ing := range r.ingredients {
				ing.RecipeID = recipe.ID
				if err := tx.Create(&ing).Error; err != nil {
					return fmt.Errorf("failed to create demo ingredient: %w", err)
				}
			}
		}

		return nil
	})
}
