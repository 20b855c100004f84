// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/smartkitchen/kitchen/internal/domain/kitchen"
	"github.com/smartkitchen/kitchen/internal/ports/outbound"
)

// KitchenFactory creates catalog records with generated values
type KitchenFactory struct {
	faker *gofakeit.Faker
	repo  outbound.CatalogRepository
	seq   int
}

// NewKitchenFactory creates a factory with a seeded faker writing to repo
func NewKitchenFactory(seed int64, repo outbound.CatalogRepository) *KitchenFactory {
	return &KitchenFactory{
		faker: gofakeit.New(seed),
		repo:  repo,
	}
}

// Faker exposes the seeded faker
func (f *KitchenFactory) Faker() *gofakeit.Faker {
	return f.faker
}

// ProductName returns a unique ingredient-like name
func (f *KitchenFactory) ProductName() string {
	f.seq++
	return fmt.Sprintf("%s-%d", f.faker.Noun(), f.seq)
}

// Perishability picks one of the three perishability classes
func (f *KitchenFactory) Perishability() kitchen.Perishability {
	return kitchen.Perishability(f.faker.RandomString([]string{
		string(kitchen.PerishabilityFast),
		string(kitchen.PerishabilityLong),
		string(kitchen.PerishabilityUnset),
	}))
}

// MealType picks one of the known meal types
func (f *KitchenFactory) MealType() string {
	return f.faker.RandomString([]string{
		kitchen.MealTypeBreakfast,
		kitchen.MealTypeLunch,
		kitchen.MealTypeDinner,
		kitchen.MealTypeParty,
	})
}

// Quantity returns a positive quantity
func (f *KitchenFactory) Quantity() float64 {
	return f.faker.Float64Range(0.5, 20)
}

// Fridge stores a fridge with a random owner
func (f *KitchenFactory) Fridge(ctx context.Context) (*kitchen.Fridge, error) {
	fridge := &kitchen.Fridge{Owner: f.faker.Name()}
	return fridge, f.repo.CreateFridge(ctx, fridge)
}

// Product stores a product with the given perishability
func (f *KitchenFactory) Product(ctx context.Context, p kitchen.Perishability) (*kitchen.Product, error) {
	product := &kitchen.Product{Name: f.ProductName(), Perishability: p}
	return product, f.repo.CreateProduct(ctx, product)
}

// Stock stores an inventory line
func (f *KitchenFactory) Stock(ctx context.Context, fridgeID, productID uint, quantity float64) (*kitchen.InventoryLine, error) {
	line := &kitchen.InventoryLine{
		FridgeID:  fridgeID,
		ProductID: productID,
		Quantity:  quantity,
		Unit:      f.faker.RandomString([]string{"g", "pcs", "ml"}),
	}
	return line, f.repo.CreateInventoryLine(ctx, line)
}

// Equipment stores equipment in a fridge
func (f *KitchenFactory) Equipment(ctx context.Context, fridgeID uint, name string, quantity int) (*kitchen.Equipment, error) {
	equipment := &kitchen.Equipment{FridgeID: fridgeID, Name: name, Quantity: quantity}
	return equipment, f.repo.CreateEquipment(ctx, equipment)
}

// Recipe stores a recipe; ingredients maps product names to quantities
// per batch
func (f *KitchenFactory) Recipe(
	ctx context.Context,
	mealType string,
	servings int,
	requiredEquipment string,
	ingredients map[string]float64,
) (*kitchen.Recipe, error) {
	recipe := &kitchen.Recipe{
		Name:              f.faker.Dessert() + " " + f.faker.Adjective(),
		Servings:          servings,
		MealType:          mealType,
		RequiredEquipment: requiredEquipment,
	}
	if err := f.repo.CreateRecipe(ctx, recipe); err != nil {
		return nil, err
	}

	for product, qty := range ingredients {
		ingredient := &kitchen.RecipeIngredient{
			RecipeID: recipe.ID,
			Product:  product,
			Quantity: qty,
			Unit:     "g",
		}
		if err := f.repo.CreateRecipeIngredient(ctx, ingredient); err != nil {
			return nil, err
		}
	}
	return recipe, nil
}
