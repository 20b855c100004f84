// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/smartkitchen/kitchen/internal/domain/kitchen"
)

// CatalogStore is the read snapshot and order sink the recommender needs.
// Fridge id lists may contain duplicates and come in any order.
type CatalogStore interface {
	RecipesByMealType(ctx context.Context, mealType string) ([]kitchen.Recipe, error)
	SumEquipmentByName(ctx context.Context, fridgeIDs []uint) (map[string]int, error)
	SumInventoryByProduct(ctx context.Context, fridgeIDs []uint) (kitchen.Stock, error)
	IngredientsForRecipe(ctx context.Context, recipeID uint) ([]kitchen.RecipeIngredient, error)
	CreateOrder(ctx context.Context, items string) (uint, error)
}

// CatalogRepository defines the record keeping around the catalog
type CatalogRepository interface {
	CatalogStore

	// Fridges
	CreateFridge(ctx context.Context, fridge *kitchen.Fridge) error
	ListFridges(ctx context.Context) ([]kitchen.Fridge, error)
	FridgeExists(ctx context.Context, id uint) (bool, error)

	// Products
	CreateProduct(ctx context.Context, product *kitchen.Product) error
	ListProducts(ctx context.Context) ([]kitchen.Product, error)
	ProductExists(ctx context.Context, id uint) (bool, error)

	// Inventory
	CreateInventoryLine(ctx context.Context, line *kitchen.InventoryLine) error
	ListInventory(ctx context.Context, fridgeIDs []uint) ([]kitchen.InventoryLine, error)
	UpdateInventoryQuantity(ctx context.Context, id uint, quantity float64) error
	DeleteInventoryLine(ctx context.Context, id uint) error
	ConsolidatedInventory(ctx context.Context, fridgeIDs []uint) ([]kitchen.ConsolidatedLine, error)

	// Recipes
	CreateRecipe(ctx context.Context, recipe *kitchen.Recipe) error
	ListRecipes(ctx context.Context) ([]kitchen.Recipe, error)
	RecipeExists(ctx context.Context, id uint) (bool, error)
	CreateRecipeIngredient(ctx context.Context, ingredient *kitchen.RecipeIngredient) error
	ListRecipeIngredients(ctx context.Context, recipeID *uint) ([]kitchen.RecipeIngredient, error)

	// Equipment
	CreateEquipment(ctx context.Context, equipment *kitchen.Equipment) error
	ListEquipment(ctx context.Context, fridgeIDs []uint) ([]kitchen.Equipment, error)

	// Orders
	SaveOrder(ctx context.Context, order *kitchen.Order) error
	ListOrders(ctx context.Context) ([]kitchen.Order, error)
	DeleteOrder(ctx context.Context, id uint) error
}

// KnowledgeRuleRepository stores extracted cooking rules
type KnowledgeRuleRepository interface {
	SaveRules(ctx context.Context, rules []kitchen.KnowledgeRule) error
	ListRules(ctx context.Context) ([]kitchen.KnowledgeRule, error)
}

// ErrCacheMiss is returned by CacheRepository.Get for absent or expired keys
var ErrCacheMiss = errors.New("cache miss")

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
