// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/smartkitchen/kitchen/internal/domain/kitchen"
)

// RecommendationService picks a recipe for a set of fridges
type RecommendationService interface {
	Recommend(ctx context.Context, req RecommendRequest) (*Recommendation, error)
	RecommendFromText(ctx context.Context, req TextRequest) (*TextRecommendation, error)
}

// CatalogService is the record keeping surface used by the HTTP layer
type CatalogService interface {
	CreateFridge(ctx context.Context, cmd CreateFridgeCommand) (*kitchen.Fridge, error)
	ListFridges(ctx context.Context) ([]kitchen.Fridge, error)

	CreateProduct(ctx context.Context, cmd CreateProductCommand) (*kitchen.Product, error)
	ListProducts(ctx context.Context) ([]kitchen.Product, error)

	AddInventory(ctx context.Context, cmd AddInventoryCommand) (*kitchen.InventoryLine, error)
	ListInventory(ctx context.Context, fridgeIDs []uint) ([]kitchen.InventoryLine, error)
	UpdateInventoryQuantity(ctx context.Context, id uint, quantity float64) error
	DeleteInventory(ctx context.Context, id uint) error
	ConsolidatedInventory(ctx context.Context, fridgeIDs []uint) (*ConsolidatedInventory, error)

	CreateRecipe(ctx context.Context, cmd CreateRecipeCommand) (*kitchen.Recipe, error)
	ListRecipes(ctx context.Context) ([]kitchen.Recipe, error)
	AddRecipeIngredient(ctx context.Context, cmd AddRecipeIngredientCommand) (*kitchen.RecipeIngredient, error)
	ListRecipeIngredients(ctx context.Context, recipeID *uint) ([]kitchen.RecipeIngredient, error)

	AddEquipment(ctx context.Context, cmd AddEquipmentCommand) (*kitchen.Equipment, error)
	ListEquipment(ctx context.Context, fridgeIDs []uint) ([]kitchen.Equipment, error)

	CreateOrder(ctx context.Context, cmd CreateOrderCommand) (*kitchen.Order, error)
	ListOrders(ctx context.Context) ([]kitchen.Order, error)
	DeleteOrder(ctx context.Context, id uint) error
}

// Requests

// RecommendRequest asks for a recipe for a headcount and meal type
type RecommendRequest struct {
	FridgeIDs []uint `json:"fridge_ids" validate:"required,min=1,dive,gt=0"`
	People    int    `json:"people" validate:"gte=1"`
	MealType  string `json:"meal_type" validate:"required"`
}

// TextRequest carries a free form sentence
type TextRequest struct {
	Text string `json:"text" validate:"required"`
}

// Results

// ReasonNoSuitableRecipe is reported when no recipe passes the equipment check
const ReasonNoSuitableRecipe = "no suitable recipe"

// Recommendation is the outcome of the recommender.
// An infeasible outcome only carries CanCook=false and Reason.
type Recommendation struct {
	Recipe           string
	People           int
	CanCook          bool
	Reason           string
	Missing          map[string]float64
	OrderID          *uint
	UsedFastProducts int
}

// Infeasible reports whether no recipe could be cooked with the equipment at hand
func (r *Recommendation) Infeasible() bool {
	return r.Reason != ""
}

type infeasibleJSON struct {
	CanCook bool   `json:"can_cook"`
	Reason  string `json:"reason"`
}

type recommendationJSON struct {
	Recipe           string             `json:"recipe"`
	People           int                `json:"people"`
	CanCook          bool               `json:"can_cook"`
	Missing          map[string]float64 `json:"missing"`
	OrderID          *uint              `json:"order_id"`
	UsedFastProducts int                `json:"used_fast_products"`
}

// MarshalJSON renders the two result shapes
func (r Recommendation) MarshalJSON() ([]byte, error) {
	if r.Reason != "" {
		return json.Marshal(infeasibleJSON{CanCook: r.CanCook, Reason: r.Reason})
	}

	missing := r.Missing
	if missing == nil {
		missing = map[string]float64{}
	}
	return json.Marshal(recommendationJSON{
		Recipe:           r.Recipe,
		People:           r.People,
		CanCook:          r.CanCook,
		Missing:          missing,
		OrderID:          r.OrderID,
		UsedFastProducts: r.UsedFastProducts,
	})
}

// ParsedRequest is what the text extractor understood
type ParsedRequest struct {
	People    int    `json:"people"`
	MealType  string `json:"meal_type"`
	FridgeIDs []uint `json:"fridge_ids"`
}

// TextRecommendation pairs the parsed request with the recommender result
type TextRecommendation struct {
	ParsedRequest  ParsedRequest   `json:"parsed_request"`
	Recommendation *Recommendation `json:"recommendation"`
}

// ConsolidatedInventory lists totals per product and unit for a fridge set
type ConsolidatedInventory struct {
	FridgeIDs    []uint                     `json:"fridge_ids"`
	Consolidated []kitchen.ConsolidatedLine `json:"consolidated"`
}

// Commands

// CreateFridgeCommand contains data for creating a fridge
type CreateFridgeCommand struct {
	Owner string `json:"owner" validate:"required"`
}

// CreateProductCommand contains data for creating a product
type CreateProductCommand struct {
	Name          string `json:"name" validate:"required"`
	Perishability string `json:"perishability" validate:"omitempty,oneof=fast long"`
}

// AddInventoryCommand contains data for adding an inventory line
type AddInventoryCommand struct {
	FridgeID  uint    `json:"fridge_id" validate:"required"`
	ProductID uint    `json:"product_id" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"gte=0"`
	Unit      string  `json:"unit"`
}

// UpdateInventoryCommand carries the new quantity of an inventory line
type UpdateInventoryCommand struct {
	Quantity float64 `json:"quantity" validate:"gte=0"`
}

// CreateRecipeCommand contains data for creating a recipe
type CreateRecipeCommand struct {
	Name              string `json:"name" validate:"required"`
	Servings          int    `json:"servings" validate:"gte=1"`
	MealType          string `json:"meal_type" validate:"required"`
	RequiredEquipment string `json:"required_equipment"`
}

// AddRecipeIngredientCommand contains data for adding a recipe ingredient
type AddRecipeIngredientCommand struct {
	RecipeID uint    `json:"recipe_id" validate:"required"`
	Product  string  `json:"product" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
	Unit     string  `json:"unit"`
}

// AddEquipmentCommand contains data for adding equipment to a fridge
type AddEquipmentCommand struct {
	FridgeID uint   `json:"fridge_id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

// CreateOrderCommand contains data for a manual order
type CreateOrderCommand struct {
	Items string `json:"items" validate:"required"`
}
