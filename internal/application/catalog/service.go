// Package catalog provides the application layer for kitchen record keeping
// This implements the use cases defined in the inbound ports
package catalog

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/smartkitchen/kitchen/internal/domain/kitchen"
	"github.com/smartkitchen/kitchen/internal/ports/inbound"
	"github.com/smartkitchen/kitchen/internal/ports/outbound"
	"github.com/smartkitchen/kitchen/pkg/errors"
	"github.com/smartkitchen/kitchen/pkg/validation"
	"go.uber.org/zap"
)

const recipesCacheKey = "catalog:recipes:all"

// Service implements the catalog use cases
type Service struct {
	repo     outbound.CatalogRepository
	cache    outbound.CacheRepository
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewService creates a new catalog service. cache may be nil.
func NewService(
	repo outbound.CatalogRepository,
	cache outbound.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.Named("catalog-service"),
	}
}

var _ inbound.CatalogService = (*Service)(nil)

// CreateFridge creates a new fridge
func (s *Service) CreateFridge(ctx context.Context, cmd inbound.CreateFridgeCommand) (*kitchen.Fridge, error) {
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	fridge := &kitchen.Fridge{Owner: cmd.Owner}
	if err := s.repo.CreateFridge(ctx, fridge); err != nil {
		return nil, errors.NewDatabaseError("create fridge", err)
	}

	s.logger.Info("Fridge created",
		zap.Uint("fridge_id", fridge.ID),
		zap.String("owner", fridge.Owner),
	)
	return fridge, nil
}

// ListFridges lists all fridges
func (s *Service) ListFridges(ctx context.Context) ([]kitchen.Fridge, error) {
	fridges, err := s.repo.ListFridges(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list fridges", err)
	}
	return fridges, nil
}

// CreateProduct creates a catalog product
func (s *Service) CreateProduct(ctx context.Context, cmd inbound.CreateProductCommand) (*kitchen.Product, error) {
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	product := &kitchen.Product{
		Name:          cmd.Name,
		Perishability: kitchen.Perishability(cmd.Perishability),
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, errors.NewDatabaseError("create product", err)
	}

	s.logger.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("perishability", string(product.Perishability)),
	)
	return product, nil
}

// ListProducts lists all products
func (s *Service) ListProducts(ctx context.Context) ([]kitchen.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list products", err)
	}
	return products, nil
}

// AddInventory stores a quantity of a product in a fridge
func (s *Service) AddInventory(ctx context.Context, cmd inbound.AddInventoryCommand) (*kitchen.InventoryLine, error) {
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	if err := s.requireFridge(ctx, cmd.FridgeID); err != nil {
		return nil, err
	}

	exists, err := s.repo.ProductExists(ctx, cmd.ProductID)
	if err != nil {
		return nil, errors.NewDatabaseError("check product existence", err)
	}
	if !exists {
		return nil, errors.NewReferenceError("Product", cmd.ProductID, kitchen.ErrProductNotFound)
	}

	line := &kitchen.InventoryLine{
		FridgeID:  cmd.FridgeID,
		ProductID: cmd.ProductID,
		Quantity:  cmd.Quantity,
		Unit:      cmd.Unit,
	}
	if err := line.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := s.repo.CreateInventoryLine(ctx, line); err != nil {
		return nil, errors.NewDatabaseError("create inventory line", err)
	}

	s.logger.Info("Inventory added",
		zap.Uint("inventory_id", line.ID),
		zap.Uint("fridge_id", line.FridgeID),
		zap.Uint("product_id", line.ProductID),
		zap.Float64("quantity", line.Quantity),
	)
	return line, nil
}

// ListInventory lists inventory lines, optionally restricted to some fridges
func (s *Service) ListInventory(ctx context.Context, fridgeIDs []uint) ([]kitchen.InventoryLine, error) {
	lines, err := s.repo.ListInventory(ctx, fridgeIDs)
	if err != nil {
		return nil, errors.NewDatabaseError("list inventory", err)
	}
	return lines, nil
}

// UpdateInventoryQuantity overwrites the quantity of an inventory line
func (s *Service) UpdateInventoryQuantity(ctx context.Context, id uint, quantity float64) error {
	if err := validation.Struct(inbound.UpdateInventoryCommand{Quantity: quantity}); err != nil {
		return err
	}

	if err := s.repo.UpdateInventoryQuantity(ctx, id, quantity); err != nil {
		if stderrors.Is(err, kitchen.ErrInventoryLineNotFound) {
			return errors.NewNotFoundError("Inventory line").WithMetadata("inventory_id", id).WithCause(err)
		}
		return errors.NewDatabaseError("update inventory", err)
	}

	s.logger.Info("Inventory updated",
		zap.Uint("inventory_id", id),
		zap.Float64("quantity", quantity),
	)
	return nil
}

// DeleteInventory removes an inventory line
func (s *Service) DeleteInventory(ctx context.Context, id uint) error {
	if err := s.repo.DeleteInventoryLine(ctx, id); err != nil {
		if stderrors.Is(err, kitchen.ErrInventoryLineNotFound) {
			return errors.NewNotFoundError("Inventory line").WithMetadata("inventory_id", id).WithCause(err)
		}
		return errors.NewDatabaseError("delete inventory", err)
	}

	s.logger.Info("Inventory deleted", zap.Uint("inventory_id", id))
	return nil
}

// ConsolidatedInventory totals stock per product and unit over the fridges.
// An empty fridge list covers every fridge.
func (s *Service) ConsolidatedInventory(ctx context.Context, fridgeIDs []uint) (*inbound.ConsolidatedInventory, error) {
	lines, err := s.repo.ConsolidatedInventory(ctx, fridgeIDs)
	if err != nil {
		return nil, errors.NewDatabaseError("consolidate inventory", err)
	}
	if fridgeIDs == nil {
		fridgeIDs = []uint{}
	}
	if lines == nil {
		lines = []kitchen.ConsolidatedLine{}
	}
	return &inbound.ConsolidatedInventory{
		FridgeIDs:    fridgeIDs,
		Consolidated: lines,
	}, nil
}

// CreateRecipe creates a recipe and drops the cached recipe list
func (s *Service) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*kitchen.Recipe, error) {
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	recipe := &kitchen.Recipe{
		Name:              cmd.Name,
		Servings:          cmd.Servings,
		MealType:          cmd.MealType,
		RequiredEquipment: cmd.RequiredEquipment,
	}
	if err := recipe.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := s.repo.CreateRecipe(ctx, recipe); err != nil {
		return nil, errors.NewDatabaseError("create recipe", err)
	}

	s.invalidateRecipeCache(ctx)

	s.logger.Info("Recipe created",
		zap.Uint("recipe_id", recipe.ID),
		zap.String("name", recipe.Name),
		zap.String("meal_type", recipe.MealType),
	)
	return recipe, nil
}

// ListRecipes lists all recipes, served from cache when possible
func (s *Service) ListRecipes(ctx context.Context) ([]kitchen.Recipe, error) {
	if cached, ok := s.getCachedRecipes(ctx); ok {
		return cached, nil
	}

	recipes, err := s.repo.ListRecipes(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipes", err)
	}

	s.cacheRecipes(ctx, recipes)
	return recipes, nil
}

// AddRecipeIngredient adds an ingredient to an existing recipe. The product
// is free text and is not checked against the catalog.
func (s *Service) AddRecipeIngredient(ctx context.Context, cmd inbound.AddRecipeIngredientCommand) (*kitchen.RecipeIngredient, error) {
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	exists, err := s.repo.RecipeExists(ctx, cmd.RecipeID)
	if err != nil {
		return nil, errors.NewDatabaseError("check recipe existence", err)
	}
	if !exists {
		return nil, errors.NewReferenceError("Recipe", cmd.RecipeID, kitchen.ErrRecipeNotFound)
	}

	ingredient := &kitchen.RecipeIngredient{
		RecipeID: cmd.RecipeID,
		Product:  cmd.Product,
		Quantity: cmd.Quantity,
		Unit:     cmd.Unit,
	}
	if err := s.repo.CreateRecipeIngredient(ctx, ingredient); err != nil {
		return nil, errors.NewDatabaseError("create recipe ingredient", err)
	}

	s.logger.Info("Recipe ingredient added",
		zap.Uint("recipe_id", ingredient.RecipeID),
		zap.String("product", ingredient.Product),
		zap.Float64("quantity", ingredient.Quantity),
	)
	return ingredient, nil
}

// ListRecipeIngredients lists ingredients, optionally for one recipe
func (s *Service) ListRecipeIngredients(ctx context.Context, recipeID *uint) ([]kitchen.RecipeIngredient, error) {
	ingredients, err := s.repo.ListRecipeIngredients(ctx, recipeID)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipe ingredients", err)
	}
	return ingredients, nil
}

// AddEquipment records equipment kept with a fridge
func (s *Service) AddEquipment(ctx context.Context, cmd inbound.AddEquipmentCommand) (*kitchen.Equipment, error) {
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	if err := s.requireFridge(ctx, cmd.FridgeID); err != nil {
		return nil, err
	}

	equipment := &kitchen.Equipment{
		FridgeID: cmd.FridgeID,
		Name:     cmd.Name,
		Quantity: cmd.Quantity,
	}
	if err := s.repo.CreateEquipment(ctx, equipment); err != nil {
		return nil, errors.NewDatabaseError("create equipment", err)
	}

	s.logger.Info("Equipment added",
		zap.Uint("equipment_id", equipment.ID),
		zap.Uint("fridge_id", equipment.FridgeID),
		zap.String("name", equipment.Name),
		zap.Int("quantity", equipment.Quantity),
	)
	return equipment, nil
}

// ListEquipment lists equipment, optionally restricted to some fridges
func (s *Service) ListEquipment(ctx context.Context, fridgeIDs []uint) ([]kitchen.Equipment, error) {
	equipment, err := s.repo.ListEquipment(ctx, fridgeIDs)
	if err != nil {
		return nil, errors.NewDatabaseError("list equipment", err)
	}
	return equipment, nil
}

// CreateOrder records a manual replenishment order
func (s *Service) CreateOrder(ctx context.Context, cmd inbound.CreateOrderCommand) (*kitchen.Order, error) {
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	order := &kitchen.Order{Items: cmd.Items}
	if err := s.repo.SaveOrder(ctx, order); err != nil {
		return nil, errors.NewDatabaseError("create order", err)
	}

	s.logger.Info("Order created", zap.Uint("order_id", order.ID))
	return order, nil
}

// ListOrders lists orders, newest first
func (s *Service) ListOrders(ctx context.Context) ([]kitchen.Order, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list orders", err)
	}
	return orders, nil
}

// DeleteOrder removes an order
func (s *Service) DeleteOrder(ctx context.Context, id uint) error {
	if err := s.repo.DeleteOrder(ctx, id); err != nil {
		if stderrors.Is(err, kitchen.ErrOrderNotFound) {
			return errors.NewNotFoundError("Order").WithMetadata("order_id", id).WithCause(err)
		}
		return errors.NewDatabaseError("delete order", err)
	}

	s.logger.Info("Order deleted", zap.Uint("order_id", id))
	return nil
}

func (s *Service) requireFridge(ctx context.Context, id uint) error {
	exists, err := s.repo.FridgeExists(ctx, id)
	if err != nil {
		return errors.NewDatabaseError("check fridge existence", err)
	}
	if !exists {
		return errors.NewReferenceError("Fridge", id, kitchen.ErrFridgeNotFound)
	}
	return nil
}

// Cache helpers

func (s *Service) getCachedRecipes(ctx context.Context) ([]kitchen.Recipe, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, err := s.cache.Get(ctx, recipesCacheKey)
	if err != nil {
		if !stderrors.Is(err, outbound.ErrCacheMiss) {
			s.logger.Warn("Failed to read recipe cache", zap.Error(err))
		}
		return nil, false
	}

	var recipes []kitchen.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		s.logger.Warn("Discarding unreadable recipe cache entry", zap.Error(err))
		return nil, false
	}
	return recipes, true
}

func (s *Service) cacheRecipes(ctx context.Context, recipes []kitchen.Recipe) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(recipes)
	if err != nil {
		s.logger.Warn("Failed to encode recipes for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, recipesCacheKey, data, s.cacheTTL); err != nil {
		s.logger.Warn("Failed to cache recipes", zap.Error(err))
	}
}

func (s *Service) invalidateRecipeCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, recipesCacheKey); err != nil {
		s.logger.Warn("Failed to invalidate recipe cache", zap.Error(err))
	}
}
