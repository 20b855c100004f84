// Package gorm provides GORM-based repository implementations
package gorm

import (
	"context"

	"github.com/smartkitchen/kitchen/internal/domain/kitchen"
	"github.com/smartkitchen/kitchen/internal/ports/outbound"
	"gorm.io/gorm"
)

// perishabilityRankSQL orders perishability so that MIN picks fast, then long, then unset
const perishabilityRankSQL = "MIN(CASE products.perishability WHEN 'fast' THEN 0 WHEN 'long' THEN 1 ELSE 2 END)"

// CatalogRepository implements the catalog repository interface using GORM
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

var _ outbound.CatalogRepository = (*CatalogRepository)(nil)

// RecipesByMealType finds recipes whose meal type matches exactly
func (r *CatalogRepository) RecipesByMealType(ctx context.Context, mealType string) ([]kitchen.Recipe, error) {
	var models []RecipeModel

	result := r.db.WithContext(ctx).
		Where("meal_type = ?", mealType).
		Order("id").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	return mapModels(models, ModelToRecipe), nil
}

// SumEquipmentByName totals equipment counts per name over the fridges
func (r *CatalogRepository) SumEquipmentByName(ctx context.Context, fridgeIDs []uint) (map[string]int, error) {
	var rows []struct {
		Name  string
		Total int
	}

	result := r.db.WithContext(ctx).
		Model(&EquipmentModel{}).
		Select("name, SUM(quantity) AS total").
		Where("fridge_id IN ?", fridgeIDs).
		Group("name").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	totals := make(map[string]int, len(rows))
	for _, row := range rows {
		totals[row.Name] = row.Total
	}
	return totals, nil
}

// SumInventoryByProduct totals inventory per product name over the fridges.
// When products sharing a name disagree on perishability, fast wins over
// long, which wins over unset.
func (r *CatalogRepository) SumInventoryByProduct(ctx context.Context, fridgeIDs []uint) (kitchen.Stock, error) {
	var rows []struct {
		Name              string
		Total             float64
		PerishabilityRank int
	}

	result := r.db.WithContext(ctx).
		Table("inventory").
		Select("products.name AS name, SUM(inventory.quantity) AS total, "+perishabilityRankSQL+" AS perishability_rank").
		Joins("JOIN products ON products.id = inventory.product_id").
		Where("inventory.fridge_id IN ?", fridgeIDs).
		Group("products.name").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	stock := make(kitchen.Stock, len(rows))
	for _, row := range rows {
		stock[row.Name] = kitchen.StockLevel{
			Quantity:      row.Total,
			Perishability: rankToPerishability(row.PerishabilityRank),
		}
	}
	return stock, nil
}

// IngredientsForRecipe lists the ingredients of one recipe
func (r *CatalogRepository) IngredientsForRecipe(ctx context.Context, recipeID uint) ([]kitchen.RecipeIngredient, error) {
	var models []RecipeIngredientModel

	result := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("id").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	return mapModels(models, ModelToRecipeIngredient), nil
}

// CreateOrder stores an order and returns its id
func (r *CatalogRepository) CreateOrder(ctx context.Context, items string) (uint, error) {
	model := &OrderModel{Items: items}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return 0, err
	}
	return model.ID, nil
}

// Fridges

// CreateFridge creates a fridge and sets its id
func (r *CatalogRepository) CreateFridge(ctx context.Context, fridge *kitchen.Fridge) error {
	model := FridgeToModel(fridge)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	fridge.ID = model.ID
	return nil
}

// ListFridges lists every fridge
func (r *CatalogRepository) ListFridges(ctx context.Context) ([]kitchen.Fridge, error) {
	var models []FridgeModel

	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	return mapModels(models, ModelToFridge), nil
}

// FridgeExists checks if a fridge exists
func (r *CatalogRepository) FridgeExists(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, &FridgeModel{}, id)
}

// Products

// CreateProduct creates a product and sets its id
func (r *CatalogRepository) CreateProduct(ctx context.Context, product *kitchen.Product) error {
	model := ProductToModel(product)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	product.ID = model.ID
	return nil
}

// ListProducts lists every product
func (r *CatalogRepository) ListProducts(ctx context.Context) ([]kitchen.Product, error) {
	var models []ProductModel

	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	return mapModels(models, ModelToProduct), nil
}

// ProductExists checks if a product exists
func (r *CatalogRepository) ProductExists(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, &ProductModel{}, id)
}

// Inventory

// CreateInventoryLine creates an inventory line and sets its id
func (r *CatalogRepository) CreateInventoryLine(ctx context.Context, line *kitchen.InventoryLine) error {
	model := InventoryLineToModel(line)

	if err := r.db.WithContext(ctx).Omit("Fridge", "Product").Create(model).Error; err != nil {
		return err
	}
	line.ID = model.ID
	return nil
}

// ListInventory lists inventory lines; an empty id list means every fridge
func (r *CatalogRepository) ListInventory(ctx context.Context, fridgeIDs []uint) ([]kitchen.InventoryLine, error) {
	var models []InventoryModel

	query := r.db.WithContext(ctx).Order("id")
	if len(fridgeIDs) > 0 {
		query = query.Where("fridge_id IN ?", fridgeIDs)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return mapModels(models, ModelToInventoryLine), nil
}

// UpdateInventoryQuantity overwrites the quantity of a line
func (r *CatalogRepository) UpdateInventoryQuantity(ctx context.Context, id uint, quantity float64) error {
	result := r.db.WithContext(ctx).
		Model(&InventoryModel{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return kitchen.ErrInventoryLineNotFound
	}
	return nil
}

// DeleteInventoryLine deletes a line by id
func (r *CatalogRepository) DeleteInventoryLine(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&InventoryModel{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return kitchen.ErrInventoryLineNotFound
	}
	return nil
}

// ConsolidatedInventory totals inventory per product name and unit
func (r *CatalogRepository) ConsolidatedInventory(ctx context.Context, fridgeIDs []uint) ([]kitchen.ConsolidatedLine, error) {
	var lines []kitchen.ConsolidatedLine

	query := r.db.WithContext(ctx).
		Table("inventory").
		Select("products.name AS product, inventory.unit AS unit, SUM(inventory.quantity) AS total_quantity").
		Joins("JOIN products ON products.id = inventory.product_id")
	if len(fridgeIDs) > 0 {
		query = query.Where("inventory.fridge_id IN ?", fridgeIDs)
	}

	result := query.
		Group("products.name, inventory.unit").
		Order("products.name, inventory.unit").
		Scan(&lines)
	if result.Error != nil {
		return nil, result.Error
	}
	return lines, nil
}

// Recipes

// CreateRecipe creates a recipe and sets its id
func (r *CatalogRepository) CreateRecipe(ctx context.Context, recipe *kitchen.Recipe) error {
	model := RecipeToModel(recipe)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	recipe.ID = model.ID
	return nil
}

// ListRecipes lists every recipe
func (r *CatalogRepository) ListRecipes(ctx context.Context) ([]kitchen.Recipe, error) {
	var models []RecipeModel

	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	return mapModels(models, ModelToRecipe), nil
}

// RecipeExists checks if a recipe exists
func (r *CatalogRepository) RecipeExists(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, &RecipeModel{}, id)
}

// CreateRecipeIngredient creates an ingredient and sets its id
func (r *CatalogRepository) CreateRecipeIngredient(ctx context.Context, ingredient *kitchen.RecipeIngredient) error {
	model := RecipeIngredientToModel(ingredient)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	ingredient.ID = model.ID
	return nil
}

// ListRecipeIngredients lists ingredients, for one recipe when recipeID is set
func (r *CatalogRepository) ListRecipeIngredients(ctx context.Context, recipeID *uint) ([]kitchen.RecipeIngredient, error) {
	var models []RecipeIngredientModel

	query := r.db.WithContext(ctx).Order("id")
	if recipeID != nil {
		query = query.Where("recipe_id = ?", *recipeID)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return mapModels(models, ModelToRecipeIngredient), nil
}

// Equipment

// CreateEquipment creates an equipment record and sets its id
func (r *CatalogRepository) CreateEquipment(ctx context.Context, equipment *kitchen.Equipment) error {
	model := EquipmentToModel(equipment)

	if err := r.db.WithContext(ctx).Omit("Fridge").Create(model).Error; err != nil {
		return err
	}
	equipment.ID = model.ID
	return nil
}

// ListEquipment lists equipment; an empty id list means every fridge
func (r *CatalogRepository) ListEquipment(ctx context.Context, fridgeIDs []uint) ([]kitchen.Equipment, error) {
	var models []EquipmentModel

	query := r.db.WithContext(ctx).Order("id")
	if len(fridgeIDs) > 0 {
		query = query.Where("fridge_id IN ?", fridgeIDs)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return mapModels(models, ModelToEquipment), nil
}

// Orders

// SaveOrder stores an order and fills its id and creation time
func (r *CatalogRepository) SaveOrder(ctx context.Context, order *kitchen.Order) error {
	model := &OrderModel{Items: order.Items}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	order.ID = model.ID
	order.CreatedAt = model.CreatedAt
	return nil
}

// ListOrders lists orders, newest first
func (r *CatalogRepository) ListOrders(ctx context.Context) ([]kitchen.Order, error) {
	var models []OrderModel

	if err := r.db.WithContext(ctx).Order("id DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return mapModels(models, ModelToOrder), nil
}

// DeleteOrder deletes an order by id
func (r *CatalogRepository) DeleteOrder(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&OrderModel{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return kitchen.ErrOrderNotFound
	}
	return nil
}

func (r *CatalogRepository) exists(ctx context.Context, model interface{}, id uint) (bool, error) {
	var count int64

	result := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func rankToPerishability(rank int) kitchen.Perishability {
	switch rank {
	case 0:
		return kitchen.PerishabilityFast
	case 1:
		return kitchen.PerishabilityLong
	default:
		return kitchen.PerishabilityUnset
	}
}
