// Package testutils provides mock implementations for testing
package testutils

import (
	"context"
	"sync"
	"time"

	"github.com/smartkitchen/kitchen/internal/domain/kitchen"
	"github.com/smartkitchen/kitchen/internal/ports/outbound"
	"github.com/stretchr/testify/mock"
)

// MockCatalogRepository provides a mock implementation of CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

// NewMockCatalogRepository creates a new mock catalog repository
func NewMockCatalogRepository() *MockCatalogRepository {
	return &MockCatalogRepository{}
}

var _ outbound.CatalogRepository = (*MockCatalogRepository)(nil)

// RecipesByMealType returns the recipes stubbed for a meal type
func (m *MockCatalogRepository) RecipesByMealType(ctx context.Context, mealType string) ([]kitchen.Recipe, error) {
	args := m.Called(ctx, mealType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kitchen.Recipe), args.Error(1)
}

// SumEquipmentByName returns stubbed equipment totals
func (m *MockCatalogRepository) SumEquipmentByName(ctx context.Context, fridgeIDs []uint) (map[string]int, error) {
	args := m.Called(ctx, fridgeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

// SumInventoryByProduct returns stubbed stock
func (m *MockCatalogRepository) SumInventoryByProduct(ctx context.Context, fridgeIDs []uint) (kitchen.Stock, error) {
	args := m.Called(ctx, fridgeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(kitchen.Stock), args.Error(1)
}

// IngredientsForRecipe returns stubbed ingredients
func (m *MockCatalogRepository) IngredientsForRecipe(ctx context.Context, recipeID uint) ([]kitchen.RecipeIngredient, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kitchen.RecipeIngredient), args.Error(1)
}

// CreateOrder records the order call
func (m *MockCatalogRepository) CreateOrder(ctx context.Context, items string) (uint, error) {
	args := m.Called(ctx, items)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockCatalogRepository) CreateFridge(ctx context.Context, fridge *kitchen.Fridge) error {
	args := m.Called(ctx, fridge)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListFridges(ctx context.Context) ([]kitchen.Fridge, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kitchen.Fridge), args.Error(1)
}

func (m *MockCatalogRepository) FridgeExists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) CreateProduct(ctx context.Context, product *kitchen.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListProducts(ctx context.Context) ([]kitchen.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kitchen.Product), args.Error(1)
}

func (m *MockCatalogRepository) ProductExists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) CreateInventoryLine(ctx context.Context, line *kitchen.InventoryLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListInventory(ctx context.Context, fridgeIDs []uint) ([]kitchen.InventoryLine, error) {
	args := m.Called(ctx, fridgeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kitchen.InventoryLine), args.Error(1)
}

func (m *MockCatalogRepository) UpdateInventoryQuantity(ctx context.Context, id uint, quantity float64) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockCatalogRepository) DeleteInventoryLine(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogRepository) ConsolidatedInventory(ctx context.Context, fridgeIDs []uint) ([]kitchen.ConsolidatedLine, error) {
	args := m.Called(ctx, fridgeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kitchen.ConsolidatedLine), args.Error(1)
}

func (m *MockCatalogRepository) CreateRecipe(ctx context.Context, recipe *kitchen.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListRecipes(ctx context.Context) ([]kitchen.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kitchen.Recipe), args.Error(1)
}

func (m *MockCatalogRepository) RecipeExists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogRepository) CreateRecipeIngredient(ctx context.Context, ingredient *kitchen.RecipeIngredient) error {
	args := m.Called(ctx, ingredient)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListRecipeIngredients(ctx context.Context, recipeID *uint) ([]kitchen.RecipeIngredient, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kitchen.RecipeIngredient), args.Error(1)
}

func (m *MockCatalogRepository) CreateEquipment(ctx context.Context, equipment *kitchen.Equipment) error {
	args := m.Called(ctx, equipment)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListEquipment(ctx context.Context, fridgeIDs []uint) ([]kitchen.Equipment, error) {
	args := m.Called(ctx, fridgeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kitchen.Equipment), args.Error(1)
}

func (m *MockCatalogRepository) SaveOrder(ctx context.Context, order *kitchen.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListOrders(ctx context.Context) ([]kitchen.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kitchen.Order), args.Error(1)
}

func (m *MockCatalogRepository) DeleteOrder(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCacheRepository provides an in-memory cache that also records calls
type MockCacheRepository struct {
	mock.Mock
	data map[string][]byte
	mu   sync.RWMutex
}

// NewMockCacheRepository creates a new mock cache repository
func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string][]byte),
	}
}

var _ outbound.CacheRepository = (*MockCacheRepository)(nil)

// Get retrieves a value from cache
func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if value, exists := m.data[key]; exists {
		return value, nil
	}
	return nil, outbound.ErrCacheMiss
}

// Set stores a value in cache
func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)

	if args.Error(0) == nil {
		m.mu.Lock()
		m.data[key] = value
		m.mu.Unlock()
	}
	return args.Error(0)
}

// Delete removes a value from cache
func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)

	if args.Error(0) == nil {
		m.mu.Lock()
		delete(m.data, key)
		m.mu.Unlock()
	}
	return args.Error(0)
}

// Exists checks if a key exists in cache
func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	if args.Error(1) != nil {
		return false, args.Error(1)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.data[key]
	return exists, nil
}

// MockRecommendationMetrics counts metric calls
type MockRecommendationMetrics struct {
	mu       sync.Mutex
	Outcomes map[string]int
	Orders   int
}

// NewMockRecommendationMetrics creates a new metrics recorder
func NewMockRecommendationMetrics() *MockRecommendationMetrics {
	return &MockRecommendationMetrics{Outcomes: make(map[string]int)}
}

// ObserveRecommendation records an outcome
func (m *MockRecommendationMetrics) ObserveRecommendation(outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Outcomes[outcome]++
}

// OrderCreated records an order
func (m *MockRecommendationMetrics) OrderCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Orders++
}
