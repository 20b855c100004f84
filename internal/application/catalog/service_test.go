package catalog

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/smartkitchen/kitchen/internal/domain/kitchen"
	"github.com/smartkitchen/kitchen/internal/ports/inbound"
	"github.com/smartkitchen/kitchen/pkg/errors"
	"github.com/smartkitchen/kitchen/test/testutils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type CatalogServiceTestSuite struct {
	suite.Suite
	repo    *testutils.MockCatalogRepository
	cache   *testutils.MockCacheRepository
	service *Service
	ctx     context.Context
}

func (s *CatalogServiceTestSuite) SetupTest() {
	s.repo = testutils.NewMockCatalogRepository()
	s.cache = testutils.NewMockCacheRepository()
	s.service = NewService(s.repo, s.cache, time.Minute, zap.NewNop())
	s.ctx = context.Background()
}

func (s *CatalogServiceTestSuite) TearDownTest() {
	s.repo.AssertExpectations(s.T())
}

func TestCatalogServiceSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}

func (s *CatalogServiceTestSuite) TestCreateFridge() {
	s.Run("ValidOwner_ShouldCreate", func() {
		// Arrange
		s.repo.On("CreateFridge", s.ctx, mock.AnythingOfType("*kitchen.Fridge")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*kitchen.Fridge).ID = 3
			}).
			Return(nil).Once()

		// Act
		fridge, err := s.service.CreateFridge(s.ctx, inbound.CreateFridgeCommand{Owner: "Anna"})

		// Assert
		s.Require().NoError(err)
		s.Equal(uint(3), fridge.ID)
		s.Equal("Anna", fridge.Owner)
	})

	s.Run("EmptyOwner_ShouldFailValidation", func() {
		// Act
		fridge, err := s.service.CreateFridge(s.ctx, inbound.CreateFridgeCommand{})

		// Assert
		s.Nil(fridge)
		s.True(errors.Is(err, errors.CodeValidationFailed))
	})
}

func (s *CatalogServiceTestSuite) TestCreateProduct_UnknownPerishability_ShouldFailValidation() {
	// Act
	product, err := s.service.CreateProduct(s.ctx, inbound.CreateProductCommand{Name: "milk", Perishability: "medium"})

	// Assert
	s.Nil(product)
	s.True(errors.Is(err, errors.CodeValidationFailed))
	s.repo.AssertNotCalled(s.T(), "CreateProduct", mock.Anything, mock.Anything)
}

func (s *CatalogServiceTestSuite) TestCreateProduct_NoPerishability_ShouldCreateUnset() {
	// Arrange
	s.repo.On("CreateProduct", s.ctx, mock.MatchedBy(func(p *kitchen.Product) bool {
		return p.Name == "salt" && p.Perishability == kitchen.PerishabilityUnset
	})).Return(nil).Once()

	// Act
	product, err := s.service.CreateProduct(s.ctx, inbound.CreateProductCommand{Name: "salt"})

	// Assert
	s.Require().NoError(err)
	s.Equal(kitchen.PerishabilityUnset, product.Perishability)
}

func (s *CatalogServiceTestSuite) TestAddInventory() {
	s.Run("UnknownFridge_ShouldReturnReferenceError", func() {
		// Arrange
		s.repo.On("FridgeExists", s.ctx, uint(9)).Return(false, nil).Once()

		// Act
		line, err := s.service.AddInventory(s.ctx, inbound.AddInventoryCommand{FridgeID: 9, ProductID: 1, Quantity: 2})

		// Assert
		s.Nil(line)
		s.True(errors.Is(err, errors.CodeReferenceError))
		s.True(stderrors.Is(err, kitchen.ErrFridgeNotFound))
	})

	s.Run("UnknownProduct_ShouldReturnReferenceError", func() {
		// Arrange
		s.repo.On("FridgeExists", s.ctx, uint(1)).Return(true, nil).Once()
		s.repo.On("ProductExists", s.ctx, uint(8)).Return(false, nil).Once()

		// Act
		line, err := s.service.AddInventory(s.ctx, inbound.AddInventoryCommand{FridgeID: 1, ProductID: 8, Quantity: 2})

		// Assert
		s.Nil(line)
		s.True(errors.Is(err, errors.CodeReferenceError))
		s.True(stderrors.Is(err, kitchen.ErrProductNotFound))
	})

	s.Run("NegativeQuantity_ShouldFailValidation", func() {
		// Act
		line, err := s.service.AddInventory(s.ctx, inbound.AddInventoryCommand{FridgeID: 1, ProductID: 1, Quantity: -1})

		// Assert
		s.Nil(line)
		s.True(errors.Is(err, errors.CodeValidationFailed))
	})

	s.Run("ValidLine_ShouldCreate", func() {
		// Arrange
		s.repo.On("FridgeExists", s.ctx, uint(1)).Return(true, nil).Once()
		s.repo.On("ProductExists", s.ctx, uint(2)).Return(true, nil).Once()
		s.repo.On("CreateInventoryLine", s.ctx, mock.AnythingOfType("*kitchen.InventoryLine")).Return(nil).Once()

		// Act
		line, err := s.service.AddInventory(s.ctx, inbound.AddInventoryCommand{FridgeID: 1, ProductID: 2, Quantity: 0.5, Unit: "l"})

		// Assert
		s.Require().NoError(err)
		s.Equal(0.5, line.Quantity)
		s.Equal("l", line.Unit)
	})
}

func (s *CatalogServiceTestSuite) TestUpdateInventoryQuantity_MissingLine_ShouldReturnNotFound() {
	// Arrange
	s.repo.On("UpdateInventoryQuantity", s.ctx, uint(5), 3.0).Return(kitchen.ErrInventoryLineNotFound).Once()

	// Act
	err := s.service.UpdateInventoryQuantity(s.ctx, 5, 3)

	// Assert
	s.True(errors.Is(err, errors.CodeNotFound))
}

func (s *CatalogServiceTestSuite) TestUpdateInventoryQuantity_Negative_ShouldFailValidation() {
	// Act
	err := s.service.UpdateInventoryQuantity(s.ctx, 5, -3)

	// Assert
	s.True(errors.Is(err, errors.CodeValidationFailed))
	s.repo.AssertNotCalled(s.T(), "UpdateInventoryQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func (s *CatalogServiceTestSuite) TestDeleteOrder() {
	s.Run("Missing_ShouldReturnNotFound", func() {
		s.repo.On("DeleteOrder", s.ctx, uint(4)).Return(kitchen.ErrOrderNotFound).Once()

		err := s.service.DeleteOrder(s.ctx, 4)

		s.True(errors.Is(err, errors.CodeNotFound))
	})

	s.Run("StoreFailure_ShouldReturnDatabaseError", func() {
		s.repo.On("DeleteOrder", s.ctx, uint(4)).Return(stderrors.New("disk full")).Once()

		err := s.service.DeleteOrder(s.ctx, 4)

		s.True(errors.Is(err, errors.CodeDatabaseError))
	})
}

func (s *CatalogServiceTestSuite) TestConsolidatedInventory_EmptyResult_ShouldRenderEmptyLists() {
	// Arrange
	s.repo.On("ConsolidatedInventory", s.ctx, []uint(nil)).Return(nil, nil).Once()

	// Act
	result, err := s.service.ConsolidatedInventory(s.ctx, nil)

	// Assert
	s.Require().NoError(err)
	s.NotNil(result.FridgeIDs)
	s.NotNil(result.Consolidated)
	s.Empty(result.Consolidated)
}

func (s *CatalogServiceTestSuite) TestListRecipes_ShouldUseCache() {
	// Arrange
	recipes := []kitchen.Recipe{{ID: 1, Name: "omelette", Servings: 2, MealType: "breakfast"}}
	s.repo.On("ListRecipes", s.ctx).Return(recipes, nil).Once()
	s.cache.On("Get", s.ctx, recipesCacheKey).Return(nil, nil)
	s.cache.On("Set", s.ctx, recipesCacheKey, mock.Anything, time.Minute).Return(nil).Once()

	// Act
	first, err := s.service.ListRecipes(s.ctx)
	s.Require().NoError(err)
	second, err := s.service.ListRecipes(s.ctx)
	s.Require().NoError(err)

	// Assert
	s.Equal(recipes, first)
	s.Equal(recipes, second)
	s.repo.AssertNumberOfCalls(s.T(), "ListRecipes", 1)
}

func (s *CatalogServiceTestSuite) TestCreateRecipe_ShouldInvalidateCache() {
	// Arrange
	s.repo.On("CreateRecipe", s.ctx, mock.AnythingOfType("*kitchen.Recipe")).Return(nil).Once()
	s.cache.On("Delete", s.ctx, recipesCacheKey).Return(nil).Once()

	// Act
	recipe, err := s.service.CreateRecipe(s.ctx, inbound.CreateRecipeCommand{
		Name: "pancakes", Servings: 4, MealType: "breakfast", RequiredEquipment: "pan, whisk",
	})

	// Assert
	s.Require().NoError(err)
	s.Equal([]string{"pan", "whisk"}, recipe.RequiredEquipmentList())
	s.cache.AssertExpectations(s.T())
}

func (s *CatalogServiceTestSuite) TestCreateRecipe_ZeroServings_ShouldFailValidation() {
	// Act
	recipe, err := s.service.CreateRecipe(s.ctx, inbound.CreateRecipeCommand{Name: "x", Servings: 0, MealType: "lunch"})

	// Assert
	s.Nil(recipe)
	s.True(errors.Is(err, errors.CodeValidationFailed))
}

func (s *CatalogServiceTestSuite) TestAddRecipeIngredient_UnknownRecipe_ShouldReturnReferenceError() {
	// Arrange
	s.repo.On("RecipeExists", s.ctx, uint(11)).Return(false, nil).Once()

	// Act
	ing, err := s.service.AddRecipeIngredient(s.ctx, inbound.AddRecipeIngredientCommand{RecipeID: 11, Product: "egg", Quantity: 1})

	// Assert
	s.Nil(ing)
	s.True(errors.Is(err, errors.CodeReferenceError))
}

func (s *CatalogServiceTestSuite) TestAddEquipment_UnknownFridge_ShouldReturnReferenceError() {
	// Arrange
	s.repo.On("FridgeExists", s.ctx, uint(2)).Return(false, nil).Once()

	// Act
	eq, err := s.service.AddEquipment(s.ctx, inbound.AddEquipmentCommand{FridgeID: 2, Name: "pan", Quantity: 1})

	// Assert
	s.Nil(eq)
	s.True(errors.Is(err, errors.CodeReferenceError))
}

func (s *CatalogServiceTestSuite) TestCreateOrder_ShouldSave() {
	// Arrange
	s.repo.On("SaveOrder", s.ctx, mock.MatchedBy(func(o *kitchen.Order) bool {
		return o.Items == "2 loaves of bread"
	})).Return(nil).Once()

	// Act
	order, err := s.service.CreateOrder(s.ctx, inbound.CreateOrderCommand{Items: "2 loaves of bread"})

	// Assert
	s.Require().NoError(err)
	s.Equal("2 loaves of bread", order.Items)
}

func TestListRecipes_WithoutCache(t *testing.T) {
	repo := testutils.NewMockCatalogRepository()
	repo.On("ListRecipes", mock.Anything).Return([]kitchen.Recipe{}, nil).Twice()
	svc := NewService(repo, nil, 0, zap.NewNop())

	_, err := svc.ListRecipes(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	_, err = svc.ListRecipes(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	repo.AssertExpectations(t)
}
