package recommendation

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/smartkitchen/kitchen/internal/domain/kitchen"
	"github.com/smartkitchen/kitchen/internal/ports/inbound"
	"github.com/smartkitchen/kitchen/internal/ports/outbound"
	"github.com/smartkitchen/kitchen/pkg/errors"
	"github.com/smartkitchen/kitchen/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type RecommendationServiceTestSuite struct {
	suite.Suite
	store   *testutils.MockCatalogRepository
	metrics *testutils.MockRecommendationMetrics
	service *Service
	ctx     context.Context
}

func (s *RecommendationServiceTestSuite) SetupTest() {
	s.store = testutils.NewMockCatalogRepository()
	s.metrics = testutils.NewMockRecommendationMetrics()
	s.service = NewService(s.store, FixedChooser(0), s.metrics, zap.NewNop())
	s.ctx = context.Background()
}

func (s *RecommendationServiceTestSuite) TearDownTest() {
	s.store.AssertExpectations(s.T())
}

func TestRecommendationServiceSuite(t *testing.T) {
	suite.Run(t, new(RecommendationServiceTestSuite))
}

func omelette() kitchen.Recipe {
	return kitchen.Recipe{ID: 1, Name: "omelette", Servings: 2, MealType: "breakfast"}
}

func eggIngredients() []kitchen.RecipeIngredient {
	return []kitchen.RecipeIngredient{{ID: 1, RecipeID: 1, Product: "egg", Quantity: 1, Unit: "pcs"}}
}

func (s *RecommendationServiceTestSuite) TestRecommend_NoRecipes_ShouldReturnNotFound() {
	// Arrange
	s.store.On("RecipesByMealType", mock.Anything, "breakfast").Return([]kitchen.Recipe{}, nil)

	// Act
	rec, err := s.service.Recommend(s.ctx, inbound.RecommendRequest{
		FridgeIDs: []uint{1}, People: 2, MealType: "breakfast",
	})

	// Assert
	s.Nil(rec)
	s.True(errors.Is(err, errors.CodeRecipesNotFound))
	s.True(stderrors.Is(err, kitchen.ErrRecipesNotFound))
	s.store.AssertNotCalled(s.T(), "SumInventoryByProduct", mock.Anything, mock.Anything)
	s.Equal(1, s.metrics.Outcomes[outbound.OutcomeNotFound])
}

func (s *RecommendationServiceTestSuite) TestRecommend_MissingEquipment_ShouldBeInfeasible() {
	// Arrange
	smoothie := kitchen.Recipe{ID: 2, Name: "smoothie", Servings: 1, MealType: "breakfast", RequiredEquipment: "blender"}
	s.store.On("RecipesByMealType", mock.Anything, "breakfast").Return([]kitchen.Recipe{smoothie}, nil)
	s.store.On("SumEquipmentByName", mock.Anything, []uint{1}).Return(map[string]int{"blender": 0}, nil)
	s.store.On("SumInventoryByProduct", mock.Anything, []uint{1}).Return(kitchen.Stock{}, nil)

	// Act
	rec, err := s.service.Recommend(s.ctx, inbound.RecommendRequest{
		FridgeIDs: []uint{1}, People: 1, MealType: "breakfast",
	})

	// Assert
	s.Require().NoError(err)
	s.False(rec.CanCook)
	s.Equal(inbound.ReasonNoSuitableRecipe, rec.Reason)
	s.True(rec.Infeasible())
	s.store.AssertNotCalled(s.T(), "CreateOrder", mock.Anything, mock.Anything)
	s.store.AssertNotCalled(s.T(), "IngredientsForRecipe", mock.Anything, mock.Anything)
}

func (s *RecommendationServiceTestSuite) TestRecommend_Shortage_ShouldCreateOrder() {
	// Arrange
	s.store.On("RecipesByMealType", mock.Anything, "breakfast").Return([]kitchen.Recipe{omelette()}, nil)
	s.store.On("SumEquipmentByName", mock.Anything, []uint{1}).Return(map[string]int{}, nil)
	s.store.On("SumInventoryByProduct", mock.Anything, []uint{1}).Return(kitchen.Stock{
		"egg": {Quantity: 1, Perishability: kitchen.PerishabilityFast},
	}, nil)
	s.store.On("IngredientsForRecipe", mock.Anything, uint(1)).Return(eggIngredients(), nil)
	s.store.On("CreateOrder", mock.Anything, `{"egg":1}`).Return(uint(42), nil).Once()

	// Act
	rec, err := s.service.Recommend(s.ctx, inbound.RecommendRequest{
		FridgeIDs: []uint{1}, People: 4, MealType: "breakfast",
	})

	// Assert
	s.Require().NoError(err)
	s.Equal("omelette", rec.Recipe)
	s.Equal(4, rec.People)
	s.False(rec.CanCook)
	s.Equal(map[string]float64{"egg": 1.0}, rec.Missing)
	s.Require().NotNil(rec.OrderID)
	s.Equal(uint(42), *rec.OrderID)
	s.Equal(1, rec.UsedFastProducts)
	s.Equal(1, s.metrics.Orders)
	s.Equal(1, s.metrics.Outcomes[outbound.OutcomeShortage])
}

func (s *RecommendationServiceTestSuite) TestRecommend_EnoughStock_ShouldNotCreateOrder() {
	// Arrange
	s.store.On("RecipesByMealType", mock.Anything, "breakfast").Return([]kitchen.Recipe{omelette()}, nil)
	s.store.On("SumEquipmentByName", mock.Anything, []uint{1}).Return(map[string]int{}, nil)
	s.store.On("SumInventoryByProduct", mock.Anything, []uint{1}).Return(kitchen.Stock{
		"egg": {Quantity: 2, Perishability: kitchen.PerishabilityFast},
	}, nil)
	s.store.On("IngredientsForRecipe", mock.Anything, uint(1)).Return(eggIngredients(), nil)

	// Act
	rec, err := s.service.Recommend(s.ctx, inbound.RecommendRequest{
		FridgeIDs: []uint{1}, People: 4, MealType: "breakfast",
	})

	// Assert
	s.Require().NoError(err)
	s.True(rec.CanCook)
	s.Empty(rec.Missing)
	s.Nil(rec.OrderID)
	s.store.AssertNotCalled(s.T(), "CreateOrder", mock.Anything, mock.Anything)
	s.Equal(1, s.metrics.Outcomes[outbound.OutcomeCookable])
}

func (s *RecommendationServiceTestSuite) TestRecommend_PrefersHighestFastScore() {
	// Arrange
	toast := kitchen.Recipe{ID: 1, Name: "toast", Servings: 1, MealType: "breakfast"}
	salad := kitchen.Recipe{ID: 2, Name: "salad", Servings: 1, MealType: "breakfast"}
	s.store.On("RecipesByMealType", mock.Anything, "breakfast").Return([]kitchen.Recipe{toast, salad}, nil)
	s.store.On("SumEquipmentByName", mock.Anything, []uint{1}).Return(map[string]int{}, nil)
	s.store.On("SumInventoryByProduct", mock.Anything, []uint{1}).Return(kitchen.Stock{
		"bread":    {Quantity: 5, Perishability: kitchen.PerishabilityLong},
		"tomato":   {Quantity: 5, Perishability: kitchen.PerishabilityFast},
		"cucumber": {Quantity: 5, Perishability: kitchen.PerishabilityFast},
	}, nil)
	s.store.On("IngredientsForRecipe", mock.Anything, uint(1)).Return([]kitchen.RecipeIngredient{
		{RecipeID: 1, Product: "bread", Quantity: 1},
	}, nil)
	s.store.On("IngredientsForRecipe", mock.Anything, uint(2)).Return([]kitchen.RecipeIngredient{
		{RecipeID: 2, Product: "tomato", Quantity: 1},
		{RecipeID: 2, Product: "cucumber", Quantity: 1},
	}, nil)

	// Act
	rec, err := s.service.Recommend(s.ctx, inbound.RecommendRequest{
		FridgeIDs: []uint{1}, People: 1, MealType: "breakfast",
	})

	// Assert
	s.Require().NoError(err)
	s.Equal("salad", rec.Recipe)
	s.Equal(2, rec.UsedFastProducts)
	s.True(rec.CanCook)
}

func (s *RecommendationServiceTestSuite) TestRecommend_InvalidServings_ShouldReturnConfigurationError() {
	// Arrange
	broken := kitchen.Recipe{ID: 7, Name: "broken", Servings: 0, MealType: "dinner"}
	s.store.On("RecipesByMealType", mock.Anything, "dinner").Return([]kitchen.Recipe{broken}, nil)
	s.store.On("SumEquipmentByName", mock.Anything, []uint{1}).Return(map[string]int{}, nil)
	s.store.On("SumInventoryByProduct", mock.Anything, []uint{1}).Return(kitchen.Stock{}, nil)
	s.store.On("IngredientsForRecipe", mock.Anything, uint(7)).Return([]kitchen.RecipeIngredient{}, nil)

	// Act
	rec, err := s.service.Recommend(s.ctx, inbound.RecommendRequest{
		FridgeIDs: []uint{1}, People: 2, MealType: "dinner",
	})

	// Assert
	s.Nil(rec)
	s.True(errors.Is(err, errors.CodeConfigurationError))
	s.True(stderrors.Is(err, kitchen.ErrInvalidServings))
}

func (s *RecommendationServiceTestSuite) TestRecommend_Validation() {
	testCases := []struct {
		name string
		req  inbound.RecommendRequest
	}{
		{"EmptyFridgeIDs_ShouldFail", inbound.RecommendRequest{People: 1, MealType: "lunch"}},
		{"ZeroPeople_ShouldFail", inbound.RecommendRequest{FridgeIDs: []uint{1}, People: 0, MealType: "lunch"}},
		{"MissingMealType_ShouldFail", inbound.RecommendRequest{FridgeIDs: []uint{1}, People: 1}},
		{"ZeroFridgeID_ShouldFail", inbound.RecommendRequest{FridgeIDs: []uint{0}, People: 1, MealType: "lunch"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			// Act
			rec, err := s.service.Recommend(s.ctx, tc.req)

			// Assert
			s.Nil(rec)
			s.True(errors.Is(err, errors.CodeValidationFailed))
		})
	}
	s.store.AssertNotCalled(s.T(), "RecipesByMealType", mock.Anything, mock.Anything)
}

func (s *RecommendationServiceTestSuite) TestRecommend_StoreFailure_ShouldReturnDatabaseError() {
	// Arrange
	s.store.On("RecipesByMealType", mock.Anything, "lunch").Return(nil, stderrors.New("connection refused"))

	// Act
	_, err := s.service.Recommend(s.ctx, inbound.RecommendRequest{
		FridgeIDs: []uint{1}, People: 1, MealType: "lunch",
	})

	// Assert
	s.True(errors.Is(err, errors.CodeDatabaseError))
	s.Equal(1, s.metrics.Outcomes[outbound.OutcomeError])
}

func (s *RecommendationServiceTestSuite) TestRecommendFromText_ShouldParseAndRecommend() {
	// Arrange
	s.store.On("RecipesByMealType", mock.Anything, "breakfast").Return([]kitchen.Recipe{omelette()}, nil)
	s.store.On("SumEquipmentByName", mock.Anything, []uint{2}).Return(map[string]int{}, nil)
	s.store.On("SumInventoryByProduct", mock.Anything, []uint{2}).Return(kitchen.Stock{
		"egg": {Quantity: 10},
	}, nil)
	s.store.On("IngredientsForRecipe", mock.Anything, uint(1)).Return(eggIngredients(), nil)

	// Act
	result, err := s.service.RecommendFromText(s.ctx, inbound.TextRequest{Text: "завтрак для 3 человек на 2 кухне"})

	// Assert
	s.Require().NoError(err)
	s.Equal(inbound.ParsedRequest{People: 3, MealType: "breakfast", FridgeIDs: []uint{2}}, result.ParsedRequest)
	s.Equal("omelette", result.Recommendation.Recipe)
	s.True(result.Recommendation.CanCook)
}

func (s *RecommendationServiceTestSuite) TestRecommendFromText_ZeroPeople_ShouldFailValidation() {
	// Act
	result, err := s.service.RecommendFromText(s.ctx, inbound.TextRequest{Text: "обед на 0 человек"})

	// Assert
	s.Nil(result)
	s.True(errors.Is(err, errors.CodeValidationFailed))
}

func (s *RecommendationServiceTestSuite) TestRecommendFromText_NoRecipes_ShouldPropagateNotFound() {
	// Arrange
	s.store.On("RecipesByMealType", mock.Anything, "party").Return([]kitchen.Recipe{}, nil)

	// Act
	result, err := s.service.RecommendFromText(s.ctx, inbound.TextRequest{Text: "вечеринка"})

	// Assert
	s.Nil(result)
	s.True(errors.Is(err, errors.CodeRecipesNotFound))
}

type countingChooser struct {
	calls []int
	next  int
}

func (c *countingChooser) Intn(n int) int {
	c.calls = append(c.calls, n)
	return c.next
}

func TestRecommend_TieBreakUsesChooserOverBestSet(t *testing.T) {
	ctx := context.Background()
	store := testutils.NewMockCatalogRepository()
	recipes := []kitchen.Recipe{
		{ID: 1, Name: "a", Servings: 1},
		{ID: 2, Name: "b", Servings: 1},
		{ID: 3, Name: "c", Servings: 1},
	}
	stock := kitchen.Stock{
		"milk":  {Quantity: 10, Perishability: kitchen.PerishabilityFast},
		"fish":  {Quantity: 10, Perishability: kitchen.PerishabilityFast},
		"flour": {Quantity: 10, Perishability: kitchen.PerishabilityLong},
	}
	store.On("RecipesByMealType", mock.Anything, "dinner").Return(recipes, nil)
	store.On("SumEquipmentByName", mock.Anything, []uint{1}).Return(map[string]int{}, nil)
	store.On("SumInventoryByProduct", mock.Anything, []uint{1}).Return(stock, nil)
	store.On("IngredientsForRecipe", mock.Anything, uint(1)).Return([]kitchen.RecipeIngredient{{Product: "milk", Quantity: 1}, {Product: "fish", Quantity: 1}}, nil)
	store.On("IngredientsForRecipe", mock.Anything, uint(2)).Return([]kitchen.RecipeIngredient{{Product: "fish", Quantity: 1}, {Product: "milk", Quantity: 1}}, nil)
	store.On("IngredientsForRecipe", mock.Anything, uint(3)).Return([]kitchen.RecipeIngredient{{Product: "milk", Quantity: 1}, {Product: "flour", Quantity: 1}}, nil)

	chooser := &countingChooser{next: 1}
	svc := NewService(store, chooser, nil, zap.NewNop())

	rec, err := svc.Recommend(ctx, inbound.RecommendRequest{FridgeIDs: []uint{1}, People: 1, MealType: "dinner"})

	require.NoError(t, err)
	assert.Equal(t, []int{2}, chooser.calls)
	assert.Equal(t, "b", rec.Recipe)
	assert.Equal(t, 2, rec.UsedFastProducts)
}

func TestRecommend_RandomTieBreakReachesEveryBestRecipe(t *testing.T) {
	ctx := context.Background()
	store := testutils.NewMockCatalogRepository()
	recipes := []kitchen.Recipe{
		{ID: 1, Name: "a", Servings: 1},
		{ID: 2, Name: "b", Servings: 1},
		{ID: 3, Name: "c", Servings: 1},
	}
	stock := kitchen.Stock{
		"milk": {Quantity: 10, Perishability: kitchen.PerishabilityFast},
		"fish": {Quantity: 10, Perishability: kitchen.PerishabilityFast},
	}
	store.On("RecipesByMealType", mock.Anything, "dinner").Return(recipes, nil)
	store.On("SumEquipmentByName", mock.Anything, []uint{1}).Return(map[string]int{}, nil)
	store.On("SumInventoryByProduct", mock.Anything, []uint{1}).Return(stock, nil)
	store.On("IngredientsForRecipe", mock.Anything, uint(1)).Return([]kitchen.RecipeIngredient{{Product: "milk", Quantity: 1}, {Product: "fish", Quantity: 1}}, nil)
	store.On("IngredientsForRecipe", mock.Anything, uint(2)).Return([]kitchen.RecipeIngredient{{Product: "fish", Quantity: 1}, {Product: "milk", Quantity: 1}}, nil)
	store.On("IngredientsForRecipe", mock.Anything, uint(3)).Return([]kitchen.RecipeIngredient{{Product: "milk", Quantity: 1}}, nil)

	svc := NewService(store, RandomChooser{}, nil, zap.NewNop())

	seen := make(map[string]int)
	for i := 0; i < 400; i++ {
		rec, err := svc.Recommend(ctx, inbound.RecommendRequest{FridgeIDs: []uint{1}, People: 1, MealType: "dinner"})
		require.NoError(t, err)
		seen[rec.Recipe]++
	}

	assert.Greater(t, seen["a"], 0)
	assert.Greater(t, seen["b"], 0)
	assert.Zero(t, seen["c"])
}

func TestBestByFastScore(t *testing.T) {
	scored := []kitchen.Assessment{
		{Recipe: kitchen.Recipe{Name: "a"}, FastScore: 2},
		{Recipe: kitchen.Recipe{Name: "b"}, FastScore: 2},
		{Recipe: kitchen.Recipe{Name: "c"}, FastScore: 1},
	}

	best := BestByFastScore(scored)

	require.Len(t, best, 2)
	assert.Equal(t, "a", best[0].Recipe.Name)
	assert.Equal(t, "b", best[1].Recipe.Name)
}

func TestFormatOrderItems(t *testing.T) {
	items, err := FormatOrderItems(map[string]float64{"milk": 0.5, "egg": 1, "bread": 2.25})

	require.NoError(t, err)
	assert.Equal(t, `{"bread":2.25,"egg":1,"milk":0.5}`, items)
}

func TestFixedChooser(t *testing.T) {
	assert.Equal(t, 0, FixedChooser(0).Intn(3))
	assert.Equal(t, 2, FixedChooser(5).Intn(3))
	assert.Equal(t, 0, FixedChooser(-1).Intn(3))
}
