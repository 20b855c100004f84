// Package recommendation provides the application layer for recipe recommendation
// This implements the use cases defined in the inbound ports
package recommendation

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/smartkitchen/kitchen/internal/application/intent"
	"github.com/smartkitchen/kitchen/internal/domain/kitchen"
	"github.com/smartkitchen/kitchen/internal/ports/inbound"
	"github.com/smartkitchen/kitchen/internal/ports/outbound"
	"github.com/smartkitchen/kitchen/pkg/errors"
	"github.com/smartkitchen/kitchen/pkg/validation"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Service implements the recommendation use cases
type Service struct {
	store   outbound.CatalogStore
	chooser Chooser
	metrics outbound.RecommendationMetrics
	tracer  trace.Tracer
	logger  *zap.Logger
}

// NewService creates a new recommendation service. A nil chooser uses the
// process wide random source and nil metrics are discarded.
func NewService(
	store outbound.CatalogStore,
	chooser Chooser,
	metrics outbound.RecommendationMetrics,
	logger *zap.Logger,
) *Service {
	if chooser == nil {
		chooser = RandomChooser{}
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Service{
		store:   store,
		chooser: chooser,
		metrics: metrics,
		tracer:  otel.Tracer("github.com/smartkitchen/kitchen/recommendation"),
		logger:  logger.Named("recommendation-service"),
	}
}

var _ inbound.RecommendationService = (*Service)(nil)

// Recommend picks a recipe for the request and orders whatever is missing
func (s *Service) Recommend(ctx context.Context, req inbound.RecommendRequest) (*inbound.Recommendation, error) {
	start := time.Now()

	ctx, span := s.tracer.Start(ctx, "recommendation.Recommend", trace.WithAttributes(
		attribute.String("meal_type", req.MealType),
		attribute.Int("people", req.People),
	))
	defer span.End()

	rec, err := s.recommend(ctx, req)
	outcome := outcomeOf(rec, err)
	s.metrics.ObserveRecommendation(outcome, time.Since(start))
	span.SetAttributes(attribute.String("outcome", outcome))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return rec, nil
}

func (s *Service) recommend(ctx context.Context, req inbound.RecommendRequest) (*inbound.Recommendation, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	s.logger.Info("Recommending recipe",
		zap.Uints("fridge_ids", req.FridgeIDs),
		zap.Int("people", req.People),
		zap.String("meal_type", req.MealType),
	)

	recipes, err := s.store.RecipesByMealType(ctx, req.MealType)
	if err != nil {
		return nil, errors.NewDatabaseError("load recipes", err)
	}
	if len(recipes) == 0 {
		return nil, errors.NewRecipesNotFoundError(req.MealType, kitchen.ErrRecipesNotFound)
	}

	equipment, err := s.store.SumEquipmentByName(ctx, req.FridgeIDs)
	if err != nil {
		return nil, errors.NewDatabaseError("sum equipment", err)
	}
	stock, err := s.store.SumInventoryByProduct(ctx, req.FridgeIDs)
	if err != nil {
		return nil, errors.NewDatabaseError("sum inventory", err)
	}

	scored, err := s.score(ctx, recipes, equipment, stock, req.People)
	if err != nil {
		return nil, err
	}
	if len(scored) == 0 {
		s.logger.Info("No recipe passes the equipment check",
			zap.String("meal_type", req.MealType),
			zap.Int("candidates", len(recipes)),
		)
		return &inbound.Recommendation{
			CanCook: false,
			Reason:  inbound.ReasonNoSuitableRecipe,
		}, nil
	}

	chosen, maxFast := s.selectBest(scored)

	rec := &inbound.Recommendation{
		Recipe:           chosen.Recipe.Name,
		People:           req.People,
		CanCook:          chosen.CanCook(),
		Missing:          chosen.Missing,
		UsedFastProducts: maxFast,
	}

	if !chosen.CanCook() {
		orderID, err := s.placeOrder(ctx, chosen.Missing)
		if err != nil {
			return nil, err
		}
		rec.OrderID = &orderID
	}

	s.logger.Info("Recipe recommended",
		zap.String("recipe", rec.Recipe),
		zap.Bool("can_cook", rec.CanCook),
		zap.Int("missing", len(rec.Missing)),
		zap.Int("used_fast_products", maxFast),
	)

	return rec, nil
}

// score assesses every recipe the equipment allows
func (s *Service) score(
	ctx context.Context,
	recipes []kitchen.Recipe,
	equipment map[string]int,
	stock kitchen.Stock,
	people int,
) ([]kitchen.Assessment, error) {
	scored := make([]kitchen.Assessment, 0, len(recipes))
	for _, recipe := range recipes {
		if !recipe.FeasibleWith(equipment) {
			s.logger.Debug("Recipe lacks equipment",
				zap.String("recipe", recipe.Name),
				zap.Strings("required", recipe.RequiredEquipmentList()),
			)
			continue
		}

		ingredients, err := s.store.IngredientsForRecipe(ctx, recipe.ID)
		if err != nil {
			return nil, errors.NewDatabaseError("load recipe ingredients", err)
		}

		assessment, err := kitchen.AssessRecipe(recipe, ingredients, people, stock)
		if err != nil {
			if stderrors.Is(err, kitchen.ErrInvalidServings) {
				return nil, errors.NewConfigurationError(
					fmt.Sprintf("recipe %q has %d servings", recipe.Name, recipe.Servings), err,
				).WithMetadata("recipe_id", recipe.ID)
			}
			return nil, errors.Wrap(err, "assess recipe")
		}
		scored = append(scored, assessment)
	}
	return scored, nil
}

// selectBest keeps the assessments with the highest fast score and lets the
// chooser pick one of them.
func (s *Service) selectBest(scored []kitchen.Assessment) (kitchen.Assessment, int) {
	best := BestByFastScore(scored)
	return best[s.chooser.Intn(len(best))], best[0].FastScore
}

func (s *Service) placeOrder(ctx context.Context, missing map[string]float64) (uint, error) {
	items, err := FormatOrderItems(missing)
	if err != nil {
		return 0, errors.Wrap(err, "format order items")
	}

	orderID, err := s.store.CreateOrder(ctx, items)
	if err != nil {
		return 0, errors.NewDatabaseError("create order", err)
	}
	s.metrics.OrderCreated()

	s.logger.Info("Replenishment order created",
		zap.Uint("order_id", orderID),
		zap.String("items", items),
	)
	return orderID, nil
}

// RecommendFromText parses the sentence and hands the result to Recommend.
// Errors from Recommend are returned unchanged.
func (s *Service) RecommendFromText(ctx context.Context, req inbound.TextRequest) (*inbound.TextRecommendation, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	parsed := intent.Parse(req.Text)
	s.logger.Debug("Parsed text request",
		zap.String("text", req.Text),
		zap.Int("people", parsed.People),
		zap.String("meal_type", parsed.MealType),
		zap.Uints("fridge_ids", parsed.FridgeIDs),
	)

	rec, err := s.Recommend(ctx, inbound.RecommendRequest{
		FridgeIDs: parsed.FridgeIDs,
		People:    parsed.People,
		MealType:  parsed.MealType,
	})
	if err != nil {
		return nil, err
	}

	return &inbound.TextRecommendation{
		ParsedRequest:  parsed,
		Recommendation: rec,
	}, nil
}

// BestByFastScore returns every assessment sharing the maximum fast score,
// in input order. scored must not be empty.
func BestByFastScore(scored []kitchen.Assessment) []kitchen.Assessment {
	maxFast := scored[0].FastScore
	for _, a := range scored[1:] {
		if a.FastScore > maxFast {
			maxFast = a.FastScore
		}
	}

	best := make([]kitchen.Assessment, 0, len(scored))
	for _, a := range scored {
		if a.FastScore == maxFast {
			best = append(best, a)
		}
	}
	return best
}

// FormatOrderItems renders the missing map as a JSON object with sorted keys.
// It is meant for people reading orders, not for parsing back.
func FormatOrderItems(missing map[string]float64) (string, error) {
	b, err := json.Marshal(missing)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func outcomeOf(rec *inbound.Recommendation, err error) string {
	switch {
	case errors.Is(err, errors.CodeRecipesNotFound):
		return outbound.OutcomeNotFound
	case err != nil:
		return outbound.OutcomeError
	case rec.Infeasible():
		return outbound.OutcomeInfeasible
	case rec.CanCook:
		return outbound.OutcomeCookable
	default:
		return outbound.OutcomeShortage
	}
}

type nopMetrics struct{}

func (nopMetrics) ObserveRecommendation(string, time.Duration) {}
func (nopMetrics) OrderCreated()                              {}
