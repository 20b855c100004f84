package outbound

import "time"

// Recommendation outcomes reported to RecommendationMetrics
const (
	OutcomeCookable   = "cookable"
	OutcomeShortage   = "shortage"
	OutcomeInfeasible = "infeasible"
	OutcomeNotFound   = "not_found"
	OutcomeError      = "error"
)

// RecommendationMetrics records recommender outcomes
type RecommendationMetrics interface {
	ObserveRecommendation(outcome string, duration time.Duration)
	OrderCreated()
}
