package handlers

import (
	"context"
	"net/http"

	"github.com/smartkitchen/kitchen/internal/application/knowledge"
	"github.com/smartkitchen/kitchen/internal/domain/kitchen"
	"github.com/smartkitchen/kitchen/internal/ports/inbound"
	"go.uber.org/zap"
)

// KnowledgeService extracts and lists knowledge rules
type KnowledgeService interface {
	Ingest(ctx context.Context, texts []string) (*knowledge.Result, error)
	ListRules(ctx context.Context) ([]kitchen.KnowledgeRule, error)
}

// RecommendHandlers serves the recommender and knowledge routes
type RecommendHandlers struct {
	recommender inbound.RecommendationService
	knowledge   KnowledgeService
	logger      *zap.Logger
}

// NewRecommendHandlers creates recommendation handlers
func NewRecommendHandlers(
	recommender inbound.RecommendationService,
	knowledge KnowledgeService,
	logger *zap.Logger,
) *RecommendHandlers {
	return &RecommendHandlers{
		recommender: recommender,
		knowledge:   knowledge,
		logger:      logger.Named("recommend-handlers"),
	}
}

// Recommend handles POST /recommend
func (h *RecommendHandlers) Recommend(w http.ResponseWriter, r *http.Request) {
	var req inbound.RecommendRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	rec, err := h.recommender.Recommend(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// TextRequest handles POST /text_request
func (h *RecommendHandlers) TextRequest(w http.ResponseWriter, r *http.Request) {
	var req inbound.TextRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	rec, err := h.recommender.RecommendFromText(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// IngestRulesRequest carries texts to extract knowledge rules from
type IngestRulesRequest struct {
	Texts []string `json:"texts" validate:"required,min=1"`
}

// IngestRules handles POST /knowledge_rules
func (h *RecommendHandlers) IngestRules(w http.ResponseWriter, r *http.Request) {
	var req IngestRulesRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := h.knowledge.Ingest(r.Context(), req.Texts)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// ListRules handles GET /knowledge_rules
func (h *RecommendHandlers) ListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.knowledge.ListRules(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rules)
}
