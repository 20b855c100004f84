package knowledge

import (
	"context"

	"github.com/smartkitchen/kitchen/internal/domain/kitchen"
	"github.com/smartkitchen/kitchen/internal/ports/outbound"
	"github.com/smartkitchen/kitchen/pkg/errors"
	"go.uber.org/zap"
)

// Result is the outcome of one ingestion run
type Result struct {
	Rules          []kitchen.KnowledgeRule `json:"rules"`
	Contradictions []Contradiction         `json:"contradictions"`
}

// Service extracts rules from texts and stores them
type Service struct {
	repo   outbound.KnowledgeRuleRepository
	logger *zap.Logger
}

// NewService creates a new knowledge service
func NewService(repo outbound.KnowledgeRuleRepository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.Named("knowledge-service"),
	}
}

// Ingest extracts rules from texts, saves them and checks them for
// contradictions. Nothing is saved when no rule matched.
func (s *Service) Ingest(ctx context.Context, texts []string) (*Result, error) {
	findings := Extract(texts)

	rules := make([]kitchen.KnowledgeRule, 0, len(findings))
	for _, f := range findings {
		rules = append(rules, f.Rule)
	}

	if len(rules) > 0 {
		if err := s.repo.SaveRules(ctx, rules); err != nil {
			return nil, errors.NewDatabaseError("save knowledge rules", err)
		}
	}

	contradictions := DetectContradictions(findings)
	for _, c := range contradictions {
		s.logger.Warn("Contradicting rules found",
			zap.String("topic", c.Topic),
			zap.String("positive", c.Positive),
			zap.String("negative", c.Negative),
		)
	}

	s.logger.Info("Knowledge rules ingested",
		zap.Int("texts", len(texts)),
		zap.Int("rules", len(rules)),
		zap.Int("contradictions", len(contradictions)),
	)

	if contradictions == nil {
		contradictions = []Contradiction{}
	}
	return &Result{Rules: rules, Contradictions: contradictions}, nil
}

// ListRules returns every stored rule
func (s *Service) ListRules(ctx context.Context) ([]kitchen.KnowledgeRule, error) {
	rules, err := s.repo.ListRules(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list knowledge rules", err)
	}
	return rules, nil
}
