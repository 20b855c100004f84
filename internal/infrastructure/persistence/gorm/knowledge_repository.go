package gorm

import (
	"context"

	"github.com/smartkitchen/kitchen/internal/domain/kitchen"
	"github.com/smartkitchen/kitchen/internal/ports/outbound"
	"gorm.io/gorm"
)

// KnowledgeRuleRepository implements rule storage using GORM
type KnowledgeRuleRepository struct {
	db *gorm.DB
}

// NewKnowledgeRuleRepository creates a new knowledge rule repository
func NewKnowledgeRuleRepository(db *gorm.DB) *KnowledgeRuleRepository {
	return &KnowledgeRuleRepository{db: db}
}

var _ outbound.KnowledgeRuleRepository = (*KnowledgeRuleRepository)(nil)

// SaveRules inserts every rule in one transaction
func (r *KnowledgeRuleRepository) SaveRules(ctx context.Context, rules []kitchen.KnowledgeRule) error {
	if len(rules) == 0 {
		return nil
	}

	models := make([]KnowledgeRuleModel, len(rules))
	for i, rule := range rules {
		models[i] = KnowledgeRuleModel{Rule: rule.Rule, Confidence: rule.Confidence}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&models).Error
	})
}

// ListRules lists every stored rule
func (r *KnowledgeRuleRepository) ListRules(ctx context.Context) ([]kitchen.KnowledgeRule, error) {
	var models []KnowledgeRuleModel

	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	return mapModels(models, ModelToKnowledgeRule), nil
}
