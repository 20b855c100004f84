package knowledge

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"

	"github.com/smartkitchen/kitchen/internal/domain/kitchen"
	"github.com/smartkitchen/kitchen/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var cookbook = []string{
	"Взбейте 2 яйца до пены.",
	"Яйца нельзя взбивать слишком долго.",
	"Выпекать при температуре 180 градусов 25 минут.",
}

func TestExtract_Cookbook(t *testing.T) {
	findings := Extract(cookbook)

	require.Len(t, findings, 3)
	assert.Equal(t, kitchen.KnowledgeRule{Rule: "IF есть яйца THEN взбить яйца", Confidence: 0.9}, findings[0].Rule)
	assert.Equal(t, kitchen.KnowledgeRule{Rule: "IF есть яйца THEN НЕ взбивать яйца", Confidence: 0.8}, findings[1].Rule)
	assert.Equal(t, kitchen.KnowledgeRule{Rule: "IF тесто готово THEN выпекать при 180C 25 минут", Confidence: 0.95}, findings[2].Rule)
	assert.True(t, findings[1].Negated)
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  []string
	}{
		{"short text is skipped", []string{"взб. "}, nil},
		{"english whisk", []string{"Whisk the eggs until fluffy"}, []string{"IF eggs available THEN whisk eggs"}},
		{"english negation", []string{"Do not whisk the cream too long"}, []string{"IF eggs available THEN do NOT whisk eggs"}},
		{"baking numbers are read from text", []string{"Bake at 200 degrees for 40 minutes"}, []string{"IF dough ready THEN bake at 200C for 40 minutes"}},
		{"baking defaults", []string{"Пеките при высоком градусе"}, []string{"IF тесто готово THEN выпекать при 180C 25 минут"}},
		{"unrelated text", []string{"Нарежьте лук кольцами"}, nil},
		{"negation inside a word does not count", []string{"Взбейте сливки на огне"}, []string{"IF есть яйца THEN взбить яйца"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, f := range Extract(tt.texts) {
				got = append(got, f.Rule.Rule)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectContradictions(t *testing.T) {
	t.Run("whisk and do not whisk", func(t *testing.T) {
		contradictions := DetectContradictions(Extract(cookbook))

		require.Len(t, contradictions, 1)
		assert.Equal(t, TopicWhiskEggs, contradictions[0].Topic)
		assert.Equal(t, "IF есть яйца THEN взбить яйца", contradictions[0].Positive)
		assert.Equal(t, "IF есть яйца THEN НЕ взбивать яйца", contradictions[0].Negative)
	})

	t.Run("only positive", func(t *testing.T) {
		assert.Empty(t, DetectContradictions(Extract(cookbook[:1])))
	})

	t.Run("reported once per topic", func(t *testing.T) {
		texts := append(append([]string{}, cookbook...), cookbook...)
		assert.Len(t, DetectContradictions(Extract(texts)), 1)
	})
}

type memoryRuleRepo struct {
	mu    sync.Mutex
	rules []kitchen.KnowledgeRule
	err   error
}

func (r *memoryRuleRepo) SaveRules(_ context.Context, rules []kitchen.KnowledgeRule) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rule := range rules {
		rule.ID = uint(len(r.rules) + 1)
		r.rules = append(r.rules, rule)
	}
	return nil
}

func (r *memoryRuleRepo) ListRules(context.Context) ([]kitchen.KnowledgeRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]kitchen.KnowledgeRule{}, r.rules...), r.err
}

func TestService_Ingest(t *testing.T) {
	repo := &memoryRuleRepo{}
	svc := NewService(repo, zap.NewNop())

	result, err := svc.Ingest(context.Background(), cookbook)

	require.NoError(t, err)
	assert.Len(t, result.Rules, 3)
	assert.Len(t, result.Contradictions, 1)

	stored, err := svc.ListRules(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 3)
	assert.Equal(t, uint(1), stored[0].ID)
}

func TestService_Ingest_NoRules(t *testing.T) {
	repo := &memoryRuleRepo{err: stderrors.New("must not be called")}
	svc := NewService(repo, zap.NewNop())

	result, err := svc.Ingest(context.Background(), []string{"Нарежьте лук кольцами"})

	require.NoError(t, err)
	assert.Empty(t, result.Rules)
	assert.NotNil(t, result.Contradictions)
}

func TestService_Ingest_StoreFailure(t *testing.T) {
	repo := &memoryRuleRepo{err: stderrors.New("locked")}
	svc := NewService(repo, zap.NewNop())

	_, err := svc.Ingest(context.Background(), cookbook)

	assert.True(t, errors.Is(err, errors.CodeDatabaseError))
}
