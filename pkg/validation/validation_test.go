package validation

import (
	"testing"

	"github.com/smartkitchen/kitchen/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	FridgeIDs []uint `json:"fridge_ids" validate:"required,min=1,dive,gt=0"`
	People    int    `json:"people" validate:"gte=1"`
	MealType  string `json:"meal_type" validate:"required"`
	Kind      string `json:"kind" validate:"omitempty,oneof=fast long"`
}

func TestStruct(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, Struct(sample{FridgeIDs: []uint{1}, People: 2, MealType: "lunch"}))
	})

	t.Run("Invalid_ShouldListEveryField", func(t *testing.T) {
		err := Struct(sample{People: 0, Kind: "medium"})
		require.Error(t, err)

		appErr, ok := err.(*errors.AppError)
		require.True(t, ok)
		assert.Equal(t, errors.CodeValidationFailed, appErr.Code)

		fields := appErr.Metadata["validation_errors"].(errors.ValidationErrors)
		names := make([]string, 0, len(fields))
		for _, f := range fields {
			names = append(names, f.Field)
		}
		assert.ElementsMatch(t, []string{"fridge_ids", "people", "meal_type", "kind"}, names)
	})

	t.Run("ZeroFridgeID_ShouldFail", func(t *testing.T) {
		err := Struct(sample{FridgeIDs: []uint{0}, People: 1, MealType: "lunch"})
		assert.True(t, errors.Is(err, errors.CodeValidationFailed))
	})
}
