package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{NewValidationError("people"), http.StatusBadRequest},
		{NewReferenceError("Fridge", 9, nil), http.StatusBadRequest},
		{NewRecipesNotFoundError("breakfast", nil), http.StatusNotFound},
		{NewNotFoundError("Order"), http.StatusNotFound},
		{NewUnauthorizedError(""), http.StatusUnauthorized},
		{NewConfigurationError("servings", nil), http.StatusInternalServerError},
		{NewDatabaseError("create order", stderrors.New("disk full")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestCauseIsPreserved(t *testing.T) {
	sentinel := stderrors.New("recipes not found")
	err := NewRecipesNotFoundError("lunch", sentinel)

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, "lunch", err.Metadata["meal_type"])
}

func TestWrapAndGetCode(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))

	ref := NewReferenceError("Product", 3, nil)
	wrapped := fmt.Errorf("add inventory: %w", ref)
	assert.Same(t, ref, Wrap(wrapped, "ignored"))
	assert.True(t, Is(wrapped, CodeReferenceError))
	assert.Equal(t, CodeReferenceError, GetCode(wrapped))

	plain := stderrors.New("boom")
	internal := Wrap(plain, "unexpected")
	require.NotNil(t, internal)
	assert.Equal(t, CodeInternal, internal.Code)
	assert.ErrorIs(t, internal, plain)
	assert.Equal(t, CodeInternal, GetCode(plain))
}

func TestToErrorResponse(t *testing.T) {
	resp := ToErrorResponse(NewReferenceError("Fridge", 7, nil), "req-1")

	assert.Equal(t, CodeReferenceError, resp.Error.Code)
	assert.Equal(t, "Fridge not found", resp.Error.Message)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Equal(t, uint(7), resp.Error.Metadata["fridge_id"])
	assert.NotEmpty(t, resp.Error.Timestamp)
}

func TestValidationErrors(t *testing.T) {
	err := NewValidationErrors([]ValidationError{
		{Field: "people", Tag: "min", Message: "people must be at least 1"},
		{Field: "meal_type", Tag: "required", Message: "meal_type is required"},
	})

	assert.Equal(t, CodeValidationFailed, err.Code)
	assert.Equal(t, "people must be at least 1; meal_type is required", err.Details)
}
