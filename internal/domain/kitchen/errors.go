package kitchen

import "errors"

// Domain errors for kitchen operations

var (
	// Configuration errors
	ErrInvalidServings  = errors.New("servings must be greater than 0")
	ErrNegativeQuantity = errors.New("quantity cannot be negative")

	// Catalog gaps
	ErrRecipesNotFound = errors.New("recipes not found")

	// Reference errors
	ErrFridgeNotFound  = errors.New("fridge not found")
	ErrProductNotFound = errors.New("product not found")
	ErrRecipeNotFound  = errors.New("recipe not found")

	// Missing records
	ErrInventoryLineNotFound = errors.New("inventory line not found")
	ErrOrderNotFound         = errors.New("order not found")
)
