package kitchen

import "strconv"

// Assessment is the outcome of checking one recipe against consolidated stock.
type Assessment struct {
	Recipe Recipe
	// Missing maps a product name to the shortfall, rounded to two decimals.
	Missing map[string]float64
	// FastScore counts ingredients tagged fast, missing or not.
	FastScore int
}

// CanCook reports whether nothing is missing.
func (a Assessment) CanCook() bool {
	return len(a.Missing) == 0
}

// Scale returns people/servings. Non-positive servings are rejected before
// any division happens.
func Scale(people, servings int) (float64, error) {
	if servings <= 0 {
		return 0, ErrInvalidServings
	}
	return float64(people) / float64(servings), nil
}

// RoundShortfall rounds to two decimals. The exact binary value is rounded
// and exact halves go to the even digit, so 0.125 becomes 0.12.
func RoundShortfall(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}

// AssessRecipe scales every ingredient to the headcount and records the
// shortfall against stock. Ingredient names that are not in stock count as
// zero available and not perishable. It does not mutate its inputs.
func AssessRecipe(recipe Recipe, ingredients []RecipeIngredient, people int, stock Stock) (Assessment, error) {
	scale, err := Scale(people, recipe.Servings)
	if err != nil {
		return Assessment{}, err
	}

	missing := make(map[string]float64)
	fast := 0
	for _, ing := range ingredients {
		needed := ing.Quantity * scale
		available := stock.Available(ing.Product)
		if available < needed {
			missing[ing.Product] = RoundShortfall(needed - available)
		}

		if stock.IsFast(ing.Product) {
			fast++
		}
	}

	return Assessment{
		Recipe:    recipe,
		Missing:   missing,
		FastScore: fast,
	}, nil
}
