// Package intent turns a free form sentence into a recommendation request
// using fixed keyword and number patterns. It is not a language model.
package intent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/smartkitchen/kitchen/internal/domain/kitchen"
	"github.com/smartkitchen/kitchen/internal/ports/inbound"
)

const (
	DefaultPeople   = 1
	DefaultMealType = kitchen.MealTypeBreakfast
	DefaultFridgeID = uint(1)
)

var (
	peoplePattern  = regexp.MustCompile(`(\d+)\s*(человека|человек|людей|people|persons|person|guests|guest)`)
	kitchenPattern = regexp.MustCompile(`(\d+)\s*(кухн|kitchen)`)
)

// mealKeywords is checked in order; the first branch with a hit wins even if
// a later keyword also occurs in the text.
var mealKeywords = []struct {
	mealType string
	stems    []string
}{
	{kitchen.MealTypeParty, []string{"вечеринк", "party"}},
	{kitchen.MealTypeBreakfast, []string{"завтрак", "breakfast"}},
	{kitchen.MealTypeLunch, []string{"обед", "lunch"}},
	{kitchen.MealTypeDinner, []string{"ужин", "dinner"}},
}

// Parse extracts headcount, meal type and a single fridge id from text.
func Parse(text string) inbound.ParsedRequest {
	lowered := strings.ToLower(text)

	return inbound.ParsedRequest{
		People:    parsePeople(lowered),
		MealType:  parseMealType(lowered),
		FridgeIDs: []uint{parseFridgeID(lowered)},
	}
}

func parsePeople(text string) int {
	m := peoplePattern.FindStringSubmatch(text)
	if m == nil {
		return DefaultPeople
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return DefaultPeople
	}
	return n
}

func parseMealType(text string) string {
	for _, branch := range mealKeywords {
		for _, stem := range branch.stems {
			if strings.Contains(text, stem) {
				return branch.mealType
			}
		}
	}
	return DefaultMealType
}

func parseFridgeID(text string) uint {
	m := kitchenPattern.FindStringSubmatch(text)
	if m == nil {
		return DefaultFridgeID
	}
	n, err := strconv.ParseUint(m[1], 10, 0)
	if err != nil {
		return DefaultFridgeID
	}
	return uint(n)
}
