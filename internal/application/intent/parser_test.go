package intent

import (
	"testing"

	"github.com/smartkitchen/kitchen/internal/ports/inbound"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want inbound.ParsedRequest
	}{
		{
			name: "russian breakfast for three in kitchen two",
			text: "завтрак для 3 человек на 2 кухне",
			want: inbound.ParsedRequest{People: 3, MealType: "breakfast", FridgeIDs: []uint{2}},
		},
		{
			name: "defaults",
			text: "что-нибудь поесть",
			want: inbound.ParsedRequest{People: 1, MealType: "breakfast", FridgeIDs: []uint{1}},
		},
		{
			name: "genitive plural",
			text: "Ужин на 12 людей",
			want: inbound.ParsedRequest{People: 12, MealType: "dinner", FridgeIDs: []uint{1}},
		},
		{
			name: "singular genitive",
			text: "обед для 2 человека, 3 кухня",
			want: inbound.ParsedRequest{People: 2, MealType: "lunch", FridgeIDs: []uint{3}},
		},
		{
			name: "no space before unit",
			text: "вечеринка на 10человек",
			want: inbound.ParsedRequest{People: 10, MealType: "party", FridgeIDs: []uint{1}},
		},
		{
			name: "english",
			text: "Dinner for 4 people in 5 kitchen",
			want: inbound.ParsedRequest{People: 4, MealType: "dinner", FridgeIDs: []uint{5}},
		},
		{
			name: "upper case",
			text: "ЗАВТРАК НА 6 ЧЕЛОВЕК",
			want: inbound.ParsedRequest{People: 6, MealType: "breakfast", FridgeIDs: []uint{1}},
		},
		{
			name: "number without unit is ignored",
			text: "обед 7",
			want: inbound.ParsedRequest{People: 1, MealType: "lunch", FridgeIDs: []uint{1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.text))
		})
	}
}

func TestParseMealTypePriority(t *testing.T) {
	// party is checked before breakfast, breakfast before lunch, lunch before dinner
	assert.Equal(t, "party", Parse("ужин и вечеринка").MealType)
	assert.Equal(t, "breakfast", Parse("обед или завтрак").MealType)
	assert.Equal(t, "lunch", Parse("ужин, нет, обед").MealType)
	assert.Equal(t, "party", Parse("breakfast party").MealType)
}

func TestParseFirstMatchWins(t *testing.T) {
	parsed := Parse("2 человека на 1 кухне и 5 человек на 4 кухне")

	assert.Equal(t, 2, parsed.People)
	assert.Equal(t, []uint{1}, parsed.FridgeIDs)
}

func TestParseOverflowFallsBackToDefaults(t *testing.T) {
	parsed := Parse("99999999999999999999999 человек на 99999999999999999999999 кухне")

	assert.Equal(t, DefaultPeople, parsed.People)
	assert.Equal(t, []uint{DefaultFridgeID}, parsed.FridgeIDs)
}
