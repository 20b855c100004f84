// Package gorm provides mapping between domain entities and GORM models
package gorm

import (
	"github.com/smartkitchen/kitchen/internal/domain/kitchen"
)

// FridgeToModel converts a domain fridge to a GORM model
func FridgeToModel(f *kitchen.Fridge) *FridgeModel {
	return &FridgeModel{ID: f.ID, Owner: f.Owner}
}

// ModelToFridge converts a GORM model to a domain fridge
func ModelToFridge(m *FridgeModel) kitchen.Fridge {
	return kitchen.Fridge{ID: m.ID, Owner: m.Owner}
}

// ProductToModel converts a domain product to a GORM model
func ProductToModel(p *kitchen.Product) *ProductModel {
	return &ProductModel{
		ID:            p.ID,
		Name:          p.Name,
		Perishability: string(p.Perishability),
	}
}

// ModelToProduct converts a GORM model to a domain product
func ModelToProduct(m *ProductModel) kitchen.Product {
	return kitchen.Product{
		ID:            m.ID,
		Name:          m.Name,
		Perishability: kitchen.Perishability(m.Perishability),
	}
}

// InventoryLineToModel converts a domain inventory line to a GORM model
func InventoryLineToModel(l *kitchen.InventoryLine) *InventoryModel {
	return &InventoryModel{
		ID:        l.ID,
		FridgeID:  l.FridgeID,
		ProductID: l.ProductID,
		Quantity:  l.Quantity,
		Unit:      l.Unit,
	}
}

// ModelToInventoryLine converts a GORM model to a domain inventory line
func ModelToInventoryLine(m *InventoryModel) kitchen.InventoryLine {
	return kitchen.InventoryLine{
		ID:        m.ID,
		FridgeID:  m.FridgeID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		Unit:      m.Unit,
	}
}

// RecipeToModel converts a domain recipe to a GORM model
func RecipeToModel(r *kitchen.Recipe) *RecipeModel {
	return &RecipeModel{
		ID:                r.ID,
		Name:              r.Name,
		Servings:          r.Servings,
		MealType:          r.MealType,
		RequiredEquipment: r.RequiredEquipment,
	}
}

// ModelToRecipe converts a GORM model to a domain recipe
func ModelToRecipe(m *RecipeModel) kitchen.Recipe {
	return kitchen.Recipe{
		ID:                m.ID,
		Name:              m.Name,
		Servings:          m.Servings,
		MealType:          m.MealType,
		RequiredEquipment: m.RequiredEquipment,
	}
}

// RecipeIngredientToModel converts a domain ingredient to a GORM model
func RecipeIngredientToModel(i *kitchen.RecipeIngredient) *RecipeIngredientModel {
	return &RecipeIngredientModel{
		ID:       i.ID,
		RecipeID: i.RecipeID,
		Product:  i.Product,
		Quantity: i.Quantity,
		Unit:     i.Unit,
	}
}

// ModelToRecipeIngredient converts a GORM model to a domain ingredient
func ModelToRecipeIngredient(m *RecipeIngredientModel) kitchen.RecipeIngredient {
	return kitchen.RecipeIngredient{
		ID:       m.ID,
		RecipeID: m.RecipeID,
		Product:  m.Product,
		Quantity: m.Quantity,
		Unit:     m.Unit,
	}
}

// EquipmentToModel converts domain equipment to a GORM model
func EquipmentToModel(e *kitchen.Equipment) *EquipmentModel {
	return &EquipmentModel{
		ID:       e.ID,
		FridgeID: e.FridgeID,
		Name:     e.Name,
		Quantity: e.Quantity,
	}
}

// ModelToEquipment converts a GORM model to domain equipment
func ModelToEquipment(m *EquipmentModel) kitchen.Equipment {
	return kitchen.Equipment{
		ID:       m.ID,
		FridgeID: m.FridgeID,
		Name:     m.Name,
		Quantity: m.Quantity,
	}
}

// ModelToOrder converts a GORM model to a domain order
func ModelToOrder(m *OrderModel) kitchen.Order {
	return kitchen.Order{
		ID:        m.ID,
		Items:     m.Items,
		CreatedAt: m.CreatedAt,
	}
}

// ModelToKnowledgeRule converts a GORM model to a domain rule
func ModelToKnowledgeRule(m *KnowledgeRuleModel) kitchen.KnowledgeRule {
	return kitchen.KnowledgeRule{
		ID:         m.ID,
		Rule:       m.Rule,
		Confidence: m.Confidence,
	}
}

// mapModels converts a slice of models with fn, never returning nil
func mapModels[M any, D any](models []M, fn func(*M) D) []D {
	out := make([]D, len(models))
	for i := range models {
		out[i] = fn(&models[i])
	}
	return out
}
