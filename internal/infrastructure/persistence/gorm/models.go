// Package gorm provides GORM model definitions for the application
package gorm

import (
	"time"
)

// FridgeModel represents the GORM model for fridges
type FridgeModel struct {
	ID        uint   `gorm:"primaryKey"`
	Owner     string `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
}

// ProductModel represents the GORM model for products.
// Names are not unique; lookups by name aggregate over every match.
type ProductModel struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"type:varchar(255);not null;index"`
	Perishability string `gorm:"type:varchar(16);not null;default:''"`
	CreatedAt     time.Time
}

// InventoryModel represents the GORM model for inventory lines
type InventoryModel struct {
	ID        uint    `gorm:"primaryKey"`
	FridgeID  uint    `gorm:"not null;index"`
	ProductID uint    `gorm:"not null;index"`
	Quantity  float64 `gorm:"not null;default:0"`
	Unit      string  `gorm:"type:varchar(32)"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships
	Fridge  *FridgeModel  `gorm:"foreignKey:FridgeID;constraint:OnDelete:CASCADE"`
	Product *ProductModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID                uint   `gorm:"primaryKey"`
	Name              string `gorm:"type:varchar(255);not null"`
	Servings          int    `gorm:"not null"`
	MealType          string `gorm:"type:varchar(50);not null;index"`
	RequiredEquipment string `gorm:"type:text"`
	CreatedAt         time.Time

	// Relationships
	Ingredients []RecipeIngredientModel `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// RecipeIngredientModel represents the GORM model for recipe ingredients.
// Product holds a product name, not a foreign key.
type RecipeIngredientModel struct {
	ID       uint    `gorm:"primaryKey"`
	RecipeID uint    `gorm:"not null;index"`
	Product  string  `gorm:"type:varchar(255);not null;index"`
	Quantity float64 `gorm:"not null"`
	Unit     string  `gorm:"type:varchar(32)"`
}

// EquipmentModel represents the GORM model for equipment kept with a fridge
type EquipmentModel struct {
	ID       uint   `gorm:"primaryKey"`
	FridgeID uint   `gorm:"not null;index"`
	Name     string `gorm:"type:varchar(255);not null;index"`
	Quantity int    `gorm:"not null;default:0"`

	// Relationships
	Fridge *FridgeModel `gorm:"foreignKey:FridgeID;constraint:OnDelete:CASCADE"`
}

// OrderModel represents the GORM model for replenishment orders
type OrderModel struct {
	ID        uint      `gorm:"primaryKey"`
	Items     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index"`
}

// KnowledgeRuleModel represents the GORM model for extracted cooking rules
type KnowledgeRuleModel struct {
	ID         uint    `gorm:"primaryKey"`
	Rule       string  `gorm:"type:text;not null"`
	Confidence float64 `gorm:"not null"`
	CreatedAt  time.Time
}

// TableName methods for custom table names
func (FridgeModel) TableName() string {
	return "fridges"
}

func (ProductModel) TableName() string {
	return "products"
}

func (InventoryModel) TableName() string {
	return "inventory"
}

func (RecipeModel) TableName() string {
	return "recipes"
}

func (RecipeIngredientModel) TableName() string {
	return "recipe_ingredients"
}

func (EquipmentModel) TableName() string {
	return "equipment"
}

func (OrderModel) TableName() string {
	return "orders"
}

func (KnowledgeRuleModel) TableName() string {
	return "knowledge_rules"
}

// AllModels lists every model in dependency order for AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&FridgeModel{},
		&ProductModel{},
		&InventoryModel{},
		&RecipeModel{},
		&RecipeIngredientModel{},
		&EquipmentModel{},
		&OrderModel{},
		&KnowledgeRuleModel{},
	}
}
