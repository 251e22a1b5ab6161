package models

import (
	"gorm.io/gorm"
)

// MealPlan is the production plan for one of an event's meals. At most one
// plan exists per (event, meal) pair.
type MealPlan struct {
	gorm.Model
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Note             string            `json:"note"`
	EventID          uint              `gorm:"index" json:"event_id"`
	Event            Event             `json:"-"`
	Chefs            []ChefProfile     `gorm:"many2many:meal_plan_chefs;" json:"chefs"`
	IngredientUsages []IngredientUsage `json:"ingredient_usages"`
}

// IngredientUsage records stock reserved for a plan at creation time and,
// once a chef reports back, the quantity actually consumed.
type IngredientUsage struct {
	gorm.Model
	MealPlanID        uint   `gorm:"index" json:"meal_plan_id"`
	IngredientName    string `json:"ingredient_name"`
	AssignedQuantity  int    `json:"assigned_quantity"`
	MeasuringUnitName string `json:"measuring_unit_name"`
	QuantityUsed      *int   `json:"quantity_used"`
}
