package models

import (
	"time"

	"gorm.io/gorm"
)

// Shelf-life units for meals and inventory rows.
const (
	ShelfLifeDays   = "DAYS"
	ShelfLifeWeeks  = "WEEKS"
	ShelfLifeMonths = "MONTHS"
)

type MealCategory struct {
	gorm.Model
	Name string `gorm:"uniqueIndex" json:"name"`
}

type Meal struct {
	gorm.Model
	Name              string  `gorm:"uniqueIndex" json:"name"`
	MealCategoryName  string  `json:"meal_category_name"`
	Quantity          int     `json:"quantity"`
	ShelfLife         int     `json:"shelf_life"`
	ShelfLifeUnit     string  `json:"shelf_life_unit"`
	MeasuringUnitName string  `json:"measuring_unit_name"`
	Events            []Event `gorm:"many2many:event_meals;" json:"-"`
}

type DrinkCategory struct {
	gorm.Model
	Name string `gorm:"uniqueIndex" json:"name"`
}

type Drink struct {
	gorm.Model
	Name              string     `gorm:"uniqueIndex" json:"name"`
	DrinkCategoryName string     `json:"drink_category_name"`
	Quantity          int        `json:"quantity"`
	ExpiryDate        *time.Time `json:"expiry_date"`
	MeasuringUnitName string     `json:"measuring_unit_name"`
	Events            []Event    `gorm:"many2many:event_drinks;" json:"-"`
}

// Allergy rows are created on demand during guest registration, so names
// are normalized before insert and matched case-insensitively.
type Allergy struct {
	gorm.Model
	Name string `gorm:"uniqueIndex" json:"name"`
}
