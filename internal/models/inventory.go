package models

import (
	"time"

	"gorm.io/gorm"
)

// IngredientInventory tracks purchasable stock. AvailableQuantity is only
// ever reduced through conditional decrements, so it cannot go negative.
type IngredientInventory struct {
	gorm.Model
	Name              string    `gorm:"uniqueIndex" json:"name"`
	AvailableQuantity int       `json:"available_quantity"`
	MeasuringUnitName string    `json:"measuring_unit_name"`
	PurchaseDate      time.Time `json:"purchase_date"`
	ExpiryDate        time.Time `json:"expiry_date"`
	ShelfLife         int       `json:"shelf_life"`
	ShelfLifeUnit     string    `json:"shelf_life_unit"`
}
