package models

import (
	"gorm.io/gorm"
)

// Kitchen departments a chef can be assigned to.
const (
	DepartmentHotKitchen  = "HOT_KITCHEN"
	DepartmentColdKitchen = "COLD_KITCHEN"
	DepartmentBakery      = "BAKERY"
	DepartmentPastry      = "PASTRY"
)

type Cuisine struct {
	gorm.Model
	Name string `gorm:"uniqueIndex" json:"name"`
}

type ChefProfile struct {
	gorm.Model
	UserID      uint      `gorm:"uniqueIndex" json:"user_id"`
	User        User      `json:"user"`
	Nationality string    `json:"nationality"`
	Specialty   string    `json:"specialty"`
	Role        string    `json:"role"` // chef tier, mirrors User.ChefType
	Department  string    `json:"department"`
	Cuisines    []Cuisine `gorm:"many2many:chef_cuisines;" json:"cuisines"`
}
