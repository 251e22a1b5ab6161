package models

import (
	"gorm.io/gorm"
)

// User roles. A user starts as USER and is promoted by an admin, or to
// ORGANIZER by creating their first event.
const (
	RoleUser      = "USER"
	RoleOrganizer = "ORGANIZER"
	RoleChef      = "CHEF"
	RoleAdmin     = "ADMIN"
)

// Chef tiers, top to bottom of the brigade.
const (
	ChefTypeExecutive        = "EXECUTIVE_CHEF"
	ChefTypeExecutiveSous    = "EXECUTIVE_SOUS_CHEF"
	ChefTypeSous             = "SOUS_CHEF"
	ChefTypeChefDePartie     = "CHEF_DE_PARTIE"
	ChefTypeDemiChefDePartie = "DEMI_CHEF_DE_PARTIE"
	ChefTypeCommisFirst      = "COMMI_1"
	ChefTypeCommisSecond     = "COMMI_2"
)

// Admin tiers.
const (
	AdminTypeSuper = "SUPER_ADMIN"
	AdminTypeAdmin = "ADMIN"
)

type User struct {
	gorm.Model
	Name           string `json:"name"`
	Email          string `gorm:"uniqueIndex" json:"email"`
	HashedPassword string `json:"-"`
	Image          string `json:"image"`
	Role           string `json:"role"`
	ChefType       string `json:"chef_type"`
}

// AdminProfile marks a user as an administrator and records the tier.
type AdminProfile struct {
	gorm.Model
	UserID uint   `gorm:"uniqueIndex" json:"user_id"`
	User   User   `json:"user"`
	Type   string `json:"type"`
}

// Organizer is created lazily the first time a user creates an event.
type Organizer struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex" json:"user_id"`
	User   User `json:"user"`
}
