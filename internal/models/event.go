package models

import (
	"time"

	"gorm.io/gorm"
)

// Meal-time slots an event can be scheduled for.
const (
	EventTimeBreakfast = "BREAKFAST"
	EventTimeLunch     = "LUNCH"
	EventTimeDinner    = "DINNER"
)

// Event carries the guest-capacity rules alongside the menu. AvailableSlot
// starts at MaxNumberOfGuests and is decremented as registrations commit;
// SlotTaken counts admitted attendees including extras.
type Event struct {
	gorm.Model
	PublicID              string     `gorm:"uniqueIndex" json:"public_id"`
	Name                  string     `json:"name"`
	Description           string     `json:"description"`
	MaxNumberOfGuests     int        `json:"max_number_of_guests"`
	AllowExtraGuest       bool       `json:"allow_extra_guest"`
	MaxNumberOfExtraGuest *int       `json:"max_number_of_extra_guest"`
	AllowMinor            bool       `json:"allow_minor"`
	AvailableSlot         *int       `json:"available_slot"`
	SlotTaken             int        `json:"slot_taken"`
	MealTimeType          string     `json:"meal_time_type"`
	Date                  time.Time  `json:"date"`
	Location              string     `json:"location"`
	Link                  string     `json:"link"`
	OrganizerID           uint       `json:"organizer_id"`
	Organizer             Organizer  `json:"-"`
	Meals                 []Meal     `gorm:"many2many:event_meals;" json:"meals"`
	Drinks                []Drink    `gorm:"many2many:event_drinks;" json:"drinks"`
	Guests                []Guest    `json:"-"`
	MealPlans             []MealPlan `json:"-"`
}
