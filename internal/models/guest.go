package models

import (
	"gorm.io/gorm"
)

// Extra-guest composition tags.
const (
	ExtraTypeAdult = "ADULT"
	ExtraTypeMinor = "MINOR"
)

// Dietary classifications offered on the registration form.
const (
	DietaryVegetarian  = "VEGETARIAN"
	DietaryVegan       = "VEGAN"
	DietaryGlutenFree  = "GLUTEN_FREE"
	DietaryLactoseFree = "LACTOSE_FREE"
	DietaryDairyFree   = "DAIRY_FREE"
	DietaryNutFree     = "NUT_FREE"
	DietaryNone        = "NONE"
)

// Meal-size choices.
const (
	MealSizeSmall           = "SMALL_SIZE"
	MealSizeRegular         = "REGULAR_SIZE"
	MealSizeLarge           = "LARGE_SIZE"
	MealSizeSmallTakeAway   = "SMALL_SIZE_PLUS_TAKE_AWAY"
	MealSizeRegularTakeAway = "REGULAR_SIZE_PLUS_TAKE_AWAY"
	MealSizeLargeTakeAway   = "LARGE_SIZE_PLUS_TAKE_AWAY"
)

// Guest is one committed registration. Rows are immutable after creation;
// duplicates are rejected on the (email, phone, event) triple.
type Guest struct {
	gorm.Model
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `gorm:"index" json:"email"`
	PhoneNumber     string    `json:"phone_number"`
	Age             int       `json:"age"`
	Nationality     string    `json:"nationality"`
	ComingWithExtra bool      `json:"coming_with_extra"`
	NumberOfExtra   int       `json:"number_of_extra"`
	NumberOfAdults  int       `json:"number_of_adults"`
	NumberOfMinors  int       `json:"number_of_minors"`
	ExtraType       string    `json:"extra_type"` // comma-joined tags
	Dietary         string    `json:"dietary"`
	MealSize        string    `json:"meal_size"`
	EventID         uint      `gorm:"index" json:"event_id"`
	Allergies       []Allergy `gorm:"many2many:guest_allergies;" json:"allergies"`
	PreferredMeals  []Meal    `gorm:"many2many:guest_preferred_meals;" json:"preferred_meals"`
	PreferredDrinks []Drink   `gorm:"many2many:guest_preferred_drinks;" json:"preferred_drinks"`
}
