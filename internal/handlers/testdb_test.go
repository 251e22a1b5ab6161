package handlers

import (
	"testing"
	"time"

	"github.com/caterhub/caterhub-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.AdminProfile{},
		&models.Organizer{},
		&models.Cuisine{},
		&models.ChefProfile{},
		&models.MealCategory{},
		&models.Meal{},
		&models.DrinkCategory{},
		&models.Drink{},
		&models.Allergy{},
		&models.Event{},
		&models.Guest{},
		&models.IngredientInventory{},
		&models.MealPlan{},
		&models.IngredientUsage{},
		&models.APIKey{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func intPtr(v int) *int {
	return &v
}

// newTestEvent creates an upcoming event with an organizer behind it.
func newTestEvent(t *testing.T, db *gorm.DB, mutate func(*models.Event)) models.Event {
	t.Helper()
	user := models.User{Name: "Olu Organizer", Email: "organizer@example.com", Role: models.RoleOrganizer}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create organizer user: %v", err)
	}
	organizer := models.Organizer{UserID: user.ID}
	if err := db.Create(&organizer).Error; err != nil {
		t.Fatalf("failed to create organizer: %v", err)
	}

	event := models.Event{
		PublicID:          "pub-event-1",
		Name:              "Summer Banquet",
		MaxNumberOfGuests: 10,
		AllowExtraGuest:   true,
		AllowMinor:        true,
		AvailableSlot:     intPtr(10),
		MealTimeType:      models.EventTimeDinner,
		Date:              time.Now().Add(72 * time.Hour),
		Location:          "Lagos",
		OrganizerID:       organizer.ID,
	}
	if mutate != nil {
		mutate(&event)
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	return event
}

// newTestChef creates a chef user plus profile and returns both.
func newTestChef(t *testing.T, db *gorm.DB, name, email, chefType string) (models.User, models.ChefProfile) {
	t.Helper()
	user := models.User{Name: name, Email: email, Role: models.RoleChef, ChefType: chefType}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create chef user: %v", err)
	}
	profile := models.ChefProfile{UserID: user.ID, Role: chefType, Department: models.DepartmentHotKitchen}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create chef profile: %v", err)
	}
	return user, profile
}
