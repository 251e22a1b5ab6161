package database

import (
	"log"

	"github.com/caterhub/caterhub-api/internal/config"
	"github.com/caterhub/caterhub-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto Migrate
	err = db.AutoMigrate(
		&models.User{},
		&models.AdminProfile{},
		&models.Organizer{},
		&models.ChefProfile{},
		&models.Cuisine{},
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
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	return db
}
