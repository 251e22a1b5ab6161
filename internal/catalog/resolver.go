// Package catalog centralizes name-based lookups shared by the registration
// and meal-planning flows. All matching is case-insensitive on trimmed names.
package catalog

import (
	"errors"
	"strings"

	"github.com/caterhub/caterhub-api/internal/models"
	"gorm.io/gorm"
)

// Normalize applies the collation rule used for every name comparison.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// ResolveMeals maps meal names to rows, silently dropping names with no match.
func (r *Resolver) ResolveMeals(names []string) ([]models.Meal, error) {
	var meals []models.Meal
	for _, name := range names {
		var meal models.Meal
		err := r.db.Where("LOWER(name) = ?", Normalize(name)).First(&meal).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		meals = append(meals, meal)
	}
	return meals, nil
}

// ResolveDrinks maps drink names to rows, silently dropping names with no match.
func (r *Resolver) ResolveDrinks(names []string) ([]models.Drink, error) {
	var drinks []models.Drink
	for _, name := range names {
		var drink models.Drink
		err := r.db.Where("LOWER(name) = ?", Normalize(name)).First(&drink).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		drinks = append(drinks, drink)
	}
	return drinks, nil
}

// UpsertAllergies resolves allergy names to existing rows, creating any that
// have not been seen before. The upsert is idempotent by normalized name.
func (r *Resolver) UpsertAllergies(names []string) ([]models.Allergy, error) {
	var allergies []models.Allergy
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		var allergy models.Allergy
		err := r.db.Where("LOWER(name) = ?", Normalize(trimmed)).First(&allergy).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			allergy = models.Allergy{Name: trimmed}
			if err := r.db.Create(&allergy).Error; err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}
		allergies = append(allergies, allergy)
	}
	return allergies, nil
}

// FindIngredient returns the inventory row for a name, or
// gorm.ErrRecordNotFound when no row matches.
func (r *Resolver) FindIngredient(name string) (*models.IngredientInventory, error) {
	var inv models.IngredientInventory
	if err := r.db.Where("LOWER(name) = ?", Normalize(name)).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}
