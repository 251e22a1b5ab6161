package catalog

import (
	"errors"
	"testing"

	"github.com/caterhub/caterhub-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newResolverTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.Meal{}, &models.Drink{}, &models.Allergy{}, &models.IngredientInventory{})
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"  Jollof Rice ": "jollof rice",
		"FLOUR":          "flour",
		"peanuts":        "peanuts",
		"":               "",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolveMeals(t *testing.T) {
	db := newResolverTestDB(t)
	db.Create(&models.Meal{Name: "Jollof Rice"})
	db.Create(&models.Meal{Name: "Egusi Soup"})

	r := NewResolver(db)

	meals, err := r.ResolveMeals([]string{"JOLLOF RICE", "  egusi soup ", "Unknown"})
	if err != nil {
		t.Fatalf("ResolveMeals returned error: %v", err)
	}
	if len(meals) != 2 {
		t.Fatalf("expected 2 meals, unknown names dropped, got %d", len(meals))
	}
	if meals[0].Name != "Jollof Rice" || meals[1].Name != "Egusi Soup" {
		t.Errorf("unexpected meals: %+v", meals)
	}
}

func TestUpsertAllergies(t *testing.T) {
	db := newResolverTestDB(t)
	db.Create(&models.Allergy{Name: "Peanuts"})

	r := NewResolver(db)

	allergies, err := r.UpsertAllergies([]string{"peanuts", "Shellfish", " ", ""})
	if err != nil {
		t.Fatalf("UpsertAllergies returned error: %v", err)
	}
	if len(allergies) != 2 {
		t.Fatalf("expected 2 allergies, got %d", len(allergies))
	}
	if allergies[0].Name != "Peanuts" {
		t.Errorf("existing row must be reused with its canonical name, got %q", allergies[0].Name)
	}
	if allergies[1].Name != "Shellfish" {
		t.Errorf("expected Shellfish to be created, got %q", allergies[1].Name)
	}

	var count int64
	db.Model(&models.Allergy{}).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 allergy rows, got %d", count)
	}

	// Running again creates nothing new.
	if _, err := r.UpsertAllergies([]string{"SHELLFISH"}); err != nil {
		t.Fatalf("second upsert returned error: %v", err)
	}
	db.Model(&models.Allergy{}).Count(&count)
	if count != 2 {
		t.Errorf("upsert must be idempotent, got %d rows", count)
	}
}

func TestFindIngredient(t *testing.T) {
	db := newResolverTestDB(t)
	db.Create(&models.IngredientInventory{Name: "Flour", AvailableQuantity: 5, MeasuringUnitName: "kg"})

	r := NewResolver(db)

	inv, err := r.FindIngredient(" flour ")
	if err != nil {
		t.Fatalf("FindIngredient returned error: %v", err)
	}
	if inv.Name != "Flour" || inv.AvailableQuantity != 5 {
		t.Errorf("unexpected inventory: %+v", inv)
	}

	_, err = r.FindIngredient("Saffron")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}
