package main

import (
	"fmt"

	"github.com/caterhub/caterhub-api/internal/config"
	"github.com/caterhub/caterhub-api/internal/database"
	"github.com/caterhub/caterhub-api/internal/models"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var seedMealCategories = []string{"Appetizer", "Main Course", "Side Dish", "Dessert", "Salad", "Soup"}

var seedDrinkCategories = []string{"Soft Drink", "Juice", "Cocktail", "Mocktail", "Hot Beverage", "Water"}

var seedCuisines = []string{"Italian", "French", "Nigerian", "Indian", "Chinese", "Mexican", "Japanese", "Lebanese"}

var seedAllergies = []string{"Peanuts", "Tree Nuts", "Milk", "Eggs", "Wheat", "Soy", "Fish", "Shellfish", "Sesame"}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed catalog reference data (categories, cuisines, allergies)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		db := database.Connect(cfg)

		seeded := 0
		err := db.Transaction(func(tx *gorm.DB) error {
			for _, name := range seedMealCategories {
				res := tx.Where(models.MealCategory{Name: name}).FirstOrCreate(&models.MealCategory{Name: name})
				if res.Error != nil {
					return res.Error
				}
				seeded += int(res.RowsAffected)
			}
			for _, name := range seedDrinkCategories {
				res := tx.Where(models.DrinkCategory{Name: name}).FirstOrCreate(&models.DrinkCategory{Name: name})
				if res.Error != nil {
					return res.Error
				}
				seeded += int(res.RowsAffected)
			}
			for _, name := range seedCuisines {
				res := tx.Where(models.Cuisine{Name: name}).FirstOrCreate(&models.Cuisine{Name: name})
				if res.Error != nil {
					return res.Error
				}
				seeded += int(res.RowsAffected)
			}
			for _, name := range seedAllergies {
				res := tx.Where(models.Allergy{Name: name}).FirstOrCreate(&models.Allergy{Name: name})
				if res.Error != nil {
					return res.Error
				}
				seeded += int(res.RowsAffected)
			}
			return nil
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Seed complete, %d new records\n", seeded)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
