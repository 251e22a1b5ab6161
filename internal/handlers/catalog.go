package handlers

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/caterhub/caterhub-api/internal/auth"
	"github.com/caterhub/caterhub-api/internal/catalog"
	"github.com/caterhub/caterhub-api/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

// CatalogHandler manages the shared menu catalog: meal and drink categories
// and the meals and drinks organizers pick from when building an event.
type CatalogHandler struct {
	db *gorm.DB
}

func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

type CreateCategoryRequest struct {
	Body struct {
		Name string `json:"name" minLength:"1"`
	}
}

type CreateCategoryResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *CatalogHandler) HandleCreateMealCategory(ctx context.Context, input *CreateCategoryRequest) (*CreateCategoryResponse, error) {
	if _, ok := auth.CallerFromContext(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	name := strings.TrimSpace(input.Body.Name)
	var existing models.MealCategory
	if err := h.db.Where("LOWER(name) = ?", catalog.Normalize(name)).First(&existing).Error; err == nil {
		return nil, huma.Error409Conflict(name + " category already exists")
	}

	if err := h.db.Create(&models.MealCategory{Name: name}).Error; err != nil {
		log.Printf("Create meal category failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while creating the meal category")
	}

	res := &CreateCategoryResponse{}
	res.Body.Message = "Meal category created"
	return res, nil
}

type ListNamesResponse struct {
	Body struct {
		Names []string `json:"names"`
	}
}

func (h *CatalogHandler) HandleListMealCategories(ctx context.Context, input *struct{}) (*ListNamesResponse, error) {
	var categories []models.MealCategory
	if err := h.db.Find(&categories).Error; err != nil {
		log.Printf("List meal categories failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while fetching meal categories")
	}

	res := &ListNamesResponse{}
	res.Body.Names = []string{}
	for _, c := range categories {
		res.Body.Names = append(res.Body.Names, c.Name)
	}
	return res, nil
}

func (h *CatalogHandler) HandleCreateDrinkCategory(ctx context.Context, input *CreateCategoryRequest) (*CreateCategoryResponse, error) {
	if _, ok := auth.CallerFromContext(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	name := strings.TrimSpace(input.Body.Name)
	var existing models.DrinkCategory
	if err := h.db.Where("LOWER(name) = ?", catalog.Normalize(name)).First(&existing).Error; err == nil {
		return nil, huma.Error409Conflict(name + " category already exists")
	}

	if err := h.db.Create(&models.DrinkCategory{Name: name}).Error; err != nil {
		log.Printf("Create drink category failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while creating the drink category")
	}

	res := &CreateCategoryResponse{}
	res.Body.Message = "Drink category created"
	return res, nil
}

func (h *CatalogHandler) HandleListDrinkCategories(ctx context.Context, input *struct{}) (*ListNamesResponse, error) {
	var categories []models.DrinkCategory
	if err := h.db.Find(&categories).Error; err != nil {
		log.Printf("List drink categories failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while fetching drink categories")
	}

	res := &ListNamesResponse{}
	res.Body.Names = []string{}
	for _, c := range categories {
		res.Body.Names = append(res.Body.Names, c.Name)
	}
	return res, nil
}

type CreateMenuItemRequest struct {
	Body struct {
		Name     string `json:"name" minLength:"1"`
		Category string `json:"category" minLength:"1"`
	}
}

type CreateMenuItemResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *CatalogHandler) HandleCreateMeal(ctx context.Context, input *CreateMenuItemRequest) (*CreateMenuItemResponse, error) {
	if _, ok := auth.CallerFromContext(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	var category models.MealCategory
	err := h.db.Where("LOWER(name) = ?", catalog.Normalize(input.Body.Category)).First(&category).Error
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid meal category")
	}

	name := strings.TrimSpace(input.Body.Name)
	var existing models.Meal
	if err := h.db.Where("LOWER(name) = ?", catalog.Normalize(name)).First(&existing).Error; err == nil {
		return nil, huma.Error409Conflict("Meal already exists")
	}

	meal := models.Meal{Name: name, MealCategoryName: category.Name}
	if err := h.db.Create(&meal).Error; err != nil {
		log.Printf("Create meal failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while creating the meal")
	}

	res := &CreateMenuItemResponse{}
	res.Body.Message = "Meal created"
	return res, nil
}

type ListMealsResponse struct {
	Body struct {
		Meals []models.Meal `json:"meals"`
	}
}

func (h *CatalogHandler) HandleListMeals(ctx context.Context, input *struct{}) (*ListMealsResponse, error) {
	if _, ok := auth.CallerFromContext(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	var meals []models.Meal
	if err := h.db.Find(&meals).Error; err != nil {
		log.Printf("List meals failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while getting the meals")
	}

	res := &ListMealsResponse{}
	res.Body.Meals = meals
	return res, nil
}

type UpdateMealRequest struct {
	MealID uint `path:"mealID"`
	Body   struct {
		Name              string `json:"name,omitempty"`
		Category          string `json:"category,omitempty"`
		Quantity          *int   `json:"quantity,omitempty" minimum:"0"`
		ShelfLife         *int   `json:"shelf_life,omitempty" minimum:"1"`
		ShelfLifeUnit     string `json:"shelf_life_unit,omitempty" enum:"DAYS,WEEKS,MONTHS"`
		MeasuringUnitName string `json:"measuring_unit_name,omitempty"`
	}
}

type UpdateMenuItemResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *CatalogHandler) HandleUpdateMeal(ctx context.Context, input *UpdateMealRequest) (*UpdateMenuItemResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if !caller.IsChef() {
		return nil, huma.Error403Forbidden("Not authorized")
	}

	var meal models.Meal
	if err := h.db.First(&meal, input.MealID).Error; err != nil {
		return nil, huma.Error404NotFound("Meal not found")
	}

	updates := map[string]interface{}{}
	if name := strings.TrimSpace(input.Body.Name); name != "" {
		updates["name"] = name
	}
	if input.Body.Category != "" {
		var category models.MealCategory
		err := h.db.Where("LOWER(name) = ?", catalog.Normalize(input.Body.Category)).First(&category).Error
		if err != nil {
			return nil, huma.Error400BadRequest("Invalid meal category")
		}
		updates["meal_category_name"] = category.Name
	}
	if input.Body.Quantity != nil {
		updates["quantity"] = *input.Body.Quantity
	}
	if input.Body.ShelfLife != nil {
		updates["shelf_life"] = *input.Body.ShelfLife
	}
	if input.Body.ShelfLifeUnit != "" {
		updates["shelf_life_unit"] = input.Body.ShelfLifeUnit
	}
	if input.Body.MeasuringUnitName != "" {
		updates["measuring_unit_name"] = input.Body.MeasuringUnitName
	}

	if len(updates) > 0 {
		if err := h.db.Model(&meal).Updates(updates).Error; err != nil {
			log.Printf("Update meal failed: %v", err)
			return nil, huma.Error500InternalServerError("An error occurred while updating the meal")
		}
	}

	res := &UpdateMenuItemResponse{}
	res.Body.Message = "Meal updated"
	return res, nil
}

func (h *CatalogHandler) HandleCreateDrink(ctx context.Context, input *CreateMenuItemRequest) (*CreateMenuItemResponse, error) {
	if _, ok := auth.CallerFromContext(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	var category models.DrinkCategory
	err := h.db.Where("LOWER(name) = ?", catalog.Normalize(input.Body.Category)).First(&category).Error
	if err != nil {
		return nil, huma.Error400BadRequest(input.Body.Category + " is not a valid category")
	}

	name := strings.TrimSpace(input.Body.Name)
	var existing models.Drink
	if err := h.db.Where("LOWER(name) = ?", catalog.Normalize(name)).First(&existing).Error; err == nil {
		return nil, huma.Error409Conflict("Drink already exists")
	}

	drink := models.Drink{Name: name, DrinkCategoryName: category.Name}
	if err := h.db.Create(&drink).Error; err != nil {
		log.Printf("Create drink failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while creating the drink")
	}

	res := &CreateMenuItemResponse{}
	res.Body.Message = "Drink created"
	return res, nil
}

type ListDrinksResponse struct {
	Body struct {
		Drinks []models.Drink `json:"drinks"`
	}
}

func (h *CatalogHandler) HandleListDrinks(ctx context.Context, input *struct{}) (*ListDrinksResponse, error) {
	if _, ok := auth.CallerFromContext(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	var drinks []models.Drink
	if err := h.db.Find(&drinks).Error; err != nil {
		log.Printf("List drinks failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while getting the drinks")
	}

	res := &ListDrinksResponse{}
	res.Body.Drinks = drinks
	return res, nil
}

type UpdateDrinkRequest struct {
	DrinkID uint `path:"drinkID"`
	Body    struct {
		Name              string     `json:"name,omitempty"`
		Category          string     `json:"category,omitempty"`
		Quantity          *int       `json:"quantity,omitempty" minimum:"0"`
		ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
		MeasuringUnitName string     `json:"measuring_unit_name,omitempty"`
	}
}

func (h *CatalogHandler) HandleUpdateDrink(ctx context.Context, input *UpdateDrinkRequest) (*UpdateMenuItemResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if !caller.IsChef() {
		return nil, huma.Error403Forbidden("Not authorized")
	}

	var drink models.Drink
	if err := h.db.First(&drink, input.DrinkID).Error; err != nil {
		return nil, huma.Error404NotFound("Drink not found")
	}

	updates := map[string]interface{}{}
	if name := strings.TrimSpace(input.Body.Name); name != "" {
		updates["name"] = name
	}
	if input.Body.Category != "" {
		var category models.DrinkCategory
		err := h.db.Where("LOWER(name) = ?", catalog.Normalize(input.Body.Category)).First(&category).Error
		if err != nil {
			return nil, huma.Error400BadRequest("Invalid drink category")
		}
		updates["drink_category_name"] = category.Name
	}
	if input.Body.Quantity != nil {
		updates["quantity"] = *input.Body.Quantity
	}
	if input.Body.ExpiryDate != nil {
		updates["expiry_date"] = *input.Body.ExpiryDate
	}
	if input.Body.MeasuringUnitName != "" {
		updates["measuring_unit_name"] = input.Body.MeasuringUnitName
	}

	if len(updates) > 0 {
		if err := h.db.Model(&drink).Updates(updates).Error; err != nil {
			log.Printf("Update drink failed: %v", err)
			return nil, huma.Error500InternalServerError("An error occurred while updating the drink")
		}
	}

	res := &UpdateMenuItemResponse{}
	res.Body.Message = "Drink updated"
	return res, nil
}
