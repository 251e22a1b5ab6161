package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/caterhub/caterhub-api/internal/auth"
	"github.com/caterhub/caterhub-api/internal/catalog"
	"github.com/caterhub/caterhub-api/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

// insufficientStockError carries the first ingredient whose conditional
// decrement found less stock than the allocation needed.
type insufficientStockError struct {
	name string
}

func (e insufficientStockError) Error() string {
	return "insufficient stock for ingredient: " + e.name
}

type PlanningHandler struct {
	db       *gorm.DB
	resolver *catalog.Resolver
}

func NewPlanningHandler(db *gorm.DB) *PlanningHandler {
	return &PlanningHandler{db: db, resolver: catalog.NewResolver(db)}
}

type IngredientAssignment struct {
	IngredientName   string `json:"ingredient_name" minLength:"1"`
	AssignedQuantity int    `json:"assigned_quantity" minimum:"1"`
}

type CreateMealPlanRequest struct {
	EventID uint `path:"eventID"`
	Body    struct {
		Name        string                 `json:"name" minLength:"1" doc:"Name of one of the event's meals"`
		Description string                 `json:"description,omitempty"`
		Note        string                 `json:"note,omitempty"`
		Ingredients []IngredientAssignment `json:"ingredients" minItems:"1"`
		ChefIDs     []uint                 `json:"chef_ids" minItems:"1"`
	}
}

type CreateMealPlanResponse struct {
	Body struct {
		Message    string `json:"message"`
		MealPlanID uint   `json:"meal_plan_id"`
	}
}

// HandleCreateMealPlan creates the production plan for one meal of an event
// and reserves ingredient stock. Validation is two-phase: every line is
// resolved and quantity-checked before any decrement runs, and each decrement
// is a conditional update so stock can never go negative even under
// concurrent allocations.
func (h *PlanningHandler) HandleCreateMealPlan(ctx context.Context, input *CreateMealPlanRequest) (*CreateMealPlanResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if !caller.IsExecutiveChef() {
		return nil, huma.Error403Forbidden("Not authorized")
	}

	var event models.Event
	err := h.db.Preload("Meals").Preload("MealPlans").First(&event, input.EventID).Error
	if err != nil {
		return nil, huma.Error404NotFound(fmt.Sprintf("Event with ID %d not found", input.EventID))
	}

	var chefs []models.ChefProfile
	if err := h.db.Where("id IN ?", input.Body.ChefIDs).Find(&chefs).Error; err != nil {
		log.Printf("Load chef profiles failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while creating the meal plan")
	}
	if len(chefs) != len(input.Body.ChefIDs) {
		found := map[uint]bool{}
		for _, c := range chefs {
			found[c.ID] = true
		}
		var missing []string
		for _, id := range input.Body.ChefIDs {
			if !found[id] {
				missing = append(missing, fmt.Sprintf("%d", id))
			}
		}
		return nil, huma.Error404NotFound("Chef(s) not found: " + strings.Join(missing, ", "))
	}

	var meal *models.Meal
	for i := range event.Meals {
		if catalog.Normalize(event.Meals[i].Name) == catalog.Normalize(input.Body.Name) {
			meal = &event.Meals[i]
			break
		}
	}
	if meal == nil {
		return nil, huma.Error404NotFound(
			fmt.Sprintf("No meal with name '%s' found for the %s event", input.Body.Name, event.Name))
	}

	for _, plan := range event.MealPlans {
		if strings.Contains(plan.Name, meal.Name) {
			return nil, huma.Error409Conflict(
				fmt.Sprintf("A meal plan for the meal '%s' has already been created", meal.Name))
		}
	}

	if len(event.MealPlans) >= len(event.Meals) {
		return nil, huma.Error409Conflict("Cannot create more meal plans. The event already has meal plans for all meals")
	}

	// Phase one: resolve every ingredient line and check stock before any write.
	inventories := make([]*models.IngredientInventory, len(input.Body.Ingredients))
	var missingIngredients []string
	for i, line := range input.Body.Ingredients {
		inv, err := h.resolver.FindIngredient(line.IngredientName)
		if err != nil {
			missingIngredients = append(missingIngredients, line.IngredientName)
			continue
		}
		inventories[i] = inv
	}
	if len(missingIngredients) > 0 {
		return nil, huma.Error404NotFound(
			"Inventory not found for ingredients: " + strings.Join(missingIngredients, ", "))
	}

	var insufficient []string
	for i, line := range input.Body.Ingredients {
		if inventories[i].AvailableQuantity < line.AssignedQuantity {
			insufficient = append(insufficient, line.IngredientName)
		}
	}
	if len(insufficient) > 0 {
		return nil, huma.Error409Conflict(
			"Insufficient stock for ingredients: " + strings.Join(insufficient, ", "))
	}

	description := input.Body.Description
	if description == "" {
		description = "Meal plan for " + meal.Name
	}

	mealPlan := models.MealPlan{
		Name:        meal.Name + " Plan",
		Description: description,
		Note:        input.Body.Note,
		EventID:     event.ID,
		Chefs:       chefs,
	}

	// Phase two: plan insert, conditional decrements, and usage rows as one
	// atomic unit.
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&mealPlan).Error; err != nil {
			return err
		}

		for i, line := range input.Body.Ingredients {
			inv := inventories[i]

			res := tx.Model(&models.IngredientInventory{}).
				Where("id = ? AND available_quantity >= ?", inv.ID, line.AssignedQuantity).
				UpdateColumn("available_quantity", gorm.Expr("available_quantity - ?", line.AssignedQuantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return insufficientStockError{name: inv.Name}
			}

			usage := models.IngredientUsage{
				MealPlanID:        mealPlan.ID,
				IngredientName:    inv.Name,
				AssignedQuantity:  line.AssignedQuantity,
				MeasuringUnitName: inv.MeasuringUnitName,
			}
			if err := tx.Create(&usage).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var stockErr insufficientStockError
		if errors.As(err, &stockErr) {
			return nil, huma.Error409Conflict("Insufficient stock for ingredient: " + stockErr.name)
		}
		log.Printf("Create meal plan failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while creating the meal plan")
	}

	res := &CreateMealPlanResponse{}
	res.Body.Message = "Meal plan created"
	res.Body.MealPlanID = mealPlan.ID
	return res, nil
}

type IngredientUsageSummary struct {
	MealPlanID       uint   `json:"meal_plan_id"`
	IngredientName   string `json:"ingredient_name"`
	AssignedQuantity int    `json:"assigned_quantity"`
	Unit             string `json:"unit"`
	QuantityUsed     *int   `json:"quantity_used"`
}

type MealPlanSummary struct {
	ID              uint                     `json:"id"`
	EventName       string                   `json:"event_name"`
	Name            string                   `json:"name"`
	Description     string                   `json:"description"`
	Note            string                   `json:"note"`
	Chefs           []string                 `json:"chefs"`
	IngredientUsage []IngredientUsageSummary `json:"ingredient_usage"`
}

type ListMealPlansRequest struct {
	EventID uint `path:"eventID"`
}

type ListMealPlansResponse struct {
	Body struct {
		MealPlans []MealPlanSummary `json:"meal_plans"`
	}
}

func (h *PlanningHandler) HandleListMealPlans(ctx context.Context, input *ListMealPlansRequest) (*ListMealPlansResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if !caller.IsChef() {
		return nil, huma.Error403Forbidden("Not authorized")
	}

	var plans []models.MealPlan
	err := h.db.Preload("Chefs.User").Preload("IngredientUsages").Preload("Event").
		Where("event_id = ?", input.EventID).Find(&plans).Error
	if err != nil {
		log.Printf("List meal plans failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while getting the meal plans")
	}

	res := &ListMealPlansResponse{}
	res.Body.MealPlans = []MealPlanSummary{}
	for _, plan := range plans {
		summary := MealPlanSummary{
			ID:              plan.ID,
			EventName:       plan.Event.Name,
			Name:            plan.Name,
			Description:     plan.Description,
			Note:            plan.Note,
			Chefs:           []string{},
			IngredientUsage: []IngredientUsageSummary{},
		}
		for _, chef := range plan.Chefs {
			summary.Chefs = append(summary.Chefs, chef.User.Name)
		}
		for _, usage := range plan.IngredientUsages {
			summary.IngredientUsage = append(summary.IngredientUsage, IngredientUsageSummary{
				MealPlanID:       usage.MealPlanID,
				IngredientName:   usage.IngredientName,
				AssignedQuantity: usage.AssignedQuantity,
				Unit:             usage.MeasuringUnitName,
				QuantityUsed:     usage.QuantityUsed,
			})
		}
		res.Body.MealPlans = append(res.Body.MealPlans, summary)
	}
	return res, nil
}

type UpdateIngredientUsageRequest struct {
	MealPlanID uint `path:"mealPlanID"`
	Body       struct {
		IngredientName string `json:"ingredient_name" minLength:"1"`
		QuantityUsed   int    `json:"quantity_used" minimum:"0"`
	}
}

type UpdateIngredientUsageResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

// HandleUpdateIngredientUsage records the quantity a chef actually consumed
// against an existing usage row. Plain field update with existence checks.
func (h *PlanningHandler) HandleUpdateIngredientUsage(ctx context.Context, input *UpdateIngredientUsageRequest) (*UpdateIngredientUsageResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if !caller.IsChef() {
		return nil, huma.Error403Forbidden("Not authorized")
	}

	var plan models.MealPlan
	err := h.db.Preload("IngredientUsages").First(&plan, input.MealPlanID).Error
	if err != nil {
		return nil, huma.Error404NotFound(fmt.Sprintf("Meal plan with ID %d not found", input.MealPlanID))
	}

	var usage *models.IngredientUsage
	for i := range plan.IngredientUsages {
		if catalog.Normalize(plan.IngredientUsages[i].IngredientName) == catalog.Normalize(input.Body.IngredientName) {
			usage = &plan.IngredientUsages[i]
			break
		}
	}
	if usage == nil {
		return nil, huma.Error404NotFound(
			fmt.Sprintf("Ingredient usage for ingredient '%s' not found", input.Body.IngredientName))
	}

	if err := h.db.Model(usage).Update("quantity_used", input.Body.QuantityUsed).Error; err != nil {
		log.Printf("Update ingredient usage failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while updating ingredient usage")
	}

	res := &UpdateIngredientUsageResponse{}
	res.Body.Message = "Ingredient usage updated"
	return res, nil
}
