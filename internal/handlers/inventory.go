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

type InventoryHandler struct {
	db *gorm.DB
}

func NewInventoryHandler(db *gorm.DB) *InventoryHandler {
	return &InventoryHandler{db: db}
}

type CreateInventoryRequest struct {
	Body struct {
		Name              string    `json:"name" minLength:"1"`
		AvailableQuantity int       `json:"available_quantity" minimum:"1"`
		Unit              string    `json:"unit" minLength:"1"`
		PurchaseDate      time.Time `json:"purchase_date"`
		ExpiryDate        time.Time `json:"expiry_date"`
	}
}

type InventoryResponse struct {
	Body models.IngredientInventory
}

func (h *InventoryHandler) HandleCreateInventory(ctx context.Context, input *CreateInventoryRequest) (*InventoryResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if !caller.IsChef() {
		return nil, huma.Error403Forbidden("Not authorized")
	}

	name := strings.TrimSpace(input.Body.Name)
	var existing models.IngredientInventory
	if err := h.db.Where("LOWER(name) = ?", catalog.Normalize(name)).First(&existing).Error; err == nil {
		return nil, huma.Error409Conflict("Ingredient already exists")
	}

	inv := models.IngredientInventory{
		Name:              name,
		AvailableQuantity: input.Body.AvailableQuantity,
		MeasuringUnitName: input.Body.Unit,
		PurchaseDate:      input.Body.PurchaseDate,
		ExpiryDate:        input.Body.ExpiryDate,
	}
	if err := h.db.Create(&inv).Error; err != nil {
		log.Printf("Create ingredient inventory failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while creating the ingredient inventory")
	}

	return &InventoryResponse{Body: inv}, nil
}

type GetInventoryRequest struct {
	InventoryID uint `path:"inventoryID"`
}

func (h *InventoryHandler) HandleGetInventory(ctx context.Context, input *GetInventoryRequest) (*InventoryResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if !caller.IsChef() {
		return nil, huma.Error403Forbidden("Not authorized")
	}

	var inv models.IngredientInventory
	if err := h.db.First(&inv, input.InventoryID).Error; err != nil {
		return nil, huma.Error404NotFound("Ingredient inventory not found")
	}

	return &InventoryResponse{Body: inv}, nil
}

type ListInventoriesResponse struct {
	Body struct {
		Inventories []models.IngredientInventory `json:"inventories"`
	}
}

func (h *InventoryHandler) HandleListInventories(ctx context.Context, input *struct{}) (*ListInventoriesResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if !caller.IsChef() {
		return nil, huma.Error403Forbidden("Not authorized")
	}

	var inventories []models.IngredientInventory
	if err := h.db.Find(&inventories).Error; err != nil {
		log.Printf("List ingredient inventories failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while getting the ingredient inventories")
	}

	res := &ListInventoriesResponse{}
	res.Body.Inventories = inventories
	return res, nil
}

type UpdateInventoryRequest struct {
	InventoryID uint `path:"inventoryID"`
	Body        struct {
		Name              string     `json:"name,omitempty"`
		AvailableQuantity *int       `json:"available_quantity,omitempty" minimum:"0"`
		Unit              string     `json:"unit,omitempty"`
		ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
		ShelfLife         *int       `json:"shelf_life,omitempty" minimum:"1"`
		ShelfLifeUnit     string     `json:"shelf_life_unit,omitempty" enum:"DAYS,WEEKS,MONTHS"`
	}
}

type UpdateInventoryResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *InventoryHandler) HandleUpdateInventory(ctx context.Context, input *UpdateInventoryRequest) (*UpdateInventoryResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if !caller.IsChef() {
		return nil, huma.Error403Forbidden("Not authorized")
	}

	var inv models.IngredientInventory
	if err := h.db.First(&inv, input.InventoryID).Error; err != nil {
		return nil, huma.Error404NotFound("Ingredient inventory not found")
	}

	updates := map[string]interface{}{}
	if name := strings.TrimSpace(input.Body.Name); name != "" {
		updates["name"] = name
	}
	if input.Body.AvailableQuantity != nil {
		updates["available_quantity"] = *input.Body.AvailableQuantity
	}
	if input.Body.Unit != "" {
		updates["measuring_unit_name"] = input.Body.Unit
	}
	if input.Body.ExpiryDate != nil {
		updates["expiry_date"] = *input.Body.ExpiryDate
	}
	if input.Body.ShelfLife != nil {
		updates["shelf_life"] = *input.Body.ShelfLife
	}
	if input.Body.ShelfLifeUnit != "" {
		updates["shelf_life_unit"] = input.Body.ShelfLifeUnit
	}

	if len(updates) > 0 {
		if err := h.db.Model(&inv).Updates(updates).Error; err != nil {
			log.Printf("Update ingredient inventory failed: %v", err)
			return nil, huma.Error500InternalServerError("An error occurred while updating the ingredient inventory")
		}
	}

	res := &UpdateInventoryResponse{}
	res.Body.Message = "Ingredient inventory updated"
	return res, nil
}

type DeleteInventoryRequest struct {
	InventoryID uint `path:"inventoryID"`
}

type DeleteInventoryResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *InventoryHandler) HandleDeleteInventory(ctx context.Context, input *DeleteInventoryRequest) (*DeleteInventoryResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if !caller.IsChef() {
		return nil, huma.Error403Forbidden("Not authorized")
	}

	var inv models.IngredientInventory
	if err := h.db.First(&inv, input.InventoryID).Error; err != nil {
		return nil, huma.Error404NotFound("Ingredient inventory not found")
	}

	if err := h.db.Delete(&inv).Error; err != nil {
		log.Printf("Delete ingredient inventory failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while deleting the ingredient inventory")
	}

	res := &DeleteInventoryResponse{}
	res.Body.Message = "Ingredient inventory deleted"
	return res, nil
}
