package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/caterhub/caterhub-api/internal/auth"
	"github.com/caterhub/caterhub-api/internal/models"
)

func chefContext() context.Context {
	return auth.ContextWithCaller(context.Background(), auth.Caller{
		UserID:   1,
		Role:     models.RoleChef,
		ChefType: models.ChefTypeSous,
	})
}

func TestHandleCreateInventory(t *testing.T) {
	db := newTestDB(t)
	handler := NewInventoryHandler(db)
	ctx := chefContext()

	req := &CreateInventoryRequest{}
	req.Body.Name = "Flour"
	req.Body.AvailableQuantity = 25
	req.Body.Unit = "kg"
	req.Body.PurchaseDate = time.Now()
	req.Body.ExpiryDate = time.Now().Add(60 * 24 * time.Hour)

	resp, err := handler.HandleCreateInventory(ctx, req)
	if err != nil {
		t.Fatalf("HandleCreateInventory returned error: %v", err)
	}
	if resp.Body.AvailableQuantity != 25 || resp.Body.MeasuringUnitName != "kg" {
		t.Errorf("unexpected inventory: %+v", resp.Body)
	}

	t.Run("DuplicateNameCaseInsensitive", func(t *testing.T) {
		dup := &CreateInventoryRequest{}
		dup.Body.Name = "flour"
		dup.Body.AvailableQuantity = 1
		dup.Body.Unit = "kg"
		if _, err := handler.HandleCreateInventory(ctx, dup); err == nil {
			t.Fatal("expected duplicate ingredient name to be rejected")
		}
	})

	t.Run("NonChefForbidden", func(t *testing.T) {
		ctx := auth.ContextWithCaller(context.Background(), auth.Caller{UserID: 2, Role: models.RoleUser})
		other := &CreateInventoryRequest{}
		other.Body.Name = "Sugar"
		other.Body.AvailableQuantity = 10
		other.Body.Unit = "kg"
		if _, err := handler.HandleCreateInventory(ctx, other); err == nil {
			t.Fatal("expected forbidden for a non-chef")
		}
	})
}

func TestHandleUpdateInventory(t *testing.T) {
	db := newTestDB(t)
	inv := models.IngredientInventory{Name: "Rice", AvailableQuantity: 50, MeasuringUnitName: "kg"}
	db.Create(&inv)

	handler := NewInventoryHandler(db)
	ctx := chefContext()

	req := &UpdateInventoryRequest{InventoryID: inv.ID}
	req.Body.AvailableQuantity = intPtr(40)
	req.Body.ShelfLife = intPtr(6)
	req.Body.ShelfLifeUnit = models.ShelfLifeMonths

	if _, err := handler.HandleUpdateInventory(ctx, req); err != nil {
		t.Fatalf("HandleUpdateInventory returned error: %v", err)
	}

	var updated models.IngredientInventory
	db.First(&updated, inv.ID)
	if updated.AvailableQuantity != 40 {
		t.Errorf("expected quantity 40, got %d", updated.AvailableQuantity)
	}
	if updated.ShelfLife != 6 || updated.ShelfLifeUnit != models.ShelfLifeMonths {
		t.Errorf("expected shelf life 6 months, got %d %s", updated.ShelfLife, updated.ShelfLifeUnit)
	}
	if updated.Name != "Rice" {
		t.Errorf("untouched fields must survive, got name %q", updated.Name)
	}

	t.Run("UnknownInventory", func(t *testing.T) {
		bad := &UpdateInventoryRequest{InventoryID: 999}
		bad.Body.AvailableQuantity = intPtr(1)
		if _, err := handler.HandleUpdateInventory(ctx, bad); err == nil {
			t.Fatal("expected not found for an unknown inventory ID")
		}
	})
}

func TestHandleDeleteInventory(t *testing.T) {
	db := newTestDB(t)
	inv := models.IngredientInventory{Name: "Butter", AvailableQuantity: 8, MeasuringUnitName: "kg"}
	db.Create(&inv)

	handler := NewInventoryHandler(db)

	if _, err := handler.HandleDeleteInventory(chefContext(), &DeleteInventoryRequest{InventoryID: inv.ID}); err != nil {
		t.Fatalf("HandleDeleteInventory returned error: %v", err)
	}

	var count int64
	db.Model(&models.IngredientInventory{}).Count(&count)
	if count != 0 {
		t.Errorf("expected inventory to be deleted, found %d", count)
	}
}

func TestHandleListInventories(t *testing.T) {
	db := newTestDB(t)
	db.Create(&models.IngredientInventory{Name: "Salt", AvailableQuantity: 3, MeasuringUnitName: "kg"})
	db.Create(&models.IngredientInventory{Name: "Pepper", AvailableQuantity: 2, MeasuringUnitName: "kg"})

	handler := NewInventoryHandler(db)

	resp, err := handler.HandleListInventories(chefContext(), &struct{}{})
	if err != nil {
		t.Fatalf("HandleListInventories returned error: %v", err)
	}
	if len(resp.Body.Inventories) != 2 {
		t.Errorf("expected 2 inventories, got %d", len(resp.Body.Inventories))
	}

	if _, err := handler.HandleListInventories(context.Background(), &struct{}{}); err == nil {
		t.Fatal("expected unauthorized without a caller")
	}
}
