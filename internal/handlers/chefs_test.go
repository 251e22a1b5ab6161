package handlers

import (
	"context"
	"testing"

	"github.com/caterhub/caterhub-api/internal/auth"
	"github.com/caterhub/caterhub-api/internal/models"
)

func TestHandleCreateChefProfile(t *testing.T) {
	db := newTestDB(t)
	user := models.User{Name: "Ngozi Chef", Email: "ngozi@example.com", Role: models.RoleChef, ChefType: models.ChefTypeSous}
	db.Create(&user)
	db.Create(&models.Cuisine{Name: "Italian"})

	handler := NewChefHandler(db)
	ctx := auth.ContextWithCaller(context.Background(), auth.Caller{
		UserID:   user.ID,
		Role:     user.Role,
		ChefType: user.ChefType,
	})

	req := &CreateChefProfileRequest{}
	req.Body.Nationality = "Nigerian"
	req.Body.Specialty = "Pastry"
	req.Body.Cuisines = []string{"italian", "Martian"}

	resp, err := handler.HandleCreateChefProfile(ctx, req)
	if err != nil {
		t.Fatalf("HandleCreateChefProfile returned error: %v", err)
	}
	if resp.Body.Name != "Ngozi Chef" {
		t.Errorf("expected user name on the summary, got %q", resp.Body.Name)
	}
	if resp.Body.Role != models.ChefTypeSous {
		t.Errorf("profile role must mirror the caller's chef tier, got %q", resp.Body.Role)
	}
	if len(resp.Body.Cuisines) != 1 || resp.Body.Cuisines[0] != "Italian" {
		t.Errorf("unknown cuisines must be dropped, got %v", resp.Body.Cuisines)
	}

	t.Run("SecondProfileRejected", func(t *testing.T) {
		if _, err := handler.HandleCreateChefProfile(ctx, req); err == nil {
			t.Fatal("expected second profile for the same user to be rejected")
		}
	})

	t.Run("NonChefForbidden", func(t *testing.T) {
		ctx := auth.ContextWithCaller(context.Background(), auth.Caller{UserID: 99, Role: models.RoleUser})
		if _, err := handler.HandleCreateChefProfile(ctx, req); err == nil {
			t.Fatal("expected forbidden for a non-chef")
		}
	})
}

func TestHandleListChefProfilesVisibility(t *testing.T) {
	db := newTestDB(t)
	newTestChef(t, db, "Exec Chef", "exec@example.com", models.ChefTypeExecutive)
	newTestChef(t, db, "Sous Chef", "sous@example.com", models.ChefTypeSous)

	handler := NewChefHandler(db)

	t.Run("AdminSeesAll", func(t *testing.T) {
		ctx := auth.ContextWithCaller(context.Background(), auth.Caller{UserID: 1, Role: models.RoleAdmin})
		resp, err := handler.HandleListChefProfiles(ctx, &struct{}{})
		if err != nil {
			t.Fatalf("HandleListChefProfiles returned error: %v", err)
		}
		if len(resp.Body.Chefs) != 2 {
			t.Errorf("expected 2 chefs for an admin, got %d", len(resp.Body.Chefs))
		}
	})

	t.Run("ExecutiveSeesNonExecutives", func(t *testing.T) {
		ctx := auth.ContextWithCaller(context.Background(), auth.Caller{
			UserID:   1,
			Role:     models.RoleChef,
			ChefType: models.ChefTypeExecutive,
		})
		resp, err := handler.HandleListChefProfiles(ctx, &struct{}{})
		if err != nil {
			t.Fatalf("HandleListChefProfiles returned error: %v", err)
		}
		if len(resp.Body.Chefs) != 1 || resp.Body.Chefs[0].Name != "Sous Chef" {
			t.Errorf("expected only the sous chef, got %+v", resp.Body.Chefs)
		}
	})

	t.Run("RegularChefForbidden", func(t *testing.T) {
		ctx := auth.ContextWithCaller(context.Background(), auth.Caller{
			UserID:   1,
			Role:     models.RoleChef,
			ChefType: models.ChefTypeCommisFirst,
		})
		if _, err := handler.HandleListChefProfiles(ctx, &struct{}{}); err == nil {
			t.Fatal("expected forbidden for a commis chef")
		}
	})
}

func TestHandleAssignDepartment(t *testing.T) {
	db := newTestDB(t)
	_, profile := newTestChef(t, db, "Sous Chef", "sous@example.com", models.ChefTypeSous)

	handler := NewChefHandler(db)

	req := &AssignDepartmentRequest{ChefID: profile.ID}
	req.Body.Department = models.DepartmentPastry

	t.Run("SousChefForbidden", func(t *testing.T) {
		ctx := auth.ContextWithCaller(context.Background(), auth.Caller{
			UserID:   1,
			Role:     models.RoleChef,
			ChefType: models.ChefTypeSous,
		})
		if _, err := handler.HandleAssignDepartment(ctx, req); err == nil {
			t.Fatal("expected forbidden for a sous chef")
		}
	})

	t.Run("ExecutiveAssigns", func(t *testing.T) {
		ctx := auth.ContextWithCaller(context.Background(), auth.Caller{
			UserID:   1,
			Role:     models.RoleChef,
			ChefType: models.ChefTypeExecutive,
		})
		if _, err := handler.HandleAssignDepartment(ctx, req); err != nil {
			t.Fatalf("HandleAssignDepartment returned error: %v", err)
		}
		var updated models.ChefProfile
		db.First(&updated, profile.ID)
		if updated.Department != models.DepartmentPastry {
			t.Errorf("expected department %s, got %s", models.DepartmentPastry, updated.Department)
		}
	})
}

func TestHandleUpdateChefProfile(t *testing.T) {
	db := newTestDB(t)
	user, profile := newTestChef(t, db, "Ezra Chef", "ezra@example.com", models.ChefTypeSous)
	db.Create(&models.Cuisine{Name: "French"})

	handler := NewChefHandler(db)
	ctx := auth.ContextWithCaller(context.Background(), auth.Caller{UserID: user.ID, Role: user.Role, ChefType: user.ChefType})

	req := &UpdateChefProfileRequest{}
	req.Body.Specialty = "Sauces"
	req.Body.Cuisines = []string{"French"}

	if _, err := handler.HandleUpdateChefProfile(ctx, req); err != nil {
		t.Fatalf("HandleUpdateChefProfile returned error: %v", err)
	}

	var updated models.ChefProfile
	db.Preload("Cuisines").First(&updated, profile.ID)
	if updated.Specialty != "Sauces" {
		t.Errorf("expected specialty Sauces, got %q", updated.Specialty)
	}
	if len(updated.Cuisines) != 1 || updated.Cuisines[0].Name != "French" {
		t.Errorf("expected cuisines to be replaced, got %+v", updated.Cuisines)
	}
}

func TestHandleCreateCuisine(t *testing.T) {
	db := newTestDB(t)
	handler := NewChefHandler(db)
	ctx := auth.ContextWithCaller(context.Background(), auth.Caller{UserID: 1, Role: models.RoleUser})

	req := &CreateCuisineRequest{}
	req.Body.Name = "Lebanese"
	if _, err := handler.HandleCreateCuisine(ctx, req); err != nil {
		t.Fatalf("HandleCreateCuisine returned error: %v", err)
	}
	if _, err := handler.HandleCreateCuisine(ctx, req); err == nil {
		t.Fatal("expected duplicate cuisine to be rejected")
	}

	resp, err := handler.HandleListCuisines(context.Background(), &struct{}{})
	if err != nil {
		t.Fatalf("HandleListCuisines returned error: %v", err)
	}
	if len(resp.Body.Names) != 1 || resp.Body.Names[0] != "Lebanese" {
		t.Errorf("expected [Lebanese], got %v", resp.Body.Names)
	}
}
