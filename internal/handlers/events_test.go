package handlers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/caterhub/caterhub-api/internal/auth"
	"github.com/caterhub/caterhub-api/internal/config"
	"github.com/caterhub/caterhub-api/internal/models"
)

func TestHandleCreateEvent(t *testing.T) {
	db := newTestDB(t)
	user := models.User{Name: "Olu Organizer", Email: "olu@example.com", Role: models.RoleUser}
	db.Create(&user)

	db.Create(&models.MealCategory{Name: "Main Course"})
	db.Create(&models.Meal{Name: "Jollof Rice", MealCategoryName: "Main Course"})

	cfg := &config.Config{PublicDomain: "https://caterhub.example.com"}
	handler := NewEventHandler(db, cfg)
	ctx := auth.ContextWithCaller(context.Background(), auth.Caller{UserID: user.ID, Role: user.Role})

	req := &CreateEventRequest{}
	req.Body.Name = "Harvest Dinner"
	req.Body.Description = "End of season dinner"
	req.Body.MaxNumberOfGuests = 20
	req.Body.AllowExtraGuest = true
	req.Body.MaxNumberOfExtraGuest = intPtr(3)
	req.Body.AllowMinor = false
	req.Body.Meals = []string{"Jollof Rice"}
	req.Body.MealTimeType = models.EventTimeDinner
	req.Body.Date = time.Now().Add(7 * 24 * time.Hour)
	req.Body.Time = "18:30"
	req.Body.Location = "Abuja"

	resp, err := handler.HandleCreateEvent(ctx, req)
	if err != nil {
		t.Fatalf("HandleCreateEvent returned error: %v", err)
	}
	if !strings.HasPrefix(resp.Body.Link, "https://caterhub.example.com/event/") {
		t.Errorf("unexpected share link: %s", resp.Body.Link)
	}

	var event models.Event
	if err := db.Preload("Meals").First(&event).Error; err != nil {
		t.Fatalf("failed to load created event: %v", err)
	}
	if event.AvailableSlot == nil || *event.AvailableSlot != 20 {
		t.Errorf("available_slot must start at capacity, got %v", event.AvailableSlot)
	}
	if event.SlotTaken != 0 {
		t.Errorf("slot_taken must start at 0, got %d", event.SlotTaken)
	}
	if event.Date.Hour() != 18 || event.Date.Minute() != 30 {
		t.Errorf("expected 18:30 start, got %s", event.Date.Format("15:04"))
	}
	if len(event.Meals) != 1 || event.Meals[0].Name != "Jollof Rice" {
		t.Errorf("expected menu with Jollof Rice, got %+v", event.Meals)
	}

	// Creating an event promotes the caller to organizer.
	var organizer models.Organizer
	if err := db.Where("user_id = ?", user.ID).First(&organizer).Error; err != nil {
		t.Errorf("expected an organizer record for the caller: %v", err)
	}
}

func TestHandleCreateEventExtraGuestsNeedMax(t *testing.T) {
	db := newTestDB(t)
	user := models.User{Name: "Olu", Email: "olu@example.com", Role: models.RoleUser}
	db.Create(&user)

	handler := NewEventHandler(db, &config.Config{})
	ctx := auth.ContextWithCaller(context.Background(), auth.Caller{UserID: user.ID, Role: user.Role})

	req := &CreateEventRequest{}
	req.Body.Name = "Brunch"
	req.Body.Description = "Weekend brunch"
	req.Body.MaxNumberOfGuests = 10
	req.Body.AllowExtraGuest = true
	req.Body.MealTimeType = models.EventTimeBreakfast
	req.Body.Date = time.Now().Add(24 * time.Hour)
	req.Body.Location = "Lagos"

	if _, err := handler.HandleCreateEvent(ctx, req); err == nil {
		t.Fatal("expected rejection when allow_extra_guest is set without a maximum")
	}
}

func TestHandleGetEvent(t *testing.T) {
	db := newTestDB(t)
	event := newTestEvent(t, db, nil)
	handler := NewEventHandler(db, &config.Config{})

	resp, err := handler.HandleGetEvent(context.Background(), &GetEventRequest{PublicID: event.PublicID})
	if err != nil {
		t.Fatalf("HandleGetEvent returned error: %v", err)
	}
	if resp.Body.Name != event.Name {
		t.Errorf("expected event %q, got %q", event.Name, resp.Body.Name)
	}

	if _, err := handler.HandleGetEvent(context.Background(), &GetEventRequest{PublicID: "nope"}); err == nil {
		t.Fatal("expected not found for an unknown public ID")
	}
}

func TestHandleUpdateEvent(t *testing.T) {
	db := newTestDB(t)
	event := newTestEvent(t, db, nil)
	handler := NewEventHandler(db, &config.Config{})

	var organizer models.Organizer
	if err := db.First(&organizer, event.OrganizerID).Error; err != nil {
		t.Fatalf("failed to load organizer: %v", err)
	}

	ownerCtx := auth.ContextWithCaller(context.Background(), auth.Caller{UserID: organizer.UserID, Role: models.RoleOrganizer})

	req := &UpdateEventRequest{EventID: event.ID}
	req.Body.Name = "Renamed Banquet"
	req.Body.AllowMinor = func() *bool { v := false; return &v }()

	resp, err := handler.HandleUpdateEvent(ownerCtx, req)
	if err != nil {
		t.Fatalf("HandleUpdateEvent returned error: %v", err)
	}
	if resp.Body.Name != "Renamed Banquet" {
		t.Errorf("expected renamed event, got %q", resp.Body.Name)
	}
	if resp.Body.AllowMinor {
		t.Error("expected allow_minor to be switched off")
	}

	t.Run("StrangerForbidden", func(t *testing.T) {
		stranger := models.User{Name: "Sola", Email: "sola@example.com", Role: models.RoleUser}
		db.Create(&stranger)
		ctx := auth.ContextWithCaller(context.Background(), auth.Caller{UserID: stranger.ID, Role: stranger.Role})
		if _, err := handler.HandleUpdateEvent(ctx, req); err == nil {
			t.Fatal("expected forbidden for a caller who does not own the event")
		}
	})

	t.Run("AdminAllowed", func(t *testing.T) {
		ctx := auth.ContextWithCaller(context.Background(), auth.Caller{UserID: 999, Role: models.RoleAdmin})
		adminReq := &UpdateEventRequest{EventID: event.ID}
		adminReq.Body.Location = "Ibadan"
		resp, err := handler.HandleUpdateEvent(ctx, adminReq)
		if err != nil {
			t.Fatalf("admin update returned error: %v", err)
		}
		if resp.Body.Location != "Ibadan" {
			t.Errorf("expected relocated event, got %q", resp.Body.Location)
		}
	})
}

func TestHandleDeleteEvent(t *testing.T) {
	db := newTestDB(t)
	event := newTestEvent(t, db, nil)
	handler := NewEventHandler(db, &config.Config{})

	t.Run("NonAdminForbidden", func(t *testing.T) {
		ctx := auth.ContextWithCaller(context.Background(), auth.Caller{UserID: 1, Role: models.RoleOrganizer})
		if _, err := handler.HandleDeleteEvent(ctx, &DeleteEventRequest{EventID: event.ID}); err == nil {
			t.Fatal("expected forbidden for a non-admin")
		}
	})

	t.Run("AdminDeletes", func(t *testing.T) {
		ctx := auth.ContextWithCaller(context.Background(), auth.Caller{UserID: 1, Role: models.RoleAdmin})
		if _, err := handler.HandleDeleteEvent(ctx, &DeleteEventRequest{EventID: event.ID}); err != nil {
			t.Fatalf("HandleDeleteEvent returned error: %v", err)
		}
		var count int64
		db.Model(&models.Event{}).Count(&count)
		if count != 0 {
			t.Errorf("expected event to be deleted, found %d", count)
		}
	})
}

func TestHandleListEvents(t *testing.T) {
	db := newTestDB(t)
	past := newTestEvent(t, db, func(e *models.Event) {
		e.PublicID = "pub-past"
		e.Date = time.Now().Add(-48 * time.Hour)
	})

	upcoming := models.Event{
		PublicID:          "pub-upcoming",
		Name:              "Next Week Lunch",
		MaxNumberOfGuests: 5,
		AvailableSlot:     intPtr(5),
		MealTimeType:      models.EventTimeLunch,
		Date:              time.Now().Add(7 * 24 * time.Hour),
		OrganizerID:       past.OrganizerID,
	}
	db.Create(&upcoming)

	handler := NewEventHandler(db, &config.Config{})
	ctx := auth.ContextWithCaller(context.Background(), auth.Caller{UserID: 1, Role: models.RoleUser})

	resp, err := handler.HandleListEvents(ctx, &ListEventsRequest{})
	if err != nil {
		t.Fatalf("HandleListEvents returned error: %v", err)
	}
	if len(resp.Body.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(resp.Body.Events))
	}
	// Sorted by date ascending, so the past event comes first.
	if resp.Body.Events[0].PublicID != "pub-past" {
		t.Errorf("expected past event first, got %q", resp.Body.Events[0].PublicID)
	}

	filtered, err := handler.HandleListEvents(ctx, &ListEventsRequest{UpcomingOnly: true})
	if err != nil {
		t.Fatalf("HandleListEvents upcoming returned error: %v", err)
	}
	if len(filtered.Body.Events) != 1 || filtered.Body.Events[0].PublicID != "pub-upcoming" {
		t.Errorf("expected only the upcoming event, got %+v", filtered.Body.Events)
	}
}

func TestHandleListOrganizerEvents(t *testing.T) {
	db := newTestDB(t)
	event := newTestEvent(t, db, nil)
	handler := NewEventHandler(db, &config.Config{})

	var organizer models.Organizer
	db.First(&organizer, event.OrganizerID)
	ctx := auth.ContextWithCaller(context.Background(), auth.Caller{UserID: organizer.UserID, Role: models.RoleOrganizer})

	resp, err := handler.HandleListOrganizerEvents(ctx, &ListOrganizerEventsRequest{})
	if err != nil {
		t.Fatalf("HandleListOrganizerEvents returned error: %v", err)
	}
	if len(resp.Body.Events) != 1 {
		t.Errorf("expected 1 event for the organizer, got %d", len(resp.Body.Events))
	}

	t.Run("NotAnOrganizer", func(t *testing.T) {
		other := models.User{Name: "Guest User", Email: "guest@example.com", Role: models.RoleUser}
		db.Create(&other)
		ctx := auth.ContextWithCaller(context.Background(), auth.Caller{UserID: other.ID, Role: other.Role})
		if _, err := handler.HandleListOrganizerEvents(ctx, &ListOrganizerEventsRequest{}); err == nil {
			t.Fatal("expected not found for a caller with no organizer record")
		}
	})
}
