package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caterhub/caterhub-api/internal/auth"
	"github.com/caterhub/caterhub-api/internal/catalog"
	"github.com/caterhub/caterhub-api/internal/config"
	"github.com/caterhub/caterhub-api/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventHandler struct {
	db       *gorm.DB
	resolver *catalog.Resolver
	cfg      *config.Config
}

func NewEventHandler(db *gorm.DB, cfg *config.Config) *EventHandler {
	return &EventHandler{db: db, resolver: catalog.NewResolver(db), cfg: cfg}
}

type EventSummary struct {
	ID                    uint      `json:"id"`
	PublicID              string    `json:"public_id"`
	Name                  string    `json:"name"`
	Description           string    `json:"description"`
	MaxNumberOfGuests     int       `json:"max_number_of_guests"`
	AllowExtraGuest       bool      `json:"allow_extra_guest"`
	MaxNumberOfExtraGuest *int      `json:"max_number_of_extra_guest"`
	AllowMinor            bool      `json:"allow_minor"`
	AvailableSlot         *int      `json:"available_slot"`
	SlotTaken             int       `json:"slot_taken"`
	MealTimeType          string    `json:"meal_time_type"`
	Date                  time.Time `json:"date"`
	Location              string    `json:"location"`
	Link                  string    `json:"link"`
	OrganizerID           uint      `json:"organizer_id"`
	Meals                 []string  `json:"meals"`
	Drinks                []string  `json:"drinks"`
}

func eventSummary(event models.Event) EventSummary {
	summary := EventSummary{
		ID:                    event.ID,
		PublicID:              event.PublicID,
		Name:                  event.Name,
		Description:           event.Description,
		MaxNumberOfGuests:     event.MaxNumberOfGuests,
		AllowExtraGuest:       event.AllowExtraGuest,
		MaxNumberOfExtraGuest: event.MaxNumberOfExtraGuest,
		AllowMinor:            event.AllowMinor,
		AvailableSlot:         event.AvailableSlot,
		SlotTaken:             event.SlotTaken,
		MealTimeType:          event.MealTimeType,
		Date:                  event.Date,
		Location:              event.Location,
		Link:                  event.Link,
		OrganizerID:           event.OrganizerID,
		Meals:                 []string{},
		Drinks:                []string{},
	}
	for _, meal := range event.Meals {
		summary.Meals = append(summary.Meals, meal.Name)
	}
	for _, drink := range event.Drinks {
		summary.Drinks = append(summary.Drinks, drink.Name)
	}
	return summary
}

// combineDateTime merges the form's separate date and HH:MM time fields into
// the single timestamp stored on the event.
func combineDateTime(date time.Time, timeStr string) (time.Time, error) {
	if timeStr == "" {
		timeStr = "00:00"
	}
	return time.ParseInLocation("2006-01-02 15:04", date.Format("2006-01-02")+" "+timeStr, time.Local)
}

type CreateEventRequest struct {
	Body struct {
		Name                  string    `json:"name" minLength:"1"`
		Description           string    `json:"description" minLength:"1"`
		MaxNumberOfGuests     int       `json:"max_number_of_guests" minimum:"1"`
		AllowExtraGuest       bool      `json:"allow_extra_guest"`
		MaxNumberOfExtraGuest *int      `json:"max_number_of_extra_guest,omitempty" minimum:"1"`
		AllowMinor            bool      `json:"allow_minor"`
		Meals                 []string  `json:"meals"`
		Drinks                []string  `json:"drinks"`
		MealTimeType          string    `json:"meal_time_type" enum:"BREAKFAST,LUNCH,DINNER"`
		Time                  string    `json:"time,omitempty" pattern:"^[0-2][0-9]:[0-5][0-9]$" doc:"Start time, HH:MM"`
		Date                  time.Time `json:"date"`
		Location              string    `json:"location" minLength:"1"`
	}
}

type CreateEventResponse struct {
	Body struct {
		Link string `json:"link"`
	}
}

func (h *EventHandler) HandleCreateEvent(ctx context.Context, input *CreateEventRequest) (*CreateEventResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if input.Body.AllowExtraGuest && input.Body.MaxNumberOfExtraGuest == nil {
		return nil, huma.Error400BadRequest("Max number of extra guests must be provided when allowing extra guests")
	}

	eventDateTime, err := combineDateTime(input.Body.Date, input.Body.Time)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid date or time")
	}

	var organizer models.Organizer
	if err := h.db.FirstOrCreate(&organizer, models.Organizer{UserID: caller.UserID}).Error; err != nil {
		log.Printf("Find or create organizer failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while creating the event")
	}

	meals, err := h.resolver.ResolveMeals(input.Body.Meals)
	if err != nil {
		log.Printf("Resolve meals failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while creating the event")
	}
	drinks, err := h.resolver.ResolveDrinks(input.Body.Drinks)
	if err != nil {
		log.Printf("Resolve drinks failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while creating the event")
	}

	availableSlot := input.Body.MaxNumberOfGuests
	publicID := uuid.New().String()
	event := models.Event{
		PublicID:              publicID,
		Name:                  input.Body.Name,
		Description:           input.Body.Description,
		MaxNumberOfGuests:     input.Body.MaxNumberOfGuests,
		AllowExtraGuest:       input.Body.AllowExtraGuest,
		MaxNumberOfExtraGuest: input.Body.MaxNumberOfExtraGuest,
		AllowMinor:            input.Body.AllowMinor,
		AvailableSlot:         &availableSlot,
		MealTimeType:          input.Body.MealTimeType,
		Date:                  eventDateTime,
		Location:              input.Body.Location,
		Link:                  fmt.Sprintf("%s/event/%s", h.cfg.PublicDomain, publicID),
		OrganizerID:           organizer.ID,
		Meals:                 meals,
		Drinks:                drinks,
	}
	if err := h.db.Create(&event).Error; err != nil {
		log.Printf("Create event failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while creating the event")
	}

	res := &CreateEventResponse{}
	res.Body.Link = event.Link
	return res, nil
}

type GetEventRequest struct {
	PublicID string `path:"publicID"`
}

type GetEventResponse struct {
	Body EventSummary
}

// HandleGetEvent is unauthenticated: guests open the share link to see the
// event before registering.
func (h *EventHandler) HandleGetEvent(ctx context.Context, input *GetEventRequest) (*GetEventResponse, error) {
	var event models.Event
	err := h.db.Preload("Meals").Preload("Drinks").Where("public_id = ?", input.PublicID).First(&event).Error
	if err != nil {
		return nil, huma.Error404NotFound("Event not found")
	}

	return &GetEventResponse{Body: eventSummary(event)}, nil
}

type ListEventsRequest struct {
	UpcomingOnly bool `query:"upcoming" doc:"Only return events that have not happened yet"`
}

type ListEventsResponse struct {
	Body struct {
		Events []EventSummary `json:"events"`
	}
}

func (h *EventHandler) HandleListEvents(ctx context.Context, input *ListEventsRequest) (*ListEventsResponse, error) {
	if _, ok := auth.CallerFromContext(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	var events []models.Event
	err := h.db.Preload("Meals").Preload("Drinks").Order("date ASC").Find(&events).Error
	if err != nil {
		log.Printf("List events failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while getting the events")
	}

	res := &ListEventsResponse{}
	res.Body.Events = []EventSummary{}
	for _, event := range events {
		if input.UpcomingOnly && !event.Date.After(time.Now()) {
			continue
		}
		res.Body.Events = append(res.Body.Events, eventSummary(event))
	}
	return res, nil
}

type ListOrganizerEventsRequest struct {
	UpcomingOnly bool `query:"upcoming"`
}

type ListOrganizerEventsResponse struct {
	Body struct {
		Events []EventSummary `json:"events"`
	}
}

func (h *EventHandler) HandleListOrganizerEvents(ctx context.Context, input *ListOrganizerEventsRequest) (*ListOrganizerEventsResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	var organizer models.Organizer
	if err := h.db.Where("user_id = ?", caller.UserID).First(&organizer).Error; err != nil {
		return nil, huma.Error404NotFound("Organizer not found")
	}

	var events []models.Event
	err := h.db.Preload("Meals").Preload("Drinks").
		Where("organizer_id = ?", organizer.ID).Order("date DESC").Find(&events).Error
	if err != nil {
		log.Printf("List organizer events failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while getting the events")
	}

	res := &ListOrganizerEventsResponse{}
	res.Body.Events = []EventSummary{}
	for _, event := range events {
		if input.UpcomingOnly && !event.Date.After(time.Now()) {
			continue
		}
		res.Body.Events = append(res.Body.Events, eventSummary(event))
	}
	return res, nil
}

type UpdateEventRequest struct {
	EventID uint `path:"eventID"`
	Body    struct {
		Name                  string     `json:"name,omitempty"`
		Description           string     `json:"description,omitempty"`
		MaxNumberOfGuests     *int       `json:"max_number_of_guests,omitempty" minimum:"1"`
		AllowExtraGuest       *bool      `json:"allow_extra_guest,omitempty"`
		MaxNumberOfExtraGuest *int       `json:"max_number_of_extra_guest,omitempty" minimum:"1"`
		AllowMinor            *bool      `json:"allow_minor,omitempty"`
		Meals                 []string   `json:"meals,omitempty"`
		Drinks                []string   `json:"drinks,omitempty"`
		MealTimeType          string     `json:"meal_time_type,omitempty" enum:"BREAKFAST,LUNCH,DINNER"`
		Time                  string     `json:"time,omitempty" pattern:"^[0-2][0-9]:[0-5][0-9]$"`
		Date                  *time.Time `json:"date,omitempty"`
		Location              string     `json:"location,omitempty"`
	}
}

type UpdateEventResponse struct {
	Body EventSummary
}

// HandleUpdateEvent applies a partial update. The organizer who owns the
// event or an admin may call it.
func (h *EventHandler) HandleUpdateEvent(ctx context.Context, input *UpdateEventRequest) (*UpdateEventResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	var event models.Event
	if err := h.db.First(&event, input.EventID).Error; err != nil {
		return nil, huma.Error404NotFound("Event not found")
	}

	if !caller.IsAdmin() {
		var organizer models.Organizer
		err := h.db.Where("user_id = ?", caller.UserID).First(&organizer).Error
		if err != nil || organizer.ID != event.OrganizerID {
			return nil, huma.Error403Forbidden("Not authorized")
		}
	}

	updates := map[string]interface{}{}
	if name := strings.TrimSpace(input.Body.Name); name != "" {
		updates["name"] = name
	}
	if desc := strings.TrimSpace(input.Body.Description); desc != "" {
		updates["description"] = desc
	}
	if input.Body.MaxNumberOfGuests != nil {
		updates["max_number_of_guests"] = *input.Body.MaxNumberOfGuests
	}
	if input.Body.AllowExtraGuest != nil {
		updates["allow_extra_guest"] = *input.Body.AllowExtraGuest
	}
	if input.Body.MaxNumberOfExtraGuest != nil {
		updates["max_number_of_extra_guest"] = *input.Body.MaxNumberOfExtraGuest
	}
	if input.Body.AllowMinor != nil {
		updates["allow_minor"] = *input.Body.AllowMinor
	}
	if input.Body.MealTimeType != "" {
		updates["meal_time_type"] = input.Body.MealTimeType
	}
	if input.Body.Location != "" {
		updates["location"] = input.Body.Location
	}
	if input.Body.Date != nil {
		eventDateTime, err := combineDateTime(*input.Body.Date, input.Body.Time)
		if err != nil {
			return nil, huma.Error400BadRequest("Invalid date or time")
		}
		updates["date"] = eventDateTime
	}

	if len(updates) > 0 {
		if err := h.db.Model(&event).Updates(updates).Error; err != nil {
			log.Printf("Update event failed: %v", err)
			return nil, huma.Error500InternalServerError("An error occurred while updating the event")
		}
	}

	if len(input.Body.Meals) > 0 {
		meals, err := h.resolver.ResolveMeals(input.Body.Meals)
		if err == nil {
			if err := h.db.Model(&event).Association("Meals").Replace(meals); err != nil {
				log.Printf("Replace event meals failed: %v", err)
			}
		}
	}
	if len(input.Body.Drinks) > 0 {
		drinks, err := h.resolver.ResolveDrinks(input.Body.Drinks)
		if err == nil {
			if err := h.db.Model(&event).Association("Drinks").Replace(drinks); err != nil {
				log.Printf("Replace event drinks failed: %v", err)
			}
		}
	}

	if err := h.db.Preload("Meals").Preload("Drinks").First(&event, event.ID).Error; err != nil {
		log.Printf("Reload event failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while updating the event")
	}

	return &UpdateEventResponse{Body: eventSummary(event)}, nil
}

type DeleteEventRequest struct {
	EventID uint `path:"eventID"`
}

type DeleteEventResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *EventHandler) HandleDeleteEvent(ctx context.Context, input *DeleteEventRequest) (*DeleteEventResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if !caller.IsAdmin() {
		return nil, huma.Error403Forbidden("Not authorized")
	}

	var event models.Event
	if err := h.db.First(&event, input.EventID).Error; err != nil {
		return nil, huma.Error404NotFound("Event not found")
	}

	if err := h.db.Delete(&event).Error; err != nil {
		log.Printf("Delete event failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while deleting the event")
	}

	res := &DeleteEventResponse{}
	res.Body.Message = "Event deleted"
	return res, nil
}
