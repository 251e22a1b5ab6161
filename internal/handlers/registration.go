package handlers

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/caterhub/caterhub-api/internal/catalog"
	"github.com/caterhub/caterhub-api/internal/models"
	"github.com/caterhub/caterhub-api/internal/notifier"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

// minimumAdultAge is the threshold below which a registrant counts as a minor.
const minimumAdultAge = 18

var errSlotsExceeded = errors.New("number of guests exceeds the available slots")

type RegistrationHandler struct {
	db       *gorm.DB
	resolver *catalog.Resolver
	notifier notifier.Notifier
}

func NewRegistrationHandler(db *gorm.DB, n notifier.Notifier) *RegistrationHandler {
	return &RegistrationHandler{db: db, resolver: catalog.NewResolver(db), notifier: n}
}

type RegisterGuestRequest struct {
	PublicID string `path:"publicID" doc:"Public event ID from the share link"`
	Body     struct {
		FirstName       string   `json:"first_name" minLength:"1"`
		LastName        string   `json:"last_name" minLength:"1"`
		Email           string   `json:"email" format:"email"`
		PhoneNumber     string   `json:"phone_number" minLength:"11" maxLength:"14"`
		Age             int      `json:"age" minimum:"1"`
		Nationality     string   `json:"nationality" minLength:"1"`
		ComingWithExtra bool     `json:"coming_with_extra,omitempty"`
		NumberOfExtra   int      `json:"number_of_extra,omitempty" minimum:"0"`
		NumberOfAdults  int      `json:"number_of_adults,omitempty" minimum:"0"`
		NumberOfMinors  int      `json:"number_of_minors,omitempty" minimum:"0"`
		ExtraType       []string `json:"extra_type,omitempty" enum:"ADULT,MINOR" doc:"Composition of the extra party"`
		PreferredDishes []string `json:"preferred_dishes"`
		PreferredDrinks []string `json:"preferred_drinks"`
		Dietary         string   `json:"dietary" enum:"VEGETARIAN,VEGAN,GLUTEN_FREE,LACTOSE_FREE,DAIRY_FREE,NUT_FREE,NONE"`
		MealSize        string   `json:"meal_size" enum:"SMALL_SIZE,REGULAR_SIZE,LARGE_SIZE,SMALL_SIZE_PLUS_TAKE_AWAY,REGULAR_SIZE_PLUS_TAKE_AWAY,LARGE_SIZE_PLUS_TAKE_AWAY"`
		Allergies       []string `json:"allergies,omitempty"`
	}
}

type RegisterGuestResponse struct {
	Body struct {
		Message string `json:"message"`
		GuestID uint   `json:"guest_id"`
	}
}

// HandleRegisterGuest admits a guest to an event. All business checks run
// before any write; the guest insert and the occupancy update commit as one
// transaction, with the slot check repeated inside the update statement so
// concurrent registrations cannot overfill the event.
func (h *RegistrationHandler) HandleRegisterGuest(ctx context.Context, input *RegisterGuestRequest) (*RegisterGuestResponse, error) {
	var event models.Event
	err := h.db.Where("public_id = ?", input.PublicID).First(&event).Error
	if err != nil || event.Date.Before(time.Now()) {
		return nil, huma.Error404NotFound("Event not found or has expired")
	}

	extraTypes := uniqueExtraTypes(input.Body.ExtraType)
	hasMinorExtras := false
	for _, t := range extraTypes {
		if t == models.ExtraTypeMinor {
			hasMinorExtras = true
		}
	}

	if (input.Body.Age < minimumAdultAge || hasMinorExtras) && !event.AllowMinor {
		return nil, huma.Error403Forbidden("No minors allowed for this event")
	}

	var existing models.Guest
	err = h.db.Where("LOWER(email) = ? AND LOWER(phone_number) = ? AND event_id = ?",
		catalog.Normalize(input.Body.Email), catalog.Normalize(input.Body.PhoneNumber), event.ID).
		First(&existing).Error
	if err == nil {
		return nil, huma.Error409Conflict("Guest has already registered for this event")
	}

	if len(extraTypes) == 2 && input.Body.NumberOfExtra < 2 {
		return nil, huma.Error400BadRequest("Number of extra is less than number of extra type selected")
	}

	if input.Body.NumberOfAdults+input.Body.NumberOfMinors > input.Body.NumberOfExtra {
		return nil, huma.Error400BadRequest("Invalid number of guests")
	}

	totalGuest := 1
	if input.Body.ComingWithExtra {
		totalGuest += input.Body.NumberOfExtra
	}

	if event.AllowExtraGuest {
		if event.MaxNumberOfExtraGuest != nil && input.Body.NumberOfExtra > *event.MaxNumberOfExtraGuest {
			return nil, huma.Error400BadRequest("Number of extra guests exceeds the maximum allowed")
		}
		if event.AvailableSlot != nil && event.SlotTaken+totalGuest > *event.AvailableSlot {
			return nil, huma.Error409Conflict("Number of guests exceeds the available slots")
		}
	} else {
		if totalGuest > event.MaxNumberOfGuests {
			return nil, huma.Error400BadRequest("Number of guests exceeds the maximum allowed for the event")
		}
		if input.Body.ComingWithExtra {
			return nil, huma.Error403Forbidden("No extra guests allowed for this event. Strictly by invitation!")
		}
	}

	allergies, err := h.resolver.UpsertAllergies(input.Body.Allergies)
	if err != nil {
		log.Printf("Resolve allergies failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while registering for the event")
	}

	meals, err := h.resolver.ResolveMeals(input.Body.PreferredDishes)
	if err != nil {
		log.Printf("Resolve meals failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while registering for the event")
	}

	drinks, err := h.resolver.ResolveDrinks(input.Body.PreferredDrinks)
	if err != nil {
		log.Printf("Resolve drinks failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while registering for the event")
	}

	guest := models.Guest{
		FirstName:       strings.TrimSpace(input.Body.FirstName),
		LastName:        strings.TrimSpace(input.Body.LastName),
		Email:           strings.TrimSpace(input.Body.Email),
		PhoneNumber:     strings.TrimSpace(input.Body.PhoneNumber),
		Age:             input.Body.Age,
		Nationality:     input.Body.Nationality,
		ComingWithExtra: input.Body.ComingWithExtra,
		NumberOfExtra:   input.Body.NumberOfExtra,
		NumberOfAdults:  input.Body.NumberOfAdults,
		NumberOfMinors:  input.Body.NumberOfMinors,
		ExtraType:       strings.Join(extraTypes, ", "),
		Dietary:         input.Body.Dietary,
		MealSize:        input.Body.MealSize,
		EventID:         event.ID,
		Allergies:       allergies,
		PreferredMeals:  meals,
		PreferredDrinks: drinks,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&guest).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Event{}).
			Where("id = ?", event.ID).
			Where("available_slot IS NULL OR slot_taken + ? <= available_slot", totalGuest).
			Updates(map[string]interface{}{
				"slot_taken": gorm.Expr("slot_taken + ?", totalGuest),
				"available_slot": gorm.Expr(
					"CASE WHEN available_slot IS NULL THEN max_number_of_guests - slot_taken - ? ELSE available_slot - ? END",
					totalGuest, totalGuest),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errSlotsExceeded
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errSlotsExceeded) {
			return nil, huma.Error409Conflict("Number of guests exceeds the available slots")
		}
		log.Printf("Guest registration failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while registering for the event")
	}

	if h.notifier != nil {
		if err := h.notifier.NotifyGuestRegistration(event, guest); err != nil {
			log.Printf("Registration notification failed: %v", err)
		}
	}

	res := &RegisterGuestResponse{}
	res.Body.Message = "Registration successful"
	res.Body.GuestID = guest.ID
	return res, nil
}

// uniqueExtraTypes deduplicates the extra-type tags, keeping order.
func uniqueExtraTypes(tags []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, t := range tags {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

type GuestSummary struct {
	ID              uint     `json:"id"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	FullName        string   `json:"full_name"`
	Email           string   `json:"email"`
	PhoneNumber     string   `json:"phone_number"`
	Age             int      `json:"age"`
	Nationality     string   `json:"nationality"`
	ComingWithExtra bool     `json:"coming_with_extra"`
	NumberOfExtra   int      `json:"number_of_extra"`
	NumberOfAdults  int      `json:"number_of_adults"`
	NumberOfMinors  int      `json:"number_of_minors"`
	ExtraType       string   `json:"extra_type"`
	Dietary         string   `json:"dietary"`
	MealSize        string   `json:"meal_size"`
	PreferredDishes []string `json:"preferred_dishes"`
	PreferredDrinks []string `json:"preferred_drinks"`
	Allergies       []string `json:"allergies"`
}

type ListEventGuestsRequest struct {
	PublicID string `path:"publicID"`
}

type ListEventGuestsResponse struct {
	Body struct {
		Guests []GuestSummary `json:"guests"`
	}
}

func (h *RegistrationHandler) HandleListEventGuests(ctx context.Context, input *ListEventGuestsRequest) (*ListEventGuestsResponse, error) {
	var event models.Event
	if err := h.db.Where("public_id = ?", input.PublicID).First(&event).Error; err != nil {
		return nil, huma.Error404NotFound("Event not found")
	}

	var guests []models.Guest
	err := h.db.Preload("Allergies").Preload("PreferredMeals").Preload("PreferredDrinks").
		Where("event_id = ?", event.ID).Find(&guests).Error
	if err != nil {
		log.Printf("List event guests failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while fetching the guests")
	}

	res := &ListEventGuestsResponse{}
	res.Body.Guests = []GuestSummary{}
	for _, g := range guests {
		summary := GuestSummary{
			ID:              g.ID,
			FirstName:       g.FirstName,
			LastName:        g.LastName,
			FullName:        g.FirstName + " " + g.LastName,
			Email:           g.Email,
			PhoneNumber:     g.PhoneNumber,
			Age:             g.Age,
			Nationality:     g.Nationality,
			ComingWithExtra: g.ComingWithExtra,
			NumberOfExtra:   g.NumberOfExtra,
			NumberOfAdults:  g.NumberOfAdults,
			NumberOfMinors:  g.NumberOfMinors,
			ExtraType:       g.ExtraType,
			Dietary:         g.Dietary,
			MealSize:        g.MealSize,
			PreferredDishes: []string{},
			PreferredDrinks: []string{},
			Allergies:       []string{},
		}
		for _, m := range g.PreferredMeals {
			summary.PreferredDishes = append(summary.PreferredDishes, m.Name)
		}
		for _, d := range g.PreferredDrinks {
			summary.PreferredDrinks = append(summary.PreferredDrinks, d.Name)
		}
		for _, a := range g.Allergies {
			summary.Allergies = append(summary.Allergies, a.Name)
		}
		res.Body.Guests = append(res.Body.Guests, summary)
	}
	return res, nil
}

type ListAllergiesResponse struct {
	Body struct {
		Allergies []string `json:"allergies"`
	}
}

func (h *RegistrationHandler) HandleListAllergies(ctx context.Context, input *struct{}) (*ListAllergiesResponse, error) {
	var allergies []models.Allergy
	if err := h.db.Find(&allergies).Error; err != nil {
		log.Printf("List allergies failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while fetching the allergies")
	}

	res := &ListAllergiesResponse{}
	res.Body.Allergies = []string{}
	for _, a := range allergies {
		res.Body.Allergies = append(res.Body.Allergies, a.Name)
	}
	return res, nil
}

type CreateAllergyRequest struct {
	Body struct {
		Name string `json:"name" minLength:"1"`
	}
}

type CreateAllergyResponse struct {
	Body struct {
		Name string `json:"name"`
	}
}

func (h *RegistrationHandler) HandleCreateAllergy(ctx context.Context, input *CreateAllergyRequest) (*CreateAllergyResponse, error) {
	name := strings.TrimSpace(input.Body.Name)

	var existing models.Allergy
	if err := h.db.Where("LOWER(name) = ?", catalog.Normalize(name)).First(&existing).Error; err == nil {
		return nil, huma.Error409Conflict("Allergy already exists")
	}

	allergy := models.Allergy{Name: name}
	if err := h.db.Create(&allergy).Error; err != nil {
		log.Printf("Create allergy failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while creating the allergy")
	}

	res := &CreateAllergyResponse{}
	res.Body.Name = allergy.Name
	return res, nil
}
