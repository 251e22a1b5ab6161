package handlers

import (
	"net/http"

	"github.com/caterhub/caterhub-api/internal/auth"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Auth         *auth.AuthHandler
	Events       *EventHandler
	Catalog      *CatalogHandler
	Registration *RegistrationHandler
	Planning     *PlanningHandler
	Inventory    *InventoryHandler
	Chefs        *ChefHandler
	Admin        *AdminHandler
	APIKeys      *APIKeyHandler
}

func RegisterRoutes(r *chi.Mux, h Handlers) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("CaterHub API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: "auth_token",
		},
		"apiKeyAuth": {
			Type: "apiKey",
			In:   "header",
			Name: "X-API-KEY",
		},
	}
	api := humachi.New(r, config)

	secured := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"cookieAuth": {}}, {"apiKeyAuth": {}}}
	}

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Get("/auth/google/login", h.Auth.HandleGoogleLogin)
	r.Get("/auth/google/callback", h.Auth.HandleGoogleCallback)

	huma.Post(api, "/auth/signup", h.Auth.HandleSignup)
	huma.Post(api, "/auth/login", h.Auth.HandleLogin)
	huma.Post(api, "/auth/logout", h.Auth.HandleLogout)

	// Guests reach these from the event share link without an account.
	huma.Get(api, "/events/{publicID}", h.Events.HandleGetEvent)
	huma.Post(api, "/events/{publicID}/register", h.Registration.HandleRegisterGuest)
	huma.Get(api, "/allergies", h.Registration.HandleListAllergies)
	huma.Get(api, "/meal-categories", h.Catalog.HandleListMealCategories)
	huma.Get(api, "/drink-categories", h.Catalog.HandleListDrinkCategories)
	huma.Get(api, "/cuisines", h.Chefs.HandleListCuisines)

	// Protected routes. The group gets its own adapter so the auth middleware
	// applies to operations registered inside it; doc routes are already
	// served by the outer adapter.
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.AuthMiddleware)
		groupConfig := config
		groupConfig.OpenAPIPath = ""
		groupConfig.DocsPath = ""
		groupConfig.SchemasPath = ""
		api := humachi.New(r, groupConfig)

		huma.Get(api, "/me", h.Auth.HandleMe, secured)
		huma.Patch(api, "/me", h.Auth.HandleUpdateProfile, secured)

		huma.Post(api, "/events", h.Events.HandleCreateEvent, secured)
		huma.Get(api, "/events", h.Events.HandleListEvents, secured)
		huma.Get(api, "/organizer/events", h.Events.HandleListOrganizerEvents, secured)
		huma.Patch(api, "/events/{eventID}", h.Events.HandleUpdateEvent, secured)
		huma.Delete(api, "/events/{eventID}", h.Events.HandleDeleteEvent, secured)
		huma.Get(api, "/events/{publicID}/guests", h.Registration.HandleListEventGuests, secured)

		huma.Post(api, "/allergies", h.Registration.HandleCreateAllergy, secured)
		huma.Post(api, "/meal-categories", h.Catalog.HandleCreateMealCategory, secured)
		huma.Post(api, "/drink-categories", h.Catalog.HandleCreateDrinkCategory, secured)
		huma.Post(api, "/meals", h.Catalog.HandleCreateMeal, secured)
		huma.Get(api, "/meals", h.Catalog.HandleListMeals, secured)
		huma.Patch(api, "/meals/{mealID}", h.Catalog.HandleUpdateMeal, secured)
		huma.Post(api, "/drinks", h.Catalog.HandleCreateDrink, secured)
		huma.Get(api, "/drinks", h.Catalog.HandleListDrinks, secured)
		huma.Patch(api, "/drinks/{drinkID}", h.Catalog.HandleUpdateDrink, secured)

		huma.Post(api, "/events/{eventID}/meal-plans", h.Planning.HandleCreateMealPlan, secured)
		huma.Get(api, "/events/{eventID}/meal-plans", h.Planning.HandleListMealPlans, secured)
		huma.Patch(api, "/meal-plans/{mealPlanID}/ingredient-usage", h.Planning.HandleUpdateIngredientUsage, secured)

		huma.Post(api, "/inventory", h.Inventory.HandleCreateInventory, secured)
		huma.Get(api, "/inventory", h.Inventory.HandleListInventories, secured)
		huma.Get(api, "/inventory/{inventoryID}", h.Inventory.HandleGetInventory, secured)
		huma.Patch(api, "/inventory/{inventoryID}", h.Inventory.HandleUpdateInventory, secured)
		huma.Delete(api, "/inventory/{inventoryID}", h.Inventory.HandleDeleteInventory, secured)

		huma.Post(api, "/chefs/profile", h.Chefs.HandleCreateChefProfile, secured)
		huma.Get(api, "/chefs/profile", h.Chefs.HandleGetMyChefProfile, secured)
		huma.Patch(api, "/chefs/profile", h.Chefs.HandleUpdateChefProfile, secured)
		huma.Delete(api, "/chefs/profile", h.Chefs.HandleDeleteChefProfile, secured)
		huma.Get(api, "/chefs", h.Chefs.HandleListChefProfiles, secured)
		huma.Get(api, "/chefs/{chefID}", h.Chefs.HandleGetChefProfile, secured)
		huma.Post(api, "/chefs/{chefID}/department", h.Chefs.HandleAssignDepartment, secured)
		huma.Post(api, "/cuisines", h.Chefs.HandleCreateCuisine, secured)

		huma.Get(api, "/admin/users", h.Admin.HandleListUsers, secured)
		huma.Get(api, "/admin/users/{userID}", h.Admin.HandleGetUser, secured)
		huma.Post(api, "/admin/users/{userID}/chef-role", h.Admin.HandleAssignChefRole, secured)
		huma.Post(api, "/admin/users/{userID}/role", h.Admin.HandleAssignUserRole, secured)
		huma.Delete(api, "/admin/users/{userID}", h.Admin.HandleDeleteUser, secured)

		huma.Post(api, "/api-keys", h.APIKeys.HandleCreate, secured)
		huma.Get(api, "/api-keys", h.APIKeys.HandleList, secured)
		huma.Delete(api, "/api-keys/{id}", h.APIKeys.HandleDelete, secured)
	})
}
