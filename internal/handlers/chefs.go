package handlers

import (
	"context"
	"log"
	"strings"

	"github.com/caterhub/caterhub-api/internal/auth"
	"github.com/caterhub/caterhub-api/internal/catalog"
	"github.com/caterhub/caterhub-api/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

type ChefHandler struct {
	db       *gorm.DB
	resolver *catalog.Resolver
}

func NewChefHandler(db *gorm.DB) *ChefHandler {
	return &ChefHandler{db: db, resolver: catalog.NewResolver(db)}
}

// resolveCuisines maps cuisine names to rows, dropping unknown names.
func (h *ChefHandler) resolveCuisines(names []string) ([]models.Cuisine, error) {
	var cuisines []models.Cuisine
	for _, name := range names {
		var cuisine models.Cuisine
		err := h.db.Where("LOWER(name) = ?", catalog.Normalize(name)).First(&cuisine).Error
		if err != nil {
			continue
		}
		cuisines = append(cuisines, cuisine)
	}
	return cuisines, nil
}

type ChefProfileSummary struct {
	ID          uint     `json:"id"`
	UserID      uint     `json:"user_id"`
	Name        string   `json:"name"`
	Nationality string   `json:"nationality"`
	Specialty   string   `json:"specialty"`
	Role        string   `json:"role"`
	Department  string   `json:"department"`
	Cuisines    []string `json:"cuisines"`
}

func chefProfileSummary(profile models.ChefProfile) ChefProfileSummary {
	summary := ChefProfileSummary{
		ID:          profile.ID,
		UserID:      profile.UserID,
		Name:        profile.User.Name,
		Nationality: profile.Nationality,
		Specialty:   profile.Specialty,
		Role:        profile.Role,
		Department:  profile.Department,
		Cuisines:    []string{},
	}
	for _, c := range profile.Cuisines {
		summary.Cuisines = append(summary.Cuisines, c.Name)
	}
	return summary
}

type CreateChefProfileRequest struct {
	Body struct {
		Nationality string   `json:"nationality" minLength:"1"`
		Specialty   string   `json:"specialty" minLength:"1"`
		Cuisines    []string `json:"cuisines"`
	}
}

type ChefProfileResponse struct {
	Body ChefProfileSummary
}

func (h *ChefHandler) HandleCreateChefProfile(ctx context.Context, input *CreateChefProfileRequest) (*ChefProfileResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if !caller.IsChef() {
		return nil, huma.Error403Forbidden("Not authorized")
	}

	var existing models.ChefProfile
	if err := h.db.Where("user_id = ?", caller.UserID).First(&existing).Error; err == nil {
		return nil, huma.Error409Conflict("Chef profile already exists")
	}

	cuisines, _ := h.resolveCuisines(input.Body.Cuisines)

	profile := models.ChefProfile{
		UserID:      caller.UserID,
		Nationality: input.Body.Nationality,
		Specialty:   input.Body.Specialty,
		Role:        caller.ChefType,
		Cuisines:    cuisines,
	}
	if err := h.db.Create(&profile).Error; err != nil {
		log.Printf("Create chef profile failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while creating the chef profile")
	}

	if err := h.db.Preload("User").Preload("Cuisines").First(&profile, profile.ID).Error; err != nil {
		log.Printf("Reload chef profile failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while creating the chef profile")
	}

	return &ChefProfileResponse{Body: chefProfileSummary(profile)}, nil
}

func (h *ChefHandler) HandleGetMyChefProfile(ctx context.Context, input *struct{}) (*ChefProfileResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	var profile models.ChefProfile
	err := h.db.Preload("User").Preload("Cuisines").Where("user_id = ?", caller.UserID).First(&profile).Error
	if err != nil {
		return nil, huma.Error404NotFound("Chef profile not found")
	}

	return &ChefProfileResponse{Body: chefProfileSummary(profile)}, nil
}

type GetChefProfileRequest struct {
	ChefID uint `path:"chefID"`
}

// HandleGetChefProfile lets an admin fetch any chef, and an executive chef
// fetch any chef below the executive tier.
func (h *ChefHandler) HandleGetChefProfile(ctx context.Context, input *GetChefProfileRequest) (*ChefProfileResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	query := h.db.Preload("User").Preload("Cuisines")
	switch {
	case caller.IsAdmin():
		// no restriction
	case caller.ChefType == models.ChefTypeExecutive:
		query = query.Where("role <> ?", models.ChefTypeExecutive)
	default:
		return nil, huma.Error403Forbidden("Not authorized")
	}

	var profile models.ChefProfile
	if err := query.First(&profile, input.ChefID).Error; err != nil {
		return nil, huma.Error404NotFound("Chef profile not found")
	}

	return &ChefProfileResponse{Body: chefProfileSummary(profile)}, nil
}

type ListChefProfilesResponse struct {
	Body struct {
		Chefs []ChefProfileSummary `json:"chefs"`
	}
}

func (h *ChefHandler) HandleListChefProfiles(ctx context.Context, input *struct{}) (*ListChefProfilesResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	query := h.db.Preload("User").Preload("Cuisines")
	switch {
	case caller.IsAdmin():
		// no restriction
	case caller.ChefType == models.ChefTypeExecutive:
		query = query.Where("role <> ?", models.ChefTypeExecutive)
	default:
		return nil, huma.Error403Forbidden("Not authorized")
	}

	var profiles []models.ChefProfile
	if err := query.Find(&profiles).Error; err != nil {
		log.Printf("List chef profiles failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while fetching the chef profiles")
	}

	res := &ListChefProfilesResponse{}
	res.Body.Chefs = []ChefProfileSummary{}
	for _, p := range profiles {
		res.Body.Chefs = append(res.Body.Chefs, chefProfileSummary(p))
	}
	return res, nil
}

type UpdateChefProfileRequest struct {
	Body struct {
		Nationality string   `json:"nationality,omitempty"`
		Specialty   string   `json:"specialty,omitempty"`
		Cuisines    []string `json:"cuisines,omitempty"`
	}
}

type UpdateChefProfileResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *ChefHandler) HandleUpdateChefProfile(ctx context.Context, input *UpdateChefProfileRequest) (*UpdateChefProfileResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	var profile models.ChefProfile
	if err := h.db.Where("user_id = ?", caller.UserID).First(&profile).Error; err != nil {
		return nil, huma.Error404NotFound("Chef profile not found")
	}

	updates := map[string]interface{}{}
	if input.Body.Nationality != "" {
		updates["nationality"] = input.Body.Nationality
	}
	if input.Body.Specialty != "" {
		updates["specialty"] = input.Body.Specialty
	}
	if len(updates) > 0 {
		if err := h.db.Model(&profile).Updates(updates).Error; err != nil {
			log.Printf("Update chef profile failed: %v", err)
			return nil, huma.Error500InternalServerError("An error occurred while updating the chef profile")
		}
	}

	if len(input.Body.Cuisines) > 0 {
		cuisines, _ := h.resolveCuisines(input.Body.Cuisines)
		if err := h.db.Model(&profile).Association("Cuisines").Replace(cuisines); err != nil {
			log.Printf("Replace chef cuisines failed: %v", err)
		}
	}

	res := &UpdateChefProfileResponse{}
	res.Body.Message = "Chef profile updated"
	return res, nil
}

type DeleteChefProfileResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *ChefHandler) HandleDeleteChefProfile(ctx context.Context, input *struct{}) (*DeleteChefProfileResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	var profile models.ChefProfile
	if err := h.db.Where("user_id = ?", caller.UserID).First(&profile).Error; err != nil {
		return nil, huma.Error404NotFound("Chef profile not found")
	}

	if err := h.db.Delete(&profile).Error; err != nil {
		log.Printf("Delete chef profile failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while deleting the chef profile")
	}

	res := &DeleteChefProfileResponse{}
	res.Body.Message = "Chef profile deleted"
	return res, nil
}

type AssignDepartmentRequest struct {
	ChefID uint `path:"chefID"`
	Body   struct {
		Department string `json:"department" enum:"HOT_KITCHEN,COLD_KITCHEN,BAKERY,PASTRY"`
	}
}

type AssignDepartmentResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *ChefHandler) HandleAssignDepartment(ctx context.Context, input *AssignDepartmentRequest) (*AssignDepartmentResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if !caller.IsAdmin() && caller.ChefType != models.ChefTypeExecutive {
		return nil, huma.Error403Forbidden("Not authorized")
	}

	var profile models.ChefProfile
	if err := h.db.First(&profile, input.ChefID).Error; err != nil {
		return nil, huma.Error404NotFound("Chef profile not found")
	}

	if err := h.db.Model(&profile).Update("department", input.Body.Department).Error; err != nil {
		log.Printf("Assign department failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while assigning the department")
	}

	res := &AssignDepartmentResponse{}
	res.Body.Message = "Department assigned"
	return res, nil
}

type CreateCuisineRequest struct {
	Body struct {
		Name string `json:"name" minLength:"1"`
	}
}

type CreateCuisineResponse struct {
	Body struct {
		Name string `json:"name"`
	}
}

func (h *ChefHandler) HandleCreateCuisine(ctx context.Context, input *CreateCuisineRequest) (*CreateCuisineResponse, error) {
	if _, ok := auth.CallerFromContext(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	name := strings.TrimSpace(input.Body.Name)
	var existing models.Cuisine
	if err := h.db.Where("LOWER(name) = ?", catalog.Normalize(name)).First(&existing).Error; err == nil {
		return nil, huma.Error409Conflict("Cuisine already exists")
	}

	cuisine := models.Cuisine{Name: name}
	if err := h.db.Create(&cuisine).Error; err != nil {
		log.Printf("Create cuisine failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while creating the cuisine")
	}

	res := &CreateCuisineResponse{}
	res.Body.Name = cuisine.Name
	return res, nil
}

func (h *ChefHandler) HandleListCuisines(ctx context.Context, input *struct{}) (*ListNamesResponse, error) {
	var cuisines []models.Cuisine
	if err := h.db.Find(&cuisines).Error; err != nil {
		log.Printf("List cuisines failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while fetching the cuisines")
	}

	res := &ListNamesResponse{}
	res.Body.Names = []string{}
	for _, c := range cuisines {
		res.Body.Names = append(res.Body.Names, c.Name)
	}
	return res, nil
}
