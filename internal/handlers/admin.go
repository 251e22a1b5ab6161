package handlers

import (
	"context"
	"log"
	"time"

	"github.com/caterhub/caterhub-api/internal/auth"
	"github.com/caterhub/caterhub-api/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

// AdminHandler covers user oversight: listing, role assignment, and deletion,
// with the super-admin tier able to manage other admins.
type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

func (h *AdminHandler) adminProfile(caller auth.Caller) (*models.AdminProfile, error) {
	var profile models.AdminProfile
	if err := h.db.Where("user_id = ?", caller.UserID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

type UserSummary struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type ListUsersResponse struct {
	Body struct {
		Users []UserSummary `json:"users"`
	}
}

func (h *AdminHandler) HandleListUsers(ctx context.Context, input *struct{}) (*ListUsersResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if !caller.IsAdmin() {
		return nil, huma.Error403Forbidden("Not authorized")
	}

	adminProfile, err := h.adminProfile(caller)
	if err != nil {
		return nil, huma.Error404NotFound("Admin profile not found")
	}

	var users []models.User
	if err := h.db.Order("name ASC").Find(&users).Error; err != nil {
		log.Printf("List users failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while fetching users")
	}

	var adminProfiles []models.AdminProfile
	if err := h.db.Find(&adminProfiles).Error; err != nil {
		log.Printf("List admin profiles failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while fetching users")
	}
	adminTier := map[uint]string{}
	for _, p := range adminProfiles {
		adminTier[p.UserID] = p.Type
	}

	res := &ListUsersResponse{}
	res.Body.Users = []UserSummary{}
	for _, user := range users {
		tier, isAdminUser := adminTier[user.ID]
		// Super admins never appear in listings; plain admins additionally
		// cannot see other admins.
		if tier == models.AdminTypeSuper {
			continue
		}
		if adminProfile.Type == models.AdminTypeAdmin && isAdminUser {
			continue
		}
		res.Body.Users = append(res.Body.Users, UserSummary{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		})
	}
	return res, nil
}

type GetUserRequest struct {
	UserID uint `path:"userID"`
}

type GetUserResponse struct {
	Body UserSummary
}

func (h *AdminHandler) HandleGetUser(ctx context.Context, input *GetUserRequest) (*GetUserResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if !caller.IsAdmin() {
		return nil, huma.Error403Forbidden("Not authorized")
	}

	var user models.User
	if err := h.db.First(&user, input.UserID).Error; err != nil {
		return nil, huma.Error404NotFound("User not found")
	}

	return &GetUserResponse{Body: UserSummary{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}}, nil
}

type AssignChefRoleRequest struct {
	UserID uint `path:"userID"`
	Body   struct {
		ChefType string `json:"chef_type" enum:"EXECUTIVE_CHEF,EXECUTIVE_SOUS_CHEF,SOUS_CHEF,CHEF_DE_PARTIE,DEMI_CHEF_DE_PARTIE,COMMI_1,COMMI_2"`
	}
}

type AssignRoleResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *AdminHandler) HandleAssignChefRole(ctx context.Context, input *AssignChefRoleRequest) (*AssignRoleResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if !caller.IsAdmin() {
		return nil, huma.Error403Forbidden("Not authorized")
	}

	var user models.User
	if err := h.db.First(&user, input.UserID).Error; err != nil {
		return nil, huma.Error404NotFound("User not found")
	}

	err := h.db.Model(&user).Updates(map[string]interface{}{
		"role":      models.RoleChef,
		"chef_type": input.Body.ChefType,
	}).Error
	if err != nil {
		log.Printf("Assign chef role failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while assigning the chef role")
	}

	res := &AssignRoleResponse{}
	res.Body.Message = "Chef role assigned"
	return res, nil
}

type AssignUserRoleRequest struct {
	UserID uint `path:"userID"`
	Body   struct {
		Role string `json:"role" enum:"USER,ORGANIZER,CHEF,ADMIN"`
	}
}

func (h *AdminHandler) HandleAssignUserRole(ctx context.Context, input *AssignUserRoleRequest) (*AssignRoleResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if !caller.IsAdmin() {
		return nil, huma.Error403Forbidden("Not authorized")
	}

	adminProfile, err := h.adminProfile(caller)
	if err != nil {
		return nil, huma.Error404NotFound("Admin profile not found")
	}

	if input.Body.Role == models.RoleAdmin && adminProfile.Type != models.AdminTypeSuper {
		return nil, huma.Error403Forbidden("Only super admins can assign the admin role")
	}

	var user models.User
	if err := h.db.First(&user, input.UserID).Error; err != nil {
		return nil, huma.Error404NotFound("User not found")
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("role", input.Body.Role).Error; err != nil {
			return err
		}
		if input.Body.Role == models.RoleAdmin {
			var profile models.AdminProfile
			if err := tx.FirstOrCreate(&profile, models.AdminProfile{
				UserID: user.ID,
				Type:   models.AdminTypeAdmin,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Assign user role failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while assigning the user role")
	}

	res := &AssignRoleResponse{}
	res.Body.Message = "User role assigned"
	return res, nil
}

type DeleteUserRequest struct {
	UserID uint `path:"userID"`
}

type DeleteUserResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *AdminHandler) HandleDeleteUser(ctx context.Context, input *DeleteUserRequest) (*DeleteUserResponse, error) {
	caller, ok := auth.CallerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if !caller.IsAdmin() {
		return nil, huma.Error403Forbidden("Not authorized")
	}

	adminProfile, err := h.adminProfile(caller)
	if err != nil {
		return nil, huma.Error404NotFound("Admin profile not found")
	}

	var user models.User
	if err := h.db.First(&user, input.UserID).Error; err != nil {
		return nil, huma.Error404NotFound("User not found")
	}

	var targetAdmin models.AdminProfile
	targetIsAdmin := h.db.Where("user_id = ?", user.ID).First(&targetAdmin).Error == nil
	if adminProfile.Type == models.AdminTypeAdmin && targetIsAdmin {
		return nil, huma.Error403Forbidden("You do not have permission to delete other admins")
	}

	if err := h.db.Delete(&user).Error; err != nil {
		log.Printf("Delete user failed: %v", err)
		return nil, huma.Error500InternalServerError("An error occurred while deleting the user")
	}

	res := &DeleteUserResponse{}
	res.Body.Message = "User deleted"
	return res, nil
}
