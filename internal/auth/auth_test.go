package auth

import (
	"context"
	"testing"

	"github.com/caterhub/caterhub-api/internal/config"
	"github.com/caterhub/caterhub-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.APIKey{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func TestHandleSignupAndLogin(t *testing.T) {
	db := newAuthTestDB(t)
	cfg := &config.Config{JWTSecret: "test-secret"}
	handler := NewAuthHandler(cfg, db)

	signup := &SignupRequest{}
	signup.Body.Name = "Ada Obi"
	signup.Body.Email = "Ada@Example.com"
	signup.Body.Password = "correct-horse"

	if _, err := handler.HandleSignup(context.Background(), signup); err != nil {
		t.Fatalf("HandleSignup returned error: %v", err)
	}

	var user models.User
	if err := db.Where("email = ?", "ada@example.com").First(&user).Error; err != nil {
		t.Fatalf("expected user stored with lowercased email: %v", err)
	}
	if user.Role != models.RoleUser {
		t.Errorf("new accounts start as USER, got %s", user.Role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("correct-horse")); err != nil {
		t.Errorf("stored hash does not match the password: %v", err)
	}

	t.Run("DuplicateEmail", func(t *testing.T) {
		if _, err := handler.HandleSignup(context.Background(), signup); err == nil {
			t.Fatal("expected duplicate signup to be rejected")
		}
	})

	t.Run("LoginSuccess", func(t *testing.T) {
		login := &LoginRequest{}
		login.Body.Email = "ada@example.com"
		login.Body.Password = "correct-horse"
		resp, err := handler.HandleLogin(context.Background(), login)
		if err != nil {
			t.Fatalf("HandleLogin returned error: %v", err)
		}
		if resp.SetCookie.Name != "auth_token" || resp.SetCookie.Value == "" {
			t.Errorf("expected an auth_token cookie, got %+v", resp.SetCookie)
		}
		userID, err := handler.ParseToken(resp.SetCookie.Value)
		if err != nil {
			t.Fatalf("login token failed to parse: %v", err)
		}
		if userID != user.ID {
			t.Errorf("token carries user %d, want %d", userID, user.ID)
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		login := &LoginRequest{}
		login.Body.Email = "ada@example.com"
		login.Body.Password = "wrong"
		if _, err := handler.HandleLogin(context.Background(), login); err == nil {
			t.Fatal("expected login with a wrong password to fail")
		}
	})
}

func TestGenerateAndParseToken(t *testing.T) {
	db := newAuthTestDB(t)
	handler := NewAuthHandler(&config.Config{JWTSecret: "test-secret"}, db)

	token, err := handler.GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	userID, err := handler.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if userID != 42 {
		t.Errorf("expected user ID 42, got %d", userID)
	}

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewAuthHandler(&config.Config{JWTSecret: "other-secret"}, db)
		if _, err := other.ParseToken(token); err == nil {
			t.Fatal("expected token signed with another secret to be rejected")
		}
	})

	t.Run("Garbage", func(t *testing.T) {
		if _, err := handler.ParseToken("not-a-token"); err == nil {
			t.Fatal("expected garbage input to be rejected")
		}
	})
}

func TestHandleMe(t *testing.T) {
	db := newAuthTestDB(t)
	handler := NewAuthHandler(&config.Config{JWTSecret: "test-secret"}, db)

	user := models.User{Name: "Ada Obi", Email: "ada@example.com", Role: models.RoleChef, ChefType: models.ChefTypeSous}
	db.Create(&user)

	t.Run("Authenticated", func(t *testing.T) {
		ctx := ContextWithCaller(context.Background(), Caller{UserID: user.ID, Role: user.Role, ChefType: user.ChefType})
		resp, err := handler.HandleMe(ctx, &struct{}{})
		if err != nil {
			t.Fatalf("HandleMe returned error: %v", err)
		}
		if resp.Body.Email != user.Email {
			t.Errorf("expected email %s, got %s", user.Email, resp.Body.Email)
		}
		if resp.Body.ChefType != models.ChefTypeSous {
			t.Errorf("expected chef type %s, got %s", models.ChefTypeSous, resp.Body.ChefType)
		}
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		if _, err := handler.HandleMe(context.Background(), &struct{}{}); err == nil {
			t.Fatal("expected error for unauthenticated request, got nil")
		}
	})
}

func TestHandleUpdateProfile(t *testing.T) {
	db := newAuthTestDB(t)
	handler := NewAuthHandler(&config.Config{JWTSecret: "test-secret"}, db)

	user := models.User{Name: "Ada Obi", Email: "ada@example.com", Role: models.RoleUser}
	db.Create(&user)

	ctx := ContextWithCaller(context.Background(), Caller{UserID: user.ID, Role: user.Role})
	req := &UpdateProfileRequest{}
	req.Body.Name = "Ada O."
	req.Body.Email = "New@Example.com"

	if _, err := handler.HandleUpdateProfile(ctx, req); err != nil {
		t.Fatalf("HandleUpdateProfile returned error: %v", err)
	}

	var updated models.User
	db.First(&updated, user.ID)
	if updated.Name != "Ada O." {
		t.Errorf("expected renamed user, got %q", updated.Name)
	}
	if updated.Email != "new@example.com" {
		t.Errorf("expected lowercased email, got %q", updated.Email)
	}
}
