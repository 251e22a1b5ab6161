package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/caterhub/caterhub-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const callerKey contextKey = "caller"

// Caller is the authenticated identity every protected operation receives.
// It is resolved once by the middleware so handlers never consult ambient
// session state.
type Caller struct {
	UserID   uint
	Role     string
	ChefType string
}

// IsChef reports whether the caller holds the chef role.
func (c Caller) IsChef() bool {
	return c.Role == models.RoleChef
}

// IsExecutiveChef reports whether the caller may manage meal plans and
// inventory: the chef role, with either no tier assigned yet or the top
// supervisory tier.
func (c Caller) IsExecutiveChef() bool {
	return c.Role == models.RoleChef &&
		(c.ChefType == "" || c.ChefType == models.ChefTypeExecutive)
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// ContextWithCaller returns ctx with the caller attached. Exposed for tests.
func ContextWithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// CallerFromContext extracts the caller set by the middleware.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(callerKey).(Caller)
	return caller, ok
}

func (h *AuthHandler) callerForUser(userID uint) (Caller, error) {
	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return Caller{}, err
	}
	return Caller{UserID: user.ID, Role: user.Role, ChefType: user.ChefType}, nil
}

func (h *AuthHandler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Check for API Key Header
		apiKey := r.Header.Get("X-API-KEY")
		if apiKey != "" {
			var keyModel models.APIKey
			if err := h.db.Where("key = ?", apiKey).First(&keyModel).Error; err == nil {
				if keyModel.ExpiresAt != nil && time.Now().After(*keyModel.ExpiresAt) {
					http.Error(w, "Unauthorized: API Key expired", http.StatusUnauthorized)
					return
				}

				h.db.Model(&keyModel).Update("last_used_at", time.Now())

				caller, err := h.callerForUser(keyModel.UserID)
				if err != nil {
					http.Error(w, "Unauthorized", http.StatusUnauthorized)
					return
				}
				next.ServeHTTP(w, r.WithContext(ContextWithCaller(r.Context(), caller)))
				return
			}
		}

		// 2. Fallback to JWT Cookie
		cookie, err := r.Cookie("auth_token")
		if err != nil {
			if err == http.ErrNoCookie {
				http.Error(w, "Unauthorized: No token found", http.StatusUnauthorized)
				return
			}
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		userID, err := h.ParseToken(cookie.Value)
		if err != nil {
			http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
			return
		}

		caller, err := h.callerForUser(userID)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		// Sliding session: refresh the token once it is past half its duration
		if expiry, parseErr := tokenExpiry(cookie.Value); parseErr == nil {
			remaining := time.Until(expiry)
			if remaining < TokenDuration/2 {
				if newToken, genErr := h.GenerateToken(userID); genErr == nil {
					http.SetCookie(w, &http.Cookie{
						Name:     "auth_token",
						Value:    newToken,
						Expires:  time.Now().Add(TokenDuration),
						HttpOnly: true,
						Path:     "/",
					})
				}
			}
		}

		next.ServeHTTP(w, r.WithContext(ContextWithCaller(r.Context(), caller)))
	})
}

// tokenExpiry reads the exp claim without re-verifying the signature; the
// token has already been validated by ParseToken at this point.
func tokenExpiry(tokenString string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid token claims")
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, fmt.Errorf("missing exp claim")
	}
	return time.Unix(int64(exp), 0), nil
}
