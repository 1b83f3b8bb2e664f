package middleware

import (
	"context"
	"net/http"
	"strings"

	helper "github.com/02priyeshraj/Restaurant_Ordering_Backend/helper"
)

// Context keys to store user information
type contextKey string

const (
	UserIDKey contextKey = "user_id"
	NameKey   contextKey = "name"
	EmailKey  contextKey = "email"
	RoleKey   contextKey = "role"
)

func bearerToken(r *http.Request) (string, bool) {
	clientToken := r.Header.Get("Authorization")
	if clientToken == "" {
		return "", false
	}
	tokenParts := strings.Split(clientToken, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", false
	}
	return tokenParts[1], true
}

func withClaims(r *http.Request, claims *helper.SignedDetails) *http.Request {
	ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, NameKey, claims.Name)
	ctx = context.WithValue(ctx, EmailKey, claims.Email)
	ctx = context.WithValue(ctx, RoleKey, claims.Role)
	return r.WithContext(ctx)
}

// Authentication rejects requests without a valid bearer token.
func Authentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := bearerToken(r)
		if !ok {
			http.Error(w, "No valid Authorization header provided", http.StatusUnauthorized)
			return
		}

		claims, err := helper.ValidateToken(tokenString)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, withClaims(r, claims))
	})
}

// OptionalAuthentication attaches the actor identity when a valid token is
// present but lets the request through without one. Order creation uses this:
// guest orders carry no owning user.
func OptionalAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tokenString, ok := bearerToken(r); ok {
			if claims, err := helper.ValidateToken(tokenString); err == nil {
				r = withClaims(r, claims)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole gates a route to the given roles. It must run after
// Authentication.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := r.Context().Value(RoleKey).(string)
			if _, ok := allowed[role]; !ok {
				http.Error(w, "Insufficient permissions", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserFromContext retrieves user data from the request context
func GetUserFromContext(r *http.Request) (userID, name, email, role string) {
	userID, _ = r.Context().Value(UserIDKey).(string)
	name, _ = r.Context().Value(NameKey).(string)
	email, _ = r.Context().Value(EmailKey).(string)
	role, _ = r.Context().Value(RoleKey).(string)
	return
}
