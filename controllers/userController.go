package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	helper "github.com/02priyeshraj/Restaurant_Ordering_Backend/helper"
	"github.com/02priyeshraj/Restaurant_Ordering_Backend/models"
	"github.com/02priyeshraj/Restaurant_Ordering_Backend/store"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type UserController struct {
	store    *store.UserStore
	validate *validator.Validate
}

func NewUserController(userStore *store.UserStore) *UserController {
	return &UserController{
		store:    userStore,
		validate: validator.New(),
	}
}

// Signup registers a new user. Self-registration always yields the customer
// role; staff accounts are provisioned out of band.
func (c *UserController) Signup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := c.validate.Struct(user); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	count, err := c.store.CountByEmail(ctx, user.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if count > 0 {
		writeError(w, http.StatusConflict, "Email already registered")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	user.Password = string(hashed)
	user.Role = models.RoleCustomer
	user.Created_at = time.Now()
	user.Updated_at = time.Now()

	if err := c.store.Insert(ctx, &user); err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "User registered successfully", map[string]interface{}{
		"user_id": user.User_id,
		"name":    user.Name,
		"email":   user.Email,
		"role":    user.Role,
	})
}

// Login verifies credentials and issues an access token.
func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var credentials struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := c.validate.Struct(credentials); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := c.store.FindByEmail(ctx, credentials.Email)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(credentials.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := helper.GenerateToken(user.User_id, user.Name, user.Email, user.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeSuccess(w, http.StatusOK, "Login successful", map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"user_id": user.User_id,
			"name":    user.Name,
			"email":   user.Email,
			"role":    user.Role,
		},
	})
}
