package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/02priyeshraj/Restaurant_Ordering_Backend/models"
	"github.com/02priyeshraj/Restaurant_Ordering_Backend/store"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
)

type MenuController struct {
	store    *store.MenuStore
	validate *validator.Validate
}

func NewMenuController(menuStore *store.MenuStore) *MenuController {
	return &MenuController{
		store:    menuStore,
		validate: validator.New(),
	}
}

// GetMenuItems lists the whole catalog.
func (c *MenuController) GetMenuItems(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	items, err := c.store.Find(ctx, store.MenuFilter{})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Menu items retrieved successfully", items)
}

// GetAvailableMenuItems lists only items customers can currently order.
func (c *MenuController) GetAvailableMenuItems(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	items, err := c.store.Find(ctx, store.MenuFilter{AvailableOnly: true})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Menu items retrieved successfully", items)
}

func (c *MenuController) GetMenuItemsByCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	items, err := c.store.Find(ctx, store.MenuFilter{Category: mux.Vars(r)["category"]})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Menu items retrieved successfully", items)
}

func (c *MenuController) GetMenuItemById(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	item, err := c.store.FindByID(ctx, mux.Vars(r)["item_id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Menu item retrieved successfully", item)
}

func (c *MenuController) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var item models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := c.validate.Struct(item); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if item.PreparationTime == 0 {
		item.PreparationTime = 15
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	if err := c.store.Insert(ctx, &item); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "Menu item created successfully", item)
}

func (c *MenuController) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var body struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Category    *string  `json:"category"`
		Image       *string  `json:"image"`
		Available   *bool    `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := bson.M{"updated_at": time.Now()}
	if body.Name != nil {
		update["name"] = *body.Name
	}
	if body.Description != nil {
		update["description"] = *body.Description
	}
	if body.Price != nil {
		update["price"] = *body.Price
	}
	if body.Category != nil {
		update["category"] = *body.Category
	}
	if body.Image != nil {
		update["image"] = *body.Image
	}
	if body.Available != nil {
		update["available"] = *body.Available
	}

	item, err := c.store.Update(ctx, mux.Vars(r)["item_id"], update)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Menu item updated successfully", item)
}

func (c *MenuController) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := c.store.Delete(ctx, mux.Vars(r)["item_id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Menu item deleted successfully", nil)
}
