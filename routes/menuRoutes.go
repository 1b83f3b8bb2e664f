package routes

import (
	"net/http"

	controller "github.com/02priyeshraj/Restaurant_Ordering_Backend/controllers"
	middleware "github.com/02priyeshraj/Restaurant_Ordering_Backend/middlewares"
	"github.com/02priyeshraj/Restaurant_Ordering_Backend/models"

	"github.com/gorilla/mux"
)

// MenuRoutes registers the menu catalog. Reads are public (customers browse
// the menu); writes are admin only.
func MenuRoutes(router *mux.Router, ctrl *controller.MenuController) {
	admin := middleware.RequireRole(models.RoleAdmin)

	router.HandleFunc("/menu", ctrl.GetMenuItems).Methods(http.MethodGet)
	router.HandleFunc("/menu/available", ctrl.GetAvailableMenuItems).Methods(http.MethodGet)
	router.HandleFunc("/menu/category/{category}", ctrl.GetMenuItemsByCategory).Methods(http.MethodGet)
	router.HandleFunc("/menu/{item_id}", ctrl.GetMenuItemById).Methods(http.MethodGet)

	router.Handle("/menu",
		authenticated(admin(http.HandlerFunc(ctrl.CreateMenuItem)))).Methods(http.MethodPost)
	router.Handle("/menu/{item_id}",
		authenticated(admin(http.HandlerFunc(ctrl.UpdateMenuItem)))).Methods(http.MethodPut)
	router.Handle("/menu/{item_id}",
		authenticated(admin(http.HandlerFunc(ctrl.DeleteMenuItem)))).Methods(http.MethodDelete)
}
