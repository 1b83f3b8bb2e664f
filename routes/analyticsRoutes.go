package routes

import (
	"net/http"

	controller "github.com/02priyeshraj/Restaurant_Ordering_Backend/controllers"
	middleware "github.com/02priyeshraj/Restaurant_Ordering_Backend/middlewares"
	"github.com/02priyeshraj/Restaurant_Ordering_Backend/models"

	"github.com/gorilla/mux"
)

func AnalyticsRoutes(router *mux.Router, ctrl *controller.AnalyticsController) {
	admin := middleware.RequireRole(models.RoleAdmin)

	router.Handle("/analytics/overview",
		authenticated(admin(http.HandlerFunc(ctrl.GetOverview)))).Methods(http.MethodGet)
	router.Handle("/analytics/popular-items",
		authenticated(admin(http.HandlerFunc(ctrl.GetPopularItems)))).Methods(http.MethodGet)
	router.Handle("/analytics/revenue",
		authenticated(admin(http.HandlerFunc(ctrl.GetRevenueStats)))).Methods(http.MethodGet)
	router.Handle("/analytics/customers",
		authenticated(admin(http.HandlerFunc(ctrl.GetCustomerInsights)))).Methods(http.MethodGet)
}
