package main

import (
	"context"
	"log"
	"net/http"

	database "github.com/02priyeshraj/Restaurant_Ordering_Backend/config"
	controller "github.com/02priyeshraj/Restaurant_Ordering_Backend/controllers"
	middleware "github.com/02priyeshraj/Restaurant_Ordering_Backend/middlewares"
	"github.com/02priyeshraj/Restaurant_Ordering_Backend/routes"
	"github.com/02priyeshraj/Restaurant_Ordering_Backend/services"
	"github.com/02priyeshraj/Restaurant_Ordering_Backend/socket"
	"github.com/02priyeshraj/Restaurant_Ordering_Backend/store"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	database.LoadEnv()

	client, err := database.Connect(context.Background())
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}
	defer client.Disconnect(context.Background())

	orderStore := store.NewOrderStore(database.OpenCollection(client, "orders"))
	menuStore := store.NewMenuStore(database.OpenCollection(client, "menu_items"))
	userStore := store.NewUserStore(database.OpenCollection(client, "users"))

	hub := socket.NewHub()

	orderService := services.NewOrderService(orderStore, menuStore, hub)
	analyticsService := services.NewAnalyticsService(orderStore)

	orderController := controller.NewOrderController(orderService)
	menuController := controller.NewMenuController(menuStore)
	userController := controller.NewUserController(userStore)
	analyticsController := controller.NewAnalyticsController(analyticsService)

	router := mux.NewRouter()
	router.Use(middleware.Prometheus)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		socket.ServeWS(hub, w, r)
	})

	api := router.PathPrefix("/api").Subrouter()
	routes.UserRoutes(api, userController)
	routes.MenuRoutes(api, menuController)
	routes.OrderRoutes(api, orderController)
	routes.AnalyticsRoutes(api, analyticsController)

	port := database.GetEnv("PORT", "8000")
	log.Printf("Server running on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
