package routes

import (
	"net/http"

	controller "github.com/02priyeshraj/Restaurant_Ordering_Backend/controllers"

	"github.com/gorilla/mux"
)

func UserRoutes(router *mux.Router, ctrl *controller.UserController) {
	router.HandleFunc("/users/signup", ctrl.Signup).Methods(http.MethodPost)
	router.HandleFunc("/users/login", ctrl.Login).Methods(http.MethodPost)
}
