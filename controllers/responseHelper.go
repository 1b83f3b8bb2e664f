package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/02priyeshraj/Restaurant_Ordering_Backend/services"
	"github.com/02priyeshraj/Restaurant_Ordering_Backend/store"
)

func writeJSON(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	body := map[string]interface{}{
		"success": true,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	writeJSON(w, status, body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// writeServiceError maps the lifecycle error taxonomy onto HTTP statuses and
// the response envelope. Transition failures expose both sides of the
// rejected change for diagnostics.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		invalidItem       *services.InvalidItemError
		invalidStatus     *services.InvalidStatusError
		invalidTransition *services.InvalidTransitionError
		precondition      *services.PreconditionError
	)

	switch {
	case errors.Is(err, services.ErrEmptyOrder):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &invalidItem):
		writeError(w, http.StatusBadRequest, invalidItem.Error())
	case errors.As(err, &invalidStatus):
		writeError(w, http.StatusBadRequest, invalidStatus.Error())
	case errors.As(err, &invalidTransition):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": invalidTransition.Error(),
			"data": map[string]interface{}{
				"current_status":   invalidTransition.From,
				"requested_status": invalidTransition.To,
			},
		})
	case errors.As(err, &precondition):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": precondition.Error(),
			"data": map[string]interface{}{
				"current_status":  precondition.Current,
				"required_status": precondition.Required,
			},
		})
	case errors.Is(err, store.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, store.ErrMenuItemNotFound):
		writeError(w, http.StatusNotFound, "Menu item not found")
	case errors.Is(err, store.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	default:
		writeError(w, http.StatusInternalServerError, "Server error")
	}
}
