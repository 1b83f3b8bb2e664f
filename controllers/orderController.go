package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	middleware "github.com/02priyeshraj/Restaurant_Ordering_Backend/middlewares"
	"github.com/02priyeshraj/Restaurant_Ordering_Backend/models"
	"github.com/02priyeshraj/Restaurant_Ordering_Backend/services"
	"github.com/02priyeshraj/Restaurant_Ordering_Backend/store"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

const requestTimeout = 10 * time.Second

type OrderController struct {
	service  *services.OrderService
	validate *validator.Validate
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{
		service:  service,
		validate: validator.New(),
	}
}

// CreateOrder places a new order. Authentication is optional: a logged-in
// customer's orders carry their user id, guest orders carry none.
func (c *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	success := false
	defer func() { middleware.RecordOrderOperation("create", success) }()

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var input services.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := c.validate.Struct(input); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID, _, _, _ := middleware.GetUserFromContext(r)
	input.UserID = userID

	order, err := c.service.Create(ctx, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	success = true
	writeSuccess(w, http.StatusCreated, "Order created successfully", order)
}

// GetOrders lists orders, optionally filtered by status and creation date
// range (staff/admin view).
func (c *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	filter := store.OrderFilter{}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := models.ParseOrderStatus(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
		filter.Status = status
	}
	if raw := r.URL.Query().Get("startDate"); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid startDate")
			return
		}
		filter.From = &from
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		to, err := parseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid endDate")
			return
		}
		filter.To = &to
	}

	orders, err := c.service.GetOrders(ctx, filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Orders retrieved successfully", orders)
}

// GetCustomerOrders lists the authenticated customer's own orders.
func (c *OrderController) GetCustomerOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, _, _, _ := middleware.GetUserFromContext(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	orders, err := c.service.GetCustomerOrders(ctx, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Orders retrieved successfully", orders)
}

func (c *OrderController) GetOrderById(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	orderID := mux.Vars(r)["order_id"]
	order, err := c.service.GetOrderByID(ctx, orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Order retrieved successfully", order)
}

func (c *OrderController) GetOrdersByStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	orders, err := c.service.GetOrdersByStatus(ctx, mux.Vars(r)["status"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Orders retrieved successfully", orders)
}

func (c *OrderController) GetTodaysOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	orders, err := c.service.GetTodaysOrders(ctx)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Today's orders retrieved successfully", orders)
}

// GetReadyOrders returns the pickup queue for waiters, oldest ready first.
func (c *OrderController) GetReadyOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	orders, err := c.service.GetReadyOrders(ctx)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Ready orders retrieved successfully", orders)
}

// UpdateOrderStatus is the admin override: it sets any enumerated status
// without consulting the transition table. The route must sit behind the
// admin role.
func (c *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	success := false
	defer func() { middleware.RecordOrderOperation("update_status", success) }()

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := c.service.UpdateStatus(ctx, mux.Vars(r)["order_id"], body.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	success = true
	writeSuccess(w, http.StatusOK, "Order status updated successfully", order)
}

// AdvanceOrderStatus is the strict surface: the requested status must be a
// legal next step from the order's current status.
func (c *OrderController) AdvanceOrderStatus(w http.ResponseWriter, r *http.Request) {
	success := false
	defer func() { middleware.RecordOrderOperation("advance_status", success) }()

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := c.service.AdvanceStatus(ctx, mux.Vars(r)["order_id"], models.OrderStatus(body.Status))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	success = true
	writeSuccess(w, http.StatusOK, "Order status updated successfully", order)
}

// MarkOrderReady is the kitchen surface.
func (c *OrderController) MarkOrderReady(w http.ResponseWriter, r *http.Request) {
	success := false
	defer func() { middleware.RecordOrderOperation("mark_ready", success) }()

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	order, err := c.service.MarkReady(ctx, mux.Vars(r)["order_id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	success = true
	writeSuccess(w, http.StatusOK, "Order marked as ready", order)
}

// MarkOrderCompleted is the waiter surface.
func (c *OrderController) MarkOrderCompleted(w http.ResponseWriter, r *http.Request) {
	success := false
	defer func() { middleware.RecordOrderOperation("mark_completed", success) }()

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	order, err := c.service.MarkCompleted(ctx, mux.Vars(r)["order_id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	success = true
	writeSuccess(w, http.StatusOK, "Order marked as completed", order)
}

// DeleteOrder removes an order entirely (administrative override).
func (c *OrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	success := false
	defer func() { middleware.RecordOrderOperation("delete", success) }()

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := c.service.DeleteOrder(ctx, mux.Vars(r)["order_id"]); err != nil {
		writeServiceError(w, err)
		return
	}

	success = true
	writeSuccess(w, http.StatusOK, "Order deleted successfully", nil)
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
