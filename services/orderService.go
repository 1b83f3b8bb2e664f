package services

import (
	"context"
	"errors"
	"time"

	"github.com/02priyeshraj/Restaurant_Ordering_Backend/models"
	"github.com/02priyeshraj/Restaurant_Ordering_Backend/store"
)

// OrderStore is the persistence surface the lifecycle engine needs. The
// Mongo-backed store.OrderStore satisfies it; tests use an in-memory fake.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	Find(ctx context.Context, filter store.OrderFilter) ([]models.Order, error)
	SetStatus(ctx context.Context, id string, status models.OrderStatus, updatedAt time.Time, readyAt, completedAt *time.Time) error
	Delete(ctx context.Context, id string) error
}

// MenuResolver resolves a menu item reference at order creation so the line
// item can snapshot its name and price.
type MenuResolver interface {
	Resolve(ctx context.Context, itemID string) (*models.MenuItem, error)
}

// Broadcaster fans lifecycle events out to connected dashboards. Delivery is
// best effort; implementations must never block or return an error to the
// lifecycle operation.
type Broadcaster interface {
	NewOrder(order *models.Order)
	OrderStatusUpdate(order *models.Order)
}

// OrderService is the order lifecycle engine. All mutations funnel through
// commitStatus so every caller shares one persist-then-broadcast path.
type OrderService struct {
	store       OrderStore
	menu        MenuResolver
	broadcaster Broadcaster
	now         func() time.Time
}

func NewOrderService(orderStore OrderStore, menu MenuResolver, broadcaster Broadcaster) *OrderService {
	return &OrderService{
		store:       orderStore,
		menu:        menu,
		broadcaster: broadcaster,
		now:         time.Now,
	}
}

// CreateOrderItem references a menu item to order.
type CreateOrderItem struct {
	MenuItemID          string `json:"menu_item_id" validate:"required"`
	Quantity            int    `json:"quantity" validate:"required,min=1"`
	SpecialInstructions string `json:"special_instructions,omitempty" validate:"max=200"`
}

// CreateOrderInput carries everything needed to place an order. UserID is the
// opaque authenticated actor id; empty for guest orders.
type CreateOrderInput struct {
	Items           []CreateOrderItem `json:"items" validate:"required,min=1,dive"`
	CustomerName    string            `json:"customer_name" validate:"max=100"`
	CustomerPhone   string            `json:"customer_phone" validate:"max=20"`
	CustomerEmail   string            `json:"customer_email" validate:"omitempty,email"`
	TableNumber     string            `json:"table_number" validate:"max=10"`
	OrderType       string            `json:"order_type" validate:"omitempty,oneof=dine-in takeout delivery"`
	PaymentMethod   string            `json:"payment_method" validate:"omitempty,oneof=cash card online upi"`
	Notes           string            `json:"notes" validate:"max=500"`
	DeliveryAddress string            `json:"delivery_address" validate:"max=200"`
	UserID          string            `json:"-"`
}

// Create places a new order: resolves every referenced menu item, snapshots
// name and price into line items, computes the total, and persists the order
// in pending status. A newOrder event is emitted after the order is stored.
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	now := s.now()
	var total float64
	lineItems := make([]models.OrderLineItem, 0, len(input.Items))

	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, &InvalidItemError{MenuItemID: item.MenuItemID, Reason: "quantity must be at least 1"}
		}

		menuItem, err := s.menu.Resolve(ctx, item.MenuItemID)
		if errors.Is(err, store.ErrMenuItemNotFound) {
			return nil, &InvalidItemError{MenuItemID: item.MenuItemID, Reason: "menu item not found"}
		} else if err != nil {
			return nil, err
		}
		if !menuItem.Available {
			return nil, &InvalidItemError{MenuItemID: item.MenuItemID, Name: menuItem.Name, Reason: "menu item not available"}
		}

		line := models.OrderLineItem{
			MenuItemID:          menuItem.ID.Hex(),
			Name:                menuItem.Name,
			Price:               menuItem.Price,
			Quantity:            item.Quantity,
			SpecialInstructions: item.SpecialInstructions,
		}
		total += line.Subtotal()
		lineItems = append(lineItems, line)
	}

	orderType := input.OrderType
	if orderType == "" {
		orderType = models.OrderTypeDineIn
	}
	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentCash
	}

	order := &models.Order{
		OrderNumber:              models.NewOrderNumber(now),
		UserID:                   input.UserID,
		Items:                    lineItems,
		Total:                    total,
		Status:                   models.StatusPending,
		CustomerName:             input.CustomerName,
		CustomerPhone:            input.CustomerPhone,
		CustomerEmail:            input.CustomerEmail,
		TableNumber:              input.TableNumber,
		OrderType:                orderType,
		PaymentStatus:            models.PaymentPending,
		PaymentMethod:            paymentMethod,
		Notes:                    input.Notes,
		DeliveryAddress:          input.DeliveryAddress,
		EstimatedPreparationTime: models.DefaultPreparationTime,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	if err := s.store.Insert(ctx, order); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.NewOrder(order)
	}
	return order, nil
}

// commitStatus is the single persist-then-broadcast path for every status
// mutation. Entry timestamps are stamped only on first entry into a status;
// the store never overwrites an already-stamped field.
func (s *OrderService) commitStatus(ctx context.Context, order *models.Order, next models.OrderStatus) (*models.Order, error) {
	now := s.now()

	var readyAt, completedAt *time.Time
	if stamped := order.StampEntry(next, now); stamped != nil {
		switch next {
		case models.StatusReady:
			readyAt = stamped
		case models.StatusCompleted:
			completedAt = stamped
		}
	}

	if err := s.store.SetStatus(ctx, order.ID.Hex(), next, now, readyAt, completedAt); err != nil {
		return nil, err
	}
	order.Status = next
	order.UpdatedAt = now

	if s.broadcaster != nil {
		s.broadcaster.OrderStatusUpdate(order)
	}
	return order, nil
}

// UpdateStatus is the loose admin surface: it accepts any of the enumerated
// statuses without consulting the transition table. It must only be reachable
// through an admin-gated route.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, rawStatus string) (*models.Order, error) {
	status, err := models.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, &InvalidStatusError{Value: rawStatus}
	}

	order, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.commitStatus(ctx, order, status)
}

// AdvanceStatus is the strict surface: the target must be reachable from the
// order's current status in the transition table.
func (s *OrderService) AdvanceStatus(ctx context.Context, id string, target models.OrderStatus) (*models.Order, error) {
	if _, err := models.ParseOrderStatus(string(target)); err != nil {
		return nil, &InvalidStatusError{Value: string(target)}
	}

	order, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransition(target) {
		return nil, &InvalidTransitionError{From: order.Status, To: target}
	}
	return s.commitStatus(ctx, order, target)
}

// MarkReady moves a preparing order to ready (kitchen surface).
func (s *OrderService) MarkReady(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != models.StatusPreparing {
		return nil, &PreconditionError{Current: order.Status, Required: models.StatusPreparing, Target: models.StatusReady}
	}
	return s.commitStatus(ctx, order, models.StatusReady)
}

// MarkCompleted moves a ready order to completed (waiter surface).
func (s *OrderService) MarkCompleted(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != models.StatusReady {
		return nil, &PreconditionError{Current: order.Status, Required: models.StatusReady, Target: models.StatusCompleted}
	}
	return s.commitStatus(ctx, order, models.StatusCompleted)
}

// GetReadyOrders returns all ready orders, oldest readyAt first, so pickup is
// fair.
func (s *OrderService) GetReadyOrders(ctx context.Context) ([]models.Order, error) {
	return s.store.Find(ctx, store.OrderFilter{Status: models.StatusReady, SortByReadyAt: true})
}

func (s *OrderService) GetOrders(ctx context.Context, filter store.OrderFilter) ([]models.Order, error) {
	return s.store.Find(ctx, filter)
}

func (s *OrderService) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	return s.store.FindByID(ctx, id)
}

func (s *OrderService) GetOrdersByStatus(ctx context.Context, rawStatus string) ([]models.Order, error) {
	status, err := models.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, &InvalidStatusError{Value: rawStatus}
	}
	return s.store.Find(ctx, store.OrderFilter{Status: status})
}

// GetTodaysOrders returns orders created since local midnight.
func (s *OrderService) GetTodaysOrders(ctx context.Context) ([]models.Order, error) {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := midnight.AddDate(0, 0, 1)
	return s.store.Find(ctx, store.OrderFilter{From: &midnight, To: &tomorrow})
}

func (s *OrderService) GetCustomerOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return s.store.Find(ctx, store.OrderFilter{UserID: userID})
}

// DeleteOrder is an administrative override, not part of the lifecycle.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
