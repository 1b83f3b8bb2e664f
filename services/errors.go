package services

import (
	"errors"
	"fmt"

	"github.com/02priyeshraj/Restaurant_Ordering_Backend/models"
)

// ErrEmptyOrder rejects order creation with no line items.
var ErrEmptyOrder = errors.New("order must contain at least one item")

// InvalidItemError reports a line item that references a missing or
// unavailable menu item at order creation.
type InvalidItemError struct {
	MenuItemID string
	Name       string
	Reason     string
}

func (e *InvalidItemError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("invalid item %q: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("invalid item %s: %s", e.MenuItemID, e.Reason)
}

// InvalidStatusError reports a status value outside the enumerated set.
type InvalidStatusError struct {
	Value string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid order status %q", e.Value)
}

// InvalidTransitionError reports a status change not present in the
// transition table. It carries both sides for diagnostics.
type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

// PreconditionError reports a guarded transition attempted from the wrong
// status (kitchen/waiter surfaces).
type PreconditionError struct {
	Current  models.OrderStatus
	Required models.OrderStatus
	Target   models.OrderStatus
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("order must be in %s status to mark as %s (currently %s)", e.Required, e.Target, e.Current)
}
