package models

import (
	"fmt"
	"time"
)

// OrderStatus is the closed set of lifecycle states an order can be in.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// AllStatuses lists every valid order status.
var AllStatuses = []OrderStatus{
	StatusPending,
	StatusPreparing,
	StatusReady,
	StatusCompleted,
	StatusCancelled,
}

// statusTransitions encodes the lifecycle graph as data: each status maps to
// the set of statuses it may move to. Terminal states map to an empty set.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusCompleted},
	StatusCompleted: {},
	StatusCancelled: {},
}

// ParseOrderStatus validates a raw string against the status set.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(raw)
	if _, ok := statusTransitions[status]; !ok {
		return "", fmt.Errorf("invalid order status %q", raw)
	}
	return status, nil
}

// CanTransition reports whether the lifecycle graph allows moving from one
// status to another.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s OrderStatus) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}

// AllowedTransitions returns the statuses reachable from s.
func (s OrderStatus) AllowedTransitions() []OrderStatus {
	return statusTransitions[s]
}

// entryTimestamps maps a status to the order field stamped the first time the
// order enters that status.
var entryTimestamps = map[OrderStatus]func(o *Order) **time.Time{
	StatusReady:     func(o *Order) **time.Time { return &o.ReadyAt },
	StatusCompleted: func(o *Order) **time.Time { return &o.CompletedAt },
}

// StampEntry records the entry timestamp for the given status if it has not
// been stamped before. It returns the stamped time, or nil when the status has
// no entry timestamp or the field was already set.
func (o *Order) StampEntry(status OrderStatus, now time.Time) *time.Time {
	field, ok := entryTimestamps[status]
	if !ok {
		return nil
	}
	if *field(o) != nil {
		return nil
	}
	*field(o) = &now
	return &now
}
