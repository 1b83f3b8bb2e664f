package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderLineItem is a denormalized snapshot of a menu item at order time. Name
// and price are captured when the order is created and never follow later
// menu edits.
type OrderLineItem struct {
	MenuItemID          string  `bson:"menu_item_id" json:"menu_item_id" validate:"required"`
	Name                string  `bson:"name" json:"name"`
	Price               float64 `bson:"price" json:"price"`
	Quantity            int     `bson:"quantity" json:"quantity" validate:"required,min=1"`
	SpecialInstructions string  `bson:"special_instructions,omitempty" json:"special_instructions,omitempty" validate:"max=200"`
}

// Subtotal is the line's contribution to the order total.
func (li OrderLineItem) Subtotal() float64 {
	return li.Price * float64(li.Quantity)
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber   string             `bson:"order_number" json:"order_number"`
	UserID        string             `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Items         []OrderLineItem    `bson:"items" json:"items"`
	Total         float64            `bson:"total" json:"total"`
	Status        OrderStatus        `bson:"status" json:"status"`
	CustomerName  string             `bson:"customer_name,omitempty" json:"customer_name,omitempty" validate:"max=100"`
	CustomerPhone string             `bson:"customer_phone,omitempty" json:"customer_phone,omitempty" validate:"max=20"`
	CustomerEmail string             `bson:"customer_email,omitempty" json:"customer_email,omitempty" validate:"omitempty,email"`
	TableNumber   string             `bson:"table_number,omitempty" json:"table_number,omitempty" validate:"max=10"`
	OrderType     string             `bson:"order_type" json:"order_type" validate:"omitempty,oneof=dine-in takeout delivery"`
	PaymentStatus string             `bson:"payment_status" json:"payment_status"`
	PaymentMethod string             `bson:"payment_method" json:"payment_method"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty" validate:"max=500"`

	// DeliveryAddress is only meaningful for delivery orders.
	DeliveryAddress string `bson:"delivery_address,omitempty" json:"delivery_address,omitempty" validate:"max=200"`

	// Discount, tax, and tip are recorded on the order but not folded into
	// the total, which stays the plain sum of line-item subtotals.
	Discount float64 `bson:"discount" json:"discount"`
	Tax      float64 `bson:"tax" json:"tax"`
	Tip      float64 `bson:"tip" json:"tip"`

	// EstimatedPreparationTime is in minutes.
	EstimatedPreparationTime int `bson:"estimated_preparation_time" json:"estimated_preparation_time"`

	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
	ReadyAt     *time.Time `bson:"ready_at,omitempty" json:"ready_at,omitempty"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

// Order types.
const (
	OrderTypeDineIn   = "dine-in"
	OrderTypeTakeout  = "takeout"
	OrderTypeDelivery = "delivery"
)

// Payment statuses. Tracked on the order but not enforced by the lifecycle.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Payment methods.
const (
	PaymentCash   = "cash"
	PaymentCard   = "card"
	PaymentOnline = "online"
	PaymentUPI    = "upi"
)

const DefaultPreparationTime = 20

// NewOrderNumber builds the human-readable order number: the date plus the
// last six digits of the millisecond clock.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%06d", now.Format("20060102"), now.UnixMilli()%1000000)
}
