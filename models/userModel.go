package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User_id    string             `bson:"user_id" json:"user_id"`
	Name       string             `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Email      string             `bson:"email" json:"email" validate:"required,email"`
	Password   string             `bson:"password" json:"password,omitempty" validate:"required,min=6"`
	Role       string             `bson:"role" json:"role" validate:"omitempty,oneof=admin kitchen waiter customer"`
	Created_at time.Time          `bson:"created_at" json:"created_at"`
	Updated_at time.Time          `bson:"updated_at" json:"updated_at"`
}

// User roles.
const (
	RoleAdmin    = "admin"
	RoleKitchen  = "kitchen"
	RoleWaiter   = "waiter"
	RoleCustomer = "customer"
)
