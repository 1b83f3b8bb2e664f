package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuItem struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty" validate:"max=500"`
	Price           float64            `bson:"price" json:"price" validate:"required,gte=0"`
	Category        string             `bson:"category" json:"category" validate:"required,oneof=appetizers main-course desserts beverages"`
	Image           string             `bson:"image,omitempty" json:"image,omitempty"`
	Available       bool               `bson:"available" json:"available"`
	PreparationTime int                `bson:"preparation_time" json:"preparation_time"` // minutes
	IsVegetarian    bool               `bson:"is_vegetarian" json:"is_vegetarian"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// Menu categories.
const (
	CategoryAppetizers = "appetizers"
	CategoryMainCourse = "main-course"
	CategoryDesserts   = "desserts"
	CategoryBeverages  = "beverages"
)
