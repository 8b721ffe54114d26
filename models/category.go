package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultCardBgColor     = "#E5E7EB"
	DefaultCardTextColor   = "text-black"
	DefaultCardGridClasses = "col-span-1 row-span-1"
)

type Category struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	CardTitle       string             `bson:"cardTitle" json:"cardTitle"`
	CardSubtitle    string             `bson:"cardSubtitle" json:"cardSubtitle"`
	CardBgColor     string             `bson:"cardBgColor" json:"cardBgColor"`
	CardTextColor   string             `bson:"cardTextColor" json:"cardTextColor"`
	CardGridClasses string             `bson:"cardGridClasses" json:"cardGridClasses"`
	ImageURL        string             `bson:"imageUrl" json:"imageUrl"`
	ThumbnailURL    string             `bson:"thumbnailUrl" json:"thumbnailUrl"`
	ProductCount    int                `bson:"productCount" json:"productCount"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CategoryRef is the slice of a category joined onto products and order lines.
type CategoryRef struct {
	ID      primitive.ObjectID `json:"id"`
	Name    string             `json:"name"`
	Missing bool               `json:"missing,omitempty"`
}
