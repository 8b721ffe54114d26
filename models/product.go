package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Currency string

const (
	CurrencyDZD Currency = "DZD"
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
)

func (c Currency) Valid() bool {
	switch c {
	case CurrencyDZD, CurrencyEUR, CurrencyUSD:
		return true
	}
	return false
}

var Genders = []string{"man", "woman", "baby"}

func ValidGender(g string) bool {
	for _, v := range Genders {
		if v == g {
			return true
		}
	}
	return false
}

type ImageSet struct {
	Large     string `bson:"large" json:"large"`
	Medium    string `bson:"medium" json:"medium"`
	Thumbnail string `bson:"thumbnail" json:"thumbnail"`
}

type FocusPoint struct {
	X float64 `bson:"x" json:"x"`
	Y float64 `bson:"y" json:"y"`
}

type Product struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name               string             `bson:"name" json:"name"`
	Description        string             `bson:"description" json:"description"`
	Price              float64            `bson:"price" json:"price"`
	OriginalPrice      *float64           `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Currency           Currency           `bson:"currency" json:"currency"`
	Category           primitive.ObjectID `bson:"category" json:"category"`
	Colors             []string           `bson:"colors" json:"colors"`
	Sizes              []string           `bson:"sizes" json:"sizes"`
	Materials          []string           `bson:"materials" json:"materials"`
	Gender             []string           `bson:"gender" json:"gender"`
	Height             *float64           `bson:"height,omitempty" json:"height,omitempty"`
	NewArrival         bool               `bson:"newArrival" json:"newArrival"`
	ImageURLs          ImageSet           `bson:"imageUrls" json:"imageUrls"`
	SecondaryImageURLs []ImageSet         `bson:"secondaryImageUrls" json:"secondaryImageUrls"`
	VideoURL           string             `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	FocusPoint         FocusPoint         `bson:"focusPoint" json:"focusPoint"`
	Views              int                `bson:"views" json:"views"`
	ViewedBy           []string           `bson:"viewedBy" json:"-"`
	ReviewCount        int                `bson:"reviewCount" json:"reviewCount"`
	TotalRatingSum     int                `bson:"totalRatingSum" json:"totalRatingSum"`
	RatedBy            []string           `bson:"ratedBy" json:"-"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (p *Product) AverageRating() float64 {
	if p.ReviewCount == 0 {
		return 0
	}
	return float64(p.TotalRatingSum) / float64(p.ReviewCount)
}

// ProductView is a product with its category populated and the average rating computed.
type ProductView struct {
	Product
	Category      CategoryRef `json:"category"`
	AverageRating float64     `json:"averageRating"`
}

type ProductFilter struct {
	CategoryIDs []primitive.ObjectID
	Colors      []string
	Sizes       []string
	Materials   []string
	Gender      string
	NewArrival  *bool
	MinPrice    *float64
	MaxPrice    *float64
	MinHeight   *float64
	MaxHeight   *float64
}

type ProductPage struct {
	Products      []ProductView `json:"products"`
	TotalPages    int           `json:"totalPages"`
	CurrentPage   int           `json:"currentPage"`
	TotalProducts int64         `json:"totalProducts"`
}

type PriceRange struct {
	MinPrice float64 `json:"minPrice"`
	MaxPrice float64 `json:"maxPrice"`
}

// ProductFacets lists the filter values the storefront can offer.
type ProductFacets struct {
	Colors     []string   `json:"colors"`
	Sizes      []string   `json:"sizes"`
	Materials  []string   `json:"materials"`
	PriceRange PriceRange `json:"priceRange"`
}
