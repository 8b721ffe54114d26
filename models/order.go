package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending          OrderStatus = "pending"
	OrderStatusConfirmed        OrderStatus = "confirmed"
	OrderStatusNoAnswer         OrderStatus = "no-answer"
	OrderStatusReady            OrderStatus = "ready"
	OrderStatusPostponed        OrderStatus = "postponed"
	OrderStatusOnTheWay         OrderStatus = "on-the-way"
	OrderStatusDelivered        OrderStatus = "delivered"
	OrderStatusCanceledStaff    OrderStatus = "canceled-staff"
	OrderStatusCanceledCustomer OrderStatus = "canceled-customer"
	OrderStatusReturned         OrderStatus = "returned"
)

// OrderStatuses lists every lifecycle status in display order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusNoAnswer,
	OrderStatusReady,
	OrderStatusPostponed,
	OrderStatusOnTheWay,
	OrderStatusDelivered,
	OrderStatusCanceledStaff,
	OrderStatusCanceledCustomer,
	OrderStatusReturned,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// RevenueStatuses are the statuses whose orders count towards revenue.
var RevenueStatuses = []OrderStatus{OrderStatusConfirmed, OrderStatusDelivered}

func (s OrderStatus) CountsAsRevenue() bool {
	for _, v := range RevenueStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type OrderType string

const (
	OrderTypeDelivery OrderType = "delivery"
	OrderTypePickup   OrderType = "pickup"
)

type DeliveryCompany struct {
	CompanyName string  `bson:"companyName" json:"companyName"`
	Price       float64 `bson:"price" json:"price"`
}

type OrderItem struct {
	Product       primitive.ObjectID `bson:"product" json:"product"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	Price         float64            `bson:"price" json:"price"`
	SelectedColor string             `bson:"selectedColor,omitempty" json:"selectedColor,omitempty"`
	SelectedSize  string             `bson:"selectedSize,omitempty" json:"selectedSize,omitempty"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Products        []OrderItem        `bson:"products" json:"products"`
	TotalPrice      float64            `bson:"totalPrice" json:"totalPrice"`
	Currency        Currency           `bson:"currency,omitempty" json:"currency,omitempty"`
	Subtotal        *float64           `bson:"subtotal,omitempty" json:"subtotal,omitempty"`
	DeliveryCost    float64            `bson:"deliveryCost" json:"deliveryCost"`
	DeliveryCompany *DeliveryCompany   `bson:"deliveryCompany,omitempty" json:"deliveryCompany,omitempty"`
	DeliveryType    string             `bson:"deliveryType,omitempty" json:"deliveryType,omitempty"`
	FirstName       string             `bson:"firstName" json:"firstName"`
	LastName        string             `bson:"lastName" json:"lastName"`
	Email           string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone1          string             `bson:"phone1" json:"phone1"`
	Phone2          string             `bson:"phone2,omitempty" json:"phone2,omitempty"`
	Wilaya          string             `bson:"wilaya,omitempty" json:"wilaya,omitempty"`
	Municipality    string             `bson:"municipality,omitempty" json:"municipality,omitempty"`
	Address         string             `bson:"address,omitempty" json:"address,omitempty"`
	OrderType       OrderType          `bson:"orderType" json:"orderType"`
	Status          OrderStatus        `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductSummary is the live catalog data joined onto an order line.
type ProductSummary struct {
	ID           primitive.ObjectID `json:"id"`
	Name         string             `json:"name"`
	ThumbnailURL string             `json:"thumbnailUrl"`
	Price        float64            `json:"price"`
	Category     CategoryRef        `json:"category"`
	Missing      bool               `json:"missing,omitempty"`
}

// OrderLineView keeps the purchase-time price next to the current catalog price.
type OrderLineView struct {
	Quantity      int            `json:"quantity"`
	Price         float64        `json:"price"`
	SelectedColor string         `json:"selectedColor,omitempty"`
	SelectedSize  string         `json:"selectedSize,omitempty"`
	Product       ProductSummary `json:"product"`
}

// OrderView is an order whose line items have been joined against the catalog.
type OrderView struct {
	Order
	Products []OrderLineView `json:"products"`
}

type OrderFilter struct {
	ID       *primitive.ObjectID
	Statuses []OrderStatus
	From     *time.Time
	To       *time.Time
}

type OrderPage struct {
	Orders      []OrderView `json:"orders"`
	TotalPages  int         `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
}

type RevenuePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

type OrderStats struct {
	StatusCounts     map[OrderStatus]int  `json:"statusCounts"`
	RevenueChartData []RevenuePoint       `json:"revenueChartData"`
	TotalRevenue     map[Currency]float64 `json:"totalRevenue"`
}
