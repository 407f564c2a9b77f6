package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Pending moves forward through the chain below; Cancelled
// is reachable from the first three states only. Delivered and Cancelled
// are terminal.
const (
	StatusPending         = "Pending"
	StatusPaymentVerified = "Payment Verified"
	StatusProcessing      = "Processing"
	StatusShipped         = "Shipped"
	StatusDelivered       = "Delivered"
	StatusCancelled       = "Cancelled"
)

// Payment methods accepted at checkout.
const (
	PaymentUPI    = "UPI"
	PaymentCard   = "CARD"
	PaymentCOD    = "COD"
	PaymentPaytm  = "PAYTM"
	PaymentWallet = "WALLET"
)

// OrderItem snapshots name and unit price at checkout time so the order
// stays historically accurate when the catalog changes later.
type OrderItem struct {
	ProductID string  `json:"productid" bson:"productid"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

type ShippingAddress struct {
	Name    string `json:"name" bson:"name"`
	Phone   string `json:"phone" bson:"phone"`
	Address string `json:"address" bson:"address"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	ZipCode string `json:"zipCode" bson:"zipCode"`
	Country string `json:"country" bson:"country"`
}

type Order struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OrderNumber     string             `json:"orderNumber" bson:"orderNumber"`
	UserID          string             `json:"userid" bson:"userid"`
	OrderItems      []OrderItem        `json:"orderItems" bson:"orderItems"`
	ShippingAddress ShippingAddress    `json:"shippingAddress" bson:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod" bson:"paymentMethod"`
	ItemsPrice      float64            `json:"itemsPrice" bson:"itemsPrice"`
	ShippingPrice   float64            `json:"shippingPrice" bson:"shippingPrice"`
	TotalPrice      float64            `json:"totalPrice" bson:"totalPrice"`
	OrderStatus     string             `json:"orderStatus" bson:"orderStatus"`
	UPIPaymentLink  string             `json:"upiPaymentLink,omitempty" bson:"upiPaymentLink,omitempty"`
	IdempotencyKey  string             `json:"-" bson:"idempotency_key,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`

	// Customer is populated on admin listings only.
	Customer *UserSummary `json:"customer,omitempty" bson:"customer,omitempty"`
}
