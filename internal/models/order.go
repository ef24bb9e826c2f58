package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ItemSnapshot is the slice of a catalog item copied onto a cart line at the
// moment it is added. It deliberately does not follow later catalog edits.
type ItemSnapshot struct {
	ID       primitive.ObjectID `bson:"id" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Category StringList         `bson:"category" json:"category"`
	Price    float64            `bson:"price" json:"price"`
	ImageURL string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

// CartLine pairs one design with one fabric. Invariant:
// TotalPrice == Design.Price + Fabric.Price as of AddedAt.
type CartLine struct {
	Design     ItemSnapshot `bson:"design" json:"design"`
	Fabric     ItemSnapshot `bson:"fabric" json:"fabric"`
	TotalPrice float64      `bson:"totalPrice" json:"totalPrice"`
	AddedAt    time.Time    `bson:"addedAt" json:"addedAt"`
}

// Order is the persisted order document. TailorName and TailorEmail are
// denormalized at assignment time and go stale if the tailor's profile later
// changes; reads accept that in exchange for not joining on every list.
type Order struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	CheckoutKey     string              `bson:"checkoutKey" json:"checkoutKey"`
	UserID          primitive.ObjectID  `bson:"userId" json:"userId"`
	UserEmail       string              `bson:"userEmail,omitempty" json:"userEmail,omitempty"`
	CustomerName    string              `bson:"customerName" json:"customerName"`
	CustomerAddress string              `bson:"customerAddress" json:"customerAddress"`
	CustomerPhone   string              `bson:"customerPhone" json:"customerPhone"`
	Items           []CartLine          `bson:"items" json:"items"`
	TotalAmount     float64             `bson:"totalAmount" json:"totalAmount"`
	PaymentMethod   string              `bson:"paymentMethod" json:"paymentMethod"`
	PaymentOption   string              `bson:"paymentOption,omitempty" json:"paymentOption,omitempty"`
	PaymentStatus   string              `bson:"paymentStatus" json:"paymentStatus"`
	Status          OrderStatus         `bson:"status" json:"status"`
	TailorID        *primitive.ObjectID `bson:"tailorId,omitempty" json:"tailorId,omitempty"`
	TailorName      string              `bson:"tailorName,omitempty" json:"tailorName,omitempty"`
	TailorEmail     string              `bson:"tailorEmail,omitempty" json:"tailorEmail,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       *time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Payment method and rail labels. Labels only; no gateway behind them.
const (
	PaymentCOD    = "cod"
	PaymentOnline = "online"

	PaymentStatusPending    = "Pending"
	PaymentStatusProcessing = "Processing"
)

// OnlinePaymentRails are the accepted paymentOption values when the method
// is online.
var OnlinePaymentRails = []string{"bKash", "Nagad", "Rocket"}
