package models

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeliveryStatus is the single source of truth for fulfillment progress.
// The isDelivered/isCancelled flags are kept in sync by the transition
// methods below for API compatibility and are never written directly.
type DeliveryStatus string

const (
	DeliveryPending        DeliveryStatus = "pending"
	DeliveryOutForDelivery DeliveryStatus = "out for delivery"
	DeliveryDelivered      DeliveryStatus = "delivered"
	DeliveryCancelled      DeliveryStatus = "cancelled"
)

func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryPending, DeliveryOutForDelivery, DeliveryDelivered, DeliveryCancelled:
		return true
	}
	return false
}

var (
	ErrEmptyCart             = errors.New("cart is empty")
	ErrUnknownProduct        = errors.New("product not found")
	ErrInvalidQuantity       = errors.New("item quantity must be at least 1")
	ErrAlreadyDelivered      = errors.New("order already delivered")
	ErrOrderCancelled        = errors.New("order is cancelled")
	ErrInvalidDeliveryStatus = errors.New("invalid delivery status")
)

// MissingPrescriptionError names the first regulated item that was
// submitted without an uploaded prescription reference.
type MissingPrescriptionError struct {
	Item string
}

func (e *MissingPrescriptionError) Error() string {
	return fmt.Sprintf("prescription required for %q", e.Item)
}

// OrderItem is a frozen snapshot of a product at purchase time. Catalog
// edits after checkout must never change historical orders.
type OrderItem struct {
	Product      primitive.ObjectID `bson:"product" json:"product"`
	Slug         string             `bson:"slug" json:"slug"`
	Name         string             `bson:"name" json:"name"`
	Image        string             `bson:"image" json:"image"`
	Price        float64            `bson:"price" json:"price"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	Prescription string             `bson:"prescription,omitempty" json:"prescription,omitempty"`
}

type ShippingLocation struct {
	Lat             float64 `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng             float64 `bson:"lng,omitempty" json:"lng,omitempty"`
	Address         string  `bson:"address,omitempty" json:"address,omitempty"`
	Name            string  `bson:"name,omitempty" json:"name,omitempty"`
	Vicinity        string  `bson:"vicinity,omitempty" json:"vicinity,omitempty"`
	GoogleAddressID string  `bson:"googleAddressId,omitempty" json:"googleAddressId,omitempty"`
}

type ShippingAddress struct {
	FullName   string            `bson:"fullName" json:"fullName" validate:"required"`
	Address    string            `bson:"address" json:"address" validate:"required"`
	City       string            `bson:"city" json:"city" validate:"required"`
	PostalCode string            `bson:"postalCode" json:"postalCode" validate:"required"`
	Country    string            `bson:"country" json:"country" validate:"required"`
	Location   *ShippingLocation `bson:"location,omitempty" json:"location,omitempty"`
}

// PaymentTime parses the gateway's RFC 3339 update_time. An absent value
// just takes the fallback; an unparsable one is worth a warning before
// falling back, since the provider's timestamp is being dropped.
func PaymentTime(raw string, fallback time.Time) time.Time {
	if raw == "" {
		return fallback
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		slog.Warn("unparsable payment update_time, using current time", "update_time", raw)
		return fallback
	}
	return parsed
}

type PaymentResult struct {
	ID           string    `bson:"id" json:"id"`
	Status       string    `bson:"status" json:"status"`
	UpdateTime   time.Time `bson:"update_time" json:"update_time"`
	EmailAddress string    `bson:"email_address" json:"email_address"`
}

// Order is the aggregate root. Items, pricing and shipping address are
// write-once at creation; every later change goes through a transition
// method so the invariants hold at all times.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID          primitive.ObjectID `bson:"user" json:"user"`
	Items           []OrderItem        `bson:"orderItems" json:"orderItems"`
	ShippingAddress ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentResult   *PaymentResult     `bson:"paymentResult,omitempty" json:"paymentResult,omitempty"`
	ItemsPrice      float64            `bson:"itemsPrice" json:"itemsPrice"`
	ShippingPrice   float64            `bson:"shippingPrice" json:"shippingPrice"`
	DiscountPrice   float64            `bson:"discountPrice" json:"discountPrice"`
	TotalPrice      float64            `bson:"totalPrice" json:"totalPrice"`
	IsPaid          bool               `bson:"isPaid" json:"isPaid"`
	PaidAt          *time.Time         `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	IsDelivered     bool               `bson:"isDelivered" json:"isDelivered"`
	DeliveredAt     *time.Time         `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	IsCancelled     bool               `bson:"isCancelled" json:"isCancelled"`
	DeliveryStatus  DeliveryStatus     `bson:"deliveryStatus" json:"deliveryStatus"`
	Revision        int64              `bson:"revision" json:"-"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrderItemInput is what the checkout request supplies per line item.
// Price, name and image deliberately do not appear here: the snapshot
// always comes from the catalog.
type OrderItemInput struct {
	Product      primitive.ObjectID
	Quantity     int
	Prescription string
}

// BuildOrderItems turns the requested items into catalog-priced
// snapshots and reports which of them are regulated. An empty selection,
// a quantity below one or a product missing from the catalog all reject
// the whole submission before anything can be persisted.
func BuildOrderItems(inputs []OrderItemInput, catalog map[primitive.ObjectID]Product) ([]OrderItem, map[primitive.ObjectID]bool, error) {
	if len(inputs) == 0 {
		return nil, nil, ErrEmptyCart
	}

	items := make([]OrderItem, 0, len(inputs))
	regulated := make(map[primitive.ObjectID]bool, len(inputs))
	for _, in := range inputs {
		if in.Quantity < 1 {
			return nil, nil, ErrInvalidQuantity
		}
		product, ok := catalog[in.Product]
		if !ok {
			return nil, nil, ErrUnknownProduct
		}
		regulated[product.ID] = product.RequiresPrescription
		items = append(items, OrderItem{
			Product:      product.ID,
			Slug:         product.Slug,
			Name:         product.Name,
			Image:        product.Image,
			Price:        product.Price,
			Quantity:     in.Quantity,
			Prescription: in.Prescription,
		})
	}
	return items, regulated, nil
}

// ValidatePrescriptions rejects the first regulated item lacking an
// uploaded prescription reference. The regulated set is derived from the
// catalog by the caller; the client's claim about a category is not trusted.
func ValidatePrescriptions(items []OrderItem, regulated map[primitive.ObjectID]bool) error {
	for _, item := range items {
		if regulated[item.Product] && item.Prescription == "" {
			return &MissingPrescriptionError{Item: item.Name}
		}
	}
	return nil
}

// CanBeCancelledBy reports whether the principal may cancel this order:
// the owner or any admin.
func (o *Order) CanBeCancelledBy(p Principal) bool {
	return p.IsAdmin || p.ID == o.UserID
}

// CanBeViewedBy mirrors the read rule for single-order fetches.
func (o *Order) CanBeViewedBy(p Principal) bool {
	return p.IsAdmin || p.ID == o.UserID
}

// MarkPaid records a payment result. Calling it again with the same
// result is harmless; the payment method may be overwritten to reflect a
// COD order settled online at confirmation time.
func (o *Order) MarkPaid(result PaymentResult, paymentMethod string, now time.Time) {
	o.IsPaid = true
	o.PaidAt = &now
	o.PaymentResult = &result
	if paymentMethod != "" {
		o.PaymentMethod = paymentMethod
	}
	o.UpdatedAt = now
}

// MarkDelivered moves the order to its terminal delivered state.
func (o *Order) MarkDelivered(now time.Time) error {
	if o.IsCancelled {
		return ErrOrderCancelled
	}
	o.IsDelivered = true
	o.DeliveredAt = &now
	o.DeliveryStatus = DeliveryDelivered
	o.UpdatedAt = now
	return nil
}

// Cancel is idempotent; delivered orders are terminal and cannot be
// cancelled.
func (o *Order) Cancel(now time.Time) error {
	if o.DeliveryStatus == DeliveryDelivered {
		return ErrAlreadyDelivered
	}
	if o.IsCancelled {
		return nil
	}
	o.IsCancelled = true
	o.DeliveryStatus = DeliveryCancelled
	o.UpdatedAt = now
	return nil
}

// SetDeliveryStatus is the admin override. A delivered order stays
// terminal, a cancelled order cannot be delivered, and the cancelled
// flag is derived from the enum on every write so the two never drift.
func (o *Order) SetDeliveryStatus(status DeliveryStatus, now time.Time) error {
	if !status.Valid() {
		return ErrInvalidDeliveryStatus
	}
	if o.DeliveryStatus == DeliveryDelivered && status != DeliveryDelivered {
		return ErrAlreadyDelivered
	}
	if o.IsCancelled && status == DeliveryDelivered {
		return ErrOrderCancelled
	}
	o.DeliveryStatus = status
	o.IsCancelled = status == DeliveryCancelled
	if status == DeliveryDelivered {
		o.IsDelivered = true
		o.DeliveredAt = &now
	}
	o.UpdatedAt = now
	return nil
}
