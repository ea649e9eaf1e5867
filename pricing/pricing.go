// Package pricing computes checkout totals from the items the customer
// selected. Totals are frozen onto the order at placement time and never
// recomputed, so later catalog price changes cannot alter history.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Bibekgupta777/Medicure-Pharmacy/models"
)

const (
	// Orders above this items subtotal ship free; at or below it the
	// flat rate applies. The comparison is strictly greater-than.
	freeShippingThreshold = 100
	flatShippingRate      = 10

	// Unconditional promotional discount on the items subtotal.
	discountRate = 0.10
)

type Totals struct {
	ItemsPrice    float64 `json:"itemsPrice"`
	ShippingPrice float64 `json:"shippingPrice"`
	DiscountPrice float64 `json:"discountPrice"`
	TotalPrice    float64 `json:"totalPrice"`
}

// Round2 rounds to two decimal places, half up on the cents boundary.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// ToSubunits converts a major-unit amount to the smallest currency unit
// (e.g. 10.55 -> 1055). Conversion goes through decimal so inexact
// float representations like 0.29*100 == 28.999... cannot drop a unit.
func ToSubunits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// Calculate derives the full price breakdown for the given line items.
func Calculate(items []models.OrderItem) Totals {
	sum := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		sum = sum.Add(line)
	}
	itemsPrice := sum.Round(2)

	shipping := decimal.NewFromInt(flatShippingRate)
	if itemsPrice.GreaterThan(decimal.NewFromInt(freeShippingThreshold)) {
		shipping = decimal.Zero
	}

	discount := itemsPrice.Mul(decimal.NewFromFloat(discountRate)).Round(2)
	total := itemsPrice.Add(shipping).Sub(discount).Round(2)

	ip, _ := itemsPrice.Float64()
	sp, _ := shipping.Float64()
	dp, _ := discount.Float64()
	tp, _ := total.Float64()
	return Totals{ItemsPrice: ip, ShippingPrice: sp, DiscountPrice: dp, TotalPrice: tp}
}
