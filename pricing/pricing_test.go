package pricing

import (
	"testing"

	"github.com/Bibekgupta777/Medicure-Pharmacy/models"
)

func items(pairs ...[2]float64) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, models.OrderItem{Price: p[0], Quantity: int(p[1])})
	}
	return out
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name  string
		items []models.OrderItem
		want  Totals
	}{
		{
			name:  "free shipping above threshold",
			items: items([2]float64{40, 2}, [2]float64{25, 1}),
			want:  Totals{ItemsPrice: 105.00, ShippingPrice: 0, DiscountPrice: 10.50, TotalPrice: 94.50},
		},
		{
			name:  "flat shipping below threshold",
			items: items([2]float64{30, 2}),
			want:  Totals{ItemsPrice: 60.00, ShippingPrice: 10, DiscountPrice: 6.00, TotalPrice: 64.00},
		},
		{
			name:  "exactly at threshold still pays shipping",
			items: items([2]float64{50, 2}),
			want:  Totals{ItemsPrice: 100.00, ShippingPrice: 10, DiscountPrice: 10.00, TotalPrice: 100.00},
		},
		{
			name:  "single cheap item",
			items: items([2]float64{9.99, 1}),
			want:  Totals{ItemsPrice: 9.99, ShippingPrice: 10, DiscountPrice: 1.00, TotalPrice: 18.99},
		},
		{
			name:  "fractional cents round half up",
			items: items([2]float64{0.335, 1}),
			want:  Totals{ItemsPrice: 0.34, ShippingPrice: 10, DiscountPrice: 0.03, TotalPrice: 10.31},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.items)
			if got != tt.want {
				t.Errorf("Calculate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalculateInvariants(t *testing.T) {
	sets := [][]models.OrderItem{
		items([2]float64{40, 2}, [2]float64{25, 1}),
		items([2]float64{30, 2}),
		items([2]float64{12.49, 3}),
		items([2]float64{199.99, 1}),
		items([2]float64{1.11, 7}, [2]float64{3.33, 2}),
	}

	for _, set := range sets {
		got := Calculate(set)
		if want := Round2(got.ItemsPrice + got.ShippingPrice - got.DiscountPrice); got.TotalPrice != want {
			t.Errorf("total %v does not match items+shipping-discount %v", got.TotalPrice, want)
		}
		if want := Round2(0.10 * got.ItemsPrice); got.DiscountPrice != want {
			t.Errorf("discount %v is not 10%% of items %v", got.DiscountPrice, got.ItemsPrice)
		}
		wantShipping := 10.0
		if got.ItemsPrice > 100 {
			wantShipping = 0
		}
		if got.ShippingPrice != wantShipping {
			t.Errorf("shipping %v for items %v, want %v", got.ShippingPrice, got.ItemsPrice, wantShipping)
		}
	}
}

func TestToSubunits(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{0.29, 29},
		{10.55, 1055},
		{100, 10000},
		{94.50, 9450},
		{0, 0},
		{0.005, 1},
	}
	for _, tt := range tests {
		if got := ToSubunits(tt.in); got != tt.want {
			t.Errorf("ToSubunits(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.01},
		{1.004, 1.00},
		{10.50, 10.50},
		{0, 0},
		{2.675, 2.68},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
