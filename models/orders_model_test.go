package models

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestOrder(owner primitive.ObjectID) *Order {
	now := time.Now()
	return &Order{
		ID:     primitive.NewObjectID(),
		UserID: owner,
		Items: []OrderItem{
			{Product: primitive.NewObjectID(), Name: "Paracetamol 500mg", Price: 4.99, Quantity: 2},
		},
		PaymentMethod:  "COD",
		DeliveryStatus: DeliveryPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestBuildOrderItems(t *testing.T) {
	regulatedID := primitive.NewObjectID()
	normalID := primitive.NewObjectID()
	catalog := map[primitive.ObjectID]Product{
		regulatedID: {
			ID:                   regulatedID,
			Name:                 "Knee Support Band",
			Slug:                 "knee-support-band",
			Price:                50,
			RequiresPrescription: true,
		},
		normalID: {
			ID:    normalID,
			Name:  "Vitamin C",
			Slug:  "vitamin-c",
			Price: 9.99,
		},
	}

	t.Run("empty selection", func(t *testing.T) {
		if _, _, err := BuildOrderItems(nil, catalog); !errors.Is(err, ErrEmptyCart) {
			t.Errorf("got %v, want ErrEmptyCart", err)
		}
	})

	t.Run("quantity below one", func(t *testing.T) {
		inputs := []OrderItemInput{{Product: normalID, Quantity: 0}}
		if _, _, err := BuildOrderItems(inputs, catalog); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("got %v, want ErrInvalidQuantity", err)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		inputs := []OrderItemInput{{Product: primitive.NewObjectID(), Quantity: 1}}
		if _, _, err := BuildOrderItems(inputs, catalog); !errors.Is(err, ErrUnknownProduct) {
			t.Errorf("got %v, want ErrUnknownProduct", err)
		}
	})

	t.Run("snapshot comes from the catalog", func(t *testing.T) {
		inputs := []OrderItemInput{{Product: normalID, Quantity: 3}}
		items, regulated, err := BuildOrderItems(inputs, catalog)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("got %d items, want 1", len(items))
		}
		if items[0].Price != 9.99 || items[0].Name != "Vitamin C" || items[0].Slug != "vitamin-c" {
			t.Errorf("snapshot %+v does not match catalog", items[0])
		}
		if items[0].Quantity != 3 {
			t.Errorf("quantity = %d, want 3", items[0].Quantity)
		}
		if regulated[normalID] {
			t.Error("vitamin marked regulated")
		}
	})

	t.Run("regulated item without evidence rejected before any persistence", func(t *testing.T) {
		inputs := []OrderItemInput{{Product: regulatedID, Quantity: 1}}
		items, regulated, err := BuildOrderItems(inputs, catalog)
		if err != nil {
			t.Fatalf("unexpected build error: %v", err)
		}
		var missing *MissingPrescriptionError
		if err := ValidatePrescriptions(items, regulated); !errors.As(err, &missing) {
			t.Fatalf("got %v, want MissingPrescriptionError", err)
		}
		if missing.Item != "Knee Support Band" {
			t.Errorf("offending item = %q", missing.Item)
		}
	})
}

func TestValidatePrescriptions(t *testing.T) {
	regulatedID := primitive.NewObjectID()
	normalID := primitive.NewObjectID()
	regulated := map[primitive.ObjectID]bool{regulatedID: true, normalID: false}

	tests := []struct {
		name     string
		items    []OrderItem
		wantItem string
	}{
		{
			name:  "no regulated items",
			items: []OrderItem{{Product: normalID, Name: "Vitamin C"}},
		},
		{
			name: "regulated item with evidence",
			items: []OrderItem{
				{Product: regulatedID, Name: "Knee Support Band", Prescription: "/uploads/prescriptions/1-a.jpg"},
			},
		},
		{
			name: "regulated item without evidence",
			items: []OrderItem{
				{Product: normalID, Name: "Vitamin C"},
				{Product: regulatedID, Name: "Knee Support Band"},
			},
			wantItem: "Knee Support Band",
		},
		{
			name: "unknown product treated as unregulated",
			items: []OrderItem{
				{Product: primitive.NewObjectID(), Name: "Bandage"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrescriptions(tt.items, regulated)
			if tt.wantItem == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var missing *MissingPrescriptionError
			if !errors.As(err, &missing) {
				t.Fatalf("want MissingPrescriptionError, got %v", err)
			}
			if missing.Item != tt.wantItem {
				t.Errorf("offending item = %q, want %q", missing.Item, tt.wantItem)
			}
		})
	}
}

func TestCanBeCancelledBy(t *testing.T) {
	owner := primitive.NewObjectID()
	order := newTestOrder(owner)

	if !order.CanBeCancelledBy(Principal{ID: owner}) {
		t.Error("owner should be allowed to cancel")
	}
	if !order.CanBeCancelledBy(Principal{ID: primitive.NewObjectID(), IsAdmin: true}) {
		t.Error("admin should be allowed to cancel")
	}
	if order.CanBeCancelledBy(Principal{ID: primitive.NewObjectID()}) {
		t.Error("stranger should not be allowed to cancel")
	}
}

func TestPaymentTime(t *testing.T) {
	fallback := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	provider := time.Date(2026, 7, 31, 9, 30, 0, 0, time.UTC)

	if got := PaymentTime("", fallback); !got.Equal(fallback) {
		t.Errorf("empty value: got %v, want fallback", got)
	}
	if got := PaymentTime(provider.Format(time.RFC3339), fallback); !got.Equal(provider) {
		t.Errorf("valid value: got %v, want provider time", got)
	}
	if got := PaymentTime("yesterday-ish", fallback); !got.Equal(fallback) {
		t.Errorf("garbage value: got %v, want fallback", got)
	}
}

func TestMarkPaid(t *testing.T) {
	order := newTestOrder(primitive.NewObjectID())
	now := time.Now()
	result := PaymentResult{ID: "pay_123", Status: "succeeded", EmailAddress: "a@b.com"}

	order.MarkPaid(result, "Online", now)

	if !order.IsPaid || order.PaidAt == nil || !order.PaidAt.Equal(now) {
		t.Fatal("order not marked paid")
	}
	if order.PaymentMethod != "Online" {
		t.Errorf("payment method not overwritten, got %q", order.PaymentMethod)
	}
	if order.PaymentResult == nil || order.PaymentResult.ID != "pay_123" {
		t.Error("payment result not recorded")
	}

	// Second call with the same result is harmless.
	order.MarkPaid(result, "", now)
	if !order.IsPaid || order.PaymentMethod != "Online" {
		t.Error("repeat pay changed state unexpectedly")
	}
}

func TestMarkDelivered(t *testing.T) {
	order := newTestOrder(primitive.NewObjectID())
	now := time.Now()

	if err := order.MarkDelivered(now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !order.IsDelivered || order.DeliveryStatus != DeliveryDelivered || order.DeliveredAt == nil {
		t.Error("delivered flags out of sync")
	}
}

func TestMarkDeliveredAfterCancel(t *testing.T) {
	order := newTestOrder(primitive.NewObjectID())
	now := time.Now()

	if err := order.Cancel(now); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if err := order.MarkDelivered(now); !errors.Is(err, ErrOrderCancelled) {
		t.Errorf("deliver after cancel = %v, want ErrOrderCancelled", err)
	}
	if order.IsDelivered {
		t.Error("cancelled order was marked delivered")
	}
}

func TestCancel(t *testing.T) {
	order := newTestOrder(primitive.NewObjectID())
	now := time.Now()

	if err := order.Cancel(now); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if !order.IsCancelled || order.DeliveryStatus != DeliveryCancelled {
		t.Error("cancel flags out of sync")
	}

	// Idempotent: cancelling again is a no-op, not an error.
	if err := order.Cancel(now.Add(time.Minute)); err != nil {
		t.Errorf("second cancel = %v, want nil", err)
	}
	if !order.IsCancelled {
		t.Error("second cancel flipped the flag back")
	}
}

func TestCancelAfterDeliver(t *testing.T) {
	order := newTestOrder(primitive.NewObjectID())
	now := time.Now()

	order.MarkPaid(PaymentResult{ID: "pay_1"}, "", now)
	if err := order.MarkDelivered(now); err != nil {
		t.Fatalf("deliver failed: %v", err)
	}
	if err := order.Cancel(now); !errors.Is(err, ErrAlreadyDelivered) {
		t.Errorf("cancel after deliver = %v, want ErrAlreadyDelivered", err)
	}
	if order.IsCancelled {
		t.Error("delivered order was cancelled")
	}
}

func TestCancelPaidOrder(t *testing.T) {
	order := newTestOrder(primitive.NewObjectID())
	now := time.Now()

	order.MarkPaid(PaymentResult{ID: "pay_1"}, "", now)
	if err := order.Cancel(now); err != nil {
		t.Fatalf("cancel of paid undelivered order failed: %v", err)
	}
	if !order.IsCancelled {
		t.Error("paid order not cancelled")
	}
}

func TestSetDeliveryStatus(t *testing.T) {
	now := time.Now()

	t.Run("out for delivery", func(t *testing.T) {
		order := newTestOrder(primitive.NewObjectID())
		if err := order.SetDeliveryStatus(DeliveryOutForDelivery, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.DeliveryStatus != DeliveryOutForDelivery || order.IsDelivered {
			t.Error("status update touched delivered flag")
		}
	})

	t.Run("delivered syncs flags", func(t *testing.T) {
		order := newTestOrder(primitive.NewObjectID())
		if err := order.SetDeliveryStatus(DeliveryDelivered, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !order.IsDelivered || order.DeliveredAt == nil {
			t.Error("delivered flags not synced")
		}
	})

	t.Run("cancelled syncs flag", func(t *testing.T) {
		order := newTestOrder(primitive.NewObjectID())
		if err := order.SetDeliveryStatus(DeliveryCancelled, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !order.IsCancelled {
			t.Error("cancelled flag not synced")
		}
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		order := newTestOrder(primitive.NewObjectID())
		if err := order.SetDeliveryStatus("shipped", now); !errors.Is(err, ErrInvalidDeliveryStatus) {
			t.Errorf("got %v, want ErrInvalidDeliveryStatus", err)
		}
	})

	t.Run("delivered rejected on cancelled order", func(t *testing.T) {
		order := newTestOrder(primitive.NewObjectID())
		if err := order.Cancel(now); err != nil {
			t.Fatalf("cancel failed: %v", err)
		}
		if err := order.SetDeliveryStatus(DeliveryDelivered, now); !errors.Is(err, ErrOrderCancelled) {
			t.Errorf("got %v, want ErrOrderCancelled", err)
		}
		if order.IsDelivered || order.DeliveryStatus != DeliveryCancelled {
			t.Error("cancelled order was marked delivered via status override")
		}
	})

	t.Run("reopening a cancelled order clears the flag", func(t *testing.T) {
		order := newTestOrder(primitive.NewObjectID())
		if err := order.Cancel(now); err != nil {
			t.Fatalf("cancel failed: %v", err)
		}
		if err := order.SetDeliveryStatus(DeliveryPending, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.IsCancelled {
			t.Error("cancelled flag stale after moving back to pending")
		}
		if order.DeliveryStatus != DeliveryPending {
			t.Errorf("status = %q, want pending", order.DeliveryStatus)
		}
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		order := newTestOrder(primitive.NewObjectID())
		if err := order.SetDeliveryStatus(DeliveryDelivered, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := order.SetDeliveryStatus(DeliveryPending, now); !errors.Is(err, ErrAlreadyDelivered) {
			t.Errorf("got %v, want ErrAlreadyDelivered", err)
		}
	})
}
