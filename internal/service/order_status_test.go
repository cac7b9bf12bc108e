package service

import (
	"testing"

	"github.com/parskala/internal/models"
)

func TestCanTransitionOrderStatus(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{models.OrderStatusPending, models.OrderStatusPaid, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusPending, models.OrderStatusShipped, false},
		{models.OrderStatusPaid, models.OrderStatusProcessing, true},
		{models.OrderStatusPaid, models.OrderStatusCancelled, true},
		{models.OrderStatusPaid, models.OrderStatusPending, false},
		{models.OrderStatusProcessing, models.OrderStatusShipped, true},
		{models.OrderStatusProcessing, models.OrderStatusDelivered, false},
		{models.OrderStatusShipped, models.OrderStatusDelivered, true},
		{models.OrderStatusShipped, models.OrderStatusCancelled, false},
		{models.OrderStatusDelivered, models.OrderStatusShipped, false},
		{models.OrderStatusCancelled, models.OrderStatusPending, false},
	}
	for _, c := range cases {
		if got := canTransitionOrderStatus(c.from, c.to); got != c.allowed {
			t.Fatalf("transition %s -> %s: expected %v, got %v", c.from, c.to, c.allowed, got)
		}
	}
}

func TestCanTransitionOrderStatusNormalizesInput(t *testing.T) {
	if !canTransitionOrderStatus(" Pending ", "PAID") {
		t.Fatalf("expected case-insensitive transition to be allowed")
	}
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, status := range []string{
		models.OrderStatusPending, models.OrderStatusPaid, models.OrderStatusProcessing,
		models.OrderStatusShipped, models.OrderStatusDelivered, models.OrderStatusCancelled,
	} {
		if !isValidOrderStatus(status) {
			t.Fatalf("expected %s to be valid", status)
		}
	}
	if isValidOrderStatus("refunded") {
		t.Fatalf("expected unknown status to be invalid")
	}
	if isValidOrderStatus("") {
		t.Fatalf("expected empty status to be invalid")
	}
}
