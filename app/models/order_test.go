package models

import (
	"strings"
	"testing"
)

func TestNewOrderNumber(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := NewOrderNumber()
		if !strings.HasPrefix(n, "RW-") {
			t.Fatalf("order number %q missing RW- prefix", n)
		}
		if len(n) != 21 {
			t.Fatalf("order number %q has length %d, want 21", n, len(n))
		}
		if seen[n] {
			t.Fatalf("duplicate order number %q", n)
		}
		seen[n] = true
	}
}

func TestOrderIsCompleted(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{OrderStatusPending, false},
		{OrderStatusCompleted, true},
		{OrderStatusFailed, false},
		{OrderStatusRefunded, false},
	}

	for _, tt := range tests {
		o := &Order{Status: tt.status}
		if got := o.IsCompleted(); got != tt.want {
			t.Fatalf("IsCompleted with status %q = %v, want %v", tt.status, got, tt.want)
		}
	}
}
