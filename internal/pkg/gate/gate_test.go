package gate

import "testing"

func TestDecideAnonymous(t *testing.T) {
	tests := []struct {
		count      int
		allowed    bool
		needsEmail bool
		needsBuy   bool
	}{
		{count: 0, allowed: true},
		{count: 1, allowed: true},
		{count: 2, allowed: true},
		{count: 3, needsEmail: true},
		{count: 5, needsEmail: true},
		{count: 9, needsEmail: true},
		{count: 10, needsBuy: true},
		{count: 50, needsBuy: true},
	}

	for _, tt := range tests {
		got := Decide(tt.count, TierAnonymous)
		if got.Allowed != tt.allowed || got.NeedsEmail != tt.needsEmail || got.NeedsPurchase != tt.needsBuy {
			t.Fatalf("Decide(%d, anonymous) = %+v, want allowed=%v needsEmail=%v needsPurchase=%v",
				tt.count, got, tt.allowed, tt.needsEmail, tt.needsBuy)
		}
	}
}

func TestDecideRegistered(t *testing.T) {
	tests := []struct {
		count    int
		allowed  bool
		needsBuy bool
	}{
		{count: 0, allowed: true},
		{count: 3, allowed: true},
		{count: 9, allowed: true},
		{count: 10, needsBuy: true},
		{count: 11, needsBuy: true},
	}

	for _, tt := range tests {
		got := Decide(tt.count, TierRegistered)
		if got.Allowed != tt.allowed || got.NeedsPurchase != tt.needsBuy {
			t.Fatalf("Decide(%d, registered) = %+v, want allowed=%v needsPurchase=%v",
				tt.count, got, tt.allowed, tt.needsBuy)
		}
		if got.NeedsEmail {
			t.Fatalf("Decide(%d, registered) prompted for an email it already has", tt.count)
		}
	}
}

func TestDecidePurchasedIsUnlimited(t *testing.T) {
	for _, count := range []int{0, 3, 10, 1000} {
		got := Decide(count, TierPurchased)
		if !got.Allowed {
			t.Fatalf("Decide(%d, purchased) not allowed", count)
		}
		if got.Remaining != -1 {
			t.Fatalf("Decide(%d, purchased) remaining = %d, want -1", count, got.Remaining)
		}
	}
}

func TestDecideRemainingCountsDown(t *testing.T) {
	if got := Decide(0, TierAnonymous); got.Remaining != 2 {
		t.Fatalf("anonymous first message remaining = %d, want 2", got.Remaining)
	}
	if got := Decide(2, TierAnonymous); got.Remaining != 0 {
		t.Fatalf("anonymous last free message remaining = %d, want 0", got.Remaining)
	}
	if got := Decide(9, TierRegistered); got.Remaining != 0 {
		t.Fatalf("registered last message remaining = %d, want 0", got.Remaining)
	}
}

func TestTierOrdering(t *testing.T) {
	if !(TierAnonymous < TierRegistered && TierRegistered < TierPurchased) {
		t.Fatalf("tier ordering broken: %d %d %d", TierAnonymous, TierRegistered, TierPurchased)
	}
}

func TestTierString(t *testing.T) {
	tests := []struct {
		tier Tier
		want string
	}{
		{TierAnonymous, "anonymous"},
		{TierRegistered, "registered"},
		{TierPurchased, "purchased"},
	}
	for _, tt := range tests {
		if got := tt.tier.String(); got != tt.want {
			t.Fatalf("Tier(%d).String() = %q, want %q", tt.tier, got, tt.want)
		}
	}
}
