package models

import "testing"

func TestProductDisplayPrice(t *testing.T) {
	tests := []struct {
		price int64
		want  string
	}{
		{9700, "$97.00"},
		{999, "$9.99"},
		{100, "$1.00"},
		{5, "$0.05"},
		{0, "$0.00"},
	}

	for _, tt := range tests {
		p := &Product{Price: tt.price}
		if got := p.DisplayPrice(); got != tt.want {
			t.Fatalf("DisplayPrice(%d) = %q, want %q", tt.price, got, tt.want)
		}
	}
}

func TestProductFeatures(t *testing.T) {
	p := &Product{}

	if got := p.FeatureList(); got != nil {
		t.Fatalf("FeatureList on empty column = %v, want nil", got)
	}

	features := []string{"12 video lessons", "Lifetime access", "AI coach included"}
	if err := p.SetFeatures(features); err != nil {
		t.Fatalf("SetFeatures: %v", err)
	}
	got := p.FeatureList()
	if len(got) != len(features) {
		t.Fatalf("FeatureList after SetFeatures = %v", got)
	}
	for i := range features {
		if got[i] != features[i] {
			t.Fatalf("feature %d = %q, want %q", i, got[i], features[i])
		}
	}

	p.Features = "[broken"
	if got := p.FeatureList(); got != nil {
		t.Fatalf("FeatureList on malformed column = %v, want nil", got)
	}
}

func TestProductFlags(t *testing.T) {
	p := &Product{Type: ProductTypeRecurring, Status: ProductStatusActive}
	if !p.IsRecurring() {
		t.Fatal("recurring product not recognized")
	}
	if !p.IsActive() {
		t.Fatal("active product not recognized")
	}

	p = &Product{Type: ProductTypeOneTime, Status: ProductStatusInactive}
	if p.IsRecurring() {
		t.Fatal("one-time product reported recurring")
	}
	if p.IsActive() {
		t.Fatal("inactive product reported active")
	}
}

func TestProductValidate(t *testing.T) {
	p := &Product{
		Name:   "Recovery Roadmap",
		Slug:   "recovery-roadmap",
		Price:  9700,
		Type:   ProductTypeOneTime,
		Status: ProductStatusActive,
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("valid product rejected: %v", err)
	}

	p.Price = -1
	if err := p.Validate(); err == nil {
		t.Fatal("negative price accepted")
	}
}
