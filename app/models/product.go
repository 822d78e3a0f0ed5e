package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	ProductTypeOneTime   = "one_time"
	ProductTypeRecurring = "recurring"
)

const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product is a purchasable digital offer. Price is stored in minor currency
// units; StripePriceID links the row to the processor-side price object.
type Product struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=3,max=255"`
	Slug             string    `gorm:"uniqueIndex;type:varchar(255);not null" json:"slug" validate:"required,min=3,max=255"`
	Description      string    `gorm:"type:text" json:"description"`
	Price            int64     `gorm:"not null" json:"price" validate:"gte=0"`
	Currency         string    `gorm:"type:varchar(3);default:'usd'" json:"currency"`
	StripeProductID  string    `gorm:"type:varchar(255)" json:"stripe_product_id"`
	StripePriceID    string    `gorm:"type:varchar(255)" json:"stripe_price_id"`
	Type             string    `gorm:"type:varchar(20);default:'one_time'" json:"type" validate:"oneof=one_time recurring"`
	BillingInterval  string    `gorm:"type:varchar(10)" json:"billing_interval"`
	CoverImage       string    `gorm:"type:varchar(512)" json:"cover_image"`
	Features         string    `gorm:"type:text" json:"features"`
	ConvertKitTagID  string    `gorm:"type:varchar(100)" json:"convertkit_tag_id"`
	Status           string    `gorm:"type:varchar(20);default:'active';index" json:"status" validate:"oneof=active inactive"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) Validate() error {
	v := validator.New()
	return v.Struct(p)
}

// FeatureList decodes the JSON features column; malformed data yields an
// empty list.
func (p *Product) FeatureList() []string {
	if p.Features == "" {
		return nil
	}
	var features []string
	if err := json.Unmarshal([]byte(p.Features), &features); err != nil {
		return nil
	}
	return features
}

// SetFeatures encodes the given feature strings into the JSON column.
func (p *Product) SetFeatures(features []string) error {
	if len(features) == 0 {
		p.Features = ""
		return nil
	}
	encoded, err := json.Marshal(features)
	if err != nil {
		return err
	}
	p.Features = string(encoded)
	return nil
}

// IsRecurring reports whether checkout should use subscription mode.
func (p *Product) IsRecurring() bool {
	return p.Type == ProductTypeRecurring
}

// IsActive reports whether the product can be purchased.
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// DisplayPrice renders the price for templates, e.g. "$97.00".
func (p *Product) DisplayPrice() string {
	return fmt.Sprintf("$%d.%02d", p.Price/100, p.Price%100)
}
