package convertkit

import (
	"context"
	"fmt"

	"github.com/shauncritzer/rewired/app/repository"
)

// PurchaseTagger resolves a product slug to its ConvertKit tag and applies it
// after a completed purchase.
type PurchaseTagger struct {
	client   *Client
	products repository.ProductRepository
}

func NewPurchaseTagger(client *Client, products repository.ProductRepository) *PurchaseTagger {
	return &PurchaseTagger{client: client, products: products}
}

// TagPurchase tags the buyer with the product's configured tag. A product
// without a tag is not an error.
func (t *PurchaseTagger) TagPurchase(ctx context.Context, email, productSlug string) error {
	product, err := t.products.GetBySlug(productSlug)
	if err != nil {
		return fmt.Errorf("convertkit: resolve product %q: %w", productSlug, err)
	}
	if product.ConvertKitTagID == "" {
		return nil
	}
	return t.client.Tag(ctx, product.ConvertKitTagID, email)
}
