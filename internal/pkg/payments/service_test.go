package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shauncritzer/rewired/app/models"
)

type fakeCheckoutClient struct {
	calls   int
	lastReq CheckoutParams
	err     error
}

func (f *fakeCheckoutClient) CreateSession(_ context.Context, params CheckoutParams) (*CheckoutSession, error) {
	f.calls++
	f.lastReq = params
	if f.err != nil {
		return nil, f.err
	}
	return &CheckoutSession{SessionID: "cs_test_123", URL: "https://checkout.stripe.com/pay/cs_test_123"}, nil
}

type fakeProductRepo struct {
	products map[string]*models.Product
}

func (f *fakeProductRepo) Create(p *models.Product) error  { return nil }
func (f *fakeProductRepo) GetByID(uint) (*models.Product, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeProductRepo) GetBySlug(slug string) (*models.Product, error) {
	if p, ok := f.products[slug]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeProductRepo) GetActive() ([]models.Product, error) { return nil, nil }
func (f *fakeProductRepo) GetAll() ([]models.Product, error)    { return nil, nil }
func (f *fakeProductRepo) Update(*models.Product) error         { return nil }
func (f *fakeProductRepo) Delete(uint) error                    { return nil }
func (f *fakeProductRepo) Upsert(*models.Product) error         { return nil }
func (f *fakeProductRepo) Count() (int64, error)                { return 0, nil }

type fakeOrderRepo struct {
	created []*models.Order
}

func (f *fakeOrderRepo) Create(o *models.Order) error { f.created = append(f.created, o); return nil }
func (f *fakeOrderRepo) GetByID(uint) (*models.Order, error) { return nil, gorm.ErrRecordNotFound }
func (f *fakeOrderRepo) GetByOrderNumber(string) (*models.Order, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeOrderRepo) GetBySessionID(string) (*models.Order, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeOrderRepo) GetByEmail(string) ([]models.Order, error)          { return nil, nil }
func (f *fakeOrderRepo) GetCompletedByEmail(string) ([]models.Order, error) { return nil, nil }
func (f *fakeOrderRepo) HasCompletedOrder(string, string) (bool, error)     { return false, nil }
func (f *fakeOrderRepo) Update(*models.Order) error                         { return nil }
func (f *fakeOrderRepo) MarkCompleted(uint, string) error                   { return nil }
func (f *fakeOrderRepo) List(int, int) ([]models.Order, error)              { return nil, nil }
func (f *fakeOrderRepo) Count() (int64, error)                              { return 0, nil }

func newTestService(products map[string]*models.Product) (*Service, *fakeCheckoutClient, *fakeOrderRepo) {
	client := &fakeCheckoutClient{}
	orders := &fakeOrderRepo{}
	svc := NewService(&fakeProductRepo{products: products}, orders, client)
	return svc, client, orders
}

func TestCreateCheckoutSessionKnownSlug(t *testing.T) {
	svc, client, orders := newTestService(map[string]*models.Product{
		"recovery-roadmap": {
			ID:            2,
			Slug:          "recovery-roadmap",
			Price:         9700,
			Currency:      "usd",
			Type:          models.ProductTypeOneTime,
			Status:        models.ProductStatusActive,
			StripePriceID: "price_roadmap",
		},
	})

	session, err := svc.CreateCheckoutSession(context.Background(), "recovery-roadmap", "buyer@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, session.URL)
	assert.Equal(t, "cs_test_123", session.SessionID)

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, "price_roadmap", client.lastReq.PriceID)
	assert.False(t, client.lastReq.Recurring)

	require.Len(t, orders.created, 1)
	order := orders.created[0]
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "cs_test_123", order.StripeSessionID)
	assert.Equal(t, int64(9700), order.Amount)
	assert.NotEmpty(t, order.OrderNumber)
}

func TestCreateCheckoutSessionUnknownSlug(t *testing.T) {
	svc, client, orders := newTestService(nil)

	_, err := svc.CreateCheckoutSession(context.Background(), "no-such-product", "buyer@example.com")
	require.ErrorIs(t, err, ErrProductNotFound)

	// The processor must never be contacted for an unknown slug.
	assert.Equal(t, 0, client.calls)
	assert.Empty(t, orders.created)
}

func TestCreateCheckoutSessionInactiveProduct(t *testing.T) {
	svc, client, _ := newTestService(map[string]*models.Product{
		"retired-offer": {
			Slug:          "retired-offer",
			Status:        models.ProductStatusInactive,
			StripePriceID: "price_x",
		},
	})

	_, err := svc.CreateCheckoutSession(context.Background(), "retired-offer", "")
	require.ErrorIs(t, err, ErrProductNotFound)
	assert.Equal(t, 0, client.calls)
}

func TestCreateCheckoutSessionMissingPriceID(t *testing.T) {
	svc, client, _ := newTestService(map[string]*models.Product{
		"unwired": {Slug: "unwired", Status: models.ProductStatusActive},
	})

	_, err := svc.CreateCheckoutSession(context.Background(), "unwired", "")
	require.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, 0, client.calls)
}

func TestCreateCheckoutSessionSubscriptionMode(t *testing.T) {
	svc, client, _ := newTestService(map[string]*models.Product{
		"membership": {
			Slug:            "membership",
			Price:           2900,
			Type:            models.ProductTypeRecurring,
			BillingInterval: "month",
			Status:          models.ProductStatusActive,
			StripePriceID:   "price_membership",
		},
	})

	_, err := svc.CreateCheckoutSession(context.Background(), "membership", "member@example.com")
	require.NoError(t, err)
	assert.True(t, client.lastReq.Recurring)
	assert.Equal(t, "member@example.com", client.lastReq.CustomerEmail)
}

func TestCreateCheckoutSessionKeepsProcessorError(t *testing.T) {
	svc, client, orders := newTestService(map[string]*models.Product{
		"recovery-roadmap": {
			Slug:          "recovery-roadmap",
			Status:        models.ProductStatusActive,
			StripePriceID: "price_roadmap",
		},
	})
	client.err = errors.New("No such price: 'price_roadmap'")

	_, err := svc.CreateCheckoutSession(context.Background(), "recovery-roadmap", "")
	require.Error(t, err)
	// Raw processor text must survive for the admin diagnostic page.
	assert.Contains(t, err.Error(), "No such price")
	assert.Empty(t, orders.created)
}
