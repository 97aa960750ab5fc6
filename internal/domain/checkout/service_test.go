// internal/domain/checkout/service_test.go
package checkout

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/infrastructure/commerce"
)

type fakeStore struct {
	data map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}}
}

func (f *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := f.data[key]
	if !ok {
		return nil, nil
	}
	return value, nil
}

func (f *fakeStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

// fakeAPI implements MetadataAPI with per-resource error injection
type fakeAPI struct {
	methods    []commerce.PaymentMethodMeta
	options    []commerce.DeliveryOption
	stores     []commerce.PickupStore
	addresses  []commerce.Address
	methodsErr error
	optionsErr error
	storesErr  error
}

func (f *fakeAPI) PaymentMethods(_ context.Context) ([]commerce.PaymentMethodMeta, error) {
	return f.methods, f.methodsErr
}

func (f *fakeAPI) DeliveryOptions(_ context.Context) ([]commerce.DeliveryOption, error) {
	return append([]commerce.DeliveryOption{}, f.options...), f.optionsErr
}

func (f *fakeAPI) PickupStores(_ context.Context) ([]commerce.PickupStore, error) {
	return f.stores, f.storesErr
}

func (f *fakeAPI) Addresses(_ context.Context, _ string) ([]commerce.Address, error) {
	return f.addresses, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestService(api *fakeAPI) (*Service, *cart.Service) {
	store := newFakeStore()
	cartService := cart.NewService(store, time.Hour)
	return NewService(store, api, cartService, time.Hour, testLogger()), cartService
}

func defaultAPI() *fakeAPI {
	return &fakeAPI{
		methods: []commerce.PaymentMethodMeta{payOnlineShipped, payOnDelivery, payInStore},
		options: []commerce.DeliveryOption{
			{ID: "express", Name: "Express", Cost: decimal.NewFromInt(15)},
			shippedOption,
			pickupOption,
		},
		stores: []commerce.PickupStore{
			downtownStore,
			{ID: "mag2", Name: "Riverside", City: "Paris"},
		},
		addresses: []commerce.Address{homeAddress},
	}
}

func seedCart(t *testing.T, cartService *cart.Service, sessionID string) {
	t.Helper()
	_, err := cartService.AddItem(context.Background(), sessionID, &cart.AddItemRequest{
		ProductID: "p1",
		Name:      "Product p1",
		Price:     decimal.NewFromInt(100),
		Quantity:  2,
	})
	require.NoError(t, err)
}

func TestMetadataSortsDeliveryByCost(t *testing.T) {
	service, _ := newTestService(defaultAPI())

	meta := service.Metadata(context.Background())

	require.Len(t, meta.PaymentMethods, 3)
	require.Len(t, meta.DeliveryOptions, 3)
	assert.Equal(t, "pickup", meta.DeliveryOptions[0].ID)
	assert.Equal(t, "std", meta.DeliveryOptions[1].ID)
	assert.Equal(t, "express", meta.DeliveryOptions[2].ID)
}

func TestMetadataDegradesPerResource(t *testing.T) {
	api := defaultAPI()
	api.optionsErr = errors.New("upstream down")
	service, _ := newTestService(api)

	meta := service.Metadata(context.Background())

	assert.Len(t, meta.PaymentMethods, 3)
	assert.Empty(t, meta.DeliveryOptions)

	api = defaultAPI()
	api.methodsErr = errors.New("upstream down")
	service, _ = newTestService(api)

	meta = service.Metadata(context.Background())

	assert.Empty(t, meta.PaymentMethods)
	assert.Len(t, meta.DeliveryOptions, 3)
}

func TestPickupStoresSearch(t *testing.T) {
	service, _ := newTestService(defaultAPI())
	ctx := context.Background()

	assert.Len(t, service.PickupStores(ctx, ""), 2)

	matched := service.PickupStores(ctx, "river")
	require.Len(t, matched, 1)
	assert.Equal(t, "mag2", matched[0].ID)

	matched = service.PickupStores(ctx, "LYON")
	require.Len(t, matched, 1)
	assert.Equal(t, "mag1", matched[0].ID)
}

func TestPickupStoresDegradesOnFailure(t *testing.T) {
	api := defaultAPI()
	api.storesErr = errors.New("upstream down")
	service, _ := newTestService(api)

	assert.Empty(t, service.PickupStores(context.Background(), ""))
}

func TestBeginCheckoutGuardsEmptyCart(t *testing.T) {
	service, _ := newTestService(defaultAPI())

	_, err := service.BeginCheckout(context.Background(), "sess1")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestBeginCheckoutPersistsStep(t *testing.T) {
	service, cartService := newTestService(defaultAPI())
	ctx := context.Background()
	seedCart(t, cartService, "sess1")

	view, err := service.BeginCheckout(ctx, "sess1")
	require.NoError(t, err)
	assert.Equal(t, StepCheckout, view.Session.Step)

	reread, err := service.GetSession(ctx, "sess1")
	require.NoError(t, err)
	assert.Equal(t, StepCheckout, reread.Session.Step)
}

func TestBeginCheckoutReplacesCompletedSession(t *testing.T) {
	service, cartService := newTestService(defaultAPI())
	ctx := context.Background()
	seedCart(t, cartService, "sess1")

	_, err := service.BeginCheckout(ctx, "sess1")
	require.NoError(t, err)
	_, err = service.CompleteOrder(ctx, "sess1", "ORDER-123")
	require.NoError(t, err)

	view, err := service.BeginCheckout(ctx, "sess1")
	require.NoError(t, err)
	assert.Equal(t, StepCheckout, view.Session.Step)
	assert.Empty(t, view.Session.OrderReference)
}

func TestSelectPaymentMethodByLabel(t *testing.T) {
	service, cartService := newTestService(defaultAPI())
	ctx := context.Background()
	seedCart(t, cartService, "sess1")

	_, err := service.BeginCheckout(ctx, "sess1")
	require.NoError(t, err)

	view, err := service.SelectPaymentMethod(ctx, "sess1", "Cash on delivery")
	require.NoError(t, err)
	require.NotNil(t, view.Session.Payment)
	assert.True(t, view.Session.Payment.RequireAddress)
	assert.False(t, view.Session.Payment.PayOnline)

	// visible options exclude pickup for an offline address-requiring method
	require.Len(t, view.VisibleDelivery, 2)
	for _, opt := range view.VisibleDelivery {
		assert.False(t, opt.Pickup)
	}
}

func TestSelectPaymentMethodUnknownLabel(t *testing.T) {
	service, cartService := newTestService(defaultAPI())
	ctx := context.Background()
	seedCart(t, cartService, "sess1")

	_, err := service.BeginCheckout(ctx, "sess1")
	require.NoError(t, err)

	_, err = service.SelectPaymentMethod(ctx, "sess1", "Barter")
	assert.ErrorIs(t, err, ErrUnknownSelection)
}

func TestSelectDeliveryMethodAndAddress(t *testing.T) {
	service, cartService := newTestService(defaultAPI())
	ctx := context.Background()
	seedCart(t, cartService, "sess1")

	_, err := service.BeginCheckout(ctx, "sess1")
	require.NoError(t, err)
	_, err = service.SelectPaymentMethod(ctx, "sess1", "Cash on delivery")
	require.NoError(t, err)

	view, err := service.SelectDeliveryMethod(ctx, "sess1", "std")
	require.NoError(t, err)
	require.NotNil(t, view.Session.Delivery)
	assert.Equal(t, "Standard", view.Session.Delivery.Name)

	view, err = service.SelectAddress(ctx, "sess1", "cred", "addr1")
	require.NoError(t, err)
	assert.Equal(t, "addr1", view.Session.AddressID)
	assert.Equal(t, "Home, 1 Main St, Lyon", view.Session.AddressDisplay)
	assert.NoError(t, view.Session.CanSubmit())
}

func TestSelectMagasinFlow(t *testing.T) {
	service, cartService := newTestService(defaultAPI())
	ctx := context.Background()
	seedCart(t, cartService, "sess1")

	_, err := service.BeginCheckout(ctx, "sess1")
	require.NoError(t, err)
	_, err = service.SelectPaymentMethod(ctx, "sess1", "Pay in store")
	require.NoError(t, err)
	_, err = service.SelectDeliveryMethod(ctx, "sess1", "pickup")
	require.NoError(t, err)

	view, err := service.SelectMagasin(ctx, "sess1", "mag1")
	require.NoError(t, err)
	require.NotNil(t, view.Session.Magasin)
	assert.Equal(t, "Downtown", view.Session.Magasin.Name)
	assert.NoError(t, view.Session.CanSubmit())

	_, err = service.SelectMagasin(ctx, "sess1", "nope")
	assert.ErrorIs(t, err, ErrUnknownSelection)
}

func TestResetDiscardsSession(t *testing.T) {
	service, cartService := newTestService(defaultAPI())
	ctx := context.Background()
	seedCart(t, cartService, "sess1")

	_, err := service.BeginCheckout(ctx, "sess1")
	require.NoError(t, err)

	require.NoError(t, service.Reset(ctx, "sess1"))

	view, err := service.GetSession(ctx, "sess1")
	require.NoError(t, err)
	assert.Equal(t, StepCart, view.Session.Step)
}
