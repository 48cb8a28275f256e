package checkout

import (
	"context"
	"errors"
	"testing"

	"crickmart/internal/api"
	"crickmart/internal/cart"
	"crickmart/internal/domain"
	"crickmart/internal/forms"
	"crickmart/internal/routes"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memStorage is an in-memory storage.Store for tests.
type memStorage struct {
	values map[string]string
}

func newMemStorage() *memStorage {
	return &memStorage{values: make(map[string]string)}
}

func (m *memStorage) Get(key string) (string, bool) {
	value, ok := m.values[key]
	return value, ok
}

func (m *memStorage) Set(key, value string) error {
	m.values[key] = value
	return nil
}

func (m *memStorage) Remove(key string) error {
	delete(m.values, key)
	return nil
}

// fakeSession satisfies SessionState.
type fakeSession struct {
	authed bool
}

func (f *fakeSession) IsAuthenticated() bool {
	return f.authed
}

// mockOrderPlacer satisfies OrderPlacer.
type mockOrderPlacer struct {
	order *domain.Order
	err   error
	calls int
	sent  domain.OrderDraft
}

func (m *mockOrderPlacer) Checkout(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error) {
	m.calls++
	m.sent = draft
	return m.order, m.err
}

func testProduct(id string) domain.Product {
	return domain.Product{
		ProductID:   id,
		ProductName: "Product " + id,
		Price:       decimal.NewFromFloat(25.00),
	}
}

func validShipping() forms.ShippingForm {
	return forms.ShippingForm{
		FirstName:   "Sam",
		LastName:    "Byrne",
		MobilePhone: "0851234567",
		Eircode:     "D02X285",
	}
}

func validPayment() forms.PaymentForm {
	return forms.PaymentForm{
		CardNumber:     "4242 4242 4242 4242",
		CardholderName: "Sam Byrne",
		ExpiryDate:     "12/27",
		CVV:            "123",
	}
}

func newFlow(t *testing.T, authed bool, placer OrderPlacer) (*Flow, *cart.Store) {
	t.Helper()
	cartStore := cart.New(newMemStorage(), zap.NewNop())
	flow := New(cartStore, &fakeSession{authed: authed}, placer, zap.NewNop())
	return flow, cartStore
}

func TestBeginWithEmptyCartRedirectsToCatalog(t *testing.T) {
	flow, cartStore := newFlow(t, true, &mockOrderPlacer{})

	next := flow.Begin()

	assert.Equal(t, routes.Products, next)
	assert.Equal(t, StateCart, flow.State())
	assert.True(t, cartStore.OrderDraft().Empty(), "no draft should be created")
}

func TestBeginUnauthenticatedRedirectsToLogin(t *testing.T) {
	flow, cartStore := newFlow(t, false, &mockOrderPlacer{})
	cartStore.AddOrSetItem(testProduct("p"), 1)

	next := flow.Begin()

	assert.Equal(t, routes.Login, next)
	assert.Equal(t, StateCart, flow.State())
}

func TestBeginAdvancesToShippingDetails(t *testing.T) {
	flow, cartStore := newFlow(t, true, &mockOrderPlacer{})
	cartStore.AddOrSetItem(testProduct("p"), 1)

	next := flow.Begin()

	assert.Equal(t, routes.Checkout, next)
	assert.Equal(t, StateShippingDetails, flow.State())
}

func TestSubmitShippingBuildsDraftFromCartSnapshot(t *testing.T) {
	flow, cartStore := newFlow(t, true, &mockOrderPlacer{})
	cartStore.AddOrSetItem(testProduct("p"), 2)
	cartStore.AddOrSetItem(testProduct("q"), 3)
	flow.Begin()

	next, err := flow.SubmitShipping(validShipping())
	require.NoError(t, err)

	assert.Equal(t, routes.PlaceOrder, next)
	assert.Equal(t, StatePayment, flow.State())

	draft := cartStore.OrderDraft()
	assert.Equal(t, "Sam", draft.RecipientFirstName)
	assert.Equal(t, "D02X285", draft.RecipientEircode)
	require.Len(t, draft.Items, 2)
	assert.Equal(t, domain.OrderItemRef{ProductID: "p", Quantity: 2}, draft.Items[0])
	assert.Equal(t, domain.OrderItemRef{ProductID: "q", Quantity: 3}, draft.Items[1])
}

func TestSubmitShippingRejectsInvalidForm(t *testing.T) {
	flow, cartStore := newFlow(t, true, &mockOrderPlacer{})
	cartStore.AddOrSetItem(testProduct("p"), 1)
	flow.Begin()

	_, err := flow.SubmitShipping(forms.ShippingForm{FirstName: "Sam"})

	assert.Error(t, err)
	assert.Equal(t, StateShippingDetails, flow.State())
	assert.True(t, cartStore.OrderDraft().Empty())
}

func TestSubmitShippingOutOfOrderFails(t *testing.T) {
	flow, _ := newFlow(t, true, &mockOrderPlacer{})

	_, err := flow.SubmitShipping(validShipping())

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSubmitPaymentSuccessClearsCartAndDraft(t *testing.T) {
	placer := &mockOrderPlacer{order: &domain.Order{OrderID: "o-1"}}
	flow, cartStore := newFlow(t, true, placer)
	cartStore.AddOrSetItem(testProduct("p"), 2)
	flow.Begin()
	_, err := flow.SubmitShipping(validShipping())
	require.NoError(t, err)

	next, order, err := flow.SubmitPayment(context.Background(), validPayment())
	require.NoError(t, err)

	assert.Equal(t, routes.Orders, next)
	assert.Equal(t, "o-1", order.OrderID)
	assert.Equal(t, StateSuccess, flow.State())
	assert.Equal(t, 0, cartStore.TotalItemCount())
	assert.True(t, cartStore.OrderDraft().Empty())
	assert.Equal(t, 1, placer.calls)
	assert.Equal(t, "Sam", placer.sent.RecipientFirstName)
}

func TestSubmitPaymentFailureIsRetryable(t *testing.T) {
	placer := &mockOrderPlacer{err: &api.RemoteError{Status: 500, Message: "boom"}}
	flow, cartStore := newFlow(t, true, placer)
	cartStore.AddOrSetItem(testProduct("p"), 2)
	flow.Begin()
	_, err := flow.SubmitShipping(validShipping())
	require.NoError(t, err)

	_, _, err = flow.SubmitPayment(context.Background(), validPayment())
	require.Error(t, err)

	assert.Equal(t, StateFailed, flow.State())
	assert.Equal(t, err, flow.LastError())
	// Cart and draft survive the failure.
	assert.Equal(t, 1, cartStore.TotalItemCount())
	assert.False(t, cartStore.OrderDraft().Empty())

	// Retry returns to the payment step and a second attempt succeeds.
	require.NoError(t, flow.Retry())
	assert.Equal(t, StatePayment, flow.State())

	placer.err = nil
	placer.order = &domain.Order{OrderID: "o-2"}
	next, order, err := flow.SubmitPayment(context.Background(), validPayment())
	require.NoError(t, err)
	assert.Equal(t, routes.Orders, next)
	assert.Equal(t, "o-2", order.OrderID)
}

func TestSubmitPaymentRejectsInvalidCard(t *testing.T) {
	placer := &mockOrderPlacer{}
	flow, cartStore := newFlow(t, true, placer)
	cartStore.AddOrSetItem(testProduct("p"), 1)
	flow.Begin()
	_, err := flow.SubmitShipping(validShipping())
	require.NoError(t, err)

	_, _, err = flow.SubmitPayment(context.Background(), forms.PaymentForm{CVV: "12a"})

	assert.Error(t, err)
	assert.Equal(t, StatePayment, flow.State())
	assert.Equal(t, 0, placer.calls, "invalid card must not reach the backend")
}

func TestReturnToShippingPreservesDraft(t *testing.T) {
	flow, cartStore := newFlow(t, true, &mockOrderPlacer{})
	cartStore.AddOrSetItem(testProduct("p"), 1)
	flow.Begin()
	_, err := flow.SubmitShipping(validShipping())
	require.NoError(t, err)

	require.NoError(t, flow.ReturnToShipping())

	assert.Equal(t, StateShippingDetails, flow.State())
	assert.False(t, cartStore.OrderDraft().Empty())
}

func TestGuardCartRedirectsWhenCartEmptiesExternally(t *testing.T) {
	flow, cartStore := newFlow(t, true, &mockOrderPlacer{})
	cartStore.AddOrSetItem(testProduct("p"), 1)
	flow.Begin()

	// Some other surface empties the cart mid-checkout.
	cartStore.Clear()

	assert.Equal(t, routes.Products, flow.GuardCart())
	assert.Equal(t, StateCart, flow.State())
}

func TestGuardCartNoOpOutsideCheckout(t *testing.T) {
	flow, _ := newFlow(t, true, &mockOrderPlacer{})

	assert.Equal(t, routes.Route(""), flow.GuardCart())
}

func TestRetryOnlyFromFailed(t *testing.T) {
	flow, _ := newFlow(t, true, &mockOrderPlacer{})

	err := flow.Retry()

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSubmitPaymentWithoutDraftFails(t *testing.T) {
	flow, cartStore := newFlow(t, true, &mockOrderPlacer{})
	cartStore.AddOrSetItem(testProduct("p"), 1)
	flow.Begin()
	// Force the payment state without a shipping submission.
	flow.state = StatePayment

	_, _, err := flow.SubmitPayment(context.Background(), validPayment())

	assert.True(t, errors.Is(err, ErrDraftMissing))
}
