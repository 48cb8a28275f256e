package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"crickmart/internal/cart"
	"crickmart/internal/domain"
	"crickmart/internal/forms"
	"crickmart/internal/routes"

	"go.uber.org/zap"
)

// State is a step of the checkout flow. The flow is strictly linear and
// forward-only, with a single retry loop at the submission step and one
// explicit backward edge from payment to shipping.
type State string

const (
	StateCart            State = "cart"
	StateShippingDetails State = "shipping_details"
	StatePayment         State = "payment"
	StateSubmitting      State = "submitting"
	StateSuccess         State = "success"
	StateFailed          State = "failed"
)

var (
	ErrInvalidTransition = errors.New("invalid checkout transition")
	ErrDraftMissing      = errors.New("order draft has not been built")
)

// OrderPlacer submits the assembled draft. *api.Client satisfies it.
type OrderPlacer interface {
	Checkout(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error)
}

// SessionState is the slice of the session the flow consults.
type SessionState interface {
	IsAuthenticated() bool
}

// Flow drives the cart through shipping details, payment and submission.
// Guard outcomes are expressed as redirect routes so callers own navigation.
type Flow struct {
	cart    *cart.Store
	session SessionState
	orders  OrderPlacer
	logger  *zap.Logger

	mu      sync.Mutex
	state   State
	lastErr error
}

// New creates a flow positioned at the cart step.
func New(cartStore *cart.Store, session SessionState, orders OrderPlacer, logger *zap.Logger) *Flow {
	return &Flow{
		cart:    cartStore,
		session: session,
		orders:  orders,
		logger:  logger,
		state:   StateCart,
	}
}

// State returns the current step.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// LastError returns the error that moved the flow to StateFailed, if any.
func (f *Flow) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Begin attempts the cart to shipping-details transition. An empty cart
// redirects to the catalog without creating a draft; an unauthenticated
// session redirects to login with the intended destination preserved.
func (f *Flow) Begin() routes.Route {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cart.TotalItemCount() == 0 {
		f.state = StateCart
		return routes.Products
	}
	if !f.session.IsAuthenticated() {
		return routes.Login
	}

	f.state = StateShippingDetails
	f.logger.Debug("Checkout started")
	return routes.Checkout
}

// SubmitShipping completes the shipping step: it validates the form, builds
// the order draft from the form fields plus the current cart snapshot, and
// advances to payment. No backend call is made yet.
func (f *Flow) SubmitShipping(form forms.ShippingForm) (routes.Route, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateShippingDetails {
		return "", fmt.Errorf("%w: shipping from %s", ErrInvalidTransition, f.state)
	}
	if f.cart.TotalItemCount() == 0 {
		f.state = StateCart
		return routes.Products, nil
	}

	if err := forms.Validate(form); err != nil {
		return "", err
	}

	f.cart.SetOrderDraft(domain.OrderDraft{
		RecipientFirstName:   form.FirstName,
		RecipientLastName:    form.LastName,
		RecipientMobilePhone: form.MobilePhone,
		RecipientEircode:     form.Eircode,
		Items:                f.cart.Snapshot(),
	})

	f.state = StatePayment
	f.logger.Debug("Shipping details captured, draft built")
	return routes.PlaceOrder, nil
}

// SubmitPayment validates the card form and submits the draft. On success
// the cart and draft are cleared and the flow terminates in StateSuccess; on
// failure the flow moves to StateFailed with the card form preserved by the
// caller, and Retry returns it to the payment step.
func (f *Flow) SubmitPayment(ctx context.Context, form forms.PaymentForm) (routes.Route, *domain.Order, error) {
	f.mu.Lock()

	if f.state != StatePayment {
		f.mu.Unlock()
		return "", nil, fmt.Errorf("%w: payment from %s", ErrInvalidTransition, f.state)
	}
	if f.cart.TotalItemCount() == 0 {
		f.state = StateCart
		f.mu.Unlock()
		return routes.Products, nil, nil
	}

	if err := forms.Validate(form); err != nil {
		f.mu.Unlock()
		return "", nil, err
	}

	draft := f.cart.OrderDraft()
	if draft.Empty() {
		f.mu.Unlock()
		return "", nil, ErrDraftMissing
	}

	f.state = StateSubmitting
	f.mu.Unlock()

	order, err := f.orders.Checkout(ctx, draft)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.state = StateFailed
		f.lastErr = err
		f.logger.Warn("Order submission failed", zap.Error(err))
		return "", nil, err
	}

	f.cart.Clear()
	f.cart.SetOrderDraft(domain.OrderDraft{})
	f.state = StateSuccess
	f.lastErr = nil
	f.logger.Info("Order placed", zap.String("order_id", order.OrderID))
	return routes.Orders, order, nil
}

// Retry returns a failed submission to the payment step. The already-built
// draft stays valid.
func (f *Flow) Retry() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateFailed {
		return fmt.Errorf("%w: retry from %s", ErrInvalidTransition, f.state)
	}
	f.state = StatePayment
	return nil
}

// ReturnToShipping is the one explicit backward edge, from payment back to
// the shipping form. It does not invalidate the draft.
func (f *Flow) ReturnToShipping() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StatePayment {
		return fmt.Errorf("%w: return to shipping from %s", ErrInvalidTransition, f.state)
	}
	f.state = StateShippingDetails
	return nil
}

// GuardCart re-checks the non-empty-cart invariant while the flow sits in a
// checkout step. External cart mutation that empties the cart sends the flow
// back to the catalog.
func (f *Flow) GuardCart() routes.Route {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateShippingDetails && f.state != StatePayment {
		return ""
	}
	if f.cart.TotalItemCount() > 0 {
		return ""
	}
	f.state = StateCart
	return routes.Products
}
