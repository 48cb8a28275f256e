package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTokenHolder struct {
	token string
}

func (f *fakeTokenHolder) Token() string {
	return f.token
}

func TestGuardDeniesProtectedRoutesWithoutToken(t *testing.T) {
	guard := NewGuard(&fakeTokenHolder{token: ""})

	for _, route := range []Route{Profile, Checkout, PlaceOrder, Orders, OrderDetail} {
		decision := guard.Check(route)
		assert.False(t, decision.Allowed, "route %s should be denied", route)
		assert.Equal(t, Login, decision.RedirectTo)
		assert.Equal(t, route, decision.Intended, "intended destination should be preserved")
	}
}

func TestGuardAllowsProtectedRoutesWithToken(t *testing.T) {
	guard := NewGuard(&fakeTokenHolder{token: "tok-1"})

	decision := guard.Check(Checkout)

	assert.True(t, decision.Allowed)
}

func TestGuardAllowsPublicRoutesAlways(t *testing.T) {
	guard := NewGuard(&fakeTokenHolder{token: ""})

	for _, route := range []Route{Home, Login, Register, Products, ProductDetail, Cart, CategorySelection} {
		assert.True(t, guard.Check(route).Allowed, "route %s should be public", route)
	}
}

func TestIsProtected(t *testing.T) {
	assert.True(t, IsProtected(Orders))
	assert.False(t, IsProtected(Cart))
}
