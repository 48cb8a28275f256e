package routes

// TokenHolder is the slice of the session the guard consults.
type TokenHolder interface {
	Token() string
}

// Decision is the outcome of a guard check. When denied, RedirectTo is the
// login entry point and Intended preserves the destination so login can
// resume navigation.
type Decision struct {
	Allowed    bool
	RedirectTo Route
	Intended   Route
}

// Guard gates protected views on session token presence. It performs no
// network validation of the token; an invalid token is caught by the request
// pipeline's unauthorized policy on the first backend call.
type Guard struct {
	session TokenHolder
}

// NewGuard creates a guard reading token presence from session.
func NewGuard(session TokenHolder) *Guard {
	return &Guard{session: session}
}

// Check decides whether route may render. Unprotected routes are always
// allowed; protected routes require a token, regardless of any other session
// fields.
func (g *Guard) Check(route Route) Decision {
	if !IsProtected(route) {
		return Decision{Allowed: true}
	}
	if g.session.Token() != "" {
		return Decision{Allowed: true}
	}
	return Decision{
		Allowed:    false,
		RedirectTo: Login,
		Intended:   route,
	}
}
