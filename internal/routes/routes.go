package routes

// Route identifies a navigable view of the storefront.
type Route string

const (
	Home              Route = "home"
	Login             Route = "login"
	Register          Route = "register"
	Profile           Route = "profile"
	CategorySelection Route = "category-selection"
	BrandSelection    Route = "brand-selection"
	StyleSelection    Route = "style-selection"
	Products          Route = "products"
	ProductDetail     Route = "product-detail"
	Cart              Route = "cart"
	Checkout          Route = "checkout"
	PlaceOrder        Route = "place-order"
	Orders            Route = "orders"
	OrderDetail       Route = "order-detail"
)

// protected lists the routes that require an authenticated session.
var protected = map[Route]bool{
	Profile:     true,
	Checkout:    true,
	PlaceOrder:  true,
	Orders:      true,
	OrderDetail: true,
}

// IsProtected reports whether route requires authentication.
func IsProtected(route Route) bool {
	return protected[route]
}
