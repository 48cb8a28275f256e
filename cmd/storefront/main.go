package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"crickmart/internal/api"
	"crickmart/internal/cart"
	"crickmart/internal/checkout"
	"crickmart/internal/config"
	"crickmart/internal/debounce"
	"crickmart/internal/domain"
	"crickmart/internal/forms"
	"crickmart/internal/logger"
	"crickmart/internal/routes"
	"crickmart/internal/session"
	"crickmart/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// app wires the stores, the flow and the remote adapters for the terminal
// storefront.
type app struct {
	cfg      config.Client
	client   *api.Client
	session  *session.Store
	cart     *cart.Store
	flow     *checkout.Flow
	guard    *routes.Guard
	searches *debounce.Debouncer
	logger   *zap.Logger

	filter domain.ProductFilter
	route  routes.Route
	// intended remembers where a denied navigation wanted to go so a
	// successful login can resume it.
	intended routes.Route
}

func main() {
	baseURL := pflag.String("base-url", "", "override API_BASE_URL")
	storageDir := pflag.String("storage-dir", "", "override STORAGE_DIR")
	pflag.Parse()

	cfg := config.Load()
	if *baseURL != "" {
		cfg.Client.BaseURL = *baseURL
	}
	if *storageDir != "" {
		cfg.Client.StorageDir = *storageDir
	}

	log, err := logger.New(cfg.Client.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	store, err := storage.NewFileStore(cfg.Client.StorageDir, log)
	if err != nil {
		log.Fatal("Failed to open local storage", zap.Error(err))
	}

	client := api.NewClient(cfg.Client.BaseURL, cfg.Client.Timeout, store, log)
	sess := session.New(client, store, log)
	cartStore := cart.New(store, log)
	flow := checkout.New(cartStore, sess, client, log)

	a := &app{
		cfg:      cfg.Client,
		client:   client,
		session:  sess,
		cart:     cartStore,
		flow:     flow,
		guard:    routes.NewGuard(sess),
		searches: debounce.New(cfg.Client.SearchDebounce),
		logger:   log,
		route:    routes.Home,
	}

	// Any 401 from any endpoint force-logs-out and lands on the login view.
	client.OnUnauthorized(func() {
		sess.HandleUnauthorized()
		a.route = routes.Login
		fmt.Println("Session expired, please log in again.")
	})

	a.run()
}

func (a *app) run() {
	fmt.Println("crickmart storefront. Type 'help' for commands, 'quit' to exit.")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("[%s]> ", a.route)
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		if cmd == "quit" || cmd == "exit" {
			a.searches.Stop()
			return
		}
		a.dispatch(cmd, args)
	}
}

func (a *app) dispatch(cmd string, args []string) {
	ctx := context.Background()

	switch cmd {
	case "help":
		printHelp()
	case "login":
		a.login(ctx, args)
	case "register":
		a.register(ctx, args)
	case "logout":
		a.session.Logout()
		a.route = routes.Login
		fmt.Println("Logged out.")
	case "profile":
		a.profile()
	case "update":
		a.updateProfile(ctx, args)
	case "categories":
		for _, id := range domain.Categories() {
			fmt.Printf("  %d  %s\n", id, domain.CategoryName(id))
		}
	case "brands":
		for _, id := range domain.Brands() {
			fmt.Printf("  %d  %s\n", id, domain.BrandName(id))
		}
	case "filter":
		a.applyFilter(ctx, args)
	case "view":
		a.viewProduct(ctx, args)
	case "add":
		a.addToCart(ctx, args)
	case "cart":
		a.showCart()
	case "remove":
		if len(args) == 1 {
			a.cart.RemoveItem(args[0])
			a.showCart()
			a.guardCheckoutCart()
		}
	case "qty":
		a.setQuantity(args)
		a.guardCheckoutCart()
	case "checkout":
		a.beginCheckout()
	case "ship":
		a.submitShipping(args)
	case "pay":
		a.submitPayment(ctx, args)
	case "back":
		if err := a.flow.ReturnToShipping(); err != nil {
			fmt.Println(err)
			return
		}
		a.route = routes.Checkout
	case "orders":
		a.listOrders(ctx)
	case "order":
		a.showOrder(ctx, args)
	default:
		fmt.Println("Unknown command, type 'help'.")
	}
}

// guardCheckoutCart sends an in-flight checkout back to the catalog when a
// cart mutation has emptied the cart.
func (a *app) guardCheckoutCart() {
	if next := a.flow.GuardCart(); next != "" {
		a.route = next
		fmt.Println("Your cart is empty; checkout cancelled.")
	}
}

// navigate consults the route guard before entering a view.
func (a *app) navigate(route routes.Route) bool {
	decision := a.guard.Check(route)
	if !decision.Allowed {
		a.intended = decision.Intended
		a.route = decision.RedirectTo
		fmt.Println("Please log in first.")
		return false
	}
	a.route = route
	return true
}

func (a *app) login(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Println("usage: login <mobilePhone> <password>")
		return
	}
	fmt.Println("Logging in...")
	err := a.session.Login(ctx, api.LoginParams{MobilePhone: args[0], Password: args[1]})
	if err != nil {
		var authErr *session.AuthError
		if errors.As(err, &authErr) && authErr.Kind == session.KindInvalidCredentials {
			fmt.Println("Invalid credentials. Please check your mobile phone and password.")
			return
		}
		fmt.Println("Login failed:", err)
		return
	}
	fmt.Println("Login successful. Welcome back!")
	if a.intended != "" {
		next := a.intended
		a.intended = ""
		if next == routes.Checkout {
			a.beginCheckout()
			return
		}
		a.navigate(next)
		return
	}
	a.route = routes.CategorySelection
}

func (a *app) register(ctx context.Context, args []string) {
	if len(args) != 6 {
		fmt.Println("usage: register <firstName> <lastName> <email> <mobilePhone> <password> <eircode>")
		return
	}
	err := a.session.Register(ctx, api.SignupParams{
		FirstName:    args[0],
		LastName:     args[1],
		EmailAddress: args[2],
		MobilePhone:  args[3],
		Password:     args[4],
		Eircode:      args[5],
	})
	if err != nil {
		printAuthError(err)
		return
	}
	fmt.Println("Registration successful. You can now log in with your credentials.")
	a.route = routes.Login
}

func (a *app) profile() {
	if !a.navigate(routes.Profile) {
		return
	}
	user := a.session.User()
	if user == nil {
		fmt.Println("No profile loaded.")
		return
	}
	fmt.Printf("%s %s  <%s>  %s  %s\n",
		user.FirstName, user.LastName, user.EmailAddress, user.MobilePhone, user.Eircode)
}

func (a *app) updateProfile(ctx context.Context, args []string) {
	if !a.navigate(routes.Profile) {
		return
	}
	if len(args) != 4 {
		fmt.Println("usage: update <firstName> <lastName> <email> <eircode>")
		return
	}
	err := a.session.UpdateProfile(ctx, api.UserUpdateParams{
		FirstName:    args[0],
		LastName:     args[1],
		EmailAddress: args[2],
		Eircode:      args[3],
	})
	if err != nil {
		printAuthError(err)
		return
	}
	fmt.Println("Profile updated successfully.")
}

// applyFilter updates the catalog filter. The fetch is debounced so rapid
// refinements collapse into one request.
func (a *app) applyFilter(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("usage: filter <categoryId> <brandId> [styleId]")
		return
	}
	category, err1 := strconv.Atoi(args[0])
	brand, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Println("category and brand must be numeric ids")
		return
	}
	style := 0
	if len(args) > 2 {
		style, _ = strconv.Atoi(args[2])
	}

	a.filter = domain.ProductFilter{Category: category, Brand: brand, Style: style}
	a.route = routes.Products
	filter := a.filter
	a.searches.Trigger(func() {
		products, err := a.client.ProductsByFilter(ctx, filter)
		if err != nil {
			fmt.Println("\nFailed to load products:", err)
			return
		}
		fmt.Println()
		if len(products) == 0 {
			fmt.Println("No products match this filter.")
		}
		for _, p := range products {
			fmt.Printf("  %-20s %-40s %8s  %s\n",
				p.ProductID, p.ProductName, p.Price.StringFixed(2), domain.BrandName(p.ProductBrand))
		}
	})
}

func (a *app) viewProduct(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: view <productId>")
		return
	}
	product, err := a.client.ProductByID(ctx, args[0])
	if err != nil {
		fmt.Println("Failed to load product:", err)
		return
	}
	a.route = routes.ProductDetail
	fmt.Printf("%s\n  %s\n  Price: %s  Category: %s  Brand: %s\n",
		product.ProductName, product.Description,
		product.Price.StringFixed(2),
		domain.CategoryName(product.ProductCategory),
		domain.BrandName(product.ProductBrand))
	if product.ProductStyle != 0 {
		fmt.Printf("  Style: %s\n", domain.StyleName(product.ProductStyle))
	}
}

func (a *app) addToCart(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Println("usage: add <productId> [quantity]")
		return
	}
	quantity := 1
	if len(args) > 1 {
		quantity, _ = strconv.Atoi(args[1])
	}
	product, err := a.client.ProductByID(ctx, args[0])
	if err != nil {
		fmt.Println("Failed to load product:", err)
		return
	}
	a.cart.AddOrSetItem(*product, quantity)
	fmt.Printf("Cart: %d item(s), subtotal %s\n",
		a.cart.TotalItemCount(), a.cart.Subtotal().StringFixed(2))
}

func (a *app) setQuantity(args []string) {
	if len(args) != 2 {
		fmt.Println("usage: qty <productId> <quantity>")
		return
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Println("quantity must be a number")
		return
	}
	a.cart.SetQuantity(args[0], quantity)
	a.showCart()
}

func (a *app) showCart() {
	a.route = routes.Cart
	entries := a.cart.Entries()
	if len(entries) == 0 {
		fmt.Println("Your cart is empty.")
		return
	}
	for _, entry := range entries {
		line := entry.Product.Price.Mul(decimalFromInt(entry.Quantity))
		fmt.Printf("  %-20s x%-3d %8s\n", entry.Product.ProductName, entry.Quantity, line.StringFixed(2))
	}
	fmt.Printf("  %d item(s)  subtotal %s  total %s\n",
		a.cart.TotalItemCount(), a.cart.Subtotal().StringFixed(2), a.cart.TotalCost().StringFixed(2))
}

func (a *app) beginCheckout() {
	next := a.flow.Begin()
	switch next {
	case routes.Products:
		fmt.Println("Your cart is empty; add something first.")
		a.route = routes.Products
	case routes.Login:
		a.intended = routes.Checkout
		a.route = routes.Login
		fmt.Println("Please log in to check out.")
	default:
		a.route = next
		fmt.Println("Enter shipping details: ship <firstName> <lastName> <phone> <eircode>")
	}
}

func (a *app) submitShipping(args []string) {
	if len(args) != 4 {
		fmt.Println("usage: ship <firstName> <lastName> <phone> <eircode>")
		return
	}
	next, err := a.flow.SubmitShipping(forms.ShippingForm{
		FirstName:   args[0],
		LastName:    args[1],
		MobilePhone: args[2],
		Eircode:     args[3],
	})
	if err != nil {
		printFormError(err)
		return
	}
	a.route = next
	if next == routes.PlaceOrder {
		fmt.Println("Enter payment details: pay <cardNumber> <cardholderName> <MMYY> <cvv>")
	} else {
		fmt.Println("Your cart is empty; returning to the catalog.")
	}
}

func (a *app) submitPayment(ctx context.Context, args []string) {
	if len(args) != 4 {
		fmt.Println("usage: pay <cardNumber> <cardholderName> <MMYY> <cvv>")
		return
	}
	form := forms.PaymentForm{
		CardNumber:     forms.NormalizeCardNumber(args[0]),
		CardholderName: args[1],
		ExpiryDate:     forms.NormalizeExpiry(args[2]),
		CVV:            args[3],
	}
	fmt.Println("Placing order...")
	next, order, err := a.flow.SubmitPayment(ctx, form)
	if err != nil {
		printFormError(err)
		if a.flow.State() == checkout.StateFailed {
			fmt.Println("Failed to place order. Please try again.")
			a.flow.Retry()
		}
		return
	}
	if next == routes.Products {
		fmt.Println("Your cart is empty; returning to the catalog.")
		a.route = next
		return
	}
	fmt.Printf("Order %s placed successfully. You will receive an email shortly!\n", order.OrderID)
	a.route = next
	a.listOrders(ctx)
}

func (a *app) listOrders(ctx context.Context) {
	if !a.navigate(routes.Orders) {
		return
	}
	orders, err := a.client.Orders(ctx)
	if err != nil {
		fmt.Println("Failed to load orders:", err)
		return
	}
	if len(orders) == 0 {
		fmt.Println("No orders yet.")
		return
	}
	for _, order := range orders {
		fmt.Printf("  %s  %s  %s\n",
			order.OrderID, order.CreatedAt.Format("2006-01-02"), order.Total.StringFixed(2))
	}
}

func (a *app) showOrder(ctx context.Context, args []string) {
	if !a.navigate(routes.OrderDetail) {
		return
	}
	if len(args) != 1 {
		fmt.Println("usage: order <orderId>")
		return
	}
	order, err := a.client.OrderByID(ctx, args[0])
	if err != nil {
		fmt.Println("Failed to load order:", err)
		return
	}
	fmt.Printf("Order %s for %s %s (%s)\n",
		order.OrderID, order.RecipientFirstName, order.RecipientLastName, order.RecipientEircode)
	for _, line := range order.Lines {
		fmt.Printf("  %-40s x%-3d %8s\n",
			line.Product.ProductName, line.Quantity, line.Product.Price.StringFixed(2))
	}
	fmt.Printf("  Total: %s\n", order.Total.StringFixed(2))
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

func printAuthError(err error) {
	var authErr *session.AuthError
	if errors.As(err, &authErr) && len(authErr.Fields) > 0 {
		for _, field := range authErr.Fields {
			fmt.Printf("  %s: %s\n", field.Field, field.Message)
		}
		return
	}
	fmt.Println("Request failed:", err)
}

func printFormError(err error) {
	if fieldErrors := forms.FormatErrors(err); len(fieldErrors) > 0 {
		for _, field := range fieldErrors {
			fmt.Printf("  %s: %s\n", field.Field, field.Message)
		}
		return
	}
	fmt.Println(err)
}

func printHelp() {
	fmt.Print(`Commands:
  login <phone> <password>       log in
  register <fn> <ln> <email> <phone> <password> <eircode>
  logout                         log out
  profile                        show profile
  update <fn> <ln> <email> <eircode>
  categories / brands            list catalog reference data
  filter <cat> <brand> [style]   browse products (debounced)
  view <productId>               product detail
  add <productId> [qty]          add to cart (repeat add replaces quantity)
  cart / remove <id> / qty <id> <n>
  checkout / ship ... / pay ... / back
  orders / order <orderId>
  quit
`)
}
