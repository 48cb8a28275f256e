package stub

import (
	"errors"
	"net/http"
	"strconv"

	"crickmart/internal/domain"
	"crickmart/internal/forms"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// loginRequest is the payload for POST /auths/login.
type loginRequest struct {
	MobilePhone string `json:"mobilePhone" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

// signupRequest is the payload for POST /auths/signup.
type signupRequest struct {
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	EmailAddress string `json:"emailAddress" validate:"required,email"`
	MobilePhone  string `json:"mobilePhone" validate:"required,min=7"`
	Password     string `json:"password" validate:"required,min=8"`
	Eircode      string `json:"eircode" validate:"required,min=3"`
}

// updateRequest is the payload for PUT /users/update.
type updateRequest struct {
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	EmailAddress string `json:"emailAddress" validate:"required,email"`
	Eircode      string `json:"eircode" validate:"required,min=3"`
	OldPassword  string `json:"oldPassword,omitempty"`
	Password     string `json:"password,omitempty" validate:"omitempty,min=8"`
}

// checkoutRequest is the payload for POST /orders/checkout.
type checkoutRequest struct {
	RecipientFirstName   string                `json:"recipientFirstName" validate:"required"`
	RecipientLastName    string                `json:"recipientLastName" validate:"required"`
	RecipientMobilePhone string                `json:"recipientMobilePhone" validate:"required"`
	RecipientEircode     string                `json:"recipientEircode" validate:"required"`
	Items                []domain.OrderItemRef `json:"items" validate:"required,min=1,dive"`
}

type dataEnvelope struct {
	Data interface{} `json:"data"`
}

// Handler serves the storefront REST contracts from in-memory state.
type Handler struct {
	store  *memoryStore
	tokens *tokenService
	logger *zap.Logger
}

// NewHandler wires the stub handler.
func NewHandler(store *memoryStore, tokens *tokenService, logger *zap.Logger) *Handler {
	return &Handler{store: store, tokens: tokens, logger: logger}
}

// RegisterRoutes registers all stub routes.
func (h *Handler) RegisterRoutes(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Post("/auths/login", h.Login)
	r.Post("/auths/signup", h.Signup)

	r.Get("/products/get/filter", h.ProductsByFilter)
	r.Get("/products/{productId}", h.ProductByID)

	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Put("/users/update", h.UpdateUser)
		r.Post("/orders/checkout", h.Checkout)
		r.Get("/orders", h.Orders)
		r.Get("/orders/{orderId}", h.OrderByID)
	})
}

// Login handles POST /auths/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		if fieldErrors := forms.FormatErrors(err); len(fieldErrors) > 0 {
			respondWithValidationErrors(w, fieldErrors)
			return
		}
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	acct, err := h.store.AccountByPhone(req.MobilePhone)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, ErrInvalidCredentials.Error())
		return
	}
	if err := verifyPassword(acct.PasswordHash, req.Password); err != nil {
		respondWithError(w, http.StatusUnauthorized, ErrInvalidCredentials.Error())
		return
	}

	token, err := h.tokens.Generate(acct.User.ID)
	if err != nil {
		h.logger.Error("Failed to generate token", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	h.logger.Info("User logged in", zap.String("user_id", acct.User.ID))
	respondWithJSON(w, http.StatusOK, dataEnvelope{Data: map[string]interface{}{
		"accessToken": token,
		"user":        acct.User,
	}})
}

// Signup handles POST /auths/signup.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeAndValidate(r, &req); err != nil {
		if fieldErrors := forms.FormatErrors(err); len(fieldErrors) > 0 {
			respondWithValidationErrors(w, fieldErrors)
			return
		}
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		h.logger.Error("Failed to hash password", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	user := domain.User{
		ID:           uuid.New().String(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		EmailAddress: req.EmailAddress,
		MobilePhone:  req.MobilePhone,
		Eircode:      req.Eircode,
	}

	if err := h.store.CreateAccount(user, hash); err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			respondWithError(w, http.StatusConflict, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	h.logger.Info("User registered", zap.String("user_id", user.ID))
	respondWithJSON(w, http.StatusCreated, dataEnvelope{Data: map[string]interface{}{
		"user": user,
	}})
}

// UpdateUser handles PUT /users/update.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req updateRequest
	if err := decodeAndValidate(r, &req); err != nil {
		if fieldErrors := forms.FormatErrors(err); len(fieldErrors) > 0 {
			respondWithValidationErrors(w, fieldErrors)
			return
		}
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	acct, err := h.store.AccountByID(userID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "user not found")
		return
	}

	var newHash string
	if req.Password != "" {
		if err := verifyPassword(acct.PasswordHash, req.OldPassword); err != nil {
			respondWithError(w, http.StatusBadRequest, "old password is incorrect")
			return
		}
		newHash, err = hashPassword(req.Password)
		if err != nil {
			h.logger.Error("Failed to hash password", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "failed to update user")
			return
		}
	}

	updated := acct.User
	updated.FirstName = req.FirstName
	updated.LastName = req.LastName
	updated.EmailAddress = req.EmailAddress
	updated.Eircode = req.Eircode

	if err := h.store.UpdateAccount(updated, newHash); err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	h.logger.Info("User updated", zap.String("user_id", userID))
	respondWithJSON(w, http.StatusOK, updated)
}

// ProductByID handles GET /products/{productId}.
func (h *Handler) ProductByID(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	product, err := h.store.ProductByID(productID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	respondWithJSON(w, http.StatusOK, dataEnvelope{Data: map[string]interface{}{
		"product": product,
	}})
}

// ProductsByFilter handles GET /products/get/filter.
func (h *Handler) ProductsByFilter(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	category, err := strconv.Atoi(query.Get("productCategory"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid productCategory")
		return
	}
	brand, err := strconv.Atoi(query.Get("productBrand"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid productBrand")
		return
	}
	style := 0
	if raw := query.Get("productStyle"); raw != "" {
		style, err = strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid productStyle")
			return
		}
	}

	products := h.store.ProductsByFilter(domain.ProductFilter{
		Category: category,
		Brand:    brand,
		Style:    style,
	})
	if products == nil {
		products = []domain.Product{}
	}

	respondWithJSON(w, http.StatusOK, dataEnvelope{Data: map[string]interface{}{
		"products": products,
	}})
}

// Checkout handles POST /orders/checkout.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req checkoutRequest
	if err := decodeAndValidate(r, &req); err != nil {
		if fieldErrors := forms.FormatErrors(err); len(fieldErrors) > 0 {
			respondWithValidationErrors(w, fieldErrors)
			return
		}
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.store.CreateOrder(userID, domain.OrderDraft{
		RecipientFirstName:   req.RecipientFirstName,
		RecipientLastName:    req.RecipientLastName,
		RecipientMobilePhone: req.RecipientMobilePhone,
		RecipientEircode:     req.RecipientEircode,
		Items:                req.Items,
	})
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			respondWithError(w, http.StatusBadRequest, "order references an unknown product")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to place order")
		return
	}

	h.logger.Info("Order placed",
		zap.String("user_id", userID),
		zap.String("order_id", order.OrderID),
	)
	respondWithJSON(w, http.StatusCreated, order)
}

// Orders handles GET /orders.
func (h *Handler) Orders(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	orders := h.store.OrdersByUser(userID)
	if orders == nil {
		orders = []domain.Order{}
	}

	respondWithJSON(w, http.StatusOK, dataEnvelope{Data: map[string]interface{}{
		"orders": orders,
	}})
}

// OrderByID handles GET /orders/{orderId}.
func (h *Handler) OrderByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	order, err := h.store.OrderByID(userID, chi.URLParam(r, "orderId"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "order not found")
		return
	}

	respondWithJSON(w, http.StatusOK, order)
}
