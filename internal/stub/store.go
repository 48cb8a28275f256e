package stub

import (
	"errors"
	"sync"
	"time"

	"crickmart/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this mobile phone already exists")
	ErrProductNotFound   = errors.New("product not found")
	ErrOrderNotFound     = errors.New("order not found")
)

// account is a stored user plus their credential hash.
type account struct {
	User         domain.User
	PasswordHash string
}

// memoryStore holds all stub state in memory, guarded by one mutex. Data is
// lost on restart; that is the point of a development stub.
type memoryStore struct {
	mu       sync.Mutex
	accounts map[string]*account      // keyed by mobile phone
	products map[string]domain.Product
	orders   map[string]domain.Order
	byUser   map[string][]string // user id -> order ids, insertion order
}

func newMemoryStore() *memoryStore {
	s := &memoryStore{
		accounts: make(map[string]*account),
		products: make(map[string]domain.Product),
		orders:   make(map[string]domain.Order),
		byUser:   make(map[string][]string),
	}
	for _, p := range seedProducts() {
		s.products[p.ProductID] = p
	}
	return s
}

// CreateAccount registers a new user keyed by mobile phone.
func (s *memoryStore) CreateAccount(user domain.User, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[user.MobilePhone]; exists {
		return ErrUserAlreadyExists
	}
	s.accounts[user.MobilePhone] = &account{User: user, PasswordHash: passwordHash}
	return nil
}

// AccountByPhone looks an account up by mobile phone.
func (s *memoryStore) AccountByPhone(mobilePhone string) (*account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[mobilePhone]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *acct
	return &copied, nil
}

// AccountByID looks an account up by user id.
func (s *memoryStore) AccountByID(userID string) (*account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, acct := range s.accounts {
		if acct.User.ID == userID {
			copied := *acct
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

// UpdateAccount overwrites the stored user record and optionally the
// password hash.
func (s *memoryStore) UpdateAccount(user domain.User, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[user.MobilePhone]
	if !ok || acct.User.ID != user.ID {
		return ErrUserNotFound
	}
	acct.User = user
	if passwordHash != "" {
		acct.PasswordHash = passwordHash
	}
	return nil
}

// ProductByID returns a product by id.
func (s *memoryStore) ProductByID(productID string) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return p, nil
}

// ProductsByFilter returns products matching category and brand, and style
// when style is non-zero.
func (s *memoryStore) ProductsByFilter(filter domain.ProductFilter) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []domain.Product
	for _, p := range s.products {
		if p.ProductCategory != filter.Category || p.ProductBrand != filter.Brand {
			continue
		}
		if filter.Style != 0 && p.ProductStyle != filter.Style {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

// CreateOrder builds an order from a draft, pricing each line from the
// current catalog.
func (s *memoryStore) CreateOrder(userID string, draft domain.OrderDraft) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	order := domain.Order{
		OrderID:              uuid.New().String(),
		RecipientFirstName:   draft.RecipientFirstName,
		RecipientLastName:    draft.RecipientLastName,
		RecipientMobilePhone: draft.RecipientMobilePhone,
		RecipientEircode:     draft.RecipientEircode,
		Total:                decimal.Zero,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	for _, item := range draft.Items {
		product, ok := s.products[item.ProductID]
		if !ok {
			return domain.Order{}, ErrProductNotFound
		}
		order.Lines = append(order.Lines, domain.OrderLine{
			OrderToProductID: uuid.New().String(),
			Quantity:         item.Quantity,
			Product:          product,
		})
		line := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		order.Total = order.Total.Add(line)
	}

	s.orders[order.OrderID] = order
	s.byUser[userID] = append(s.byUser[userID], order.OrderID)
	return order, nil
}

// OrdersByUser lists a user's orders in placement order.
func (s *memoryStore) OrdersByUser(userID string) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.byUser[userID]
	orders := make([]domain.Order, 0, len(ids))
	for _, id := range ids {
		orders = append(orders, s.orders[id])
	}
	return orders
}

// OrderByID returns an order when it belongs to userID.
func (s *memoryStore) OrderByID(userID, orderID string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return domain.Order{}, ErrOrderNotFound
	}
	for _, id := range s.byUser[userID] {
		if id == orderID {
			return order, nil
		}
	}
	return domain.Order{}, ErrOrderNotFound
}
