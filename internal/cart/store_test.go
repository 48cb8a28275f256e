package cart

import (
	"testing"

	"crickmart/internal/domain"
	"crickmart/internal/storage"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
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

func product(id string, price float64) domain.Product {
	return domain.Product{
		ProductID:       id,
		ProductName:     "Product " + id,
		Price:           decimal.NewFromFloat(price),
		ProductCategory: 1,
		ProductBrand:    1,
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(newMemStorage(), zap.NewNop())
}

func TestProperty_TotalItemCountIsDistinctProductCount(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("item count equals distinct ids, never the quantity sum", prop.ForAll(
		func(ids []string, quantity int) bool {
			store := newTestStore(t)

			distinct := make(map[string]bool)
			for _, id := range ids {
				store.AddOrSetItem(product(id, 10), quantity)
				distinct[id] = true
			}

			return store.TotalItemCount() == len(distinct)
		},
		gen.SliceOf(gen.RegexMatch(`[a-z]{1,4}`)),
		gen.IntRange(1, 50),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_RepeatAddReplacesQuantity(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("adding the same product twice keeps the second quantity", prop.ForAll(
		func(q1, q2 int) bool {
			store := newTestStore(t)
			p := product("bat-1", 99.99)

			store.AddOrSetItem(p, q1)
			store.AddOrSetItem(p, q2)

			entries := store.Entries()
			return len(entries) == 1 && entries[0].Quantity == q2
		},
		gen.IntRange(1, 100),
		gen.IntRange(1, 100),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_SetQuantityClampsToOne(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("zero or negative quantities are stored as 1", prop.ForAll(
		func(quantity int) bool {
			store := newTestStore(t)
			store.AddOrSetItem(product("ball-1", 5), 3)

			store.SetQuantity("ball-1", quantity)

			want := quantity
			if want < 1 {
				want = 1
			}
			return store.Entries()[0].Quantity == want
		},
		gen.IntRange(-10, 10),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestSubtotal(t *testing.T) {
	store := newTestStore(t)

	store.AddOrSetItem(product("p", 10.00), 2)
	store.AddOrSetItem(product("q", 5.50), 3)

	assert.True(t, store.Subtotal().Equal(decimal.NewFromFloat(36.50)),
		"subtotal was %s", store.Subtotal())
}

func TestTotalCostIncludesShipping(t *testing.T) {
	store := newTestStore(t)

	store.AddOrSetItem(product("p", 10.00), 1)
	store.SetShippingCost(decimal.NewFromFloat(4.95))

	assert.True(t, store.TotalCost().Equal(decimal.NewFromFloat(14.95)))
}

func TestRemoveItemAbsentIsNoOp(t *testing.T) {
	store := newTestStore(t)

	store.AddOrSetItem(product("p", 10.00), 2)
	store.AddOrSetItem(product("q", 5.50), 3)
	before := store.Entries()

	store.RemoveItem("does-not-exist")

	assert.Equal(t, before, store.Entries())
}

func TestRemoveItem(t *testing.T) {
	store := newTestStore(t)

	store.AddOrSetItem(product("p", 10.00), 2)
	store.AddOrSetItem(product("q", 5.50), 3)

	store.RemoveItem("p")

	entries := store.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "q", entries[0].Product.ProductID)
}

func TestClearLeavesShippingCost(t *testing.T) {
	store := newTestStore(t)

	store.AddOrSetItem(product("p", 10.00), 2)
	store.SetShippingCost(decimal.NewFromFloat(4.95))

	store.Clear()

	assert.Equal(t, 0, store.TotalItemCount())
	assert.True(t, store.ShippingCost().Equal(decimal.NewFromFloat(4.95)))
}

func TestPersistenceRoundTrip(t *testing.T) {
	fileStore, err := storage.NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	store := New(fileStore, zap.NewNop())
	store.AddOrSetItem(product("p", 10.00), 2)
	store.AddOrSetItem(product("q", 5.50), 3)

	// A new store over the same storage plays the reload after a browser
	// restart.
	reloaded := New(fileStore, zap.NewNop())

	assert.Equal(t, store.Entries(), reloaded.Entries())
	assert.Equal(t, store.TotalItemCount(), reloaded.TotalItemCount())
	assert.True(t, store.Subtotal().Equal(reloaded.Subtotal()))
}

func TestCorruptPersistedCartYieldsEmptyCart(t *testing.T) {
	mem := newMemStorage()
	require.NoError(t, mem.Set(storage.KeyCart, "{not json"))

	store := New(mem, zap.NewNop())

	assert.Equal(t, 0, store.TotalItemCount())
	_, present := mem.Get(storage.KeyCart)
	assert.False(t, present, "corrupt cart should be removed from storage")
}

func TestSnapshotProjectsEntries(t *testing.T) {
	store := newTestStore(t)

	store.AddOrSetItem(product("p", 10.00), 2)
	store.AddOrSetItem(product("q", 5.50), 3)

	snapshot := store.Snapshot()

	require.Len(t, snapshot, 2)
	assert.Equal(t, domain.OrderItemRef{ProductID: "p", Quantity: 2}, snapshot[0])
	assert.Equal(t, domain.OrderItemRef{ProductID: "q", Quantity: 3}, snapshot[1])
}
