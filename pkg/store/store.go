// Package store implements the in-memory relational data layer. Data lives for
// the lifetime of the process; there is no durability and no cross-restart
// persistence. Ids are process-unique and monotonically increasing across all
// tables, so per-table insertion order is also chronological order.
package store

import (
	"sync"
	"time"

	"github.com/relooped/reloop-backend/pkg/db/models"
)

type sequence struct {
	last int64
}

func (s *sequence) next() int64 {
	s.last++
	return s.last
}

// Store owns the tables and the mutual-exclusion boundary around them. It is
// passed explicitly to services rather than living as ambient package state,
// so tests get a fresh instance each.
type Store struct {
	mu    sync.RWMutex
	seq   sequence
	clock func() time.Time

	Users       *Table[*models.User]
	Products    *Table[*models.Product]
	CartEntries *Table[*models.CartEntry]
	Orders      *Table[*models.Order]
	OrderItems  *Table[*models.OrderItem]
}

// Option customizes store construction.
type Option func(*options)

type options struct {
	clock func() time.Time
}

// WithClock overrides the timestamp source, mainly for deterministic tests.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store{clock: o.clock}
	s.Users = newTable[*models.User]("users", &s.seq, o.clock)
	s.Products = newTable[*models.Product]("products", &s.seq, o.clock)
	s.CartEntries = newTable[*models.CartEntry]("cart_entries", &s.seq, o.clock)
	s.Orders = newTable[*models.Order]("orders", &s.seq, o.clock)
	s.OrderItems = newTable[*models.OrderItem]("order_items", &s.seq, o.clock)
	return s
}

// Now returns the store's notion of current time, so derived values and audit
// columns share one clock.
func (s *Store) Now() time.Time {
	return s.clock()
}

// Read runs fn under the shared lock. Table reads inside fn see a consistent
// snapshot of every table.
func (s *Store) Read(fn func() error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn()
}

// Write runs fn under the exclusive lock. Multi-step sequences that must be
// observed atomically (checkout, product-delete cascade) run entirely inside
// one Write call; a failed fn must leave the tables untouched, so validate
// before the first table write.
func (s *Store) Write(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}
