package repositories

import (
	"sync"

	"belanja/internal/models"
)

// memoryState is the complete in-memory dataset. Transactions operate on a
// clone and swap it in on commit, so a failed transaction leaves the
// published state untouched.
type memoryState struct {
	products  map[string]models.Product
	carts     map[string]models.Cart // items live in cartItems, not inline
	cartItems map[string]models.CartItem
	orders    map[string]models.Order // items kept inline, immutable after create
	discounts map[string]models.Discount
	users     map[string]models.User
	auditLogs []models.AuditLog
}

func newMemoryState() *memoryState {
	return &memoryState{
		products:  make(map[string]models.Product),
		carts:     make(map[string]models.Cart),
		cartItems: make(map[string]models.CartItem),
		orders:    make(map[string]models.Order),
		discounts: make(map[string]models.Discount),
		users:     make(map[string]models.User),
	}
}

func (s *memoryState) clone() *memoryState {
	c := newMemoryState()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.carts {
		c.carts[k] = v
	}
	for k, v := range s.cartItems {
		c.cartItems[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.discounts {
		c.discounts[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	c.auditLogs = append(c.auditLogs, s.auditLogs...)
	return c
}

// stateSource yields the state a repository should operate on, plus a
// release function. The MemoryStore locks per call; transactional providers
// hand out their working copy without locking, since the transaction already
// holds the store's lock.
type stateSource interface {
	acquire() (*memoryState, func())
}

// MemoryStore is an in-memory Store used by tests and by the server's
// standalone mode. Transactions are serialized by a single mutex and commit
// by swapping in a mutated clone of the state.
type MemoryStore struct {
	mu    sync.Mutex
	state *memoryState
}

// NewMemoryStore creates a new empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: newMemoryState()}
}

func (s *MemoryStore) acquire() (*memoryState, func()) {
	s.mu.Lock()
	return s.state, s.mu.Unlock
}

func (s *MemoryStore) Products() ProductRepository   { return &MockProductRepository{src: s} }
func (s *MemoryStore) Carts() CartRepository         { return &MockCartRepository{src: s} }
func (s *MemoryStore) Orders() OrderRepository       { return &MockOrderRepository{src: s} }
func (s *MemoryStore) Discounts() DiscountRepository { return &MockDiscountRepository{src: s} }
func (s *MemoryStore) AuditLogs() AuditLogRepository { return &MockAuditLogRepository{src: s} }
func (s *MemoryStore) Users() UserRepository         { return &MockUserRepository{src: s} }

// Do runs fn against a clone of the current state and publishes the clone
// only when fn succeeds, giving the same all-or-nothing visibility as a
// database transaction.
func (s *MemoryStore) Do(fn func(tx RepositoryProvider) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(&txProvider{state: work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

// txProvider exposes repositories bound to one transaction's working state.
type txProvider struct {
	state *memoryState
}

func (p *txProvider) acquire() (*memoryState, func()) { return p.state, func() {} }

func (p *txProvider) Products() ProductRepository   { return &MockProductRepository{src: p} }
func (p *txProvider) Carts() CartRepository         { return &MockCartRepository{src: p} }
func (p *txProvider) Orders() OrderRepository       { return &MockOrderRepository{src: p} }
func (p *txProvider) Discounts() DiscountRepository { return &MockDiscountRepository{src: p} }
func (p *txProvider) AuditLogs() AuditLogRepository { return &MockAuditLogRepository{src: p} }
func (p *txProvider) Users() UserRepository         { return &MockUserRepository{src: p} }
