package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMStore is the GORM-backed Store. Direct repository accessors run each
// call in its own implicit transaction; Do wraps fn in one database
// transaction so every repository obtained inside it shares the same tx.
type GORMStore struct {
	db *gorm.DB
}

// NewGORMStore creates a new instance of GORMStore.
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{db: db}
}

func (s *GORMStore) Products() ProductRepository   { return NewGORMProductRepository(s.db) }
func (s *GORMStore) Carts() CartRepository         { return NewGORMCartRepository(s.db) }
func (s *GORMStore) Orders() OrderRepository       { return NewGORMOrderRepository(s.db) }
func (s *GORMStore) Discounts() DiscountRepository { return NewGORMDiscountRepository(s.db) }
func (s *GORMStore) AuditLogs() AuditLogRepository { return NewGORMAuditLogRepository(s.db) }
func (s *GORMStore) Users() UserRepository         { return NewGORMUserRepository(s.db) }

// Do runs fn inside a single database transaction. GORM commits when fn
// returns nil and rolls back when it returns an error or panics.
func (s *GORMStore) Do(fn func(tx RepositoryProvider) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMStore(tx))
	})
}

// lockForUpdate adds SELECT ... FOR UPDATE where the dialect supports it.
// SQLite has no row locks and serializes writing transactions on the whole
// database, which gives the same guarantee.
func lockForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
