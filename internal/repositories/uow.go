package repositories

// RepositoryProvider hands out the repositories bound to one backing store
// (or to one in-flight transaction).
type RepositoryProvider interface {
	Products() ProductRepository
	Carts() CartRepository
	Orders() OrderRepository
	Discounts() DiscountRepository
	AuditLogs() AuditLogRepository
	Users() UserRepository
}

// UnitOfWork runs fn against a transactional view of the store. All writes
// made through the provided repositories become visible atomically when fn
// returns nil, and are discarded entirely when it returns an error.
type UnitOfWork interface {
	Do(fn func(tx RepositoryProvider) error) error
}

// Store is a persistence backend: direct repository access for simple reads
// and writes, plus transactions for the multi-step workflows.
type Store interface {
	RepositoryProvider
	UnitOfWork
}
