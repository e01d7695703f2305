package domain

import "context"

// Transactor runs fn inside one storage transaction. Repositories called with
// the context handed to fn take part in that transaction. Nested calls join
// the outer transaction. The transaction commits when fn returns nil.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
