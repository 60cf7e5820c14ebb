package ports

import "context"

// TxRunner executes fn inside a single storage transaction. Every repository
// call made with the context passed to fn joins that transaction; if fn
// returns an error nothing it did is visible afterwards.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
