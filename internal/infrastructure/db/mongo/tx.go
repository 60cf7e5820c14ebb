package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pawmarket/petstore-api/internal/core/ports"
)

// TxRunner executes callbacks inside a MongoDB session transaction. Every
// repository call made with the session context joins the transaction; a
// returned error aborts it, so partially applied stock or status changes
// never become visible.
type TxRunner struct {
	client *mongo.Client
}

func NewTxRunner(client *mongo.Client) *TxRunner {
	return &TxRunner{client: client}
}

// WithinTransaction runs fn inside one transaction and commits on success.
// Transient write conflicts (two transactions touching the same document)
// are retried by the driver; business errors abort and propagate unchanged.
func (r *TxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

var _ ports.TxRunner = (*TxRunner)(nil)
