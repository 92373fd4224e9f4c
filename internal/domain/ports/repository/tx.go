package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Tx is an opaque transaction handle. Repositories accept it alongside ctx
// and must gracefully accept nil (non-transactional path); the concrete type
// is infra-defined (pgx.Tx for Postgres).
type Tx interface{}

// NoTX marks an explicitly non-transactional call.
var NoTX interface{}

// TransactionManager executes fn inside a database transaction, passing the
// handle through the Tx argument so use-case interfaces stay free of
// storage types.
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}
