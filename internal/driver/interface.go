package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// GraphDriver is the narrow store boundary the core depends on. Callers never
// hold sessions themselves.
type GraphDriver interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error)
	// ExecuteWrite runs work inside a single write transaction. Every
	// statement issued through tx commits or rolls back together.
	ExecuteWrite(ctx context.Context, work TxWork) (any, error)
	BuildIndices(ctx context.Context) error
	Close(ctx context.Context) error
}

// Tx is a transaction-scoped statement runner.
type Tx interface {
	Run(ctx context.Context, query string, params map[string]interface{}) ([]*neo4j.Record, error)
}

type TxWork func(tx Tx) (any, error)
