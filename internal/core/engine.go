package core

import (
	"context"
	"errors"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/agenthands/distnode/internal/core/common"
	"github.com/agenthands/distnode/internal/core/model"
	"github.com/agenthands/distnode/internal/driver"
)

const (
	FeedPageSize    = 9
	RelatedPageSize = 6
)

// UserCache holds read-through copies of User profiles.
type UserCache interface {
	Get(ctx context.Context, userID string) (model.User, bool, error)
	Set(ctx context.Context, user model.User) error
	Delete(ctx context.Context, userID string) error
}

// Engine runs every content graph operation against an injected store. It
// keeps no mutable state between calls.
type Engine struct {
	Driver driver.GraphDriver
	Cache  UserCache
	Logger *zap.Logger
	Now    func() time.Time
}

type Option func(*Engine)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.Logger = logger }
}

func WithUserCache(cache UserCache) Option {
	return func(e *Engine) { e.Cache = cache }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.Now = now }
}

func NewEngine(d driver.GraphDriver, opts ...Option) *Engine {
	e := &Engine{
		Driver: d,
		Cache:  noCache{},
		Logger: zap.NewNop(),
		Now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) BuildIndices(ctx context.Context) error {
	return e.Driver.BuildIndices(ctx)
}

func (e *Engine) query(ctx context.Context, op, query string, params map[string]interface{}) ([]*neo4j.Record, error) {
	result, err := e.Driver.ExecuteQuery(ctx, query, params)
	if err != nil {
		return nil, e.storeError(op, err)
	}
	return result.Records, nil
}

// storeError is the only failure the engine logs; every other kind is the
// caller's doing.
func (e *Engine) storeError(op string, err error) error {
	e.Logger.Error("store operation failed", zap.String("op", op), zap.Error(err))
	return common.Store(op+" failed", err)
}

// asDomainError unwraps an engine error raised inside a transaction from
// the driver's wrapping.
func asDomainError(err error) *common.Error {
	var e *common.Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

type noCache struct{}

func (noCache) Get(context.Context, string) (model.User, bool, error) { return model.User{}, false, nil }
func (noCache) Set(context.Context, model.User) error                 { return nil }
func (noCache) Delete(context.Context, string) error                  { return nil }
