package core

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/distnode/internal/core/model"
	"github.com/agenthands/distnode/internal/driver"
)

// MockResponse is the scripted answer to one statement.
type MockResponse struct {
	Records []*neo4j.Record
	Err     error
}

type MockCall struct {
	Query  string
	Params map[string]interface{}
	InTx   int
}

// MockDriver answers statements from Responses in order, whether they arrive
// through ExecuteQuery or a transaction. An exhausted queue answers with no
// records.
type MockDriver struct {
	QueryExecuted string
	QueryParams   map[string]interface{}
	Responses     []MockResponse
	Calls         []MockCall
	Transactions  int
	Err           error
}

func (m *MockDriver) next(query string, params map[string]interface{}, tx int) ([]*neo4j.Record, error) {
	m.QueryExecuted = query
	m.QueryParams = params
	m.Calls = append(m.Calls, MockCall{Query: query, Params: params, InTx: tx})
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Responses) == 0 {
		return nil, nil
	}
	resp := m.Responses[0]
	m.Responses = m.Responses[1:]
	return resp.Records, resp.Err
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	records, err := m.next(query, params, 0)
	if err != nil {
		return neo4j.EagerResult{}, err
	}
	return neo4j.EagerResult{Records: records}, nil
}

func (m *MockDriver) ExecuteWrite(ctx context.Context, work driver.TxWork) (any, error) {
	m.Transactions++
	result, err := work(&mockTx{driver: m, id: m.Transactions})
	if err != nil {
		return nil, fmt.Errorf("failed to execute transaction: %w", err)
	}
	return result, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

// Queries lists every statement issued, in order.
func (m *MockDriver) Queries() []string {
	out := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		out[i] = c.Query
	}
	return out
}

type mockTx struct {
	driver *MockDriver
	id     int
}

func (t *mockTx) Run(ctx context.Context, query string, params map[string]interface{}) ([]*neo4j.Record, error) {
	return t.driver.next(query, params, t.id)
}

// rec builds a record from alternating keys and values.
func rec(kv ...any) *neo4j.Record {
	r := &neo4j.Record{}
	for i := 0; i+1 < len(kv); i += 2 {
		r.Keys = append(r.Keys, kv[i].(string))
		r.Values = append(r.Values, kv[i+1])
	}
	return r
}

func rows(records ...*neo4j.Record) MockResponse {
	return MockResponse{Records: records}
}

func postRecord(id int64, createdAt int64, owner string, extra ...any) *neo4j.Record {
	kv := []any{
		"post_id", id,
		"title", fmt.Sprintf("post %d", id),
		"description", "d",
		"body", "<p>b</p>",
		"thumbnail", nil,
		"published", true,
		"created_at", createdAt,
		"updated_at", nil,
		"user_id", owner,
		"username", owner,
		"bio", nil,
		"avatar", nil,
		"user_created_at", int64(1_600_000_000_000),
	}
	return rec(append(kv, extra...)...)
}

type memCache struct {
	users   map[string]model.User
	deleted []string
}

func newMemCache() *memCache {
	return &memCache{users: make(map[string]model.User)}
}

func (c *memCache) Get(ctx context.Context, userID string) (model.User, bool, error) {
	u, ok := c.users[userID]
	return u, ok, nil
}

func (c *memCache) Set(ctx context.Context, user model.User) error {
	c.users[user.UserID] = user
	return nil
}

func (c *memCache) Delete(ctx context.Context, userID string) error {
	delete(c.users, userID)
	c.deleted = append(c.deleted, userID)
	return nil
}
