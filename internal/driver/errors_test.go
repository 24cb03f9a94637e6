package driver

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
)

func TestIsConstraintViolation(t *testing.T) {
	violation := &neo4j.Neo4jError{Code: constraintViolationCode, Msg: "already exists"}

	assert.True(t, IsConstraintViolation(violation))
	assert.True(t, IsConstraintViolation(fmt.Errorf("failed to execute transaction: %w", violation)))
	assert.True(t, IsConstraintViolation(errors.New("Unable to commit due to unique constraint violation on :Reaction(pair)")))

	assert.False(t, IsConstraintViolation(nil))
	assert.False(t, IsConstraintViolation(&neo4j.Neo4jError{Code: "Neo.ClientError.Statement.SyntaxError", Msg: "bad"}))
	assert.False(t, IsConstraintViolation(errors.New("connection refused")))
}

func TestSchemaQueries(t *testing.T) {
	joined := fmt.Sprint(SchemaQueries)
	assert.Contains(t, joined, "u.userID IS UNIQUE")
	assert.Contains(t, joined, "r.pair IS UNIQUE")
	assert.Contains(t, joined, "p.created_at")
}

func TestFeedQueriesAreBoundedInStore(t *testing.T) {
	for name, q := range map[string]string{"anonymous": AnonymousFeedQuery, "viewer": ViewerFeedQuery} {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, q, "LIMIT $limit")
			assert.Contains(t, q, "ORDER BY score DESC, p.created_at DESC, id(p) DESC")
			assert.Contains(t, q, "toFloat(p.created_at - $now)")
			assert.Contains(t, q, "NOT id(p) IN $current_posts")
			assert.Less(t, strings.Index(q, "LIMIT $limit"), strings.Index(q, "RETURN"))
		})
	}
	assert.Less(t, strings.Index(ViewerFeedQuery, "LIMIT $limit"), strings.Index(ViewerFeedQuery, "$viewer_id"))
}
