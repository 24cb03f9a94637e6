//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/agenthands/distnode/internal/config"
	"github.com/agenthands/distnode/internal/core"
	"github.com/agenthands/distnode/internal/driver"
)

type fixture struct {
	driver *driver.Neo4jDriver
	engine *core.Engine
	users  []string
}

func setup(t *testing.T) *fixture {
	_ = godotenv.Load("../../.env")
	if os.Getenv("NEO4J_URI") == "" {
		t.Skip("NEO4J_URI not set")
	}

	cfg, err := config.LoadOrDefault("../../config/config.toml")
	require.NoError(t, err)

	ctx := context.Background()
	logger := zaptest.NewLogger(t)
	d, err := driver.NewNeo4jDriver(ctx, cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password, cfg.Neo4j.Database, logger)
	require.NoError(t, err)

	f := &fixture{driver: d, engine: core.NewEngine(d, core.WithLogger(logger))}
	require.NoError(t, f.engine.BuildIndices(ctx))

	t.Cleanup(func() {
		_, _ = d.ExecuteQuery(context.Background(), `
			MATCH (u:User) WHERE u.userID IN $ids
			OPTIONAL MATCH (p:Post)-[:POSTED_BY]->(u)
			OPTIONAL MATCH (u)-[:CommentFrom]->(c:Comment)
			OPTIONAL MATCH (u)-[:ReactionFrom]->(r:Reaction)
			DETACH DELETE u, p, c, r
		`, map[string]interface{}{"ids": f.users})
		_ = d.Close(context.Background())
	})
	return f
}

// user creates a User the way registration would.
func (f *fixture) user(t *testing.T, name string) string {
	id := name + "-" + uuid.New().String()
	_, err := f.driver.ExecuteQuery(context.Background(),
		`CREATE (:User {userID: $id, username: $name, created_at: timestamp()})`,
		map[string]interface{}{"id": id, "name": name})
	require.NoError(t, err)
	f.users = append(f.users, id)
	return id
}

func (f *fixture) reactionCount(t *testing.T, userID string, postID int64) int64 {
	res, err := f.driver.ExecuteQuery(context.Background(), `
		MATCH (:User {userID: $user_id})-[:ReactionFrom]->(r:Reaction)-[:ReactionTo]->(p:Post)
		WHERE id(p) = $post_id
		RETURN count(r) AS n
	`, map[string]interface{}{"user_id": userID, "post_id": postID})
	require.NoError(t, err)
	n, _ := res.Records[0].Get("n")
	return n.(int64)
}
