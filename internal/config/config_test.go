package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[neo4j]
uri = "neo4j://graph:7687"
user = "neo4j"

[redis]
url = "redis://cache:6379/0"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "neo4j://graph:7687", cfg.Neo4j.URI)
	assert.Equal(t, "neo4j", cfg.Neo4j.User)
	assert.Equal(t, "redis://cache:6379/0", cfg.Redis.URL)
	// untouched sections keep defaults
	assert.Equal(t, "3001", cfg.Server.Port)
	assert.Equal(t, 300, cfg.Redis.UserTTLSeconds)
	assert.Equal(t, "accessToken", cfg.Auth.CookieName)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[neo4j\nuri ="), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML")
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, "bolt://localhost:7687", cfg.Neo4j.URI)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"NEO4J_URI":               "bolt://other:7687",
		"NEO4J_PASSWORD":          "secret",
		"JWT_ACCESS_TOKEN_SECRET": "jwt-secret",
		"PORT":                    "8080",
	}
	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "bolt://other:7687", cfg.Neo4j.URI)
	assert.Equal(t, "secret", cfg.Neo4j.Password)
	assert.Equal(t, "jwt-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "neo4j", cfg.Neo4j.Database)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.Validate())

	cfg.Auth.JWTSecret = "s"
	assert.NoError(t, cfg.Validate())
}
