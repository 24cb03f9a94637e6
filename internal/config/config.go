package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port string `toml:"port"`
	Mode string `toml:"mode"` // gin mode: debug, release, test
}

type Neo4jConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
}

type AuthConfig struct {
	JWTSecret  string `toml:"jwt_secret"`
	CookieName string `toml:"cookie_name"`
}

// RedisConfig enables the user profile cache when URL is set.
type RedisConfig struct {
	URL            string `toml:"url"`
	UserTTLSeconds int    `toml:"user_ttl_seconds"`
}

type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

type Config struct {
	Server ServerConfig `toml:"server"`
	Neo4j  Neo4jConfig  `toml:"neo4j"`
	Auth   AuthConfig   `toml:"auth"`
	Redis  RedisConfig  `toml:"redis"`
	Log    LogConfig    `toml:"log"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "3001", Mode: "release"},
		Neo4j:  Neo4jConfig{URI: "bolt://localhost:7687", Database: "neo4j"},
		Auth:   AuthConfig{CookieName: "accessToken"},
		Redis:  RedisConfig{UserTTLSeconds: 300},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads a TOML file on top of Default. Values left out of the file keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default when the file
// does not exist. Env overrides are applied in both cases.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

// ApplyEnv overrides file values with the deployment's environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	override := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	override(&c.Server.Port, "PORT")
	override(&c.Server.Mode, "GIN_MODE")
	override(&c.Neo4j.URI, "NEO4J_URI")
	override(&c.Neo4j.User, "NEO4J_USERNAME")
	override(&c.Neo4j.Password, "NEO4J_PASSWORD")
	override(&c.Neo4j.Database, "NEO4J_DATABASE")
	override(&c.Auth.JWTSecret, "JWT_ACCESS_TOKEN_SECRET")
	override(&c.Redis.URL, "REDIS_URL")
	override(&c.Log.Level, "LOG_LEVEL")
}

func (c *Config) Validate() error {
	if c.Neo4j.URI == "" {
		return errors.New("neo4j.uri must be set")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret (JWT_ACCESS_TOKEN_SECRET) must be set")
	}
	return nil
}
