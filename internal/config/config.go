// Package config loads taskflow.toml, an optional .env file and TASKFLOW_*
// environment overrides, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/GokulM8/taskflow/internal/auth"
)

// DefaultFile is the config file read when no path is given.
const DefaultFile = "taskflow.toml"

// Config represents the taskflow.toml configuration file.
type Config struct {
	Server   Server   `toml:"server"`
	Database Database `toml:"database"`
	Auth     Auth     `toml:"auth"`
}

type Server struct {
	Addr string `toml:"addr"`
	// CORSOrigins lists browser origins allowed to call the API.
	CORSOrigins []string `toml:"cors-origins"`
}

type Database struct {
	// Path is the SQLite file. Empty means ~/.taskflow/taskflow.db.
	Path string `toml:"path"`
}

type Auth struct {
	JWTSecret string `toml:"jwt-secret"`
	// TokenTTL is a Go duration string such as "168h".
	TokenTTL   string `toml:"token-ttl"`
	BcryptCost int    `toml:"bcrypt-cost"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: Server{
			Addr:        ":8080",
			CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Auth: Auth{
			TokenTTL: auth.DefaultTokenTTL.String(),
		},
	}
}

// Load reads path (DefaultFile if empty) over the defaults, then .env, then
// the environment. A missing config or .env file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	// godotenv never overrides variables already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if _, err := cfg.TTL(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TASKFLOW_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("TASKFLOW_CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("TASKFLOW_DB"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("TASKFLOW_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("TASKFLOW_TOKEN_TTL"); v != "" {
		c.Auth.TokenTTL = v
	}
	if v := os.Getenv("TASKFLOW_BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TASKFLOW_BCRYPT_COST: %w", err)
		}
		c.Auth.BcryptCost = cost
	}
	return nil
}

// TTL parses Auth.TokenTTL.
func (c *Config) TTL() (time.Duration, error) {
	if strings.TrimSpace(c.Auth.TokenTTL) == "" {
		return auth.DefaultTokenTTL, nil
	}
	d, err := time.ParseDuration(c.Auth.TokenTTL)
	if err != nil {
		return 0, fmt.Errorf("parse token-ttl %q: %w", c.Auth.TokenTTL, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
