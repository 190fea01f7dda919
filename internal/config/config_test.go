package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// chdirTemp runs the test from an empty directory so no stray .env is read.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q, want :8080", cfg.Server.Addr)
	}
	ttl, _ := cfg.TTL()
	if ttl != 7*24*time.Hour {
		t.Errorf("ttl = %v, want 168h", ttl)
	}
}

func TestLoad_File(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "custom.toml")
	content := `
[server]
addr = ":9000"
cors-origins = ["https://app.example.com"]

[database]
path = "/tmp/tf.db"

[auth]
jwt-secret = "from-file"
token-ttl = "2h"
bcrypt-cost = 4
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":9000" || cfg.Database.Path != "/tmp/tf.db" {
		t.Errorf("cfg = %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Server.CORSOrigins, []string{"https://app.example.com"}) {
		t.Errorf("cors origins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Auth.JWTSecret != "from-file" || cfg.Auth.BcryptCost != 4 {
		t.Errorf("auth = %+v", cfg.Auth)
	}
	if ttl, _ := cfg.TTL(); ttl != 2*time.Hour {
		t.Errorf("ttl = %v, want 2h", ttl)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, DefaultFile)
	if err := os.WriteFile(path, []byte("[auth]\njwt-secret = \"from-file\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TASKFLOW_JWT_SECRET", "from-env")
	t.Setenv("TASKFLOW_CORS_ORIGINS", "http://a, http://b ,")
	t.Setenv("TASKFLOW_BCRYPT_COST", "5")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Errorf("secret = %q, want from-env", cfg.Auth.JWTSecret)
	}
	if !reflect.DeepEqual(cfg.Server.CORSOrigins, []string{"http://a", "http://b"}) {
		t.Errorf("cors origins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Auth.BcryptCost != 5 {
		t.Errorf("bcrypt cost = %d, want 5", cfg.Auth.BcryptCost)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TASKFLOW_DB=/srv/dotenv.db\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	// godotenv sets variables process-wide; register cleanup through Setenv.
	t.Setenv("TASKFLOW_DB", "")
	os.Unsetenv("TASKFLOW_DB")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Path != "/srv/dotenv.db" {
		t.Errorf("db path = %q, want value from .env", cfg.Database.Path)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := chdirTemp(t)

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[server\naddr="), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	ttl := filepath.Join(dir, "ttl.toml")
	if err := os.WriteFile(ttl, []byte("[auth]\ntoken-ttl = \"a week\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(ttl); err == nil {
		t.Error("expected token-ttl error")
	}

	t.Setenv("TASKFLOW_BCRYPT_COST", "high")
	if _, err := Load(""); err == nil {
		t.Error("expected bcrypt cost error")
	}
}
