package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var envKeys = []string{"APP_ENV", "LISTEN_ADDR", "DATABASE_URL", "JWT_SECRET_KEY", "TOKEN_TTL_HOURS", "BCRYPT_COST"}

// isolate clears the variables Load reads and moves into an empty directory
// so no stray .env is picked up.
func isolate(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":5000", cfg.ListenAddr)
	assert.Equal(t, "tasks.db", cfg.DatabaseURL)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.True(t, cfg.UsesDefaultSecret())
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("LISTEN_ADDR", ":8080")
	t.Setenv("DATABASE_URL", "data/app.db")
	t.Setenv("JWT_SECRET_KEY", " s3cret ")
	t.Setenv("TOKEN_TTL_HOURS", "2")
	t.Setenv("BCRYPT_COST", "12")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "data/app.db", cfg.DatabaseURL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.False(t, cfg.UsesDefaultSecret())
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "taskapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen_addr: ":9000"
database_url: "file.db"
jwt_secret: "from-file"
token_ttl: 90m
`), 0o600))
	t.Setenv("DATABASE_URL", "env.db")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "env.db", cfg.DatabaseURL)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(".env", []byte("JWT_SECRET_KEY=dotenv-secret\n"), 0o600))
	// godotenv never overrides variables already present, even empty ones.
	require.NoError(t, os.Unsetenv("JWT_SECRET_KEY"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv-secret", cfg.JWTSecret)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		path string
	}{
		{"production with default secret", map[string]string{"APP_ENV": "production"}, ""},
		{"bad bcrypt cost", map[string]string{"BCRYPT_COST": "abc"}, ""},
		{"bcrypt cost too high", map[string]string{"BCRYPT_COST": "40"}, ""},
		{"missing file", nil, "does-not-exist.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(tt.path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_ProductionWithSecret(t *testing.T) {
	isolate(t)
	t.Setenv("APP_ENV", "Production")
	t.Setenv("JWT_SECRET_KEY", "real-secret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestParseHours(t *testing.T) {
	assert.Equal(t, time.Duration(0), parseHours(""))
	assert.Equal(t, time.Duration(0), parseHours("-1"))
	assert.Equal(t, time.Duration(0), parseHours("x"))
	assert.Equal(t, 5*time.Hour, parseHours("5"))
}
