package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DB_URL", "postgres://localhost/flashcards")
	t.Setenv("COOKIE_DOMAIN", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendGorm, cfg.StoreBackend)
	assert.Equal(t, []string{"authenticated"}, cfg.JWTAudience)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:4321"}, cfg.CORSOrigins)
	assert.True(t, cfg.Env.IsDevelopment)
	assert.Equal(t, "localhost", cfg.Env.Domain)
	assert.False(t, cfg.Env.CookieSecure)
}

func TestLoad_Production(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("STORE_BACKEND", BackendSupabase)
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("COOKIE_DOMAIN", ".example.com")
	t.Setenv("CORS_ORIGINS", " https://a.example.com , https://b.example.com ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Env.IsDevelopment)
	assert.True(t, cfg.Env.CookieSecure)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"no secret", map[string]string{"JWT_SECRET_KEY": "", "DB_URL": "x"}},
		{"no database url", map[string]string{"JWT_SECRET_KEY": "s", "DB_URL": ""}},
		{"supabase without keys", map[string]string{"JWT_SECRET_KEY": "s", "STORE_BACKEND": BackendSupabase, "SUPABASE_URL": ""}},
		{"unknown backend", map[string]string{"JWT_SECRET_KEY": "s", "STORE_BACKEND": "dynamo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestOpenDatabase_UnknownDriver(t *testing.T) {
	_, err := OpenDatabase("mysql", "")
	assert.EqualError(t, err, `unsupported database driver "mysql"`)
}
