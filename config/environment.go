package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Environment struct {
	IsDevelopment bool
	Domain        string
	CookieSecure  bool
}

// Config holds everything the API server reads from its environment.
type Config struct {
	Port string
	Env  Environment

	DBDriver     string
	DBURL        string
	StoreBackend string

	SupabaseURL     string
	SupabaseAnonKey string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience []string

	CORSOrigins []string
	DevUserID   string
	LogLevel    string
}

const (
	BackendGorm     = "gorm"
	BackendSupabase = "supabase"
)

// LoadDotEnv loads a .env file unless running on the hosted platform.
func LoadDotEnv() error {
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") != "" {
		return nil
	}
	return godotenv.Load()
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("STORE_BACKEND", BackendGorm)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:4321")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_ISSUER", "flashcards-api")
	v.SetDefault("JWT_AUDIENCE", "authenticated")
	v.SetDefault("DEV_USER_ID", "9c103c05-64ff-466c-a64b-1f490f3593a5")

	// If no domain is set, we're in development
	domain := v.GetString("COOKIE_DOMAIN")
	isDev := domain == ""
	if isDev {
		domain = "localhost"
	}

	cfg := &Config{
		Port: v.GetString("PORT"),
		Env: Environment{
			IsDevelopment: isDev,
			Domain:        domain,
			CookieSecure:  !isDev,
		},
		DBDriver:        v.GetString("DB_DRIVER"),
		DBURL:           v.GetString("DB_URL"),
		StoreBackend:    v.GetString("STORE_BACKEND"),
		SupabaseURL:     v.GetString("SUPABASE_URL"),
		SupabaseAnonKey: v.GetString("SUPABASE_ANON_KEY"),
		JWTSecret:       v.GetString("JWT_SECRET_KEY"),
		JWTIssuer:       v.GetString("JWT_ISSUER"),
		JWTAudience:     splitList(v.GetString("JWT_AUDIENCE")),
		CORSOrigins:     splitList(v.GetString("CORS_ORIGINS")),
		DevUserID:       v.GetString("DEV_USER_ID"),
		LogLevel:        v.GetString("LOG_LEVEL"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET_KEY not set")
	}
	switch c.StoreBackend {
	case BackendGorm:
		if c.DBURL == "" {
			return fmt.Errorf("config: DB_URL not set")
		}
	case BackendSupabase:
		if c.SupabaseURL == "" || c.SupabaseAnonKey == "" {
			return fmt.Errorf("config: SUPABASE_URL and SUPABASE_ANON_KEY must be set")
		}
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}
	return nil
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
