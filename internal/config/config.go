package config

import (
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		LocalStore
		Search
		Limits
	}

	HTTP struct {
		Addr            string
		CORSOrigins     []string
		EnableHSTS      bool
		ShutdownTimeout time.Duration
	}
	Database struct {
		DSN            string // takes precedence over the individual fields
		Host           string
		Port           int
		User           string
		Password       string
		Name           string
		MaxConns       int32
		QueryTimeout   time.Duration
		ConnectTimeout time.Duration
	}
	LocalStore struct {
		Path string // empty keeps the fallback collection in memory
	}
	Search struct {
		BaseURL string
		APIKey  string
		RPS     int
	}
	Limits struct {
		RateLimitRPS   float64
		RateLimitBurst int
		MaxBodyBytes   int64
	}
)

// LoadEnvFiles reads .env and .env.local without overriding variables that
// are already set by the runtime.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load builds the configuration from the environment.
func Load() *Config {
	LoadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	// LOCAL_STORE_PATH= selects the in-memory fallback
	v.AllowEmptyEnv(true)
	v.SetDefault("app_addr", ":8080")
	v.SetDefault("cors_origins", "")
	v.SetDefault("enable_hsts", false)
	v.SetDefault("shutdown_timeout", "10s")

	v.SetDefault("db_dsn", "")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "postgres")
	v.SetDefault("db_name", "booklibrary")
	v.SetDefault("db_max_conns", 10)
	v.SetDefault("db_query_timeout", "3s")
	v.SetDefault("db_connect_timeout", "2s")

	v.SetDefault("local_store_path", "data/books.db")

	v.SetDefault("google_books_url", "https://www.googleapis.com/books/v1")
	v.SetDefault("google_books_api_key", "")
	v.SetDefault("search_rps", 5)

	v.SetDefault("rate_limit_rps", 20)
	v.SetDefault("rate_limit_burst", 40)
	v.SetDefault("max_body_bytes", 1<<20)

	return &Config{
		HTTP: HTTP{
			Addr:            v.GetString("APP_ADDR"),
			CORSOrigins:     splitList(v.GetString("CORS_ORIGINS")),
			EnableHSTS:      v.GetBool("ENABLE_HSTS"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: Database{
			DSN:            v.GetString("DB_DSN"),
			Host:           v.GetString("DB_HOST"),
			Port:           v.GetInt("DB_PORT"),
			User:           v.GetString("DB_USER"),
			Password:       v.GetString("DB_PASSWORD"),
			Name:           v.GetString("DB_NAME"),
			MaxConns:       v.GetInt32("DB_MAX_CONNS"),
			QueryTimeout:   v.GetDuration("DB_QUERY_TIMEOUT"),
			ConnectTimeout: v.GetDuration("DB_CONNECT_TIMEOUT"),
		},
		LocalStore: LocalStore{
			Path: v.GetString("LOCAL_STORE_PATH"),
		},
		Search: Search{
			BaseURL: v.GetString("GOOGLE_BOOKS_URL"),
			APIKey:  v.GetString("GOOGLE_BOOKS_API_KEY"),
			RPS:     v.GetInt("SEARCH_RPS"),
		},
		Limits: Limits{
			RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
			MaxBodyBytes:   v.GetInt64("MAX_BODY_BYTES"),
		},
	}
}

// ConnString returns DSN when set, otherwise a postgres URL assembled from
// the individual fields.
func (d Database) ConnString() string {
	if d.DSN != "" {
		return d.DSN
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	return u.String()
}

// RedactDSN hides the credentials of a postgres URL for logging.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
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
