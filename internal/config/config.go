package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Required values are enforced with must(); every
// optional integration (spam check, notification email, object storage, TLS)
// is silently disabled when its variables are absent.
type Config struct {
	Env     string // application environment (e.g. "dev", "prod")
	Port    string // HTTP port to listen on
	BaseURL string // external base URL used when building magic-link URLs

	DBUser string // database username
	DBPass string // database password (optional)
	DBHost string // database host address
	DBPort string // database port number
	DBName string // database name

	JWTSecret       string // secret used to sign session access tokens
	AccessTTLMin    int    // access token time-to-live in minutes
	RefreshTTLDays  int    // refresh token time-to-live in days
	MagicLinkTTLMin int    // sign-in link time-to-live in minutes

	TurnstileSecret string // spam verification secret; empty disables the check

	ResendAPIKey string // outbound email API key; empty disables notifications
	NotifyEmail  string // recipient for booking notifications
	FromEmail    string // sender address for outbound email

	S3Bucket     string // object storage bucket; empty disables uploads
	S3Region     string // object storage region
	S3Endpoint   string // S3-compatible endpoint URL (optional)
	S3AccessKey  string // object storage access key
	S3SecretKey  string // object storage secret key
	S3PublicBase string // public base URL for uploaded objects

	TLSDomain   string // when set in prod, serve TLS via autocert for this host
	TLSCacheDir string // directory for cached certificates
}

// Load reads configuration values from environment variables and returns a
// Config.  Missing required variables cause the program to exit with a fatal
// log message.
func Load() Config {
	return Config{
		Env:     must("APP_ENV"),
		Port:    must("APP_PORT"),
		BaseURL: envStr("APP_BASE_URL", "http://localhost:"+os.Getenv("APP_PORT")),

		DBUser: must("DB_USER"),
		DBPass: os.Getenv("DB_PASS"), // empty password allowed
		DBHost: must("DB_HOST"),
		DBPort: must("DB_PORT"),
		DBName: must("DB_NAME"),

		JWTSecret:       must("JWT_SECRET"),
		AccessTTLMin:    envInt("ACCESS_TOKEN_TTL_MIN", 60),
		RefreshTTLDays:  envInt("REFRESH_TOKEN_TTL_DAYS", 30),
		MagicLinkTTLMin: envInt("MAGIC_LINK_TTL_MIN", 15),

		TurnstileSecret: os.Getenv("TURNSTILE_SECRET_KEY"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		NotifyEmail:  os.Getenv("BOOKING_NOTIFY_EMAIL"),
		FromEmail:    envStr("BOOKING_FROM_EMAIL", "Bookings <notifications@example.com>"),

		S3Bucket:     os.Getenv("S3_BUCKET"),
		S3Region:     envStr("S3_REGION", "us-east-1"),
		S3Endpoint:   os.Getenv("S3_ENDPOINT"),
		S3AccessKey:  os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:  os.Getenv("S3_SECRET_KEY"),
		S3PublicBase: os.Getenv("S3_PUBLIC_BASE_URL"),

		TLSDomain:   os.Getenv("TLS_DOMAIN"),
		TLSCacheDir: envStr("TLS_CACHE_DIR", ".autocert"),
	}
}

// IsProd reports whether the service runs in the production environment.
// Error detail in API responses and the Secure cookie attribute key off this.
func (c Config) IsProd() bool { return c.Env == "prod" }

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
