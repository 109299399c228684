package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	BlobBasePath string

	// Cutoff dataset consumed by the prediction engine and the college seeder.
	CSVDataPath  string
	SeedColleges bool

	AuthSecret    string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string

	CORSOriginsOnline  []string
	CORSOriginsOffline []string

	ExtractorURL     string
	ExtractorTimeout time.Duration

	RequestTimeout time.Duration
}

// FromEnv loads .env when present and reads the process environment.
func FromEnv() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}

	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	addr := envOr("HTTP_ADDR", ":8080")
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	return Config{
		Mode:               mode,
		HTTPAddr:           addr,
		DBDriver:           envOr("DB_DRIVER", "sqlite"),
		DBDSN:              envOr("DB_DSN", ""),
		BlobBasePath:       envOr("BLOB_BASE_PATH", "./data"),
		CSVDataPath:        envOr("CSV_DATA_PATH", "./kcet_cleaned.csv"),
		SeedColleges:       envBool("SEED_COLLEGES", true),
		AuthSecret:         envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		TokenTTL:           envDuration("TOKEN_TTL", 8*time.Hour),
		AdminEmail:         envOr("ADMIN_EMAIL", "admin@kcetprep.com"),
		AdminPassword:      envOr("ADMIN_PASSWORD", "Admin@123"),
		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://kcetprep.example.com"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000"),
		ExtractorURL:       envOr("EXTRACTOR_URL", "http://localhost:5000/extract"),
		ExtractorTimeout:   envDuration("EXTRACTOR_TIMEOUT", 10*time.Minute),
		RequestTimeout:     envDuration("REQUEST_TIMEOUT", 30*time.Second),
	}
}

// CORSOrigins returns the allow-list for the current mode.
func (c Config) CORSOrigins() []string {
	if c.Mode == ModeOnline {
		return c.CORSOriginsOnline
	}
	return c.CORSOriginsOffline
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: bad duration %s=%q, using %s", k, v, def)
		return def
	}
	return d
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
