package config

import (
	"os"
	"strconv"
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
	SiteID   string

	DBDriver string
	DBDSN    string

	BlobDriver   string // fs
	BlobBasePath string

	AuthHMACSecret string
	AdminUser      string
	AdminPassHash  string // bcrypt

	CORSOrigins []string

	TestDurationMinutes int
	EssayPolicy         string // strict|exclude|pending-review
	SessionRetention    time.Duration
	ReapSchedule        string // cron spec

	RedisAddr      string // empty disables result publishing
	ResultsChannel string
	BankSeedPath   string // empty uses the built-in question set
	LogLevel       string
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		return Config{}, err
	}
	return FromEnv(), nil
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	defOrigins := "http://localhost:3000,http://localhost:5173"
	if mode == ModeOnline {
		defOrigins = ""
	}
	return Config{
		Mode:                mode,
		HTTPAddr:            envOr("HTTP_ADDR", ":8080"),
		SiteID:              envOr("SITE_ID", "local"),
		DBDriver:            envOr("DB_DRIVER", "sqlite"),
		DBDSN:               envOr("DB_DSN", ""),
		BlobDriver:          envOr("BLOB_DRIVER", "fs"),
		BlobBasePath:        envOr("BLOB_BASE_PATH", "./data"),
		AuthHMACSecret:      envOr("AUTH_HMAC_SECRET", "dev-secret-change-me"),
		AdminUser:           envOr("ADMIN_USER", "admin@test.com"),
		AdminPassHash:       envOr("ADMIN_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),
		CORSOrigins:         csvOr("CORS_ORIGINS", defOrigins),
		TestDurationMinutes: envInt("TEST_DURATION_MINUTES", 30),
		EssayPolicy:         envOr("ESSAY_POLICY", "strict"),
		SessionRetention:    envDuration("SESSION_RETENTION", time.Hour),
		ReapSchedule:        envOr("REAP_SCHEDULE", "@every 1m"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		ResultsChannel:      envOr("RESULTS_CHANNEL", "session_submitted"),
		BankSeedPath:        os.Getenv("BANK_SEED_PATH"),
		LogLevel:            envOr("LOG_LEVEL", "info"),
	}
}
func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envInt(k string, def int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return n
}
func envDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil {
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
