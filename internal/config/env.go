package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultJWTSecret = "super-secret-key-change-me"

type Env struct {
	AppAddr string
	GinMode string

	// DBDriver is memory, mysql or sqlite.
	DBDriver string
	DBDSN    string

	JWTSecret string
	TokenTTL  time.Duration

	AdminName     string
	AdminEmail    string
	AdminPassword string
	SeedUsers     int

	CORSOrigins     []string
	LoginRatePerMin int

	StatsTotalRevenue   int
	StatsActiveProjects int
}

func LoadEnv() Env {
	env := Env{
		AppAddr:             envString("APP_ADDR", ":8080"),
		GinMode:             envString("GIN_MODE", ""),
		DBDriver:            strings.ToLower(envString("DB_DRIVER", "memory")),
		DBDSN:               envString("DB_DSN", ""),
		JWTSecret:           envString("JWT_SECRET", defaultJWTSecret),
		TokenTTL:            envDuration("TOKEN_TTL", 24*time.Hour),
		AdminName:           envString("ADMIN_NAME", "Administrator"),
		AdminEmail:          envString("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword:       envString("ADMIN_PASSWORD", "admin123"),
		SeedUsers:           envInt("SEED_USERS", 50),
		CORSOrigins:         envList("CORS_ALLOWED_ORIGINS", defaultCORSOrigins),
		LoginRatePerMin:     envInt("LOGIN_RATE_PER_MIN", 30),
		StatsTotalRevenue:   envInt("STATS_TOTAL_REVENUE", 15000),
		StatsActiveProjects: envInt("STATS_ACTIVE_PROJECTS", 5),
	}

	if env.DBDSN == "" {
		env.DBDSN = defaultDSN(env.DBDriver)
	}
	if env.JWTSecret == defaultJWTSecret {
		log.Println("warning: JWT_SECRET not set, using development secret")
	}
	return env
}

var defaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

func defaultDSN(driver string) string {
	switch driver {
	case "mysql":
		return "root:@tcp(127.0.0.1:3306)/adminpanel?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
	case "sqlite":
		return "file:adminpanel.db?_pragma=busy_timeout(5000)"
	default:
		return ""
	}
}

func envString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("warning: invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("warning: invalid %s=%q, using %s", key, raw, def)
		return def
	}
	return d
}

func envList(key string, def []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
