package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBDSN         string
	MediaBaseURL  string
	LogFile       string
	PageSize      int
	MaxPageSize   int
	Seed          bool
	AdminEmail    string
	AdminPassword string
}

func Load() Config {
	// Optional .env in the working directory; real env always wins.
	_ = godotenv.Load()

	cfg := Config{
		Port:          getenv("PORT", "8080"),
		DBDSN:         getenv("DB_DSN", "officemart.db"),
		MediaBaseURL:  getenv("MEDIA_BASE_URL", "https://res.cloudinary.com/officemart/image/upload/"),
		LogFile:       getenv("LOG_FILE", "./officemart.log"),
		PageSize:      getint("PAGE_SIZE", 15),
		MaxPageSize:   getint("MAX_PAGE_SIZE", 100),
		Seed:          getbool("SEED", true),
		AdminEmail:    getenv("ADMIN_EMAIL", "admin@officemart.test"),
		AdminPassword: getenv("ADMIN_PASSWORD", "ChangeMe1!"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_BASE_URL=%s PAGE_SIZE=%d", cfg.Port, cfg.DBDSN, cfg.MediaBaseURL, cfg.PageSize)
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getbool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
