package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup. It is built once
// in main and handed to each component; nothing reads the environment
// after Load returns.
type Config struct {
	Addr      string
	MongoURI  string
	DBName    string
	RedisAddr string
	JWTSecret []byte
	TokenTTL  time.Duration
}

const defaultTokenTTL = 7 * 24 * time.Hour

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	cfg := &Config{
		Addr:      getenv("PORT", ":8080"),
		MongoURI:  getenv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:    getenv("DB_NAME", "worklane"),
		RedisAddr: getenv("REDIS_ADDR", "localhost:6379"),
		JWTSecret: []byte(os.Getenv("JWT_SECRET")),
		TokenTTL:  defaultTokenTTL,
	}

	if cfg.Addr[0] != ':' {
		cfg.Addr = ":" + cfg.Addr
	}
	if len(cfg.JWTSecret) == 0 {
		log.Fatal("JWT_SECRET must be set")
	}
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			log.Fatalf("Invalid TOKEN_TTL %q: %v", ttl, err)
		}
		cfg.TokenTTL = d
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
