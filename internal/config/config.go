package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Server holds the demo backend's runtime configuration.  Each field maps to
// one environment variable.  The database block is optional: with no DB_HOST
// the server runs on its seeded in-memory repositories.
type Server struct {
	Env          string // application environment (dev/test/prod)
	Port         string // HTTP port to listen on
	JWTSecret    string // secret used to sign access tokens
	AccessTTLMin int    // access token time-to-live in minutes
	BcryptCost   int    // bcrypt cost for password hashing
	DBUser       string // database username (optional)
	DBPass       string // database password (optional)
	DBHost       string // database host; empty disables MySQL
	DBPort       string // database port
	DBName       string // database name
	DBMaxConns   int    // connection pool size (open and idle)
	DBConnTTLMin int    // connection max lifetime in minutes
	AMQPURL      string // RabbitMQ URL; empty disables notifications
}

// LoadServer reads the demo backend configuration.  Required variables are
// enforced by must(); missing values end the process with a fatal log.
func LoadServer() Server {
	return Server{
		Env:          getenv("APP_ENV", "dev"),
		Port:         must("APP_PORT"),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: mustInt("ACCESS_TOKEN_TTL_MIN"),
		BcryptCost:   mustInt("BCRYPT_COST"),
		DBUser:       os.Getenv("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"),
		DBHost:       os.Getenv("DB_HOST"),
		DBPort:       getenv("DB_PORT", "3306"),
		DBName:       os.Getenv("DB_NAME"),
		DBMaxConns:   getenvInt("DB_MAX_CONNS", 25),
		DBConnTTLMin: getenvInt("DB_CONN_TTL_MIN", 30),
		AMQPURL:      os.Getenv("RABBITMQ_URL"),
	}
}

// Client holds the portal client's configuration: where the backend lives
// and where the persisted mirror goes.  With REDIS_ADDR (or REDIS_HOST/PORT)
// set the mirror lives in Redis; otherwise MIRROR_PATH names a JSON file.
type Client struct {
	APIBaseURL string // backend base URL
	MirrorPath string // file mirror location when Redis is not used
}

// LoadClient reads the client configuration with sensible defaults; nothing
// here is required, so the portal binary runs with no environment at all.
func LoadClient() Client {
	return Client{
		APIBaseURL: getenv("API_BASE_URL", "http://localhost:8000"),
		MirrorPath: getenv("MIRROR_PATH", "portal-mirror.json"),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is must() plus integer conversion.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getenvInt is getenv with integer conversion; unparseable values fall back
// to the default rather than killing the process, since every caller has a
// workable one.
func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid int for %s: %q, using %d", key, v, def)
		return def
	}
	return n
}
