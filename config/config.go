package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Auth    AuthConfig
	Catalog CatalogConfig
	Orders  OrdersConfig
}

type ServerConfig struct {
	Port           string
	AppEnv         string
	RequestTimeout time.Duration
	MaxUploadBytes int64
	// TrustedProxies are CIDRs whose X-Forwarded-For header is believed.
	TrustedProxies []string
}

type MongoConfig struct {
	URI      string
	Database string
	// Driver selects the store backend: "mongo" or "memory".
	Driver string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret  string
	StaffRoles []string
}

type CatalogConfig struct {
	ProductCacheTTL   time.Duration
	ProductsPageLimit int
	ReconcileInterval time.Duration
}

type OrdersConfig struct {
	PageLimit               int
	StatsCacheTTL           time.Duration
	StrictStatusTransitions bool
}

// LoadEnv loads environment variables from a .env file
func LoadEnv() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Error loading .env file")
	}
}

// Load builds the runtime configuration from the environment.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           GetEnv("PORT", "3000"),
			AppEnv:         GetEnv("APP_ENV", "development"),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
			MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
			TrustedProxies: getEnvSlice("TRUSTED_PROXIES", nil),
		},
		Mongo: MongoConfig{
			URI:      GetEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: GetEnv("MONGODB_DATABASE", "storefront"),
			Driver:   GetEnv("STORE_DRIVER", "mongo"),
		},
		Redis: RedisConfig{
			Addr:     GetEnv("REDIS_ADDR", ""),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret:  GetEnv("JWT_SECRET", ""),
			StaffRoles: getEnvSlice("STAFF_ROLES", []string{"admin", "creator", "pager"}),
		},
		Catalog: CatalogConfig{
			ProductCacheTTL:   getEnvDuration("PRODUCT_CACHE_TTL", 5*time.Minute),
			ProductsPageLimit: getEnvInt("PRODUCTS_PAGE_LIMIT", 9),
			ReconcileInterval: getEnvDuration("RECONCILE_INTERVAL", 0),
		},
		Orders: OrdersConfig{
			PageLimit:               getEnvInt("ORDERS_PAGE_LIMIT", 15),
			StatsCacheTTL:           getEnvDuration("STATS_CACHE_TTL", 30*time.Second),
			StrictStatusTransitions: getEnvBool("STRICT_STATUS_TRANSITIONS", false),
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development"
}

// GetEnv retrieves environment variables with a fallback
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
