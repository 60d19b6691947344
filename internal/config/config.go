package config

import (
	"errors"  // For configuration errors
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For splitting list values
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort        string        // Application port
	DBUser         string        // Database user
	DBPassword     string        // Database password
	DBHost         string        // Database host
	DBPort         string        // Database port
	DBName         string        // Database name
	JWTSecret      string        // JWT secret key
	JWTTTL         time.Duration // Token lifetime
	RedisAddr      string        // Redis server address, empty disables caching
	RedisPass      string        // Redis password
	RedisDB        int           // Redis database number
	ReportCacheTTL time.Duration // Lifetime of cached yearly reports
	CORSOrigins    []string      // Allowed front-end origins
	LogLevel       string        // Logrus level name
	SeedPassword   string        // Password given to seeded users
	IsProd         bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:        getEnv("APP_PORT", "8080"),                                 // Application port
		DBUser:         os.Getenv("DB_USER"),                                       // Database user
		DBPassword:     os.Getenv("DB_PASSWORD"),                                   // Database password
		DBHost:         getEnv("DB_HOST", "127.0.0.1"),                             // Database host
		DBPort:         getEnv("DB_PORT", "3306"),                                  // Database port
		DBName:         os.Getenv("DB_NAME"),                                       // Database name
		JWTSecret:      os.Getenv("JWT_SECRET"),                                    // JWT secret key
		JWTTTL:         getDuration("JWT_TTL", 24*time.Hour),                       // Token lifetime
		RedisAddr:      os.Getenv("REDIS_ADDR"),                                    // Redis server address
		RedisPass:      os.Getenv("REDIS_PASS"),                                    // Redis password
		RedisDB:        redisDB,                                                    // Redis database number
		ReportCacheTTL: getDuration("REPORT_CACHE_TTL", 60*time.Second),            // Report cache lifetime
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "http://127.0.0.1:5173")), // Allowed origins
		LogLevel:       getEnv("LOG_LEVEL", "info"),                                // Log level
		SeedPassword:   getEnv("SEED_PASSWORD", "password123"),                     // Seed password
		IsProd:         os.Getenv("IS_PROD") == "true",                             // Is production environment
	}
}

// Validate reports settings the server cannot start without
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if c.DBName == "" {
		return errors.New("DB_NAME must be set")
	}
	return nil
}

// MySQLDSN builds the go-sql-driver DSN used by gorm
func (c *Config) MySQLDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// MigrateURL builds the golang-migrate database URL for the same database
func (c *Config) MigrateURL() string {
	return "mysql://" + c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?multiStatements=true"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
