package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For splitting the origin list

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort        string   // Application port
	DBUser         string   // Database user
	DBPassword     string   // Database password
	DBHost         string   // Database host
	DBPort         string   // Database port
	DBName         string   // Database name
	RedisAddr      string   // Redis server address
	RedisPass      string   // Redis password
	RedisDB        int      // Redis database number
	AdminPassword  string   // Shared admin secret for the payout surface
	AllowedOrigins []string // CORS origin allowlist
	IsProd         bool     // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "5001" // Default port
	}
	return &Config{
		AppPort:        port,
		DBUser:         os.Getenv("DB_USER"),           // Database user
		DBPassword:     os.Getenv("DB_PASSWORD"),       // Database password
		DBHost:         os.Getenv("DB_HOST"),           // Database host
		DBPort:         os.Getenv("DB_PORT"),           // Database port
		DBName:         os.Getenv("DB_NAME"),           // Database name
		RedisAddr:      os.Getenv("REDIS_ADDR"),        // Redis server address
		RedisPass:      os.Getenv("REDIS_PASS"),        // Redis password
		RedisDB:        redisDB,                        // Redis database number
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),    // Shared admin secret
		AllowedOrigins: allowedOrigins(),               // CORS origin allowlist
		IsProd:         os.Getenv("IS_PROD") == "true", // Is production environment
	}
}

// allowedOrigins parses the comma-separated ALLOWED_ORIGINS variable,
// falling back to the local dev client.
func allowedOrigins() []string {
	raw := os.Getenv("ALLOWED_ORIGINS")
	if raw == "" {
		return []string{"http://localhost:5173"}
	}
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// DSN assembles the MySQL data source name.
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}
