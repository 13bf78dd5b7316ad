package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server Configuration
	Port        string
	Environment string
	Debug       bool

	// Database Configuration
	MongoURI string
	DBName   string

	// Redis Configuration (session store)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT Configuration
	JWTSecret string
	TokenTTL  time.Duration

	// Storage Configuration
	StorageProvider string // "s3" or "local"
	UploadPath      string
	MaxUploadSize   int64
	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	S3PublicBaseURL string

	// Email Configuration
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// Security Configuration
	CORSAllowedOrigins []string
	RateLimitEnabled   bool

	// Application Configuration
	AppName    string
	AppVersion string
	AppURL     string

	// OTP Configuration
	OTPTTL time.Duration
}

var AppConfig *Config

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	config := &Config{
		// Server Configuration
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		Debug:       getEnvAsBool("DEBUG", true),

		// Database Configuration
		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:   getEnv("DB_NAME", "filehive"),

		// Redis Configuration
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// JWT Configuration
		JWTSecret: getEnv("JWT_SECRET", "your-secret-key"),
		TokenTTL:  getEnvAsDuration("TOKEN_TTL", "168h"), // 7 days

		// Storage Configuration
		StorageProvider: getEnv("STORAGE_PROVIDER", "local"),
		UploadPath:      getEnv("UPLOAD_PATH", "./uploads"),
		MaxUploadSize:   getEnvAsInt64("MAX_UPLOAD_SIZE", 10485760), // 10MB
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Region:        getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		S3AccessKey:     getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:     getEnv("S3_SECRET_KEY", ""),
		S3PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),

		// Email Configuration
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@filehive.app"),

		// Security Configuration
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:5173",
			"http://localhost:3000",
		}),
		RateLimitEnabled: getEnvAsBool("RATE_LIMIT_ENABLED", true),

		// Application Configuration
		AppName:    getEnv("APP_NAME", "FileHive"),
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		AppURL:     getEnv("APP_URL", "http://localhost:8080"),

		// OTP Configuration
		OTPTTL: getEnvAsDuration("OTP_TTL", "5m"),
	}

	// Set global config
	AppConfig = config

	if config.Debug {
		log.Printf("Configuration loaded: Environment=%s, Port=%s, Database=%s",
			config.Environment, config.Port, config.DBName)
	}

	return config
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	if parsed, err := time.ParseDuration(defaultValue); err == nil {
		return parsed
	}
	return 24 * time.Hour // fallback
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var result []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				result = append(result, item)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetServerAddress returns the server address for listening
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// ValidateConfig validates the configuration
func (c *Config) ValidateConfig() error {
	if c.MongoURI == "" {
		log.Fatal("MONGO_URI environment variable is required")
	}

	if c.JWTSecret == "your-secret-key" && c.IsProduction() {
		log.Fatal("JWT_SECRET must be changed in production")
	}

	if c.StorageProvider == "s3" && c.S3Bucket == "" {
		log.Fatal("S3_BUCKET is required when STORAGE_PROVIDER=s3")
	}

	// Create upload directory if it doesn't exist
	if c.StorageProvider == "local" {
		if err := os.MkdirAll(c.UploadPath, 0755); err != nil {
			log.Printf("Warning: Could not create upload directory %s: %v", c.UploadPath, err)
		}
	}

	return nil
}
