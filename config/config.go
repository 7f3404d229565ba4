package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"

	ImageBackendDatabase = "database"
	ImageBackendMinio    = "minio"
	ImageBackendGCS      = "gcs"
)

type Config struct {
	ServerPort   int
	StoreBackend string
	ImageBackend string
	CORSOrigins  []string
	Database     DatabaseConfig
	Auth         AuthConfig
	Minio        MinioConfig
	GCS          GCSConfig
	Log          LogConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	UseSSL   bool
}

type AuthConfig struct {
	JWTSecret  string
	Issuer     string
	Audience   string
	TokenTTL   time.Duration
	BcryptCost int
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type GCSConfig struct {
	Bucket          string
	ProjectID       string
	CredentialsFile string
}

type LogConfig struct {
	Level  string
	Format string
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "mentormatch"),
		Password: getEnv("DB_PASSWORD", "password"),
		DBName:   getEnv("DB_NAME", "mentormatch"),
		UseSSL:   getEnvBool("DB_USE_SSL", false),
	}

	authConfig := AuthConfig{
		JWTSecret:  strings.TrimSpace(getEnv("JWT_SECRET", "")),
		Issuer:     getEnv("JWT_ISSUER", "mentor-mentee-app"),
		Audience:   getEnv("JWT_AUDIENCE", "mentor-mentee-users"),
		TokenTTL:   getEnvDuration("JWT_TTL", time.Hour),
		BcryptCost: getEnvInt("BCRYPT_COST", 0),
	}

	minioConfig := MinioConfig{
		Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		SecretKey: getEnv("MINIO_SECRET_KEY", ""),
		Bucket:    getEnv("MINIO_BUCKET", "mentormatch"),
		UseSSL:    getEnvBool("MINIO_USE_SSL", false),
	}

	gcsConfig := GCSConfig{
		Bucket:          getEnv("GCS_BUCKET", ""),
		ProjectID:       getEnv("GCS_PROJECT_ID", ""),
		CredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),
	}

	return Config{
		ServerPort:   getEnvInt("SERVER_PORT", 8080),
		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", StoreBackendPostgres)),
		ImageBackend: strings.ToLower(getEnv("IMAGE_BACKEND", ImageBackendDatabase)),
		CORSOrigins:  getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		Database:     dbConfig,
		Auth:         authConfig,
		Minio:        minioConfig,
		GCS:          gcsConfig,
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		value, err := strconv.Atoi(strings.TrimSpace(valueStr))
		if err != nil {
			return defaultValue
		}
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		switch strings.ToLower(strings.TrimSpace(valueStr)) {
		case "1", "true", "yes", "on":
			return true
		default:
			return false
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valueStr, exists := os.LookupEnv(key); exists {
		value, err := time.ParseDuration(strings.TrimSpace(valueStr))
		if err != nil || value <= 0 {
			return defaultValue
		}
		return value
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
