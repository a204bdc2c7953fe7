package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig    `json:"server"`
	Database  DatabaseConfig  `json:"database"`
	Storage   StorageConfig   `json:"storage"`
	GCS       GCSConfig       `json:"gcs"`
	MinIO     MinIOConfig     `json:"minio"`
	Gotenberg GotenbergConfig `json:"gotenberg"`
	Log       LogConfig       `json:"log"`
	Client    ClientConfig    `json:"client"`
}

type ServerConfig struct {
	Port           string   `json:"port"`
	Environment    string   `json:"environment"`
	BaseURL        string   `json:"base_url"`
	AllowedOrigins []string `json:"allowed_origins"` // dashboard origins for CORS
}

type DatabaseConfig struct {
	Driver     string `json:"driver"` // "postgres", "mysql" or "sqlite"
	Host       string `json:"host"`
	Port       string `json:"port"`
	User       string `json:"user"`
	Password   string `json:"password"`
	DBName     string `json:"db_name"`
	SQLitePath string `json:"sqlite_path"`
}

type StorageConfig struct {
	Type      string `json:"type"`       // "local", "gcs" or "minio"
	LocalPath string `json:"local_path"` // Path for local storage (e.g., "./storage")
	LocalURL  string `json:"local_url"`  // Base URL for local storage (e.g., "http://localhost:8081/files")
	SecretKey string `json:"secret_key"` // Secret key for signing local URLs
}

type GCSConfig struct {
	BucketName      string `json:"bucket_name"`
	ProjectID       string `json:"project_id"`
	CredentialsPath string `json:"credentials_path"`
}

type MinIOConfig struct {
	Endpoint  string `json:"endpoint"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
	Bucket    string `json:"bucket"`
	UseSSL    bool   `json:"use_ssl"`
}

type GotenbergConfig struct {
	Enabled bool   `json:"enabled"` // convert office uploads to PDF before storing
	URL     string `json:"url"`
	Timeout string `json:"timeout"`
}

type LogConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // json or console
}

// ClientConfig is used by the leadadmin console to reach the backend
type ClientConfig struct {
	BaseURL   string        `json:"base_url"`
	Token     string        `json:"token"`
	Timeout   time.Duration `json:"timeout"`
	DraftPath string        `json:"draft_path"` // where the console keeps the lead form being edited
}

func (d *DatabaseConfig) DSN() string {
	switch d.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			d.User, d.Password, d.Host, d.Port, d.DBName)
	case "sqlite":
		return d.SQLitePath
	}
	// Cloud SQL Unix socket support
	if len(d.Host) > 0 && d.Host[0] == '/' {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
			d.Host, d.User, d.Password, d.DBName)
	}
	// Standard TCP connection
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.DBName)
}

// findProjectRoot finds the project root by looking for go.mod file
func findProjectRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// loadEnvFile loads the first .env found; it reports whether one was loaded
func loadEnvFile() bool {
	envPaths := []string{}

	if projectRoot := findProjectRoot(); projectRoot != "" {
		envPaths = append(envPaths, filepath.Join(projectRoot, ".env"))
	}

	// Fallback paths
	envPaths = append(envPaths, "../../.env", ".env")

	for _, envPath := range envPaths {
		if err := godotenv.Load(envPath); err == nil {
			return true
		}
	}
	return false
}

func Load() (*Config, error) {
	if !loadEnvFile() {
		fmt.Fprintln(os.Stderr, "No .env file found, using system environment variables")
	}

	defaultPort := "5432"
	driver := getEnv("DB_DRIVER", "postgres")
	if driver == "mysql" {
		defaultPort = "3306"
	}

	config := &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8081"),
			Environment:    getEnv("ENVIRONMENT", "development"),
			BaseURL:        getEnv("BASE_URL", ""),
			AllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Driver:     driver,
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", defaultPort),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", ""),
			DBName:     getEnv("DB_NAME", "lead_admin"),
			SQLitePath: getEnv("DB_SQLITE_PATH", "lead_admin.db"),
		},
		Storage: StorageConfig{
			Type:      getEnv("STORAGE_TYPE", "local"),
			LocalPath: getEnv("STORAGE_LOCAL_PATH", "./storage"),
			LocalURL:  getEnv("STORAGE_LOCAL_URL", "http://localhost:8081/files"),
			SecretKey: getEnv("STORAGE_SECRET_KEY", ""),
		},
		GCS: GCSConfig{
			BucketName:      getEnv("GCS_BUCKET_NAME", ""),
			ProjectID:       getEnv("GOOGLE_CLOUD_PROJECT", ""),
			CredentialsPath: getEnv("GCS_CREDENTIALS_PATH", ""),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "lead-documents"),
			UseSSL:    getBool("MINIO_USE_SSL", false),
		},
		Gotenberg: GotenbergConfig{
			Enabled: getBool("GOTENBERG_ENABLED", false),
			URL:     getEnv("GOTENBERG_URL", "http://localhost:3000"),
			Timeout: getEnv("GOTENBERG_TIMEOUT", "30s"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Client: ClientConfig{
			BaseURL:   getEnv("LEAD_ADMIN_API_URL", "http://localhost:8081/api/v1"),
			Token:     getEnv("LEAD_ADMIN_TOKEN", ""),
			Timeout:   getDuration("LEAD_ADMIN_TIMEOUT", 30*time.Second),
			DraftPath: getEnv("LEAD_ADMIN_DRAFT", ".leadform-draft.json"),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	switch c.Storage.Type {
	case "local", "gcs", "minio":
	default:
		return fmt.Errorf("unsupported STORAGE_TYPE %q", c.Storage.Type)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
