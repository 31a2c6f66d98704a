package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// Lending backend configuration
	BackendBaseURL string        `json:"backend_base_url"`
	BackendTimeout time.Duration `json:"backend_timeout"`
	HTTPPoolSize   int           `json:"http_pool_size"`

	// Address lookup configuration
	CEPLookupURL   string        `json:"cep_lookup_url"`
	CEPLookupTTL   time.Duration `json:"cep_lookup_ttl"`
	CEPLookupLimit int           `json:"cep_lookup_limit_per_minute"`

	// MongoDB configuration
	MongoURI      string `json:"mongo_uri"`
	MongoDatabase string `json:"mongo_database"`

	// Redis configuration
	RedisURI      string        `json:"redis_uri"`
	RedisPassword string        `json:"redis_password"`
	RedisDB       int           `json:"redis_db"`
	RedisTTL      time.Duration `json:"redis_ttl"`

	// Collection names
	FormSectionsCollection    string `json:"mongo_form_sections_collection"`
	SubmissionAuditCollection string `json:"mongo_submission_audit_collection"`

	// Wizard sessions
	WizardSessionTTL time.Duration `json:"wizard_session_ttl"`
	SectionsCacheTTL time.Duration `json:"sections_cache_ttl"`

	// Audit configuration
	AuditEnabled    bool `json:"audit_enabled"`
	AuditWorkers    int  `json:"audit_workers"`
	AuditBufferSize int  `json:"audit_buffer_size"`

	// Authorization
	AdminRole string `json:"admin_role"`

	// Tracing configuration
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables.
// A .env file in the working directory is read first when present.
func LoadConfig() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read .env: %w", err)
	}

	port, err := getEnvAsIntOrDefault("PORT", 8080)
	if err != nil {
		return err
	}

	redisDB, err := getEnvAsIntOrDefault("REDIS_DB", 0)
	if err != nil {
		return err
	}

	httpPoolSize, err := getEnvAsIntOrDefault("HTTP_POOL_SIZE", 20)
	if err != nil {
		return err
	}

	cepLimit, err := getEnvAsIntOrDefault("CEP_LOOKUP_LIMIT_PER_MINUTE", 120)
	if err != nil {
		return err
	}

	auditWorkers, err := getEnvAsIntOrDefault("AUDIT_WORKERS", 2)
	if err != nil {
		return err
	}

	auditBuffer, err := getEnvAsIntOrDefault("AUDIT_BUFFER_SIZE", 1000)
	if err != nil {
		return err
	}

	redisTTL, err := getEnvAsDurationOrDefault("REDIS_TTL", "60m")
	if err != nil {
		return err
	}

	backendTimeout, err := getEnvAsDurationOrDefault("BACKEND_TIMEOUT", "15s")
	if err != nil {
		return err
	}

	cepTTL, err := getEnvAsDurationOrDefault("CEP_LOOKUP_TTL", "24h")
	if err != nil {
		return err
	}

	sessionTTL, err := getEnvAsDurationOrDefault("WIZARD_SESSION_TTL", "2h")
	if err != nil {
		return err
	}

	sectionsTTL, err := getEnvAsDurationOrDefault("SECTIONS_CACHE_TTL", "10m")
	if err != nil {
		return err
	}

	// The lending backend has no sensible default
	backendURL := os.Getenv("BACKEND_BASE_URL")
	if backendURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL environment variable is required")
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		// Lending backend configuration
		BackendBaseURL: strings.TrimSuffix(backendURL, "/"),
		BackendTimeout: backendTimeout,
		HTTPPoolSize:   httpPoolSize,

		// Address lookup configuration
		CEPLookupURL:   strings.TrimSuffix(getEnvOrDefault("CEP_LOOKUP_URL", "https://viacep.com.br/ws"), "/"),
		CEPLookupTTL:   cepTTL,
		CEPLookupLimit: cepLimit,

		// MongoDB configuration
		MongoURI:      getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGODB_DATABASE", "cadastro"),

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
		RedisTTL:      redisTTL,

		// Collection names
		FormSectionsCollection:    getEnvOrDefault("MONGODB_FORM_SECTIONS_COLLECTION", "form_sections"),
		SubmissionAuditCollection: getEnvOrDefault("MONGODB_SUBMISSION_AUDIT_COLLECTION", "submission_audit"),

		// Wizard sessions
		WizardSessionTTL: sessionTTL,
		SectionsCacheTTL: sectionsTTL,

		// Audit configuration
		AuditEnabled:    getEnvAsBoolOrDefault("AUDIT_ENABLED", true),
		AuditWorkers:    auditWorkers,
		AuditBufferSize: auditBuffer,

		// Authorization
		AdminRole: getEnvOrDefault("ADMIN_ROLE", "backoffice:admin"),

		// Tracing configuration
		TracingEnabled:  getEnvAsBoolOrDefault("TRACING_ENABLED", false),
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault parses an integer environment variable
func getEnvAsIntOrDefault(key string, defaultValue int) (int, error) {
	value, err := strconv.Atoi(getEnvOrDefault(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

// getEnvAsDurationOrDefault parses a duration environment variable
func getEnvAsDurationOrDefault(key, defaultValue string) (time.Duration, error) {
	value, err := time.ParseDuration(getEnvOrDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

// getEnvAsBoolOrDefault parses a boolean environment variable, falling back on bad input
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnvOrDefault(key, strconv.FormatBool(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return value
}
