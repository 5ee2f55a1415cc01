// Package config loads and validates the application configuration from
// environment variables. Required variables, defaults, and parse failures are
// collected into a single aggregated error so a misconfigured deployment
// fails fast with a complete report.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Generation backend providers recognized by AI_PROVIDER.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// DBConfig holds PostgreSQL connection settings for the application pool.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxConns int
}

// AuthConfig holds session and token-economy settings. TokenDuration doubles
// as the session cookie max-age so a cookie never outlives its credential.
type AuthConfig struct {
	JWTSecret         string
	TokenDuration     time.Duration
	CookieName        string
	CookieSecure      bool
	ReadingCost       int64
	RegistrationGrant int64
}

// OllamaConfig holds settings for the local inference backend.
type OllamaConfig struct {
	APIURL string
	Model  string
}

// OpenAIConfig holds settings for the cloud backend.
type OpenAIConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
}

// AIConfig selects and parameterizes the text-generation backend.
type AIConfig struct {
	Provider       string
	Temperature    float64
	TopP           float64
	RequestTimeout time.Duration
	Ollama         OllamaConfig
	OpenAI         OpenAIConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
}

// AppConfig is the top-level configuration structure.
type AppConfig struct {
	DB     *DBConfig
	Auth   *AuthConfig
	AI     *AIConfig
	Server *ServerConfig
}

func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

func getOptionalEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getOptionalEnvInt(key string, defaultValue int, errs *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got %q: %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

func getOptionalEnvInt64(key string, defaultValue int64, errs *[]string) int64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got %q: %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

func getOptionalEnvFloat(key string, defaultValue float64, errs *[]string) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueFloat, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected number, got %q: %v", key, valueStr, err))
		return defaultValue
	}
	return valueFloat
}

func getOptionalEnvDuration(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration string, got %q: %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// LoadConfig reads all configuration from the environment. It returns an
// aggregated error listing every problem found rather than stopping at the
// first one.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	db := &DBConfig{
		Host:     getOptionalEnv("DB_HOST", "localhost"),
		Port:     getOptionalEnvInt("DB_PORT", 5432, &errs),
		User:     getRequiredEnv("DB_USER", &errs),
		Password: getRequiredEnv("DB_PASSWORD", &errs),
		DBName:   getRequiredEnv("DB_NAME", &errs),
		MaxConns: getOptionalEnvInt("DB_MAX_CONNS", 10, &errs),
	}
	if db.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("DB_MAX_CONNS must be positive, got %d", db.MaxConns))
		db.MaxConns = 1
	}

	auth := &AuthConfig{
		JWTSecret:         getRequiredEnv("JWT_SECRET", &errs),
		TokenDuration:     getOptionalEnvDuration("JWT_TOKEN_DURATION", 24*time.Hour, &errs),
		CookieName:        getOptionalEnv("AUTH_COOKIE_NAME", "token"),
		CookieSecure:      getOptionalEnv("ENV", "development") == "production",
		ReadingCost:       getOptionalEnvInt64("READING_COST", 1, &errs),
		RegistrationGrant: getOptionalEnvInt64("REGISTRATION_GRANT", 5, &errs),
	}
	if auth.ReadingCost <= 0 {
		errs = append(errs, fmt.Sprintf("READING_COST must be positive, got %d", auth.ReadingCost))
	}
	if auth.RegistrationGrant < 0 {
		errs = append(errs, fmt.Sprintf("REGISTRATION_GRANT must not be negative, got %d", auth.RegistrationGrant))
	}

	ai := &AIConfig{
		Provider:       getOptionalEnv("AI_PROVIDER", ProviderOllama),
		Temperature:    getOptionalEnvFloat("AI_TEMPERATURE", 0.7, &errs),
		TopP:           getOptionalEnvFloat("AI_TOP_P", 0.9, &errs),
		RequestTimeout: getOptionalEnvDuration("AI_REQUEST_TIMEOUT", 120*time.Second, &errs),
		Ollama: OllamaConfig{
			APIURL: getOptionalEnv("OLLAMA_API_URL", "http://localhost:11434"),
			Model:  getOptionalEnv("OLLAMA_MODEL", "llama3.2"),
		},
		OpenAI: OpenAIConfig{
			APIKey:    getOptionalEnv("OPENAI_API_KEY", ""),
			Model:     getOptionalEnv("OPENAI_MODEL", "gpt-4o-mini"),
			MaxTokens: getOptionalEnvInt("OPENAI_MAX_TOKENS", 2000, &errs),
		},
	}
	// The key is only required when the cloud backend is actually selected.
	if ai.Provider == ProviderOpenAI && ai.OpenAI.APIKey == "" {
		errs = append(errs, "missing required environment variable: OPENAI_API_KEY (AI_PROVIDER=openai)")
	}

	server := &ServerConfig{
		Port: getOptionalEnv("PORT", "8080"),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &AppConfig{DB: db, Auth: auth, AI: ai, Server: server}, nil
}
