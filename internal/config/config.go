package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mystixxx/altersport/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	CORSAllowedOrigins []string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	LogLevel           logging.Level

	CacheEnabled bool
	CacheTTL     time.Duration
	SessionTTL   time.Duration

	IdentityFile      string
	EnrichmentWorkers int

	AirtableEnabled               bool
	AirtableBaseURL               string
	AirtableAPIKey                string
	AirtableBaseID                string
	AirtableTimeout               time.Duration
	AirtableMaxRetries            int
	AirtableCircuitEnabled        bool
	AirtableCircuitFailureCount   int
	AirtableCircuitOpenTimeout    time.Duration
	AirtableCircuitHalfOpenMaxReq int

	RecommenderEnabled               bool
	RecommenderBaseURL               string
	RecommenderTimeout               time.Duration
	RecommenderMaxRetries            int
	RecommenderCircuitEnabled        bool
	RecommenderCircuitFailureCount   int
	RecommenderCircuitOpenTimeout    time.Duration
	RecommenderCircuitHalfOpenMaxReq int

	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SESSION_TTL: %w", err)
	}
	if sessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be > 0")
	}

	enrichmentWorkers, err := getEnvAsInt("ENRICHMENT_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse ENRICHMENT_WORKERS: %w", err)
	}
	if enrichmentWorkers < 1 {
		return Config{}, fmt.Errorf("ENRICHMENT_WORKERS must be >= 1")
	}

	airtableEnabled, err := strconv.ParseBool(getEnv("AIRTABLE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AIRTABLE_ENABLED: %w", err)
	}
	airtableTimeout, err := time.ParseDuration(getEnv("AIRTABLE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AIRTABLE_TIMEOUT: %w", err)
	}
	if airtableTimeout <= 0 {
		return Config{}, fmt.Errorf("AIRTABLE_TIMEOUT must be > 0")
	}
	airtableMaxRetries, err := getEnvAsInt("AIRTABLE_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse AIRTABLE_MAX_RETRIES: %w", err)
	}
	if airtableMaxRetries < 0 {
		return Config{}, fmt.Errorf("AIRTABLE_MAX_RETRIES must be >= 0")
	}
	airtableCircuitEnabled, err := strconv.ParseBool(getEnv("AIRTABLE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AIRTABLE_CIRCUIT_ENABLED: %w", err)
	}
	airtableCircuitFailureCount, err := getEnvAsInt("AIRTABLE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse AIRTABLE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if airtableCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("AIRTABLE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	airtableCircuitOpenTimeout, err := time.ParseDuration(getEnv("AIRTABLE_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AIRTABLE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if airtableCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("AIRTABLE_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	airtableCircuitHalfOpenMaxReq, err := getEnvAsInt("AIRTABLE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse AIRTABLE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if airtableCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("AIRTABLE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	airtableBaseURL := strings.TrimSpace(getEnv("AIRTABLE_BASE_URL", "https://api.airtable.com/v0"))
	airtableAPIKey := strings.TrimSpace(getEnv("AIRTABLE_API_KEY", ""))
	airtableBaseID := strings.TrimSpace(getEnv("AIRTABLE_BASE_ID", ""))
	if airtableEnabled {
		if airtableAPIKey == "" {
			return Config{}, fmt.Errorf("AIRTABLE_API_KEY is required when AIRTABLE_ENABLED=true")
		}
		if airtableBaseID == "" {
			return Config{}, fmt.Errorf("AIRTABLE_BASE_ID is required when AIRTABLE_ENABLED=true")
		}
	}

	recommenderEnabled, err := strconv.ParseBool(getEnv("RECOMMENDER_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RECOMMENDER_ENABLED: %w", err)
	}
	recommenderTimeout, err := time.ParseDuration(getEnv("RECOMMENDER_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RECOMMENDER_TIMEOUT: %w", err)
	}
	if recommenderTimeout <= 0 {
		return Config{}, fmt.Errorf("RECOMMENDER_TIMEOUT must be > 0")
	}
	recommenderMaxRetries, err := getEnvAsInt("RECOMMENDER_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse RECOMMENDER_MAX_RETRIES: %w", err)
	}
	if recommenderMaxRetries < 0 {
		return Config{}, fmt.Errorf("RECOMMENDER_MAX_RETRIES must be >= 0")
	}
	recommenderCircuitEnabled, err := strconv.ParseBool(getEnv("RECOMMENDER_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RECOMMENDER_CIRCUIT_ENABLED: %w", err)
	}
	recommenderCircuitFailureCount, err := getEnvAsInt("RECOMMENDER_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse RECOMMENDER_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if recommenderCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("RECOMMENDER_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	recommenderCircuitOpenTimeout, err := time.ParseDuration(getEnv("RECOMMENDER_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RECOMMENDER_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if recommenderCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("RECOMMENDER_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	recommenderCircuitHalfOpenMaxReq, err := getEnvAsInt("RECOMMENDER_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse RECOMMENDER_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if recommenderCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("RECOMMENDER_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	recommenderBaseURL := strings.TrimSpace(getEnv("RECOMMENDER_BASE_URL", ""))
	if recommenderEnabled && recommenderBaseURL == "" {
		return Config{}, fmt.Errorf("RECOMMENDER_BASE_URL is required when RECOMMENDER_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "altersport-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),

		CacheEnabled: cacheEnabled,
		CacheTTL:     cacheTTL,
		SessionTTL:   sessionTTL,

		IdentityFile:      getEnv("IDENTITY_FILE", "altersport-identity.json"),
		EnrichmentWorkers: enrichmentWorkers,

		AirtableEnabled:               airtableEnabled,
		AirtableBaseURL:               airtableBaseURL,
		AirtableAPIKey:                airtableAPIKey,
		AirtableBaseID:                airtableBaseID,
		AirtableTimeout:               airtableTimeout,
		AirtableMaxRetries:            airtableMaxRetries,
		AirtableCircuitEnabled:        airtableCircuitEnabled,
		AirtableCircuitFailureCount:   airtableCircuitFailureCount,
		AirtableCircuitOpenTimeout:    airtableCircuitOpenTimeout,
		AirtableCircuitHalfOpenMaxReq: airtableCircuitHalfOpenMaxReq,

		RecommenderEnabled:               recommenderEnabled,
		RecommenderBaseURL:               recommenderBaseURL,
		RecommenderTimeout:               recommenderTimeout,
		RecommenderMaxRetries:            recommenderMaxRetries,
		RecommenderCircuitEnabled:        recommenderCircuitEnabled,
		RecommenderCircuitFailureCount:   recommenderCircuitFailureCount,
		RecommenderCircuitOpenTimeout:    recommenderCircuitOpenTimeout,
		RecommenderCircuitHalfOpenMaxReq: recommenderCircuitHalfOpenMaxReq,

		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
