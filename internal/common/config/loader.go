// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultGroqBaseURL       = "https://api.groq.com/openai/v1/chat/completions"
	DefaultGroqModel         = "llama3-70b-8192"
	DefaultIslamHouseProxy   = "http://localhost:5173/api/islamhouse-v3"
	DefaultIslamHouseBaseURL = "https://api3.islamhouse.com/v3/paV29H2gm56kvLPy"
)

func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	// Enable ENV override like APIS_GROQ_API_KEY
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // ignore error if not found

	return finish(v, env)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v, os.Getenv("APP_ENVIRONMENT"))
}

func finish(v *viper.Viper, env string) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if env != "" {
		cfg.App.Environment = env
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile tries .env in the usual places relative to where the binary
// or the tests were started.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

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

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig fills values the yaml left blank from the
// conventional variable names of the deployment environment.
func overrideEmptyConfig(cfg *Config) {
	setIfEmpty(&cfg.APIs.Groq.APIKey, "GROQ_API_KEY")
	setIfEmpty(&cfg.APIs.Supabase.URL, "SUPABASE_URL")
	setIfEmpty(&cfg.APIs.Supabase.AnonKey, "SUPABASE_ANON_KEY")
	setIfEmpty(&cfg.Database.Postgres.User, "DB_USER")
	setIfEmpty(&cfg.Database.Postgres.Password, "DB_PASSWORD")
	setIfEmpty(&cfg.Database.Redis.Address, "REDIS_ADDRESS")
	setIfEmpty(&cfg.Database.Elasticsearch.URL, "ELASTICSEARCH_URL")
	setIfEmpty(&cfg.Integrations.AWS.Region, "AWS_REGION")

	if cfg.Database.Elasticsearch.URL == "" && len(cfg.Database.Elasticsearch.Addresses) > 0 {
		cfg.Database.Elasticsearch.URL = cfg.Database.Elasticsearch.Addresses[0]
	}
}

func setIfEmpty(field *string, envKey string) {
	if *field != "" {
		return
	}
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "mafatih"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}

	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 10
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 30000
	}
	if cfg.Camunda.RequestTimeout == 0 {
		cfg.Camunda.RequestTimeout = 30000
	}

	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.Index == "" {
		cfg.Database.Elasticsearch.Index = "islamic_questions"
	}

	if cfg.APIs.Groq.BaseURL == "" {
		cfg.APIs.Groq.BaseURL = DefaultGroqBaseURL
	}
	if cfg.APIs.Groq.Model == "" {
		cfg.APIs.Groq.Model = DefaultGroqModel
	}
	if cfg.APIs.Groq.Temperature == 0 {
		cfg.APIs.Groq.Temperature = 0.3
	}
	if cfg.APIs.Groq.MaxTokens == 0 {
		cfg.APIs.Groq.MaxTokens = 1000
	}
	if cfg.APIs.IslamHouse.ProxyURL == "" {
		cfg.APIs.IslamHouse.ProxyURL = DefaultIslamHouseProxy
	}
	if cfg.APIs.IslamHouse.BaseURL == "" {
		cfg.APIs.IslamHouse.BaseURL = DefaultIslamHouseBaseURL
	}
	if cfg.APIs.IslamHouse.Timeout == 0 {
		cfg.APIs.IslamHouse.Timeout = 15000
	}
	if cfg.APIs.Supabase.Timeout == 0 {
		cfg.APIs.Supabase.Timeout = 10000
	}

	if cfg.Resolver.StaticThreshold == 0 {
		cfg.Resolver.StaticThreshold = 0.8
	}
	if cfg.Resolver.QuestionThreshold == 0 {
		cfg.Resolver.QuestionThreshold = 0.4
	}
	if cfg.Resolver.DreamThreshold == 0 {
		cfg.Resolver.DreamThreshold = 0.3
	}
	if cfg.Resolver.VerseThreshold == 0 {
		cfg.Resolver.VerseThreshold = 0.7
	}

	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 600000
	}
	if cfg.Cache.L1MaxCost == 0 {
		cfg.Cache.L1MaxCost = 64 << 20
	}
	if cfg.Cache.L1NumCounters == 0 {
		cfg.Cache.L1NumCounters = 100000
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	if cfg.Workers == nil {
		cfg.Workers = map[string]WorkerConfig{}
	}
	for key, worker := range cfg.Workers {
		if worker.MaxJobsActive == 0 {
			worker.MaxJobsActive = 5
		}
		if worker.Timeout == 0 {
			worker.Timeout = 30000
		}
		if worker.MaxRetries == 0 {
			worker.MaxRetries = 3
		}
		cfg.Workers[key] = worker
	}
}

// validateConfig rejects values that are wrong rather than missing. Absent
// backing stores only disable the tiers that depend on them.
func validateConfig(cfg *Config) error {
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", cfg.Logging.Level)
	}

	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", cfg.Server.Port)
	}

	thresholds := map[string]float64{
		"resolver.static_threshold":   cfg.Resolver.StaticThreshold,
		"resolver.question_threshold": cfg.Resolver.QuestionThreshold,
		"resolver.dream_threshold":    cfg.Resolver.DreamThreshold,
		"resolver.verse_threshold":    cfg.Resolver.VerseThreshold,
	}
	for name, value := range thresholds {
		if value < 0 || value > 1 {
			return fmt.Errorf("%s must be within [0,1], got %v", name, value)
		}
	}

	if cfg.Camunda.Enabled && cfg.Camunda.BrokerAddress == "" {
		return fmt.Errorf("camunda.broker_address is required when camunda.enabled is set")
	}

	if cfg.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetWorkerConfig retrieves worker-specific configuration with fallback to defaults
func GetWorkerConfig(cfg *Config, workerName string) WorkerConfig {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker
	}

	return WorkerConfig{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30000,
		MaxRetries:    3,
	}
}

// IsWorkerEnabled checks if a specific worker is enabled
func IsWorkerEnabled(cfg *Config, workerName string) bool {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker.Enabled
	}
	return true
}
