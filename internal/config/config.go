// Package config provides process configuration and logger setup.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/raphaelgruber/engram-go/internal/memory"
)

// Provider names for embedding and extraction backends.
const (
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
	ProviderBedrock   = "bedrock"
	ProviderAnthropic = "anthropic"
)

// Memory holds the tunables of the ranking and admission core.
type Memory struct {
	Weights        memory.Weights `yaml:"weights"`
	DecayDays      float64        `yaml:"decay_days"`
	RelevanceFloor float64        `yaml:"relevance_floor"`
	RecallLimit    int            `yaml:"recall_limit"`
	DedupThreshold float64        `yaml:"dedup_threshold"`
	ForgetAuto     float64        `yaml:"forget_auto_threshold"`
	ForgetFloor    float64        `yaml:"forget_search_floor"`
	ForgetLimit    int            `yaml:"forget_candidates"`
	MaxPerTurn     int            `yaml:"max_per_turn"`
}

// Config holds all configuration values. It is built once at startup and
// passed by reference; nothing mutates it afterwards.
type Config struct {
	// SurrealDB connection
	SurrealDBURL       string `yaml:"surrealdb_url"`
	SurrealDBNamespace string `yaml:"surrealdb_namespace"`
	SurrealDBDatabase  string `yaml:"surrealdb_database"`
	SurrealDBUser      string `yaml:"surrealdb_user"`
	SurrealDBPass      string `yaml:"surrealdb_pass"`
	SurrealDBAuthLevel string `yaml:"surrealdb_auth_level"`

	// Embedding
	EmbedProvider  string `yaml:"embed_provider"`
	EmbedModel     string `yaml:"embed_model"`
	EmbedDimension int    `yaml:"embed_dimension"`

	// Extraction LLM
	LLMProvider string `yaml:"llm_provider"`
	LLMModel    string `yaml:"llm_model"`

	// Provider credentials / endpoints
	OpenAIAPIKey    string `yaml:"-"`
	AnthropicAPIKey string `yaml:"-"`
	OllamaHost      string `yaml:"ollama_host"`
	AWSRegion       string `yaml:"aws_region"`

	// Ranking and admission core
	Memory Memory `yaml:"memory"`

	// Logging
	LogFile  string     `yaml:"log_file"`
	LogLevel slog.Level `yaml:"-"`
}

// embedDimensions maps known embedding models to their vector sizes.
var embedDimensions = map[string]int{
	"text-embedding-3-small":     1536,
	"text-embedding-3-large":     3072,
	"amazon.titan-embed-text-v1": 1536,
}

// Load reads configuration from environment variables, applying defaults.
// If ENGRAM_CONFIG_FILE is set, that YAML file is read first and environment
// variables override it.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("ENGRAM_CONFIG_FILE"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)

	// Derive the dimension from the model when not set explicitly.
	if cfg.EmbedDimension == 0 {
		cfg.EmbedDimension = embedDimensions[cfg.EmbedModel]
	}
	if cfg.EmbedDimension == 0 {
		return Config{}, fmt.Errorf("unknown embedding dimension for model %q; set ENGRAM_EMBED_DIMENSION", cfg.EmbedModel)
	}

	return cfg, nil
}

func defaults() Config {
	return Config{
		SurrealDBURL:       "ws://localhost:8000/rpc",
		SurrealDBNamespace: "engram",
		SurrealDBDatabase:  "memory",
		SurrealDBUser:      "root",
		SurrealDBPass:      "root",
		SurrealDBAuthLevel: "root",

		EmbedProvider: ProviderOpenAI,
		EmbedModel:    "text-embedding-3-small",

		LLMProvider: ProviderOpenAI,
		LLMModel:    "gpt-4o-mini",

		OllamaHost: "http://localhost:11434",
		AWSRegion:  "us-east-1",

		Memory: DefaultMemory(),

		LogFile:  "/tmp/engram.log",
		LogLevel: slog.LevelInfo,
	}
}

// DefaultMemory returns the stock ranking/admission tunables.
func DefaultMemory() Memory {
	return Memory{
		Weights:        memory.DefaultWeights,
		DecayDays:      30,
		RelevanceFloor: 0.25,
		RecallLimit:    5,
		DedupThreshold: 0.85,
		ForgetAuto:     0.9,
		ForgetFloor:    0.5,
		ForgetLimit:    5,
		MaxPerTurn:     5,
	}
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.SurrealDBURL, "SURREALDB_URL")
	setString(&cfg.SurrealDBNamespace, "SURREALDB_NAMESPACE")
	setString(&cfg.SurrealDBDatabase, "SURREALDB_DATABASE")
	setString(&cfg.SurrealDBUser, "SURREALDB_USER")
	setString(&cfg.SurrealDBPass, "SURREALDB_PASS")
	setString(&cfg.SurrealDBAuthLevel, "SURREALDB_AUTH_LEVEL")

	setString(&cfg.EmbedProvider, "ENGRAM_EMBED_PROVIDER")
	setString(&cfg.EmbedModel, "ENGRAM_EMBED_MODEL")
	setInt(&cfg.EmbedDimension, "ENGRAM_EMBED_DIMENSION")

	setString(&cfg.LLMProvider, "ENGRAM_LLM_PROVIDER")
	setString(&cfg.LLMModel, "ENGRAM_LLM_MODEL")

	setString(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	setString(&cfg.OllamaHost, "OLLAMA_HOST")
	setString(&cfg.AWSRegion, "AWS_REGION")

	setFloat(&cfg.Memory.Weights.Vector, "ENGRAM_WEIGHT_VECTOR")
	setFloat(&cfg.Memory.Weights.Importance, "ENGRAM_WEIGHT_IMPORTANCE")
	setFloat(&cfg.Memory.Weights.Recency, "ENGRAM_WEIGHT_RECENCY")
	setFloat(&cfg.Memory.Weights.Access, "ENGRAM_WEIGHT_ACCESS")
	setFloat(&cfg.Memory.DecayDays, "ENGRAM_DECAY_DAYS")
	setFloat(&cfg.Memory.RelevanceFloor, "ENGRAM_RELEVANCE_FLOOR")
	setInt(&cfg.Memory.RecallLimit, "ENGRAM_RECALL_LIMIT")
	setFloat(&cfg.Memory.DedupThreshold, "ENGRAM_DEDUP_THRESHOLD")
	setInt(&cfg.Memory.MaxPerTurn, "ENGRAM_MAX_PER_TURN")

	setString(&cfg.LogFile, "ENGRAM_LOG_FILE")
	if v := os.Getenv("ENGRAM_LOG_LEVEL"); v != "" {
		cfg.LogLevel = parseLogLevel(v)
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
