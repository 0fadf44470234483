package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// MinChunkSize and MaxChunkSize bound the configurable chunk size.
	MinChunkSize = 100
	MaxChunkSize = 2000
)

// Config holds all configuration for the application.
// It is fixed at process start and never mutated mid-run.
type Config struct {
	LLMBaseURL         string  `yaml:"llm_base_url"`
	LLMModelName       string  `yaml:"llm_model"`
	LLMAPIKey          string  `yaml:"-"`
	Temperature        float64 `yaml:"temperature"`
	EmbeddingBaseURL   string  `yaml:"embedding_base_url"`
	EmbeddingModelName string  `yaml:"embedding_model"`
	DocsDir            string  `yaml:"docs_dir"`
	DBPath             string  `yaml:"db_path"`
	QdrantURL          string  `yaml:"qdrant_url"`
	QdrantCollection   string  `yaml:"qdrant_collection"`
	QdrantVectorSize   int     `yaml:"qdrant_vector_size"`
	ChunkSize          int     `yaml:"chunk_size"`
	ChunkOverlap       int     `yaml:"chunk_overlap"`
	RetrievalK         int     `yaml:"retrieval_k"`
	APIPort            string  `yaml:"api_port"`
	LogLevel           string  `yaml:"log_level"`
	LogFormat          string  `yaml:"log_format"`
}

// Load reads configuration and returns a Config struct.
// Precedence, lowest to highest: built-in defaults, the optional YAML file
// named by CONFIG_FILE (default "dossier.yml" if present), environment
// variables. A .env file in the current directory or project root is loaded
// first; variables already set in the environment take precedence over it.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		LLMBaseURL:         "http://localhost:8080",
		LLMModelName:       "gpt-4o-mini",
		Temperature:        0.0,
		EmbeddingBaseURL:   "http://localhost:8081",
		EmbeddingModelName: "text-embedding-3-small",
		DocsDir:            "./data/raw_docs",
		DBPath:             "./data/dossier-ai.db",
		QdrantURL:          "http://localhost:6333",
		QdrantCollection:   "legal_documents",
		ChunkSize:          1000,
		ChunkOverlap:       200,
		RetrievalK:         5,
		APIPort:            "9000",
		LogLevel:           "info",
		LogFormat:          "text",
	}

	// Overlay YAML config file if one exists.
	path := getEnv("CONFIG_FILE", "dossier.yml")
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Overlay environment variables.
	cfg.LLMBaseURL = getEnv("LLM_BASE_URL", cfg.LLMBaseURL)
	cfg.LLMModelName = getEnv("LLM_MODEL", cfg.LLMModelName)
	cfg.LLMAPIKey = getEnv("LLM_API_KEY", cfg.LLMAPIKey)
	cfg.EmbeddingBaseURL = getEnv("EMBEDDING_BASE_URL", cfg.EmbeddingBaseURL)
	cfg.EmbeddingModelName = getEnv("EMBEDDING_MODEL_NAME", cfg.EmbeddingModelName)
	cfg.DocsDir = getEnv("DOCS_DIR", cfg.DocsDir)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.QdrantURL = getEnv("QDRANT_URL", cfg.QdrantURL)
	cfg.QdrantCollection = getEnv("QDRANT_COLLECTION", cfg.QdrantCollection)
	cfg.APIPort = getEnv("API_PORT", cfg.APIPort)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)

	var err error
	if cfg.QdrantVectorSize, err = getEnvInt("QDRANT_VECTOR_SIZE", cfg.QdrantVectorSize); err != nil {
		return nil, err
	}
	if cfg.ChunkSize, err = getEnvInt("CHUNK_SIZE", cfg.ChunkSize); err != nil {
		return nil, err
	}
	if cfg.ChunkOverlap, err = getEnvInt("CHUNK_OVERLAP", cfg.ChunkOverlap); err != nil {
		return nil, err
	}
	if cfg.RetrievalK, err = getEnvInt("RETRIEVAL_K", cfg.RetrievalK); err != nil {
		return nil, err
	}
	if tempStr := os.Getenv("TEMPERATURE"); tempStr != "" {
		temp, err := strconv.ParseFloat(tempStr, 64)
		if err != nil {
			return nil, fmt.Errorf("TEMPERATURE must be a valid number: %w", err)
		}
		cfg.Temperature = temp
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Create the document and data directories if they don't exist.
	if err := os.MkdirAll(cfg.DocsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create docs directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// Validate checks the configured values against their allowed ranges.
func (c *Config) Validate() error {
	if c.ChunkSize < MinChunkSize || c.ChunkSize > MaxChunkSize {
		return fmt.Errorf("CHUNK_SIZE must be between %d and %d, got %d", MinChunkSize, MaxChunkSize, c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP must be between 0 and CHUNK_SIZE-1, got %d", c.ChunkOverlap)
	}
	if c.RetrievalK < 1 {
		return fmt.Errorf("RETRIEVAL_K must be at least 1, got %d", c.RetrievalK)
	}
	if c.QdrantVectorSize <= 0 {
		return fmt.Errorf("QDRANT_VECTOR_SIZE is required and must be greater than 0")
	}
	if c.DocsDir == "" {
		return fmt.Errorf("DOCS_DIR is required")
	}
	return nil
}

// loadDotEnv tries the current directory first, then walks up to find a
// project root with a .env file. Missing files are not an error.
func loadDotEnv() {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ { // Limit search depth
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return // Reached filesystem root
		}
		dir = parent
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}
