package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TitanConfig configures the titan-style embedding model gateway.
type TitanConfig struct {
	Endpoint    string `yaml:"endpoint"`
	Model       string `yaml:"model"`
	APIKeyEnv   string `yaml:"api_key_env"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// OpenAIConfig configures an OpenAI-compatible model endpoint.
type OpenAIConfig struct {
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// EmbedderConfig selects and configures the embedding backend.
type EmbedderConfig struct {
	Type   string        `yaml:"type"`
	Titan  *TitanConfig  `yaml:"titan,omitempty"`
	OpenAI *OpenAIConfig `yaml:"openai,omitempty"`
}

// ClaudeConfig configures the claude-style generative model gateway.
type ClaudeConfig struct {
	Endpoint         string `yaml:"endpoint"`
	Model            string `yaml:"model"`
	APIKeyEnv        string `yaml:"api_key_env"`
	AnthropicVersion string `yaml:"anthropic_version"`
	MaxTokens        int    `yaml:"max_tokens"`
	TimeoutSecs      int    `yaml:"timeout_secs"`
}

// GeneratorConfig selects and configures the generative model backend.
type GeneratorConfig struct {
	Type   string        `yaml:"type"`
	Claude *ClaudeConfig `yaml:"claude,omitempty"`
	OpenAI *OpenAIConfig `yaml:"openai,omitempty"`
}

// PineconeConfig contains connection details for a managed remote index.
type PineconeConfig struct {
	Host        string `yaml:"host"`
	APIKeyEnv   string `yaml:"api_key_env"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// ChromemConfig configures the local chromem-go store.
type ChromemConfig struct {
	Path     string `yaml:"path"`
	InMemory bool   `yaml:"in_memory"`
}

// PGVectorConfig configures the Postgres pgvector store.
type PGVectorConfig struct {
	DSN         string `yaml:"dsn"`
	PasswordEnv string `yaml:"password_env"`
	Debug       bool   `yaml:"debug"`
}

// VectorStoreConfig selects and configures the vector index backend.
type VectorStoreConfig struct {
	Type     string          `yaml:"type"`
	Pinecone *PineconeConfig `yaml:"pinecone,omitempty"`
	Chromem  *ChromemConfig  `yaml:"chromem,omitempty"`
	PGVector *PGVectorConfig `yaml:"pgvector,omitempty"`
}

// ChunkerConfig bounds chunk size before embedding. Remote embedding models
// impose input-length limits that are not validated downstream, so the limit
// is enforced here.
type ChunkerConfig struct {
	MaxChars int `yaml:"max_chars"`
}

// PromptConfig bounds assembled prompt context. When the budget is exceeded,
// lower-ranked retrieved contexts are dropped whole.
type PromptConfig struct {
	ContextBudgetChars int `yaml:"context_budget_chars"`
}

// IngestConfig controls ingestion-side concurrency. Workers is the number of
// parallel embedding calls per document; 1 means sequential.
type IngestConfig struct {
	Workers int `yaml:"workers"`
}

// RetrieverConfig sets the default number of results per query.
type RetrieverConfig struct {
	TopK int `yaml:"top_k"`
}

// Config is the root application configuration.
type Config struct {
	Embedder    EmbedderConfig    `yaml:"embedder"`
	Generator   GeneratorConfig   `yaml:"generator"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	Chunker     ChunkerConfig     `yaml:"chunker"`
	Prompt      PromptConfig      `yaml:"prompt"`
	Ingest      IngestConfig      `yaml:"ingest"`
	Retriever   RetrieverConfig   `yaml:"retriever"`
}

// Load reads a config file and applies defaults for omitted fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "titan"
	}
	if cfg.Embedder.Titan != nil {
		if cfg.Embedder.Titan.Model == "" {
			cfg.Embedder.Titan.Model = "amazon.titan-embed-text-v2:0"
		}
		if cfg.Embedder.Titan.APIKeyEnv == "" {
			cfg.Embedder.Titan.APIKeyEnv = "MODEL_GATEWAY_API_KEY"
		}
		if cfg.Embedder.Titan.TimeoutSecs == 0 {
			cfg.Embedder.Titan.TimeoutSecs = 30
		}
	}
	if cfg.Embedder.OpenAI != nil {
		applyOpenAIDefaults(cfg.Embedder.OpenAI, "text-embedding-3-small")
	}
	if cfg.Generator.Type == "" {
		cfg.Generator.Type = "claude"
	}
	if cfg.Generator.Claude != nil {
		if cfg.Generator.Claude.Model == "" {
			cfg.Generator.Claude.Model = "us.anthropic.claude-3-5-haiku-20241022-v1:0"
		}
		if cfg.Generator.Claude.APIKeyEnv == "" {
			cfg.Generator.Claude.APIKeyEnv = "MODEL_GATEWAY_API_KEY"
		}
		if cfg.Generator.Claude.AnthropicVersion == "" {
			cfg.Generator.Claude.AnthropicVersion = "bedrock-2023-05-31"
		}
		if cfg.Generator.Claude.MaxTokens == 0 {
			cfg.Generator.Claude.MaxTokens = 1000
		}
		if cfg.Generator.Claude.TimeoutSecs == 0 {
			cfg.Generator.Claude.TimeoutSecs = 60
		}
	}
	if cfg.Generator.OpenAI != nil {
		applyOpenAIDefaults(cfg.Generator.OpenAI, "gpt-4o-mini")
	}
	if cfg.VectorStore.Type == "" {
		cfg.VectorStore.Type = "pinecone"
	}
	if cfg.VectorStore.Pinecone != nil {
		if cfg.VectorStore.Pinecone.APIKeyEnv == "" {
			cfg.VectorStore.Pinecone.APIKeyEnv = "PINECONE_API_KEY"
		}
		if cfg.VectorStore.Pinecone.TimeoutSecs == 0 {
			cfg.VectorStore.Pinecone.TimeoutSecs = 15
		}
	}
	if cfg.VectorStore.Chromem != nil && cfg.VectorStore.Chromem.Path == "" {
		cfg.VectorStore.Chromem.Path = "./chromemdb"
	}
	if cfg.Chunker.MaxChars == 0 {
		cfg.Chunker.MaxChars = 4000
	}
	if cfg.Prompt.ContextBudgetChars == 0 {
		cfg.Prompt.ContextBudgetChars = 24000
	}
	if cfg.Ingest.Workers == 0 {
		cfg.Ingest.Workers = 1
	}
	if cfg.Retriever.TopK == 0 {
		cfg.Retriever.TopK = 5
	}
}

func applyOpenAIDefaults(cfg *OpenAIConfig, model string) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Model == "" {
		cfg.Model = model
	}
}
