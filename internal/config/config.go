package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port        string   `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// LLMConfig selects a model provider. The same shape configures the query embedder.
type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	MaxTokens      int    `toml:"max_tokens"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// PartitionConfig names one catalog partition. Index is a Memgraph vector index or a Postgres table.
type PartitionConfig struct {
	Name  string `toml:"name"`
	Index string `toml:"index"`
}

type RetrievalConfig struct {
	Backend        string            `toml:"backend"`
	TopK           int               `toml:"top_k"`
	Index          string            `toml:"index"`
	TimeoutSeconds int               `toml:"timeout_seconds"`
	Dimension      int               `toml:"dimension"`
	Capacity       int               `toml:"capacity"`
	Partitions     []PartitionConfig `toml:"partitions"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type PostgresConfig struct {
	URL      string `toml:"url"`
	MaxConns int32  `toml:"max_conns"`
}

type PromptConfig struct {
	Query string `toml:"query"`
}

type LimitsConfig struct {
	MaxQueryBytes int `toml:"max_query_bytes"`
}

type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

type Config struct {
	Server    ServerConfig    `toml:"server"`
	LLM       LLMConfig       `toml:"llm"`
	Embedding LLMConfig       `toml:"embedding"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Memgraph  MemgraphConfig  `toml:"memgraph"`
	Postgres  PostgresConfig  `toml:"postgres"`
	Prompts   PromptConfig    `toml:"prompts"`
	Limits    LimitsConfig    `toml:"limits"`
	Log       LogConfig       `toml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8000",
			CORSOrigins: []string{"http://localhost:5173", "http://localhost:5174"},
		},
		LLM: LLMConfig{
			Provider:       "groq",
			Model:          "llama3-70b-8192",
			TimeoutSeconds: 60,
		},
		Embedding: LLMConfig{
			Provider: "openai",
			Model:    "text-embedding-3-small",
		},
		Retrieval: RetrievalConfig{
			Backend:        "memgraph",
			TopK:           5,
			Index:          "menu_item_embedding",
			TimeoutSeconds: 30,
			Dimension:      1536,
			Capacity:       10000,
		},
		Memgraph: MemgraphConfig{
			URI: "bolt://localhost:7687",
		},
		Postgres: PostgresConfig{
			MaxConns: 10,
		},
		Limits: LimitsConfig{
			MaxQueryBytes: 2048,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a TOML file on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields Default. Env overrides are applied either way.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides file values with non-empty environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := strings.TrimSpace(getenv(k)); v != "" {
				*dst = v
				return
			}
		}
	}

	set(&c.Server.Port, "PORT")
	set(&c.LLM.Provider, "LLM_PROVIDER")
	set(&c.LLM.Model, "LLM_MODEL")
	set(&c.LLM.APIKey, "LLM_API_KEY", "GROQ_API_KEY")
	set(&c.LLM.BaseURL, "LLM_BASE_URL")
	set(&c.Embedding.Provider, "EMBEDDING_PROVIDER")
	set(&c.Embedding.Model, "EMBEDDING_MODEL", "LLM_EMBEDDING_MODEL")
	set(&c.Embedding.APIKey, "EMBEDDING_API_KEY", "OPENAI_API_KEY")
	set(&c.Embedding.BaseURL, "EMBEDDING_BASE_URL")
	set(&c.Retrieval.Backend, "RETRIEVAL_BACKEND")
	set(&c.Memgraph.URI, "MEMGRAPH_URI")
	set(&c.Memgraph.User, "MEMGRAPH_USER")
	set(&c.Memgraph.Password, "MEMGRAPH_PASSWORD")
	set(&c.Postgres.URL, "DATABASE_URL")
	set(&c.Log.Level, "LOG_LEVEL")

	if v := getenv("RETRIEVAL_TOP_K"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Retrieval.TopK = n
		}
	}
	if v := getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.CORSOrigins = origins
	}
}

func (c *Config) Validate() error {
	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("retrieval.top_k must be positive, got %d", c.Retrieval.TopK)
	}
	if c.Limits.MaxQueryBytes < 0 {
		return fmt.Errorf("limits.max_query_bytes must not be negative, got %d", c.Limits.MaxQueryBytes)
	}
	if c.LLM.Provider == "" {
		return errors.New("llm.provider is required")
	}
	return nil
}

// IndexNames lists the index (or table) of every partition, or the single configured index.
func (r RetrievalConfig) IndexNames() []string {
	if len(r.Partitions) == 0 {
		return []string{r.Index}
	}
	names := make([]string, 0, len(r.Partitions))
	for _, p := range r.Partitions {
		names = append(names, p.Index)
	}
	return names
}

func (r RetrievalConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

func (l LLMConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}
