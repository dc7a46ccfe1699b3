package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Chunking modes.
const (
	ChunkModeToken = "token"
	ChunkModeWord  = "word"
)

// Summarization providers.
const (
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// Output formats for the local summary file.
const (
	FormatText     = "txt"
	FormatMarkdown = "md"
	FormatHTML     = "html"
	FormatDocx     = "docx"
)

const (
	defaultDetailedRole = `You are a professional assistant tasked with summarizing Zoom meeting transcripts.
The summaries are intended for an executive, so they should be concise, clear, and cover key points discussed,
including decisions, action items, and key takeaways. Provide context and names of folks who are the subject
of discussion. If people have varying points of view please note that. If there are timelines discussed, please
include dates and deliverables. Answer with bullet points.`

	defaultExecutiveRole = `You are a professional assistant tasked with summarizing Zoom meeting transcripts.
The summaries are intended for my boss, so they should be concise, clear, and cover only essential points discussed,
including decisions, action items, and key takeaways. Focus on providing a clear understanding of the meeting's
content and outcomes, as if explaining to a senior executive.`
)

type Config struct {
	Roles       RolesConfig       `yaml:"roles"`
	Models      ModelsConfig      `yaml:"models"`
	Chunking    ChunkingConfig    `yaml:"chunking"`
	Paths       PathsConfig       `yaml:"paths"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Watcher     WatcherConfig     `yaml:"watcher"`
}

type RolesConfig struct {
	Detailed  string `yaml:"detailed"`
	Executive string `yaml:"executive"`
}

type ModelsConfig struct {
	Provider  string `yaml:"provider"`
	Map       string `yaml:"map"`
	Reduce    string `yaml:"reduce"`
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
	// SharedSessionLimit caps concurrent calls through the provider session. 0 means unlimited.
	SharedSessionLimit int `yaml:"shared_session_limit"`
}

type ChunkingConfig struct {
	Mode           string `yaml:"mode"`
	MaxTokens      int    `yaml:"max_tokens"`
	TokenizerModel string `yaml:"tokenizer_model"`
	WordWindow     int    `yaml:"word_window"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

type OutputConfig struct {
	Format string       `yaml:"format"`
	Remote RemoteConfig `yaml:"remote"`
}

type RemoteConfig struct {
	Enabled        bool   `yaml:"enabled"`
	CredentialsEnv string `yaml:"credentials_env"`
	TokenPath      string `yaml:"token_path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent  int           `yaml:"max_concurrent"`
	MapConcurrency int           `yaml:"map_concurrency"`
	CallTimeout    time.Duration `yaml:"call_timeout"`
}

type WatcherConfig struct {
	Extensions  []string      `yaml:"extensions"`
	SettleDelay time.Duration `yaml:"settle_delay"`
}

// Validate checks required fields and fills defaults for the optional ones.
func (c *Config) Validate() error {
	if c.Models.Map == "" {
		return &ConfigurationError{Field: "models.map", Reason: "model id is required"}
	}
	if c.Models.Reduce == "" {
		return &ConfigurationError{Field: "models.reduce", Reason: "model id is required"}
	}
	if c.Paths.Input == "" {
		return &ConfigurationError{Field: "paths.input", Reason: "is required"}
	}
	if c.Paths.Output == "" {
		return &ConfigurationError{Field: "paths.output", Reason: "is required"}
	}

	if c.Models.Provider == "" {
		c.Models.Provider = ProviderOpenAI
	}
	switch c.Models.Provider {
	case ProviderOpenAI, ProviderGemini, ProviderAnthropic:
	default:
		return &ConfigurationError{Field: "models.provider", Reason: "unsupported provider " + c.Models.Provider}
	}
	if c.Models.APIKeyEnv == "" {
		c.Models.APIKeyEnv = defaultKeyEnv(c.Models.Provider)
	}

	if c.Roles.Detailed == "" {
		c.Roles.Detailed = defaultDetailedRole
	}
	if c.Roles.Executive == "" {
		c.Roles.Executive = defaultExecutiveRole
	}

	c.Chunking.Mode = strings.ToLower(c.Chunking.Mode)
	if c.Chunking.Mode == "" {
		c.Chunking.Mode = ChunkModeToken
	}
	if c.Chunking.Mode != ChunkModeToken && c.Chunking.Mode != ChunkModeWord {
		return &ConfigurationError{Field: "chunking.mode", Reason: "must be token or word"}
	}
	if c.Chunking.MaxTokens == 0 {
		c.Chunking.MaxTokens = 2048
	}
	if c.Chunking.TokenizerModel == "" {
		c.Chunking.TokenizerModel = c.Models.Map
	}
	if c.Chunking.WordWindow == 0 {
		c.Chunking.WordWindow = 1500
	}

	c.Output.Format = strings.ToLower(strings.TrimPrefix(c.Output.Format, "."))
	if c.Output.Format == "" {
		c.Output.Format = FormatText
	}
	switch c.Output.Format {
	case FormatText, FormatMarkdown, FormatHTML, FormatDocx:
	default:
		return &ConfigurationError{Field: "output.format", Reason: "unsupported format " + c.Output.Format}
	}
	if c.Output.Remote.CredentialsEnv == "" {
		c.Output.Remote.CredentialsEnv = "GOOGLE_DOCS_SUMMARIZER_JSON"
	}
	if c.Output.Remote.TokenPath == "" {
		c.Output.Remote.TokenPath = "token.json"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Performance.MapConcurrency == 0 {
		c.Performance.MapConcurrency = 1
	}
	if c.Performance.CallTimeout == 0 {
		c.Performance.CallTimeout = 5 * time.Minute
	}

	if len(c.Watcher.Extensions) == 0 {
		c.Watcher.Extensions = []string{".txt", ".vtt"}
	}
	if c.Watcher.SettleDelay == 0 {
		c.Watcher.SettleDelay = 500 * time.Millisecond
	}

	c.Paths.Input = expandHome(c.Paths.Input)
	c.Paths.Output = expandHome(c.Paths.Output)
	c.Output.Remote.TokenPath = expandHome(c.Output.Remote.TokenPath)

	return nil
}

// APIKey resolves the provider credential from the environment.
func (c *Config) APIKey() (string, error) {
	key := strings.TrimSpace(os.Getenv(c.Models.APIKeyEnv))
	if key == "" {
		return "", &ConfigurationError{
			Field:  "models.api_key_env",
			Reason: "environment variable " + c.Models.APIKeyEnv + " is not set",
		}
	}
	return key, nil
}

// RemoteCredentials returns the OAuth client JSON for the remote document store.
func (c *Config) RemoteCredentials() ([]byte, error) {
	raw := strings.TrimSpace(os.Getenv(c.Output.Remote.CredentialsEnv))
	if raw == "" {
		return nil, &ConfigurationError{
			Field:  "output.remote.credentials_env",
			Reason: "environment variable " + c.Output.Remote.CredentialsEnv + " is not set",
		}
	}
	return []byte(raw), nil
}

func defaultKeyEnv(provider string) string {
	switch provider {
	case ProviderGemini:
		return "GEMINI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
