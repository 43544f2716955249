package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm" validate:"required"`
	Speech  SpeechConfig  `mapstructure:"speech" validate:"required"`
	Archive ArchiveConfig `mapstructure:"archive"`
	Card    CardConfig    `mapstructure:"card" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// LLMConfig contains the settings of the word analysis model.
type LLMConfig struct {
	GeminiAPIKey string        `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string        `mapstructure:"model_name" validate:"required"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// SpeechConfig selects and tunes the text-to-speech backend.
type SpeechConfig struct {
	Provider string        `mapstructure:"provider" validate:"required,oneof=gtranslate openai"`
	Language string        `mapstructure:"language" validate:"required"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gt=0"`

	// Google Translate endpoint; overridable for tests and proxies.
	GTranslateURL string `mapstructure:"gtranslate_url" validate:"required,url"`

	OpenAIKey   string  `mapstructure:"openai_api_key" validate:"required_if=Provider openai"`
	OpenAIModel string  `mapstructure:"openai_model"`
	OpenAIVoice string  `mapstructure:"openai_voice"`
	OpenAISpeed float64 `mapstructure:"openai_speed" validate:"gte=0.25,lte=4"`

	// Consecutive failures before the breaker opens, and how long it stays open.
	BreakerMaxFailures uint32        `mapstructure:"breaker_max_failures" validate:"gt=0"`
	BreakerOpenTimeout time.Duration `mapstructure:"breaker_open_timeout" validate:"gt=0"`
}

// ArchiveConfig contains the Notion archive settings. Token and database id
// are deliberately optional: a missing value disables the write at call time.
type ArchiveConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	NotionToken   string        `mapstructure:"notion_token"`
	NotionDBID    string        `mapstructure:"notion_db_id"`
	NotionURL     string        `mapstructure:"notion_url" validate:"required,url"`
	NotionVersion string        `mapstructure:"notion_version" validate:"required"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gt=0"`
	WorkerCount   int           `mapstructure:"worker_count" validate:"gt=0"`
	QueueSize     int           `mapstructure:"queue_size" validate:"gt=0"`
}

// CardConfig contains settings that shape derived card fields.
type CardConfig struct {
	ObsidianVault  string `mapstructure:"obsidian_vault" validate:"required"`
	ObsidianFolder string `mapstructure:"obsidian_folder" validate:"required"`
}
