package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every structured environment variable,
// e.g. WORDCARD_SERVER_PORT.
const EnvPrefix = "WORDCARD"

// legacyEnv maps config keys to the bare variable names the function
// deployment has always used. The prefixed form wins when both are set.
var legacyEnv = map[string]string{
	"server.port":           "PORT",
	"server.log_level":      "LOG_LEVEL",
	"llm.gemini_api_key":    "GEMINI_API_KEY",
	"llm.model_name":        "GEMINI_MODEL",
	"speech.openai_api_key": "OPENAI_API_KEY",
	"archive.enabled":       "USE_NOTION",
	"archive.notion_token":  "NOTION_TOKEN",
	"archive.notion_db_id":  "NOTION_DB_ID",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.timeout", 60*time.Second)

	v.SetDefault("speech.provider", "gtranslate")
	v.SetDefault("speech.language", "en")
	v.SetDefault("speech.timeout", 30*time.Second)
	v.SetDefault("speech.gtranslate_url", "https://translate.google.com")
	v.SetDefault("speech.openai_api_key", "")
	v.SetDefault("speech.openai_model", "tts-1")
	v.SetDefault("speech.openai_voice", "alloy")
	v.SetDefault("speech.openai_speed", 1.0)
	v.SetDefault("speech.breaker_max_failures", 5)
	v.SetDefault("speech.breaker_open_timeout", 30*time.Second)

	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.notion_token", "")
	v.SetDefault("archive.notion_db_id", "")
	v.SetDefault("archive.notion_url", "https://api.notion.com/v1")
	v.SetDefault("archive.notion_version", "2022-02-22")
	v.SetDefault("archive.timeout", 15*time.Second)
	v.SetDefault("archive.worker_count", 2)
	v.SetDefault("archive.queue_size", 64)

	v.SetDefault("card.obsidian_vault", "anki-vault")
	v.SetDefault("card.obsidian_folder", "AnkiCard")
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile behaves like Load but reads the given YAML file instead of
// searching for config.yaml in the working directory.
func LoadFile(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, legacy := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", legacy, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configFile != "" {
			return nil, fmt.Errorf("failed to read configuration file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
