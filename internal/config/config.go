package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const appName = "code-assistant"

// Config はアプリケーションの設定を保持します。
type Config struct {
	Provider       string    `mapstructure:"provider"`
	Model          string    `mapstructure:"model"`
	GeminiAPIKey   string    `mapstructure:"gemini_api_key"`
	OpenAIAPIKey   string    `mapstructure:"openai_api_key"`
	OpenAIBaseURL  string    `mapstructure:"openai_base_url"`
	SystemPrompt   string    `mapstructure:"system_prompt"`
	TimeoutSeconds int       `mapstructure:"timeout_seconds"`
	HistoryDir     string    `mapstructure:"history_dir"`
	SettingsFile   string    `mapstructure:"settings_file"`
	Log            LogConfig `mapstructure:"log"`
}

// LogConfig controls where log output goes besides stderr.
type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// DefaultSystemPrompt is sent ahead of every question.
const DefaultSystemPrompt = "You are a helpful coding assistant. Answer concisely. " +
	"Put code in triple-backtick fenced blocks, use lines starting with '-' for lists " +
	"and 'Label: text' lines for key points."

type option struct {
	Key     string
	Default any
}

func options() []option {
	return []option{
		{Key: "provider", Default: "gemini"},
		{Key: "model", Default: ""},
		{Key: "gemini_api_key", Default: ""},
		{Key: "openai_api_key", Default: ""},
		{Key: "openai_base_url", Default: ""},
		{Key: "system_prompt", Default: DefaultSystemPrompt},
		{Key: "timeout_seconds", Default: 120},
		{Key: "history_dir", Default: "history"},
		{Key: "settings_file", Default: defaultSettingsFile()},
		{Key: "log.file", Default: ""},
		{Key: "log.max_size_mb", Default: 10},
		{Key: "log.max_backups", Default: 3},
		{Key: "log.max_age_days", Default: 28},
	}
}

// LoadConfig は設定を読み込みます。優先順位は defaults < file < .env/env です。
// v に SetConfigFile 済みならそのファイルを使い (存在しなければエラー)、
// なければ標準の場所を探します。
func LoadConfig(v *viper.Viper) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, appName))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appName))
		}
		v.AddConfigPath(".")
	}

	for _, o := range options() {
		v.SetDefault(o.Key, o.Default)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || (!errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist)) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix("code_assistant")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("gemini_api_key", "CODE_ASSISTANT_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("openai_api_key", "CODE_ASSISTANT_OPENAI_API_KEY", "OPENAI_API_KEY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 120
	}
	cfg.HistoryDir = expandHome(cfg.HistoryDir)
	cfg.SettingsFile = expandHome(cfg.SettingsFile)
	cfg.Log.File = expandHome(cfg.Log.File)
	return &cfg, nil
}

func defaultSettingsFile() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, appName, "settings.toml")
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}
