package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig
	HTTPServer  HTTPServerConfig
	Logger      LoggerConfig

	Vikunja VikunjaConfig
	OpenAI  OpenAIConfig

	Task      TaskConfig
	UserCache UserCacheConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	RateLimitPerMin int
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// VikunjaConfig holds the task-manager backend connection settings.
type VikunjaConfig struct {
	URL      string // base API URL, e.g. https://vikunja.example.com/api/v1
	APIToken string
}

// OpenAIConfig holds the LLM provider settings.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// TaskConfig holds the resolution-pipeline behavior knobs.
type TaskConfig struct {
	DefaultDueDate       string // none | tomorrow | end_of_week | end_of_month
	DefaultProjectID     int64
	VoiceCorrection      bool
	AutoVoiceLabel       bool
	EnableUserAssignment bool
	DetailedResponse     bool
}

// UserCacheConfig holds the assignable-user cache settings.
type UserCacheConfig struct {
	FilePath     string
	RefreshHours int
}

// DefaultDueDateOptions are the accepted values for task.default_due_date.
var DefaultDueDateOptions = []string{"none", "tomorrow", "end_of_week", "end_of_month"}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.RateLimitPerMin = viper.GetInt("http_server.rate_limit_per_min")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Vikunja backend
	cfg.Vikunja.URL = viper.GetString("vikunja.url")
	cfg.Vikunja.APIToken = viper.GetString("vikunja.api_token")
	if url := viper.GetString("vikunja_url"); url != "" {
		cfg.Vikunja.URL = url
	}
	if token := viper.GetString("vikunja_api_token"); token != "" {
		cfg.Vikunja.APIToken = token
	}

	// OpenAI
	cfg.OpenAI.APIKey = viper.GetString("openai.api_key")
	cfg.OpenAI.Model = viper.GetString("openai.model")
	cfg.OpenAI.BaseURL = viper.GetString("openai.base_url")
	if key := viper.GetString("openai_api_key"); key != "" {
		cfg.OpenAI.APIKey = key
	}

	// Task resolution behavior
	cfg.Task.DefaultDueDate = viper.GetString("task.default_due_date")
	cfg.Task.DefaultProjectID = viper.GetInt64("task.default_project_id")
	cfg.Task.VoiceCorrection = viper.GetBool("task.voice_correction")
	cfg.Task.AutoVoiceLabel = viper.GetBool("task.auto_voice_label")
	cfg.Task.EnableUserAssignment = viper.GetBool("task.enable_user_assignment")
	cfg.Task.DetailedResponse = viper.GetBool("task.detailed_response")

	// User cache
	cfg.UserCache.FilePath = viper.GetString("user_cache.file_path")
	cfg.UserCache.RefreshHours = viper.GetInt("user_cache.refresh_hours")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if !isValidDueDateOption(c.Task.DefaultDueDate) {
		return fmt.Errorf("invalid task.default_due_date %q (want one of %s)",
			c.Task.DefaultDueDate, strings.Join(DefaultDueDateOptions, ", "))
	}
	if c.UserCache.RefreshHours <= 0 {
		return fmt.Errorf("user_cache.refresh_hours must be positive, got %d", c.UserCache.RefreshHours)
	}
	return nil
}

func isValidDueDateOption(opt string) bool {
	for _, o := range DefaultDueDateOptions {
		if opt == o {
			return true
		}
	}
	return false
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("http_server.rate_limit_per_min", 60)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.mode", "development")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("openai.model", "gpt-5-mini")
	viper.SetDefault("openai.base_url", "https://api.openai.com/v1")

	viper.SetDefault("task.default_due_date", "none")
	viper.SetDefault("task.default_project_id", 1)
	viper.SetDefault("task.voice_correction", true)
	viper.SetDefault("task.auto_voice_label", true)
	viper.SetDefault("task.enable_user_assignment", false)
	viper.SetDefault("task.detailed_response", true)

	viper.SetDefault("user_cache.file_path", "vikunja_users.json")
	viper.SetDefault("user_cache.refresh_hours", 24)
}
