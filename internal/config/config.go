package config

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort       int    `mapstructure:"APP_PORT"`
	AppURL        string `mapstructure:"APP_URL"`
	AppName       string `mapstructure:"APP_NAME"`
	DatabasePath  string `mapstructure:"DATABASE_PATH"`
	StoragePath   string `mapstructure:"STORAGE_PATH"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	LogFile       string `mapstructure:"LOG_FILE"`
	DefaultUserID string `mapstructure:"DEFAULT_USER_ID"`

	OpenRouterAPIKey       string        `mapstructure:"OPENROUTER_API_KEY"`
	OpenRouterAPIURL       string        `mapstructure:"OPENROUTER_API_URL"`
	OpenRouterDefaultModel string        `mapstructure:"OPENROUTER_DEFAULT_MODEL"`
	OpenRouterTimeout      time.Duration `mapstructure:"OPENROUTER_TIMEOUT"`
	OpenRouterMaxRetries   int           `mapstructure:"OPENROUTER_MAX_RETRIES"`
	OpenRouterRateLimit    float64       `mapstructure:"OPENROUTER_RATE_LIMIT"`
	OpenRouterModelsFile   string        `mapstructure:"OPENROUTER_MODELS_FILE"`

	RedisAddr string `mapstructure:"REDIS_ADDR"`

	AttachmentURLSecret string        `mapstructure:"ATTACHMENT_URL_SECRET"`
	AttachmentURLTTL    time.Duration `mapstructure:"ATTACHMENT_URL_TTL"`
	IdempotencyTTL      time.Duration `mapstructure:"IDEMPOTENCY_TTL"`
	MaxAttachmentBytes  int64         `mapstructure:"MAX_ATTACHMENT_BYTES"`
	MaxRequestBytes     int64         `mapstructure:"MAX_REQUEST_BYTES"`

	// ConfigFile is the .env file the values were read from, if any.
	ConfigFile string `mapstructure:"-"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("APP_PORT", 8000)
	v.SetDefault("APP_URL", "http://localhost:8000")
	v.SetDefault("APP_NAME", "routerchat")
	v.SetDefault("DATABASE_PATH", "/data/routerchat.db")
	v.SetDefault("STORAGE_PATH", "/data/attachments")
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("DEFAULT_USER_ID", "default-user")

	v.SetDefault("OPENROUTER_API_KEY", "")
	v.SetDefault("OPENROUTER_API_URL", "https://openrouter.ai/api/v1")
	v.SetDefault("OPENROUTER_DEFAULT_MODEL", "openai/gpt-3.5-turbo")
	// Plain integers are read as seconds, matching the upstream config's "timeout => 120".
	v.SetDefault("OPENROUTER_TIMEOUT", "120")
	v.SetDefault("OPENROUTER_MAX_RETRIES", 3)
	v.SetDefault("OPENROUTER_RATE_LIMIT", 0)
	v.SetDefault("OPENROUTER_MODELS_FILE", "")

	v.SetDefault("REDIS_ADDR", "")

	v.SetDefault("ATTACHMENT_URL_SECRET", "")
	v.SetDefault("ATTACHMENT_URL_TTL", "15m")
	v.SetDefault("IDEMPOTENCY_TTL", "10m")
	v.SetDefault("MAX_ATTACHMENT_BYTES", 10<<20)
	v.SetDefault("MAX_REQUEST_BYTES", 64<<20)

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(secondsOrDurationHook())); err != nil {
		return nil, err
	}

	cfg.ConfigFile = v.ConfigFileUsed()
	if cfg.OpenRouterMaxRetries < 1 {
		cfg.OpenRouterMaxRetries = 1
	}

	return &cfg, nil
}

// secondsOrDurationHook lets duration settings be written either as Go
// durations ("90s", "15m") or as bare seconds ("120").
func secondsOrDurationHook() mapstructure.DecodeHookFunc {
	durationType := reflect.TypeOf(time.Duration(0))
	return mapstructure.ComposeDecodeHookFunc(
		func(_ reflect.Type, to reflect.Type, data any) (any, error) {
			if to != durationType {
				return data, nil
			}
			switch v := data.(type) {
			case string:
				s := strings.TrimSpace(v)
				if n, err := strconv.Atoi(s); err == nil {
					return time.Duration(n) * time.Second, nil
				}
				return time.ParseDuration(s)
			case int:
				return time.Duration(v) * time.Second, nil
			case int64:
				return time.Duration(v) * time.Second, nil
			case float64:
				return time.Duration(v * float64(time.Second)), nil
			}
			return data, nil
		},
		mapstructure.StringToSliceHookFunc(","),
	)
}
