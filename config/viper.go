package config

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/duke-git/lancet/v2/slice"
	"github.com/spf13/viper"
)

type Config struct {
	// AllowedUsers is the chat-ID allow list. Empty means the bot is
	// open to everyone.
	AllowedUsers []int64 `toml:"allowed_users" mapstructure:"allowed_users" json:"allowed_users"`

	Telegram telegramConfig `toml:"telegram" mapstructure:"telegram"`
	Download downloadConfig `toml:"download" mapstructure:"download"`
	Progress progressConfig `toml:"progress" mapstructure:"progress"`
}

type telegramConfig struct {
	Token    string `toml:"token" mapstructure:"token" json:"token"`
	AppID    int    `toml:"app_id" mapstructure:"app_id" json:"app_id"`
	AppHash  string `toml:"app_hash" mapstructure:"app_hash" json:"app_hash"`
	RpcRetry int    `toml:"rpc_retry" mapstructure:"rpc_retry" json:"rpc_retry"`
	Session  string `toml:"session" mapstructure:"session" json:"session"`
}

type downloadConfig struct {
	Path           string        `toml:"path" mapstructure:"path" json:"path"`
	MaxRetries     int           `toml:"max_retries" mapstructure:"max_retries" json:"max_retries"`
	RetryBaseDelay time.Duration `toml:"retry_base_delay" mapstructure:"retry_base_delay" json:"retry_base_delay"`
	RetryMaxDelay  time.Duration `toml:"retry_max_delay" mapstructure:"retry_max_delay" json:"retry_max_delay"`
}

type progressConfig struct {
	Interval time.Duration `toml:"interval" mapstructure:"interval" json:"interval"`
}

var cfg = &Config{}

func C() Config {
	return *cfg
}

// IsUserAllowed reports whether chatID may use the bot.
func IsUserAllowed(chatID int64) bool {
	if len(cfg.AllowedUsers) == 0 {
		return true
	}
	return slice.Contain(cfg.AllowedUsers, chatID)
}

func Init(ctx context.Context, configFile ...string) error {
	viper.SetConfigType("toml")
	viper.SetEnvPrefix("PLBOT")
	viper.AutomaticEnv()
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	// The config file can also be provided via an http(s) URL.
	if len(configFile) > 0 && configFile[0] != "" {
		file := configFile[0]
		if strings.HasPrefix(file, "http://") || strings.HasPrefix(file, "https://") {
			resp, err := http.Get(file)
			if err != nil {
				return fmt.Errorf("failed to fetch remote config file: %w", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("failed to fetch remote config file: status code %d", resp.StatusCode)
			}
			if err := viper.ReadConfig(resp.Body); err != nil {
				return fmt.Errorf("failed to read remote config file: %w", err)
			}
		} else {
			viper.SetConfigFile(file)
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/playlist-bot/")
	}

	defaultConfigs := map[string]any{
		// Telegram
		"telegram.app_id":    1025907,
		"telegram.app_hash":  "452b0359b988148995f22ff0f4229750",
		"telegram.rpc_retry": 5,
		"telegram.session":   "data/session.db",

		// Download
		"download.path":             "downloads",
		"download.max_retries":      3,
		"download.retry_base_delay": "2s",
		"download.retry_max_delay":  "30s",

		// Progress
		"progress.interval": "5s",
	}

	for key, value := range defaultConfigs {
		viper.SetDefault(key, value)
	}

	if err := viper.SafeWriteConfigAs("config.toml"); err != nil {
		if _, ok := err.(viper.ConfigFileAlreadyExistsError); !ok {
			return fmt.Errorf("error saving default config: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("error unmarshalling config file: %w", err)
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is required")
	}
	if cfg.Download.MaxRetries < 0 {
		cfg.Download.MaxRetries = 0
	}
	if cfg.Download.RetryBaseDelay <= 0 {
		cfg.Download.RetryBaseDelay = 2 * time.Second
	}
	if cfg.Download.RetryMaxDelay <= 0 {
		cfg.Download.RetryMaxDelay = 30 * time.Second
	}
	if cfg.Progress.Interval <= 0 {
		cfg.Progress.Interval = 5 * time.Second
	}
	return nil
}
