package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func RegisterFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.StringP("config", "c", "", "config file path")

	// Telegram configuration
	flags.String("telegram-token", "", "telegram bot token")
	flags.Int("telegram-app-id", 0, "telegram app id")
	flags.String("telegram-app-hash", "", "telegram app hash")
	flags.Int("telegram-rpc-retry", 0, "telegram rpc retry times")
	flags.String("telegram-session", "", "session database path")

	// Download configuration
	flags.String("download-path", "", "download destination root")
	flags.Int("download-max-retries", 0, "max transient retries per playlist download")
	flags.Duration("download-retry-base-delay", 0, "retry base delay (e.g. 2s)")
	flags.Duration("download-retry-max-delay", 0, "retry max delay (e.g. 30s)")

	// Progress configuration
	flags.Duration("progress-interval", 0, "minimum interval between progress edits")

	bindFlags(cmd)
}

func bindFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	viper.BindPFlag("telegram.token", flags.Lookup("telegram-token"))
	viper.BindPFlag("telegram.app_id", flags.Lookup("telegram-app-id"))
	viper.BindPFlag("telegram.app_hash", flags.Lookup("telegram-app-hash"))
	viper.BindPFlag("telegram.rpc_retry", flags.Lookup("telegram-rpc-retry"))
	viper.BindPFlag("telegram.session", flags.Lookup("telegram-session"))

	viper.BindPFlag("download.path", flags.Lookup("download-path"))
	viper.BindPFlag("download.max_retries", flags.Lookup("download-max-retries"))
	viper.BindPFlag("download.retry_base_delay", flags.Lookup("download-retry-base-delay"))
	viper.BindPFlag("download.retry_max_delay", flags.Lookup("download-retry-max-delay"))

	viper.BindPFlag("progress.interval", flags.Lookup("progress-interval"))
}

func GetConfigFile(cmd *cobra.Command) string {
	configFile, _ := cmd.Flags().GetString("config")
	return configFile
}
