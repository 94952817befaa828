package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rohitmeena8923/Test-playlist/config"
)

var rootCmd = &cobra.Command{
	Use:   "playlist-bot",
	Short: "Telegram bot for bulk YouTube playlist downloads",
	Run:   Run,
}

func init() {
	config.RegisterFlags(rootCmd)
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
	}
}
