package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Rohitmeena8923/Test-playlist/client/bot"
	"github.com/Rohitmeena8923/Test-playlist/common/utils/fsutil"
	"github.com/Rohitmeena8923/Test-playlist/config"
	"github.com/Rohitmeena8923/Test-playlist/core/downloader"
	ytdlpengine "github.com/Rohitmeena8923/Test-playlist/core/engine/ytdlp"
	"github.com/Rohitmeena8923/Test-playlist/session"
)

func Run(cmd *cobra.Command, _ []string) {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	logger := log.NewWithOptions(os.Stdout, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	ctx = log.WithContext(ctx, logger)

	exitChan, err := initAll(ctx, cmd)
	if err != nil {
		logger.Fatal("Init failed", "error", err)
	}
	go func() {
		<-exitChan
		cancel()
	}()

	<-ctx.Done()
	logger.Info("Exiting...")
}

func initAll(ctx context.Context, cmd *cobra.Command) (<-chan struct{}, error) {
	configFile := config.GetConfigFile(cmd)
	if err := config.Init(ctx, configFile); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := log.FromContext(ctx)
	logger.Info("Initializing...")

	dlCfg := config.C().Download
	if err := fsutil.EnsureDir(dlCfg.Path); err != nil {
		return nil, fmt.Errorf("prepare download root: %w", err)
	}

	runner := downloader.NewRunner(ytdlpengine.New(), dlCfg.Path, downloader.RetryPolicy{
		MaxRetries: dlCfg.MaxRetries,
		BaseDelay:  dlCfg.RetryBaseDelay,
		MaxDelay:   dlCfg.RetryMaxDelay,
	})

	return bot.Init(ctx, session.NewStore(), runner)
}
