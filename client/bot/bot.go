// Package bot bootstraps the Telegram client and wires the dispatcher
// to the download coordinator.
package bot

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/celestix/gotgproto"
	"github.com/celestix/gotgproto/dispatcher/handlers"
	"github.com/celestix/gotgproto/dispatcher/handlers/filters"
	"github.com/celestix/gotgproto/sessionMaker"
	"github.com/charmbracelet/log"
	"github.com/glebarez/sqlite"

	botHandlers "github.com/Rohitmeena8923/Test-playlist/client/bot/handlers"
	"github.com/Rohitmeena8923/Test-playlist/client/bot/msgelem"
	"github.com/Rohitmeena8923/Test-playlist/client/middleware"
	"github.com/Rohitmeena8923/Test-playlist/common/utils/fsutil"
	"github.com/Rohitmeena8923/Test-playlist/config"
	"github.com/Rohitmeena8923/Test-playlist/core"
	"github.com/Rohitmeena8923/Test-playlist/core/downloader"
	"github.com/Rohitmeena8923/Test-playlist/session"
)

// Init logs the bot in, registers the handlers and starts the update
// loop. The returned channel closes when the client stops.
func Init(ctx context.Context, sessions *session.Store, runner *downloader.Runner) (<-chan struct{}, error) {
	logger := log.FromContext(ctx).WithPrefix("bot")
	tgCfg := config.C().Telegram

	if err := fsutil.EnsureDir(filepath.Dir(tgCfg.Session)); err != nil {
		return nil, fmt.Errorf("prepare session dir: %w", err)
	}

	client, err := gotgproto.NewClient(
		tgCfg.AppID,
		tgCfg.AppHash,
		gotgproto.ClientTypeBot(tgCfg.Token),
		&gotgproto.ClientOpts{
			Session:          sessionMaker.SqlSession(sqlite.Open(tgCfg.Session)),
			Middlewares:      middleware.NewDefaultMiddlewares(ctx, 5*time.Minute),
			Context:          ctx,
			DisableCopyright: true,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("create telegram client: %w", err)
	}

	coordinator := core.NewCoordinator(sessions, runner, newExtMessenger(client), config.C().Progress.Interval)
	h := botHandlers.New(coordinator)

	d := client.Dispatcher
	d.AddHandler(handlers.NewCommand("start", h.Start))
	d.AddHandler(handlers.NewCallbackQuery(filters.CallbackQuery.Prefix(msgelem.QualityCallbackPrefix), h.Quality))
	d.AddHandler(handlers.NewMessage(filters.Message.Text, h.PlaylistURL))

	logger.Info("bot logged in", "username", client.Self.Username)

	exit := make(chan struct{})
	go func() {
		defer close(exit)
		if err := client.Idle(); err != nil {
			logger.Error("client stopped", "error", err)
		}
	}()
	return exit, nil
}
