// Package handlers implements the bot's update handlers: the start
// command, playlist URL intake and the quality-selection callback.
package handlers

import (
	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"

	"github.com/Rohitmeena8923/Test-playlist/config"
	"github.com/Rohitmeena8923/Test-playlist/core"
)

const (
	msgNotAuthorized = "You are not authorized to use this bot."
	msgGreeting      = "🎬 YouTube Playlist Downloader Bot\n\n" +
		"Send me a YouTube playlist URL to download videos"
)

// Handler binds the update handlers to the coordinator.
type Handler struct {
	coordinator *core.Coordinator
}

func New(coordinator *core.Coordinator) *Handler {
	return &Handler{coordinator: coordinator}
}

func (h *Handler) Start(ctx *ext.Context, update *ext.Update) error {
	chatID := update.GetUserChat().GetID()
	if !config.IsUserAllowed(chatID) {
		log.FromContext(ctx).Warn("rejected unauthorized user", "chat", chatID)
		ctx.Reply(update, ext.ReplyTextString(msgNotAuthorized), nil)
		return dispatcher.EndGroups
	}
	ctx.Reply(update, ext.ReplyTextString(msgGreeting), nil)
	return dispatcher.EndGroups
}
