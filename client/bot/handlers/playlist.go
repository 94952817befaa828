package handlers

import (
	"strings"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"

	"github.com/Rohitmeena8923/Test-playlist/client/bot/msgelem"
	"github.com/Rohitmeena8923/Test-playlist/config"
	"github.com/Rohitmeena8923/Test-playlist/core"
)

const (
	msgInvalidURL    = core.MsgInvalidURL
	msgSelectQuality = "📺 Select download quality:"
)

// PlaylistURL handles free-text messages. A recognized playlist URL is
// recorded for the conversation and answered with the quality
// keyboard.
func (h *Handler) PlaylistURL(ctx *ext.Context, update *ext.Update) error {
	chatID := update.GetUserChat().GetID()
	if !config.IsUserAllowed(chatID) {
		ctx.Reply(update, ext.ReplyTextString(msgNotAuthorized), nil)
		return dispatcher.EndGroups
	}

	text := strings.TrimSpace(update.EffectiveMessage.Text)
	if strings.HasPrefix(text, "/") {
		// Unknown commands fall through to other handlers.
		return nil
	}

	if !h.coordinator.OnPlaylistURL(ctx, chatID, text) {
		ctx.Reply(update, ext.ReplyTextString(msgInvalidURL), nil)
		return dispatcher.EndGroups
	}

	log.FromContext(ctx).Info("accepted playlist url", "chat", chatID)
	ctx.Reply(update, ext.ReplyTextString(msgSelectQuality), &ext.ReplyOpts{
		Markup: msgelem.BuildQualityKeyboard(),
	})
	return dispatcher.EndGroups
}
