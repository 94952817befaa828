package handlers

import (
	"strings"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"
	"github.com/gotd/td/tg"

	"github.com/Rohitmeena8923/Test-playlist/client/bot/msgelem"
	"github.com/Rohitmeena8923/Test-playlist/config"
)

// Quality handles the quality-keyboard callback and hands the job to
// the coordinator. The callback is answered immediately so the button
// spinner clears regardless of the job outcome.
func (h *Handler) Quality(ctx *ext.Context, update *ext.Update) error {
	query := update.CallbackQuery
	if _, err := ctx.AnswerCallback(&tg.MessagesSetBotCallbackAnswerRequest{
		QueryID: query.QueryID,
	}); err != nil {
		log.FromContext(ctx).Debug("answer callback failed", "error", err)
	}

	chatID := query.UserID
	if !config.IsUserAllowed(chatID) {
		return dispatcher.EndGroups
	}

	quality := strings.TrimPrefix(string(query.Data), msgelem.QualityCallbackPrefix)
	h.coordinator.OnQuality(ctx, chatID, query.MsgID, quality)
	return dispatcher.EndGroups
}
