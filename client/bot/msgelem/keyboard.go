// Package msgelem builds the reusable message elements the bot sends.
package msgelem

import (
	"github.com/gotd/td/tg"
)

// QualityCallbackPrefix tags callback data produced by the quality
// keyboard.
const QualityCallbackPrefix = "quality:"

type qualityOption struct {
	Label string
	Token string
}

// qualityRows is the fixed keyboard layout, low resolutions first.
var qualityRows = [][]qualityOption{
	{{"144p", "144"}, {"240p", "240"}, {"360p", "360"}},
	{{"480p", "480"}, {"720p", "720"}, {"1080p", "1080"}},
	{{"Best Quality", "best"}, {"Audio Only", "audio"}},
}

// BuildQualityKeyboard returns the inline quality selector shown after
// a playlist URL is accepted.
func BuildQualityKeyboard() *tg.ReplyInlineMarkup {
	rows := make([]tg.KeyboardButtonRow, 0, len(qualityRows))
	for _, row := range qualityRows {
		buttons := make([]tg.KeyboardButtonClass, 0, len(row))
		for _, opt := range row {
			buttons = append(buttons, &tg.KeyboardButtonCallback{
				Text: opt.Label,
				Data: []byte(QualityCallbackPrefix + opt.Token),
			})
		}
		rows = append(rows, tg.KeyboardButtonRow{Buttons: buttons})
	}
	return &tg.ReplyInlineMarkup{Rows: rows}
}
