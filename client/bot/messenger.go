package bot

import (
	"context"

	"github.com/celestix/gotgproto"
	"github.com/gotd/td/tg"
)

// extMessenger sends through a client-lifetime ext context, so the
// coordinator's job goroutines can keep messaging after the update
// that started them is gone.
type extMessenger struct {
	client *gotgproto.Client
}

func newExtMessenger(client *gotgproto.Client) *extMessenger {
	return &extMessenger{client: client}
}

func (m *extMessenger) SendText(ctx context.Context, chatID int64, text string) (int, error) {
	msg, err := m.client.CreateContext().SendMessage(chatID, &tg.MessagesSendMessageRequest{
		Message: text,
	})
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

func (m *extMessenger) EditText(ctx context.Context, chatID int64, msgID int, text string) error {
	_, err := m.client.CreateContext().EditMessage(chatID, &tg.MessagesEditMessageRequest{
		ID:      msgID,
		Message: text,
	})
	return err
}
