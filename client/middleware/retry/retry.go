// Package retry re-invokes RPC calls that failed with an internal
// server error, up to a fixed attempt budget.
package retry

import (
	"context"
	"fmt"

	"github.com/gotd/td/bin"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
)

type retry struct {
	max int
}

func New(max int) telegram.Middleware {
	return retry{max: max}
}

func (r retry) Handle(next tg.Invoker) telegram.InvokeFunc {
	return func(ctx context.Context, input bin.Encoder, output bin.Decoder) error {
		var lastErr error
		for attempt := 0; attempt < r.max; attempt++ {
			lastErr = next.Invoke(ctx, input, output)
			if lastErr == nil {
				return nil
			}
			if !tgerr.IsCode(lastErr, 500) {
				return lastErr
			}
		}
		return fmt.Errorf("retry limit reached after %d attempts: %w", r.max, lastErr)
	}
}
