// Package recovery retries transport-level failures with exponential
// backoff so short network drops do not kill the client.
package recovery

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/gotd/td/bin"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
)

type recovery struct {
	ctx     context.Context
	backoff backoff.BackOff
}

func New(ctx context.Context, backoff backoff.BackOff) telegram.Middleware {
	return &recovery{
		ctx:     ctx,
		backoff: backoff,
	}
}

func (r *recovery) Handle(next tg.Invoker) telegram.InvokeFunc {
	return func(ctx context.Context, input bin.Encoder, output bin.Decoder) error {
		return backoff.Retry(func() error {
			if r.ctx.Err() != nil {
				return backoff.Permanent(r.ctx.Err())
			}
			if err := next.Invoke(ctx, input, output); err != nil {
				if shouldRecover(err) {
					return fmt.Errorf("recoverable invoke: %w", err)
				}
				return backoff.Permanent(err)
			}
			return nil
		}, r.backoff)
	}
}

// shouldRecover keeps RPC errors out of the backoff loop: those carry
// server intent and are handled by the retry and floodwait layers.
func shouldRecover(err error) bool {
	_, ok := tgerr.As(err)
	return !ok
}
