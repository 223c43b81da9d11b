package words

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// RedisNotifier fans dictionary reloads out over a pub/sub channel so
// every instance rebuilds after one of them mutates the dictionary.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

func NewRedisNotifier(client *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel}
}

func (n *RedisNotifier) Publish(ctx context.Context) error {
	return n.client.Publish(ctx, n.channel, "reload").Err()
}

// Listen subscribes to the reload channel and invokes onReload for every
// message until the context is cancelled. It runs in its own goroutine.
func (n *RedisNotifier) Listen(ctx context.Context, onReload func(context.Context) error) {
	sub := n.client.Subscribe(ctx, n.channel)
	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				slog.Info("dictionary reload signal received", "channel", msg.Channel)
				if err := onReload(ctx); err != nil {
					slog.Error("dictionary reload failed", "error", err)
				}
			}
		}
	}()
}
