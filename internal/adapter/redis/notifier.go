// Package redis publishes workflow notifications to a Redis stream.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/budget-engine/internal/config"
	"github.com/heartmarshall/budget-engine/internal/domain"
)

// Open connects to Redis and verifies the connection with PING.
func Open(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close() //nolint:errcheck
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// Notifier appends one stream entry per notification. Consumers read the
// stream with XREAD/XREADGROUP and deliver to the recipient.
type Notifier struct {
	client goredis.UniversalClient
	stream string
	maxLen int64
	now    func() time.Time
}

// NewNotifier creates a Notifier writing to cfg.Stream.
func NewNotifier(client goredis.UniversalClient, cfg config.RedisConfig) *Notifier {
	return &Notifier{
		client: client,
		stream: cfg.Stream,
		maxLen: cfg.StreamMaxLen,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Notify publishes event for userID. The payload is stored as a JSON string.
func (n *Notifier) Notify(ctx context.Context, userID uuid.UUID, event domain.NotificationEvent, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", event, err)
	}

	args := &goredis.XAddArgs{
		Stream: n.stream,
		Values: map[string]any{
			"event":   string(event),
			"user_id": userID.String(),
			"payload": string(body),
			"sent_at": n.now().Format(time.RFC3339Nano),
		},
	}
	if n.maxLen > 0 {
		args.MaxLen = n.maxLen
		args.Approx = true
	}

	if err := n.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", n.stream, err)
	}
	return nil
}

// Ping reports whether Redis is reachable. Used by the readiness probe.
func (n *Notifier) Ping(ctx context.Context) error {
	return n.client.Ping(ctx).Err()
}
