package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"

	"github.com/odpi/itinfra/pkg/logger"
)

// RedisPublisher publishes events as JSON on a redis channel per server,
// named "<prefix>.<serverName>".
type RedisPublisher struct {
	client *redis.Client
	prefix string
	log    *logger.Logger

	closeOnce sync.Once
	closeErr  error
}

// NewRedisPublisher connects to the redis instance at url.
func NewRedisPublisher(url, prefix string, log *logger.Logger) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisPublisherWithClient(redis.NewClient(opts), prefix, log), nil
}

// NewRedisPublisherWithClient wraps an existing client.
func NewRedisPublisherWithClient(client *redis.Client, prefix string, log *logger.Logger) *RedisPublisher {
	if log == nil {
		log = logger.NewDefault("events-redis")
	}
	if prefix == "" {
		prefix = "itinfra.out"
	}
	return &RedisPublisher{client: client, prefix: prefix, log: log}
}

// Channel returns the channel events for serverName are published on.
func (p *RedisPublisher) Channel(serverName string) string {
	return p.prefix + "." + serverName
}

func (p *RedisPublisher) Publish(ctx context.Context, evt Event) error {
	evt = evt.Stamp()
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	receivers, err := p.client.Publish(ctx, p.Channel(evt.ServerName), payload).Result()
	if err != nil {
		return fmt.Errorf("publish event %s: %w", evt.ID, err)
	}
	p.log.WithField("channel", p.Channel(evt.ServerName)).
		WithField("event_type", evt.EventType.String()).
		Debugf("published event to %d receivers", receivers)
	return nil
}

// Ping checks the connection.
func (p *RedisPublisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Close releases the client. Only the first call has an effect.
func (p *RedisPublisher) Close() error {
	p.closeOnce.Do(func() { p.closeErr = p.client.Close() })
	return p.closeErr
}
