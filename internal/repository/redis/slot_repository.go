package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bible-study-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel carries slot change announcements between processes.
const DefaultChannel = "session_events"

// SlotRepository stores slots as plain Redis strings so every process
// pointed at the same Redis shares them.
type SlotRepository struct {
	rdb     *redis.Client
	channel string
}

var _ contract.SlotRepository = &SlotRepository{}

func NewSlotRepository(rdb *redis.Client, channel string) *SlotRepository {
	if channel == "" {
		channel = DefaultChannel
	}
	return &SlotRepository{rdb: rdb, channel: channel}
}

func (r *SlotRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (r *SlotRepository) Put(ctx context.Context, key string, value []byte, origin string) error {
	if err := r.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return r.announce(ctx, key, origin)
}

func (r *SlotRepository) Remove(ctx context.Context, key string, origin string) error {
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return r.announce(ctx, key, origin)
}

func (r *SlotRepository) Watch(ctx context.Context) (<-chan contract.SlotChange, error) {
	pubsub := r.rdb.Subscribe(ctx, r.channel)
	// Subscribe is lazy, wait for the confirmation so no change is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("redis subscribe %s: %w", r.channel, err)
	}

	out := make(chan contract.SlotChange, 16)
	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var change contract.SlotChange
				if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
					continue
				}
				select {
				case out <- change:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (r *SlotRepository) announce(ctx context.Context, key, origin string) error {
	payload, err := json.Marshal(contract.SlotChange{Key: key, Origin: origin})
	if err != nil {
		return err
	}
	if err := r.rdb.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", r.channel, err)
	}
	return nil
}
