package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"bible-study-be/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/patrickmn/go-cache"
)

const slotChangesTopic = "slot_changes"

// SlotRepository keeps slots in process memory. Every store built on the
// same repository sees the others' changes through the gochannel pub/sub.
type SlotRepository struct {
	cache  *cache.Cache
	pubSub *gochannel.GoChannel
}

var _ contract.SlotRepository = &SlotRepository{}

func NewSlotRepository() *SlotRepository {
	// Slots hold the signed-in session until it is explicitly cleared
	c := cache.New(cache.NoExpiration, 0)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NopLogger{},
	)
	return &SlotRepository{
		cache:  c,
		pubSub: pubSub,
	}
}

func (r *SlotRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if x, found := r.cache.Get(key); found {
		value := x.([]byte)
		out := make([]byte, len(value))
		copy(out, value)
		return out, true, nil
	}
	return nil, false, nil
}

func (r *SlotRepository) Put(ctx context.Context, key string, value []byte, origin string) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	r.cache.Set(key, stored, cache.NoExpiration)
	return r.announce(key, origin)
}

func (r *SlotRepository) Remove(ctx context.Context, key string, origin string) error {
	r.cache.Delete(key)
	return r.announce(key, origin)
}

func (r *SlotRepository) Watch(ctx context.Context) (<-chan contract.SlotChange, error) {
	messages, err := r.pubSub.Subscribe(ctx, slotChangesTopic)
	if err != nil {
		return nil, fmt.Errorf("subscribe slot changes: %w", err)
	}

	out := make(chan contract.SlotChange, 16)
	go func() {
		defer close(out)
		for msg := range messages {
			var change contract.SlotChange
			err := json.Unmarshal(msg.Payload, &change)
			msg.Ack()
			if err != nil {
				continue
			}
			select {
			case out <- change:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Close stops every watcher.
func (r *SlotRepository) Close() error {
	return r.pubSub.Close()
}

func (r *SlotRepository) announce(key, origin string) error {
	payload, err := json.Marshal(contract.SlotChange{Key: key, Origin: origin})
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := r.pubSub.Publish(slotChangesTopic, msg); err != nil {
		return fmt.Errorf("publish slot change: %w", err)
	}
	return nil
}
