package contract

import (
	"context"
)

// SlotChange announces that a slot was written or cleared. Origin identifies
// the writer so it can ignore its own announcements.
type SlotChange struct {
	Key    string `json:"key"`
	Origin string `json:"origin"`
}

// SlotRepository is a key/value medium shared by every execution context of
// the application. Writes replace or clear a whole value, never part of it.
type SlotRepository interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte, origin string) error
	Remove(ctx context.Context, key string, origin string) error
	// Watch streams every change made by any context, including the caller,
	// until ctx is done. The channel is closed afterwards.
	Watch(ctx context.Context) (<-chan SlotChange, error)
}
