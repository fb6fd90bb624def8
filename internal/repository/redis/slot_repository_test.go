package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"bible-study-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real server only, e.g. REDIS_URL=redis://localhost:6379/15
func newTestRepository(t *testing.T) *SlotRepository {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)

	rdb := redis.NewClient(opt)
	t.Cleanup(func() { _ = rdb.Close() })
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}
	return NewSlotRepository(rdb, "test_session_events_"+uuid.NewString())
}

func TestSlotRepositoryPutGetRemove(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	key := "authUser_" + uuid.NewString()

	_, found, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Put(ctx, key, []byte(`{"uid":"1"}`), "a"))
	value, found, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"uid":"1"}`, string(value))

	require.NoError(t, repo.Remove(ctx, key, "a"))
	require.NoError(t, repo.Remove(ctx, key, "a"))
	_, found, err = repo.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSlotRepositoryWatch(t *testing.T) {
	repo := newTestRepository(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	key := "authUser_" + uuid.NewString()

	changes, err := repo.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.Put(context.Background(), key, []byte(`{}`), "tab-b"))

	select {
	case change := <-changes:
		assert.Equal(t, contract.SlotChange{Key: key, Origin: "tab-b"}, change)
	case <-time.After(2 * time.Second):
		t.Fatal("no change received")
	}

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, open := <-changes:
			return !open
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
