package stores

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/cupogo/andvari/utils/zlog"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nikhildevireddy/cf-ai-swe-project/pkg/models/aigc"
)

func init() {
	zlog.Set(zap.NewNop().Sugar())
}

func newTestRedis(t *testing.T) RedisClient {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestConversationAppendAndList(t *testing.T) {
	ctx := context.Background()
	rc := newTestRedis(t)
	kv := NewRedisKV(rc)
	cs := NewConversation("abc", rc, kv)

	assert.Equal(t, "abc", cs.GetID())

	data, err := cs.ListTurns(ctx)
	require.NoError(t, err)
	assert.Empty(t, data)

	require.NoError(t, cs.AddTurn(ctx, aigc.Turn{Role: aigc.RoleUser, Content: "Hello", Ts: 1700000000001}))
	require.NoError(t, cs.AddTurn(ctx, aigc.Turn{Role: aigc.RoleAssistant, Content: "Hi there", Ts: 1700000000002}))

	data, err = cs.ListTurns(ctx)
	require.NoError(t, err)
	require.Len(t, data, 2)
	assert.Equal(t, aigc.RoleUser, data[0].Role)
	assert.Equal(t, "Hello", data[0].Content)
	assert.EqualValues(t, 1700000000001, data[0].Ts)
	assert.Equal(t, aigc.RoleAssistant, data[1].Role)
	assert.Equal(t, "Hi there", data[1].Content)
}

func TestConversationMirror(t *testing.T) {
	ctx := context.Background()
	rc := newTestRedis(t)
	kv := NewRedisKV(rc)
	cs := NewConversation("mir", rc, kv)

	require.NoError(t, cs.AddTurn(ctx, aigc.Turn{Role: aigc.RoleUser, Content: "ping", Ts: 1}))

	b, err := kv.Get(ctx, "session:mir:history")
	require.NoError(t, err)
	var snap aigc.Turns
	require.NoError(t, json.Unmarshal(b, &snap))
	require.Len(t, snap, 1)
	assert.Equal(t, "ping", snap[0].Content)

	// snapshot follows every append
	require.NoError(t, cs.AddTurn(ctx, aigc.Turn{Role: aigc.RoleAssistant, Content: "pong", Ts: 2}))
	b, err = kv.Get(ctx, "session:mir:history")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, &snap))
	assert.Len(t, snap, 2)
}

type failingKV struct{}

func (failingKV) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("boom")
}
func (failingKV) Put(ctx context.Context, key string, value []byte) error {
	return errors.New("boom")
}

func TestConversationMirrorFailureSwallowed(t *testing.T) {
	ctx := context.Background()
	rc := newTestRedis(t)
	cs := NewConversation("shady", rc, failingKV{})

	require.NoError(t, cs.AddTurn(ctx, aigc.Turn{Role: aigc.RoleUser, Content: "still fine", Ts: 1}))

	data, err := cs.ListTurns(ctx)
	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.Equal(t, "still fine", data[0].Content)
}

func TestConversationIsolation(t *testing.T) {
	ctx := context.Background()
	rc := newTestRedis(t)
	kv := NewRedisKV(rc)
	a := NewConversation("sess-a", rc, kv)
	b := NewConversation("sess-b", rc, kv)

	require.NoError(t, a.AddTurn(ctx, aigc.Turn{Role: aigc.RoleUser, Content: "only for a", Ts: 1}))

	data, err := b.ListTurns(ctx)
	require.NoError(t, err)
	assert.Empty(t, data)

	data, err = a.ListTurns(ctx)
	require.NoError(t, err)
	assert.Len(t, data, 1)
}

func TestConversationClear(t *testing.T) {
	ctx := context.Background()
	rc := newTestRedis(t)
	kv := NewRedisKV(rc)
	cs := NewConversation("gone", rc, kv)

	require.NoError(t, cs.AddTurn(ctx, aigc.Turn{Role: aigc.RoleUser, Content: "bye", Ts: 1}))
	require.NoError(t, cs.ClearTurns(ctx))

	data, err := cs.ListTurns(ctx)
	require.NoError(t, err)
	assert.Empty(t, data)
}
