package stores

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhildevireddy/cf-ai-swe-project/pkg/models/aigc"
)

func newCompletionStub(t *testing.T, body map[string]any, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
}

func TestCompleteReply(t *testing.T) {
	ts := newCompletionStub(t, map[string]any{
		"id": "cmpl-1", "object": "chat.completion",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": "Hi there"},
			"finish_reason": "stop",
		}},
	}, http.StatusOK)
	defer ts.Close()

	ai := NewOpenAIChat("sk-test", ts.URL+"/v1", "test-model")
	reply, err := ai.Complete(context.Background(), aigc.Messages{
		{Role: aigc.RoleSystem, Content: "sys"},
		{Role: aigc.RoleUser, Content: "Hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hi there", reply)
}

func TestCompleteFallback(t *testing.T) {
	// no usable choice comes back; the reply degrades to the stringified
	// response instead of an error
	ts := newCompletionStub(t, map[string]any{
		"id": "cmpl-odd", "object": "chat.completion",
	}, http.StatusOK)
	defer ts.Close()

	ai := NewOpenAIChat("sk-test", ts.URL+"/v1", "test-model")
	reply, err := ai.Complete(context.Background(), aigc.Messages{
		{Role: aigc.RoleUser, Content: "Hello"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
	assert.Contains(t, reply, "cmpl-odd")
}

func TestCompleteFailure(t *testing.T) {
	ts := newCompletionStub(t, map[string]any{
		"error": map[string]any{"message": "overloaded", "type": "server_error"},
	}, http.StatusInternalServerError)
	defer ts.Close()

	ai := NewOpenAIChat("sk-test", ts.URL+"/v1", "test-model")
	_, err := ai.Complete(context.Background(), aigc.Messages{
		{Role: aigc.RoleUser, Content: "Hello"},
	})
	assert.Error(t, err)
}
