package api

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchIncomingMessages(t *testing.T) {
	srv := newActionServer(t)
	srv.on("getCOOIncomingMessages", `{"messages":[
		{"id":"101","text":"hi","timestamp":1000},
		{"id":"102","text":"there","timestamp":2000,"status":"ready"}
	]}`)

	msgs, err := srv.client().FetchIncomingMessages(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "101", msgs[0].ID)
	assert.Equal(t, int64(2000), msgs[1].Timestamp)

	// Empty cursor means no payload at all.
	require.Len(t, srv.recorded(), 1)
	assert.NotContains(t, srv.recorded()[0], "payload")
}

func TestFetchIncomingMessagesAfterID(t *testing.T) {
	srv := newActionServer(t)
	srv.on("getCOOIncomingMessages", `{"messages":[]}`)

	_, err := srv.client().FetchIncomingMessages(context.Background(), "250")
	require.NoError(t, err)

	require.Len(t, srv.recorded(), 1)
	payload, ok := srv.recorded()[0]["payload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "250", payload["after_id"])
}

func TestSendAssistantMessageImmediateReply(t *testing.T) {
	srv := newActionServer(t)
	srv.on("", `{"text":"right away"}`)

	reply, err := srv.client().SendAssistantMessage(context.Background(), "hello", time.Millisecond, 3)
	require.NoError(t, err)
	assert.Equal(t, "right away", reply.Text)

	// The free-form send has no action field and the message at top level.
	require.Len(t, srv.recorded(), 1)
	assert.NotContains(t, srv.recorded()[0], "action")
	assert.Equal(t, "hello", srv.recorded()[0]["message"])
	assert.Contains(t, srv.recorded()[0], "timestamp")
}

func TestSendAssistantMessageTextFieldFallbacks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"text", `{"text":"a"}`, "a"},
		{"message", `{"message":"b"}`, "b"},
		{"output", `{"output":"c"}`, "c"},
		{"text wins over message", `{"text":"a","message":"b"}`, "a"},
		{"empty text is still a reply", `{"text":""}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newActionServer(t)
			srv.on("", tt.body)

			reply, err := srv.client().SendAssistantMessage(context.Background(), "q", time.Millisecond, 3)
			require.NoError(t, err)
			assert.Equal(t, tt.want, reply.Text)
		})
	}
}

func TestSendAssistantMessageDeferredReply(t *testing.T) {
	srv := newActionServer(t)
	srv.on("", `{"status":"processing","request_id":"req-1"}`)
	var polls atomic.Int32
	srv.handlers["getCOOResponse"] = func(envelope map[string]any) string {
		assert.Equal(t, "req-1", envelope["request_id"])
		if polls.Add(1) < 3 {
			return `{"status":"processing"}`
		}
		return `{"status":"ready","text":"took a while"}`
	}

	reply, err := srv.client().SendAssistantMessage(context.Background(), "q", time.Millisecond, 10)
	require.NoError(t, err)
	assert.Equal(t, "took a while", reply.Text)
	assert.Equal(t, int32(3), polls.Load())
}

func TestSendAssistantMessageGivesUpAfterBudget(t *testing.T) {
	srv := newActionServer(t)
	srv.on("", `{"status":"processing","request_id":"req-1"}`)
	srv.on("getCOOResponse", `{"status":"processing"}`)

	reply, err := srv.client().SendAssistantMessage(context.Background(), "q", time.Millisecond, 4)
	require.NoError(t, err)
	assert.Equal(t, NoReplyText, reply.Text)
}

func TestSendAssistantMessageCancelled(t *testing.T) {
	srv := newActionServer(t)
	srv.on("", `{"status":"processing","request_id":"req-1"}`)
	srv.on("getCOOResponse", `{"status":"processing"}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := srv.client().SendAssistantMessage(ctx, "q", time.Hour, 10)
	assert.ErrorIs(t, err, context.Canceled)
}
