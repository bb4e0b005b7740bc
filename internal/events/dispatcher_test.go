package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishReachesAllSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var first, second int
	dispatcher.Subscribe(EventLoginFailed, func(_ context.Context, _ Event) error {
		first++
		return nil
	})
	dispatcher.Subscribe(EventLoginFailed, func(_ context.Context, _ Event) error {
		second++
		return errors.New("handler failure must not stop delivery")
	})

	event := New(EventLoginFailed, "alice@example.com", LoginPayload{Email: "alice@example.com", Reason: "password mismatch"})
	require.NoError(t, dispatcher.Publish(context.Background(), event))
	require.NoError(t, dispatcher.Publish(context.Background(), event))

	assert.Equal(t, 2, first)
	assert.Equal(t, 2, second)
}

func TestDispatcher_UnsubscribedTypeIsIgnored(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	called := false
	dispatcher.Subscribe(EventTokenRevoked, func(_ context.Context, _ Event) error {
		called = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), New(EventLoginSucceeded, "alice@example.com", nil)))
	assert.False(t, called)
}

func TestNew_StampsIDAndTime(t *testing.T) {
	event := New(EventAdmissionRejected, "alice", AdmissionRejectedPayload{Identity: "alice", Path: "/secure-data", RetryAfterSeconds: 42})

	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Timestamp.IsZero())
	assert.Equal(t, EventAdmissionRejected, event.Type)
	assert.Equal(t, "alice", event.Subject)
}
