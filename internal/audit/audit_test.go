package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	id "stablehand/pkg/domain"
)

func TestPublisherStampsTimestamp(t *testing.T) {
	store := NewMemoryStore()
	pub := NewPublisher(store)

	require.NoError(t, pub.Emit(context.Background(), Event{Action: "create_stable"}))

	pinned := time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)
	require.NoError(t, pub.Emit(context.Background(), Event{Action: "update_stable", Timestamp: pinned}))

	events := store.All()
	require.Len(t, events, 2)
	require.False(t, events[0].Timestamp.IsZero())
	require.Equal(t, pinned, events[1].Timestamp)
}

func TestMemoryStoreListByActor(t *testing.T) {
	store := NewMemoryStore()
	alice := id.NewUserID()
	bob := id.NewUserID()

	for _, e := range []Event{
		{ActorID: alice, Action: "create_stable", Committed: true},
		{ActorID: bob, Action: "update_stable", Reason: "insufficient access"},
		{ActorID: alice, Action: "create_assignment", Committed: true},
	} {
		require.NoError(t, store.Append(context.Background(), e))
	}

	mine, err := store.ListByActor(context.Background(), alice.String())
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.Equal(t, "create_stable", mine[0].Action)
	require.Equal(t, "create_assignment", mine[1].Action)
}

func TestChannelStoreDropsWhenFull(t *testing.T) {
	inbox := make(chan Event, 1)
	store := NewChannelStore(inbox)

	require.NoError(t, store.Append(context.Background(), Event{Action: "first"}))
	// Inbox is full now; the second append must not block.
	require.NoError(t, store.Append(context.Background(), Event{Action: "dropped"}))

	require.Equal(t, "first", (<-inbox).Action)
	select {
	case e := <-inbox:
		t.Fatalf("expected the overflow event to be dropped, got %q", e.Action)
	default:
	}

	_, err := store.ListByActor(context.Background(), "anyone")
	require.ErrorIs(t, err, ErrWriteOnly)
}

func TestWorkerDrainsInbox(t *testing.T) {
	inbox := make(chan Event, 4)
	sink := NewMemoryStore()
	worker := NewWorker(sink, inbox)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	front := NewChannelStore(inbox)
	require.NoError(t, front.Append(ctx, Event{Action: "create_paddock"}))
	require.NoError(t, front.Append(ctx, Event{Action: "delete_paddock"}))

	require.Eventually(t, func() bool {
		return len(sink.All()) == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}
