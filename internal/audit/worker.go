package audit

import "context"

// Worker consumes audit events from a channel and persists them. The gateway
// stays synchronous; anything slower than the memory store (kafka, disk)
// runs behind this worker instead of on the mutation path.
type Worker struct {
	store Store
	inbox <-chan Event
}

func NewWorker(store Store, inbox <-chan Event) *Worker {
	return &Worker{store: store, inbox: inbox}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				return err
			}
		}
	}
}

// ChannelStore adapts a channel to the Store interface so the publisher can
// hand events to a Worker without blocking mutations on the downstream
// sink. A full inbox drops the event rather than stalling the gateway.
type ChannelStore struct {
	inbox chan<- Event
}

func NewChannelStore(inbox chan<- Event) *ChannelStore {
	return &ChannelStore{inbox: inbox}
}

func (s *ChannelStore) Append(_ context.Context, event Event) error {
	select {
	case s.inbox <- event:
	default:
	}
	return nil
}

func (s *ChannelStore) ListByActor(context.Context, string) ([]Event, error) {
	return nil, ErrWriteOnly
}
