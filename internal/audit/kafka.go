package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaStore forwards audit events to a kafka topic for off-process
// retention. It satisfies Store but is write-only; reads stay on the memory
// store that fronts it.
type KafkaStore struct {
	client *kgo.Client
	topic  string
}

// NewKafkaStore connects to the given seed brokers.
func NewKafkaStore(brokers []string, topic string) (*KafkaStore, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("audit kafka client: %w", err)
	}
	return &KafkaStore{client: client, topic: topic}, nil
}

func (s *KafkaStore) Append(ctx context.Context, event Event) error {
	payload, err := json.Marshal(kafkaEvent{
		Timestamp: event.Timestamp.UTC().Format("2006-01-02T15:04:05Z07:00"),
		ActorID:   event.ActorID.String(),
		StableID:  event.StableID.String(),
		Action:    event.Action,
		EntityID:  event.EntityID,
		Committed: event.Committed,
		Reason:    event.Reason,
	})
	if err != nil {
		return fmt.Errorf("audit kafka encode: %w", err)
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.StableID.String()),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("audit kafka produce: %w", err)
	}
	return nil
}

// ErrWriteOnly marks sinks that cannot serve reads.
var ErrWriteOnly = errors.New("audit sink is write-only")

// ListByActor is unsupported on the kafka sink.
func (s *KafkaStore) ListByActor(context.Context, string) ([]Event, error) {
	return nil, ErrWriteOnly
}

// Close flushes and releases the client.
func (s *KafkaStore) Close() {
	s.client.Close()
}

type kafkaEvent struct {
	Timestamp string `json:"timestamp"`
	ActorID   string `json:"actor_id"`
	StableID  string `json:"stable_id"`
	Action    string `json:"action"`
	EntityID  string `json:"entity_id"`
	Committed bool   `json:"committed"`
	Reason    string `json:"reason"`
}
